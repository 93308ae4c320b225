// Command aggregator combines the session folders of one Geotek logging
// instrument into a single CSV or Excel export.
//
//	aggregator -type mscl-s -in /data/DCH -out DCH_MSCL.csv
//
// XRF runs are partitioned by the site/hole token of each row's source
// file, one export per site/hole.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/laccore/data-aggregator-and-renamer/internal/config"
	"github.com/laccore/data-aggregator-and-renamer/internal/dataset"
	"github.com/laccore/data-aggregator-and-renamer/internal/exporter"
	"github.com/laccore/data-aggregator-and-renamer/internal/geotek"
	"github.com/laccore/data-aggregator-and-renamer/internal/infrastructure"
)

func main() {
	instrument := flag.String("type", "", "instrument type: mscl-s | mscl-xyz | xrf")
	in := flag.String("in", "", "root directory containing session folders")
	out := flag.String("out", "", "output file path")
	format := flag.String("format", "csv", "export format: csv | xlsx")
	separator := flag.String("separator", "", "part separator in session folder names (default -p, XYZ uses _part)")
	configFile := flag.String("config", "", "optional YAML config file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *instrument == "" || *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: aggregator -type <mscl-s|mscl-xyz|xrf> -in <dir> -out <file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{Level: "info", Format: "text", Output: "console"},
			Aggregate: config.AggregateConfig{
				Separator:     geotek.DefaultSeparator,
				FilterMinimum: geotek.DefaultFilterMinimum,
			},
		}
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()
	logger = logger.With(slog.String("run_id", infrastructure.NewRunID()))

	if err := run(logger, cfg, *instrument, *in, *out, *format, *separator); err != nil {
		logger.Error("aggregation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg *config.Config, instrument, in, out, format, separator string) error {
	inst, err := geotek.ByName(strings.ToLower(strings.TrimSpace(instrument)))
	if err != nil {
		return err
	}
	f, err := exporter.ParseFormat(format)
	if err != nil {
		return err
	}
	if separator == "" {
		separator = defaultSeparator(inst.Name, cfg.Aggregate.Separator)
	}

	logger.Info("starting aggregation",
		slog.String("instrument", inst.Name),
		slog.String("input_dir", in),
		slog.String("output", out),
		slog.String("format", string(f)))

	opts := geotek.Options{
		Separator:       separator,
		FilterMinimum:   &cfg.Aggregate.FilterMinimum,
		DistinctColumns: cfg.Aggregate.DistinctColumns,
		Logger:          logger,
	}
	if len(cfg.Aggregate.FilterColumns) > 0 {
		filter := dataset.NewFilter()
		for _, col := range cfg.Aggregate.FilterColumns {
			filter.Set(col, dataset.Minimum(cfg.Aggregate.FilterMinimum))
		}
		opts.Filter = filter
	}

	data, report, err := geotek.NewAggregator(inst, opts).Run(in)
	if err != nil {
		return err
	}
	report.LogSummary(logger)

	writer := exporter.ForFormat(f, logger)
	if inst.Name == geotek.InstrumentXRF {
		return writePartitions(writer, logger, inst, data, out, f)
	}
	return writeDataset(writer, logger, inst, data, exporter.ValidateFilename(out, f), f)
}

// defaultSeparator picks the folder-name convention of the instrument's
// software when the operator did not say otherwise: "-p" for the whole-core
// logger, "_part" for the split-core logger, and no part filter at all for
// the XRF scanner.
func defaultSeparator(instrument, configured string) string {
	switch instrument {
	case geotek.InstrumentMSCLXYZ:
		return "_part"
	case geotek.InstrumentXRF:
		return ""
	}
	if configured != "" {
		return configured
	}
	return geotek.DefaultSeparator
}

func writePartitions(w exporter.Writer, logger *slog.Logger, inst geotek.Instrument, d *dataset.Dataset, out string, f exporter.Format) error {
	groups := dataset.Partition(d, geotek.SiteHoleKey)
	base := exporter.ValidateFilename(out, f)
	stem := strings.TrimSuffix(base, f.Extension())

	for _, g := range groups {
		path := stem + "_" + g.Key + f.Extension()
		if err := writeDataset(w, logger, inst, g.Data, path, f); err != nil {
			return err
		}
	}
	logger.Info("partitioned exports written", slog.Int("groups", len(groups)))
	return nil
}

func writeDataset(w exporter.Writer, logger *slog.Logger, inst geotek.Instrument, d *dataset.Dataset, path string, f exporter.Format) error {
	p := inst.Present(d.Headers())
	for _, warn := range p.Warnings {
		logger.Warn("presentation warning", slog.String("detail", warn))
	}

	records := make([][]string, d.Len())
	for i := 0; i < d.Len(); i++ {
		row := d.Row(i)
		rec := make([]string, len(p.Columns))
		for j, pos := range p.Columns {
			rec[j] = row[pos].Raw()
		}
		records[i] = rec
	}

	return w.Write(path, exporter.WriteOptions{
		Headers:   p.Headers,
		Units:     p.Units,
		Records:   records,
		BOMPrefix: f == exporter.FormatCSV,
	})
}
