// Command renamer stamps lab-issued core identifiers onto an aggregated
// export, using the ordered core list and the section boundaries implied by
// depth resets.
//
//	renamer -in DCH_MSCL.csv -corelist DCH_cores.csv -out DCH_MSCL_named.csv
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
	"github.com/laccore/data-aggregator-and-renamer/internal/infrastructure"
	"github.com/laccore/data-aggregator-and-renamer/internal/rename"
)

func main() {
	in := flag.String("in", "", "aggregated CSV to rename")
	corelist := flag.String("corelist", "", "core list CSV (coreID,sectionNumber per line, no header)")
	out := flag.String("out", "", "output file path")
	format := flag.String("format", "csv", "export format: csv | xlsx")
	units := flag.Bool("units", true, "input carries a units row under the header")
	depthCol := flag.Int("depth-col", -1, "depth column index, -1 locates it by name")
	sectionCol := flag.Int("section-col", -1, "section column index, -1 locates it by name")
	configFile := flag.String("config", "", "optional YAML config file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *in == "" || *corelist == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: renamer -in <csv> -corelist <csv> -out <file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{Level: "info", Format: "text", Output: "console"},
			Rename:  config.RenameConfig{CoreColumn: rename.DefaultCoreColumn, DepthColumn: -1, SectionColumn: -1},
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

	if err := run(logger, cfg, *in, *corelist, *out, *format, *units, *depthCol, *sectionCol); err != nil {
		logger.Error("rename failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg *config.Config, in, corelist, out, format string, units bool, depthCol, sectionCol int) error {
	f, err := exporter.ParseFormat(format)
	if err != nil {
		return err
	}

	entries, err := rename.ReadCoreList(corelist)
	if err != nil {
		return err
	}
	logger.Info("core list loaded",
		slog.String("path", corelist),
		slog.Int("entries", len(entries)))

	loaded, err := exporter.ReadCSV(in, units)
	if err != nil {
		return err
	}
	d := loaded.Dataset
	logger.Info("dataset loaded",
		slog.String("path", in),
		slog.Int("rows", d.Len()),
		slog.Int("columns", len(d.Headers())))

	opts := rename.Options{
		DepthColumn:       pickColumn(depthCol, cfg.Rename.DepthColumn),
		SectionColumn:     pickColumn(sectionCol, cfg.Rename.SectionColumn),
		DepthCandidates:   cfg.Rename.DepthCandidates,
		SectionCandidates: cfg.Rename.SectionCandidates,
		CoreColumn:        cfg.Rename.CoreColumn,
		Logger:            logger,
	}
	res, err := rename.Assign(d, entries, opts)
	if err != nil {
		return err
	}

	unitsRow := loaded.Units
	if len(unitsRow) > 0 {
		// The added core column needs a units cell too.
		unitsRow = append(append([]string{}, unitsRow...), "")
	}

	path := exporter.ValidateFilename(out, f)
	writer := exporter.ForFormat(f, logger)
	if err := writer.Write(path, exporter.WriteOptions{
		Headers:   d.Headers(),
		Units:     unitsRow,
		Records:   d.Records(),
		BOMPrefix: f == exporter.FormatCSV,
	}); err != nil {
		return err
	}

	if len(res.Unmatched) > 0 {
		sidePath := unmatchedPath(path, f)
		if err := writeUnmatched(writer, d, res.Unmatched, sidePath); err != nil {
			return err
		}
		logger.Warn("unassigned rows written to side file",
			slog.String("path", sidePath),
			slog.Int("rows", len(res.Unmatched)))
	}

	logger.Info("rename complete",
		slog.String("output", path),
		slog.Int("sections", res.Sections),
		slog.Int("rows", d.Len()))
	return nil
}

// pickColumn resolves a column index: an explicit flag wins, then the
// configured value, then name-based lookup (-1).
func pickColumn(flagValue, configured int) int {
	if flagValue >= 0 {
		return flagValue
	}
	return configured
}

func unmatchedPath(path string, f exporter.Format) string {
	return strings.TrimSuffix(path, f.Extension()) + "_unmatched" + f.Extension()
}

func writeUnmatched(w exporter.Writer, d *dataset.Dataset, rows []int, path string) error {
	all := d.Records()
	records := make([][]string, 0, len(rows))
	for _, i := range rows {
		records = append(records, all[i])
	}
	return w.Write(path, exporter.WriteOptions{
		Headers: d.Headers(),
		Records: records,
	})
}
