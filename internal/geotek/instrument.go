package geotek

import (
	"fmt"
	"strconv"

	"github.com/laccore/data-aggregator-and-renamer/internal/dataset"
)

// Instrument names accepted by ByName and the aggregator CLI.
const (
	InstrumentMSCLS   = "mscl-s"
	InstrumentMSCLXYZ = "mscl-xyz"
	InstrumentXRF     = "xrf"
)

// Provenance column names appended to every aggregated dataset.
const (
	SourceFolderColumn = "Source Folder"
	SourceFileColumn   = "Source File"
)

// Instrument describes how one machine's session output is located, parsed
// and presented.
type Instrument struct {
	// Name is the CLI identifier.
	Name string

	// FolderToken must appear in a session folder name for the folder to
	// be part of the run ("mscl", "xyz", "xrf").
	FolderToken string

	// TailAnchor pins a column to the end of the unified schema. The
	// MSCL-S software keeps Temp last; columns discovered mid-run insert
	// in front of it.
	TailAnchor string

	// DropColumns are machine headers removed from the export order.
	DropColumns []string

	// Labels maps machine headers to human-readable export headers.
	Labels map[string]string

	// Units maps machine headers to the unit label emitted in the units
	// row under the export header. A nil map suppresses the units row.
	Units map[string]string

	// FilterColumns are the columns the instrument's built-in minimum
	// threshold applies to.
	FilterColumns []string
}

// ByName resolves an instrument by its CLI identifier.
func ByName(name string) (Instrument, error) {
	switch name {
	case InstrumentMSCLS:
		return msclS, nil
	case InstrumentMSCLXYZ:
		return msclXYZ, nil
	case InstrumentXRF:
		return xrf, nil
	}
	return Instrument{}, fmt.Errorf("unknown instrument type %q (expected %s, %s or %s)",
		name, InstrumentMSCLS, InstrumentMSCLXYZ, InstrumentXRF)
}

// Presentation is the export view of an aggregated dataset: which schema
// positions to write, under what headers, with what units.
type Presentation struct {
	Columns  []int
	Headers  []string
	Units    []string
	Warnings []string
}

// Present maps the unified machine headers onto the instrument's export
// order: dropped columns removed, readable labels applied, units resolved.
// Machine headers without a known label or unit pass through with a
// warning, matching the reference behavior of the logging lab's tooling.
func (inst Instrument) Present(headers []string) Presentation {
	drop := make(map[string]bool, len(inst.DropColumns))
	for _, c := range inst.DropColumns {
		drop[dataset.Normalize(c)] = true
	}

	var p Presentation
	for pos, h := range headers {
		key := dataset.Normalize(h)
		if drop[key] {
			continue
		}
		p.Columns = append(p.Columns, pos)

		label, ok := inst.Labels[key]
		if !ok {
			label = h
			if inst.Labels != nil && !isProvenance(key) {
				p.Warnings = append(p.Warnings, fmt.Sprintf("no readable header for machine header %q", h))
			}
		}
		p.Headers = append(p.Headers, label)

		if inst.Units == nil {
			continue
		}
		unit, ok := inst.Units[key]
		if !ok && !isProvenance(key) {
			p.Warnings = append(p.Warnings, fmt.Sprintf("no units for machine header %q", h))
		}
		p.Units = append(p.Units, unit)
	}
	return p
}

func isProvenance(normalized string) bool {
	return normalized == dataset.Normalize(SourceFolderColumn) ||
		normalized == dataset.Normalize(SourceFileColumn)
}

// labelTable builds the normalized Labels/Units maps from rows of
// {machine header, readable header, unit}.
func labelTable(rows [][3]string) (map[string]string, map[string]string) {
	labels := make(map[string]string, len(rows))
	units := make(map[string]string, len(rows))
	for _, r := range rows {
		key := dataset.Normalize(r[0])
		labels[key] = r[1]
		units[key] = r[2]
	}
	return labels, units
}

var msclS = func() Instrument {
	labels, units := labelTable([][3]string{
		{"SECT NUM", "SectionID", ""},
		{"SECT DEPTH", "Section Depth", "cm"},
		{"CT", "Sediment Thickness", "cm"},
		{"PWAmp", "pWave Amplitude", ""},
		{"PWVel", "pWave Velocity", "m/s"},
		{"Den1", "Gamma Density", "g/cm³"},
		{"MS1", "MS Loop", "SI x 10^-5"},
		{"Imp", "Impedance", ""},
		{"FP", "Fractional Porosity", ""},
		{"NGAM", "Natural Gamma Radiation", "CPS"},
		{"RES", "Electrical Resistivity", "Ohm-m"},
		{"Temp", "Temperature in Logging Room", "°C"},
	})
	return Instrument{
		Name:        InstrumentMSCLS,
		FolderToken: "mscl",
		TailAnchor:  "Temp",
		// SB DEPTH is irrelevant and routinely confusing downstream.
		DropColumns:   []string{"SB DEPTH"},
		Labels:        labels,
		Units:         units,
		FilterColumns: []string{"MS1"},
	}
}()

var msclXYZ = func() Instrument {
	rows := [][3]string{
		{"Section", "Section", ""},
		{"Section Depth", "Section Depth", "cm"},
		{"Laser Profiler", "Laser Profiler", "mm"},
		{"Magnetic Susceptibility", "Magnetic Susceptibility", "SI x 10^-5"},
		{"Greyscale Reflectance", "Greyscale Reflectance", ""},
		{"CIE XYZ Colour Space", "CIE X", ""},
		{"Y", "CIE Y", ""},
		{"Z", "CIE Z", ""},
		{"CIE L*a*b* Colour Space", "CIE L*", ""},
		{"a*", "CIE a*", ""},
		{"b*", "CIE b*", ""},
		{"Reflectance (nm)", "360", "nm"},
	}
	// Wavelength columns 370-740 nm share the same shape.
	for wl := 370; wl <= 740; wl += 10 {
		s := strconv.Itoa(wl)
		rows = append(rows, [3]string{s, s, "nm"})
	}
	labels, units := labelTable(rows)
	return Instrument{
		Name:          InstrumentMSCLXYZ,
		FolderToken:   "xyz",
		DropColumns:   []string{"Depth", "Core Depth", "Munsell Colour"},
		Labels:        labels,
		Units:         units,
		FilterColumns: []string{"Magnetic Susceptibility"},
	}
}()

var xrf = Instrument{
	Name:        InstrumentXRF,
	FolderToken: "xrf",
	// XRF element tables carry their own headers; exported verbatim with
	// no units row.
}
