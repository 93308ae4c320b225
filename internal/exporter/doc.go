// Package exporter encodes aggregated datasets as CSV or Excel workbooks
// and reads exported CSV back in for the renaming pass.
//
// CSV output carries a UTF-8 BOM so Excel opens the degree signs and
// superscripts in Geotek unit labels correctly. Excel output coerces
// numeric-looking cells to numbers so downstream spreadsheets can chart
// them without a convert step.
package exporter
