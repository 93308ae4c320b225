// Package dataset holds the column-reconciling table model shared by the
// aggregation and rename tools.
//
// A Dataset is an ordered sequence of rows projected onto a Schema, the
// unified column set discovered incrementally while instrument files are
// combined. Cells are Values, which distinguish a genuinely empty source
// cell from a cell that was never present in the source file (Absent).
//
// The package also provides per-column value filtering and total
// order-preserving partitioning of a dataset into keyed groups.
package dataset
