// Package rename assigns externally-issued core identifiers onto an
// aggregated logging dataset.
//
// Core identity is not recorded by the instruments; it is reconstructed
// from the sequence of section-depth resets (a drop in recorded depth
// between consecutive rows marks a new section) and an ordered core list
// supplied by the lab. Every section consumes one core-list entry, and a
// disagreement between detected sections and supplied entries is a hard
// error rather than a silent mis-assignment.
package rename
