// Package geotek aggregates the per-session output of Geotek core-logging
// instruments (MSCL-S whole-core logger, MSCL-XYZ split-core logger, XRF
// scanner) into one dataset.
//
// A run enumerates the session subfolders of a root directory, parses each
// instrument's structured data files, reconciles their headers into a
// unified schema, applies instrument value filters, and stamps every row
// with its source folder and file. Individual unreadable files are skipped
// and recorded in the run Report; structural problems abort the run.
package geotek
