// Package ragdex scans a source tree, extracts function-level records from
// six languages using tree-sitter, and persists them in SQLite as input for
// embedding and vector-store pipelines.
package ragdex
