// Package migrations holds the schema history. Each migration registers
// itself from init(); importing this package for its side effect makes
// them available to the migration runner.
package migrations
