// Package workbook implements the in-memory spreadsheet document model.
//
// # Overview
//
// A Workbook owns an ordered list of worksheets plus one styles repository
// and one shared-string table that all sheets of the document reference, so
// deduplication is document-wide. Cells store integer handles into those
// stores, never descriptors or interned pointers.
//
// A Worksheet is a sparse cell grid with two write disciplines. In standard
// mode writes land directly in the grid and any cell can be revisited. In
// streaming mode at most one row is materialized outside the grid at a time:
// writing to a different row implicitly flushes the buffered row, bounding
// peak memory for generate-once workloads that produce rows in order.
//
// # Concurrency
//
// Worksheets, the workbook and the range tracker are single-writer
// structures; callers enforce exclusion. Only the styles repository is safe
// for concurrent use. Within one goroutine, writes are observed in program
// order, and an implicit streaming flush completes before any read that
// targets the previously buffered row.
package workbook
