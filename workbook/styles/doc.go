// Package styles provides the deduplicating format repository shared by all
// worksheets of a document.
//
// # Overview
//
// Cell formatting is expensive to serialize and heavily repeated: a sheet
// with a million cells typically uses a few dozen distinct formats. The
// repository stores each distinct Format exactly once and hands out small
// integer handles; cells store the handle, never the descriptor.
//
// Handles are dense, contiguous and stable for the repository's lifetime.
// Handle 0 is reserved for the built-in default format and always exists.
// Deduplication is exact: lookups go through a content hash first, but every
// hit is re-verified with full value equality, so two formats that collide on
// hash can never share a handle.
//
// Repository is the one component of the engine designed for concurrent use.
// Reads take a shared lock; writes escalate to an exclusive lock with a
// double-checked re-verification so two goroutines interning the same format
// race to a single handle.
//
// Transfer migrates handles between two independent repositories (two open
// documents). No implicit sharing is allowed across documents; every style
// crosses through a Transfer, which memoizes the source→target mapping.
package styles
