// Package pack serializes a workbook into its multi-part document package.
//
// # Overview
//
// The package format is a zip of interrelated XML parts. Each part family
// (workbook descriptor, styles, shared strings, worksheets, relationship
// files, metadata, manifests) has one Generator that reports the part names
// it owns for a given document and renders each of them into an abstract
// Sink. The Pipeline holds the fixed, ordered generator set and drives them;
// it is not a plugin registry.
//
// Generators see a read-only view of the document (Context). Content
// addressed parts — styles, shared strings — render the live repository and
// table state at generation time, so serialization must happen after
// application writes are complete; no staging copy is taken.
//
// A failing generator aborts the remaining pipeline. The core does not clean
// up partially written output; that is the sink's responsibility.
package pack
