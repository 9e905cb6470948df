package workbook

import "time"

// DocProperties feed the document-metadata parts of the generated package.
type DocProperties struct {
	Title   string
	Subject string
	Creator string
	Company string
	// Created stamps the core-properties part. The zero value means "now";
	// set it explicitly for reproducible output.
	Created time.Time
}

// Options configures a Workbook.
type Options struct {
	// SharedStrings routes cell text through the document's shared-string
	// table. When off, strings serialize inline and no sharedStrings part
	// is emitted.
	SharedStrings bool

	// StreamingRowCapacity is the per-row cell capacity hint reserved when
	// a worksheet enters streaming mode.
	StreamingRowCapacity int

	Properties DocProperties
}

// DefaultOptions returns the recommended configuration: shared strings on,
// a generous streaming row hint.
func DefaultOptions() *Options {
	return &Options{
		SharedStrings:        true,
		StreamingRowCapacity: 1024,
	}
}
