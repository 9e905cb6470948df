package workbook

import (
	"github.com/quillsoft/sheetpack/workbook/sst"
	"github.com/quillsoft/sheetpack/workbook/styles"
)

// Workbook is one in-memory document: an ordered list of worksheets plus
// the styles repository and shared-string table they all share. Sharing the
// two stores across sheets is intentional — deduplication is document-wide.
//
// Workbook is not safe for concurrent use.
type Workbook struct {
	opts    Options
	sheets  []*Worksheet
	styles  *styles.Repository
	strings *sst.Table
}

// New creates an empty workbook. nil opts means DefaultOptions.
func New(opts *Options) *Workbook {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.StreamingRowCapacity <= 0 {
		opts.StreamingRowCapacity = DefaultOptions().StreamingRowCapacity
	}
	return &Workbook{
		opts:    *opts,
		styles:  styles.NewRepository(),
		strings: sst.New(),
	}
}

// AddSheet appends a worksheet. Names must be unique within the document.
func (wb *Workbook) AddSheet(name string) (*Worksheet, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	for _, ws := range wb.sheets {
		if ws.name == name {
			return nil, ErrSheetExists
		}
	}
	ws := newWorksheet(wb, name)
	wb.sheets = append(wb.sheets, ws)
	return ws, nil
}

// Sheets returns the worksheets in document order.
func (wb *Workbook) Sheets() []*Worksheet { return wb.sheets }

// Sheet returns the worksheet at 0-based index i, or nil.
func (wb *Workbook) Sheet(i int) *Worksheet {
	if i < 0 || i >= len(wb.sheets) {
		return nil
	}
	return wb.sheets[i]
}

// SheetByName returns the named worksheet, or nil.
func (wb *Workbook) SheetByName(name string) *Worksheet {
	for _, ws := range wb.sheets {
		if ws.name == name {
			return ws
		}
	}
	return nil
}

// Styles returns the document's format repository.
func (wb *Workbook) Styles() *styles.Repository { return wb.styles }

// Strings returns the document's shared-string table.
func (wb *Workbook) Strings() *sst.Table { return wb.strings }

// Options returns a copy of the workbook configuration.
func (wb *Workbook) Options() Options { return wb.opts }
