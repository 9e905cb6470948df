package workbook

import (
	"iter"
	"sort"
)

// RowInfo is sparse per-row metadata, kept separately from the cell grid.
type RowInfo struct {
	Height       float64
	CustomHeight bool
	Hidden       bool
	Format       int // style handle, -1 when unset
}

// ColInfo is sparse per-column metadata.
type ColInfo struct {
	Width       float64
	CustomWidth bool
	Hidden      bool
	Format      int // style handle, -1 when unset
}

// rowBuffer is the single materialized row of streaming mode. It is created
// lazily on the first write and merged into the grid whenever the active row
// index changes or streaming is turned off.
type rowBuffer struct {
	row          int
	cells        map[int]*Cell
	height       float64
	customHeight bool
	hidden       bool
	format       int
	dirty        bool
}

// Worksheet is a sparse cell grid with two write disciplines: direct
// (map-backed) and streaming (single active row buffer). See the package
// documentation for the mode contract.
//
// Worksheet is not safe for concurrent use.
type Worksheet struct {
	name string
	wb   *Workbook

	cells   map[int]map[int]*Cell // row → col → cell
	rowInfo map[int]*RowInfo
	colInfo map[int]*ColInfo
	tracker RangeTracker

	merges []Rect
	shared []SharedFormula

	streaming bool
	buf       *rowBuffer
}

func newWorksheet(wb *Workbook, name string) *Worksheet {
	return &Worksheet{
		name:    name,
		wb:      wb,
		cells:   make(map[int]map[int]*Cell),
		rowInfo: make(map[int]*RowInfo),
		colInfo: make(map[int]*ColInfo),
	}
}

// Name returns the worksheet name.
func (ws *Worksheet) Name() string { return ws.name }

// Tracker exposes the used-range tracker for inspection.
func (ws *Worksheet) Tracker() *RangeTracker { return &ws.tracker }

// UsedRange returns (maxRow, maxCol) of the occupied bounding box, or
// (-1, -1) when the sheet is empty.
func (ws *Worksheet) UsedRange() (maxRow, maxCol int) {
	return ws.tracker.UsedRange()
}

// SetOptimize switches between streaming (true) and standard (false) write
// modes. Enabling reserves a per-row capacity hint and moves no data;
// disabling flushes any pending row into the grid.
func (ws *Worksheet) SetOptimize(on bool) {
	if ws.streaming == on {
		return
	}
	if !on {
		ws.FlushCurrentRow()
	}
	ws.streaming = on
}

// IsOptimized reports whether streaming mode is active.
func (ws *Worksheet) IsOptimized() bool { return ws.streaming }

// FlushCurrentRow merges the buffered streaming row into the grid and
// destroys the buffer. It is idempotent: with no pending row, or an
// unmodified one, it is a no-op.
func (ws *Worksheet) FlushCurrentRow() {
	b := ws.buf
	ws.buf = nil
	if b == nil || !b.dirty {
		return
	}
	if len(b.cells) > 0 {
		row := ws.cells[b.row]
		if row == nil {
			row = make(map[int]*Cell, len(b.cells))
			ws.cells[b.row] = row
		}
		for col, c := range b.cells {
			row[col] = c
		}
	}
	if b.customHeight || b.hidden || b.format >= 0 {
		info := ws.rowInfoAt(b.row)
		if b.customHeight {
			info.Height = b.height
			info.CustomHeight = true
		}
		if b.hidden {
			info.Hidden = true
		}
		if b.format >= 0 {
			info.Format = b.format
		}
	}
}

// cellAt returns the writable cell slot for (row, col), creating it in the
// grid or the streaming row buffer as the mode dictates. In streaming mode a
// write to a new row implicitly flushes the previous one first.
func (ws *Worksheet) cellAt(row, col int) *Cell {
	if ws.streaming {
		if ws.buf != nil && ws.buf.row != row {
			ws.FlushCurrentRow()
		}
		if ws.buf == nil {
			hint := ws.wb.opts.StreamingRowCapacity
			ws.buf = &rowBuffer{
				row:    row,
				cells:  make(map[int]*Cell, hint),
				format: -1,
			}
		}
		ws.buf.dirty = true
		c := ws.buf.cells[col]
		if c == nil {
			// A revisited row may already hold this cell in the grid.
			// Seed the buffer from it so the flush merges rather than
			// clobbers partial updates.
			if r := ws.cells[row]; r != nil && r[col] != nil {
				cp := *r[col]
				c = &cp
			} else {
				c = newCell()
			}
			ws.buf.cells[col] = c
		}
		return c
	}
	r := ws.cells[row]
	if r == nil {
		r = make(map[int]*Cell)
		ws.cells[row] = r
	}
	c := r[col]
	if c == nil {
		c = newCell()
		r[col] = c
	}
	return c
}

// peek returns the stored cell at (row, col) or nil. The streaming buffer
// shadows the grid for its own row.
func (ws *Worksheet) peek(row, col int) *Cell {
	if ws.streaming && ws.buf != nil && ws.buf.row == row {
		if c, ok := ws.buf.cells[col]; ok {
			return c
		}
	}
	if r, ok := ws.cells[row]; ok {
		return r[col]
	}
	return nil
}

func checkCoord(row, col int) error {
	if row < 0 || col < 0 || row >= MaxRows || col >= MaxCols {
		return ErrInvalidCoordinate
	}
	return nil
}

func checkRect(minRow, minCol, maxRow, maxCol int) error {
	if err := checkCoord(minRow, minCol); err != nil {
		return err
	}
	if err := checkCoord(maxRow, maxCol); err != nil {
		return err
	}
	if minRow > maxRow || minCol > maxCol {
		return ErrInvalidRange
	}
	return nil
}

func (ws *Worksheet) write(row, col int, fn func(*Cell)) error {
	if err := checkCoord(row, col); err != nil {
		return err
	}
	ws.tracker.Update(row, col)
	fn(ws.cellAt(row, col))
	return nil
}

// internString pushes s through the document's shared-string table when
// shared-string mode is on, returning the handle or -1 in inline mode.
func (ws *Worksheet) internString(s string) int32 {
	if !ws.wb.opts.SharedStrings {
		return -1
	}
	return ws.wb.strings.AddString(s)
}

// WriteString stores text at (row, col).
func (ws *Worksheet) WriteString(row, col int, s string) error {
	if err := checkCoord(row, col); err != nil {
		return err
	}
	id := ws.internString(s)
	return ws.write(row, col, func(c *Cell) {
		c.Type = CellString
		c.Str = s
		c.SST = id
		c.Shared = -1
	})
}

// WriteNumber stores a number at (row, col).
func (ws *Worksheet) WriteNumber(row, col int, v float64) error {
	return ws.write(row, col, func(c *Cell) {
		c.Type = CellNumber
		c.Num = v
		c.Str = ""
		c.SST = -1
		c.Shared = -1
	})
}

// WriteBool stores a boolean at (row, col).
func (ws *Worksheet) WriteBool(row, col int, v bool) error {
	return ws.write(row, col, func(c *Cell) {
		c.Type = CellBool
		c.Bool = v
		c.Str = ""
		c.SST = -1
		c.Shared = -1
	})
}

// WriteFormula stores formula text at (row, col). The text is carried
// opaquely; nothing is evaluated.
func (ws *Worksheet) WriteFormula(row, col int, formula string) error {
	return ws.write(row, col, func(c *Cell) {
		c.Type = CellFormula
		c.Str = formula
		c.SST = -1
		c.Shared = -1
	})
}

// WriteURL stores a hyperlink at (row, col). The cell text is displayText
// when given, otherwise the URL itself.
func (ws *Worksheet) WriteURL(row, col int, url string, displayText ...string) error {
	text := url
	if len(displayText) > 0 && displayText[0] != "" {
		text = displayText[0]
	}
	if err := checkCoord(row, col); err != nil {
		return err
	}
	id := ws.internString(text)
	return ws.write(row, col, func(c *Cell) {
		c.Type = CellString
		c.Str = text
		c.SST = id
		c.Shared = -1
		c.Hyperlink = url
	})
}

// SetCellFormat attaches a style handle to (row, col), creating a
// format-only cell when the slot is empty. Formatting survives without a
// value: HasCellAt treats such cells as present.
func (ws *Worksheet) SetCellFormat(row, col, format int) error {
	return ws.write(row, col, func(c *Cell) {
		c.Format = format
	})
}

// ClearCell removes the cell at (row, col) and shrinks the used range with
// the tracker's best-effort heuristic.
func (ws *Worksheet) ClearCell(row, col int) {
	if checkCoord(row, col) != nil {
		return
	}
	if ws.streaming && ws.buf != nil && ws.buf.row == row {
		delete(ws.buf.cells, col)
	}
	if r, ok := ws.cells[row]; ok {
		delete(r, col)
		if len(r) == 0 {
			delete(ws.cells, row)
		}
	}
	ws.tracker.ShrinkFrom(row, col)
}

// GetCell returns a copy of the cell at (row, col), or the empty sentinel
// when absent. Presence is checked separately with HasCellAt.
func (ws *Worksheet) GetCell(row, col int) Cell {
	if c := ws.peek(row, col); c != nil {
		return *c
	}
	return EmptyCell()
}

// HasCellAt reports whether (row, col) holds a cell. A cell carrying only
// format metadata counts as present.
func (ws *Worksheet) HasCellAt(row, col int) bool {
	return ws.peek(row, col) != nil
}

// CreateSharedFormula registers one shared formula over the rectangle
// (firstRow, firstCol)-(lastRow, lastCol). The formula text is stored only
// in the anchor (top-left) cell; every other cell in the rectangle stores a
// back-reference index. Returns the shared index, or -1 when the rectangle
// is invalid or the formula is empty.
func (ws *Worksheet) CreateSharedFormula(firstRow, firstCol, lastRow, lastCol int, formula string) int32 {
	if formula == "" {
		return -1
	}
	if checkRect(firstRow, firstCol, lastRow, lastCol) != nil {
		return -1
	}
	idx := int32(len(ws.shared))
	ws.shared = append(ws.shared, SharedFormula{
		Rect:    Rect{MinRow: firstRow, MinCol: firstCol, MaxRow: lastRow, MaxCol: lastCol},
		Formula: formula,
	})
	for row := firstRow; row <= lastRow; row++ {
		for col := firstCol; col <= lastCol; col++ {
			anchor := row == firstRow && col == firstCol
			ws.write(row, col, func(c *Cell) {
				if anchor {
					c.Type = CellFormula
					c.Str = formula
				} else {
					c.Type = CellSharedRef
					c.Str = ""
				}
				c.Shared = idx
				c.SST = -1
			})
		}
	}
	return idx
}

// SharedFormulas returns the registered shared-formula records, dead slots
// included so cell back-references stay meaningful.
func (ws *Worksheet) SharedFormulas() []SharedFormula { return ws.shared }

// MergeRange records a merged-cell rectangle. Single-cell and inverted
// rectangles are rejected.
func (ws *Worksheet) MergeRange(firstRow, firstCol, lastRow, lastCol int) error {
	if err := checkRect(firstRow, firstCol, lastRow, lastCol); err != nil {
		return err
	}
	if firstRow == lastRow && firstCol == lastCol {
		return ErrInvalidRange
	}
	ws.merges = append(ws.merges, Rect{
		MinRow: firstRow, MinCol: firstCol, MaxRow: lastRow, MaxCol: lastCol,
	})
	return nil
}

// MergeRanges returns the recorded merge rectangles.
func (ws *Worksheet) MergeRanges() []Rect { return ws.merges }

// SetRowHeight sets an explicit row height. On the actively buffered
// streaming row the height rides in the buffer and lands with the flush.
func (ws *Worksheet) SetRowHeight(row int, height float64) error {
	if err := checkCoord(row, 0); err != nil {
		return err
	}
	if ws.streaming && ws.buf != nil && ws.buf.row == row {
		ws.buf.height = height
		ws.buf.customHeight = true
		ws.buf.dirty = true
		return nil
	}
	info := ws.rowInfoAt(row)
	info.Height = height
	info.CustomHeight = true
	return nil
}

// SetRowHidden hides or shows a row.
func (ws *Worksheet) SetRowHidden(row int, hidden bool) error {
	if err := checkCoord(row, 0); err != nil {
		return err
	}
	if ws.streaming && ws.buf != nil && ws.buf.row == row {
		ws.buf.hidden = hidden
		ws.buf.dirty = true
		return nil
	}
	ws.rowInfoAt(row).Hidden = hidden
	return nil
}

// SetRowFormat attaches a style handle to an entire row.
func (ws *Worksheet) SetRowFormat(row, format int) error {
	if err := checkCoord(row, 0); err != nil {
		return err
	}
	if ws.streaming && ws.buf != nil && ws.buf.row == row {
		ws.buf.format = format
		ws.buf.dirty = true
		return nil
	}
	ws.rowInfoAt(row).Format = format
	return nil
}

// SetColWidth sets an explicit column width.
func (ws *Worksheet) SetColWidth(col int, width float64) error {
	if err := checkCoord(0, col); err != nil {
		return err
	}
	info := ws.colInfoAt(col)
	info.Width = width
	info.CustomWidth = true
	return nil
}

// SetColHidden hides or shows a column.
func (ws *Worksheet) SetColHidden(col int, hidden bool) error {
	if err := checkCoord(0, col); err != nil {
		return err
	}
	ws.colInfoAt(col).Hidden = hidden
	return nil
}

// SetColFormat attaches a style handle to an entire column.
func (ws *Worksheet) SetColFormat(col, format int) error {
	if err := checkCoord(0, col); err != nil {
		return err
	}
	ws.colInfoAt(col).Format = format
	return nil
}

func (ws *Worksheet) rowInfoAt(row int) *RowInfo {
	info := ws.rowInfo[row]
	if info == nil {
		info = &RowInfo{Format: -1}
		ws.rowInfo[row] = info
	}
	return info
}

func (ws *Worksheet) colInfoAt(col int) *ColInfo {
	info := ws.colInfo[col]
	if info == nil {
		info = &ColInfo{Format: -1}
		ws.colInfo[col] = info
	}
	return info
}

// CellAt pairs a column index with a cell copy for row iteration.
type CellAt struct {
	Col  int
	Cell Cell
}

// RowView is one grid row in serialization order.
type RowView struct {
	Index int
	Info  *RowInfo // nil when the row has no metadata
	Cells []CellAt // sorted by column
}

// Rows iterates the grid in row-major order, metadata-only rows included.
// The streaming buffer is not visited; callers flush pending state first.
func (ws *Worksheet) Rows() iter.Seq[RowView] {
	return func(yield func(RowView) bool) {
		rows := make([]int, 0, len(ws.cells)+len(ws.rowInfo))
		seen := make(map[int]struct{}, len(ws.cells))
		for r := range ws.cells {
			rows = append(rows, r)
			seen[r] = struct{}{}
		}
		for r := range ws.rowInfo {
			if _, ok := seen[r]; !ok {
				rows = append(rows, r)
			}
		}
		sort.Ints(rows)
		for _, r := range rows {
			view := RowView{Index: r, Info: ws.rowInfo[r]}
			if rowMap := ws.cells[r]; len(rowMap) > 0 {
				cols := make([]int, 0, len(rowMap))
				for c := range rowMap {
					cols = append(cols, c)
				}
				sort.Ints(cols)
				view.Cells = make([]CellAt, len(cols))
				for i, c := range cols {
					view.Cells[i] = CellAt{Col: c, Cell: *rowMap[c]}
				}
			}
			if !yield(view) {
				return
			}
		}
	}
}

// ColView pairs a column index with its metadata.
type ColView struct {
	Index int
	Info  ColInfo
}

// Cols returns column metadata sorted by index.
func (ws *Worksheet) Cols() []ColView {
	cols := make([]int, 0, len(ws.colInfo))
	for c := range ws.colInfo {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	out := make([]ColView, len(cols))
	for i, c := range cols {
		out[i] = ColView{Index: c, Info: *ws.colInfo[c]}
	}
	return out
}

// Hyperlink is one link cell, in serialization order.
type Hyperlink struct {
	Row int
	Col int
	URL string
}

// Hyperlinks returns every link cell in row-major order. The streaming
// buffer is included so presence checks see pending writes.
func (ws *Worksheet) Hyperlinks() []Hyperlink {
	var links []Hyperlink
	for view := range ws.Rows() {
		for _, ca := range view.Cells {
			if ca.Cell.Hyperlink != "" {
				links = append(links, Hyperlink{Row: view.Index, Col: ca.Col, URL: ca.Cell.Hyperlink})
			}
		}
	}
	if ws.streaming && ws.buf != nil {
		for col, c := range ws.buf.cells {
			if c.Hyperlink != "" {
				links = append(links, Hyperlink{Row: ws.buf.row, Col: col, URL: c.Hyperlink})
			}
		}
		sort.Slice(links, func(i, j int) bool {
			if links[i].Row != links[j].Row {
				return links[i].Row < links[j].Row
			}
			return links[i].Col < links[j].Col
		})
	}
	return links
}

// HasHyperlinks reports whether any cell carries a link target.
func (ws *Worksheet) HasHyperlinks() bool {
	for _, rowMap := range ws.cells {
		for _, c := range rowMap {
			if c.Hyperlink != "" {
				return true
			}
		}
	}
	if ws.streaming && ws.buf != nil {
		for _, c := range ws.buf.cells {
			if c.Hyperlink != "" {
				return true
			}
		}
	}
	return false
}
