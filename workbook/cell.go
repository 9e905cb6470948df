package workbook

// CellType tags the value a Cell holds.
type CellType uint8

const (
	// CellEmpty is a cell with no value; it may still carry a format.
	CellEmpty CellType = iota
	// CellString holds text in Str.
	CellString
	// CellNumber holds a float64 in Num.
	CellNumber
	// CellBool holds a boolean in Bool.
	CellBool
	// CellFormula holds formula text in Str. When Shared >= 0 the cell is
	// the anchor of that shared-formula rectangle.
	CellFormula
	// CellSharedRef is a non-anchor member of a shared-formula rectangle;
	// Shared indexes the owning record, Str is empty.
	CellSharedRef
)

// Cell is one slot of the sparse grid. A cell is exclusively owned by its
// (row, col) slot; reads hand out value copies.
type Cell struct {
	Type CellType
	Str  string
	Num  float64
	Bool bool

	// Shared is the shared-formula index, -1 when not part of one.
	Shared int32
	// SST is the shared-string handle of Str, -1 when inline or unset.
	SST int32
	// Format is the style handle, -1 when the cell has no explicit format.
	Format int
	// Hyperlink is the target URL, empty when the cell is not a link.
	Hyperlink string
}

// EmptyCell returns the sentinel returned by reads of absent cells.
func EmptyCell() Cell {
	return Cell{Shared: -1, SST: -1, Format: -1}
}

func newCell() *Cell {
	c := EmptyCell()
	return &c
}

// HasValue reports whether the cell carries a value as opposed to being a
// format-only placeholder.
func (c *Cell) HasValue() bool { return c.Type != CellEmpty }

// CellRefPos names one grid position, as returned by search operations.
type CellRefPos struct {
	Row int
	Col int
}

// Rect is a 0-based inclusive rectangle, used for merge ranges and
// shared-formula extents.
type Rect struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// Ref renders the rectangle as an "A1:C4"-style reference.
func (r Rect) Ref() string {
	return RangeRef(r.MinRow, r.MinCol, r.MaxRow, r.MaxCol)
}

// contains reports whether (row, col) lies inside the rectangle.
func (r Rect) contains(row, col int) bool {
	return row >= r.MinRow && row <= r.MaxRow && col >= r.MinCol && col <= r.MaxCol
}

// SharedFormula is one registered shared-formula record. Dead records keep
// their slot so cell back-references stay stable.
type SharedFormula struct {
	Rect    Rect
	Formula string
	Dead    bool
}
