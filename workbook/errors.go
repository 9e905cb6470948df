package workbook

import "errors"

var (
	// ErrInvalidCoordinate indicates a negative or out-of-grid row or column.
	ErrInvalidCoordinate = errors.New("workbook: invalid coordinate")
	// ErrInvalidRange indicates an inverted or out-of-bounds rectangle.
	ErrInvalidRange = errors.New("workbook: invalid range")
	// ErrSheetExists indicates a duplicate worksheet name.
	ErrSheetExists = errors.New("workbook: sheet name already in use")
	// ErrInvalidName indicates an empty or unusable worksheet name.
	ErrInvalidName = errors.New("workbook: invalid sheet name")
)

// Grid limits of the target format. Coordinates are 0-based, so valid rows
// are [0, MaxRows) and valid columns [0, MaxCols).
const (
	MaxRows = 1048576
	MaxCols = 16384
)
