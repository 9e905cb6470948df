package workbook

import "strconv"

// RangeTracker incrementally maintains the occupied bounding box of a grid.
// The empty state is distinct from a single occupied cell at (0,0). Once
// non-empty, bounds only grow through Update/UpdateRange; Reset and the
// best-effort ShrinkFrom are the only ways bounds contract.
//
// RangeTracker is not safe for concurrent use.
type RangeTracker struct {
	minRow, maxRow int
	minCol, maxCol int
	hasData        bool
}

// Update widens the box to include (row, col). Negative coordinates are
// ignored. The first valid update sets both min and max to the point.
func (t *RangeTracker) Update(row, col int) {
	if row < 0 || col < 0 {
		return
	}
	if !t.hasData {
		t.minRow, t.maxRow = row, row
		t.minCol, t.maxCol = col, col
		t.hasData = true
		return
	}
	if row < t.minRow {
		t.minRow = row
	}
	if row > t.maxRow {
		t.maxRow = row
	}
	if col < t.minCol {
		t.minCol = col
	}
	if col > t.maxCol {
		t.maxCol = col
	}
}

// UpdateRange merges another box into the tracked one. Inverted or negative
// boxes are ignored.
func (t *RangeTracker) UpdateRange(minRow, maxRow, minCol, maxCol int) {
	if minRow < 0 || minCol < 0 || minRow > maxRow || minCol > maxCol {
		return
	}
	t.Update(minRow, minCol)
	t.Update(maxRow, maxCol)
}

// IsEmpty reports whether no valid point was ever tracked.
func (t *RangeTracker) IsEmpty() bool { return !t.hasData }

// UsedRange returns (maxRow, maxCol), or (-1, -1) when empty.
func (t *RangeTracker) UsedRange() (maxRow, maxCol int) {
	if !t.hasData {
		return -1, -1
	}
	return t.maxRow, t.maxCol
}

// UsedRangeFull returns (minRow, maxRow, minCol, maxCol), all -1 when empty.
func (t *RangeTracker) UsedRangeFull() (minRow, maxRow, minCol, maxCol int) {
	if !t.hasData {
		return -1, -1, -1, -1
	}
	return t.minRow, t.maxRow, t.minCol, t.maxCol
}

// TopLeftRef returns the top-left corner as a 1-based A1 reference, or ""
// when empty.
func (t *RangeTracker) TopLeftRef() string {
	if !t.hasData {
		return ""
	}
	return CellRef(t.minRow, t.minCol)
}

// BottomRightRef returns the bottom-right corner as a 1-based A1 reference,
// or "" when empty.
func (t *RangeTracker) BottomRightRef() string {
	if !t.hasData {
		return ""
	}
	return CellRef(t.maxRow, t.maxCol)
}

// RangeRef returns the box as an "A1:C4"-style reference. A single-cell box
// renders without the colon; the empty box renders as "".
func (t *RangeTracker) RangeRef() string {
	if !t.hasData {
		return ""
	}
	tl := CellRef(t.minRow, t.minCol)
	if t.minRow == t.maxRow && t.minCol == t.maxCol {
		return tl
	}
	return tl + ":" + CellRef(t.maxRow, t.maxCol)
}

// Reset returns the tracker to the empty state.
func (t *RangeTracker) Reset() {
	t.hasData = false
	t.minRow, t.maxRow, t.minCol, t.maxCol = 0, 0, 0, 0
}

// ShrinkFrom contracts a bound when the removed point (row, col) sits
// exactly on it and the box still has width in that dimension. If the box
// degenerates it resets to empty.
//
// This is a best-effort heuristic, not a recomputation: after arbitrary
// deletions the box may stay larger than the true occupied set. Callers must
// not rely on it for correctness.
func (t *RangeTracker) ShrinkFrom(row, col int) {
	if !t.hasData {
		return
	}
	if row == t.minRow && t.minRow < t.maxRow {
		t.minRow++
	} else if row == t.maxRow && t.maxRow > t.minRow {
		t.maxRow--
	}
	if col == t.minCol && t.minCol < t.maxCol {
		t.minCol++
	} else if col == t.maxCol && t.maxCol > t.minCol {
		t.maxCol--
	}
	if row == t.minRow && row == t.maxRow && col == t.minCol && col == t.maxCol {
		t.Reset()
	}
}

// ColumnName renders a 0-based column index as spreadsheet letters: 0→"A",
// 25→"Z", 26→"AA". Base-26 with no zero digit. Negative input returns "".
func ColumnName(col int) string {
	if col < 0 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte('A' + col%26)
		col = col/26 - 1
		if col < 0 {
			break
		}
	}
	return string(buf[i:])
}

// CellRef renders 0-based (row, col) as a 1-based A1-style reference.
func CellRef(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row+1)
}

// RangeRef renders a 0-based rectangle as an "A1:C4"-style reference.
func RangeRef(minRow, minCol, maxRow, maxCol int) string {
	return CellRef(minRow, minCol) + ":" + CellRef(maxRow, maxCol)
}
