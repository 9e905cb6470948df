package workbook

// Structural edits rebuild the whole grid mapping with shifted coordinates.
// O(cells) per edit; acceptable because edits are rare next to cell writes.

// shiftIndex moves one coordinate across an insert or delete at pivot `at`
// spanning `count` slots. dropped is true when the coordinate fell strictly
// inside a deleted span.
func shiftIndex(i, at, count int, deleting bool) (shifted int, dropped bool) {
	if deleting {
		if i >= at+count {
			return i - count, false
		}
		if i >= at {
			return 0, true
		}
		return i, false
	}
	if i >= at {
		return i + count, false
	}
	return i, false
}

// shiftSpan moves an inclusive [min, max] span. dropped is true when the
// span overlaps a deleted range or would end up inverted.
func shiftSpan(min, max, at, count int, deleting bool) (newMin, newMax int, dropped bool) {
	if deleting && min < at+count && max >= at {
		return 0, 0, true
	}
	newMin, _ = shiftIndex(min, at, count, deleting)
	newMax, _ = shiftIndex(max, at, count, deleting)
	if newMin > newMax {
		return 0, 0, true
	}
	return newMin, newMax, false
}

func checkEdit(at, count, limit int) error {
	if at < 0 || at >= limit {
		return ErrInvalidCoordinate
	}
	if count <= 0 {
		return ErrInvalidRange
	}
	return nil
}

// maxOccupiedRow is the highest row index carrying cells, row metadata,
// a merge, or a shared-formula extent, or -1 on an empty sheet.
func (ws *Worksheet) maxOccupiedRow() int {
	max := -1
	for r := range ws.cells {
		if r > max {
			max = r
		}
	}
	for r := range ws.rowInfo {
		if r > max {
			max = r
		}
	}
	for _, m := range ws.merges {
		if m.MaxRow > max {
			max = m.MaxRow
		}
	}
	for _, sf := range ws.shared {
		if !sf.Dead && sf.Rect.MaxRow > max {
			max = sf.Rect.MaxRow
		}
	}
	return max
}

// maxOccupiedCol is the column-axis counterpart of maxOccupiedRow.
func (ws *Worksheet) maxOccupiedCol() int {
	max := -1
	for _, rowMap := range ws.cells {
		for c := range rowMap {
			if c > max {
				max = c
			}
		}
	}
	for c := range ws.colInfo {
		if c > max {
			max = c
		}
	}
	for _, m := range ws.merges {
		if m.MaxCol > max {
			max = m.MaxCol
		}
	}
	for _, sf := range ws.shared {
		if !sf.Dead && sf.Rect.MaxCol > max {
			max = sf.Rect.MaxCol
		}
	}
	return max
}

// InsertRows shifts every row at or after `at` down by `count`. The edit is
// rejected when a shifted row would land beyond MaxRows.
func (ws *Worksheet) InsertRows(at, count int) error {
	if err := checkEdit(at, count, MaxRows); err != nil {
		return err
	}
	ws.FlushCurrentRow()
	if m := ws.maxOccupiedRow(); m >= at && m+count >= MaxRows {
		return ErrInvalidRange
	}
	ws.shiftRows(at, count, false)
	return nil
}

// DeleteRows removes rows [at, at+count); rows after the span shift up.
func (ws *Worksheet) DeleteRows(at, count int) error {
	if err := checkEdit(at, count, MaxRows); err != nil {
		return err
	}
	ws.shiftRows(at, count, true)
	return nil
}

// InsertCols shifts every column at or after `at` right by `count`. The edit
// is rejected when a shifted column would land beyond MaxCols.
func (ws *Worksheet) InsertCols(at, count int) error {
	if err := checkEdit(at, count, MaxCols); err != nil {
		return err
	}
	ws.FlushCurrentRow()
	if m := ws.maxOccupiedCol(); m >= at && m+count >= MaxCols {
		return ErrInvalidRange
	}
	ws.shiftCols(at, count, false)
	return nil
}

// DeleteCols removes columns [at, at+count); columns after the span shift
// left.
func (ws *Worksheet) DeleteCols(at, count int) error {
	if err := checkEdit(at, count, MaxCols); err != nil {
		return err
	}
	ws.shiftCols(at, count, true)
	return nil
}

func (ws *Worksheet) shiftRows(at, count int, deleting bool) {
	ws.FlushCurrentRow()

	cells := make(map[int]map[int]*Cell, len(ws.cells))
	for r, rowMap := range ws.cells {
		nr, dropped := shiftIndex(r, at, count, deleting)
		if dropped {
			continue
		}
		cells[nr] = rowMap
	}
	ws.cells = cells

	rowInfo := make(map[int]*RowInfo, len(ws.rowInfo))
	for r, info := range ws.rowInfo {
		nr, dropped := shiftIndex(r, at, count, deleting)
		if dropped {
			continue
		}
		rowInfo[nr] = info
	}
	ws.rowInfo = rowInfo

	ws.shiftRects(at, count, deleting, true)
	ws.recomputeRange()
}

func (ws *Worksheet) shiftCols(at, count int, deleting bool) {
	ws.FlushCurrentRow()

	for r, rowMap := range ws.cells {
		next := make(map[int]*Cell, len(rowMap))
		for c, cell := range rowMap {
			nc, dropped := shiftIndex(c, at, count, deleting)
			if dropped {
				continue
			}
			next[nc] = cell
		}
		if len(next) == 0 {
			delete(ws.cells, r)
			continue
		}
		ws.cells[r] = next
	}

	colInfo := make(map[int]*ColInfo, len(ws.colInfo))
	for c, info := range ws.colInfo {
		nc, dropped := shiftIndex(c, at, count, deleting)
		if dropped {
			continue
		}
		colInfo[nc] = info
	}
	ws.colInfo = colInfo

	ws.shiftRects(at, count, deleting, false)
	ws.recomputeRange()
}

// shiftRects moves merge ranges and shared-formula rectangles the same way
// cells move. Rectangles that invert or overlap a deleted span are removed;
// a removed shared formula demotes its surviving cells to plain formulas.
func (ws *Worksheet) shiftRects(at, count int, deleting, rowAxis bool) {
	kept := ws.merges[:0]
	for _, m := range ws.merges {
		nm, dropped := shiftRect(m, at, count, deleting, rowAxis)
		if dropped {
			continue
		}
		kept = append(kept, nm)
	}
	ws.merges = kept

	for i := range ws.shared {
		sf := &ws.shared[i]
		if sf.Dead {
			continue
		}
		nr, dropped := shiftRect(sf.Rect, at, count, deleting, rowAxis)
		if dropped {
			sf.Dead = true
			ws.demoteShared(int32(i), sf.Formula)
			continue
		}
		sf.Rect = nr
	}
}

func shiftRect(r Rect, at, count int, deleting, rowAxis bool) (Rect, bool) {
	if rowAxis {
		minRow, maxRow, dropped := shiftSpan(r.MinRow, r.MaxRow, at, count, deleting)
		if dropped {
			return Rect{}, true
		}
		r.MinRow, r.MaxRow = minRow, maxRow
		return r, false
	}
	minCol, maxCol, dropped := shiftSpan(r.MinCol, r.MaxCol, at, count, deleting)
	if dropped {
		return Rect{}, true
	}
	r.MinCol, r.MaxCol = minCol, maxCol
	return r, false
}

// demoteShared turns the surviving member cells of a dead shared-formula
// record into plain formula cells carrying the anchor's formula text.
func (ws *Worksheet) demoteShared(idx int32, formula string) {
	for _, rowMap := range ws.cells {
		for _, c := range rowMap {
			if c.Shared != idx {
				continue
			}
			if c.Type == CellSharedRef {
				c.Type = CellFormula
				c.Str = formula
			}
			c.Shared = -1
		}
	}
}

// recomputeRange rebuilds the used-range tracker from the grid. Structural
// edits invalidate the monotonic bounds, so this is a full recomputation,
// unlike the ShrinkFrom heuristic.
func (ws *Worksheet) recomputeRange() {
	ws.tracker.Reset()
	for r, rowMap := range ws.cells {
		for c := range rowMap {
			ws.tracker.Update(r, c)
		}
	}
}
