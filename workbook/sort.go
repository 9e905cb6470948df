package workbook

import (
	"sort"
	"strings"
)

// SortRange reorders the rows of the rectangle by the values in keyCol.
// Cells outside the rectangle's columns do not move with their row.
//
// Comparator rules: numbers compare natively against numbers and strings
// against strings; a number always sorts before a string, in both
// directions. Empty cells go to the far end for ascending sorts and to the
// near end for descending ones — only the empty-cell placement flips with
// the direction, the number-before-string rule does not. The asymmetry is
// intentional.
func (ws *Worksheet) SortRange(firstRow, firstCol, lastRow, lastCol, keyCol int, ascending bool) error {
	if err := checkRect(firstRow, firstCol, lastRow, lastCol); err != nil {
		return err
	}
	if keyCol < firstCol || keyCol > lastCol {
		return ErrInvalidRange
	}
	ws.FlushCurrentRow()

	// Extract the row span into a temporary ordered structure.
	span := make([]map[int]*Cell, lastRow-firstRow+1)
	for i := range span {
		row := map[int]*Cell{}
		if rowMap := ws.cells[firstRow+i]; rowMap != nil {
			for c := firstCol; c <= lastCol; c++ {
				if cell, ok := rowMap[c]; ok {
					row[c] = cell
					delete(rowMap, c)
				}
			}
		}
		span[i] = row
	}

	sort.SliceStable(span, func(i, j int) bool {
		return sortLess(span[i][keyCol], span[j][keyCol], ascending)
	})

	// Rewrite the span in sorted order.
	for i, row := range span {
		if len(row) == 0 {
			continue
		}
		r := firstRow + i
		rowMap := ws.cells[r]
		if rowMap == nil {
			rowMap = make(map[int]*Cell, len(row))
			ws.cells[r] = rowMap
		}
		for c, cell := range row {
			rowMap[c] = cell
		}
	}
	for r := firstRow; r <= lastRow; r++ {
		if rowMap, ok := ws.cells[r]; ok && len(rowMap) == 0 {
			delete(ws.cells, r)
		}
	}
	return nil
}

func sortLess(a, b *Cell, ascending bool) bool {
	aEmpty := a == nil || a.Type == CellEmpty
	bEmpty := b == nil || b.Type == CellEmpty
	if aEmpty || bEmpty {
		if aEmpty == bEmpty {
			return false
		}
		// Non-empty first when ascending, empty first when descending.
		if ascending {
			return !aEmpty
		}
		return aEmpty
	}

	aNum := a.Type == CellNumber
	bNum := b.Type == CellNumber
	if aNum != bNum {
		// Numbers sort before strings regardless of direction.
		return aNum
	}
	if aNum {
		if a.Num == b.Num {
			return false
		}
		if ascending {
			return a.Num < b.Num
		}
		return a.Num > b.Num
	}

	as, bs := sortText(a), sortText(b)
	cmp := strings.Compare(as, bs)
	if cmp == 0 {
		return false
	}
	if ascending {
		return cmp < 0
	}
	return cmp > 0
}

// sortText renders non-numeric cells for comparison. Booleans and formulas
// compare by their text form.
func sortText(c *Cell) string {
	if c.Type == CellBool {
		if c.Bool {
			return "TRUE"
		}
		return "FALSE"
	}
	return c.Str
}
