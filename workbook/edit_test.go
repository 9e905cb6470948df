package workbook

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorksheet_InsertRowsShiftsCells(t *testing.T) {
	ws := testSheet(t)
	require.NoError(t, ws.WriteNumber(0, 0, 0))
	require.NoError(t, ws.WriteNumber(1, 0, 1))
	require.NoError(t, ws.WriteNumber(2, 0, 2))

	require.NoError(t, ws.InsertRows(1, 2))

	require.Equal(t, 0.0, ws.GetCell(0, 0).Num)
	require.False(t, ws.HasCellAt(1, 0))
	require.False(t, ws.HasCellAt(2, 0))
	require.Equal(t, 1.0, ws.GetCell(3, 0).Num)
	require.Equal(t, 2.0, ws.GetCell(4, 0).Num)

	maxRow, _ := ws.UsedRange()
	require.Equal(t, 4, maxRow)
}

func TestWorksheet_DeleteRowsDropsSpan(t *testing.T) {
	ws := testSheet(t)
	for r := 0; r < 5; r++ {
		require.NoError(t, ws.WriteNumber(r, 0, float64(r)))
	}

	require.NoError(t, ws.DeleteRows(1, 2))

	require.Equal(t, 0.0, ws.GetCell(0, 0).Num)
	require.Equal(t, 3.0, ws.GetCell(1, 0).Num)
	require.Equal(t, 4.0, ws.GetCell(2, 0).Num)
	require.False(t, ws.HasCellAt(3, 0))

	maxRow, _ := ws.UsedRange()
	require.Equal(t, 2, maxRow)
}

func TestWorksheet_InsertThenDeleteRestores(t *testing.T) {
	ws := testSheet(t)
	require.NoError(t, ws.WriteString(0, 0, "top"))
	require.NoError(t, ws.WriteNumber(4, 2, 42))
	require.NoError(t, ws.WriteBool(7, 1, true))
	wantRange := ws.Tracker().RangeRef()

	require.NoError(t, ws.InsertRows(3, 2))
	require.NoError(t, ws.DeleteRows(3, 2))

	require.Equal(t, "top", ws.GetCell(0, 0).Str)
	require.Equal(t, 42.0, ws.GetCell(4, 2).Num)
	require.True(t, ws.GetCell(7, 1).Bool)
	require.Equal(t, wantRange, ws.Tracker().RangeRef())
}

func TestWorksheet_InsertDeleteCols(t *testing.T) {
	ws := testSheet(t)
	require.NoError(t, ws.WriteNumber(0, 0, 0))
	require.NoError(t, ws.WriteNumber(0, 1, 1))
	require.NoError(t, ws.WriteNumber(0, 2, 2))

	require.NoError(t, ws.InsertCols(1, 1))
	require.Equal(t, 1.0, ws.GetCell(0, 2).Num)
	require.Equal(t, 2.0, ws.GetCell(0, 3).Num)

	require.NoError(t, ws.DeleteCols(0, 2))
	require.Equal(t, 1.0, ws.GetCell(0, 0).Num)
	require.Equal(t, 2.0, ws.GetCell(0, 1).Num)
}

func TestWorksheet_EditValidation(t *testing.T) {
	ws := testSheet(t)

	require.ErrorIs(t, ws.InsertRows(-1, 1), ErrInvalidCoordinate)
	require.ErrorIs(t, ws.DeleteRows(0, 0), ErrInvalidRange)
	require.ErrorIs(t, ws.InsertCols(MaxCols, 1), ErrInvalidCoordinate)
	require.ErrorIs(t, ws.DeleteCols(0, -3), ErrInvalidRange)
}

func TestWorksheet_InsertRejectsShiftPastLimit(t *testing.T) {
	ws := testSheet(t)
	require.NoError(t, ws.WriteNumber(MaxRows-1, 0, 1))
	require.NoError(t, ws.WriteNumber(0, MaxCols-1, 2))

	require.ErrorIs(t, ws.InsertRows(0, 1), ErrInvalidRange)
	require.ErrorIs(t, ws.InsertCols(0, 1), ErrInvalidRange)

	// Cells stayed put.
	require.Equal(t, 1.0, ws.GetCell(MaxRows-1, 0).Num)
	require.Equal(t, 2.0, ws.GetCell(0, MaxCols-1).Num)
}

func TestWorksheet_InsertBelowOccupiedAreaAllowed(t *testing.T) {
	ws := testSheet(t)
	require.NoError(t, ws.WriteNumber(5, 5, 1))

	// Pivot past the occupied area shifts nothing, so any count fits.
	require.NoError(t, ws.InsertRows(6, MaxRows-7))
	require.NoError(t, ws.InsertCols(6, MaxCols-7))
	require.Equal(t, 1.0, ws.GetCell(5, 5).Num)
}

func TestWorksheet_InsertFitsExactlyAtLimit(t *testing.T) {
	ws := testSheet(t)
	require.NoError(t, ws.WriteNumber(MaxRows-3, 0, 7))

	require.NoError(t, ws.InsertRows(0, 2))
	require.Equal(t, 7.0, ws.GetCell(MaxRows-1, 0).Num)

	require.ErrorIs(t, ws.InsertRows(0, 1), ErrInvalidRange)
}

func TestWorksheet_EditShiftsMerges(t *testing.T) {
	ws := testSheet(t)
	require.NoError(t, ws.MergeRange(2, 0, 3, 1))
	require.NoError(t, ws.MergeRange(5, 0, 6, 1))

	require.NoError(t, ws.InsertRows(0, 1))
	require.Equal(t, "A4:B5", ws.MergeRanges()[0].Ref())

	// Deleting rows through a merge removes it; the untouched one shifts.
	require.NoError(t, ws.DeleteRows(3, 2))
	merges := ws.MergeRanges()
	require.Len(t, merges, 1)
	require.Equal(t, "A5:B6", merges[0].Ref())
}

func TestWorksheet_EditDemotesClippedSharedFormula(t *testing.T) {
	ws := testSheet(t)
	idx := ws.CreateSharedFormula(1, 0, 3, 0, "B1+1")
	require.Equal(t, int32(0), idx)

	// Deleting the anchor row kills the record; survivors keep the
	// formula as plain cells.
	require.NoError(t, ws.DeleteRows(1, 1))

	require.True(t, ws.SharedFormulas()[0].Dead)
	c := ws.GetCell(1, 0) // formerly row 2
	require.Equal(t, CellFormula, c.Type)
	require.Equal(t, "B1+1", c.Str)
	require.Equal(t, int32(-1), c.Shared)
}

func TestWorksheet_EditShiftsIntactSharedFormula(t *testing.T) {
	ws := testSheet(t)
	ws.CreateSharedFormula(2, 1, 4, 1, "A1")

	require.NoError(t, ws.InsertRows(0, 3))

	rec := ws.SharedFormulas()[0]
	require.False(t, rec.Dead)
	require.Equal(t, "B6:B8", rec.Rect.Ref())
	require.Equal(t, CellFormula, ws.GetCell(5, 1).Type)
	require.Equal(t, CellSharedRef, ws.GetCell(6, 1).Type)
}

func TestWorksheet_EditRowMetadataMoves(t *testing.T) {
	ws := testSheet(t)
	require.NoError(t, ws.SetRowHeight(2, 25))
	require.NoError(t, ws.SetColWidth(1, 18))

	require.NoError(t, ws.InsertRows(0, 2))
	require.Nil(t, ws.rowInfo[2])
	require.Equal(t, 25.0, ws.rowInfo[4].Height)

	require.NoError(t, ws.InsertCols(0, 1))
	require.Equal(t, 18.0, ws.colInfo[2].Width)
}
