package pack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/quillsoft/sheetpack/workbook"
)

// Read the generated package back with an independent implementation to
// catch structural mistakes a string assertion would miss.
func TestWriteReadBack(t *testing.T) {
	wb := workbook.New(nil)
	ws, err := wb.AddSheet("Report")
	require.NoError(t, err)
	require.NoError(t, ws.WriteString(0, 0, "item"))
	require.NoError(t, ws.WriteString(0, 1, "total"))
	require.NoError(t, ws.WriteString(1, 0, "widgets"))
	require.NoError(t, ws.WriteNumber(1, 1, 12.5))
	require.NoError(t, ws.WriteBool(2, 0, true))
	require.NoError(t, ws.WriteFormula(2, 1, "SUM(B2:B2)"))
	require.NoError(t, ws.WriteURL(3, 0, "https://example.com/widgets", "catalog"))
	require.NoError(t, ws.MergeRange(4, 0, 4, 1))

	ws2, err := wb.AddSheet("Empty")
	require.NoError(t, err)
	_ = ws2

	var buf bytes.Buffer
	require.NoError(t, Write(wb, &buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Report", "Empty"}, f.GetSheetList())

	get := func(cell string) string {
		v, err := f.GetCellValue("Report", cell)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "item", get("A1"))
	assert.Equal(t, "widgets", get("A2"))
	assert.Equal(t, "12.5", get("B2"))
	assert.Equal(t, "TRUE", get("A3"))
	assert.Equal(t, "catalog", get("A4"))

	formula, err := f.GetCellFormula("Report", "B3")
	require.NoError(t, err)
	assert.Equal(t, "SUM(B2:B2)", formula)

	merges, err := f.GetMergeCells("Report")
	require.NoError(t, err)
	require.Len(t, merges, 1)
	assert.Equal(t, "A5:B5", merges[0].GetStartAxis()+":"+merges[0].GetEndAxis())

	hasLink, target, err := f.GetCellHyperLink("Report", "A4")
	require.NoError(t, err)
	assert.True(t, hasLink)
	assert.Equal(t, "https://example.com/widgets", target)
}

// Inline-string mode must read back identically to shared-string mode.
func TestWriteReadBackInlineStrings(t *testing.T) {
	opts := workbook.DefaultOptions()
	opts.SharedStrings = false
	wb := workbook.New(opts)
	ws, err := wb.AddSheet("Sheet1")
	require.NoError(t, err)
	require.NoError(t, ws.WriteString(0, 0, "inline <value> & more"))

	var buf bytes.Buffer
	require.NoError(t, Write(wb, &buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "inline <value> & more", v)
}

func TestWriteReadBackStreaming(t *testing.T) {
	wb := workbook.New(nil)
	ws, err := wb.AddSheet("Big")
	require.NoError(t, err)
	ws.SetOptimize(true)
	for r := 0; r < 200; r++ {
		require.NoError(t, ws.WriteNumber(r, 0, float64(r)))
		require.NoError(t, ws.WriteString(r, 1, "row"))
	}

	var buf bytes.Buffer
	require.NoError(t, Write(wb, &buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Big")
	require.NoError(t, err)
	require.Len(t, rows, 200)
	assert.Equal(t, []string{"0", "row"}, rows[0])
	assert.Equal(t, []string{"199", "row"}, rows[199])
}
