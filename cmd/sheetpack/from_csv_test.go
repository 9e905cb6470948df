package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestInputEncoding(t *testing.T) {
	enc, err := inputEncoding("utf8")
	require.NoError(t, err)
	require.Nil(t, enc)

	enc, err = inputEncoding("latin1")
	require.NoError(t, err)
	require.Equal(t, charmap.ISO8859_1, enc)

	_, err = inputEncoding("ebcdic")
	require.Error(t, err)
}

func TestFieldDelimiter(t *testing.T) {
	d, err := fieldDelimiter("tab")
	require.NoError(t, err)
	require.Equal(t, '\t', d)

	_, err = fieldDelimiter("pipe")
	require.Error(t, err)
}

func TestFromCSVConversion(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.csv")
	outPath := filepath.Join(dir, "out.xlsx")
	csv := "name,count,active\nwidget,12,TRUE\nsprocket,3.5,FALSE\n"
	require.NoError(t, os.WriteFile(inPath, []byte(csv), 0o644))

	defer func() {
		csvSheetName = "Sheet1"
		csvEncoding = "utf8"
		csvDelimiter = "comma"
		csvHeader = false
		csvInlineStr = false
		quiet = false
	}()
	csvSheetName = "Data"
	csvHeader = true
	quiet = true

	require.NoError(t, runFromCSV(fromCSVCmd, []string{inPath, outPath}))

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "count", "active"}, rows[0])
	assert.Equal(t, []string{"widget", "12", "TRUE"}, rows[1])
	assert.Equal(t, []string{"sprocket", "3.5", "FALSE"}, rows[2])

	// Header row carries a non-default style.
	style, err := f.GetCellStyle("Data", "A1")
	require.NoError(t, err)
	assert.NotZero(t, style)
}
