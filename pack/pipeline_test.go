package pack

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillsoft/sheetpack/workbook"
	"github.com/quillsoft/sheetpack/workbook/styles"
)

func buildTwoSheetWorkbook(t *testing.T, opts *workbook.Options) *workbook.Workbook {
	t.Helper()
	wb := workbook.New(opts)
	s1, err := wb.AddSheet("Data")
	require.NoError(t, err)
	require.NoError(t, s1.WriteString(0, 0, "name"))
	require.NoError(t, s1.WriteNumber(1, 0, 42))
	s2, err := wb.AddSheet("Links")
	require.NoError(t, err)
	require.NoError(t, s2.WriteURL(0, 0, "https://example.com", "home"))
	return wb
}

func TestPipelinePartNames(t *testing.T) {
	wb := buildTwoSheetWorkbook(t, nil)
	names := NewPipeline().PartNames(NewContext(wb))

	want := []string{
		PartContentTypes,
		PartRootRels,
		PartDocPropsCore,
		PartDocPropsApp,
		PartWorkbook,
		PartWorkbookRels,
		PartTheme,
		PartStyles,
		PartSharedStrings,
		"xl/worksheets/sheet1.xml",
		"xl/worksheets/sheet2.xml",
		"xl/worksheets/_rels/sheet2.xml.rels",
	}
	require.Equal(t, want, names)
}

func TestPipelineNoSharedStringsPart(t *testing.T) {
	opts := workbook.DefaultOptions()
	opts.SharedStrings = false
	wb := buildTwoSheetWorkbook(t, opts)

	names := NewPipeline().PartNames(NewContext(wb))
	require.NotContains(t, names, PartSharedStrings)

	sink := NewMemSink()
	require.NoError(t, NewPipeline().GenerateAll(NewContext(wb), sink))
	assert.NotContains(t, string(sink.Part(PartContentTypes)), "sharedStrings")
}

func TestPipelineGenerateAll(t *testing.T) {
	wb := buildTwoSheetWorkbook(t, nil)
	p := NewPipeline()
	ctx := NewContext(wb)

	sink := NewMemSink()
	require.NoError(t, p.GenerateAll(ctx, sink))
	require.Equal(t, p.PartNames(ctx), sink.Names())
	for _, name := range sink.Names() {
		require.NotEmpty(t, sink.Part(name), "part %s", name)
	}
}

func TestPipelineGenerateSubset(t *testing.T) {
	wb := buildTwoSheetWorkbook(t, nil)
	sink := NewMemSink()
	err := NewPipeline().GenerateParts(
		[]string{PartStyles, "xl/worksheets/sheet1.xml"},
		NewContext(wb), sink)
	require.NoError(t, err)
	require.Equal(t, []string{PartStyles, "xl/worksheets/sheet1.xml"}, sink.Names())
}

func TestPipelineRejectsUnknownParts(t *testing.T) {
	wb := buildTwoSheetWorkbook(t, nil)
	p := NewPipeline()
	ctx := NewContext(wb)

	bad := []string{
		"xl/worksheets/sheet3.xml",    // out of range
		"xl/worksheets/sheet02.xml",   // non-canonical digits
		"xl/worksheets/sheet.xml",     // no index
		"xl/worksheets/sheet-1.xml",   // negative
		"xl/worksheets/sheet1.xml.gz", // wrong suffix
		"xl/nonsense.xml",
		"xl/worksheets/_rels/sheet1.xml.rels", // sheet 1 has no links
	}
	for _, name := range bad {
		err := p.GenerateParts([]string{name}, ctx, NewMemSink())
		require.ErrorIs(t, err, ErrUnknownPart, "name %s", name)
	}
}

func TestSheetRelsOnlyForLinkedSheets(t *testing.T) {
	wb := buildTwoSheetWorkbook(t, nil)
	names := NewPipeline().PartNames(NewContext(wb))
	require.NotContains(t, names, "xl/worksheets/_rels/sheet1.xml.rels")
	require.Contains(t, names, "xl/worksheets/_rels/sheet2.xml.rels")

	sink := NewMemSink()
	require.NoError(t, NewPipeline().GenerateAll(NewContext(wb), sink))
	rels := string(sink.Part("xl/worksheets/_rels/sheet2.xml.rels"))
	assert.Contains(t, rels, `Id="rId1"`)
	assert.Contains(t, rels, `Target="https://example.com"`)
	assert.Contains(t, rels, `TargetMode="External"`)

	sheet2 := string(sink.Part("xl/worksheets/sheet2.xml"))
	assert.Contains(t, sheet2, `<hyperlink ref="A1" r:id="rId1"/>`)
}

func TestWorksheetPartInlineStrings(t *testing.T) {
	opts := workbook.DefaultOptions()
	opts.SharedStrings = false
	wb := workbook.New(opts)
	ws, err := wb.AddSheet("Sheet1")
	require.NoError(t, err)
	require.NoError(t, ws.WriteString(0, 0, "plain"))
	require.NoError(t, ws.WriteString(0, 1, "  padded  "))
	require.NoError(t, ws.WriteNumber(1, 0, 3.5))
	require.NoError(t, ws.WriteBool(1, 1, true))
	require.NoError(t, ws.WriteFormula(2, 0, "SUM(A2:B2)"))

	sink := NewMemSink()
	require.NoError(t, NewPipeline().GenerateAll(NewContext(wb), sink))
	xml := string(sink.Part("xl/worksheets/sheet1.xml"))

	assert.Contains(t, xml, `<dimension ref="A1:B3"/>`)
	assert.Contains(t, xml, `<c r="A1" t="inlineStr"><is><t>plain</t></is></c>`)
	assert.Contains(t, xml, `<c r="B1" t="inlineStr"><is><t xml:space="preserve">  padded  </t></is></c>`)
	assert.Contains(t, xml, `<c r="A2"><v>3.5</v></c>`)
	assert.Contains(t, xml, `<c r="B2" t="b"><v>1</v></c>`)
	assert.Contains(t, xml, `<c r="A3"><f>SUM(A2:B2)</f></c>`)
}

func TestWorksheetPartSharedStrings(t *testing.T) {
	wb := workbook.New(nil)
	ws, err := wb.AddSheet("Sheet1")
	require.NoError(t, err)
	require.NoError(t, ws.WriteString(0, 0, "alpha"))
	require.NoError(t, ws.WriteString(1, 0, "beta"))
	require.NoError(t, ws.WriteString(2, 0, "alpha"))

	sink := NewMemSink()
	require.NoError(t, NewPipeline().GenerateAll(NewContext(wb), sink))

	xml := string(sink.Part("xl/worksheets/sheet1.xml"))
	assert.Contains(t, xml, `<c r="A1" t="s"><v>0</v></c>`)
	assert.Contains(t, xml, `<c r="A2" t="s"><v>1</v></c>`)
	assert.Contains(t, xml, `<c r="A3" t="s"><v>0</v></c>`)

	sst := string(sink.Part(PartSharedStrings))
	assert.Contains(t, sst, `count="3"`)
	assert.Contains(t, sst, `uniqueCount="2"`)
	assert.Contains(t, sst, `<si><t>alpha</t></si>`)
	assert.Equal(t, 1, strings.Count(sst, "alpha"))
}

func TestWorksheetPartSharedFormula(t *testing.T) {
	wb := workbook.New(nil)
	ws, err := wb.AddSheet("Sheet1")
	require.NoError(t, err)
	si := ws.CreateSharedFormula(1, 1, 3, 5, "A1*2")
	require.GreaterOrEqual(t, si, int32(0))

	sink := NewMemSink()
	require.NoError(t, NewPipeline().GenerateAll(NewContext(wb), sink))
	xml := string(sink.Part("xl/worksheets/sheet1.xml"))

	assert.Contains(t, xml, `<c r="B2"><f t="shared" ref="B2:F4" si="0">A1*2</f></c>`)
	assert.Contains(t, xml, `<c r="C2"><f t="shared" si="0"/></c>`)
	assert.Contains(t, xml, `<c r="F4"><f t="shared" si="0"/></c>`)
	// Exactly one anchor carries the formula text.
	assert.Equal(t, 1, strings.Count(xml, "A1*2"))
}

func TestWorksheetPartRowAndColMetadata(t *testing.T) {
	wb := workbook.New(nil)
	ws, err := wb.AddSheet("Sheet1")
	require.NoError(t, err)
	require.NoError(t, ws.WriteNumber(0, 0, 1))
	require.NoError(t, ws.SetRowHeight(0, 30))
	require.NoError(t, ws.SetRowHidden(2, true))
	require.NoError(t, ws.SetColWidth(1, 18.5))
	require.NoError(t, ws.SetColHidden(3, true))
	require.NoError(t, ws.MergeRange(0, 0, 1, 2))

	sink := NewMemSink()
	require.NoError(t, NewPipeline().GenerateAll(NewContext(wb), sink))
	xml := string(sink.Part("xl/worksheets/sheet1.xml"))

	assert.Contains(t, xml, `<row r="1" ht="30" customHeight="1">`)
	assert.Contains(t, xml, `<row r="3" hidden="1"/>`)
	assert.Contains(t, xml, `<col min="2" max="2" width="18.5" customWidth="1"/>`)
	assert.Contains(t, xml, `<col min="4" max="4" hidden="1"/>`)
	assert.Contains(t, xml, `<mergeCells count="1"><mergeCell ref="A1:C2"/></mergeCells>`)
}

func TestWorksheetPartFlushesStreamingBuffer(t *testing.T) {
	wb := workbook.New(nil)
	ws, err := wb.AddSheet("Sheet1")
	require.NoError(t, err)
	ws.SetOptimize(true)
	require.NoError(t, ws.WriteNumber(0, 0, 1))
	require.NoError(t, ws.WriteNumber(1, 0, 2))
	// Row 1 is still sitting in the buffer when generation starts.

	sink := NewMemSink()
	require.NoError(t, NewPipeline().GenerateAll(NewContext(wb), sink))
	xml := string(sink.Part("xl/worksheets/sheet1.xml"))
	assert.Contains(t, xml, `<c r="A1"><v>1</v></c>`)
	assert.Contains(t, xml, `<c r="A2"><v>2</v></c>`)
}

func TestWorkbookPartAndRels(t *testing.T) {
	wb := buildTwoSheetWorkbook(t, nil)
	sink := NewMemSink()
	require.NoError(t, NewPipeline().GenerateAll(NewContext(wb), sink))

	wbXML := string(sink.Part(PartWorkbook))
	assert.Contains(t, wbXML, `<sheet name="Data" sheetId="1" r:id="rId1"/>`)
	assert.Contains(t, wbXML, `<sheet name="Links" sheetId="2" r:id="rId2"/>`)

	rels := string(sink.Part(PartWorkbookRels))
	assert.Contains(t, rels, `Id="rId1"`)
	assert.Contains(t, rels, `Target="worksheets/sheet1.xml"`)
	assert.Contains(t, rels, `Target="worksheets/sheet2.xml"`)
	assert.Contains(t, rels, `Target="sharedStrings.xml"`)
}

func TestStylesPart(t *testing.T) {
	wb := workbook.New(nil)
	ws, err := wb.AddSheet("Sheet1")
	require.NoError(t, err)

	bold := styles.DefaultFormat()
	bold.Font.Bold = true
	money := styles.DefaultFormat()
	money.NumFmt = "#,##0.00"
	hBold := wb.Styles().AddFormat(bold)
	hMoney := wb.Styles().AddFormat(money)
	require.NoError(t, ws.WriteNumber(0, 0, 1))
	require.NoError(t, ws.SetCellFormat(0, 0, hBold))
	require.NoError(t, ws.WriteNumber(0, 1, 1234.5))
	require.NoError(t, ws.SetCellFormat(0, 1, hMoney))

	sink := NewMemSink()
	require.NoError(t, NewPipeline().GenerateAll(NewContext(wb), sink))

	xml := string(sink.Part(PartStyles))
	// Custom number formats start at id 164.
	assert.Contains(t, xml, `<numFmt numFmtId="164" formatCode="#,##0.00"/>`)
	assert.Contains(t, xml, `<fills count="2">`)
	assert.Contains(t, xml, `patternType="gray125"`)
	assert.Contains(t, xml, `<cellXfs count="3">`)
	assert.Contains(t, xml, `applyFont="1"`)
	assert.Contains(t, xml, `applyNumberFormat="1"`)

	// Cell style attributes are repository handles.
	sheet := string(sink.Part("xl/worksheets/sheet1.xml"))
	assert.Contains(t, sheet, fmt.Sprintf(`<c r="A1" s="%d">`, hBold))
	assert.Contains(t, sheet, fmt.Sprintf(`<c r="B1" s="%d">`, hMoney))
}
