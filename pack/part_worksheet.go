package pack

import (
	"bytes"
	"fmt"

	"github.com/quillsoft/sheetpack/internal/xmlenc"
	"github.com/quillsoft/sheetpack/workbook"
)

// worksheetGenerator renders one part per worksheet through the sink's
// chunked interface: header and column metadata first, then one chunk per
// row, so a streamed million-row sheet never materializes as one buffer.
type worksheetGenerator struct{}

func (g *worksheetGenerator) PartNames(ctx *Context) []string {
	names := make([]string, ctx.sheetCount())
	for i := range names {
		names[i] = SheetPartName(i + 1)
	}
	return names
}

func (g *worksheetGenerator) Generate(name string, ctx *Context, sink Sink) error {
	index, err := parseSheetIndex(name, sheetPartPrefix, sheetPartSuffix, ctx.sheetCount())
	if err != nil {
		return err
	}
	ws := ctx.Workbook.Sheet(index - 1)

	// Pending streaming state must land in the grid before the walk.
	ws.FlushCurrentRow()

	if err := sink.OpenPart(name); err != nil {
		return err
	}

	var b bytes.Buffer
	b.WriteString(xmlenc.Header)
	b.WriteString(`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`)
	dim := ws.Tracker().RangeRef()
	if dim == "" {
		dim = "A1"
	}
	fmt.Fprintf(&b, `<dimension ref="%s"/>`, dim)
	b.WriteString(`<sheetViews><sheetView workbookViewId="0"/></sheetViews>`)
	b.WriteString(`<sheetFormatPr defaultRowHeight="15"/>`)
	writeCols(&b, ws)
	b.WriteString(`<sheetData>`)
	if err := sink.WriteChunk(b.Bytes()); err != nil {
		return err
	}

	useShared := ctx.Workbook.Options().SharedStrings
	for view := range ws.Rows() {
		b.Reset()
		writeRow(&b, ws, view, useShared)
		if err := sink.WriteChunk(b.Bytes()); err != nil {
			return err
		}
	}

	b.Reset()
	b.WriteString(`</sheetData>`)
	writeMerges(&b, ws)
	writeHyperlinks(&b, ws)
	b.WriteString(`</worksheet>`)
	if err := sink.WriteChunk(b.Bytes()); err != nil {
		return err
	}
	return sink.ClosePart()
}

func writeCols(b *bytes.Buffer, ws *workbook.Worksheet) {
	cols := ws.Cols()
	if len(cols) == 0 {
		return
	}
	b.WriteString(`<cols>`)
	for _, cv := range cols {
		fmt.Fprintf(b, `<col min="%d" max="%d"`, cv.Index+1, cv.Index+1)
		if cv.Info.CustomWidth {
			fmt.Fprintf(b, ` width="%s" customWidth="1"`, xmlenc.Float(cv.Info.Width))
		}
		if cv.Info.Hidden {
			b.WriteString(` hidden="1"`)
		}
		if cv.Info.Format >= 0 {
			fmt.Fprintf(b, ` style="%d"`, cv.Info.Format)
		}
		b.WriteString(`/>`)
	}
	b.WriteString(`</cols>`)
}

func writeRow(b *bytes.Buffer, ws *workbook.Worksheet, view workbook.RowView, useShared bool) {
	fmt.Fprintf(b, `<row r="%d"`, view.Index+1)
	if info := view.Info; info != nil {
		if info.CustomHeight {
			fmt.Fprintf(b, ` ht="%s" customHeight="1"`, xmlenc.Float(info.Height))
		}
		if info.Hidden {
			b.WriteString(` hidden="1"`)
		}
		if info.Format >= 0 {
			fmt.Fprintf(b, ` s="%d" customFormat="1"`, info.Format)
		}
	}
	if len(view.Cells) == 0 {
		b.WriteString(`/>`)
		return
	}
	b.WriteString(`>`)
	for _, ca := range view.Cells {
		writeCell(b, ws, view.Index, ca.Col, &ca.Cell, useShared)
	}
	b.WriteString(`</row>`)
}

func writeCell(b *bytes.Buffer, ws *workbook.Worksheet, row, col int, c *workbook.Cell, useShared bool) {
	fmt.Fprintf(b, `<c r="%s"`, workbook.CellRef(row, col))
	if c.Format >= 0 {
		fmt.Fprintf(b, ` s="%d"`, c.Format)
	}
	switch c.Type {
	case workbook.CellEmpty:
		b.WriteString(`/>`)
		return
	case workbook.CellString:
		if useShared && c.SST >= 0 {
			fmt.Fprintf(b, ` t="s"><v>%d</v></c>`, c.SST)
			return
		}
		text := xmlenc.EscapeText(c.Str)
		if xmlenc.NeedsSpacePreserve(c.Str) {
			fmt.Fprintf(b, ` t="inlineStr"><is><t xml:space="preserve">%s</t></is></c>`, text)
		} else {
			fmt.Fprintf(b, ` t="inlineStr"><is><t>%s</t></is></c>`, text)
		}
		return
	case workbook.CellNumber:
		fmt.Fprintf(b, `><v>%s</v></c>`, xmlenc.Float(c.Num))
		return
	case workbook.CellBool:
		v := "0"
		if c.Bool {
			v = "1"
		}
		fmt.Fprintf(b, ` t="b"><v>%s</v></c>`, v)
		return
	case workbook.CellFormula:
		if c.Shared >= 0 {
			// Shared-formula anchor: full text plus the rectangle.
			rec := ws.SharedFormulas()[c.Shared]
			fmt.Fprintf(b, `><f t="shared" ref="%s" si="%d">%s</f></c>`,
				rec.Rect.Ref(), c.Shared, xmlenc.EscapeText(c.Str))
			return
		}
		fmt.Fprintf(b, `><f>%s</f></c>`, xmlenc.EscapeText(c.Str))
		return
	case workbook.CellSharedRef:
		fmt.Fprintf(b, `><f t="shared" si="%d"/></c>`, c.Shared)
		return
	}
	b.WriteString(`/>`)
}

func writeMerges(b *bytes.Buffer, ws *workbook.Worksheet) {
	merges := ws.MergeRanges()
	if len(merges) == 0 {
		return
	}
	fmt.Fprintf(b, `<mergeCells count="%d">`, len(merges))
	for _, m := range merges {
		fmt.Fprintf(b, `<mergeCell ref="%s"/>`, m.Ref())
	}
	b.WriteString(`</mergeCells>`)
}

func writeHyperlinks(b *bytes.Buffer, ws *workbook.Worksheet) {
	links := ws.Hyperlinks()
	if len(links) == 0 {
		return
	}
	b.WriteString(`<hyperlinks>`)
	for i, l := range links {
		fmt.Fprintf(b, `<hyperlink ref="%s" r:id="rId%d"/>`, workbook.CellRef(l.Row, l.Col), i+1)
	}
	b.WriteString(`</hyperlinks>`)
}

// sheetRelsGenerator emits one relationship part per worksheet that holds
// at least one hyperlink. Sheets without links produce no part at all
// rather than an empty file.
type sheetRelsGenerator struct{}

func (g *sheetRelsGenerator) PartNames(ctx *Context) []string {
	var names []string
	for i, ws := range ctx.Workbook.Sheets() {
		if ws.HasHyperlinks() {
			names = append(names, SheetRelsPartName(i+1))
		}
	}
	return names
}

func (g *sheetRelsGenerator) Generate(name string, ctx *Context, sink Sink) error {
	index, err := parseSheetIndex(name, sheetRelsPartPrefix, sheetRelsPartSuffix, ctx.sheetCount())
	if err != nil {
		return err
	}
	ws := ctx.Workbook.Sheet(index - 1)
	links := ws.Hyperlinks()
	if len(links) == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPart, name)
	}

	var b bytes.Buffer
	b.WriteString(xmlenc.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i, l := range links {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s" Target="%s" TargetMode="External"/>`,
			i+1, relHyperlink, xmlenc.EscapeAttr(l.URL))
	}
	b.WriteString(`</Relationships>`)
	return sink.WritePart(name, b.Bytes())
}
