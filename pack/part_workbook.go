package pack

import (
	"bytes"
	"fmt"

	"github.com/quillsoft/sheetpack/internal/xmlenc"
)

// workbookGenerator emits the workbook descriptor and its relationship
// part. Relationship ids are positional: sheets take rId1..rIdN, followed by
// theme, styles and — when applicable — sharedStrings.
type workbookGenerator struct{}

func (g *workbookGenerator) PartNames(*Context) []string {
	return []string{PartWorkbook, PartWorkbookRels}
}

func (g *workbookGenerator) Generate(name string, ctx *Context, sink Sink) error {
	switch name {
	case PartWorkbook:
		return sink.WritePart(name, g.workbook(ctx))
	case PartWorkbookRels:
		return sink.WritePart(name, g.rels(ctx))
	}
	return fmt.Errorf("%w: %q", ErrBadPartName, name)
}

func (g *workbookGenerator) workbook(ctx *Context) []byte {
	var b bytes.Buffer
	b.WriteString(xmlenc.Header)
	b.WriteString(`<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`)
	b.WriteString(`<sheets>`)
	for i, ws := range ctx.Workbook.Sheets() {
		fmt.Fprintf(&b, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`,
			xmlenc.EscapeAttr(ws.Name()), i+1, i+1)
	}
	b.WriteString(`</sheets>`)
	b.WriteString(`</workbook>`)
	return b.Bytes()
}

func (g *workbookGenerator) rels(ctx *Context) []byte {
	var b bytes.Buffer
	b.WriteString(xmlenc.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	rid := 0
	rel := func(relType, target string) {
		rid++
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s" Target="%s"/>`, rid, relType, target)
	}
	for i := 1; i <= ctx.sheetCount(); i++ {
		rel(relWorksheet, fmt.Sprintf("worksheets/sheet%d.xml", i))
	}
	rel(relTheme, "theme/theme1.xml")
	rel(relStyles, "styles.xml")
	if ctx.Workbook.Options().SharedStrings {
		rel(relSharedStrings, "sharedStrings.xml")
	}
	b.WriteString(`</Relationships>`)
	return b.Bytes()
}
