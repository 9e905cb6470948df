package pack

import (
	"bytes"
	"fmt"

	"github.com/quillsoft/sheetpack/internal/xmlenc"
	"github.com/quillsoft/sheetpack/workbook/styles"
)

// stylesGenerator renders the styles part from live repository state. The
// repository stores whole descriptors; this generator decomposes them into
// the part's deduplicated component lists (number formats, fonts, fills,
// borders) and one cellXfs record per handle, so a cell's style attribute is
// exactly its repository handle.
type stylesGenerator struct{}

func (g *stylesGenerator) PartNames(*Context) []string {
	return []string{PartStyles}
}

// firstCustomNumFmtID is where custom number-format ids start; smaller ids
// are reserved for builtins.
const firstCustomNumFmtID = 164

type componentList struct {
	xml   []string
	index map[string]int
}

// intern stores one rendered component, deduplicating by its XML form, and
// returns its list index.
func (l *componentList) intern(rendered string) int {
	if id, ok := l.index[rendered]; ok {
		return id
	}
	if l.index == nil {
		l.index = make(map[string]int)
	}
	id := len(l.xml)
	l.xml = append(l.xml, rendered)
	l.index[rendered] = id
	return id
}

func (g *stylesGenerator) Generate(name string, ctx *Context, sink Sink) error {
	if name != PartStyles {
		return fmt.Errorf("%w: %q", ErrBadPartName, name)
	}
	formats := ctx.Workbook.Styles().Formats()

	var fonts, fills, borders componentList
	// The part requires the two placeholder fills at indexes 0 and 1.
	fills.intern(`<fill><patternFill patternType="none"/></fill>`)
	fills.intern(`<fill><patternFill patternType="gray125"/></fill>`)

	numFmtIDs := make(map[string]int)
	var numFmtOrder []string

	type xfRecord struct {
		numFmtID, fontID, fillID, borderID int
		align                              styles.Alignment
	}
	xfs := make([]xfRecord, len(formats))
	for i, f := range formats {
		numFmtID := f.NumFmtID
		if f.NumFmt != "" {
			id, ok := numFmtIDs[f.NumFmt]
			if !ok {
				id = firstCustomNumFmtID + len(numFmtOrder)
				numFmtIDs[f.NumFmt] = id
				numFmtOrder = append(numFmtOrder, f.NumFmt)
			}
			numFmtID = id
		}
		xfs[i] = xfRecord{
			numFmtID: numFmtID,
			fontID:   fonts.intern(renderFont(f.Font)),
			fillID:   fills.intern(renderFill(f.Fill)),
			borderID: borders.intern(renderBorder(f.Border)),
			align:    f.Align,
		}
	}

	var b bytes.Buffer
	b.WriteString(xmlenc.Header)
	b.WriteString(`<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)

	if len(numFmtOrder) > 0 {
		fmt.Fprintf(&b, `<numFmts count="%d">`, len(numFmtOrder))
		for _, code := range numFmtOrder {
			fmt.Fprintf(&b, `<numFmt numFmtId="%d" formatCode="%s"/>`,
				numFmtIDs[code], xmlenc.EscapeAttr(code))
		}
		b.WriteString(`</numFmts>`)
	}

	writeList := func(tag string, l componentList) {
		fmt.Fprintf(&b, `<%s count="%d">`, tag, len(l.xml))
		for _, x := range l.xml {
			b.WriteString(x)
		}
		fmt.Fprintf(&b, `</%s>`, tag)
	}
	writeList("fonts", fonts)
	writeList("fills", fills)
	writeList("borders", borders)

	b.WriteString(`<cellStyleXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0"/></cellStyleXfs>`)

	fmt.Fprintf(&b, `<cellXfs count="%d">`, len(xfs))
	for _, xf := range xfs {
		fmt.Fprintf(&b, `<xf numFmtId="%d" fontId="%d" fillId="%d" borderId="%d" xfId="0"`,
			xf.numFmtID, xf.fontID, xf.fillID, xf.borderID)
		if xf.numFmtID != 0 {
			b.WriteString(` applyNumberFormat="1"`)
		}
		if xf.fontID != 0 {
			b.WriteString(` applyFont="1"`)
		}
		if xf.fillID != 0 {
			b.WriteString(` applyFill="1"`)
		}
		if xf.borderID != 0 {
			b.WriteString(` applyBorder="1"`)
		}
		if xf.align != (styles.Alignment{}) {
			b.WriteString(` applyAlignment="1"><alignment`)
			if xf.align.Horizontal != "" {
				fmt.Fprintf(&b, ` horizontal="%s"`, xf.align.Horizontal)
			}
			if xf.align.Vertical != "" {
				fmt.Fprintf(&b, ` vertical="%s"`, xf.align.Vertical)
			}
			if xf.align.WrapText {
				b.WriteString(` wrapText="1"`)
			}
			b.WriteString(`/></xf>`)
		} else {
			b.WriteString(`/>`)
		}
	}
	b.WriteString(`</cellXfs>`)

	b.WriteString(`<cellStyles count="1"><cellStyle name="Normal" xfId="0" builtinId="0"/></cellStyles>`)
	b.WriteString(`</styleSheet>`)
	return sink.WritePart(name, b.Bytes())
}

func renderFont(f styles.Font) string {
	var b bytes.Buffer
	b.WriteString(`<font>`)
	if f.Bold {
		b.WriteString(`<b/>`)
	}
	if f.Italic {
		b.WriteString(`<i/>`)
	}
	if f.Underline {
		b.WriteString(`<u/>`)
	}
	if f.Strike {
		b.WriteString(`<strike/>`)
	}
	if f.Size > 0 {
		fmt.Fprintf(&b, `<sz val="%s"/>`, xmlenc.Float(f.Size))
	}
	if f.Color != "" {
		fmt.Fprintf(&b, `<color rgb="%s"/>`, f.Color)
	}
	if f.Name != "" {
		fmt.Fprintf(&b, `<name val="%s"/>`, xmlenc.EscapeAttr(f.Name))
	}
	b.WriteString(`</font>`)
	return b.String()
}

func renderFill(f styles.Fill) string {
	switch f.Pattern {
	case styles.PatternNone:
		return `<fill><patternFill patternType="none"/></fill>`
	case styles.PatternGray125:
		return `<fill><patternFill patternType="gray125"/></fill>`
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, `<fill><patternFill patternType="%s">`, f.Pattern.Name())
	if f.Color != "" {
		fmt.Fprintf(&b, `<fgColor rgb="%s"/>`, f.Color)
	}
	b.WriteString(`<bgColor indexed="64"/></patternFill></fill>`)
	return b.String()
}

func renderBorder(bd styles.Border) string {
	var b bytes.Buffer
	b.WriteString(`<border>`)
	edge := func(tag string, s styles.BorderStyle) {
		if s == styles.BorderNone {
			fmt.Fprintf(&b, `<%s/>`, tag)
			return
		}
		fmt.Fprintf(&b, `<%s style="%s">`, tag, s.Name())
		if bd.Color != "" {
			fmt.Fprintf(&b, `<color rgb="%s"/>`, bd.Color)
		} else {
			b.WriteString(`<color auto="1"/>`)
		}
		fmt.Fprintf(&b, `</%s>`, tag)
	}
	edge("left", bd.Left)
	edge("right", bd.Right)
	edge("top", bd.Top)
	edge("bottom", bd.Bottom)
	b.WriteString(`<diagonal/>`)
	b.WriteString(`</border>`)
	return b.String()
}
