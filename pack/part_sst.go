package pack

import (
	"bytes"
	"fmt"

	"github.com/quillsoft/sheetpack/internal/xmlenc"
)

// sharedStringsGenerator renders the shared-string table. The whole part is
// omitted when shared-string mode is off. Hole slots reserved by forced
// handles serialize as empty entries so positional identity holds.
type sharedStringsGenerator struct{}

func (g *sharedStringsGenerator) PartNames(ctx *Context) []string {
	if !ctx.Workbook.Options().SharedStrings {
		return nil
	}
	return []string{PartSharedStrings}
}

func (g *sharedStringsGenerator) Generate(name string, ctx *Context, sink Sink) error {
	if name != PartSharedStrings {
		return fmt.Errorf("%w: %q", ErrBadPartName, name)
	}
	table := ctx.Workbook.Strings()

	var b bytes.Buffer
	b.WriteString(xmlenc.Header)
	fmt.Fprintf(&b, `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">`,
		table.Count(), table.Size())
	for id := int32(0); int(id) < table.Size(); id++ {
		if !table.IsUsed(id) {
			b.WriteString(`<si><t/></si>`)
			continue
		}
		s := table.GetString(id)
		if xmlenc.NeedsSpacePreserve(s) {
			fmt.Fprintf(&b, `<si><t xml:space="preserve">%s</t></si>`, xmlenc.EscapeText(s))
		} else {
			fmt.Fprintf(&b, `<si><t>%s</t></si>`, xmlenc.EscapeText(s))
		}
	}
	b.WriteString(`</sst>`)
	return sink.WritePart(name, b.Bytes())
}
