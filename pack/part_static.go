package pack

import (
	"bytes"
	"fmt"
	"time"

	"github.com/quillsoft/sheetpack/internal/xmlenc"
)

// Content types and relationship types of the package vocabulary.
const (
	ctRels          = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML           = "application/xml"
	ctWorkbook      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ctWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ctStyles        = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ctSharedStrings = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	ctTheme         = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctCoreProps     = "application/vnd.openxmlformats-package.core-properties+xml"
	ctAppProps      = "application/vnd.openxmlformats-officedocument.extended-properties+xml"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relAppProps       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relWorksheet      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	relTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relSharedStrings  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings"
	relHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// contentTypesGenerator emits the manifest mapping every part to its
// content type.
type contentTypesGenerator struct{}

func (g *contentTypesGenerator) PartNames(*Context) []string {
	return []string{PartContentTypes}
}

func (g *contentTypesGenerator) Generate(name string, ctx *Context, sink Sink) error {
	if name != PartContentTypes {
		return fmt.Errorf("%w: %q", ErrBadPartName, name)
	}
	var b bytes.Buffer
	b.WriteString(xmlenc.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	fmt.Fprintf(&b, `<Default Extension="rels" ContentType="%s"/>`, ctRels)
	fmt.Fprintf(&b, `<Default Extension="xml" ContentType="%s"/>`, ctXML)
	override := func(part, ct string) {
		fmt.Fprintf(&b, `<Override PartName="/%s" ContentType="%s"/>`, part, ct)
	}
	override(PartWorkbook, ctWorkbook)
	for i := 1; i <= ctx.sheetCount(); i++ {
		override(SheetPartName(i), ctWorksheet)
	}
	override(PartTheme, ctTheme)
	override(PartStyles, ctStyles)
	if ctx.Workbook.Options().SharedStrings {
		override(PartSharedStrings, ctSharedStrings)
	}
	override(PartDocPropsCore, ctCoreProps)
	override(PartDocPropsApp, ctAppProps)
	b.WriteString(`</Types>`)
	return sink.WritePart(name, b.Bytes())
}

// rootRelsGenerator emits the package-level relationship part.
type rootRelsGenerator struct{}

func (g *rootRelsGenerator) PartNames(*Context) []string {
	return []string{PartRootRels}
}

func (g *rootRelsGenerator) Generate(name string, ctx *Context, sink Sink) error {
	if name != PartRootRels {
		return fmt.Errorf("%w: %q", ErrBadPartName, name)
	}
	var b bytes.Buffer
	b.WriteString(xmlenc.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	fmt.Fprintf(&b, `<Relationship Id="rId1" Type="%s" Target="%s"/>`, relOfficeDocument, PartWorkbook)
	fmt.Fprintf(&b, `<Relationship Id="rId2" Type="%s" Target="%s"/>`, relCoreProps, PartDocPropsCore)
	fmt.Fprintf(&b, `<Relationship Id="rId3" Type="%s" Target="%s"/>`, relAppProps, PartDocPropsApp)
	b.WriteString(`</Relationships>`)
	return sink.WritePart(name, b.Bytes())
}

// docPropsGenerator emits the two document-metadata parts.
type docPropsGenerator struct{}

func (g *docPropsGenerator) PartNames(*Context) []string {
	return []string{PartDocPropsCore, PartDocPropsApp}
}

func (g *docPropsGenerator) Generate(name string, ctx *Context, sink Sink) error {
	switch name {
	case PartDocPropsCore:
		return sink.WritePart(name, g.core(ctx))
	case PartDocPropsApp:
		return sink.WritePart(name, g.app(ctx))
	}
	return fmt.Errorf("%w: %q", ErrBadPartName, name)
}

func (g *docPropsGenerator) core(ctx *Context) []byte {
	props := ctx.Workbook.Options().Properties
	created := props.Created
	if created.IsZero() {
		created = time.Now()
	}
	var b bytes.Buffer
	b.WriteString(xmlenc.Header)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	if props.Title != "" {
		fmt.Fprintf(&b, `<dc:title>%s</dc:title>`, xmlenc.EscapeText(props.Title))
	}
	if props.Subject != "" {
		fmt.Fprintf(&b, `<dc:subject>%s</dc:subject>`, xmlenc.EscapeText(props.Subject))
	}
	if props.Creator != "" {
		fmt.Fprintf(&b, `<dc:creator>%s</dc:creator>`, xmlenc.EscapeText(props.Creator))
	}
	stamp := created.UTC().Format("2006-01-02T15:04:05Z")
	fmt.Fprintf(&b, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, stamp)
	fmt.Fprintf(&b, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, stamp)
	b.WriteString(`</cp:coreProperties>`)
	return b.Bytes()
}

func (g *docPropsGenerator) app(ctx *Context) []byte {
	props := ctx.Workbook.Options().Properties
	var b bytes.Buffer
	b.WriteString(xmlenc.Header)
	b.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`)
	b.WriteString(`<Application>sheetpack</Application>`)
	if props.Company != "" {
		fmt.Fprintf(&b, `<Company>%s</Company>`, xmlenc.EscapeText(props.Company))
	}
	b.WriteString(`</Properties>`)
	return b.Bytes()
}

// themeGenerator emits the theme part. The document model carries no theme
// state of its own; the content is the context's theme or a built-in
// default.
type themeGenerator struct{}

func (g *themeGenerator) PartNames(*Context) []string {
	return []string{PartTheme}
}

func (g *themeGenerator) Generate(name string, ctx *Context, sink Sink) error {
	if name != PartTheme {
		return fmt.Errorf("%w: %q", ErrBadPartName, name)
	}
	theme := ctx.Theme
	if theme == "" {
		theme = defaultTheme
	}
	return sink.WritePart(name, []byte(theme))
}
