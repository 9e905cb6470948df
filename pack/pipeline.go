package pack

import (
	"archive/zip"
	"fmt"
	"io"
	"slices"

	"github.com/quillsoft/sheetpack/workbook"
)

// Context is the read-only view generators work against: the document, its
// shared stores, and the theme content.
type Context struct {
	Workbook *workbook.Workbook
	// Theme is the theme part content. Empty selects the built-in theme.
	Theme string
}

// NewContext wraps a workbook for generation.
func NewContext(wb *workbook.Workbook) *Context {
	return &Context{Workbook: wb}
}

func (c *Context) sheetCount() int { return len(c.Workbook.Sheets()) }

// Generator produces one part family of the package.
type Generator interface {
	// PartNames reports the part names this generator owns for the given
	// document. An empty list means the family does not apply (for
	// example no sharedStrings part when shared-string mode is off).
	PartNames(ctx *Context) []string
	// Generate renders one named part into the sink.
	Generate(name string, ctx *Context, sink Sink) error
}

// Pipeline drives a fixed, ordered list of generators. The set is closed:
// one generator per part family, registered at construction.
type Pipeline struct {
	gens []Generator
}

// NewPipeline returns the standard generator set in package order.
func NewPipeline() *Pipeline {
	return &Pipeline{gens: []Generator{
		&contentTypesGenerator{},
		&rootRelsGenerator{},
		&docPropsGenerator{},
		&workbookGenerator{},
		&themeGenerator{},
		&stylesGenerator{},
		&sharedStringsGenerator{},
		&worksheetGenerator{},
		&sheetRelsGenerator{},
	}}
}

// GenerateAll renders every applicable part in registration order. The
// first generator failure aborts the remaining pipeline.
func (p *Pipeline) GenerateAll(ctx *Context, sink Sink) error {
	for _, g := range p.gens {
		for _, name := range g.PartNames(ctx) {
			if err := g.Generate(name, ctx, sink); err != nil {
				return fmt.Errorf("pack: generate %s: %w", name, err)
			}
		}
	}
	return nil
}

// GenerateParts renders only the requested parts, resolving each name to
// the generator that claims it. Unclaimed names fail.
func (p *Pipeline) GenerateParts(names []string, ctx *Context, sink Sink) error {
	for _, name := range names {
		g := p.owner(name, ctx)
		if g == nil {
			return fmt.Errorf("%w: %q", ErrUnknownPart, name)
		}
		if err := g.Generate(name, ctx, sink); err != nil {
			return fmt.Errorf("pack: generate %s: %w", name, err)
		}
	}
	return nil
}

func (p *Pipeline) owner(name string, ctx *Context) Generator {
	for _, g := range p.gens {
		if slices.Contains(g.PartNames(ctx), name) {
			return g
		}
	}
	return nil
}

// PartNames returns every part name the document will produce, in
// generation order.
func (p *Pipeline) PartNames(ctx *Context) []string {
	var names []string
	for _, g := range p.gens {
		names = append(names, g.PartNames(ctx)...)
	}
	return names
}

// Write serializes wb as a complete package onto w.
func Write(wb *workbook.Workbook, w io.Writer) error {
	zw := zip.NewWriter(w)
	if err := NewPipeline().GenerateAll(NewContext(wb), NewZipSink(zw)); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("pack: close archive: %w", err)
	}
	return nil
}

// WriteFile serializes wb to path, atomically: a failed generation leaves
// no partial file behind.
func WriteFile(wb *workbook.Workbook, path string) error {
	sink, err := NewFileSink(path)
	if err != nil {
		return err
	}
	if err := NewPipeline().GenerateAll(NewContext(wb), sink); err != nil {
		sink.Abort()
		return err
	}
	return sink.Close()
}
