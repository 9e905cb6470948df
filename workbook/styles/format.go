package styles

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// BorderStyle is the line style of one border edge.
type BorderStyle uint8

// Border edge styles, in the order the worksheet serializer names them.
const (
	BorderNone BorderStyle = iota
	BorderThin
	BorderMedium
	BorderDashed
	BorderDotted
	BorderThick
	BorderDouble
	BorderHair
)

var borderStyleNames = [...]string{
	"", "thin", "medium", "dashed", "dotted", "thick", "double", "hair",
}

// Name returns the serialized style name, empty for BorderNone.
func (s BorderStyle) Name() string {
	if int(s) < len(borderStyleNames) {
		return borderStyleNames[s]
	}
	return ""
}

// PatternType is a cell fill pattern.
type PatternType uint8

const (
	PatternNone PatternType = iota
	PatternSolid
	PatternGray125
)

var patternNames = [...]string{"none", "solid", "gray125"}

// Name returns the serialized pattern name.
func (p PatternType) Name() string {
	if int(p) < len(patternNames) {
		return patternNames[p]
	}
	return "none"
}

// Font describes the typeface portion of a format.
type Font struct {
	Name      string
	Size      float64
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Color     string // ARGB, e.g. "FF0000FF"; empty means theme default
}

// Fill describes the background portion of a format.
type Fill struct {
	Pattern PatternType
	Color   string // foreground ARGB; empty means unset
}

// Border describes all four edges of a cell border. A zero Border means no
// border at all.
type Border struct {
	Left   BorderStyle
	Right  BorderStyle
	Top    BorderStyle
	Bottom BorderStyle
	Color  string // ARGB applied to every drawn edge
}

// Alignment describes cell content alignment.
type Alignment struct {
	Horizontal string // "left", "center", "right", "fill", "justify"
	Vertical   string // "top", "center", "bottom"
	WrapText   bool
}

// Format is an immutable cell format descriptor. It is a plain comparable
// value: two formats are the same format exactly when they are == to each
// other. The number format string is carried opaquely; the engine never
// interprets it.
//
// Formats are interned into a Repository and referenced by handle. Callers
// must not rely on pointer identity; the repository stores copies.
type Format struct {
	Font   Font
	Fill   Fill
	Border Border
	Align  Alignment

	// NumFmtID selects a builtin number format when NumFmt is empty.
	// A non-empty NumFmt always wins and is assigned a custom id at
	// serialization time.
	NumFmtID int
	NumFmt   string
}

// DefaultFormat returns the built-in default descriptor stored at handle 0
// of every repository.
func DefaultFormat() Format {
	return Format{Font: Font{Name: "Calibri", Size: 11}}
}

// Hash returns a stable FNV-1a content hash of the format. Equal formats
// hash equally; the converse does not hold and callers must re-verify with
// == before treating two formats as the same.
func (f Format) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeStr := func(s string) {
		binary.LittleEndian.PutUint32(buf[:4], uint32(len(s)))
		h.Write(buf[:4])
		h.Write([]byte(s))
	}
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	writeStr(f.Font.Name)
	writeU64(math.Float64bits(f.Font.Size))
	writeU64(packBools(f.Font.Bold, f.Font.Italic, f.Font.Underline, f.Font.Strike, f.Align.WrapText))
	writeStr(f.Font.Color)
	writeU64(uint64(f.Fill.Pattern))
	writeStr(f.Fill.Color)
	writeU64(uint64(f.Border.Left)<<24 | uint64(f.Border.Right)<<16 |
		uint64(f.Border.Top)<<8 | uint64(f.Border.Bottom))
	writeStr(f.Border.Color)
	writeStr(f.Align.Horizontal)
	writeStr(f.Align.Vertical)
	writeU64(uint64(f.NumFmtID))
	writeStr(f.NumFmt)
	return h.Sum64()
}

func packBools(bs ...bool) uint64 {
	var v uint64
	for i, b := range bs {
		if b {
			v |= 1 << uint(i)
		}
	}
	return v
}
