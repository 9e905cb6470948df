package workbook

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FindOptions controls search behavior. The two flags are independent.
type FindOptions struct {
	CaseSensitive   bool
	MatchEntireCell bool
}

// FindCells returns the positions of string cells matching text, in
// row-major order. Only string-typed cells participate.
func (ws *Worksheet) FindCells(text string, opts FindOptions) []CellRefPos {
	ws.FlushCurrentRow()
	var hits []CellRefPos
	for _, pos := range ws.stringCells() {
		c := ws.cells[pos.Row][pos.Col]
		if cellMatches(c.Str, text, opts) {
			hits = append(hits, pos)
		}
	}
	return hits
}

// FindAndReplace rewrites matching string cells and returns the number of
// cells modified. With MatchEntireCell the whole value is replaced;
// otherwise every occurrence inside the value is. Case-insensitive searches
// locate each match's true offset in the original-case text, so mixed-case
// occurrences are replaced in place.
func (ws *Worksheet) FindAndReplace(find, replace string, opts FindOptions) int {
	if find == "" {
		return 0
	}
	ws.FlushCurrentRow()
	modified := 0
	for _, pos := range ws.stringCells() {
		c := ws.cells[pos.Row][pos.Col]
		var next string
		if opts.MatchEntireCell {
			if !cellMatches(c.Str, find, opts) {
				continue
			}
			next = replace
		} else {
			replaced, n := replaceOccurrences(c.Str, find, replace, opts.CaseSensitive)
			if n == 0 {
				continue
			}
			next = replaced
		}
		c.Str = next
		c.SST = ws.internString(next)
		modified++
	}
	return modified
}

// stringCells returns the grid positions of string cells in row-major
// order.
func (ws *Worksheet) stringCells() []CellRefPos {
	var out []CellRefPos
	for r, rowMap := range ws.cells {
		for c, cell := range rowMap {
			if cell.Type == CellString {
				out = append(out, CellRefPos{Row: r, Col: c})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func cellMatches(s, text string, opts FindOptions) bool {
	switch {
	case opts.MatchEntireCell && opts.CaseSensitive:
		return s == text
	case opts.MatchEntireCell:
		return strings.EqualFold(s, text)
	case opts.CaseSensitive:
		return strings.Contains(s, text)
	default:
		start, _ := foldIndex(s, text)
		return start >= 0
	}
}

// replaceOccurrences replaces every occurrence of find inside s, returning
// the rewritten string and the occurrence count. The case-insensitive path
// scans the original-case text with Unicode simple folding, so the matched
// span's true byte offset and length are known even when the folded forms
// differ in length.
func replaceOccurrences(s, find, replace string, caseSensitive bool) (string, int) {
	var b strings.Builder
	count := 0
	for {
		var start, length int
		if caseSensitive {
			start = strings.Index(s, find)
			length = len(find)
		} else {
			start, length = foldIndex(s, find)
		}
		if start < 0 || length == 0 {
			break
		}
		b.WriteString(s[:start])
		b.WriteString(replace)
		s = s[start+length:]
		count++
	}
	if count == 0 {
		return s, 0
	}
	b.WriteString(s)
	return b.String(), count
}

// foldIndex locates the first case-insensitive occurrence of needle in s,
// returning its byte offset and matched byte length in s, or (-1, 0).
func foldIndex(s, needle string) (start, length int) {
	if needle == "" {
		return -1, 0
	}
	for i := 0; i < len(s); {
		if n := foldPrefix(s[i:], needle); n >= 0 {
			return i, n
		}
		_, sz := utf8.DecodeRuneInString(s[i:])
		i += sz
	}
	return -1, 0
}

// foldPrefix reports how many bytes of s the needle matches case-folded at
// offset 0, or -1 when it does not match there.
func foldPrefix(s, needle string) int {
	si := 0
	for ni := 0; ni < len(needle); {
		nr, nsz := utf8.DecodeRuneInString(needle[ni:])
		if si >= len(s) {
			return -1
		}
		sr, ssz := utf8.DecodeRuneInString(s[si:])
		if !runesFoldEqual(sr, nr) {
			return -1
		}
		si += ssz
		ni += nsz
	}
	return si
}

func runesFoldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
