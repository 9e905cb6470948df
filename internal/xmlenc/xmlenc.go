// Package xmlenc provides the low-level XML emission helpers shared by the
// part generators.
//
// Generators build parts with plain buffers and these escapes rather than
// encoding/xml: the documents are flat, the element vocabulary is fixed, and
// the hot path (cell records) is too allocation-sensitive for reflection
// based marshaling.
package xmlenc

import (
	"strconv"
	"strings"
)

// Header is the XML declaration every part starts with.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\n", "&#10;",
	"\t", "&#9;",
	"\r", "&#13;",
)

// EscapeText escapes s for element content.
func EscapeText(s string) string {
	if !needsEscape(s, false) {
		return s
	}
	return textEscaper.Replace(s)
}

// EscapeAttr escapes s for an attribute value.
func EscapeAttr(s string) string {
	if !needsEscape(s, true) {
		return s
	}
	return attrEscaper.Replace(s)
}

func needsEscape(s string, attr bool) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&', '<', '>':
			return true
		case '"', '\n', '\t', '\r':
			if attr {
				return true
			}
		}
	}
	return false
}

// NeedsSpacePreserve reports whether string content must carry
// xml:space="preserve" to survive a round trip.
func NeedsSpacePreserve(s string) bool {
	if s == "" {
		return false
	}
	return s[0] == ' ' || s[0] == '\t' || s[len(s)-1] == ' ' || s[len(s)-1] == '\t' ||
		strings.ContainsAny(s, "\n\r")
}

// Float renders a float the shortest way that round-trips, matching how
// spreadsheet consumers expect numbers serialized.
func Float(v float64) string {
	return strconv.FormatFloat(v, 'G', -1, 64)
}
