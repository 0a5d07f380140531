package arp

import "strconv"

// Location identifies a position in the input document.
type Location struct {
	// SystemID names the document, usually its URI.
	SystemID string
	// Line is the 1-based line number (0 if unknown).
	Line int
	// Column is the 1-based column number (0 if unknown).
	Column int
}

// String formats the location as system:line:col.
func (l Location) String() string {
	s := l.SystemID
	if s == "" {
		s = "<unknown>"
	}
	if l.Line > 0 {
		s += ":" + strconv.Itoa(l.Line)
		if l.Column > 0 {
			s += ":" + strconv.Itoa(l.Column)
		}
	}
	return s
}
