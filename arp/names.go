package arp

import (
	"strings"
	"unicode"
)

// nameStartTable holds XML 1.0 (fifth edition) NameStartChar minus ':'.
var nameStartTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 'A', Hi: 'Z', Stride: 1},
		{Lo: '_', Hi: '_', Stride: 1},
		{Lo: 'a', Hi: 'z', Stride: 1},
		{Lo: 0xC0, Hi: 0xD6, Stride: 1},
		{Lo: 0xD8, Hi: 0xF6, Stride: 1},
		{Lo: 0xF8, Hi: 0x2FF, Stride: 1},
		{Lo: 0x370, Hi: 0x37D, Stride: 1},
		{Lo: 0x37F, Hi: 0x1FFF, Stride: 1},
		{Lo: 0x200C, Hi: 0x200D, Stride: 1},
		{Lo: 0x2070, Hi: 0x218F, Stride: 1},
		{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
		{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
		{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0xEFFFF, Stride: 1},
	},
}

// nameExtraTable holds the NameChar additions to NameStartChar.
var nameExtraTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: '-', Hi: '.', Stride: 1},
		{Lo: '0', Hi: '9', Stride: 1},
		{Lo: 0xB7, Hi: 0xB7, Stride: 1},
		{Lo: 0x300, Hi: 0x36F, Stride: 1},
		{Lo: 0x203F, Hi: 0x2040, Stride: 1},
	},
	LatinOffset: 3,
}

func isNameStartRune(r rune) bool {
	if r < 0x80 {
		return r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r == '_'
	}
	return unicode.Is(nameStartTable, r)
}

func isNameRune(r rune) bool {
	if r < 0x80 {
		return isNameStartRune(r) || r >= '0' && r <= '9' || r == '-' || r == '.'
	}
	return unicode.Is(nameStartTable, r) || unicode.Is(nameExtraTable, r)
}

// isNCName reports whether s is an XML name without colons.
func isNCName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isNameStartRune(r) {
				return false
			}
		} else if !isNameRune(r) {
			return false
		}
	}
	return true
}

// isQNameLike reports whether s looks like prefix:local, which usually
// means a QName was written where an rdf:ID value was expected.
func isQNameLike(s string) bool {
	prefix, local, ok := strings.Cut(s, ":")
	return ok && isNCName(prefix) && isNCName(local)
}

// isMemberName reports whether local is a container membership name
// "_n" with n a positive integer written without leading zeros.
func isMemberName(local string) bool {
	if len(local) < 2 || local[0] != '_' || local[1] == '0' {
		return false
	}
	for i := 1; i < len(local); i++ {
		if local[i] < '0' || local[i] > '9' {
			return false
		}
	}
	return true
}
