package arp

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// validateURIRef checks that s is a syntactically acceptable URI reference.
// Non-ASCII characters are allowed (IRI style); spaces, controls and the
// delimiters that must always be escaped are not.
func validateURIRef(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("invalid UTF-8 in URI reference")
	}
	for i, r := range s {
		switch {
		case r < 0x20 || r == 0x7f:
			return fmt.Errorf("control character at position %d", i)
		case r == ' ':
			return fmt.Errorf("space at position %d", i)
		case strings.ContainsRune("<>\"{}|\\^`", r):
			return fmt.Errorf("character %q at position %d must be escaped", r, i)
		case r > 0x7f && (unicode.Is(unicode.Zs, r) || unicode.IsControl(r)):
			return fmt.Errorf("character %U at position %d must be escaped", r, i)
		case r == '%':
			if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
				return fmt.Errorf("bad percent escape at position %d", i)
			}
		}
	}
	if strings.Count(s, "#") > 1 {
		return fmt.Errorf("more than one fragment separator")
	}
	if scheme, _, ok := cutScheme(s); ok {
		if _, err := url.Parse(asciiOnly(s)); err != nil {
			return fmt.Errorf("invalid %s URI: %w", scheme, err)
		}
		return nil
	}
	if strings.HasPrefix(s, "//") {
		if _, err := url.Parse("x:" + asciiOnly(s)); err != nil {
			return fmt.Errorf("invalid network path: %w", err)
		}
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		first := strings.IndexAny(s, "/?#")
		if first < 0 || i < first {
			return fmt.Errorf("colon in first path segment of relative reference")
		}
	}
	return nil
}

// asciiOnly replaces non-ASCII runes so net/url only judges the structure.
func asciiOnly(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return strings.Map(func(r rune) rune {
				if r >= utf8.RuneSelf {
					return 'x'
				}
				return r
			}, s)
		}
	}
	return s
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
