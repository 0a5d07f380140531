package arp

import (
	"golang.org/x/text/unicode/norm"
)

// checkNFC reports whether s is in Unicode Normal Form C.
func checkNFC(s string) bool {
	return norm.NFC.IsNormalString(s)
}

// startsWithComposingChar reports whether the first character of s can
// combine with a preceding character, which makes s unsafe to concatenate.
func startsWithComposingChar(s string) bool {
	if s == "" {
		return false
	}
	p := norm.NFC.PropertiesString(s)
	return p.CCC() != 0 || !p.BoundaryBefore()
}

// checkString applies the character model checks to a literal or URI.
func (p *rdfParser) checkString(s string, loc Location, what string) error {
	if !checkNFC(s) {
		if err := p.rep.reportf(WarnStringNotNormalFormC, loc, "%s is not in Unicode Normal Form C: %q", what, s); err != nil {
			return err
		}
	}
	if startsWithComposingChar(s) {
		if err := p.rep.reportf(WarnStringComposingChar, loc, "%s begins with a composing character: %q", what, s); err != nil {
			return err
		}
	}
	return nil
}
