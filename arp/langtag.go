package arp

import (
	"errors"

	"golang.org/x/text/language"
)

type langStatus uint8

const (
	langOK langStatus = iota
	langMalformed
	langUnregistered
	langDeprecated
)

// classifyLang checks an xml:lang value against BCP 47.
func classifyLang(tag string) (langStatus, string) {
	if tag == "" {
		return langOK, ""
	}
	t, err := language.Raw.Parse(tag)
	if err != nil {
		var verr language.ValueError
		if errors.As(err, &verr) {
			return langUnregistered, verr.Subtag()
		}
		return langMalformed, err.Error()
	}
	canon, err := language.Deprecated.Canonicalize(t)
	if err == nil && canon.String() != t.String() {
		return langDeprecated, canon.String()
	}
	return langOK, ""
}

// checkLang reports conditions for an xml:lang value.
func (p *rdfParser) checkLang(tag string, loc Location) error {
	status, detail := classifyLang(tag)
	switch status {
	case langMalformed:
		return p.rep.reportf(WarnMalformedXMLLang, loc, "Bad language tag %q: %s", tag, detail)
	case langUnregistered:
		return p.rep.reportf(IgnUnregisteredXMLLang, loc, "Language tag %q has an unregistered subtag %q", tag, detail)
	case langDeprecated:
		return p.rep.reportf(WarnDeprecatedXMLLang, loc, "Language tag %q is deprecated, use %q", tag, detail)
	}
	return nil
}
