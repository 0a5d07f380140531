package arp

import (
	"fmt"
	"strings"
)

// Condition identifies a diagnostic the parser can raise. Conditions are
// grouped by hundreds: 0xx are ignorable by default, 1xx are warnings, 2xx
// are errors and 3xx are fatal.
type Condition int

// maxCondition bounds the condition id space.
const maxCondition = 400

// Ignorable conditions.
const (
	IgnNoBaseURISpecified  Condition = 1
	IgnXMLBaseUsed         Condition = 2
	IgnXMLBaseSignificant  Condition = 3
	IgnDAMLCollection      Condition = 4
	IgnUnregisteredXMLLang Condition = 5
)

// Warning conditions.
const (
	WarnMinorInternalError             Condition = 101
	WarnUnqualifiedAttribute           Condition = 102
	WarnUnknownRDFAttribute            Condition = 103
	WarnUnqualifiedElement             Condition = 104
	WarnRedefinitionOfID               Condition = 105
	WarnUnknownParseType               Condition = 106
	WarnUnqualifiedRDFAttribute        Condition = 107
	WarnQNameAsID                      Condition = 108
	WarnRelativeNamespaceURIDeprecated Condition = 109
	WarnUnknownXMLAttribute            Condition = 110
	WarnProcessingInstructionInRDF     Condition = 111
	WarnLegalReuseOfID                 Condition = 112
	WarnRDFNNAsType                    Condition = 113
	WarnUnknownRDFElement              Condition = 114
	WarnStringNotNormalFormC           Condition = 115
	WarnStringComposingChar            Condition = 116
	WarnDeprecatedXMLLang              Condition = 117
	WarnMalformedXMLLang               Condition = 118
	WarnMalformedURI                   Condition = 119
	WarnBadRDFNamespaceURI             Condition = 120
	WarnBadXMLNamespaceURI             Condition = 121
	WarnSAXWarning                     Condition = 122
	WarnInStrictMode                   Condition = 123
	WarnResolvingURIAgainstEmptyBase   Condition = 125
	WarnNonIANAEncoding                Condition = 127
	WarnUnsupportedEncoding            Condition = 128
	WarnNoncanonicalIANAName           Condition = 129
	WarnBagIDDeprecated                Condition = 130
	WarnRelativeURI                    Condition = 136
)

// Error conditions.
const (
	ErrSyntaxError                   Condition = 201
	ErrUnableToRecover               Condition = 202
	ErrNotWhitespace                 Condition = 203
	ErrBadRDFAttribute               Condition = 204
	ErrBadRDFElement                 Condition = 205
	ErrBadName                       Condition = 206
	ErrSAXError                      Condition = 209
	ErrResolvingURIAgainstNullBase   Condition = 210
	ErrResolvingAgainstMalformedBase Condition = 211
	ErrResolvingAgainstRelativeBase  Condition = 212
)

// Fatal conditions.
const (
	ErrSAXFatalError  Condition = 301
	ErrInterrupted    Condition = 302
	ErrGenericIO      Condition = 303
	ErrInternalError  Condition = 304
	ErrHandlerAborted Condition = 305
)

var conditionNames = map[Condition]string{
	IgnNoBaseURISpecified:  "IGN_NO_BASE_URI_SPECIFIED",
	IgnXMLBaseUsed:         "IGN_XMLBASE_USED",
	IgnXMLBaseSignificant:  "IGN_XMLBASE_SIGNIFICANT",
	IgnDAMLCollection:      "IGN_DAML_COLLECTION",
	IgnUnregisteredXMLLang: "IGN_UNREGISTERED_XMLLANG",

	WarnMinorInternalError:             "WARN_MINOR_INTERNAL_ERROR",
	WarnUnqualifiedAttribute:           "WARN_UNQUALIFIED_ATTRIBUTE",
	WarnUnknownRDFAttribute:            "WARN_UNKNOWN_RDF_ATTRIBUTE",
	WarnUnqualifiedElement:             "WARN_UNQUALIFIED_ELEMENT",
	WarnRedefinitionOfID:               "WARN_REDEFINITION_OF_ID",
	WarnUnknownParseType:               "WARN_UNKNOWN_PARSETYPE",
	WarnUnqualifiedRDFAttribute:        "WARN_UNQUALIFIED_RDF_ATTRIBUTE",
	WarnQNameAsID:                      "WARN_QNAME_AS_ID",
	WarnRelativeNamespaceURIDeprecated: "WARN_RELATIVE_NAMESPACE_URI_DEPRECATED",
	WarnUnknownXMLAttribute:            "WARN_UNKNOWN_XML_ATTRIBUTE",
	WarnProcessingInstructionInRDF:     "WARN_PROCESSING_INSTRUCTION_IN_RDF",
	WarnLegalReuseOfID:                 "WARN_LEGAL_REUSE_OF_ID",
	WarnRDFNNAsType:                    "WARN_RDF_NN_AS_TYPE",
	WarnUnknownRDFElement:              "WARN_UNKNOWN_RDF_ELEMENT",
	WarnStringNotNormalFormC:           "WARN_STRING_NOT_NORMAL_FORM_C",
	WarnStringComposingChar:            "WARN_STRING_COMPOSING_CHAR",
	WarnDeprecatedXMLLang:              "WARN_DEPRECATED_XMLLANG",
	WarnMalformedXMLLang:               "WARN_MALFORMED_XMLLANG",
	WarnMalformedURI:                   "WARN_MALFORMED_URI",
	WarnBadRDFNamespaceURI:             "WARN_BAD_RDF_NAMESPACE_URI",
	WarnBadXMLNamespaceURI:             "WARN_BAD_XML_NAMESPACE_URI",
	WarnSAXWarning:                     "WARN_SAX_WARNING",
	WarnInStrictMode:                   "WARN_IN_STRICT_MODE",
	WarnResolvingURIAgainstEmptyBase:   "WARN_RESOLVING_URI_AGAINST_EMPTY_BASE",
	WarnNonIANAEncoding:                "WARN_NONIANA_ENCODING",
	WarnUnsupportedEncoding:            "WARN_UNSUPPORTED_ENCODING",
	WarnNoncanonicalIANAName:           "WARN_NONCANONICAL_IANA_NAME",
	WarnBagIDDeprecated:                "WARN_BAGID_DEPRECATED",
	WarnRelativeURI:                    "WARN_RELATIVE_URI",

	ErrSyntaxError:                   "ERR_SYNTAX_ERROR",
	ErrUnableToRecover:               "ERR_UNABLE_TO_RECOVER",
	ErrNotWhitespace:                 "ERR_NOT_WHITESPACE",
	ErrBadRDFAttribute:               "ERR_BAD_RDF_ATTRIBUTE",
	ErrBadRDFElement:                 "ERR_BAD_RDF_ELEMENT",
	ErrBadName:                       "ERR_BAD_NAME",
	ErrSAXError:                      "ERR_SAX_ERROR",
	ErrResolvingURIAgainstNullBase:   "ERR_RESOLVING_URI_AGAINST_NULL_BASE",
	ErrResolvingAgainstMalformedBase: "ERR_RESOLVING_AGAINST_MALFORMED_BASE",
	ErrResolvingAgainstRelativeBase:  "ERR_RESOLVING_AGAINST_RELATIVE_BASE",

	ErrSAXFatalError:  "ERR_SAX_FATAL_ERROR",
	ErrInterrupted:    "ERR_INTERRUPTED",
	ErrGenericIO:      "ERR_GENERIC_IO",
	ErrInternalError:  "ERR_INTERNAL_ERROR",
	ErrHandlerAborted: "ERR_HANDLER_ABORTED",
}

var conditionsByName = func() map[string]Condition {
	m := make(map[string]Condition, len(conditionNames))
	for c, name := range conditionNames {
		m[name] = c
	}
	return m
}()

// String returns the symbolic name of the condition, e.g. ERR_SYNTAX_ERROR.
func (c Condition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CONDITION_%d", int(c))
}

// Valid reports whether c is inside the condition id space.
func (c Condition) Valid() bool {
	return c > 0 && c < maxCondition
}

// DefaultSeverity returns the severity class implied by the condition id.
func (c Condition) DefaultSeverity() Severity {
	if !c.Valid() {
		return SeverityFatal
	}
	return Severity(int(c) / 100)
}

// ParseCondition looks a condition up by its symbolic name. Names are
// matched case-insensitively.
func ParseCondition(name string) (Condition, error) {
	if c, ok := conditionsByName[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("arp: unknown condition %q", name)
}

// Conditions returns every named condition in id order.
func Conditions() []Condition {
	out := make([]Condition, 0, len(conditionNames))
	for c := Condition(1); c < maxCondition; c++ {
		if _, ok := conditionNames[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
