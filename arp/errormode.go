package arp

import (
	"fmt"
	"strings"
)

// Severity is the consequence of raising a condition.
type Severity uint8

const (
	// SeverityIgnore drops the condition silently.
	SeverityIgnore Severity = iota
	// SeverityWarning reports the condition and continues.
	SeverityWarning
	// SeverityError reports the condition and discards the current production.
	SeverityError
	// SeverityFatal reports the condition and ends the parse.
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityIgnore:
		return "ignore"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return fmt.Sprintf("severity(%d)", uint8(s))
	}
}

// ParseSeverity parses "ignore", "warning", "error" or "fatal".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore":
		return SeverityIgnore, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "fatal":
		return SeverityFatal, nil
	}
	return 0, fmt.Errorf("arp: unknown severity %q", s)
}

// Preset names one of the predefined error mode configurations.
type Preset uint8

const (
	// PresetDefault gives every condition the severity of its class.
	PresetDefault Preset = iota
	// PresetLax ignores warnings.
	PresetLax
	// PresetStrict turns most warnings into errors.
	PresetStrict
	// PresetStrictError is PresetStrict with ignorable conditions raised to errors.
	PresetStrictError
)

func (p Preset) String() string {
	switch p {
	case PresetDefault:
		return "default"
	case PresetLax:
		return "lax"
	case PresetStrict:
		return "strict"
	case PresetStrictError:
		return "strict-error"
	default:
		return fmt.Sprintf("preset(%d)", uint8(p))
	}
}

// ParsePreset parses a preset name as produced by Preset.String.
func ParsePreset(s string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return PresetDefault, nil
	case "lax":
		return PresetLax, nil
	case "strict":
		return PresetStrict, nil
	case "strict-error", "strict_error":
		return PresetStrictError, nil
	}
	return 0, fmt.Errorf("arp: unknown preset %q", s)
}

// strictWarningLevel lists conditions that stay at the warning level in
// strict mode.
var strictWarningLevel = []Condition{
	WarnMinorInternalError,
	WarnDeprecatedXMLLang,
	WarnUnknownParseType,
	WarnUnknownRDFElement,
	WarnUnknownRDFAttribute,
	WarnQNameAsID,
	WarnSAXWarning,
	WarnNoncanonicalIANAName,
}

// strictNonErrorLevel lists conditions that follow the non-error mode in
// strict mode.
var strictNonErrorLevel = []Condition{
	WarnProcessingInstructionInRDF,
	WarnLegalReuseOfID,
	WarnRDFNNAsType,
	WarnUnknownXMLAttribute,
}

// ErrorMode maps every condition to a severity. The zero value is not
// ready for use; call NewErrorMode. An ErrorMode is owned by one parse at
// a time and is not safe for concurrent mutation.
type ErrorMode struct {
	modes [maxCondition]Severity
}

// NewErrorMode returns an ErrorMode with the default preset applied.
func NewErrorMode() *ErrorMode {
	m := &ErrorMode{}
	m.SetDefault()
	return m
}

// Clone returns an independent copy of m.
func (m *ErrorMode) Clone() *ErrorMode {
	c := *m
	return &c
}

// Mode returns the severity of c. Unknown ids are fatal.
func (m *ErrorMode) Mode(c Condition) Severity {
	if !c.Valid() {
		return SeverityFatal
	}
	return m.modes[c]
}

// SetMode changes the severity of c and returns the previous severity.
// ERR_UNABLE_TO_RECOVER cannot be changed and fatal conditions cannot be
// lowered below SeverityError; such requests leave the table untouched.
func (m *ErrorMode) SetMode(c Condition, s Severity) Severity {
	if !c.Valid() || s > SeverityFatal {
		return SeverityFatal
	}
	old := m.modes[c]
	if c == ErrUnableToRecover {
		return old
	}
	if c.DefaultSeverity() == SeverityFatal && s < SeverityError {
		return old
	}
	m.modes[c] = s
	return old
}

// SetDefault gives every condition the severity of its class.
func (m *ErrorMode) SetDefault() {
	for i := range m.modes {
		m.modes[i] = Condition(i).DefaultSeverity()
	}
	m.modes[0] = SeverityIgnore
}

// SetLax ignores all warnings except WARN_MINOR_INTERNAL_ERROR.
func (m *ErrorMode) SetLax() {
	m.SetDefault()
	for i := 100; i < 200; i++ {
		m.modes[i] = SeverityIgnore
	}
	m.modes[WarnMinorInternalError] = SeverityWarning
}

// SetStrict is SetStrictWith(SeverityIgnore).
func (m *ErrorMode) SetStrict() {
	m.SetStrictWith(SeverityIgnore)
}

// SetStrictWith turns warnings into errors and ignorable conditions into
// nonErrorMode. A few conditions that are commonly harmless stay lower.
// Errors keep SeverityError whatever nonErrorMode is.
func (m *ErrorMode) SetStrictWith(nonErrorMode Severity) {
	if nonErrorMode > SeverityFatal {
		nonErrorMode = SeverityFatal
	}
	m.SetDefault()
	warning := SeverityWarning
	switch nonErrorMode {
	case SeverityError:
		warning = SeverityError
	case SeverityFatal:
		warning = SeverityFatal
	}
	for i := 1; i < 100; i++ {
		m.modes[i] = nonErrorMode
	}
	for i := 100; i < 200; i++ {
		m.modes[i] = SeverityError
	}
	for _, c := range strictWarningLevel {
		m.modes[c] = warning
	}
	for _, c := range strictNonErrorLevel {
		m.modes[c] = nonErrorMode
	}
}

// ApplyPreset resets the table to the named preset.
func (m *ErrorMode) ApplyPreset(p Preset) {
	switch p {
	case PresetLax:
		m.SetLax()
	case PresetStrict:
		m.SetStrict()
	case PresetStrictError:
		m.SetStrictWith(SeverityError)
	default:
		m.SetDefault()
	}
}

// Equal reports whether m and other assign the same severities.
func (m *ErrorMode) Equal(other *ErrorMode) bool {
	return m.modes == other.modes
}
