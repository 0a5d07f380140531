package arp

import (
	"errors"
	"testing"
)

func TestErrorModeDefaults(t *testing.T) {
	m := NewErrorMode()
	tests := []struct {
		cond Condition
		want Severity
	}{
		{IgnNoBaseURISpecified, SeverityIgnore},
		{WarnRelativeURI, SeverityWarning},
		{ErrSyntaxError, SeverityError},
		{ErrHandlerAborted, SeverityFatal},
	}
	for _, tt := range tests {
		if got := m.Mode(tt.cond); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.cond, got, tt.want)
		}
	}
	if got := m.Mode(Condition(maxCondition)); got != SeverityFatal {
		t.Errorf("out of range condition: got %s, want fatal", got)
	}
}

func TestErrorModeSetMode(t *testing.T) {
	m := NewErrorMode()
	if old := m.SetMode(WarnRelativeURI, SeverityError); old != SeverityWarning {
		t.Fatalf("expected previous severity warning, got %s", old)
	}
	if got := m.Mode(WarnRelativeURI); got != SeverityError {
		t.Fatalf("expected error, got %s", got)
	}
	m.SetMode(ErrUnableToRecover, SeverityWarning)
	if got := m.Mode(ErrUnableToRecover); got != SeverityError {
		t.Fatalf("ERR_UNABLE_TO_RECOVER must not change, got %s", got)
	}
	m.SetMode(ErrInterrupted, SeverityWarning)
	if got := m.Mode(ErrInterrupted); got != SeverityFatal {
		t.Fatalf("fatal conditions must not drop below error, got %s", got)
	}
	if old := m.SetMode(ErrSAXFatalError, SeverityError); old != SeverityFatal {
		t.Fatalf("expected previous severity fatal, got %s", old)
	}
	if got := m.Mode(ErrSAXFatalError); got != SeverityError {
		t.Fatalf("fatal conditions may become errors, got %s", got)
	}
	m.SetMode(ErrSyntaxError, SeverityFatal)
	if got := m.Mode(ErrSyntaxError); got != SeverityFatal {
		t.Fatalf("errors may be upgraded, got %s", got)
	}
}

func TestErrorModePresets(t *testing.T) {
	lax := NewErrorMode()
	lax.ApplyPreset(PresetLax)
	if got := lax.Mode(WarnRelativeURI); got != SeverityIgnore {
		t.Errorf("lax: WARN_RELATIVE_URI got %s, want ignore", got)
	}
	if got := lax.Mode(WarnMinorInternalError); got != SeverityWarning {
		t.Errorf("lax: WARN_MINOR_INTERNAL_ERROR got %s, want warning", got)
	}

	strict := NewErrorMode()
	strict.ApplyPreset(PresetStrict)
	checks := []struct {
		cond Condition
		want Severity
	}{
		{WarnRelativeURI, SeverityError},
		{WarnQNameAsID, SeverityWarning},
		{WarnLegalReuseOfID, SeverityIgnore},
		{IgnXMLBaseUsed, SeverityIgnore},
		{ErrSyntaxError, SeverityError},
	}
	for _, tt := range checks {
		if got := strict.Mode(tt.cond); got != tt.want {
			t.Errorf("strict: %s got %s, want %s", tt.cond, got, tt.want)
		}
	}

	strictErr := NewErrorMode()
	strictErr.ApplyPreset(PresetStrictError)
	if got := strictErr.Mode(WarnQNameAsID); got != SeverityError {
		t.Errorf("strict-error: WARN_QNAME_AS_ID got %s, want error", got)
	}
	if got := strictErr.Mode(IgnXMLBaseUsed); got != SeverityError {
		t.Errorf("strict-error: IGN_XMLBASE_USED got %s, want error", got)
	}

	fatal := NewErrorMode()
	fatal.SetStrictWith(SeverityFatal)
	fatalChecks := []struct {
		cond Condition
		want Severity
	}{
		{IgnXMLBaseUsed, SeverityFatal},
		{WarnQNameAsID, SeverityFatal},
		{WarnRedefinitionOfID, SeverityError},
		{ErrSyntaxError, SeverityError},
		{ErrSAXFatalError, SeverityFatal},
	}
	for _, tt := range fatalChecks {
		if got := fatal.Mode(tt.cond); got != tt.want {
			t.Errorf("strict fatal: %s got %s, want %s", tt.cond, got, tt.want)
		}
	}

	def := NewErrorMode()
	strict.ApplyPreset(PresetDefault)
	if !def.Equal(strict) {
		t.Error("default preset must restore the initial table")
	}
}

func TestErrorModeClone(t *testing.T) {
	m := NewErrorMode()
	c := m.Clone()
	c.SetMode(WarnRelativeURI, SeverityIgnore)
	if m.Mode(WarnRelativeURI) != SeverityWarning {
		t.Fatal("clone must not share state")
	}
}

func TestParseNames(t *testing.T) {
	c, err := ParseCondition("warn_relative_uri")
	if err != nil || c != WarnRelativeURI {
		t.Fatalf("ParseCondition: got %v, %v", c, err)
	}
	if _, err := ParseCondition("NO_SUCH_CONDITION"); err == nil {
		t.Fatal("expected unknown condition error")
	}
	for _, c := range Conditions() {
		back, err := ParseCondition(c.String())
		if err != nil || back != c {
			t.Errorf("%d: name %q does not map back (%v)", int(c), c.String(), err)
		}
	}
	if s, err := ParseSeverity("Warn"); err != nil || s != SeverityWarning {
		t.Fatalf("ParseSeverity: got %v, %v", s, err)
	}
	if p, err := ParsePreset("strict-error"); err != nil || p != PresetStrictError {
		t.Fatalf("ParsePreset: got %v, %v", p, err)
	}
	if _, err := ParsePreset("loose"); err == nil {
		t.Fatal("expected unknown preset error")
	}
}

func TestCode(t *testing.T) {
	d := newFatal(ErrGenericIO, Location{}, errors.New("boom"), "boom")
	tests := []struct {
		err  error
		want Condition
	}{
		{nil, 0},
		{d, ErrGenericIO},
		{ErrPipeOverflow, ErrInternalError},
		{errors.New("other"), ErrGenericIO},
	}
	for _, tt := range tests {
		if got := Code(tt.err); got != tt.want {
			t.Errorf("Code(%v): got %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestReporterWarningEscalation(t *testing.T) {
	var seen []*Diagnostic
	h := ErrorHandlerFuncs{WarningFunc: func(d *Diagnostic) error {
		seen = append(seen, d)
		if d.Condition == WarnQNameAsID {
			return d
		}
		return nil
	}}
	r := &reporter{mode: NewErrorMode(), handler: h}

	if err := r.report(WarnRelativeURI, Location{}, "relative"); err != nil {
		t.Fatalf("warning must not unwind: %v", err)
	}
	err := r.report(WarnQNameAsID, Location{}, "qname")
	d, ok := isRecoverable(err)
	if !ok || d.Condition != WarnQNameAsID {
		t.Fatalf("expected escalated error diagnostic, got %v", err)
	}
	if err := r.report(IgnXMLBaseUsed, Location{}, "ignored"); err != nil {
		t.Fatalf("ignored condition returned %v", err)
	}
	if len(seen) != 2 || r.warnings != 2 {
		t.Fatalf("expected 2 warnings, got %d (%d)", len(seen), r.warnings)
	}

	h.WarningFunc = func(*Diagnostic) error { return errors.New("stop") }
	r.handler = h
	if err := r.report(WarnRelativeURI, Location{}, "relative"); Code(err) != ErrHandlerAborted {
		t.Fatalf("expected ERR_HANDLER_ABORTED, got %v", err)
	}
}
