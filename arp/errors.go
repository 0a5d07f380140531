package arp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
)

var (
	// ErrPipeOverflow indicates a token was pushed after the consumer saw end of input.
	ErrPipeOverflow = errors.New("arp: token pushed after end of input")
	// ErrParserClosed indicates use of a decoder or pipe after Close.
	ErrParserClosed = errors.New("arp: parser closed")
)

// Diagnostic is a condition raised while parsing, together with the
// severity the active ErrorMode gave it. It implements error so that
// error and fatal diagnostics can be returned directly.
type Diagnostic struct {
	Condition Condition // What went wrong
	Severity  Severity  // Severity at the time it was raised
	Location  Location  // Where it was raised
	Message   string    // Human readable description
	Err       error     // Underlying error, if any
}

func (d *Diagnostic) Error() string {
	var msg strings.Builder
	msg.WriteString(d.Location.String())
	msg.WriteString(": ")
	msg.WriteString(d.Condition.String())
	if d.Message != "" {
		msg.WriteString(": ")
		msg.WriteString(d.Message)
	}
	if d.Err != nil && d.Message == "" {
		msg.WriteString(": ")
		msg.WriteString(d.Err.Error())
	}
	return msg.String()
}

func (d *Diagnostic) Unwrap() error { return d.Err }

// Fatal reports whether the diagnostic ends the parse.
func (d *Diagnostic) Fatal() bool { return d.Severity == SeverityFatal }

func newFatal(c Condition, loc Location, err error, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Condition: c,
		Severity:  SeverityFatal,
		Location:  loc,
		Message:   fmt.Sprintf(format, args...),
		Err:       err,
	}
}

// Code returns the condition carried by err.
// Returns 0 for nil errors and io.EOF.
func Code(err error) Condition {
	if err == nil || err == io.EOF {
		return 0
	}
	var diag *Diagnostic
	if errors.As(err, &diag) {
		return diag.Condition
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrInterrupted
	case errors.Is(err, ErrPipeOverflow):
		return ErrInternalError
	}
	return ErrGenericIO
}

// asFatal converts any error escaping a production into a fatal diagnostic.
func asFatal(err error, loc Location) *Diagnostic {
	var diag *Diagnostic
	if errors.As(err, &diag) {
		if diag.Severity != SeverityFatal {
			d := *diag
			d.Severity = SeverityFatal
			return &d
		}
		return diag
	}
	switch Code(err) {
	case ErrInterrupted:
		return newFatal(ErrInterrupted, loc, err, "parse interrupted")
	case ErrInternalError:
		return newFatal(ErrInternalError, loc, err, "%v", err)
	}
	return newFatal(ErrGenericIO, loc, err, "%v", err)
}

// ErrorHandler receives diagnostics.
//
// Warning is called for warnings. Returning nil continues the parse;
// returning the diagnostic itself promotes it to an error; returning any
// other error aborts the parse.
//
// Error is called once the production that raised an error has been
// discarded. Returning a non-nil error aborts the parse.
//
// FatalError is called exactly once when a parse ends abnormally. Its
// result, when non-nil, replaces the error returned by the parse.
type ErrorHandler interface {
	Warning(d *Diagnostic) error
	Error(d *Diagnostic) error
	FatalError(d *Diagnostic) error
}

// ErrorHandlerFuncs adapts plain functions to ErrorHandler. Nil fields are
// treated as handlers that accept the diagnostic.
type ErrorHandlerFuncs struct {
	WarningFunc func(*Diagnostic) error
	ErrorFunc   func(*Diagnostic) error
	FatalFunc   func(*Diagnostic) error
}

// Warning calls WarningFunc.
func (h ErrorHandlerFuncs) Warning(d *Diagnostic) error {
	if h.WarningFunc == nil {
		return nil
	}
	return h.WarningFunc(d)
}

// Error calls ErrorFunc.
func (h ErrorHandlerFuncs) Error(d *Diagnostic) error {
	if h.ErrorFunc == nil {
		return nil
	}
	return h.ErrorFunc(d)
}

// FatalError calls FatalFunc.
func (h ErrorHandlerFuncs) FatalError(d *Diagnostic) error {
	if h.FatalFunc == nil {
		return nil
	}
	return h.FatalFunc(d)
}

// LoggingErrorHandler logs every diagnostic and never aborts.
type LoggingErrorHandler struct {
	Logger logr.Logger
}

// Warning logs d at info level.
func (h LoggingErrorHandler) Warning(d *Diagnostic) error {
	h.Logger.Info(d.Message, "condition", d.Condition.String(), "location", d.Location.String())
	return nil
}

// Error logs d at error level.
func (h LoggingErrorHandler) Error(d *Diagnostic) error {
	h.Logger.Error(d.Err, d.Message, "condition", d.Condition.String(), "location", d.Location.String())
	return nil
}

// FatalError logs d at error level.
func (h LoggingErrorHandler) FatalError(d *Diagnostic) error {
	h.Logger.Error(d.Err, d.Message, "condition", d.Condition.String(), "location", d.Location.String(), "fatal", true)
	return nil
}

// reporter applies an ErrorMode to raised conditions.
type reporter struct {
	mode     *ErrorMode
	handler  ErrorHandler
	warnings int
	errors   int
}

// report raises c. It returns nil when parsing may continue, or a
// *Diagnostic of error or fatal severity that must unwind the caller.
func (r *reporter) report(c Condition, loc Location, msg string) error {
	if r.mode.Mode(c) == SeverityIgnore {
		return nil
	}
	return r.raise(&Diagnostic{Condition: c, Location: loc, Message: msg})
}

// raise applies the error mode to an already built diagnostic.
func (r *reporter) raise(d *Diagnostic) error {
	sev := r.mode.Mode(d.Condition)
	if sev == SeverityIgnore {
		return nil
	}
	d.Severity = sev
	if sev != SeverityWarning {
		return d
	}
	r.warnings++
	err := r.handler.Warning(d)
	if err == nil {
		return nil
	}
	if same, ok := err.(*Diagnostic); ok && same == d {
		d.Severity = SeverityError
		return d
	}
	return newFatal(ErrHandlerAborted, d.Location, err, "warning handler failed: %v", err)
}

func (r *reporter) reportf(c Condition, loc Location, format string, args ...interface{}) error {
	if r.mode.Mode(c) == SeverityIgnore {
		return nil
	}
	return r.report(c, loc, fmt.Sprintf(format, args...))
}

// recovered hands an error diagnostic to the handler after its production
// has been dropped. A non-nil result aborts the parse.
func (r *reporter) recovered(d *Diagnostic) error {
	r.errors++
	if err := r.handler.Error(d); err != nil {
		return newFatal(ErrHandlerAborted, d.Location, err, "error handler failed: %v", err)
	}
	return nil
}

// isRecoverable reports whether err is an error-severity diagnostic.
func isRecoverable(err error) (*Diagnostic, bool) {
	d, ok := err.(*Diagnostic)
	if !ok || d.Severity != SeverityError {
		return nil, false
	}
	return d, true
}
