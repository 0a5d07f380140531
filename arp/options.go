package arp

import (
	"context"

	"github.com/go-logr/logr"
)

// Option configures parser behavior.
type Option func(*Options)

// Options configures a Parser or Decoder.
type Options struct {
	// Context for cancellation, used where no context is passed explicitly
	Context context.Context

	// ErrorMode maps conditions to severities. The parser works on a copy.
	ErrorMode *ErrorMode

	// Embedding parses rdf:RDF elements found anywhere in an XML document
	// instead of treating the root element as RDF/XML.
	Embedding bool

	// Token pipe between the XML adapter and the grammar
	Pipe          PipeMode
	QueueCapacity int

	// Base URI of the document. HasBase distinguishes an empty base from
	// an absent one.
	Base    string
	HasBase bool

	// SystemID names the document in locations. Defaults to Base.
	SystemID string

	// IDStore records rdf:ID values for redefinition checks. The parser
	// does not close a store it was given.
	IDStore IDStore

	// Logger receives parse lifecycle messages and, through the default
	// error handler, diagnostics.
	Logger logr.Logger

	// Handlers
	StatementHandler StatementHandler
	NamespaceHandler NamespaceHandler
	ExtendedHandler  ExtendedHandler
	ErrorHandler     ErrorHandler
}

func defaultOptions() Options {
	return Options{
		ErrorMode:     NewErrorMode(),
		Pipe:          PipeCooperative,
		QueueCapacity: DefaultQueueCapacity,
		Logger:        logr.Discard(),
	}
}

func normalizeOptions(opts Options) Options {
	if opts.ErrorMode == nil {
		opts.ErrorMode = NewErrorMode()
	}
	if opts.QueueCapacity <= 0 {
		opts.QueueCapacity = DefaultQueueCapacity
	}
	if opts.SystemID == "" && opts.HasBase {
		opts.SystemID = opts.Base
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	return opts
}

func buildOptions(opts []Option) Options {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return normalizeOptions(options)
}

// Option helpers

// OptContext sets the context for cancellation.
func OptContext(ctx context.Context) Option {
	return func(opts *Options) {
		opts.Context = ctx
	}
}

// OptErrorMode replaces the error mode with a copy of m.
func OptErrorMode(m *ErrorMode) Option {
	return func(opts *Options) {
		if m == nil {
			opts.ErrorMode = NewErrorMode()
			return
		}
		opts.ErrorMode = m.Clone()
	}
}

// OptPreset applies one of the predefined error modes.
func OptPreset(p Preset) Option {
	return func(opts *Options) {
		if opts.ErrorMode == nil {
			opts.ErrorMode = NewErrorMode()
		}
		opts.ErrorMode.ApplyPreset(p)
	}
}

// OptConditionMode sets the severity of a single condition. Requests the
// error mode refuses are ignored.
func OptConditionMode(c Condition, s Severity) Option {
	return func(opts *Options) {
		if opts.ErrorMode == nil {
			opts.ErrorMode = NewErrorMode()
		}
		opts.ErrorMode.SetMode(c, s)
	}
}

// OptEmbedding enables RDF/XML embedded in other XML.
func OptEmbedding(embedding bool) Option {
	return func(opts *Options) {
		opts.Embedding = embedding
	}
}

// OptPipe selects how tokens travel from the XML adapter to the grammar.
func OptPipe(mode PipeMode) Option {
	return func(opts *Options) {
		opts.Pipe = mode
	}
}

// OptQueueCapacity sets the number of tokens buffered by the push/pull pipe.
func OptQueueCapacity(n int) Option {
	return func(opts *Options) {
		opts.QueueCapacity = n
	}
}

// OptBase sets the document base URI. OptBase("") sets an empty base,
// under which relative URIs are kept as written.
func OptBase(base string) Option {
	return func(opts *Options) {
		opts.Base = base
		opts.HasBase = true
	}
}

// OptSystemID sets the document name used in locations.
func OptSystemID(id string) Option {
	return func(opts *Options) {
		opts.SystemID = id
	}
}

// OptIDStore sets the store used for rdf:ID redefinition checks.
func OptIDStore(store IDStore) Option {
	return func(opts *Options) {
		opts.IDStore = store
	}
}

// OptLogger sets the logger.
func OptLogger(logger logr.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// OptStatementHandler sets the triple handler.
func OptStatementHandler(h StatementHandler) Option {
	return func(opts *Options) {
		opts.StatementHandler = h
	}
}

// OptNamespaceHandler sets the namespace handler.
func OptNamespaceHandler(h NamespaceHandler) Option {
	return func(opts *Options) {
		opts.NamespaceHandler = h
	}
}

// OptExtendedHandler sets the document and blank node scope handler.
func OptExtendedHandler(h ExtendedHandler) Option {
	return func(opts *Options) {
		opts.ExtendedHandler = h
	}
}

// OptErrorHandler sets the diagnostic handler. The default logs
// diagnostics to the configured logger.
func OptErrorHandler(h ErrorHandler) Option {
	return func(opts *Options) {
		opts.ErrorHandler = h
	}
}
