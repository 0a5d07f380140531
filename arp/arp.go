package arp

import (
	"context"
	"io"
)

// Parser parses RDF/XML documents. A Parser holds configuration only and
// may run several parses, one at a time or concurrently.
type Parser struct {
	opts Options
}

// NewParser creates a parser with the given options.
func NewParser(opts ...Option) *Parser {
	return &Parser{opts: buildOptions(opts)}
}

// ErrorMode returns a copy of the parser's error mode.
func (p *Parser) ErrorMode() *ErrorMode {
	return p.opts.ErrorMode.Clone()
}

// Parse reads an RDF/XML document from r and delivers its triples to the
// configured handlers. It returns nil unless the parse ended with a fatal
// condition. If ctx is nil, the context from the options is used.
func (p *Parser) Parse(ctx context.Context, r io.Reader) error {
	return p.ParseEvents(ctx, NewXMLSource(r, p.opts.SystemID))
}

// ParseEvents parses a document supplied as XML events.
func (p *Parser) ParseEvents(ctx context.Context, src XMLEventSource) error {
	if ctx == nil {
		ctx = p.opts.Context
	}
	if ctx == nil {
		ctx = context.Background()
	}
	opts := p.opts
	return newRDFParser(ctx, &opts, src).parse()
}

// Parse parses RDF/XML from r and streams its triples to handler.
// If ctx is nil, context.Background() is used.
func Parse(ctx context.Context, r io.Reader, handler StatementHandler, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts = append(opts, OptStatementHandler(handler))
	return NewParser(opts...).Parse(ctx, r)
}

// ParseTriples parses RDF/XML from r and streams Triple values to handler.
func ParseTriples(ctx context.Context, r io.Reader, handler TripleHandler, opts ...Option) error {
	return Parse(ctx, r, tripleAdapter{handler: handler}, opts...)
}
