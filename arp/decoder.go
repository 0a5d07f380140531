package arp

import (
	"context"
	"io"
)

// Decoder reads triples from an RDF/XML document one at a time.
//
// A Decoder drives the parser on the calling goroutine. Triples of one
// element are buffered until they have all been returned by Next.
// Diagnostics go to the configured error handler; the configured
// StatementHandler is replaced by the decoder itself.
type Decoder struct {
	p       *rdfParser
	queue   []Triple
	head    int
	started bool
	err     error
}

// NewDecoder creates a decoder reading from r. Cancellation is taken from
// OptContext.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	options := buildOptions(opts)
	ctx := options.Context
	if ctx == nil {
		ctx = context.Background()
	}
	d := &Decoder{}
	options.StatementHandler = tripleAdapter{handler: TripleHandlerFunc(d.enqueue)}
	d.p = newRDFParser(ctx, &options, NewXMLSource(r, options.SystemID))
	return d
}

func (d *Decoder) enqueue(t Triple) error {
	d.queue = append(d.queue, t)
	return nil
}

// Next returns the next triple, or io.EOF once the document has been
// read completely.
func (d *Decoder) Next() (Triple, error) {
	for {
		if d.head < len(d.queue) {
			t := d.queue[d.head]
			d.queue[d.head] = Triple{}
			d.head++
			if d.head == len(d.queue) {
				d.queue = d.queue[:0]
				d.head = 0
			}
			return t, nil
		}
		if d.err != nil {
			return Triple{}, d.err
		}
		d.advance()
	}
}

func (d *Decoder) advance() {
	if !d.started {
		d.started = true
		if err := d.p.begin(); err != nil {
			d.err = d.p.fail(err)
		}
		return
	}
	more, err := d.p.step()
	switch {
	case err != nil:
		d.err = d.p.fail(err)
	case !more:
		if err := d.p.end(); err != nil {
			d.err = err
			return
		}
		d.err = io.EOF
	}
}

// Err returns the error that ended decoding, or nil if decoding ended at
// end of input or has not ended yet.
func (d *Decoder) Err() error {
	if d.err == io.EOF {
		return nil
	}
	return d.err
}

// Close stops decoding. Further calls to Next return ErrParserClosed.
// Closing after the first call to Next and before the end of the document
// reports ERR_INTERRUPTED to the error handler's FatalError.
func (d *Decoder) Close() error {
	if d.err != nil {
		return nil
	}
	d.err = ErrParserClosed
	d.queue = nil
	d.head = 0
	err := d.p.pipe.close()
	if d.started {
		_ = d.p.fail(newFatal(ErrInterrupted, d.p.loc, ErrParserClosed, "decoding closed before the end of the document"))
	}
	return err
}
