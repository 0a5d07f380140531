package arp

import "context"

// pullPipe advances the token source on demand from the consumer
// goroutine.
type pullPipe struct {
	ctx    context.Context
	src    tokenSource
	queue  []Token
	head   int
	done   bool
	closed bool
}

func newPullPipe(ctx context.Context, src tokenSource) *pullPipe {
	return &pullPipe{ctx: ctx, src: src}
}

func (p *pullPipe) push(t Token) error {
	p.queue = append(p.queue, t)
	return nil
}

func (p *pullPipe) next() (Token, error) {
	for p.head == len(p.queue) {
		if p.closed {
			return Token{}, ErrParserClosed
		}
		if p.done {
			return Token{Kind: TokenEOF}, nil
		}
		if err := checkContext(p.ctx); err != nil {
			return Token{}, err
		}
		p.queue = p.queue[:0]
		p.head = 0
		more, err := p.src.advance(p.push)
		if err != nil {
			p.done = true
			return Token{}, err
		}
		if !more {
			p.done = true
		}
	}
	t := p.queue[p.head]
	p.queue[p.head] = Token{}
	p.head++
	return t, nil
}

func (p *pullPipe) close() error {
	p.closed = true
	p.queue = nil
	p.head = 0
	return nil
}
