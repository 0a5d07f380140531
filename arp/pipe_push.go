package arp

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// pushPipe runs the token source on its own goroutine and hands tokens
// over through a bounded channel.
type pushPipe struct {
	parent   context.Context
	ctx      context.Context
	cancel   context.CancelFunc
	ch       chan Token
	group    errgroup.Group
	finished atomic.Bool // consumer has seen TokenEOF or the producer's end
	ended    bool
	closed   bool
	err      error
}

func newPushPipe(ctx context.Context, src tokenSource, capacity int) *pushPipe {
	if ctx == nil {
		ctx = context.Background()
	}
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	p := &pushPipe{parent: ctx, ch: make(chan Token, capacity)}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.group.Go(func() error {
		defer close(p.ch)
		for {
			if err := checkContext(p.ctx); err != nil {
				return err
			}
			more, err := src.advance(p.push)
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}
	})
	return p
}

func (p *pushPipe) push(t Token) error {
	if p.finished.Load() {
		return newFatal(ErrInternalError, t.Location, ErrPipeOverflow, "%s pushed after end of input", t.Kind)
	}
	select {
	case p.ch <- t:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

func (p *pushPipe) next() (Token, error) {
	if p.closed {
		return Token{}, ErrParserClosed
	}
	if p.ended {
		if p.err != nil {
			return Token{}, p.err
		}
		return Token{Kind: TokenEOF}, nil
	}
	select {
	case t, ok := <-p.ch:
		if !ok {
			p.ended = true
			p.finished.Store(true)
			p.err = p.group.Wait()
			if p.err == nil {
				return Token{Kind: TokenEOF}, nil
			}
			return Token{}, p.err
		}
		if t.Kind == TokenEOF {
			p.ended = true
			p.finished.Store(true)
		}
		return t, nil
	case <-p.ctx.Done():
		return Token{}, p.ctx.Err()
	}
}

// close stops the producer, waits for it and returns its error. The
// cancellation close itself causes is not an error.
func (p *pushPipe) close() error {
	if p.closed {
		return p.err
	}
	p.closed = true
	p.cancel()
	err := p.group.Wait()
	if errors.Is(err, context.Canceled) && p.parent.Err() == nil {
		err = nil
	}
	if err != nil {
		p.err = err
	}
	return p.err
}
