package arp

import (
	"context"
	"fmt"
	"strings"
)

// DefaultQueueCapacity is the channel capacity of a push/pull pipe.
const DefaultQueueCapacity = 100

// PipeMode selects how tokens travel from the XML reader to the grammar.
type PipeMode uint8

const (
	// PipeCooperative reads the document on the parsing goroutine,
	// advancing the XML reader only when the grammar needs a token.
	PipeCooperative PipeMode = iota
	// PipePushPull reads the document on a producer goroutine that fills a
	// bounded queue the grammar drains.
	PipePushPull
)

func (m PipeMode) String() string {
	switch m {
	case PipeCooperative:
		return "cooperative"
	case PipePushPull:
		return "push-pull"
	default:
		return fmt.Sprintf("pipe(%d)", uint8(m))
	}
}

// ParsePipeMode parses "cooperative" or "push-pull".
func ParsePipeMode(s string) (PipeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cooperative", "pull":
		return PipeCooperative, nil
	case "push-pull", "pushpull", "push":
		return PipePushPull, nil
	}
	return 0, fmt.Errorf("arp: unknown pipe mode %q", s)
}

// tokenSource produces tokens one input event at a time. advance returns
// false once the final TokenEOF has been emitted.
type tokenSource interface {
	advance(emit func(Token) error) (bool, error)
}

// tokenPipe delivers tokens to the grammar in order.
type tokenPipe interface {
	// next returns the next token. After TokenEOF it keeps returning TokenEOF.
	next() (Token, error)
	// close releases the pipe and reports any producer failure not yet
	// returned by next.
	close() error
}

func newPipe(ctx context.Context, mode PipeMode, capacity int, src tokenSource) tokenPipe {
	if mode == PipePushPull {
		return newPushPipe(ctx, src, capacity)
	}
	return newPullPipe(ctx, src)
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
