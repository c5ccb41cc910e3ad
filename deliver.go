package md2tg

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alnah/go-md2tg/internal/pipeline"
)

// ParseMode is the Telegram parse_mode a message is sent with.
type ParseMode string

// Parse modes.
const (
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
	ParseModeNone       ParseMode = ""
)

// Transport sends one message. Implementations report a message whose
// markup the server refused by returning an error wrapping ErrParseRejected.
type Transport interface {
	SendMessage(ctx context.Context, text string, mode ParseMode) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, text string, mode ParseMode) error

// SendMessage calls f.
func (f TransportFunc) SendMessage(ctx context.Context, text string, mode ParseMode) error {
	return f(ctx, text, mode)
}

// Throttle spaces requests at least Interval apart.
// The zero value does not wait. A Throttle is safe for concurrent use;
// waiting callers are served one at a time.
type Throttle struct {
	Interval time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

// Wait blocks until Interval has passed since the previous request, then
// records a new request. It returns the context error if ctx ends first.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if !t.lastRequest.IsZero() {
		if wait := t.Interval - time.Since(t.lastRequest); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	t.lastRequest = time.Now()
	return nil
}

// Deliver converts markdown, splits it, and sends the chunks in order with
// ParseModeMarkdownV2. A chunk the transport rejects with ErrParseRejected
// is sent again as plain text with ParseModeNone. Empty chunks are skipped.
// Any other failure stops delivery and is wrapped in ErrDelivery.
func (c *Converter) Deliver(ctx context.Context, transport Transport, markdown string) error {
	chunks, err := c.Render(markdown)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	for i, chunk := range chunks {
		if chunk == "" {
			continue
		}
		err := c.send(ctx, transport, chunk, ParseModeMarkdownV2)
		if errors.Is(err, ErrParseRejected) {
			err = c.send(ctx, transport, pipeline.Unescape(chunk), ParseModeNone)
		}
		if err != nil {
			return fmt.Errorf("%w: chunk %d of %d: %w", ErrDelivery, i+1, len(chunks), err)
		}
	}
	return nil
}

func (c *Converter) send(ctx context.Context, transport Transport, text string, mode ParseMode) error {
	if c.cfg.throttle != nil {
		if err := c.cfg.throttle.Wait(ctx); err != nil {
			return err
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	return transport.SendMessage(ctx, text, mode)
}
