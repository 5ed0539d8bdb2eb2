package messaging

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/sitestyle/internal/logging"
)

// DefaultBufferSize is the number of signals queued before senders block.
const DefaultBufferSize = 64

// ErrBusClosed is returned when sending on a closed bus.
var ErrBusClosed = errors.New("message bus closed")

// Bus queues signals for a single listener. Signals are handled one at a
// time in the order they were sent.
type Bus struct {
	ch     chan Message
	mu     sync.RWMutex
	closed bool
}

// NewBus creates a bus. A non-positive size uses DefaultBufferSize.
func NewBus(size int) *Bus {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Bus{ch: make(chan Message, size)}
}

// Send validates and queues msg, blocking while the queue is full.
func (b *Bus) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}
	select {
	case b.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendRaw decodes a JSON signal and queues it.
func (b *Bus) SendRaw(ctx context.Context, payload string) error {
	msg, err := ParseMessage(payload)
	if err != nil {
		return err
	}
	return b.Send(ctx, msg)
}

// Close stops accepting signals. Listen drains what is queued and returns.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.ch)
	}
}

// Listen handles queued signals until the bus is closed and drained, or ctx
// is cancelled. Handler errors are logged; they never stop the listener.
func (b *Bus) Listen(ctx context.Context, h *Handler) error {
	log := logging.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-b.ch:
			if !ok {
				return nil
			}
			if err := h.Handle(ctx, msg); err != nil {
				log.Warn().Err(err).Str("action", string(msg.Action)).Msg("signal failed")
			}
		}
	}
}
