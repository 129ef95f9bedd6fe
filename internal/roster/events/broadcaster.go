// Package events is the in-process "roster changed" channel.
//
// Publish is synchronous: every listener has run by the time it returns.
// Each listener runs under its own recover so one faulty subscriber cannot
// starve the others or fail the write that triggered the broadcast.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"credkit/internal/roster/models"
)

// Listener receives the full roster after every change.
type Listener func(clients []models.ClientRecord)

// PanicObserver is notified when a listener panics.
type PanicObserver interface {
	IncrementListenerPanics()
}

// Broadcaster fans roster changes out to subscribers in registration order.
type Broadcaster struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners []subscription
	logger    *slog.Logger
	observer  PanicObserver
}

type subscription struct {
	id uint64
	fn Listener
}

type Option func(*Broadcaster)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Broadcaster) {
		b.logger = logger
	}
}

func WithPanicObserver(o PanicObserver) Option {
	return func(b *Broadcaster) {
		b.observer = o
	}
}

func NewBroadcaster(opts ...Option) *Broadcaster {
	b := &Broadcaster{}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Subscribe registers fn and returns a function that removes it.
// The returned function is idempotent.
func (b *Broadcaster) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Broadcaster) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.listeners {
		if sub.id == id {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of active subscriptions.
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

// Publish delivers clients to every listener registered at call time.
// Each listener gets its own copy of the slice.
func (b *Broadcaster) Publish(ctx context.Context, clients []models.ClientRecord) {
	b.mu.RLock()
	snapshot := make([]subscription, len(b.listeners))
	copy(snapshot, b.listeners)
	b.mu.RUnlock()

	for _, sub := range snapshot {
		b.deliver(ctx, sub, cloneRoster(clients))
	}
}

func (b *Broadcaster) deliver(ctx context.Context, sub subscription, clients []models.ClientRecord) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "roster listener panicked",
				"subscription_id", sub.id,
				"panic", fmt.Sprint(r),
			)
			if b.observer != nil {
				b.observer.IncrementListenerPanics()
			}
		}
	}()
	sub.fn(clients)
}

func cloneRoster(clients []models.ClientRecord) []models.ClientRecord {
	out := make([]models.ClientRecord, len(clients))
	for i, c := range clients {
		c.Tags = append([]string(nil), c.Tags...)
		out[i] = c
	}
	return out
}
