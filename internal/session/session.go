// Package session carries the caller's identity through a request and fans out
// sign-in/sign-out notifications to interested components.
package session

import (
	"context"
	"sync"
	"time"

	"weddingplanner/internal/domain"
)

// EventType names an auth state change.
type EventType string

const (
	SignedIn  EventType = "SIGNED_IN"
	SignedOut EventType = "SIGNED_OUT"
)

// AuthEvent is published whenever an identity signs in or out.
type AuthEvent struct {
	Type   EventType
	UserID string
	Email  string
	At     time.Time
}

// Session is the per-request view of the authenticated caller.
type Session struct {
	TokenID   string
	UserID    string
	Email     string
	Role      domain.Role
	ExpiresAt time.Time
}

// Actor converts the session into the identity services authorize against.
func (s Session) Actor() domain.Actor {
	return domain.Actor{UserID: s.UserID, Role: s.Role}
}

type contextKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}

// Broker delivers auth events to subscribers synchronously, in subscription order.
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(AuthEvent)
	order  []int
}

// NewBroker returns an empty Broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]func(AuthEvent))}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Broker) Subscribe(fn func(AuthEvent)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish calls every current subscriber with ev.
func (b *Broker) Publish(ev AuthEvent) {
	b.mu.RLock()
	fns := make([]func(AuthEvent), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.subs[id])
	}
	b.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}
