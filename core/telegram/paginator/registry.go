package paginator

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	coreconfig "github.com/m3rciful/tgpaginator/core/config"
	"github.com/m3rciful/tgpaginator/core/logger"
)

// Key identifies the chat message rendered by a paginator.
type Key struct {
	ChatID    int64
	MessageID int
}

// Registry maps chat messages to the paginators that rendered them.
// It is safe for concurrent use. Zero capacity and TTL disable eviction.
type Registry struct {
	capacity int
	ttl      time.Duration
	entries  *expirable.LRU[Key, *Paginator]

	// removing holds keys dropped by Remove so onEvict can skip them.
	removing sync.Map
	evicted  atomic.Int64
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCapacity bounds the number of tracked messages; the least recently
// used entry is evicted first.
func WithCapacity(n int) RegistryOption {
	return func(r *Registry) { r.capacity = n }
}

// WithTTL expires entries ttl after their registration. A positive ttl starts
// a cleanup goroutine that lives as long as the process; create such
// registries once, not per request.
func WithTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) { r.ttl = ttl }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	if r.capacity < 0 {
		r.capacity = 0
	}
	if r.ttl < 0 {
		r.ttl = 0
	}
	r.entries = expirable.NewLRU[Key, *Paginator](r.capacity, r.onEvict, r.ttl)
	return r
}

// NewRegistryFromConfig builds a registry using the paginator config section.
func NewRegistryFromConfig(cfg coreconfig.PaginatorConfig) *Registry {
	return NewRegistry(
		WithCapacity(cfg.RegistryCapacity),
		WithTTL(time.Duration(cfg.RegistryTTLSeconds)*time.Second),
	)
}

// Register stores p under key, replacing any previous paginator.
func (r *Registry) Register(key Key, p *Paginator) {
	r.entries.Add(key, p)
}

// Lookup returns the paginator registered under key or a *NotFoundError.
func (r *Registry) Lookup(key Key) (*Paginator, error) {
	p, ok := r.entries.Get(key)
	if !ok || p == nil {
		return nil, &NotFoundError{ChatID: key.ChatID, MessageID: key.MessageID}
	}
	return p, nil
}

// Remove forgets key, e.g. after the message was deleted. It does not count
// as an eviction.
func (r *Registry) Remove(key Key) bool {
	r.removing.Store(key, struct{}{})
	defer r.removing.Delete(key)
	ok := r.entries.Remove(key)
	if ok {
		logger.Debug(context.Background(), logComponent, "registry.remove",
			slog.Int64("chat_id", key.ChatID),
			slog.Int("message_id", key.MessageID),
		)
	}
	return ok
}

// Evicted reports how many entries were dropped for capacity or age.
func (r *Registry) Evicted() int64 {
	return r.evicted.Load()
}

// Len reports the number of tracked messages.
func (r *Registry) Len() int {
	return r.entries.Len()
}

func (r *Registry) onEvict(key Key, _ *Paginator) {
	if _, removed := r.removing.Load(key); removed {
		return
	}
	r.evicted.Add(1)
	logger.Debug(context.Background(), logComponent, "registry.evict",
		slog.Int64("chat_id", key.ChatID),
		slog.Int("message_id", key.MessageID),
		slog.Int("capacity", r.capacity),
		slog.Duration("ttl", r.ttl),
	)
}
