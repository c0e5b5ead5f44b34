package models

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Resolver fetches the entities that relations point to. The client facade
// implements it.
type Resolver interface {
	// Self returns the authenticated account's profile, or nil when there
	// is no session.
	Self() *Profile
	GetProfile(ctx context.Context, actor string) (*Profile, error)
	GetConversation(ctx context.Context, id string) (*Conversation, error)
	GetMessages(ctx context.Context, convoID string, limit int, cursor string) ([]*ChatMessage, string, error)
	SendMessage(ctx context.Context, payload ChatMessagePayload) (*ChatMessage, error)
}

// memo caches one lazily fetched value. Concurrent callers share a single
// in-flight fetch; a failed fetch is not cached.
type memo[T any] struct {
	sf singleflight.Group

	mu   sync.Mutex
	set  bool
	item T
}

// get returns the cached value or runs fetch. The fetch is detached from
// ctx cancellation so that one caller giving up does not fail the others;
// a caller whose ctx ends stops waiting and gets ctx.Err().
func (m *memo[T]) get(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := m.peek(); ok {
		return v, nil
	}

	ch := m.sf.DoChan("", func() (any, error) {
		if v, ok := m.peek(); ok {
			return v, nil
		}
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		m.store(v)
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (m *memo[T]) peek() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.item, m.set
}

func (m *memo[T]) store(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.item = v
	m.set = true
}

// resolveProfile returns the session's own profile for did without a
// remote call, and otherwise asks r.
func resolveProfile(ctx context.Context, r Resolver, did string) (*Profile, error) {
	if self := r.Self(); self != nil && self.DID == did {
		return self, nil
	}
	return r.GetProfile(ctx, did)
}
