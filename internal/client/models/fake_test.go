package models

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var errNotFound = errors.New("not found")

type fakeResolver struct {
	self *Profile

	mu       sync.Mutex
	profiles map[string]*Profile
	convos   map[string]*Conversation
	sent     []ChatMessagePayload

	// gate, when set, blocks GetProfile until closed.
	gate chan struct{}

	profileCalls atomic.Int32
	convoCalls   atomic.Int32
}

func newFakeResolver(self *Profile) *fakeResolver {
	return &fakeResolver{
		self:     self,
		profiles: map[string]*Profile{},
		convos:   map[string]*Conversation{},
	}
}

func (f *fakeResolver) Self() *Profile { return f.self }

func (f *fakeResolver) GetProfile(ctx context.Context, actor string) (*Profile, error) {
	f.profileCalls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[actor]
	if !ok {
		return nil, errNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeResolver) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	f.convoCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.convos[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (f *fakeResolver) GetMessages(ctx context.Context, convoID string, limit int, cursor string) ([]*ChatMessage, string, error) {
	return []*ChatMessage{{ID: "m1", ConversationID: convoID, r: f}}, "next", nil
}

func (f *fakeResolver) SendMessage(ctx context.Context, payload ChatMessagePayload) (*ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, payload)
	return &ChatMessage{ID: "sent", Text: payload.Text, ConversationID: payload.ConversationID, r: f}, nil
}
