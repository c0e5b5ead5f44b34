package models

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/skykit/internal/lexicon"
)

// ChatMessage is a message in a conversation. The sender and the
// conversation are resolved on demand.
type ChatMessage struct {
	ID     string
	Rev    string
	Text   string
	SentAt time.Time
	Facets []lexicon.Facet
	// Embed is set when the message quotes a record.
	Embed *lexicon.StrongRef
	// Deleted marks a message the sender removed; it carries no text.
	Deleted bool

	SenderDID      string
	ConversationID string

	r            Resolver
	sender       memo[*Profile]
	conversation memo[*Conversation]
}

// MessageFromView builds a ChatMessage from a messageView or
// deletedMessageView. convoID may be empty when it is not known.
func MessageFromView(r Resolver, v lexicon.MessageView, convoID string) *ChatMessage {
	m := &ChatMessage{
		ID:             v.ID,
		Rev:            v.Rev,
		Text:           v.Text,
		SentAt:         parseTime(v.SentAt),
		Facets:         v.Facets,
		Deleted:        v.Type == lexicon.DeletedMessageViewType,
		SenderDID:      v.Sender.Did,
		ConversationID: convoID,
		r:              r,
	}
	if rec := recordEmbed(v.Embed); rec != nil {
		m.Embed = &rec.Record
	}
	return m
}

// recordEmbed returns the quoted record when raw is an
// app.bsky.embed.record; any other embed is ignored.
func recordEmbed(raw json.RawMessage) *RecordEmbed {
	e, err := UnmarshalEmbed(raw)
	if err != nil {
		return nil
	}
	rec, _ := e.(*RecordEmbed)
	return rec
}

// Sender returns the profile of the account that sent the message. A
// message sent by the session's own account resolves without a remote call.
func (m *ChatMessage) Sender(ctx context.Context) (*Profile, bool, error) {
	if m.SenderDID == "" {
		return nil, false, nil
	}
	p, err := m.sender.get(ctx, func(ctx context.Context) (*Profile, error) {
		return resolveProfile(ctx, m.r, m.SenderDID)
	})
	if err != nil {
		return nil, true, err
	}
	return p, true, nil
}

// Conversation returns the conversation the message belongs to. ok is
// false when the message was built without a conversation ID.
func (m *ChatMessage) Conversation(ctx context.Context) (*Conversation, bool, error) {
	if m.ConversationID == "" {
		return nil, false, nil
	}
	c, err := m.conversation.get(ctx, func(ctx context.Context) (*Conversation, error) {
		return m.r.GetConversation(ctx, m.ConversationID)
	})
	if err != nil {
		return nil, true, err
	}
	return c, true, nil
}
