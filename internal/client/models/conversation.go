package models

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// maxMemberFetches bounds concurrent profile fetches in Members.
const maxMemberFetches = 4

// Conversation is a chat conversation. Members and messages are fetched on
// demand.
type Conversation struct {
	ID          string
	Rev         string
	MemberDIDs  []string
	Muted       bool
	UnreadCount int
	LastMessage *ChatMessage

	r       Resolver
	members memo[[]*Profile]
}

// ConversationFromView builds a Conversation from a convoView.
func ConversationFromView(r Resolver, v lexicon.ConvoView) *Conversation {
	c := &Conversation{
		ID:          v.ID,
		Rev:         v.Rev,
		MemberDIDs:  lo.Map(v.Members, func(m lexicon.ProfileViewBasic, _ int) string { return m.Did }),
		Muted:       v.Muted,
		UnreadCount: v.UnreadCount,
		r:           r,
	}

	if len(v.LastMessage) > 0 {
		var last lexicon.MessageView
		if err := json.Unmarshal(v.LastMessage, &last); err == nil &&
			(last.Type == lexicon.MessageViewType || last.Type == lexicon.DeletedMessageViewType) {
			c.LastMessage = MessageFromView(r, last, v.ID)
		}
	}
	return c
}

// Members returns full profiles of every member, in MemberDIDs order. The
// result is cached on c.
func (c *Conversation) Members(ctx context.Context) ([]*Profile, error) {
	return c.members.get(ctx, func(ctx context.Context) ([]*Profile, error) {
		out := make([]*Profile, len(c.MemberDIDs))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxMemberFetches)
		for i, did := range c.MemberDIDs {
			g.Go(func() error {
				p, err := resolveProfile(gctx, c.r, did)
				if err != nil {
					return err
				}
				out[i] = p
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// Messages fetches one page of messages, newest first. It is not cached.
func (c *Conversation) Messages(ctx context.Context, limit int, cursor string) ([]*ChatMessage, string, error) {
	return c.r.GetMessages(ctx, c.ID, limit, cursor)
}

// Send posts a plain text message to the conversation.
func (c *Conversation) Send(ctx context.Context, text string) (*ChatMessage, error) {
	return c.r.SendMessage(ctx, ChatMessagePayload{ConversationID: c.ID, Text: text})
}
