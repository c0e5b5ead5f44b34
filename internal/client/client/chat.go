package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/skykit/internal/client/models"
	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/samber/lo"
)

// GetConversation fetches a conversation by ID.
func (c *Client) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	const op = "getConversation"
	if _, err := c.requireSession(op); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, opError(op, ErrInvalidArgument, fmt.Errorf("empty conversation id"))
	}

	var out lexicon.GetConvoOutput
	if err := c.call(ctx, lexicon.ConvoGetConvo, url.Values{"convoId": {id}}, &out); err != nil {
		return nil, mapError(op, nil, err)
	}
	return models.ConversationFromView(c, out.Convo), nil
}

// ListConversations returns one page of the account's conversations and
// the cursor of the next page, empty on the last one.
func (c *Client) ListConversations(ctx context.Context, limit int, cursor string) ([]*models.Conversation, string, error) {
	const op = "listConversations"
	if _, err := c.requireSession(op); err != nil {
		return nil, "", err
	}

	var out lexicon.ListConvosOutput
	if err := c.call(ctx, lexicon.ConvoListConvos, pageParams(limit, cursor), &out); err != nil {
		return nil, "", mapError(op, nil, err)
	}

	convos := lo.Map(out.Convos, func(v lexicon.ConvoView, _ int) *models.Conversation {
		return models.ConversationFromView(c, v)
	})
	return convos, out.Cursor, nil
}

// GetMessages returns one page of a conversation's messages, newest first.
func (c *Client) GetMessages(ctx context.Context, convoID string, limit int, cursor string) ([]*models.ChatMessage, string, error) {
	const op = "getMessages"
	if _, err := c.requireSession(op); err != nil {
		return nil, "", err
	}
	if convoID == "" {
		return nil, "", opError(op, ErrInvalidArgument, fmt.Errorf("empty conversation id"))
	}

	params := pageParams(limit, cursor)
	params.Set("convoId", convoID)

	var out lexicon.GetMessagesOutput
	if err := c.call(ctx, lexicon.ConvoGetMessages, params, &out); err != nil {
		return nil, "", mapError(op, nil, err)
	}

	msgs := lo.Map(out.Messages, func(v lexicon.MessageView, _ int) *models.ChatMessage {
		return models.MessageFromView(c, v, convoID)
	})
	return msgs, out.Cursor, nil
}

// SendMessage sends a message to payload.ConversationID.
func (c *Client) SendMessage(ctx context.Context, payload models.ChatMessagePayload) (*models.ChatMessage, error) {
	const op = "sendMessage"
	if _, err := c.requireSession(op); err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, opError(op, ErrInvalidArgument, err)
	}

	in, err := payload.Input()
	if err != nil {
		return nil, opError(op, ErrInvalidArgument, err)
	}

	var out lexicon.MessageView
	if err := c.call(ctx, lexicon.ConvoSendMessage, in, &out); err != nil {
		return nil, mapError(op, nil, err)
	}
	return models.MessageFromView(c, out, payload.ConversationID), nil
}

func pageParams(limit int, cursor string) url.Values {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	return params
}
