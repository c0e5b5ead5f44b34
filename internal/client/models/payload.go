package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var (
	ErrEmptyPost    = errors.New("post needs text or an embed")
	ErrInvalidInput = errors.New("invalid input")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// PostPayload is the data a caller supplies to create a post.
type PostPayload struct {
	Text   string `validate:"max=3000"`
	Facets []lexicon.Facet
	// Langs are BCP-47 tags. Empty means the client's defaults.
	Langs []string `validate:"max=3,dive,bcp47_language_tag"`
	Tags  []string `validate:"max=8,dive,min=1,max=64"`
	Reply *lexicon.ReplyRef
	Embed Embed
	// CreatedAt defaults to the time of submission.
	CreatedAt time.Time
}

// Validate checks field limits.
func (p PostPayload) Validate() error {
	if p.Text == "" && p.Embed == nil {
		return ErrEmptyPost
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// Record builds the app.bsky.feed.post record for p. now is used when
// CreatedAt is zero.
func (p PostPayload) Record(now time.Time) (lexicon.FeedPost, error) {
	embed, err := MarshalEmbed(p.Embed)
	if err != nil {
		return lexicon.FeedPost{}, err
	}

	created := p.CreatedAt
	if created.IsZero() {
		created = now
	}

	return lexicon.FeedPost{
		Type:      lexicon.FeedPostCollection,
		Text:      p.Text,
		Facets:    p.Facets,
		Langs:     lo.Uniq(p.Langs),
		Tags:      p.Tags,
		Reply:     p.Reply,
		Embed:     embed,
		CreatedAt: created.UTC().Format(time.RFC3339Nano),
	}, nil
}

// ChatMessagePayload is the data needed to send a chat message.
type ChatMessagePayload struct {
	ConversationID string `validate:"required"`
	Text           string `validate:"required,max=1000"`
	Facets         []lexicon.Facet
	Embed          *lexicon.StrongRef
}

func (p ChatMessagePayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// Input builds the chat.bsky.convo.sendMessage body.
func (p ChatMessagePayload) Input() (lexicon.SendMessageInput, error) {
	var embed Embed
	if p.Embed != nil {
		embed = &RecordEmbed{Record: *p.Embed}
	}
	raw, err := MarshalEmbed(embed)
	if err != nil {
		return lexicon.SendMessageInput{}, err
	}
	return lexicon.SendMessageInput{
		ConvoID: p.ConversationID,
		Message: lexicon.MessageInput{Text: p.Text, Facets: p.Facets, Embed: raw},
	}, nil
}
