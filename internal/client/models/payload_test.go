package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload PostPayload
		wantErr error
	}{
		{"ok", PostPayload{Text: "hello", Langs: []string{"en", "pt-BR"}}, nil},
		{"embed only", PostPayload{Embed: &RecordEmbed{}}, nil},
		{"empty", PostPayload{}, ErrEmptyPost},
		{"too long", PostPayload{Text: strings.Repeat("é", 3001)}, ErrInvalidInput},
		{"max length in runes", PostPayload{Text: strings.Repeat("é", 3000)}, nil},
		{"too many langs", PostPayload{Text: "x", Langs: []string{"en", "de", "fr", "es"}}, ErrInvalidInput},
		{"bad lang", PostPayload{Text: "x", Langs: []string{"not a tag"}}, ErrInvalidInput},
		{"empty tag", PostPayload{Text: "x", Tags: []string{""}}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPostPayload_Record(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p := PostPayload{
		Text:  "hi",
		Langs: []string{"en", "en"},
		Embed: &RecordEmbed{Record: lexicon.StrongRef{URI: "at://did:plc:a/app.bsky.feed.post/1", CID: "c"}},
	}

	rec, err := p.Record(now)
	require.NoError(t, err)

	assert.Equal(t, lexicon.FeedPostCollection, rec.Type)
	assert.Equal(t, []string{"en"}, rec.Langs)
	assert.Equal(t, "2024-06-01T12:00:00Z", rec.CreatedAt)
	assert.JSONEq(t,
		`{"$type":"app.bsky.embed.record","record":{"uri":"at://did:plc:a/app.bsky.feed.post/1","cid":"c"}}`,
		string(rec.Embed))
}

func TestChatMessagePayload(t *testing.T) {
	assert.ErrorIs(t, ChatMessagePayload{Text: "x"}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, ChatMessagePayload{ConversationID: "c"}.Validate(), ErrInvalidInput)

	p := ChatMessagePayload{
		ConversationID: "c1",
		Text:           "hey",
		Embed:          &lexicon.StrongRef{URI: "at://did:plc:a/app.bsky.feed.post/1", CID: "c"},
	}
	require.NoError(t, p.Validate())

	in, err := p.Input()
	require.NoError(t, err)
	assert.Equal(t, "c1", in.ConvoID)
	assert.Equal(t, "hey", in.Message.Text)

	var head struct {
		Type string `json:"$type"`
	}
	require.NoError(t, json.Unmarshal(in.Message.Embed, &head))
	assert.Equal(t, lexicon.EmbedRecordType, head.Type)
}
