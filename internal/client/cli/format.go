package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/dmitrijs2005/skykit/internal/client/models"
)

const timeLayout = "2006-01-02 15:04"

func printProfile(w io.Writer, p *models.Profile) {
	fmt.Fprintf(w, "%s (@%s)\n", p.Name(), p.Handle)
	fmt.Fprintf(w, "  did:       %s\n", p.DID)
	fmt.Fprintf(w, "  posts:     %d\n", p.PostsCount)
	fmt.Fprintf(w, "  followers: %d\n", p.FollowersCount)
	fmt.Fprintf(w, "  follows:   %d\n", p.FollowsCount)
	if p.Description != "" {
		fmt.Fprintln(w, indent(p.Description))
	}
}

func printPost(w io.Writer, p *models.Post, author *models.Profile) {
	by := p.AuthorDID
	if author != nil {
		by = "@" + author.Handle
	}
	fmt.Fprintf(w, "%s  %s\n", by, formatTime(p.CreatedAt))
	fmt.Fprintln(w, indent(p.Text))
	if len(p.Langs) > 0 {
		fmt.Fprintf(w, "  langs: %s\n", strings.Join(p.Langs, ", "))
	}
	if p.Embed != nil {
		fmt.Fprintf(w, "  embed: %s\n", p.Embed.EmbedType())
	}
	fmt.Fprintf(w, "  %s\n", p.URI)
}

func printConversation(w io.Writer, c *models.Conversation, members []*models.Profile) {
	names := lo.Map(members, func(p *models.Profile, _ int) string { return "@" + p.Handle })
	line := fmt.Sprintf("%s  %s", c.ID, strings.Join(names, ", "))
	if c.UnreadCount > 0 {
		line += fmt.Sprintf("  (%d unread)", c.UnreadCount)
	}
	if c.Muted {
		line += "  [muted]"
	}
	fmt.Fprintln(w, line)
}

func printMessage(w io.Writer, m *models.ChatMessage, sender *models.Profile) {
	from := m.SenderDID
	if sender != nil {
		from = "@" + sender.Handle
	}
	text := m.Text
	if m.Deleted {
		text = "(deleted)"
	}
	fmt.Fprintf(w, "[%s] %s: %s\n", formatTime(m.SentAt), from, text)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
