package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/skykit/internal/client/models"
)

const defaultPageSize = 20

func (a *App) Convos(ctx context.Context, args []string) error {
	limit, err := pageSize(args, 0)
	if err != nil {
		return err
	}
	convos, _, err := a.client.ListConversations(ctx, limit, "")
	if err != nil {
		return err
	}
	if len(convos) == 0 {
		fmt.Fprintln(a.out, "No conversations")
		return nil
	}
	for _, c := range convos {
		members, err := c.Members(ctx)
		if err != nil {
			return err
		}
		printConversation(a.out, c, members)
	}
	return nil
}

func (a *App) Messages(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	limit, err := pageSize(args, 1)
	if err != nil {
		return err
	}
	msgs, _, err := a.client.GetMessages(ctx, args[0], limit, "")
	if err != nil {
		return err
	}
	// Pages come newest first.
	for i := len(msgs) - 1; i >= 0; i-- {
		sender, _, err := msgs[i].Sender(ctx)
		if err != nil {
			return err
		}
		printMessage(a.out, msgs[i], sender)
	}
	return nil
}

func (a *App) Send(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	text := strings.Join(args[1:], " ")
	if text == "" {
		var err error
		text, err = getMultiline(a.reader, "Message text", a.out)
		if err != nil {
			return err
		}
	}
	m, err := a.client.SendMessage(ctx, models.ChatMessagePayload{ConversationID: args[0], Text: text})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Sent", m.ID)
	return nil
}

// pageSize parses args[i] as a page size, defaulting to defaultPageSize.
func pageSize(args []string, i int) (int, error) {
	if len(args) <= i {
		return defaultPageSize, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: limit must be a positive number", errUsage)
	}
	return n, nil
}
