package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
)

var getMultiline = GetMultiline

// Chat records a user message. Without arguments it reads a multi-line
// message.
func (a *App) Chat(ctx context.Context, args []string) error {
	content := strings.Join(args, " ")
	if content == "" {
		var err error
		if content, err = getMultiline(a.reader, "Message", a.out); err != nil {
			return err
		}
	}

	msg := &models.ChatMessage{Role: models.RoleUser, Content: content}
	if err := a.chatService.Append(ctx, msg); err != nil {
		a.println("Error:", err)
		return err
	}
	a.println("Saved")
	return nil
}

// History prints the latest chat messages, oldest first.
func (a *App) History(ctx context.Context, args []string) error {
	limit := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			err = fmt.Errorf("%q is not a positive count", args[0])
			a.println("Error:", err)
			return err
		}
		limit = n
	}

	msgs, err := a.chatService.History(ctx, limit)
	if err != nil {
		a.println("Error:", err)
		return err
	}
	if len(msgs) == 0 {
		a.println("No messages")
	}
	for _, m := range msgs {
		a.printf("[%s] %s: %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Role, m.Content)
	}
	return nil
}
