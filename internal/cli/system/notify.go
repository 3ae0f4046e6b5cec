package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/habitharbor/internal/cli"
	"github.com/julianstephens/habitharbor/internal/notifier"
)

type NotifyCmd struct {
	Text   string `arg:"" optional:"" help:"Message to show. Defaults to today's habit reminder."`
	DryRun bool   `help:"Print the notification to stdout instead of sending it."`
}

const notifyTimeout = 10 * time.Second

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	text := c.Text
	if text == "" {
		text = notifier.ReminderText(ctx.Store.Habits(), ctx.Store.Today())
	}
	if text == "" {
		if c.DryRun {
			ctx.Println("No habits scheduled today.")
		}
		return nil
	}

	if c.DryRun {
		ctx.Println("[DryRun] " + text)
		return nil
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := notifier.New().Notify(reqCtx, text); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
