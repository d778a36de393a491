package logging

import (
	"context"

	"git-commander/internal/model"
	pkgLog "git-commander/pkg/log"
)

// Consumer writes every dispatched event to the service log.
type Consumer struct {
	l pkgLog.Logger
}

func New(l pkgLog.Logger) *Consumer {
	return &Consumer{l: l}
}

func (c *Consumer) Name() string {
	return "log"
}

func (c *Consumer) Notify(ctx context.Context, event model.Event) error {
	c.l.Infof(ctx, "Event %s: %s by %s on %s at %s (%s)",
		event.ID, event.Type, event.Actor, event.Repo.Name,
		event.CreatedAt.UTC().Format("2006-01-02 15:04:05"), event.Repo.WebURL)
	return nil
}
