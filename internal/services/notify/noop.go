package notify

import (
	"context"

	"VaderBoot/internal/domain/models"
)

// Noop discards notifications.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) Notify(context.Context, models.Notification) error { return nil }
