package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"VaderBoot/internal/domain/models"
	domrepo "VaderBoot/internal/domain/repository"
)

// Multi delivers to every channel concurrently and records each result.
// A failing channel does not stop the others.
type Multi struct {
	notifiers []domrepo.Notifier
	metrics   domrepo.Metrics
}

func NewMulti(metrics domrepo.Metrics, notifiers ...domrepo.Notifier) *Multi {
	return &Multi{notifiers: notifiers, metrics: metrics}
}

func (m *Multi) Name() string {
	if len(m.notifiers) == 0 {
		return "none"
	}
	names := make([]string, 0, len(m.notifiers))
	for _, n := range m.notifiers {
		names = append(names, n.Name())
	}
	return strings.Join(names, "+")
}

// Len is the number of configured channels.
func (m *Multi) Len() int { return len(m.notifiers) }

func (m *Multi) Notify(ctx context.Context, n models.Notification) error {
	errs := make([]error, len(m.notifiers))
	var wg sync.WaitGroup
	for i, nt := range m.notifiers {
		wg.Add(1)
		go func(i int, nt domrepo.Notifier) {
			defer wg.Done()
			err := nt.Notify(ctx, n)
			if m.metrics != nil {
				m.metrics.RecordNotification(nt.Name(), err)
			}
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", nt.Name(), err)
			}
		}(i, nt)
	}
	wg.Wait()
	return errors.Join(errs...)
}
