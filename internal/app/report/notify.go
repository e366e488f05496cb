package report

import (
	"context"
	"fmt"
	"log"
)

// Notifier is the sink for pass summary notifications. It matches the
// notification port; declared here so report stays import-free of the app
// layer.
type Notifier interface {
	Notify(ctx context.Context, citizen, message string, details map[string]any) error
}

// NotifyOwner sends the pass summary to the pass owner. Delivery failures are
// logged, never escalated; the pass itself already completed.
func NotifyOwner(ctx context.Context, n Notifier, owner, pass string, s Summary) {
	if n == nil || owner == "" {
		return
	}
	details := map[string]any{
		"pass":      pass,
		"processed": s.Processed,
		"created":   s.Created,
		"updated":   s.Updated,
		"skipped":   s.Skipped,
		"no_action": s.NoAction,
		"failed":    s.Failed,
	}
	if len(s.Failures) > 0 {
		details["failures"] = s.Failures
	}
	if err := n.Notify(ctx, owner, fmt.Sprintf("The %s pass completed: %s.", pass, s.String()), details); err != nil {
		log.Printf("warn: %s pass summary notification failed: %v", pass, err)
	}
}
