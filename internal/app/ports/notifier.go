package ports

import "context"

type Notifier interface {
	Notify(ctx context.Context, citizen, message string, details map[string]any) error
}
