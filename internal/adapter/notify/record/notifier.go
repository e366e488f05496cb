package recordnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/universe-engine-ai/serenissima-sub006/internal/adapter/repo/gorm/model"
)

// Notifier persists notifications as records; citizens poll them through the
// main city API, so delivery here is just an insert.
type Notifier struct {
	db *gorm.DB
}

func New(db *gorm.DB) Notifier {
	return Notifier{db: db}
}

func (n Notifier) Notify(ctx context.Context, citizen, message string, details map[string]any) error {
	var payload []byte
	if len(details) > 0 {
		b, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("encode notification details: %w", err)
		}
		payload = b
	}
	m := model.Notification{
		ID:        uuid.NewString(),
		Citizen:   citizen,
		Message:   message,
		Details:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if err := n.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("store notification for %s: %w", citizen, err)
	}
	return nil
}
