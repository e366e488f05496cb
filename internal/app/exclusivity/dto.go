package exclusivity

import "github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"

type SubmitRequest struct {
	Initiator    string  `json:"initiator"`
	Supplier     string  `json:"supplier"`
	ResourceType string  `json:"resource_type"`
	PremiumPct   float64 `json:"premium_pct,omitempty"`
	DurationDays int     `json:"duration_days,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

type Request struct {
	DryRun   bool
	Strategy economy.Strategy
}
