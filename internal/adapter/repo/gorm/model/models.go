package model

import "time"

type Contract struct {
	ID             string `gorm:"primaryKey"`
	Kind           string `gorm:"index"`
	Buyer          string `gorm:"index"`
	Seller         string `gorm:"index"`
	SellerBuilding string
	BuyerBuilding  string
	ResourceType   string `gorm:"index"`
	PricePerUnit   float64
	TargetAmount   float64
	Status         string `gorm:"index"`
	CreatedAt      time.Time
	EndAt          time.Time
	Metadata       []byte `gorm:"type:jsonb"`
}

type Building struct {
	ID          string `gorm:"primaryKey"`
	Type        string
	Category    string `gorm:"index"`
	Owner       string `gorm:"index"`
	Operator    string `gorm:"index"`
	Parcel      string `gorm:"index"`
	Wages       float64
	RentPrice   float64
	LeasePrice  float64
	GrossIncome float64
	InputCosts  float64
	SocialClass string
}

type ResourceStock struct {
	ResourceType string `gorm:"primaryKey"`
	BuildingID   string `gorm:"primaryKey"`
	Owner        string `gorm:"primaryKey"`
	Quantity     float64
}

type Relationship struct {
	CitizenA        string `gorm:"primaryKey"`
	CitizenB        string `gorm:"primaryKey"`
	TrustScore      float64
	LastInteraction time.Time
}

type Problem struct {
	ID                 string `gorm:"primaryKey"`
	Subject            string `gorm:"index"`
	Kind               string `gorm:"index"`
	Severity           string
	Description        string
	SuggestedSolutions []byte `gorm:"type:jsonb"`
}

type Stratagem struct {
	ID           string `gorm:"primaryKey"`
	Kind         string `gorm:"index"`
	Initiator    string `gorm:"index"`
	Supplier     string `gorm:"index"`
	ResourceType string
	PremiumPct   float64
	DurationDays int
	Status       string `gorm:"index"`
	Suspended    int
	CreatedAt    time.Time
	ExpiresAt    time.Time
	Notes        string
}

type Notification struct {
	ID        string `gorm:"primaryKey"`
	Citizen   string `gorm:"index"`
	Message   string
	Details   []byte `gorm:"type:jsonb"`
	CreatedAt time.Time
}
