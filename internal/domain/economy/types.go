package economy

import "time"

type ContractKind string

const (
	KindPublicSell          ContractKind = "public_sell"
	KindImport              ContractKind = "import"
	KindImportExclusive     ContractKind = "import_exclusive"
	KindMarkupBuy           ContractKind = "markup_buy"
	KindConstructionProject ContractKind = "construction_project"
	KindRecurrent           ContractKind = "recurrent"
	KindStorageQuery        ContractKind = "storage_query"
)

type ContractStatus string

const (
	StatusPending   ContractStatus = "pending"
	StatusActive    ContractStatus = "active"
	StatusSuspended ContractStatus = "suspended"
	StatusExpired   ContractStatus = "expired"
	StatusCompleted ContractStatus = "completed"
	StatusFailed    ContractStatus = "failed"
)

type Strategy string

const (
	StrategyLow      Strategy = "low"
	StrategyStandard Strategy = "standard"
	StrategyHigh     Strategy = "high"
)

func (s Strategy) Valid() bool {
	switch s {
	case StrategyLow, StrategyStandard, StrategyHigh:
		return true
	}
	return false
}

// Contract is the central record of the regulation engine. Its ID is derived
// from the contract key (see BuildContractID), so recomputing the ID for the
// same key always lands on the same record.
type Contract struct {
	ID             string         `json:"id"`
	Kind           ContractKind   `json:"kind"`
	Buyer          string         `json:"buyer,omitempty"`
	Seller         string         `json:"seller,omitempty"`
	SellerBuilding string         `json:"seller_building,omitempty"`
	BuyerBuilding  string         `json:"buyer_building,omitempty"`
	ResourceType   string         `json:"resource_type"`
	PricePerUnit   float64        `json:"price_per_unit"`
	TargetAmount   float64        `json:"target_amount"`
	Status         ContractStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	EndAt          time.Time      `json:"end_at,omitempty"`
	Metadata       Metadata       `json:"metadata,omitempty"`
}

type BuildingCategory string

const (
	CategoryHome     BuildingCategory = "home"
	CategoryBusiness BuildingCategory = "business"
)

// Building is a production, storage or dwelling site. GrossIncome and
// InputCosts are maintained by the external execution engine over a rolling
// window; the regulation passes only read them.
type Building struct {
	ID          string           `json:"id"`
	Type        string           `json:"type"`
	Category    BuildingCategory `json:"category"`
	Owner       string           `json:"owner,omitempty"`
	Operator    string           `json:"operator,omitempty"`
	Parcel      string           `json:"parcel,omitempty"`
	Wages       float64          `json:"wages"`
	RentPrice   float64          `json:"rent_price"`
	LeasePrice  float64          `json:"lease_price"`
	GrossIncome float64          `json:"gross_income"`
	InputCosts  float64          `json:"input_costs"`
	SocialClass string           `json:"social_class,omitempty"`
}

func (b Building) ProfitBeforeWages() float64 {
	return b.GrossIncome - b.InputCosts
}

type ResourceStock struct {
	ResourceType string  `json:"resource_type"`
	BuildingID   string  `json:"building_id"`
	Owner        string  `json:"owner"`
	Quantity     float64 `json:"quantity"`
}

type Relationship struct {
	CitizenA        string    `json:"citizen_a"`
	CitizenB        string    `json:"citizen_b"`
	TrustScore      float64   `json:"trust_score"`
	LastInteraction time.Time `json:"last_interaction"`
}

// Problem is a derived signal regenerated on each detection pass; its ID is
// deterministic so reconciliation can diff desired against existing records.
type Problem struct {
	ID                 string   `json:"id"`
	Subject            string   `json:"subject"`
	Kind               string   `json:"kind"`
	Severity           string   `json:"severity"`
	Description        string   `json:"description"`
	SuggestedSolutions []string `json:"suggested_solutions,omitempty"`
}

const ProblemSupplyShortage = "supply_shortage"

type StratagemStatus string

const (
	StratagemProposed   StratagemStatus = "proposed"
	StratagemActive     StratagemStatus = "active"
	StratagemMaintained StratagemStatus = "maintained"
	StratagemExpired    StratagemStatus = "expired"
	StratagemFailed     StratagemStatus = "failed"
)

func (s StratagemStatus) Terminal() bool {
	return s == StratagemExpired || s == StratagemFailed
}

// Stratagem is a multi-step economic maneuver layered on top of ordinary
// contracts. The only kind the engine currently runs is the exclusivity
// lockout.
type Stratagem struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Initiator    string          `json:"initiator"`
	Supplier     string          `json:"supplier"`
	ResourceType string          `json:"resource_type"`
	PremiumPct   float64         `json:"premium_pct"`
	DurationDays int             `json:"duration_days"`
	Status       StratagemStatus `json:"status"`
	Suspended    int             `json:"suspended_contracts"`
	CreatedAt    time.Time       `json:"created_at"`
	ExpiresAt    time.Time       `json:"expires_at"`
	Notes        string          `json:"notes,omitempty"`
}

const StratagemExclusivityLockout = "exclusivity_lockout"

// Catalog definitions. These come from the external Catalog Provider and are
// never mutated by the engine.

type ResourceDef struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	ReferencePrice float64 `json:"reference_price"`
}

type Recipe struct {
	Inputs       map[string]float64 `json:"inputs"`
	Outputs      map[string]float64 `json:"outputs"`
	CraftMinutes int                `json:"craft_minutes,omitempty"`
}

type BuildingDef struct {
	ID       string           `json:"id"`
	Category BuildingCategory `json:"category"`
	Recipes  []Recipe         `json:"recipes,omitempty"`
	Tier     int              `json:"tier,omitempty"`
}
