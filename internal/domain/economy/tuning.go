package economy

// DefaultPolicyConfig returns the built-in tuning tables. The config is a
// plain value injected into every pass; nothing in the engine reads these
// numbers through package state.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		StrategyMultiplier: map[Strategy]float64{
			StrategyLow:      0.85,
			StrategyStandard: 1.0,
			StrategyHigh:     1.15,
		},
		ProfitMargin: map[Strategy]float64{
			StrategyLow:      1.1,
			StrategyStandard: 1.2,
			StrategyHigh:     1.35,
		},
		ImportMarkup: map[Strategy]float64{
			StrategyLow:      1.1,
			StrategyStandard: 1.25,
			StrategyHigh:     1.5,
		},
		WageProfitCap: map[Strategy]float64{
			StrategyLow:      0.5,
			StrategyStandard: 0.7,
			StrategyHigh:     0, // uncapped
		},
		WageClassExpectation: map[string]float64{
			"facchini":   600,
			"popolani":   900,
			"cittadini":  1500,
			"artisti":    1200,
			"forestieri": 1000,
			"nobili":     2500,
		},
		RateCap:           0.05,
		WageProfitShare:   0.7,
		WageClassPull:     0.3,
		LeaseRentShare:    0.35,
		LeaseRentCap:      0.5,
		WageIncrement:     5,
		LeaseIncrement:    5,
		PriceIncrement:    1,
		KickstartValue:    5,
		LaborUnitCost:     15,
		UpdateRate:        0.1,
		MinFetchAmount:    1,
		DesiredStock:      50,
		DefaultPremiumPct: 0.25,
		TrustBump:         5,
		PassOwner:         "consiglio_dei_dieci",
	}
}

// PolicyConfig carries every tuning table the adjustment policy and the
// contract passes need. See regulator.example.yaml for the override file.
type PolicyConfig struct {
	StrategyMultiplier   map[Strategy]float64 `yaml:"strategy_multiplier"`
	ProfitMargin         map[Strategy]float64 `yaml:"profit_margin"`
	ImportMarkup         map[Strategy]float64 `yaml:"import_markup"`
	WageProfitCap        map[Strategy]float64 `yaml:"wage_profit_cap"`
	WageClassExpectation map[string]float64   `yaml:"wage_class_expectation"`

	RateCap         float64 `yaml:"rate_cap"`
	WageProfitShare float64 `yaml:"wage_profit_share"`
	WageClassPull   float64 `yaml:"wage_class_pull"`
	LeaseRentShare  float64 `yaml:"lease_rent_share"`
	LeaseRentCap    float64 `yaml:"lease_rent_cap"`

	WageIncrement  float64 `yaml:"wage_increment"`
	LeaseIncrement float64 `yaml:"lease_increment"`
	PriceIncrement float64 `yaml:"price_increment"`
	KickstartValue float64 `yaml:"kickstart_value"`
	LaborUnitCost  float64 `yaml:"labor_unit_cost"`

	UpdateRate        float64 `yaml:"update_rate"`
	MinFetchAmount    float64 `yaml:"min_fetch_amount"`
	DesiredStock      float64 `yaml:"desired_stock"`
	DefaultPremiumPct float64 `yaml:"default_premium_pct"`
	TrustBump         float64 `yaml:"trust_bump"`

	// PassOwner receives the per-pass summary notifications.
	PassOwner string `yaml:"pass_owner"`
}
