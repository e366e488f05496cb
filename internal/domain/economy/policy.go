package economy

import "math"

// The adjustment policy turns comparables, a cost basis and a strategy into a
// bounded new value. All three entry points share the same shape: blend a
// base, apply the strategy multiplier, clamp the rate of change against the
// current value, apply the domain sanity clamp, round.

type WageInputs struct {
	Current           float64
	ProfitBeforeWages float64
	Comparables       Comparables
	ClassExpected     float64
	Strategy          Strategy
	Kickstart         bool
}

// NewWage computes the next wage for a business building. The base blends
// the profit available to the operator with local and global comparable
// wages, then pulls toward the operator class's expected wage. When profit
// before wages is positive the result is capped at a strategy-dependent
// fraction of it; a zero cap entry means uncapped.
func (cfg PolicyConfig) NewWage(in WageInputs) float64 {
	local, global := in.Comparables.Medians(in.Current)

	var base float64
	if in.ProfitBeforeWages > 0 {
		affordable := in.ProfitBeforeWages * cfg.WageProfitShare
		base = 0.5*affordable + 0.3*local + 0.2*global
	} else {
		base = 0.6*local + 0.4*global
	}
	if in.ClassExpected > 0 {
		base += cfg.WageClassPull * (in.ClassExpected - base)
	}

	v := base * cfg.StrategyMultiplier[in.Strategy]
	v = clampRate(in.Current, v, cfg.RateCap)
	if in.ProfitBeforeWages > 0 {
		if cap := cfg.WageProfitCap[in.Strategy]; cap > 0 {
			v = math.Min(v, in.ProfitBeforeWages*cap)
		}
	}
	return cfg.finish(v, in.Current, cfg.WageIncrement, in.Kickstart)
}

type LeaseInputs struct {
	Current     float64
	RentPrice   float64
	Comparables Comparables
	Strategy    Strategy
	Kickstart   bool
}

// NewLease computes the next lease price, blending local/global comparable
// leases with a share of the building's rent and capping at a fraction of
// the rent.
func (cfg PolicyConfig) NewLease(in LeaseInputs) float64 {
	local, global := in.Comparables.Medians(in.Current)
	base := 0.45*local + 0.25*global + 0.3*(in.RentPrice*cfg.LeaseRentShare)

	v := base * cfg.StrategyMultiplier[in.Strategy]
	v = clampRate(in.Current, v, cfg.RateCap)
	if in.RentPrice > 0 {
		v = math.Min(v, in.RentPrice*cfg.LeaseRentCap)
	}
	return cfg.finish(v, in.Current, cfg.LeaseIncrement, in.Kickstart)
}

type SellPriceInputs struct {
	Current        float64
	CostBasis      float64
	HasCostBasis   bool
	ReferencePrice float64
	Comparables    Comparables
	Strategy       Strategy
}

// NewSellPrice computes the next public-sell price for a produced resource.
// With a cost basis the base is cost times the strategy's profit margin;
// without one it falls back to the reference price times the import markup.
// Comparables, when present, pull the base toward the market.
func (cfg PolicyConfig) NewSellPrice(in SellPriceInputs) float64 {
	var base float64
	if in.HasCostBasis {
		base = in.CostBasis * cfg.ProfitMargin[in.Strategy]
	} else {
		if in.ReferencePrice <= 0 {
			return 0
		}
		base = in.ReferencePrice * cfg.ImportMarkup[in.Strategy]
	}
	local, global := in.Comparables.Medians(0)
	if local > 0 || global > 0 {
		market := medianOr([]float64{local, global}, base)
		base = 0.7*base + 0.3*market
	}

	v := base * cfg.StrategyMultiplier[in.Strategy]
	v = clampRate(in.Current, v, cfg.RateCap)
	return cfg.finish(v, in.Current, cfg.PriceIncrement, false)
}

type ImportPriceInputs struct {
	Current        float64
	MarketPrice    float64
	ReferencePrice float64
	Strategy       Strategy
}

// NewImportPrice prices an import contract at the going market rate (global
// public-sell median), falling back to the reference price.
func (cfg PolicyConfig) NewImportPrice(in ImportPriceInputs) float64 {
	base := in.MarketPrice
	if base <= 0 {
		base = in.ReferencePrice
	}
	if base <= 0 {
		return 0
	}
	v := base * cfg.StrategyMultiplier[in.Strategy]
	v = clampRate(in.Current, v, cfg.RateCap)
	return cfg.finish(v, in.Current, cfg.PriceIncrement, false)
}

// MarkupBuyPrice prices a standing markup-buy offer above the reference
// price; there is no blend, the markup is the whole point.
func (cfg PolicyConfig) MarkupBuyPrice(referencePrice float64, current float64, strategy Strategy) float64 {
	if referencePrice <= 0 {
		return 0
	}
	v := referencePrice * cfg.ImportMarkup[strategy]
	v = clampRate(current, v, cfg.RateCap)
	return cfg.finish(v, current, cfg.PriceIncrement, false)
}

// clampRate restricts v to within +/- limit of current. A zero current means
// bootstrapping from nothing, so no clamp applies.
func clampRate(current, v, limit float64) float64 {
	if current <= 0 {
		return v
	}
	lo := current * (1 - limit)
	hi := current * (1 + limit)
	return math.Min(hi, math.Max(lo, v))
}

func (cfg PolicyConfig) finish(v, current, increment float64, kickstart bool) float64 {
	v = roundToIncrement(v, increment)
	if v < 0 {
		v = 0
	}
	if v == 0 && current == 0 && kickstart {
		return cfg.KickstartValue
	}
	return v
}

func roundToIncrement(v, increment float64) float64 {
	if increment <= 0 {
		return v
	}
	return math.Round(v/increment) * increment
}
