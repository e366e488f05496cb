package economy

import "sort"

// Comparables holds same-category market values observed in currently active
// contracts or buildings. Local means same parcel; global is citywide.
type Comparables struct {
	Local  []float64
	Global []float64
}

// Medians reduces a comparable set to (local, global) medians. An empty set
// falls back to the current value so the caller never divides by an empty
// market.
func (c Comparables) Medians(current float64) (local, global float64) {
	local = medianOr(c.Local, current)
	global = medianOr(c.Global, current)
	return local, global
}

func medianOr(values []float64, fallback float64) float64 {
	vs := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			vs = append(vs, v)
		}
	}
	if len(vs) == 0 {
		return fallback
	}
	sort.Float64s(vs)
	mid := len(vs) / 2
	if len(vs)%2 == 1 {
		return vs[mid]
	}
	return (vs[mid-1] + vs[mid]) / 2
}
