package economy

import (
	"errors"
	"fmt"
)

// ErrNoCostBasis means no recipe produces the resource, or an input lacks a
// usable reference price. Callers fall back to a markup-over-reference
// strategy; they must never fabricate a price from nothing.
var ErrNoCostBasis = errors.New("no cost basis")

// CostBasis derives the production cost of one unit of resource from the
// first recipe whose outputs include it: sum of input quantity times the
// input's reference price, plus a fixed labor estimate.
func CostBasis(resource string, recipes []Recipe, referencePrices map[string]float64, laborCost float64) (float64, error) {
	for _, recipe := range recipes {
		if recipe.Outputs[resource] <= 0 {
			continue
		}
		total := 0.0
		for input, qty := range recipe.Inputs {
			price, ok := referencePrices[input]
			if !ok || price <= 0 {
				return 0, fmt.Errorf("%w: input %s of %s has no reference price", ErrNoCostBasis, input, resource)
			}
			total += qty * price
		}
		return total + laborCost, nil
	}
	return 0, fmt.Errorf("%w: no recipe produces %s", ErrNoCostBasis, resource)
}
