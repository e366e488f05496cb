package economy

import (
	"fmt"
	"strings"
)

// BuildContractID derives the deterministic id for a contract key
// (party, building, resource, kind). Regulation passes recompute the id
// instead of searching, which is what makes create-or-update idempotent:
// two runs over the same key always converge on the same record.
//
// Buyer-side kinds key on (buyer, buyer building); public_sell keys on
// (seller, seller building) because an open offer has no buyer yet.
func BuildContractID(kind ContractKind, party, building, resource string) string {
	return fmt.Sprintf("contract_%s_%s_%s_%s", idToken(string(kind)), idToken(party), idToken(building), idToken(resource))
}

func idToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "none"
	}
	return strings.ReplaceAll(s, " ", "-")
}
