package economy

import (
	"errors"
	"fmt"
)

var ErrMetadataMismatch = errors.New("metadata does not match contract kind")

// Metadata is the kind-specific payload of a contract, shaped as a tagged
// union: at most one member is set, and which one is allowed depends on the
// contract kind. Validate enforces that at construction time so downstream
// code never has to parse loose maps.
type Metadata struct {
	Exclusive  *ExclusiveTerms `json:"exclusive,omitempty"`
	Suspension *SuspensionRef  `json:"suspension,omitempty"`
	Project    *ProjectTerms   `json:"project,omitempty"`
	Recurrent  *RecurrentTerms `json:"recurrent,omitempty"`
}

// ExclusiveTerms records the premium and the stratagem that negotiated an
// import_exclusive contract.
type ExclusiveTerms struct {
	PremiumPct  float64 `json:"premium_pct"`
	StratagemID string  `json:"stratagem_id"`
}

// SuspensionRef is stamped onto a public_sell contract when a stratagem
// suspends it, so expiry reactivates exactly the contracts this instance
// touched and nothing else.
type SuspensionRef struct {
	StratagemID string `json:"stratagem_id"`
}

type ProjectTerms struct {
	ProjectID string `json:"project_id"`
	Phase     string `json:"phase,omitempty"`
}

type RecurrentTerms struct {
	IntervalDays int `json:"interval_days"`
}

func (m Metadata) IsZero() bool {
	return m.Exclusive == nil && m.Suspension == nil && m.Project == nil && m.Recurrent == nil
}

func (m Metadata) Validate(kind ContractKind) error {
	set := 0
	if m.Exclusive != nil {
		set++
	}
	if m.Suspension != nil {
		set++
	}
	if m.Project != nil {
		set++
	}
	if m.Recurrent != nil {
		set++
	}
	if set > 1 {
		return fmt.Errorf("%w: multiple payloads set for kind %s", ErrMetadataMismatch, kind)
	}
	switch {
	case m.Exclusive != nil:
		if kind != KindImportExclusive {
			return fmt.Errorf("%w: exclusive terms on kind %s", ErrMetadataMismatch, kind)
		}
		if m.Exclusive.StratagemID == "" {
			return fmt.Errorf("%w: exclusive terms without stratagem id", ErrMetadataMismatch)
		}
	case m.Suspension != nil:
		if kind != KindPublicSell {
			return fmt.Errorf("%w: suspension ref on kind %s", ErrMetadataMismatch, kind)
		}
		if m.Suspension.StratagemID == "" {
			return fmt.Errorf("%w: suspension ref without stratagem id", ErrMetadataMismatch)
		}
	case m.Project != nil:
		if kind != KindConstructionProject {
			return fmt.Errorf("%w: project terms on kind %s", ErrMetadataMismatch, kind)
		}
	case m.Recurrent != nil:
		if kind != KindRecurrent {
			return fmt.Errorf("%w: recurrent terms on kind %s", ErrMetadataMismatch, kind)
		}
	}
	return nil
}
