package staticcatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

// Provider serves resource and building definitions from JSON files under
// Root (resources.json, buildings.json). Definitions are read-only reference
// data; the engine never writes them back.
type Provider struct {
	Root string
}

func (p Provider) ResourceTypes(_ context.Context) (map[string]economy.ResourceDef, error) {
	b, err := os.ReadFile(filepath.Join(p.Root, "resources.json"))
	if err != nil {
		return nil, fmt.Errorf("read resource catalog: %w", err)
	}
	var defs []economy.ResourceDef
	if err := json.Unmarshal(b, &defs); err != nil {
		return nil, fmt.Errorf("parse resource catalog: %w", err)
	}
	out := make(map[string]economy.ResourceDef, len(defs))
	for _, d := range defs {
		out[d.ID] = d
	}
	return out, nil
}

func (p Provider) BuildingTypes(_ context.Context) (map[string]economy.BuildingDef, error) {
	b, err := os.ReadFile(filepath.Join(p.Root, "buildings.json"))
	if err != nil {
		return nil, fmt.Errorf("read building catalog: %w", err)
	}
	var defs []economy.BuildingDef
	if err := json.Unmarshal(b, &defs); err != nil {
		return nil, fmt.Errorf("parse building catalog: %w", err)
	}
	out := make(map[string]economy.BuildingDef, len(defs))
	for _, d := range defs {
		out[d.ID] = d
	}
	return out, nil
}
