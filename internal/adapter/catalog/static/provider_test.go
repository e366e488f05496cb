package staticcatalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	resources := `[
  {"id": "silk", "name": "Silk", "reference_price": 80},
  {"id": "wood", "name": "Wood", "reference_price": 10}
]`
	buildings := `[
  {"id": "silk_mill", "category": "business", "recipes": [
    {"inputs": {"raw_silk": 2}, "outputs": {"silk": 1}}
  ]},
  {"id": "canal_house", "category": "home"}
]`
	if err := os.WriteFile(filepath.Join(dir, "resources.json"), []byte(resources), 0o644); err != nil {
		t.Fatalf("write resources: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "buildings.json"), []byte(buildings), 0o644); err != nil {
		t.Fatalf("write buildings: %v", err)
	}
	return dir
}

func TestProvider_LoadsDefinitions(t *testing.T) {
	p := Provider{Root: writeCatalog(t)}

	resources, err := p.ResourceTypes(context.Background())
	if err != nil {
		t.Fatalf("resource types: %v", err)
	}
	if resources["silk"].ReferencePrice != 80 {
		t.Fatalf("expected silk reference price 80, got %v", resources["silk"].ReferencePrice)
	}

	buildings, err := p.BuildingTypes(context.Background())
	if err != nil {
		t.Fatalf("building types: %v", err)
	}
	mill := buildings["silk_mill"]
	if len(mill.Recipes) != 1 || mill.Recipes[0].Outputs["silk"] != 1 {
		t.Fatalf("unexpected silk_mill recipes: %+v", mill.Recipes)
	}
}

func TestProvider_MissingRootFails(t *testing.T) {
	p := Provider{Root: filepath.Join(t.TempDir(), "absent")}
	if _, err := p.ResourceTypes(context.Background()); err == nil {
		t.Fatal("expected error for missing catalog root")
	}
}
