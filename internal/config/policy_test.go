package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

func TestLoadPolicy_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadPolicy("")
	if err != nil {
		t.Fatalf("load policy: %v", err)
	}
	if cfg.RateCap != 0.05 {
		t.Fatalf("expected default rate cap 0.05, got %v", cfg.RateCap)
	}
	if cfg.ImportMarkup[economy.StrategyStandard] != 1.25 {
		t.Fatalf("expected default standard markup 1.25, got %v", cfg.ImportMarkup[economy.StrategyStandard])
	}
}

func TestLoadPolicy_OverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := `
rate_cap: 0.08
desired_stock: 75
wage_class_expectation:
  facchini: 700
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("load policy: %v", err)
	}
	if cfg.RateCap != 0.08 {
		t.Fatalf("expected overridden rate cap 0.08, got %v", cfg.RateCap)
	}
	if cfg.DesiredStock != 75 {
		t.Fatalf("expected overridden desired stock 75, got %v", cfg.DesiredStock)
	}
	if cfg.WageClassExpectation["facchini"] != 700 {
		t.Fatalf("expected overridden facchini wage 700, got %v", cfg.WageClassExpectation["facchini"])
	}
	// untouched knobs keep their defaults
	if cfg.ImportMarkup[economy.StrategyHigh] != 1.5 {
		t.Fatalf("expected default high markup 1.5, got %v", cfg.ImportMarkup[economy.StrategyHigh])
	}
}

func TestLoadPolicy_RejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("rate_cap: 1.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadPolicy(path); err == nil {
		t.Fatal("expected error for out-of-range rate cap")
	}
}

func TestLoadPolicy_MissingFileFails(t *testing.T) {
	if _, err := LoadPolicy(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
