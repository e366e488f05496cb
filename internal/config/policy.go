package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

// LoadPolicy returns the default policy overlaid with the YAML file at path.
// An empty path means pure defaults. Fields absent from the file keep their
// default values, so operators only write the knobs they tune.
func LoadPolicy(path string) (economy.PolicyConfig, error) {
	cfg := economy.DefaultPolicyConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return economy.PolicyConfig{}, fmt.Errorf("read policy config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return economy.PolicyConfig{}, fmt.Errorf("parse policy config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return economy.PolicyConfig{}, fmt.Errorf("policy config %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg economy.PolicyConfig) error {
	if cfg.RateCap <= 0 || cfg.RateCap >= 1 {
		return fmt.Errorf("rate_cap must be in (0, 1), got %v", cfg.RateCap)
	}
	if cfg.UpdateRate < 0 || cfg.UpdateRate > 1 {
		return fmt.Errorf("update_rate must be in [0, 1], got %v", cfg.UpdateRate)
	}
	if cfg.DesiredStock <= 0 {
		return fmt.Errorf("desired_stock must be positive, got %v", cfg.DesiredStock)
	}
	for _, s := range []economy.Strategy{economy.StrategyLow, economy.StrategyStandard, economy.StrategyHigh} {
		if cfg.StrategyMultiplier[s] <= 0 {
			return fmt.Errorf("strategy_multiplier missing or non-positive for %s", s)
		}
		if cfg.ProfitMargin[s] <= 0 {
			return fmt.Errorf("profit_margin missing or non-positive for %s", s)
		}
		if cfg.ImportMarkup[s] <= 0 {
			return fmt.Errorf("import_markup missing or non-positive for %s", s)
		}
	}
	return nil
}
