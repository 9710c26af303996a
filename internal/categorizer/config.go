package categorizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRuleset reads a YAML rule file. Fields left out of the file keep
// their defaults, so a file can override just the keyword tables while
// inheriting the thresholds, or the other way round.
func LoadRuleset(path string) (Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Ruleset{}, fmt.Errorf("read rules: %w", err)
	}

	rules := DefaultRuleset()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Ruleset{}, fmt.Errorf("parse rules: %w", err)
	}

	if err := validate(rules); err != nil {
		return Ruleset{}, err
	}
	return rules, nil
}

func validate(rules Ruleset) error {
	if len(rules.Categories) == 0 {
		return fmt.Errorf("rules: no categories defined")
	}
	for _, rule := range append(rules.Overrides, rules.Categories...) {
		if rule.Category == "" {
			return fmt.Errorf("rules: rule with empty category")
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("rules: category %q has no keywords", rule.Category)
		}
	}
	if rules.LargeAmountThreshold < 0 {
		return fmt.Errorf("rules: negative large amount threshold")
	}
	return nil
}
