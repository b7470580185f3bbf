/*
Package factory provides JSON/YAML to Go rate-table conversion.

PURPOSE:
  Converts rate-table documents into earnings.RateRule lists and resolvers.
  Settings screens, the HTTP API and the CLI all exchange rules in this
  shape, so there is one parser and one serializer.

DOCUMENT SCHEMA (JSON, YAML uses the same keys):
  {
    "mode": "custom",
    "base_pay": 225,
    "fallback": {"multiplier": 1.0, "label": "Normal"},
    "rules": [
      {
        "id": "weekday-evening",
        "name": "Weekday evening",
        "description": "Monday-Friday 15:00-23:00",
        "multiplier": 1.25,
        "days": [1, 2, 3, 4, 5],
        "ranges": [{"start": 15, "end": 23}],
        "color": "green"
      }
    ]
  }

  mode:     "legacy" (default) or "custom", see earnings.RateMode
  base_pay: optional; hosts fall back to their own default
  fallback: optional; only used in custom mode (default x1.0 "Normal")
  days:     0 = Sunday ... 6 = Saturday

VALIDATION:
  Every rule passes payrates.Validate. Missing IDs get a generated
  "custom-<uuid>" ID.

USAGE:
  cfg, err := factory.ParseRateTable(jsonStr)
  summary := earnings.Aggregate(days, cfg.BasePayOr(base), cfg.Resolver())

SEE ALSO:
  - earnings/rate.go: RateRule and RateTable
  - payrates/validate.go: Rule checks
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/payrates"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// DOCUMENT SCHEMA TYPES
// =============================================================================

// RateTableJSON is the document form of a rate table.
type RateTableJSON struct {
	Mode     string     `json:"mode,omitempty" yaml:"mode,omitempty"`
	BasePay  *float64   `json:"base_pay,omitempty" yaml:"base_pay,omitempty"`
	Fallback *RateJSON  `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Rules    []RuleJSON `json:"rules" yaml:"rules"`
}

// RateJSON is a multiplier with its label.
type RateJSON struct {
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
	Label      string  `json:"label" yaml:"label"`
}

// RuleJSON is the document form of one earnings.RateRule.
type RuleJSON struct {
	ID          string      `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Multiplier  float64     `json:"multiplier" yaml:"multiplier"`
	Days        []int       `json:"days" yaml:"days"`
	Ranges      []RangeJSON `json:"ranges" yaml:"ranges"`
	Color       string      `json:"color,omitempty" yaml:"color,omitempty"`
}

// RangeJSON is a half-open hour range.
type RangeJSON struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// =============================================================================
// PARSED CONFIGURATION
// =============================================================================

// RateTableConfig is a parsed, validated document.
type RateTableConfig struct {
	Mode     earnings.RateMode
	BasePay  *decimal.Decimal
	Fallback *earnings.Rate
	Rules    []earnings.RateRule
}

// Resolver returns the resolver the document describes.
func (c *RateTableConfig) Resolver() earnings.Resolver {
	if c.Mode != earnings.ModeCustom {
		return earnings.LegacyFromRules(c.Rules)
	}
	table := earnings.NewRateTable(c.Rules)
	if c.Fallback != nil {
		table.Fallback = *c.Fallback
	}
	return table
}

// BasePayOr returns the document's base pay, or def when it has none.
func (c *RateTableConfig) BasePayOr(def decimal.Decimal) decimal.Decimal {
	if c.BasePay == nil {
		return def
	}
	return *c.BasePay
}

// ApplyTo copies mode, rules and base pay (when present) onto w.
func (c *RateTableConfig) ApplyTo(w earnings.Workspace) earnings.Workspace {
	w.Mode = c.Mode
	w.Rules = c.Rules
	w.BasePay = c.BasePayOr(w.BasePay)
	return w
}

// =============================================================================
// PARSING
// =============================================================================

// ParseRateTable parses a JSON document.
func ParseRateTable(jsonStr string) (*RateTableConfig, error) {
	var doc RateTableJSON
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rate table JSON: %w", err)
	}
	return FromJSON(doc)
}

// ParseRateTableYAML parses a YAML document.
func ParseRateTableYAML(data []byte) (*RateTableConfig, error) {
	var doc RateTableJSON
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rate table YAML: %w", err)
	}
	return FromJSON(doc)
}

// FromJSON validates a document and converts it.
func FromJSON(doc RateTableJSON) (*RateTableConfig, error) {
	mode, err := earnings.ParseRateMode(doc.Mode)
	if err != nil {
		return nil, err
	}

	cfg := &RateTableConfig{Mode: mode}
	if doc.BasePay != nil {
		if *doc.BasePay < 0 {
			return nil, fmt.Errorf("%w: base_pay must not be negative: %v", payrates.ErrInvalidRule, *doc.BasePay)
		}
		bp := decimal.NewFromFloat(*doc.BasePay)
		cfg.BasePay = &bp
	}
	if doc.Fallback != nil {
		if doc.Fallback.Multiplier < 0 {
			return nil, fmt.Errorf("%w: fallback multiplier must not be negative: %v", payrates.ErrInvalidRule, doc.Fallback.Multiplier)
		}
		fb := earnings.NewRate(doc.Fallback.Multiplier, doc.Fallback.Label)
		if fb.Label == "" {
			fb.Label = earnings.FallbackLabel
		}
		cfg.Fallback = &fb
	}

	rules, err := RulesFromJSON(doc.Rules)
	if err != nil {
		return nil, err
	}
	cfg.Rules = rules
	return cfg, nil
}

// RulesFromJSON converts, normalizes and validates a rule list.
func RulesFromJSON(docs []RuleJSON) ([]earnings.RateRule, error) {
	rules := make([]earnings.RateRule, 0, len(docs))
	for _, rj := range docs {
		rules = append(rules, payrates.Normalize(RuleFromJSON(rj)))
	}
	if err := payrates.ValidateAll(rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// RuleFromJSON converts one rule without validating it.
func RuleFromJSON(rj RuleJSON) earnings.RateRule {
	rule := earnings.RateRule{
		ID:          rj.ID,
		Name:        rj.Name,
		Description: rj.Description,
		Multiplier:  decimal.NewFromFloat(rj.Multiplier),
		Color:       rj.Color,
	}
	for _, d := range rj.Days {
		rule.Days = append(rule.Days, time.Weekday(d))
	}
	for _, r := range rj.Ranges {
		rule.Ranges = append(rule.Ranges, earnings.HourRange{Start: r.Start, End: r.End})
	}
	return rule
}

// =============================================================================
// SERIALIZING
// =============================================================================

// RuleToJSON converts one rule to its document form.
func RuleToJSON(rule earnings.RateRule) RuleJSON {
	rj := RuleJSON{
		ID:          rule.ID,
		Name:        rule.Name,
		Description: rule.Description,
		Multiplier:  rule.Multiplier.InexactFloat64(),
		Days:        make([]int, 0, len(rule.Days)),
		Ranges:      make([]RangeJSON, 0, len(rule.Ranges)),
		Color:       rule.Color,
	}
	for _, d := range rule.Days {
		rj.Days = append(rj.Days, int(d))
	}
	for _, r := range rule.Ranges {
		rj.Ranges = append(rj.Ranges, RangeJSON{Start: r.Start, End: r.End})
	}
	return rj
}

// RulesToJSON converts a rule list.
func RulesToJSON(rules []earnings.RateRule) []RuleJSON {
	out := make([]RuleJSON, 0, len(rules))
	for _, r := range rules {
		out = append(out, RuleToJSON(r))
	}
	return out
}

// ToJSON converts a workspace's settings to a document.
func ToJSON(w earnings.Workspace) RateTableJSON {
	bp := w.BasePay.InexactFloat64()
	return RateTableJSON{
		Mode:    string(w.Mode),
		BasePay: &bp,
		Rules:   RulesToJSON(w.Rules),
	}
}

// MarshalYAML renders a workspace's settings as a YAML document.
func MarshalYAML(w earnings.Workspace) ([]byte, error) {
	return yaml.Marshal(ToJSON(w))
}
