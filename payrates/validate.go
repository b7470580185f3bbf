package payrates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/warp/wage-engine/earnings"
)

// ErrInvalidRule is returned when rate settings are invalid, such as an
// incomplete rule or a negative multiplier.
var ErrInvalidRule = errors.New("invalid pay rate")

// RuleValidationError lists everything wrong with one rule.
type RuleValidationError struct {
	RuleID   string
	Problems []string
}

func (e *RuleValidationError) Error() string {
	return fmt.Sprintf("pay rate %q: %s", e.RuleID, strings.Join(e.Problems, "; "))
}

func (e *RuleValidationError) Unwrap() error { return ErrInvalidRule }

// Validate applies the settings-form checks: a name, at least one weekday,
// at least one hour range, sane ranges and a non-negative multiplier.
//
// The engine itself accepts any table; these checks belong to whoever lets
// users edit rules.
func Validate(rule earnings.RateRule) error {
	var problems []string
	if strings.TrimSpace(rule.Name) == "" {
		problems = append(problems, "name is required")
	}
	if len(rule.Days) == 0 {
		problems = append(problems, "at least one weekday is required")
	}
	for _, d := range rule.Days {
		if d < time.Sunday || d > time.Saturday {
			problems = append(problems, fmt.Sprintf("weekday %d out of range 0-6", d))
		}
	}
	if len(rule.Ranges) == 0 {
		problems = append(problems, "at least one time range is required")
	}
	for _, rg := range rule.Ranges {
		if rg.Start < 0 || rg.End > 24 || rg.Start >= rg.End {
			problems = append(problems, fmt.Sprintf("time range %02d-%02d is invalid", rg.Start, rg.End))
		}
	}
	if rule.Multiplier.IsNegative() {
		problems = append(problems, "multiplier must not be negative")
	}
	if len(problems) > 0 {
		return &RuleValidationError{RuleID: rule.ID, Problems: problems}
	}
	return nil
}

// ValidateAll validates every rule and rejects duplicate IDs.
func ValidateAll(rules []earnings.RateRule) error {
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if err := Validate(r); err != nil {
			return err
		}
		if r.ID != "" && seen[r.ID] {
			return &RuleValidationError{RuleID: r.ID, Problems: []string{"duplicate id"}}
		}
		seen[r.ID] = true
	}
	return nil
}

// NewRuleID returns an ID for a user-created rule.
func NewRuleID() string { return "custom-" + uuid.NewString() }

// Normalize trims text fields and fills a missing ID.
func Normalize(rule earnings.RateRule) earnings.RateRule {
	rule = rule.Clone()
	rule.Name = strings.TrimSpace(rule.Name)
	rule.Description = strings.TrimSpace(rule.Description)
	if rule.ID == "" {
		rule.ID = NewRuleID()
	}
	if rule.Color == "" {
		rule.Color = ColorBlue
	}
	return rule
}
