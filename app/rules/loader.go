package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/app-comb/app/review"
)

// Rules are the site-specific overrides for the review pipeline: label
// names and additional classifier rules evaluated after the built-ins.
type Rules struct {
	Labels   review.Labels        `yaml:"labels"`
	Hosts    []review.HostRule    `yaml:"hosts"`
	Keywords []review.KeywordRule `yaml:"keywords"`
}

// Load reads the optional rules file. An empty path or a missing file
// yields the compiled-in defaults.
func Load(path string) (*Rules, error) {
	rules := &Rules{Labels: review.DefaultLabels()}

	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return rules, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	applyLabelDefaults(&rules.Labels)

	if err := validate(rules); err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}

	return rules, nil
}

// applyLabelDefaults fills in any label name the file leaves unset, so a
// partial override never produces an empty label.
func applyLabelDefaults(labels *review.Labels) {
	defaults := review.DefaultLabels()

	if labels.Pending == "" {
		labels.Pending = defaults.Pending
	}
	if labels.Rejected == "" {
		labels.Rejected = defaults.Rejected
	}
	if labels.Incomplete == "" {
		labels.Incomplete = defaults.Incomplete
	}
	if labels.InReview == "" {
		labels.InReview = defaults.InReview
	}
	if labels.ReviewPR == "" {
		labels.ReviewPR = defaults.ReviewPR
	}
}

func validate(rules *Rules) error {
	for i, rule := range rules.Hosts {
		if rule.Domain == "" {
			return fmt.Errorf("host rule at index %d has no domain", i)
		}
		if !review.IsValidPlatform(rule.Platform) {
			return fmt.Errorf("host rule at index %d has invalid platform %q", i, rule.Platform)
		}
	}

	for i, rule := range rules.Keywords {
		if len(rule.Any) == 0 && len(rule.All) == 0 {
			return fmt.Errorf("keyword rule at index %d has no phrases", i)
		}
		if !review.IsValidPlatform(rule.Platform) {
			return fmt.Errorf("keyword rule at index %d has invalid platform %q", i, rule.Platform)
		}
	}

	return nil
}
