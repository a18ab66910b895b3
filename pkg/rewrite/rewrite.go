// Package rewrite translates loosely-structured natural-language phrases
// into calculator expression syntax. It is a pure string-to-string
// preprocessor: an ordered list of find/replace rules applied sequentially
// to a working string. The output is best-effort and may still be an
// invalid expression; the expression engine rejects it cleanly.
package rewrite

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule is a single find/replace step.
type Rule struct {
	pattern *regexp.Regexp
	replace string
}

// Ruleset is an ordered chain of rules. Order matters: earlier rules see the
// raw phrase, later rules see the partially rewritten string.
type Ruleset struct {
	rules []Rule
}

// New builds a ruleset from compiled rules, in application order.
func New(rules []Rule) *Ruleset {
	return &Ruleset{rules: rules}
}

// Apply runs the chain over the input and returns the candidate expression.
// The working string is lowercased and trimmed first; all remaining
// whitespace is removed at the end.
func (rs *Ruleset) Apply(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	for _, r := range rs.rules {
		s = r.pattern.ReplaceAllString(s, r.replace)
	}
	return strings.Join(strings.Fields(s), "")
}

// Extend appends rules to the end of the chain.
func (rs *Ruleset) Extend(other *Ruleset) {
	rs.rules = append(rs.rules, other.rules...)
}

// Len returns the number of rules in the chain.
func (rs *Ruleset) Len() int {
	return len(rs.rules)
}

// ruleSpec is the YAML form of a rule.
type ruleSpec struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
}

// Load reads an ordered rule list from a YAML file:
//
//	- pattern: '\s+doubled'
//	  replace: '*2'
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(data)
}

// Parse builds a ruleset from YAML bytes.
func Parse(data []byte) (*Ruleset, error) {
	var specs []ruleSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	rules := make([]Rule, 0, len(specs))
	for i, spec := range specs {
		if spec.Pattern == "" {
			return nil, fmt.Errorf("rule %d: empty pattern", i)
		}
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, Rule{pattern: re, replace: spec.Replace})
	}
	return New(rules), nil
}
