package signals

import "regexp"

// halvingRules are independent presence tests for a working range that
// shrinks (or an index that grows) geometrically. They look at the whole
// snippet, not at any particular loop or call.
var halvingRules = []textRule{
	{
		name:        "divide-by-two",
		description: "division by two",
		pattern:     regexp.MustCompile(`/\s*2\b`),
	},
	{
		name:        "divide-assign",
		description: "in-place division by two",
		pattern:     regexp.MustCompile(`/=\s*2\b`),
	},
	{
		name:        "shift-right",
		description: "right shift by one",
		pattern:     regexp.MustCompile(`>>>?=?\s*1\b`),
	},
	{
		name:        "floor-midpoint",
		description: "floor of a midpoint",
		pattern:     regexp.MustCompile(`(?i)\bfloor\s*\(\s*\(?\s*[\w.]+\s*\+\s*[\w.]+`),
	},
	{
		name:        "midpoint",
		description: "midpoint of two bounds",
		pattern:     regexp.MustCompile(`\(\s*[\w.]+\s*\+\s*[\w.]+\s*\)\s*(?:/|>>)`),
	},
	{
		name:        "doubling-step",
		description: "index doubling",
		pattern:     regexp.MustCompile(`\*=\s*2\b|<<=\s*1\b`),
	},
}

// HalvingMatch is one halving rule that fired.
type HalvingMatch struct {
	Name        string
	Description string
}

// DetectHalving returns every halving rule that matches text, in rule order.
func DetectHalving(text string) []HalvingMatch {
	var found []HalvingMatch

	for _, rule := range halvingRules {
		if rule.matches(text) {
			found = append(found, HalvingMatch{Name: rule.name, Description: rule.description})
		}
	}

	return found
}

// HasDivideByTwo reports whether any halving pattern occurs in text.
func HasDivideByTwo(text string) bool {
	for _, rule := range halvingRules {
		if rule.matches(text) {
			return true
		}
	}

	return false
}
