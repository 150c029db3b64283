// Package view derives render-ready idea lists from the live batch:
// risk filtering followed by stable sorting. Everything here is pure;
// inputs are never mutated and every call returns a fresh slice.
package view

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"ideaforge/internal/types"
)

// SortKey selects the ordering of a derived view.
type SortKey string

const (
	SortNone  SortKey = "none"  // input order preserved
	SortScore SortKey = "score" // market opportunity score, descending
	SortCost  SortKey = "cost"  // parsed startup cost, ascending
)

// RiskFilterAll is the sentinel that disables risk filtering.
const RiskFilterAll = "All"

// Derive filters ideas by risk classification and then sorts them by key.
// Filtering always precedes sorting; sorts are stable so equal keys keep
// their relative input order.
func Derive(ideas []types.StartupIdea, key SortKey, riskFilter string) []types.StartupIdea {
	out := make([]types.StartupIdea, 0, len(ideas))
	for _, idea := range ideas {
		if riskFilter != RiskFilterAll && string(idea.RiskAnalysis) != riskFilter {
			continue
		}
		out = append(out, idea)
	}

	switch key {
	case SortScore:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].MarketOpportunityScore > out[j].MarketOpportunityScore
		})
	case SortCost:
		sort.SliceStable(out, func(i, j int) bool {
			return ParseCost(out[i].EstimatedStartupCosts) < ParseCost(out[j].EstimatedStartupCosts)
		})
	}
	return out
}

// First numeric token: optional "$", a digit run that may contain commas,
// optional k suffix. Ranges like "$5,000 - $15,000" contribute only their
// first number. The heuristic is deliberately lossy; keep it bit-for-bit.
var costToken = regexp.MustCompile(`\$?(\d[\d,]*)([kK])?`)

// ParseCost extracts a comparable cost from free-text startup costs.
// A k suffix multiplies by 1000; text with no numeric token sorts last
// via +Inf.
func ParseCost(s string) float64 {
	m := costToken.FindStringSubmatch(s)
	if m == nil {
		return math.Inf(1)
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return math.Inf(1)
	}
	if m[2] != "" {
		n *= 1000
	}
	return n
}
