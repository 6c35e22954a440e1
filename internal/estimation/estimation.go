package estimation

import (
	"fmt"
	"strings"

	"github.com/goapcore/goap/internal/goap"
)

// SearchEstimate is the lower-cost-bound and recommended budgets
// `goapctl estimate` reports without running full A*.
type SearchEstimate struct {
	LowerBound              float64
	ActionCount             int
	RecommendedExpansions   int
	RecommendedTimeBudgetMs int
}

// EstimateSearch computes a lower-cost bound via the domain_aware
// heuristic (admissible under uniform action costs), a recommended
// expansion budget scaled to the catalog size, and a fixed 2000ms time
// budget.
func EstimateSearch(start goap.State, goalMask goap.Mask, actions []goap.Action) (*SearchEstimate, error) {
	if start.Satisfies(goalMask) {
		return &SearchEstimate{ActionCount: len(actions)}, nil
	}

	bestFixes := 0
	for _, a := range actions {
		fixes := 0
		for k, want := range goalMask {
			if want.IsWildcard() {
				continue
			}
			if got, ok := a.Effects[k]; ok && got.Equal(want) {
				fixes++
			}
		}
		if fixes > bestFixes {
			bestFixes = fixes
		}
	}
	if bestFixes < 1 {
		bestFixes = 1
	}

	mismatch := start.Mismatch(goalMask)
	lowerBound := ceilDiv(mismatch, bestFixes)

	// The expansion budget is the catalog size times (estimated plan
	// depth + 1) times 50, with a floor of 1000; the factor of 50 is
	// deliberately generous since domain_aware underestimates depth when
	// single actions cannot fix multiple goal keys.
	branching := len(actions)
	if branching < 1 {
		branching = 1
	}
	recommendedExpansions := branching * (lowerBound + 1) * 50
	if recommendedExpansions < 1000 {
		recommendedExpansions = 1000
	}

	return &SearchEstimate{
		LowerBound:              float64(lowerBound),
		ActionCount:             len(actions),
		RecommendedExpansions:   recommendedExpansions,
		RecommendedTimeBudgetMs: 2000,
	}, nil
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		b = 1
	}
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// FormatEstimate formats a search estimate for display.
func FormatEstimate(est *SearchEstimate) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("lower-cost bound: %.0f\n", est.LowerBound))
	sb.WriteString(fmt.Sprintf("catalog actions: %d\n", est.ActionCount))
	sb.WriteString(fmt.Sprintf("recommended max_expansions: %s\n", formatNumber(est.RecommendedExpansions)))
	sb.WriteString(fmt.Sprintf("recommended time_budget_ms: %d", est.RecommendedTimeBudgetMs))
	return sb.String()
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var parts []string
	for i := len(s); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{s[start:i]}, parts...)
	}
	return strings.Join(parts, ",")
}
