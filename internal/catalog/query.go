package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/finance"
)

// SortKey orders a filtered project list.
type SortKey string

const (
	SortNone        SortKey = ""
	SortROIAsc      SortKey = "roi-asc"
	SortROIDesc     SortKey = "roi-desc"
	SortFundingAsc  SortKey = "funding-asc"
	SortFundingDesc SortKey = "funding-desc"
)

// FilterAll disables a risk or category filter.
const FilterAll = "all"

// ErrUnknownSort is returned by ParseSortKey.
var ErrUnknownSort = errors.New("unknown sort key")

// ParseSortKey accepts the known keys in any casing; "none" and "" mean no ordering.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case SortNone, SortROIAsc, SortROIDesc, SortFundingAsc, SortFundingDesc:
		return key, nil
	case "none":
		return SortNone, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownSort)
}

// ProjectQuery mirrors the investments page controls.
type ProjectQuery struct {
	Search   string
	Risk     string // "" or "all" disables
	Category string // exact match; "" or "all" disables
	Sort     SortKey
}

// FilterProjects returns the projects matching q in the requested order.
// The input slice is left untouched.
func FilterProjects(projects []domain.Project, q ProjectQuery) []domain.Project {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	risk := normalizeFilter(q.Risk)
	category := strings.TrimSpace(q.Category)
	if strings.EqualFold(category, FilterAll) {
		category = ""
	}

	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		if risk != "" && string(p.RiskLevel) != risk {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortROIAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ExpectedROI.LessThan(out[j].ExpectedROI) })
	case SortROIDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ExpectedROI.GreaterThan(out[j].ExpectedROI) })
	case SortFundingAsc:
		sort.SliceStable(out, func(i, j int) bool { return fundingRatio(out[i]).LessThan(fundingRatio(out[j])) })
	case SortFundingDesc:
		sort.SliceStable(out, func(i, j int) bool { return fundingRatio(out[i]).GreaterThan(fundingRatio(out[j])) })
	}
	return out
}

// Categories lists the distinct project categories, sorted.
func Categories(projects []domain.Project) []string {
	seen := make(map[string]struct{}, len(projects))
	var out []string
	for _, p := range projects {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

func fundingRatio(p domain.Project) decimal.Decimal {
	return finance.FundingProgress(p.FundingRaised, p.FundingGoal)
}

func normalizeFilter(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == FilterAll {
		return ""
	}
	return v
}
