package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Allocation is one named slice of a pie chart, such as the portfolio split
// or the risk distribution.
type Allocation struct {
	Name  string
	Value decimal.Decimal
	Color string
}

// SeriesPoint is one labelled sample of a time series chart.
type SeriesPoint struct {
	Label string
	Value decimal.Decimal
}

// Theme is the light/dark preference flag.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme applies when no preference has been stored.
const DefaultTheme = ThemeLight

// ParseTheme accepts any casing of light or dark.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", fmt.Errorf("theme %q: %w", s, ErrUnknownValue)
}
