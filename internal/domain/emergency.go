package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EmergencyPool is the community fund that pays out water emergency aid.
type EmergencyPool struct {
	TotalPool        decimal.Decimal
	AvailableFunds   decimal.Decimal
	AllocatedFunds   decimal.Decimal
	RequestsPending  int
	RequestsApproved int
	RequestsDeclined int
	RegionAllocation []RegionShare
	UsageBreakdown   []UsageShare
}

// RegionShare is the percentage of the pool earmarked for a region.
type RegionShare struct {
	Region     string
	Allocation decimal.Decimal
}

// UsageShare is the percentage of payouts spent on a category of aid.
type UsageShare struct {
	Category   string
	Percentage decimal.Decimal
}

// Region is an area an assistance request can target.
type Region string

const (
	RegionAfrica       Region = "africa"
	RegionAsia         Region = "asia"
	RegionSouthAmerica Region = "south-america"
	RegionNorthAmerica Region = "north-america"
	RegionEurope       Region = "europe"
	RegionOceania      Region = "oceania"
)

// Regions lists the selectable regions in display order.
var Regions = []Region{RegionAfrica, RegionAsia, RegionSouthAmerica, RegionNorthAmerica, RegionEurope, RegionOceania}

// ParseRegion matches case-insensitively; spaces are accepted in place of hyphens.
func ParseRegion(s string) (Region, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
	for _, r := range Regions {
		if key == string(r) {
			return r, nil
		}
	}
	return "", fmt.Errorf("region %q: %w", s, ErrUnknownValue)
}

// Urgency is how soon requested aid is needed.
type Urgency string

const (
	UrgencyLow      Urgency = "low"      // within 30 days
	UrgencyMedium   Urgency = "medium"   // within 14 days
	UrgencyHigh     Urgency = "high"     // within 7 days
	UrgencyCritical Urgency = "critical" // immediately
)

// DefaultUrgency applies when a request leaves urgency blank.
const DefaultUrgency = UrgencyMedium

// ParseUrgency matches case-insensitively; blank yields DefaultUrgency.
func ParseUrgency(s string) (Urgency, error) {
	switch u := Urgency(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return DefaultUrgency, nil
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return u, nil
	}
	return "", fmt.Errorf("urgency %q: %w", s, ErrUnknownValue)
}

// AssistanceRequest is a submitted request for emergency aid. Requests are
// logged for review and never decided in-process.
type AssistanceRequest struct {
	ID          string
	UserID      string
	Region      Region
	Amount      decimal.Decimal
	Urgency     Urgency
	Reason      string
	SubmittedAt time.Time
}
