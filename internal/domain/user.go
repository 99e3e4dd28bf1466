package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownValue is returned by the Parse helpers for values outside an enum.
var ErrUnknownValue = errors.New("unknown value")

// KYCStatus is the Know-Your-Customer verification state of a user.
type KYCStatus string

const (
	KYCVerified   KYCStatus = "verified"
	KYCPending    KYCStatus = "pending"
	KYCUnverified KYCStatus = "unverified"
)

// ParseKYCStatus accepts any casing of a known status.
func ParseKYCStatus(s string) (KYCStatus, error) {
	switch st := KYCStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case KYCVerified, KYCPending, KYCUnverified:
		return st, nil
	}
	return "", fmt.Errorf("kyc status %q: %w", s, ErrUnknownValue)
}

// User is the account holder shown in the header and profile page.
type User struct {
	ID            string
	Name          string
	Email         string
	AvatarURL     string
	KYCStatus     KYCStatus
	WalletBalance decimal.Decimal
}
