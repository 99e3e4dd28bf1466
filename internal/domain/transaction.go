package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies wallet movements.
type TransactionType string

const (
	TxInvestment    TransactionType = "Investment"
	TxInsurance     TransactionType = "Insurance"
	TxLoanRepayment TransactionType = "Loan Repayment"
	TxDeposit       TransactionType = "Deposit"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TxCompleted TransactionStatus = "Completed"
	TxPending   TransactionStatus = "Pending"
	TxFailed    TransactionStatus = "Failed"
)

// ParseTransactionType matches case-insensitively against the known types.
func ParseTransactionType(s string) (TransactionType, error) {
	for _, t := range []TransactionType{TxInvestment, TxInsurance, TxLoanRepayment, TxDeposit} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("transaction type %q: %w", s, ErrUnknownValue)
}

// ParseTransactionStatus matches case-insensitively against the known statuses.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	for _, st := range []TransactionStatus{TxCompleted, TxPending, TxFailed} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("transaction status %q: %w", s, ErrUnknownValue)
}

// Transaction is one line in the wallet history.
type Transaction struct {
	ID          string
	Type        TransactionType
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Status      TransactionStatus
}
