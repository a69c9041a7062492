package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound means no account matched the requested kind or ID.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds means the source balance does not cover the
	// requested transfer amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount means the transfer amount is not positive.
	ErrInvalidAmount = errors.New("amount must be > 0")
)

// InsufficientFundsError reports the attempted and available amounts so the
// caller can explain the failure without re-querying.
type InsufficientFundsError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: requested %s, available %s", e.Requested, e.Available)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
