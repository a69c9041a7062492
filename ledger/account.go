package ledger

import "github.com/shopspring/decimal"

// Kind is the account kind.
type Kind string

const (
	KindChecking   Kind = "checking"
	KindSavings    Kind = "savings"
	KindCreditCard Kind = "credit_card"
)

// Account is one customer account. Balance is a fixed-point currency amount;
// it is never mutated except through a paired ledger transaction.
type Account struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Kind       Kind            `json:"type"`
	Balance    decimal.Decimal `json:"balance"`
	Number     string          `json:"account_number"`
	Status     string          `json:"status"`
}
