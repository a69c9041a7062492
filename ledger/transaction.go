package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction statuses.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// Transaction is one signed ledger entry: debits are negative, credits are
// positive. The debit and credit entries produced by one transfer share a
// CorrelationID.
type Transaction struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Merchant      string          `json:"merchant"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	CorrelationID string          `json:"correlation_id,omitempty"`
}
