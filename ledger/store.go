package ledger

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
	"github.com/shopspring/decimal"
	"go.uber.org/atomic"
)

// Transfer is the result of one successful transfer: the paired debit and
// credit entries plus the post-transfer balances.
type Transfer struct {
	CorrelationID    string          `json:"correlation_id"`
	Amount           decimal.Decimal `json:"amount"`
	NewSourceBalance decimal.Decimal `json:"new_source_balance"`
	NewDestBalance   decimal.Decimal `json:"new_dest_balance"`
	Debit            Transaction     `json:"debit"`
	Credit           Transaction     `json:"credit"`
}

// Store owns account and transaction records. All state lives in key-indexed
// in-memory maps behind a read/write contract; mutations run inside a single
// write lock so no reader observes a transfer with only one side applied.
// Reads proceed concurrently under the read lock.
type Store struct {
	mu sync.RWMutex
	// accounts indexes accounts by ID.
	accounts map[string]*Account
	// txns holds each account's transactions in insertion order.
	txns map[string][]Transaction
	// version counts applied mutations.
	version atomic.Int64
}

// NewStore returns an empty ledger store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*Account),
		txns:     make(map[string][]Transaction),
	}
}

// AddAccount registers an account. The last account added wins on ID collision.
func (s *Store) AddAccount(acc Account) {
	s.mu.Lock()
	cp := acc
	s.accounts[acc.ID] = &cp
	s.mu.Unlock()
}

// Account returns the account of the given kind owned by customerID.
func (s *Store) Account(kind Kind, customerID string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.Kind == kind && acc.CustomerID == customerID {
			return *acc, nil
		}
	}
	return Account{}, fmt.Errorf("%w: no %s account for customer %s", ErrAccountNotFound, kind, customerID)
}

// AccountByID returns the account with the given ID.
func (s *Store) AccountByID(id string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	return *acc, nil
}

// Transactions returns up to limit transactions for the account, newest date
// first. Entries with equal dates come back latest-recorded first. A limit
// of zero or less yields no records.
func (s *Store) Transactions(accountID string, limit int) []Transaction {
	if limit <= 0 {
		return nil
	}
	s.mu.RLock()
	list := s.txns[accountID]
	out := make([]Transaction, len(list))
	for i, txn := range list {
		out[len(list)-1-i] = txn
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Record appends a transaction, assigning an ID when absent.
func (s *Store) Record(txn Transaction) Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordLocked(&txn)
	return txn
}

func (s *Store) recordLocked(txn *Transaction) {
	if txn.ID == "" {
		txn.ID = xid.New().String()
	}
	if txn.Status == "" {
		txn.Status = StatusCompleted
	}
	s.txns[txn.AccountID] = append(s.txns[txn.AccountID], *txn)
	s.version.Inc()
}

// NewCorrelationID returns a fresh transfer correlation identifier.
func NewCorrelationID() string {
	return "txn_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// ApplyTransfer debits sourceID and credits destID by amount, then persists
// the two linked transaction records, all inside one critical section.
// It fails before any mutation: ErrInvalidAmount for non-positive amounts,
// ErrAccountNotFound when either side is absent, and an
// InsufficientFundsError when the source balance does not cover amount.
func (s *Store) ApplyTransfer(sourceID, destID string, amount decimal.Decimal) (Transfer, error) {
	if !amount.IsPositive() {
		return Transfer{}, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.accounts[sourceID]
	if !ok {
		return Transfer{}, fmt.Errorf("%w: source %s", ErrAccountNotFound, sourceID)
	}
	dest, ok := s.accounts[destID]
	if !ok {
		return Transfer{}, fmt.Errorf("%w: destination %s", ErrAccountNotFound, destID)
	}
	if source.Balance.LessThan(amount) {
		return Transfer{}, &InsufficientFundsError{Requested: amount, Available: source.Balance}
	}

	source.Balance = source.Balance.Sub(amount)
	dest.Balance = dest.Balance.Add(amount)

	correlationID := NewCorrelationID()
	now := time.Now()
	debit := Transaction{
		ID:            correlationID + "_debit",
		AccountID:     source.ID,
		Amount:        amount.Neg(),
		Date:          now,
		Merchant:      fmt.Sprintf("Transfer to %s", dest.Kind),
		Category:      "transfer",
		Description:   fmt.Sprintf("Transfer to %s", dest.Kind),
		Status:        StatusCompleted,
		CorrelationID: correlationID,
	}
	credit := Transaction{
		ID:            correlationID + "_credit",
		AccountID:     dest.ID,
		Amount:        amount,
		Date:          now,
		Merchant:      fmt.Sprintf("Transfer from %s", source.Kind),
		Category:      "transfer",
		Description:   fmt.Sprintf("Transfer from %s", source.Kind),
		Status:        StatusCompleted,
		CorrelationID: correlationID,
	}
	s.recordLocked(&debit)
	s.recordLocked(&credit)

	return Transfer{
		CorrelationID:    correlationID,
		Amount:           amount,
		NewSourceBalance: source.Balance,
		NewDestBalance:   dest.Balance,
		Debit:            debit,
		Credit:           credit,
	}, nil
}

// Version returns the number of applied mutations.
func (s *Store) Version() int64 {
	return s.version.Load()
}
