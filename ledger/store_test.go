package ledger

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newTestStore() *Store {
	s := NewStore()
	s.AddAccount(Account{
		ID:         "acc_001",
		CustomerID: "customer_001",
		Kind:       KindChecking,
		Balance:    decimal.RequireFromString("1000.00"),
		Number:     "****1234",
		Status:     "active",
	})
	s.AddAccount(Account{
		ID:         "acc_002",
		CustomerID: "customer_001",
		Kind:       KindSavings,
		Balance:    decimal.RequireFromString("500.00"),
		Number:     "****5678",
		Status:     "active",
	})
	return s
}

func TestAccountLookup(t *testing.T) {
	s := newTestStore()
	acc, err := s.Account(KindSavings, "customer_001")
	if err != nil {
		t.Fatalf("Account() error: %v", err)
	}
	if acc.ID != "acc_002" {
		t.Errorf("Account() = %s, want acc_002", acc.ID)
	}
	if _, err := s.Account(KindCreditCard, "customer_001"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("missing kind error = %v, want ErrAccountNotFound", err)
	}
	if _, err := s.Account(KindChecking, "customer_999"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("missing customer error = %v, want ErrAccountNotFound", err)
	}
}

func TestApplyTransfer(t *testing.T) {
	s := newTestStore()
	amount := decimal.RequireFromString("250.00")

	transfer, err := s.ApplyTransfer("acc_001", "acc_002", amount)
	if err != nil {
		t.Fatalf("ApplyTransfer() error: %v", err)
	}
	if got, want := transfer.NewSourceBalance.String(), "750"; got != want {
		t.Errorf("new source balance = %s, want %s", got, want)
	}
	if got, want := transfer.NewDestBalance.String(), "750"; got != want {
		t.Errorf("new dest balance = %s, want %s", got, want)
	}
	if transfer.CorrelationID == "" {
		t.Error("transfer has no correlation ID")
	}
	if transfer.Debit.CorrelationID != transfer.Credit.CorrelationID {
		t.Errorf("correlation IDs differ: %s vs %s", transfer.Debit.CorrelationID, transfer.Credit.CorrelationID)
	}
	if !transfer.Debit.Amount.Add(transfer.Credit.Amount).IsZero() {
		t.Errorf("debit %s and credit %s are not additive inverses", transfer.Debit.Amount, transfer.Credit.Amount)
	}

	// Both sides must be persisted.
	if got := len(s.Transactions("acc_001", 10)); got != 1 {
		t.Errorf("source has %d transactions, want 1", got)
	}
	if got := len(s.Transactions("acc_002", 10)); got != 1 {
		t.Errorf("dest has %d transactions, want 1", got)
	}
}

func TestApplyTransferConservation(t *testing.T) {
	s := newTestStore()
	before := storeTotal(t, s)
	if _, err := s.ApplyTransfer("acc_001", "acc_002", decimal.RequireFromString("333.33")); err != nil {
		t.Fatalf("ApplyTransfer() error: %v", err)
	}
	if after := storeTotal(t, s); !after.Equal(before) {
		t.Errorf("ledger sum changed: before %s, after %s", before, after)
	}
}

func TestApplyTransferInsufficientFunds(t *testing.T) {
	s := newTestStore()
	_, err := s.ApplyTransfer("acc_001", "acc_002", decimal.RequireFromString("1000.01"))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("error = %v, want ErrInsufficientFunds", err)
	}
	var insufficient *InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error %v does not carry amounts", err)
	}
	if got, want := insufficient.Available.String(), "1000"; got != want {
		t.Errorf("available = %s, want %s", got, want)
	}
	if got, want := insufficient.Requested.String(), "1000.01"; got != want {
		t.Errorf("requested = %s, want %s", got, want)
	}

	// No partial application.
	source, _ := s.AccountByID("acc_001")
	dest, _ := s.AccountByID("acc_002")
	if source.Balance.String() != "1000" || dest.Balance.String() != "500" {
		t.Errorf("balances changed after failed transfer: %s / %s", source.Balance, dest.Balance)
	}
	if got := len(s.Transactions("acc_001", 10)); got != 0 {
		t.Errorf("failed transfer recorded %d transactions", got)
	}
}

func TestApplyTransferValidation(t *testing.T) {
	s := newTestStore()
	if _, err := s.ApplyTransfer("acc_001", "acc_999", decimal.NewFromInt(10)); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("missing dest error = %v, want ErrAccountNotFound", err)
	}
	if _, err := s.ApplyTransfer("acc_999", "acc_002", decimal.NewFromInt(10)); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("missing source error = %v, want ErrAccountNotFound", err)
	}
	if _, err := s.ApplyTransfer("acc_001", "acc_002", decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount error = %v, want ErrInvalidAmount", err)
	}
}

func TestTransactionsNewestFirst(t *testing.T) {
	s := newTestStore()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		s.Record(Transaction{
			AccountID: "acc_001",
			Amount:    decimal.NewFromInt(int64(-10 - i)),
			Date:      base.AddDate(0, 0, i),
			Merchant:  "Coffee Corner",
			Category:  "dining",
		})
	}

	got := s.Transactions("acc_001", 5)
	if len(got) != 5 {
		t.Fatalf("Transactions(limit=5) returned %d records", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Errorf("records not sorted newest first at index %d", i)
		}
	}
	if !got[0].Date.Equal(base.AddDate(0, 0, 7)) {
		t.Errorf("first record date = %s, want newest", got[0].Date)
	}
}

func TestTransactionsZeroLimit(t *testing.T) {
	s := newTestStore()
	s.Record(Transaction{
		AccountID: "acc_001",
		Amount:    decimal.NewFromInt(-10),
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Merchant:  "Coffee Corner",
		Category:  "dining",
	})

	if got := s.Transactions("acc_001", 0); len(got) != 0 {
		t.Errorf("Transactions(limit=0) returned %d records, want none", len(got))
	}
	if got := s.Transactions("acc_001", -1); len(got) != 0 {
		t.Errorf("Transactions(limit=-1) returned %d records, want none", len(got))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestStore()
	if _, err := s.ApplyTransfer("acc_001", "acc_002", decimal.NewFromInt(100)); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()

	restored := NewStore()
	restored.Restore(snap)
	acc, err := restored.AccountByID("acc_001")
	if err != nil {
		t.Fatalf("AccountByID() after restore: %v", err)
	}
	if acc.Balance.String() != "900" {
		t.Errorf("restored balance = %s, want 900", acc.Balance)
	}
	if got := len(restored.Transactions("acc_002", 10)); got != 1 {
		t.Errorf("restored dest transactions = %d, want 1", got)
	}
}

func TestConcurrentTransfersConserveSum(t *testing.T) {
	s := newTestStore()
	before := storeTotal(t, s)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.ApplyTransfer("acc_001", "acc_002", decimal.NewFromInt(5))
			} else {
				s.ApplyTransfer("acc_002", "acc_001", decimal.NewFromInt(5))
			}
		}(i)
	}
	wg.Wait()

	if after := storeTotal(t, s); !after.Equal(before) {
		t.Errorf("ledger sum changed under concurrent transfers: before %s, after %s", before, after)
	}
}

func storeTotal(t *testing.T, s *Store) decimal.Decimal {
	t.Helper()
	total := decimal.Zero
	for _, acc := range s.Snapshot().Accounts {
		total = total.Add(acc.Balance)
	}
	return total
}
