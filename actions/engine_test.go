package actions

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banksight/banksight/ledger"
)

const testCustomer = "customer_001"

func newTestEngine(t *testing.T) (*Engine, *ledger.Store) {
	t.Helper()
	store := ledger.NewStore()
	store.AddAccount(ledger.Account{
		ID:         "acc_001",
		CustomerID: testCustomer,
		Kind:       ledger.KindChecking,
		Balance:    decimal.RequireFromString("1000.00"),
		Number:     "****1234",
		Status:     "active",
	})
	store.AddAccount(ledger.Account{
		ID:         "acc_002",
		CustomerID: testCustomer,
		Kind:       ledger.KindSavings,
		Balance:    decimal.RequireFromString("500.00"),
		Number:     "****5678",
		Status:     "active",
	})
	seedTransactions(store)
	return NewEngine(store, WithCustomerID(testCustomer)), store
}

func seedTransactions(store *ledger.Store) {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	entries := []struct {
		amount   string
		merchant string
		category string
	}{
		{"-42.50", "Whole Foods", "groceries"},
		{"-12.00", "Metro Coffee", "dining"},
		{"-89.99", "PowerGrid Utility", "utilities"},
		{"2500.00", "Acme Corp Payroll", "income"},
		{"-15.75", "Metro Coffee", "dining"},
		{"-220.00", "FlightHub", "travel"},
	}
	for i, e := range entries {
		store.Record(ledger.Transaction{
			AccountID:   "acc_001",
			Amount:      decimal.RequireFromString(e.amount),
			Date:        base.AddDate(0, 0, i),
			Merchant:    e.merchant,
			Category:    e.category,
			Description: e.merchant,
		})
	}
}

func TestExecuteUnknownAction(t *testing.T) {
	engine, _ := newTestEngine(t)
	res := engine.Execute(Request{Action: "close_account"})
	if res.Success {
		t.Fatal("unknown action succeeded")
	}
	if !strings.Contains(res.Error, "close_account") {
		t.Errorf("error %q does not name the unknown action", res.Error)
	}
	want := []string{ActionGetBalance, ActionGetTransactions, ActionSearchTransactions, ActionTransferFunds}
	if len(res.AvailableActions) != len(want) {
		t.Fatalf("available actions = %v, want %v", res.AvailableActions, want)
	}
	for i, name := range want {
		if res.AvailableActions[i] != name {
			t.Errorf("available actions[%d] = %s, want %s", i, res.AvailableActions[i], name)
		}
	}
}

func TestGetBalance(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Execute(Request{Action: ActionGetBalance, Params: map[string]any{"account_type": "savings"}})
	if !res.Success {
		t.Fatalf("get_balance failed: %s", res.Error)
	}
	if res.AccountType != ledger.KindSavings {
		t.Errorf("account type = %s, want savings", res.AccountType)
	}
	if res.Balance.String() != "500" {
		t.Errorf("balance = %s, want 500", res.Balance)
	}

	// Missing account kind is a structured failure, not a fault.
	res = engine.Execute(Request{Action: ActionGetBalance, Params: map[string]any{"account_type": "credit_card"}})
	if res.Success {
		t.Error("get_balance for missing account succeeded")
	}
	if !strings.Contains(res.Error, "credit_card") {
		t.Errorf("error %q does not name the account kind", res.Error)
	}
}

func TestGetTransactionsLimit(t *testing.T) {
	engine, _ := newTestEngine(t)
	res := engine.Execute(Request{Action: ActionGetTransactions, Params: map[string]any{"limit": 5}})
	if !res.Success {
		t.Fatalf("get_transactions failed: %s", res.Error)
	}
	if len(res.Transactions) > 5 {
		t.Errorf("returned %d transactions, want at most 5", len(res.Transactions))
	}
	for i := 1; i < len(res.Transactions); i++ {
		if res.Transactions[i].Date.After(res.Transactions[i-1].Date) {
			t.Errorf("transactions not sorted by date descending at index %d", i)
		}
	}
}

func TestGetTransactionsZeroLimit(t *testing.T) {
	// "Show my last 0 transactions" extracts a limit of zero, which asks
	// for exactly zero records rather than the default page.
	engine, _ := newTestEngine(t)
	res := engine.Execute(Request{Action: ActionGetTransactions, Params: map[string]any{"limit": 0}})
	if !res.Success {
		t.Fatalf("get_transactions failed: %s", res.Error)
	}
	if res.Count != 0 {
		t.Errorf("count = %d, want 0", res.Count)
	}
	if len(res.Transactions) != 0 {
		t.Errorf("returned %d transactions, want none", len(res.Transactions))
	}
}

func TestTransferFunds(t *testing.T) {
	engine, store := newTestEngine(t)
	res := engine.Execute(Request{Action: ActionTransferFunds, Params: map[string]any{
		"from_account": "checking",
		"to_account":   "savings",
		"amount":       decimal.RequireFromString("250.00"),
	}})
	if !res.Success {
		t.Fatalf("transfer failed: %s", res.Error)
	}
	// The reported balance must be the post-transfer source balance.
	if res.NewBalance.String() != "750" {
		t.Errorf("new balance = %s, want 750", res.NewBalance)
	}
	dest, _ := store.Account(ledger.KindSavings, testCustomer)
	if dest.Balance.String() != "750" {
		t.Errorf("dest balance = %s, want 750", dest.Balance)
	}
	if res.TransactionID == "" {
		t.Error("transfer result has no transaction ID")
	}

	text := Format(ActionTransferFunds, res)
	if !strings.Contains(text, "$750.00") {
		t.Errorf("formatted response %q does not show the post-transfer balance", text)
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	engine, store := newTestEngine(t)
	res := engine.Execute(Request{Action: ActionTransferFunds, Params: map[string]any{
		"from_account": "savings",
		"to_account":   "checking",
		"amount":       decimal.RequireFromString("500.01"),
	}})
	if res.Success {
		t.Fatal("transfer above balance succeeded")
	}
	if res.Available == nil || res.Available.String() != "500" {
		t.Errorf("available = %v, want 500", res.Available)
	}
	if res.Requested == nil || res.Requested.String() != "500.01" {
		t.Errorf("requested = %v, want 500.01", res.Requested)
	}
	source, _ := store.Account(ledger.KindSavings, testCustomer)
	if source.Balance.String() != "500" {
		t.Errorf("source balance changed after failed transfer: %s", source.Balance)
	}
}

func TestTransferRejectsZeroAmount(t *testing.T) {
	engine, _ := newTestEngine(t)
	res := engine.Execute(Request{Action: ActionTransferFunds, Params: map[string]any{}})
	if res.Success {
		t.Fatal("transfer with no amount succeeded")
	}
}

func TestSearchTransactions(t *testing.T) {
	engine, _ := newTestEngine(t)

	tests := []struct {
		name   string
		params map[string]any
		want   int
	}{
		{"keyword matches merchant", map[string]any{"keyword": "coffee"}, 2},
		{"keyword case insensitive", map[string]any{"keyword": "COFFEE"}, 2},
		{"category exact", map[string]any{"category": "dining"}, 2},
		{"min amount on absolute value", map[string]any{"min_amount": 100.0}, 2},
		{"conjunctive filters", map[string]any{"keyword": "coffee", "min_amount": 15.0}, 1},
		{"no filters returns all", map[string]any{}, 6},
		{"no match", map[string]any{"keyword": "yacht"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Execute(Request{Action: ActionSearchTransactions, Params: tt.params})
			if !res.Success {
				t.Fatalf("search failed: %s", res.Error)
			}
			if res.Count != tt.want {
				t.Errorf("count = %d, want %d", res.Count, tt.want)
			}
		})
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"12.5", "12.50"},
		{"1234.56", "1,234.56"},
		{"1234567", "1,234,567.00"},
		{"-9876.5", "-9,876.50"},
	}
	for _, tt := range tests {
		if got := Money(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("Money(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
