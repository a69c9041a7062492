// Package actions maps structured action requests onto the ledger store.
// Every handler validates its own inputs and returns a structured result
// with an explicit success flag; nothing panics across this boundary.
package actions

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/banksight/banksight/ledger"
)

// Action names understood by the engine.
const (
	ActionGetBalance         = "get_balance"
	ActionGetTransactions    = "get_transactions"
	ActionTransferFunds      = "transfer_funds"
	ActionSearchTransactions = "search_transactions"

	// ActionNone marks an extraction that matched no rule; the caller must
	// produce a clarification response instead of dispatching.
	ActionNone = ""
)

// Request is the action contract: a named action plus a parameter map.
type Request struct {
	Action string         `json:"action_name"`
	Params map[string]any `json:"parameters"`
}

// SearchFilters echoes the filters applied by a transaction search.
type SearchFilters struct {
	Keyword   string   `json:"keyword,omitempty"`
	Category  string   `json:"category,omitempty"`
	MinAmount *float64 `json:"min_amount,omitempty"`
}

// Result is the structured outcome of one action. Only the fields relevant
// to the executed action are populated.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	AccountType   ledger.Kind          `json:"account_type,omitempty"`
	AccountNumber string               `json:"account_number,omitempty"`
	AccountStatus string               `json:"status,omitempty"`
	Balance       *decimal.Decimal     `json:"balance,omitempty"`
	Transactions  []ledger.Transaction `json:"transactions,omitempty"`
	Count         int                  `json:"count,omitempty"`

	FromAccount   ledger.Kind      `json:"from_account,omitempty"`
	ToAccount     ledger.Kind      `json:"to_account,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	NewBalance    *decimal.Decimal `json:"new_balance,omitempty"`
	TransactionID string           `json:"transaction_id,omitempty"`

	Requested *decimal.Decimal `json:"requested,omitempty"`
	Available *decimal.Decimal `json:"available,omitempty"`

	Filters          *SearchFilters `json:"filters,omitempty"`
	AvailableActions []string       `json:"available_actions,omitempty"`
}

type handler func(params map[string]any) *Result

// Engine dispatches named actions to handlers over the ledger store.
type Engine struct {
	store      *ledger.Store
	customerID string
	validate   *validator.Validate
	handlers   map[string]handler
}

// Option configures an Engine.
type Option func(*Engine)

// WithCustomerID sets the customer whose accounts the engine operates on.
func WithCustomerID(id string) Option {
	return func(e *Engine) {
		e.customerID = id
	}
}

// NewEngine returns an Engine bound to the given ledger store.
func NewEngine(store *ledger.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.handlers = map[string]handler{
		ActionGetBalance:         e.getBalance,
		ActionGetTransactions:    e.getTransactions,
		ActionTransferFunds:      e.transferFunds,
		ActionSearchTransactions: e.searchTransactions,
	}
	return e
}

// Actions returns the known action names, sorted.
func (e *Engine) Actions() []string {
	names := make([]string, 0, len(e.handlers))
	for name := range e.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the named action. Unknown names return a structured failure
// enumerating the known action names.
func (e *Engine) Execute(req Request) *Result {
	h, ok := e.handlers[req.Action]
	if !ok {
		return &Result{
			Success:          false,
			Error:            fmt.Sprintf("Unknown action: %s", req.Action),
			AvailableActions: e.Actions(),
		}
	}
	return h(req.Params)
}

func (e *Engine) getBalance(params map[string]any) *Result {
	p := balanceParams{AccountType: stringParam(params, "account_type", string(ledger.KindChecking))}
	if err := e.validate.Struct(&p); err != nil {
		return failure(err)
	}
	acc, err := e.store.Account(ledger.Kind(p.AccountType), e.customerID)
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("No %s account found", p.AccountType)}
	}
	return &Result{
		Success:       true,
		AccountType:   acc.Kind,
		AccountNumber: acc.Number,
		AccountStatus: acc.Status,
		Balance:       &acc.Balance,
	}
}

func (e *Engine) getTransactions(params map[string]any) *Result {
	p := transactionsParams{
		AccountType: stringParam(params, "account_type", string(ledger.KindChecking)),
		Limit:       intParam(params, "limit", 5),
	}
	if err := e.validate.Struct(&p); err != nil {
		return failure(err)
	}
	acc, err := e.store.Account(ledger.Kind(p.AccountType), e.customerID)
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("No %s account found", p.AccountType)}
	}
	txns := e.store.Transactions(acc.ID, p.Limit)
	return &Result{
		Success:      true,
		AccountType:  acc.Kind,
		Transactions: txns,
		Count:        len(txns),
	}
}

func (e *Engine) transferFunds(params map[string]any) *Result {
	p := transferParams{
		FromAccount: stringParam(params, "from_account", string(ledger.KindChecking)),
		ToAccount:   stringParam(params, "to_account", string(ledger.KindSavings)),
	}
	if err := e.validate.Struct(&p); err != nil {
		return failure(err)
	}
	amount := decimalParam(params, "amount")
	if !amount.IsPositive() {
		return &Result{Success: false, Error: "Transfer amount must be greater than zero"}
	}

	source, err := e.store.Account(ledger.Kind(p.FromAccount), e.customerID)
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("Source account '%s' not found", p.FromAccount)}
	}
	dest, err := e.store.Account(ledger.Kind(p.ToAccount), e.customerID)
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("Destination account '%s' not found", p.ToAccount)}
	}

	// Balance sufficiency is re-checked here at execution time; the
	// extractor's view of the world is not trusted.
	transfer, err := e.store.ApplyTransfer(source.ID, dest.ID, amount)
	if err != nil {
		var insufficient *ledger.InsufficientFundsError
		if errors.As(err, &insufficient) {
			return &Result{
				Success:   false,
				Error:     "Insufficient funds",
				Requested: &insufficient.Requested,
				Available: &insufficient.Available,
			}
		}
		return &Result{Success: false, Error: err.Error()}
	}
	return &Result{
		Success:       true,
		FromAccount:   source.Kind,
		ToAccount:     dest.Kind,
		Amount:        &transfer.Amount,
		NewBalance:    &transfer.NewSourceBalance,
		TransactionID: transfer.CorrelationID,
	}
}

func (e *Engine) searchTransactions(params map[string]any) *Result {
	p := searchParams{
		AccountType: stringParam(params, "account_type", string(ledger.KindChecking)),
		Keyword:     stringParam(params, "keyword", ""),
		Category:    stringParam(params, "category", ""),
		MinAmount:   floatParamPtr(params, "min_amount"),
	}
	if err := e.validate.Struct(&p); err != nil {
		return failure(err)
	}
	acc, err := e.store.Account(ledger.Kind(p.AccountType), e.customerID)
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("Account '%s' not found", p.AccountType)}
	}

	keyword := strings.ToLower(p.Keyword)
	var minAmount decimal.Decimal
	if p.MinAmount != nil {
		minAmount = decimal.NewFromFloat(*p.MinAmount)
	}

	results := make([]ledger.Transaction, 0)
	for _, txn := range e.store.Transactions(acc.ID, searchScanLimit) {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(txn.Merchant), keyword) &&
			!strings.Contains(strings.ToLower(txn.Description), keyword) {
			continue
		}
		if p.Category != "" && txn.Category != p.Category {
			continue
		}
		if p.MinAmount != nil && txn.Amount.Abs().LessThan(minAmount) {
			continue
		}
		results = append(results, txn)
	}

	return &Result{
		Success:      true,
		AccountType:  acc.Kind,
		Transactions: results,
		Count:        len(results),
		Filters: &SearchFilters{
			Keyword:   p.Keyword,
			Category:  p.Category,
			MinAmount: p.MinAmount,
		},
	}
}

// searchScanLimit bounds how many recent transactions a search scans.
const searchScanLimit = 100

func failure(err error) *Result {
	return &Result{Success: false, Error: err.Error()}
}
