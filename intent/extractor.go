package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/banksight/banksight/actions"
	"github.com/banksight/banksight/ledger"
)

// maxTransactionLimit clamps how many transactions a query may request.
const maxTransactionLimit = 20

var (
	integerRe = regexp.MustCompile(`\d+`)
	amountRe  = regexp.MustCompile(`\$?(\d+(?:\.\d{2})?)`)
)

// Rule is one slot-extraction rule: a predicate over the lower-cased query
// and an extractor that decides the rule's own parameters.
type Rule struct {
	Name    string
	Match   func(lower string) bool
	Extract func(lower string) actions.Request
}

// DefaultRules returns the ordered rule table. Rules are checked in order and
// the first match wins; a query matching several categories is captured by
// whichever rule comes first.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "balance",
			Match:   func(lower string) bool { return strings.Contains(lower, "balance") },
			Extract: extractBalance,
		},
		{
			Name:    "transactions",
			Match:   matchAny("transaction", "history", "show"),
			Extract: extractTransactions,
		},
		{
			Name:    "transfer",
			Match:   matchAny("transfer", "send", "move"),
			Extract: extractTransfer,
		},
		{
			Name:    "search",
			Match:   matchAny("search", "find"),
			Extract: extractSearch,
		},
	}
}

// Extractor evaluates an ordered rule table against action-intent text.
type Extractor struct {
	rules []Rule
}

// NewExtractor returns an Extractor over the given rules, or DefaultRules
// when none are given.
func NewExtractor(rules ...Rule) *Extractor {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Extractor{rules: rules}
}

// Extract maps action-intent text to a named action plus parameters. When no
// rule matches, the returned request carries actions.ActionNone and the
// caller must produce a clarification response.
func (e *Extractor) Extract(query string) actions.Request {
	lower := strings.ToLower(query)
	for _, rule := range e.rules {
		if rule.Match(lower) {
			return rule.Extract(lower)
		}
	}
	return actions.Request{Action: actions.ActionNone, Params: map[string]any{}}
}

func matchAny(keywords ...string) func(string) bool {
	return func(lower string) bool {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
}

func extractBalance(lower string) actions.Request {
	accountType := ledger.KindChecking
	if strings.Contains(lower, "savings") {
		accountType = ledger.KindSavings
	} else if strings.Contains(lower, "credit") {
		accountType = ledger.KindCreditCard
	}
	return actions.Request{
		Action: actions.ActionGetBalance,
		Params: map[string]any{"account_type": string(accountType)},
	}
}

func extractTransactions(lower string) actions.Request {
	limit := 5
	if m := integerRe.FindString(lower); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			limit = n
		}
	}
	if limit > maxTransactionLimit {
		limit = maxTransactionLimit
	}
	accountType := ledger.KindChecking
	if strings.Contains(lower, "savings") {
		accountType = ledger.KindSavings
	}
	return actions.Request{
		Action: actions.ActionGetTransactions,
		Params: map[string]any{
			"account_type": string(accountType),
			"limit":        limit,
		},
	}
}

func extractTransfer(lower string) actions.Request {
	amount := 0.0
	if m := amountRe.FindStringSubmatch(lower); m != nil {
		amount, _ = strconv.ParseFloat(m[1], 64)
	}

	from, to := ledger.KindChecking, ledger.KindSavings
	savingsIdx := strings.Index(lower, "savings")
	checkingIdx := strings.Index(lower, "checking")
	// When both kinds are named, whichever occurs first is the source.
	if savingsIdx >= 0 && checkingIdx >= 0 && savingsIdx < checkingIdx {
		from, to = ledger.KindSavings, ledger.KindChecking
	}
	return actions.Request{
		Action: actions.ActionTransferFunds,
		Params: map[string]any{
			"from_account": string(from),
			"to_account":   string(to),
			"amount":       amount,
		},
	}
}

func extractSearch(lower string) actions.Request {
	keyword := lower
	for _, trigger := range []string{"search", "find", "transactions"} {
		keyword = strings.ReplaceAll(keyword, trigger, "")
	}
	keyword = strings.TrimSpace(keyword)

	params := map[string]any{}
	if keyword != "" {
		params["keyword"] = keyword
	}
	return actions.Request{
		Action: actions.ActionSearchTransactions,
		Params: params,
	}
}
