package actions

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/banksight/banksight/ledger"
)

// formatListLimit bounds how many search hits the rendered text lists.
const formatListLimit = 10

// Format renders an action result into natural-language text. Transfer
// results are rendered from the post-transfer source balance.
func Format(action string, res *Result) string {
	if !res.Success {
		return fmt.Sprintf("Sorry, I couldn't complete that action: %s", res.Error)
	}
	switch action {
	case ActionGetBalance:
		return fmt.Sprintf("Your %s account (%s) has a balance of $%s.",
			res.AccountType, res.AccountNumber, Money(*res.Balance))
	case ActionGetTransactions:
		if len(res.Transactions) == 0 {
			return "No transactions found."
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "Here are your last %d transactions:\n\n", len(res.Transactions))
		writeTransactionLines(&sb, res.Transactions)
		return sb.String()
	case ActionTransferFunds:
		return fmt.Sprintf("Transfer completed!\n$%s transferred from %s to %s.\nNew %s balance: $%s",
			Money(*res.Amount), res.FromAccount, res.ToAccount, res.FromAccount, Money(*res.NewBalance))
	case ActionSearchTransactions:
		if res.Count == 0 {
			return "No transactions found matching your criteria."
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "Found %d matching transactions:\n\n", res.Count)
		txns := res.Transactions
		if len(txns) > formatListLimit {
			txns = txns[:formatListLimit]
		}
		writeTransactionLines(&sb, txns)
		return sb.String()
	}
	return fmt.Sprintf("%+v", res)
}

func writeTransactionLines(sb *strings.Builder, txns []ledger.Transaction) {
	for _, txn := range txns {
		sign := "-"
		if txn.Amount.IsPositive() {
			sign = "+"
		}
		fmt.Fprintf(sb, "%s$%s - %s (%s)\n", sign, Money(txn.Amount.Abs()), txn.Merchant, txn.Date.Format("2006-01-02"))
	}
}

// Money renders a decimal amount with two fraction digits and thousands
// separators, e.g. 1234.5 -> "1,234.50".
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c)
	}
	sb.WriteString(frac)
	return sb.String()
}
