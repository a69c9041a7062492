package router

import (
	"fmt"
	"strings"

	"github.com/banksight/banksight/components/systemprompt"
	"github.com/banksight/banksight/recommend"
)

const customerContextTitle = "CUSTOMER FINANCIAL SUMMARY"

// customerContext exposes the default customer's financial analysis as a
// system prompt context block, so document-grounded answers can reference
// the customer's own situation.
type customerContext struct {
	engine     *recommend.Engine
	customerID string
}

var _ systemprompt.ContextProvider = (*customerContext)(nil)

func (c *customerContext) Title() string {
	return customerContextTitle
}

func (c *customerContext) Info() string {
	a, err := c.engine.Analyze(c.customerID)
	if err != nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Customer: %s\n", a.CustomerName)
	fmt.Fprintf(&b, "Monthly income: $%.2f, monthly expenses: $%.2f, net cashflow: $%.2f\n",
		a.MonthlyIncome, a.MonthlyExpenses, a.NetCashflow)
	fmt.Fprintf(&b, "Savings rate: %.1f%%, debt-to-income ratio: %.1f%%\n", a.SavingsRate, a.DTIRatio)
	fmt.Fprintf(&b, "Financial health: %d/100 (%s)", a.HealthScore, a.Category)
	if len(a.Concerns) > 0 {
		fmt.Fprintf(&b, "\nConcerns: %s", strings.Join(a.Concerns, "; "))
	}
	return b.String()
}
