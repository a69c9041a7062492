package recommend

import "fmt"

// Eligibility is a loan eligibility decision with the customer metrics it
// was decided on.
type Eligibility struct {
	CustomerName string `json:"customer_name"`
	LoanProduct  string `json:"loan_product"`
	LoanType     string `json:"loan_type"`

	Eligible  bool    `json:"eligible"`
	MaxAmount float64 `json:"max_amount"`

	InterestRateRange string `json:"interest_rate_range"`
	TermRange         string `json:"term_range"`

	// Reasons lists every violated requirement, or a single all-clear
	// entry when eligible. Warnings are non-blocking.
	Reasons  []string `json:"reasons"`
	Warnings []string `json:"warnings"`

	Requirements Requirements `json:"requirements"`
	Metrics      Metrics      `json:"customer_metrics"`
}

// Metrics are the customer figures the decision compared against the
// product requirements.
type Metrics struct {
	CreditScore      int     `json:"credit_score"`
	MonthlyIncome    float64 `json:"monthly_income"`
	DTIRatio         float64 `json:"dti_ratio"`
	EmploymentMonths int     `json:"employment_months"`
}

const reasonAllCriteriaMet = "All eligibility criteria met"

// Non-blocking warning strings attached even for eligible customers.
const (
	WarningHighDebt        = "High debt level - consider debt consolidation first"
	WarningLowSavingsRate  = "Low savings rate - ensure loan payments won't strain finances"
	WarningLimitedCashflow = "Limited cashflow - carefully review payment obligations"
)

// CheckLoanEligibility decides whether the customer qualifies for the given
// loan type. Every violated requirement is reported, not just the first.
// The approved maximum is the lower of 30% of annual income and the product
// cap; an ineligible customer gets a zero maximum.
func (e *Engine) CheckLoanEligibility(customerID, loanType string) (Eligibility, error) {
	p, err := e.Profile(customerID)
	if err != nil {
		return Eligibility{}, err
	}
	product, ok := e.catalog.LoanProduct(loanType)
	if !ok {
		return Eligibility{}, fmt.Errorf("%w: %s", ErrUnknownLoanType, loanType)
	}

	a := analyze(p)
	req := product.Requirements

	var reasons []string
	if p.CreditScore < req.MinCreditScore {
		reasons = append(reasons, fmt.Sprintf("Credit score (%d) below minimum (%d)",
			p.CreditScore, req.MinCreditScore))
	}
	if a.MonthlyIncome < req.MinMonthlyIncome {
		reasons = append(reasons, "Monthly income below minimum requirement")
	}
	if a.DTIRatio > req.MaxDTIRatio {
		reasons = append(reasons, fmt.Sprintf("Debt-to-income ratio (%.1f%%) exceeds maximum (%.1f%%)",
			a.DTIRatio, req.MaxDTIRatio))
	}
	if p.EmploymentMonths < req.EmploymentMonths {
		reasons = append(reasons, "Employment history too short")
	}

	eligible := len(reasons) == 0

	var maxAmount float64
	if eligible {
		reasons = []string{reasonAllCriteriaMet}
		incomeBasedMax := p.FinancialData.MonthlyIncome * 12 * 0.3
		maxAmount = round2(min(incomeBasedMax, product.AmountMax))
	}

	var warnings []string
	if a.DTIRatio > 35 {
		warnings = append(warnings, WarningHighDebt)
	}
	if a.SavingsRate < 10 {
		warnings = append(warnings, WarningLowSavingsRate)
	}
	if a.NetCashflow < 500 {
		warnings = append(warnings, WarningLimitedCashflow)
	}

	return Eligibility{
		CustomerName:      p.Name,
		LoanProduct:       product.Name,
		LoanType:          loanType,
		Eligible:          eligible,
		MaxAmount:         maxAmount,
		InterestRateRange: fmt.Sprintf("%g-%g%%", product.InterestRateMin, product.InterestRateMax),
		TermRange:         fmt.Sprintf("%d-%d months", product.TermMonthsMin, product.TermMonthsMax),
		Reasons:           reasons,
		Warnings:          warnings,
		Requirements:      req,
		Metrics: Metrics{
			CreditScore:      p.CreditScore,
			MonthlyIncome:    a.MonthlyIncome,
			DTIRatio:         a.DTIRatio,
			EmploymentMonths: p.EmploymentMonths,
		},
	}, nil
}
