package recommend

import "math"

// Analysis is the full financial health picture for one customer.
type Analysis struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`

	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	NetCashflow     float64 `json:"net_cashflow"`
	SavingsRate     float64 `json:"savings_rate"`

	CheckingBalance float64 `json:"checking_balance"`
	SavingsBalance  float64 `json:"savings_balance"`
	Investments     float64 `json:"investments"`
	TotalAssets     float64 `json:"total_assets"`

	TotalDebt float64 `json:"total_debt"`
	DTIRatio  float64 `json:"dti_ratio"`

	CreditScore int    `json:"credit_score"`
	HealthScore int    `json:"health_score"`
	Category    string `json:"category"`

	Strengths []string `json:"strengths"`
	Concerns  []string `json:"concerns"`

	EmploymentStatus string `json:"employment_status"`
	EmploymentMonths int    `json:"employment_months"`
}

// Concern strings with fixed thresholds. ConcernNegativeCashflow is the one
// hard flag: it fires whenever expenses exceed income, regardless of score.
const (
	StrengthSavingsRate   = "Strong savings rate"
	StrengthCreditScore   = "Excellent credit score"
	StrengthLowDebt       = "Low debt burden"
	StrengthEmergencyFund = "Adequate emergency fund"

	ConcernSavingsRate      = "Low or negative savings rate"
	ConcernCreditScore      = "Credit score needs improvement"
	ConcernHighDebt         = "High debt-to-income ratio"
	ConcernEmergencyFund    = "Insufficient emergency fund"
	ConcernNegativeCashflow = "CRITICAL: Expenses exceed income"
)

// Analyze runs the comprehensive financial health analysis for a customer.
func (e *Engine) Analyze(customerID string) (Analysis, error) {
	p, err := e.Profile(customerID)
	if err != nil {
		return Analysis{}, err
	}
	return analyze(p), nil
}

func analyze(p Profile) Analysis {
	income := p.FinancialData.MonthlyIncome
	expenses := p.FinancialData.MonthlyExpenses
	cashflow := income - expenses

	rate := savingsRate(p)
	dti := dtiRatio(p)
	breakdown := HealthScore(p)

	a := Analysis{
		CustomerID:   p.ID,
		CustomerName: p.Name,

		MonthlyIncome:   income,
		MonthlyExpenses: expenses,
		NetCashflow:     cashflow,
		SavingsRate:     round1(rate),

		CheckingBalance: p.Accounts.Checking,
		SavingsBalance:  p.Accounts.Savings,
		Investments:     p.Accounts.Investment,
		TotalAssets:     p.Accounts.Checking + p.Accounts.Savings + p.Accounts.Investment,

		TotalDebt: p.TotalDebt(),
		DTIRatio:  round1(dti),

		CreditScore: p.CreditScore,
		HealthScore: breakdown.Total,
		Category:    breakdown.Category,

		EmploymentStatus: p.EmploymentStatus,
		EmploymentMonths: p.EmploymentMonths,
	}

	if rate >= 15 {
		a.Strengths = append(a.Strengths, StrengthSavingsRate)
	}
	if p.CreditScore >= 720 {
		a.Strengths = append(a.Strengths, StrengthCreditScore)
	}
	if dti < 30 {
		a.Strengths = append(a.Strengths, StrengthLowDebt)
	}
	if p.Accounts.Savings >= expenses*3 {
		a.Strengths = append(a.Strengths, StrengthEmergencyFund)
	}

	if rate < 5 {
		a.Concerns = append(a.Concerns, ConcernSavingsRate)
	}
	if p.CreditScore < 650 {
		a.Concerns = append(a.Concerns, ConcernCreditScore)
	}
	if dti > 40 {
		a.Concerns = append(a.Concerns, ConcernHighDebt)
	}
	if p.Accounts.Savings < expenses*3 {
		a.Concerns = append(a.Concerns, ConcernEmergencyFund)
	}
	if cashflow < 0 {
		a.Concerns = append(a.Concerns, ConcernNegativeCashflow)
	}

	return a
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
