// Package recommend owns read access to customer profiles and the financial
// product catalog, and derives health scores, eligibility decisions and
// product recommendations from them. All analyses are read-only; profiles
// are never mutated here.
package recommend

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Employment statuses recognized by the scoring rules.
const (
	EmploymentFullTime     = "full_time"
	EmploymentSelfEmployed = "self_employed"
	EmploymentPartTime     = "part_time"
	EmploymentUnemployed   = "unemployed"
)

// Financial goals referenced by the recommendation rules.
const (
	GoalBuyHome       = "buy_home"
	GoalMajorPurchase = "major_purchase"
)

// FinancialData is a customer's monthly cash picture.
type FinancialData struct {
	MonthlyIncome   float64 `yaml:"monthly_income" json:"monthly_income"`
	MonthlyExpenses float64 `yaml:"monthly_expenses" json:"monthly_expenses"`
}

// AccountBalances is a snapshot of a customer's balances by account class.
type AccountBalances struct {
	Checking   float64 `yaml:"checking_balance" json:"checking_balance"`
	Savings    float64 `yaml:"savings_balance" json:"savings_balance"`
	Investment float64 `yaml:"investment_balance" json:"investment_balance"`
}

// Profile is a customer's read-mostly financial profile.
type Profile struct {
	ID               string             `yaml:"id" json:"id"`
	Name             string             `yaml:"name" json:"name"`
	Age              int                `yaml:"age" json:"age"`
	EmploymentStatus string             `yaml:"employment_status" json:"employment_status"`
	EmploymentMonths int                `yaml:"employment_months" json:"employment_months"`
	FinancialData    FinancialData      `yaml:"financial_data" json:"financial_data"`
	Accounts         AccountBalances    `yaml:"accounts" json:"accounts"`
	Debts            map[string]float64 `yaml:"debts" json:"debts"`
	CreditScore      int                `yaml:"credit_score" json:"credit_score"`
	FinancialGoals   []string           `yaml:"financial_goals" json:"financial_goals"`
}

// TotalDebt sums the outstanding balances across all debt categories.
func (p Profile) TotalDebt() float64 {
	var total float64
	for _, v := range p.Debts {
		total += v
	}
	return total
}

// HasGoal reports whether the customer stated the given financial goal.
func (p Profile) HasGoal(goal string) bool {
	for _, g := range p.FinancialGoals {
		if g == goal {
			return true
		}
	}
	return false
}

// LoadProfiles reads the customer profile catalog from a YAML file.
func LoadProfiles(path string) ([]Profile, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read customer profiles: %w", err)
	}
	var doc struct {
		Customers []Profile `yaml:"customers"`
	}
	if err := yaml.Unmarshal(bs, &doc); err != nil {
		return nil, fmt.Errorf("decode customer profiles: %w", err)
	}
	return doc.Customers, nil
}
