package recommend

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Savings plan types referenced by the recommendation rules.
const (
	PlanTypeRetirement = "retirement"

	PlanIDHighYield = "savings_high_yield"
	PlanIDGoal      = "savings_goal"

	RecommendedForEmergencyFund = "emergency_fund"
)

// SavingsPlan is one savings product descriptor.
type SavingsPlan struct {
	ID             string   `yaml:"id" json:"id"`
	Name           string   `yaml:"name" json:"name"`
	Type           string   `yaml:"type" json:"type"`
	InterestRate   float64  `yaml:"interest_rate" json:"interest_rate"`
	MinMonthly     float64  `yaml:"min_monthly" json:"min_monthly"`
	RecommendedFor []string `yaml:"recommended_for" json:"recommended_for"`
}

// RecommendedFor reports whether the plan is tagged for the given need.
func (p SavingsPlan) IsRecommendedFor(need string) bool {
	for _, v := range p.RecommendedFor {
		if v == need {
			return true
		}
	}
	return false
}

// Requirements are a loan product's eligibility thresholds.
type Requirements struct {
	MinCreditScore   int     `yaml:"min_credit_score" json:"min_credit_score"`
	MinMonthlyIncome float64 `yaml:"min_monthly_income" json:"min_monthly_income"`
	MaxDTIRatio      float64 `yaml:"max_dti_ratio" json:"max_dti_ratio"`
	EmploymentMonths int     `yaml:"employment_months" json:"employment_months"`
}

// LoanProduct is one loan product descriptor with its eligibility
// requirements and amount, rate and term bounds.
type LoanProduct struct {
	ID              string       `yaml:"id" json:"id"`
	Name            string       `yaml:"name" json:"name"`
	Type            string       `yaml:"type" json:"type"`
	Requirements    Requirements `yaml:"requirements" json:"requirements"`
	AmountMin       float64      `yaml:"amount_min" json:"amount_min"`
	AmountMax       float64      `yaml:"amount_max" json:"amount_max"`
	InterestRateMin float64      `yaml:"interest_rate_min" json:"interest_rate_min"`
	InterestRateMax float64      `yaml:"interest_rate_max" json:"interest_rate_max"`
	TermMonthsMin   int          `yaml:"term_months_min" json:"term_months_min"`
	TermMonthsMax   int          `yaml:"term_months_max" json:"term_months_max"`
}

// Catalog is the immutable financial product catalog, loaded once.
type Catalog struct {
	SavingsPlans []SavingsPlan `yaml:"savings_plans" json:"savings_plans"`
	LoanProducts []LoanProduct `yaml:"loan_products" json:"loan_products"`
}

// LoanProduct returns the loan product of the given type.
func (c Catalog) LoanProduct(loanType string) (LoanProduct, bool) {
	for _, loan := range c.LoanProducts {
		if loan.Type == loanType {
			return loan, true
		}
	}
	return LoanProduct{}, false
}

// LoadCatalog reads the product catalog from a YAML file.
func LoadCatalog(path string) (Catalog, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read product catalog: %w", err)
	}
	var catalog Catalog
	if err := yaml.Unmarshal(bs, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("decode product catalog: %w", err)
	}
	return catalog, nil
}
