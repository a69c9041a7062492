package recommend

// Category labels for the overall health score.
const (
	CategoryExcellent        = "Excellent"
	CategoryGood             = "Good"
	CategoryFair             = "Fair"
	CategoryNeedsImprovement = "Needs Improvement"
	CategoryCritical         = "Critical"
)

// ScoreBreakdown is the financial health score (0-100, higher is better)
// with its five independent weighted sub-scores.
type ScoreBreakdown struct {
	Employment    int    `json:"employment"`     // max 20
	SavingsRate   int    `json:"savings_rate"`   // max 25
	DebtToIncome  int    `json:"debt_to_income"` // max 25
	CreditScore   int    `json:"credit_score"`   // max 20
	EmergencyFund int    `json:"emergency_fund"` // max 10
	Total         int    `json:"total"`
	Category      string `json:"category"`
}

// HealthScore computes the weighted health score for a profile. A zero
// income never divides: savings rate and DTI are treated as 0 in that case.
func HealthScore(p Profile) ScoreBreakdown {
	breakdown := ScoreBreakdown{
		Employment:    scoreEmployment(p.EmploymentStatus, p.EmploymentMonths),
		SavingsRate:   scoreSavingsRate(savingsRate(p)),
		DebtToIncome:  scoreDTI(dtiRatio(p)),
		CreditScore:   scoreCredit(p.CreditScore),
		EmergencyFund: scoreEmergencyFund(emergencyFundMonths(p)),
	}
	breakdown.Total = breakdown.Employment + breakdown.SavingsRate +
		breakdown.DebtToIncome + breakdown.CreditScore + breakdown.EmergencyFund
	breakdown.Category = categorize(breakdown.Total)
	return breakdown
}

func scoreEmployment(status string, months int) int {
	switch status {
	case EmploymentFullTime:
		if months >= 24 {
			return 20
		}
		return 15
	case EmploymentSelfEmployed:
		if months >= 36 {
			return 15
		}
		return 10
	}
	return 0
}

func scoreSavingsRate(rate float64) int {
	switch {
	case rate >= 20:
		return 25
	case rate >= 10:
		return 15
	case rate >= 5:
		return 10
	case rate > 0:
		return 5
	}
	return 0
}

func scoreDTI(ratio float64) int {
	switch {
	case ratio < 20:
		return 25
	case ratio < 35:
		return 20
	case ratio < 50:
		return 10
	case ratio < 70:
		return 5
	}
	return 0
}

func scoreCredit(score int) int {
	switch {
	case score >= 750:
		return 20
	case score >= 700:
		return 15
	case score >= 650:
		return 10
	case score >= 600:
		return 5
	}
	return 0
}

func scoreEmergencyFund(months float64) int {
	switch {
	case months >= 6:
		return 10
	case months >= 3:
		return 7
	case months >= 1:
		return 4
	}
	return 0
}

func categorize(score int) string {
	switch {
	case score >= 80:
		return CategoryExcellent
	case score >= 65:
		return CategoryGood
	case score >= 50:
		return CategoryFair
	case score >= 35:
		return CategoryNeedsImprovement
	}
	return CategoryCritical
}

// savingsRate is (income - expenses) / income as a percentage; 0 when the
// customer has no income.
func savingsRate(p Profile) float64 {
	income := p.FinancialData.MonthlyIncome
	if income <= 0 {
		return 0
	}
	return (income - p.FinancialData.MonthlyExpenses) / income * 100
}

// dtiRatio approximates monthly debt as total outstanding debt divided by
// 12 and returns it as a percentage of monthly income. Dividing outstanding
// principal by 12 is a deliberate rough approximation carried over from the
// product policy, not a payment schedule.
func dtiRatio(p Profile) float64 {
	income := p.FinancialData.MonthlyIncome
	if income <= 0 {
		return 0
	}
	monthlyDebt := p.TotalDebt() / 12
	return monthlyDebt / income * 100
}

// emergencyFundMonths is the savings balance expressed in months of
// expenses; 0 when expenses are 0.
func emergencyFundMonths(p Profile) float64 {
	expenses := p.FinancialData.MonthlyExpenses
	if expenses <= 0 {
		return 0
	}
	return p.Accounts.Savings / expenses
}
