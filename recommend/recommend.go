package recommend

// Recommendation priorities. PriorityFuture marks a product the customer
// does not currently qualify for but asked about through a stated goal.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityFuture = "future"
)

// Loan types the recommendation rules look up in the catalog.
const (
	LoanTypeDebtConsolidation = "debt_consolidation"
	LoanTypePersonal          = "personal"
	LoanTypeMortgage          = "mortgage"
	LoanTypeBusiness          = "business"
)

// SavingsRecommendation is one suggested savings plan with a concrete
// monthly amount.
type SavingsRecommendation struct {
	Plan               SavingsPlan `json:"plan"`
	Priority           string      `json:"priority"`
	RecommendedMonthly float64     `json:"recommended_monthly"`
	Goal               string      `json:"goal"`
	TargetAmount       float64     `json:"target_amount,omitempty"`
	Reasoning          string      `json:"reasoning"`
}

// SavingsAdvice bundles savings recommendations with the analysis figures
// they were derived from.
type SavingsAdvice struct {
	CustomerName    string                  `json:"customer_name"`
	Recommendations []SavingsRecommendation `json:"recommendations"`

	MonthlyIncome       float64 `json:"monthly_income"`
	AvailableForSavings float64 `json:"available_for_savings"`
	CurrentSavings      float64 `json:"current_savings"`
	SavingsRate         float64 `json:"savings_rate"`
}

// LoanRecommendation is one suggested loan product, carrying the full
// eligibility decision it was based on.
type LoanRecommendation struct {
	Loan              Eligibility `json:"loan"`
	Priority          string      `json:"priority"`
	Purpose           string      `json:"purpose"`
	Benefit           string      `json:"benefit,omitempty"`
	RecommendedAmount float64     `json:"recommended_amount,omitempty"`
	DownPaymentNeeded float64     `json:"down_payment_needed,omitempty"`
	StepsToQualify    []string    `json:"steps_to_qualify,omitempty"`
}

// LoanAdvice bundles loan recommendations with general borrowing advice.
type LoanAdvice struct {
	CustomerName    string               `json:"customer_name"`
	Recommendations []LoanRecommendation `json:"recommendations"`
	GeneralAdvice   []string             `json:"general_advice"`
}

// RecommendSavings suggests savings plans for the customer. Rules fire
// independently, so a customer can receive several plans at once.
func (e *Engine) RecommendSavings(customerID string) (SavingsAdvice, error) {
	p, err := e.Profile(customerID)
	if err != nil {
		return SavingsAdvice{}, err
	}
	a := analyze(p)

	var recs []SavingsRecommendation

	// Emergency fund first whenever savings cover less than three months
	// of income.
	if a.SavingsBalance < a.MonthlyIncome*3 {
		if plan, ok := e.savingsPlanFor(RecommendedForEmergencyFund); ok {
			recs = append(recs, SavingsRecommendation{
				Plan:               plan,
				Priority:           PriorityHigh,
				RecommendedMonthly: round2(min(a.NetCashflow*0.3, 500)),
				Goal:               "Build 3-6 month emergency fund",
				TargetAmount:       a.MonthlyIncome * 6,
				Reasoning:          "Emergency fund is essential financial safety net",
			})
		}
	}

	// High-yield savings for customers with strong cashflow and an
	// established balance.
	if a.NetCashflow > 1000 && a.SavingsBalance >= 5000 {
		if plan, ok := e.savingsPlanByID(PlanIDHighYield); ok {
			recs = append(recs, SavingsRecommendation{
				Plan:               plan,
				Priority:           PriorityMedium,
				RecommendedMonthly: round2(a.NetCashflow * 0.4),
				Goal:               "Maximize savings growth",
				Reasoning:          "Your stable income and existing savings qualify you for higher returns",
			})
		}
	}

	// Retirement once the customer is 25+ with room in the budget.
	if p.Age >= 25 && a.NetCashflow > 500 {
		if plan, ok := e.savingsPlanByType(PlanTypeRetirement); ok {
			priority := PriorityMedium
			if p.Age > 40 {
				priority = PriorityHigh
			}
			recs = append(recs, SavingsRecommendation{
				Plan:               plan,
				Priority:           priority,
				RecommendedMonthly: round2(max(a.NetCashflow*0.15, a.MonthlyIncome*0.1)),
				Goal:               "Retirement planning",
				Reasoning:          "Start/increase retirement savings (target: 10-15% of income)",
			})
		}
	}

	// Dedicated goal savings for home buyers.
	if a.NetCashflow > 300 && p.HasGoal(GoalBuyHome) {
		if plan, ok := e.savingsPlanByID(PlanIDGoal); ok {
			recs = append(recs, SavingsRecommendation{
				Plan:               plan,
				Priority:           PriorityMedium,
				RecommendedMonthly: round2(a.NetCashflow * 0.25),
				Goal:               "Home down payment",
				TargetAmount:       50000,
				Reasoning:          "Dedicated savings for your home purchase goal",
			})
		}
	}

	return SavingsAdvice{
		CustomerName:        p.Name,
		Recommendations:     recs,
		MonthlyIncome:       a.MonthlyIncome,
		AvailableForSavings: a.NetCashflow,
		CurrentSavings:      a.SavingsBalance,
		SavingsRate:         a.SavingsRate,
	}, nil
}

// RecommendLoans suggests loan products for the customer. Products the
// catalog does not carry are silently skipped; an ineligible mortgage for a
// home buyer is still included, tagged future, with the disqualifying
// reasons as steps to qualify.
func (e *Engine) RecommendLoans(customerID string) (LoanAdvice, error) {
	p, err := e.Profile(customerID)
	if err != nil {
		return LoanAdvice{}, err
	}
	a := analyze(p)

	var recs []LoanRecommendation

	ccDebt := p.Debts["credit_card_debt"]
	if ccDebt > 5000 && a.DTIRatio < 45 {
		if el, err := e.CheckLoanEligibility(customerID, LoanTypeDebtConsolidation); err == nil && el.Eligible {
			recs = append(recs, LoanRecommendation{
				Loan:              el,
				Priority:          PriorityHigh,
				Purpose:           "Consolidate high-interest credit card debt",
				Benefit:           "Could save on interest and simplify payments",
				RecommendedAmount: min(ccDebt, el.MaxAmount),
			})
		}
	}

	if p.HasGoal(GoalMajorPurchase) && a.DTIRatio < 35 {
		if el, err := e.CheckLoanEligibility(customerID, LoanTypePersonal); err == nil && el.Eligible {
			recs = append(recs, LoanRecommendation{
				Loan:     el,
				Priority: PriorityMedium,
				Purpose:  "Finance major purchase",
				Benefit:  "Fixed rate and predictable payments",
			})
		}
	}

	if p.HasGoal(GoalBuyHome) {
		if el, err := e.CheckLoanEligibility(customerID, LoanTypeMortgage); err == nil {
			if el.Eligible {
				recs = append(recs, LoanRecommendation{
					Loan:              el,
					Priority:          PriorityHigh,
					Purpose:           "Home purchase",
					Benefit:           "Build equity and potential tax benefits",
					DownPaymentNeeded: el.MaxAmount * 0.2,
				})
			} else {
				recs = append(recs, LoanRecommendation{
					Loan:           el,
					Priority:       PriorityFuture,
					Purpose:        "Home purchase (not currently eligible)",
					StepsToQualify: el.Reasons,
				})
			}
		}
	}

	if p.EmploymentStatus == EmploymentSelfEmployed {
		if el, err := e.CheckLoanEligibility(customerID, LoanTypeBusiness); err == nil && el.Eligible {
			recs = append(recs, LoanRecommendation{
				Loan:     el,
				Priority: PriorityMedium,
				Purpose:  "Business expansion",
				Benefit:  "Grow your business with working capital",
			})
		}
	}

	return LoanAdvice{
		CustomerName:    p.Name,
		Recommendations: recs,
		GeneralAdvice:   loanAdvice(a),
	}, nil
}

func loanAdvice(a Analysis) []string {
	var advice []string
	if a.DTIRatio > 40 {
		advice = append(advice, "Focus on reducing existing debt before taking new loans")
	}
	if a.SavingsBalance < a.MonthlyExpenses*3 {
		advice = append(advice, "Build emergency fund before major loan commitments")
	}
	if a.CreditScore < 700 {
		advice = append(advice, "Improving credit score can get you better interest rates")
	}
	if a.NetCashflow > a.MonthlyIncome*0.2 {
		advice = append(advice, "Strong cashflow - you're in good position for borrowing")
	}
	return advice
}

func (e *Engine) savingsPlanFor(need string) (SavingsPlan, bool) {
	for _, plan := range e.catalog.SavingsPlans {
		if plan.IsRecommendedFor(need) {
			return plan, true
		}
	}
	return SavingsPlan{}, false
}

func (e *Engine) savingsPlanByID(id string) (SavingsPlan, bool) {
	for _, plan := range e.catalog.SavingsPlans {
		if plan.ID == id {
			return plan, true
		}
	}
	return SavingsPlan{}, false
}

func (e *Engine) savingsPlanByType(planType string) (SavingsPlan, bool) {
	for _, plan := range e.catalog.SavingsPlans {
		if plan.Type == planType {
			return plan, true
		}
	}
	return SavingsPlan{}, false
}
