package models

import "time"

// Priority ranks an action item
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort order of p; unknown priorities sort last
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Category names a scored area of the profile
type Category string

const (
	CategoryEmergencyFund Category = "emergency_fund"
	CategoryInsurance     Category = "insurance"
	CategoryInvestment    Category = "investment"
	CategoryDebt          Category = "debt"
	CategoryRetirement    Category = "retirement"
	CategoryTax           Category = "tax"
	CategoryGoals         Category = "goals"
)

// Recommendation is a single piece of advice emitted by a scorer
type Recommendation struct {
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`
}

// CategoryScore is the result of one category scorer
type CategoryScore struct {
	Category        Category         `json:"category"`
	Score           int              `json:"score"`
	MaxScore        int              `json:"max_score"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ActionItem is a prioritized, category-tagged recommendation
type ActionItem struct {
	Category Category `json:"category"`
	Priority Priority `json:"priority"`
	Text     string   `json:"text"`
}

// Summary holds the derived figures the scores were computed from
type Summary struct {
	MonthlyIncome    int64   `json:"monthly_income"`
	AnnualIncome     int64   `json:"annual_income"`
	MonthlyExpenses  int64   `json:"monthly_expenses"`
	MonthlySurplus   int64   `json:"monthly_surplus"`
	SavingsRate      float64 `json:"savings_rate"`
	TotalAssets      int64   `json:"total_assets"`
	TotalLiabilities int64   `json:"total_liabilities"`
	NetWorth         int64   `json:"net_worth"`
	EmergencyMonths  float64 `json:"emergency_months"`
	TotalEMI         int64   `json:"total_emi"`
	EMIRatio         float64 `json:"emi_ratio"`
}

// InsuranceGap compares current cover with the recommended amount
type InsuranceGap struct {
	Current     int64 `json:"current"`
	Recommended int64 `json:"recommended"`
	Gap         int64 `json:"gap"`
}

// GoalAnalysis is the feasibility result for one goal
type GoalAnalysis struct {
	Name              string   `json:"name"`
	Type              GoalType `json:"type"`
	TargetAmount      int64    `json:"target_amount"`
	YearsToTarget     int      `json:"years_to_target"`
	InflatedTarget    int64    `json:"inflated_target"`
	CurrentProjection int64    `json:"current_projection"`
	RequiredSIP       int64    `json:"required_sip"`
	AdditionalSIP     int64    `json:"additional_sip"`
	OnTrack           bool     `json:"on_track"`
}

// Allocation is a split of a portfolio across asset classes, in percent
type Allocation struct {
	Equity     float64 `json:"equity"`
	Debt       float64 `json:"debt"`
	Gold       float64 `json:"gold"`
	RealEstate float64 `json:"real_estate"`
	Cash       float64 `json:"cash"`
}

// TaxResult is the outcome of one regime's computation
type TaxResult struct {
	Regime        TaxRegime `json:"regime"`
	GrossIncome   int64     `json:"gross_income"`
	Deductions    int64     `json:"deductions"`
	TaxableIncome int64     `json:"taxable_income"`
	Tax           int64     `json:"tax"`
	Cess          int64     `json:"cess"`
	TotalTax      int64     `json:"total_tax"`
}

// TaxComparison puts both regimes side by side
type TaxComparison struct {
	Old              TaxResult `json:"old"`
	New              TaxResult `json:"new"`
	BetterRegime     TaxRegime `json:"better_regime"`
	PotentialSavings int64     `json:"potential_savings"`
}

// AnalysisResult is the immutable snapshot produced by a plan generation
type AnalysisResult struct {
	PlanID                string          `json:"plan_id,omitempty"`
	GeneratedAt           time.Time       `json:"generated_at"`
	OverallScore          int             `json:"overall_score"`
	Label                 string          `json:"label"`
	Categories            []CategoryScore `json:"categories"`
	TaxEfficiencyScore    int             `json:"tax_efficiency_score"`
	Summary               Summary         `json:"summary"`
	TermInsuranceGap      InsuranceGap    `json:"term_insurance_gap"`
	HealthInsuranceGap    InsuranceGap    `json:"health_insurance_gap"`
	Goals                 []GoalAnalysis  `json:"goals"`
	CurrentAllocation     Allocation      `json:"current_allocation"`
	RecommendedAllocation Allocation      `json:"recommended_allocation"`
	ExpectedReturn        float64         `json:"expected_return"`
	Tax                   TaxComparison   `json:"tax"`
	ActionItems           []ActionItem    `json:"action_items"`
}

// Category returns the score for c, or false if it was not scored
func (a *AnalysisResult) Category(c Category) (CategoryScore, bool) {
	for _, cs := range a.Categories {
		if cs.Category == c {
			return cs, true
		}
	}
	return CategoryScore{}, false
}
