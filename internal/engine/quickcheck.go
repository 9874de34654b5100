package engine

import (
	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

// QuickCheckInput holds the answers of the standalone health-check questionnaire
type QuickCheckInput struct {
	EmergencyMonths     float64 `json:"emergency_months"`
	HasHealth           bool    `json:"has_health"`
	HealthAmount        int64   `json:"health_amount"`
	HasLife             bool    `json:"has_life"`
	LifeAmount          int64   `json:"life_amount"`
	SIPAmount           int64   `json:"sip_amount"`
	MonthlyIncome       int64   `json:"monthly_income"`
	AnnualIncome        int64   `json:"annual_income,omitempty"`
	TotalEMI            int64   `json:"total_emi"`
	CurrentAge          int     `json:"current_age"`
	TargetRetirementAge int     `json:"target_retirement_age"`
	RetirementSavings   int64   `json:"retirement_savings"`
}

// QuickCheckResult is the outcome of a quick health check
type QuickCheckResult struct {
	OverallScore int                    `json:"overall_score"`
	Label        string                 `json:"label"`
	Categories   []models.CategoryScore `json:"categories"`
	ActionItems  []models.ActionItem    `json:"action_items"`
}

// Annual returns AnnualIncome, or twelve months of income when it is unset.
func (in QuickCheckInput) Annual() int64 {
	if in.AnnualIncome > 0 {
		return in.AnnualIncome
	}
	return in.MonthlyIncome * 12
}

// ScoreCategories runs the five category scorers in their fixed order.
func ScoreCategories(in QuickCheckInput, cfg Config) []models.CategoryScore {
	return []models.CategoryScore{
		ScoreEmergencyFund(in.EmergencyMonths, cfg),
		ScoreInsurance(in.HasHealth, in.HealthAmount, in.HasLife, in.LifeAmount, in.Annual(), cfg),
		ScoreInvestment(in.SIPAmount, in.MonthlyIncome, cfg),
		ScoreDebt(in.TotalEMI, in.MonthlyIncome, cfg),
		ScoreRetirement(in.CurrentAge, in.TargetRetirementAge, in.RetirementSavings, in.MonthlyIncome, cfg),
	}
}

// QuickCheck scores the questionnaire answers.
func QuickCheck(in QuickCheckInput, cfg Config) QuickCheckResult {
	scores := ScoreCategories(in, cfg)
	total := OverallScore(scores)
	return QuickCheckResult{
		OverallScore: total,
		Label:        cfg.Label(total),
		Categories:   scores,
		ActionItems:  GenerateActionItems(GroupsFromScores(scores)...),
	}
}
