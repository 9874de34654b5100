package engine

import (
	"fmt"
	"time"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

// Assumptions are the time- and market-dependent inputs of an analysis.
type Assumptions struct {
	AsOf time.Time
	// DebtReturn overrides Config.DebtReturn when positive, e.g. with a
	// benchmark rate from the rate feed.
	DebtReturn float64
}

// Summarize derives the headline figures from a profile.
func Summarize(p models.FinancialProfile) models.Summary {
	income := p.Income.TotalMonthly()
	expenses := p.Expenses.Total()
	s := models.Summary{
		MonthlyIncome:    income,
		AnnualIncome:     p.Income.Annual(),
		MonthlyExpenses:  expenses,
		MonthlySurplus:   income - expenses,
		TotalAssets:      p.NetWorth.TotalAssets(),
		TotalLiabilities: p.NetWorth.TotalLiabilities(),
		NetWorth:         p.NetWorth.Value(),
		TotalEMI:         totalEMI(p),
	}
	if income > 0 {
		s.SavingsRate = roundTo(float64(s.MonthlySurplus)/float64(income)*100, 2)
		s.EMIRatio = roundTo(float64(s.TotalEMI)/float64(income)*100, 2)
	}
	if expenses > 0 {
		s.EmergencyMonths = roundTo(float64(p.NetWorth.LiquidAssets())/float64(expenses), 2)
	}
	return s
}

// QuickCheckInputFromProfile maps a full profile onto the questionnaire
// answers so both paths share the same scorers.
func QuickCheckInputFromProfile(p models.FinancialProfile) QuickCheckInput {
	s := Summarize(p)
	return QuickCheckInput{
		EmergencyMonths:     s.EmergencyMonths,
		HasHealth:           p.Insurance.HasHealth,
		HealthAmount:        p.Insurance.EffectiveHealthCover(),
		HasLife:             p.Insurance.HasLife(),
		LifeAmount:          p.Insurance.LifeCover(),
		SIPAmount:           p.Investments.MonthlySIP,
		MonthlyIncome:       s.MonthlyIncome,
		AnnualIncome:        s.AnnualIncome,
		TotalEMI:            s.TotalEMI,
		CurrentAge:          p.Personal.Age,
		TargetRetirementAge: p.Personal.RetirementAge,
		RetirementSavings:   p.NetWorth.RetirementAssets(),
	}
}

// Analyze runs the full engine over a finalized profile.
func Analyze(p models.FinancialProfile, cfg Config, as Assumptions) models.AnalysisResult {
	if as.AsOf.IsZero() {
		as.AsOf = time.Now()
	}
	if as.DebtReturn > 0 {
		cfg.DebtReturn = as.DebtReturn
	}

	summary := Summarize(p)
	scores := ScoreCategories(QuickCheckInputFromProfile(p), cfg)
	total := OverallScore(scores)

	termGap, termRecs := TermInsuranceGap(summary.AnnualIncome, p.Insurance.LifeCover(), cfg)
	healthGap, healthRecs := HealthInsuranceGap(p.Personal.CityTier, p.Insurance.EffectiveHealthCover(), cfg)

	current := CurrentAllocation(p.NetWorth.Assets)
	recommended := RecommendedAllocation(p.Risk)
	expected := ExpectedReturn(recommended, cfg)

	goals := make([]models.GoalAnalysis, 0, len(p.Goals))
	for _, g := range p.Goals {
		goals = append(goals, AnalyzeGoal(g, as.AsOf.Year(), expected))
	}

	taxCmp := cfg.Tax.Compare(summary.AnnualIncome, p.Tax)
	taxScore, taxRecs := TaxEfficiency(p.Tax, taxCmp, cfg.Tax)

	groups := GroupsFromScores(scores)
	groups = append(groups,
		RecommendationGroup{Category: models.CategoryInsurance, Recommendations: append(termRecs, healthRecs...)},
		RecommendationGroup{Category: models.CategoryGoals, Recommendations: GoalRecommendations(p.Goals, goals)},
		RecommendationGroup{Category: models.CategoryTax, Recommendations: taxRecs},
		RecommendationGroup{Category: models.CategoryInvestment, Recommendations: AllocationRecommendations(current, recommended, cfg)},
		RecommendationGroup{Category: models.CategoryInvestment, Recommendations: savingsRecommendations(summary, cfg)},
		RecommendationGroup{Category: models.CategoryDebt, Recommendations: highInterestDebtRecommendations(p.NetWorth.Liabilities)},
	)

	return models.AnalysisResult{
		GeneratedAt:           as.AsOf,
		OverallScore:          total,
		Label:                 cfg.Label(total),
		Categories:            scores,
		TaxEfficiencyScore:    taxScore,
		Summary:               summary,
		TermInsuranceGap:      termGap,
		HealthInsuranceGap:    healthGap,
		Goals:                 goals,
		CurrentAllocation:     current,
		RecommendedAllocation: recommended,
		ExpectedReturn:        expected,
		Tax:                   taxCmp,
		ActionItems:           GenerateActionItems(groups...),
	}
}

func totalEMI(p models.FinancialProfile) int64 {
	emi := p.NetWorth.TotalEMI()
	if p.Expenses.EMI > emi {
		emi = p.Expenses.EMI
	}
	return emi
}

func savingsRecommendations(s models.Summary, cfg Config) []models.Recommendation {
	if s.MonthlyIncome <= 0 {
		return nil
	}
	if s.MonthlySurplus < 0 {
		return []models.Recommendation{{
			Priority: models.PriorityUrgent,
			Text:     "You spend " + FormatINR(-s.MonthlySurplus) + " more than you earn each month. Cut discretionary expenses first.",
		}}
	}
	if s.SavingsRate < cfg.TargetSavingsRate {
		return []models.Recommendation{{
			Priority: models.PriorityMedium,
			Text:     fmt.Sprintf("Your savings rate is %s. Aim to save at least %.0f%% of your income.", formatPct(s.SavingsRate), cfg.TargetSavingsRate),
		}}
	}
	return nil
}

func highInterestDebtRecommendations(liabilities []models.Liability) []models.Recommendation {
	var recs []models.Recommendation
	for _, l := range liabilities {
		if l.Outstanding <= 0 || !l.Type.Info().HighInterest {
			continue
		}
		name := l.Name
		if name == "" {
			name = l.Type.Info().Label
		}
		recs = append(recs, models.Recommendation{
			Priority: models.PriorityHigh,
			Text:     "Prioritise repaying your " + name + " (" + FormatINR(l.Outstanding) + " outstanding); high-interest debt costs more than most investments earn.",
		})
	}
	return recs
}
