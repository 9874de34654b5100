package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

func idealProfile() models.FinancialProfile {
	return models.FinancialProfile{
		Personal: models.Personal{Name: "Asha", Age: 30, RetirementAge: 60, CityTier: models.CityMetro},
		Income:   models.Income{MonthlySalary: 100000},
		Expenses: models.Expenses{Housing: 20000, Groceries: 10000, Utilities: 5000, EMI: 5000},
		NetWorth: models.NetWorth{
			Assets: []models.Asset{
				{Category: models.AssetSavingsAccount, Name: "Savings", Value: 300000},
				{Category: models.AssetEPF, Name: "EPF", Value: 4000000},
				{Category: models.AssetEquityFund, Name: "Index fund", Value: 2000000},
			},
			Liabilities: []models.Liability{
				{Type: models.LiabilityCarLoan, Outstanding: 200000, EMI: 5000, InterestRate: 9, RemainingMonths: 40},
			},
		},
		Insurance:   models.Insurance{HasHealth: true, HealthCover: 1000000, HasTermLife: true, TermLifeCover: 12000000},
		Investments: models.Investments{MonthlySIP: 25000},
		Risk:        models.RiskProfile{Type: models.RiskModerate},
		Tax:         models.TaxInputs{Regime: models.RegimeNew},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(idealProfile())
	assert.Equal(t, int64(100000), s.MonthlyIncome)
	assert.Equal(t, int64(1200000), s.AnnualIncome)
	assert.Equal(t, int64(40000), s.MonthlyExpenses)
	assert.Equal(t, int64(60000), s.MonthlySurplus)
	assert.InDelta(t, 60, s.SavingsRate, 0.001)
	assert.InDelta(t, 7.5, s.EmergencyMonths, 0.001)
	assert.Equal(t, int64(6300000), s.TotalAssets)
	assert.Equal(t, int64(6100000), s.NetWorth)
	assert.Equal(t, int64(5000), s.TotalEMI)
	assert.InDelta(t, 5, s.EMIRatio, 0.001)
}

func TestSummarize_ZeroIncome(t *testing.T) {
	s := Summarize(models.FinancialProfile{})
	assert.Zero(t, s.SavingsRate)
	assert.Zero(t, s.EmergencyMonths)
	assert.Zero(t, s.EMIRatio)
}

func TestAnalyze_Ideal(t *testing.T) {
	asOf := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	got := Analyze(idealProfile(), DefaultConfig(), Assumptions{AsOf: asOf})

	assert.Equal(t, 100, got.OverallScore)
	assert.Equal(t, "Healthy", got.Label)
	require.Len(t, got.Categories, 5)
	assert.Equal(t, asOf, got.GeneratedAt)
	assert.Equal(t, int64(0), got.TermInsuranceGap.Gap)
	assert.Equal(t, int64(0), got.HealthInsuranceGap.Gap)
	assert.Equal(t, models.RegimeNew, got.Tax.BetterRegime)
	assert.Equal(t, 100, got.TaxEfficiencyScore)
	assert.InDelta(t, 9.6, got.ExpectedReturn, 0.001)

	for _, it := range got.ActionItems {
		assert.NotEqual(t, models.PriorityUrgent, it.Priority, it.Text)
	}
}

func TestAnalyze_GapsAndGoals(t *testing.T) {
	p := idealProfile()
	p.Insurance = models.Insurance{HasHealth: true, HealthCover: 500000}
	p.Goals = []models.Goal{
		{Name: "Home", Type: models.GoalHomePurchase, TargetAmount: 10000000, TargetYear: 2035, InflationRate: 7, Priority: "high"},
	}
	p.NetWorth.Liabilities = append(p.NetWorth.Liabilities, models.Liability{Type: models.LiabilityCreditCard, Outstanding: 80000})

	got := Analyze(p, DefaultConfig(), Assumptions{AsOf: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), DebtReturn: 6.5})

	assert.Equal(t, int64(12000000), got.TermInsuranceGap.Gap)
	assert.Equal(t, int64(500000), got.HealthInsuranceGap.Gap)
	require.Len(t, got.Goals, 1)
	assert.False(t, got.Goals[0].OnTrack)
	assert.Equal(t, 10, got.Goals[0].YearsToTarget)
	assert.InDelta(t, 9.4, got.ExpectedReturn, 0.001)

	var sawGoal, sawCard bool
	prev := -1
	for _, it := range got.ActionItems {
		assert.GreaterOrEqual(t, it.Priority.Rank(), prev)
		prev = it.Priority.Rank()
		if it.Category == models.CategoryGoals {
			sawGoal = true
		}
		if it.Category == models.CategoryDebt && it.Priority == models.PriorityHigh {
			sawCard = true
		}
	}
	assert.True(t, sawGoal)
	assert.True(t, sawCard)
}

func TestAnalyze_BonusCountsTowardsLifeCover(t *testing.T) {
	p := idealProfile()
	p.Income.AnnualBonus = 600000

	got := Analyze(p, DefaultConfig(), Assumptions{AsOf: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)})

	assert.Equal(t, int64(1800000), got.Summary.AnnualIncome)
	assert.Equal(t, int64(6000000), got.TermInsuranceGap.Gap)
	insurance := got.Categories[1]
	require.Equal(t, models.CategoryInsurance, insurance.Category)
	assert.Equal(t, 17, insurance.Score)
	require.Len(t, insurance.Recommendations, 1)
	assert.Contains(t, insurance.Recommendations[0].Text, "6.7x")
}

func TestAnalyze_EmptyProfile(t *testing.T) {
	got := Analyze(models.FinancialProfile{}, DefaultConfig(), Assumptions{})
	assert.Equal(t, 20, got.OverallScore)
	assert.False(t, got.GeneratedAt.IsZero())
	assert.NotNil(t, got.ActionItems)
	assert.Empty(t, got.Goals)
}
