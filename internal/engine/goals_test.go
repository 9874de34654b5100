package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

func TestInflatedTarget(t *testing.T) {
	tests := []struct {
		name      string
		target    int64
		inflation float64
		years     int
		want      int64
	}{
		{"no inflation", 1000000, 0, 10, 1000000},
		{"no years", 1000000, 6, 0, 1000000},
		{"negative years", 1000000, 6, -3, 1000000},
		{"two years at 10", 100000, 10, 2, 121000},
		{"zero target", 0, 6, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InflatedTarget(tt.target, tt.inflation, tt.years))
		})
	}
}

func TestInflatedTarget_NeverBelowTarget(t *testing.T) {
	for years := 0; years <= 40; years++ {
		for _, infl := range []float64{0, 0.5, 4, 6, 12} {
			assert.GreaterOrEqual(t, InflatedTarget(2500000, infl, years), int64(2500000))
		}
		assert.Equal(t, int64(2500000), InflatedTarget(2500000, 0, years))
	}
}

func TestRequiredMonthlySIP(t *testing.T) {
	assert.Equal(t, int64(0), RequiredMonthlySIP(decimal.Zero, 12, 10))
	assert.Equal(t, int64(0), RequiredMonthlySIP(decimal.NewFromInt(-500), 12, 10))
	assert.Equal(t, int64(10000), RequiredMonthlySIP(decimal.NewFromInt(120000), 0, 1))
	assert.Equal(t, int64(50000), RequiredMonthlySIP(decimal.NewFromInt(50000), 12, 0))

	target := decimal.NewFromInt(10000000)
	for _, years := range []int{1, 5, 15, 30} {
		sip := RequiredMonthlySIP(target, 12, years)
		require.Positive(t, sip)
		assert.True(t, FutureValueSIP(sip, 12, years).GreaterThanOrEqual(target), "years=%d", years)
		assert.True(t, FutureValueSIP(sip-1, 12, years).LessThan(target), "years=%d", years)
	}
}

func TestFutureValueSIP(t *testing.T) {
	assert.True(t, FutureValueSIP(0, 12, 10).IsZero())
	assert.True(t, FutureValueSIP(1000, 12, 0).IsZero())
	assert.Equal(t, "120000", FutureValueSIP(10000, 0, 1).String())
	// 10k/month for 10 years at 12% with start-of-month payments.
	assert.Equal(t, int64(2323391), FutureValueSIP(10000, 12, 10).Round(0).IntPart())
}

func TestFutureValueLumpSum(t *testing.T) {
	assert.True(t, FutureValueLumpSum(0, 10, 5).IsZero())
	assert.Equal(t, "500000", FutureValueLumpSum(500000, 10, 0).String())
	assert.Equal(t, "121000", FutureValueLumpSum(100000, 10, 2).String())
	assert.Equal(t, "112360", FutureValueLumpSum(100000, 6, 2).String())
}

func TestAnalyzeGoal(t *testing.T) {
	t.Run("funded by savings", func(t *testing.T) {
		g := models.Goal{Name: "Car", Type: models.GoalCarPurchase, TargetAmount: 1000000, TargetYear: 2030, CurrentSavings: 1000000}
		got := AnalyzeGoal(g, 2025, 10)
		assert.Equal(t, 5, got.YearsToTarget)
		assert.Equal(t, int64(1000000), got.InflatedTarget)
		assert.True(t, got.OnTrack)
		assert.Equal(t, int64(0), got.RequiredSIP)
		assert.Equal(t, int64(0), got.AdditionalSIP)
	})

	t.Run("needs a sip", func(t *testing.T) {
		g := models.Goal{Type: models.GoalChildEducation, TargetAmount: 2500000, TargetYear: 2040, InflationRate: 10, MonthlySIP: 2000}
		got := AnalyzeGoal(g, 2025, 12)
		assert.Equal(t, "Child's Education", got.Name)
		assert.Equal(t, 15, got.YearsToTarget)
		assert.Greater(t, got.InflatedTarget, g.TargetAmount)
		assert.False(t, got.OnTrack)
		assert.Greater(t, got.RequiredSIP, g.MonthlySIP)
		assert.Equal(t, got.RequiredSIP-g.MonthlySIP, got.AdditionalSIP)
	})

	t.Run("past due", func(t *testing.T) {
		g := models.Goal{Name: "Trip", TargetAmount: 200000, TargetYear: 2020, InflationRate: 6}
		got := AnalyzeGoal(g, 2025, 12)
		assert.Equal(t, 0, got.YearsToTarget)
		assert.Equal(t, int64(200000), got.InflatedTarget)
		assert.Equal(t, int64(200000), got.RequiredSIP)
		assert.False(t, got.OnTrack)
	})
}

func TestGoalRecommendations(t *testing.T) {
	goals := []models.Goal{
		{Name: "Home", TargetAmount: 10000000, TargetYear: 2035, Priority: "high"},
		{Name: "Bike", TargetAmount: 100000, TargetYear: 2027, CurrentSavings: 200000},
		{Name: "Trip", TargetAmount: 300000, TargetYear: 2027, Priority: "whenever"},
	}
	analyses := make([]models.GoalAnalysis, len(goals))
	for i, g := range goals {
		analyses[i] = AnalyzeGoal(g, 2025, 10)
	}

	recs := GoalRecommendations(goals, analyses)
	require.Len(t, recs, 2)
	assert.Equal(t, models.PriorityHigh, recs[0].Priority)
	assert.Contains(t, recs[0].Text, "Home")
	assert.Contains(t, recs[0].Text, "10 years")
	assert.Equal(t, models.PriorityMedium, recs[1].Priority)
	assert.Contains(t, recs[1].Text, "2 years")
}
