package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

func TestRiskProfileFromScore(t *testing.T) {
	tests := []struct {
		score  int
		want   models.RiskType
		equity float64
	}{
		{-10, models.RiskConservative, 30},
		{25, models.RiskConservative, 30},
		{26, models.RiskModerate, 50},
		{50, models.RiskModerate, 50},
		{75, models.RiskModeratelyAggressive, 65},
		{76, models.RiskAggressive, 80},
		{150, models.RiskAggressive, 80},
	}
	for _, tt := range tests {
		got := RiskProfileFromScore(tt.score)
		assert.Equal(t, tt.want, got.Type, "score=%d", tt.score)
		assert.Equal(t, tt.equity, got.EquityPct, "score=%d", tt.score)
		assert.InDelta(t, 100, got.EquityPct+got.DebtPct+got.GoldPct, 0.001)
	}
}

func TestRecommendedAllocation(t *testing.T) {
	assert.Equal(t, models.Allocation{Equity: 50, Debt: 40, Gold: 10}, RecommendedAllocation(models.RiskProfile{}))
	assert.Equal(t, models.Allocation{Equity: 80, Debt: 15, Gold: 5}, RecommendedAllocation(models.RiskProfile{Type: models.RiskAggressive}))
	assert.Equal(t, models.Allocation{Equity: 30, Debt: 60, Gold: 10}, RecommendedAllocation(models.RiskProfile{Score: 10}))
	assert.Equal(t, models.Allocation{Equity: 70, Debt: 20, Gold: 10},
		RecommendedAllocation(models.RiskProfile{Type: models.RiskConservative, EquityPct: 70, DebtPct: 20, GoldPct: 10}))
}

func TestCurrentAllocation(t *testing.T) {
	assets := []models.Asset{
		{Category: models.AssetEquityFund, Value: 500000},
		{Category: models.AssetPPF, Value: 300000},
		{Category: models.AssetGold, Value: 100000},
		{Category: models.AssetSavingsAccount, Value: 100000},
		{Category: models.AssetStocks, Value: -50},
	}
	got := CurrentAllocation(assets)
	assert.Equal(t, models.Allocation{Equity: 50, Debt: 30, Gold: 10, Cash: 10}, got)
	assert.Equal(t, models.Allocation{}, CurrentAllocation(nil))
}

func TestAllocationRecommendations(t *testing.T) {
	cfg := DefaultConfig()
	target := models.Allocation{Equity: 50, Debt: 40, Gold: 10}

	assert.Empty(t, AllocationRecommendations(models.Allocation{Equity: 55, Debt: 35, Gold: 10}, target, cfg))
	assert.Empty(t, AllocationRecommendations(models.Allocation{RealEstate: 100}, target, cfg))

	recs := AllocationRecommendations(models.Allocation{Equity: 10, Debt: 55, Gold: 35}, target, cfg)
	if assert.Len(t, recs, 2) {
		assert.Contains(t, recs[0].Text, "Increase equity")
		assert.Equal(t, models.PriorityLow, recs[1].Priority)
	}
}

func TestExpectedReturn(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 9.6, ExpectedReturn(models.Allocation{Equity: 50, Debt: 40, Gold: 10}, cfg), 0.001)
	assert.InDelta(t, cfg.DebtReturn, ExpectedReturn(models.Allocation{}, cfg), 0.001)
}
