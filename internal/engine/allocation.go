package engine

import (
	"fmt"
	"math"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

var riskAllocations = map[models.RiskType]models.Allocation{
	models.RiskConservative:         {Equity: 30, Debt: 60, Gold: 10},
	models.RiskModerate:             {Equity: 50, Debt: 40, Gold: 10},
	models.RiskModeratelyAggressive: {Equity: 65, Debt: 25, Gold: 10},
	models.RiskAggressive:           {Equity: 80, Debt: 15, Gold: 5},
}

// RiskTypeFromScore buckets a 0-100 questionnaire score.
func RiskTypeFromScore(score int) models.RiskType {
	switch {
	case score <= 25:
		return models.RiskConservative
	case score <= 50:
		return models.RiskModerate
	case score <= 75:
		return models.RiskModeratelyAggressive
	default:
		return models.RiskAggressive
	}
}

// RiskProfileFromScore builds a complete risk profile from a questionnaire score.
func RiskProfileFromScore(score int) models.RiskProfile {
	score = clampInt(score, 0, 100)
	t := RiskTypeFromScore(score)
	a := riskAllocations[t]
	return models.RiskProfile{Type: t, Score: score, EquityPct: a.Equity, DebtPct: a.Debt, GoldPct: a.Gold}
}

// RecommendedAllocation returns the target split for a risk profile. Explicit
// percentages win over the type; an empty profile is treated as moderate.
func RecommendedAllocation(rp models.RiskProfile) models.Allocation {
	if rp.EquityPct+rp.DebtPct+rp.GoldPct > 0 {
		return models.Allocation{Equity: rp.EquityPct, Debt: rp.DebtPct, Gold: rp.GoldPct}
	}
	if a, ok := riskAllocations[rp.Type]; ok {
		return a
	}
	if rp.Score > 0 {
		return riskAllocations[RiskTypeFromScore(rp.Score)]
	}
	return riskAllocations[models.RiskModerate]
}

// CurrentAllocation splits total assets by asset class, in percent.
func CurrentAllocation(assets []models.Asset) models.Allocation {
	var total float64
	byClass := map[models.AssetClass]float64{}
	for _, a := range assets {
		if a.Value <= 0 {
			continue
		}
		byClass[a.Category.Info().Class] += float64(a.Value)
		total += float64(a.Value)
	}
	if total == 0 {
		return models.Allocation{}
	}
	share := func(c models.AssetClass) float64 { return roundTo(byClass[c]/total*100, 1) }
	return models.Allocation{
		Equity:     share(models.ClassEquity),
		Debt:       share(models.ClassDebt),
		Gold:       share(models.ClassGold),
		RealEstate: share(models.ClassRealEstate),
		Cash:       share(models.ClassCash),
	}
}

// ExpectedReturn blends the configured class returns by allocation weight.
func ExpectedReturn(a models.Allocation, cfg Config) float64 {
	weight := a.Equity + a.Debt + a.Gold
	if weight <= 0 {
		return cfg.DebtReturn
	}
	r := (a.Equity*cfg.EquityReturn + a.Debt*cfg.DebtReturn + a.Gold*cfg.GoldReturn) / weight
	return roundTo(r, 2)
}

// AllocationRecommendations flags equity and debt drift beyond tolerance.
// Real estate and cash are ignored for rebalancing.
func AllocationRecommendations(current, target models.Allocation, cfg Config) []models.Recommendation {
	if current.Equity+current.Debt+current.Gold == 0 {
		return nil
	}
	var recs []models.Recommendation
	if d := current.Equity - target.Equity; math.Abs(d) > cfg.RebalanceTolerancePct {
		dir := "Increase"
		if d > 0 {
			dir = "Reduce"
		}
		recs = append(recs, models.Recommendation{
			Priority: models.PriorityMedium,
			Text: fmt.Sprintf("%s equity exposure: it is %.0f%% of your assets against a recommended %.0f%%.",
				dir, current.Equity, target.Equity),
		})
	}
	if current.Gold > target.Gold+cfg.RebalanceTolerancePct {
		recs = append(recs, models.Recommendation{
			Priority: models.PriorityLow,
			Text:     fmt.Sprintf("Gold is %.0f%% of your assets. Keep it near %.0f%% as a hedge.", current.Gold, target.Gold),
		})
	}
	return recs
}
