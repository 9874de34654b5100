package engine

import (
	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

// Gap returns how far current falls short of recommended, never negative
func Gap(recommended, current int64) models.InsuranceGap {
	return models.InsuranceGap{
		Current:     nonNegative(current),
		Recommended: nonNegative(recommended),
		Gap:         nonNegative(recommended - nonNegative(current)),
	}
}

// TermInsuranceGap compares life cover with a fixed multiple of annual income.
func TermInsuranceGap(annualIncome, lifeCover int64, cfg Config) (models.InsuranceGap, []models.Recommendation) {
	gap := Gap(nonNegative(annualIncome)*cfg.TermCoverMultiple, lifeCover)
	if gap.Gap == 0 {
		return gap, nil
	}
	return gap, []models.Recommendation{{
		Priority: models.PriorityHigh,
		Text: "Term cover shortfall of " + FormatLakh(gap.Gap) + ". Raise your total life sum assured to " +
			FormatLakh(gap.Recommended) + ".",
	}}
}

// HealthInsuranceGap compares health cover with the amount recommended for
// the city tier. Metro cities need more cover; unknown tiers use non-metro.
func HealthInsuranceGap(tier models.CityTier, healthCover int64, cfg Config) (models.InsuranceGap, []models.Recommendation) {
	recommended := cfg.NonMetroHealthCover
	if tier == models.CityMetro {
		recommended = cfg.MetroHealthCover
	}
	gap := Gap(recommended, healthCover)
	if gap.Gap == 0 {
		return gap, nil
	}
	return gap, []models.Recommendation{{
		Priority: models.PriorityHigh,
		Text: "Health cover shortfall of " + FormatLakh(gap.Gap) + " for your city. Target a sum insured of " +
			FormatLakh(gap.Recommended) + ".",
	}}
}
