// Package engine implements the financial health scoring and recommendation
// rules. Every function in this package is pure: no I/O, no logging, and no
// errors for missing inputs, which are scored as zero.
package engine

import (
	"fmt"
	"strings"
)

// LabelBand maps totals strictly above Above to Label
type LabelBand struct {
	Above int    `json:"above"`
	Label string `json:"label"`
}

// Config holds every threshold the scorers use.
type Config struct {
	CategoryMax int `json:"category_max"`

	// Emergency fund, in months of expenses.
	EmergencyFullMonths    float64 `json:"emergency_full_months"`
	EmergencyPartialMonths float64 `json:"emergency_partial_months"`
	EmergencyMinimalMonths float64 `json:"emergency_minimal_months"`

	// Health cover in rupees, life cover as a multiple of annual income.
	HealthFullCover     int64   `json:"health_full_cover"`
	HealthPartialCover  int64   `json:"health_partial_cover"`
	LifeFullMultiple    float64 `json:"life_full_multiple"`
	LifePartialMultiple float64 `json:"life_partial_multiple"`

	// SIP as a percent of monthly income.
	SIPFullPct    float64 `json:"sip_full_pct"`
	SIPPartialPct float64 `json:"sip_partial_pct"`

	// EMI as a percent of monthly income.
	DebtLowPct      float64 `json:"debt_low_pct"`
	DebtModeratePct float64 `json:"debt_moderate_pct"`
	DebtHighPct     float64 `json:"debt_high_pct"`

	// Gap calculators.
	TermCoverMultiple   int64 `json:"term_cover_multiple"`
	MetroHealthCover    int64 `json:"metro_health_cover"`
	NonMetroHealthCover int64 `json:"non_metro_health_cover"`

	// Expected annual returns in percent.
	EquityReturn float64 `json:"equity_return"`
	DebtReturn   float64 `json:"debt_return"`
	GoldReturn   float64 `json:"gold_return"`

	// Analysis-only checks.
	TargetSavingsRate     float64 `json:"target_savings_rate"`
	RebalanceTolerancePct float64 `json:"rebalance_tolerance_pct"`

	Labels []LabelBand `json:"labels"`
	Tax    TaxRules    `json:"tax"`
}

// DefaultConfig returns the thresholds of the five-category health check.
// Labels: above 70 Healthy, 40 to 70 Needs Improvement, below 40 Needs Attention.
func DefaultConfig() Config {
	return Config{
		CategoryMax: 20,

		EmergencyFullMonths:    6,
		EmergencyPartialMonths: 3,
		EmergencyMinimalMonths: 1,

		HealthFullCover:     1000000, // 10 lakh
		HealthPartialCover:  500000,  // 5 lakh
		LifeFullMultiple:    10,
		LifePartialMultiple: 5,

		SIPFullPct:    20,
		SIPPartialPct: 10,

		DebtLowPct:      10,
		DebtModeratePct: 30,
		DebtHighPct:     50,

		TermCoverMultiple:   10,
		MetroHealthCover:    1000000,
		NonMetroHealthCover: 500000,

		EquityReturn: 12,
		DebtReturn:   7,
		GoldReturn:   8,

		TargetSavingsRate:     20,
		RebalanceTolerancePct: 10,

		Labels: []LabelBand{
			{Above: 70, Label: "Healthy"},
			{Above: 39, Label: "Needs Improvement"},
			{Above: -1, Label: "Needs Attention"},
		},
		Tax: DefaultTaxRules(),
	}
}

// ValidateConfig checks that a Config is internally consistent.
func ValidateConfig(c Config) error {
	var errs []string

	if c.CategoryMax <= 0 {
		errs = append(errs, "category_max must be positive")
	}
	if !(c.EmergencyFullMonths >= c.EmergencyPartialMonths && c.EmergencyPartialMonths >= c.EmergencyMinimalMonths) {
		errs = append(errs, "emergency thresholds must be descending")
	}
	if c.HealthFullCover < c.HealthPartialCover {
		errs = append(errs, "health_full_cover must be >= health_partial_cover")
	}
	if c.LifeFullMultiple < c.LifePartialMultiple {
		errs = append(errs, "life_full_multiple must be >= life_partial_multiple")
	}
	if c.SIPFullPct < c.SIPPartialPct {
		errs = append(errs, "sip_full_pct must be >= sip_partial_pct")
	}
	if !(c.DebtLowPct <= c.DebtModeratePct && c.DebtModeratePct <= c.DebtHighPct) {
		errs = append(errs, "debt thresholds must be ascending")
	}
	if len(c.Labels) == 0 {
		errs = append(errs, "at least one label band is required")
	}
	for i := 1; i < len(c.Labels); i++ {
		if c.Labels[i].Above >= c.Labels[i-1].Above {
			errs = append(errs, "label bands must be in descending order")
			break
		}
	}
	if len(c.Tax.OldSlabs) == 0 || len(c.Tax.NewSlabs) == 0 {
		errs = append(errs, "tax slabs are required for both regimes")
	}
	if c.Tax.CessPct.IsNegative() {
		errs = append(errs, "cess must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid engine config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Label maps an overall score to its qualitative label
func (c Config) Label(total int) string {
	for _, b := range c.Labels {
		if total > b.Above {
			return b.Label
		}
	}
	if len(c.Labels) > 0 {
		return c.Labels[len(c.Labels)-1].Label
	}
	return ""
}
