package engine

import (
	"github.com/shopspring/decimal"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

// TaxSlab is one marginal band. UpTo is the inclusive upper bound of
// taxable income for the band; 0 means no upper bound.
type TaxSlab struct {
	UpTo    int64           `json:"up_to"`
	RatePct decimal.Decimal `json:"rate_pct"`
}

// TaxRules holds slab tables and limits for one financial year
type TaxRules struct {
	FinancialYear string    `json:"financial_year"`
	OldSlabs      []TaxSlab `json:"old_slabs"`
	NewSlabs      []TaxSlab `json:"new_slabs"`

	OldStandardDeduction int64 `json:"old_standard_deduction"`
	NewStandardDeduction int64 `json:"new_standard_deduction"`

	// Section 87A: tax is fully rebated up to these taxable incomes.
	OldRebateLimit int64 `json:"old_rebate_limit"`
	NewRebateLimit int64 `json:"new_rebate_limit"`

	CessPct decimal.Decimal `json:"cess_pct"`

	Cap80C              int64 `json:"cap_80c"`
	Cap80D              int64 `json:"cap_80d"`
	Cap80CCD1B          int64 `json:"cap_80ccd_1b"`
	CapHomeLoanInterest int64 `json:"cap_home_loan_interest"`
}

// DefaultTaxRules returns the resident individual (below 60) rules for
// FY 2025-26. Surcharge is not modelled.
func DefaultTaxRules() TaxRules {
	return TaxRules{
		FinancialYear: "2025-26",
		OldSlabs: []TaxSlab{
			{UpTo: 250000, RatePct: decimal.Zero},
			{UpTo: 500000, RatePct: decimal.NewFromInt(5)},
			{UpTo: 1000000, RatePct: decimal.NewFromInt(20)},
			{UpTo: 0, RatePct: decimal.NewFromInt(30)},
		},
		NewSlabs: []TaxSlab{
			{UpTo: 400000, RatePct: decimal.Zero},
			{UpTo: 800000, RatePct: decimal.NewFromInt(5)},
			{UpTo: 1200000, RatePct: decimal.NewFromInt(10)},
			{UpTo: 1600000, RatePct: decimal.NewFromInt(15)},
			{UpTo: 2000000, RatePct: decimal.NewFromInt(20)},
			{UpTo: 2400000, RatePct: decimal.NewFromInt(25)},
			{UpTo: 0, RatePct: decimal.NewFromInt(30)},
		},
		OldStandardDeduction: 50000,
		NewStandardDeduction: 75000,
		OldRebateLimit:       500000,
		NewRebateLimit:       1200000,
		CessPct:              decimal.NewFromInt(4),
		Cap80C:               150000,
		Cap80D:               75000,
		Cap80CCD1B:           50000,
		CapHomeLoanInterest:  200000,
	}
}

// CalculateTaxOldRegime computes old-regime tax with the default rules.
func CalculateTaxOldRegime(grossIncome int64, deductions models.TaxInputs) models.TaxResult {
	return DefaultTaxRules().OldRegime(grossIncome, deductions)
}

// CalculateTaxNewRegime computes new-regime tax with the default rules.
func CalculateTaxNewRegime(grossIncome int64) models.TaxResult {
	return DefaultTaxRules().NewRegime(grossIncome)
}

// AllowedDeductions returns the capped chapter VI-A and other deductions
// claimable under the old regime, excluding the standard deduction.
func (r TaxRules) AllowedDeductions(d models.TaxInputs) int64 {
	return capAt(d.Section80C, r.Cap80C) +
		capAt(d.Section80D, r.Cap80D) +
		capAt(d.Section80CCD1B, r.Cap80CCD1B) +
		capAt(d.HomeLoanInterest, r.CapHomeLoanInterest) +
		nonNegative(d.HRAExemption) +
		nonNegative(d.OtherDeductions)
}

// OldRegime applies the old-regime slabs after the standard deduction and
// the capped deductions.
func (r TaxRules) OldRegime(grossIncome int64, d models.TaxInputs) models.TaxResult {
	gross := nonNegative(grossIncome)
	deductions := r.OldStandardDeduction + r.AllowedDeductions(d)
	taxable := nonNegative(gross - deductions)

	tax := slabTax(taxable, r.OldSlabs)
	if taxable <= r.OldRebateLimit {
		tax = decimal.Zero
	}
	return r.result(models.RegimeOld, gross, deductions, taxable, tax)
}

// NewRegime applies the new-regime slabs after the standard deduction,
// including 87A marginal relief just above the rebate limit.
func (r TaxRules) NewRegime(grossIncome int64) models.TaxResult {
	gross := nonNegative(grossIncome)
	deductions := r.NewStandardDeduction
	taxable := nonNegative(gross - deductions)

	tax := slabTax(taxable, r.NewSlabs)
	if taxable <= r.NewRebateLimit {
		tax = decimal.Zero
	} else if excess := decimal.NewFromInt(taxable - r.NewRebateLimit); tax.GreaterThan(excess) {
		tax = excess
	}
	return r.result(models.RegimeNew, gross, deductions, taxable, tax)
}

// Compare computes both regimes and picks the cheaper one. Ties favour the
// new regime.
func (r TaxRules) Compare(grossIncome int64, d models.TaxInputs) models.TaxComparison {
	oldRes := r.OldRegime(grossIncome, d)
	newRes := r.NewRegime(grossIncome)

	cmp := models.TaxComparison{Old: oldRes, New: newRes, BetterRegime: models.RegimeNew}
	if oldRes.TotalTax < newRes.TotalTax {
		cmp.BetterRegime = models.RegimeOld
		cmp.PotentialSavings = newRes.TotalTax - oldRes.TotalTax
	} else {
		cmp.PotentialSavings = oldRes.TotalTax - newRes.TotalTax
	}
	return cmp
}

func (r TaxRules) result(regime models.TaxRegime, gross, deductions, taxable int64, tax decimal.Decimal) models.TaxResult {
	tax = tax.Round(0)
	cess := tax.Mul(r.CessPct).Div(decimal.NewFromInt(100)).Round(0)
	return models.TaxResult{
		Regime:        regime,
		GrossIncome:   gross,
		Deductions:    deductions,
		TaxableIncome: taxable,
		Tax:           tax.IntPart(),
		Cess:          cess.IntPart(),
		TotalTax:      tax.Add(cess).IntPart(),
	}
}

func slabTax(taxable int64, slabs []TaxSlab) decimal.Decimal {
	total := decimal.Zero
	var lower int64
	for _, s := range slabs {
		if taxable <= lower {
			break
		}
		upper := taxable
		if s.UpTo > 0 && s.UpTo < upper {
			upper = s.UpTo
		}
		if upper > lower {
			portion := decimal.NewFromInt(upper - lower)
			total = total.Add(portion.Mul(s.RatePct).Div(decimal.NewFromInt(100)))
		}
		if s.UpTo == 0 {
			break
		}
		lower = s.UpTo
	}
	return total
}

// TaxEfficiency scores, from 0 to 100, how well the user uses the tax
// rules. When the new regime is no more expensive the deductions do not
// matter and the score is full as long as the new regime is chosen.
func TaxEfficiency(d models.TaxInputs, cmp models.TaxComparison, rules TaxRules) (int, []models.Recommendation) {
	var recs []models.Recommendation

	if d.Regime != "" && d.Regime != cmp.BetterRegime && cmp.PotentialSavings > 0 {
		recs = append(recs, models.Recommendation{
			Priority: models.PriorityHigh,
			Text: "Switch to the " + string(cmp.BetterRegime) + " tax regime to save " +
				FormatINR(cmp.PotentialSavings) + " a year.",
		})
	}

	if cmp.BetterRegime == models.RegimeNew {
		score := 100
		if len(recs) > 0 {
			score = 60
		}
		return score, recs
	}

	used := capAt(d.Section80C, rules.Cap80C) + capAt(d.Section80D, rules.Cap80D) + capAt(d.Section80CCD1B, rules.Cap80CCD1B)
	limit := rules.Cap80C + rules.Cap80D + rules.Cap80CCD1B
	score := 100
	if limit > 0 {
		score = int(decimal.NewFromInt(used * 100).Div(decimal.NewFromInt(limit)).Round(0).IntPart())
	}

	if gap := rules.Cap80C - capAt(d.Section80C, rules.Cap80C); gap > 0 {
		recs = append(recs, models.Recommendation{
			Priority: models.PriorityMedium,
			Text:     "You can invest " + FormatINR(gap) + " more under Section 80C through ELSS, PPF or EPF top-ups.",
		})
	}
	if gap := rules.Cap80CCD1B - capAt(d.Section80CCD1B, rules.Cap80CCD1B); gap > 0 {
		recs = append(recs, models.Recommendation{
			Priority: models.PriorityLow,
			Text:     "Contribute up to " + FormatINR(gap) + " more to NPS for the additional Section 80CCD(1B) deduction.",
		})
	}
	if d.Section80D <= 0 {
		recs = append(recs, models.Recommendation{
			Priority: models.PriorityLow,
			Text:     "Health insurance premiums for you and your parents are deductible under Section 80D.",
		})
	}
	return clampInt(score, 0, 100), recs
}

func capAt(v, limit int64) int64 {
	v = nonNegative(v)
	if limit > 0 && v > limit {
		return limit
	}
	return v
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
