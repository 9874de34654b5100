package models

// FinancialProfile is the finalized, read-only input to the scoring engine.
// All amounts are whole rupees. Derived totals are methods and are
// recomputed on every read.
type FinancialProfile struct {
	Personal    Personal    `json:"personal"`
	Income      Income      `json:"income"`
	Expenses    Expenses    `json:"expenses"`
	NetWorth    NetWorth    `json:"net_worth"`
	Insurance   Insurance   `json:"insurance"`
	Investments Investments `json:"investments"`
	Goals       []Goal      `json:"goals"`
	Risk        RiskProfile `json:"risk_profile"`
	Tax         TaxInputs   `json:"tax"`
}

// Personal holds the demographic inputs
type Personal struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Age           int      `json:"age"`
	RetirementAge int      `json:"retirement_age"`
	Dependents    int      `json:"dependents"`
	City          string   `json:"city"`
	CityTier      CityTier `json:"city_tier"`
	MaritalStatus string   `json:"marital_status"`
}

// Income holds recurring and annual income sources
type Income struct {
	MonthlySalary  int64 `json:"monthly_salary"`
	AnnualBonus    int64 `json:"annual_bonus"`
	RentalIncome   int64 `json:"rental_income"`
	BusinessIncome int64 `json:"business_income"`
	OtherIncome    int64 `json:"other_income"`
}

// TotalMonthly returns the recurring monthly income, excluding the bonus
func (i Income) TotalMonthly() int64 {
	return i.MonthlySalary + i.RentalIncome + i.BusinessIncome + i.OtherIncome
}

// Annual returns twelve months of recurring income plus the bonus
func (i Income) Annual() int64 {
	return i.TotalMonthly()*12 + i.AnnualBonus
}

// Expenses holds monthly spend per category
type Expenses struct {
	Housing       int64 `json:"housing"`
	Utilities     int64 `json:"utilities"`
	Groceries     int64 `json:"groceries"`
	Transport     int64 `json:"transport"`
	Education     int64 `json:"education"`
	Healthcare    int64 `json:"healthcare"`
	Entertainment int64 `json:"entertainment"`
	PersonalCare  int64 `json:"personal_care"`
	Insurance     int64 `json:"insurance"`
	EMI           int64 `json:"emi"`
	DomesticHelp  int64 `json:"domestic_help"`
	Other         int64 `json:"other"`
}

// Total returns the sum of all expense categories
func (e Expenses) Total() int64 {
	return e.Housing + e.Utilities + e.Groceries + e.Transport + e.Education +
		e.Healthcare + e.Entertainment + e.PersonalCare + e.Insurance +
		e.EMI + e.DomesticHelp + e.Other
}

// Asset is a single holding on the net worth step
type Asset struct {
	Category AssetCategory `json:"category"`
	Name     string        `json:"name"`
	Value    int64         `json:"value"`
	Liquid   bool          `json:"liquid"`
}

// Liability is a single outstanding loan
type Liability struct {
	Type            LiabilityType `json:"type"`
	Name            string        `json:"name"`
	Outstanding     int64         `json:"outstanding"`
	EMI             int64         `json:"emi"`
	InterestRate    float64       `json:"interest_rate"`
	RemainingMonths int           `json:"remaining_months"`
}

// NetWorth holds assets and liabilities
type NetWorth struct {
	Assets      []Asset     `json:"assets"`
	Liabilities []Liability `json:"liabilities"`
}

// TotalAssets returns the sum of asset values
func (n NetWorth) TotalAssets() int64 {
	var total int64
	for _, a := range n.Assets {
		total += a.Value
	}
	return total
}

// TotalLiabilities returns the sum of outstanding loan balances
func (n NetWorth) TotalLiabilities() int64 {
	var total int64
	for _, l := range n.Liabilities {
		total += l.Outstanding
	}
	return total
}

// Value returns assets minus liabilities. It may be negative.
func (n NetWorth) Value() int64 {
	return n.TotalAssets() - n.TotalLiabilities()
}

// LiquidAssets returns the value of assets flagged liquid or belonging to a
// liquid category
func (n NetWorth) LiquidAssets() int64 {
	var total int64
	for _, a := range n.Assets {
		if a.Liquid || a.Category.Info().Liquid {
			total += a.Value
		}
	}
	return total
}

// RetirementAssets returns the value held in retirement-earmarked categories
func (n NetWorth) RetirementAssets() int64 {
	var total int64
	for _, a := range n.Assets {
		if a.Category.Info().Retirement {
			total += a.Value
		}
	}
	return total
}

// TotalEMI returns the sum of monthly loan instalments
func (n NetWorth) TotalEMI() int64 {
	var total int64
	for _, l := range n.Liabilities {
		total += l.EMI
	}
	return total
}

// Insurance holds the policies the user already has
type Insurance struct {
	HasHealth      bool  `json:"has_health"`
	HealthCover    int64 `json:"health_cover"`
	HasTermLife    bool  `json:"has_term_life"`
	TermLifeCover  int64 `json:"term_life_cover"`
	HasOtherLife   bool  `json:"has_other_life"`
	OtherLifeCover int64 `json:"other_life_cover"`
}

// LifeCover returns the combined term and other life sum assured
func (i Insurance) LifeCover() int64 {
	var total int64
	if i.HasTermLife {
		total += i.TermLifeCover
	}
	if i.HasOtherLife {
		total += i.OtherLifeCover
	}
	return total
}

// HasLife reports whether any life policy is held
func (i Insurance) HasLife() bool {
	return i.LifeCover() > 0
}

// EffectiveHealthCover returns the health sum insured, or 0 if no policy is held
func (i Insurance) EffectiveHealthCover() int64 {
	if !i.HasHealth {
		return 0
	}
	return i.HealthCover
}

// TotalCover returns health plus life cover
func (i Insurance) TotalCover() int64 {
	return i.EffectiveHealthCover() + i.LifeCover()
}

// Investments holds ongoing contributions
type Investments struct {
	MonthlySIP int64 `json:"monthly_sip"`
}

// Goal is a single financial goal as entered by the user. The engine
// reports the inflated target and recommended SIP in a GoalAnalysis.
type Goal struct {
	Name           string   `json:"name"`
	Type           GoalType `json:"type"`
	TargetAmount   int64    `json:"target_amount"`
	TargetYear     int      `json:"target_year"`
	InflationRate  float64  `json:"inflation_rate"`
	Priority       string   `json:"priority"`
	CurrentSavings int64    `json:"current_savings"`
	MonthlySIP     int64    `json:"monthly_sip"`
}

// RiskProfile is the outcome of the risk questionnaire
type RiskProfile struct {
	Type      RiskType `json:"type"`
	Score     int      `json:"score"`
	EquityPct float64  `json:"equity_pct"`
	DebtPct   float64  `json:"debt_pct"`
	GoldPct   float64  `json:"gold_pct"`
}

// TaxInputs holds regime choice and deduction usage per section
type TaxInputs struct {
	Regime           TaxRegime `json:"regime"`
	Section80C       int64     `json:"section_80c"`
	Section80D       int64     `json:"section_80d"`
	Section80CCD1B   int64     `json:"section_80ccd_1b"`
	HomeLoanInterest int64     `json:"home_loan_interest"`
	HRAExemption     int64     `json:"hra_exemption"`
	OtherDeductions  int64     `json:"other_deductions"`
}
