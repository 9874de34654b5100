package models

// GoalType is the closed set of financial goals a plan can carry
type GoalType string

const (
	GoalRetirement     GoalType = "retirement"
	GoalChildEducation GoalType = "child_education"
	GoalChildMarriage  GoalType = "child_marriage"
	GoalHomePurchase   GoalType = "home_purchase"
	GoalCarPurchase    GoalType = "car_purchase"
	GoalVacation       GoalType = "vacation"
	GoalEmergencyFund  GoalType = "emergency_fund"
	GoalWealthCreation GoalType = "wealth_creation"
	GoalOther          GoalType = "other"
)

// GoalTypeInfo holds display and default values for a goal type
type GoalTypeInfo struct {
	Label            string
	DefaultAmount    int64
	DefaultYears     int
	DefaultInflation float64
}

var goalTypes = map[GoalType]GoalTypeInfo{
	GoalRetirement:     {Label: "Retirement", DefaultAmount: 50000000, DefaultYears: 25, DefaultInflation: 6},
	GoalChildEducation: {Label: "Child's Education", DefaultAmount: 2500000, DefaultYears: 15, DefaultInflation: 10},
	GoalChildMarriage:  {Label: "Child's Marriage", DefaultAmount: 2000000, DefaultYears: 20, DefaultInflation: 7},
	GoalHomePurchase:   {Label: "Home Purchase", DefaultAmount: 10000000, DefaultYears: 10, DefaultInflation: 7},
	GoalCarPurchase:    {Label: "Car Purchase", DefaultAmount: 1000000, DefaultYears: 5, DefaultInflation: 5},
	GoalVacation:       {Label: "Vacation", DefaultAmount: 300000, DefaultYears: 2, DefaultInflation: 6},
	GoalEmergencyFund:  {Label: "Emergency Fund", DefaultAmount: 500000, DefaultYears: 1, DefaultInflation: 6},
	GoalWealthCreation: {Label: "Wealth Creation", DefaultAmount: 10000000, DefaultYears: 15, DefaultInflation: 6},
	GoalOther:          {Label: "Other Goal", DefaultAmount: 1000000, DefaultYears: 5, DefaultInflation: 6},
}

// AllGoalTypes lists every goal type in display order
var AllGoalTypes = []GoalType{
	GoalRetirement, GoalChildEducation, GoalChildMarriage, GoalHomePurchase,
	GoalCarPurchase, GoalVacation, GoalEmergencyFund, GoalWealthCreation, GoalOther,
}

// Valid reports whether g is a known goal type
func (g GoalType) Valid() bool {
	_, ok := goalTypes[g]
	return ok
}

// Info returns the lookup entry for g, falling back to GoalOther
func (g GoalType) Info() GoalTypeInfo {
	if info, ok := goalTypes[g]; ok {
		return info
	}
	return goalTypes[GoalOther]
}

// AssetClass groups asset categories for allocation analysis
type AssetClass string

const (
	ClassEquity     AssetClass = "equity"
	ClassDebt       AssetClass = "debt"
	ClassGold       AssetClass = "gold"
	ClassRealEstate AssetClass = "real_estate"
	ClassCash       AssetClass = "cash"
)

// AssetCategory is the closed set of asset kinds on the net worth step
type AssetCategory string

const (
	AssetSavingsAccount AssetCategory = "savings_account"
	AssetFixedDeposit   AssetCategory = "fixed_deposit"
	AssetEquityFund     AssetCategory = "equity_mutual_fund"
	AssetDebtFund       AssetCategory = "debt_mutual_fund"
	AssetStocks         AssetCategory = "stocks"
	AssetEPF            AssetCategory = "epf"
	AssetPPF            AssetCategory = "ppf"
	AssetNPS            AssetCategory = "nps"
	AssetGold           AssetCategory = "gold"
	AssetRealEstate     AssetCategory = "real_estate"
	AssetOther          AssetCategory = "other"
)

// AssetCategoryInfo describes how an asset category is treated by the engine
type AssetCategoryInfo struct {
	Label      string
	Class      AssetClass
	Liquid     bool
	Retirement bool
}

var assetCategories = map[AssetCategory]AssetCategoryInfo{
	AssetSavingsAccount: {Label: "Savings Account", Class: ClassCash, Liquid: true},
	AssetFixedDeposit:   {Label: "Fixed Deposit", Class: ClassDebt, Liquid: true},
	AssetEquityFund:     {Label: "Equity Mutual Fund", Class: ClassEquity},
	AssetDebtFund:       {Label: "Debt Mutual Fund", Class: ClassDebt, Liquid: true},
	AssetStocks:         {Label: "Direct Stocks", Class: ClassEquity},
	AssetEPF:            {Label: "EPF", Class: ClassDebt, Retirement: true},
	AssetPPF:            {Label: "PPF", Class: ClassDebt, Retirement: true},
	AssetNPS:            {Label: "NPS", Class: ClassEquity, Retirement: true},
	AssetGold:           {Label: "Gold", Class: ClassGold},
	AssetRealEstate:     {Label: "Real Estate", Class: ClassRealEstate},
	AssetOther:          {Label: "Other", Class: ClassCash},
}

// Valid reports whether c is a known asset category
func (c AssetCategory) Valid() bool {
	_, ok := assetCategories[c]
	return ok
}

// Info returns the lookup entry for c, falling back to AssetOther
func (c AssetCategory) Info() AssetCategoryInfo {
	if info, ok := assetCategories[c]; ok {
		return info
	}
	return assetCategories[AssetOther]
}

// LiabilityType is the closed set of loan kinds
type LiabilityType string

const (
	LiabilityHomeLoan      LiabilityType = "home_loan"
	LiabilityCarLoan       LiabilityType = "car_loan"
	LiabilityPersonalLoan  LiabilityType = "personal_loan"
	LiabilityEducationLoan LiabilityType = "education_loan"
	LiabilityCreditCard    LiabilityType = "credit_card"
	LiabilityGoldLoan      LiabilityType = "gold_loan"
	LiabilityOther         LiabilityType = "other"
)

// LiabilityTypeInfo describes a liability type
type LiabilityTypeInfo struct {
	Label        string
	HighInterest bool
}

var liabilityTypes = map[LiabilityType]LiabilityTypeInfo{
	LiabilityHomeLoan:      {Label: "Home Loan"},
	LiabilityCarLoan:       {Label: "Car Loan"},
	LiabilityPersonalLoan:  {Label: "Personal Loan", HighInterest: true},
	LiabilityEducationLoan: {Label: "Education Loan"},
	LiabilityCreditCard:    {Label: "Credit Card", HighInterest: true},
	LiabilityGoldLoan:      {Label: "Gold Loan"},
	LiabilityOther:         {Label: "Other Loan"},
}

// Valid reports whether l is a known liability type
func (l LiabilityType) Valid() bool {
	_, ok := liabilityTypes[l]
	return ok
}

// Info returns the lookup entry for l, falling back to LiabilityOther
func (l LiabilityType) Info() LiabilityTypeInfo {
	if info, ok := liabilityTypes[l]; ok {
		return info
	}
	return liabilityTypes[LiabilityOther]
}

// RiskType is the categorical investor risk profile
type RiskType string

const (
	RiskConservative         RiskType = "conservative"
	RiskModerate             RiskType = "moderate"
	RiskModeratelyAggressive RiskType = "moderately_aggressive"
	RiskAggressive           RiskType = "aggressive"
)

// Valid reports whether r is a known risk type
func (r RiskType) Valid() bool {
	switch r {
	case RiskConservative, RiskModerate, RiskModeratelyAggressive, RiskAggressive:
		return true
	}
	return false
}

// CityTier drives the recommended health cover
type CityTier string

const (
	CityMetro    CityTier = "metro"
	CityNonMetro CityTier = "non_metro"
)

// TaxRegime is the chosen income-tax computation scheme
type TaxRegime string

const (
	RegimeOld TaxRegime = "old"
	RegimeNew TaxRegime = "new"
)
