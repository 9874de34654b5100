// Package planner holds the in-progress plan built step by step by the
// wizard. A Draft is mutable and owned by one session; Finalize turns it
// into the immutable profile the engine scores.
package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/trustners-ux/trustner-platform-sub000/internal/engine"
	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

// Step names a wizard step
type Step string

const (
	StepPersonal  Step = "personal"
	StepIncome    Step = "income"
	StepExpenses  Step = "expenses"
	StepNetWorth  Step = "net-worth"
	StepInsurance Step = "insurance"
	StepGoals     Step = "goals"
	StepRisk      Step = "risk"
	StepTax       Step = "tax"
)

// Steps lists the wizard steps in order
var Steps = []Step{StepPersonal, StepIncome, StepExpenses, StepNetWorth, StepInsurance, StepGoals, StepRisk, StepTax}

// RequiredSteps must be completed before a draft can be finalized
var RequiredSteps = []Step{StepPersonal, StepIncome, StepExpenses}

// ParseStep validates a step name
func ParseStep(s string) (Step, bool) {
	for _, st := range Steps {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ValidationError lists the problems found in a step's input
type ValidationError struct {
	Step     Step
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s step: %s", e.Step, strings.Join(e.Problems, "; "))
}

type validator struct {
	step     Step
	problems []string
}

func (v *validator) check(ok bool, format string, args ...interface{}) {
	if !ok {
		v.problems = append(v.problems, fmt.Sprintf(format, args...))
	}
}

func (v *validator) nonNegative(field string, amount int64) {
	v.check(amount >= 0, "%s must not be negative", field)
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Step: v.step, Problems: v.problems}
}

// GoalInput is a goal as submitted by the wizard. Zero amount or year and a
// nil inflation rate are filled from the goal type's defaults on finalize.
type GoalInput struct {
	Name           string          `json:"name"`
	Type           models.GoalType `json:"type"`
	TargetAmount   int64           `json:"target_amount"`
	TargetYear     int             `json:"target_year"`
	InflationRate  *float64        `json:"inflation_rate,omitempty"`
	Priority       string          `json:"priority"`
	CurrentSavings int64           `json:"current_savings"`
	MonthlySIP     int64           `json:"monthly_sip"`
}

// RiskInput is the risk step payload. A questionnaire score alone is enough;
// an explicit type or allocation overrides it.
type RiskInput struct {
	Score     int             `json:"score"`
	Type      models.RiskType `json:"type"`
	EquityPct float64         `json:"equity_pct"`
	DebtPct   float64         `json:"debt_pct"`
	GoldPct   float64         `json:"gold_pct"`
}

// InsuranceInput is the insurance step payload, which also carries the
// monthly SIP the user already runs.
type InsuranceInput struct {
	models.Insurance
	MonthlySIP int64 `json:"monthly_sip"`
}

// Draft is the mutable wizard state for one plan
type Draft struct {
	Personal    models.Personal    `json:"personal"`
	Income      models.Income      `json:"income"`
	Expenses    models.Expenses    `json:"expenses"`
	NetWorth    models.NetWorth    `json:"net_worth"`
	Insurance   models.Insurance   `json:"insurance"`
	Investments models.Investments `json:"investments"`
	Goals       []GoalInput        `json:"goals"`
	Risk        models.RiskProfile `json:"risk"`
	Tax         models.TaxInputs   `json:"tax"`
	Completed   map[Step]bool      `json:"completed"`
}

// NewDraft returns an empty draft
func NewDraft() *Draft {
	return &Draft{Completed: map[Step]bool{}}
}

// Decode restores a draft from its stored form
func Decode(data []byte) (*Draft, error) {
	d := NewDraft()
	if len(data) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	if d.Completed == nil {
		d.Completed = map[Step]bool{}
	}
	return d, nil
}

// Encode serializes the draft for storage
func (d *Draft) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// StepStatus reports completion for every step
func (d *Draft) StepStatus() map[string]bool {
	out := make(map[string]bool, len(Steps))
	for _, s := range Steps {
		out[string(s)] = d.Completed[s]
	}
	return out
}

// Apply decodes a raw step payload and stores it
func (d *Draft) Apply(step Step, raw json.RawMessage) error {
	bad := func(err error) error {
		return &ValidationError{Step: step, Problems: []string{"malformed payload: " + err.Error()}}
	}
	switch step {
	case StepPersonal:
		var p models.Personal
		if err := json.Unmarshal(raw, &p); err != nil {
			return bad(err)
		}
		return d.SetPersonal(p)
	case StepIncome:
		var in models.Income
		if err := json.Unmarshal(raw, &in); err != nil {
			return bad(err)
		}
		return d.SetIncome(in)
	case StepExpenses:
		var e models.Expenses
		if err := json.Unmarshal(raw, &e); err != nil {
			return bad(err)
		}
		return d.SetExpenses(e)
	case StepNetWorth:
		var n models.NetWorth
		if err := json.Unmarshal(raw, &n); err != nil {
			return bad(err)
		}
		return d.SetNetWorth(n)
	case StepInsurance:
		var in InsuranceInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return bad(err)
		}
		return d.SetInsurance(in)
	case StepGoals:
		var goals []GoalInput
		if err := json.Unmarshal(raw, &goals); err != nil {
			return bad(err)
		}
		return d.SetGoals(goals)
	case StepRisk:
		var r RiskInput
		if err := json.Unmarshal(raw, &r); err != nil {
			return bad(err)
		}
		return d.SetRisk(r)
	case StepTax:
		var t models.TaxInputs
		if err := json.Unmarshal(raw, &t); err != nil {
			return bad(err)
		}
		return d.SetTax(t)
	}
	return &ValidationError{Step: step, Problems: []string{"unknown step"}}
}

// SetPersonal stores the personal step
func (d *Draft) SetPersonal(p models.Personal) error {
	v := &validator{step: StepPersonal}
	v.check(p.Age >= 18 && p.Age <= 100, "age must be between 18 and 100")
	v.check(p.RetirementAge == 0 || (p.RetirementAge >= 30 && p.RetirementAge <= 100), "retirement_age must be between 30 and 100")
	v.check(p.Dependents >= 0, "dependents must not be negative")
	v.check(p.CityTier == "" || p.CityTier == models.CityMetro || p.CityTier == models.CityNonMetro, "unknown city_tier %q", p.CityTier)
	if err := v.err(); err != nil {
		return err
	}
	if p.RetirementAge == 0 {
		p.RetirementAge = 60
	}
	d.Personal = p
	d.Completed[StepPersonal] = true
	return nil
}

// SetIncome stores the income step
func (d *Draft) SetIncome(in models.Income) error {
	v := &validator{step: StepIncome}
	v.nonNegative("monthly_salary", in.MonthlySalary)
	v.nonNegative("annual_bonus", in.AnnualBonus)
	v.nonNegative("rental_income", in.RentalIncome)
	v.nonNegative("business_income", in.BusinessIncome)
	v.nonNegative("other_income", in.OtherIncome)
	if err := v.err(); err != nil {
		return err
	}
	d.Income = in
	d.Completed[StepIncome] = true
	return nil
}

// SetExpenses stores the expenses step
func (d *Draft) SetExpenses(e models.Expenses) error {
	v := &validator{step: StepExpenses}
	for name, amount := range map[string]int64{
		"housing": e.Housing, "utilities": e.Utilities, "groceries": e.Groceries,
		"transport": e.Transport, "education": e.Education, "healthcare": e.Healthcare,
		"entertainment": e.Entertainment, "personal_care": e.PersonalCare, "insurance": e.Insurance,
		"emi": e.EMI, "domestic_help": e.DomesticHelp, "other": e.Other,
	} {
		v.nonNegative(name, amount)
	}
	if err := v.err(); err != nil {
		return err
	}
	d.Expenses = e
	d.Completed[StepExpenses] = true
	return nil
}

// SetNetWorth stores the assets and liabilities step
func (d *Draft) SetNetWorth(n models.NetWorth) error {
	v := &validator{step: StepNetWorth}
	for i, a := range n.Assets {
		v.check(a.Category.Valid(), "assets[%d]: unknown category %q", i, a.Category)
		v.nonNegative(fmt.Sprintf("assets[%d].value", i), a.Value)
	}
	for i, l := range n.Liabilities {
		v.check(l.Type.Valid(), "liabilities[%d]: unknown type %q", i, l.Type)
		v.nonNegative(fmt.Sprintf("liabilities[%d].outstanding", i), l.Outstanding)
		v.nonNegative(fmt.Sprintf("liabilities[%d].emi", i), l.EMI)
		v.check(l.InterestRate >= 0, "liabilities[%d].interest_rate must not be negative", i)
		v.check(l.RemainingMonths >= 0, "liabilities[%d].remaining_months must not be negative", i)
	}
	if err := v.err(); err != nil {
		return err
	}
	d.NetWorth = models.NetWorth{
		Assets:      append([]models.Asset(nil), n.Assets...),
		Liabilities: append([]models.Liability(nil), n.Liabilities...),
	}
	d.Completed[StepNetWorth] = true
	return nil
}

// SetInsurance stores the insurance step and the existing SIP
func (d *Draft) SetInsurance(in InsuranceInput) error {
	v := &validator{step: StepInsurance}
	v.nonNegative("health_cover", in.HealthCover)
	v.nonNegative("term_life_cover", in.TermLifeCover)
	v.nonNegative("other_life_cover", in.OtherLifeCover)
	v.nonNegative("monthly_sip", in.MonthlySIP)
	if err := v.err(); err != nil {
		return err
	}
	d.Insurance = in.Insurance
	d.Investments = models.Investments{MonthlySIP: in.MonthlySIP}
	d.Completed[StepInsurance] = true
	return nil
}

// SetGoals replaces the goal list
func (d *Draft) SetGoals(goals []GoalInput) error {
	v := &validator{step: StepGoals}
	for i, g := range goals {
		v.check(g.Type.Valid(), "goals[%d]: unknown type %q", i, g.Type)
		v.nonNegative(fmt.Sprintf("goals[%d].target_amount", i), g.TargetAmount)
		v.nonNegative(fmt.Sprintf("goals[%d].current_savings", i), g.CurrentSavings)
		v.nonNegative(fmt.Sprintf("goals[%d].monthly_sip", i), g.MonthlySIP)
		v.check(g.InflationRate == nil || *g.InflationRate >= 0, "goals[%d].inflation_rate must not be negative", i)
		v.check(g.Priority == "" || models.Priority(g.Priority).Rank() < 4, "goals[%d]: unknown priority %q", i, g.Priority)
	}
	if err := v.err(); err != nil {
		return err
	}
	d.Goals = append([]GoalInput(nil), goals...)
	d.Completed[StepGoals] = true
	return nil
}

// SetRisk stores the risk profile, deriving type and allocation from the
// questionnaire score where they are not given explicitly
func (d *Draft) SetRisk(r RiskInput) error {
	v := &validator{step: StepRisk}
	v.check(r.Score >= 0 && r.Score <= 100, "score must be between 0 and 100")
	v.check(r.Type == "" || r.Type.Valid(), "unknown risk type %q", r.Type)
	sum := r.EquityPct + r.DebtPct + r.GoldPct
	v.check(sum == 0 || (sum > 99.5 && sum < 100.5), "allocation percentages must add up to 100")
	if err := v.err(); err != nil {
		return err
	}

	rp := engine.RiskProfileFromScore(r.Score)
	if r.Type != "" {
		alloc := engine.RecommendedAllocation(models.RiskProfile{Type: r.Type})
		rp.Type = r.Type
		rp.EquityPct, rp.DebtPct, rp.GoldPct = alloc.Equity, alloc.Debt, alloc.Gold
	}
	if sum > 0 {
		rp.EquityPct, rp.DebtPct, rp.GoldPct = r.EquityPct, r.DebtPct, r.GoldPct
	}
	d.Risk = rp
	d.Completed[StepRisk] = true
	return nil
}

// SetTax stores regime choice and deductions
func (d *Draft) SetTax(t models.TaxInputs) error {
	v := &validator{step: StepTax}
	v.check(t.Regime == "" || t.Regime == models.RegimeOld || t.Regime == models.RegimeNew, "unknown regime %q", t.Regime)
	v.nonNegative("section_80c", t.Section80C)
	v.nonNegative("section_80d", t.Section80D)
	v.nonNegative("section_80ccd_1b", t.Section80CCD1B)
	v.nonNegative("home_loan_interest", t.HomeLoanInterest)
	v.nonNegative("hra_exemption", t.HRAExemption)
	v.nonNegative("other_deductions", t.OtherDeductions)
	if err := v.err(); err != nil {
		return err
	}
	d.Tax = t
	d.Completed[StepTax] = true
	return nil
}

// Missing returns the required steps not yet completed
func (d *Draft) Missing() []Step {
	var missing []Step
	for _, s := range RequiredSteps {
		if !d.Completed[s] {
			missing = append(missing, s)
		}
	}
	return missing
}

// Finalize validates completeness and returns an immutable profile. Slices
// are copied so later edits to the draft do not leak into the result.
func (d *Draft) Finalize(asOfYear int) (models.FinancialProfile, error) {
	if missing := d.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, s := range missing {
			names[i] = string(s)
		}
		return models.FinancialProfile{}, &ValidationError{Step: "review", Problems: []string{"incomplete steps: " + strings.Join(names, ", ")}}
	}

	p := models.FinancialProfile{
		Personal:    d.Personal,
		Income:      d.Income,
		Expenses:    d.Expenses,
		Insurance:   d.Insurance,
		Investments: d.Investments,
		Risk:        d.Risk,
		Tax:         d.Tax,
		NetWorth: models.NetWorth{
			Assets:      append([]models.Asset{}, d.NetWorth.Assets...),
			Liabilities: append([]models.Liability{}, d.NetWorth.Liabilities...),
		},
		Goals: make([]models.Goal, 0, len(d.Goals)),
	}
	if !d.Completed[StepRisk] {
		p.Risk = engine.RiskProfileFromScore(50)
	}
	for _, g := range d.Goals {
		p.Goals = append(p.Goals, g.resolve(asOfYear))
	}
	return p, nil
}

func (g GoalInput) resolve(asOfYear int) models.Goal {
	info := g.Type.Info()
	out := models.Goal{
		Name:           g.Name,
		Type:           g.Type,
		TargetAmount:   g.TargetAmount,
		TargetYear:     g.TargetYear,
		InflationRate:  info.DefaultInflation,
		Priority:       g.Priority,
		CurrentSavings: g.CurrentSavings,
		MonthlySIP:     g.MonthlySIP,
	}
	if out.Name == "" {
		out.Name = info.Label
	}
	if out.TargetAmount == 0 {
		out.TargetAmount = info.DefaultAmount
	}
	if out.TargetYear == 0 {
		out.TargetYear = asOfYear + info.DefaultYears
	}
	if g.InflationRate != nil {
		out.InflationRate = *g.InflationRate
	}
	if out.Priority == "" {
		out.Priority = string(models.PriorityMedium)
	}
	return out
}
