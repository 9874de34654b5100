package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

func completeRequired(t *testing.T, d *Draft) {
	t.Helper()
	require.NoError(t, d.SetPersonal(models.Personal{Name: "Asha", Age: 32, RetirementAge: 58, CityTier: models.CityMetro}))
	require.NoError(t, d.SetIncome(models.Income{MonthlySalary: 120000}))
	require.NoError(t, d.SetExpenses(models.Expenses{Housing: 30000, Groceries: 12000}))
}

func TestParseStep(t *testing.T) {
	for _, s := range Steps {
		got, ok := ParseStep(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok := ParseStep("networth")
	assert.False(t, ok)
}

func TestSetPersonal_Validation(t *testing.T) {
	d := NewDraft()

	err := d.SetPersonal(models.Personal{Age: 12, CityTier: "tier3"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepPersonal, verr.Step)
	assert.Len(t, verr.Problems, 2)
	assert.False(t, d.Completed[StepPersonal])

	require.NoError(t, d.SetPersonal(models.Personal{Age: 30}))
	assert.Equal(t, 60, d.Personal.RetirementAge)
	assert.True(t, d.Completed[StepPersonal])
}

func TestSetIncome_RejectsNegative(t *testing.T) {
	d := NewDraft()
	err := d.SetIncome(models.Income{MonthlySalary: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monthly_salary must not be negative")
}

func TestSetNetWorth_UnknownCategory(t *testing.T) {
	d := NewDraft()
	err := d.SetNetWorth(models.NetWorth{
		Assets:      []models.Asset{{Category: "crypto", Value: 1000}},
		Liabilities: []models.Liability{{Type: models.LiabilityCarLoan, Outstanding: 100000, EMI: 5000}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category "crypto"`)
}

func TestSetRisk(t *testing.T) {
	tests := []struct {
		name   string
		in     RiskInput
		typ    models.RiskType
		equity float64
	}{
		{"score only", RiskInput{Score: 70}, models.RiskModeratelyAggressive, 65},
		{"explicit type wins", RiskInput{Score: 70, Type: models.RiskConservative}, models.RiskConservative, 30},
		{"explicit split wins", RiskInput{Score: 10, EquityPct: 70, DebtPct: 20, GoldPct: 10}, models.RiskConservative, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			require.NoError(t, d.SetRisk(tt.in))
			assert.Equal(t, tt.typ, d.Risk.Type)
			assert.Equal(t, tt.equity, d.Risk.EquityPct)
		})
	}

	d := NewDraft()
	assert.Error(t, d.SetRisk(RiskInput{Score: 101}))
	assert.Error(t, d.SetRisk(RiskInput{EquityPct: 50, DebtPct: 20}))
}

func TestApply(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.Apply(StepIncome, json.RawMessage(`{"monthly_salary": 90000, "annual_bonus": 100000}`)))
	assert.Equal(t, int64(90000), d.Income.MonthlySalary)

	require.NoError(t, d.Apply(StepInsurance, json.RawMessage(`{"has_health": true, "health_cover": 500000, "monthly_sip": 15000}`)))
	assert.True(t, d.Insurance.HasHealth)
	assert.Equal(t, int64(15000), d.Investments.MonthlySIP)

	err := d.Apply(StepTax, json.RawMessage(`{"regime": 1}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Problems[0], "malformed payload")

	assert.Error(t, d.Apply(Step("review"), json.RawMessage(`{}`)))
}

func TestFinalize_RequiresCoreSteps(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.SetIncome(models.Income{MonthlySalary: 50000}))

	_, err := d.Finalize(2026)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "personal, expenses")
	assert.Equal(t, []Step{StepPersonal, StepExpenses}, d.Missing())
}

func TestFinalize_FillsGoalDefaults(t *testing.T) {
	d := NewDraft()
	completeRequired(t, d)
	zero := 0.0
	require.NoError(t, d.SetGoals([]GoalInput{
		{Type: models.GoalChildEducation},
		{Name: "Bike", Type: models.GoalOther, TargetAmount: 200000, TargetYear: 2028, InflationRate: &zero, Priority: "high"},
	}))

	p, err := d.Finalize(2026)
	require.NoError(t, err)
	require.Len(t, p.Goals, 2)

	edu := p.Goals[0]
	assert.Equal(t, "Child's Education", edu.Name)
	assert.Equal(t, int64(2500000), edu.TargetAmount)
	assert.Equal(t, 2041, edu.TargetYear)
	assert.Equal(t, 10.0, edu.InflationRate)
	assert.Equal(t, "medium", edu.Priority)

	bike := p.Goals[1]
	assert.Equal(t, 0.0, bike.InflationRate)
	assert.Equal(t, 2028, bike.TargetYear)
	assert.Equal(t, "high", bike.Priority)

	// No risk step: moderate default.
	assert.Equal(t, models.RiskModerate, p.Risk.Type)
}

func TestFinalize_ProfileIsDetached(t *testing.T) {
	d := NewDraft()
	completeRequired(t, d)
	require.NoError(t, d.SetNetWorth(models.NetWorth{
		Assets: []models.Asset{{Category: models.AssetSavingsAccount, Value: 100000}},
	}))

	p, err := d.Finalize(2026)
	require.NoError(t, err)

	d.NetWorth.Assets[0].Value = 1
	require.NoError(t, d.SetIncome(models.Income{MonthlySalary: 1}))
	assert.Equal(t, int64(100000), p.NetWorth.Assets[0].Value)
	assert.Equal(t, int64(120000), p.Income.MonthlySalary)
}

func TestEncodeDecode(t *testing.T) {
	d := NewDraft()
	completeRequired(t, d)

	data, err := d.Encode()
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, d.Personal, got.Personal)
	assert.True(t, got.StepStatus()["income"])
	assert.False(t, got.StepStatus()["tax"])
	assert.Len(t, got.StepStatus(), len(Steps))

	empty, err := Decode(nil)
	require.NoError(t, err)
	assert.NotNil(t, empty.Completed)

	_, err = Decode([]byte("{"))
	assert.Error(t, err)
}
