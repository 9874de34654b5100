package engine

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

var (
	decimalHundred = decimal.NewFromInt(100)
	decimalTwelve  = decimal.NewFromInt(12)
)

// growth returns (1+rate)^periods.
func growth(rate decimal.Decimal, periods int) decimal.Decimal {
	return decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(periods)))
}

func annualRate(pct float64) decimal.Decimal {
	return decimal.NewFromFloat(pct).Div(decimalHundred)
}

func monthlyRate(pct float64) decimal.Decimal {
	return annualRate(pct).Div(decimalTwelve)
}

// sipFactor is the value of one rupee paid at the start of each of n months.
func sipFactor(i decimal.Decimal, n int) decimal.Decimal {
	if i.IsZero() {
		return decimal.NewFromInt(int64(n))
	}
	return growth(i, n).Sub(decimal.NewFromInt(1)).Div(i).Mul(decimal.NewFromInt(1).Add(i))
}

// InflatedTarget grows a target amount by inflation over the given years.
// The result is never below the target.
func InflatedTarget(target int64, inflationPct float64, years int) int64 {
	if target <= 0 {
		return 0
	}
	if years <= 0 || inflationPct <= 0 {
		return target
	}
	v := decimal.NewFromInt(target).Mul(growth(annualRate(inflationPct), years)).Round(0).IntPart()
	if v < target {
		return target
	}
	return v
}

// FutureValueLumpSum compounds a present amount annually.
func FutureValueLumpSum(present int64, annualReturnPct float64, years int) decimal.Decimal {
	if present <= 0 {
		return decimal.Zero
	}
	if years <= 0 {
		return decimal.NewFromInt(present)
	}
	return decimal.NewFromInt(present).Mul(growth(annualRate(annualReturnPct), years))
}

// FutureValueSIP returns the value of a monthly SIP paid at the start of
// each month for the given years.
func FutureValueSIP(monthly int64, annualReturnPct float64, years int) decimal.Decimal {
	n := years * 12
	if monthly <= 0 || n <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(monthly).Mul(sipFactor(monthlyRate(annualReturnPct), n))
}

// RequiredMonthlySIP inverts FutureValueSIP: the monthly amount needed to
// accumulate futureValue in the given years. With no time left the whole
// amount is due at once.
func RequiredMonthlySIP(futureValue decimal.Decimal, annualReturnPct float64, years int) int64 {
	if !futureValue.IsPositive() {
		return 0
	}
	n := years * 12
	if n <= 0 {
		return futureValue.Ceil().IntPart()
	}
	return futureValue.Div(sipFactor(monthlyRate(annualReturnPct), n)).Ceil().IntPart()
}

// AnalyzeGoal projects a goal's savings and existing SIP forward and
// computes the SIP needed to meet the inflated target.
func AnalyzeGoal(g models.Goal, asOfYear int, returnPct float64) models.GoalAnalysis {
	years := g.TargetYear - asOfYear
	if years < 0 || g.TargetYear == 0 {
		years = 0
	}
	inflation := g.InflationRate
	if inflation < 0 {
		inflation = 0
	}

	inflated := InflatedTarget(g.TargetAmount, inflation, years)
	fromSavings := FutureValueLumpSum(g.CurrentSavings, returnPct, years)
	projection := fromSavings.Add(FutureValueSIP(g.MonthlySIP, returnPct, years))
	target := decimal.NewFromInt(inflated)

	required := RequiredMonthlySIP(target.Sub(fromSavings), returnPct, years)
	additional := required - nonNegative(g.MonthlySIP)

	name := g.Name
	if name == "" {
		name = g.Type.Info().Label
	}
	return models.GoalAnalysis{
		Name:              name,
		Type:              g.Type,
		TargetAmount:      nonNegative(g.TargetAmount),
		YearsToTarget:     years,
		InflatedTarget:    inflated,
		CurrentProjection: projection.Round(0).IntPart(),
		RequiredSIP:       required,
		AdditionalSIP:     nonNegative(additional),
		OnTrack:           projection.GreaterThanOrEqual(target),
	}
}

// GoalRecommendations emits advice for goals that are off track. The goal's
// own priority is used when it names a known priority.
func GoalRecommendations(goals []models.Goal, analyses []models.GoalAnalysis) []models.Recommendation {
	var recs []models.Recommendation
	for i, a := range analyses {
		if a.OnTrack || a.InflatedTarget == 0 {
			continue
		}
		p := models.PriorityMedium
		if i < len(goals) {
			if gp := models.Priority(goals[i].Priority); gp.Rank() < 4 {
				p = gp
			}
		}
		text := "Start a SIP of " + FormatINR(a.RequiredSIP) + "/month for " + a.Name +
			" to reach " + FormatLakh(a.InflatedTarget) + " in " + yearsText(a.YearsToTarget) + "."
		if a.AdditionalSIP > 0 && a.AdditionalSIP < a.RequiredSIP {
			text = "Increase your SIP for " + a.Name + " by " + FormatINR(a.AdditionalSIP) +
				"/month to reach " + FormatLakh(a.InflatedTarget) + " in " + yearsText(a.YearsToTarget) + "."
		}
		if a.YearsToTarget == 0 {
			text = a.Name + " is due now and is short of its target. Revisit the amount or the timeline."
		}
		recs = append(recs, models.Recommendation{Text: text, Priority: p})
	}
	return recs
}

func yearsText(years int) string {
	if years == 1 {
		return "1 year"
	}
	return strconv.Itoa(years) + " years"
}
