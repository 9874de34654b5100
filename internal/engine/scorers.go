package engine

import (
	"fmt"
	"math"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

func newScore(c models.Category, maxScore int) models.CategoryScore {
	return models.CategoryScore{Category: c, MaxScore: maxScore, Recommendations: []models.Recommendation{}}
}

type scoreBuilder struct {
	models.CategoryScore
}

func (s *scoreBuilder) add(p models.Priority, format string, args ...interface{}) {
	s.Recommendations = append(s.Recommendations, models.Recommendation{
		Text:     fmt.Sprintf(format, args...),
		Priority: p,
	})
}

func (s *scoreBuilder) result() models.CategoryScore {
	s.Score = clampInt(s.Score, 0, s.MaxScore)
	return s.CategoryScore
}

// ScoreEmergencyFund scores the months of expenses held in liquid savings.
func ScoreEmergencyFund(months float64, cfg Config) models.CategoryScore {
	s := &scoreBuilder{newScore(models.CategoryEmergencyFund, cfg.CategoryMax)}
	if months < 0 || math.IsNaN(months) {
		months = 0
	}

	switch {
	case months >= cfg.EmergencyFullMonths:
		s.Score = cfg.CategoryMax
	case months >= cfg.EmergencyPartialMonths:
		s.Score = cfg.CategoryMax / 2
		s.add(models.PriorityMedium, "Your emergency fund covers %.1f months. Build it up to %.0f months of expenses in a liquid fund or sweep FD.",
			months, cfg.EmergencyFullMonths)
	case months >= cfg.EmergencyMinimalMonths:
		s.Score = cfg.CategoryMax / 4
		s.add(models.PriorityHigh, "Your emergency fund covers only %.1f months. Build at least %.0f months of expenses as a first step.",
			months, cfg.EmergencyPartialMonths)
	default:
		s.Score = 0
		s.add(models.PriorityUrgent, "You have no meaningful emergency fund. Start one immediately by setting aside a fixed amount every month.")
	}
	return s.result()
}

// ScoreInsurance scores health and life cover. Health and life each
// contribute half of the category maximum.
func ScoreInsurance(hasHealth bool, healthCover int64, hasLife bool, lifeCover, annualIncome int64, cfg Config) models.CategoryScore {
	s := &scoreBuilder{newScore(models.CategoryInsurance, cfg.CategoryMax)}
	s.Score = healthSubScore(s, hasHealth, healthCover, cfg) + lifeSubScore(s, hasLife, lifeCover, annualIncome, cfg)
	return s.result()
}

// HealthSubScore returns the health half of the insurance score.
func HealthSubScore(hasHealth bool, healthCover int64, cfg Config) int {
	return healthSubScore(&scoreBuilder{}, hasHealth, healthCover, cfg)
}

// LifeSubScore returns the life half of the insurance score.
func LifeSubScore(hasLife bool, lifeCover, annualIncome int64, cfg Config) int {
	return lifeSubScore(&scoreBuilder{}, hasLife, lifeCover, annualIncome, cfg)
}

func healthSubScore(s *scoreBuilder, hasHealth bool, cover int64, cfg Config) int {
	half := cfg.CategoryMax / 2
	if !hasHealth || cover <= 0 {
		s.add(models.PriorityUrgent, "You have no health insurance. Buy a family floater of at least %s; a single hospitalisation can wipe out your savings.",
			FormatLakh(cfg.HealthFullCover))
		return 0
	}
	switch {
	case cover >= cfg.HealthFullCover:
		return half
	case cover >= cfg.HealthPartialCover:
		s.add(models.PriorityMedium, "Your health cover of %s is below %s. Add a super top-up to increase it cheaply.",
			FormatLakh(cover), FormatLakh(cfg.HealthFullCover))
		return scaled(half, 0.7)
	default:
		s.add(models.PriorityHigh, "Your health cover of %s is too low for current medical costs. Increase it to at least %s.",
			FormatLakh(cover), FormatLakh(cfg.HealthPartialCover))
		return scaled(half, 0.3)
	}
}

func lifeSubScore(s *scoreBuilder, hasLife bool, cover, annualIncome int64, cfg Config) int {
	half := cfg.CategoryMax / 2
	if !hasLife || cover <= 0 {
		s.add(models.PriorityUrgent, "You have no life cover. Get a pure term plan of at least %.0fx your annual income.",
			cfg.LifeFullMultiple)
		return 0
	}
	c := float64(cover)
	inc := float64(annualIncome)
	switch {
	case c >= inc*cfg.LifeFullMultiple:
		return half
	case c >= inc*cfg.LifePartialMultiple:
		s.add(models.PriorityMedium, "Your life cover is %.1fx your annual income. Increase it to %.0fx income with a term plan.",
			c/inc, cfg.LifeFullMultiple)
		return scaled(half, 0.7)
	default:
		s.add(models.PriorityHigh, "Your life cover is far below your family's needs. Get a term plan to reach %.0fx your annual income.",
			cfg.LifeFullMultiple)
		return scaled(half, 0.3)
	}
}

// ScoreInvestment scores the monthly SIP as a share of monthly income.
func ScoreInvestment(sip, monthlyIncome int64, cfg Config) models.CategoryScore {
	s := &scoreBuilder{newScore(models.CategoryInvestment, cfg.CategoryMax)}
	if monthlyIncome <= 0 {
		return s.result()
	}
	if sip < 0 {
		sip = 0
	}

	ratio := float64(sip) / float64(monthlyIncome) * 100
	switch {
	case ratio >= cfg.SIPFullPct:
		s.Score = cfg.CategoryMax
	case ratio >= cfg.SIPPartialPct:
		s.Score = cfg.CategoryMax / 2
		s.add(models.PriorityMedium, "You invest %s of your income. Step up your SIP towards %.0f%% of income.",
			formatPct(ratio), cfg.SIPFullPct)
	case ratio > 0:
		s.Score = cfg.CategoryMax / 4
		s.add(models.PriorityHigh, "You invest only %s of your income. Increase your SIP to at least %.0f%% of income.",
			formatPct(ratio), cfg.SIPPartialPct)
	default:
		s.Score = 0
		s.add(models.PriorityHigh, "You have no regular investments. Start a SIP in a diversified equity mutual fund, even a small one.")
	}
	return s.result()
}

// ScoreDebt scores the EMI burden. No EMI at all always scores full marks.
func ScoreDebt(totalEMI, monthlyIncome int64, cfg Config) models.CategoryScore {
	s := &scoreBuilder{newScore(models.CategoryDebt, cfg.CategoryMax)}
	if totalEMI <= 0 {
		s.Score = cfg.CategoryMax
		return s.result()
	}
	if monthlyIncome <= 0 {
		s.add(models.PriorityUrgent, "You are paying EMIs with no recorded income. Review your loans with an advisor.")
		return s.result()
	}

	ratio := float64(totalEMI) / float64(monthlyIncome) * 100
	switch {
	case ratio < cfg.DebtLowPct:
		s.Score = cfg.CategoryMax
	case ratio <= cfg.DebtModeratePct:
		s.Score = scaled(cfg.CategoryMax, 0.75)
		s.add(models.PriorityMedium, "Your EMIs take %s of income, which is manageable. Prepay where possible to bring it under %.0f%%.",
			formatPct(ratio), cfg.DebtLowPct)
	case ratio <= cfg.DebtHighPct:
		s.Score = cfg.CategoryMax / 4
		s.add(models.PriorityUrgent, "Your EMIs take %s of income. Reduce your debt urgently, starting with the highest interest loans.",
			formatPct(ratio))
	default:
		s.Score = 0
		s.add(models.PriorityUrgent, "Your EMIs take %s of income, a critical level. Consider consolidating or restructuring your loans.",
			formatPct(ratio))
		s.add(models.PriorityHigh, "Avoid taking any new loans until EMIs fall below %.0f%% of income.", cfg.DebtModeratePct)
	}
	return s.result()
}

// RetirementCorpusProxy is the heuristic savings level expected at the
// current distance from retirement.
func RetirementCorpusProxy(annualIncome int64, yearsToRetirement int) float64 {
	multiple := math.Max(25-float64(yearsToRetirement)*0.5, 10)
	return float64(annualIncome) * multiple * 0.3
}

// retirement bucket scores, as fractions of the category maximum, for
// savings at >=100%, >=50%, >=30% and below the corpus proxy.
var (
	pastRetirementScores = [4]float64{1, 0.5, 0.15, 0.15}
	longHorizonScores    = [4]float64{1, 0.75, 0.6, 0.4}
	midHorizonScores     = [4]float64{1, 0.6, 0.4, 0.25}
	shortHorizonScores   = [4]float64{1, 0.5, 0.3, 0.15}
)

// ScoreRetirement scores current retirement savings against the corpus proxy
// for the years left to retirement.
func ScoreRetirement(currentAge, retirementAge int, savings, monthlyIncome int64, cfg Config) models.CategoryScore {
	s := &scoreBuilder{newScore(models.CategoryRetirement, cfg.CategoryMax)}
	if currentAge <= 0 || retirementAge <= 0 {
		s.add(models.PriorityMedium, "Enter your current age and target retirement age to assess retirement readiness.")
		return s.result()
	}

	years := retirementAge - currentAge
	proxy := RetirementCorpusProxy(monthlyIncome*12, years)
	var ratio float64
	switch {
	case proxy > 0:
		ratio = float64(savings) / proxy
	case savings > 0:
		ratio = 1
	}

	tier := 3
	switch {
	case ratio >= 1:
		tier = 0
	case ratio >= 0.5:
		tier = 1
	case ratio >= 0.3:
		tier = 2
	}

	switch {
	case years <= 0:
		s.Score = scaled(cfg.CategoryMax, pastRetirementScores[tier])
		if tier > 0 {
			s.add(models.PriorityUrgent, "You are at or past your target retirement age with savings of %s. Plan a sustainable withdrawal strategy and consider working longer.",
				FormatLakh(savings))
		}
	case years > 25:
		s.Score = scaled(cfg.CategoryMax, longHorizonScores[tier])
		if tier > 0 {
			s.add(models.PriorityMedium, "You have %d years to retirement. Start a dedicated retirement SIP (NPS or equity funds) now to make the most of compounding.",
				years)
		}
	case years > 15:
		s.Score = scaled(cfg.CategoryMax, midHorizonScores[tier])
		if tier > 1 {
			s.add(models.PriorityHigh, "With %d years to retirement your savings are behind. Increase retirement contributions through NPS, PPF and equity SIPs.",
				years)
		} else if tier == 1 {
			s.add(models.PriorityMedium, "With %d years to retirement you are on the way. Keep increasing contributions every year.",
				years)
		}
	default:
		s.Score = scaled(cfg.CategoryMax, shortHorizonScores[tier])
		if tier > 0 {
			s.add(models.PriorityUrgent, "Only %d years to retirement and savings are short of target. Maximise contributions now and review your retirement age.",
				years)
		}
	}
	return s.result()
}

func scaled(maxScore int, f float64) int {
	return int(math.Round(float64(maxScore) * f))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
