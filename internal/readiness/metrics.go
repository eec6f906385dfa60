package readiness

import (
	"math"
)

const (
	weeksPerMonth       = 4.0
	savingsRangeLow     = 0.75
	savingsRangeHigh    = 1.25
	paybackDaysPerMonth = 30.0
)

// DeriveMetrics projects hours and savings from the submission. It never
// fails: every lookup falls back to a default on unrecognized input.
func DeriveMetrics(uc UserContext) DerivedMetrics {
	role := ClassifyRole(uc.RoleTitle())
	process := ClassifyProcess(uc.Answer(QuestionProcessType))

	teamSize := bracketValue(uc.Answer(QuestionTeamSize), teamSizeBrackets, defaultTeamSize)
	if teamSize <= 0 {
		teamSize = defaultTeamSize
	}
	teamMultiplier := math.Min(teamSize/teamBaseline, teamMultiplierCap)

	weeklyHours := bracketValue(uc.Answer(QuestionWeeklyHours), weeklyHourBrackets, defaultWeeklyHours)
	errorMultiplier := errorMultiplierFor(uc.Answer(QuestionErrorImpact))
	budget := bracketValue(uc.Answer(QuestionBudget), budgetBrackets, defaultMonthlyBudget)

	hoursSaved := weeklyHours * process.AutomationFraction
	monthlySavings := hoursSaved * weeksPerMonth * role.HourlyRate * teamMultiplier * errorMultiplier

	m := DerivedMetrics{
		RoleTier:           role.Name,
		ProcessType:        process.Type,
		HourlyRate:         role.HourlyRate,
		AutomationFraction: process.AutomationFraction,
		TeamSize:           teamSize,
		TeamMultiplier:     round2(teamMultiplier),
		ErrorMultiplier:    errorMultiplier,
		WeeklyHoursWasted:  round1(weeklyHours),
		WeeklyHoursSaved:   round1(hoursSaved),
		MonthlyHoursSaved:  round1(hoursSaved * weeksPerMonth),
		MonthlyBudget:      budget,
		MonthlySavings:     math.Round(monthlySavings),
		MonthlySavingsLow:  math.Round(monthlySavings * savingsRangeLow),
		MonthlySavingsHigh: math.Round(monthlySavings * savingsRangeHigh),
		AnnualSavings:      math.Round(monthlySavings * 12),
	}
	m.ROIPercent, m.PaybackDays = returnOnBudget(monthlySavings, budget)
	return m
}

// returnOnBudget computes ROI% and payback days, or nil for both when the
// budget is not positive or savings do not exceed it.
func returnOnBudget(monthlySavings, budget float64) (*float64, *int) {
	if budget <= 0 || monthlySavings <= budget || math.IsNaN(monthlySavings) || math.IsInf(monthlySavings, 0) {
		return nil, nil
	}
	roi := round1((monthlySavings - budget) / budget * 100)
	payback := int(math.Ceil(budget / monthlySavings * paybackDaysPerMonth))
	return &roi, &payback
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
