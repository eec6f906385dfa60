package readiness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveMetricsForManagerReporting(t *testing.T) {
	m := DeriveMetrics(sampleUser(LanguageEnglish))

	assert.Equal(t, RoleManager, m.RoleTier)
	assert.Equal(t, ProcessReporting, m.ProcessType)
	assert.Equal(t, 2.0, m.TeamMultiplier)
	assert.Equal(t, 9.0, m.WeeklyHoursSaved)
	assert.Equal(t, 36.0, m.MonthlyHoursSaved)
	assert.Equal(t, 7650.0, m.MonthlySavings)
	assert.Equal(t, 91800.0, m.AnnualSavings)
	assert.Less(t, m.MonthlySavingsLow, m.MonthlySavings)
	assert.Greater(t, m.MonthlySavingsHigh, m.MonthlySavings)

	require.NotNil(t, m.ROIPercent)
	require.NotNil(t, m.PaybackDays)
	assert.Equal(t, 2450.0, *m.ROIPercent)
	assert.Equal(t, 2, *m.PaybackDays)
}

func TestDeriveMetricsGuardsROI(t *testing.T) {
	t.Run("zero budget", func(t *testing.T) {
		uc := sampleUser(LanguageEnglish)
		uc.Responses[QuestionBudget] = TextAnswer("none")
		m := DeriveMetrics(uc)
		assert.Equal(t, 0.0, m.MonthlyBudget)
		assert.Nil(t, m.ROIPercent)
		assert.Nil(t, m.PaybackDays)
	})

	t.Run("savings below budget", func(t *testing.T) {
		uc := UserContext{Responses: map[string]Answer{
			QuestionWeeklyHours: TextAnswer("under_5"),
			QuestionBudget:      TextAnswer("5000_plus"),
		}}
		m := DeriveMetrics(uc)
		assert.Equal(t, 178.0, m.MonthlySavings)
		assert.Nil(t, m.ROIPercent)
		assert.Nil(t, m.PaybackDays)
	})
}

func TestDeriveMetricsDefaultsOnUnrecognizedInput(t *testing.T) {
	m := DeriveMetrics(UserContext{Responses: map[string]Answer{
		QuestionTeamSize:    TextAnswer("a few"),
		QuestionWeeklyHours: TextAnswer("about 12 hours"),
		QuestionProcessType: TextAnswer("something unusual"),
	}})
	assert.Equal(t, RoleDefault, m.RoleTier)
	assert.Equal(t, ProcessGeneral, m.ProcessType)
	assert.Equal(t, defaultTeamSize, m.TeamSize)
	assert.Equal(t, 12.0, m.WeeklyHoursWasted)
}

func TestClassifyRoleRatesFollowTierOrder(t *testing.T) {
	titles := []struct {
		title string
		tier  string
	}{
		{"Chief Operating Officer", RoleExecutive},
		{"Operations Manager", RoleManager},
		{"Office Coordinator", RoleCoordinator},
		{"Data Analyst", RoleAnalyst},
		{"Barista", RoleDefault},
	}
	prev := math.Inf(1)
	for _, tc := range titles {
		got := ClassifyRole(tc.title)
		assert.Equal(t, tc.tier, got.Name, tc.title)
		assert.Less(t, got.HourlyRate, prev, "%s rate must be below the tier above it", tc.tier)
		prev = got.HourlyRate
	}
}
