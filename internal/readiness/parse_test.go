package readiness

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withoutField(t *testing.T, raw, field string) string {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	delete(doc, field)
	blob, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(blob)
}

func TestParseCanonicalReportAcceptsCompleteDocument(t *testing.T) {
	res, err := ParseCanonicalReport(canonicalJSON, LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, StrategyDirect, res.Strategy)
	assert.False(t, res.Repaired)
	assert.Empty(t, res.DefaultedFields)
	assert.Len(t, res.Report.DepartmentChallenges, 2)
}

func TestParseCanonicalReportSubstitutesMissingChallenges(t *testing.T) {
	raw := withoutField(t, canonicalJSON, FieldDepartmentChallenges)

	res, err := ParseCanonicalReport(raw, LanguageEnglish)
	require.NoError(t, err)
	assert.True(t, res.Repaired)
	assert.Equal(t, []string{FieldDepartmentChallenges}, res.DefaultedFields)
	assert.NotEmpty(t, res.SchemaErrors)
	assert.GreaterOrEqual(t, len(res.Report.DepartmentChallenges), 1)
	assert.Equal(t, englishCatalog.defaultChallenges, res.Report.DepartmentChallenges)
	assert.NoError(t, res.Report.Validate())
	assert.Equal(t, "You get Friday afternoons back.", res.Report.CareerImpact.Productivity)
}

func TestParseCanonicalReportSubstitutesInSpanish(t *testing.T) {
	raw := withoutField(t, canonicalJSON, FieldImplementationRoadmap)
	res, err := ParseCanonicalReport(raw, "es")
	require.NoError(t, err)
	require.Len(t, res.Report.ImplementationRoadmap, 3)
	assert.Equal(t, spanishCatalog.phases[0].Name, res.Report.ImplementationRoadmap[0].Phase)
}

func TestParseCanonicalReportCleaningStrategies(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		strategy string
	}{
		{"fenced", "```json\n" + canonicalJSON + "\n```", StrategySliceBraces},
		{"prose around object", "Sure! Here you go:\n" + canonicalJSON + "\nLet me know.", StrategySliceBraces},
		{"trailing commas", strings.Replace(canonicalJSON, `"Durable habit"}`, `"Durable habit"},`, 1), StrategyTrailingCommas},
		{"control characters", "\x00\x07" + canonicalJSON, StrategyStripControl},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ParseCanonicalReport(tc.raw, LanguageEnglish)
			require.NoError(t, err)
			assert.Equal(t, tc.strategy, res.Strategy)
			assert.NoError(t, res.Report.Validate())
		})
	}
}

func TestParseCanonicalReportUnwrapsArrayWrappedObject(t *testing.T) {
	uc := sampleUser(LanguageEnglish)
	want := NewSynthesizer().Generate(uc, DeriveMetrics(uc))
	blob, err := json.Marshal(want)
	require.NoError(t, err)

	res, err := ParseCanonicalReport("["+string(blob)+"]", LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, StrategySliceBraces, res.Strategy)
	assert.Equal(t, want, res.Report)
}

func TestParseCanonicalReportRepairsSynonymsAndShapes(t *testing.T) {
	raw := `{
	  "Summary": "Short summary.",
	  "challenges": "- Too many spreadsheets\n- Slow approvals",
	  "career": "You lead the change.",
	  "recommendations": ["Automate the weekly report", {"action": "Template emails", "impact": "Saves an hour"}],
	  "roadmap": ["Pilot", "Expand", "Scale"]
	}`
	res, err := ParseCanonicalReport(raw, LanguageEnglish)
	require.NoError(t, err)
	assert.True(t, res.Repaired)
	assert.Empty(t, res.DefaultedFields)
	r := res.Report
	assert.Equal(t, "Short summary.", r.ExecutiveSummary)
	assert.Equal(t, []string{"Too many spreadsheets", "Slow approvals"}, r.DepartmentChallenges)
	assert.NotEmpty(t, r.CareerImpact.Productivity)
	require.Len(t, r.QuickWins.Actions, 2)
	assert.Equal(t, "Template emails", r.QuickWins.Actions[1].Action)
	require.Len(t, r.ImplementationRoadmap, 3)
	assert.NoError(t, r.Validate())
}

func TestParseCanonicalReportUnrecoverable(t *testing.T) {
	for _, raw := range []string{"", "not even close", `{"unrelated": true}`, `["a", "b"]`} {
		_, err := ParseCanonicalReport(raw, LanguageEnglish)
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, ErrUnparseable), raw)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe), raw)
	}
}

func TestParseCanonicalReportIsIdempotentOnSynthesizedReports(t *testing.T) {
	for _, lang := range []string{LanguageEnglish, LanguageSpanish} {
		uc := sampleUser(lang)
		want := NewSynthesizer(WithPlaybook()).Generate(uc, DeriveMetrics(uc))
		blob, err := json.Marshal(want)
		require.NoError(t, err)

		res, err := ParseCanonicalReport(string(blob), lang)
		require.NoError(t, err)
		assert.False(t, res.Repaired, lang)
		assert.Equal(t, want, res.Report, lang)
	}
}

func TestConformsToSchema(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(canonicalJSON), &doc))
	ok, errs := ConformsToSchema(doc)
	assert.True(t, ok)
	assert.Empty(t, errs)

	doc["department_challenges"] = []any{}
	ok, errs = ConformsToSchema(doc)
	assert.False(t, ok)
	assert.NotEmpty(t, errs)
}

func TestExtractBalancedObjectIgnoresBracesInStrings(t *testing.T) {
	got, ok := extractBalancedObject(`prefix {"a": "}{", "b": {"c": 1}} trailing {"x":1}`)
	require.True(t, ok)
	assert.Equal(t, `{"a": "}{", "b": {"c": 1}}`, got)

	_, ok = extractBalancedObject(`{"open": true`)
	assert.False(t, ok)
}
