package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLanguage(t *testing.T) {
	cases := map[string]string{
		"":          LanguageEnglish,
		"en":        LanguageEnglish,
		"en-GB":     LanguageEnglish,
		"es":        LanguageSpanish,
		"es-MX":     LanguageSpanish,
		"es-419":    LanguageSpanish,
		"fr":        LanguageEnglish,
		"not a tag": LanguageEnglish,
	}
	for in, want := range cases {
		assert.Equal(t, want, ResolveLanguage(in), in)
	}
}

func TestCatalogFormatting(t *testing.T) {
	assert.Equal(t, "$12,345", englishCatalog.money(12345))
	assert.Equal(t, "$12.345", spanishCatalog.money(12345))
	assert.Equal(t, "7.5", englishCatalog.hours(7.5))
	assert.Equal(t, "7,5", spanishCatalog.hours(7.5))
	assert.Equal(t, "9", spanishCatalog.hours(9))
	assert.Equal(t, "2450,0", spanishCatalog.percent(2450))
}

func TestCatalogsAreComplete(t *testing.T) {
	for _, c := range []*catalog{englishCatalog, spanishCatalog} {
		assert.Len(t, c.painPoints, 3, c.lang)
		assert.NotEmpty(t, c.quickWins, c.lang)
		assert.NotEmpty(t, c.goals, c.lang)
		for _, level := range []string{ReadinessBeginning, ReadinessDeveloping, ReadinessProgressing, ReadinessAdvanced} {
			assert.NotEmpty(t, c.readinessSummaryFmt[level], "%s %s", c.lang, level)
		}
		for _, p := range []string{ProcessDataEntry, ProcessReporting, ProcessGeneral} {
			assert.NotEmpty(t, c.processLabel(p), "%s %s", c.lang, p)
		}
		assert.Equal(t, c.processLabel(ProcessGeneral), c.processLabel("unknown"))
	}
}
