package readiness

import (
	"regexp"
	"strconv"
	"strings"
)

// Section labels for responses that come back as labeled free text instead
// of the requested JSON object.
const (
	LabelPainPoints         = "PAIN_POINTS"
	LabelQuantifiedImpact   = "QUANTIFIED_IMPACT"
	LabelUrgencyMessage     = "URGENCY_MESSAGE"
	LabelPrimaryOpportunity = "PRIMARY_OPPORTUNITY"
	LabelQuickWins          = "QUICK_WINS"
	LabelMonthlyMilestones  = "MONTHLY_MILESTONES"
	LabelQuarterlyVision    = "QUARTERLY_VISION"
	LabelSuccessMetrics     = "SUCCESS_METRICS"
	LabelCurrentState       = "CURRENT_STATE"
	LabelJourney            = "JOURNEY"
	LabelFutureState        = "FUTURE_STATE"
	LabelMotivation         = "MOTIVATION"
	LabelCallToAction       = "CALL_TO_ACTION"
)

const (
	fieldDelimiter = "|"
	defaultUrgency = 7
)

var (
	labelPattern  = regexp.MustCompile(`(?m)^[ \t#*>]*([A-Za-z]+(?:[_ ][A-Za-z]+)*)[ \t*]*:`)
	bulletPattern = regexp.MustCompile(`^\s*(?:[-*•]+|\d+[.)]|\(\d+\))\s*`)
	integerInText = regexp.MustCompile(`-?\d+`)
)

// parseSections returns the text after each known label up to the next known
// label. Labels match case-insensitively; spaces and underscores are
// interchangeable. Unknown labels stay inside the current span.
func parseSections(text string, labels ...string) map[string]string {
	known := make(map[string]string, len(labels))
	for _, l := range labels {
		known[normalizeLabel(l)] = l
	}
	type hit struct {
		label      string
		start, end int
	}
	var hits []hit
	for _, m := range labelPattern.FindAllStringSubmatchIndex(text, -1) {
		name := normalizeLabel(text[m[2]:m[3]])
		if label, ok := known[name]; ok {
			hits = append(hits, hit{label: label, start: m[0], end: m[1]})
		}
	}
	out := make(map[string]string, len(hits))
	for i, h := range hits {
		stop := len(text)
		if i+1 < len(hits) {
			stop = hits[i+1].start
		}
		body := strings.TrimSpace(text[h.end:stop])
		if _, dup := out[h.label]; dup || body == "" {
			continue
		}
		out[h.label] = body
	}
	return out
}

func normalizeLabel(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
}

// sectionItems splits a span into non-empty lines with list markers removed.
func sectionItems(span string) []string {
	var out []string
	for _, line := range strings.Split(span, "\n") {
		if s := trimBullet(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func trimBullet(line string) string {
	return strings.TrimSpace(bulletPattern.ReplaceAllString(strings.TrimSpace(line), ""))
}

// splitFields splits a line on the delimiter into at most n trimmed fields.
func splitFields(line string, n int) []string {
	parts := strings.SplitN(line, fieldDelimiter, n)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// sectionText collapses a span to one paragraph.
func sectionText(span string) string {
	return strings.Join(sectionItems(span), " ")
}

// parseUrgency reads the first integer in s, clamped to 1..10; 7 otherwise.
func parseUrgency(s string) int {
	m := integerInText.FindString(s)
	if m == "" {
		return defaultUrgency
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return defaultUrgency
	}
	return clampUrgency(v)
}

func clampUrgency(v int) int {
	switch {
	case v < 1:
		return 1
	case v > 10:
		return 10
	}
	return v
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
