package readiness

import (
	"math"
	"strconv"
	"strings"
)

// ComputeScore returns the weighted readiness score in [0,100].
//
// Unanswered questions are skipped and their weight leaves both sums, so a
// partial submission is scored only on what was answered. No answers scores 0.
func ComputeScore(responses map[string]Answer, specs []QuestionSpec) int {
	var weighted, total float64
	for _, q := range specs {
		a, ok := responses[q.ID]
		if !ok || a.IsEmpty() {
			continue
		}
		points, maxPoints, weight, ok := q.points(a)
		if !ok || maxPoints <= 0 || weight <= 0 {
			continue
		}
		weighted += (points / maxPoints) * weight
		total += weight
	}
	if total <= 0 {
		return 0
	}
	score := int(math.Round(100 * weighted / total))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ScoreAnswers scores against the default question bank.
func ScoreAnswers(responses map[string]Answer) int {
	return ComputeScore(responses, DefaultQuestionBank())
}

func (q QuestionSpec) effectiveWeight() float64 {
	if q.Weight <= 0 {
		return 1
	}
	return q.Weight
}

func (q QuestionSpec) points(a Answer) (points, maxPoints, weight float64, ok bool) {
	values := a.Values()
	if len(values) == 0 {
		return 0, 0, 0, false
	}
	switch q.Type {
	case QuestionText:
		return 0, 0, 0, false
	case QuestionSingleChoice, QuestionCard:
		idx := q.optionIndex(values[0])
		if idx < 0 {
			return 0, 0, 0, false
		}
		return float64(idx + 1), float64(len(q.Options)), q.effectiveWeight(), true
	case QuestionScale, QuestionSlider:
		if q.Max <= 0 {
			return 0, 0, 0, false
		}
		v, err := strconv.ParseFloat(values[0], 64)
		if err != nil || math.IsNaN(v) {
			return 0, 0, 0, false
		}
		v = math.Max(q.Min, math.Min(q.Max, v))
		return v, q.Max, q.effectiveWeight(), true
	case QuestionMultiSelect:
		var sum float64
		n := 0
		for _, v := range values {
			if idx := q.optionIndex(v); idx >= 0 {
				sum += float64(idx + 1)
				n++
			}
		}
		if n == 0 {
			return 0, 0, 0, false
		}
		return sum / float64(n), float64(len(q.Options)), q.effectiveWeight(), true
	default:
		return 1, 1, 1, true
	}
}

func (q QuestionSpec) optionIndex(value string) int {
	v := normalizeKey(value)
	for i, opt := range q.Options {
		if normalizeKey(opt) == v {
			return i
		}
	}
	return -1
}

// normalizeKey lowercases and folds spaces and hyphens to underscores.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
