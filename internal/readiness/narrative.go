package readiness

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const canonicalSchemaPrompt = `Respond with one JSON object only, using exactly these keys:
{
  "executive_summary": "string (one paragraph)",
  "department_challenges": ["string"],
  "career_impact": {"productivity": "string", "team": "string", "leadership": "string", "growth": "string"},
  "quick_wins": {
    "actions": [{"action": "string", "impact": "string"}],
    "goals": [{"goal": "string", "outcome": "string"}]
  },
  "implementation_roadmap": [{"phase": "string", "duration": "string", "description": "string", "benefit": "string"}]
}
The roadmap has three phases covering days 1-30, 31-60 and 61-90.`

// NarrativeStage asks for the whole report in one document and falls back to
// prose fragments the orchestrator can compile.
type NarrativeStage struct {
	gen    TextGenerator
	logger *zap.Logger
}

func NewNarrativeStage(gen TextGenerator, logger *zap.Logger) *NarrativeStage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NarrativeStage{gen: gen, logger: logger}
}

func (s *NarrativeStage) Process(ctx context.Context, uc UserContext, m DerivedMetrics, diag DiagnosticOutput, plan ActionPlanOutput) (NarrativeOutput, error) {
	c := catalogFor(uc.Language)
	raw, err := generate(ctx, s.gen, StageNarrative, buildNarrativePrompt(uc, m, diag, plan, c))
	if err != nil {
		s.logger.Warn("stage fell back to defaults", zap.String("stage", StageNarrative), zap.Error(err))
		return defaultNarrative(uc, c), nil
	}

	if span, ok := extractBalancedObject(raw); ok {
		res, perr := ParseCanonicalReport(span, uc.Language)
		if perr == nil && len(res.DefaultedFields) == 0 {
			report := res.Report
			return NarrativeOutput{DirectReport: &report}, nil
		}
		if perr != nil {
			s.logger.Debug("narrative document unusable", zap.Error(perr))
		}
	}

	if out, ok := parseNarrativeFragments(raw); ok {
		return finishNarrative(out, uc, c), nil
	}
	s.logger.Warn("stage fell back to defaults", zap.String("stage", StageNarrative), zap.String("reason", "no report or fragments parsed"))
	return defaultNarrative(uc, c), nil
}

func buildNarrativePrompt(uc UserContext, m DerivedMetrics, diag DiagnosticOutput, plan ActionPlanOutput, c *catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the final AI readiness report for %s at %s.\n\n", uc.DisplayName(), uc.Company)
	b.WriteString(profileBlock(uc, m, c))
	b.WriteString("\nDiagnosis:\n")
	for _, p := range diag.PainPoints {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", p.Description, p.Impact, p.QuantifiedLoss)
	}
	fmt.Fprintf(&b, "Quantified impact: %s\n", diag.QuantifiedImpact)
	fmt.Fprintf(&b, "Urgency: %s\n", diag.UrgencyMessage)
	b.WriteString("\nPlan:\n")
	for _, w := range plan.QuickWins {
		fmt.Fprintf(&b, "- Week %d: %s -> %s\n", w.Week, w.Action, w.Outcome)
	}
	for _, ms := range plan.Milestones {
		fmt.Fprintf(&b, "- Month %d: %s -> %s (%s)\n", ms.Month, ms.Goal, ms.Outcome, ms.Metric)
	}
	fmt.Fprintf(&b, "- 90-day vision: %s\n", plan.Vision.Vision)
	b.WriteString("\nSpeak to the reader directly. Frame career impact around their role. Keep every number identical to the projected numbers.\n\n")
	b.WriteString(canonicalSchemaPrompt)
	b.WriteString("\n\n")
	b.WriteString(languageInstruction(c))
	return b.String()
}

func parseNarrativeFragments(raw string) (NarrativeOutput, bool) {
	var out NarrativeOutput
	var doc map[string]any
	if _, err := decodeLenient(raw, &doc); err == nil && doc != nil {
		out = NarrativeOutput{
			CurrentState: asText(doc["current_state"]),
			Journey:      asText(doc["journey"]),
			FutureState:  asText(doc["future_state"]),
			Motivation:   asTextList(doc["motivation"]),
			CallToAction: asText(doc["call_to_action"]),
		}
		if hasFragments(out) {
			return out, true
		}
	}
	sections := parseSections(raw, LabelCurrentState, LabelJourney, LabelFutureState, LabelMotivation, LabelCallToAction)
	out = NarrativeOutput{
		CurrentState: sectionText(sections[LabelCurrentState]),
		Journey:      sectionText(sections[LabelJourney]),
		FutureState:  sectionText(sections[LabelFutureState]),
		Motivation:   sectionItems(sections[LabelMotivation]),
		CallToAction: sectionText(sections[LabelCallToAction]),
	}
	return out, hasFragments(out)
}

func hasFragments(n NarrativeOutput) bool {
	return n.CurrentState != "" || n.Journey != "" || n.FutureState != "" || len(n.Motivation) > 0 || n.CallToAction != ""
}

func finishNarrative(out NarrativeOutput, uc UserContext, c *catalog) NarrativeOutput {
	if out.CurrentState == "" {
		out.CurrentState = fmt.Sprintf(c.currentStateFmt, companyOrDefault(uc, c))
	}
	if out.Journey == "" {
		out.Journey = c.journey
	}
	if out.FutureState == "" {
		out.FutureState = c.futureState
	}
	for i := len(out.Motivation); i < len(c.motivation); i++ {
		out.Motivation = append(out.Motivation, c.motivation[i])
	}
	if out.CallToAction == "" {
		out.CallToAction = c.callToAction
	}
	return out
}

func defaultNarrative(uc UserContext, c *catalog) NarrativeOutput {
	out := finishNarrative(NarrativeOutput{}, uc, c)
	out.Defaulted = true
	return out
}

func companyOrDefault(uc UserContext, c *catalog) string {
	if s := strings.TrimSpace(uc.Company); s != "" {
		return s
	}
	return c.organization
}
