package readiness

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	StageDiagnostic = "diagnostic"
	StagePlanning   = "planning"
	StageNarrative  = "narrative"
)

const diagnosticSchemaPrompt = `Respond with one JSON object only:
{
  "pain_points": [{"description": "string", "impact": "string", "urgency": 1-10}],
  "quantified_impact": "string",
  "urgency_message": "string",
  "primary_opportunity": "string"
}
Give exactly three pain points, most urgent first.`

const planningSchemaPrompt = `Respond with one JSON object only:
{
  "quick_wins": [{"week": 1, "action": "string", "steps": ["string"], "outcome": "string", "difficulty": "easy|medium|hard"}],
  "monthly_milestones": [{"month": 1, "goal": "string", "outcome": "string", "metric": "string"}],
  "quarterly_vision": {"vision": "string", "outcomes": ["string"]},
  "success_metrics": [{"name": "string", "target": "string", "timeframe": "string"}]
}
Give three weekly quick wins and three monthly milestones. The first quick win must take no more than 2 hours of effort.`

// profileBlock renders the submission and the derived numbers so every stage
// quotes the same figures.
func profileBlock(uc UserContext, m DerivedMetrics, c *catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Person: %s\n", uc.DisplayName())
	fmt.Fprintf(&b, "Role: %s\n", uc.RoleTitle())
	fmt.Fprintf(&b, "Company: %s\n", uc.Company)
	fmt.Fprintf(&b, "AI readiness score: %d/100 (%s)\n", uc.Score, ClassifyReadiness(uc.Score))
	b.WriteString("\nSurvey answers:\n")
	ids := make([]string, 0, len(uc.Responses))
	for id := range uc.Responses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if v := uc.Answer(id); v != "" {
			fmt.Fprintf(&b, "- %s: %s\n", id, v)
		}
	}
	b.WriteString("\nProjected numbers (quote these exactly, do not recompute):\n")
	fmt.Fprintf(&b, "- Manual hours per week: %s\n", c.hours(m.WeeklyHoursWasted))
	fmt.Fprintf(&b, "- Hours saved per week with automation: %s\n", c.hours(m.WeeklyHoursSaved))
	fmt.Fprintf(&b, "- Monthly savings: %s (range %s to %s)\n", c.money(m.MonthlySavings), c.money(m.MonthlySavingsLow), c.money(m.MonthlySavingsHigh))
	fmt.Fprintf(&b, "- Annual savings: %s\n", c.money(m.AnnualSavings))
	if m.ROIPercent != nil && m.PaybackDays != nil {
		fmt.Fprintf(&b, "- ROI on monthly budget: %.1f%%, payback in %d days\n", *m.ROIPercent, *m.PaybackDays)
	}
	return b.String()
}

func languageInstruction(c *catalog) string {
	return fmt.Sprintf("Write every text value in %s.", c.languageName)
}

// DiagnosticStage identifies pain points and quantifies their cost.
type DiagnosticStage struct {
	gen    TextGenerator
	logger *zap.Logger
}

func NewDiagnosticStage(gen TextGenerator, logger *zap.Logger) *DiagnosticStage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiagnosticStage{gen: gen, logger: logger}
}

// Process never fails: any call or parse failure yields the localized default.
func (s *DiagnosticStage) Process(ctx context.Context, uc UserContext, m DerivedMetrics) (DiagnosticOutput, error) {
	c := catalogFor(uc.Language)
	prompt := buildDiagnosticPrompt(uc, m, c)
	raw, err := generate(ctx, s.gen, StageDiagnostic, prompt)
	if err != nil {
		s.logger.Warn("stage fell back to defaults", zap.String("stage", StageDiagnostic), zap.Error(err))
		return defaultDiagnostic(m, c), nil
	}
	out, ok := parseDiagnostic(raw)
	if !ok {
		s.logger.Warn("stage fell back to defaults", zap.String("stage", StageDiagnostic), zap.String("reason", "no pain points parsed"))
		return defaultDiagnostic(m, c), nil
	}
	return finishDiagnostic(out, m, c), nil
}

func buildDiagnosticPrompt(uc UserContext, m DerivedMetrics, c *catalog) string {
	return fmt.Sprintf(`Diagnose where %s loses time and money to manual work that AI could take over.

%s
Use the projected numbers above for every figure you mention.

%s

%s`, uc.Company, profileBlock(uc, m, c), diagnosticSchemaPrompt, languageInstruction(c))
}

func parseDiagnostic(raw string) (DiagnosticOutput, bool) {
	var out DiagnosticOutput
	var doc map[string]any
	if _, err := decodeLenient(raw, &doc); err == nil && doc != nil {
		out.PainPoints = painPointsFrom(doc["pain_points"])
		out.QuantifiedImpact = asText(doc["quantified_impact"])
		out.UrgencyMessage = asText(doc["urgency_message"])
		out.PrimaryOpportunity = asText(doc["primary_opportunity"])
		if len(out.PainPoints) > 0 {
			return out, true
		}
	}
	sections := parseSections(raw, LabelPainPoints, LabelQuantifiedImpact, LabelUrgencyMessage, LabelPrimaryOpportunity)
	out = DiagnosticOutput{
		QuantifiedImpact:   sectionText(sections[LabelQuantifiedImpact]),
		UrgencyMessage:     sectionText(sections[LabelUrgencyMessage]),
		PrimaryOpportunity: sectionText(sections[LabelPrimaryOpportunity]),
	}
	for _, line := range sectionItems(sections[LabelPainPoints]) {
		f := splitFields(line, 3)
		if f[0] == "" {
			continue
		}
		out.PainPoints = append(out.PainPoints, PainPoint{
			Description: f[0],
			Impact:      fieldAt(f, 1),
			Urgency:     parseUrgency(fieldAt(f, 2)),
		})
	}
	return out, len(out.PainPoints) > 0
}

func painPointsFrom(v any) []PainPoint {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []PainPoint
	for _, item := range items {
		switch t := item.(type) {
		case map[string]any:
			desc := firstText(t, "description", "pain_point", "title", "name")
			if desc == "" {
				continue
			}
			out = append(out, PainPoint{
				Description:    desc,
				Impact:         firstText(t, "impact", "effect", "consequence"),
				QuantifiedLoss: firstText(t, "quantified_loss", "loss", "cost"),
				Urgency:        parseUrgency(asText(t["urgency"])),
			})
		default:
			if s := asText(t); s != "" {
				out = append(out, PainPoint{Description: s, Urgency: defaultUrgency})
			}
		}
	}
	return out
}

// finishDiagnostic fills blank sections and spreads the monthly savings over
// the pain points in proportion to urgency.
func finishDiagnostic(out DiagnosticOutput, m DerivedMetrics, c *catalog) DiagnosticOutput {
	if out.QuantifiedImpact == "" {
		out.QuantifiedImpact = fmt.Sprintf(c.impactFmt, c.hours(m.WeeklyHoursWasted), c.money(m.MonthlySavings))
	}
	if out.UrgencyMessage == "" {
		out.UrgencyMessage = c.urgencyDefault
	}
	if out.PrimaryOpportunity == "" {
		out.PrimaryOpportunity = fmt.Sprintf(c.opportunityFmt, c.processLabel(m.ProcessType))
	}
	total := 0
	for i := range out.PainPoints {
		out.PainPoints[i].Urgency = clampUrgency(out.PainPoints[i].Urgency)
		total += out.PainPoints[i].Urgency
	}
	for i := range out.PainPoints {
		if out.PainPoints[i].QuantifiedLoss != "" || total == 0 {
			continue
		}
		share := m.MonthlySavings * float64(out.PainPoints[i].Urgency) / float64(total)
		out.PainPoints[i].QuantifiedLoss = fmt.Sprintf(c.lossFmt, c.money(share))
	}
	return out
}

func defaultDiagnostic(m DerivedMetrics, c *catalog) DiagnosticOutput {
	out := DiagnosticOutput{PainPoints: append([]PainPoint(nil), c.painPoints...), Defaulted: true}
	return finishDiagnostic(out, m, c)
}

// ActionPlanningStage turns the diagnosis into a 90-day plan.
type ActionPlanningStage struct {
	gen    TextGenerator
	logger *zap.Logger
}

func NewActionPlanningStage(gen TextGenerator, logger *zap.Logger) *ActionPlanningStage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionPlanningStage{gen: gen, logger: logger}
}

func (s *ActionPlanningStage) Process(ctx context.Context, uc UserContext, m DerivedMetrics, diag DiagnosticOutput) (ActionPlanOutput, error) {
	c := catalogFor(uc.Language)
	raw, err := generate(ctx, s.gen, StagePlanning, buildPlanningPrompt(uc, m, diag, c))
	if err != nil {
		s.logger.Warn("stage fell back to defaults", zap.String("stage", StagePlanning), zap.Error(err))
		return defaultActionPlan(c), nil
	}
	out, ok := parseActionPlan(raw)
	if !ok {
		s.logger.Warn("stage fell back to defaults", zap.String("stage", StagePlanning), zap.String("reason", "no quick wins parsed"))
		return defaultActionPlan(c), nil
	}
	return finishActionPlan(out, c), nil
}

func buildPlanningPrompt(uc UserContext, m DerivedMetrics, diag DiagnosticOutput, c *catalog) string {
	var b strings.Builder
	b.WriteString("Build a practical 90-day AI adoption plan for this person.\n\n")
	b.WriteString(profileBlock(uc, m, c))
	b.WriteString("\nDiagnosed pain points:\n")
	for _, p := range diag.PainPoints {
		fmt.Fprintf(&b, "- %s (urgency %d/10): %s\n", p.Description, p.Urgency, p.Impact)
	}
	fmt.Fprintf(&b, "\nPrimary opportunity: %s\n", diag.PrimaryOpportunity)
	if desc := uc.Answer(QuestionProcessDescription); desc != "" {
		fmt.Fprintf(&b, "\nProcess they most want to improve, in their words:\n%s\n", desc)
	}
	b.WriteString("\n")
	b.WriteString(planningSchemaPrompt)
	b.WriteString("\n\n")
	b.WriteString(languageInstruction(c))
	return b.String()
}

func parseActionPlan(raw string) (ActionPlanOutput, bool) {
	var out ActionPlanOutput
	var doc map[string]any
	if _, err := decodeLenient(raw, &doc); err == nil && doc != nil {
		out.QuickWins = quickWinsFrom(doc["quick_wins"])
		out.Milestones = milestonesFrom(doc["monthly_milestones"])
		if v, ok := doc["quarterly_vision"].(map[string]any); ok {
			out.Vision = QuarterlyVision{Vision: firstText(v, "vision", "description", "summary"), Outcomes: asTextList(v["outcomes"])}
		} else {
			out.Vision.Vision = asText(doc["quarterly_vision"])
		}
		out.SuccessMetrics = successMetricsFrom(doc["success_metrics"])
		if len(out.QuickWins) > 0 {
			return out, true
		}
	}

	sections := parseSections(raw, LabelQuickWins, LabelMonthlyMilestones, LabelQuarterlyVision, LabelSuccessMetrics)
	out = ActionPlanOutput{}
	for i, line := range sectionItems(sections[LabelQuickWins]) {
		f := splitFields(line, 4)
		if f[0] == "" {
			continue
		}
		var steps []string
		for _, step := range strings.Split(fieldAt(f, 3), ";") {
			if step = strings.TrimSpace(step); step != "" {
				steps = append(steps, step)
			}
		}
		out.QuickWins = append(out.QuickWins, QuickWin{Week: i + 1, Action: f[0], Outcome: fieldAt(f, 1), Difficulty: fieldAt(f, 2), Steps: steps})
	}
	for i, line := range sectionItems(sections[LabelMonthlyMilestones]) {
		f := splitFields(line, 3)
		if f[0] != "" {
			out.Milestones = append(out.Milestones, MonthlyMilestone{Month: i + 1, Goal: f[0], Outcome: fieldAt(f, 1), Metric: fieldAt(f, 2)})
		}
	}
	if items := sectionItems(sections[LabelQuarterlyVision]); len(items) > 0 {
		out.Vision = QuarterlyVision{Vision: items[0], Outcomes: items[1:]}
	}
	for _, line := range sectionItems(sections[LabelSuccessMetrics]) {
		f := splitFields(line, 3)
		if f[0] != "" {
			out.SuccessMetrics = append(out.SuccessMetrics, SuccessMetric{Name: f[0], Target: fieldAt(f, 1), Timeframe: fieldAt(f, 2)})
		}
	}
	return out, len(out.QuickWins) > 0
}

func quickWinsFrom(v any) []QuickWin {
	items, _ := v.([]any)
	var out []QuickWin
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			if s := asText(item); s != "" {
				out = append(out, QuickWin{Week: i + 1, Action: s})
			}
			continue
		}
		action := firstText(m, "action", "title", "name", "description")
		if action == "" {
			continue
		}
		out = append(out, QuickWin{
			Week:       ordinal(m["week"], i+1),
			Action:     action,
			Steps:      asTextList(m["steps"]),
			Outcome:    firstText(m, "outcome", "result", "impact"),
			Difficulty: firstText(m, "difficulty", "effort"),
		})
	}
	return out
}

func milestonesFrom(v any) []MonthlyMilestone {
	items, _ := v.([]any)
	var out []MonthlyMilestone
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			if s := asText(item); s != "" {
				out = append(out, MonthlyMilestone{Month: i + 1, Goal: s})
			}
			continue
		}
		goal := firstText(m, "goal", "milestone", "title", "description")
		if goal == "" {
			continue
		}
		out = append(out, MonthlyMilestone{
			Month:   ordinal(m["month"], i+1),
			Goal:    goal,
			Outcome: firstText(m, "outcome", "result", "impact"),
			Metric:  firstText(m, "metric", "measure", "kpi"),
		})
	}
	return out
}

func successMetricsFrom(v any) []SuccessMetric {
	items, _ := v.([]any)
	var out []SuccessMetric
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			if s := asText(item); s != "" {
				out = append(out, SuccessMetric{Name: s})
			}
			continue
		}
		if name := firstText(m, "name", "metric", "title"); name != "" {
			out = append(out, SuccessMetric{Name: name, Target: firstText(m, "target", "goal"), Timeframe: firstText(m, "timeframe", "deadline", "period")})
		}
	}
	return out
}

// ordinal reads "2", 2 or "Week 2" as 2, or returns def.
func ordinal(v any, def int) int {
	m := integerInText.FindString(asText(v))
	if n, err := strconv.Atoi(m); err == nil && n > 0 {
		return n
	}
	return def
}

func finishActionPlan(out ActionPlanOutput, c *catalog) ActionPlanOutput {
	if len(out.Milestones) == 0 {
		out.Milestones = append([]MonthlyMilestone(nil), c.milestones...)
	}
	if strings.TrimSpace(out.Vision.Vision) == "" {
		out.Vision = c.vision
	}
	if len(out.SuccessMetrics) == 0 {
		out.SuccessMetrics = append([]SuccessMetric(nil), c.successMetrics...)
	}
	return out
}

func defaultActionPlan(c *catalog) ActionPlanOutput {
	out := finishActionPlan(ActionPlanOutput{QuickWins: append([]QuickWin(nil), c.quickWins...)}, c)
	out.Defaulted = true
	return out
}
