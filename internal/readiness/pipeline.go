package readiness

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const tracerName = "github.com/joelkehle/aireadiness/internal/readiness"

type Diagnoser interface {
	Process(ctx context.Context, uc UserContext, m DerivedMetrics) (DiagnosticOutput, error)
}

type Planner interface {
	Process(ctx context.Context, uc UserContext, m DerivedMetrics, diag DiagnosticOutput) (ActionPlanOutput, error)
}

type Narrator interface {
	Process(ctx context.Context, uc UserContext, m DerivedMetrics, diag DiagnosticOutput, plan ActionPlanOutput) (NarrativeOutput, error)
}

type PipelineResult struct {
	Success    bool
	Report     *Report
	Err        error
	Elapsed    time.Duration
	StagesUsed []string
	// DefaultedStages lists stages that returned static defaults.
	DefaultedStages []string
	Direct          bool
}

// Orchestrator runs the three stages in order and compiles their outputs.
// It does not fall back on its own; failures come back in the result.
type Orchestrator struct {
	diagnostic Diagnoser
	planning   Planner
	narrative  Narrator
	logger     *zap.Logger
	now        func() time.Time
}

func NewOrchestrator(d Diagnoser, p Planner, n Narrator, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{diagnostic: d, planning: p, narrative: n, logger: logger, now: time.Now}
}

// NewTextPipeline wires the three text-service stages to one generator.
func NewTextPipeline(gen TextGenerator, logger *zap.Logger) *Orchestrator {
	return NewOrchestrator(
		NewDiagnosticStage(gen, logger),
		NewActionPlanningStage(gen, logger),
		NewNarrativeStage(gen, logger),
		logger,
	)
}

func (o *Orchestrator) GenerateReport(ctx context.Context, uc UserContext) (res PipelineResult) {
	started := o.now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "readiness.pipeline")
	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.Report = nil
			res.Err = fmt.Errorf("pipeline panic: %v", r)
		}
		res.Elapsed = o.now().Sub(started)
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		}
		span.End()
	}()

	m := DeriveMetrics(uc)

	diag, err := o.diagnostic.Process(ctx, uc, m)
	res.StagesUsed = append(res.StagesUsed, StageDiagnostic)
	if err != nil {
		res.Err = &StageError{Stage: StageDiagnostic, Err: err}
		return res
	}
	if diag.Defaulted {
		res.DefaultedStages = append(res.DefaultedStages, StageDiagnostic)
	}

	plan, err := o.planning.Process(ctx, uc, m, diag)
	res.StagesUsed = append(res.StagesUsed, StagePlanning)
	if err != nil {
		res.Err = &StageError{Stage: StagePlanning, Err: err}
		return res
	}
	if plan.Defaulted {
		res.DefaultedStages = append(res.DefaultedStages, StagePlanning)
	}

	narr, err := o.narrative.Process(ctx, uc, m, diag, plan)
	res.StagesUsed = append(res.StagesUsed, StageNarrative)
	if err != nil {
		res.Err = &StageError{Stage: StageNarrative, Err: err}
		return res
	}
	if narr.Defaulted {
		res.DefaultedStages = append(res.DefaultedStages, StageNarrative)
	}

	var report Report
	if narr.DirectReport != nil {
		report = *narr.DirectReport
		res.Direct = true
	} else {
		report = CompileReport(uc, diag, plan, narr)
	}
	if err := report.Validate(); err != nil {
		res.Err = &StageError{Stage: "compile", Err: err}
		return res
	}
	span.SetAttributes(
		attribute.Bool("readiness.direct_report", res.Direct),
		attribute.Int("readiness.defaulted_stages", len(res.DefaultedStages)),
	)
	o.logger.Debug("pipeline complete",
		zap.Bool("direct", res.Direct),
		zap.Strings("defaulted_stages", res.DefaultedStages),
	)
	res.Report = &report
	res.Success = true
	return res
}

// CompileReport assembles the canonical report from stage outputs.
func CompileReport(uc UserContext, diag DiagnosticOutput, plan ActionPlanOutput, narr NarrativeOutput) Report {
	c := catalogFor(uc.Language)

	var summary []string
	summary = appendNonEmpty(summary, diag.UrgencyMessage)
	if len(plan.QuickWins) > 0 && plan.QuickWins[0].Action != "" {
		summary = append(summary, fmt.Sprintf(c.firstStepFmt, strings.TrimRight(plan.QuickWins[0].Action, ".")))
	}
	summary = appendNonEmpty(summary, plan.Vision.Vision)
	summary = appendNonEmpty(summary, narr.CallToAction)

	r := Report{ExecutiveSummary: strings.Join(summary, " ")}
	if r.ExecutiveSummary == "" {
		r.ExecutiveSummary = c.defaultSummary
	}

	for _, p := range diag.PainPoints {
		if s := challengeLine(p); s != "" {
			r.DepartmentChallenges = append(r.DepartmentChallenges, s)
		}
	}
	if len(r.DepartmentChallenges) == 0 {
		r.DepartmentChallenges = append([]string(nil), c.defaultChallenges...)
	}

	motivation := func(i int) string {
		if i < len(narr.Motivation) && strings.TrimSpace(narr.Motivation[i]) != "" {
			return narr.Motivation[i]
		}
		return c.motivation[i]
	}
	milestone := func(i int) string {
		if i < len(plan.Milestones) {
			return plan.Milestones[i].Outcome
		}
		return ""
	}
	r.CareerImpact = CareerImpact{
		Productivity: joinSentences(motivation(0), milestone(0)),
		Team:         joinSentences(motivation(1), milestone(1)),
		Leadership:   joinSentences(motivation(2), milestone(2)),
		Growth:       joinSentences(motivation(3), narr.FutureState),
	}

	for i, w := range plan.QuickWins {
		if i == 2 {
			break
		}
		r.QuickWins.Actions = append(r.QuickWins.Actions, QuickWinAction{Action: w.Action, Impact: w.Outcome})
	}
	for i, ms := range plan.Milestones {
		if i == 2 {
			break
		}
		r.QuickWins.Goals = append(r.QuickWins.Goals, QuickWinGoal{Goal: ms.Goal, Outcome: ms.Outcome})
	}

	for i, p := range c.phases {
		phase := RoadmapPhase{Phase: p.Name, Duration: p.Duration, Benefit: p.Benefit}
		if i < len(plan.Milestones) {
			ms := plan.Milestones[i]
			phase.Description = joinSentences(ms.Goal, ms.Metric)
			if ms.Outcome != "" {
				phase.Benefit = ms.Outcome
			}
		} else {
			phase.Description = fmt.Sprintf(c.roadmapDescFmt[i], c.processLabel(ProcessGeneral))
		}
		r.ImplementationRoadmap = append(r.ImplementationRoadmap, phase)
	}
	return r
}

func challengeLine(p PainPoint) string {
	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		return ""
	}
	if impact := strings.TrimSpace(p.Impact); impact != "" {
		desc += ": " + impact
	}
	if loss := strings.TrimSpace(p.QuantifiedLoss); loss != "" {
		desc += " (" + loss + ")"
	}
	return desc
}

func appendNonEmpty(list []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		return append(list, s)
	}
	return list
}

// joinSentences joins non-empty fragments, terminating each with a period.
func joinSentences(parts ...string) string {
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.ContainsAny(p[len(p)-1:], ".!?") {
			p += "."
		}
		out = append(out, p)
	}
	return strings.Join(out, " ")
}
