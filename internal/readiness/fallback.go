package readiness

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// processBuckets maps a process type onto the playbook bucket used when no
// free-text description was given.
var processBuckets = map[string]string{
	ProcessDataEntry:       BucketDataEntry,
	ProcessReporting:       BucketAnalysis,
	ProcessDocumentation:   BucketDocumentation,
	ProcessScheduling:      BucketCoordination,
	ProcessCustomerService: BucketCommunication,
	ProcessAnalysis:        BucketAnalysis,
	ProcessCoordination:    BucketCoordination,
	ProcessCommunication:   BucketCommunication,
	ProcessGeneral:         BucketGeneral,
}

// Profile is the classification the synthesizer fills its templates from.
type Profile struct {
	Readiness    string
	Manager      bool
	Authority    string
	Focus        string
	Bucket       string
	HasProcess   bool
	ProcessLabel string
}

func ClassifyProfile(uc UserContext, m DerivedMetrics) Profile {
	desc := uc.Answer(QuestionProcessDescription)
	p := Profile{
		Readiness:  ClassifyReadiness(uc.Score),
		Manager:    ClassifyRole(uc.RoleTitle()).Manager,
		Authority:  ClassifyAuthority(uc.Answer(QuestionApprovalProcess)),
		Focus:      ClassifyFocus(uc.Answer(QuestionBiggestChallenge)),
		HasProcess: desc != "",
	}
	if p.HasProcess {
		p.Bucket = ClassifyProcessDescription(desc)
	} else {
		p.Bucket = processBuckets[m.ProcessType]
		if p.Bucket == "" {
			p.Bucket = BucketGeneral
		}
	}
	c := catalogFor(uc.Language)
	p.ProcessLabel = c.processLabel(m.ProcessType)
	return p
}

// Synthesizer builds a complete report from heuristics alone. It makes no
// external calls and always returns a valid report.
type Synthesizer struct {
	detailed bool
	logger   *zap.Logger
}

type SynthesizerOption func(*Synthesizer)

// WithPlaybook adds per-process tooling guidance to the roadmap and actions.
func WithPlaybook() SynthesizerOption {
	return func(s *Synthesizer) { s.detailed = true }
}

func WithSynthesizerLogger(l *zap.Logger) SynthesizerOption {
	return func(s *Synthesizer) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSynthesizer(opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate never fails. An internal panic degrades to MinimalReport.
func (s *Synthesizer) Generate(uc UserContext, m DerivedMetrics) (r Report) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("synthesizer degraded to minimal report", zap.Any("panic", rec))
			r = MinimalReport(uc)
		}
	}()
	c := catalogFor(uc.Language)
	p := ClassifyProfile(uc, m)

	r = Report{
		ExecutiveSummary:      s.summary(uc, m, p, c),
		DepartmentChallenges:  s.challenges(p, c),
		CareerImpact:          c.careerIndividual,
		QuickWins:             s.quickWins(p, c),
		ImplementationRoadmap: s.roadmap(p, c),
	}
	if p.Manager {
		r.CareerImpact = c.careerManager
	}
	if err := r.Validate(); err != nil {
		s.logger.Error("synthesized report incomplete", zap.Error(err))
		return MinimalReport(uc)
	}
	return r
}

func (s *Synthesizer) summary(uc UserContext, m DerivedMetrics, p Profile, c *catalog) string {
	name := strings.TrimSpace(uc.FirstName)
	if name == "" {
		name = c.someone
	}
	parts := []string{
		fmt.Sprintf(c.readinessSummaryFmt[p.Readiness], name, companyOrDefault(uc, c), uc.Score),
		fmt.Sprintf(c.metricsSentenceFmt, c.hours(m.WeeklyHoursSaved), c.money(m.MonthlySavings), c.money(m.AnnualSavings)),
	}
	if m.ROIPercent != nil && m.PaybackDays != nil {
		parts = append(parts, fmt.Sprintf(c.roiSentenceFmt, c.percent(*m.ROIPercent), *m.PaybackDays))
	} else {
		parts = append(parts, c.noROISentence)
	}
	parts = append(parts, c.authoritySentence[p.Authority])
	return strings.Join(parts, " ")
}

func (s *Synthesizer) challenges(p Profile, c *catalog) []string {
	out := []string{c.focusChallenge[p.Focus]}
	if p.HasProcess {
		out = append(out, c.bucketChallenge[p.Bucket])
	}
	for _, d := range c.defaultChallenges {
		if len(out) >= 3 {
			break
		}
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Synthesizer) quickWins(p Profile, c *catalog) QuickWins {
	var actions []QuickWinAction
	if p.HasProcess || s.detailed {
		actions = append(actions, c.bucketAction[p.Bucket])
	}
	if focus := c.focusAction[p.Focus]; !containsAction(actions, focus) {
		actions = append(actions, focus)
	}
	if len(actions) < 2 && len(c.quickWins) > 0 {
		actions = append(actions, QuickWinAction{Action: c.quickWins[0].Action, Impact: c.quickWins[0].Outcome})
	}
	return QuickWins{Actions: actions, Goals: append([]QuickWinGoal(nil), c.goals...)}
}

func (s *Synthesizer) roadmap(p Profile, c *catalog) []RoadmapPhase {
	phases := defaultRoadmap(c, p.ProcessLabel)
	if s.detailed {
		phases[0].Description = joinSentences(phases[0].Description, c.bucketTooling[p.Bucket])
	}
	return phases
}

// MinimalReport is the static last resort; it only needs the catalog.
func MinimalReport(uc UserContext) Report {
	c := catalogFor(uc.Language)
	name := strings.TrimSpace(uc.FirstName)
	if name == "" {
		name = c.someone
	}
	return Report{
		ExecutiveSummary:      fmt.Sprintf(c.minimalSummaryFmt, name, companyOrDefault(uc, c), uc.Score),
		DepartmentChallenges:  []string{c.minimalChallenge},
		CareerImpact:          c.minimalCareer,
		QuickWins:             QuickWins{Actions: []QuickWinAction{c.minimalAction}, Goals: []QuickWinGoal{c.minimalGoal}},
		ImplementationRoadmap: []RoadmapPhase{c.minimalPhase},
	}
}

func (c *catalog) percent(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if c.lang == LanguageSpanish {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

func containsAction(list []QuickWinAction, a QuickWinAction) bool {
	for _, v := range list {
		if v.Action == a.Action {
			return true
		}
	}
	return false
}
