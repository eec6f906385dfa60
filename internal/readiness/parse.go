package readiness

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/kaptinlin/jsonrepair"
	"github.com/xeipuuv/gojsonschema"
)

// Cleaning strategies, applied cumulatively in this order.
const (
	StrategyDirect         = "direct"
	StrategyStripControl   = "strip_control"
	StrategySliceBraces    = "slice_braces"
	StrategyStripFences    = "strip_fences"
	StrategyTrailingCommas = "trailing_commas"
	StrategyJSONRepair     = "json_repair"
)

type cleaningStep struct {
	name  string
	apply func(string) (string, error)
}

var cleaningSteps = []cleaningStep{
	{StrategyStripControl, func(s string) (string, error) { return stripControl(s), nil }},
	{StrategySliceBraces, func(s string) (string, error) { return sliceBraces(s), nil }},
	{StrategyStripFences, func(s string) (string, error) { return stripFenceMarkers(s), nil }},
	{StrategyTrailingCommas, func(s string) (string, error) { return trailingComma.ReplaceAllString(s, "$1"), nil }},
	{StrategyJSONRepair, jsonrepair.JSONRepair},
}

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// decodeLenient unmarshals raw into out, retrying after each cleaning step.
// Valid JSON of the wrong shape, such as an object wrapped in an array, also
// moves on to the next step. It returns the name of the strategy that
// produced a successful decode.
func decodeLenient(raw string, out any) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &ParseError{Reason: "empty input", Err: ErrUnparseable}
	}
	if json.Valid([]byte(s)) {
		if err := json.Unmarshal([]byte(s), out); err == nil {
			return StrategyDirect, nil
		}
	}
	var lastErr error
	for _, step := range cleaningSteps {
		next, err := step.apply(s)
		if err != nil {
			lastErr = err
			continue
		}
		s = next
		if !json.Valid([]byte(s)) {
			continue
		}
		if err := json.Unmarshal([]byte(s), out); err != nil {
			lastErr = &ParseError{Reason: "unexpected document shape", Err: fmt.Errorf("%w: %v", ErrUnparseable, err)}
			continue
		}
		return step.name, nil
	}
	var perr *ParseError
	if errors.As(lastErr, &perr) {
		return "", perr
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("invalid JSON after %d cleaning steps", len(cleaningSteps))
	}
	return "", &ParseError{Reason: "no cleaning strategy produced valid JSON", Err: fmt.Errorf("%w: %v", ErrUnparseable, lastErr)}
}

// stripControl drops control characters; line breaks and tabs become spaces
// so raw newlines inside string literals stop breaking the decode.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

func sliceBraces(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}

func stripFenceMarkers(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	return strings.TrimSpace(strings.ReplaceAll(s, "```", ""))
}

// extractBalancedObject returns the first brace-balanced {...} span, honoring
// string literals and escapes.
func extractBalancedObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

const reportSchemaJSON = `{
  "type": "object",
  "required": ["executive_summary", "department_challenges", "career_impact", "quick_wins", "implementation_roadmap"],
  "properties": {
    "executive_summary": {"type": "string", "minLength": 1},
    "department_challenges": {"type": "array", "minItems": 1, "items": {"type": "string"}},
    "career_impact": {
      "type": "object",
      "required": ["productivity", "team", "leadership", "growth"],
      "properties": {
        "productivity": {"type": "string"},
        "team": {"type": "string"},
        "leadership": {"type": "string"},
        "growth": {"type": "string"}
      }
    },
    "quick_wins": {
      "type": "object",
      "required": ["actions", "goals"],
      "properties": {
        "actions": {"type": "array", "items": {"type": "object", "required": ["action", "impact"], "properties": {"action": {"type": "string"}, "impact": {"type": "string"}}}},
        "goals": {"type": "array", "items": {"type": "object", "required": ["goal", "outcome"], "properties": {"goal": {"type": "string"}, "outcome": {"type": "string"}}}}
      }
    },
    "implementation_roadmap": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["phase", "duration", "description", "benefit"],
        "properties": {
          "phase": {"type": "string"},
          "duration": {"type": "string"},
          "description": {"type": "string"},
          "benefit": {"type": "string"}
        }
      }
    }
  }
}`

var (
	reportSchemaOnce sync.Once
	reportSchema     *gojsonschema.Schema
	reportSchemaErr  error
)

func canonicalSchema() (*gojsonschema.Schema, error) {
	reportSchemaOnce.Do(func() {
		reportSchema, reportSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(reportSchemaJSON))
	})
	return reportSchema, reportSchemaErr
}

// ConformsToSchema reports the schema violations of a decoded document.
func ConformsToSchema(doc map[string]any) (bool, []string) {
	schema, err := canonicalSchema()
	if err != nil {
		return false, []string{err.Error()}
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return false, []string{err.Error()}
	}
	if result.Valid() {
		return true, nil
	}
	var errs []string
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return false, errs
}

type ParseResult struct {
	Report   Report
	Strategy string
	// Repaired is set when the document needed synonym scavenging, type
	// coercion or default substitution.
	Repaired        bool
	RecoveredFields []string
	DefaultedFields []string
	SchemaErrors    []string
}

// ParseCanonicalReport turns free text into a canonical Report. A document
// carrying all five sections is accepted as is; a partial one is repaired with
// synonym keys and localized defaults. Only input with nothing recoverable
// fails, with a *ParseError wrapping ErrUnparseable.
func ParseCanonicalReport(raw, lang string) (ParseResult, error) {
	var doc map[string]any
	strategy, err := decodeLenient(raw, &doc)
	if err != nil {
		return ParseResult{}, err
	}
	if doc == nil {
		return ParseResult{}, &ParseError{Reason: "response is not a JSON object", Err: ErrUnparseable}
	}
	res := ParseResult{Strategy: strategy}

	ok, schemaErrs := ConformsToSchema(doc)
	if ok {
		var r Report
		if err := remarshal(doc, &r); err == nil && r.Validate() == nil {
			res.Report = r
			res.RecoveredFields = append([]string(nil), RequiredReportFields...)
			return res, nil
		}
	}
	res.SchemaErrors = schemaErrs

	r, recovered, defaulted := repairReport(doc, catalogFor(lang))
	if len(recovered) == 0 {
		return ParseResult{}, &ParseError{Reason: "no report section could be recovered", Err: ErrUnparseable}
	}
	res.Report = r
	res.Repaired = true
	res.RecoveredFields = recovered
	res.DefaultedFields = defaulted
	return res, nil
}

func remarshal(in any, out any) error {
	blob, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(blob, out)
}

var fieldSynonyms = map[string][]string{
	FieldExecutiveSummary:      {"executive_summary", "executiveSummary", "summary", "overview", "executive_overview", "introduction", "resumen", "resumen_ejecutivo"},
	FieldDepartmentChallenges:  {"department_challenges", "departmentChallenges", "challenges", "pain_points", "painPoints", "problems", "issues", "desafios", "retos"},
	FieldCareerImpact:          {"career_impact", "careerImpact", "career", "personal_impact", "career_benefits", "impacto_profesional"},
	FieldQuickWins:             {"quick_wins", "quickWins", "quick_win", "recommendations", "next_steps", "actions", "victorias_rapidas"},
	FieldImplementationRoadmap: {"implementation_roadmap", "implementationRoadmap", "roadmap", "timeline", "phases", "plan", "hoja_de_ruta"},
}

func lookupField(doc map[string]any, field string) (any, bool) {
	for _, key := range fieldSynonyms[field] {
		if v, ok := doc[key]; ok && v != nil {
			return v, true
		}
	}
	// Case-insensitive pass for keys such as "Executive_Summary".
	for k, v := range doc {
		for _, key := range fieldSynonyms[field] {
			if v != nil && strings.EqualFold(k, key) {
				return v, true
			}
		}
	}
	return nil, false
}

func repairReport(doc map[string]any, c *catalog) (Report, []string, []string) {
	var r Report
	var recovered, defaulted []string
	mark := func(field string, ok bool) {
		if ok {
			recovered = append(recovered, field)
		} else {
			defaulted = append(defaulted, field)
		}
	}

	if v, ok := lookupField(doc, FieldExecutiveSummary); ok {
		r.ExecutiveSummary = asText(v)
	}
	mark(FieldExecutiveSummary, r.ExecutiveSummary != "")
	if r.ExecutiveSummary == "" {
		r.ExecutiveSummary = c.defaultSummary
	}

	if v, ok := lookupField(doc, FieldDepartmentChallenges); ok {
		r.DepartmentChallenges = asTextList(v)
	}
	mark(FieldDepartmentChallenges, len(r.DepartmentChallenges) > 0)
	if len(r.DepartmentChallenges) == 0 {
		r.DepartmentChallenges = append([]string(nil), c.defaultChallenges...)
	}

	if v, ok := lookupField(doc, FieldCareerImpact); ok {
		r.CareerImpact = asCareerImpact(v)
	}
	mark(FieldCareerImpact, !r.CareerImpact.isEmpty())
	r.CareerImpact = fillCareerImpact(r.CareerImpact, c.careerIndividual)

	if v, ok := lookupField(doc, FieldQuickWins); ok {
		r.QuickWins = asQuickWins(v)
	}
	mark(FieldQuickWins, len(r.QuickWins.Actions) > 0 || len(r.QuickWins.Goals) > 0)
	if len(r.QuickWins.Actions) == 0 {
		r.QuickWins.Actions = []QuickWinAction{c.minimalAction}
	}
	if len(r.QuickWins.Goals) == 0 {
		r.QuickWins.Goals = append([]QuickWinGoal(nil), c.goals...)
	}

	if v, ok := lookupField(doc, FieldImplementationRoadmap); ok {
		r.ImplementationRoadmap = asRoadmap(v, c)
	}
	mark(FieldImplementationRoadmap, len(r.ImplementationRoadmap) > 0)
	if len(r.ImplementationRoadmap) == 0 {
		r.ImplementationRoadmap = defaultRoadmap(c, c.processLabel(ProcessGeneral))
	}
	return r, recovered, defaulted
}

func fillCareerImpact(ci CareerImpact, def CareerImpact) CareerImpact {
	if strings.TrimSpace(ci.Productivity) == "" {
		ci.Productivity = def.Productivity
	}
	if strings.TrimSpace(ci.Team) == "" {
		ci.Team = def.Team
	}
	if strings.TrimSpace(ci.Leadership) == "" {
		ci.Leadership = def.Leadership
	}
	if strings.TrimSpace(ci.Growth) == "" {
		ci.Growth = def.Growth
	}
	return ci
}

func defaultRoadmap(c *catalog, processLabel string) []RoadmapPhase {
	out := make([]RoadmapPhase, 0, len(c.phases))
	for i, p := range c.phases {
		out = append(out, RoadmapPhase{
			Phase:       p.Name,
			Duration:    p.Duration,
			Description: fmt.Sprintf(c.roadmapDescFmt[i], processLabel),
			Benefit:     p.Benefit,
		})
	}
	return out
}

// asText coerces any decoded JSON value into display text.
func asText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := asText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case map[string]any:
		for _, key := range []string{"text", "description", "value", "content", "summary"} {
			if s := asText(t[key]); s != "" {
				return s
			}
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := asText(t[k]); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func asTextList(v any) []string {
	var out []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				if s := challengeText(m); s != "" {
					out = append(out, s)
				}
				continue
			}
			if s := asText(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, line := range strings.Split(t, "\n") {
			if s := trimBullet(line); s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := asText(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func challengeText(m map[string]any) string {
	desc := firstText(m, "challenge", "description", "title", "name", "pain_point", "text")
	impact := firstText(m, "impact", "detail", "details")
	switch {
	case desc == "":
		return asText(m)
	case impact == "":
		return desc
	default:
		return desc + ": " + impact
	}
}

func firstText(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := asText(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func asCareerImpact(v any) CareerImpact {
	switch t := v.(type) {
	case map[string]any:
		return CareerImpact{
			Productivity: firstText(t, "productivity", "productividad", "efficiency"),
			Team:         firstText(t, "team", "equipo", "collaboration"),
			Leadership:   firstText(t, "leadership", "liderazgo", "visibility"),
			Growth:       firstText(t, "growth", "crecimiento", "career", "development"),
		}
	case []any:
		var ci CareerImpact
		fields := []*string{&ci.Productivity, &ci.Team, &ci.Leadership, &ci.Growth}
		i := 0
		for _, item := range t {
			if i >= len(fields) {
				break
			}
			if s := asText(item); s != "" {
				*fields[i] = s
				i++
			}
		}
		return ci
	default:
		return CareerImpact{Productivity: asText(t)}
	}
}

func asQuickWins(v any) QuickWins {
	var qw QuickWins
	switch t := v.(type) {
	case map[string]any:
		if actions, ok := t["actions"]; ok {
			qw.Actions = append(qw.Actions, asActions(actions)...)
		}
		if goals, ok := t["goals"]; ok {
			qw.Goals = append(qw.Goals, asGoals(goals)...)
		}
		if len(qw.Actions) == 0 && len(qw.Goals) == 0 {
			if a := actionFrom(t); a.Action != "" {
				qw.Actions = append(qw.Actions, a)
			}
		}
	case []any:
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				if _, isGoal := m["goal"]; isGoal {
					if g := goalFrom(m); g.Goal != "" {
						qw.Goals = append(qw.Goals, g)
					}
					continue
				}
			}
			qw.Actions = append(qw.Actions, asActions([]any{item})...)
		}
	default:
		if s := asText(t); s != "" {
			qw.Actions = append(qw.Actions, QuickWinAction{Action: s})
		}
	}
	return qw
}

func asActions(v any) []QuickWinAction {
	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}
	var out []QuickWinAction
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			if a := actionFrom(m); a.Action != "" {
				out = append(out, a)
			}
			continue
		}
		if s := asText(item); s != "" {
			out = append(out, QuickWinAction{Action: s})
		}
	}
	return out
}

func actionFrom(m map[string]any) QuickWinAction {
	return QuickWinAction{
		Action: firstText(m, "action", "title", "name", "step", "description"),
		Impact: firstText(m, "impact", "benefit", "outcome", "result"),
	}
}

func asGoals(v any) []QuickWinGoal {
	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}
	var out []QuickWinGoal
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			if g := goalFrom(m); g.Goal != "" {
				out = append(out, g)
			}
			continue
		}
		if s := asText(item); s != "" {
			out = append(out, QuickWinGoal{Goal: s})
		}
	}
	return out
}

func goalFrom(m map[string]any) QuickWinGoal {
	return QuickWinGoal{
		Goal:    firstText(m, "goal", "objective", "title", "name"),
		Outcome: firstText(m, "outcome", "result", "impact", "metric"),
	}
}

func asRoadmap(v any, c *catalog) []RoadmapPhase {
	items, ok := v.([]any)
	if !ok {
		if m, isMap := v.(map[string]any); isMap {
			// {"phase_1": {...}, "phase_2": {...}} keyed by name.
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				items = append(items, m[k])
			}
		} else {
			items = []any{v}
		}
	}
	var out []RoadmapPhase
	for i, item := range items {
		var p RoadmapPhase
		if m, ok := item.(map[string]any); ok {
			p = RoadmapPhase{
				Phase:       firstText(m, "phase", "name", "title", "stage"),
				Duration:    firstText(m, "duration", "timeline", "timeframe", "period"),
				Description: firstText(m, "description", "details", "summary", "activities", "actions"),
				Benefit:     firstText(m, "benefit", "benefits", "outcome", "impact", "value"),
			}
		} else {
			p.Description = asText(item)
		}
		if p.Phase == "" && p.Description == "" {
			continue
		}
		if i < len(c.phases) {
			if p.Phase == "" {
				p.Phase = c.phases[i].Name
			}
			if p.Duration == "" {
				p.Duration = c.phases[i].Duration
			}
			if p.Benefit == "" {
				p.Benefit = c.phases[i].Benefit
			}
		}
		if p.Description == "" {
			p.Description = p.Phase
		}
		out = append(out, p)
	}
	return out
}
