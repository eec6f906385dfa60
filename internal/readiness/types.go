package readiness

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	LanguageEnglish = "en"
	LanguageSpanish = "es"
)

// Answer holds a quiz response. Single-choice, scale and free-text questions
// arrive as one string; multi-select questions arrive as a list.
type Answer struct {
	Text string
	List []string
}

func TextAnswer(s string) Answer        { return Answer{Text: s} }
func ListAnswer(items ...string) Answer { return Answer{List: items} }

func (a Answer) IsEmpty() bool {
	if strings.TrimSpace(a.Text) != "" {
		return false
	}
	for _, v := range a.List {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Values returns the non-empty answer values in submission order.
func (a Answer) Values() []string {
	if a.List != nil {
		out := make([]string, 0, len(a.List))
		for _, v := range a.List {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	if v := strings.TrimSpace(a.Text); v != "" {
		return []string{v}
	}
	return nil
}

func (a Answer) String() string { return strings.Join(a.Values(), ", ") }

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.List != nil {
		return json.Marshal(a.List)
	}
	return json.Marshal(a.Text)
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*a = Answer{}
	case string:
		*a = Answer{Text: v}
	case float64:
		*a = Answer{Text: strconv.FormatFloat(v, 'f', -1, 64)}
	case bool:
		*a = Answer{Text: strconv.FormatBool(v)}
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			switch it := item.(type) {
			case nil:
			case string:
				items = append(items, it)
			case float64:
				items = append(items, strconv.FormatFloat(it, 'f', -1, 64))
			default:
				items = append(items, fmt.Sprint(it))
			}
		}
		*a = Answer{List: items}
	default:
		return fmt.Errorf("unsupported answer type %T", raw)
	}
	return nil
}

// UserContext is built once per submission and never mutated afterwards.
type UserContext struct {
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Company   string            `json:"company"`
	Role      string            `json:"role"`
	Language  string            `json:"language"`
	Responses map[string]Answer `json:"responses"`
	Score     int               `json:"score"`
}

// Answer returns the trimmed answer text for a question id ("" when unanswered).
func (u UserContext) Answer(id string) string {
	if u.Responses == nil {
		return ""
	}
	return u.Responses[id].String()
}

// RoleTitle prefers the identity role and falls back to the quiz answer.
func (u UserContext) RoleTitle() string {
	if r := strings.TrimSpace(u.Role); r != "" {
		return r
	}
	return u.Answer(QuestionRole)
}

func (u UserContext) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// Validate rejects structurally invalid submissions. It is the only failure
// in the generation path that reaches the caller.
func (u UserContext) Validate() error {
	var missing []string
	if strings.TrimSpace(u.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(u.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(u.Company) == "" {
		missing = append(missing, "company")
	}
	if len(missing) > 0 {
		return &RequestError{Missing: missing}
	}
	return nil
}

// DerivedMetrics are heuristic projections recomputed on every generation.
// ROIPercent and PaybackDays are nil whenever projected savings do not exceed
// the assumed budget.
type DerivedMetrics struct {
	RoleTier           string   `json:"role_tier"`
	ProcessType        string   `json:"process_type"`
	HourlyRate         float64  `json:"hourly_rate"`
	AutomationFraction float64  `json:"automation_fraction"`
	TeamSize           float64  `json:"team_size"`
	TeamMultiplier     float64  `json:"team_multiplier"`
	ErrorMultiplier    float64  `json:"error_multiplier"`
	WeeklyHoursWasted  float64  `json:"weekly_hours_wasted"`
	WeeklyHoursSaved   float64  `json:"weekly_hours_saved"`
	MonthlyHoursSaved  float64  `json:"monthly_hours_saved"`
	MonthlyBudget      float64  `json:"monthly_budget"`
	MonthlySavings     float64  `json:"monthly_savings"`
	MonthlySavingsLow  float64  `json:"monthly_savings_low"`
	MonthlySavingsHigh float64  `json:"monthly_savings_high"`
	AnnualSavings      float64  `json:"annual_savings"`
	ROIPercent         *float64 `json:"roi_percent,omitempty"`
	PaybackDays        *int     `json:"payback_days,omitempty"`
}

type PainPoint struct {
	Description    string `json:"description"`
	Impact         string `json:"impact"`
	QuantifiedLoss string `json:"quantified_loss"`
	Urgency        int    `json:"urgency"`
}

type DiagnosticOutput struct {
	PainPoints         []PainPoint `json:"pain_points"`
	QuantifiedImpact   string      `json:"quantified_impact"`
	UrgencyMessage     string      `json:"urgency_message"`
	PrimaryOpportunity string      `json:"primary_opportunity"`
	Defaulted          bool        `json:"defaulted"`
}

type QuickWin struct {
	Week       int      `json:"week"`
	Action     string   `json:"action"`
	Steps      []string `json:"steps"`
	Outcome    string   `json:"outcome"`
	Difficulty string   `json:"difficulty"`
}

type MonthlyMilestone struct {
	Month   int    `json:"month"`
	Goal    string `json:"goal"`
	Outcome string `json:"outcome"`
	Metric  string `json:"metric"`
}

type QuarterlyVision struct {
	Vision   string   `json:"vision"`
	Outcomes []string `json:"outcomes"`
}

type SuccessMetric struct {
	Name      string `json:"name"`
	Target    string `json:"target"`
	Timeframe string `json:"timeframe"`
}

type ActionPlanOutput struct {
	QuickWins      []QuickWin         `json:"quick_wins"`
	Milestones     []MonthlyMilestone `json:"milestones"`
	Vision         QuarterlyVision    `json:"vision"`
	SuccessMetrics []SuccessMetric    `json:"success_metrics"`
	Defaulted      bool               `json:"defaulted"`
}

// NarrativeOutput carries either a directly generated Report or the prose
// fragments the orchestrator compiles into one.
type NarrativeOutput struct {
	DirectReport *Report `json:"direct_report,omitempty"`
	CurrentState string  `json:"current_state"`
	Journey      string  `json:"journey"`
	FutureState  string  `json:"future_state"`
	// Motivation is ordered productivity, team, leadership, growth.
	Motivation   []string `json:"motivation"`
	CallToAction string   `json:"call_to_action"`
	Defaulted    bool     `json:"defaulted"`
}

// Report is the canonical document handed to storage and callers.
type Report struct {
	ExecutiveSummary      string         `json:"executive_summary"`
	DepartmentChallenges  []string       `json:"department_challenges"`
	CareerImpact          CareerImpact   `json:"career_impact"`
	QuickWins             QuickWins      `json:"quick_wins"`
	ImplementationRoadmap []RoadmapPhase `json:"implementation_roadmap"`
}

type CareerImpact struct {
	Productivity string `json:"productivity"`
	Team         string `json:"team"`
	Leadership   string `json:"leadership"`
	Growth       string `json:"growth"`
}

type QuickWins struct {
	Actions []QuickWinAction `json:"actions"`
	Goals   []QuickWinGoal   `json:"goals"`
}

type QuickWinAction struct {
	Action string `json:"action"`
	Impact string `json:"impact"`
}

type QuickWinGoal struct {
	Goal    string `json:"goal"`
	Outcome string `json:"outcome"`
}

type RoadmapPhase struct {
	Phase       string `json:"phase"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	Benefit     string `json:"benefit"`
}

// Canonical top-level keys, in document order.
const (
	FieldExecutiveSummary      = "executive_summary"
	FieldDepartmentChallenges  = "department_challenges"
	FieldCareerImpact          = "career_impact"
	FieldQuickWins             = "quick_wins"
	FieldImplementationRoadmap = "implementation_roadmap"
)

var RequiredReportFields = []string{
	FieldExecutiveSummary,
	FieldDepartmentChallenges,
	FieldCareerImpact,
	FieldQuickWins,
	FieldImplementationRoadmap,
}

// MissingFields lists the top-level sections that are empty.
func (r *Report) MissingFields() []string {
	if r == nil {
		return append([]string(nil), RequiredReportFields...)
	}
	var missing []string
	if strings.TrimSpace(r.ExecutiveSummary) == "" {
		missing = append(missing, FieldExecutiveSummary)
	}
	if countNonEmpty(r.DepartmentChallenges) == 0 {
		missing = append(missing, FieldDepartmentChallenges)
	}
	if r.CareerImpact.isEmpty() {
		missing = append(missing, FieldCareerImpact)
	}
	if len(r.QuickWins.Actions) == 0 && len(r.QuickWins.Goals) == 0 {
		missing = append(missing, FieldQuickWins)
	}
	if len(r.ImplementationRoadmap) == 0 {
		missing = append(missing, FieldImplementationRoadmap)
	}
	return missing
}

// Validate reports a *ValidationError when any section is empty.
func (r *Report) Validate() error {
	if missing := r.MissingFields(); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func (c CareerImpact) isEmpty() bool {
	return strings.TrimSpace(c.Productivity) == "" &&
		strings.TrimSpace(c.Team) == "" &&
		strings.TrimSpace(c.Leadership) == "" &&
		strings.TrimSpace(c.Growth) == ""
}

func countNonEmpty(items []string) int {
	n := 0
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// GenerationAttempt records one cascade tier run.
type GenerationAttempt struct {
	Tier    Tier          `json:"tier"`
	Success bool          `json:"success"`
	Elapsed time.Duration `json:"elapsed"`
	Error   string        `json:"error,omitempty"`
}
