package readiness

import (
	"regexp"
	"strconv"
	"strings"
)

// Role tiers in precedence order; the first tier with a matching keyword wins.
// Hourly rates decrease along the same order, ending at the default tier.
type RoleTier struct {
	Name       string
	Keywords   []string
	HourlyRate float64
	Manager    bool
}

const (
	RoleExecutive   = "executive"
	RoleManager     = "manager"
	RoleCoordinator = "coordinator"
	RoleAnalyst     = "analyst"
	RoleDefault     = "default"
)

var roleTiers = []RoleTier{
	{Name: RoleExecutive, HourlyRate: 150, Manager: true, Keywords: []string{
		"ceo", "cto", "cfo", "coo", "cmo", "cio", "chief", "founder", "owner", "president", "vp", "vice president", "director", "partner",
		"director general", "presidente", "fundador", "dueño", "gerente general",
	}},
	{Name: RoleManager, HourlyRate: 85, Manager: true, Keywords: []string{
		"manager", "head of", "lead", "supervisor", "principal",
		"gerente", "jefe", "líder", "lider", "responsable",
	}},
	{Name: RoleCoordinator, HourlyRate: 65, Keywords: []string{
		"coordinator", "administrator", "assistant", "specialist", "officer", "associate",
		"coordinador", "coordinadora", "administrador", "administradora", "asistente", "especialista",
	}},
	{Name: RoleAnalyst, HourlyRate: 55, Keywords: []string{
		"analyst", "engineer", "developer", "accountant", "scientist", "consultant",
		"analista", "ingeniero", "ingeniera", "desarrollador", "contador", "contadora", "consultor",
	}},
}

var defaultRoleTier = RoleTier{Name: RoleDefault, HourlyRate: 45}

// ClassifyRole returns the role tier for a free-text job title.
func ClassifyRole(title string) RoleTier {
	t := " " + strings.ToLower(strings.TrimSpace(title)) + " "
	if strings.TrimSpace(t) == "" {
		return defaultRoleTier
	}
	for _, tier := range roleTiers {
		for _, kw := range tier.Keywords {
			if containsWord(t, kw) {
				return tier
			}
		}
	}
	return defaultRoleTier
}

// containsWord matches kw on word boundaries so "vp" does not match "mvp2".
func containsWord(haystack, kw string) bool {
	idx := strings.Index(haystack, kw)
	for idx >= 0 {
		before := idx == 0 || !isWordByte(haystack[idx-1])
		end := idx + len(kw)
		after := end >= len(haystack) || !isWordByte(haystack[end])
		if before && after {
			return true
		}
		next := strings.Index(haystack[idx+1:], kw)
		if next < 0 {
			return false
		}
		idx += next + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

type ProcessProfile struct {
	Type               string
	AutomationFraction float64
	Keywords           []string
}

const (
	ProcessDataEntry       = "data_entry"
	ProcessReporting       = "reporting"
	ProcessDocumentation   = "documentation"
	ProcessScheduling      = "scheduling"
	ProcessCustomerService = "customer_service"
	ProcessAnalysis        = "analysis"
	ProcessCoordination    = "coordination"
	ProcessCommunication   = "communication"
	ProcessGeneral         = "general"
)

// Ordered highest automation potential first.
var processProfiles = []ProcessProfile{
	{Type: ProcessDataEntry, AutomationFraction: 0.70, Keywords: []string{"data_entry", "data entry", "entry", "input", "typing", "transcri", "captura", "ingreso de datos"}},
	{Type: ProcessReporting, AutomationFraction: 0.60, Keywords: []string{"report", "dashboard", "informe", "reporte"}},
	{Type: ProcessDocumentation, AutomationFraction: 0.55, Keywords: []string{"document", "paperwork", "contract", "invoice", "documenta", "factura", "contrato"}},
	{Type: ProcessScheduling, AutomationFraction: 0.50, Keywords: []string{"schedul", "calendar", "booking", "agenda", "citas"}},
	{Type: ProcessCustomerService, AutomationFraction: 0.45, Keywords: []string{"customer", "support", "ticket", "cliente", "soporte"}},
	{Type: ProcessAnalysis, AutomationFraction: 0.45, Keywords: []string{"analy", "research", "forecast", "análisis", "analisis", "investiga"}},
	{Type: ProcessCoordination, AutomationFraction: 0.40, Keywords: []string{"coordinat", "handoff", "approval", "workflow", "project", "coordina", "aprobaci"}},
	{Type: ProcessCommunication, AutomationFraction: 0.30, Keywords: []string{"communicat", "email", "meeting", "message", "comunica", "correo", "reunion", "reunión"}},
}

var generalProcess = ProcessProfile{Type: ProcessGeneral, AutomationFraction: 0.30}

// ClassifyProcess maps a process-type answer to its automation profile.
func ClassifyProcess(answer string) ProcessProfile {
	a := strings.ToLower(strings.TrimSpace(answer))
	if a == "" {
		return generalProcess
	}
	key := normalizeKey(a)
	for _, p := range processProfiles {
		if key == p.Type {
			return p
		}
	}
	for _, p := range processProfiles {
		for _, kw := range p.Keywords {
			if strings.Contains(a, kw) {
				return p
			}
		}
	}
	return generalProcess
}

const (
	teamBaseline      = 5.0
	teamMultiplierCap = 5.0
	defaultTeamSize   = teamBaseline
)

var teamSizeBrackets = map[string]float64{
	"just_me": 1,
	"2_5":     4,
	"6_15":    10,
	"16_50":   30,
	"50_plus": 75,
}

var errorMultipliers = map[string]float64{
	"critical": 1.5,
	"high":     1.25,
	"medium":   1.1,
	"low":      1.0,
}

const defaultErrorMultiplier = 1.1

var weeklyHourBrackets = map[string]float64{
	"under_5": 3,
	"5_10":    7.5,
	"10_20":   15,
	"20_plus": 25,
}

const defaultWeeklyHours = 10.0

var budgetBrackets = map[string]float64{
	"none":      0,
	"not_sure":  1000,
	"under_500": 300,
	"500_2000":  1000,
	"2000_5000": 3500,
	"5000_plus": 7500,
}

const defaultMonthlyBudget = 1000.0

var firstNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// bracketValue resolves an answer against a bracket table, then falls back to
// the first number in the text, then to def.
func bracketValue(answer string, table map[string]float64, def float64) float64 {
	key := normalizeKey(answer)
	if key == "" {
		return def
	}
	if v, ok := table[key]; ok {
		return v
	}
	if m := firstNumber.FindString(key); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil && v >= 0 {
			return v
		}
	}
	return def
}

func errorMultiplierFor(answer string) float64 {
	key := normalizeKey(answer)
	for _, tier := range []string{"critical", "high", "medium", "low"} {
		if strings.Contains(key, tier) {
			return errorMultipliers[tier]
		}
	}
	return defaultErrorMultiplier
}

// Authority tiers derived from the approval-process answer.
const (
	AuthorityDecisionMaker = "decision_maker"
	AuthorityInfluencer    = "influencer"
	AuthorityContributor   = "contributor"
)

func ClassifyAuthority(answer string) string {
	key := normalizeKey(answer)
	switch {
	case key == "self" || strings.Contains(key, "i_decide") || strings.Contains(key, "myself") || strings.Contains(key, "owner"):
		return AuthorityDecisionMaker
	case strings.Contains(key, "committee") || strings.Contains(key, "board") || strings.Contains(key, "procurement") || strings.Contains(key, "executive"):
		return AuthorityContributor
	default:
		return AuthorityInfluencer
	}
}

// Readiness tiers by score threshold.
const (
	ReadinessAdvanced    = "advanced"
	ReadinessProgressing = "progressing"
	ReadinessDeveloping  = "developing"
	ReadinessBeginning   = "beginning"
)

func ClassifyReadiness(score int) string {
	switch {
	case score >= 80:
		return ReadinessAdvanced
	case score >= 60:
		return ReadinessProgressing
	case score >= 40:
		return ReadinessDeveloping
	default:
		return ReadinessBeginning
	}
}

// Focus areas from the biggest-challenge answer.
const (
	FocusEfficiency    = "efficiency"
	FocusQuality       = "quality"
	FocusCost          = "cost"
	FocusInsight       = "insight"
	FocusCustomer      = "customer"
	FocusCollaboration = "collaboration"
)

var focusKeywords = []struct {
	focus    string
	keywords []string
}{
	{FocusQuality, []string{"error", "mistake", "quality", "rework", "errores", "calidad"}},
	{FocusCost, []string{"cost", "budget", "expens", "money", "costo", "presupuesto", "gasto"}},
	{FocusInsight, []string{"data", "report", "insight", "visibility", "datos", "informe"}},
	{FocusCustomer, []string{"customer", "client", "response", "cliente"}},
	{FocusCollaboration, []string{"team", "communicat", "handoff", "silo", "equipo", "comunica"}},
	{FocusEfficiency, []string{"time", "manual", "slow", "repetit", "tiempo", "lento"}},
}

func ClassifyFocus(answer string) string {
	a := strings.ToLower(answer)
	for _, f := range focusKeywords {
		for _, kw := range f.keywords {
			if strings.Contains(a, kw) {
				return f.focus
			}
		}
	}
	return FocusEfficiency
}

// Process-description buckets for the free-text answer.
const (
	BucketDocumentation = "documentation"
	BucketDataEntry     = "data_entry"
	BucketCoordination  = "coordination"
	BucketAnalysis      = "analysis"
	BucketCommunication = "communication"
	BucketGeneral       = "general"
)

var bucketKeywords = []struct {
	bucket   string
	keywords []string
}{
	{BucketDataEntry, []string{"data entry", "enter data", "typing", "copy", "paste", "spreadsheet", "excel", "input", "captur", "transcrib", "hoja de cálculo", "copiar"}},
	{BucketDocumentation, []string{"document", "report", "contract", "proposal", "invoice", "write", "draft", "documento", "contrato", "propuesta", "factura", "redact"}},
	{BucketAnalysis, []string{"analy", "forecast", "metric", "insight", "trend", "research", "análisis", "analisis", "pronóstico", "tendencia"}},
	{BucketCoordination, []string{"schedul", "coordinat", "approv", "handoff", "follow up", "follow-up", "track", "calendar", "agenda", "coordin", "seguimiento", "aprob"}},
	{BucketCommunication, []string{"email", "meeting", "call", "message", "slack", "respond", "correo", "reunión", "reunion", "llamada", "mensaje"}},
}

// ClassifyProcessDescription buckets a free-text description; "" yields general.
func ClassifyProcessDescription(text string) string {
	t := strings.ToLower(text)
	if strings.TrimSpace(t) == "" {
		return BucketGeneral
	}
	best, bestHits := BucketGeneral, 0
	for _, b := range bucketKeywords {
		hits := 0
		for _, kw := range b.keywords {
			if strings.Contains(t, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = b.bucket, hits
		}
	}
	return best
}
