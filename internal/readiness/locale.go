package readiness

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
)

var (
	supportedTags = []language.Tag{language.English, language.Spanish}
	supportedLang = []string{LanguageEnglish, LanguageSpanish}
	langMatcher   = language.NewMatcher(supportedTags)
)

// ResolveLanguage maps any BCP-47 tag onto a supported catalog language,
// defaulting to English.
func ResolveLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return LanguageEnglish
	}
	t, err := language.Parse(tag)
	if err != nil {
		return LanguageEnglish
	}
	_, idx, conf := langMatcher.Match(t)
	if conf == language.No || idx < 0 || idx >= len(supportedLang) {
		return LanguageEnglish
	}
	return supportedLang[idx]
}

type phaseTemplate struct {
	Name     string
	Duration string
	Benefit  string
}

type catalog struct {
	lang         string
	numberFmt    string
	languageName string

	painPoints          []PainPoint
	impactFmt           string // weekly hours, monthly savings
	urgencyDefault      string
	opportunityFmt      string // process label
	lossFmt             string // amount
	quickWins           []QuickWin
	milestones          []MonthlyMilestone
	vision              QuarterlyVision
	successMetrics      []SuccessMetric
	currentStateFmt     string // company
	journey             string
	futureState         string
	motivation          [4]string
	callToAction        string
	phases              [3]phaseTemplate
	processLabels       map[string]string
	readinessSummaryFmt map[string]string // name, company, score
	metricsSentenceFmt  string            // weekly hours saved, monthly savings, annual savings
	roiSentenceFmt      string            // roi percent, payback days
	noROISentence       string
	authoritySentence   map[string]string
	focusChallenge      map[string]string
	focusAction         map[string]QuickWinAction
	bucketChallenge     map[string]string
	bucketAction        map[string]QuickWinAction
	bucketTooling       map[string]string
	careerManager       CareerImpact
	careerIndividual    CareerImpact
	goals               []QuickWinGoal
	roadmapDescFmt      [3]string // process label
	minimalSummaryFmt   string    // name, company, score
	minimalChallenge    string
	minimalCareer       CareerImpact
	minimalAction       QuickWinAction
	minimalGoal         QuickWinGoal
	minimalPhase        RoadmapPhase
	defaultChallenges   []string
	defaultSummary      string
	organization        string
	someone             string
	firstStepFmt        string // first quick win action
}

func catalogFor(lang string) *catalog {
	if ResolveLanguage(lang) == LanguageSpanish {
		return spanishCatalog
	}
	return englishCatalog
}

func (c *catalog) money(v float64) string {
	return "$" + humanize.FormatFloat(c.numberFmt, v)
}

func (c *catalog) hours(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	s := fmt.Sprintf("%.1f", v)
	if c.lang == LanguageSpanish {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

func (c *catalog) processLabel(processType string) string {
	if l, ok := c.processLabels[processType]; ok {
		return l
	}
	return c.processLabels[ProcessGeneral]
}

var englishCatalog = &catalog{
	lang:         LanguageEnglish,
	numberFmt:    "#,###.",
	languageName: "English",
	painPoints: []PainPoint{
		{Description: "Repetitive manual work consumes hours every week", Impact: "Skilled people spend time on tasks software could handle", Urgency: 8},
		{Description: "Information is scattered across tools and inboxes", Impact: "Decisions slow down while people search for data", Urgency: 7},
		{Description: "Errors from manual handoffs create rework", Impact: "Rework erodes margins and customer trust", Urgency: 7},
	},
	impactFmt:       "Your team loses about %s hours a week to manual work, roughly %s a month in productive capacity.",
	urgencyDefault:  "Every month without automation compounds the cost. Teams that start small now build the skills that make larger wins possible next quarter.",
	opportunityFmt:  "Automating %s is the fastest path to measurable time savings.",
	lossFmt:         "≈ %s/month",
	quickWins: []QuickWin{
		{Week: 1, Action: "Use an AI assistant to draft one recurring document", Steps: []string{"Pick the document you write most often", "Write a reusable prompt with your format", "Compare the draft against your usual version"}, Outcome: "One hour saved in the first week", Difficulty: "easy"},
		{Week: 2, Action: "Template your three most common emails", Steps: []string{"Collect recent examples", "Generate templates with placeholders", "Share them with the team"}, Outcome: "Faster, consistent replies", Difficulty: "easy"},
		{Week: 3, Action: "Automate one data transfer between two tools", Steps: []string{"Map the fields that are copied by hand", "Configure a no-code automation", "Check results daily for a week"}, Outcome: "Fewer copy-paste errors", Difficulty: "medium"},
	},
	milestones: []MonthlyMilestone{
		{Month: 1, Goal: "Document the target process and baseline its time cost", Outcome: "A clear before-and-after measure", Metric: "Hours per week on the process"},
		{Month: 2, Goal: "Run a pilot automation with two team members", Outcome: "Validated savings on real work", Metric: "Hours saved per person"},
		{Month: 3, Goal: "Roll the pilot out to the whole team", Outcome: "Savings at team scale", Metric: "Monthly hours saved"},
	},
	vision: QuarterlyVision{
		Vision:   "In 90 days your team runs its core process with AI support, spending its time on judgment instead of repetition.",
		Outcomes: []string{"A repeatable automation playbook", "Measured time savings", "A team confident using AI tools"},
	},
	successMetrics: []SuccessMetric{
		{Name: "Hours saved per week", Target: "25% of manual time", Timeframe: "90 days"},
		{Name: "Error rate on the target process", Target: "Down 30%", Timeframe: "90 days"},
		{Name: "Team members using AI weekly", Target: "80%", Timeframe: "60 days"},
	},
	currentStateFmt: "Today %s relies on manual steps that slow the team down and hide the real cost of repetitive work.",
	journey:         "Start with one process, prove the savings, then extend the same approach across the team.",
	futureState:     "Routine work runs in the background while people focus on customers, strategy and growth.",
	motivation: [4]string{
		"You reclaim hours every week for high-value work.",
		"Your team works with less friction and fewer handoff errors.",
		"You become the person who brought measurable AI results to the organization.",
		"You build a skill set that is in demand across every industry.",
	},
	callToAction: "Pick the first quick win this week and measure the time it saves.",
	phases: [3]phaseTemplate{
		{Name: "Phase 1: Foundation", Duration: "Days 1-30", Benefit: "Early time savings and a measured baseline"},
		{Name: "Phase 2: Expansion", Duration: "Days 31-60", Benefit: "Proven results across more of the team"},
		{Name: "Phase 3: Scale", Duration: "Days 61-90", Benefit: "Sustained savings and a repeatable playbook"},
	},
	processLabels: map[string]string{
		ProcessDataEntry:       "data entry",
		ProcessReporting:       "reporting",
		ProcessDocumentation:   "documentation",
		ProcessScheduling:      "scheduling",
		ProcessCustomerService: "customer service",
		ProcessAnalysis:        "analysis",
		ProcessCoordination:    "coordination",
		ProcessCommunication:   "communication",
		ProcessGeneral:         "your most repetitive process",
	},
	readinessSummaryFmt: map[string]string{
		ReadinessAdvanced:    "%s, %s is ahead of most organizations with a readiness score of %d. The opportunity now is to scale what works and turn isolated wins into a system.",
		ReadinessProgressing: "%s, %s has a solid foundation with a readiness score of %d. A few focused automations will turn that foundation into visible results.",
		ReadinessDeveloping:  "%s, %s is building momentum with a readiness score of %d. Targeted quick wins will prove value and earn support for the next step.",
		ReadinessBeginning:   "%s, %s is at the start of its AI journey with a readiness score of %d. Small, low-risk experiments are the right way to begin.",
	},
	metricsSentenceFmt: "Automation could save about %s hours a week, worth roughly %s a month (%s a year).",
	roiSentenceFmt:     "Against your budget that is a %s%% return, paying back in about %d days.",
	noROISentence:      "Start with free or low-cost tools so savings arrive before any spend.",
	authoritySentence: map[string]string{
		AuthorityDecisionMaker: "Because you can approve tools yourself, you can start this week.",
		AuthorityInfluencer:    "A short pilot with measured results will make approval straightforward.",
		AuthorityContributor:   "Documenting results from a small pilot gives decision makers the evidence they need.",
	},
	focusChallenge: map[string]string{
		FocusEfficiency:    "Time lost to repetitive, manual tasks limits what the team can deliver",
		FocusQuality:       "Errors in manual work cause rework and put quality at risk",
		FocusCost:          "Operating costs rise with every hour spent on routine work",
		FocusInsight:       "Data is hard to gather, so decisions rely on incomplete information",
		FocusCustomer:      "Slow responses affect customer experience and retention",
		FocusCollaboration: "Handoffs and scattered communication slow the team down",
	},
	focusAction: map[string]QuickWinAction{
		FocusEfficiency:    {Action: "List your five most repetitive weekly tasks and automate the easiest one", Impact: "Immediate hours back each week"},
		FocusQuality:       {Action: "Add an AI review step to check manual work before it ships", Impact: "Fewer errors reaching customers"},
		FocusCost:          {Action: "Measure the hours spent on one routine task and automate it", Impact: "A clear, measurable cost reduction"},
		FocusInsight:       {Action: "Use AI to summarize your weekly data into a one-page brief", Impact: "Faster, better-informed decisions"},
		FocusCustomer:      {Action: "Draft AI-assisted reply templates for common customer questions", Impact: "Faster responses and happier customers"},
		FocusCollaboration: {Action: "Generate AI meeting summaries with clear owners and next steps", Impact: "Fewer dropped handoffs"},
	},
	bucketChallenge: map[string]string{
		BucketDocumentation: "Producing documents by hand consumes time that could go to review and decisions",
		BucketDataEntry:     "Manual data entry is slow and introduces avoidable errors",
		BucketCoordination:  "Coordinating schedules, approvals and follow-ups by hand creates delays",
		BucketAnalysis:      "Preparing analysis manually delays the insights the business needs",
		BucketCommunication: "Email and meetings absorb hours that could go to focused work",
		BucketGeneral:       "The process you described depends on repetitive manual steps",
	},
	bucketAction: map[string]QuickWinAction{
		BucketDocumentation: {Action: "Create AI templates for the documents you produce most often", Impact: "First drafts in minutes instead of hours"},
		BucketDataEntry:     {Action: "Automate the transfer of data between your forms and spreadsheets", Impact: "Hours saved and fewer entry errors"},
		BucketCoordination:  {Action: "Automate reminders and status updates for approvals", Impact: "Fewer delays waiting on follow-ups"},
		BucketAnalysis:      {Action: "Use AI to produce a first-pass analysis of your recurring data", Impact: "Insights ready when decisions are made"},
		BucketCommunication: {Action: "Use AI to triage your inbox and draft routine replies", Impact: "More focused time every day"},
		BucketGeneral:       {Action: "Map the steps of your process and automate the most repetitive one", Impact: "A first measurable time saving"},
	},
	bucketTooling: map[string]string{
		BucketDocumentation: "Pair a writing assistant with shared templates.",
		BucketDataEntry:     "A no-code automation platform connected to your spreadsheets covers most cases.",
		BucketCoordination:  "Calendar and workflow automations handle most reminders without code.",
		BucketAnalysis:      "Spreadsheet AI features and a chat assistant cover first-pass analysis.",
		BucketCommunication: "Email assistants and meeting summarizers give the quickest return.",
		BucketGeneral:       "Start with a general AI assistant before buying specialized tools.",
	},
	careerManager: CareerImpact{
		Productivity: "Your team reclaims hours every week that go back into strategic work.",
		Team:         "You give your team better tools and less repetitive work, which improves morale and retention.",
		Leadership:   "Leading a measurable AI initiative positions you as a forward-thinking leader.",
		Growth:       "Experience delivering AI results strengthens your case for larger scope and responsibility.",
	},
	careerIndividual: CareerImpact{
		Productivity: "You spend less time on repetitive tasks and more on work that shows your expertise.",
		Team:         "Sharing what works helps colleagues save time too, making you a go-to resource.",
		Leadership:   "Bringing a proven improvement to your manager demonstrates initiative.",
		Growth:       "Practical AI skills make you more valuable in your current role and the next one.",
	},
	goals: []QuickWinGoal{
		{Goal: "Automate one complete process end to end", Outcome: "A repeatable example the team can copy"},
		{Goal: "Measure and report the hours saved", Outcome: "Evidence that earns support for the next phase"},
	},
	roadmapDescFmt: [3]string{
		"Baseline the time spent on %s, choose tools, and complete the first quick wins.",
		"Extend the automation of %s to more of the team and refine it based on results.",
		"Make the %s automation standard practice and identify the next process to improve.",
	},
	minimalSummaryFmt: "%s, thank you for completing the assessment for %s. Your AI readiness score is %d. Your detailed recommendations are being prepared; in the meantime, start by identifying one repetitive task your team performs every week.",
	minimalChallenge:  "Identify the repetitive tasks that take the most time each week",
	minimalCareer: CareerImpact{
		Productivity: "Automating routine work frees time for higher-value tasks.",
		Team:         "Shared tools reduce friction across the team.",
		Leadership:   "Leading a small AI pilot demonstrates initiative.",
		Growth:       "AI skills are valuable in every role.",
	},
	minimalAction: QuickWinAction{Action: "Choose one weekly task and try an AI assistant on it", Impact: "A first hands-on result"},
	minimalGoal:   QuickWinGoal{Goal: "Run a one-month pilot on a single process", Outcome: "Measured time savings"},
	minimalPhase:  RoadmapPhase{Phase: "Phase 1: Start", Duration: "Days 1-30", Description: "Pick one process and pilot an AI tool on it.", Benefit: "A measured first win"},
	defaultChallenges: []string{
		"Repetitive manual work consumes hours every week",
		"Information is scattered across tools and inboxes",
		"Errors from manual handoffs create rework",
	},
	organization:   "your organization",
	someone:        "Hello",
	firstStepFmt:   "Start this week: %s.",
	defaultSummary: "Your organization has clear opportunities to save time with AI. Start with one focused quick win, measure the result, and expand from there.",
}

var spanishCatalog = &catalog{
	lang:         LanguageSpanish,
	numberFmt:    "#.###,",
	languageName: "Spanish",
	painPoints: []PainPoint{
		{Description: "El trabajo manual repetitivo consume horas cada semana", Impact: "Personas calificadas dedican tiempo a tareas que el software podría resolver", Urgency: 8},
		{Description: "La información está dispersa entre herramientas y correos", Impact: "Las decisiones se retrasan mientras se buscan los datos", Urgency: 7},
		{Description: "Los errores en traspasos manuales generan retrabajo", Impact: "El retrabajo reduce márgenes y la confianza de los clientes", Urgency: 7},
	},
	impactFmt:      "Tu equipo pierde cerca de %s horas por semana en trabajo manual, aproximadamente %s al mes en capacidad productiva.",
	urgencyDefault: "Cada mes sin automatización acumula el costo. Los equipos que empiezan en pequeño hoy desarrollan las habilidades para lograr resultados mayores el próximo trimestre.",
	opportunityFmt: "Automatizar %s es el camino más rápido hacia ahorros de tiempo medibles.",
	lossFmt:        "≈ %s/mes",
	quickWins: []QuickWin{
		{Week: 1, Action: "Usa un asistente de IA para redactar un documento recurrente", Steps: []string{"Elige el documento que escribes con más frecuencia", "Escribe una instrucción reutilizable con tu formato", "Compara el borrador con tu versión habitual"}, Outcome: "Una hora ahorrada en la primera semana", Difficulty: "fácil"},
		{Week: 2, Action: "Crea plantillas para tus tres correos más comunes", Steps: []string{"Reúne ejemplos recientes", "Genera plantillas con campos variables", "Compártelas con el equipo"}, Outcome: "Respuestas más rápidas y consistentes", Difficulty: "fácil"},
		{Week: 3, Action: "Automatiza una transferencia de datos entre dos herramientas", Steps: []string{"Identifica los campos que se copian a mano", "Configura una automatización sin código", "Revisa los resultados a diario durante una semana"}, Outcome: "Menos errores de copiado", Difficulty: "media"},
	},
	milestones: []MonthlyMilestone{
		{Month: 1, Goal: "Documentar el proceso objetivo y medir su costo en tiempo", Outcome: "Una medida clara de antes y después", Metric: "Horas por semana en el proceso"},
		{Month: 2, Goal: "Ejecutar un piloto de automatización con dos personas", Outcome: "Ahorros validados en trabajo real", Metric: "Horas ahorradas por persona"},
		{Month: 3, Goal: "Extender el piloto a todo el equipo", Outcome: "Ahorros a escala de equipo", Metric: "Horas mensuales ahorradas"},
	},
	vision: QuarterlyVision{
		Vision:   "En 90 días tu equipo opera su proceso principal con apoyo de IA y dedica su tiempo al criterio en lugar de la repetición.",
		Outcomes: []string{"Una guía de automatización repetible", "Ahorros de tiempo medidos", "Un equipo seguro usando herramientas de IA"},
	},
	successMetrics: []SuccessMetric{
		{Name: "Horas ahorradas por semana", Target: "25% del tiempo manual", Timeframe: "90 días"},
		{Name: "Tasa de errores en el proceso objetivo", Target: "30% menos", Timeframe: "90 días"},
		{Name: "Miembros del equipo que usan IA cada semana", Target: "80%", Timeframe: "60 días"},
	},
	currentStateFmt: "Hoy %s depende de pasos manuales que frenan al equipo y ocultan el costo real del trabajo repetitivo.",
	journey:         "Empieza con un proceso, demuestra el ahorro y luego extiende el mismo enfoque a todo el equipo.",
	futureState:     "El trabajo rutinario se ejecuta en segundo plano mientras las personas se enfocan en clientes, estrategia y crecimiento.",
	motivation: [4]string{
		"Recuperas horas cada semana para trabajo de alto valor.",
		"Tu equipo trabaja con menos fricción y menos errores en los traspasos.",
		"Te conviertes en la persona que trajo resultados medibles con IA a la organización.",
		"Desarrollas habilidades muy demandadas en todas las industrias.",
	},
	callToAction: "Elige la primera victoria rápida esta semana y mide el tiempo que ahorra.",
	phases: [3]phaseTemplate{
		{Name: "Fase 1: Fundamentos", Duration: "Días 1-30", Benefit: "Primeros ahorros de tiempo y una línea base medida"},
		{Name: "Fase 2: Expansión", Duration: "Días 31-60", Benefit: "Resultados comprobados en más partes del equipo"},
		{Name: "Fase 3: Escala", Duration: "Días 61-90", Benefit: "Ahorros sostenidos y una guía repetible"},
	},
	processLabels: map[string]string{
		ProcessDataEntry:       "la captura de datos",
		ProcessReporting:       "los informes",
		ProcessDocumentation:   "la documentación",
		ProcessScheduling:      "la agenda",
		ProcessCustomerService: "la atención al cliente",
		ProcessAnalysis:        "el análisis",
		ProcessCoordination:    "la coordinación",
		ProcessCommunication:   "la comunicación",
		ProcessGeneral:         "tu proceso más repetitivo",
	},
	readinessSummaryFmt: map[string]string{
		ReadinessAdvanced:    "%s, %s está por delante de la mayoría de las organizaciones con un puntaje de preparación de %d. La oportunidad ahora es escalar lo que funciona y convertir logros aislados en un sistema.",
		ReadinessProgressing: "%s, %s tiene una base sólida con un puntaje de preparación de %d. Algunas automatizaciones enfocadas convertirán esa base en resultados visibles.",
		ReadinessDeveloping:  "%s, %s está ganando impulso con un puntaje de preparación de %d. Victorias rápidas y específicas demostrarán el valor y ganarán apoyo para el siguiente paso.",
		ReadinessBeginning:   "%s, %s está al inicio de su camino con IA con un puntaje de preparación de %d. Experimentos pequeños y de bajo riesgo son la mejor forma de comenzar.",
	},
	metricsSentenceFmt: "La automatización podría ahorrar cerca de %s horas por semana, equivalentes a unos %s al mes (%s al año).",
	roiSentenceFmt:     "Frente a tu presupuesto, eso representa un retorno de %s%% con recuperación en unos %d días.",
	noROISentence:      "Empieza con herramientas gratuitas o de bajo costo para que el ahorro llegue antes que el gasto.",
	authoritySentence: map[string]string{
		AuthorityDecisionMaker: "Como puedes aprobar herramientas tú mismo, puedes empezar esta semana.",
		AuthorityInfluencer:    "Un piloto corto con resultados medidos facilitará la aprobación.",
		AuthorityContributor:   "Documentar los resultados de un piloto pequeño da a quienes deciden la evidencia que necesitan.",
	},
	focusChallenge: map[string]string{
		FocusEfficiency:    "El tiempo perdido en tareas manuales repetitivas limita lo que el equipo puede entregar",
		FocusQuality:       "Los errores en el trabajo manual provocan retrabajo y ponen en riesgo la calidad",
		FocusCost:          "Los costos operativos aumentan con cada hora dedicada a trabajo rutinario",
		FocusInsight:       "Es difícil reunir los datos, por lo que las decisiones se basan en información incompleta",
		FocusCustomer:      "Las respuestas lentas afectan la experiencia y la retención de clientes",
		FocusCollaboration: "Los traspasos y la comunicación dispersa frenan al equipo",
	},
	focusAction: map[string]QuickWinAction{
		FocusEfficiency:    {Action: "Enumera tus cinco tareas semanales más repetitivas y automatiza la más sencilla", Impact: "Horas recuperadas de inmediato cada semana"},
		FocusQuality:       {Action: "Agrega un paso de revisión con IA antes de entregar el trabajo manual", Impact: "Menos errores que llegan a los clientes"},
		FocusCost:          {Action: "Mide las horas de una tarea rutinaria y automatízala", Impact: "Una reducción de costos clara y medible"},
		FocusInsight:       {Action: "Usa IA para resumir tus datos semanales en un informe de una página", Impact: "Decisiones más rápidas y mejor informadas"},
		FocusCustomer:      {Action: "Redacta con IA plantillas de respuesta para preguntas frecuentes de clientes", Impact: "Respuestas más rápidas y clientes más satisfechos"},
		FocusCollaboration: {Action: "Genera con IA resúmenes de reuniones con responsables y próximos pasos", Impact: "Menos traspasos perdidos"},
	},
	bucketChallenge: map[string]string{
		BucketDocumentation: "Producir documentos a mano consume tiempo que podría dedicarse a revisar y decidir",
		BucketDataEntry:     "La captura manual de datos es lenta y genera errores evitables",
		BucketCoordination:  "Coordinar agendas, aprobaciones y seguimientos a mano genera retrasos",
		BucketAnalysis:      "Preparar análisis manualmente retrasa la información que el negocio necesita",
		BucketCommunication: "El correo y las reuniones absorben horas que podrían dedicarse a trabajo enfocado",
		BucketGeneral:       "El proceso que describiste depende de pasos manuales repetitivos",
	},
	bucketAction: map[string]QuickWinAction{
		BucketDocumentation: {Action: "Crea plantillas con IA para los documentos que produces con más frecuencia", Impact: "Primeros borradores en minutos en lugar de horas"},
		BucketDataEntry:     {Action: "Automatiza la transferencia de datos entre tus formularios y hojas de cálculo", Impact: "Horas ahorradas y menos errores de captura"},
		BucketCoordination:  {Action: "Automatiza recordatorios y actualizaciones de estado para las aprobaciones", Impact: "Menos retrasos esperando seguimientos"},
		BucketAnalysis:      {Action: "Usa IA para generar un primer análisis de tus datos recurrentes", Impact: "Información lista cuando se toman las decisiones"},
		BucketCommunication: {Action: "Usa IA para clasificar tu bandeja de entrada y redactar respuestas rutinarias", Impact: "Más tiempo enfocado cada día"},
		BucketGeneral:       {Action: "Mapea los pasos de tu proceso y automatiza el más repetitivo", Impact: "Un primer ahorro de tiempo medible"},
	},
	bucketTooling: map[string]string{
		BucketDocumentation: "Combina un asistente de redacción con plantillas compartidas.",
		BucketDataEntry:     "Una plataforma de automatización sin código conectada a tus hojas de cálculo cubre la mayoría de los casos.",
		BucketCoordination:  "Las automatizaciones de calendario y flujo de trabajo resuelven la mayoría de los recordatorios sin código.",
		BucketAnalysis:      "Las funciones de IA de las hojas de cálculo y un asistente conversacional cubren el primer análisis.",
		BucketCommunication: "Los asistentes de correo y los resúmenes de reuniones dan el retorno más rápido.",
		BucketGeneral:       "Empieza con un asistente de IA general antes de comprar herramientas especializadas.",
	},
	careerManager: CareerImpact{
		Productivity: "Tu equipo recupera horas cada semana que vuelven al trabajo estratégico.",
		Team:         "Das a tu equipo mejores herramientas y menos trabajo repetitivo, lo que mejora la moral y la retención.",
		Leadership:   "Liderar una iniciativa de IA con resultados medibles te posiciona como un líder con visión.",
		Growth:       "La experiencia entregando resultados con IA fortalece tu candidatura para mayores responsabilidades.",
	},
	careerIndividual: CareerImpact{
		Productivity: "Dedicas menos tiempo a tareas repetitivas y más a trabajo que demuestra tu experiencia.",
		Team:         "Compartir lo que funciona ayuda a tus colegas a ahorrar tiempo y te convierte en un referente.",
		Leadership:   "Presentar una mejora comprobada a tu jefe demuestra iniciativa.",
		Growth:       "Las habilidades prácticas de IA te hacen más valioso en tu puesto actual y en el siguiente.",
	},
	goals: []QuickWinGoal{
		{Goal: "Automatizar un proceso completo de principio a fin", Outcome: "Un ejemplo repetible que el equipo puede copiar"},
		{Goal: "Medir y reportar las horas ahorradas", Outcome: "Evidencia que gana apoyo para la siguiente fase"},
	},
	roadmapDescFmt: [3]string{
		"Mide el tiempo dedicado a %s, elige herramientas y completa las primeras victorias rápidas.",
		"Extiende la automatización de %s a más personas del equipo y ajústala según los resultados.",
		"Convierte la automatización de %s en práctica estándar e identifica el siguiente proceso a mejorar.",
	},
	minimalSummaryFmt: "%s, gracias por completar la evaluación para %s. Tu puntaje de preparación en IA es %d. Estamos preparando tus recomendaciones detalladas; mientras tanto, empieza por identificar una tarea repetitiva que tu equipo realiza cada semana.",
	minimalChallenge:  "Identificar las tareas repetitivas que más tiempo consumen cada semana",
	minimalCareer: CareerImpact{
		Productivity: "Automatizar el trabajo rutinario libera tiempo para tareas de mayor valor.",
		Team:         "Las herramientas compartidas reducen la fricción en el equipo.",
		Leadership:   "Liderar un pequeño piloto de IA demuestra iniciativa.",
		Growth:       "Las habilidades de IA son valiosas en cualquier puesto.",
	},
	minimalAction: QuickWinAction{Action: "Elige una tarea semanal y prueba un asistente de IA en ella", Impact: "Un primer resultado práctico"},
	minimalGoal:   QuickWinGoal{Goal: "Ejecutar un piloto de un mes en un solo proceso", Outcome: "Ahorros de tiempo medidos"},
	minimalPhase:  RoadmapPhase{Phase: "Fase 1: Inicio", Duration: "Días 1-30", Description: "Elige un proceso y prueba una herramienta de IA en él.", Benefit: "Un primer logro medido"},
	defaultChallenges: []string{
		"El trabajo manual repetitivo consume horas cada semana",
		"La información está dispersa entre herramientas y correos",
		"Los errores en traspasos manuales generan retrabajo",
	},
	organization:   "tu organización",
	someone:        "Hola",
	firstStepFmt:   "Empieza esta semana: %s.",
	defaultSummary: "Tu organización tiene oportunidades claras de ahorrar tiempo con IA. Empieza con una victoria rápida, mide el resultado y amplía desde ahí.",
}
