package readiness

import (
	"context"
	"errors"
	"sync"
	"time"
)

// queueGenerator returns queued responses in order and records prompts.
// A queued error is returned instead of text.
type queueGenerator struct {
	mu        sync.Mutex
	responses []any
	prompts   []string
}

func newQueue(responses ...any) *queueGenerator {
	return &queueGenerator{responses: responses}
}

func (q *queueGenerator) Generate(_ context.Context, prompt string) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.prompts = append(q.prompts, prompt)
	if len(q.responses) == 0 {
		return "", errors.New("queue exhausted")
	}
	next := q.responses[0]
	q.responses = q.responses[1:]
	switch v := next.(type) {
	case error:
		return "", v
	case string:
		return v, nil
	default:
		return "", errors.New("unsupported queued value")
	}
}

type memoryStore struct {
	mu       sync.Mutex
	failures int
	saves    int
	records  map[string]StoredReport
	getErr   error
}

func newMemoryStore() *memoryStore { return &memoryStore{records: map[string]StoredReport{}} }

func (s *memoryStore) Save(_ context.Context, rec StoredReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.failures > 0 {
		s.failures--
		return errors.New("database is locked")
	}
	s.records[rec.ID] = rec
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (StoredReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return StoredReport{}, s.getErr
	}
	rec, ok := s.records[id]
	if !ok {
		return StoredReport{}, ErrReportNotFound
	}
	return rec, nil
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]string
	setErr  error
}

func newMapCache() *mapCache { return &mapCache{entries: map[string]string{}} }

func (c *mapCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	return nil
}

func (c *mapCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

func sampleUser(lang string) UserContext {
	uc := UserContext{
		FirstName: "Dana",
		LastName:  "Lee",
		Email:     "dana@example.com",
		Company:   "Northwind",
		Role:      "Finance Manager",
		Language:  lang,
		Responses: map[string]Answer{
			QuestionWeeklyHours:       TextAnswer("10_20"),
			QuestionProcessType:       TextAnswer("reporting"),
			QuestionTeamSize:          TextAnswer("6_15"),
			QuestionErrorImpact:       TextAnswer("high"),
			QuestionAIUsage:           TextAnswer("experimenting"),
			QuestionBudget:            TextAnswer("under_500"),
			QuestionApprovalProcess:   TextAnswer("manager_approval"),
			QuestionBiggestChallenge:  TextAnswer("time"),
			QuestionTools:             ListAnswer("email", "spreadsheets"),
			QuestionLeadershipSupport: TextAnswer("4"),
		},
	}
	uc.Score = ScoreAnswers(uc.Responses)
	return uc
}

const canonicalJSON = `{
  "executive_summary": "Northwind can reclaim fifteen hours a week by automating monthly reporting.",
  "department_challenges": ["Month-end reports are assembled by hand", "Data lives in five spreadsheets"],
  "career_impact": {
    "productivity": "You get Friday afternoons back.",
    "team": "Analysts move to forecasting.",
    "leadership": "You lead the first automation pilot.",
    "growth": "You become the go-to person for AI in finance."
  },
  "quick_wins": {
    "actions": [{"action": "Draft the variance commentary with an assistant", "impact": "Saves two hours per close"}],
    "goals": [{"goal": "Automate one report", "outcome": "Close two days faster"}]
  },
  "implementation_roadmap": [
    {"phase": "Foundation", "duration": "Days 1-30", "description": "Pick one report.", "benefit": "Quick proof"},
    {"phase": "Expansion", "duration": "Days 31-60", "description": "Add two more.", "benefit": "Compounding savings"},
    {"phase": "Scale", "duration": "Days 61-90", "description": "Train the team.", "benefit": "Durable habit"}
  ]
}`

const diagnosticJSON = `{
  "pain_points": [
    {"description": "Reports are rebuilt by hand every month", "impact": "Two analysts lose a week", "urgency": 9},
    {"description": "Spreadsheet errors reach leadership", "impact": "Trust in numbers drops", "urgency": 6}
  ],
  "quantified_impact": "About 15 hours a week.",
  "urgency_message": "Close season starts in three weeks.",
  "primary_opportunity": "Automated report assembly."
}`

const planningJSON = `{
  "quick_wins": [
    {"week": 1, "action": "Summarize last month's variance notes with an assistant", "steps": ["Export notes", "Prompt"], "outcome": "Two hours saved", "difficulty": "easy"},
    {"week": "Week 2", "action": "Template the board pack", "outcome": "Consistent formatting", "difficulty": "medium"}
  ],
  "monthly_milestones": [
    {"month": 1, "goal": "One report automated", "outcome": "Close one day faster", "metric": "Hours per close"},
    {"month": 2, "goal": "Three reports automated", "outcome": "Analysts freed for forecasting", "metric": "Reports automated"}
  ],
  "quarterly_vision": {"vision": "Reporting runs itself.", "outcomes": ["Faster close"]},
  "success_metrics": [{"name": "Hours saved", "target": "15/week", "timeframe": "90 days"}]
}`

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
