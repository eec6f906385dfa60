package readiness

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionCard         QuestionType = "card"
	QuestionScale        QuestionType = "scale"
	QuestionSlider       QuestionType = "slider"
	QuestionMultiSelect  QuestionType = "multi_select"
	QuestionText         QuestionType = "text"
)

// Question ids the heuristics read directly.
const (
	QuestionRole               = "role"
	QuestionCompanySize        = "company_size"
	QuestionTeamSize           = "team_size"
	QuestionWeeklyHours        = "weekly_manual_hours"
	QuestionProcessType        = "process_type"
	QuestionErrorImpact        = "error_impact"
	QuestionAIUsage            = "ai_usage"
	QuestionDataReadiness      = "data_readiness"
	QuestionTools              = "tools"
	QuestionLeadershipSupport  = "leadership_support"
	QuestionBudget             = "budget"
	QuestionApprovalProcess    = "approval_process"
	QuestionBiggestChallenge   = "biggest_challenge"
	QuestionProcessDescription = "process_description"
)

// QuestionSpec describes one quiz question. Options are ordered from the
// lowest to the highest readiness signal.
type QuestionSpec struct {
	ID      string       `yaml:"id" json:"id"`
	Type    QuestionType `yaml:"type" json:"type"`
	Prompt  string       `yaml:"prompt" json:"prompt"`
	Options []string     `yaml:"options,omitempty" json:"options,omitempty"`
	Weight  float64      `yaml:"weight" json:"weight"`
	Min     float64      `yaml:"min,omitempty" json:"min,omitempty"`
	Max     float64      `yaml:"max,omitempty" json:"max,omitempty"`
}

func DefaultQuestionBank() []QuestionSpec {
	return []QuestionSpec{
		{ID: QuestionRole, Type: QuestionText, Prompt: "What is your job title?"},
		{ID: QuestionCompanySize, Type: QuestionCard, Prompt: "How many people work at your company?", Weight: 1,
			Options: []string{"1_10", "11_50", "51_200", "201_1000", "1000_plus"}},
		{ID: QuestionTeamSize, Type: QuestionSingleChoice, Prompt: "How many people are on your team?", Weight: 1,
			Options: []string{"just_me", "2_5", "6_15", "16_50", "50_plus"}},
		{ID: QuestionWeeklyHours, Type: QuestionSingleChoice, Prompt: "How many hours per week go to repetitive manual work?", Weight: 1.5,
			Options: []string{"20_plus", "10_20", "5_10", "under_5"}},
		{ID: QuestionProcessType, Type: QuestionCard, Prompt: "Which process takes the most manual effort?", Weight: 1,
			Options: []string{"other", "communication", "coordination", "scheduling", "customer_service", "documentation", "analysis", "reporting", "data_entry"}},
		{ID: QuestionErrorImpact, Type: QuestionSingleChoice, Prompt: "How costly are errors in that process?", Weight: 1,
			Options: []string{"critical", "high", "medium", "low"}},
		{ID: QuestionAIUsage, Type: QuestionCard, Prompt: "How does your team use AI today?", Weight: 2,
			Options: []string{"never", "experimenting", "some_tasks", "daily", "embedded"}},
		{ID: QuestionDataReadiness, Type: QuestionSingleChoice, Prompt: "How organized is your data?", Weight: 2,
			Options: []string{"scattered", "spreadsheets", "centralized", "integrated"}},
		{ID: QuestionTools, Type: QuestionMultiSelect, Prompt: "Which tools does your team already use?", Weight: 1,
			Options: []string{"email", "spreadsheets", "project_management", "crm", "automation_platform", "ai_assistant"}},
		{ID: QuestionLeadershipSupport, Type: QuestionScale, Prompt: "How supportive is leadership of AI adoption?", Weight: 1.5, Min: 1, Max: 5},
		{ID: QuestionBudget, Type: QuestionSingleChoice, Prompt: "What monthly budget could you dedicate to AI tooling?", Weight: 1,
			Options: []string{"none", "not_sure", "under_500", "500_2000", "2000_5000", "5000_plus"}},
		{ID: QuestionApprovalProcess, Type: QuestionSingleChoice, Prompt: "Who approves new tools?", Weight: 1,
			Options: []string{"committee", "executive", "manager_approval", "self"}},
		{ID: QuestionBiggestChallenge, Type: QuestionCard, Prompt: "What is your biggest challenge?", Weight: 0.5,
			Options: []string{"time", "errors", "costs", "data", "customers", "team"}},
		{ID: QuestionProcessDescription, Type: QuestionText, Prompt: "Describe the process you would most like to improve."},
	}
}

// LoadQuestionBank reads a YAML list of question specs.
func LoadQuestionBank(path string) ([]QuestionSpec, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var specs []QuestionSpec
	if err := yaml.Unmarshal(blob, &specs); err != nil {
		return nil, fmt.Errorf("decode question bank %s: %w", path, err)
	}
	seen := map[string]bool{}
	for i, q := range specs {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			return nil, fmt.Errorf("question %d: id is required", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("question %q: duplicate id", id)
		}
		seen[id] = true
	}
	return specs, nil
}
