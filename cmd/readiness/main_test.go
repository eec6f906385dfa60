package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/joelkehle/aireadiness/internal/config"
	"github.com/joelkehle/aireadiness/internal/readiness"
)

const sampleSubmission = `{
  "first_name": "Ana",
  "email": "ana@example.com",
  "company": "Acme",
  "role": "Operations Manager",
  "language": "es-MX",
  "responses": {
    "weekly_manual_hours": "10_20",
    "process_type": "reporting",
    "budget": "500_2000",
    "tools": ["email", "crm"]
  }
}`

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("READINESS_LOG_LEVEL", "error")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("READINESS_LLM_API_KEY", "")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func writeSubmission(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "submission.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleSubmission), 0o644))
	return path
}

func TestScoreCommand(t *testing.T) {
	out := runCommand(t, "score", "--input", writeSubmission(t))

	var got struct {
		Score     int            `json:"score"`
		Readiness string         `json:"readiness"`
		Metrics   map[string]any `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Greater(t, got.Score, 0)
	assert.NotEmpty(t, got.Readiness)
	assert.Equal(t, "reporting", got.Metrics["process_type"])
}

func TestGenerateOfflineCommand(t *testing.T) {
	out := runCommand(t, "generate", "--offline", "--input", writeSubmission(t))

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "synthesized", got["tier"])
	assert.Equal(t, false, got["persisted"])
	assert.True(t, strings.HasPrefix(got["id"].(string), "local-"))
	report := got["report"].(map[string]any)
	assert.Contains(t, report["executive_summary"], "Ana")
}

func TestGenerateRejectsIncompleteSubmission(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"first_name":"Ana"}`), 0o644))

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"generate", "--offline", "--input", path, "--env-file", ""})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestNewAppWiresTwoCaches(t *testing.T) {
	t.Setenv("READINESS_REDIS_ADDRESS", "")
	t.Setenv("READINESS_LOG_LEVEL", "error")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("READINESS_LLM_API_KEY", "")
	cfg, err := config.Load(config.WithEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, err)
	require.Empty(t, cfg.Redis.Address)

	a, err := newApp(context.Background(), cfg, zaptest.NewLogger(t), appOptions{offline: true, skipStore: true})
	require.NoError(t, err)
	defer a.Close()
	require.Len(t, a.caches, 2)
	assert.NotSame(t, a.caches[0], a.caches[1])

	res, err := a.cascade.Generate(context.Background(), readiness.UserContext{
		FirstName: "Ana", Email: "ana@example.com", Company: "Acme",
	})
	require.NoError(t, err)
	for i, c := range a.caches {
		_, ok, err := c.Get(context.Background(), readiness.ReportCacheKey(res.ID))
		require.NoError(t, err)
		assert.True(t, ok, "cache %d", i)
	}
}
