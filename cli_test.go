package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-ai-assistant/config"
)

func setTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("GOOGLE_GEMINI_API_KEY", "")
	t.Setenv("PROFILE_PATH", filepath.Join(dir, "user_profile.json"))
	t.Setenv("CHAT_LOG_PATH", filepath.Join(dir, "logs.csv"))
	t.Setenv("CHAT_LOG_DSN", "")
	t.Setenv("TABLES_FILE", "")
	return dir
}

func TestAskCommand_AnswersCalculatorCommands(t *testing.T) {
	dir := setTestEnv(t)

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"ask", "bmi", "70", "175"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "Your BMI is 22.9, which is in the normal range.\n", out.String())

	data, err := os.ReadFile(filepath.Join(dir, "logs.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Timestamp,User Input,AI Response")
	assert.Contains(t, string(data), "bmi 70 175")
}

func TestAskCommand_FallbackWithoutKeyApologizes(t *testing.T) {
	setTestEnv(t)

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"ask", "How", "are", "you", "today?"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "trouble reaching the assistant")
}

func TestCheckLLM_MissingKey(t *testing.T) {
	setTestEnv(t)

	root := newRootCmd()
	root.SetArgs([]string{"check-llm"})

	assert.Error(t, root.Execute())
}

func TestNewApp_SQLiteProfileBackend(t *testing.T) {
	dir := setTestEnv(t)
	t.Setenv("PROFILE_BACKEND", "sqlite")
	t.Setenv("PROFILE_PATH", filepath.Join(dir, "profile.db"))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"ask", "profile", "age", "30"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Saved age: 30.")
}

func TestNewApp_WiresConversationLogAndDBStats(t *testing.T) {
	dir := setTestEnv(t)
	t.Setenv("PROFILE_BACKEND", "sqlite")
	t.Setenv("PROFILE_PATH", filepath.Join(dir, "profile.db"))

	ctx := context.Background()
	a, err := newApp(ctx, config.Load(), false)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	a.chat.Respond(ctx, "water 70", nil)

	require.NotNil(t, a.logs)
	logs, err := a.logs.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "water 70", logs[0].UserInput)

	families, err := a.metrics.Registry().Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["go_sql_open_connections"], "db stats collector registered")
}
