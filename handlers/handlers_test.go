package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-ai-assistant/metrics"
	"fitness-ai-assistant/models"
	"fitness-ai-assistant/profile"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type echoResponder struct {
	calls int
}

func (e *echoResponder) Respond(_ context.Context, message string, prior []models.ChatMessage) (string, []models.ChatMessage) {
	e.calls++
	reply := "echo: " + message
	history := append(append([]models.ChatMessage{}, prior...),
		models.ChatMessage{Role: models.RoleUser, Content: message},
		models.ChatMessage{Role: models.RoleAssistant, Content: reply},
	)
	return reply, history
}

type staticLogs struct {
	logs  []models.ConversationLog
	err   error
	limit int
}

func (s *staticLogs) Recent(_ context.Context, limit int) ([]models.ConversationLog, error) {
	s.limit = limit
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.logs) {
		return s.logs[:limit], nil
	}
	return s.logs, nil
}

type brokenStore struct{}

func (brokenStore) Get(context.Context) (models.Profile, error) { return nil, errors.New("gone") }
func (brokenStore) Update(context.Context, map[string]string) error {
	return errors.New("gone")
}
func (brokenStore) Reset(context.Context) error { return errors.New("gone") }

func newTestRouter(t *testing.T, cfg RouterConfig) (*gin.Engine, *echoResponder, *metrics.Metrics) {
	t.Helper()
	store, err := profile.NewJSONStore(filepath.Join(t.TempDir(), "user_profile.json"))
	require.NoError(t, err)

	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS, cfg.RateLimitBurst = 1000, 1000
	}
	chat := &echoResponder{}
	m := metrics.NewMetrics()
	return NewRouter(New(chat, store, nil, m), cfg), chat, m
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestChat(t *testing.T) {
	router, chat, _ := newTestRouter(t, RouterConfig{})

	for _, path := range []string{"/chat", "/api/chat"} {
		rec := do(router, http.MethodPost, path,
			`{"message":"bmi 70 175","history":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp models.ChatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "echo: bmi 70 175", resp.Reply)
		assert.Len(t, resp.History, 4)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	}
	assert.Equal(t, 2, chat.calls)
}

func TestChat_BadRequests(t *testing.T) {
	router, chat, _ := newTestRouter(t, RouterConfig{})

	bodies := []string{
		`not json`,
		`{}`,
		`{"message":"   "}`,
		`{"message":"hi","history":[{"role":"system","content":"x"}]}`,
	}
	for _, body := range bodies {
		rec := do(router, http.MethodPost, "/chat", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), `"error"`, body)
	}
	assert.Zero(t, chat.calls)
}

func TestChat_RequestIDIsPropagated(t *testing.T) {
	router, _, _ := newTestRouter(t, RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestChat_RateLimited(t *testing.T) {
	router, _, _ := newTestRouter(t, RouterConfig{RateLimitRPS: 0.001, RateLimitBurst: 2})

	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, do(router, http.MethodPost, "/chat", `{"message":"water 70"}`).Code)
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health", "").Code)
	assert.Contains(t, do(router, http.MethodGet, "/metrics", "").Body.String(), "fitness_rate_limited_total 1")
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRateLimiter(1, 1, nil)
	r.now = func() time.Time { return clock }
	r.lastSweep = clock

	r.limiter("10.0.0.1")
	r.limiter("10.0.0.2")
	require.Len(t, r.visitors, 2)

	clock = clock.Add(limiterTTL / 2)
	r.limiter("10.0.0.2")

	clock = clock.Add(limiterTTL/2 + time.Second)
	r.limiter("10.0.0.3")

	assert.Len(t, r.visitors, 2)
	assert.NotContains(t, r.visitors, "10.0.0.1")
	assert.Contains(t, r.visitors, "10.0.0.2")
	assert.Contains(t, r.visitors, "10.0.0.3")
}

func TestRateLimiter_KeepsBucketForActiveClient(t *testing.T) {
	r := NewRateLimiter(0.001, 1, nil)

	assert.True(t, r.limiter("10.0.0.1").Allow())
	assert.False(t, r.limiter("10.0.0.1").Allow())
}

func TestHealthAndRoot(t *testing.T) {
	router, _, _ := newTestRouter(t, RouterConfig{FrontendDir: filepath.Join(t.TempDir(), "missing")})

	rec := do(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"running","service":"Fitness AI Assistant"}`, rec.Body.String())

	rec = do(router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"running","service":"Fitness AI Assistant","message":"Frontend not found"}`, rec.Body.String())

	rec = do(router, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>GymAI</h1>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script.js"), []byte("console.log(1)"), 0644))

	router, _, _ := newTestRouter(t, RouterConfig{FrontendDir: dir})

	assert.Contains(t, do(router, http.MethodGet, "/", "").Body.String(), "GymAI")
	assert.Contains(t, do(router, http.MethodGet, "/static/script.js", "").Body.String(), "console.log")
}

func TestProfileEndpoints(t *testing.T) {
	router, _, _ := newTestRouter(t, RouterConfig{})

	var resp models.ProfileResponse
	rec := do(router, http.MethodGet, "/api/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Profile)
	assert.Equal(t, models.ProfileFields, resp.Missing)

	rec = do(router, http.MethodPut, "/api/profile", `{"fields":{"age":"30","gender":"Male","weight":"70.0"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.Profile{"age": "30", "gender": "male", "weight": "70"}, resp.Profile)
	assert.Equal(t, []string{"height", "goal", "level", "training_days", "equipment"}, resp.Missing)

	rec = do(router, http.MethodPut, "/api/profile", `{"fields":{"nickname":"bob"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodDelete, "/api/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = models.ProfileResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Profile)
}

func TestProfileEndpoints_StoreFailure(t *testing.T) {
	router := NewRouter(New(&echoResponder{}, brokenStore{}, nil, nil), RouterConfig{RateLimitRPS: 10, RateLimitBurst: 10})

	assert.Equal(t, http.StatusInternalServerError, do(router, http.MethodGet, "/api/profile", "").Code)
	assert.Equal(t, http.StatusInternalServerError, do(router, http.MethodPut, "/api/profile", `{"fields":{"age":"30"}}`).Code)
	assert.Equal(t, http.StatusInternalServerError, do(router, http.MethodDelete, "/api/profile", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/metrics", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/logs", "").Code)
}

func TestListLogs(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	logs := &staticLogs{logs: []models.ConversationLog{
		{ID: 2, UserInput: "water 70", Reply: "Drink 2.3 liters", Timestamp: ts},
		{ID: 1, UserInput: "bmi 70 175", Reply: "Your BMI is 22.9", Timestamp: ts},
	}}
	router := NewRouter(New(&echoResponder{}, brokenStore{}, logs, nil), RouterConfig{RateLimitRPS: 10, RateLimitBurst: 10})

	rec := do(router, http.MethodGet, "/api/logs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, logs.limit)

	var resp models.LogsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Logs, 2)
	assert.Equal(t, "water 70", resp.Logs[0].UserInput)
	assert.True(t, ts.Equal(resp.Logs[0].Timestamp))

	rec = do(router, http.MethodGet, "/api/logs?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Logs, 1)

	for _, q := range []string{"limit=0", "limit=500", "limit=abc"} {
		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/api/logs?"+q, "").Code, q)
	}
}

func TestListLogs_Empty(t *testing.T) {
	router := NewRouter(New(&echoResponder{}, brokenStore{}, &staticLogs{}, nil), RouterConfig{RateLimitRPS: 10, RateLimitBurst: 10})

	rec := do(router, http.MethodGet, "/api/logs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"logs":[]}`, rec.Body.String())
}

func TestListLogs_ReaderFailure(t *testing.T) {
	logs := &staticLogs{err: errors.New("locked")}
	router := NewRouter(New(&echoResponder{}, brokenStore{}, logs, nil), RouterConfig{RateLimitRPS: 10, RateLimitBurst: 10})

	assert.Equal(t, http.StatusInternalServerError, do(router, http.MethodGet, "/api/logs", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t, RouterConfig{})
	do(router, http.MethodPost, "/chat", `{"message":"hi"}`)

	body := do(router, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, body, `fitness_http_requests_total{method="POST",path="/chat",status="200"} 1`)
}
