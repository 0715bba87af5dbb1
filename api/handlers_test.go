package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ruscigno/argus/model"
	"github.com/Ruscigno/argus/pipeline"
)

// mockRunner replays a fixed event sequence.
type mockRunner struct {
	events []model.PipelineEvent
	report *model.AnalysisReport
	err    error
	query  string
}

func (m *mockRunner) Run(_ context.Context, query string, onEvent pipeline.EventFunc) (*model.AnalysisReport, error) {
	m.query = query
	for _, e := range m.events {
		onEvent(e)
	}
	return m.report, m.err
}

func doResearch(t *testing.T, runner Runner, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := SetupRouter(runner)
	req := httptest.NewRequest(http.MethodPost, "/api/research", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func dataFrames(body string) []string {
	var frames []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "data: ") {
			frames = append(frames, strings.TrimPrefix(line, "data: "))
		}
	}
	return frames
}

func TestResearchRejectsEmptyQuery(t *testing.T) {
	for _, body := range []string{`{}`, `{"query": "  "}`, `{"query": ""}`} {
		w := doResearch(t, &mockRunner{}, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["error"])
	}
}

func TestResearchStreamsEventsAndDone(t *testing.T) {
	runner := &mockRunner{
		events: []model.PipelineEvent{
			{Phase: model.PhaseSearching, Status: model.StatusStarted, Message: "Searching..."},
			{Phase: model.PhaseComplete, Status: model.StatusCompleted, Message: "Ready", Data: &model.AnalysisReport{ExecutiveSummary: "x"}},
		},
		report: &model.AnalysisReport{ExecutiveSummary: "x"},
	}

	w := doResearch(t, runner, `{"query": "wireless earbuds"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "wireless earbuds", runner.query)

	frames := dataFrames(w.Body.String())
	require.Len(t, frames, 3)

	var first model.PipelineEvent
	require.NoError(t, json.Unmarshal([]byte(frames[0]), &first))
	assert.Equal(t, model.PhaseSearching, first.Phase)
	assert.Equal(t, model.StatusStarted, first.Status)

	var last model.PipelineEvent
	require.NoError(t, json.Unmarshal([]byte(frames[1]), &last))
	assert.Equal(t, model.PhaseComplete, last.Phase)

	assert.Equal(t, "[DONE]", frames[2])
}

func TestResearchAcceptsLegacyProductKey(t *testing.T) {
	runner := &mockRunner{report: &model.AnalysisReport{}}
	w := doResearch(t, runner, `{"product": "standing desk"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "standing desk", runner.query)
}

func TestResearchTerminatesStreamOnFailure(t *testing.T) {
	runner := &mockRunner{
		events: []model.PipelineEvent{
			{Phase: model.PhaseSearching, Status: model.StatusError, Message: "no products found for this search query"},
		},
		err: errors.New("no products found for this search query"),
	}

	w := doResearch(t, runner, `{"query": "asdfghjkl"}`)
	require.Equal(t, http.StatusOK, w.Code)

	frames := dataFrames(w.Body.String())
	require.Len(t, frames, 2)

	var event model.PipelineEvent
	require.NoError(t, json.Unmarshal([]byte(frames[0]), &event))
	assert.Equal(t, model.StatusError, event.Status)
	assert.Equal(t, "[DONE]", frames[1])
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter(&mockRunner{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}
