// internal/trigger/httpruntime_test.go
package trigger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentor-match/internal/common/config"
	"mentor-match/internal/common/logger"
)

func newTestRuntime(baseURL string, maxRetries int) *HTTPRuntime {
	return NewHTTPRuntime(config.RuntimeConfig{
		BaseURL:    baseURL,
		Timeout:    2000,
		MaxRetries: maxRetries,
	}, logger.NewNoOpLogger())
}

func TestHTTPRuntime_RunStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/conversations/conv-1/runs/run-1", r.URL.Path)
		json.NewEncoder(w).Encode(RunStatus{
			ConversationID: "conv-1",
			RunID:          "run-1",
			Status:         "requires_action",
			PendingActions: []PendingAction{
				{CallID: "call-1", Function: "match_mentors", Arguments: json.RawMessage(`{}`)},
			},
		})
	}))
	defer srv.Close()

	run, err := newTestRuntime(srv.URL, 0).RunStatus(context.Background(), "conv-1", "run-1")

	require.NoError(t, err)
	assert.Equal(t, "requires_action", run.Status)
	require.Len(t, run.PendingActions, 1)
	assert.Equal(t, "match_mentors", run.PendingActions[0].Function)
}

func TestHTTPRuntime_SubmitFunctionResult(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/conversations/conv-1/runs/run-1/submit", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestRuntime(srv.URL, 0).SubmitFunctionResult(
		context.Background(), "conv-1", "run-1", "call-1",
		FunctionResult{Success: true, NumOfMentorsMatched: 5},
	)

	require.NoError(t, err)
	assert.Equal(t, "call-1", received["callId"])
	output := received["output"].(map[string]interface{})
	assert.Equal(t, true, output["success"])
	assert.Equal(t, float64(5), output["numOfMentorsMatched"])
}

func TestHTTPRuntime_AttachMatchMetadata(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/conversations/conv-1/metadata", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestRuntime(srv.URL, 0).AttachMatchMetadata(context.Background(), "conv-1", "result-123")

	require.NoError(t, err)
	assert.Equal(t, "result-123", received["matchResultId"])
}

func TestHTTPRuntime_RetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(RunStatus{Status: "in_progress"})
	}))
	defer srv.Close()

	run, err := newTestRuntime(srv.URL, 2).RunStatus(context.Background(), "conv-1", "run-1")

	require.NoError(t, err)
	assert.Equal(t, "in_progress", run.Status)
	assert.Equal(t, 2, attempts)
}

func TestHTTPRuntime_ClientErrorIsNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestRuntime(srv.URL, 3).RunStatus(context.Background(), "conv-1", "run-1")

	assert.ErrorIs(t, err, ErrRunPollFailed)
	assert.Equal(t, 1, attempts)
}

func TestHTTPRuntime_ExhaustedRetriesFail(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestRuntime(srv.URL, 1).RunStatus(context.Background(), "conv-1", "run-1")

	assert.ErrorIs(t, err, ErrRunPollFailed)
	assert.Equal(t, 2, attempts)
}

func TestHTTPRuntime_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRuntime(srv.URL, 2).RunStatus(ctx, "conv-1", "run-1")

	assert.ErrorIs(t, err, ErrRuntimeTimeout)
}
