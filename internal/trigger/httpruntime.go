// internal/trigger/httpruntime.go
package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mentor-match/internal/common/config"
	"mentor-match/internal/common/logger"
)

var (
	ErrRunPollFailed      = errors.New("RUN_POLL_FAILED")
	ErrResultSubmitFailed = errors.New("RESULT_SUBMIT_FAILED")
	ErrRuntimeTimeout     = errors.New("RUNTIME_TIMEOUT")
)

// HTTPRuntime talks to the conversational platform over its REST API.
// Each call gets its own timeout and a bounded retry loop with
// exponential backoff.
type HTTPRuntime struct {
	baseURL    string
	client     *http.Client
	maxRetries int
	logger     logger.Logger
}

func NewHTTPRuntime(cfg config.RuntimeConfig, log logger.Logger) *HTTPRuntime {
	return &HTTPRuntime{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Millisecond,
		},
		maxRetries: cfg.MaxRetries,
		logger:     log.WithFields(map[string]interface{}{"component": "runtime"}),
	}
}

func (r *HTTPRuntime) RunStatus(ctx context.Context, conversationID, runID string) (*RunStatus, error) {
	url := fmt.Sprintf("%s/api/conversations/%s/runs/%s", r.baseURL, conversationID, runID)

	body, err := r.do(ctx, http.MethodGet, url, nil, ErrRunPollFailed)
	if err != nil {
		return nil, err
	}

	var run RunStatus
	if err := json.Unmarshal(body, &run); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrRunPollFailed, err)
	}
	return &run, nil
}

func (r *HTTPRuntime) SubmitFunctionResult(ctx context.Context, conversationID, runID, callID string, result FunctionResult) error {
	url := fmt.Sprintf("%s/api/conversations/%s/runs/%s/submit", r.baseURL, conversationID, runID)

	payload, err := json.Marshal(map[string]interface{}{
		"callId": callID,
		"output": result,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResultSubmitFailed, err)
	}

	_, err = r.do(ctx, http.MethodPost, url, payload, ErrResultSubmitFailed)
	return err
}

func (r *HTTPRuntime) AttachMatchMetadata(ctx context.Context, conversationID, matchResultID string) error {
	url := fmt.Sprintf("%s/api/conversations/%s/metadata", r.baseURL, conversationID)

	payload, err := json.Marshal(map[string]interface{}{
		"matchResultId": matchResultID,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResultSubmitFailed, err)
	}

	_, err = r.do(ctx, http.MethodPost, url, payload, ErrResultSubmitFailed)
	return err
}

// do runs one request with retries. Non-2xx responses are retried like
// transport errors; context expiry short-circuits to a timeout error.
func (r *HTTPRuntime) do(ctx context.Context, method, url string, payload []byte, wrapErr error) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrRuntimeTimeout
			}
		}

		var reqBody *bytes.Buffer
		if payload != nil {
			reqBody = bytes.NewBuffer(payload)
		} else {
			reqBody = &bytes.Buffer{}
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", wrapErr, err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := r.client.Do(req)

		if ctx.Err() != nil ||
			errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, context.Canceled) {
			return nil, ErrRuntimeTimeout
		}

		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			var buf bytes.Buffer
			_, readErr := buf.ReadFrom(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				return nil, fmt.Errorf("%w: %v", wrapErr, readErr)
			}
			return buf.Bytes(), nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("status %d", resp.StatusCode)

		// Client errors will not improve on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			break
		}
	}

	if lastErr != nil {
		r.logger.WithError(lastErr).Warn("runtime request failed", map[string]interface{}{
			"method": method,
			"url":    url,
		})
		return nil, fmt.Errorf("%w: %v", wrapErr, lastErr)
	}
	return nil, fmt.Errorf("%w: no successful response after retries", wrapErr)
}
