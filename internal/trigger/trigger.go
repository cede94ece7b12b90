// internal/trigger/trigger.go
package trigger

import (
	"context"
	"encoding/json"

	"mentor-match/internal/common/errors"
	"mentor-match/internal/common/logger"
	"mentor-match/internal/common/metrics"
	"mentor-match/internal/models"
)

// State is the position of one conversational handshake. Transitions
// only move forward: Idle -> AwaitingAction -> Resolving -> Submitted.
type State string

const (
	StateIdle           State = "idle"
	StateAwaitingAction State = "awaiting_action"
	StateResolving      State = "resolving"
	StateSubmitted      State = "submitted"
)

// PendingAction is one tool call the conversational run is blocked on.
type PendingAction struct {
	CallID    string          `json:"callId"`
	Function  string          `json:"function"`
	Arguments json.RawMessage `json:"arguments"`
}

// RunStatus is the run snapshot returned by a poll.
type RunStatus struct {
	ConversationID string          `json:"conversationId"`
	RunID          string          `json:"runId"`
	Status         string          `json:"status"`
	PendingActions []PendingAction `json:"pendingActions,omitempty"`
}

// FunctionResult is the payload submitted back to the run once the
// matching function resolves, success or not.
type FunctionResult struct {
	Success             bool `json:"success"`
	NumOfMentorsMatched int  `json:"numOfMentorsMatched"`
}

// Runtime is the conversational platform boundary. Implementations
// must honor context cancellation on every call.
type Runtime interface {
	RunStatus(ctx context.Context, conversationID, runID string) (*RunStatus, error)
	SubmitFunctionResult(ctx context.Context, conversationID, runID, callID string, result FunctionResult) error
	AttachMatchMetadata(ctx context.Context, conversationID, matchResultID string) error
}

// Matcher runs the matching pipeline for one decoded inquiry.
type Matcher interface {
	Match(ctx context.Context, requestedBy string, q *models.Inquiry) (*models.MatchResult, error)
}

// Trigger drives the function-call handshake for the matching
// function. It holds no per-conversation state; each Poll derives the
// state transition from the run snapshot alone.
type Trigger struct {
	runtime      Runtime
	matcher      Matcher
	functionName string
	logger       logger.Logger
}

func New(runtime Runtime, matcher Matcher, functionName string, log logger.Logger) *Trigger {
	return &Trigger{
		runtime:      runtime,
		matcher:      matcher,
		functionName: functionName,
		logger:       log.WithFields(map[string]interface{}{"component": "trigger"}),
	}
}

// Poll inspects the run once and advances the handshake as far as it
// can. A run with no pending matching action stays Idle. A pending
// matching action is resolved end to end within this call: arguments
// are validated and decoded, the pipeline runs, and the function
// result is submitted. Any failure between validation and matching
// still submits success:false so the conversation is never left
// hanging; only a failed submission surfaces as an error.
func (t *Trigger) Poll(ctx context.Context, conversationID, runID string) (State, error) {
	run, err := t.runtime.RunStatus(ctx, conversationID, runID)
	if err != nil {
		metrics.TriggerPollsTotal.WithLabelValues("poll_failed").Inc()
		return StateIdle, errors.NewRunPollFailedError(err)
	}

	action, ok := t.pendingMatchAction(run)
	if !ok {
		metrics.TriggerPollsTotal.WithLabelValues(string(StateIdle)).Inc()
		return StateIdle, nil
	}

	t.logger.Info("matching action pending", map[string]interface{}{
		"conversationId": conversationID,
		"runId":          runID,
		"callId":         action.CallID,
	})

	result := t.resolve(ctx, conversationID, action)

	if err := t.runtime.SubmitFunctionResult(ctx, conversationID, runID, action.CallID, result.outcome); err != nil {
		metrics.TriggerPollsTotal.WithLabelValues("submit_failed").Inc()
		return StateResolving, errors.NewResultSubmitFailedError(err)
	}

	if result.matchResultID != "" {
		// Metadata attachment is best effort; the function result is
		// already committed and must not be invalidated by this.
		if err := t.runtime.AttachMatchMetadata(ctx, conversationID, result.matchResultID); err != nil {
			t.logger.WithError(err).Warn("match metadata attachment failed", map[string]interface{}{
				"conversationId": conversationID,
				"matchResultId":  result.matchResultID,
			})
		}
	}

	metrics.TriggerPollsTotal.WithLabelValues(string(StateSubmitted)).Inc()
	t.logger.Info("function result submitted", map[string]interface{}{
		"conversationId": conversationID,
		"runId":          runID,
		"success":        result.outcome.Success,
		"matched":        result.outcome.NumOfMentorsMatched,
	})
	return StateSubmitted, nil
}

type resolution struct {
	outcome       FunctionResult
	matchResultID string
}

// resolve turns one pending action into a FunctionResult. It never
// returns an error: malformed arguments and pipeline failures both
// collapse into success:false.
func (t *Trigger) resolve(ctx context.Context, conversationID string, action PendingAction) resolution {
	inquiry, err := DecodeInquiryArgs(action.Arguments)
	if err != nil {
		t.logger.WithError(err).Warn("malformed function arguments", map[string]interface{}{
			"conversationId": conversationID,
			"callId":         action.CallID,
		})
		return resolution{outcome: FunctionResult{Success: false, NumOfMentorsMatched: 0}}
	}

	result, err := t.matcher.Match(ctx, conversationID, inquiry)
	if err != nil {
		t.logger.WithError(err).Error("matching pipeline failed", map[string]interface{}{
			"conversationId": conversationID,
			"callId":         action.CallID,
		})
		return resolution{outcome: FunctionResult{Success: false, NumOfMentorsMatched: 0}}
	}

	return resolution{
		outcome: FunctionResult{
			Success:             true,
			NumOfMentorsMatched: len(result.Matches),
		},
		matchResultID: result.ID,
	}
}

func (t *Trigger) pendingMatchAction(run *RunStatus) (PendingAction, bool) {
	for _, action := range run.PendingActions {
		if action.Function == t.functionName {
			return action, true
		}
	}
	return PendingAction{}, false
}
