// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mentor-match/internal/common/errors"
	"mentor-match/internal/common/logger"
	"mentor-match/internal/common/metrics"
	"mentor-match/internal/models"
	"mentor-match/internal/trigger"
)

// MatchReader is the read side of the match result store.
type MatchReader interface {
	FindByID(ctx context.Context, id string) (*models.MatchResult, error)
}

// MentorReader serves mentor snapshots from the candidate directory.
type MentorReader interface {
	FetchByID(ctx context.Context, ids []string) ([]models.Mentor, error)
}

// TriggerPoller advances one conversational handshake by one poll.
type TriggerPoller interface {
	Poll(ctx context.Context, conversationID, runID string) (trigger.State, error)
}

// Server exposes the public read API, the trigger poll endpoint, and
// health and metrics.
type Server struct {
	matches MatchReader
	mentors MentorReader
	trigger TriggerPoller
	logger  logger.Logger
}

func NewServer(matches MatchReader, mentors MentorReader, trig TriggerPoller, log logger.Logger) *Server {
	return &Server{
		matches: matches,
		mentors: mentors,
		trigger: trig,
		logger:  log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /matches/{id}", s.handleGetMatch)
	mux.HandleFunc("GET /mentors/{id}", s.handleGetMentor)
	mux.HandleFunc("POST /conversations/{conversationId}/runs/{runId}/poll", s.handlePoll)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Listen starts the HTTP server and blocks until the context is
// cancelled, then shuts down gracefully within shutdownTimeout.
func (s *Server) Listen(ctx context.Context, port int, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("api server listening", map[string]interface{}{"port": port})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	result, err := s.matches.FindByID(r.Context(), id)
	if err != nil {
		apperr := errors.FromError(err)
		if apperr.Code == errors.ErrCodeMatchNotFound {
			s.writeError(w, "matches", http.StatusNotFound, errors.NewMatchNotFoundError(id))
			return
		}
		s.logger.WithError(err).Error("match lookup failed", map[string]interface{}{
			"matchResultId": id,
			"category":      errors.GetErrorCategory(apperr.Code),
		})
		s.writeError(w, "matches", http.StatusInternalServerError, apperr)
		return
	}

	s.writeJSON(w, "matches", http.StatusOK, result)
}

// handleGetMentor re-hydrates one mentor snapshot by id. Reads go
// through the directory's snapshot cache before hitting the index.
func (s *Server) handleGetMentor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	mentors, err := s.mentors.FetchByID(r.Context(), []string{id})
	if err != nil {
		apperr := errors.FromError(err)
		s.logger.WithError(err).Error("mentor lookup failed", map[string]interface{}{
			"mentorId": id,
			"category": errors.GetErrorCategory(apperr.Code),
		})
		s.writeError(w, "mentors", http.StatusBadGateway, apperr)
		return
	}
	if len(mentors) == 0 {
		s.writeError(w, "mentors", http.StatusNotFound, errors.NewMentorNotFoundError(id))
		return
	}

	s.writeJSON(w, "mentors", http.StatusOK, mentors[0])
}

// handlePoll runs one trigger poll for a conversational run. The
// caller keeps polling until the handshake reaches "submitted";
// stopping is how the caller cancels.
func (s *Server) handlePoll(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("conversationId")
	runID := r.PathValue("runId")

	state, err := s.trigger.Poll(r.Context(), conversationID, runID)
	if err != nil {
		apperr := errors.FromError(err)
		s.logger.WithError(err).Error("trigger poll failed", map[string]interface{}{
			"conversationId": conversationID,
			"runId":          runID,
			"category":       errors.GetErrorCategory(apperr.Code),
		})
		s.writeError(w, "poll", http.StatusBadGateway, apperr)
		return
	}

	s.writeJSON(w, "poll", http.StatusOK, map[string]string{"state": string(state)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, "healthz", http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, route string, status int, v interface{}) {
	metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("response encoding failed", map[string]interface{}{
			"route": route,
		})
	}
}

func (s *Server) writeError(w http.ResponseWriter, route string, status int, apperr *errors.StandardError) {
	s.writeJSON(w, route, status, map[string]string{
		"error": apperr.Message,
		"code":  string(apperr.Code),
	})
}
