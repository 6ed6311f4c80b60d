package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	votingcore "evote/contexts/election/voting-core"
	votingerrors "evote/contexts/election/voting-core/domain/errors"
	votinghttp "evote/contexts/election/voting-core/transport/http"
	_ "evote/internal/platform/httpserver/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultMaxBodyBytes = 1 << 20

// Options tune the server. A zero value keeps swagger off and limits request
// bodies to 1 MiB.
type Options struct {
	EnableSwagger bool
	MaxBodyBytes  int64
}

type Server struct {
	mux     *http.ServeMux
	httpSrv *http.Server
	logger  *slog.Logger
	addr    string
	voting  votingcore.Module
	options Options
}

func New(voting votingcore.Module, logger *slog.Logger, addr string, options Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if options.MaxBodyBytes <= 0 {
		options.MaxBodyBytes = defaultMaxBodyBytes
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		voting:  voting,
		options: options,
	}
	s.registerRoutes()
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	if s.options.EnableSwagger {
		s.mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("POST /api/events", s.handleCreateEvent)
	s.mux.HandleFunc("POST /api/events/login", s.handleLogin)
	s.mux.HandleFunc("GET /api/events/{event_id}", s.handleGetEvent)
	s.mux.HandleFunc("DELETE /api/events/{event_id}", s.handleDeleteEvent)

	s.mux.HandleFunc("POST /api/events/{event_id}/candidates", s.handleAddCandidate)
	s.mux.HandleFunc("GET /api/events/{event_id}/candidates", s.handleListCandidates)
	s.mux.HandleFunc("PUT /api/events/{event_id}/candidates/{candidate_id}", s.handleUpdateCandidate)
	s.mux.HandleFunc("DELETE /api/events/{event_id}/candidates/{candidate_id}", s.handleDeleteCandidate)
	s.mux.HandleFunc("GET /api/events/{event_id}/ballot", s.handleBallot)

	s.mux.HandleFunc("POST /api/events/{event_id}/accounts", s.handleCreateAccounts)
	s.mux.HandleFunc("GET /api/events/{event_id}/accounts", s.handleListAccounts)

	s.mux.HandleFunc("POST /api/events/{event_id}/vote", s.handleCastVote)
	s.mux.HandleFunc("GET /api/events/{event_id}/vote-status/{user_id}", s.handleVoteStatus)
	s.mux.HandleFunc("GET /api/events/{event_id}/results", s.handleResults)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.CreateEventRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.voting.Handler.CreateEventHandler(r.Context(), req)
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.GetEventHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.DeleteEventHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	if !resp.Deleted {
		writeVotingError(w, http.StatusNotFound, "not_found", "event not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddCandidate(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.CandidateRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.voting.Handler.AddCandidateHandler(r.Context(), r.PathValue("event_id"), req)
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.CandidateRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.voting.Handler.UpdateCandidateHandler(r.Context(), r.PathValue("event_id"), r.PathValue("candidate_id"), req)
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.DeleteCandidateHandler(r.Context(), r.PathValue("event_id"), r.PathValue("candidate_id"))
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	if !resp.Deleted {
		writeVotingError(w, http.StatusNotFound, "not_found", "candidate not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ListCandidatesHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBallot(w http.ResponseWriter, r *http.Request) {
	password := r.URL.Query().Get("password")
	if password == "" {
		password = r.Header.Get("X-Event-Password")
	}
	resp, found, err := s.voting.Handler.BallotHandler(r.Context(), r.PathValue("event_id"), password)
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	if !found {
		writeVotingError(w, http.StatusNotFound, "ballot_not_found", "unknown event or wrong event password")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateAccounts(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.CreateAccountsRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.voting.Handler.CreateAccountsHandler(r.Context(), r.PathValue("event_id"), req)
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ListAccountsHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.LoginRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.voting.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.CastVoteRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.voting.Handler.CastVoteHandler(r.Context(), r.PathValue("event_id"), req)
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	if !resp.Accepted {
		writeJSON(w, http.StatusConflict, resp)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleVoteStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.VoteStatusHandler(r.Context(), r.PathValue("event_id"), r.PathValue("user_id"))
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ResultsHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		s.writeVotingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.options.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeVotingError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body is too large")
			return false
		}
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func (s *Server) writeVotingDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrInvalidArgument):
		writeVotingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, votingerrors.ErrAuthFailed):
		writeVotingError(w, http.StatusUnauthorized, "auth_failed", err.Error())
	case errors.Is(err, votingerrors.ErrNotFound):
		writeVotingError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		s.logger.Error("request failed",
			"event", "http_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
