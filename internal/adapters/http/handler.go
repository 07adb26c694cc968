package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/app/conversation"
	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/domain"
	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/observability"
)

// Error bodies returned to the web client.
const (
	msgMissingFields = "Missing sessionId or userResponse in request body."
	msgHistorySync   = "There was an internal chat history synchronization issue. Please refresh the page and try again."
	msgProvider      = "Failed to get a response from Tina. Please try again."
)

type Options struct {
	// CORSOrigin is sent as Access-Control-Allow-Origin. Empty means "*".
	CORSOrigin string
}

type Server struct {
	svc     *conversation.Service
	metrics *observability.Metrics
}

func NewServer(svc *conversation.Service, metrics *observability.Metrics, opts Options) http.Handler {
	s := &Server{svc: svc, metrics: metrics}
	mux := http.NewServeMux()

	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/healthz", s.handleHealthz)
	if metrics != nil {
		mux.Handle("/metrics", metrics.Handler())
	}

	return chainMiddlewares(mux,
		withCORS(opts.CORSOrigin),
		withLogging,
		withRequestID,
	)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

// Pointers distinguish an absent field from an empty string.
type chatRequest struct {
	SessionID    *string `json:"sessionId"`
	UserResponse *string `json:"userResponse"`
}

type chatResponse struct {
	Response string         `json:"response"`
	History  []turnResponse `json:"history"`
}

type turnResponse struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("invalid chat request body")
		badRequest(w, msgMissingFields)
		return
	}

	out, err := s.svc.HandleTurn(r.Context(), conversation.HandleTurnInput{
		SessionID:    req.SessionID,
		UserResponse: req.UserResponse,
	})
	if err != nil {
		writeTurnError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response: out.Reply,
		History:  toTurnsResponse(out.Transcript),
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────
// Conversation Helpers
// ─────────────────────────────────────────────

func toTurnsResponse(t domain.Transcript) []turnResponse {
	out := make([]turnResponse, 0, len(t))
	for _, turn := range t {
		out = append(out, turnResponse{Role: string(turn.Role), Text: turn.Text})
	}
	return out
}

func writeTurnError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		badRequest(w, msgMissingFields)
	case errors.Is(err, domain.ErrHistorySync):
		internalError(w, msgHistorySync)
	default:
		internalError(w, msgProvider)
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
