package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/renovo/internal/contract"
	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/export"
	"github.com/alexanderramin/renovo/internal/repository"
	"github.com/alexanderramin/renovo/internal/service"
)

const maxBodyBytes = 1 << 20

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := apiResponse{Success: status >= 200 && status < 300, Data: data}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := apiResponse{Error: &apiError{Code: code, Message: message}}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode error response", "error", err)
	}
}

// respondServiceError maps service and domain errors to HTTP statuses.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	var (
		reqErr  *contract.RequestError
		unknown *domain.UnknownTaskError
		cycle   *domain.GraphCycleError
		passes  *domain.ImplicationLimitError
	)
	switch {
	case errors.As(err, &reqErr):
		s.respondError(w, http.StatusBadRequest, string(reqErr.Code), reqErr.Message)
	case errors.Is(err, repository.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &unknown):
		s.respondError(w, http.StatusUnprocessableEntity, "unknown_task", err.Error())
	case errors.As(err, &cycle), errors.As(err, &passes):
		s.logger.Error("pricing graph misconfigured", "error", err)
		s.respondError(w, http.StatusInternalServerError, "graph_config", err.Error())
	case errors.Is(err, service.ErrNoQuoteStore):
		s.respondError(w, http.StatusServiceUnavailable, "no_quote_store", err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &contract.RequestError{Code: contract.ErrInvalidJSON, Message: fmt.Sprintf("decoding request body: %v", err)}
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":            "healthy",
		"time":              time.Now().UTC().Format(time.RFC3339),
		"feedback_degraded": s.feedback.Summary(r.Context()).Degraded,
	})
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var req contract.QuoteRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondServiceError(w, err)
		return
	}
	resp, err := s.quotes.Generate(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 500 {
			s.respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 500")
			return
		}
		limit = n
	}
	resp, err := s.quotes.History(r.Context(), limit)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := s.quotes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, q)
}

func (s *Server) handleQuoteCSV(w http.ResponseWriter, r *http.Request) {
	q, err := s.quotes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", q.QuoteID+".csv"))
	if err := export.WriteTasksCSV(w, q); err != nil {
		s.logger.Error("writing csv", "quote_id", q.QuoteID, "error", err)
	}
}

func (s *Server) handleQuoteFeedback(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Accepted *bool `json:"accepted"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		s.respondServiceError(w, err)
		return
	}
	if body.Accepted == nil {
		s.respondError(w, http.StatusBadRequest, "missing_accepted", "accepted is required")
		return
	}
	rec, err := s.feedback.RecordOutcome(r.Context(), contract.FeedbackRequest{
		QuoteID:  chi.URLParam(r, "id"),
		Accepted: *body.Accepted,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleFeedbackSummary(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.feedback.Summary(r.Context()))
}

func (s *Server) handleProductivity(w http.ResponseWriter, r *http.Request) {
	var req contract.ProductivityRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondServiceError(w, err)
		return
	}
	m, err := s.feedback.RecordRealizedHours(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, m)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	report, err := s.quotes.InspectGraph(r.Context(), r.URL.Query().Get("transcript"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}
