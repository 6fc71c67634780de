package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kermartin/jurisearch/internal/domain"
	healthuc "github.com/kermartin/jurisearch/internal/usecase/health"
	retrievaluc "github.com/kermartin/jurisearch/internal/usecase/retrieval"
)

// Server exposes the retrieval API over HTTP. All endpoints are GET with
// query parameters; the response envelope is the same for search and
// suggestions.
type Server struct {
	retrieval   *retrievaluc.Service
	health      *healthuc.Service
	defaultTopK int
	logger      *zap.Logger
}

// NewServer creates an HTTP API server. defaultTopK is applied when a
// request carries no topk parameter.
func NewServer(retrieval *retrievaluc.Service, health *healthuc.Service, defaultTopK int, logger *zap.Logger) *Server {
	return &Server{
		retrieval:   retrieval,
		health:      health,
		defaultTopK: defaultTopK,
		logger:      logger,
	}
}

// errorResponse is the error payload shape of the API.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeInvalidTopK   = "invalid_topk"
	codeInternalError = "internal_error"
)

// Search handles GET /api/juris/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	req, err := s.requestFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidTopK, err.Error())
		return
	}

	resp, err := s.retrieval.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Suggestions handles GET /api/juris/suggestions. The q parameter is
// ignored: suggestions are filter-driven.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	req, err := s.requestFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidTopK, err.Error())
		return
	}

	resp, err := s.retrieval.Suggestions(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /api/juris/health. A degraded backend still
// answers 200: the retrieval API keeps serving while strategies degrade.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Check(r.Context()))
}

// requestFromQuery decodes the shared query-parameter surface. topk must be
// a positive integer when present; every other parameter passes through in
// raw string form for the tolerant filter parsing downstream.
func (s *Server) requestFromQuery(r *http.Request) (retrievaluc.Request, error) {
	q := r.URL.Query()

	topK := s.defaultTopK
	if raw := strings.TrimSpace(q.Get("topk")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return retrievaluc.Request{}, domain.ErrInvalidTopK
		}
		topK = n
	}

	return retrievaluc.Request{
		Query: q.Get("q"),
		Filters: domain.Filters{
			Topic:     q.Get("tema"),
			Court:     q.Get("tribunal"),
			Phase:     q.Get("fase"),
			Block:     q.Get("bloco"),
			Binding:   q.Get("vinculante"),
			Provision: q.Get("dispositivo"),
			Thesis:    q.Get("tese"),
		},
		TopK:     topK,
		Provider: q.Get("provider"),
	}, nil
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidTopK) {
		writeError(w, http.StatusBadRequest, codeInvalidTopK, err.Error())
		return
	}
	s.logger.Error("unhandled retrieval error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
