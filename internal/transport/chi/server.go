package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/careatlas/orgconnect/internal/domain"
	healthuc "github.com/careatlas/orgconnect/internal/usecase/health"
)

const defaultListLimit = 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// OrganizationStore is the organization CRUD contract consumed by the server.
type OrganizationStore interface {
	Upsert(ctx context.Context, org *domain.Organization) (bool, error)
	Get(ctx context.Context, id string) (domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

// ProximitySearcher ranks organizations by distance from a coordinate.
type ProximitySearcher interface {
	FindNearby(ctx context.Context, lat, lon float64, radiusKm *float64) ([]domain.RankedOrganization, error)
}

// DocumentChat answers a question about an uploaded PDF.
type DocumentChat interface {
	Answer(ctx context.Context, pdfData []byte, question string) (string, error)
}

// Server is the HTTP API server.
type Server struct {
	orgs           OrganizationStore
	proximity      ProximitySearcher
	docchat        DocumentChat
	health         *healthuc.Service
	maxUploadBytes int64
	logger         *zap.Logger
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	orgs OrganizationStore,
	proximity ProximitySearcher,
	docchat DocumentChat,
	health *healthuc.Service,
	maxUploadBytes int64,
	logger *zap.Logger,
) *Server {
	s := &Server{
		orgs:           orgs,
		proximity:      proximity,
		docchat:        docchat,
		health:         health,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrOrganizationNotFound, http.StatusNotFound, codeOrganizationNotFound),
		sentinelHandler(domain.ErrDocumentEmpty, http.StatusBadRequest, codeDocumentEmpty),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusServiceUnavailable, codeSourceUnavailable),
		sentinelHandler(domain.ErrCompletionProviderError, http.StatusBadGateway, codeCompletionProviderError),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/organizations/nearby", s.NearbyOrganizations)
		r.Post("/chat-with-pdf", s.ChatWithPDF)

		r.Get("/organizations", s.ListOrganizations)
		r.Post("/organizations", s.CreateOrganization)
		r.Put("/organizations/{id}", s.UpsertOrganization)
		r.Get("/organizations/{id}", s.GetOrganization)
		r.Delete("/organizations/{id}", s.DeleteOrganization)
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// NearbyOrganizations handles POST /api/v1/organizations/nearby.
func (s *Server) NearbyOrganizations(w http.ResponseWriter, r *http.Request) {
	var req NearbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	ranked, err := s.proximity.FindNearby(r.Context(), *req.Latitude, *req.Longitude, req.Radius)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	// An empty result is a valid 200 with an empty list, never an error.
	items := make([]map[string]any, len(ranked))
	for i := range ranked {
		items[i] = rankedToJSON(&ranked[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// ChatWithPDF handles POST /api/v1/chat-with-pdf (multipart: file, question).
func (s *Server) ChatWithPDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid multipart body: "+err.Error())
		return
	}

	question := r.FormValue("question")
	if strings.TrimSpace(question) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "question is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "file is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "file must be a PDF")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "read upload: "+err.Error())
		return
	}

	answer, err := s.docchat.Answer(r.Context(), data, question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Answer: answer, Status: "success"})
}

// CreateOrganization handles POST /api/v1/organizations.
func (s *Server) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	s.upsertOrganization(w, r, "")
}

// UpsertOrganization handles PUT /api/v1/organizations/{id}.
func (s *Server) UpsertOrganization(w http.ResponseWriter, r *http.Request) {
	s.upsertOrganization(w, r, chi.URLParam(r, "id"))
}

func (s *Server) upsertOrganization(w http.ResponseWriter, r *http.Request, id string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "read body: "+err.Error())
		return
	}

	org, err := organizationFromBody(id, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	created, err := s.orgs.Upsert(r.Context(), &org)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", fmt.Sprintf("/api/v1/organizations/%s", org.ID))
	}
	writeJSON(w, status, organizationToJSON(&org))
}

// GetOrganization handles GET /api/v1/organizations/{id}.
func (s *Server) GetOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := s.orgs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, organizationToJSON(&org))
}

// DeleteOrganization handles DELETE /api/v1/organizations/{id}.
func (s *Server) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	if err := s.orgs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOrganizations handles GET /api/v1/organizations.
func (s *Server) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be a positive integer")
			return
		}
		limit = v
	}

	orgs, err := s.orgs.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	total := len(orgs)
	if len(orgs) > limit {
		orgs = orgs[:limit]
	}

	items := make([]map[string]any, len(orgs))
	for i := range orgs {
		items[i] = organizationToJSON(&orgs[i])
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: items, Total: total})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrOrganizationNotFound,
		domain.ErrDocumentEmpty,
		domain.ErrInvalidRequest,
		domain.ErrSourceUnavailable,
		domain.ErrCompletionProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
