package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mtlprog/ccsfeed/docs" // Import generated docs
	"github.com/mtlprog/ccsfeed/internal/domain"
	"github.com/mtlprog/ccsfeed/internal/feed"
	"github.com/mtlprog/ccsfeed/internal/handler/dto"
	"github.com/mtlprog/ccsfeed/internal/middleware"
	"github.com/mtlprog/ccsfeed/internal/repository"
	"github.com/mtlprog/ccsfeed/internal/static"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Config carries handler-level settings.
type Config struct {
	FeedUsername string
	FeedPassword string
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool           *pgxpool.Pool
	feedService    *feed.Service
	eventRepo      *repository.EventRepository
	markerRepo     *repository.MarkerRepository
	contestRepo    *repository.ContestRepository
	recordRepo     *repository.RecordRepository
	authMiddleware *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool, cfg Config) *Handler {
	// Create repositories
	eventRepo := repository.NewEventRepository(pool)
	markerRepo := repository.NewMarkerRepository(pool)
	contestRepo := repository.NewContestRepository(pool)
	recordRepo := repository.NewRecordRepository(pool)

	// Create the feed engine
	feedService := feed.NewService(pool, eventRepo, markerRepo, contestRepo, recordRepo, feed.NewAdapter())

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.FeedUsername, cfg.FeedPassword)

	return &Handler{
		pool:           pool,
		feedService:    feedService,
		eventRepo:      eventRepo,
		markerRepo:     markerRepo,
		contestRepo:    contestRepo,
		recordRepo:     recordRepo,
		authMiddleware: authMiddleware,
	}
}

// FeedService exposes the feed engine (used by the CLI commands and tests).
func (h *Handler) FeedService() *feed.Service {
	return h.feedService
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Integration notes for scoreboard operators
	mux.HandleFunc("GET /integration.md", h.handleIntegrationMd)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// API root is served without credentials so tooling can probe the
	// version before authenticating.
	mux.HandleFunc("GET /ccs/api", h.handleAPIInfo)

	auth := h.authMiddleware.Authenticate

	mux.Handle("GET /ccs/api/contests", auth(http.HandlerFunc(h.handleListContests)))
	mux.Handle("GET /ccs/api/contests/{contestId}", auth(http.HandlerFunc(h.handleGetContest)))
	mux.Handle("POST /ccs/api/contests/{contestId}/operation/{operation}", auth(http.HandlerFunc(h.handleOperation)))
	mux.Handle("GET /ccs/api/contests/{contestId}/state", auth(http.HandlerFunc(h.handleGetState)))
	mux.Handle("GET /ccs/api/contests/{contestId}/event-feed", auth(http.HandlerFunc(h.handleEventFeed)))

	// Fixed catalogs
	mux.Handle("GET /ccs/api/contests/{contestId}/languages", auth(http.HandlerFunc(h.handleListLanguages)))
	mux.Handle("GET /ccs/api/contests/{contestId}/languages/{id}", auth(http.HandlerFunc(h.handleGetLanguage)))
	mux.Handle("GET /ccs/api/contests/{contestId}/groups", auth(http.HandlerFunc(h.handleListGroups)))
	mux.Handle("GET /ccs/api/contests/{contestId}/groups/{id}", auth(http.HandlerFunc(h.handleGetGroup)))
	mux.Handle("GET /ccs/api/contests/{contestId}/judgement-types", auth(http.HandlerFunc(h.handleListJudgementTypes)))
	mux.Handle("GET /ccs/api/contests/{contestId}/judgement-types/{id}", auth(http.HandlerFunc(h.handleGetJudgementType)))

	// Read models over the event log
	for _, entity := range []domain.EventType{
		domain.EventTypeProblems,
		domain.EventTypeOrganizations,
		domain.EventTypeTeams,
		domain.EventTypeSubmissions,
		domain.EventTypeJudgements,
		domain.EventTypeRuns,
	} {
		entity := entity
		mux.Handle("GET /ccs/api/contests/{contestId}/"+string(entity),
			auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				h.handleListEntities(w, r, entity)
			})))
		mux.Handle("GET /ccs/api/contests/{contestId}/"+string(entity)+"/{id}",
			auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				h.handleGetEntity(w, r, entity)
			})))
	}
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleIntegrationMd serves the embedded integration notes.
func (h *Handler) handleIntegrationMd(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.IntegrationMd))
}

// handleAPIInfo reports the served CCS API version.
// @Summary API version info
// @Description Returns the CCS contest API version implemented by this server.
// @Tags meta
// @Produce json
// @Success 200 {object} dto.APIInfoResponse
// @Router /ccs/api [get]
func (h *Handler) handleAPIInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.APIInfoResponse{
		Version:    "2023-06",
		VersionURL: "https://ccs-specs.icpc.io/2023-06/contest_api",
		Name:       "ccsfeed",
		Provider: dto.ProviderRef{
			Name:    "ccsfeed",
			Version: "1.0.0",
		},
	})
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps a domain error and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// extractContestID extracts and validates the contest ID path parameter.
// Returns (contestID, true) if valid, ("", false) if invalid (error already
// sent to client).
func extractContestID(w http.ResponseWriter, r *http.Request) (string, bool) {
	contestID := r.PathValue("contestId")
	if contestID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "contest id is required")
		return "", false
	}

	if _, err := uuid.Parse(contestID); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "contest id must be a valid UUID")
		return "", false
	}

	return contestID, true
}

// requireContest loads the contest and verifies it has a materialized feed.
// All contest-scoped read endpoints require both; the composition replaces
// the source system's authenticated-contest-scoped handler mixin.
func (h *Handler) requireContest(w http.ResponseWriter, r *http.Request) (*domain.Contest, bool) {
	contestID, ok := extractContestID(w, r)
	if !ok {
		return nil, false
	}

	contest, err := h.contestRepo.GetByID(r.Context(), contestID)
	if err != nil {
		respondDomainError(w, err)
		return nil, false
	}

	initialized, err := h.markerRepo.Exists(r.Context(), contest.ID)
	if err != nil {
		respondDomainError(w, err)
		return nil, false
	}
	if !initialized {
		respondDomainError(w, domain.ErrNotInitialized)
		return nil, false
	}

	return contest, true
}

// errNotFoundEntity is a convenience for single-entity lookups.
func respondEntityNotFound(w http.ResponseWriter, kind string) {
	respondError(w, http.StatusNotFound, "ENTITY_NOT_FOUND", kind+" not found")
}

var errStreamUnsupported = errors.New("streaming unsupported by connection")
