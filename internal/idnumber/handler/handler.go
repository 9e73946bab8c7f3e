package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"idcheck/internal/idnumber"
	"idcheck/internal/idnumber/service"
	"idcheck/pkg/platform/httputil"
	"idcheck/pkg/requestcontext"
)

// Service defines the interface for identifier validation.
type Service interface {
	Validate(ctx context.Context, req service.Request) (service.Outcome, error)
	ValidateBatch(ctx context.Context, reqs []service.Request) ([]service.Outcome, error)
	Types() []idnumber.Definition
}

// Handler wires identifier endpoints to the validation service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an identifier handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts identifier endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/identifiers", h.HandleTypes)
	r.Post("/v1/identifiers/validate-batch", h.HandleValidateBatch)
	r.Post("/v1/identifiers/{type}/validate", h.HandleValidate)
}

// HandleTypes handles GET /v1/identifiers requests.
func (h *Handler) HandleTypes(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromDefinitions(h.service.Types()))
}

// HandleValidate handles POST /v1/identifiers/{type}/validate requests.
// A rejected identifier is a 200 with valid=false; only malformed requests
// and unknown types produce error statuses.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	typ := chi.URLParam(r, "type")

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := h.service.Validate(ctx, req.ToService(typ))
	if err != nil {
		h.logger.WarnContext(ctx, "identifier validation failed",
			"request_id", requestID,
			"type", typ,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromOutcome(outcome))
}

// HandleValidateBatch handles POST /v1/identifiers/validate-batch requests.
func (h *Handler) HandleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcomes, err := h.service.ValidateBatch(ctx, req.ToService())
	if err != nil {
		h.logger.WarnContext(ctx, "batch validation failed",
			"request_id", requestID,
			"items", len(req.Items),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "batch validated",
		"request_id", requestID,
		"items", len(outcomes),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromOutcomes(outcomes))
}
