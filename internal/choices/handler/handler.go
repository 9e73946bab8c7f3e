package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"idcheck/internal/choices"
	dErrors "idcheck/pkg/domain-errors"
	"idcheck/pkg/platform/httputil"
	"idcheck/pkg/platform/sentinel"
	"idcheck/pkg/requestcontext"
)

// Catalog defines the read-only choice lookups served over HTTP.
type Catalog interface {
	Lookup(country, kind string) ([]choices.Choice, error)
	Catalogs() []choices.Key
}

// Handler serves choice tables.
type Handler struct {
	catalog Catalog
	logger  *slog.Logger
}

// New constructs a choices handler.
func New(catalog Catalog, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

// Register mounts choice endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/choices", h.HandleCatalogs)
	r.Get("/v1/choices/{country}/{kind}", h.HandleLookup)
}

// CatalogsResponse is the HTTP response for GET /v1/choices.
type CatalogsResponse struct {
	Catalogs []choices.Key `json:"catalogs"`
}

// TableResponse is the HTTP response for GET /v1/choices/{country}/{kind}.
type TableResponse struct {
	Country string           `json:"country"`
	Kind    string           `json:"kind"`
	Choices []choices.Choice `json:"choices"`
}

// HandleCatalogs handles GET /v1/choices.
func (h *Handler) HandleCatalogs(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, CatalogsResponse{Catalogs: h.catalog.Catalogs()})
}

// HandleLookup handles GET /v1/choices/{country}/{kind}.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	country := chi.URLParam(r, "country")
	kind := chi.URLParam(r, "kind")

	entries, err := h.catalog.Lookup(country, kind)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "choice table not found"))
			return
		}
		h.logger.ErrorContext(ctx, "choice lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"country", country,
			"kind", kind,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TableResponse{
		Country: country,
		Kind:    kind,
		Choices: entries,
	})
}
