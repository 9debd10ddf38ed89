package sets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"brickinv/internal/catalog"
	"brickinv/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createSetRequest struct {
	SetNo     string `json:"set_no" validate:"required,set_no"`
	Assembled bool   `json:"assembled"`
}

// AddSet handles POST /sets
func (h *HTTPHandler) AddSet(w http.ResponseWriter, r *http.Request) {
	var req createSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	set, err := h.service.AddSet(r.Context(), req.SetNo, req.Assembled)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpx.JSONSuccess(w, set, nil)
}

// Get handles GET /sets/{set_no}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	setNo := r.PathValue("set_no")

	set, err := h.service.Get(r.Context(), setNo)
	if err != nil {
		if errors.Is(err, ErrSetNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Set not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, set, nil)
}

// Search handles GET /sets/search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	results, err := h.service.Search(r.Context(), query, limit)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpx.JSONSuccess(w, results, map[string]any{"count": len(results)})
}

// writeCatalogError maps the catalog error taxonomy plus the local not-found
// onto response statuses. Each kind keeps its identity; nothing collapses to
// a generic failure except genuinely unclassified errors.
func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSetNotFound), errors.Is(err, catalog.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Set not found in catalog", nil)
	case errors.Is(err, catalog.ErrAuth):
		httpx.JSONError(w, http.StatusUnauthorized, "CATALOG_AUTH", "Catalog authentication failed", nil)
	case errors.Is(err, catalog.ErrRateLimited):
		httpx.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Catalog rate limit exceeded", nil)
	case errors.Is(err, catalog.ErrTimeout):
		httpx.JSONError(w, http.StatusGatewayTimeout, "CATALOG_TIMEOUT", "Catalog request timed out", nil)
	case errors.Is(err, catalog.ErrAPI):
		httpx.JSONError(w, http.StatusBadGateway, "CATALOG_ERROR", "Catalog API error", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
