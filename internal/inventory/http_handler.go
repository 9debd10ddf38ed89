package inventory

import (
	"encoding/json"
	"net/http"

	"brickinv/internal/entity"
	"brickinv/internal/httpx"
)

type HTTPHandler struct {
	repo Repository
}

func NewHTTPHandler(repo Repository) *HTTPHandler {
	return &HTTPHandler{repo: repo}
}

type updateItemRequest struct {
	PartNo  string `json:"part_no" validate:"required,part_no"`
	ColorID int    `json:"color_id" validate:"gte=0,lte=9999"`
	Qty     int    `json:"qty" validate:"required,gte=1,lte=10000"`
	State   string `json:"state" validate:"required,piece_state"`
}

// List handles GET /inventory
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	state := entity.PieceState(r.URL.Query().Get("state"))
	if state != "" && !state.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", []httpx.ErrorDetail{
			{Field: "state", Message: "state must be one of MISSING, OWNED_LOCKED, OWNED_FREE"},
		})
		return
	}

	items, err := h.repo.List(r.Context(), state)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if items == nil {
		items = []entity.InventoryItem{}
	}

	httpx.JSONSuccess(w, map[string]any{
		"items": items,
		"count": len(items),
	}, nil)
}

// UpdateItem handles PATCH /inventory
func (h *HTTPHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	updated, err := h.repo.UpdateItem(r.Context(), req.PartNo, req.ColorID, req.Qty, entity.PieceState(req.State))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if !updated {
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
		return
	}
	httpx.JSONSuccess(w, map[string]any{"ok": true}, nil)
}
