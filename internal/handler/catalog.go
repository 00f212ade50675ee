package handler

import (
	"net/http"

	"github.com/gamevault/api/internal/model"
	"github.com/gamevault/api/internal/service"
)

// CatalogHandler handles shared catalog HTTP requests. Reads are available
// to any authenticated user; writes are routed through AdminAuth.
type CatalogHandler struct {
	svc *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// List handles GET /v1/catalog - all catalog entries ordered by name
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListGames(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, entries, nil)
}

// Get handles GET /v1/catalog/{gameId}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	if gameID == "" {
		WriteError(w, model.NewBadRequestError("game ID required"))
		return
	}

	entry, err := h.svc.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, entry, nil)
}

// Create handles POST /v1/catalog - add a catalog entry (admin)
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCatalogEntryRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	entry, err := h.svc.CreateGame(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, entry, nil)
}

// Update handles PUT /v1/catalog/{gameId} - merge-style update (admin)
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	if gameID == "" {
		WriteError(w, model.NewBadRequestError("game ID required"))
		return
	}

	var req model.UpdateCatalogEntryRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	entry, err := h.svc.UpdateGame(r.Context(), gameID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, entry, nil)
}

// Delete handles DELETE /v1/catalog/{gameId} (admin)
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	if gameID == "" {
		WriteError(w, model.NewBadRequestError("game ID required"))
		return
	}

	if err := h.svc.DeleteGame(r.Context(), gameID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
