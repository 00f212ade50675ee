package handler

import (
	"net/http"

	"github.com/gamevault/api/internal/middleware"
	"github.com/gamevault/api/internal/model"
	"github.com/gamevault/api/internal/service"
)

// LibraryHandler handles personal library HTTP requests
type LibraryHandler struct {
	svc *service.LibraryService
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(svc *service.LibraryService) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

// List handles GET /v1/library - list the user's games with catalog detail
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	games, err := h.svc.ListGames(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, games, nil)
}

// Add handles POST /v1/library/{gameId} - claim ownership of a catalog game
func (h *LibraryHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	gameID := r.PathValue("gameId")
	if gameID == "" {
		WriteError(w, model.NewBadRequestError("game ID required"))
		return
	}

	record, err := h.svc.AddGame(ctx, userID, gameID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, record, nil)
}

// Remove handles DELETE /v1/library/{gameId} - remove a game and its sessions
func (h *LibraryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	gameID := r.PathValue("gameId")
	if gameID == "" {
		WriteError(w, model.NewBadRequestError("game ID required"))
		return
	}

	if err := h.svc.RemoveGame(ctx, userID, gameID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
