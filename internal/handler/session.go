package handler

import (
	"net/http"

	"github.com/gamevault/api/internal/middleware"
	"github.com/gamevault/api/internal/model"
	"github.com/gamevault/api/internal/service"
)

// SessionHandler handles play session HTTP requests
type SessionHandler struct {
	svc *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Create handles POST /v1/library/{gameId}/sessions - log a play session
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req model.CreateSessionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	session, err := h.svc.CreateSession(ctx, userID, gameID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, session, nil)
}

// List handles GET /v1/library/{gameId}/sessions - sessions for one game
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
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

	sessions, err := h.svc.ListSessions(ctx, userID, gameID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, sessions, nil)
}

// Update handles PATCH /v1/library/{gameId}/sessions/{sessionId}
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	gameID := r.PathValue("gameId")
	sessionID := r.PathValue("sessionId")
	if gameID == "" || sessionID == "" {
		WriteError(w, model.NewBadRequestError("game ID and session ID required"))
		return
	}

	var req model.UpdateSessionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	session, err := h.svc.UpdateSession(ctx, userID, gameID, sessionID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, session, nil)
}

// Delete handles DELETE /v1/library/{gameId}/sessions/{sessionId}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	gameID := r.PathValue("gameId")
	sessionID := r.PathValue("sessionId")
	if gameID == "" || sessionID == "" {
		WriteError(w, model.NewBadRequestError("game ID and session ID required"))
		return
	}

	if err := h.svc.DeleteSession(ctx, userID, gameID, sessionID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// ListAll handles GET /v1/sessions - the cross-game play log, newest first
func (h *SessionHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	entries, err := h.svc.AllSessionsForUser(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, entries, nil)
}
