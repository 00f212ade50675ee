package service

import (
	"context"
	"sort"

	"github.com/gamevault/api/internal/model"
)

// SessionRepositoryInterface defines the play session storage interface
type SessionRepositoryInterface interface {
	Create(ctx context.Context, session *model.SessionRecord) error
	GetByID(ctx context.Context, userID, gameID, sessionID string) (*model.SessionRecord, error)
	ListByGame(ctx context.Context, userID, gameID string) ([]*model.SessionRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*model.SessionRecord, error)
	Update(ctx context.Context, sessionID string, updates map[string]interface{}) (*model.SessionRecord, error)
	Delete(ctx context.Context, sessionID string) error
}

// OwnershipChecker reports whether a user owns a game
type OwnershipChecker interface {
	Get(ctx context.Context, userID, gameID string) (*model.OwnershipRecord, error)
}

// SessionService handles play session business logic. Every operation is
// scoped under an ownership record; a missing record means not found
// regardless of what sessions exist.
type SessionService struct {
	repo    SessionRepositoryInterface
	library OwnershipChecker
	catalog CatalogResolver
}

// NewSessionService creates a new session service
func NewSessionService(repo SessionRepositoryInterface, library OwnershipChecker, catalog CatalogResolver) *SessionService {
	return &SessionService{repo: repo, library: library, catalog: catalog}
}

func (s *SessionService) requireOwnership(ctx context.Context, userID, gameID string) error {
	rec, err := s.library.Get(ctx, userID, gameID)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotInLibrary
	}
	return nil
}

// CreateSession logs a play session for an owned game
func (s *SessionService) CreateSession(ctx context.Context, userID, gameID string, req *model.CreateSessionRequest) (*model.SessionRecord, error) {
	if err := s.requireOwnership(ctx, userID, gameID); err != nil {
		return nil, err
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return nil, model.NewValidationError(fieldErrors)
	}

	session := &model.SessionRecord{
		UserID:          userID,
		GameID:          gameID,
		DurationMinutes: req.Duration(),
		PlayersText:     model.StringOrEmpty(req.PlayersText),
		Winner:          model.StringOrEmpty(req.Winner),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions retrieves all sessions logged for an owned game
func (s *SessionService) ListSessions(ctx context.Context, userID, gameID string) ([]*model.SessionRecord, error) {
	if err := s.requireOwnership(ctx, userID, gameID); err != nil {
		return nil, err
	}
	sessions, err := s.repo.ListByGame(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []*model.SessionRecord{}
	}
	return sessions, nil
}

// UpdateSession applies a partial update to a session and returns the full
// post-update record. Fields absent from the patch keep their values.
func (s *SessionService) UpdateSession(ctx context.Context, userID, gameID, sessionID string, req *model.UpdateSessionRequest) (*model.SessionRecord, error) {
	if err := s.requireOwnership(ctx, userID, gameID); err != nil {
		return nil, err
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return nil, model.NewValidationError(fieldErrors)
	}

	existing, err := s.repo.GetByID(ctx, userID, gameID, sessionID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrSessionNotFound
	}

	updates := make(map[string]interface{})
	if d, ok := req.Duration(); ok {
		updates["duration_minutes"] = d
	}
	if req.PlayersText != nil {
		updates["players_text"] = *req.PlayersText
	}
	if req.Winner != nil {
		updates["winner"] = *req.Winner
	}

	updated, err := s.repo.Update(ctx, existing.ID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrSessionNotFound
	}
	return updated, nil
}

// DeleteSession removes a session from an owned game's journal
func (s *SessionService) DeleteSession(ctx context.Context, userID, gameID, sessionID string) error {
	if err := s.requireOwnership(ctx, userID, gameID); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, userID, gameID, sessionID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrSessionNotFound
	}
	return s.repo.Delete(ctx, existing.ID)
}

// AllSessionsForUser builds the cross-game play log: every session the user
// has logged, annotated with its game's catalog name and ordered newest
// first. Sessions of games the catalog no longer resolves keep an empty
// name; sessions with no timestamp sort oldest.
func (s *SessionService) AllSessionsForUser(ctx context.Context, userID string) ([]*model.PlayLogEntry, error) {
	sessions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return []*model.PlayLogEntry{}, nil
	}

	gameIDs := make([]string, 0, len(sessions))
	for _, session := range sessions {
		gameIDs = append(gameIDs, session.GameID)
	}
	resolved, err := s.catalog.ResolveByIDs(ctx, gameIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]*model.PlayLogEntry, 0, len(sessions))
	for _, session := range sessions {
		gameName := ""
		if entry, ok := resolved[session.GameID]; ok {
			gameName = entry.Name
		}
		entries = append(entries, &model.PlayLogEntry{
			ID:              session.ID,
			GameID:          session.GameID,
			GameName:        gameName,
			DurationMinutes: session.DurationMinutes,
			Winner:          session.Winner,
			PlayersText:     session.PlayersText,
			CreatedOn:       session.CreatedOn,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedOn.After(entries[j].CreatedOn)
	})
	return entries, nil
}
