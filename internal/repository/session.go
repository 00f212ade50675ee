package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/gamevault/api/internal/database"
	"github.com/gamevault/api/internal/model"
)

const sessionIDPrefix = "play_session:"

// SessionRepository handles play session data access
type SessionRepository struct {
	db database.Database
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db database.Database) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create records a play session. The record id and created_on timestamp are
// assigned by the store and written back.
func (r *SessionRepository) Create(ctx context.Context, session *model.SessionRecord) error {
	query := `
		CREATE play_session CONTENT {
			user_id: $user_id,
			game_id: $game_id,
			duration_minutes: $duration_minutes,
			players_text: $players_text,
			winner: $winner,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"user_id":          session.UserID,
		"game_id":          session.GameID,
		"duration_minutes": session.DurationMinutes,
		"players_text":     session.PlayersText,
		"winner":           session.Winner,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, ok := extractFirstRecord(results)
	if !ok {
		return database.ErrQuery
	}
	session.ID = extractRecordID(created)
	session.CreatedOn = getTime(created, "created_on")
	return nil
}

// GetByID retrieves a session by its record id, scoped to a (user, game)
// pair. Returns nil without error when the id does not exist, is not a
// session id at all, or belongs to a different user or game.
func (r *SessionRepository) GetByID(ctx context.Context, userID, gameID, sessionID string) (*model.SessionRecord, error) {
	if !strings.HasPrefix(sessionID, sessionIDPrefix) {
		return nil, nil
	}

	query := `SELECT * FROM ONLY type::record($id)`
	vars := map[string]interface{}{"id": sessionID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	record, ok := asRecord(result)
	if !ok {
		return nil, nil
	}

	session := parseSessionRecord(record)
	if session.UserID != userID || session.GameID != gameID {
		return nil, nil
	}
	return session, nil
}

// ListByGame retrieves all sessions for a (user, game) pair, newest first
func (r *SessionRepository) ListByGame(ctx context.Context, userID, gameID string) ([]*model.SessionRecord, error) {
	query := `
		SELECT * FROM play_session
		WHERE user_id = $user_id AND game_id = $game_id
		ORDER BY created_on DESC
	`
	vars := map[string]interface{}{"user_id": userID, "game_id": gameID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := extractRecords(results)
	sessions := make([]*model.SessionRecord, 0, len(records))
	for _, record := range records {
		sessions = append(sessions, parseSessionRecord(record))
	}
	return sessions, nil
}

// ListByUser retrieves every session a user has logged across all games
func (r *SessionRepository) ListByUser(ctx context.Context, userID string) ([]*model.SessionRecord, error) {
	query := `SELECT * FROM play_session WHERE user_id = $user_id`
	vars := map[string]interface{}{"user_id": userID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := extractRecords(results)
	sessions := make([]*model.SessionRecord, 0, len(records))
	for _, record := range records {
		sessions = append(sessions, parseSessionRecord(record))
	}
	return sessions, nil
}

// Update applies field updates to a session and returns the updated record.
// Returns nil without error when the session no longer exists.
func (r *SessionRepository) Update(ctx context.Context, sessionID string, updates map[string]interface{}) (*model.SessionRecord, error) {
	if len(updates) == 0 || !strings.HasPrefix(sessionID, sessionIDPrefix) {
		return nil, nil
	}

	setClauses := make([]string, 0, len(updates))
	vars := map[string]interface{}{"id": sessionID}
	for field, value := range updates {
		setClauses = append(setClauses, field+" = $"+field)
		vars[field] = value
	}

	query := `UPDATE ONLY type::record($id) SET ` + strings.Join(setClauses, ", ")

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	record, ok := asRecord(result)
	if !ok {
		return nil, nil
	}
	return parseSessionRecord(record), nil
}

// Delete removes a session by record id
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if !strings.HasPrefix(sessionID, sessionIDPrefix) {
		return nil
	}

	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": sessionID}

	return r.db.Execute(ctx, query, vars)
}

// parseSessionRecord converts a store record to a session record
func parseSessionRecord(m map[string]interface{}) *model.SessionRecord {
	return &model.SessionRecord{
		ID:              extractRecordID(m),
		UserID:          getString(m, "user_id"),
		GameID:          getString(m, "game_id"),
		DurationMinutes: getFloat(m, "duration_minutes"),
		PlayersText:     getString(m, "players_text"),
		Winner:          getString(m, "winner"),
		CreatedOn:       getTime(m, "created_on"),
	}
}
