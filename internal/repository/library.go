package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamevault/api/internal/database"
	"github.com/gamevault/api/internal/model"
)

// LibraryRepository handles ownership record data access
type LibraryRepository struct {
	db database.Database
}

// NewLibraryRepository creates a new library repository
func NewLibraryRepository(db database.Database) *LibraryRepository {
	return &LibraryRepository{db: db}
}

// Get retrieves the ownership record for a (user, game) pair.
// Returns nil without error when the record does not exist.
func (r *LibraryRepository) Get(ctx context.Context, userID, gameID string) (*model.OwnershipRecord, error) {
	query := `SELECT * FROM library_entry WHERE user_id = $user_id AND game_id = $game_id LIMIT 1`
	vars := map[string]interface{}{"user_id": userID, "game_id": gameID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	record, ok := asRecord(result)
	if !ok {
		return nil, database.ErrQuery
	}
	return parseOwnershipRecord(record), nil
}

// Create creates an ownership record. The added_on timestamp is stamped by
// the store and written back to the record.
func (r *LibraryRepository) Create(ctx context.Context, rec *model.OwnershipRecord) error {
	query := `
		CREATE library_entry CONTENT {
			user_id: $user_id,
			game_id: $game_id,
			status: $status,
			added_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"user_id": rec.UserID,
		"game_id": rec.GameID,
		"status":  string(rec.Status),
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: game already in library", database.ErrDuplicate)
		}
		return err
	}

	created, ok := extractFirstRecord(results)
	if !ok {
		return database.ErrQuery
	}
	rec.AddedOn = getTime(created, "added_on")
	return nil
}

// ListGameIDs retrieves the game ids of every entry in a user's library
func (r *LibraryRepository) ListGameIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT game_id FROM library_entry WHERE user_id = $user_id ORDER BY added_on ASC`
	vars := map[string]interface{}{"user_id": userID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := extractRecords(results)
	gameIDs := make([]string, 0, len(records))
	for _, record := range records {
		if id := getString(record, "game_id"); id != "" {
			gameIDs = append(gameIDs, id)
		}
	}
	return gameIDs, nil
}

// DeleteWithSessions removes an ownership record together with every play
// session logged under it, as a single atomic batch. Existence is checked by
// the caller; deleting an absent pair is a no-op here.
func (r *LibraryRepository) DeleteWithSessions(ctx context.Context, userID, gameID string) error {
	batch := database.NewAtomicBatch()
	batch.Add(
		`DELETE library_entry WHERE user_id = $user_id AND game_id = $game_id`,
		map[string]interface{}{"user_id": userID, "game_id": gameID},
	)
	batch.Add(
		`DELETE play_session WHERE user_id = $user_id AND game_id = $game_id`,
		map[string]interface{}{"user_id": userID, "game_id": gameID},
	)
	return batch.Execute(ctx, r.db)
}

// parseOwnershipRecord converts a store record to an ownership record
func parseOwnershipRecord(m map[string]interface{}) *model.OwnershipRecord {
	return &model.OwnershipRecord{
		UserID:  getString(m, "user_id"),
		GameID:  getString(m, "game_id"),
		Status:  model.OwnershipStatus(getString(m, "status")),
		AddedOn: getTime(m, "added_on"),
	}
}
