package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gamevault/api/internal/database"
	"github.com/gamevault/api/internal/model"
)

// UserRepository handles user profile data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a user profile. The username is also stored lowercased for
// case-insensitive availability checks.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			uid: $uid,
			email: $email,
			username: $username,
			username_lower: $username_lower,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"uid":            user.UID,
		"email":          user.Email,
		"username":       user.Username,
		"username_lower": strings.ToLower(user.Username),
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: username already taken", database.ErrDuplicate)
		}
		return err
	}

	created, ok := extractFirstRecord(results)
	if !ok {
		return database.ErrQuery
	}
	user.CreatedOn = getTime(created, "created_on")
	return nil
}

// GetByUID retrieves a user profile by auth uid.
// Returns nil without error when no profile exists.
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*model.User, error) {
	query := `SELECT * FROM user WHERE uid = $uid LIMIT 1`
	vars := map[string]interface{}{"uid": uid}

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
	return parseUser(record), nil
}

// UsernameExists reports whether a username is already taken, ignoring case
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT uid FROM user WHERE username_lower = $username_lower LIMIT 1`
	vars := map[string]interface{}{"username_lower": strings.ToLower(username)}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	_, ok := asRecord(result)
	return ok, nil
}

// parseUser converts a store record to a user
func parseUser(m map[string]interface{}) *model.User {
	return &model.User{
		UID:       getString(m, "uid"),
		Email:     getString(m, "email"),
		Username:  getString(m, "username"),
		CreatedOn: getTime(m, "created_on"),
	}
}
