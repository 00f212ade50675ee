package model

import "time"

// OwnershipStatus represents the status of a library entry
type OwnershipStatus string

const (
	StatusOwned OwnershipStatus = "owned"
)

// IsValid returns true if the status is valid
func (s OwnershipStatus) IsValid() bool {
	return s == StatusOwned
}

// OwnershipRecord represents a user's claim of owning a catalog game.
// At most one record exists per (user, game) pair; it is created only when
// the referenced catalog entry exists, and it owns the game's play sessions.
type OwnershipRecord struct {
	UserID  string          `json:"user_id"`
	GameID  string          `json:"game_id"`
	Status  OwnershipStatus `json:"status"`
	AddedOn time.Time       `json:"added_on"`
}
