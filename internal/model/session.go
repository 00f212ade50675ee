package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// SessionRecord represents one logged play of an owned game. A session exists
// only while its parent ownership record exists.
type SessionRecord struct {
	ID              string    `json:"id"`
	UserID          string    `json:"-"`
	GameID          string    `json:"game_id"`
	DurationMinutes float64   `json:"duration_minutes"`
	PlayersText     string    `json:"players_text"`
	Winner          string    `json:"winner"`
	CreatedOn       time.Time `json:"created_on"`
}

// PlayLogEntry is one row of the cross-game play log: a session annotated
// with its game's id and catalog name. GameName is "" when the catalog no
// longer resolves the game.
type PlayLogEntry struct {
	ID              string    `json:"id"`
	GameID          string    `json:"game_id"`
	GameName        string    `json:"game_name"`
	DurationMinutes float64   `json:"duration_minutes"`
	Winner          string    `json:"winner"`
	PlayersText     string    `json:"players_text"`
	CreatedOn       time.Time `json:"created_on"`
}

// CreateSessionRequest represents a request to log a play session.
// DurationMinutes is decoded loosely (number or numeric string) and
// normalized in one place; PlayersText and Winner default to "".
type CreateSessionRequest struct {
	DurationMinutes any     `json:"duration_minutes"`
	PlayersText     *string `json:"players_text,omitempty"`
	Winner          *string `json:"winner,omitempty"`
}

// Validate validates the create session request
func (r *CreateSessionRequest) Validate() []FieldError {
	var errors []FieldError

	if _, ok := NormalizeDuration(r.DurationMinutes); !ok {
		errors = append(errors, FieldError{
			Field:   "duration_minutes",
			Message: "duration_minutes must be a positive number",
		})
	}

	return errors
}

// Duration returns the normalized duration. Only meaningful after Validate
// reported no errors.
func (r *CreateSessionRequest) Duration() float64 {
	d, _ := NormalizeDuration(r.DurationMinutes)
	return d
}

// UpdateSessionRequest represents a partial update of a play session.
// Absent fields are left unchanged.
type UpdateSessionRequest struct {
	DurationMinutes any     `json:"duration_minutes"`
	PlayersText     *string `json:"players_text,omitempty"`
	Winner          *string `json:"winner,omitempty"`
}

// Validate validates the update session request
func (r *UpdateSessionRequest) Validate() []FieldError {
	var errors []FieldError

	if r.IsEmpty() {
		errors = append(errors, FieldError{
			Field:   "patch",
			Message: "at least one field must be supplied",
		})
		return errors
	}

	if r.DurationMinutes != nil {
		if _, ok := NormalizeDuration(r.DurationMinutes); !ok {
			errors = append(errors, FieldError{
				Field:   "duration_minutes",
				Message: "duration_minutes must be a positive number",
			})
		}
	}

	return errors
}

// IsEmpty returns true if the patch contains no recognized fields
func (r *UpdateSessionRequest) IsEmpty() bool {
	return r.DurationMinutes == nil && r.PlayersText == nil && r.Winner == nil
}

// Duration returns the normalized duration and whether one was supplied.
func (r *UpdateSessionRequest) Duration() (float64, bool) {
	if r.DurationMinutes == nil {
		return 0, false
	}
	d, ok := NormalizeDuration(r.DurationMinutes)
	return d, ok
}

// NormalizeDuration coerces a loosely-typed duration value to a finite
// positive float64. It accepts JSON numbers and numeric strings; anything
// else, or a non-finite or non-positive value, is rejected.
func NormalizeDuration(v any) (float64, bool) {
	var d float64

	switch t := v.(type) {
	case float64:
		d = t
	case float32:
		d = float64(t)
	case int:
		d = float64(t)
	case int64:
		d = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		d = parsed
	default:
		return 0, false
	}

	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return 0, false
	}
	return d, true
}

// StringOrEmpty maps an absent optional string to the defined empty value.
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
