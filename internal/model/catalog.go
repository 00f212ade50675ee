package model

import (
	"strings"
	"time"
)

// PlayerRange is the supported player count for a game
type PlayerRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// PlayTimeRange is the typical play time in minutes
type PlayTimeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Rating aggregates community ratings for a game
type Rating struct {
	Avg   *float64 `json:"avg"`
	Count int      `json:"count"`
}

// CatalogEntry represents a game's descriptive record in the shared catalog.
// Entries are owned by the catalog store; the library and session layers only
// read them by id or by id-set membership.
type CatalogEntry struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Category           string        `json:"category,omitempty"`
	Age                string        `json:"age,omitempty"`
	Players            PlayerRange   `json:"players"`
	PlayTime           PlayTimeRange `json:"play_time"`
	Complexity         float64       `json:"complexity,omitempty"`
	Mechanics          []string      `json:"mechanics,omitempty"`
	Themes             []string      `json:"themes,omitempty"`
	Tags               []string      `json:"tags,omitempty"`
	Publisher          string        `json:"publisher,omitempty"`
	Designers          []string      `json:"designers,omitempty"`
	ReleaseYear        int           `json:"release_year,omitempty"`
	LanguageDependence int           `json:"language_dependence,omitempty"`
	ShortDescription   string        `json:"short_description,omitempty"`
	ImageURL           *string       `json:"image_url"`
	Rating             Rating        `json:"rating"`
	CreatedOn          time.Time     `json:"created_on"`
	UpdatedOn          time.Time     `json:"updated_on"`
}

// CreateCatalogEntryRequest represents a request to add a game to the catalog
type CreateCatalogEntryRequest struct {
	ID                 string        `json:"id,omitempty"`
	Name               string        `json:"name"`
	Category           string        `json:"category,omitempty"`
	Age                string        `json:"age,omitempty"`
	Players            PlayerRange   `json:"players"`
	PlayTime           PlayTimeRange `json:"play_time"`
	Complexity         float64       `json:"complexity,omitempty"`
	Mechanics          []string      `json:"mechanics,omitempty"`
	Themes             []string      `json:"themes,omitempty"`
	Tags               []string      `json:"tags,omitempty"`
	Publisher          string        `json:"publisher,omitempty"`
	Designers          []string      `json:"designers,omitempty"`
	ReleaseYear        int           `json:"release_year,omitempty"`
	LanguageDependence int           `json:"language_dependence,omitempty"`
	ShortDescription   string        `json:"short_description,omitempty"`
	ImageURL           *string       `json:"image_url,omitempty"`
}

// Validate validates the create catalog entry request
func (r *CreateCatalogEntryRequest) Validate() []FieldError {
	var errors []FieldError

	if strings.TrimSpace(r.Name) == "" {
		errors = append(errors, FieldError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(r.Name) > 200 {
		errors = append(errors, FieldError{
			Field:   "name",
			Message: "name exceeds maximum length",
		})
	}

	return errors
}

// UpdateCatalogEntryRequest represents a merge-style partial update of a
// catalog entry. Nil fields are left unchanged.
type UpdateCatalogEntryRequest struct {
	Name               *string        `json:"name,omitempty"`
	Category           *string        `json:"category,omitempty"`
	Age                *string        `json:"age,omitempty"`
	Players            *PlayerRange   `json:"players,omitempty"`
	PlayTime           *PlayTimeRange `json:"play_time,omitempty"`
	Complexity         *float64       `json:"complexity,omitempty"`
	Mechanics          []string       `json:"mechanics,omitempty"`
	Themes             []string       `json:"themes,omitempty"`
	Tags               []string       `json:"tags,omitempty"`
	Publisher          *string        `json:"publisher,omitempty"`
	Designers          []string       `json:"designers,omitempty"`
	ReleaseYear        *int           `json:"release_year,omitempty"`
	LanguageDependence *int           `json:"language_dependence,omitempty"`
	ShortDescription   *string        `json:"short_description,omitempty"`
	ImageURL           *string        `json:"image_url,omitempty"`
}

// Validate validates the update catalog entry request
func (r *UpdateCatalogEntryRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errors = append(errors, FieldError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	return errors
}
