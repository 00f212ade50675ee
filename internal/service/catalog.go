package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gamevault/api/internal/database"
	"github.com/gamevault/api/internal/model"
)

// CatalogRepositoryInterface defines the catalog storage interface
type CatalogRepositoryInterface interface {
	Create(ctx context.Context, entry *model.CatalogEntry) error
	GetByID(ctx context.Context, gameID string) (*model.CatalogEntry, error)
	GetByIDs(ctx context.Context, gameIDs []string) ([]*model.CatalogEntry, error)
	List(ctx context.Context) ([]*model.CatalogEntry, error)
	Update(ctx context.Context, gameID string, updates map[string]interface{}) (*model.CatalogEntry, error)
	Delete(ctx context.Context, gameID string) error
}

// CatalogService handles shared catalog business logic. Reads are public;
// writes are an administrative concern enforced at the handler layer.
type CatalogService struct {
	repo CatalogRepositoryInterface
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo CatalogRepositoryInterface) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListGames retrieves all catalog entries ordered by name
func (s *CatalogService) ListGames(ctx context.Context) ([]*model.CatalogEntry, error) {
	return s.repo.List(ctx)
}

// GetGame retrieves a catalog entry by game id
func (s *CatalogService) GetGame(ctx context.Context, gameID string) (*model.CatalogEntry, error) {
	entry, err := s.repo.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrGameNotFound
	}
	return entry, nil
}

// CreateGame adds a new entry to the shared catalog
func (s *CatalogService) CreateGame(ctx context.Context, req *model.CreateCatalogEntryRequest) (*model.CatalogEntry, error) {
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return nil, model.NewValidationError(fieldErrors)
	}

	entry := &model.CatalogEntry{
		ID:                 strings.TrimSpace(req.ID),
		Name:               strings.TrimSpace(req.Name),
		Category:           req.Category,
		Age:                req.Age,
		Players:            req.Players,
		PlayTime:           req.PlayTime,
		Complexity:         req.Complexity,
		Mechanics:          req.Mechanics,
		Themes:             req.Themes,
		Tags:               req.Tags,
		Publisher:          req.Publisher,
		Designers:          req.Designers,
		ReleaseYear:        req.ReleaseYear,
		LanguageDependence: req.LanguageDependence,
		ShortDescription:   req.ShortDescription,
		ImageURL:           req.ImageURL,
	}

	if entry.ID != "" {
		existing, err := s.repo.GetByID(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrGameIDTaken
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrGameIDTaken
		}
		return nil, err
	}
	return entry, nil
}

// UpdateGame applies a merge-style partial update to a catalog entry
func (s *CatalogService) UpdateGame(ctx context.Context, gameID string, req *model.UpdateCatalogEntryRequest) (*model.CatalogEntry, error) {
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return nil, model.NewValidationError(fieldErrors)
	}

	existing, err := s.repo.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrGameNotFound
	}

	updates := buildCatalogUpdates(req)
	updated, err := s.repo.Update(ctx, gameID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrGameNotFound
	}
	return updated, nil
}

// DeleteGame removes a catalog entry. Ownership records pointing at the
// removed game are left in place and resolve to an empty name afterwards.
func (s *CatalogService) DeleteGame(ctx context.Context, gameID string) error {
	existing, err := s.repo.GetByID(ctx, gameID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrGameNotFound
	}
	return s.repo.Delete(ctx, gameID)
}

// GetByID looks up a single catalog entry, returning nil when absent. Unlike
// GetGame this is the resolver form used by the library and session layers,
// where a missing entry is a condition to branch on rather than an error.
func (s *CatalogService) GetByID(ctx context.Context, gameID string) (*model.CatalogEntry, error) {
	return s.repo.GetByID(ctx, gameID)
}

// ResolveByIDs resolves catalog entries for an arbitrary number of game ids,
// fanning out membership queries in chunks of the store limit. Ids with no
// catalog entry are absent from the result map.
func (s *CatalogService) ResolveByIDs(ctx context.Context, gameIDs []string) (map[string]*model.CatalogEntry, error) {
	resolved := make(map[string]*model.CatalogEntry)
	for _, chunk := range chunkIDs(mergeUnique(gameIDs), database.MaxMembershipIDs) {
		entries, err := s.repo.GetByIDs(ctx, chunk)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			resolved[entry.ID] = entry
		}
	}
	return resolved, nil
}

// buildCatalogUpdates maps set request fields to store field updates
func buildCatalogUpdates(req *model.UpdateCatalogEntryRequest) map[string]interface{} {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Players != nil {
		updates["players"] = map[string]interface{}{"min": req.Players.Min, "max": req.Players.Max}
	}
	if req.PlayTime != nil {
		updates["play_time"] = map[string]interface{}{"min": req.PlayTime.Min, "max": req.PlayTime.Max}
	}
	if req.Complexity != nil {
		updates["complexity"] = *req.Complexity
	}
	if req.Mechanics != nil {
		updates["mechanics"] = req.Mechanics
	}
	if req.Themes != nil {
		updates["themes"] = req.Themes
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	if req.Publisher != nil {
		updates["publisher"] = *req.Publisher
	}
	if req.Designers != nil {
		updates["designers"] = req.Designers
	}
	if req.ReleaseYear != nil {
		updates["release_year"] = *req.ReleaseYear
	}
	if req.LanguageDependence != nil {
		updates["language_dependence"] = *req.LanguageDependence
	}
	if req.ShortDescription != nil {
		updates["short_description"] = *req.ShortDescription
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	return updates
}
