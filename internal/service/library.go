package service

import (
	"context"
	"errors"
	"sort"

	"github.com/gamevault/api/internal/database"
	"github.com/gamevault/api/internal/model"
)

// LibraryRepositoryInterface defines the ownership record storage interface
type LibraryRepositoryInterface interface {
	Get(ctx context.Context, userID, gameID string) (*model.OwnershipRecord, error)
	Create(ctx context.Context, rec *model.OwnershipRecord) error
	ListGameIDs(ctx context.Context, userID string) ([]string, error)
	DeleteWithSessions(ctx context.Context, userID, gameID string) error
}

// CatalogResolver resolves catalog detail for library and session listings
type CatalogResolver interface {
	GetByID(ctx context.Context, gameID string) (*model.CatalogEntry, error)
	ResolveByIDs(ctx context.Context, gameIDs []string) (map[string]*model.CatalogEntry, error)
}

// LibraryService handles per-user library business logic
type LibraryService struct {
	repo    LibraryRepositoryInterface
	catalog CatalogResolver
}

// NewLibraryService creates a new library service
func NewLibraryService(repo LibraryRepositoryInterface, catalog CatalogResolver) *LibraryService {
	return &LibraryService{repo: repo, catalog: catalog}
}

// AddGame claims ownership of a catalog game. Not idempotent: adding a game
// already in the library is a conflict. The catalog check and the create are
// separate store calls; a concurrent duplicate create is caught by the
// store's uniqueness constraint.
func (s *LibraryService) AddGame(ctx context.Context, userID, gameID string) (*model.OwnershipRecord, error) {
	entry, err := s.catalog.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrGameNotFound
	}

	existing, err := s.repo.Get(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyInLibrary
	}

	rec := &model.OwnershipRecord{
		UserID: userID,
		GameID: gameID,
		Status: model.StatusOwned,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrAlreadyInLibrary
		}
		return nil, err
	}
	return rec, nil
}

// RemoveGame removes an ownership record and every play session logged under
// it, in one atomic batch.
func (s *LibraryService) RemoveGame(ctx context.Context, userID, gameID string) error {
	existing, err := s.repo.Get(ctx, userID, gameID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotInLibrary
	}
	return s.repo.DeleteWithSessions(ctx, userID, gameID)
}

// ListGames retrieves full catalog detail for every game in the user's
// library, ordered by name. Owned games whose catalog entry has been deleted
// are skipped. An empty library yields an empty slice.
func (s *LibraryService) ListGames(ctx context.Context, userID string) ([]*model.CatalogEntry, error) {
	gameIDs, err := s.repo.ListGameIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(gameIDs) == 0 {
		return []*model.CatalogEntry{}, nil
	}

	resolved, err := s.catalog.ResolveByIDs(ctx, gameIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]*model.CatalogEntry, 0, len(resolved))
	for _, id := range gameIDs {
		if entry, ok := resolved[id]; ok {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}
