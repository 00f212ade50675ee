package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gamevault/api/internal/database"
	"github.com/gamevault/api/internal/model"
)

// CatalogRepository handles catalog entry data access
type CatalogRepository struct {
	db database.Database
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db database.Database) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Create creates a new catalog entry. When entry.ID is empty the store
// generates one; the generated id is written back to the entry.
func (r *CatalogRepository) Create(ctx context.Context, entry *model.CatalogEntry) error {
	gameID := "$game_id"
	vars := map[string]interface{}{
		"name":                entry.Name,
		"category":            entry.Category,
		"age":                 entry.Age,
		"players":             map[string]interface{}{"min": entry.Players.Min, "max": entry.Players.Max},
		"play_time":           map[string]interface{}{"min": entry.PlayTime.Min, "max": entry.PlayTime.Max},
		"complexity":          entry.Complexity,
		"mechanics":           entry.Mechanics,
		"themes":              entry.Themes,
		"tags":                entry.Tags,
		"publisher":           entry.Publisher,
		"designers":           entry.Designers,
		"release_year":        entry.ReleaseYear,
		"language_dependence": entry.LanguageDependence,
		"short_description":   entry.ShortDescription,
		"image_url":           entry.ImageURL,
		"rating":              map[string]interface{}{"avg": entry.Rating.Avg, "count": entry.Rating.Count},
	}

	if entry.ID == "" {
		gameID = "rand::ulid()"
	} else {
		vars["game_id"] = entry.ID
	}

	query := fmt.Sprintf(`
		CREATE game CONTENT {
			game_id: %s,
			name: $name,
			category: $category,
			age: $age,
			players: $players,
			play_time: $play_time,
			complexity: $complexity,
			mechanics: $mechanics,
			themes: $themes,
			tags: $tags,
			publisher: $publisher,
			designers: $designers,
			release_year: $release_year,
			language_dependence: $language_dependence,
			short_description: $short_description,
			image_url: $image_url,
			rating: $rating,
			created_on: time::now(),
			updated_on: time::now()
		}
	`, gameID)

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: catalog entry already exists", database.ErrDuplicate)
		}
		return err
	}

	created, ok := extractFirstRecord(results)
	if !ok {
		return database.ErrQuery
	}

	entry.ID = getString(created, "game_id")
	entry.CreatedOn = getTime(created, "created_on")
	entry.UpdatedOn = getTime(created, "updated_on")
	return nil
}

// GetByID retrieves a catalog entry by its game id.
// Returns nil without error when the entry does not exist.
func (r *CatalogRepository) GetByID(ctx context.Context, gameID string) (*model.CatalogEntry, error) {
	query := `SELECT * FROM game WHERE game_id = $game_id LIMIT 1`
	vars := map[string]interface{}{"game_id": gameID}

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
	return parseCatalogEntry(record), nil
}

// GetByIDs retrieves catalog entries by id-set membership. The id list must
// not exceed the store's membership limit; larger lookups are chunked by the
// caller. Games with no catalog entry are simply absent from the result.
func (r *CatalogRepository) GetByIDs(ctx context.Context, gameIDs []string) ([]*model.CatalogEntry, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	if len(gameIDs) > database.MaxMembershipIDs {
		return nil, fmt.Errorf("%w: membership query accepts at most %d ids, got %d",
			database.ErrLimitExceeded, database.MaxMembershipIDs, len(gameIDs))
	}

	query := `SELECT * FROM game WHERE game_id IN $game_ids`
	vars := map[string]interface{}{"game_ids": gameIDs}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := extractRecords(results)
	entries := make([]*model.CatalogEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, parseCatalogEntry(record))
	}
	return entries, nil
}

// List retrieves all catalog entries ordered by name
func (r *CatalogRepository) List(ctx context.Context) ([]*model.CatalogEntry, error) {
	query := `SELECT * FROM game ORDER BY name ASC`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records := extractRecords(results)
	entries := make([]*model.CatalogEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, parseCatalogEntry(record))
	}
	return entries, nil
}

// Update applies a merge-style partial update and returns the post-update
// entry. The updates map uses store field names; updated_on is restamped.
func (r *CatalogRepository) Update(ctx context.Context, gameID string, updates map[string]interface{}) (*model.CatalogEntry, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, gameID)
	}

	setClauses := make([]string, 0, len(updates)+1)
	vars := map[string]interface{}{"game_id": gameID}
	for field, value := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $set_%s", field, field))
		vars["set_"+field] = value
	}
	setClauses = append(setClauses, "updated_on = time::now()")

	query := fmt.Sprintf(`UPDATE game SET %s WHERE game_id = $game_id`, strings.Join(setClauses, ", "))

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	updated, ok := extractFirstRecord(results)
	if !ok {
		return nil, nil
	}
	return parseCatalogEntry(updated), nil
}

// Delete deletes a catalog entry by its game id
func (r *CatalogRepository) Delete(ctx context.Context, gameID string) error {
	query := `DELETE game WHERE game_id = $game_id`
	return r.db.Execute(ctx, query, map[string]interface{}{"game_id": gameID})
}

// parseCatalogEntry converts a store record to a catalog entry
func parseCatalogEntry(m map[string]interface{}) *model.CatalogEntry {
	entry := &model.CatalogEntry{
		ID:                 getString(m, "game_id"),
		Name:               getString(m, "name"),
		Category:           getString(m, "category"),
		Age:                getString(m, "age"),
		Complexity:         getFloat(m, "complexity"),
		Mechanics:          getStringSlice(m, "mechanics"),
		Themes:             getStringSlice(m, "themes"),
		Tags:               getStringSlice(m, "tags"),
		Publisher:          getString(m, "publisher"),
		Designers:          getStringSlice(m, "designers"),
		ReleaseYear:        getInt(m, "release_year"),
		LanguageDependence: getInt(m, "language_dependence"),
		ShortDescription:   getString(m, "short_description"),
		ImageURL:           getStringPtr(m, "image_url"),
		CreatedOn:          getTime(m, "created_on"),
		UpdatedOn:          getTime(m, "updated_on"),
	}

	if players := getMap(m, "players"); players != nil {
		entry.Players = model.PlayerRange{Min: getInt(players, "min"), Max: getInt(players, "max")}
	}
	if playTime := getMap(m, "play_time"); playTime != nil {
		entry.PlayTime = model.PlayTimeRange{Min: getInt(playTime, "min"), Max: getInt(playTime, "max")}
	}
	if rating := getMap(m, "rating"); rating != nil {
		entry.Rating = model.Rating{Avg: getFloatPtr(rating, "avg"), Count: getInt(rating, "count")}
	}

	return entry
}
