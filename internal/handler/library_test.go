package handler

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/api/internal/middleware"
	"github.com/gamevault/api/internal/model"
	"github.com/gamevault/api/internal/service"
	"github.com/gamevault/api/pkg/jwt"
)

// ============================================================================
// In-memory Fakes
// ============================================================================

type fakeCatalogRepo struct {
	mu      sync.Mutex
	entries map[string]*model.CatalogEntry
	nextID  int
}

func newFakeCatalogRepo(entries ...*model.CatalogEntry) *fakeCatalogRepo {
	repo := &fakeCatalogRepo{entries: make(map[string]*model.CatalogEntry)}
	for _, e := range entries {
		repo.entries[e.ID] = e
	}
	return repo
}

func (f *fakeCatalogRepo) Create(ctx context.Context, entry *model.CatalogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry.ID == "" {
		f.nextID++
		entry.ID = fmt.Sprintf("gen-%d", f.nextID)
	}
	entry.CreatedOn = time.Now()
	entry.UpdatedOn = entry.CreatedOn
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, gameID string) (*model.CatalogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[gameID], nil
}

func (f *fakeCatalogRepo) GetByIDs(ctx context.Context, gameIDs []string) ([]*model.CatalogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.CatalogEntry
	for _, id := range gameIDs {
		if e, ok := f.entries[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) List(ctx context.Context) ([]*model.CatalogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.CatalogEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeCatalogRepo) Update(ctx context.Context, gameID string, updates map[string]interface{}) (*model.CatalogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[gameID]
	if !ok {
		return nil, nil
	}
	if name, ok := updates["name"].(string); ok {
		e.Name = name
	}
	if category, ok := updates["category"].(string); ok {
		e.Category = category
	}
	e.UpdatedOn = time.Now()
	return e, nil
}

func (f *fakeCatalogRepo) Delete(ctx context.Context, gameID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, gameID)
	return nil
}

type fakeLibraryRepo struct {
	mu      sync.Mutex
	records map[string]*model.OwnershipRecord
}

func newFakeLibraryRepo() *fakeLibraryRepo {
	return &fakeLibraryRepo{records: make(map[string]*model.OwnershipRecord)}
}

func libKey(userID, gameID string) string { return userID + "|" + gameID }

func (f *fakeLibraryRepo) Get(ctx context.Context, userID, gameID string) (*model.OwnershipRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[libKey(userID, gameID)], nil
}

func (f *fakeLibraryRepo) Create(ctx context.Context, rec *model.OwnershipRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.AddedOn = time.Now()
	f.records[libKey(rec.UserID, rec.GameID)] = rec
	return nil
}

func (f *fakeLibraryRepo) ListGameIDs(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, rec := range f.records {
		if rec.UserID == userID {
			ids = append(ids, rec.GameID)
		}
	}
	return ids, nil
}

func (f *fakeLibraryRepo) DeleteWithSessions(ctx context.Context, userID, gameID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, libKey(userID, gameID))
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.SessionRecord
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.SessionRecord)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *model.SessionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	session.ID = fmt.Sprintf("play_session:%d", f.nextID)
	session.CreatedOn = time.Now()
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, userID, gameID, sessionID string) (*model.SessionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID || s.GameID != gameID {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSessionRepo) ListByGame(ctx context.Context, userID, gameID string) ([]*model.SessionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.SessionRecord
	for _, s := range f.sessions {
		if s.UserID == userID && s.GameID == gameID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByUser(ctx context.Context, userID string) ([]*model.SessionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.SessionRecord
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, sessionID string, updates map[string]interface{}) (*model.SessionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	if d, ok := updates["duration_minutes"].(float64); ok {
		s.DurationMinutes = d
	}
	if p, ok := updates["players_text"].(string); ok {
		s.PlayersText = p
	}
	if w, ok := updates["winner"].(string); ok {
		s.Winner = w
	}
	return s, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

// ============================================================================
// Test Server
// ============================================================================

type testEnv struct {
	mux        *http.ServeMux
	jwtService *jwt.Service
	catalog    *fakeCatalogRepo
	library    *fakeLibraryRepo
	sessions   *fakeSessionRepo
}

func newTestEnv(t *testing.T, entries ...*model.CatalogEntry) *testEnv {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	jwtService := jwt.NewTestService(privateKey, "test-issuer", time.Hour)

	catalogRepo := newFakeCatalogRepo(entries...)
	libraryRepo := newFakeLibraryRepo()
	sessionRepo := newFakeSessionRepo()

	catalogService := service.NewCatalogService(catalogRepo)
	libraryService := service.NewLibraryService(libraryRepo, catalogService)
	sessionService := service.NewSessionService(sessionRepo, libraryRepo, catalogService)

	catalogHandler := NewCatalogHandler(catalogService)
	libraryHandler := NewLibraryHandler(libraryService)
	sessionHandler := NewSessionHandler(sessionService)

	auth := middleware.Auth(jwtService)
	admin := middleware.AdminAuth(jwtService)

	mux := http.NewServeMux()
	mux.Handle("GET /v1/catalog", auth(http.HandlerFunc(catalogHandler.List)))
	mux.Handle("GET /v1/catalog/{gameId}", auth(http.HandlerFunc(catalogHandler.Get)))
	mux.Handle("POST /v1/catalog", admin(http.HandlerFunc(catalogHandler.Create)))
	mux.Handle("PUT /v1/catalog/{gameId}", admin(http.HandlerFunc(catalogHandler.Update)))
	mux.Handle("DELETE /v1/catalog/{gameId}", admin(http.HandlerFunc(catalogHandler.Delete)))
	mux.Handle("GET /v1/library", auth(http.HandlerFunc(libraryHandler.List)))
	mux.Handle("POST /v1/library/{gameId}", auth(http.HandlerFunc(libraryHandler.Add)))
	mux.Handle("DELETE /v1/library/{gameId}", auth(http.HandlerFunc(libraryHandler.Remove)))
	mux.Handle("POST /v1/library/{gameId}/sessions", auth(http.HandlerFunc(sessionHandler.Create)))
	mux.Handle("GET /v1/library/{gameId}/sessions", auth(http.HandlerFunc(sessionHandler.List)))
	mux.Handle("PATCH /v1/library/{gameId}/sessions/{sessionId}", auth(http.HandlerFunc(sessionHandler.Update)))
	mux.Handle("DELETE /v1/library/{gameId}/sessions/{sessionId}", auth(http.HandlerFunc(sessionHandler.Delete)))
	mux.Handle("GET /v1/sessions", auth(http.HandlerFunc(sessionHandler.ListAll)))

	return &testEnv{
		mux:        mux,
		jwtService: jwtService,
		catalog:    catalogRepo,
		library:    libraryRepo,
		sessions:   sessionRepo,
	}
}

func (e *testEnv) token(t *testing.T, uid, role string) string {
	t.Helper()
	token, err := e.jwtService.Sign(jwt.Claims{UserID: uid, Email: uid + "@example.com", Role: role})
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func catalogEntry(id, name string) *model.CatalogEntry {
	return &model.CatalogEntry{ID: id, Name: name}
}

// ============================================================================
// Library Endpoint Tests
// ============================================================================

func TestAddGame_Endpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))
	token := env.token(t, "user-1", "user")

	rec := env.do(t, http.MethodPost, "/v1/library/catan", token, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data model.OwnershipRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "catan", resp.Data.GameID)
	assert.Equal(t, model.StatusOwned, resp.Data.Status)
	assert.False(t, resp.Data.AddedOn.IsZero())
}

func TestAddGame_Endpoint_UnknownGame(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.token(t, "user-1", "user")

	rec := env.do(t, http.MethodPost, "/v1/library/ghost", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddGame_Endpoint_RepeatConflicts(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))
	token := env.token(t, "user-1", "user")

	first := env.do(t, http.MethodPost, "/v1/library/catan", token, "")
	require.Equal(t, http.StatusCreated, first.Code)

	second := env.do(t, http.MethodPost, "/v1/library/catan", token, "")
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
}

func TestAddGame_Endpoint_RequiresAuth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))

	rec := env.do(t, http.MethodPost, "/v1/library/catan", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRemoveGame_Endpoint_CascadesSessions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))
	token := env.token(t, "user-1", "user")

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/library/catan", token, "").Code)
	created := env.do(t, http.MethodPost, "/v1/library/catan/sessions", token, `{"duration_minutes": 45}`)
	require.Equal(t, http.StatusCreated, created.Code)

	rec := env.do(t, http.MethodDelete, "/v1/library/catan", token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	remaining := env.do(t, http.MethodGet, "/v1/library", token, "")
	var resp struct {
		Data []model.CatalogEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(remaining.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestRemoveGame_Endpoint_NotOwned(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))
	token := env.token(t, "user-1", "user")

	rec := env.do(t, http.MethodDelete, "/v1/library/catan", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListLibrary_Endpoint_EmptyReturnsEmptyArray(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.token(t, "user-1", "user")

	rec := env.do(t, http.MethodGet, "/v1/library", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListLibrary_Endpoint_OrderedByName(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t,
		catalogEntry("g1", "Wingspan"),
		catalogEntry("g2", "Azul"),
	)
	token := env.token(t, "user-1", "user")

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/library/g1", token, "").Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/library/g2", token, "").Code)

	rec := env.do(t, http.MethodGet, "/v1/library", token, "")
	var resp struct {
		Data []model.CatalogEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Azul", resp.Data[0].Name)
	assert.Equal(t, "Wingspan", resp.Data[1].Name)
}

// ============================================================================
// Session Endpoint Tests
// ============================================================================

func TestCreateSession_Endpoint_CoercesStringDuration(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))
	token := env.token(t, "user-1", "user")
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/library/catan", token, "").Code)

	rec := env.do(t, http.MethodPost, "/v1/library/catan/sessions", token, `{"duration_minutes": "90"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data model.SessionRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(90), resp.Data.DurationMinutes)
	assert.Equal(t, "", resp.Data.PlayersText)
	assert.Equal(t, "", resp.Data.Winner)
}

func TestCreateSession_Endpoint_RejectsBadDuration(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))
	token := env.token(t, "user-1", "user")
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/library/catan", token, "").Code)

	rec := env.do(t, http.MethodPost, "/v1/library/catan/sessions", token, `{"duration_minutes": "abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSession_Endpoint_GameNotOwned(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))
	token := env.token(t, "user-1", "user")

	rec := env.do(t, http.MethodPost, "/v1/library/catan/sessions", token, `{"duration_minutes": 45}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateSession_Endpoint_EmptyPatchRejected(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))
	token := env.token(t, "user-1", "user")
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/library/catan", token, "").Code)

	created := env.do(t, http.MethodPost, "/v1/library/catan/sessions", token, `{"duration_minutes": 45}`)
	var createdResp struct {
		Data model.SessionRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdResp))

	rec := env.do(t, http.MethodPatch, "/v1/library/catan/sessions/"+createdResp.Data.ID, token, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSession_Endpoint_PartialKeepsOtherFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))
	token := env.token(t, "user-1", "user")
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/library/catan", token, "").Code)

	created := env.do(t, http.MethodPost, "/v1/library/catan/sessions", token,
		`{"duration_minutes": 45, "winner": "Alice"}`)
	var createdResp struct {
		Data model.SessionRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdResp))

	rec := env.do(t, http.MethodPatch, "/v1/library/catan/sessions/"+createdResp.Data.ID, token,
		`{"winner": "Bob"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data model.SessionRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Bob", resp.Data.Winner)
	assert.Equal(t, float64(45), resp.Data.DurationMinutes)
}

func TestDeleteSession_Endpoint_UnknownSession(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))
	token := env.token(t, "user-1", "user")
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/library/catan", token, "").Code)

	rec := env.do(t, http.MethodDelete, "/v1/library/catan/sessions/play_session:ghost", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAllSessions_Endpoint_AnnotatesGameName(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))
	token := env.token(t, "user-1", "user")
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/library/catan", token, "").Code)
	require.Equal(t, http.StatusCreated,
		env.do(t, http.MethodPost, "/v1/library/catan/sessions", token, `{"duration_minutes": 30}`).Code)

	rec := env.do(t, http.MethodGet, "/v1/sessions", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []model.PlayLogEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Catan", resp.Data[0].GameName)
	assert.Equal(t, "catan", resp.Data[0].GameID)
}

// ============================================================================
// Catalog Endpoint Tests
// ============================================================================

func TestCatalogCreate_Endpoint_RequiresAdmin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userToken := env.token(t, "user-1", "user")

	rec := env.do(t, http.MethodPost, "/v1/catalog", userToken, `{"name": "Catan"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCatalogCreate_Endpoint_AdminSucceeds(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	adminToken := env.token(t, "admin-1", "admin")

	rec := env.do(t, http.MethodPost, "/v1/catalog", adminToken, `{"name": "  Catan  "}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data model.CatalogEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Catan", resp.Data.Name)
	assert.NotEmpty(t, resp.Data.ID)
}

func TestCatalogGet_Endpoint_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.token(t, "user-1", "user")

	rec := env.do(t, http.MethodGet, "/v1/catalog/ghost", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":404`)
}

func TestCatalogDelete_Endpoint_LeavesLibraryEntries(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, catalogEntry("catan", "Catan"))
	userToken := env.token(t, "user-1", "user")
	adminToken := env.token(t, "admin-1", "admin")

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/library/catan", userToken, "").Code)
	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/v1/catalog/catan", adminToken, "").Code)

	// The stale ownership record is tolerated; the listing just omits the
	// deleted game's detail.
	rec := env.do(t, http.MethodGet, "/v1/library", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []model.CatalogEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}
