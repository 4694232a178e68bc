// internal/api/handler_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pitchforge/internal/common/config"
	"pitchforge/internal/composer/assembler"
	"pitchforge/internal/enrich"
	"pitchforge/internal/models"
	"pitchforge/internal/notify"
	"pitchforge/internal/quota"
	"pitchforge/internal/search"
	"pitchforge/internal/store"
)

// ==========================
// Test Doubles
// ==========================

type mockStore struct {
	CreateFunc func(ctx context.Context, record *models.PitchRecord) error
	GetFunc    func(ctx context.Context, id string) (*models.PitchRecord, error)
	ListFunc   func(ctx context.Context, userID string, limit int) ([]*models.PitchRecord, error)

	created []*models.PitchRecord
}

func (m *mockStore) Create(ctx context.Context, record *models.PitchRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	m.created = append(m.created, record)
	return nil
}

func (m *mockStore) Get(ctx context.Context, id string) (*models.PitchRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	for _, record := range m.created {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockStore) CountThisMonth(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, record := range m.created {
		if record.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockStore) ListByUser(ctx context.Context, userID string, limit int) ([]*models.PitchRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, limit)
	}
	var records []*models.PitchRecord
	for _, record := range m.created {
		if record.UserID == userID {
			records = append(records, record)
		}
	}
	return records, nil
}

type mockArchive struct {
	IndexFunc  func(ctx context.Context, doc *search.PitchDocument) error
	SearchFunc func(ctx context.Context, query, userID string, size int) (*search.Result, error)

	indexed []*search.PitchDocument
}

func (m *mockArchive) Index(ctx context.Context, doc *search.PitchDocument) error {
	if m.IndexFunc != nil {
		return m.IndexFunc(ctx, doc)
	}
	m.indexed = append(m.indexed, doc)
	return nil
}

func (m *mockArchive) Search(ctx context.Context, query, userID string, size int) (*search.Result, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, userID, size)
	}
	return &search.Result{Documents: []search.PitchDocument{}}, nil
}

type quotaAlert struct {
	userID string
	used   int
	limit  int
}

type mockSender struct {
	SendOutreachFunc func(ctx context.Context, doc *assembler.ComposedDocument, recipient notify.Recipient, sectionID string) (*notify.SendResult, error)

	alerts []quotaAlert
}

func (m *mockSender) SendOutreach(ctx context.Context, doc *assembler.ComposedDocument, recipient notify.Recipient, sectionID string) (*notify.SendResult, error) {
	if m.SendOutreachFunc != nil {
		return m.SendOutreachFunc(ctx, doc, recipient, sectionID)
	}
	return &notify.SendResult{Status: notify.StatusSent}, nil
}

func (m *mockSender) QuotaAlert(ctx context.Context, userID string, used, limit int) {
	m.alerts = append(m.alerts, quotaAlert{userID: userID, used: used, limit: limit})
}

// ==========================
// Test Helper Functions
// ==========================

type testEnv struct {
	router  *gin.Engine
	handler *Handler
	store   *mockStore
	archive *mockArchive
	sender  *mockSender
	limiter *quota.Limiter
	config  *config.Config
}

func createTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "pitchforge"
	cfg.App.Version = "1.4.2"
	cfg.Quota.DefaultMonthlyLimit = 25
	cfg.Quota.PlanLimits = map[string]int{"agency": 100}
	cfg.Quota.AlertThreshold = 0.8
	return cfg
}

func createTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if cfg == nil {
		cfg = createTestConfig()
	}

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zaptest.NewLogger(t)
	st := &mockStore{}
	archive := &mockArchive{}
	sender := &mockSender{}
	limiter := quota.NewLimiter(client, st, cfg.Quota.DefaultMonthlyLimit, logger)

	handler := NewHandler(cfg, Deps{
		Store:   st,
		Limiter: limiter,
		Archive: archive,
		Sender:  sender,
	}, logger)

	return &testEnv{
		router:  handler.Router(),
		handler: handler,
		store:   st,
		archive: archive,
		sender:  sender,
		limiter: limiter,
		config:  cfg,
	}
}

func createPitchBody(t *testing.T, overrides map[string]interface{}) []byte {
	t.Helper()
	body := map[string]interface{}{
		"userId": "user-123",
		"level":  "outreach",
		"inputs": map[string]interface{}{
			"businessName":  "Blue Fern Bistro",
			"contactName":   "Maya Lin",
			"email":         "maya@bluefern.example",
			"city":          "Portland",
			"state":         "OR",
			"industry":      "restaurant",
			"monthlyVisits": 900,
			"avgTicket":     28,
		},
		"branding": map[string]interface{}{
			"companyName": "PitchForge",
		},
	}
	for key, value := range overrides {
		if value == nil {
			delete(body, key)
			continue
		}
		body[key] = value
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return raw
}

func doRequest(env *testEnv, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Code
}

// createStoredPitch assembles a real document and plants it in the store,
// the same shape CreatePitch persists.
func createStoredPitch(t *testing.T, env *testEnv, level models.DocumentLevel) *models.PitchRecord {
	t.Helper()

	doc, err := assembler.New(nil).Assemble(assembler.Request{
		Level: level,
		Inputs: &models.PitchInputs{
			BusinessName: "Blue Fern Bistro",
			ContactName:  "Maya Lin",
			City:         "Portland",
			Industry:     "restaurant",
		},
		Branding: models.BrandingOptions{CompanyName: "PitchForge"},
	})
	require.NoError(t, err)
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	record := &models.PitchRecord{
		UserID:       "user-123",
		Level:        level,
		BusinessName: "Blue Fern Bistro",
		Industry:     "restaurant",
		Document:     raw,
	}
	require.NoError(t, env.store.Create(context.Background(), record))
	return record
}

// ==========================
// Create Pitch Tests
// ==========================

func TestCreatePitch_ComposesStoresAndIndexes(t *testing.T) {
	env := createTestEnv(t, nil)

	w := doRequest(env, http.MethodPost, "/api/v1/pitches", createPitchBody(t, nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID             string          `json:"id"`
		UserID         string          `json:"userId"`
		Level          string          `json:"level"`
		BusinessName   string          `json:"businessName"`
		QuotaRemaining int             `json:"quotaRemaining"`
		Markdown       string          `json:"markdown"`
		Document       json.RawMessage `json:"document"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "user-123", resp.UserID)
	assert.Equal(t, "outreach", resp.Level)
	assert.Equal(t, "Blue Fern Bistro", resp.BusinessName)
	assert.Equal(t, 24, resp.QuotaRemaining)
	assert.Contains(t, resp.Markdown, "Blue Fern Bistro")
	assert.Contains(t, resp.Markdown, "Hi Maya,")

	var doc assembler.ComposedDocument
	require.NoError(t, json.Unmarshal(resp.Document, &doc))
	require.Len(t, doc.Sections, 4)
	for i, section := range doc.Sections {
		assert.Equal(t, i+1, section.Position)
		assert.Equal(t, len(doc.Sections), section.Total)
	}

	require.Len(t, env.store.created, 1)
	record := env.store.created[0]
	assert.Equal(t, resp.ID, record.ID)
	assert.Equal(t, models.LevelOutreach, record.Level)
	assert.NotEmpty(t, record.Document)
	require.NotNil(t, record.Inputs)
	assert.Equal(t, "Blue Fern Bistro", record.Inputs.BusinessName)

	require.Len(t, env.archive.indexed, 1)
	indexed := env.archive.indexed[0]
	assert.Equal(t, resp.ID, indexed.ID)
	assert.Equal(t, "Blue Fern Bistro", indexed.BusinessName)
	assert.Equal(t, "Portland", indexed.City)
	assert.Contains(t, indexed.Text, "Blue Fern Bistro")
}

func TestCreatePitch_RequestValidation(t *testing.T) {
	env := createTestEnv(t, nil)

	tests := []struct {
		name     string
		body     []byte
		wantCode string
	}{
		{
			name:     "body is not json",
			body:     []byte("{nope"),
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "missing userId",
			body:     createPitchBody(t, map[string]interface{}{"userId": nil}),
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "missing inputs",
			body:     createPitchBody(t, map[string]interface{}{"inputs": nil}),
			wantCode: "VALIDATION_FAILED",
		},
		{
			name: "blank business name",
			body: createPitchBody(t, map[string]interface{}{
				"inputs": map[string]interface{}{"businessName": ""},
			}),
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "unknown level",
			body:     createPitchBody(t, map[string]interface{}{"level": "brochure"}),
			wantCode: "INVALID_DOCUMENT_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(env, http.MethodPost, "/api/v1/pitches", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}

	// rejected requests never reach the store or the quota
	assert.Empty(t, env.store.created)
	remaining, err := env.limiter.Remaining(context.Background(), "user-123")
	require.NoError(t, err)
	assert.Equal(t, 25, remaining)
}

func TestCreatePitch_LevelAliasesAccepted(t *testing.T) {
	env := createTestEnv(t, nil)

	body := createPitchBody(t, map[string]interface{}{"level": "one_pager"})
	w := doRequest(env, http.MethodPost, "/api/v1/pitches", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Len(t, env.store.created, 1)
	assert.Equal(t, models.LevelOnePager, env.store.created[0].Level)
}

func TestCreatePitch_QuotaExceeded(t *testing.T) {
	cfg := createTestConfig()
	cfg.Quota.DefaultMonthlyLimit = 1
	cfg.Quota.AlertThreshold = 2.0 // keep the threshold alert out of this test
	env := createTestEnv(t, cfg)

	w := doRequest(env, http.MethodPost, "/api/v1/pitches", createPitchBody(t, nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(env, http.MethodPost, "/api/v1/pitches", createPitchBody(t, nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "QUOTA_EXCEEDED", errorCode(t, w))

	assert.Len(t, env.store.created, 1)
	require.Len(t, env.sender.alerts, 1)
	assert.Equal(t, quotaAlert{userID: "user-123", used: 1, limit: 1}, env.sender.alerts[0])
}

func TestCreatePitch_AlertsWhenNearingQuota(t *testing.T) {
	cfg := createTestConfig()
	cfg.Quota.DefaultMonthlyLimit = 5
	env := createTestEnv(t, cfg)

	for i := 0; i < 3; i++ {
		w := doRequest(env, http.MethodPost, "/api/v1/pitches", createPitchBody(t, nil))
		require.Equal(t, http.StatusCreated, w.Code)
	}
	assert.Empty(t, env.sender.alerts)

	// the fourth pitch crosses 0.8 * 5
	w := doRequest(env, http.MethodPost, "/api/v1/pitches", createPitchBody(t, nil))
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, env.sender.alerts, 1)
	assert.Equal(t, quotaAlert{userID: "user-123", used: 4, limit: 5}, env.sender.alerts[0])
}

func TestCreatePitch_PlanLimitOverridesDefault(t *testing.T) {
	cfg := createTestConfig()
	cfg.Quota.DefaultMonthlyLimit = 1
	cfg.Quota.PlanLimits = map[string]int{"agency": 2}
	cfg.Quota.AlertThreshold = 2.0
	env := createTestEnv(t, cfg)

	agencyBody := createPitchBody(t, map[string]interface{}{
		"userId": "agency-user",
		"plan":   "agency",
	})
	for i := 0; i < 2; i++ {
		w := doRequest(env, http.MethodPost, "/api/v1/pitches", agencyBody)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := doRequest(env, http.MethodPost, "/api/v1/pitches", agencyBody)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// a user without a plan stays on the default limit
	freeBody := createPitchBody(t, map[string]interface{}{"userId": "free-user"})
	w = doRequest(env, http.MethodPost, "/api/v1/pitches", freeBody)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(env, http.MethodPost, "/api/v1/pitches", freeBody)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestCreatePitch_StoreFailureReleasesQuotaSlot(t *testing.T) {
	env := createTestEnv(t, nil)
	env.store.CreateFunc = func(ctx context.Context, record *models.PitchRecord) error {
		return fmt.Errorf("connection refused")
	}

	w := doRequest(env, http.MethodPost, "/api/v1/pitches", createPitchBody(t, nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "DATABASE_INSERT_FAILED", errorCode(t, w))

	remaining, err := env.limiter.Remaining(context.Background(), "user-123")
	require.NoError(t, err)
	assert.Equal(t, 25, remaining)
	assert.Empty(t, env.archive.indexed)
}

func TestCreatePitch_IndexingFailureStillCreates(t *testing.T) {
	env := createTestEnv(t, nil)
	env.archive.IndexFunc = func(ctx context.Context, doc *search.PitchDocument) error {
		return errors.New("index_not_found_exception")
	}

	w := doRequest(env, http.MethodPost, "/api/v1/pitches", createPitchBody(t, nil))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, env.store.created, 1)
}

// ==========================
// Enrichment Tests
// ==========================

func TestCreatePitch_FoldsMarketDataIntoStoredInputs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"opportunityScore": 68.0,
			"saturationLevel": "Low",
			"summary": "Under-served east side.",
			"competitors": [{"name": "Fern & Co"}, {"name": "Rose City Cafe"}],
			"trends": ["holiday catering"]
		}`)
	}))
	t.Cleanup(server.Close)

	env := createTestEnv(t, nil)
	env.handler.enricher = enrich.NewClient(enrich.Config{
		Enabled: true,
		BaseURL: server.URL,
		Timeout: time.Second,
	}, zaptest.NewLogger(t))

	w := doRequest(env, http.MethodPost, "/api/v1/pitches", createPitchBody(t, nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Len(t, env.store.created, 1)
	market := env.store.created[0].Inputs.MarketData
	require.NotNil(t, market)
	assert.Equal(t, "low", market.SaturationLevel)
	assert.Equal(t, 2, market.LocalCompetitors)
	assert.Equal(t, []string{"holiday catering"}, market.SeasonalTrends)
}

func TestCreatePitch_SuppliedMarketDataSkipsLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("lookup should not run when the request carries market data")
	}))
	t.Cleanup(server.Close)

	env := createTestEnv(t, nil)
	env.handler.enricher = enrich.NewClient(enrich.Config{
		Enabled: true,
		BaseURL: server.URL,
		Timeout: time.Second,
	}, zaptest.NewLogger(t))

	body := createPitchBody(t, map[string]interface{}{
		"inputs": map[string]interface{}{
			"businessName": "Blue Fern Bistro",
			"marketData":   map[string]interface{}{"saturationLevel": "high"},
		},
	})
	w := doRequest(env, http.MethodPost, "/api/v1/pitches", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Len(t, env.store.created, 1)
	require.NotNil(t, env.store.created[0].Inputs.MarketData)
	assert.Equal(t, "high", env.store.created[0].Inputs.MarketData.SaturationLevel)
}

func TestCreatePitch_LookupFailureComposesWithoutMarketData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	env := createTestEnv(t, nil)
	env.handler.enricher = enrich.NewClient(enrich.Config{
		Enabled: true,
		BaseURL: server.URL,
		Timeout: time.Second,
	}, zaptest.NewLogger(t))

	w := doRequest(env, http.MethodPost, "/api/v1/pitches", createPitchBody(t, nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Len(t, env.store.created, 1)
	assert.Nil(t, env.store.created[0].Inputs.MarketData)
}

// ==========================
// Retrieval Tests
// ==========================

func TestGetPitch(t *testing.T) {
	env := createTestEnv(t, nil)
	record := createStoredPitch(t, env, models.LevelOutreach)

	w := doRequest(env, http.MethodGet, "/api/v1/pitches/"+record.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.PitchRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, "Blue Fern Bistro", got.BusinessName)
	assert.Equal(t, models.LevelOutreach, got.Level)
	assert.NotEmpty(t, got.Document)
}

func TestGetPitch_NotFound(t *testing.T) {
	env := createTestEnv(t, nil)

	w := doRequest(env, http.MethodGet, "/api/v1/pitches/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PITCH_NOT_FOUND", errorCode(t, w))
}

func TestGetDocument_RendersMarkdownByDefault(t *testing.T) {
	env := createTestEnv(t, nil)
	record := createStoredPitch(t, env, models.LevelOnePager)

	w := doRequest(env, http.MethodGet, "/api/v1/pitches/"+record.ID+"/document", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")

	body := w.Body.String()
	assert.Contains(t, body, "Blue Fern Bistro")
	assert.Contains(t, body, "_Section 1 of 6_")
	assert.Contains(t, body, "_Section 6 of 6_")
}

func TestGetDocument_RendersHTML(t *testing.T) {
	env := createTestEnv(t, nil)
	record := createStoredPitch(t, env, models.LevelOnePager)

	w := doRequest(env, http.MethodGet, "/api/v1/pitches/"+record.ID+"/document?format=html", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<h2")
	assert.NotContains(t, w.Body.String(), "## ")
}

func TestGetDocument_UnknownFormat(t *testing.T) {
	env := createTestEnv(t, nil)
	record := createStoredPitch(t, env, models.LevelOnePager)

	w := doRequest(env, http.MethodGet, "/api/v1/pitches/"+record.ID+"/document?format=docx", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, w))
}

func TestGetDocument_NotFound(t *testing.T) {
	env := createTestEnv(t, nil)

	w := doRequest(env, http.MethodGet, "/api/v1/pitches/"+uuid.New().String()+"/document", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPitches(t *testing.T) {
	env := createTestEnv(t, nil)
	createStoredPitch(t, env, models.LevelOutreach)
	createStoredPitch(t, env, models.LevelDeck)

	other := &models.PitchRecord{UserID: "user-456", Level: models.LevelOutreach, BusinessName: "Other Shop"}
	require.NoError(t, env.store.Create(context.Background(), other))

	w := doRequest(env, http.MethodGet, "/api/v1/pitches?userId=user-123", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Pitches []models.PitchRecord `json:"pitches"`
		Count   int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Pitches, 2)
	for _, pitch := range resp.Pitches {
		assert.Equal(t, "user-123", pitch.UserID)
	}
}

func TestListPitches_RequiresUserID(t *testing.T) {
	env := createTestEnv(t, nil)

	w := doRequest(env, http.MethodGet, "/api/v1/pitches", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, w))
}

func TestListPitches_EmptyListIsNotNull(t *testing.T) {
	env := createTestEnv(t, nil)

	w := doRequest(env, http.MethodGet, "/api/v1/pitches?userId=nobody", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pitches":[]`)
}

// ==========================
// Search Tests
// ==========================

func TestSearchPitches_PassesQueryThrough(t *testing.T) {
	env := createTestEnv(t, nil)

	var gotQuery, gotUser string
	var gotSize int
	env.archive.SearchFunc = func(ctx context.Context, query, userID string, size int) (*search.Result, error) {
		gotQuery, gotUser, gotSize = query, userID, size
		return &search.Result{
			Documents: []search.PitchDocument{{ID: "pitch-1", BusinessName: "Blue Fern Bistro"}},
			TotalHits: 1,
		}, nil
	}

	w := doRequest(env, http.MethodGet, "/api/v1/pitches/search?q=bistro&userId=user-123&size=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bistro", gotQuery)
	assert.Equal(t, "user-123", gotUser)
	assert.Equal(t, 5, gotSize)

	var result search.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, int64(1), result.TotalHits)
	require.Len(t, result.Documents, 1)
	assert.Equal(t, "pitch-1", result.Documents[0].ID)
}

func TestSearchPitches_QueryFailure(t *testing.T) {
	env := createTestEnv(t, nil)
	env.archive.SearchFunc = func(ctx context.Context, query, userID string, size int) (*search.Result, error) {
		return nil, errors.New("search_phase_execution_exception")
	}

	w := doRequest(env, http.MethodGet, "/api/v1/pitches/search?q=bistro", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "SEARCH_QUERY_FAILED", errorCode(t, w))
}

func TestSearchPitches_DisabledWithoutArchive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(createTestConfig(), Deps{Store: &mockStore{}}, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pitches/search?q=bistro", nil)
	w := httptest.NewRecorder()
	handler.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "ELASTICSEARCH_CONNECTION_FAILED", errorCode(t, w))
}

// ==========================
// Send Tests
// ==========================

func TestSendPitch(t *testing.T) {
	env := createTestEnv(t, nil)
	record := createStoredPitch(t, env, models.LevelOutreach)

	var gotRecipient notify.Recipient
	var gotSectionID string
	env.sender.SendOutreachFunc = func(ctx context.Context, doc *assembler.ComposedDocument, recipient notify.Recipient, sectionID string) (*notify.SendResult, error) {
		gotRecipient, gotSectionID = recipient, sectionID
		require.NotNil(t, doc)
		assert.Equal(t, models.LevelOutreach, doc.Level)
		return &notify.SendResult{
			NotificationID: "note-1",
			SectionID:      "proof-email",
			Recipient:      recipient.Email,
			Channel:        "email",
			Status:         notify.StatusSent,
		}, nil
	}

	body := []byte(`{"email": "maya@bluefern.example", "phone": "+15035550142", "sectionId": "proof-email"}`)
	w := doRequest(env, http.MethodPost, "/api/v1/pitches/"+record.ID+"/send", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "maya@bluefern.example", gotRecipient.Email)
	assert.Equal(t, "+15035550142", gotRecipient.Phone)
	assert.Equal(t, "proof-email", gotSectionID)

	var result notify.SendResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, notify.StatusSent, result.Status)
	assert.Equal(t, "note-1", result.NotificationID)
}

func TestSendPitch_RecipientValidation(t *testing.T) {
	env := createTestEnv(t, nil)
	record := createStoredPitch(t, env, models.LevelOutreach)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{}`},
		{name: "malformed email", body: `{"email": "not-an-email"}`},
		{name: "malformed phone", body: `{"email": "maya@bluefern.example", "phone": "x12"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(env, http.MethodPost, "/api/v1/pitches/"+record.ID+"/send", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "RECIPIENT_INVALID", errorCode(t, w))
		})
	}
}

func TestSendPitch_NotFound(t *testing.T) {
	env := createTestEnv(t, nil)

	body := []byte(`{"email": "maya@bluefern.example"}`)
	w := doRequest(env, http.MethodPost, "/api/v1/pitches/"+uuid.New().String()+"/send", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PITCH_NOT_FOUND", errorCode(t, w))
}

func TestSendPitch_SenderErrorMapping(t *testing.T) {
	env := createTestEnv(t, nil)
	record := createStoredPitch(t, env, models.LevelDeck)

	tests := []struct {
		name       string
		sendErr    error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "document is not an outreach sequence",
			sendErr:    fmt.Errorf("%w: level deck", notify.ErrNotOutreach),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "section does not exist",
			sendErr:    fmt.Errorf("%w: victory-lap-email", notify.ErrSectionNotFound),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "delivery failed",
			sendErr:    fmt.Errorf("%w: ses throttled", notify.ErrSendFailed),
			wantStatus: http.StatusBadGateway,
			wantCode:   "NOTIFICATION_SEND_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.sender.SendOutreachFunc = func(ctx context.Context, doc *assembler.ComposedDocument, recipient notify.Recipient, sectionID string) (*notify.SendResult, error) {
				return nil, tt.sendErr
			}

			body := []byte(`{"email": "maya@bluefern.example"}`)
			w := doRequest(env, http.MethodPost, "/api/v1/pitches/"+record.ID+"/send", body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

// ==========================
// Health Tests
// ==========================

func TestHealth(t *testing.T) {
	env := createTestEnv(t, nil)

	w := doRequest(env, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "pitchforge", resp["app"])
	assert.Equal(t, "1.4.2", resp["version"])
}

func TestRecovery_PanicBecomesStandardError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery(zaptest.NewLogger(t)))
	router.GET("/boom", func(c *gin.Context) {
		panic("section data corrupted")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Details string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "section data corrupted")
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkCreatePitch(b *testing.B) {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	if err != nil {
		b.Fatal(err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cfg := createTestConfig()
	cfg.Quota.DefaultMonthlyLimit = 1 << 30
	st := &mockStore{}
	limiter := quota.NewLimiter(client, st, cfg.Quota.DefaultMonthlyLimit, nil)
	router := NewHandler(cfg, Deps{Store: st, Limiter: limiter}, nil).Router()

	body, _ := json.Marshal(map[string]interface{}{
		"userId": "user-123",
		"level":  "deck",
		"inputs": map[string]interface{}{
			"businessName": "Blue Fern Bistro",
			"industry":     "restaurant",
		},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pitches", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			b.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
		}
	}
}
