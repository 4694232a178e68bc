// internal/enrich/enrich_test.go
package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pitchforge/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig(baseURL string) Config {
	return Config{
		Enabled:   true,
		BaseURL:   baseURL,
		APIKey:    "test-api-key",
		Timeout:   3 * time.Second,
		MaxTrends: 4,
	}
}

func createTestInputs() *models.PitchInputs {
	return &models.PitchInputs{
		BusinessName: "Blue Fern Bistro",
		City:         "Portland",
		State:        "OR",
		Industry:     "restaurant",
	}
}

const marketAPIResponse = `{
	"opportunityScore": 72.5,
	"saturationLevel": "Medium ",
	"summary": "Dense dining corridor with weak delivery coverage.",
	"competitors": [
		{"name": "Blue Fern Bistro", "rating": 4.4},
		{"name": "Copper Kettle", "rating": 4.1},
		{"name": "copper kettle", "rating": 4.1},
		{"name": "", "rating": 3.0},
		{"name": "Juniper & Vine", "rating": 4.6}
	],
	"trends": ["summer patio season", "holiday catering", " summer patio season", "holiday catering"]
}`

// ==========================
// FetchMarketData Tests
// ==========================

func TestFetchMarketData_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))
		assert.Equal(t, "Blue Fern Bistro Portland OR restaurant", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(marketAPIResponse))
	}))
	defer server.Close()

	client := NewClient(createTestConfig(server.URL), zaptest.NewLogger(t))
	data, err := client.FetchMarketData(context.Background(), createTestInputs())

	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, 72.5, data.OpportunityScore)
	assert.Equal(t, "medium", data.SaturationLevel)
	assert.Equal(t, "Dense dining corridor with weak delivery coverage.", data.Summary)

	// duplicate and the prospect itself are excluded
	assert.Equal(t, 2, data.LocalCompetitors)
	assert.Equal(t, []string{"holiday catering", "summer patio season"}, data.SeasonalTrends)
}

func TestFetchMarketData_DisabledReturnsNoData(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		inputs *models.PitchInputs
	}{
		{
			name:   "disabled flag",
			config: Config{Enabled: false, BaseURL: "http://localhost:9"},
			inputs: createTestInputs(),
		},
		{
			name:   "no base URL",
			config: Config{Enabled: true},
			inputs: createTestInputs(),
		},
		{
			name:   "nil inputs",
			config: createTestConfig("http://localhost:9"),
			inputs: nil,
		},
		{
			name:   "blank business name",
			config: createTestConfig("http://localhost:9"),
			inputs: &models.PitchInputs{City: "Portland"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.config, zaptest.NewLogger(t))
			data, err := client.FetchMarketData(context.Background(), tt.inputs)
			assert.NoError(t, err)
			assert.Nil(t, data)
		})
	}
}

func TestFetchMarketData_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := createTestConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond

	client := NewClient(cfg, zaptest.NewLogger(t))
	data, err := client.FetchMarketData(context.Background(), createTestInputs())

	assert.Nil(t, data)
	assert.ErrorIs(t, err, ErrLookupTimeout)
}

func TestFetchMarketData_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(createTestConfig(server.URL), zaptest.NewLogger(t))
	data, err := client.FetchMarketData(context.Background(), createTestInputs())

	assert.Nil(t, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchMarketData_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(createTestConfig(server.URL), zaptest.NewLogger(t))
	data, err := client.FetchMarketData(context.Background(), createTestInputs())

	assert.Nil(t, data)
	assert.Error(t, err)
}

// ==========================
// Helper Tests
// ==========================

func TestCountCompetitors(t *testing.T) {
	competitors := []competitor{
		{Name: "Blue Fern Bistro", Rating: 4.4},
		{Name: "Copper Kettle", Rating: 4.1},
		{Name: "COPPER KETTLE", Rating: 4.1},
		{Name: "  "},
		{Name: "Juniper & Vine", Rating: 4.6},
	}

	assert.Equal(t, 2, countCompetitors(competitors, "Blue Fern Bistro"))
	assert.Equal(t, 3, countCompetitors(competitors, "Some Other Shop"))
	assert.Equal(t, 0, countCompetitors(nil, "Blue Fern Bistro"))
}

func TestTopTrends(t *testing.T) {
	trends := []string{"zesty winter menus", "  ", "brunch demand", "Brunch Demand", "patio season", "holiday catering", "brunch demand"}

	got := topTrends(trends, 3)
	assert.Equal(t, []string{"brunch demand", "holiday catering", "patio season"}, got)

	assert.Empty(t, topTrends(nil, 3))
}

func TestClientEnabled(t *testing.T) {
	assert.False(t, NewClient(Config{}, nil).Enabled())
	assert.False(t, NewClient(Config{Enabled: true}, nil).Enabled())
	assert.True(t, NewClient(Config{Enabled: true, BaseURL: "http://api.example"}, nil).Enabled())
}
