// internal/search/search_test.go
package search

import (
	"context"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ==========================
// Query Builder Tests
// ==========================

func TestBuildSearchBody_FullTextWithUserScope(t *testing.T) {
	body := buildSearchBody("blue fern", "user-123")

	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	filter := boolQuery["filter"].([]interface{})

	require.Len(t, must, 1)
	multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "blue fern", multiMatch["query"])
	assert.Equal(t, []string{"businessName^3", "industry^2", "text"}, multiMatch["fields"])

	require.Len(t, filter, 1)
	term := filter[0].(map[string]interface{})["term"].(map[string]interface{})
	assert.Equal(t, "user-123", term["userId"])

	_, hasSort := body["sort"]
	assert.False(t, hasSort)
}

func TestBuildSearchBody_EmptyQueryListsByRecency(t *testing.T) {
	body := buildSearchBody("", "")

	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	filter := boolQuery["filter"].([]interface{})

	require.Len(t, must, 1)
	_, isMatchAll := must[0].(map[string]interface{})["match_all"]
	assert.True(t, isMatchAll)
	assert.Empty(t, filter)

	sort := body["sort"].([]interface{})
	require.Len(t, sort, 1)
	createdAt := sort[0].(map[string]interface{})["createdAt"].(map[string]interface{})
	assert.Equal(t, "desc", createdAt["order"])
}

// ==========================
// Validation Tests
// ==========================

func TestIndex_RequiresDocumentID(t *testing.T) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{})
	require.NoError(t, err)
	archive := NewArchive(client, "", zaptest.NewLogger(t))

	err = archive.Index(context.Background(), &PitchDocument{})
	assert.ErrorIs(t, err, ErrIndexingFailed)

	err = archive.Index(context.Background(), nil)
	assert.ErrorIs(t, err, ErrIndexingFailed)
}

func TestNewArchive_Defaults(t *testing.T) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{})
	require.NoError(t, err)

	archive := NewArchive(client, "", nil)
	assert.Equal(t, DefaultIndex, archive.index)
	assert.NotNil(t, archive.logger)
}

// ==========================
// Integration Tests (require a running Elasticsearch)
// ==========================

func createRealElasticsearchClient(t *testing.T) *elasticsearch.Client {
	cfg := elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
	}

	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		t.Skipf("Skipping test: Failed to create Elasticsearch client: %v", err)
		return nil
	}

	res, err := esClient.Info()
	if err != nil {
		t.Skipf("Skipping test: Elasticsearch container not responding: %v", err)
		return nil
	}
	defer res.Body.Close()

	if res.IsError() {
		t.Skipf("Skipping test: Elasticsearch error: %s", res.String())
		return nil
	}
	return esClient
}

func TestArchive_IndexAndSearch(t *testing.T) {
	esClient := createRealElasticsearchClient(t)
	testIndex := "pitchforge-pitches-test"

	esClient.Indices.Delete([]string{testIndex},
		esClient.Indices.Delete.WithIgnoreUnavailable(true))

	archive := NewArchive(esClient, testIndex, zaptest.NewLogger(t))
	ctx := context.Background()
	require.NoError(t, archive.EnsureIndex(ctx))
	require.NoError(t, archive.EnsureIndex(ctx)) // second call is a no-op
	now := time.Now().UTC()

	docs := []*PitchDocument{
		{
			ID:           "pitch-1",
			UserID:       "user-123",
			Level:        "deck",
			BusinessName: "Blue Fern Bistro",
			Industry:     "restaurants",
			City:         "Portland",
			Text:         "A growth plan for Blue Fern Bistro",
			CreatedAt:    now,
		},
		{
			ID:           "pitch-2",
			UserID:       "user-456",
			Level:        "outreach",
			BusinessName: "Gresham Garage",
			Industry:     "automotive",
			Text:         "Quick question about Gresham Garage",
			CreatedAt:    now.Add(-time.Hour),
		},
	}
	for _, doc := range docs {
		require.NoError(t, archive.Index(ctx, doc))
	}

	_, err := esClient.Indices.Refresh(esClient.Indices.Refresh.WithIndex(testIndex))
	require.NoError(t, err)

	// full-text match on business name
	result, err := archive.Search(ctx, "blue fern", "", 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, result.TotalHits)
	assert.Equal(t, "pitch-1", result.Documents[0].ID)
	assert.Greater(t, result.MaxScore, 0.0)

	// user scope filters out the other user's pitch
	result, err = archive.Search(ctx, "", "user-456", 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, result.TotalHits)
	assert.Equal(t, "Gresham Garage", result.Documents[0].BusinessName)

	// empty query lists everything newest first
	result, err = archive.Search(ctx, "", "", 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, result.TotalHits)
	assert.Equal(t, "pitch-1", result.Documents[0].ID)
}
