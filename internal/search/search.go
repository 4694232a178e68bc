// internal/search/search.go

// Package search archives generated pitches in Elasticsearch so sales teams
// can find past documents by business, industry, or document text. Indexing
// failures never fail pitch creation; the archive is a secondary copy of
// what postgres already holds.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

const (
	DefaultIndex = "pitchforge-pitches"

	defaultSize = 20
	maxSize     = 100
)

var (
	ErrIndexingFailed    = errors.New("INDEXING_FAILED")
	ErrSearchQueryFailed = errors.New("SEARCH_QUERY_FAILED")
)

// PitchDocument is the indexed form of a pitch: the searchable fields plus
// the rendered document text.
type PitchDocument struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Level        string    `json:"level"`
	BusinessName string    `json:"businessName"`
	Industry     string    `json:"industry,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	Text         string    `json:"text,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Result is one page of search hits.
type Result struct {
	Documents []PitchDocument `json:"documents"`
	TotalHits int64           `json:"totalHits"`
	MaxScore  float64         `json:"maxScore"`
	Took      int64           `json:"took"`
}

// Archive wraps the Elasticsearch pitch index.
type Archive struct {
	client *elasticsearch.Client
	index  string
	logger *zap.Logger
}

func NewArchive(client *elasticsearch.Client, index string, logger *zap.Logger) *Archive {
	if index == "" {
		index = DefaultIndex
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{
		client: client,
		index:  index,
		logger: logger,
	}
}

// pitchMappings declares userId and level as keywords so term filters match
// exact values, and createdAt as a date so recency sorting works.
const pitchMappings = `{
	"mappings": {
		"properties": {
			"userId":       {"type": "keyword"},
			"level":        {"type": "keyword"},
			"businessName": {"type": "text"},
			"industry":     {"type": "text"},
			"city":         {"type": "text"},
			"state":        {"type": "keyword"},
			"text":         {"type": "text"},
			"createdAt":    {"type": "date"}
		}
	}
}`

// EnsureIndex creates the pitch index with its mappings when missing.
func (a *Archive) EnsureIndex(ctx context.Context) error {
	res, err := a.client.Indices.Exists([]string{a.index},
		a.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: check index: %v", ErrIndexingFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: check index: %s", ErrIndexingFailed, res.String())
	}

	createRes, err := a.client.Indices.Create(
		a.index,
		a.client.Indices.Create.WithBody(strings.NewReader(pitchMappings)),
		a.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: create index: %v", ErrIndexingFailed, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("%w: create index: %s", ErrIndexingFailed, createRes.String())
	}

	a.logger.Info("created pitch index", zap.String("index", a.index))
	return nil
}

// Index stores one pitch document under its pitch ID.
func (a *Archive) Index(ctx context.Context, doc *PitchDocument) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("%w: document requires an ID", ErrIndexingFailed)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: marshal document: %v", ErrIndexingFailed, err)
	}

	req := esapi.IndexRequest{
		Index:      a.index,
		DocumentID: doc.ID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, a.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexingFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrIndexingFailed, res.String())
	}

	a.logger.Debug("indexed pitch",
		zap.String("pitchId", doc.ID),
		zap.String("index", a.index))
	return nil
}

// Search runs a full-text query over archived pitches, optionally scoped to
// one user. An empty query matches everything (newest first).
func (a *Archive) Search(ctx context.Context, query, userID string, size int) (*Result, error) {
	if size < 1 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}

	body, err := json.Marshal(buildSearchBody(query, userID))
	if err != nil {
		return nil, fmt.Errorf("%w: marshal query: %v", ErrSearchQueryFailed, err)
	}

	req := esapi.SearchRequest{
		Index: []string{a.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}
	res, err := req.Do(ctx, a.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchQueryFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrSearchQueryFailed, res.String())
	}

	var parsed struct {
		Took int64 `json:"took"`
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			MaxScore float64 `json:"max_score"`
			Hits     []struct {
				Source PitchDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchQueryFailed, err)
	}

	docs := make([]PitchDocument, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return &Result{
		Documents: docs,
		TotalHits: parsed.Hits.Total.Value,
		MaxScore:  parsed.Hits.MaxScore,
		Took:      parsed.Took,
	}, nil
}

// buildSearchBody assembles the bool query: a multi_match over the business
// fields weighted toward the name, with a term filter when scoping to a
// user. Empty queries fall back to match_all sorted by recency.
func buildSearchBody(query, userID string) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if query != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"businessName^3", "industry^2", "text"},
				"type":   "best_fields",
			},
		})
	} else {
		mustClauses = append(mustClauses, map[string]interface{}{
			"match_all": map[string]interface{}{},
		})
	}

	if userID != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"userId": userID},
		})
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   mustClauses,
				"filter": filterClauses,
			},
		},
	}
	if query == "" {
		body["sort"] = []interface{}{
			map[string]interface{}{"createdAt": map[string]interface{}{"order": "desc"}},
		}
	}
	return body
}
