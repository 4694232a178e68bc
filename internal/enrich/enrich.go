// internal/enrich/enrich.go

// Package enrich looks up local market intelligence for a prospect from an
// external business-data API. It fills the marketData gap when a request
// arrives without one; lookup failures degrade to no data and never fail
// document composition.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	commonhttp "pitchforge/internal/common/http"
	"pitchforge/internal/models"
)

const (
	defaultTimeout   = 3 * time.Second
	defaultMaxTrends = 4
)

var ErrLookupTimeout = errors.New("MARKET_LOOKUP_TIMEOUT")

type Config struct {
	Enabled   bool
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	MaxTrends int
}

// Client queries the market data API. Zero-value config disables lookups
// entirely, so unconfigured deployments skip the network round trip.
type Client struct {
	config Config
	http   *commonhttp.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxTrends <= 0 {
		cfg.MaxTrends = defaultMaxTrends
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		config: cfg,
		http:   commonhttp.NewClient(cfg.Timeout),
		logger: logger,
	}
}

// Enabled reports whether lookups will actually hit the API.
func (c *Client) Enabled() bool {
	return c.config.Enabled && c.config.BaseURL != ""
}

// FetchMarketData queries the API for the prospect's area. A disabled
// client returns (nil, nil); callers treat nil data as "compose without
// the market section".
func (c *Client) FetchMarketData(ctx context.Context, inputs *models.PitchInputs) (*models.MarketData, error) {
	if !c.Enabled() || inputs == nil || inputs.BusinessName == "" {
		return nil, nil
	}

	lookupURL, err := c.buildLookupURL(inputs)
	if err != nil {
		return nil, fmt.Errorf("build lookup url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if commonhttp.IsTimeout(err) || ctx.Err() == context.DeadlineExceeded {
			return nil, ErrLookupTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market API returned %d", resp.StatusCode)
	}

	var apiResponse struct {
		OpportunityScore float64      `json:"opportunityScore"`
		SaturationLevel  string       `json:"saturationLevel"`
		Summary          string       `json:"summary"`
		Competitors      []competitor `json:"competitors"`
		Trends           []string     `json:"trends"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	data := &models.MarketData{
		OpportunityScore: apiResponse.OpportunityScore,
		SaturationLevel:  strings.ToLower(strings.TrimSpace(apiResponse.SaturationLevel)),
		LocalCompetitors: countCompetitors(apiResponse.Competitors, inputs.BusinessName),
		SeasonalTrends:   topTrends(apiResponse.Trends, c.config.MaxTrends),
		Summary:          apiResponse.Summary,
	}

	c.logger.Info("market data fetched",
		zap.String("businessName", inputs.BusinessName),
		zap.Float64("opportunityScore", apiResponse.OpportunityScore),
		zap.Int("localCompetitors", data.LocalCompetitors))

	return data, nil
}

func (c *Client) buildLookupURL(inputs *models.PitchInputs) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", err
	}

	query := inputs.BusinessName
	for _, part := range []string{inputs.City, inputs.State, inputs.Industry} {
		if part != "" {
			query += " " + part
		}
	}

	params := url.Values{}
	params.Add("key", c.config.APIKey)
	params.Add("q", query)
	baseURL.RawQuery = params.Encode()
	return baseURL.String(), nil
}

type competitor struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// countCompetitors dedupes by normalized name and excludes the prospect
// itself, which the API often echoes back as the top result.
func countCompetitors(competitors []competitor, businessName string) int {
	self := strings.ToLower(strings.TrimSpace(businessName))
	seen := make(map[string]bool)
	count := 0
	for _, competitor := range competitors {
		name := strings.ToLower(strings.TrimSpace(competitor.Name))
		if name == "" || name == self || seen[name] {
			continue
		}
		seen[name] = true
		count++
	}
	return count
}

func topTrends(trends []string, limit int) []string {
	cleaned := make([]string, 0, len(trends))
	seen := make(map[string]bool)
	for _, trend := range trends {
		trimmed := strings.TrimSpace(trend)
		if trimmed == "" || seen[strings.ToLower(trimmed)] {
			continue
		}
		seen[strings.ToLower(trimmed)] = true
		cleaned = append(cleaned, trimmed)
	}
	sort.Strings(cleaned)
	if len(cleaned) > limit {
		cleaned = cleaned[:limit]
	}
	return cleaned
}
