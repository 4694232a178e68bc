// internal/models/pitch.go
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// DocumentLevel identifies which document shape a pitch is generated at.
type DocumentLevel string

const (
	LevelOutreach DocumentLevel = "outreach"
	LevelOnePager DocumentLevel = "onepager"
	LevelDeck     DocumentLevel = "deck"
)

// Valid reports whether the level is one of the supported document levels.
func (l DocumentLevel) Valid() bool {
	switch l {
	case LevelOutreach, LevelOnePager, LevelDeck:
		return true
	}
	return false
}

// ParseLevel normalizes a raw level string, tolerating common spellings.
func ParseLevel(raw string) (DocumentLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "outreach", "outreach-sequence", "emails":
		return LevelOutreach, true
	case "onepager", "one-pager", "one_pager":
		return LevelOnePager, true
	case "deck", "pitch-deck", "pitch_deck":
		return LevelDeck, true
	}
	return "", false
}

// PitchInputs holds everything the caller knows about a prospect business.
// Numeric fields are interface{} because upstream sources deliver them as
// numbers, numeric strings, or not at all; coercion happens at point of use.
type PitchInputs struct {
	BusinessName  string `json:"businessName"`
	ContactName   string `json:"contactName,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Industry      string `json:"industry,omitempty"`
	SubIndustry   string `json:"subIndustry,omitempty"`
	StatedProblem string `json:"statedProblem,omitempty"`

	Rating      interface{} `json:"rating,omitempty"`
	ReviewCount interface{} `json:"reviewCount,omitempty"`

	MonthlyVisits  interface{} `json:"monthlyVisits,omitempty"`
	AvgTicket      interface{} `json:"avgTicket,omitempty"`
	AvgTransaction interface{} `json:"avgTransaction,omitempty"` // legacy alias for avgTicket
	RepeatRate     interface{} `json:"repeatRate,omitempty"`

	TriggerEvent *TriggerEvent `json:"triggerEvent,omitempty"`
	MarketData   *MarketData   `json:"marketData,omitempty"`
	RawReviews   []RawReview   `json:"rawReviews,omitempty"`
}

// TicketValue returns avgTicket, falling back to the legacy avgTransaction alias.
func (p *PitchInputs) TicketValue() interface{} {
	if p.AvgTicket != nil {
		return p.AvgTicket
	}
	return p.AvgTransaction
}

// TriggerEvent describes a recent newsworthy event about the prospect.
type TriggerEvent struct {
	Headline  string   `json:"headline,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	Source    string   `json:"source,omitempty"`
	Date      string   `json:"date,omitempty"`
	KeyPoints []string `json:"keyPoints,omitempty"`
}

// MarketData describes local market intelligence for the prospect's area.
type MarketData struct {
	OpportunityScore interface{} `json:"opportunityScore,omitempty"`
	SaturationLevel  string      `json:"saturationLevel,omitempty"`
	LocalCompetitors int         `json:"localCompetitors,omitempty"`
	SeasonalTrends   []string    `json:"seasonalTrends,omitempty"`
	Summary          string      `json:"summary,omitempty"`
}

// RawReview is a single customer review as scraped from a public profile.
type RawReview struct {
	Author string  `json:"author,omitempty"`
	Rating float64 `json:"rating,omitempty"`
	Text   string  `json:"text,omitempty"`
	Date   string  `json:"date,omitempty"`
}

// PitchRecord is the persisted form of a generated pitch.
type PitchRecord struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Level        DocumentLevel   `json:"level"`
	BusinessName string          `json:"businessName"`
	Industry     string          `json:"industry,omitempty"`
	Inputs       *PitchInputs    `json:"inputs,omitempty"`
	Document     json.RawMessage `json:"document,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}
