// internal/composer/assembler/models.go

package assembler

import (
	"pitchforge/internal/composer/projection"
	"pitchforge/internal/composer/sections"
	"pitchforge/internal/composer/sellerctx"
	"pitchforge/internal/models"
)

// Request carries everything known about one composition: the prospect,
// the seller, and the knobs the caller turned.
type Request struct {
	Level       models.DocumentLevel
	Inputs      *models.PitchInputs
	Profile     *models.SellerProfile
	Branding    models.BrandingOptions
	ICPID       string
	PricingTier string

	// Market overrides Inputs.MarketData when set, so enrichment results
	// can be injected without mutating the caller's inputs.
	Market  *models.MarketData
	Reviews *models.ReviewAnalytics
}

// ComposedDocument is the full structured document: an ordered section
// list plus the shared context and projection the sections were built
// from. It serializes deterministically.
type ComposedDocument struct {
	Level      models.DocumentLevel  `json:"level"`
	Flags      sections.Flags        `json:"flags"`
	Context    sellerctx.Context     `json:"context"`
	Projection projection.Projection `json:"projection"`
	Sections   []Section             `json:"sections"`
}

// Section is one rendered-ready slot: identity, numbering, and the exact
// data slice its renderer consumes.
type Section struct {
	ID       string                 `json:"id"`
	Position int                    `json:"position"`
	Total    int                    `json:"total"`
	Data     map[string]interface{} `json:"data"`
}
