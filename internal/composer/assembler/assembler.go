// internal/composer/assembler/assembler.go

// Package assembler orchestrates document composition: it derives presence
// flags from the inputs, plans the section list, and gathers each
// section's data slice. Dirty inputs degrade to defaults; only a broken
// section plan is an error.
package assembler

import (
	"pitchforge/internal/catalog"
	apperrors "pitchforge/internal/common/errors"
	"pitchforge/internal/composer/projection"
	"pitchforge/internal/composer/sections"
	"pitchforge/internal/composer/sellerctx"
	"pitchforge/internal/models"

	"go.uber.org/zap"
)

// Assembler composes documents. Safe for concurrent use.
type Assembler struct {
	logger *zap.Logger
}

// New creates an Assembler. A nil logger disables logging.
func New(logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{logger: logger}
}

// Assemble builds the complete document for a request. The only failure
// modes are an unknown document level and a section plan that cannot
// satisfy contiguous numbering; every data problem degrades silently.
func (a *Assembler) Assemble(req Request) (*ComposedDocument, error) {
	if !req.Level.Valid() {
		return nil, apperrors.NewInvalidDocumentLevelError(string(req.Level))
	}

	inputs := req.Inputs
	if inputs == nil {
		inputs = &models.PitchInputs{}
	}
	market := req.Market
	if market == nil {
		market = inputs.MarketData
	}

	flags := deriveFlags(inputs, market, req.Reviews)

	plan, err := sections.Plan(req.Level, flags)
	if err != nil {
		return nil, apperrors.NewSectionPlanInvalidError(string(req.Level), err.Error())
	}

	intel := catalog.Lookup(inputs.Industry, inputs.SubIndustry)
	proj := projection.Compute(projection.Inputs{
		MonthlyVisits: inputs.MonthlyVisits,
		AvgTicket:     inputs.TicketValue(),
		RepeatRate:    inputs.RepeatRate,
		PricingTier:   req.PricingTier,
	}, &projection.Defaults{
		Label:         intel.Label,
		GrowthRatePct: intel.GrowthRatePct,
		MonthlyVisits: intel.MonthlyVisits,
		AvgTicket:     intel.AvgTicket,
		RepeatRate:    intel.RepeatRate,
	})
	sellerCtx := sellerctx.Resolve(req.Branding, req.Profile, req.ICPID)

	b := &builder{
		inputs:  inputs,
		market:  market,
		reviews: req.Reviews,
		flags:   flags,
		intel:   intel,
		proj:    proj,
		seller:  sellerCtx,
	}

	secs := make([]Section, len(plan))
	for i, planned := range plan {
		data, ok := b.dataFor(planned.ID)
		if !ok {
			// section planned but no data builder: ship it empty rather
			// than break numbering
			a.logger.Warn("no data builder for section",
				zap.String("section_id", planned.ID),
				zap.String("level", string(req.Level)))
		}
		secs[i] = Section{
			ID:       planned.ID,
			Position: planned.Position,
			Total:    planned.Total,
			Data:     data,
		}
	}

	a.logger.Debug("document assembled",
		zap.String("level", string(req.Level)),
		zap.Int("sections", len(secs)),
		zap.Bool("has_trigger", flags.HasTriggerEvent),
		zap.Bool("has_reviews", flags.HasReviewAnalytics),
		zap.Bool("has_market", flags.HasMarketData))

	return &ComposedDocument{
		Level:      req.Level,
		Flags:      flags,
		Context:    sellerCtx,
		Projection: proj,
		Sections:   secs,
	}, nil
}

// deriveFlags computes section gating from input presence. A trigger event
// counts even when its fields are empty; review analytics must be complete;
// market data needs a positive opportunity score.
func deriveFlags(inputs *models.PitchInputs, market *models.MarketData, reviews *models.ReviewAnalytics) sections.Flags {
	hasMarket := false
	if market != nil {
		hasMarket = projection.SafeNumber(market.OpportunityScore, 0, 0) > 0
	}
	return sections.Flags{
		HasTriggerEvent:    inputs.TriggerEvent != nil,
		HasReviewAnalytics: reviews != nil && reviews.Complete(),
		HasMarketData:      hasMarket,
	}
}
