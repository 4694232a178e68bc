// internal/composer/sections/skeletons.go

package sections

import (
	"pitchforge/internal/models"
)

// Section IDs. Renderers and the section catalog key off these.
const (
	// outreach
	SectionIntroEmail   = "intro-email"
	SectionTriggerHook  = "trigger-hook"
	SectionValueEmail   = "value-email"
	SectionProofEmail   = "proof-email"
	SectionClosingEmail = "closing-email"

	// onepager
	SectionHeader            = "header"
	SectionProblemStatement  = "problem-statement"
	SectionSolutionOverview  = "solution-overview"
	SectionFinancialSnapshot = "financial-snapshot"
	SectionSocialProof       = "social-proof"
	SectionCallToAction      = "call-to-action"

	// deck
	SectionCover               = "cover"
	SectionBusinessSnapshot    = "business-snapshot"
	SectionMarketIntelligence  = "market-intelligence"
	SectionProblem             = "problem"
	SectionReviewHealth        = "review-health"
	SectionSolution            = "solution"
	SectionProductLineup       = "product-lineup"
	SectionFinancialProjection = "financial-projection"
	SectionEngagementPlan      = "engagement-plan"
	SectionNextSteps           = "next-steps"
)

// skeletons declares the section plan per document level. Optional slots
// name the mandatory section they follow; insertion order within the
// mandatory walk keeps numbering contiguous for every flag combination.
//
// The deck gates nothing on the trigger flag: trigger data enriches the
// business-snapshot section instead of adding a slide.
var skeletons = map[models.DocumentLevel]Skeleton{
	models.LevelOutreach: {
		Mandatory: []string{
			SectionIntroEmail,
			SectionValueEmail,
			SectionProofEmail,
			SectionClosingEmail,
		},
		Optional: []OptionalSpec{
			{ID: SectionTriggerHook, Flag: FlagTriggerEvent, After: SectionIntroEmail},
		},
	},
	models.LevelOnePager: {
		Mandatory: []string{
			SectionHeader,
			SectionProblemStatement,
			SectionSolutionOverview,
			SectionFinancialSnapshot,
			SectionSocialProof,
			SectionCallToAction,
		},
	},
	models.LevelDeck: {
		Mandatory: []string{
			SectionCover,
			SectionBusinessSnapshot,
			SectionProblem,
			SectionSolution,
			SectionProductLineup,
			SectionFinancialProjection,
			SectionEngagementPlan,
			SectionNextSteps,
		},
		Optional: []OptionalSpec{
			{ID: SectionMarketIntelligence, Flag: FlagMarketData, After: SectionBusinessSnapshot},
			{ID: SectionReviewHealth, Flag: FlagReviewAnalytics, After: SectionProblem},
		},
	},
}
