// internal/composer/sections/models.go

package sections

import (
	"fmt"
)

// Flag names a piece of optional input that can gate a section.
type Flag string

const (
	FlagTriggerEvent    Flag = "triggerEvent"
	FlagReviewAnalytics Flag = "reviewAnalytics"
	FlagMarketData      Flag = "marketData"
)

// Flags records which optional inputs are present for one request.
type Flags struct {
	HasTriggerEvent    bool `json:"hasTriggerEvent"`
	HasReviewAnalytics bool `json:"hasReviewAnalytics"`
	HasMarketData      bool `json:"hasMarketData"`
}

// isSet reports whether the named flag is on. Unknown flag names are a
// skeleton misconfiguration and must surface, never degrade.
func (f Flags) isSet(flag Flag) (bool, error) {
	switch flag {
	case FlagTriggerEvent:
		return f.HasTriggerEvent, nil
	case FlagReviewAnalytics:
		return f.HasReviewAnalytics, nil
	case FlagMarketData:
		return f.HasMarketData, nil
	default:
		return false, fmt.Errorf("unknown section flag %q", flag)
	}
}

// OptionalSpec declares a conditional section slot: when Flag is set, the
// section is inserted immediately after the mandatory section named After.
type OptionalSpec struct {
	ID    string
	Flag  Flag
	After string
}

// Skeleton is one document level's declarative section plan.
type Skeleton struct {
	Mandatory []string
	Optional  []OptionalSpec
}

// PlannedSection is one slot of a resolved plan. Position is 1-based and
// Total is identical across the plan, so "Section 3 of 9" renders directly.
type PlannedSection struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
}
