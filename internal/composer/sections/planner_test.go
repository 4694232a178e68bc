// internal/composer/sections/planner_test.go
package sections

import (
	"testing"

	"pitchforge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Numbering Invariant Tests
// ==========================

func TestPlan_NumberingHoldsForEveryCombination(t *testing.T) {
	for _, level := range Levels() {
		for _, flags := range AllFlagCombinations() {
			plan, err := Plan(level, flags)
			require.NoError(t, err, "level %s flags %+v", level, flags)
			assert.NoError(t, CheckNumbering(plan), "level %s flags %+v", level, flags)
		}
	}
}

func TestVerify_AllLevels(t *testing.T) {
	for _, level := range Levels() {
		assert.NoError(t, Verify(level))
	}
}

// ==========================
// Outreach Plan Tests
// ==========================

func TestPlan_OutreachBaseline(t *testing.T) {
	plan, err := Plan(models.LevelOutreach, Flags{})

	require.NoError(t, err)
	ids := planIDs(plan)
	assert.Equal(t, []string{
		SectionIntroEmail,
		SectionValueEmail,
		SectionProofEmail,
		SectionClosingEmail,
	}, ids)
	assert.Equal(t, 4, plan[0].Total)
}

func TestPlan_OutreachWithTrigger(t *testing.T) {
	plan, err := Plan(models.LevelOutreach, Flags{HasTriggerEvent: true})

	require.NoError(t, err)
	ids := planIDs(plan)
	assert.Equal(t, []string{
		SectionIntroEmail,
		SectionTriggerHook,
		SectionValueEmail,
		SectionProofEmail,
		SectionClosingEmail,
	}, ids)

	// the hook lands right after the intro and renumbers everything behind it
	assert.Equal(t, 2, plan[1].Position)
	assert.Equal(t, 5, plan[4].Position)
	assert.Equal(t, 5, plan[0].Total)
}

func TestPlan_OutreachIgnoresOtherFlags(t *testing.T) {
	baseline, err := Plan(models.LevelOutreach, Flags{})
	require.NoError(t, err)

	withNoise, err := Plan(models.LevelOutreach, Flags{HasReviewAnalytics: true, HasMarketData: true})
	require.NoError(t, err)

	assert.Equal(t, baseline, withNoise)
}

// ==========================
// One-Pager Plan Tests
// ==========================

func TestPlan_OnePagerConstantAcrossFlags(t *testing.T) {
	baseline, err := Plan(models.LevelOnePager, Flags{})
	require.NoError(t, err)
	assert.Len(t, baseline, 6)

	for _, flags := range AllFlagCombinations() {
		plan, err := Plan(models.LevelOnePager, flags)
		require.NoError(t, err)
		assert.Equal(t, baseline, plan, "flags %+v", flags)
	}
}

// ==========================
// Deck Plan Tests
// ==========================

func TestPlan_DeckBaseline(t *testing.T) {
	plan, err := Plan(models.LevelDeck, Flags{})

	require.NoError(t, err)
	assert.Len(t, plan, 8)
	assert.Equal(t, SectionCover, plan[0].ID)
	assert.Equal(t, SectionNextSteps, plan[7].ID)
}

func TestPlan_DeckAllFlags(t *testing.T) {
	plan, err := Plan(models.LevelDeck, Flags{
		HasTriggerEvent:    true,
		HasReviewAnalytics: true,
		HasMarketData:      true,
	})

	require.NoError(t, err)
	ids := planIDs(plan)
	assert.Equal(t, []string{
		SectionCover,
		SectionBusinessSnapshot,
		SectionMarketIntelligence,
		SectionProblem,
		SectionReviewHealth,
		SectionSolution,
		SectionProductLineup,
		SectionFinancialProjection,
		SectionEngagementPlan,
		SectionNextSteps,
	}, ids)
	assert.Equal(t, 10, plan[0].Total)
}

func TestPlan_DeckTriggerAndMarketAddsExactlyOne(t *testing.T) {
	baseline, err := Plan(models.LevelDeck, Flags{})
	require.NoError(t, err)

	plan, err := Plan(models.LevelDeck, Flags{HasTriggerEvent: true, HasMarketData: true})
	require.NoError(t, err)

	assert.Len(t, plan, len(baseline)+1)
	assert.Contains(t, planIDs(plan), SectionMarketIntelligence)
	assert.NotContains(t, planIDs(plan), SectionTriggerHook)
}

func TestPlan_DeckTriggerAloneAddsNothing(t *testing.T) {
	baseline, err := Plan(models.LevelDeck, Flags{})
	require.NoError(t, err)

	plan, err := Plan(models.LevelDeck, Flags{HasTriggerEvent: true})
	require.NoError(t, err)

	assert.Equal(t, baseline, plan)
}

func TestPlan_DeckMarketIntelligenceAlwaysThird(t *testing.T) {
	for _, flags := range AllFlagCombinations() {
		if !flags.HasMarketData {
			continue
		}
		plan, err := Plan(models.LevelDeck, flags)
		require.NoError(t, err)

		for _, s := range plan {
			if s.ID == SectionMarketIntelligence {
				assert.Equal(t, 3, s.Position, "flags %+v", flags)
			}
		}
	}
}

func TestPlan_DeckReviewHealthFollowsProblem(t *testing.T) {
	plan, err := Plan(models.LevelDeck, Flags{HasReviewAnalytics: true})
	require.NoError(t, err)

	ids := planIDs(plan)
	for i, id := range ids {
		if id == SectionReviewHealth {
			assert.Equal(t, SectionProblem, ids[i-1])
		}
	}
	assert.Contains(t, ids, SectionReviewHealth)
	assert.Len(t, plan, 9)
}

// ==========================
// Failure Mode Tests
// ==========================

func TestPlan_UnknownLevelFails(t *testing.T) {
	_, err := Plan(models.DocumentLevel("brochure"), Flags{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "brochure")
}

func TestSkeletonValidate(t *testing.T) {
	tests := []struct {
		name     string
		skeleton Skeleton
		wantErr  string
	}{
		{
			name:     "valid",
			skeleton: Skeleton{Mandatory: []string{"a", "b"}, Optional: []OptionalSpec{{ID: "c", Flag: FlagMarketData, After: "a"}}},
			wantErr:  "",
		},
		{
			name:     "duplicate mandatory",
			skeleton: Skeleton{Mandatory: []string{"a", "a"}},
			wantErr:  "duplicate",
		},
		{
			name:     "optional duplicates mandatory",
			skeleton: Skeleton{Mandatory: []string{"a"}, Optional: []OptionalSpec{{ID: "a", Flag: FlagMarketData, After: "a"}}},
			wantErr:  "duplicate",
		},
		{
			name:     "unknown anchor",
			skeleton: Skeleton{Mandatory: []string{"a"}, Optional: []OptionalSpec{{ID: "b", Flag: FlagMarketData, After: "zzz"}}},
			wantErr:  "anchored to unknown",
		},
		{
			name:     "empty mandatory id",
			skeleton: Skeleton{Mandatory: []string{""}},
			wantErr:  "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.skeleton.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestFlags_UnknownFlagFails(t *testing.T) {
	_, err := Flags{}.isSet(Flag("weather"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "weather")
}

func TestCheckNumbering(t *testing.T) {
	tests := []struct {
		name    string
		plan    []PlannedSection
		wantErr bool
	}{
		{
			name: "valid",
			plan: []PlannedSection{
				{ID: "a", Position: 1, Total: 2},
				{ID: "b", Position: 2, Total: 2},
			},
			wantErr: false,
		},
		{
			name:    "empty",
			plan:    nil,
			wantErr: true,
		},
		{
			name: "gap in positions",
			plan: []PlannedSection{
				{ID: "a", Position: 1, Total: 2},
				{ID: "b", Position: 3, Total: 2},
			},
			wantErr: true,
		},
		{
			name: "wrong total",
			plan: []PlannedSection{
				{ID: "a", Position: 1, Total: 5},
			},
			wantErr: true,
		},
		{
			name: "duplicate id",
			plan: []PlannedSection{
				{ID: "a", Position: 1, Total: 2},
				{ID: "a", Position: 2, Total: 2},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNumbering(tt.plan)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// ==========================
// Helpers
// ==========================

func planIDs(plan []PlannedSection) []string {
	ids := make([]string, len(plan))
	for i, s := range plan {
		ids[i] = s.ID
	}
	return ids
}

func TestIDsForLevel(t *testing.T) {
	deck := IDsForLevel(models.LevelDeck)

	assert.Len(t, deck, 10)
	assert.Contains(t, deck, SectionMarketIntelligence)
	assert.Empty(t, IDsForLevel(models.DocumentLevel("brochure")))
}
