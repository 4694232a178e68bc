// internal/composer/sections/planner.go

// Package sections turns a document level and a set of presence flags into
// an ordered, contiguously numbered section plan. Unlike the rest of the
// composer, this package fails loudly: a malformed skeleton or an unknown
// flag is a bug, and a silently broken "Section 3 of 9" is worse than an
// error.
package sections

import (
	"fmt"

	"pitchforge/internal/models"
)

// Plan resolves the skeleton for a level against the given flags. The
// result is ordered, 1-based, and numbered out of its own length.
func Plan(level models.DocumentLevel, flags Flags) ([]PlannedSection, error) {
	sk, ok := skeletons[level]
	if !ok {
		return nil, fmt.Errorf("no section skeleton for level %q", level)
	}
	if err := sk.validate(); err != nil {
		return nil, fmt.Errorf("skeleton for level %q: %w", level, err)
	}

	ids := make([]string, 0, len(sk.Mandatory)+len(sk.Optional))
	for _, id := range sk.Mandatory {
		ids = append(ids, id)
		for _, opt := range sk.Optional {
			if opt.After != id {
				continue
			}
			on, err := flags.isSet(opt.Flag)
			if err != nil {
				return nil, fmt.Errorf("skeleton for level %q: %w", level, err)
			}
			if on {
				ids = append(ids, opt.ID)
			}
		}
	}

	total := len(ids)
	plan := make([]PlannedSection, total)
	for i, id := range ids {
		plan[i] = PlannedSection{ID: id, Position: i + 1, Total: total}
	}
	return plan, nil
}

// validate rejects skeletons that could produce broken numbering:
// duplicate section IDs or optional slots anchored to a section that is
// not in the mandatory walk.
func (sk Skeleton) validate() error {
	seen := make(map[string]bool, len(sk.Mandatory)+len(sk.Optional))
	mandatory := make(map[string]bool, len(sk.Mandatory))

	for _, id := range sk.Mandatory {
		if id == "" {
			return fmt.Errorf("empty mandatory section id")
		}
		if seen[id] {
			return fmt.Errorf("duplicate section id %q", id)
		}
		seen[id] = true
		mandatory[id] = true
	}

	for _, opt := range sk.Optional {
		if opt.ID == "" {
			return fmt.Errorf("empty optional section id")
		}
		if seen[opt.ID] {
			return fmt.Errorf("duplicate section id %q", opt.ID)
		}
		seen[opt.ID] = true
		if !mandatory[opt.After] {
			return fmt.Errorf("optional section %q anchored to unknown section %q", opt.ID, opt.After)
		}
	}
	return nil
}

// Verify exercises every flag combination for a level and checks the
// numbering invariant. Tooling and tests use it to lint skeleton changes.
func Verify(level models.DocumentLevel) error {
	for _, flags := range AllFlagCombinations() {
		plan, err := Plan(level, flags)
		if err != nil {
			return err
		}
		if err := CheckNumbering(plan); err != nil {
			return fmt.Errorf("level %q flags %+v: %w", level, flags, err)
		}
	}
	return nil
}

// CheckNumbering confirms a plan is numbered 1..N with a consistent total
// and no duplicate IDs.
func CheckNumbering(plan []PlannedSection) error {
	if len(plan) == 0 {
		return fmt.Errorf("empty plan")
	}
	total := len(plan)
	seen := make(map[string]bool, total)
	for i, s := range plan {
		if s.Position != i+1 {
			return fmt.Errorf("section %q at index %d has position %d", s.ID, i, s.Position)
		}
		if s.Total != total {
			return fmt.Errorf("section %q reports total %d of actual %d", s.ID, s.Total, total)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// AllFlagCombinations returns the 8 flag combinations in a stable order.
func AllFlagCombinations() []Flags {
	combos := make([]Flags, 0, 8)
	for i := 0; i < 8; i++ {
		combos = append(combos, Flags{
			HasTriggerEvent:    i&1 != 0,
			HasReviewAnalytics: i&2 != 0,
			HasMarketData:      i&4 != 0,
		})
	}
	return combos
}

// Levels returns every document level with a skeleton, in display order.
func Levels() []models.DocumentLevel {
	return []models.DocumentLevel{models.LevelOutreach, models.LevelOnePager, models.LevelDeck}
}

// IDsForLevel returns every section ID a level can emit, mandatory first.
// The section catalog lint uses it to detect uncovered IDs.
func IDsForLevel(level models.DocumentLevel) []string {
	sk, ok := skeletons[level]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(sk.Mandatory)+len(sk.Optional))
	ids = append(ids, sk.Mandatory...)
	for _, opt := range sk.Optional {
		ids = append(ids, opt.ID)
	}
	return ids
}
