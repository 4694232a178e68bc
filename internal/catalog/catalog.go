// internal/catalog/catalog.go

// Package catalog holds the static industry sales-intelligence table used
// for projection defaults and pitch copy. Lookups never fail; unknown
// industries resolve to a generic local-business entry.
package catalog

import (
	"strings"
)

// SalesIntel is one industry's defaults and talking points.
type SalesIntel struct {
	Key           string   `json:"key"`
	Label         string   `json:"label"`
	NAICSPrefix   string   `json:"naicsPrefix,omitempty"`
	GrowthRatePct float64  `json:"growthRatePct"`
	MonthlyVisits float64  `json:"monthlyVisits"`
	AvgTicket     float64  `json:"avgTicket"`
	RepeatRate    float64  `json:"repeatRate"`
	PainPoints    []string `json:"painPoints,omitempty"`
}

// subIntel refines a parent industry. Zero-valued fields inherit.
type subIntel struct {
	Label         string
	GrowthRatePct float64
	MonthlyVisits float64
	AvgTicket     float64
	RepeatRate    float64
	PainPoints    []string
}

// Lookup resolves an industry (by name, alias, or NAICS code) to its sales
// intelligence, refined by sub-industry when one matches. Unknown values
// fall back to the default entry.
func Lookup(industry, subIndustry string) SalesIntel {
	entry, ok := match(industry)
	if !ok {
		// a sub-industry alone can still identify the industry
		if sub, subOK := match(subIndustry); subOK {
			entry = sub
		} else {
			return Default()
		}
	}

	key := normalize(subIndustry)
	if key == "" {
		return entry
	}

	refinements, ok := subIndustries[entry.Key]
	if !ok {
		return entry
	}
	sub, ok := refinements[key]
	if !ok {
		return entry
	}

	// apply non-zero overrides on a copy
	refined := entry
	if sub.Label != "" {
		refined.Label = sub.Label
	}
	if sub.GrowthRatePct > 0 {
		refined.GrowthRatePct = sub.GrowthRatePct
	}
	if sub.MonthlyVisits > 0 {
		refined.MonthlyVisits = sub.MonthlyVisits
	}
	if sub.AvgTicket > 0 {
		refined.AvgTicket = sub.AvgTicket
	}
	if sub.RepeatRate > 0 {
		refined.RepeatRate = sub.RepeatRate
	}
	if len(sub.PainPoints) > 0 {
		refined.PainPoints = sub.PainPoints
	}
	return refined
}

// Default returns the generic entry used when no industry matches.
func Default() SalesIntel {
	return defaultIntel
}

// All returns every industry entry in stable order. Used by tooling that
// lints the table.
func All() []SalesIntel {
	out := make([]SalesIntel, len(industries))
	copy(out, industries)
	return out
}

func match(raw string) (SalesIntel, bool) {
	key := normalize(raw)
	if key == "" {
		return SalesIntel{}, false
	}

	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	if entry, ok := industryIndex[key]; ok {
		return entry, true
	}

	// NAICS codes: longest-prefix match against the table
	if isDigits(key) {
		best := SalesIntel{}
		bestLen := 0
		for _, entry := range industries {
			if entry.NAICSPrefix == "" {
				continue
			}
			if strings.HasPrefix(key, entry.NAICSPrefix) && len(entry.NAICSPrefix) > bestLen {
				best = entry
				bestLen = len(entry.NAICSPrefix)
			}
		}
		if bestLen > 0 {
			return best, true
		}
	}

	return SalesIntel{}, false
}

// normalize canonicalizes free-text industry names: lowercase, "&" → "and",
// runs of spaces/underscores/slashes collapse to a single hyphen.
func normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "&", " and ")

	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
