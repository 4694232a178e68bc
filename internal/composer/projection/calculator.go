// internal/composer/projection/calculator.go

// Package projection builds the six-month financial model quoted in pitch
// documents. Every path yields usable non-negative numbers; dirty or
// missing inputs degrade to industry defaults, then platform constants.
package projection

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Platform fallback constants, used when neither the request nor the
// industry table supplies a usable value.
const (
	DefaultMonthlyVisits = 200
	DefaultAvgTicket     = 50
	DefaultRepeatRate    = 0.30
	DefaultGrowthRatePct = 15
	DefaultGrowthSource  = "platform baseline"
)

// Monthly subscription price per pricing tier, in dollars.
var tierPrices = map[string]float64{
	"starter":    199,
	"growth":     399,
	"enterprise": 899,
}

const defaultTier = "starter"

// Compute derives the projection from loosely typed inputs and optional
// industry defaults. It never fails; every field of the result is safe to
// render.
func Compute(in Inputs, defaults *Defaults) Projection {
	var defVisits, defTicket, defRepeat float64
	growthRate := float64(DefaultGrowthRatePct)
	growthSource := DefaultGrowthSource
	if defaults != nil {
		defVisits = defaults.MonthlyVisits
		defTicket = defaults.AvgTicket
		defRepeat = defaults.RepeatRate
		if defaults.GrowthRatePct > 0 {
			growthRate = defaults.GrowthRatePct
			if defaults.Label != "" {
				growthSource = defaults.Label
			}
		}
	}

	visits := SafeNumber(in.MonthlyVisits, defVisits, DefaultMonthlyVisits)
	ticket := SafeNumber(in.AvgTicket, defTicket, DefaultAvgTicket)
	repeat := normalizeRate(SafeNumber(in.RepeatRate, defRepeat, DefaultRepeatRate))

	newCustomers := int(math.Round(visits * growthRate / 100))
	returning := int(math.Round(float64(newCustomers) * repeat))
	monthlyRevenue := float64(newCustomers) * ticket
	sixMonthRevenue := monthlyRevenue * 6

	tier, price := resolveTier(in.PricingTier)
	sixMonthCost := price * 6

	roi := 0.0
	if sixMonthCost > 0 {
		roi = math.Round((sixMonthRevenue-sixMonthCost)/sixMonthCost*100*10) / 10
	}

	return Projection{
		MonthlyVisits:      visits,
		AvgTicket:          ticket,
		RepeatRate:         repeat,
		GrowthRatePct:      growthRate,
		GrowthSource:       growthSource,
		NewCustomers:       newCustomers,
		ReturningCustomers: returning,
		MonthlyRevenue:     monthlyRevenue,
		SixMonthRevenue:    sixMonthRevenue,
		PricingTier:        tier,
		SixMonthCost:       sixMonthCost,
		ROIPct:             roi,
	}
}

// SafeNumber coerces a loosely typed numeric value, falling back to the
// industry default and then the platform constant. Zero, negative,
// missing, and unparseable values all fall through.
func SafeNumber(raw interface{}, industryDefault, platformDefault float64) float64 {
	if v, ok := parseNumber(raw); ok && v > 0 {
		return v
	}
	if industryDefault > 0 {
		return industryDefault
	}
	return platformDefault
}

// TierPrice returns the monthly price for a tier, resolving unknown names
// to the starter tier.
func TierPrice(tier string) float64 {
	_, price := resolveTier(tier)
	return price
}

func resolveTier(raw string) (string, float64) {
	tier := strings.ToLower(strings.TrimSpace(raw))
	if price, ok := tierPrices[tier]; ok {
		return tier, price
	}
	return defaultTier, tierPrices[defaultTier]
}

// normalizeRate accepts repeat rates as fractions ("0.45") or percentages
// ("45"). Anything above 1 is treated as a percentage.
func normalizeRate(rate float64) float64 {
	if rate > 1 {
		return rate / 100
	}
	return rate
}

func parseNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		cleaned := strings.TrimSpace(v)
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		cleaned = strings.TrimPrefix(cleaned, "$")
		cleaned = strings.TrimSuffix(cleaned, "%")
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
