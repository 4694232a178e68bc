// internal/composer/contentfit/contentfit.go

// Package contentfit truncates free text to layout-slot character budgets,
// preferring word boundaries. All functions tolerate dirty input and never
// panic; unusable values degrade to the empty string.
package contentfit

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultSuffix marks truncated text.
const DefaultSuffix = "…"

// wordBoundaryFloor is the fraction of the limit below which a word
// boundary is too far back to be worth cutting at.
const wordBoundaryFloor = 0.7

// Fit truncates text to limit characters using the default suffix.
func Fit(text string, limit int) string {
	return FitWithSuffix(text, limit, DefaultSuffix)
}

// FitWithSuffix truncates text to at most limit characters, cutting at the
// nearest word boundary when one falls at or after 0.7 × limit. The result
// is never longer than limit + len(suffix) characters. Limits are counted
// in runes so multi-byte text is not split mid-character. A non-positive
// limit yields the empty string.
func FitWithSuffix(text string, limit int, suffix string) string {
	if limit <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	cut := runes[:limit]
	floor := int(float64(limit) * wordBoundaryFloor)

	// Nearest space at or after the floor keeps whole words intact.
	for i := limit - 1; i >= floor; i-- {
		if cut[i] == ' ' {
			return string(cut[:i]) + suffix
		}
	}

	return string(cut) + suffix
}

// FitAny coerces a loosely typed value to a string and fits it.
func FitAny(value interface{}, limit int) string {
	return Fit(Coerce(value), limit)
}

// Coerce renders a loosely typed value as a string. nil and unrenderable
// types become the empty string; numbers render without trailing zeros.
func Coerce(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}
