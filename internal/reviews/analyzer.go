// internal/reviews/analyzer.go

// Package reviews derives sentiment, themes, and pitch metrics from raw
// customer reviews. The analysis is pure lexicon counting: the same
// reviews always produce the same analytics, byte for byte.
package reviews

import (
	"math"
	"sort"
	"strings"

	"pitchforge/internal/models"
)

const maxThemes = 5

// Analyze summarizes raw reviews into the analytics block documents draw
// from. Empty or nil input yields nil, which downstream treats as "no
// review analytics available".
func Analyze(raws []models.RawReview) *models.ReviewAnalytics {
	if len(raws) == 0 {
		return nil
	}

	positives := 0
	ratingSum := 0.0
	ratingCount := 0
	polarities := make([]int, len(raws))
	tokenSets := make([]map[string]bool, len(raws))

	for i, r := range raws {
		tokens := tokenize(r.Text)
		tokenSets[i] = tokens
		polarities[i] = polarity(r.Rating, tokens)
		if polarities[i] > 0 {
			positives++
		}
		if r.Rating > 0 {
			ratingSum += r.Rating
			ratingCount++
		}
	}

	positivePct := round1(float64(positives) / float64(len(raws)) * 100)
	avgRating := 0.0
	if ratingCount > 0 {
		avgRating = round1(ratingSum / float64(ratingCount))
	}

	themes := extractThemes(tokenSets, polarities)

	sentiment := &models.SentimentSummary{
		ReviewCount:   len(raws),
		PositivePct:   positivePct,
		AverageRating: avgRating,
		Themes:        themes,
	}

	return &models.ReviewAnalytics{
		Sentiment: sentiment,
		Metrics:   buildMetrics(sentiment),
	}
}

// polarity classifies one review: +1 positive, -1 negative, 0 neutral.
// A clear star rating wins; otherwise the lexicon decides.
func polarity(rating float64, tokens map[string]bool) int {
	switch {
	case rating >= 4:
		return 1
	case rating > 0 && rating <= 2:
		return -1
	}

	score := 0
	for token := range tokens {
		if positiveWords[token] {
			score++
		}
		if negativeWords[token] {
			score--
		}
	}
	switch {
	case score > 0:
		return 1
	case score < 0:
		return -1
	default:
		return 0
	}
}

// extractThemes counts reviews mentioning each theme and assigns a tone
// from the polarity of those reviews. Output is ordered by mentions
// descending, label ascending on ties, capped at maxThemes.
func extractThemes(tokenSets []map[string]bool, polarities []int) []models.ReviewTheme {
	themes := make([]models.ReviewTheme, 0, len(themeDefs))

	for _, def := range themeDefs {
		mentions := 0
		toneVotes := 0
		for i, tokens := range tokenSets {
			if !mentionsAny(tokens, def.Keywords) {
				continue
			}
			mentions++
			toneVotes += polarities[i]
		}
		if mentions == 0 {
			continue
		}
		themes = append(themes, models.ReviewTheme{
			Label:    def.Label,
			Mentions: mentions,
			Tone:     toneLabel(toneVotes),
		})
	}

	sort.Slice(themes, func(i, j int) bool {
		if themes[i].Mentions != themes[j].Mentions {
			return themes[i].Mentions > themes[j].Mentions
		}
		return themes[i].Label < themes[j].Label
	})

	if len(themes) > maxThemes {
		themes = themes[:maxThemes]
	}
	return themes
}

func toneLabel(votes int) string {
	switch {
	case votes > 0:
		return "positive"
	case votes < 0:
		return "negative"
	default:
		return "mixed"
	}
}

// buildMetrics turns the sentiment summary into the scores and talking
// points pitch documents quote.
func buildMetrics(s *models.SentimentSummary) *models.PitchMetrics {
	score := healthScore(s)

	var strengths, issues, opportunities []string
	for _, theme := range s.Themes {
		switch theme.Tone {
		case "positive":
			if len(strengths) < 3 {
				strengths = append(strengths, "Customers praise "+theme.Label)
			}
		case "negative":
			if len(issues) < 3 {
				issues = append(issues, "Recurring complaints about "+theme.Label)
			}
			if point, ok := opportunityCopy[theme.Label]; ok && len(opportunities) < 3 {
				opportunities = append(opportunities, point)
			}
		}
	}

	return &models.PitchMetrics{
		HealthScore:    score,
		Strengths:      strengths,
		CriticalIssues: issues,
		Opportunities:  opportunities,
		Recommendation: recommendation(score),
	}
}

// healthScore blends positive share (60%) with average rating (40%).
// Ratings are optional; without them the positive share stands alone.
func healthScore(s *models.SentimentSummary) int {
	if s.AverageRating <= 0 {
		return clampScore(int(math.Round(s.PositivePct)))
	}
	blended := s.PositivePct*0.6 + (s.AverageRating/5*100)*0.4
	return clampScore(int(math.Round(blended)))
}

func recommendation(score int) string {
	switch {
	case score >= 80:
		return "Reputation is a strength. Amplify it: surface top reviews in marketing and keep response times sharp."
	case score >= 60:
		return "Solid standing with soft spots. Fix the recurring complaints and the rating ceiling lifts quickly."
	case score >= 40:
		return "Reputation is costing customers. Prioritize responses to negative reviews and close the loop on complaints."
	default:
		return "Urgent turnaround needed. Every unanswered negative review is compounding; start with the most recent."
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// tokenize lowercases and splits on non-letter boundaries, returning the
// set of distinct words.
func tokenize(text string) map[string]bool {
	tokens := map[string]bool{}
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens[b.String()] = true
			b.Reset()
		}
	}
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' || r == '\'' {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

func mentionsAny(tokens map[string]bool, keywords []string) bool {
	for _, kw := range keywords {
		if tokens[kw] {
			return true
		}
	}
	return false
}
