// internal/models/analytics.go
package models

// ReviewAnalytics is the analyzer's output for a batch of raw reviews.
type ReviewAnalytics struct {
	Sentiment *SentimentSummary `json:"sentiment,omitempty"`
	Metrics   *PitchMetrics     `json:"metrics,omitempty"`
}

// Complete reports whether both the sentiment block and the derived pitch
// metrics are present. Documents only get a review section when this holds.
func (ra *ReviewAnalytics) Complete() bool {
	return ra != nil && ra.Sentiment != nil && ra.Metrics != nil
}

// SentimentSummary aggregates review tone across the analyzed batch.
type SentimentSummary struct {
	ReviewCount   int           `json:"reviewCount"`
	PositivePct   float64       `json:"positivePct"`
	AverageRating float64       `json:"averageRating"`
	Themes        []ReviewTheme `json:"themes,omitempty"`
}

// ReviewTheme is a recurring topic across reviews, ranked by mention count.
type ReviewTheme struct {
	Label    string `json:"label"`
	Mentions int    `json:"mentions"`
	Tone     string `json:"tone"`
}

// PitchMetrics distills review analytics into talking points for a pitch.
type PitchMetrics struct {
	HealthScore    int      `json:"healthScore"`
	Strengths      []string `json:"strengths,omitempty"`
	CriticalIssues []string `json:"criticalIssues,omitempty"`
	Opportunities  []string `json:"opportunities,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}
