// internal/reviews/lexicon.go

package reviews

// Word lists for polarity scoring. Matching is whole-word on lowercased
// text, so "great" does not fire inside "grated".

var positiveWords = wordSet(
	"amazing", "awesome", "best", "clean", "delicious", "excellent",
	"fantastic", "fast", "favorite", "friendly", "fresh", "great",
	"helpful", "love", "loved", "perfect", "professional", "prompt",
	"quick", "recommend", "wonderful",
)

var negativeWords = wordSet(
	"awful", "bad", "cold", "dirty", "disappointed", "expensive",
	"horrible", "late", "mediocre", "overpriced", "poor", "rude",
	"slow", "terrible", "unprofessional", "waited", "worst",
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// themeDefs groups review vocabulary into the themes shown in documents.
// Order here is not significant; output ordering is by mention count.
var themeDefs = []struct {
	Label    string
	Keywords []string
}{
	{
		Label:    "service",
		Keywords: []string{"service", "staff", "employee", "employees", "friendly", "rude", "helpful", "attentive"},
	},
	{
		Label:    "quality",
		Keywords: []string{"quality", "fresh", "delicious", "taste", "craftsmanship", "workmanship", "results"},
	},
	{
		Label:    "pricing",
		Keywords: []string{"price", "prices", "pricing", "expensive", "cheap", "value", "overpriced", "affordable"},
	},
	{
		Label:    "wait times",
		Keywords: []string{"wait", "waited", "waiting", "slow", "quick", "fast", "line", "appointment"},
	},
	{
		Label:    "cleanliness",
		Keywords: []string{"clean", "dirty", "spotless", "mess", "hygiene"},
	},
	{
		Label:    "atmosphere",
		Keywords: []string{"atmosphere", "ambiance", "cozy", "vibe", "noisy", "comfortable", "decor"},
	},
	{
		Label:    "communication",
		Keywords: []string{"called", "call", "response", "responded", "communication", "email", "quote", "estimate"},
	},
}

// opportunityCopy maps a struggling theme to the talking point a seller can
// pitch against it.
var opportunityCopy = map[string]string{
	"service":       "Coach the team with review-driven service scorecards",
	"quality":       "Showcase quality wins to drown out one-off complaints",
	"pricing":       "Reframe pricing around value in review responses",
	"wait times":    "Cut perceived wait times with booking and status updates",
	"cleanliness":   "Publicize cleaning routines where reviewers will see them",
	"atmosphere":    "Highlight ambiance upgrades in local posts and photos",
	"communication": "Answer every inquiry within one business hour",
}
