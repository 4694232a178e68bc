// internal/composer/contentfit/limits.go

package contentfit

// Character budgets for document layout slots. Renderers assume fitted
// values, so every free-text field the assembler emits passes through one
// of these.
const (
	LimitProductName        = 30
	LimitProductDescription = 60
	LimitDifferentiator     = 150

	LimitCompanyName      = 60
	LimitHeadline         = 90
	LimitSummary          = 240
	LimitKeyPoint         = 100
	LimitBenefit          = 90
	LimitPainPoint        = 90
	LimitProblemStatement = 280
	LimitRecommendation   = 220
	LimitThemeLabel       = 48
	LimitTrendLabel       = 60
	LimitEmailSubject     = 78
	LimitSMS              = 160
)
