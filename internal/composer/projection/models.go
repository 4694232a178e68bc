// internal/composer/projection/models.go

package projection

// Inputs carries the business numbers as they arrived, loosely typed.
// Strings like "1,200" or "$45" are accepted; anything unusable falls back
// to defaults.
type Inputs struct {
	MonthlyVisits interface{} `json:"monthlyVisits"`
	AvgTicket     interface{} `json:"avgTicket"`
	RepeatRate    interface{} `json:"repeatRate"`
	PricingTier   string      `json:"pricingTier"`
}

// Defaults are the industry baselines consulted when an input is missing
// or unusable. A nil Defaults means platform constants apply.
type Defaults struct {
	Label         string
	GrowthRatePct float64
	MonthlyVisits float64
	AvgTicket     float64
	RepeatRate    float64
}

// Projection is the deterministic six-month revenue model for one business.
type Projection struct {
	MonthlyVisits      float64 `json:"monthlyVisits"`
	AvgTicket          float64 `json:"avgTicket"`
	RepeatRate         float64 `json:"repeatRate"`
	GrowthRatePct      float64 `json:"growthRatePct"`
	GrowthSource       string  `json:"growthSource"`
	NewCustomers       int     `json:"newCustomers"`
	ReturningCustomers int     `json:"returningCustomers"`
	MonthlyRevenue     float64 `json:"monthlyRevenue"`
	SixMonthRevenue    float64 `json:"sixMonthRevenue"`
	PricingTier        string  `json:"pricingTier"`
	SixMonthCost       float64 `json:"sixMonthCost"`
	ROIPct             float64 `json:"roiPct"`
}
