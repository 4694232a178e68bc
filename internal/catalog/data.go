// internal/catalog/data.go

package catalog

// Baselines come from platform-wide medians for single-location businesses.
// RepeatRate is the fraction of new customers that return within a month.

var defaultIntel = SalesIntel{
	Key:           "local-business",
	Label:         "Local Business",
	GrowthRatePct: 15,
	MonthlyVisits: 400,
	AvgTicket:     60,
	RepeatRate:    0.30,
	PainPoints: []string{
		"Hard to stand out against larger competitors",
		"Marketing time competes with running the business",
		"No clear picture of which channels bring customers in",
	},
}

var industries = []SalesIntel{
	{
		Key:           "restaurants",
		Label:         "Restaurants & Food Service",
		NAICSPrefix:   "722",
		GrowthRatePct: 20,
		MonthlyVisits: 1800,
		AvgTicket:     28,
		RepeatRate:    0.45,
		PainPoints: []string{
			"Slow weekday traffic between rushes",
			"A handful of bad reviews scares off new diners",
			"Delivery platforms take a fifth of every order",
		},
	},
	{
		Key:           "retail",
		Label:         "Retail",
		NAICSPrefix:   "44",
		GrowthRatePct: 15,
		MonthlyVisits: 1200,
		AvgTicket:     45,
		RepeatRate:    0.35,
		PainPoints: []string{
			"Foot traffic swings hard with the season",
			"Online sellers undercut on price",
			"Regulars drift away without a reason to return",
		},
	},
	{
		Key:           "health-wellness",
		Label:         "Health & Wellness",
		NAICSPrefix:   "62",
		GrowthRatePct: 18,
		MonthlyVisits: 650,
		AvgTicket:     90,
		RepeatRate:    0.55,
		PainPoints: []string{
			"No-shows leave expensive gaps in the schedule",
			"New patients pick whoever ranks first nearby",
			"Follow-up visits depend on manual reminders",
		},
	},
	{
		Key:           "home-services",
		Label:         "Home Services",
		NAICSPrefix:   "23",
		GrowthRatePct: 22,
		MonthlyVisits: 320,
		AvgTicket:     420,
		RepeatRate:    0.25,
		PainPoints: []string{
			"Feast-or-famine job flow across the year",
			"One unanswered call sends the job to a competitor",
			"Word of mouth alone caps how far the business reaches",
		},
	},
	{
		Key:           "automotive",
		Label:         "Automotive Services",
		NAICSPrefix:   "811",
		GrowthRatePct: 12,
		MonthlyVisits: 480,
		AvgTicket:     310,
		RepeatRate:    0.40,
		PainPoints: []string{
			"Customers only think of the shop when something breaks",
			"Chains outspend independents on advertising",
			"Routine maintenance goes to whoever reminds the driver first",
		},
	},
	{
		Key:           "beauty",
		Label:         "Beauty & Personal Care",
		NAICSPrefix:   "812",
		GrowthRatePct: 16,
		MonthlyVisits: 900,
		AvgTicket:     75,
		RepeatRate:    0.60,
		PainPoints: []string{
			"Empty chairs on slow days cost more than discounts would",
			"Clients follow individual stylists out the door",
			"Last-minute cancellations are hard to backfill",
		},
	},
	{
		Key:           "professional-services",
		Label:         "Professional Services",
		NAICSPrefix:   "54",
		GrowthRatePct: 14,
		MonthlyVisits: 260,
		AvgTicket:     850,
		RepeatRate:    0.30,
		PainPoints: []string{
			"Referral pipelines dry up without warning",
			"Prospects cannot tell one firm's expertise from another's",
			"Billable work leaves no time for business development",
		},
	},
	{
		Key:           "hospitality",
		Label:         "Hospitality & Lodging",
		NAICSPrefix:   "721",
		GrowthRatePct: 11,
		MonthlyVisits: 2100,
		AvgTicket:     180,
		RepeatRate:    0.22,
		PainPoints: []string{
			"Booking sites keep the guest relationship and the fee",
			"Off-season occupancy drags the yearly average down",
			"One bad stay review outweighs fifty quiet good ones",
		},
	},
	{
		Key:           "real-estate",
		Label:         "Real Estate",
		NAICSPrefix:   "531",
		GrowthRatePct: 13,
		MonthlyVisits: 340,
		AvgTicket:     2400,
		RepeatRate:    0.10,
		PainPoints: []string{
			"Long gaps between transactions with the same client",
			"Portals own the first contact with every buyer",
			"Local reputation lives or dies on recent closings",
		},
	},
	{
		Key:           "fitness",
		Label:         "Fitness & Recreation",
		NAICSPrefix:   "713",
		GrowthRatePct: 17,
		MonthlyVisits: 750,
		AvgTicket:     65,
		RepeatRate:    0.70,
		PainPoints: []string{
			"January sign-ups churn out by spring",
			"Class slots sit empty outside peak hours",
			"Big-box gyms compete on price alone",
		},
	},
}

var subIndustries = map[string]map[string]subIntel{
	"restaurants": {
		"cafe": {
			Label:         "Cafés & Coffee Shops",
			MonthlyVisits: 2400,
			AvgTicket:     12,
			RepeatRate:    0.65,
		},
		"fine-dining": {
			Label:         "Fine Dining",
			GrowthRatePct: 12,
			MonthlyVisits: 600,
			AvgTicket:     85,
			RepeatRate:    0.30,
		},
		"quick-service": {
			Label:         "Quick Service Restaurants",
			MonthlyVisits: 3200,
			AvgTicket:     14,
		},
	},
	"retail": {
		"boutique": {
			Label:         "Boutique Retail",
			MonthlyVisits: 500,
			AvgTicket:     95,
		},
		"grocery": {
			Label:         "Grocery & Specialty Food",
			MonthlyVisits: 4500,
			AvgTicket:     38,
			RepeatRate:    0.75,
		},
	},
	"health-wellness": {
		"dental": {
			Label:         "Dental Practices",
			GrowthRatePct: 14,
			MonthlyVisits: 400,
			AvgTicket:     280,
		},
		"chiropractic": {
			Label:         "Chiropractic Clinics",
			AvgTicket:     110,
			RepeatRate:    0.65,
		},
	},
	"home-services": {
		"plumbing": {
			Label:     "Plumbing",
			AvgTicket: 385,
		},
		"hvac": {
			Label:         "HVAC",
			AvgTicket:     520,
			GrowthRatePct: 24,
		},
		"landscaping": {
			Label:      "Landscaping & Lawn Care",
			AvgTicket:  180,
			RepeatRate: 0.55,
		},
	},
	"beauty": {
		"salon": {
			Label: "Hair Salons",
		},
		"spa": {
			Label:     "Spas & Med Spas",
			AvgTicket: 140,
		},
	},
	"professional-services": {
		"legal": {
			Label:     "Legal Services",
			AvgTicket: 1500,
		},
		"accounting": {
			Label:     "Accounting & Tax",
			AvgTicket: 600,
		},
	},
}

// aliases maps common free-text variants to canonical keys.
var aliases = map[string]string{
	"restaurant":        "restaurants",
	"food":              "restaurants",
	"food-service":      "restaurants",
	"food-and-beverage": "restaurants",
	"dining":            "restaurants",

	"shop":      "retail",
	"store":     "retail",
	"ecommerce": "retail",

	"healthcare":          "health-wellness",
	"health":              "health-wellness",
	"medical":             "health-wellness",
	"wellness":            "health-wellness",
	"health-and-wellness": "health-wellness",

	"contractor":   "home-services",
	"contractors":  "home-services",
	"construction": "home-services",
	"trades":       "home-services",

	"auto":        "automotive",
	"auto-repair": "automotive",
	"car-repair":  "automotive",

	"salon":                    "beauty",
	"barber":                   "beauty",
	"barbershop":               "beauty",
	"personal-care":            "beauty",
	"beauty-and-personal-care": "beauty",

	"consulting":   "professional-services",
	"agency":       "professional-services",
	"b2b-services": "professional-services",

	"hotel":   "hospitality",
	"hotels":  "hospitality",
	"lodging": "hospitality",

	"realtor":  "real-estate",
	"realty":   "real-estate",
	"property": "real-estate",

	"gym":        "fitness",
	"gyms":       "fitness",
	"recreation": "fitness",
}

var industryIndex = map[string]SalesIntel{}

func init() {
	for _, entry := range industries {
		industryIndex[entry.Key] = entry
	}
}
