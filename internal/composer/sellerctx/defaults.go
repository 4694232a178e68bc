// internal/composer/sellerctx/defaults.go

package sellerctx

import (
	"pitchforge/internal/models"
)

// Platform fallback branding.
const (
	DefaultCompanyName    = "LocalLift Labs"
	DefaultPrimaryColor   = "#3A6746"
	DefaultSecondaryColor = "#1F2937"
	DefaultFooterText     = "Sent with care by LocalLift Labs."

	// PricingSentinel is shown when no product price is usable.
	PricingSentinel = "Contact for pricing"
)

// defaultProfile is the well-known seller used when no profile exists.
// Keep it fully populated: it is the floor every resolved context stands
// on, so an empty field here leaks an empty field into documents.
func defaultProfile() *models.SellerProfile {
	return &models.SellerProfile{
		ID:             "platform-default",
		CompanyName:    DefaultCompanyName,
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
		FooterText:     DefaultFooterText,
		Differentiator: "Purpose-built for single-location businesses, not enterprise marketing teams.",
		UniqueSellingPoints: []string{
			"Set up in under 15 minutes",
			"No long-term contracts",
			"Local-market analytics included on every plan",
		},
		KeyBenefits: []string{
			"More repeat visits from existing customers",
			"Higher visibility in local search",
			"Less time spent on manual marketing",
		},
		Products: []models.Product{
			{
				Name:        "Reputation Monitor",
				Description: "Track and answer every customer review from one inbox",
				Price:       float64(199),
				Icon:        "star",
				IsPrimary:   true,
			},
			{
				Name:        "Local SEO Booster",
				Description: "Rank higher in map-pack searches near you",
				Price:       float64(149),
				Icon:        "map-pin",
			},
			{
				Name:        "Campaign Autopilot",
				Description: "Seasonal promotions drafted and scheduled automatically",
				Price:       float64(99),
				Icon:        "send",
			},
		},
		ICPs: []models.ICP{
			{
				ID:   "owner-operator",
				Name: "Owner-Operator",
				PainPoints: []string{
					"Too busy running the business to market it",
					"Online reputation feels out of their control",
					"Unsure which marketing spend actually pays off",
				},
				TargetTitles: []string{"Owner", "General Manager"},
				Segments:     []string{"Single-location retail and service businesses"},
				IsDefault:    true,
			},
		},
	}
}
