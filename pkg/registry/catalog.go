// pkg/registry/catalog.go
package registry

// DefaultCatalog is the built-in section catalog covering every section the
// composer's skeletons can plan. The server uses it unless a catalog file is
// configured.
func DefaultCatalog() *SectionCatalog {
	return &SectionCatalog{
		Version:     "1.0.0",
		LastUpdated: "2026-07-30",
		Sections: []SectionInfo{
			// outreach
			{
				ID:          "intro-email",
				Title:       "Introduction Email",
				Description: "Cold-open email that leads with the prospect's sharpest pain point.",
				Levels:      []string{"outreach"},
				Kind:        "mandatory",
				Tags:        []string{"email"},
			},
			{
				ID:           "trigger-hook",
				Title:        "Trigger Hook Email",
				Description:  "Timely follow-up anchored to a recent event at the prospect's business.",
				Levels:       []string{"outreach"},
				Kind:         "optional",
				RequiresFlag: "triggerEvent",
				Tags:         []string{"email"},
			},
			{
				ID:          "value-email",
				Title:       "Value Email",
				Description: "What the seller offers and why it matters to this business.",
				Levels:      []string{"outreach"},
				Kind:        "mandatory",
				Tags:        []string{"email"},
			},
			{
				ID:          "proof-email",
				Title:       "Proof Email",
				Description: "Projected customer and revenue numbers for this specific business.",
				Levels:      []string{"outreach"},
				Kind:        "mandatory",
				Tags:        []string{"email"},
			},
			{
				ID:          "closing-email",
				Title:       "Closing Email",
				Description: "Last touch with pricing and a direct ask.",
				Levels:      []string{"outreach"},
				Kind:        "mandatory",
				Tags:        []string{"email"},
			},

			// onepager
			{
				ID:          "header",
				Title:       "Header",
				Description: "Branded masthead with the business name and headline.",
				Levels:      []string{"onepager"},
				Kind:        "mandatory",
			},
			{
				ID:          "problem-statement",
				Title:       "The Problem",
				Description: "Pain points this business faces, stated or inferred from its industry.",
				Levels:      []string{"onepager"},
				Kind:        "mandatory",
			},
			{
				ID:          "solution-overview",
				Title:       "The Solution",
				Description: "The seller's offer, differentiator, and key benefits.",
				Levels:      []string{"onepager"},
				Kind:        "mandatory",
			},
			{
				ID:          "financial-snapshot",
				Title:       "Financial Snapshot",
				Description: "Condensed projection: new customers, revenue, and ROI.",
				Levels:      []string{"onepager"},
				Kind:        "mandatory",
			},
			{
				ID:          "social-proof",
				Title:       "Social Proof",
				Description: "Review standing, from full analytics or raw rating counts.",
				Levels:      []string{"onepager"},
				Kind:        "mandatory",
			},
			{
				ID:          "call-to-action",
				Title:       "Call to Action",
				Description: "Pricing and the next step.",
				Levels:      []string{"onepager"},
				Kind:        "mandatory",
			},

			// deck
			{
				ID:          "cover",
				Title:       "Cover",
				Description: "Branded title slide, prepared for the named contact.",
				Levels:      []string{"deck"},
				Kind:        "mandatory",
			},
			{
				ID:          "business-snapshot",
				Title:       "Business Snapshot",
				Description: "Where the business stands today, sharpened by any trigger event.",
				Levels:      []string{"deck"},
				Kind:        "mandatory",
			},
			{
				ID:           "market-intelligence",
				Title:        "Market Intelligence",
				Description:  "Local opportunity score, competition, and seasonal trends.",
				Levels:       []string{"deck"},
				Kind:         "optional",
				RequiresFlag: "marketData",
			},
			{
				ID:          "problem",
				Title:       "The Problem",
				Description: "Pain points this business faces, stated or inferred from its industry.",
				Levels:      []string{"deck"},
				Kind:        "mandatory",
			},
			{
				ID:           "review-health",
				Title:        "Review Health",
				Description:  "Sentiment breakdown, themes, and the reputation recommendation.",
				Levels:       []string{"deck"},
				Kind:         "optional",
				RequiresFlag: "reviewAnalytics",
			},
			{
				ID:          "solution",
				Title:       "The Solution",
				Description: "The seller's offer, differentiator, and key benefits.",
				Levels:      []string{"deck"},
				Kind:        "mandatory",
			},
			{
				ID:          "product-lineup",
				Title:       "Product Lineup",
				Description: "The seller's products with pricing.",
				Levels:      []string{"deck"},
				Kind:        "mandatory",
			},
			{
				ID:          "financial-projection",
				Title:       "Financial Projection",
				Description: "Full six-month model: customers, revenue, cost, and ROI.",
				Levels:      []string{"deck"},
				Kind:        "mandatory",
			},
			{
				ID:          "engagement-plan",
				Title:       "Engagement Plan",
				Description: "Phased rollout from kickoff through scale.",
				Levels:      []string{"deck"},
				Kind:        "mandatory",
			},
			{
				ID:          "next-steps",
				Title:       "Next Steps",
				Description: "Pricing and the next step.",
				Levels:      []string{"deck"},
				Kind:        "mandatory",
			},
		},
	}
}
