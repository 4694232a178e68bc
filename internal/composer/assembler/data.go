// internal/composer/assembler/data.go

package assembler

import (
	"fmt"
	"strings"

	"pitchforge/internal/catalog"
	"pitchforge/internal/composer/contentfit"
	"pitchforge/internal/composer/projection"
	"pitchforge/internal/composer/sections"
	"pitchforge/internal/composer/sellerctx"
	"pitchforge/internal/models"
)

// builder gathers per-section data slices. Every free-text value passes
// through the content-fit budgets so renderers never see oversized text.
type builder struct {
	inputs  *models.PitchInputs
	market  *models.MarketData
	reviews *models.ReviewAnalytics
	flags   sections.Flags
	intel   catalog.SalesIntel
	proj    projection.Projection
	seller  sellerctx.Context
}

func (b *builder) dataFor(sectionID string) (map[string]interface{}, bool) {
	switch sectionID {
	// outreach
	case sections.SectionIntroEmail:
		return b.introEmail(), true
	case sections.SectionTriggerHook:
		return b.triggerHook(), true
	case sections.SectionValueEmail:
		return b.valueEmail(), true
	case sections.SectionProofEmail:
		return b.proofEmail(), true
	case sections.SectionClosingEmail:
		return b.closingEmail(), true

	// onepager
	case sections.SectionHeader:
		return b.header(), true
	case sections.SectionProblemStatement, sections.SectionProblem:
		return b.problem(), true
	case sections.SectionSolutionOverview, sections.SectionSolution:
		return b.solution(), true
	case sections.SectionFinancialSnapshot:
		return b.financialSnapshot(), true
	case sections.SectionSocialProof:
		return b.socialProof(), true
	case sections.SectionCallToAction, sections.SectionNextSteps:
		return b.callToAction(), true

	// deck
	case sections.SectionCover:
		return b.cover(), true
	case sections.SectionBusinessSnapshot:
		return b.businessSnapshot(), true
	case sections.SectionMarketIntelligence:
		return b.marketIntelligence(), true
	case sections.SectionReviewHealth:
		return b.reviewHealth(), true
	case sections.SectionProductLineup:
		return b.productLineup(), true
	case sections.SectionFinancialProjection:
		return b.financialProjection(), true
	case sections.SectionEngagementPlan:
		return b.engagementPlan(), true

	default:
		return map[string]interface{}{}, false
	}
}

// ==========================
// Outreach Sections
// ==========================

func (b *builder) introEmail() map[string]interface{} {
	data := map[string]interface{}{
		"subject":       contentfit.Fit("Quick question about "+b.businessName(), contentfit.LimitEmailSubject),
		"greetingName":  b.greetingName(),
		"businessName":  b.businessName(),
		"senderCompany": b.seller.CompanyName,
		"footerText":    b.seller.FooterText,
	}
	if b.inputs.City != "" {
		data["city"] = b.inputs.City
	}
	if hook := b.leadHook(); hook != "" {
		data["hook"] = hook
	}
	return data
}

func (b *builder) triggerHook() map[string]interface{} {
	trigger := b.inputs.TriggerEvent
	if trigger == nil {
		trigger = &models.TriggerEvent{}
	}
	data := map[string]interface{}{
		"subject":      contentfit.Fit("Saw the news about "+b.businessName(), contentfit.LimitEmailSubject),
		"greetingName": b.greetingName(),
		"businessName": b.businessName(),
		"headline":     contentfit.Fit(trigger.Headline, contentfit.LimitHeadline),
		"summary":      contentfit.Fit(trigger.Summary, contentfit.LimitSummary),
		"footerText":   b.seller.FooterText,
	}
	if trigger.Source != "" {
		data["source"] = trigger.Source
	}
	if trigger.Date != "" {
		data["date"] = trigger.Date
	}
	if points := fitStrings(trigger.KeyPoints, contentfit.LimitKeyPoint, 3); len(points) > 0 {
		data["keyPoints"] = points
	}
	return data
}

func (b *builder) valueEmail() map[string]interface{} {
	return map[string]interface{}{
		"subject": contentfit.Fit(
			fmt.Sprintf("How %s helps businesses like %s", b.seller.CompanyName, b.businessName()),
			contentfit.LimitEmailSubject),
		"greetingName":   b.greetingName(),
		"businessName":   b.businessName(),
		"keyBenefits":    fitStrings(b.seller.KeyBenefits, contentfit.LimitBenefit, 3),
		"products":       b.productList(),
		"pricingDisplay": b.seller.PricingDisplay,
		"footerText":     b.seller.FooterText,
	}
}

func (b *builder) proofEmail() map[string]interface{} {
	data := map[string]interface{}{
		"subject":         contentfit.Fit("What this could mean for "+b.businessName(), contentfit.LimitEmailSubject),
		"greetingName":    b.greetingName(),
		"businessName":    b.businessName(),
		"newCustomers":    b.proj.NewCustomers,
		"monthlyRevenue":  sellerctx.FormatMoney(b.proj.MonthlyRevenue),
		"sixMonthRevenue": sellerctx.FormatMoney(b.proj.SixMonthRevenue),
		"growthRatePct":   b.proj.GrowthRatePct,
		"growthSource":    b.proj.GrowthSource,
		"footerText":      b.seller.FooterText,
	}
	if b.flags.HasReviewAnalytics {
		data["positivePct"] = b.reviews.Sentiment.PositivePct
		data["healthScore"] = b.reviews.Metrics.HealthScore
	}
	return data
}

func (b *builder) closingEmail() map[string]interface{} {
	return map[string]interface{}{
		"subject":         contentfit.Fit("Last note for "+b.businessName(), contentfit.LimitEmailSubject),
		"greetingName":    b.greetingName(),
		"businessName":    b.businessName(),
		"pricingDisplay":  b.seller.PricingDisplay,
		"roiPct":          b.proj.ROIPct,
		"sixMonthRevenue": sellerctx.FormatMoney(b.proj.SixMonthRevenue),
		"footerText":      b.seller.FooterText,
	}
}

// ==========================
// One-Pager Sections
// ==========================

func (b *builder) header() map[string]interface{} {
	data := map[string]interface{}{
		"businessName":   b.businessName(),
		"headline":       contentfit.Fit("A growth plan for "+b.businessName(), contentfit.LimitHeadline),
		"companyName":    b.seller.CompanyName,
		"primaryColor":   b.seller.PrimaryColor,
		"secondaryColor": b.seller.SecondaryColor,
	}
	if b.seller.LogoURL != "" {
		data["logoUrl"] = b.seller.LogoURL
	}
	if loc := b.location(); loc != "" {
		data["location"] = loc
	}
	return data
}

func (b *builder) problem() map[string]interface{} {
	painPoints := b.seller.ICP.PainPoints
	if len(painPoints) == 0 {
		painPoints = b.intel.PainPoints
	}
	data := map[string]interface{}{
		"industry":   b.intel.Label,
		"painPoints": fitStrings(painPoints, contentfit.LimitPainPoint, 3),
	}
	if b.inputs.StatedProblem != "" {
		data["statedProblem"] = contentfit.Fit(b.inputs.StatedProblem, contentfit.LimitProblemStatement)
	}
	return data
}

func (b *builder) solution() map[string]interface{} {
	copyMode := "unique-value"
	if b.seller.IsDefault {
		copyMode = "what-it-does"
	}
	return map[string]interface{}{
		"companyName":    b.seller.CompanyName,
		"differentiator": contentfit.Fit(b.seller.Differentiator, contentfit.LimitDifferentiator),
		"usps":           fitStrings(b.seller.USPs, contentfit.LimitKeyPoint, 4),
		"keyBenefits":    fitStrings(b.seller.KeyBenefits, contentfit.LimitBenefit, 4),
		"copyMode":       copyMode,
	}
}

func (b *builder) financialSnapshot() map[string]interface{} {
	return map[string]interface{}{
		"newCustomers":    b.proj.NewCustomers,
		"monthlyRevenue":  sellerctx.FormatMoney(b.proj.MonthlyRevenue),
		"sixMonthRevenue": sellerctx.FormatMoney(b.proj.SixMonthRevenue),
		"roiPct":          b.proj.ROIPct,
		"growthRatePct":   b.proj.GrowthRatePct,
		"growthSource":    b.proj.GrowthSource,
	}
}

func (b *builder) socialProof() map[string]interface{} {
	data := map[string]interface{}{}

	if b.flags.HasReviewAnalytics {
		s := b.reviews.Sentiment
		m := b.reviews.Metrics
		data["reviewCount"] = s.ReviewCount
		data["positivePct"] = s.PositivePct
		if s.AverageRating > 0 {
			data["averageRating"] = s.AverageRating
		}
		if strengths := fitStrings(m.Strengths, contentfit.LimitKeyPoint, 3); len(strengths) > 0 {
			data["strengths"] = strengths
		}
		return data
	}

	// fall back to whatever raw numbers arrived with the request
	if rating := projection.SafeNumber(b.inputs.Rating, 0, 0); rating > 0 {
		data["averageRating"] = rating
	}
	if count := projection.SafeNumber(b.inputs.ReviewCount, 0, 0); count > 0 {
		data["reviewCount"] = int(count)
	}
	return data
}

func (b *builder) callToAction() map[string]interface{} {
	return map[string]interface{}{
		"greetingName":   b.greetingName(),
		"businessName":   b.businessName(),
		"companyName":    b.seller.CompanyName,
		"pricingDisplay": b.seller.PricingDisplay,
		"footerText":     b.seller.FooterText,
	}
}

// ==========================
// Deck Sections
// ==========================

func (b *builder) cover() map[string]interface{} {
	data := b.header()
	if b.inputs.ContactName != "" {
		data["preparedFor"] = contentfit.Fit(b.inputs.ContactName, contentfit.LimitCompanyName)
	}
	return data
}

func (b *builder) businessSnapshot() map[string]interface{} {
	data := map[string]interface{}{
		"businessName":  b.businessName(),
		"industry":      b.intel.Label,
		"monthlyVisits": b.proj.MonthlyVisits,
		"avgTicket":     sellerctx.FormatMoney(b.proj.AvgTicket),
	}
	if loc := b.location(); loc != "" {
		data["location"] = loc
	}
	if rating := projection.SafeNumber(b.inputs.Rating, 0, 0); rating > 0 {
		data["rating"] = rating
	}
	if count := projection.SafeNumber(b.inputs.ReviewCount, 0, 0); count > 0 {
		data["reviewCount"] = int(count)
	}

	// a trigger event never adds a slide; it sharpens this one
	if b.flags.HasTriggerEvent {
		trigger := b.inputs.TriggerEvent
		whyNow := map[string]interface{}{
			"headline": contentfit.Fit(trigger.Headline, contentfit.LimitHeadline),
			"summary":  contentfit.Fit(trigger.Summary, contentfit.LimitSummary),
		}
		if trigger.Source != "" {
			whyNow["source"] = trigger.Source
		}
		if points := fitStrings(trigger.KeyPoints, contentfit.LimitKeyPoint, 3); len(points) > 0 {
			whyNow["keyPoints"] = points
		}
		data["whyNow"] = whyNow
	}
	return data
}

func (b *builder) marketIntelligence() map[string]interface{} {
	market := b.market
	if market == nil {
		market = &models.MarketData{}
	}
	data := map[string]interface{}{
		"opportunityScore": projection.SafeNumber(market.OpportunityScore, 0, 0),
	}
	if market.SaturationLevel != "" {
		data["saturationLevel"] = market.SaturationLevel
	}
	if market.LocalCompetitors > 0 {
		data["localCompetitors"] = market.LocalCompetitors
	}
	if trends := fitStrings(market.SeasonalTrends, contentfit.LimitTrendLabel, 4); len(trends) > 0 {
		data["seasonalTrends"] = trends
	}
	if market.Summary != "" {
		data["summary"] = contentfit.Fit(market.Summary, contentfit.LimitSummary)
	}
	return data
}

func (b *builder) reviewHealth() map[string]interface{} {
	s := b.reviews.Sentiment
	m := b.reviews.Metrics

	themes := make([]map[string]interface{}, 0, len(s.Themes))
	for _, theme := range s.Themes {
		themes = append(themes, map[string]interface{}{
			"label":    contentfit.Fit(theme.Label, contentfit.LimitThemeLabel),
			"mentions": theme.Mentions,
			"tone":     theme.Tone,
		})
	}

	data := map[string]interface{}{
		"healthScore": m.HealthScore,
		"positivePct": s.PositivePct,
		"reviewCount": s.ReviewCount,
	}
	if s.AverageRating > 0 {
		data["averageRating"] = s.AverageRating
	}
	if len(themes) > 0 {
		data["themes"] = themes
	}
	if v := fitStrings(m.Strengths, contentfit.LimitKeyPoint, 3); len(v) > 0 {
		data["strengths"] = v
	}
	if v := fitStrings(m.CriticalIssues, contentfit.LimitKeyPoint, 3); len(v) > 0 {
		data["criticalIssues"] = v
	}
	if v := fitStrings(m.Opportunities, contentfit.LimitKeyPoint, 3); len(v) > 0 {
		data["opportunities"] = v
	}
	if m.Recommendation != "" {
		data["recommendation"] = contentfit.Fit(m.Recommendation, contentfit.LimitRecommendation)
	}
	return data
}

func (b *builder) productLineup() map[string]interface{} {
	return map[string]interface{}{
		"products":       b.productList(),
		"pricingDisplay": b.seller.PricingDisplay,
	}
}

func (b *builder) financialProjection() map[string]interface{} {
	return map[string]interface{}{
		"monthlyVisits":      b.proj.MonthlyVisits,
		"growthRatePct":      b.proj.GrowthRatePct,
		"growthSource":       b.proj.GrowthSource,
		"newCustomers":       b.proj.NewCustomers,
		"returningCustomers": b.proj.ReturningCustomers,
		"avgTicket":          sellerctx.FormatMoney(b.proj.AvgTicket),
		"monthlyRevenue":     sellerctx.FormatMoney(b.proj.MonthlyRevenue),
		"sixMonthRevenue":    sellerctx.FormatMoney(b.proj.SixMonthRevenue),
		"sixMonthCost":       sellerctx.FormatMoney(b.proj.SixMonthCost),
		"roiPct":             b.proj.ROIPct,
		"pricingTier":        b.proj.PricingTier,
	}
}

func (b *builder) engagementPlan() map[string]interface{} {
	return map[string]interface{}{
		"companyName": b.seller.CompanyName,
		"pricingTier": b.proj.PricingTier,
		"phases": []map[string]interface{}{
			{
				"name":     "Kickoff",
				"timeline": "Weeks 1-2",
				"focus":    "Onboarding, profile audit, and baseline reporting",
			},
			{
				"name":     "Momentum",
				"timeline": "Weeks 3-8",
				"focus":    "Review responses, local campaigns, and first measurable wins",
			},
			{
				"name":     "Scale",
				"timeline": "Months 3-6",
				"focus":    "Double down on what converts, with quarterly growth reviews",
			},
		},
	}
}

// ==========================
// Shared Helpers
// ==========================

func (b *builder) businessName() string {
	name := contentfit.Fit(b.inputs.BusinessName, contentfit.LimitCompanyName)
	if name == "" {
		name = "your business"
	}
	return name
}

// greetingName is the contact's first name, or a neutral fallback.
func (b *builder) greetingName() string {
	name := strings.TrimSpace(b.inputs.ContactName)
	if name == "" {
		return "there"
	}
	if i := strings.IndexByte(name, ' '); i > 0 {
		name = name[:i]
	}
	return contentfit.Fit(name, contentfit.LimitCompanyName)
}

func (b *builder) location() string {
	city := strings.TrimSpace(b.inputs.City)
	state := strings.TrimSpace(b.inputs.State)
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}

// leadHook picks the opening pain point for the intro email: the stated
// problem when given, otherwise the top ICP or industry pain point.
func (b *builder) leadHook() string {
	if b.inputs.StatedProblem != "" {
		return contentfit.Fit(b.inputs.StatedProblem, contentfit.LimitProblemStatement)
	}
	if len(b.seller.ICP.PainPoints) > 0 {
		return contentfit.Fit(b.seller.ICP.PainPoints[0], contentfit.LimitPainPoint)
	}
	if len(b.intel.PainPoints) > 0 {
		return contentfit.Fit(b.intel.PainPoints[0], contentfit.LimitPainPoint)
	}
	return ""
}

func (b *builder) productList() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(b.seller.Products))
	for _, p := range b.seller.Products {
		item := map[string]interface{}{
			"name":        contentfit.Fit(p.Name, contentfit.LimitProductName),
			"description": contentfit.Fit(p.Description, contentfit.LimitProductDescription),
			"isPrimary":   p.IsPrimary,
		}
		if display := priceDisplay(p.Price); display != "" {
			item["price"] = display
		}
		if p.Icon != "" {
			item["icon"] = p.Icon
		}
		out = append(out, item)
	}
	return out
}

// priceDisplay renders a product price: numbers get money formatting, raw
// strings pass through, anything else disappears.
func priceDisplay(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		if amount := projection.SafeNumber(raw, 0, 0); amount > 0 {
			return sellerctx.FormatMoney(amount)
		}
		return ""
	}
}

func fitStrings(values []string, limit, max int) []string {
	out := make([]string, 0, max)
	for _, v := range values {
		if len(out) == max {
			break
		}
		fitted := contentfit.Fit(v, limit)
		if fitted == "" {
			continue
		}
		out = append(out, fitted)
	}
	return out
}
