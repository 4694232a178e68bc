// internal/render/sections.go

package render

import (
	"fmt"
	"strings"
)

// sectionBody produces the markdown body for one section from its data
// slice. Unknown section IDs render an empty body; the heading and position
// line still come from RenderSection.
func sectionBody(sectionID string, data map[string]interface{}) string {
	switch sectionID {
	// outreach
	case "intro-email":
		return introEmailBody(data)
	case "trigger-hook":
		return triggerHookBody(data)
	case "value-email":
		return valueEmailBody(data)
	case "proof-email":
		return proofEmailBody(data)
	case "closing-email":
		return closingEmailBody(data)

	// onepager
	case "header":
		return headerBody(data)
	case "problem-statement", "problem":
		return problemBody(data)
	case "solution-overview", "solution":
		return solutionBody(data)
	case "financial-snapshot":
		return financialSnapshotBody(data)
	case "social-proof":
		return socialProofBody(data)
	case "call-to-action", "next-steps":
		return callToActionBody(data)

	// deck
	case "cover":
		return coverBody(data)
	case "business-snapshot":
		return businessSnapshotBody(data)
	case "market-intelligence":
		return marketIntelligenceBody(data)
	case "review-health":
		return reviewHealthBody(data)
	case "product-lineup":
		return productLineupBody(data)
	case "financial-projection":
		return financialProjectionBody(data)
	case "engagement-plan":
		return engagementPlanBody(data)

	default:
		return ""
	}
}

// ==========================
// Outreach Bodies
// ==========================

func introEmailBody(data map[string]interface{}) string {
	var b strings.Builder
	subjectLine(&b, data)
	greeting(&b, data)

	fmt.Fprintf(&b, "I came across %s", str(data, "businessName"))
	if city := str(data, "city"); city != "" {
		fmt.Fprintf(&b, " in %s", city)
	}
	b.WriteString(" and wanted to reach out.\n\n")

	if hook := str(data, "hook"); hook != "" {
		fmt.Fprintf(&b, "We hear the same thing from owners like you: %s\n\n", hook)
	}

	fmt.Fprintf(&b, "%s helps local businesses fix exactly that. Worth a quick chat?\n", str(data, "senderCompany"))
	footer(&b, data)
	return b.String()
}

func triggerHookBody(data map[string]interface{}) string {
	var b strings.Builder
	subjectLine(&b, data)
	greeting(&b, data)

	if headline := str(data, "headline"); headline != "" {
		fmt.Fprintf(&b, "Saw the news: **%s**\n\n", headline)
	}
	if summary := str(data, "summary"); summary != "" {
		b.WriteString(summary + "\n\n")
	}
	if points := strs(data, "keyPoints"); len(points) > 0 {
		bullets(&b, points)
		b.WriteString("\n")
	}
	if caption := sourceCaption(data); caption != "" {
		fmt.Fprintf(&b, "_%s_\n\n", caption)
	}

	fmt.Fprintf(&b, "Moments like this are when a push on local visibility pays off fastest for %s. Want to see the plan we'd run?\n", str(data, "businessName"))
	footer(&b, data)
	return b.String()
}

func valueEmailBody(data map[string]interface{}) string {
	var b strings.Builder
	subjectLine(&b, data)
	greeting(&b, data)

	fmt.Fprintf(&b, "A quick look at what %s would get from working with us:\n\n", str(data, "businessName"))
	bullets(&b, strs(data, "keyBenefits"))
	b.WriteString("\n")

	if products := objs(data, "products"); len(products) > 0 {
		b.WriteString("The lineup:\n\n")
		productBullets(&b, products)
		b.WriteString("\n")
	}
	pricingLine(&b, data)

	b.WriteString("Happy to walk through any of it.\n")
	footer(&b, data)
	return b.String()
}

func proofEmailBody(data map[string]interface{}) string {
	var b strings.Builder
	subjectLine(&b, data)
	greeting(&b, data)

	fmt.Fprintf(&b, "We ran the numbers for %s. At a %s%% lift in new business (%s):\n\n",
		str(data, "businessName"), str(data, "growthRatePct"), str(data, "growthSource"))
	fmt.Fprintf(&b, "- **%s** new customers a month\n", str(data, "newCustomers"))
	fmt.Fprintf(&b, "- **%s** in added monthly revenue\n", str(data, "monthlyRevenue"))
	fmt.Fprintf(&b, "- **%s** over six months\n\n", str(data, "sixMonthRevenue"))

	if pct := str(data, "positivePct"); pct != "" {
		fmt.Fprintf(&b, "Your reviews back this up: %s%% positive, with a reputation health score of %s.\n\n",
			pct, str(data, "healthScore"))
	}

	b.WriteString("Want the full breakdown?\n")
	footer(&b, data)
	return b.String()
}

func closingEmailBody(data map[string]interface{}) string {
	var b strings.Builder
	subjectLine(&b, data)
	greeting(&b, data)

	fmt.Fprintf(&b, "Last note from me. The plan for %s pencils out to %s over six months",
		str(data, "businessName"), str(data, "sixMonthRevenue"))
	if roi := num(data, "roiPct"); roi > 0 {
		fmt.Fprintf(&b, ", a %s%% return on the program cost", str(data, "roiPct"))
	}
	b.WriteString(".\n\n")

	pricingLine(&b, data)
	b.WriteString("If the timing is wrong, no hard feelings. If it's right, grab 15 minutes with me this week.\n")
	footer(&b, data)
	return b.String()
}

// ==========================
// One-Pager Bodies
// ==========================

func headerBody(data map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", str(data, "businessName"))
	if headline := str(data, "headline"); headline != "" {
		fmt.Fprintf(&b, "**%s**\n\n", headline)
	}
	if location := str(data, "location"); location != "" {
		b.WriteString(location + "\n\n")
	}
	fmt.Fprintf(&b, "_Prepared by %s_\n", str(data, "companyName"))
	return b.String()
}

func problemBody(data map[string]interface{}) string {
	var b strings.Builder
	if stated := str(data, "statedProblem"); stated != "" {
		fmt.Fprintf(&b, "> %s\n\n", stated)
	}
	if industry := str(data, "industry"); industry != "" {
		fmt.Fprintf(&b, "The pattern across %s:\n\n", industry)
	}
	bullets(&b, strs(data, "painPoints"))
	return b.String()
}

func solutionBody(data map[string]interface{}) string {
	var b strings.Builder

	lead := "What working with %s looks like:\n\n"
	if str(data, "copyMode") == "unique-value" {
		lead = "Why businesses pick %s:\n\n"
	}
	fmt.Fprintf(&b, lead, str(data, "companyName"))

	if diff := str(data, "differentiator"); diff != "" {
		b.WriteString(diff + "\n\n")
	}
	if usps := strs(data, "usps"); len(usps) > 0 {
		bullets(&b, usps)
		b.WriteString("\n")
	}
	if benefits := strs(data, "keyBenefits"); len(benefits) > 0 {
		b.WriteString("What that means for you:\n\n")
		bullets(&b, benefits)
	}
	return b.String()
}

func financialSnapshotBody(data map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- New customers per month: **%s**\n", str(data, "newCustomers"))
	fmt.Fprintf(&b, "- Added monthly revenue: **%s**\n", str(data, "monthlyRevenue"))
	fmt.Fprintf(&b, "- Six month revenue: **%s**\n", str(data, "sixMonthRevenue"))
	if roi := num(data, "roiPct"); roi > 0 {
		fmt.Fprintf(&b, "- Return on program cost: **%s%%**\n", str(data, "roiPct"))
	}
	fmt.Fprintf(&b, "\n_Assumes a %s%% growth rate (%s)._\n",
		str(data, "growthRatePct"), str(data, "growthSource"))
	return b.String()
}

func socialProofBody(data map[string]interface{}) string {
	var b strings.Builder

	rating := str(data, "averageRating")
	count := str(data, "reviewCount")
	switch {
	case rating != "" && count != "":
		fmt.Fprintf(&b, "Rated **%s** across **%s** reviews.\n", rating, count)
	case rating != "":
		fmt.Fprintf(&b, "Rated **%s** by customers.\n", rating)
	case count != "":
		fmt.Fprintf(&b, "**%s** customer reviews and counting.\n", count)
	}

	if pct := str(data, "positivePct"); pct != "" {
		fmt.Fprintf(&b, "\n%s%% of recent reviews are positive.\n", pct)
	}
	if strengths := strs(data, "strengths"); len(strengths) > 0 {
		b.WriteString("\nWhat customers call out:\n\n")
		bullets(&b, strengths)
	}

	if b.Len() == 0 {
		b.WriteString("Ask us what businesses like yours say after six months.\n")
	}
	return b.String()
}

func callToActionBody(data map[string]interface{}) string {
	var b strings.Builder
	pricingLine(&b, data)
	fmt.Fprintf(&b, "Ready when you are, %s. Reply to this pitch or book a call with %s to get %s moving.\n",
		str(data, "greetingName"), str(data, "companyName"), str(data, "businessName"))
	footer(&b, data)
	return b.String()
}

// ==========================
// Deck Bodies
// ==========================

func coverBody(data map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", str(data, "businessName"))
	if headline := str(data, "headline"); headline != "" {
		fmt.Fprintf(&b, "**%s**\n\n", headline)
	}
	if preparedFor := str(data, "preparedFor"); preparedFor != "" {
		fmt.Fprintf(&b, "Prepared for %s\n\n", preparedFor)
	}
	if location := str(data, "location"); location != "" {
		b.WriteString(location + "\n\n")
	}
	fmt.Fprintf(&b, "_Prepared by %s_\n", str(data, "companyName"))
	return b.String()
}

func businessSnapshotBody(data map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Business: **%s**\n", str(data, "businessName"))
	fmt.Fprintf(&b, "- Industry: %s\n", str(data, "industry"))
	if location := str(data, "location"); location != "" {
		fmt.Fprintf(&b, "- Location: %s\n", location)
	}
	fmt.Fprintf(&b, "- Monthly customer visits: %s\n", str(data, "monthlyVisits"))
	fmt.Fprintf(&b, "- Average ticket: %s\n", str(data, "avgTicket"))
	if rating := str(data, "rating"); rating != "" {
		fmt.Fprintf(&b, "- Rating: %s", rating)
		if count := str(data, "reviewCount"); count != "" {
			fmt.Fprintf(&b, " (%s reviews)", count)
		}
		b.WriteString("\n")
	}

	if whyNow := obj(data, "whyNow"); whyNow != nil {
		b.WriteString("\n### Why now\n\n")
		if headline := str(whyNow, "headline"); headline != "" {
			fmt.Fprintf(&b, "**%s**\n\n", headline)
		}
		if summary := str(whyNow, "summary"); summary != "" {
			b.WriteString(summary + "\n\n")
		}
		if points := strs(whyNow, "keyPoints"); len(points) > 0 {
			bullets(&b, points)
			b.WriteString("\n")
		}
		if source := str(whyNow, "source"); source != "" {
			fmt.Fprintf(&b, "_%s_\n", source)
		}
	}
	return b.String()
}

func marketIntelligenceBody(data map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Local opportunity score: **%s/100**\n\n", str(data, "opportunityScore"))

	if saturation := str(data, "saturationLevel"); saturation != "" {
		fmt.Fprintf(&b, "- Market saturation: %s\n", saturation)
	}
	if competitors := str(data, "localCompetitors"); competitors != "" {
		fmt.Fprintf(&b, "- Competitors nearby: %s\n", competitors)
	}
	if trends := strs(data, "seasonalTrends"); len(trends) > 0 {
		fmt.Fprintf(&b, "- Seasonal trends: %s\n", strings.Join(trends, ", "))
	}
	if summary := str(data, "summary"); summary != "" {
		b.WriteString("\n" + summary + "\n")
	}
	return b.String()
}

func reviewHealthBody(data map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reputation health score: **%s/100**\n\n", str(data, "healthScore"))
	fmt.Fprintf(&b, "- Positive sentiment: %s%%\n", str(data, "positivePct"))
	fmt.Fprintf(&b, "- Reviews analyzed: %s\n", str(data, "reviewCount"))
	if rating := str(data, "averageRating"); rating != "" {
		fmt.Fprintf(&b, "- Average rating: %s\n", rating)
	}

	if themes := objs(data, "themes"); len(themes) > 0 {
		b.WriteString("\nWhat reviewers talk about:\n\n")
		for _, theme := range themes {
			fmt.Fprintf(&b, "- %s: %s mentions, %s\n",
				str(theme, "label"), str(theme, "mentions"), str(theme, "tone"))
		}
	}
	if strengths := strs(data, "strengths"); len(strengths) > 0 {
		b.WriteString("\nStrengths:\n\n")
		bullets(&b, strengths)
	}
	if issues := strs(data, "criticalIssues"); len(issues) > 0 {
		b.WriteString("\nCritical issues:\n\n")
		bullets(&b, issues)
	}
	if opportunities := strs(data, "opportunities"); len(opportunities) > 0 {
		b.WriteString("\nOpportunities:\n\n")
		bullets(&b, opportunities)
	}
	if rec := str(data, "recommendation"); rec != "" {
		fmt.Fprintf(&b, "\n**Recommendation:** %s\n", rec)
	}
	return b.String()
}

func productLineupBody(data map[string]interface{}) string {
	var b strings.Builder
	productBullets(&b, objs(data, "products"))
	b.WriteString("\n")
	pricingLine(&b, data)
	return b.String()
}

func financialProjectionBody(data map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Model inputs: %s monthly visits, %s average ticket, %s%% growth (%s).\n\n",
		str(data, "monthlyVisits"), str(data, "avgTicket"),
		str(data, "growthRatePct"), str(data, "growthSource"))

	fmt.Fprintf(&b, "- New customers per month: **%s**\n", str(data, "newCustomers"))
	if returning := str(data, "returningCustomers"); returning != "" {
		fmt.Fprintf(&b, "- Of those returning monthly: **%s**\n", returning)
	}
	fmt.Fprintf(&b, "- Added monthly revenue: **%s**\n", str(data, "monthlyRevenue"))
	fmt.Fprintf(&b, "- Six month revenue: **%s**\n", str(data, "sixMonthRevenue"))
	fmt.Fprintf(&b, "- Six month program cost (%s tier): **%s**\n",
		str(data, "pricingTier"), str(data, "sixMonthCost"))
	if roi := num(data, "roiPct"); roi > 0 {
		fmt.Fprintf(&b, "- Return on investment: **%s%%**\n", str(data, "roiPct"))
	}
	return b.String()
}

func engagementPlanBody(data map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "How %s runs the first six months", str(data, "companyName"))
	if tier := str(data, "pricingTier"); tier != "" {
		fmt.Fprintf(&b, " on the %s tier", tier)
	}
	b.WriteString(":\n\n")

	for _, phase := range objs(data, "phases") {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n",
			str(phase, "name"), str(phase, "timeline"), str(phase, "focus"))
	}
	return b.String()
}

// ==========================
// Shared Fragments
// ==========================

func subjectLine(b *strings.Builder, data map[string]interface{}) {
	if subject := str(data, "subject"); subject != "" {
		fmt.Fprintf(b, "**Subject:** %s\n\n", subject)
	}
}

func greeting(b *strings.Builder, data map[string]interface{}) {
	name := str(data, "greetingName")
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(b, "Hi %s,\n\n", name)
}

func footer(b *strings.Builder, data map[string]interface{}) {
	if footerText := str(data, "footerText"); footerText != "" {
		fmt.Fprintf(b, "\n_%s_\n", footerText)
	}
}

func pricingLine(b *strings.Builder, data map[string]interface{}) {
	if pricing := str(data, "pricingDisplay"); pricing != "" {
		fmt.Fprintf(b, "Pricing: **%s**\n\n", pricing)
	}
}

// sourceCaption joins the trigger source and date into one caption.
func sourceCaption(data map[string]interface{}) string {
	source := str(data, "source")
	date := str(data, "date")
	switch {
	case source != "" && date != "":
		return source + ", " + date
	case source != "":
		return source
	default:
		return date
	}
}

func bullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func productBullets(b *strings.Builder, products []map[string]interface{}) {
	for _, p := range products {
		fmt.Fprintf(b, "- **%s**", str(p, "name"))
		if price := str(p, "price"); price != "" {
			fmt.Fprintf(b, " (%s)", price)
		}
		if desc := str(p, "description"); desc != "" {
			fmt.Fprintf(b, ": %s", desc)
		}
		if isPrimary, ok := p["isPrimary"].(bool); ok && isPrimary {
			b.WriteString(" *(flagship)*")
		}
		b.WriteString("\n")
	}
}
