// internal/composer/sellerctx/resolver.go

// Package sellerctx resolves who is pitching: branding, product catalog,
// pricing, and the ideal customer profile. Precedence is field-wise:
// request overrides beat the stored profile, which beats platform
// defaults. Resolution never fails.
package sellerctx

import (
	"strconv"
	"strings"

	"pitchforge/internal/models"
)

// Resolve merges request-level branding, the seller's stored profile, and
// platform defaults into a complete context. profile may be nil; the
// result is then the platform default flagged IsDefault=true.
func Resolve(branding models.BrandingOptions, profile *models.SellerProfile, icpID string) Context {
	base := defaultProfile()
	isDefault := profile == nil
	if profile == nil {
		profile = &models.SellerProfile{}
	}

	ctx := Context{
		CompanyName:    firstNonEmpty(branding.CompanyName, profile.CompanyName, base.CompanyName),
		PrimaryColor:   firstNonEmpty(branding.PrimaryColor, profile.PrimaryColor, base.PrimaryColor),
		SecondaryColor: firstNonEmpty(branding.SecondaryColor, profile.SecondaryColor, base.SecondaryColor),
		LogoURL:        firstNonEmpty(branding.LogoURL, profile.LogoURL, base.LogoURL),
		FooterText:     firstNonEmpty(branding.FooterText, profile.FooterText, base.FooterText),
		Differentiator: firstNonEmpty(profile.Differentiator, base.Differentiator),
		IsDefault:      isDefault,
	}

	ctx.USPs = firstNonEmptySlice(profile.UniqueSellingPoints, base.UniqueSellingPoints)
	ctx.KeyBenefits = firstNonEmptySlice(profile.KeyBenefits, base.KeyBenefits)

	products := profile.Products
	if len(products) == 0 {
		products = base.Products
	}
	ctx.Products = products

	icps := profile.ICPs
	if len(icps) == 0 {
		icps = base.ICPs
	}
	ctx.ICP = selectICP(icps, icpID)

	ctx.TotalPrice, ctx.PricingDisplay = resolvePricing(products)
	return ctx
}

// selectICP picks the ideal customer profile: requested ID first, then the
// one flagged default, then the first entry.
func selectICP(icps []models.ICP, icpID string) models.ICP {
	if len(icps) == 0 {
		return models.ICP{}
	}
	if icpID != "" {
		for _, icp := range icps {
			if icp.ID == icpID {
				return icp
			}
		}
	}
	for _, icp := range icps {
		if icp.IsDefault {
			return icp
		}
	}
	return icps[0]
}

// resolvePricing sums parseable positive product prices into a monthly
// total. When nothing is parseable it falls back to the primary product's
// raw price text, then to the sentinel.
func resolvePricing(products []models.Product) (float64, string) {
	total := 0.0
	for _, p := range products {
		if v, ok := parsePrice(p.Price); ok && v > 0 {
			total += v
		}
	}
	if total > 0 {
		return total, FormatMoney(total) + "/mo"
	}

	if primary := primaryProduct(products); primary != nil {
		raw := strings.TrimSpace(coerceString(primary.Price))
		if raw != "" && raw != "0" {
			return 0, raw
		}
	}
	return 0, PricingSentinel
}

func primaryProduct(products []models.Product) *models.Product {
	for i := range products {
		if products[i].IsPrimary {
			return &products[i]
		}
	}
	if len(products) > 0 {
		return &products[0]
	}
	return nil
}

func parsePrice(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		cleaned := strings.TrimSpace(v)
		cleaned = strings.TrimPrefix(cleaned, "$")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		cleaned = strings.TrimSuffix(strings.ToLower(cleaned), "/mo")
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func coerceString(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// FormatMoney renders a dollar amount with thousands separators, dropping
// cents when they are zero.
func FormatMoney(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	s = strings.TrimSuffix(s, ".00")

	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	out := "$" + b.String()
	if len(parts) == 2 {
		out += "." + parts[1]
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstNonEmptySlice(values ...[]string) []string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}
