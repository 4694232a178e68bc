// internal/composer/sellerctx/models.go

package sellerctx

import (
	"pitchforge/internal/models"
)

// Context is the resolved seller identity a document is composed against.
// Every field is populated; renderers never check for missing branding.
type Context struct {
	CompanyName    string           `json:"companyName"`
	PrimaryColor   string           `json:"primaryColor"`
	SecondaryColor string           `json:"secondaryColor"`
	LogoURL        string           `json:"logoUrl,omitempty"`
	FooterText     string           `json:"footerText,omitempty"`
	Differentiator string           `json:"differentiator,omitempty"`
	USPs           []string         `json:"uniqueSellingPoints,omitempty"`
	KeyBenefits    []string         `json:"keyBenefits,omitempty"`
	Products       []models.Product `json:"products"`
	ICP            models.ICP       `json:"icp"`
	TotalPrice     float64          `json:"totalPrice"`
	PricingDisplay string           `json:"pricingDisplay"`
	IsDefault      bool             `json:"isDefault"`
}
