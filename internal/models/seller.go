// internal/models/seller.go
package models

// SellerProfile carries the seller's saved branding, catalog, and positioning.
type SellerProfile struct {
	ID             string `json:"id,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	LogoURL        string `json:"logoUrl,omitempty"`
	FooterText     string `json:"footerText,omitempty"`

	Differentiator      string   `json:"differentiator,omitempty"`
	UniqueSellingPoints []string `json:"uniqueSellingPoints,omitempty"`
	KeyBenefits         []string `json:"keyBenefits,omitempty"`

	Products []Product `json:"products,omitempty"`
	ICPs     []ICP     `json:"icps,omitempty"`
}

// Product is one entry in the seller's catalog. Price tolerates display
// strings like "$1,200" or "Contact us" alongside plain numbers.
type Product struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Price       interface{} `json:"price,omitempty"`
	Icon        string      `json:"icon,omitempty"`
	IsPrimary   bool        `json:"isPrimary,omitempty"`
}

// ICP is an ideal customer profile the seller targets.
type ICP struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name,omitempty"`
	PainPoints   []string `json:"painPoints,omitempty"`
	TargetTitles []string `json:"targetTitles,omitempty"`
	Segments     []string `json:"segments,omitempty"`
	IsDefault    bool     `json:"isDefault,omitempty"`
}

// BrandingOptions are per-request overrides that outrank the saved profile.
type BrandingOptions struct {
	CompanyName    string `json:"companyName,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	LogoURL        string `json:"logoUrl,omitempty"`
	FooterText     string `json:"footerText,omitempty"`
}
