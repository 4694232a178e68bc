// pkg/registry/schema.go
package registry

// SectionCatalog is the section metadata registry: display titles,
// descriptions, and gating info for every section ID the composer can plan.
// Renderers read titles from it; the skeleton-verify tool lints it against
// the composer's skeletons.
type SectionCatalog struct {
	Version     string        `json:"version"`
	LastUpdated string        `json:"lastUpdated"`
	Sections    []SectionInfo `json:"sections"`
}

type SectionInfo struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Levels       []string `json:"levels"`
	Kind         string   `json:"kind"`                   // mandatory | optional
	RequiresFlag string   `json:"requiresFlag,omitempty"` // set when Kind is optional
	Tags         []string `json:"tags,omitempty"`
}
