// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadCatalog reads a section catalog from a JSON file. Deployments that
// customize titles or descriptions point the server at their own file;
// everything else runs on DefaultCatalog.
func LoadCatalog(path string) (*SectionCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cat SectionCatalog
	err = json.Unmarshal(data, &cat)
	return &cat, err
}

// Lookup returns the metadata for a section ID.
func (c *SectionCatalog) Lookup(id string) (SectionInfo, bool) {
	for _, info := range c.Sections {
		if info.ID == id {
			return info, true
		}
	}
	return SectionInfo{}, false
}

// Title returns the display title for a section ID. Unknown IDs get a
// humanized form of the ID itself so rendering never blocks on catalog
// coverage.
func (c *SectionCatalog) Title(id string) string {
	if info, ok := c.Lookup(id); ok && info.Title != "" {
		return info.Title
	}
	return humanize(id)
}

// Validate checks the catalog for structural problems: no sections,
// duplicate IDs, missing required fields, or optional sections without a
// gating flag.
func (c *SectionCatalog) Validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("catalog contains no sections")
	}

	ids := make(map[string]bool)
	for _, info := range c.Sections {
		if info.ID == "" {
			return fmt.Errorf("section missing required field: ID")
		}
		if ids[info.ID] {
			return fmt.Errorf("duplicate section ID: %s", info.ID)
		}
		ids[info.ID] = true

		if info.Title == "" {
			return fmt.Errorf("section %s missing required field: Title", info.ID)
		}
		if len(info.Levels) == 0 {
			return fmt.Errorf("section %s missing required field: Levels", info.ID)
		}
		switch info.Kind {
		case "mandatory":
			if info.RequiresFlag != "" {
				return fmt.Errorf("section %s is mandatory but declares requiresFlag %s", info.ID, info.RequiresFlag)
			}
		case "optional":
			if info.RequiresFlag == "" {
				return fmt.Errorf("section %s is optional but declares no requiresFlag", info.ID)
			}
		default:
			return fmt.Errorf("section %s has unknown kind: %s", info.ID, info.Kind)
		}
	}
	return nil
}

// humanize turns a section ID like "financial-projection" into
// "Financial Projection".
func humanize(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
