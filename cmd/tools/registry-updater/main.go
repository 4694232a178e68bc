// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pitchforge/pkg/registry"
)

var catalogPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	idAdd := addCmd.String("id", "", "Section ID (e.g., case-study)")
	title := addCmd.String("title", "", "Display title (e.g., Case Study)")
	description := addCmd.String("description", "", "Description")
	levels := addCmd.String("levels", "", "Comma-separated document levels (outreach, onepager, deck)")
	kind := addCmd.String("kind", "mandatory", "Section kind (mandatory, optional)")
	requiresFlag := addCmd.String("requiresFlag", "", "Gating flag for optional sections (e.g., marketData)")
	tags := addCmd.String("tags", "", "Comma-separated tags")

	// Update command flags
	idUpdate := updateCmd.String("id", "", "Section ID to update")
	field := updateCmd.String("field", "", "Field to update (title, description, kind, etc.)")
	value := updateCmd.String("value", "", "New value for the field")

	// Validate command flags
	validateCmd.StringVar(&catalogPath, "path", "configs/section-catalog.json", "Path to catalog file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *title == "" || *description == "" || *levels == "" {
			fmt.Println("Error: id, title, description, and levels are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		if *kind == "optional" && *requiresFlag == "" {
			fmt.Println("Error: optional sections need a requiresFlag.")
			addCmd.Usage()
			os.Exit(1)
		}
		section := registry.SectionInfo{
			ID:           *idAdd,
			Title:        *title,
			Description:  *description,
			Levels:       splitList(*levels),
			Kind:         *kind,
			RequiresFlag: *requiresFlag,
			Tags:         splitList(*tags),
		}
		err := addSection(&section)
		if err != nil {
			fmt.Printf("Error adding section: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added section: %s\n", *idAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		err := updateSection(*idUpdate, *field, *value)
		if err != nil {
			fmt.Printf("Error updating section: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated section %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		err := validateCatalog()
		if err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

func addSection(section *registry.SectionInfo) error {
	cat, err := registry.LoadCatalog(catalogPath)
	if err != nil {
		// If file doesn't exist, start from the built-in catalog
		if os.IsNotExist(err) {
			cat = registry.DefaultCatalog()
		} else {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	// Check if section already exists
	if _, exists := cat.Lookup(section.ID); exists {
		return fmt.Errorf("section with ID %s already exists", section.ID)
	}

	// Add new section
	cat.Sections = append(cat.Sections, *section)
	cat.LastUpdated = time.Now().UTC().Format("2006-01-02")

	// Save catalog
	return saveCatalog(cat, catalogPath)
}

func updateSection(id, field, value string) error {
	cat, err := registry.LoadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	found := false
	for i := range cat.Sections {
		if cat.Sections[i].ID == id {
			found = true
			switch field {
			case "title":
				cat.Sections[i].Title = value
			case "description":
				cat.Sections[i].Description = value
			case "kind":
				cat.Sections[i].Kind = value
			case "requiresFlag":
				cat.Sections[i].RequiresFlag = value
			case "levels":
				cat.Sections[i].Levels = splitList(value)
			case "tags":
				cat.Sections[i].Tags = splitList(value)
			default:
				return fmt.Errorf("unknown field: %s", field)
			}
			break
		}
	}

	if !found {
		return fmt.Errorf("section with ID %s not found", id)
	}

	cat.LastUpdated = time.Now().UTC().Format("2006-01-02")
	return saveCatalog(cat, catalogPath)
}

func validateCatalog() error {
	cat, err := registry.LoadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := cat.Validate(); err != nil {
		return err
	}

	fmt.Printf("Catalog validation passed. Found %d sections.\n", len(cat.Sections))
	return nil
}

// saveCatalog handles saving the catalog to file
func saveCatalog(cat *registry.SectionCatalog, path string) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	return nil
}

func splitList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  add     Add a new section to the catalog
  update  Update an existing section's field
  validate Validate the catalog file
  help    Show this help message

Examples:
  registry-updater add -id case-study -title "Case Study" -description "Named customer win with before and after numbers" -levels deck -kind optional -requiresFlag caseStudy
  registry-updater update -id case-study -field title -value "Customer Case Study"
  registry-updater validate -path configs/section-catalog.json

Use 'registry-updater <command> -h' for more information about a command.
` + "\n")
}
