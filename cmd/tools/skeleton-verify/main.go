// cmd/tools/skeleton-verify/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"pitchforge/internal/catalog"
	"pitchforge/internal/composer/sections"
	"pitchforge/internal/models"
	"pitchforge/pkg/registry"
)

func main() {
	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)
	planCmd := flag.NewFlagSet("plan", flag.ExitOnError)

	// Check command flags
	catalogPath := checkCmd.String("catalog", "", "Path to a section catalog JSON file (default: built-in catalog)")

	// Plan command flags
	level := planCmd.String("level", "deck", "Document level (outreach, onepager, deck)")
	trigger := planCmd.Bool("trigger", false, "Include sections gated on a trigger event")
	reviews := planCmd.Bool("reviews", false, "Include sections gated on review analytics")
	market := planCmd.Bool("market", false, "Include sections gated on market data")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		checkCmd.Parse(os.Args[2:])
		if err := runCheck(*catalogPath); err != nil {
			fmt.Printf("Check failed: %v\n", err)
			os.Exit(1)
		}

	case "plan":
		planCmd.Parse(os.Args[2:])
		if err := runPlan(*level, *trigger, *reviews, *market); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

// runCheck walks every level and flag combination, verifies the numbering
// invariant, cross-checks the section catalog against the skeletons, and
// lints the industry table.
func runCheck(catalogPath string) error {
	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	levels := sections.Levels()
	for _, lvl := range levels {
		if err := sections.Verify(lvl); err != nil {
			return err
		}
	}
	fmt.Printf("Numbering check passed: %d levels, %d plans.\n",
		len(levels), len(levels)*len(sections.AllFlagCombinations()))

	if err := cat.Validate(); err != nil {
		return err
	}
	if err := checkCoverage(cat); err != nil {
		return err
	}
	fmt.Printf("Catalog check passed. Found %d sections.\n", len(cat.Sections))

	if err := lintIndustries(); err != nil {
		return err
	}
	fmt.Printf("Industry table lint passed. Found %d industries.\n", len(catalog.All()))

	return printSectionTables(cat)
}

// runPlan prints the resolved plan for one level and flag set.
func runPlan(levelArg string, trigger, reviews, market bool) error {
	lvl, ok := models.ParseLevel(levelArg)
	if !ok {
		return fmt.Errorf("unknown document level %q", levelArg)
	}

	plan, err := sections.Plan(lvl, sections.Flags{
		HasTriggerEvent:    trigger,
		HasReviewAnalytics: reviews,
		HasMarketData:      market,
	})
	if err != nil {
		return err
	}

	cat := registry.DefaultCatalog()
	for _, s := range plan {
		fmt.Printf("%2d/%d  %-22s %s\n", s.Position, s.Total, s.ID, cat.Title(s.ID))
	}
	return nil
}

// checkCoverage confirms the catalog and the skeletons agree: every section a
// level can plan has a catalog entry listing that level, and every catalog
// entry maps back to a section some level actually plans.
func checkCoverage(cat *registry.SectionCatalog) error {
	planned := make(map[string]map[string]bool)
	for _, lvl := range sections.Levels() {
		for _, id := range sections.IDsForLevel(lvl) {
			info, ok := cat.Lookup(id)
			if !ok {
				return fmt.Errorf("level %s plans section %q but the catalog has no entry for it", lvl, id)
			}
			if !containsLevel(info.Levels, lvl) {
				return fmt.Errorf("section %q is planned by level %s but its catalog entry lists %v", id, lvl, info.Levels)
			}
			if planned[id] == nil {
				planned[id] = make(map[string]bool)
			}
			planned[id][string(lvl)] = true
		}
	}

	for _, info := range cat.Sections {
		byLevel, ok := planned[info.ID]
		if !ok {
			return fmt.Errorf("catalog section %q is not planned by any level", info.ID)
		}
		for _, l := range info.Levels {
			if !byLevel[l] {
				return fmt.Errorf("catalog section %q claims level %s but that level never plans it", info.ID, l)
			}
		}
	}
	return nil
}

// lintIndustries checks every industry row for values the projection cannot
// work with. A nonpositive growth rate zeroes out every projection built on
// that industry without any visible error.
func lintIndustries() error {
	rows := append(catalog.All(), catalog.Default())
	for _, row := range rows {
		if row.GrowthRatePct <= 0 {
			return fmt.Errorf("industry %q has nonpositive growth rate %.1f", row.Key, row.GrowthRatePct)
		}
		if row.MonthlyVisits <= 0 {
			return fmt.Errorf("industry %q has nonpositive monthly visits %.0f", row.Key, row.MonthlyVisits)
		}
		if row.AvgTicket <= 0 {
			return fmt.Errorf("industry %q has nonpositive average ticket %.2f", row.Key, row.AvgTicket)
		}
		if row.RepeatRate < 0 || row.RepeatRate >= 1 {
			return fmt.Errorf("industry %q has repeat rate %.2f outside [0, 1)", row.Key, row.RepeatRate)
		}
	}
	return nil
}

// printSectionTables prints the fully expanded plan for each level, every
// optional flag on.
func printSectionTables(cat *registry.SectionCatalog) error {
	all := sections.Flags{HasTriggerEvent: true, HasReviewAnalytics: true, HasMarketData: true}
	for _, lvl := range sections.Levels() {
		plan, err := sections.Plan(lvl, all)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s (%d sections)\n", lvl, len(plan))
		for _, s := range plan {
			kind := "mandatory"
			title := ""
			if info, ok := cat.Lookup(s.ID); ok {
				title = info.Title
				if info.Kind == "optional" {
					kind = "optional:" + info.RequiresFlag
				}
			}
			fmt.Printf("  %2d/%-2d  %-22s %-26s %s\n", s.Position, s.Total, s.ID, kind, title)
		}
	}
	return nil
}

func loadCatalog(path string) (*registry.SectionCatalog, error) {
	if path == "" {
		return registry.DefaultCatalog(), nil
	}
	return registry.LoadCatalog(path)
}

func containsLevel(levels []string, level models.DocumentLevel) bool {
	for _, l := range levels {
		if l == string(level) {
			return true
		}
	}
	return false
}

func help() {
	fmt.Print(`
Usage: skeleton-verify <command> [flags]

Commands:
  check  Verify section numbering for every level and flag combination,
         cross-check the section catalog, and lint the industry table
  plan   Print the resolved section plan for one level and flag set
  help   Show this help message

Examples:
  skeleton-verify check
  skeleton-verify check -catalog configs/section-catalog.json
  skeleton-verify plan -level deck -market -reviews
  skeleton-verify plan -level outreach -trigger

Use 'skeleton-verify <command> -h' for more information about a command.
` + "\n")
}
