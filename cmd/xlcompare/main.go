package main

import (
	"fmt"
	"os"
	"xlcompare/internal/cli"
	"xlcompare/internal/compare"
	"xlcompare/internal/config"
	"xlcompare/internal/excel"
	"xlcompare/internal/logger"
	"xlcompare/internal/mapping"
	"xlcompare/internal/report"
	"xlcompare/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	command := os.Args[1]

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		cli.Error("Error loading config: %v", err)
		os.Exit(2)
	}

	switch command {
	case "compare":
		if len(os.Args) < 4 {
			cli.Error("compare command requires source and derived file paths")
			fmt.Println("Usage: xlcompare compare <source_file> <derived_file> [report_name]")
			os.Exit(2)
		}
		reportName := ""
		if len(os.Args) > 4 {
			reportName = os.Args[4]
		}
		runCompare(cfg, os.Args[2], os.Args[3], reportName)
	case "suggest":
		if len(os.Args) < 4 {
			cli.Error("suggest command requires source and derived file paths")
			fmt.Println("Usage: xlcompare suggest <source_file> <derived_file>")
			os.Exit(2)
		}
		runSuggest(cfg, os.Args[2], os.Args[3])
	case "tui":
		if err := tui.Run(cfg); err != nil {
			logger.Error("TUI failed", "error", err)
			cli.Error("Error running TUI: %v", err)
			os.Exit(2)
		}
	default:
		cli.Error("Unknown command: %s", command)
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println("xlcompare - Excel Workbook Comparator")
	fmt.Println("\nUsage:")
	fmt.Println("  xlcompare compare <source> <derived> [report_name]  - Compare two workbooks and write a report")
	fmt.Println("  xlcompare suggest <source> <derived>                - Suggest column mappings for unmatched headers")
	fmt.Println("  xlcompare tui                                       - Open the interactive comparison interface")
}

// runCompare loads both workbooks, compares them, writes the result
// workbook, and exits 1 when mismatches were found.
func runCompare(cfg *config.Config, sourcePath, derivedPath, reportName string) {
	logger.Info("Starting compare operation", "source", sourcePath, "derived", derivedPath)

	source, err := excel.LoadWorkbook(sourcePath)
	if err != nil {
		logger.Error("Failed to load source workbook", "error", err)
		cli.Error("Error loading source workbook: %v", err)
		os.Exit(2)
	}

	derived, err := excel.LoadWorkbook(derivedPath)
	if err != nil {
		logger.Error("Failed to load derived workbook", "error", err)
		cli.Error("Error loading derived workbook: %v", err)
		os.Exit(2)
	}

	opts := compare.Options{NumericTolerance: cfg.NumericTolerance}
	if mc, err := mapping.LoadFromFile(cfg.MappingFile); err == nil {
		cli.Info("Using column mapping file: %s", cli.Highlight(cfg.MappingFile))
		opts.Mapping = mc
	}

	result := compare.Workbooks(source, derived, opts)

	reportPath, err := cfg.ReportPath(reportName)
	if err != nil {
		logger.Error("Failed to resolve report path", "error", err)
		cli.Error("Error resolving report path: %v", err)
		os.Exit(2)
	}
	if err := report.Write(reportPath, result); err != nil {
		logger.Error("Failed to write report", "error", err)
		cli.Error("Error writing report: %v", err)
		os.Exit(2)
	}

	s := result.Summary
	fmt.Println()
	cli.Info("Structure issues: %d", s.StructureIssueCount)
	cli.Info("Dtype issues:     %d", s.DtypeIssueCount)
	cli.Info("Value mismatches: %d", s.ValueMismatchCount)
	cli.Info("Report saved to: %s", cli.Highlight(reportPath))
	fmt.Println()

	if s.AllMatched {
		cli.Success("All checks passed. No mismatches found.")
		return
	}

	cli.Warn("Mismatches found. See the report for details.")
	os.Exit(1)
}

// runSuggest proposes AI column mappings for headers that did not match by
// name and merges them into the mapping file.
func runSuggest(cfg *config.Config, sourcePath, derivedPath string) {
	logger.Info("Starting suggest operation", "source", sourcePath, "derived", derivedPath)

	source, err := excel.LoadWorkbook(sourcePath)
	if err != nil {
		cli.Error("Error loading source workbook: %v", err)
		os.Exit(2)
	}
	derived, err := excel.LoadWorkbook(derivedPath)
	if err != nil {
		cli.Error("Error loading derived workbook: %v", err)
		os.Exit(2)
	}

	sourceCols, derivedCols := unmatchedColumns(source, derived)
	if len(sourceCols) == 0 || len(derivedCols) == 0 {
		cli.Success("All column headers already match by name; nothing to suggest.")
		return
	}

	cli.Info("Unmatched headers: %d derived, %d source", len(derivedCols), len(sourceCols))

	mapper, err := mapping.NewAIMapper(mapping.GetGeminiAPIKey())
	if err != nil {
		cli.Error("AI mapper unavailable: %v", err)
		os.Exit(2)
	}
	defer mapper.Close()

	suggestions, err := mapper.SuggestMappings(derivedCols, sourceCols)
	if err != nil {
		cli.Error("Error generating suggestions: %v", err)
		os.Exit(2)
	}

	if len(suggestions) == 0 {
		cli.Warn("No confident suggestions were produced.")
		return
	}

	mc, err := mapping.LoadFromFile(cfg.MappingFile)
	if err != nil {
		mc = &mapping.MappingConfig{}
	}
	for _, s := range suggestions {
		cli.Info("%s → %s (%.2f)", cli.Highlight(s.DerivedColumn), cli.Highlight(s.SourceColumn), s.Confidence)
		mc.Mappings = append(mc.Mappings, mapping.ColumnMapping{
			DerivedColumn: s.DerivedColumn,
			SourceColumn:  s.SourceColumn,
		})
	}

	if err := mc.SaveToFile(cfg.MappingFile); err != nil {
		cli.Error("Error saving mapping file: %v", err)
		os.Exit(2)
	}
	cli.Success("Saved %d suggestions to %s", len(suggestions), cfg.MappingFile)
}

// unmatchedColumns collects the headers of each workbook that have no
// exact-name counterpart in the other, across all sheets.
func unmatchedColumns(source, derived *excel.Workbook) (sourceCols, derivedCols []string) {
	sourceSet := make(map[string]bool)
	derivedSet := make(map[string]bool)
	for _, s := range source.Sheets {
		for _, c := range s.Columns {
			sourceSet[c] = true
		}
	}
	for _, s := range derived.Sheets {
		for _, c := range s.Columns {
			derivedSet[c] = true
		}
	}

	for _, s := range source.Sheets {
		for _, c := range s.Columns {
			if !derivedSet[c] {
				sourceCols = append(sourceCols, c)
				derivedSet[c] = true // dedupe
			}
		}
	}
	for _, s := range derived.Sheets {
		for _, c := range s.Columns {
			if !sourceSet[c] {
				derivedCols = append(derivedCols, c)
				sourceSet[c] = true // dedupe
			}
		}
	}
	return sourceCols, derivedCols
}
