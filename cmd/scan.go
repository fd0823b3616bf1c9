package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/retidy/retidy/internal/classify"
	"github.com/retidy/retidy/internal/config"
	"github.com/retidy/retidy/internal/inventory"
	"github.com/retidy/retidy/internal/plan"
	"github.com/retidy/retidy/internal/report"
	"github.com/retidy/retidy/pkg/exitcode"
	"github.com/retidy/retidy/pkg/logger"
)

// scanCmd plans (and optionally applies) a tree reorganization.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Plan a tree reorganization (dry run unless --apply)",
	Long: `Scan walks the root, decides where every file belongs via the ordered rule
table, and prints the planned moves. With --hash, identical files are
detected by content digest and all but the newest copy is archived. With
--apply, moves execute and CSV/JSON reports are written under reports/reorg/.
Nothing is ever deleted; archiving is relocation into archive/.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().String("root", ".", "Project root to reorganize")
	scanCmd.Flags().Bool("apply", false, "Actually move files (default is dry run)")
	scanCmd.Flags().Bool("hash", false, "Compute content digests to detect duplicates (slower)")
	scanCmd.Flags().Int("workers", 0, "Hashing worker count (0 = number of CPUs)")
	scanCmd.Flags().StringSlice("include", nil, "Glob patterns to include (doublestar supported)")
	scanCmd.Flags().StringSlice("exclude", nil, "Glob patterns to exclude")
	scanCmd.Flags().Bool("no-ignore", false, "Disable .gitignore/.retidyignore matching")
	scanCmd.Flags().String("docs-dir", "", "Override the canonical plan directory name")
	scanCmd.Flags().String("report-dir", "", "Write reports here instead of reports/reorg/<timestamp>")
	scanCmd.Flags().String("format", "table", "Console output format (table|json)")
}

func runScan(cmd *cobra.Command, _ []string) error {
	rootFlag, _ := cmd.Flags().GetString("root")
	apply, _ := cmd.Flags().GetBool("apply")
	hash, _ := cmd.Flags().GetBool("hash")
	workers, _ := cmd.Flags().GetInt("workers")
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	noIgnore, _ := cmd.Flags().GetBool("no-ignore")
	docsDir, _ := cmd.Flags().GetString("docs-dir")
	reportDirFlag, _ := cmd.Flags().GetString("report-dir")
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}

	root, err := filepath.Abs(rootFlag)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		logger.Error("Root does not exist", logger.String("root", root))
		os.Exit(exitcode.PreconditionErr)
	}

	cfg, err := config.Load(root)
	if err != nil {
		logger.Error("Configuration invalid", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}
	if docsDir != "" {
		cfg.PlanDir = docsDir
	}

	records, err := inventory.Scan(inventory.ScanOptions{
		Root:            root,
		IncludePatterns: include,
		ExcludePatterns: exclude,
		NoIgnore:        noIgnore,
	})
	if err != nil {
		return err
	}
	logger.Info("Scan complete", logger.Int("files", len(records)))

	if hash {
		inventory.HashRecords(cmd.Context(), records, workers)
	}
	dups := plan.Duplicates(records)

	rules := classify.NewRuleset(cfg)
	planner := plan.NewPlanner(root, rules)
	actions := planner.Plan(records, dups)

	out := cmd.OutOrStdout()
	summary := report.NewSummary(root, apply, hash, records, len(actions), len(dups))

	if format == "json" {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else {
		fmt.Fprintln(out, "\n=== Planned directories ===")
		report.RenderPlannedDirs(out, cfg.PlannedDirs())
		fmt.Fprintln(out, "\n=== Planned moves ===")
		report.RenderPlannedMoves(out, root, actions)
	}

	if !apply {
		if format == "table" {
			fmt.Fprintln(out, "\n=== DRY RUN SUMMARY ===")
			report.RenderActionSummary(out, records)
			if !hash {
				fmt.Fprintln(out, "\nTip: Run again with --hash to detect duplicates by content.")
			}
			fmt.Fprintln(out, "Tip: Run again with --apply to perform moves (no deletes).")
		}
		return nil
	}

	reportDir := reportDirFlag
	if reportDir == "" {
		dir, err := report.Dir(root, "reorg")
		if err != nil {
			return err
		}
		reportDir = dir
	} else if err := os.MkdirAll(reportDir, 0o750); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	executor := &plan.Executor{
		Root:        root,
		PlannedDirs: cfg.PlannedDirs(),
		ReportDir:   reportDir,
	}
	moved, err := executor.Apply(actions)
	if err != nil {
		return err
	}
	logger.Info("Moves complete", logger.Int("moved", moved))

	if err := report.WriteRecordsCSV(filepath.Join(reportDir, "reorg_report.csv"), records); err != nil {
		return err
	}
	if err := report.WriteJSON(filepath.Join(reportDir, "reorg_report.json"), summary); err != nil {
		return err
	}
	if format == "table" {
		fmt.Fprintf(out, "\nReports written to: %s\n", reportDir)
	}
	return nil
}
