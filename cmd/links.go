package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/retidy/retidy/internal/config"
	"github.com/retidy/retidy/internal/links"
	"github.com/retidy/retidy/internal/report"
	"github.com/retidy/retidy/pkg/exitcode"
	"github.com/retidy/retidy/pkg/logger"
)

// linksCmd audits and repairs relative references in the documentation subtree.
var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Audit and repair broken relative links in plan HTML (dry run unless --apply)",
	Long: `Links scans every HTML document under the plan directory for relative
href/src references whose target no longer exists, and proposes replacements
by looking the missing file name up in a filename index of the subtree.
With --apply, accepted fixes are written in place after a one-time backup of
each touched document. Broken and fixed link tables land under reports/links/.`,
	RunE: runLinks,
}

func init() {
	rootCmd.AddCommand(linksCmd)
	linksCmd.Flags().String("root", ".", "Project root")
	linksCmd.Flags().Bool("apply", false, "Write fixes (default is dry run)")
	linksCmd.Flags().String("docs-dir", "", "Override the canonical plan directory name")
}

func runLinks(cmd *cobra.Command, _ []string) error {
	rootFlag, _ := cmd.Flags().GetString("root")
	apply, _ := cmd.Flags().GetBool("apply")
	docsDir, _ := cmd.Flags().GetString("docs-dir")

	root, err := filepath.Abs(rootFlag)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		logger.Error("Configuration invalid", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}
	if docsDir != "" {
		cfg.PlanDir = docsDir
	}

	docsRoot := filepath.Join(root, cfg.PlanDir)
	if info, err := os.Stat(docsRoot); err != nil || !info.IsDir() {
		logger.Error("Plan directory not found", logger.String("dir", docsRoot))
		os.Exit(exitcode.PreconditionErr)
	}

	idx, err := links.BuildIndex(docsRoot)
	if err != nil {
		return err
	}

	engine := &links.Engine{
		Root:     root,
		DocsRoot: docsRoot,
		Index:    idx,
		Apply:    apply,
	}
	res, err := engine.Run()
	if err != nil {
		return err
	}

	reportDir, err := report.Dir(root, "links")
	if err != nil {
		return err
	}
	if err := report.WriteIssuesCSV(filepath.Join(reportDir, "broken_links.csv"), res.Broken); err != nil {
		return err
	}
	if err := report.WriteIssuesCSV(filepath.Join(reportDir, "fixed_links.csv"), res.Fixed); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nScanned HTML files: %d\n", res.ScannedDocs)
	fmt.Fprintf(out, "Broken links found: %d\n", len(res.Broken))
	fmt.Fprintf(out, "Fixes suggested: %d\n", len(res.Fixed))
	fmt.Fprintf(out, "Reports written to: %s\n", reportDir)
	if !apply {
		fmt.Fprintln(out, "Dry run only. Re-run with --apply to write fixes (creates backups).")
	}
	return nil
}
