package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/retidy/retidy/internal/config"
	"github.com/retidy/retidy/internal/hub"
	"github.com/retidy/retidy/pkg/exitcode"
	"github.com/retidy/retidy/pkg/logger"
)

// hubCmd regenerates the navigation hub page.
var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Regenerate the plan directory's navigation hub page",
	RunE:  runHub,
}

func init() {
	rootCmd.AddCommand(hubCmd)
	hubCmd.Flags().String("root", ".", "Project root")
	hubCmd.Flags().String("docs-dir", "", "Override the canonical plan directory name")
}

func runHub(cmd *cobra.Command, _ []string) error {
	rootFlag, _ := cmd.Flags().GetString("root")
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

	out, err := hub.Generate(filepath.Join(root, cfg.PlanDir))
	if err != nil {
		return err
	}
	cmd.Printf("Wrote: %s\n", out)
	return nil
}
