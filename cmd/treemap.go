package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/retidy/retidy/internal/treemap"
)

// mapCmd surveys the tree without touching it.
var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Write read-only survey reports for the tree (never mutates)",
	Long: `Map writes three text reports under reports/: a capped tree view, a survey
of every src/ directory with key-file presence, and a list of suspicious
paths (nested app folders, multiple package.json roots, stray src/ trees).`,
	RunE: runMap,
}

func init() {
	rootCmd.AddCommand(mapCmd)
	mapCmd.Flags().String("root", ".", "Project root")
	mapCmd.Flags().String("app-dir", "", "Application directory name to check for nesting issues")
}

func runMap(cmd *cobra.Command, _ []string) error {
	rootFlag, _ := cmd.Flags().GetString("root")
	appDir, _ := cmd.Flags().GetString("app-dir")

	root, err := filepath.Abs(rootFlag)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	rep, err := treemap.Run(treemap.Options{Root: root, AppDir: appDir})
	if err != nil {
		return err
	}
	paths, err := rep.Write(root)
	if err != nil {
		return err
	}

	cmd.Println("Repo mapping complete.")
	for _, p := range paths {
		cmd.Printf("- %s\n", p)
	}
	return nil
}
