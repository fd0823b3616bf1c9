package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/retidy/retidy/pkg/exitcode"
	"github.com/retidy/retidy/pkg/logger"
)

// quarantineCmd performs a single structural move of an orphaned src/ tree
// into the archive. It assumes strict preconditions and refuses to guess in
// ambiguous states: a pre-existing destination is fatal.
var quarantineCmd = &cobra.Command{
	Use:   "quarantine",
	Short: "Move an orphaned src/ tree into the archive (dry run unless --apply)",
	RunE:  runQuarantine,
}

func init() {
	rootCmd.AddCommand(quarantineCmd)
	quarantineCmd.Flags().String("root", ".", "Project root")
	quarantineCmd.Flags().Bool("apply", false, "Perform the move (default is dry run)")
}

func runQuarantine(cmd *cobra.Command, _ []string) error {
	rootFlag, _ := cmd.Flags().GetString("root")
	apply, _ := cmd.Flags().GetBool("apply")

	root, err := filepath.Abs(rootFlag)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	orphan := filepath.Join(root, "src")
	if _, err := os.Stat(orphan); os.IsNotExist(err) {
		cmd.Println("No orphan src found. Nothing to do.")
		return nil
	}

	stamp := time.Now().Format("20060102_150405")
	dest := filepath.Join(root, "archive", "_orphaned_src", "src_"+stamp)
	if _, err := os.Stat(dest); err == nil {
		logger.Error("Quarantine destination already exists, refusing to proceed",
			logger.String("dest", dest))
		os.Exit(exitcode.PreconditionErr)
	}

	cmd.Printf("Orphan src: %s\n", orphan)
	cmd.Printf("Archive to: %s\n", dest)
	if !apply {
		cmd.Println("Dry run only. Re-run with --apply to quarantine.")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	if err := os.Rename(orphan, dest); err != nil {
		return fmt.Errorf("quarantine move: %w", err)
	}
	cmd.Println("Orphan src quarantined safely.")
	return nil
}
