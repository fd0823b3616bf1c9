package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/retidy/retidy/pkg/buildinfo"
	"github.com/retidy/retidy/pkg/exitcode"
	"github.com/retidy/retidy/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// The factory pattern lets tests build isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retidy",
		Short: "Reorganize a messy project tree and keep its document links valid",
		Long: `Retidy inspects every file in a project tree, plans where each one belongs
in a canonical layout, and repairs relative links in HTML documents after
files move. Planning is always a dry run unless --apply is given; nothing
is ever deleted, only relocated into an archive subtree.

Examples:
   retidy scan --root ./project            # Plan a reorganization (dry run)
   retidy scan --root ./project --apply    # Apply planned moves, write reports
   retidy links --root ./project --apply   # Repair broken links after moves
   retidy hub --root ./project             # Regenerate the navigation hub`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("retidy {{.Version}}\n")

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	dryRun := isDryRun(cmd)

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "retidy",
		DryRun:    dryRun,
	}

	if err := logger.Initialize(config); err != nil {
		_, _ = os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(exitcode.ConfigError)
	}
}

// isDryRun reports whether the invoked command mutates the tree. Commands
// without an --apply flag are informational and never marked dry-run.
func isDryRun(cmd *cobra.Command) bool {
	if f := cmd.Flags().Lookup("apply"); f != nil {
		return f.Value.String() != "true"
	}
	return false
}
