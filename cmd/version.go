package cmd

import (
	"encoding/json"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/retidy/retidy/pkg/buildinfo"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show retidy version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("extended", false, "Show module and runtime details")
	versionCmd.Flags().Bool("json", false, "Output version information in JSON format")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	asJSON, _ := cmd.Flags().GetBool("json")

	info := struct {
		Version       string `json:"version"`
		ModuleVersion string `json:"module_version,omitempty"`
		GoVersion     string `json:"go_version,omitempty"`
		Platform      string `json:"platform,omitempty"`
	}{Version: buildinfo.BinaryVersion}

	if extended {
		info.ModuleVersion = buildinfo.ModuleVersion()
		info.GoVersion = runtime.Version()
		info.Platform = runtime.GOOS + "/" + runtime.GOARCH
	}

	if asJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("retidy %s\n", info.Version)
	if extended {
		if info.ModuleVersion != "" {
			cmd.Printf("module:   %s\n", info.ModuleVersion)
		}
		cmd.Printf("go:       %s\n", info.GoVersion)
		cmd.Printf("platform: %s\n", info.Platform)
	}
	return nil
}
