package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the cmpnorris command with all subcommands
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cmpnorris",
		Short: "Compare files and directory trees by content",
		Long: `cmpnorris compares two files or two directory trees, either byte-by-byte
or by cryptographic digest, and reports whether they are equal.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(NewFilesCommand())
	rootCmd.AddCommand(NewDirsCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
