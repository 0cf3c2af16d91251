package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/cmpnorris/config.yaml)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"show a progress bar even when disabled in the config",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"print nothing, report through the exit status only",
	)
}

// GetGlobalFlags returns the global flags
func GetGlobalFlags() *GlobalFlags {
	return &globalFlags
}

// CompareFlags holds the flags of the files and dirs commands
type CompareFlags struct {
	Mode        string
	ChunkSize   int
	Algorithm   string
	Encoding    string
	Dereference bool
	Blocking    bool
	Parallel    int
	Bandwidth   string
	Output      string
	Exclude     []string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

func addCompareFlags(cmd *cobra.Command, flags *CompareFlags) {
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", "byte", "comparison mode: byte, digest")
	cmd.Flags().IntVarP(&flags.ChunkSize, "chunk-size", "c", 0, "bytes compared per window (default: 65536)")
	cmd.Flags().StringVarP(&flags.Algorithm, "algorithm", "a", "", "digest algorithm, e.g. sha512, sha256, blake3 (default: sha512)")
	cmd.Flags().StringVarP(&flags.Encoding, "encoding", "e", "", "digest encoding: hex, base64, base64url, latin1, binary (default: hex)")
	cmd.Flags().BoolVarP(&flags.Dereference, "dereference", "L", false, "follow symbolic links")
	cmd.Flags().BoolVar(&flags.Blocking, "blocking", false, "read both sides from a single goroutine")
	cmd.Flags().IntVarP(&flags.Parallel, "parallel", "p", 0, "number of file pairs compared at once (default: 5)")
	cmd.Flags().StringVarP(&flags.Bandwidth, "bandwidth", "b", "", "read bandwidth limit shared by both sides (e.g., \"10M\", \"1G\")")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "human", "output format: human, json")
	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", []string{}, "glob patterns of entries to leave out of directory comparisons")

	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
}
