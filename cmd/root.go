package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maxkimambo/fanout/internal/logger"
)

var (
	debug    bool
	verbose  bool
	jsonLogs bool
	quiet    bool
	version  = "v0.1.0"

	rootCmd = &cobra.Command{
		Use:   "fanout",
		Short: "Run batches of jobs across a worker pool or inline",
		Long: `fanout executes a batch of independent jobs described in a TOML file,
either distributed across a bounded pool of workers or one at a time in
the calling process, with identical results either way.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(verbose || debug, jsonLogs, quiet)
		},
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(actionsCmd)
}
