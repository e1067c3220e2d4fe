package cmd

import (
	"github.com/jira-tools/jira-weekly-report/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "jira-weekly-report",
	Short: "Generate weekly activity reports from a JIRA project",
	Long: `jira-weekly-report queries a JIRA project's issue tracker and produces a
weekly activity report for a configurable date range. Issues are grouped by
configurable label categories and split into open and closed sections. The
report is printed to stdout, with an optional HTML rendition.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior - show help
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print verbose messages")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set the logging level (debug, info, warn, error)")
}

// newLogger builds the logger from the persistent logging flags.
func newLogger() *zap.SugaredLogger {
	return logger.New(logLevel, verbose)
}
