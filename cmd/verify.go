package cmd

import (
	"context"
	"fmt"

	"github.com/jira-tools/jira-weekly-report/internal/config"
	"github.com/jira-tools/jira-weekly-report/internal/jira"
	"github.com/spf13/cobra"
)

var verifyConfigPath string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the configuration and JIRA connectivity",
	Long: `Verify loads the configuration file and checks that the configured JIRA
instance is reachable and accepts the token. Useful before scheduling the
report generation.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyConfigPath, "config", "config.toml", "Path to configuration file")
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load(verifyConfigPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger.Infow("Loaded configuration", "path", verifyConfigPath)

	client, err := jira.NewClient(cfg.General.JiraInstance, cfg.General.JiraToken,
		cfg.General.JiraProject, cfg.General.URLField, logger)
	if err != nil {
		return err
	}

	if err := client.TestConnection(ctx); err != nil {
		return err
	}

	fmt.Printf("Configuration OK, connected to %s (project %s)\n",
		cfg.General.JiraInstance, cfg.General.JiraProject)
	return nil
}
