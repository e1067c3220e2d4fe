package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jira-tools/jira-weekly-report/internal/config"
	"github.com/jira-tools/jira-weekly-report/internal/derive"
	"github.com/jira-tools/jira-weekly-report/internal/format"
	"github.com/jira-tools/jira-weekly-report/internal/jira"
	"github.com/jira-tools/jira-weekly-report/internal/report"
	"github.com/spf13/cobra"
)

var (
	configPath string
	tillArg    string
	daysAgo    int
	htmlOutput string
)

var generateCmd = &cobra.Command{
	Use:   "generate-report",
	Short: "Generate the activity report for a date range",
	Long: `Generate-report queries the configured JIRA project for closed issues
updated within the report window and for currently open issues, groups them
by the configured label categories, and prints a text report to stdout.
With --html-output an HTML report is written as well.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	generateCmd.Flags().StringVar(&tillArg, "till", "", "Show results till this date, YYYY-MM-DD (default: today)")
	generateCmd.Flags().IntVar(&daysAgo, "days-ago", 7, "How many days before the end date the window starts")
	generateCmd.Flags().StringVar(&htmlOutput, "html-output", "", "Also write an HTML report to this file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	logger := newLogger()
	defer logger.Sync()

	since, till, err := resolveWindow(tillArg, daysAgo, time.Now())
	if err != nil {
		return err
	}

	logger.Infow("Generating report",
		"from", derive.FormatDay(since), "to", derive.FormatDay(till))

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger.Infow("Loaded configuration", "path", configPath)

	client, err := jira.NewClient(cfg.General.JiraInstance, cfg.General.JiraToken,
		cfg.General.JiraProject, cfg.General.URLField, logger)
	if err != nil {
		return err
	}

	logger.Infow("Retrieving closed issues", "states", cfg.General.JiraClosedStates)
	closed, err := client.SearchIssues(ctx, jira.Query{
		States:     cfg.General.JiraClosedStates,
		Labels:     cfg.General.JiraLabels,
		Components: cfg.General.JiraComponents,
		Since:      &since,
		Till:       &till,
	})
	if err != nil {
		return fmt.Errorf("failed to retrieve closed issues: %w", err)
	}
	logger.Infow("Retrieved closed issues", "count", len(closed))

	logger.Infow("Retrieving open issues", "states", cfg.General.JiraOpenStates)
	open, err := client.SearchIssues(ctx, jira.Query{
		States:     cfg.General.JiraOpenStates,
		Labels:     cfg.General.JiraLabels,
		Components: cfg.General.JiraComponents,
	})
	if err != nil {
		return fmt.Errorf("failed to retrieve open issues: %w", err)
	}
	logger.Infow("Retrieved open issues", "count", len(open))

	categorizer, err := report.NewCategorizer(reportCategories(cfg), logger)
	if err != nil {
		return err
	}
	rep := categorizer.Build(cfg.General.JiraProject, since, till, open, closed)

	// The report itself is the only stdout output.
	fmt.Print(format.RenderText(rep))

	if htmlOutput != "" {
		if err := os.WriteFile(htmlOutput, []byte(format.RenderHTML(rep)), 0o644); err != nil {
			return fmt.Errorf("failed to write HTML report: %w", err)
		}
		logger.Infow("HTML report written", "path", htmlOutput)
	}

	return nil
}

// resolveWindow computes the report window from the CLI arguments. An empty
// till argument means the window ends today.
func resolveWindow(tillArg string, daysAgo int, now time.Time) (since, till time.Time, err error) {
	till = now.UTC()
	if tillArg != "" {
		till, err = derive.ParseDay(tillArg)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --till value: %w", err)
		}
	}
	return derive.Window(till, daysAgo)
}

// reportCategories maps the configured categories onto the report model.
func reportCategories(cfg *config.Config) []report.Category {
	categories := make([]report.Category, 0, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		categories = append(categories, report.Category{Name: cat.Name, Pattern: cat.Pattern})
	}
	return categories
}
