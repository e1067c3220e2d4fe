// Package config loads the TOML configuration file that describes the JIRA
// instance to query and how to categorize issues in the report.
package config

import (
	"fmt"
	"regexp"

	"github.com/jira-tools/jira-weekly-report/internal/report"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	General    General    `mapstructure:"general"`
	Categories []Category `mapstructure:"categories"`
}

// General describes the JIRA instance and the query filters.
type General struct {
	JiraInstance     string   `mapstructure:"jira_instance"`
	JiraToken        string   `mapstructure:"jira_token"`
	JiraProject      string   `mapstructure:"jira_project"`
	JiraClosedStates []string `mapstructure:"jira_closed_states"`
	JiraOpenStates   []string `mapstructure:"jira_open_states"`
	JiraLabels       []string `mapstructure:"jira_labels"`
	JiraComponents   []string `mapstructure:"jira_components"`
	URLField         string   `mapstructure:"url_field"`
}

// Category pairs a display name with a label pattern. Issues whose labels
// match the pattern are grouped under the display name in the report.
type Category struct {
	Name    string `mapstructure:"name"`
	Pattern string `mapstructure:"pattern"`
}

// Load reads the configuration file at path and applies environment
// overrides. The JIRA token may be supplied via the JIRA_TOKEN environment
// variable (optionally via a .env file), which takes precedence over the
// file value.
func Load(path string) (*Config, error) {
	// Load environment variables from .env if present.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetDefault("general.jira_closed_states", []string{"Done"})
	v.SetDefault("general.jira_open_states", []string{"New", "In Progress"})

	if err := v.BindEnv("general.jira_token", "JIRA_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the required fields and that every category pattern
// compiles as a regular expression.
func (c *Config) Validate() error {
	if c.General.JiraInstance == "" {
		return fmt.Errorf("general.jira_instance is required")
	}
	if c.General.JiraToken == "" {
		return fmt.Errorf("general.jira_token is required (set it in the config file or via JIRA_TOKEN)")
	}
	if c.General.JiraProject == "" {
		return fmt.Errorf("general.jira_project is required")
	}
	if len(c.General.JiraClosedStates) == 0 {
		return fmt.Errorf("general.jira_closed_states must name at least one state")
	}

	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category with pattern %q has no name", cat.Pattern)
		}
		if cat.Name == report.Uncategorized {
			return fmt.Errorf("category name %q is reserved for issues without labels", report.Uncategorized)
		}
		if _, err := regexp.Compile(cat.Pattern); err != nil {
			return fmt.Errorf("category %q has an invalid pattern: %w", cat.Name, err)
		}
	}

	return nil
}
