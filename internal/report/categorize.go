// Package report groups fetched issues into the categories configured for
// the report.
package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jira-tools/jira-weekly-report/internal/jira"
	"go.uber.org/zap"
)

// Uncategorized is the trailing section for issues without labels.
const Uncategorized = "Uncategorized"

// httpRegex extracts the first HTTP(S) link from a free-form field value.
var httpRegex = regexp.MustCompile(`https?://[^\s'"<>]+`)

// Category pairs a display name with a label pattern.
type Category struct {
	Name    string
	Pattern string
}

// Entry is one issue line in the report.
type Entry struct {
	Key       string
	Summary   string
	Status    string
	Assignee  string
	Resolved  *time.Time
	BrowseURL string
	// Link is the external link extracted from the configured URL field,
	// empty when the field is unset or carries no URL.
	Link string
}

// Section groups the open and closed entries of one category.
type Section struct {
	Name   string
	Open   []Entry
	Closed []Entry
}

// Report is the fully grouped result for one window.
type Report struct {
	Project  string
	Since    time.Time
	Till     time.Time
	Sections []Section
}

// Empty reports whether no issue made it into any section.
func (r Report) Empty() bool {
	for _, s := range r.Sections {
		if len(s.Open) > 0 || len(s.Closed) > 0 {
			return false
		}
	}
	return true
}

// Categorizer assigns issues to categories by matching label patterns.
type Categorizer struct {
	categories []compiledCategory
	logger     *zap.SugaredLogger
}

type compiledCategory struct {
	name    string
	pattern *regexp.Regexp
}

// NewCategorizer compiles the category patterns. Category order is
// preserved: an issue belongs to the first category whose pattern matches
// any of its labels, so every issue appears in the report at most once.
// The Uncategorized name is reserved for the trailing built-in section: a
// configured category with that name would collide with it and list its
// issues twice.
func NewCategorizer(categories []Category, logger *zap.SugaredLogger) (*Categorizer, error) {
	compiled := make([]compiledCategory, 0, len(categories))
	for _, cat := range categories {
		if cat.Name == Uncategorized {
			return nil, fmt.Errorf("category name %q is reserved", Uncategorized)
		}
		re, err := regexp.Compile(cat.Pattern)
		if err != nil {
			return nil, fmt.Errorf("category %q has an invalid pattern: %w", cat.Name, err)
		}
		compiled = append(compiled, compiledCategory{name: cat.Name, pattern: re})
	}
	return &Categorizer{categories: compiled, logger: logger}, nil
}

// Build groups the open and closed issues into a report for the window.
// Labeled issues matching no category are dropped; dropped closed issues
// are logged so they can be traced back.
func (c *Categorizer) Build(project string, since, till time.Time, open, closed []jira.Issue) Report {
	sections := make(map[string]*Section)
	order := make([]string, 0, len(c.categories)+1)
	for _, cat := range c.categories {
		sections[cat.name] = &Section{Name: cat.name}
		order = append(order, cat.name)
	}
	sections[Uncategorized] = &Section{Name: Uncategorized}
	order = append(order, Uncategorized)

	for _, issue := range open {
		if name, ok := c.categoryFor(issue); ok {
			sec := sections[name]
			sec.Open = append(sec.Open, newEntry(issue))
		}
	}
	for _, issue := range closed {
		name, ok := c.categoryFor(issue)
		if !ok {
			c.logger.Debugw("Closed issue matched no category, dropped from report",
				"key", issue.Key, "labels", strings.Join(issue.Labels, ", "))
			continue
		}
		sec := sections[name]
		sec.Closed = append(sec.Closed, newEntry(issue))
	}

	report := Report{Project: project, Since: since, Till: till}
	for _, name := range order {
		sec := sections[name]
		if len(sec.Open) == 0 && len(sec.Closed) == 0 {
			continue
		}
		report.Sections = append(report.Sections, *sec)
	}
	return report
}

// categoryFor returns the category an issue belongs to. Issues without
// labels land in the Uncategorized section; labeled issues that match no
// pattern are excluded from the report.
func (c *Categorizer) categoryFor(issue jira.Issue) (string, bool) {
	if len(issue.Labels) == 0 {
		return Uncategorized, true
	}

	for _, cat := range c.categories {
		for _, label := range issue.Labels {
			if cat.pattern.MatchString(label) {
				return cat.name, true
			}
		}
	}
	return "", false
}

// newEntry builds a report entry, extracting the external link from the
// issue's URL field value when one is present.
func newEntry(issue jira.Issue) Entry {
	return Entry{
		Key:       issue.Key,
		Summary:   issue.Summary,
		Status:    issue.Status,
		Assignee:  issue.Assignee,
		Resolved:  issue.Resolved,
		BrowseURL: issue.BrowseURL,
		Link:      httpRegex.FindString(issue.LinkText),
	}
}
