package jira

import (
	"strings"
	"time"

	gojira "github.com/andygrunwald/go-jira"
	"github.com/trivago/tgo/tcontainer"
)

// Issue is the subset of a JIRA issue the report works with.
type Issue struct {
	Key       string
	Summary   string
	Status    string
	Assignee  string
	Labels    []string
	Resolved  *time.Time
	BrowseURL string
	// LinkText is the raw value of the configured URL custom field, if any.
	// The report layer extracts an HTTP link from it.
	LinkText string
}

// convertIssue maps a go-jira issue onto the report model. urlField names
// the custom field carrying an external link; it may be empty.
func convertIssue(raw gojira.Issue, baseURL, urlField string) Issue {
	issue := Issue{
		Key:       raw.Key,
		BrowseURL: strings.TrimRight(baseURL, "/") + "/browse/" + raw.Key,
	}

	fields := raw.Fields
	if fields == nil {
		return issue
	}

	issue.Summary = strings.TrimSpace(fields.Summary)
	issue.Labels = fields.Labels

	if fields.Status != nil {
		issue.Status = fields.Status.Name
	}
	if fields.Assignee != nil {
		issue.Assignee = fields.Assignee.DisplayName
	}

	if resolved := time.Time(fields.Resolutiondate); !resolved.IsZero() {
		utc := resolved.UTC()
		issue.Resolved = &utc
	}

	issue.LinkText = linkFieldValue(fields.Unknowns, urlField)

	return issue
}

// linkFieldValue reads the configured URL custom field from the unknown
// field map. Custom fields never land in the typed go-jira fields, only
// here.
func linkFieldValue(unknowns tcontainer.MarshalMap, urlField string) string {
	if urlField == "" || unknowns == nil {
		return ""
	}

	text, err := unknowns.String(urlField)
	if err != nil {
		return ""
	}
	return text
}
