package jira

import (
	"fmt"
	"strings"
	"time"

	"github.com/jira-tools/jira-weekly-report/internal/derive"
)

// Query describes one issue search. States is the only mandatory filter
// besides the project; Labels and Components narrow the search, and
// Since/Till bound it by updated date when both are set.
type Query struct {
	Project    string
	States     []string
	Labels     []string
	Components []string
	Since      *time.Time
	Till       *time.Time
}

// JQL renders the query as a JQL search string.
func (q Query) JQL() string {
	var b strings.Builder

	fmt.Fprintf(&b, "project = %s AND status in (%s)", q.Project, quoteList(q.States))

	if len(q.Labels) > 0 {
		fmt.Fprintf(&b, " AND labels in (%s)", quoteList(q.Labels))
	}
	if len(q.Components) > 0 {
		fmt.Fprintf(&b, " AND component in (%s)", quoteList(q.Components))
	}
	if q.Since != nil && q.Till != nil {
		fmt.Fprintf(&b, " AND updatedDate >= %s AND updatedDate <= %s",
			derive.FormatDay(*q.Since), derive.FormatDay(*q.Till))
	}

	return b.String()
}

// quoteList renders a list of values as 'a', 'b', 'c' for JQL "in" clauses.
func quoteList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, "'"+v+"'")
	}
	return strings.Join(quoted, ", ")
}
