package format

import (
	"fmt"
	"html"
	"strings"

	"github.com/jira-tools/jira-weekly-report/internal/derive"
	"github.com/jira-tools/jira-weekly-report/internal/report"
)

// RenderHTML renders the report as an HTML fragment: one <h1> per category
// with nested lists for open and closed issues. Issue keys link to the
// tracker; summaries link to the external URL when one is present.
func RenderHTML(r report.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<p>Activity report for %s, %s to %s</p>\n\n",
		html.EscapeString(r.Project), derive.FormatDay(r.Since), derive.FormatDay(r.Till))

	if r.Empty() {
		fmt.Fprintf(&b, "<p>No issues found for %s between %s and %s.</p>\n",
			html.EscapeString(r.Project), derive.FormatDay(r.Since), derive.FormatDay(r.Till))
		return b.String()
	}

	for _, sec := range r.Sections {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(sec.Name))
		b.WriteString("<ul>\n")
		writeHTMLStateGroup(&b, "Open", sec.Open)
		writeHTMLStateGroup(&b, "Closed", sec.Closed)
		b.WriteString("</ul>\n\n")
	}

	return b.String()
}

func writeHTMLStateGroup(b *strings.Builder, label string, entries []report.Entry) {
	if len(entries) == 0 {
		return
	}

	fmt.Fprintf(b, "\t<li>%s:</li>\n", label)
	b.WriteString("\t<ul>\n")
	for _, e := range entries {
		summary := html.EscapeString(e.Summary)
		if e.Link != "" {
			summary = fmt.Sprintf("<a href=%q>%s</a>", e.Link, summary)
		}
		if meta := entryMeta(e); meta != "" {
			summary += " (" + html.EscapeString(meta) + ")"
		}
		fmt.Fprintf(b, "\t\t<li><a href=%q>%s</a> - %s</li>\n",
			e.BrowseURL, html.EscapeString(e.Key), summary)
	}
	b.WriteString("\t</ul>\n")
}
