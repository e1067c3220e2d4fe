// Package format renders a grouped report as text or HTML.
package format

import (
	"fmt"
	"strings"

	"github.com/jira-tools/jira-weekly-report/internal/derive"
	"github.com/jira-tools/jira-weekly-report/internal/report"
)

// RenderText renders the report as plain text for stdout. An empty report
// states explicitly that nothing was found so the output is never blank.
func RenderText(r report.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Activity report for %s from %s to %s\n",
		r.Project, derive.FormatDay(r.Since), derive.FormatDay(r.Till))

	if r.Empty() {
		fmt.Fprintf(&b, "\nNo issues found for %s between %s and %s.\n",
			r.Project, derive.FormatDay(r.Since), derive.FormatDay(r.Till))
		return b.String()
	}

	for _, sec := range r.Sections {
		fmt.Fprintf(&b, "\n%s\n", sec.Name)
		writeStateGroup(&b, "Open", sec.Open)
		writeStateGroup(&b, "Closed", sec.Closed)
	}

	return b.String()
}

// writeStateGroup writes one Open/Closed block of a section. Empty groups
// are skipped.
func writeStateGroup(b *strings.Builder, label string, entries []report.Entry) {
	if len(entries) == 0 {
		return
	}

	fmt.Fprintf(b, "  %s:\n", label)
	for _, e := range entries {
		fmt.Fprintf(b, "    [%s] %s", e.Key, e.Summary)
		if meta := entryMeta(e); meta != "" {
			fmt.Fprintf(b, " (%s)", meta)
		}
		if link := entryLink(e); link != "" {
			fmt.Fprintf(b, " <%s>", link)
		}
		b.WriteString("\n")
	}
}

// entryMeta collects the assignee, status, and resolution date of an entry
// into one comma-separated annotation.
func entryMeta(e report.Entry) string {
	var parts []string
	if e.Assignee != "" {
		parts = append(parts, e.Assignee)
	}
	if e.Status != "" {
		parts = append(parts, e.Status)
	}
	if e.Resolved != nil {
		parts = append(parts, "resolved "+derive.FormatDay(*e.Resolved))
	}
	return strings.Join(parts, ", ")
}

// entryLink prefers the external link from the URL field, falling back to
// the issue's browse URL.
func entryLink(e report.Entry) string {
	if e.Link != "" {
		return e.Link
	}
	return e.BrowseURL
}
