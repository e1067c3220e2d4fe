package format

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jira-tools/jira-weekly-report/internal/report"
)

var (
	testSince  = time.Date(2021, 12, 13, 0, 0, 0, 0, time.UTC)
	testTill   = time.Date(2021, 12, 20, 0, 0, 0, 0, time.UTC)
	resolvedAt = time.Date(2021, 12, 15, 10, 0, 0, 0, time.UTC)
)

func TestRenderText(t *testing.T) {
	rep := report.Report{
		Project: "PROJ",
		Since:   testSince,
		Till:    testTill,
		Sections: []report.Section{
			{
				Name: "Infrastructure",
				Open: []report.Entry{
					{Key: "PROJ-9", Summary: "Renew certificates", Status: "In Progress", BrowseURL: "https://issues.example.com/browse/PROJ-9"},
				},
				Closed: []report.Entry{
					{
						Key:       "PROJ-1",
						Summary:   "Fix the widget",
						Status:    "Done",
						Assignee:  "Jane Doe",
						Resolved:  &resolvedAt,
						BrowseURL: "https://issues.example.com/browse/PROJ-1",
						Link:      "https://pagure.io/thing",
					},
				},
			},
			{
				Name: report.Uncategorized,
				Closed: []report.Entry{
					{Key: "PROJ-2", Summary: "Update docs", BrowseURL: "https://issues.example.com/browse/PROJ-2"},
				},
			},
		},
	}

	want := strings.Join([]string{
		"Activity report for PROJ from 2021-12-13 to 2021-12-20",
		"",
		"Infrastructure",
		"  Open:",
		"    [PROJ-9] Renew certificates (In Progress) <https://issues.example.com/browse/PROJ-9>",
		"  Closed:",
		"    [PROJ-1] Fix the widget (Jane Doe, Done, resolved 2021-12-15) <https://pagure.io/thing>",
		"",
		"Uncategorized",
		"  Closed:",
		"    [PROJ-2] Update docs <https://issues.example.com/browse/PROJ-2>",
		"",
	}, "\n")

	got := RenderText(rep)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderText() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderText_EachIssueListedOnce(t *testing.T) {
	rep := report.Report{
		Project: "PROJ",
		Since:   testSince,
		Till:    testTill,
		Sections: []report.Section{
			{
				Name:   "Infrastructure",
				Open:   []report.Entry{{Key: "PROJ-9", Summary: "Renew certificates"}},
				Closed: []report.Entry{{Key: "PROJ-1", Summary: "Fix the widget"}},
			},
		},
	}

	got := RenderText(rep)
	for _, key := range []string{"PROJ-9", "PROJ-1"} {
		if n := strings.Count(got, "["+key+"]"); n != 1 {
			t.Errorf("expected %s to appear exactly once, got %d occurrences", key, n)
		}
	}
}

func TestRenderText_Empty(t *testing.T) {
	rep := report.Report{Project: "PROJ", Since: testSince, Till: testTill}

	got := RenderText(rep)
	if !strings.Contains(got, "No issues found for PROJ between 2021-12-13 and 2021-12-20.") {
		t.Errorf("empty report must state that no issues were found, got:\n%s", got)
	}
}
