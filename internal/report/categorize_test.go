package report

import (
	"testing"
	"time"

	"github.com/jira-tools/jira-weekly-report/internal/jira"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testSince = time.Date(2021, 12, 13, 0, 0, 0, 0, time.UTC)
	testTill  = time.Date(2021, 12, 20, 0, 0, 0, 0, time.UTC)
)

func testCategorizer(t *testing.T, categories []Category) *Categorizer {
	t.Helper()
	c, err := NewCategorizer(categories, zap.NewNop().Sugar())
	require.NoError(t, err)
	return c
}

func TestNewCategorizer_InvalidPattern(t *testing.T) {
	_, err := NewCategorizer([]Category{{Name: "Broken", Pattern: "["}}, zap.NewNop().Sugar())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
}

func TestNewCategorizer_ReservedName(t *testing.T) {
	// A configured category named like the built-in trailing section would
	// collide with it and list its issues twice, so it must be rejected.
	_, err := NewCategorizer([]Category{{Name: Uncategorized, Pattern: "^misc"}}, zap.NewNop().Sugar())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestBuild_GroupsByFirstMatchingCategory(t *testing.T) {
	c := testCategorizer(t, []Category{
		{Name: "Infrastructure", Pattern: "^infra"},
		{Name: "Documentation", Pattern: "^docs"},
	})

	closed := []jira.Issue{
		{Key: "PROJ-1", Summary: "Fix the widget", Labels: []string{"infra-deploy"}},
		{Key: "PROJ-2", Summary: "Rewrite the guide", Labels: []string{"docs-guide"}},
		// Matches both patterns via its two labels; must land only in the
		// first category by config order.
		{Key: "PROJ-3", Summary: "Document the deploy", Labels: []string{"docs-deploy", "infra-deploy"}},
	}

	rep := c.Build("PROJ", testSince, testTill, nil, closed)

	require.Len(t, rep.Sections, 2)
	assert.Equal(t, "Infrastructure", rep.Sections[0].Name)
	assert.Equal(t, "Documentation", rep.Sections[1].Name)

	infraKeys := entryKeys(rep.Sections[0].Closed)
	docsKeys := entryKeys(rep.Sections[1].Closed)
	assert.Equal(t, []string{"PROJ-1", "PROJ-3"}, infraKeys)
	assert.Equal(t, []string{"PROJ-2"}, docsKeys)

	// Every issue appears exactly once across the whole report.
	seen := map[string]int{}
	for _, sec := range rep.Sections {
		for _, e := range append(sec.Open, sec.Closed...) {
			seen[e.Key]++
		}
	}
	for key, count := range seen {
		assert.Equalf(t, 1, count, "issue %s listed %d times", key, count)
	}
}

func TestBuild_UnlabeledIssuesAreUncategorized(t *testing.T) {
	c := testCategorizer(t, []Category{{Name: "Infrastructure", Pattern: "^infra"}})

	open := []jira.Issue{{Key: "PROJ-9", Summary: "Mystery task"}}
	rep := c.Build("PROJ", testSince, testTill, open, nil)

	require.Len(t, rep.Sections, 1)
	assert.Equal(t, Uncategorized, rep.Sections[0].Name)
	assert.Equal(t, []string{"PROJ-9"}, entryKeys(rep.Sections[0].Open))
}

func TestBuild_LabeledButUnmatchedIssuesAreDropped(t *testing.T) {
	c := testCategorizer(t, []Category{{Name: "Infrastructure", Pattern: "^infra"}})

	closed := []jira.Issue{{Key: "PROJ-4", Summary: "Off topic", Labels: []string{"random"}}}
	rep := c.Build("PROJ", testSince, testTill, nil, closed)

	assert.True(t, rep.Empty())
	assert.Empty(t, rep.Sections)
}

func TestBuild_EmptySectionsAreOmitted(t *testing.T) {
	c := testCategorizer(t, []Category{
		{Name: "Infrastructure", Pattern: "^infra"},
		{Name: "Documentation", Pattern: "^docs"},
	})

	open := []jira.Issue{{Key: "PROJ-5", Summary: "Renew certs", Labels: []string{"infra-certs"}}}
	rep := c.Build("PROJ", testSince, testTill, open, nil)

	require.Len(t, rep.Sections, 1)
	assert.Equal(t, "Infrastructure", rep.Sections[0].Name)
}

func TestNewEntry_ExtractsLink(t *testing.T) {
	tests := []struct {
		name     string
		linkText string
		expected string
	}{
		{
			name:     "plain url",
			linkText: "https://pagure.io/thing",
			expected: "https://pagure.io/thing",
		},
		{
			name:     "url embedded in text",
			linkText: "tracked at https://pagure.io/thing for now",
			expected: "https://pagure.io/thing",
		},
		{
			name:     "no url",
			linkText: "no link here",
			expected: "",
		},
		{
			name:     "empty field",
			linkText: "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := newEntry(jira.Issue{Key: "PROJ-1", LinkText: tt.linkText})
			assert.Equal(t, tt.expected, entry.Link)
		})
	}
}

func TestNewEntry_CarriesIssueFields(t *testing.T) {
	resolved := time.Date(2021, 12, 15, 10, 0, 0, 0, time.UTC)
	entry := newEntry(jira.Issue{
		Key:       "PROJ-1",
		Summary:   "Fix the widget",
		Status:    "Done",
		Assignee:  "Jane Doe",
		Resolved:  &resolved,
		BrowseURL: "https://issues.example.com/browse/PROJ-1",
	})

	assert.Equal(t, "Done", entry.Status)
	assert.Equal(t, "Jane Doe", entry.Assignee)
	require.NotNil(t, entry.Resolved)
	assert.True(t, entry.Resolved.Equal(resolved))
}

func entryKeys(entries []Entry) []string {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	return keys
}
