// Package jira wraps the JIRA REST API for the report queries.
package jira

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	gojira "github.com/andygrunwald/go-jira"
	"go.uber.org/zap"
)

const (
	userAgent      = "jira-weekly-report/1.0"
	pageSize       = 50
	maxRetries     = 3
	baseBackoff    = 1 * time.Second
	requestTimeout = 30 * time.Second
)

// searchFields are the issue fields requested from the search endpoint.
var searchFields = []string{"summary", "status", "assignee", "labels", "resolutiondate"}

// Client wraps the go-jira client with report-specific functionality.
type Client struct {
	inner    *gojira.Client
	baseURL  string
	project  string
	urlField string
	logger   *zap.SugaredLogger
}

// NewClient creates a JIRA client authenticating with a bearer token.
// urlField optionally names a custom field carrying an external link.
func NewClient(baseURL, token, project, urlField string, logger *zap.SugaredLogger) (*Client, error) {
	httpClient := &http.Client{
		Timeout: requestTimeout,
		Transport: &retryTransport{
			base: &gojira.BearerAuthTransport{Token: token},
		},
	}

	inner, err := gojira.NewClient(httpClient, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	return &Client{
		inner:    inner,
		baseURL:  baseURL,
		project:  project,
		urlField: urlField,
		logger:   logger,
	}, nil
}

// TestConnection verifies that the instance is reachable and the token is
// accepted.
func (c *Client) TestConnection(ctx context.Context) error {
	_, resp, err := c.inner.User.GetSelfWithContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to jira: %w", c.restError(resp, err))
	}
	return nil
}

// SearchIssues runs the query against the configured project and returns
// all matching issues, following pagination until the reported total is
// reached.
func (c *Client) SearchIssues(ctx context.Context, q Query) ([]Issue, error) {
	q.Project = c.project
	jql := q.JQL()
	c.logger.Debugw("Searching issues", "jql", jql)

	fields := searchFields
	if c.urlField != "" {
		fields = append(append([]string{}, searchFields...), c.urlField)
	}

	var issues []Issue
	startAt := 0
	for {
		opts := &gojira.SearchOptions{
			StartAt:    startAt,
			MaxResults: pageSize,
			Fields:     fields,
		}

		page, resp, err := c.inner.Issue.SearchWithContext(ctx, jql, opts)
		if err != nil {
			return nil, fmt.Errorf("issue search failed: %w", c.restError(resp, err))
		}

		for _, raw := range page {
			issues = append(issues, convertIssue(raw, c.baseURL, c.urlField))
		}

		startAt += len(page)
		if len(page) == 0 || startAt >= resp.Total {
			break
		}
	}

	c.logger.Debugw("Search finished", "jql", jql, "issues", len(issues))
	return issues, nil
}

// restError folds the REST response into the error so that authentication
// failures read distinctly from network or query errors.
func (c *Client) restError(resp *gojira.Response, err error) error {
	if resp == nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("authentication rejected by %s (HTTP %d): check the configured token", c.baseURL, resp.StatusCode)
	case http.StatusBadRequest:
		return fmt.Errorf("jira rejected the query (HTTP 400): %w", err)
	default:
		return fmt.Errorf("jira returned HTTP %d: %w", resp.StatusCode, err)
	}
}

// retryTransport retries transient failures: 5xx responses and 429 rate
// limits (honoring Retry-After). Authentication errors are never retried.
type retryTransport struct {
	base http.RoundTripper
}

func (rt *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		attemptReq := req.Clone(req.Context())
		attemptReq.Header.Set("User-Agent", userAgent)

		resp, err := rt.base.RoundTrip(attemptReq)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				time.Sleep(backoff(attempt))
				continue
			}
			break
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxRetries {
			delay := retryAfter(resp)
			resp.Body.Close()
			time.Sleep(delay)
			continue
		}

		if resp.StatusCode >= 500 && attempt < maxRetries {
			resp.Body.Close()
			time.Sleep(backoff(attempt))
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("jira request failed after %d attempts: %w", maxRetries+1, lastErr)
}

// retryAfter reads the Retry-After header of a 429 response, falling back
// to the base backoff when it is absent or unparseable.
func retryAfter(resp *http.Response) time.Duration {
	if raw := resp.Header.Get("Retry-After"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return baseBackoff
}

// backoff doubles the base delay per attempt.
func backoff(attempt int) time.Duration {
	return baseBackoff << uint(attempt)
}
