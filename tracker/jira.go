// Package tracker queries the Jira issue tracker: JQL search and sprint
// summaries with story-point totals. Read-only side channel; nothing in the
// release flow depends on it.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	jira "github.com/andygrunwald/go-jira"

	"github.com/tiamat-cli/tiamat/config"
)

// Issue summarizes a single tracker issue.
type Issue struct {
	Key      string
	Type     string
	Summary  string
	Status   string
	Assignee string
	Updated  time.Time

	// Points carries the story-point estimate; Estimated reports whether
	// the issue has one at all, since zero is a valid estimate.
	Points    float64
	Estimated bool
}

// Client searches Jira through its REST API.
type Client struct {
	jc          *jira.Client
	pointsField string
}

// New builds a Client from configuration. URL, user, and token are all
// required; the points field defaults to the common story-points custom
// field.
func New(ctx context.Context) (*Client, error) {
	v := config.Viper(ctx)

	url := v.GetString(config.JiraURL)
	user := v.GetString(config.JiraUser)
	token := v.GetString(config.JiraToken)

	if url == "" || user == "" || token == "" {
		return nil, fmt.Errorf("jira is not configured (set %s, %s and %s)", config.JiraURL, config.JiraUser, config.JiraToken)
	}

	transport := jira.BasicAuthTransport{Username: user, Password: token}

	jc, err := jira.NewClient(transport.Client(), url)
	if err != nil {
		return nil, fmt.Errorf("invalid jira url %q: %w", url, err)
	}

	return &Client{jc: jc, pointsField: v.GetString(config.JiraPointsField)}, nil
}

// BuildJQL scopes a query to a project unless the query already names one.
// A bare word without JQL operators is treated as a text search.
func BuildJQL(query, project string) string {
	jql := strings.TrimSpace(query)

	if jql != "" && !strings.ContainsAny(jql, "=~<>") {
		jql = fmt.Sprintf("text ~ %q", jql)
	}

	if project != "" && !strings.Contains(strings.ToLower(jql), "project") {
		if jql == "" {
			jql = "project = " + project
		} else {
			jql = fmt.Sprintf("project = %s AND (%s)", project, jql)
		}
	}

	return jql
}

// SprintJQL selects a sprint's completed work.
func SprintJQL(sprint string) string {
	return fmt.Sprintf(`sprint = %q AND status in ("DONE", "CLOSED", "DEPLOYED")`, sprint)
}

// Search runs a JQL query and returns up to limit issues plus the total
// match count, which may exceed the number returned.
func (c *Client) Search(ctx context.Context, jql string, limit int) ([]Issue, int, error) {
	raw, resp, err := c.jc.Issue.SearchWithContext(ctx, jql, &jira.SearchOptions{
		MaxResults: limit,
		Fields:     []string{"key", "summary", "status", "assignee", "issuetype", "updated", c.pointsField},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("jira search failed: %w", err)
	}

	issues := make([]Issue, 0, len(raw))
	for _, in := range raw {
		issues = append(issues, c.parseIssue(in))
	}

	total := len(issues)
	if resp != nil {
		total = resp.Total
	}

	return issues, total, nil
}

func (c *Client) parseIssue(in jira.Issue) Issue {
	out := Issue{Key: in.Key}

	fields := in.Fields
	if fields == nil {
		return out
	}

	out.Summary = fields.Summary
	out.Type = fields.Type.Name
	out.Updated = time.Time(fields.Updated)

	if fields.Status != nil {
		out.Status = fields.Status.Name
	}

	if fields.Assignee != nil {
		out.Assignee = fields.Assignee.DisplayName
	}

	// Story points live in a site-specific custom field
	if points, ok := fields.Unknowns[c.pointsField].(float64); ok {
		out.Points, out.Estimated = points, true
	}

	return out
}
