package github

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/go-github/v74/github"

	"github.com/tiamat-cli/tiamat/scm"
)

// FindPullRequest returns the open pull request for the (base, head) pair,
// or nil if none exists.
func (g *Github) FindPullRequest(ctx context.Context, repo scm.Repo, base, head string) (*scm.PullRequest, error) {
	var prs []*github.PullRequest

	err := g.withRetry(ctx, func() error {
		list, resp, err := g.client.PullRequests.List(ctx, repo.Org, repo.Name, &github.PullRequestListOptions{
			State: "open",
			Base:  base,
			Head:  repo.Org + ":" + head,
		})
		if err != nil {
			return g.mapError(repo, resp, err)
		}

		prs = list

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(prs) == 0 {
		return nil, nil
	}

	return parsePR(prs[0]), nil
}

// CreatePullRequest opens a new pull request from head into base.
func (g *Github) CreatePullRequest(ctx context.Context, repo scm.Repo, base, head, title, body string) (*scm.PullRequest, error) {
	var pr *github.PullRequest

	err := g.withRetry(ctx, func() error {
		resp, httpResp, err := g.client.PullRequests.Create(ctx, repo.Org, repo.Name, &github.NewPullRequest{
			Title: &title,
			Body:  &body,
			Base:  &base,
			Head:  &head,
		})
		if err != nil {
			// A 422 on creation names the ref when head or base doesn't resolve
			var ghErr *github.ErrorResponse
			if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusUnprocessableEntity {
				if msg := validationMessage(ghErr); strings.Contains(msg, "field: head") || strings.Contains(msg, "field: base") {
					return &scm.BranchNotFoundError{Repo: repo, Ref: head}
				}
			}

			return g.mapError(repo, httpResp, err)
		}

		pr = resp

		return nil
	})
	if err != nil {
		return nil, err
	}

	return parsePR(pr), nil
}

func validationMessage(err *github.ErrorResponse) string {
	parts := make([]string, 0, len(err.Errors))
	for _, e := range err.Errors {
		parts = append(parts, "field: "+e.Field)
	}

	return strings.Join(parts, "; ")
}

func parsePR(resp *github.PullRequest) *scm.PullRequest {
	return &scm.PullRequest{
		Number: resp.GetNumber(),
		Title:  resp.GetTitle(),
		URL:    resp.GetHTMLURL(),
	}
}
