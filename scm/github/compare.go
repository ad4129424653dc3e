package github

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/go-github/v74/github"

	"github.com/tiamat-cli/tiamat/scm"
)

// Compare returns the divergence between spec.Base and spec.Head. The
// comparison mode is passed through to the API verbatim: the basehead path
// segment carries ".." or "..." exactly as parsed, so the two modes are
// never normalized into each other.
func (g *Github) Compare(ctx context.Context, repo scm.Repo, spec scm.CompareSpec) (*scm.Comparison, error) {
	var cmp *github.CommitsComparison

	err := g.withRetry(ctx, func() error {
		basehead := url.QueryEscape(spec.Base) + spec.Mode.String() + url.QueryEscape(spec.Head)

		req, err := g.client.NewRequest("GET", fmt.Sprintf("repos/%v/%v/compare/%v", repo.Org, repo.Name, basehead), nil)
		if err != nil {
			return err
		}

		cmp = new(github.CommitsComparison)

		resp, err := g.client.Do(ctx, req, cmp)

		return g.mapError(repo, resp, err, spec.Range())
	})
	if err != nil {
		return nil, err
	}

	return parseComparison(repo, cmp), nil
}

func parseComparison(repo scm.Repo, cmp *github.CommitsComparison) *scm.Comparison {
	out := &scm.Comparison{
		Repo:    repo,
		Ahead:   cmp.GetAheadBy(),
		Behind:  cmp.GetBehindBy(),
		Commits: make([]scm.Commit, 0, len(cmp.Commits)),
	}

	// Commit order is preserved as returned by the API
	for _, commit := range cmp.Commits {
		out.Commits = append(out.Commits, scm.Commit{
			SHA:     commit.GetSHA(),
			Message: commit.GetCommit().GetMessage(),
			Author:  commit.GetCommit().GetAuthor().GetName(),
		})
	}

	return out
}
