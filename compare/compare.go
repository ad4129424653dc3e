// Package compare determines commit divergence between two branches across
// a repository set.
package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/tiamat-cli/tiamat/batch"
	"github.com/tiamat-cli/tiamat/scm"
)

// ParseSpec parses a user-supplied comparison token of the form
// "base...head" or "base..head" into a CompareSpec. An empty token falls
// back to the provided default branches. When no separator is present the
// token is rejected; when branches come from defaults the mode is
// three-dot, matching git convention.
func ParseSpec(token, defaultBase, defaultHead string) (scm.CompareSpec, error) {
	spec := scm.CompareSpec{Base: defaultBase, Head: defaultHead, Mode: scm.ThreeDot}

	if token != "" {
		// three-dot first: ".." would also match inside "..."
		if base, head, ok := strings.Cut(token, "..."); ok {
			spec.Base, spec.Head, spec.Mode = base, head, scm.ThreeDot
		} else if base, head, ok := strings.Cut(token, ".."); ok {
			spec.Base, spec.Head, spec.Mode = base, head, scm.TwoDot
		} else {
			return scm.CompareSpec{}, fmt.Errorf("invalid comparison spec %q (expected base..head or base...head)", token)
		}
	}

	if spec.Base == "" || spec.Head == "" {
		return scm.CompareSpec{}, fmt.Errorf("comparison spec %q is missing a branch name", token)
	}

	return spec, nil
}

// Result pairs a repository with its comparison outcome. A failed
// comparison carries the error instead of aborting sibling repositories.
type Result struct {
	Repo       scm.Repo
	Comparison *scm.Comparison
	Err        error
}

// Comparator compares branches through an SCM provider. Read-only.
type Comparator struct {
	provider scm.Provider
}

// New creates a Comparator backed by the given provider.
func New(provider scm.Provider) *Comparator {
	return &Comparator{provider: provider}
}

// Compare returns the divergence for a single repository.
func (c *Comparator) Compare(ctx context.Context, repo scm.Repo, spec scm.CompareSpec) (*scm.Comparison, error) {
	return c.provider.Compare(ctx, repo, spec)
}

// CompareAll compares every repository with bounded parallelism, returning
// one result per repository in input order. A fatal error (bad credentials)
// cancels the remaining repositories; sibling results carry the
// cancellation.
func (c *Comparator) CompareAll(ctx context.Context, repos []scm.Repo, spec scm.CompareSpec, limit int) []Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	return batch.Run(ctx, repos, limit, func(ctx context.Context, repo scm.Repo) Result {
		cmp, err := c.Compare(ctx, repo, spec)
		if scm.IsFatal(err) {
			cancel()
		}

		return Result{Repo: repo, Comparison: cmp, Err: err}
	})
}

// Failed counts results that carry an error.
func Failed(results []Result) int {
	var count int

	for _, res := range results {
		if res.Err != nil {
			count++
		}
	}

	return count
}

// Fatal returns the first fatal error among the results, or nil. A fatal
// error aborts the whole command rather than one repository.
func Fatal(results []Result) error {
	for _, res := range results {
		if scm.IsFatal(res.Err) {
			return res.Err
		}
	}

	return nil
}
