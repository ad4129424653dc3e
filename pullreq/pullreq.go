// Package pullreq opens pull requests in bulk across a repository set,
// isolating per-repository failures.
package pullreq

import (
	"context"

	"github.com/tiamat-cli/tiamat/batch"
	"github.com/tiamat-cli/tiamat/scm"
)

// Status describes the outcome of a pull-request creation for one
// repository.
type Status int

const (
	// Created: a new pull request was opened.
	Created Status = iota
	// Exists: an open pull request for the same base/head already exists.
	Exists
	// Skipped: head is not ahead of base, so a PR would be empty.
	Skipped
	// Failed: the repository could not be processed.
	Failed
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Exists:
		return "exists"
	case Skipped:
		return "skipped"
	}

	return "failed"
}

// Result is the per-repository outcome of a bulk creation. Bulk calls
// never abort on a member failure; the error is captured here instead.
type Result struct {
	Repo   scm.Repo
	Status Status
	URL    string
	Err    error
}

// Orchestrator creates pull requests across repositories.
type Orchestrator struct {
	provider scm.Provider
}

// New creates an Orchestrator backed by the given provider.
func New(provider scm.Provider) *Orchestrator {
	return &Orchestrator{provider: provider}
}

// CreateAll opens one pull request per repository with bounded parallelism,
// returning one result per repository in input order. The call itself never
// fails; callers inspect each result's Status. A fatal error (bad
// credentials) cancels the remaining repositories so no further mutating
// calls are issued with a bad token.
func (o *Orchestrator) CreateAll(ctx context.Context, repos []scm.Repo, spec scm.CompareSpec, title, body string, limit int) []Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	return batch.Run(ctx, repos, limit, func(ctx context.Context, repo scm.Repo) Result {
		res := o.create(ctx, repo, spec, title, body)
		if scm.IsFatal(res.Err) {
			cancel()
		}

		return res
	})
}

// create processes a single repository: reuse an open PR when one exists,
// skip when there is nothing to merge, otherwise open a new PR.
func (o *Orchestrator) create(ctx context.Context, repo scm.Repo, spec scm.CompareSpec, title, body string) Result {
	res := Result{Repo: repo}

	if pr, err := o.provider.FindPullRequest(ctx, repo, spec.Base, spec.Head); err != nil {
		res.Status, res.Err = Failed, err
		return res
	} else if pr != nil {
		res.Status, res.URL = Exists, pr.URL
		return res
	}

	cmp, err := o.provider.Compare(ctx, repo, spec)
	if err != nil {
		res.Status, res.Err = Failed, err
		return res
	}

	if cmp.Ahead == 0 {
		// nothing to merge; an empty PR is disallowed
		res.Status = Skipped
		return res
	}

	pr, err := o.provider.CreatePullRequest(ctx, repo, spec.Base, spec.Head, title, body)
	if err != nil {
		res.Status, res.Err = Failed, err
		return res
	}

	res.Status, res.URL = Created, pr.URL

	return res
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

// FailedCount counts results with a Failed status; bulk commands use it to
// decide the process exit code.
func FailedCount(results []Result) int {
	var count int

	for _, res := range results {
		if res.Status == Failed {
			count++
		}
	}

	return count
}
