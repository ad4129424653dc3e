// Package workflow dispatches GitHub Actions workflow runs. Dispatch is
// asynchronous on the API side: acceptance means the request was queued,
// not that the run started or succeeded.
package workflow

import (
	"context"
	"strings"

	"github.com/tiamat-cli/tiamat/batch"
	"github.com/tiamat-cli/tiamat/scm"
)

// Request names a workflow file, the ref to run it on, and its inputs.
type Request struct {
	Workflow string
	Ref      string
	Inputs   map[string]string
}

// Result records whether a dispatch request was accepted for a repository.
type Result struct {
	Repo     scm.Repo
	Accepted bool
	Err      error
}

// Dispatcher triggers workflow runs through an SCM provider.
type Dispatcher struct {
	provider scm.Provider
}

// New creates a Dispatcher backed by the given provider.
func New(provider scm.Provider) *Dispatcher {
	return &Dispatcher{provider: provider}
}

// Dispatch requests a single workflow run. Accepted reflects only that the
// request was queued; run status is out of scope.
func (d *Dispatcher) Dispatch(ctx context.Context, repo scm.Repo, req Request) Result {
	if err := d.provider.DispatchWorkflow(ctx, repo, req.Workflow, req.Ref, req.Inputs); err != nil {
		return Result{Repo: repo, Err: err}
	}

	return Result{Repo: repo, Accepted: true}
}

// DispatchAll dispatches the same request to every repository with bounded
// parallelism, one result per repository in input order. A fatal error (bad
// credentials) cancels the remaining repositories.
func (d *Dispatcher) DispatchAll(ctx context.Context, repos []scm.Repo, req Request, limit int) []Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	return batch.Run(ctx, repos, limit, func(ctx context.Context, repo scm.Repo) Result {
		res := d.Dispatch(ctx, repo, req)
		if scm.IsFatal(res.Err) {
			cancel()
		}

		return res
	})
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

// FailedCount counts dispatches that were not accepted.
func FailedCount(results []Result) int {
	var count int

	for _, res := range results {
		if !res.Accepted {
			count++
		}
	}

	return count
}

// ParseInputs converts "key=value" tokens into an input map. Malformed
// tokens are returned separately so callers can warn without failing.
func ParseInputs(args []string) (map[string]string, []string) {
	inputs := make(map[string]string, len(args))

	var skipped []string

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			skipped = append(skipped, arg)
			continue
		}

		inputs[key] = value
	}

	return inputs, skipped
}
