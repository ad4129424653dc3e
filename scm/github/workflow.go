package github

import (
	"context"

	"github.com/google/go-github/v74/github"

	"github.com/tiamat-cli/tiamat/scm"
)

// DispatchWorkflow requests a run of the named workflow file on ref. The
// API accepts the dispatch asynchronously (204) without returning a run
// identifier; a nil error means the request was queued, nothing more.
func (g *Github) DispatchWorkflow(ctx context.Context, repo scm.Repo, workflow, ref string, inputs map[string]string) error {
	event := github.CreateWorkflowDispatchEventRequest{Ref: ref}

	if len(inputs) > 0 {
		event.Inputs = make(map[string]any, len(inputs))
		for key, value := range inputs {
			event.Inputs[key] = value
		}
	}

	return g.withRetry(ctx, func() error {
		resp, err := g.client.Actions.CreateWorkflowDispatchEventByFileName(ctx, repo.Org, repo.Name, workflow, event)

		return g.mapError(repo, resp, err, ref)
	})
}
