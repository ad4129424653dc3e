// Package release cuts semantic-version releases across a repository set:
// resolve the latest version, bump it under a policy, create the tag, and
// optionally trigger a deployment workflow.
package release

import (
	"context"
	"slices"

	"github.com/Masterminds/semver/v3"

	"github.com/tiamat-cli/tiamat/batch"
	"github.com/tiamat-cli/tiamat/scm"
	"github.com/tiamat-cli/tiamat/version"
	"github.com/tiamat-cli/tiamat/workflow"
)

// Options controls a release run.
type Options struct {
	Policy     version.Policy
	Target     string // branch the tag points at
	Name       string // release title; defaults to the new version
	Body       string
	Draft      bool
	Prerelease bool
	TagPrefix  string // usually "v"

	// Workflow, when set, is dispatched after a successful tag. A dispatch
	// failure does not roll back the release.
	Workflow *workflow.Request
}

// Result is the per-repository outcome of a release.
type Result struct {
	Repo     scm.Repo
	Previous *semver.Version // nil on first release
	Next     *semver.Version
	Tag      string

	TagCreated        bool
	WorkflowTriggered bool

	// Warning carries a post-tag dispatch failure: the release is final
	// once the tag exists, so this never marks the release as failed.
	Warning error
	Err     error
}

// Manager runs the release sequence per repository.
type Manager struct {
	provider scm.Provider
	resolver *version.Resolver
}

// New creates a Manager backed by the given provider.
func New(provider scm.Provider) *Manager {
	return &Manager{
		provider: provider,
		resolver: version.NewResolver(provider),
	}
}

// Release cuts a release for a single repository. Steps: resolve the
// latest version, bump it, refuse duplicate tags, create the release, then
// optionally dispatch the deployment workflow.
func (m *Manager) Release(ctx context.Context, repo scm.Repo, opts Options) Result {
	res := Result{Repo: repo}

	prev, err := m.resolver.Latest(ctx, repo)
	if err != nil {
		res.Err = err
		return res
	}

	res.Previous = prev
	res.Next = version.Bump(prev, opts.Policy)
	res.Tag = opts.TagPrefix + res.Next.String()

	// The duplicate check precedes the mutating call: releases are
	// append-only and an existing tag is never overwritten.
	tags, err := m.provider.ListTags(ctx, repo)
	if err != nil {
		res.Err = err
		return res
	}

	if slices.Contains(tags, res.Tag) {
		res.Err = &scm.DuplicateTagError{Repo: repo, Tag: res.Tag}
		return res
	}

	name := opts.Name
	if name == "" {
		name = res.Next.String()
	}

	if _, err := m.provider.CreateRelease(ctx, repo, scm.ReleaseSpec{
		Tag:        res.Tag,
		Name:       name,
		Body:       opts.Body,
		Target:     opts.Target,
		Draft:      opts.Draft,
		Prerelease: opts.Prerelease,
	}); err != nil {
		res.Err = err
		return res
	}

	res.TagCreated = true

	if opts.Workflow != nil {
		// The release is final; a dispatch failure is reported as a
		// warning, not as a failure of the release.
		if err := m.provider.DispatchWorkflow(ctx, repo, opts.Workflow.Workflow, opts.Workflow.Ref, opts.Workflow.Inputs); err != nil {
			res.Warning = err
		} else {
			res.WorkflowTriggered = true
		}
	}

	return res
}

// ReleaseAll cuts releases across repositories with bounded parallelism,
// one result per repository in input order. A fatal error (bad credentials)
// cancels the remaining repositories so no further tags are created with a
// bad token.
func (m *Manager) ReleaseAll(ctx context.Context, repos []scm.Repo, opts Options, limit int) []Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	return batch.Run(ctx, repos, limit, func(ctx context.Context, repo scm.Repo) Result {
		res := m.Release(ctx, repo, opts)
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

// FailedCount counts releases that did not reach a created tag.
func FailedCount(results []Result) int {
	var count int

	for _, res := range results {
		if res.Err != nil {
			count++
		}
	}

	return count
}
