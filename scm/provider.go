package scm

import (
	"context"
	"fmt"
)

var providerFactories = make(map[string]ProviderFactory)

type ProviderFactory func(ctx context.Context) Provider

// Provider defines the remote operations required of an SCM backend. All
// methods are remote API calls; the engine never touches a working tree.
type Provider interface {
	// Compare returns the divergence between the branches of spec,
	// preserving the two-dot/three-dot comparison mode.
	Compare(ctx context.Context, repo Repo, spec CompareSpec) (*Comparison, error)

	// FindPullRequest returns the open pull request for the (base, head)
	// pair, or nil if none exists.
	FindPullRequest(ctx context.Context, repo Repo, base, head string) (*PullRequest, error)
	// CreatePullRequest opens a new pull request from head into base.
	CreatePullRequest(ctx context.Context, repo Repo, base, head, title, body string) (*PullRequest, error)

	// ListTags returns all tag names of the repository.
	ListTags(ctx context.Context, repo Repo) ([]string, error)
	// ListReleases returns up to limit releases, most recent first.
	ListReleases(ctx context.Context, repo Repo, limit int) ([]Release, error)
	// CreateRelease publishes a new release for spec.Tag.
	CreateRelease(ctx context.Context, repo Repo, spec ReleaseSpec) (*Release, error)

	// DispatchWorkflow requests a workflow run on ref with the given
	// inputs. The API accepts the dispatch asynchronously; a nil error
	// means the request was queued, nothing more.
	DispatchWorkflow(ctx context.Context, repo Repo, workflow, ref string, inputs map[string]string) error
}

// Get retrieves a registered SCM provider by name.
// If the provider is not registered, it panics.
func Get(ctx context.Context, name string) Provider {
	if factory, exists := providerFactories[name]; exists {
		return factory(ctx)
	}

	panic(fmt.Sprintf("SCM provider %s not registered", name))
}

// Register a new SCM provider factory by name.
func Register(name string, factory ProviderFactory) {
	if _, exists := providerFactories[name]; !exists {
		providerFactories[name] = factory
	}
}
