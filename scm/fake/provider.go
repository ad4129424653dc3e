// Package fake implements an in-memory scm.Provider for testing.
package fake

import (
	"context"
	"sync"

	"github.com/tiamat-cli/tiamat/scm"
)

var _ scm.Provider = new(Fake)

func init() {
	// Register the fake provider factory
	scm.Register("fake", func(_ context.Context) scm.Provider { return New() })
}

// DispatchCall records a single DispatchWorkflow invocation.
type DispatchCall struct {
	Repo     scm.Repo
	Workflow string
	Ref      string
	Inputs   map[string]string
}

// Fake implements a mock SCM provider for testing purposes. Behavior is
// seeded through the exported maps; errors are keyed by "op:org/name" and
// returned for the matching operation, or by "*:org/name" for any
// operation on the repository.
type Fake struct {
	mu sync.Mutex

	Comparisons map[string]*scm.Comparison  // key: "org/name" or "org/name:base..head"
	OpenPRs     map[string]*scm.PullRequest // key: "org/name:base:head"
	Tags        map[string][]string         // key: "org/name"
	Releases    map[string][]scm.Release    // key: "org/name"
	Errors      map[string]error            // key: "op:org/name" or "*:org/name"

	CreatedPRs      []scm.Repo
	CreatedReleases []scm.ReleaseSpec
	Dispatches      []DispatchCall
}

// New creates an empty fake provider.
func New() *Fake {
	return &Fake{
		Comparisons: make(map[string]*scm.Comparison),
		OpenPRs:     make(map[string]*scm.PullRequest),
		Tags:        make(map[string][]string),
		Releases:    make(map[string][]scm.Release),
		Errors:      make(map[string]error),
	}
}

func (f *Fake) fail(op string, repo scm.Repo) error {
	if err, ok := f.Errors[op+":"+repo.String()]; ok {
		return err
	}

	if err, ok := f.Errors["*:"+repo.String()]; ok {
		return err
	}

	return nil
}

func (f *Fake) Compare(ctx context.Context, repo scm.Repo, spec scm.CompareSpec) (*scm.Comparison, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &scm.RemoteError{Repo: repo, Err: err}
	}

	if err := f.fail("compare", repo); err != nil {
		return nil, err
	}

	// Mode-specific seeds take precedence over the repo-wide seed, so tests
	// can exercise two-dot and three-dot routing independently.
	if cmp, ok := f.Comparisons[repo.String()+":"+spec.Range()]; ok {
		return cmp, nil
	}

	if cmp, ok := f.Comparisons[repo.String()]; ok {
		return cmp, nil
	}

	return &scm.Comparison{Repo: repo}, nil
}

func (f *Fake) FindPullRequest(ctx context.Context, repo scm.Repo, base, head string) (*scm.PullRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &scm.RemoteError{Repo: repo, Err: err}
	}

	if err := f.fail("find-pr", repo); err != nil {
		return nil, err
	}

	return f.OpenPRs[repo.String()+":"+base+":"+head], nil
}

func (f *Fake) CreatePullRequest(ctx context.Context, repo scm.Repo, base, head, title, body string) (*scm.PullRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &scm.RemoteError{Repo: repo, Err: err}
	}

	if err := f.fail("create-pr", repo); err != nil {
		return nil, err
	}

	pr := &scm.PullRequest{
		Number: len(f.CreatedPRs) + 1,
		Title:  title,
		URL:    "https://example.com/" + repo.String() + "/pull/new",
	}

	f.CreatedPRs = append(f.CreatedPRs, repo)
	f.OpenPRs[repo.String()+":"+base+":"+head] = pr

	return pr, nil
}

func (f *Fake) ListTags(ctx context.Context, repo scm.Repo) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &scm.RemoteError{Repo: repo, Err: err}
	}

	if err := f.fail("list-tags", repo); err != nil {
		return nil, err
	}

	return f.Tags[repo.String()], nil
}

func (f *Fake) ListReleases(ctx context.Context, repo scm.Repo, limit int) ([]scm.Release, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &scm.RemoteError{Repo: repo, Err: err}
	}

	if err := f.fail("list-releases", repo); err != nil {
		return nil, err
	}

	releases := f.Releases[repo.String()]
	if limit > 0 && len(releases) > limit {
		releases = releases[:limit]
	}

	return releases, nil
}

func (f *Fake) CreateRelease(ctx context.Context, repo scm.Repo, spec scm.ReleaseSpec) (*scm.Release, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &scm.RemoteError{Repo: repo, Err: err}
	}

	if err := f.fail("create-release", repo); err != nil {
		return nil, err
	}

	f.CreatedReleases = append(f.CreatedReleases, spec)
	f.Tags[repo.String()] = append(f.Tags[repo.String()], spec.Tag)

	rel := scm.Release{
		Tag:        spec.Tag,
		Name:       spec.Name,
		URL:        "https://example.com/" + repo.String() + "/releases/" + spec.Tag,
		Draft:      spec.Draft,
		Prerelease: spec.Prerelease,
	}

	f.Releases[repo.String()] = append([]scm.Release{rel}, f.Releases[repo.String()]...)

	return &rel, nil
}

func (f *Fake) DispatchWorkflow(ctx context.Context, repo scm.Repo, workflow, ref string, inputs map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return &scm.RemoteError{Repo: repo, Err: err}
	}

	if err := f.fail("dispatch", repo); err != nil {
		return err
	}

	f.Dispatches = append(f.Dispatches, DispatchCall{Repo: repo, Workflow: workflow, Ref: ref, Inputs: inputs})

	return nil
}
