package github

import (
	"context"

	"github.com/google/go-github/v74/github"

	"github.com/tiamat-cli/tiamat/scm"
)

// ListTags returns all tag names of the repository, paginating through the
// full set.
func (g *Github) ListTags(ctx context.Context, repo scm.Repo) ([]string, error) {
	tags := make([]string, 0)
	opt := &github.ListOptions{PerPage: 100}

	for {
		var (
			page []*github.RepositoryTag
			next int
		)

		err := g.withRetry(ctx, func() error {
			list, resp, err := g.client.Repositories.ListTags(ctx, repo.Org, repo.Name, opt)
			if err != nil {
				return g.mapError(repo, resp, err)
			}

			page, next = list, resp.NextPage

			return nil
		})
		if err != nil {
			return nil, err
		}

		for _, tag := range page {
			tags = append(tags, tag.GetName())
		}

		if next == 0 {
			break
		}

		opt.Page = next
	}

	return tags, nil
}

// ListReleases returns up to limit releases, most recent first. A limit of
// zero or less returns all releases, paginating through the full set.
func (g *Github) ListReleases(ctx context.Context, repo scm.Repo, limit int) ([]scm.Release, error) {
	releases := make([]*github.RepositoryRelease, 0)
	opt := &github.ListOptions{PerPage: 100}

	if limit > 0 && limit < opt.PerPage {
		opt.PerPage = limit
	}

	for {
		var (
			page []*github.RepositoryRelease
			next int
		)

		err := g.withRetry(ctx, func() error {
			list, resp, err := g.client.Repositories.ListReleases(ctx, repo.Org, repo.Name, opt)
			if err != nil {
				return g.mapError(repo, resp, err)
			}

			page, next = list, resp.NextPage

			return nil
		})
		if err != nil {
			return nil, err
		}

		releases = append(releases, page...)

		if next == 0 || (limit > 0 && len(releases) >= limit) {
			break
		}

		opt.Page = next
	}

	if limit > 0 && len(releases) > limit {
		releases = releases[:limit]
	}

	out := make([]scm.Release, 0, len(releases))
	for _, rel := range releases {
		out = append(out, scm.Release{
			Tag:         rel.GetTagName(),
			Name:        rel.GetName(),
			URL:         rel.GetHTMLURL(),
			Draft:       rel.GetDraft(),
			Prerelease:  rel.GetPrerelease(),
			PublishedAt: rel.GetPublishedAt().Time,
		})
	}

	return out, nil
}

// CreateRelease publishes a new release for spec.Tag on the target branch.
func (g *Github) CreateRelease(ctx context.Context, repo scm.Repo, spec scm.ReleaseSpec) (*scm.Release, error) {
	var rel *github.RepositoryRelease

	err := g.withRetry(ctx, func() error {
		resp, httpResp, err := g.client.Repositories.CreateRelease(ctx, repo.Org, repo.Name, &github.RepositoryRelease{
			TagName:         &spec.Tag,
			Name:            &spec.Name,
			Body:            &spec.Body,
			TargetCommitish: &spec.Target,
			Draft:           &spec.Draft,
			Prerelease:      &spec.Prerelease,
		})
		if err != nil {
			return g.mapError(repo, httpResp, err)
		}

		rel = resp

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &scm.Release{
		Tag:         rel.GetTagName(),
		Name:        rel.GetName(),
		URL:         rel.GetHTMLURL(),
		Draft:       rel.GetDraft(),
		Prerelease:  rel.GetPrerelease(),
		PublishedAt: rel.GetPublishedAt().Time,
	}, nil
}
