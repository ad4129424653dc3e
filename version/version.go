// Package version implements semantic-version discovery and bumping over
// repository release history.
package version

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/tiamat-cli/tiamat/scm"
)

// Policy selects which version component a bump increments.
type Policy int

const (
	Major Policy = iota
	Minor
	Patch
)

// ParsePolicy maps a policy token to its Policy. Minor is the conventional
// default and is what callers should pass for an absent token.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	}

	return 0, fmt.Errorf("invalid bump policy %q (expected major, minor, or patch)", s)
}

func (p Policy) String() string {
	switch p {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	}

	return fmt.Sprintf("policy(%d)", int(p))
}

// Parse interprets a tag as a semantic version (optional leading "v").
// Unparsable tags yield a VersionParseError, which resolution skips.
func Parse(tag string) (*semver.Version, error) {
	v, err := semver.NewVersion(tag)
	if err != nil {
		return nil, &scm.VersionParseError{Tag: tag, Err: err}
	}

	return v, nil
}

// Bump returns the next version under the policy. All lower-order
// components reset to zero and any prerelease suffix is cleared. A nil
// previous version means "first release" and is treated as 0.0.0.
func Bump(prev *semver.Version, policy Policy) *semver.Version {
	if prev == nil {
		prev = semver.New(0, 0, 0, "", "")
	}

	var next semver.Version

	switch policy {
	case Major:
		next = prev.IncMajor()
	case Minor:
		next = prev.IncMinor()
	case Patch:
		next = prev.IncPatch()
	default:
		// policies come from ParsePolicy; anything else is a programming error
		panic(fmt.Sprintf("unknown bump policy %d", int(policy)))
	}

	return &next
}

// Resolver discovers the latest released version of a repository.
type Resolver struct {
	provider scm.Provider
}

// NewResolver creates a Resolver backed by the given provider.
func NewResolver(provider scm.Provider) *Resolver {
	return &Resolver{provider: provider}
}

// Latest returns the maximum parsable version among the repository's
// release tags, or nil when none parses as a semantic version ("first
// release"). Malformed tags are skipped, never surfaced as failures.
func (r *Resolver) Latest(ctx context.Context, repo scm.Repo) (*semver.Version, error) {
	releases, err := r.provider.ListReleases(ctx, repo, 0)
	if err != nil {
		return nil, err
	}

	var latest *semver.Version

	for _, release := range releases {
		v, err := Parse(release.Tag)
		if err != nil {
			continue
		}

		if latest == nil || v.GreaterThan(latest) {
			latest = v
		}
	}

	return latest, nil
}
