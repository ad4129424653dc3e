// Package catalog resolves the configured fleet of repositories. The
// catalog is a pure lookup over the immutable configuration; it performs
// no remote calls and no mutation.
package catalog

import (
	"context"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/tiamat-cli/tiamat/config"
	"github.com/tiamat-cli/tiamat/scm"
)

// Registry holds the configured repository set in its configured order.
type Registry struct {
	repos  []scm.Repo
	byName map[string]scm.Repo
}

// Load parses the configured repository list ("org/name", comma-separated)
// into a Registry. An empty or malformed list is a global error; no
// per-repository work may start from a bad registry.
func Load(ctx context.Context) (*Registry, error) {
	raw := config.Viper(ctx).GetString(config.Repositories)

	reg := &Registry{byName: make(map[string]scm.Repo)}
	seen := mapset.NewSet[string]()

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		repo, err := scm.ParseRepo(entry)
		if err != nil {
			return nil, err
		}

		if !seen.Add(repo.String()) {
			continue
		}

		reg.repos = append(reg.repos, repo)

		// first configured entry wins a short name
		if _, ok := reg.byName[repo.Name]; !ok {
			reg.byName[repo.Name] = repo
		}
	}

	if len(reg.repos) == 0 {
		return nil, fmt.Errorf("no repositories configured (set %q)", config.Repositories)
	}

	return reg, nil
}

// All returns the full repository set in configured order.
func (r *Registry) All() []scm.Repo {
	out := make([]scm.Repo, len(r.repos))
	copy(out, r.repos)

	return out
}

// Len returns the number of configured repositories.
func (r *Registry) Len() int {
	return len(r.repos)
}

// Resolve maps the given arguments onto repositories, preserving argument
// order and deduplicating. A bare name matches the name half of a
// configured "org/name" entry; a full "org/name" is accepted as-is. With
// no arguments the whole configured set is returned.
func (r *Registry) Resolve(args ...string) ([]scm.Repo, error) {
	if len(args) == 0 {
		return r.All(), nil
	}

	out := make([]scm.Repo, 0, len(args))
	seen := mapset.NewSet[string]()

	for _, arg := range args {
		repo, err := r.lookup(arg)
		if err != nil {
			return nil, err
		}

		if seen.Add(repo.String()) {
			out = append(out, repo)
		}
	}

	return out, nil
}

func (r *Registry) lookup(arg string) (scm.Repo, error) {
	if strings.Contains(arg, "/") {
		return scm.ParseRepo(arg)
	}

	if repo, ok := r.byName[arg]; ok {
		return repo, nil
	}

	return scm.Repo{}, fmt.Errorf("repository %q not found in configured set", arg)
}
