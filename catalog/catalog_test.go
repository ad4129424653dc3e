package catalog_test

import (
	"context"
	"testing"

	"github.com/tiamat-cli/tiamat/catalog"
	"github.com/tiamat-cli/tiamat/config"
	"github.com/tiamat-cli/tiamat/scm"
)

func newContext(t *testing.T, repositories string) context.Context {
	t.Helper()

	v := config.New()
	v.Set(config.Repositories, repositories)

	return config.SetViper(context.Background(), v)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name         string
		repositories string
		want         []string
		wantErr      bool
	}{
		{
			name:         "basic",
			repositories: "acme/alpha,acme/bravo",
			want:         []string{"acme/alpha", "acme/bravo"},
		},
		{
			name:         "whitespace_and_empty_entries",
			repositories: " acme/alpha , ,acme/bravo,",
			want:         []string{"acme/alpha", "acme/bravo"},
		},
		{
			name:         "duplicates_collapse",
			repositories: "acme/alpha,acme/alpha,acme/bravo",
			want:         []string{"acme/alpha", "acme/bravo"},
		},
		{
			name:         "malformed_entry",
			repositories: "acme/alpha,notarepo",
			wantErr:      true,
		},
		{
			name:         "empty_list",
			repositories: "",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := catalog.Load(newContext(t, tt.repositories))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			all := registry.All()
			if len(all) != len(tt.want) {
				t.Fatalf("All() returned %d repos, want %d", len(all), len(tt.want))
			}

			for i, repo := range all {
				if repo.String() != tt.want[i] {
					t.Errorf("All()[%d] = %s, want %s", i, repo, tt.want[i])
				}
			}
		})
	}
}

func TestResolve(t *testing.T) {
	registry, err := catalog.Load(newContext(t, "acme/alpha,acme/bravo,other/charlie"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "no_args_returns_all",
			args: nil,
			want: []string{"acme/alpha", "acme/bravo", "other/charlie"},
		},
		{
			name: "short_name",
			args: []string{"charlie"},
			want: []string{"other/charlie"},
		},
		{
			name: "full_name_passthrough",
			args: []string{"acme/delta"},
			want: []string{"acme/delta"},
		},
		{
			name: "order_preserved_and_deduplicated",
			args: []string{"bravo", "alpha", "acme/bravo"},
			want: []string{"acme/bravo", "acme/alpha"},
		},
		{
			name:    "unknown_short_name",
			args:    []string{"zulu"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos, err := registry.Resolve(tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			if len(repos) != len(tt.want) {
				t.Fatalf("Resolve(%v) returned %d repos, want %d", tt.args, len(repos), len(tt.want))
			}

			for i, repo := range repos {
				if repo.String() != tt.want[i] {
					t.Errorf("Resolve(%v)[%d] = %s, want %s", tt.args, i, repo, tt.want[i])
				}
			}
		})
	}
}

func TestRegistryAllIsCopy(t *testing.T) {
	registry, err := catalog.Load(newContext(t, "acme/alpha,acme/bravo"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	all := registry.All()
	all[0] = scm.Repo{Org: "mutated", Name: "mutated"}

	if registry.All()[0].Org != "acme" {
		t.Error("All() exposed internal state to mutation")
	}
}
