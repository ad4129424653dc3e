package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tiamat-cli/tiamat/config"

	// Register the fake provider for command tests
	_ "github.com/tiamat-cli/tiamat/scm/fake"
)

func newTestContext(t *testing.T) context.Context {
	t.Helper()

	v := config.New()
	v.Set(config.Provider, "fake")
	v.Set(config.AuthToken, "test-token")
	v.Set(config.Repositories, "acme/alpha,acme/bravo")

	return config.SetViper(context.Background(), v)
}

func runCommand(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)

	root := RootCmd()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)

	return buf.String(), err
}

func TestCheckCommand(t *testing.T) {
	// the fake provider reports no divergence, so check succeeds
	out, err := runCommand(t, newTestContext(t), "check", "main...release")
	if err != nil {
		t.Fatalf("check returned error: %v", err)
	}

	for _, want := range []string{"acme/alpha", "acme/bravo", "nothing to merge"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckCommandInterrupted(t *testing.T) {
	// Execute wires SIGINT/SIGTERM into the command context; a cancelled
	// context still yields one result per repository but a nonzero exit.
	ctx, cancel := context.WithCancel(newTestContext(t))
	cancel()

	out, err := runCommand(t, ctx, "check", "main...release")
	if err == nil {
		t.Fatal("check with cancelled context expected error, got nil")
	}

	for _, want := range []string{"acme/alpha", "acme/bravo"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckCommandInvalidSpec(t *testing.T) {
	if _, err := runCommand(t, newTestContext(t), "check", "main..."); err == nil {
		t.Fatal("check with malformed spec expected error, got nil")
	}
}

func TestCheckCommandRequiresToken(t *testing.T) {
	v := config.New()
	v.Set(config.Provider, "fake")
	v.Set(config.Repositories, "acme/alpha")

	ctx := config.SetViper(context.Background(), v)

	if _, err := runCommand(t, ctx, "check"); err == nil {
		t.Fatal("check without token expected error, got nil")
	}
}

func TestCheckCommandUnknownRepo(t *testing.T) {
	// a bad repository argument aborts before any per-repository work
	if _, err := runCommand(t, newTestContext(t), "check", "zulu"); err == nil {
		t.Fatal("check with unknown repository expected error, got nil")
	}
}

func TestCreatePRCommandSkipsUpToDate(t *testing.T) {
	// nothing to merge anywhere: results are skipped, exit status zero
	out, err := runCommand(t, newTestContext(t), "createpr", "main...release")
	if err != nil {
		t.Fatalf("createpr returned error: %v", err)
	}

	if !strings.Contains(out, "skipped") {
		t.Errorf("createpr output missing skipped status:\n%s", out)
	}
}

func TestListCommand(t *testing.T) {
	out, err := runCommand(t, newTestContext(t), "list")
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}

	for _, want := range []string{"acme/alpha", "acme/bravo"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestSettingsCommand(t *testing.T) {
	out, err := runCommand(t, newTestContext(t), "settings")
	if err != nil {
		t.Fatalf("settings returned error: %v", err)
	}

	for _, want := range []string{"main", "release", "Repositories:  2"} {
		if !strings.Contains(out, want) {
			t.Errorf("settings output missing %q:\n%s", want, out)
		}
	}
}

func TestSplitSpecArg(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantSpec  string
		wantRepos []string
	}{
		{
			name:      "spec_then_repos",
			args:      []string{"main...release", "alpha"},
			wantSpec:  "main...release",
			wantRepos: []string{"alpha"},
		},
		{
			name:      "repos_only",
			args:      []string{"alpha", "bravo"},
			wantSpec:  "",
			wantRepos: []string{"alpha", "bravo"},
		},
		{
			name:      "empty",
			args:      nil,
			wantSpec:  "",
			wantRepos: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, repos := splitSpecArg(tt.args)

			if spec != tt.wantSpec {
				t.Errorf("splitSpecArg(%v) spec = %q, want %q", tt.args, spec, tt.wantSpec)
			}

			if len(repos) != len(tt.wantRepos) {
				t.Fatalf("splitSpecArg(%v) repos = %v, want %v", tt.args, repos, tt.wantRepos)
			}

			for i := range repos {
				if repos[i] != tt.wantRepos[i] {
					t.Errorf("splitSpecArg(%v) repos[%d] = %q, want %q", tt.args, i, repos[i], tt.wantRepos[i])
				}
			}
		})
	}
}
