package workflow_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tiamat-cli/tiamat/config"
	"github.com/tiamat-cli/tiamat/scm"
	"github.com/tiamat-cli/tiamat/scm/fake"
	"github.com/tiamat-cli/tiamat/workflow"
)

func TestDispatch(t *testing.T) {
	repo := scm.Repo{Org: "acme", Name: "coralreef"}

	t.Run("accepted", func(t *testing.T) {
		provider := fake.New()

		res := workflow.New(provider).Dispatch(context.Background(), repo, workflow.Request{
			Workflow: "build.yml",
			Ref:      "main",
			Inputs:   map[string]string{"version": "1.0.0"},
		})

		// Accepted reflects only that the request was queued; there is no
		// run status to report.
		if !res.Accepted || res.Err != nil {
			t.Fatalf("Dispatch() = %+v, want accepted", res)
		}

		if len(provider.Dispatches) != 1 {
			t.Fatalf("DispatchWorkflow called %d times, want 1", len(provider.Dispatches))
		}

		call := provider.Dispatches[0]
		if call.Workflow != "build.yml" || call.Ref != "main" || call.Inputs["version"] != "1.0.0" {
			t.Errorf("unexpected dispatch call: %+v", call)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		provider := fake.New()
		provider.Errors["dispatch:"+repo.String()] = &scm.RemoteError{Repo: repo, Err: errors.New("refused")}

		res := workflow.New(provider).Dispatch(context.Background(), repo, workflow.Request{Workflow: "build.yml", Ref: "main"})

		if res.Accepted || res.Err == nil {
			t.Fatalf("Dispatch() = %+v, want rejection with error", res)
		}
	})
}

func TestDispatchAllOrder(t *testing.T) {
	repos := []scm.Repo{
		{Org: "acme", Name: "alpha"},
		{Org: "acme", Name: "bravo"},
		{Org: "acme", Name: "charlie"},
	}

	provider := fake.New()
	provider.Errors["dispatch:acme/bravo"] = &scm.RemoteError{Repo: repos[1], Err: errors.New("boom")}

	results := workflow.New(provider).DispatchAll(context.Background(), repos, workflow.Request{Workflow: "build.yml", Ref: "main"}, 2)

	if len(results) != 3 {
		t.Fatalf("DispatchAll() returned %d results, want 3", len(results))
	}

	for i, res := range results {
		if res.Repo != repos[i] {
			t.Errorf("results[%d].Repo = %s, want %s", i, res.Repo, repos[i])
		}
	}

	if got := workflow.FailedCount(results); got != 1 {
		t.Errorf("FailedCount() = %d, want 1", got)
	}
}

func TestDispatchAllFatal(t *testing.T) {
	repo := scm.Repo{Org: "acme", Name: "alpha"}

	provider := fake.New()
	provider.Errors["dispatch:acme/alpha"] = &scm.AuthError{Err: errors.New("bad credentials")}

	results := workflow.New(provider).DispatchAll(context.Background(), []scm.Repo{repo}, workflow.Request{Workflow: "build.yml", Ref: "main"}, 1)

	var authErr *scm.AuthError
	if err := workflow.Fatal(results); !errors.As(err, &authErr) {
		t.Errorf("Fatal() = %v, want AuthError", err)
	}
}

func TestParseInputs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		want        map[string]string
		wantSkipped []string
	}{
		{
			name: "valid",
			args: []string{"version=1.0.0", "stage=production"},
			want: map[string]string{"version": "1.0.0", "stage": "production"},
		},
		{
			name: "value_with_equals",
			args: []string{"flags=a=b"},
			want: map[string]string{"flags": "a=b"},
		},
		{
			name:        "malformed_skipped",
			args:        []string{"version=1.0.0", "oops", "=nokey"},
			want:        map[string]string{"version": "1.0.0"},
			wantSkipped: []string{"oops", "=nokey"},
		},
		{
			name: "empty",
			args: nil,
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped := workflow.ParseInputs(tt.args)

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseInputs(%v) = %v, want %v", tt.args, got, tt.want)
			}

			if !reflect.DeepEqual(skipped, tt.wantSkipped) {
				t.Errorf("ParseInputs(%v) skipped = %v, want %v", tt.args, skipped, tt.wantSkipped)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	ctx := config.SetViper(context.Background(), config.New())

	preset, err := workflow.Lookup(ctx, "staging")
	if err != nil {
		t.Fatalf("Lookup(staging) error = %v", err)
	}

	if preset.Workflow != "deploy.preview.manual.yml" || preset.Ref != "release" {
		t.Errorf("unexpected staging preset: %+v", preset)
	}

	if preset.Inputs["stage"] != "staging" {
		t.Errorf("staging preset inputs = %v, want stage=staging", preset.Inputs)
	}

	if _, err := workflow.Lookup(ctx, "mars"); err == nil {
		t.Error("Lookup(mars) expected error, got nil")
	}
}

func TestPresetRequest(t *testing.T) {
	preset := workflow.Preset{
		Workflow: "deploy.yml",
		Ref:      "release",
		Inputs:   map[string]string{"region": "eu-central-1", "stage": "staging"},
	}

	req := preset.Request("hotfix", map[string]string{"stage": "demo", "extra": "1"})

	if req.Ref != "hotfix" {
		t.Errorf("Ref = %q, want override %q", req.Ref, "hotfix")
	}

	want := map[string]string{"region": "eu-central-1", "stage": "demo", "extra": "1"}
	if !reflect.DeepEqual(req.Inputs, want) {
		t.Errorf("Inputs = %v, want %v", req.Inputs, want)
	}

	// original preset inputs are not mutated
	if preset.Inputs["stage"] != "staging" {
		t.Errorf("preset inputs mutated: %v", preset.Inputs)
	}
}
