package pullreq_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tiamat-cli/tiamat/pullreq"
	"github.com/tiamat-cli/tiamat/scm"
	"github.com/tiamat-cli/tiamat/scm/fake"
)

var spec = scm.CompareSpec{Base: "main", Head: "release", Mode: scm.ThreeDot}

func TestCreateAllPartialFailure(t *testing.T) {
	repos := []scm.Repo{
		{Org: "acme", Name: "alpha"},
		{Org: "acme", Name: "bravo"},
		{Org: "acme", Name: "charlie"},
	}

	provider := fake.New()
	provider.Comparisons["acme/alpha"] = &scm.Comparison{Repo: repos[0], Ahead: 2}
	provider.Errors["compare:acme/bravo"] = &scm.BranchNotFoundError{Repo: repos[1], Ref: "release"}
	provider.Comparisons["acme/charlie"] = &scm.Comparison{Repo: repos[2], Ahead: 1}

	results := pullreq.New(provider).CreateAll(context.Background(), repos, spec, "title", "body", 2)

	if len(results) != 3 {
		t.Fatalf("CreateAll() returned %d results, want 3", len(results))
	}

	// One result per repository, in input order
	for i, res := range results {
		if res.Repo != repos[i] {
			t.Errorf("results[%d].Repo = %s, want %s", i, res.Repo, repos[i])
		}
	}

	if results[1].Status != pullreq.Failed {
		t.Errorf("results[1].Status = %v, want failed", results[1].Status)
	}

	var branchErr *scm.BranchNotFoundError
	if !errors.As(results[1].Err, &branchErr) {
		t.Errorf("results[1].Err = %v, want BranchNotFoundError", results[1].Err)
	}

	// A and C proceed to completion unaffected
	for _, i := range []int{0, 2} {
		if results[i].Status != pullreq.Created {
			t.Errorf("results[%d].Status = %v, want created", i, results[i].Status)
		}

		if results[i].URL == "" {
			t.Errorf("results[%d].URL is empty", i)
		}
	}

	if got := pullreq.FailedCount(results); got != 1 {
		t.Errorf("FailedCount() = %d, want 1", got)
	}
}

func TestCreateAllFatal(t *testing.T) {
	repo := scm.Repo{Org: "acme", Name: "alpha"}

	provider := fake.New()
	provider.Comparisons[repo.String()] = &scm.Comparison{Repo: repo, Ahead: 2}
	provider.Errors["find-pr:acme/alpha"] = &scm.AuthError{Err: errors.New("bad credentials")}

	results := pullreq.New(provider).CreateAll(context.Background(), []scm.Repo{repo}, spec, "title", "body", 1)

	if results[0].Status != pullreq.Failed {
		t.Fatalf("Status = %v, want failed", results[0].Status)
	}

	var authErr *scm.AuthError
	if err := pullreq.Fatal(results); !errors.As(err, &authErr) {
		t.Errorf("Fatal() = %v, want AuthError", err)
	}

	if len(provider.CreatedPRs) != 0 {
		t.Errorf("CreatePullRequest called %d times after auth failure, want 0", len(provider.CreatedPRs))
	}
}

func TestCreateAllExistingPR(t *testing.T) {
	repo := scm.Repo{Org: "acme", Name: "alpha"}

	provider := fake.New()
	provider.Comparisons[repo.String()] = &scm.Comparison{Repo: repo, Ahead: 2}
	provider.OpenPRs[repo.String()+":main:release"] = &scm.PullRequest{Number: 7, URL: "https://example.com/acme/alpha/pull/7"}

	results := pullreq.New(provider).CreateAll(context.Background(), []scm.Repo{repo}, spec, "title", "body", 1)

	if results[0].Status != pullreq.Exists {
		t.Fatalf("Status = %v, want exists", results[0].Status)
	}

	if results[0].URL != "https://example.com/acme/alpha/pull/7" {
		t.Errorf("URL = %q, want the existing PR URL", results[0].URL)
	}

	// No creation call may happen for an existing PR
	if len(provider.CreatedPRs) != 0 {
		t.Errorf("CreatePullRequest called %d times, want 0", len(provider.CreatedPRs))
	}
}

func TestCreateAllNothingToMerge(t *testing.T) {
	repo := scm.Repo{Org: "acme", Name: "alpha"}

	provider := fake.New()
	provider.Comparisons[repo.String()] = &scm.Comparison{Repo: repo, Ahead: 0, Behind: 3}

	results := pullreq.New(provider).CreateAll(context.Background(), []scm.Repo{repo}, spec, "title", "body", 1)

	if results[0].Status != pullreq.Skipped {
		t.Fatalf("Status = %v, want skipped", results[0].Status)
	}

	if results[0].Err != nil {
		t.Errorf("Err = %v, want nil (a no-op is not a failure)", results[0].Err)
	}

	if len(provider.CreatedPRs) != 0 {
		t.Errorf("CreatePullRequest called %d times, want 0", len(provider.CreatedPRs))
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status pullreq.Status
		want   string
	}{
		{pullreq.Created, "created"},
		{pullreq.Exists, "exists"},
		{pullreq.Skipped, "skipped"},
		{pullreq.Failed, "failed"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
