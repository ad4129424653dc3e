package scm_test

import (
	"errors"
	"testing"
	"time"

	"github.com/tiamat-cli/tiamat/scm"
)

func TestParseRepo(t *testing.T) {
	tests := []struct {
		input   string
		want    scm.Repo
		wantErr bool
	}{
		{input: "acme/coralreef", want: scm.Repo{Org: "acme", Name: "coralreef"}},
		{input: "coralreef", wantErr: true},
		{input: "acme/", wantErr: true},
		{input: "/coralreef", wantErr: true},
		{input: "acme/coral/reef", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := scm.ParseRepo(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepo(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRepo(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestErrorClassification(t *testing.T) {
	repo := scm.Repo{Org: "acme", Name: "coralreef"}

	tests := []struct {
		name      string
		err       error
		retryable bool
		fatal     bool
	}{
		{
			name:      "rate_limit_is_retryable",
			err:       &scm.RateLimitError{Repo: repo, ResetAfter: time.Minute},
			retryable: true,
		},
		{
			name:      "remote_is_retryable",
			err:       &scm.RemoteError{Repo: repo, Err: errors.New("503")},
			retryable: true,
		},
		{
			name:  "auth_is_fatal",
			err:   &scm.AuthError{Err: errors.New("bad credentials")},
			fatal: true,
		},
		{
			name: "branch_not_found_is_terminal",
			err:  &scm.BranchNotFoundError{Repo: repo, Ref: "release"},
		},
		{
			name: "repo_not_found_is_terminal",
			err:  &scm.RepoNotFoundError{Repo: repo},
		},
		{
			name: "duplicate_tag_is_terminal",
			err:  &scm.DuplicateTagError{Repo: repo, Tag: "v1.0.0"},
		},
		{
			name:      "wrapped_errors_keep_classification",
			err:       errors.Join(errors.New("context"), &scm.RemoteError{Repo: repo, Err: errors.New("reset")}),
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scm.IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}

			if got := scm.IsFatal(tt.err); got != tt.fatal {
				t.Errorf("IsFatal() = %v, want %v", got, tt.fatal)
			}
		})
	}
}
