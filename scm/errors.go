package scm

import (
	"errors"
	"fmt"
	"time"
)

// AuthError indicates an invalid or expired token. It is fatal: a bulk
// run cancels its remaining repositories as soon as one reports it, and
// the command exits with the auth error rather than a per-repo count.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RepoNotFoundError indicates the repository does not exist or is not
// visible with the configured token.
type RepoNotFoundError struct {
	Repo Repo
}

func (e *RepoNotFoundError) Error() string {
	return fmt.Sprintf("repository %s not found", e.Repo)
}

// BranchNotFoundError indicates a comparison ref did not resolve.
type BranchNotFoundError struct {
	Repo Repo
	Ref  string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %q not found in %s", e.Ref, e.Repo)
}

// RateLimitError indicates the API rate limit was hit. Retryable after
// ResetAfter elapses.
type RateLimitError struct {
	Repo       Repo
	ResetAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited on %s (resets in %s)", e.Repo, e.ResetAfter)
}

// DuplicateTagError indicates a release tag already exists. Releases are
// append-only and are never overwritten.
type DuplicateTagError struct {
	Repo Repo
	Tag  string
}

func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("tag %q already exists in %s", e.Tag, e.Repo)
}

// RemoteError indicates a transient transport failure (5xx, timeout,
// connection reset). Retryable.
type RemoteError struct {
	Repo Repo
	Err  error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error on %s: %v", e.Repo, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// VersionParseError indicates a tag that does not follow the semantic
// version grammar. Resolution skips these silently.
type VersionParseError struct {
	Tag string
	Err error
}

func (e *VersionParseError) Error() string {
	return fmt.Sprintf("tag %q is not a semantic version: %v", e.Tag, e.Err)
}

func (e *VersionParseError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a transient failure worth retrying.
// Only rate limits and remote transport failures qualify; 4xx-class errors
// are terminal.
func IsRetryable(err error) bool {
	var rateErr *RateLimitError
	var remoteErr *RemoteError

	return errors.As(err, &rateErr) || errors.As(err, &remoteErr)
}

// IsFatal reports whether err should abort an entire command rather than
// be recorded against a single repository.
func IsFatal(err error) bool {
	var authErr *AuthError

	return errors.As(err, &authErr)
}
