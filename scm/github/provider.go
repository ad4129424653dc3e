// Package github implements the scm.Provider interface against the GitHub
// REST API. All responses are converted into the typed entities of the scm
// package at this boundary; nothing above it branches on raw payloads.
package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/go-github/v74/github"

	"github.com/tiamat-cli/tiamat/config"
	"github.com/tiamat-cli/tiamat/scm"
)

func init() {
	// Register the GitHub provider factory
	scm.Register("github", New)
}

func New(ctx context.Context) scm.Provider {
	v := config.Viper(ctx)

	return &Github{
		// TODO: Add support for enterprise GitHub instances (currently SaaS only)
		client:        github.NewClient(http.DefaultClient).WithAuthToken(v.GetString(config.AuthToken)),
		retryAttempts: v.GetInt(config.RetryAttempts),
		retryWait:     v.GetDuration(config.RetryWait),
	}
}

type Github struct {
	client        *github.Client
	retryAttempts int
	retryWait     time.Duration
}

// withRetry executes fn, retrying transient failures (rate limit, 5xx,
// transport) with exponential backoff up to the configured attempt count.
// Terminal 4xx-class errors are surfaced immediately.
func (g *Github) withRetry(ctx context.Context, fn func() error) error {
	wait := g.retryWait
	if wait <= 0 {
		wait = time.Second
	}

	var err error

	for attempt := 0; ; attempt++ {
		if err = fn(); err == nil || attempt >= g.retryAttempts || !scm.IsRetryable(err) {
			return err
		}

		// Honor the rate-limit reset when it exceeds the backoff interval
		var rateErr *scm.RateLimitError
		if errors.As(err, &rateErr) && rateErr.ResetAfter > wait {
			wait = rateErr.ResetAfter
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(wait):
		}

		wait *= 2
	}
}

// mapError converts go-github errors into the typed taxonomy. When refs are
// provided, a 404 is attributed to an unresolved ref rather than a missing
// repository.
func (g *Github) mapError(repo scm.Repo, resp *github.Response, err error, refs ...string) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &scm.RateLimitError{Repo: repo, ResetAfter: time.Until(rateErr.Rate.Reset.Time)}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &scm.RateLimitError{Repo: repo, ResetAfter: abuseErr.GetRetryAfter()}
	}

	if resp == nil {
		// transport-level failure (network, timeout, connection reset)
		return &scm.RemoteError{Repo: repo, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &scm.AuthError{Err: err}
	case resp.StatusCode == http.StatusNotFound:
		if len(refs) > 0 {
			return &scm.BranchNotFoundError{Repo: repo, Ref: refs[0]}
		}

		return &scm.RepoNotFoundError{Repo: repo}
	case resp.StatusCode >= http.StatusInternalServerError:
		return &scm.RemoteError{Repo: repo, Err: err}
	}

	return err
}
