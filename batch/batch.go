/*
Package batch executes a task across a repository set with bounded
parallelism. Results land in a pre-sized slice so the caller-supplied
repository order is preserved regardless of worker completion order.

Cancellation stops new work from being admitted but lets in-flight tasks
finish; partially completed result sets are still returned.
*/
package batch

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/tiamat-cli/tiamat/config"
	"github.com/tiamat-cli/tiamat/scm"
)

// DefaultConcurrency caps parallel workers when no limit is configured,
// keeping bulk operations inside upstream rate limits.
const DefaultConcurrency = 4

// Task is an atomic unit of work on a single repository. A Task never
// panics on per-repository failure; it folds errors into its result value.
type Task[T any] func(ctx context.Context, repo scm.Repo) T

// Run executes task once per repository, at most limit at a time, and
// returns one result per repository in input order. When the context is
// cancelled, workers that have not yet been admitted still invoke the task
// with the cancelled context so that every result slot is filled; tasks
// built on remote calls fail fast in that case.
func Run[T any](ctx context.Context, repos []scm.Repo, limit int, task Task[T]) []T {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	sem := semaphore.NewWeighted(int64(limit))
	results := make([]T, len(repos))
	wg := new(sync.WaitGroup)

	for i := range repos {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			// Each worker owns exactly one result slot, so no further
			// synchronization is needed beyond the wait group.
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = task(ctx, repos[i])
				return
			}
			defer sem.Release(1)

			results[i] = task(ctx, repos[i])
		}(i)
	}

	wg.Wait()

	return results
}

// Concurrency returns the configured worker limit for bulk operations.
func Concurrency(ctx context.Context) int {
	limit := config.Viper(ctx).GetInt(config.MaxConcurrency)
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	return limit
}
