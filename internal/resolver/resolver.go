// Package resolver implements the search-convergence loop: repeatedly
// querying the file index for a named file until it appears or attempts
// are exhausted.
//
// Object stores index uploads asynchronously, so a file that was just
// uploaded can be invisible to search for a while. The resolver treats
// both "not visible yet" and a failed query as recoverable misses and
// applies the same fixed backoff to each; only exhaustion is terminal.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/tealrobotco/drivefetch/internal/common"
	"github.com/tealrobotco/drivefetch/internal/index"
	"github.com/tealrobotco/drivefetch/internal/logging"
)

// Policy bounds the retry loop: MaxAttempts searches with a fixed Delay
// between consecutive attempts. No jitter, no exponential growth. A loop
// that misses on every attempt performs exactly MaxAttempts queries and
// sleeps exactly MaxAttempts-1 times.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

func (p Policy) validate() error {
	if p.MaxAttempts < 1 {
		return common.ErrInvalidAttempts
	}
	return nil
}

// NotFoundError reports that the file never became visible within the
// attempt budget.
type NotFoundError struct {
	Name     string
	Attempts int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %q not found after %d attempt(s)", e.Name, e.Attempts)
}

// errNotVisible marks an empty search result inside the retry loop.
var errNotVisible = errors.New("file not visible in index yet")

type Resolver struct {
	index index.Index
	log   logging.Logger

	// diagnose enables a full container listing on each miss. Observability
	// only; it never affects the loop outcome.
	diagnose bool
}

func New(ix index.Index, log logging.Logger, diagnose bool) *Resolver {
	return &Resolver{index: ix, log: log, diagnose: diagnose}
}

// Resolve queries the index for q.Name until a match appears or the policy
// is exhausted. The first returned match wins; ordering among duplicates
// is whatever the remote produced. On exhaustion the error is a
// *NotFoundError carrying the name and attempt count; a cancelled context
// surfaces the context error instead.
func (r *Resolver) Resolve(ctx context.Context, q index.Query, p Policy) (index.Handle, error) {
	if err := p.validate(); err != nil {
		return index.Handle{}, err
	}

	delay := p.Delay
	if delay <= 0 {
		// go-retry requires a positive interval; a nanosecond is an
		// effective zero for a "no delay" policy.
		delay = time.Nanosecond
	}
	backoff := retry.WithMaxRetries(uint64(p.MaxAttempts-1), retry.NewConstant(delay))

	var handle index.Handle
	attempt := 0

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		r.log.Info(ctx, "searching for file", "name", q.Name, "attempt", attempt, "max_attempts", p.MaxAttempts)

		matches, err := r.index.Search(ctx, q)
		if err != nil {
			// A failed query is a recoverable miss, same as an empty
			// result: log it and let the backoff continue.
			r.log.Warn(ctx, "search attempt failed", "name", q.Name, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}

		if len(matches) == 0 {
			r.log.Info(ctx, "file not visible yet", "name", q.Name, "attempt", attempt)
			r.listContainer(ctx, q.ContainerID)
			return retry.RetryableError(errNotVisible)
		}

		handle = matches[0]
		r.log.Info(ctx, "file located", "name", handle.Name, "id", handle.ID, "size", handle.Size, "attempt", attempt)
		return nil
	})

	if err != nil {
		if ctx.Err() != nil {
			return index.Handle{}, ctx.Err()
		}
		return index.Handle{}, &NotFoundError{Name: q.Name, Attempts: attempt}
	}
	return handle, nil
}

// listContainer logs everything currently visible in the container to help
// debug indexing delays. Failures here are themselves only logged.
func (r *Resolver) listContainer(ctx context.Context, containerID string) {
	if !r.diagnose {
		return
	}

	handles, err := r.index.List(ctx, containerID)
	if err != nil {
		r.log.Debug(ctx, "container listing failed", "container", containerID, "error", err)
		return
	}

	r.log.Debug(ctx, "container contents", "container", containerID, "count", len(handles))
	for _, h := range handles {
		r.log.Debug(ctx, "container entry", "name", h.Name, "id", h.ID, "size", h.Size, "created", h.Created)
	}
}
