package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// RetryPolicy bounds the transparent retries applied to connectivity
// failures. Non-connectivity errors are never retried.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: 500 * time.Millisecond}
}

// isConnectivity classifies an error as a transient connection failure.
// A *pgconn.PgError means the server received and rejected the statement
// (constraint violation, bad SQL), so it is not retryable; the same goes
// for sql.ErrNoRows and context cancellation. Everything else is treated
// as the connection having gone away.
func isConnectivity(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// withRetry runs fn up to p.MaxAttempts times. Only connectivity errors
// trigger another attempt; database/sql discards broken connections on
// error, so a retried call gets a fresh one from the pool. The last
// error is propagated once attempts are exhausted.
func withRetry(ctx context.Context, p RetryPolicy, op string, fn func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(ctx)
		if err == nil || !isConnectivity(err) {
			return err
		}
		slog.WarnContext(ctx, "Database connection error",
			"op", op, "attempt", attempt, "max_attempts", attempts, "error", err)
		if attempt == attempts {
			break
		}
		if p.Backoff > 0 {
			select {
			case <-time.After(p.Backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}
