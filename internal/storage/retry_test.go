package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsConnectivity(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"server error", &pgconn.PgError{Code: "23505"}, false},
		{"wrapped server error", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "42601"}), false},
		{"no rows", sql.ErrNoRows, false},
		{"context canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"broken pipe", io.ErrUnexpectedEOF, true},
		{"generic network", errors.New("connection refused"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isConnectivity(tc.err); got != tc.want {
				t.Errorf("isConnectivity(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), RetryPolicy{MaxAttempts: 3}, "test",
		func(context.Context) error {
			calls++
			return errors.New("connection reset")
		})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 3 {
		t.Errorf("got %d attempts, want 3", calls)
	}
}

func TestWithRetryRecoversMidway(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), RetryPolicy{MaxAttempts: 3}, "test",
		func(context.Context) error {
			calls++
			if calls < 2 {
				return errors.New("connection reset")
			}
			return nil
		})
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if calls != 2 {
		t.Errorf("got %d attempts, want 2", calls)
	}
}

func TestWithRetryDoesNotRetryServerErrors(t *testing.T) {
	calls := 0
	pgErr := &pgconn.PgError{Code: "23505"}
	err := withRetry(context.Background(), RetryPolicy{MaxAttempts: 3}, "test",
		func(context.Context) error {
			calls++
			return pgErr
		})
	if !errors.As(err, new(*pgconn.PgError)) {
		t.Fatalf("expected the pg error back, got %v", err)
	}
	if calls != 1 {
		t.Errorf("server error was retried: %d calls", calls)
	}
}

func TestWithRetryMinimumOneAttempt(t *testing.T) {
	calls := 0
	_ = withRetry(context.Background(), RetryPolicy{MaxAttempts: 0}, "test",
		func(context.Context) error {
			calls++
			return nil
		})
	if calls != 1 {
		t.Errorf("got %d attempts, want 1", calls)
	}
}
