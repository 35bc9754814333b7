package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cn-data/internal/model"
)

// RetryPolicy bounds the per-security fallback fetch.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration // pause between attempts
}

// DefaultRetryPolicy is 3 tries, 0.5s apart.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Backoff: 500 * time.Millisecond}

// Attempt is the outcome of one fetch attempt: exactly one of Rows and Err is set.
type Attempt struct {
	N    int
	Rows *model.Table
	Err  error
}

// OK reports whether the attempt succeeded.
func (a Attempt) OK() bool { return a.Err == nil }

// FetchFailure records a security whose every attempt failed.
type FetchFailure struct {
	Code     string
	Date     time.Time
	Attempts int
	Last     error
}

func (f *FetchFailure) Error() string {
	return fmt.Sprintf("fetch %s on %s: gave up after %d attempts: %v", f.Code, model.FormatDate(f.Date), f.Attempts, f.Last)
}

func (f *FetchFailure) Unwrap() error { return f.Last }

// FetchResult is the outcome of FetchWithRetry: Rows on success, Failure on exhaustion.
type FetchResult struct {
	Code     string
	Rows     *model.Table
	Failure  *FetchFailure
	Attempts int
}

// FetchWithRetry fetches one security's daily row, retrying per policy.
// Only context cancellation is returned as an error; provider failures end up in FetchResult.Failure.
func FetchWithRetry(ctx context.Context, dp DataProvider, code string, date time.Time, policy RetryPolicy, logger *slog.Logger) (FetchResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	max := policy.MaxAttempts
	if max < 1 {
		max = 1
	}

	var last Attempt
	for n := 1; n <= max; n++ {
		logger.Info("fetching daily", "code", code, "date", model.FormatDate(date), "attempt", n, "max", max)
		last = attempt(ctx, dp, code, date, n)
		if last.OK() {
			return FetchResult{Code: code, Rows: last.Rows, Attempts: n}, nil
		}
		if err := ctx.Err(); err != nil {
			return FetchResult{}, err
		}
		logger.Warn("fetch daily failed", "code", code, "attempt", n, "error", last.Err)
		if n < max {
			if err := sleepCtx(ctx, policy.Backoff); err != nil {
				return FetchResult{}, err
			}
		}
	}
	return FetchResult{
		Code:     code,
		Attempts: max,
		Failure:  &FetchFailure{Code: code, Date: date, Attempts: max, Last: last.Err},
	}, nil
}

func attempt(ctx context.Context, dp DataProvider, code string, date time.Time, n int) Attempt {
	rows, err := dp.DailyForSecurity(ctx, code, date)
	if err != nil {
		return Attempt{N: n, Err: err}
	}
	if rows == nil {
		rows = model.NewTable()
	}
	return Attempt{N: n, Rows: rows}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
