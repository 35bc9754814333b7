package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"cn-data/internal/model"
	"cn-data/internal/provider"
)

// Snapshots holds the raw daily tables of both window ends.
type Snapshots struct {
	Start     *model.Table
	End       *model.Table
	StartDate time.Time
	EndDate   time.Time
	Fallback  bool                     // built by the per-security path
	Failed    []*provider.FetchFailure // securities dropped after retries
}

// Acquirer fetches the start and end snapshots: one bulk call per date,
// else every security one by one.
type Acquirer struct {
	DP            provider.DataProvider
	Policy        provider.RetryPolicy
	Pacer         *rate.Limiter // paces per-security calls; nil means unpaced
	ProgressEvery int
	Logger        *slog.Logger
}

// NewAcquirer returns an Acquirer with a pacer allowing rps per-security calls per second.
// A zero policy means provider.DefaultRetryPolicy.
func NewAcquirer(dp provider.DataProvider, policy provider.RetryPolicy, rps float64, logger *slog.Logger) *Acquirer {
	var pacer *rate.Limiter
	if rps > 0 {
		pacer = rate.NewLimiter(rate.Limit(rps), 1)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if policy.MaxAttempts == 0 {
		policy = provider.DefaultRetryPolicy
	}
	return &Acquirer{DP: dp, Policy: policy, Pacer: pacer, ProgressEvery: 200, Logger: logger}
}

// Snapshots fetches both snapshots. Both bulk calls share one guarded region:
// if either fails, both snapshots are rebuilt through the per-security path.
func (a *Acquirer) Snapshots(ctx context.Context, codes []string, start, end time.Time) (*Snapshots, error) {
	a.Logger.Info("trying bulk fetch", "start", model.FormatDate(start), "end", model.FormatDate(end))
	s, err := a.bulk(ctx, start, end)
	if err == nil {
		a.Logger.Info("bulk fetch ok", "start_rows", s.Start.Len(), "end_rows", s.End.Len())
		return s, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	a.Logger.Warn("bulk fetch failed, falling back to per-security fetch (slow)", "error", err, "securities", len(codes))

	s = &Snapshots{StartDate: start, EndDate: end, Fallback: true}
	if s.Start, err = a.perSecurity(ctx, codes, start, s); err != nil {
		return nil, err
	}
	if s.End, err = a.perSecurity(ctx, codes, end, s); err != nil {
		return nil, err
	}
	a.Logger.Info("per-security fetch done", "start_rows", s.Start.Len(), "end_rows", s.End.Len(), "dropped", len(s.Failed))
	return s, nil
}

func (a *Acquirer) bulk(ctx context.Context, start, end time.Time) (*Snapshots, error) {
	st, err := a.DP.DailySnapshot(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("bulk %s: %w", model.FormatDate(start), err)
	}
	en, err := a.DP.DailySnapshot(ctx, end)
	if err != nil {
		return nil, fmt.Errorf("bulk %s: %w", model.FormatDate(end), err)
	}
	return &Snapshots{Start: nonNil(st), End: nonNil(en), StartDate: start, EndDate: end}, nil
}

// perSecurity builds one snapshot sequentially. Exhausted securities are recorded in s.Failed.
func (a *Acquirer) perSecurity(ctx context.Context, codes []string, date time.Time, s *Snapshots) (*model.Table, error) {
	out := model.NewTable(model.DailyColumns...)
	prog := newProgress(model.FormatDate(date), len(codes), a.ProgressEvery, a.Logger)
	for _, code := range codes {
		if a.Pacer != nil {
			if err := a.Pacer.Wait(ctx); err != nil {
				return nil, err
			}
		}
		res, err := provider.FetchWithRetry(ctx, a.DP, code, date, a.Policy, a.Logger)
		if err != nil {
			return nil, err
		}
		if res.Failure != nil {
			a.Logger.Error("security dropped", "code", code, "date", model.FormatDate(date), "attempts", res.Attempts, "error", res.Failure.Last)
			s.Failed = append(s.Failed, res.Failure)
			prog.add(false)
			continue
		}
		out.Append(res.Rows)
		prog.add(true)
	}
	prog.done()
	return out, nil
}

func nonNil(t *model.Table) *model.Table {
	if t == nil {
		return model.NewTable(model.DailyColumns...)
	}
	return t
}
