package window

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"cn-data/internal/crawl"
	"cn-data/internal/model"
	"cn-data/internal/saver"
)

// Names of the persisted artifacts in the result store.
const (
	StartSnapshotName = "start_df"
	EndSnapshotName   = "end_df"
	JoinedName        = "result_df_cache"
	ResultName        = "result_df"
)

// Result is the outcome of one window computation.
type Result struct {
	Start, End time.Time
	Joined     []model.WindowRow // every security present on both dates
	Rows       []model.WindowRow // filtered, most negative rate first
	Path       string            // where Rows was persisted
	Snapshots  *crawl.Snapshots
}

// Engine computes close-to-close changes over a window and keeps the decliners.
type Engine struct {
	Acquirer  *crawl.Acquirer
	Results   *saver.Store
	Threshold decimal.Decimal
	Logger    *slog.Logger
}

// NewEngine returns an Engine writing its artifacts to results.
func NewEngine(a *crawl.Acquirer, results *saver.Store, threshold decimal.Decimal, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{Acquirer: a, Results: results, Threshold: threshold, Logger: logger}
}

// Compute fetches both snapshots of codes, persists every intermediate table and
// returns the securities whose rate is at or below the threshold.
func (e *Engine) Compute(ctx context.Context, codes []string, start, end time.Time) (*Result, error) {
	snaps, err := e.Acquirer.Snapshots(ctx, codes, start, end)
	if err != nil {
		return nil, fmt.Errorf("acquire snapshots: %w", err)
	}
	if _, err := e.Results.Write(StartSnapshotName, snaps.Start); err != nil {
		return nil, err
	}
	if _, err := e.Results.Write(EndSnapshotName, snaps.End); err != nil {
		return nil, err
	}

	startCloses, err := e.closesOn(StartSnapshotName, snaps.Start, start)
	if err != nil {
		return nil, err
	}
	endCloses, err := e.closesOn(EndSnapshotName, snaps.End, end)
	if err != nil {
		return nil, err
	}

	joined := Join(startCloses, endCloses)
	if _, err := e.Results.Write(JoinedName, model.WindowRowsToTable(joined, start, end)); err != nil {
		return nil, err
	}

	rows := Filter(joined, e.Threshold)
	path, err := e.Results.Write(ResultName, model.WindowRowsToTable(rows, start, end))
	if err != nil {
		return nil, err
	}
	e.Logger.Info("window computed",
		"start", model.FormatDate(start),
		"end", model.FormatDate(end),
		"joined", len(joined),
		"matched", len(rows),
		"threshold", e.Threshold.String(),
	)
	return &Result{Start: start, End: end, Joined: joined, Rows: rows, Path: path, Snapshots: snaps}, nil
}

// closesOn decodes snapshot name and keeps the closes traded on date.
// Rows stamped with another trade_date are dropped with a warning; rows without one are kept.
func (e *Engine) closesOn(name string, t *model.Table, date time.Time) ([]model.ClosePrice, error) {
	prices, skipped, err := model.DailyPricesFromTable(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if skipped > 0 {
		e.Logger.Warn("undecodable rows skipped", "snapshot", name, "rows", skipped)
	}
	closes := make([]model.ClosePrice, 0, len(prices))
	wrong := 0
	for _, p := range prices {
		if !p.TradeDate.IsZero() && !p.TradeDate.Equal(model.DateOf(date)) {
			wrong++
			continue
		}
		closes = append(closes, model.ClosePrice{Code: p.Code, Close: p.Close})
	}
	if wrong > 0 {
		e.Logger.Warn("rows from another trade date dropped", "snapshot", name, "want", model.FormatDate(date), "rows", wrong)
	}
	return closes, nil
}
