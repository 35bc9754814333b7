package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"cn-data/internal/calendar"
	"cn-data/internal/crawl"
	"cn-data/internal/model"
	"cn-data/internal/provider"
	"cn-data/internal/saver"
	"cn-data/internal/window"
)

// Names of the reference tables in the data store.
const (
	TradeCalName   = "trade_cal"
	StockBasicName = "stock_basic"
)

// App holds application dependencies built by Wire.
type App struct {
	Config   *Config
	Logger   *slog.Logger
	DP       provider.DataProvider
	Data     *saver.Store
	Resolver *calendar.Resolver
	Engine   *window.Engine
}

// Run executes one screening: bootstrap → load → resolve → compute.
func (a *App) Run(ctx context.Context) (*window.Result, error) {
	runID := uuid.NewString()
	log := a.Logger.With("run_id", runID)
	log.Info("using data provider", "provider", a.DP.GetName())

	if err := Bootstrap(ctx, a.DP, a.Data, log); err != nil {
		return nil, err
	}
	cal, codes, err := LoadReference(a.Data)
	if err != nil {
		return nil, err
	}
	log.Info("reference loaded", "calendar_rows", cal.Len(), "securities", len(codes))

	now := time.Now()
	if a.Resolver.Now != nil {
		now = a.Resolver.Now()
	}
	nominal, err := a.Config.NominalEndDate(now)
	if err != nil {
		return nil, err
	}
	w, err := a.Resolver.Resolve(cal, nominal, a.Config.SessionOffset)
	if err != nil {
		return nil, fmt.Errorf("resolve window: %w", err)
	}
	log.Info("window resolved",
		"nominal", model.FormatDate(w.Nominal),
		"end", model.FormatDate(w.End),
		"start", model.FormatDate(w.Start),
		"sessions", w.Sessions,
		"corrected", w.Corrected,
	)

	res, err := a.Engine.Compute(ctx, codes, w.Start, w.End)
	if err != nil {
		return nil, err
	}
	if _, err := crawl.WriteRunReport(a.Config.ResultDir, runID, res.Snapshots); err != nil {
		log.Warn("could not write run report", "error", err)
	}
	log.Info("done, results saved", "path", res.Path, "rows", len(res.Rows))
	return res, nil
}

// Bootstrap fetches and saves each reference table that is not on disk yet.
// Existing tables are never refreshed.
func Bootstrap(ctx context.Context, dp provider.DataProvider, data *saver.Store, log *slog.Logger) error {
	refs := []struct {
		name  string
		fetch func(context.Context) (*model.Table, error)
	}{
		{TradeCalName, dp.TradeCalendar},
		{StockBasicName, dp.SecurityList},
	}
	for _, ref := range refs {
		if data.Exists(ref.name) {
			log.Info("reference table found, skip fetch", "table", ref.name, "path", data.Path(ref.name))
			continue
		}
		log.Info("fetching reference table", "table", ref.name)
		t, err := ref.fetch(ctx)
		if err != nil {
			return fmt.Errorf("bootstrap %s: %w", ref.name, err)
		}
		p, err := data.Write(ref.name, t)
		if err != nil {
			return fmt.Errorf("bootstrap %s: %w", ref.name, err)
		}
		log.Info("reference table saved", "table", ref.name, "path", p, "rows", t.Len())
	}
	return nil
}

// LoadReference reads the calendar (newest first) and the security codes.
func LoadReference(data *saver.Store) (*calendar.Calendar, []string, error) {
	calTable, err := data.Read(TradeCalName, saver.ReadOptions{
		DateColumns: []string{model.ColCalDate, model.ColPretradeDate},
		SortDescBy:  model.ColCalDate,
	})
	if err != nil {
		return nil, nil, err
	}
	cal, err := calendar.FromTable(calTable)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", TradeCalName, err)
	}

	secTable, err := data.Read(StockBasicName, saver.ReadOptions{})
	if err != nil {
		return nil, nil, err
	}
	secs, err := model.SecuritiesFromTable(secTable)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", StockBasicName, err)
	}
	return cal, model.Codes(secs), nil
}
