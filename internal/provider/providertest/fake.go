// Package providertest provides an in-memory provider.DataProvider for tests.
package providertest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cn-data/internal/model"
	"cn-data/internal/provider"
)

// ErrUnavailable is the failure injected by Fake.
var ErrUnavailable = errors.New("provider unavailable")

// Fake serves tables from memory and can be told to fail.
type Fake struct {
	mu sync.Mutex

	Calendar   *model.Table
	Securities *model.Table
	Daily      map[string]*model.Table // yyyymmdd → snapshot of all securities

	BulkErr      map[string]error // yyyymmdd → error returned by DailySnapshot
	CodeFailures map[string]int   // code → number of DailyForSecurity calls that fail before success

	Calls []string
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{
		Daily:        map[string]*model.Table{},
		BulkErr:      map[string]error{},
		CodeFailures: map[string]int{},
	}
}

// SetCloses stores a daily snapshot for date holding only ts_code, trade_date and close.
func (f *Fake) SetCloses(date time.Time, closes map[string]string, order ...string) {
	t := model.NewTable(model.DailyColumns...)
	d := model.FormatDate(date)
	if len(order) == 0 {
		for code := range closes {
			order = append(order, code)
		}
	}
	ci, di, cc := t.Index(model.ColCode), t.Index(model.ColTradeDate), t.Index(model.ColClose)
	for _, code := range order {
		row := make([]string, len(t.Columns))
		row[ci], row[di], row[cc] = code, d, closes[code]
		t.Rows = append(t.Rows, row)
	}
	f.mu.Lock()
	f.Daily[d] = t
	f.mu.Unlock()
}

func (f *Fake) record(call string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, call)
	f.mu.Unlock()
}

// CallCount returns how many calls start with prefix.
func (f *Fake) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *Fake) GetName() string { return "Fake" }

func (f *Fake) Close() error { return nil }

func (f *Fake) TradeCalendar(ctx context.Context) (*model.Table, error) {
	f.record("trade_cal")
	if f.Calendar == nil {
		return nil, f.wrap("trade_cal", ErrUnavailable)
	}
	return f.Calendar.Clone(), nil
}

func (f *Fake) SecurityList(ctx context.Context) (*model.Table, error) {
	f.record("stock_basic")
	if f.Securities == nil {
		return nil, f.wrap("stock_basic", ErrUnavailable)
	}
	return f.Securities.Clone(), nil
}

func (f *Fake) DailySnapshot(ctx context.Context, date time.Time) (*model.Table, error) {
	d := model.FormatDate(date)
	f.record("daily " + d)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.BulkErr[d]; err != nil {
		return nil, f.wrap("daily", err)
	}
	t, ok := f.Daily[d]
	if !ok {
		return model.NewTable(model.DailyColumns...), nil
	}
	return t.Clone(), nil
}

func (f *Fake) DailyForSecurity(ctx context.Context, code string, date time.Time) (*model.Table, error) {
	d := model.FormatDate(date)
	f.record(fmt.Sprintf("daily %s %s", d, code))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CodeFailures[code] != 0 {
		if f.CodeFailures[code] > 0 {
			f.CodeFailures[code]--
		}
		return nil, f.wrap("daily", ErrUnavailable)
	}
	out := model.NewTable(model.DailyColumns...)
	t, ok := f.Daily[d]
	if !ok {
		return out, nil
	}
	idx := t.Index(model.ColCode)
	for _, row := range t.Rows {
		if row[idx] == code {
			out.Rows = append(out.Rows, append([]string(nil), row...))
		}
	}
	return out, nil
}

func (f *Fake) wrap(api string, err error) error {
	return &provider.ProviderError{Provider: f.GetName(), API: api, Err: err}
}

var _ provider.DataProvider = (*Fake)(nil)
