package calendar

import (
	"fmt"
	"sort"
	"time"

	"cn-data/internal/model"
)

// Calendar is an immutable trading calendar ordered by date, newest first.
type Calendar struct {
	days []model.TradeDay
	pos  map[time.Time]int
}

// New builds a Calendar from days in any order. Dates must be unique.
func New(days []model.TradeDay) (*Calendar, error) {
	sorted := make([]model.TradeDay, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	pos := make(map[time.Time]int, len(sorted))
	for i, d := range sorted {
		key := model.DateOf(d.Date)
		if _, dup := pos[key]; dup {
			return nil, fmt.Errorf("duplicate calendar date %s", model.FormatDate(key))
		}
		pos[key] = i
	}
	return &Calendar{days: sorted, pos: pos}, nil
}

// FromTable decodes a trade_cal table into a Calendar.
func FromTable(t *model.Table) (*Calendar, error) {
	days, err := model.TradeDaysFromTable(t)
	if err != nil {
		return nil, err
	}
	return New(days)
}

// Len returns the number of calendar rows.
func (c *Calendar) Len() int { return len(c.days) }

// PositionOf returns the row of date, 0 being the newest.
func (c *Calendar) PositionOf(date time.Time) (int, bool) {
	p, ok := c.pos[model.DateOf(date)]
	return p, ok
}

// At returns the entry at pos.
func (c *Calendar) At(pos int) (model.TradeDay, bool) {
	if pos < 0 || pos >= len(c.days) {
		return model.TradeDay{}, false
	}
	return c.days[pos], true
}

// DateAt returns the calendar date at pos.
func (c *Calendar) DateAt(pos int) (time.Time, bool) {
	d, ok := c.At(pos)
	return d.Date, ok
}

// Entry returns the entry for date.
func (c *Calendar) Entry(date time.Time) (model.TradeDay, bool) {
	p, ok := c.PositionOf(date)
	if !ok {
		return model.TradeDay{}, false
	}
	return c.days[p], true
}
