package calendar

import (
	"time"

	"cn-data/internal/model"
)

// DefaultCutoffHour is the local hour (exchange time) after which the day's close is final.
const DefaultCutoffHour = 15

// Window is the resolved observation window.
type Window struct {
	Nominal   time.Time // requested end date
	End       time.Time // effective end date
	Start     time.Time
	Sessions  int
	Corrected bool // End != Nominal
}

// Resolver maps a nominal end date to an effective window.
type Resolver struct {
	CutoffHour int
	Location   *time.Location
	Now        func() time.Time

	// CountEffectiveEnd makes a corrected effective end date count as the
	// first of the stepped sessions. Off by default.
	CountEffectiveEnd bool
}

// NewResolver returns a Resolver using the wall clock.
func NewResolver(cutoffHour int, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{CutoffHour: cutoffHour, Location: loc, Now: time.Now}
}

func (r *Resolver) now() time.Time {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// Resolve computes the effective end date of nominal and the start date sessions open days before it.
func (r *Resolver) Resolve(cal *Calendar, nominal time.Time, sessions int) (Window, error) {
	if sessions < 0 {
		return Window{}, ErrNegativeSessions
	}
	nominal = model.DateOf(nominal)
	end, err := r.EffectiveEnd(cal, nominal)
	if err != nil {
		return Window{}, err
	}
	origin, ok := cal.PositionOf(end)
	if !ok {
		return Window{}, &DateNotFoundError{Date: end}
	}
	corrected := !end.Equal(nominal)
	pos, err := Walk(cal, origin, sessions, correctionOffset(corrected, r.CountEffectiveEnd))
	if err != nil {
		return Window{}, err
	}
	start, _ := cal.DateAt(pos)
	return Window{
		Nominal:   nominal,
		End:       end,
		Start:     model.DateOf(start),
		Sessions:  sessions,
		Corrected: corrected,
	}, nil
}

// EffectiveEnd returns nominal when it is an open day whose close is already final,
// otherwise the previous trade date recorded on its calendar entry.
func (r *Resolver) EffectiveEnd(cal *Calendar, nominal time.Time) (time.Time, error) {
	entry, ok := cal.Entry(nominal)
	if !ok {
		return time.Time{}, &DateNotFoundError{Date: model.DateOf(nominal)}
	}
	if entry.IsOpen && r.now().Hour() >= r.CutoffHour {
		return model.DateOf(entry.Date), nil
	}
	if entry.PrevTradeDate.IsZero() {
		return time.Time{}, &DateNotFoundError{Date: model.DateOf(nominal)}
	}
	return model.DateOf(entry.PrevTradeDate), nil
}

// correctionOffset is where the walk offset starts. With countEffectiveEnd a corrected
// end date is visited by the walk itself and so consumes one session.
func correctionOffset(corrected, countEffectiveEnd bool) int {
	if corrected && countEffectiveEnd {
		return -1
	}
	return 0
}

// Walk steps from origin towards older rows until sessions open days have been visited
// and returns the final position. The offset starts at correction and is incremented
// before each visit. With zero sessions the origin is returned.
func Walk(cal *Calendar, origin, sessions, correction int) (int, error) {
	if sessions == 0 {
		// Zero sessions is the origin itself, corrected or not.
		if _, ok := cal.At(origin); !ok {
			return 0, &InsufficientRangeError{Rows: cal.Len()}
		}
		return origin, nil
	}
	offset := correction
	remaining := sessions
	consumed := 0
	for remaining > 0 {
		offset++
		day, ok := cal.At(origin + offset)
		if !ok {
			return 0, &InsufficientRangeError{Needed: sessions, Consumed: consumed, Rows: cal.Len()}
		}
		if day.IsOpen {
			remaining--
			consumed++
		}
	}
	if _, ok := cal.At(origin + offset); !ok {
		return 0, &InsufficientRangeError{Needed: sessions, Consumed: consumed, Rows: cal.Len()}
	}
	return origin + offset, nil
}
