package crawl

import "log/slog"

// progress logs a heartbeat every n securities during the slow path.
type progress struct {
	date            string
	total, every    int
	ok, failed, cur int
	logger          *slog.Logger
}

func newProgress(date string, total, every int, logger *slog.Logger) *progress {
	return &progress{date: date, total: total, every: every, logger: logger}
}

func (p *progress) add(ok bool) {
	p.cur++
	if ok {
		p.ok++
	} else {
		p.failed++
	}
	if p.every > 0 && p.cur%p.every == 0 && p.cur < p.total {
		p.logger.Info("heartbeat", "date", p.date, "done", p.cur, "total", p.total, "ok", p.ok, "failed", p.failed)
	}
}

func (p *progress) done() {
	p.logger.Info("snapshot fetched", "date", p.date, "total", p.total, "ok", p.ok, "failed", p.failed)
}
