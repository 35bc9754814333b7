package crawl

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cn-data/internal/model"
)

// FailedReportName is the file listing securities dropped by the last run.
const FailedReportName = ".lastrun.failed.json"

type failedEntry struct {
	Code     string `json:"ts_code"`
	Date     string `json:"date"`
	Attempts int    `json:"attempts"`
	Reason   string `json:"reason"`
}

type runReport struct {
	RunID    string        `json:"run_id"`
	At       time.Time     `json:"at"`
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Fallback bool          `json:"fallback"`
	Failed   []failedEntry `json:"failed"`
}

// WriteRunReport writes the dropped securities of s under dir.
// Nothing is written when no security was dropped; a stale report is removed.
func WriteRunReport(dir, runID string, s *Snapshots) (string, error) {
	p := filepath.Join(dir, FailedReportName)
	if len(s.Failed) == 0 {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return "", err
		}
		return "", nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	r := runReport{
		RunID:    runID,
		At:       time.Now().UTC(),
		Start:    model.FormatDate(s.StartDate),
		End:      model.FormatDate(s.EndDate),
		Fallback: s.Fallback,
		Failed:   make([]failedEntry, len(s.Failed)),
	}
	for i, f := range s.Failed {
		r.Failed[i] = failedEntry{Code: f.Code, Date: model.FormatDate(f.Date), Attempts: f.Attempts, Reason: f.Last.Error()}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", err
	}
	slog.Info("report wrote failed", "path", p, "count", len(s.Failed), "reasons", joinFailedReasons(r.Failed))
	return p, nil
}

func joinFailedReasons(failed []failedEntry) string {
	if len(failed) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range failed {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Code)
		b.WriteString(": ")
		b.WriteString(f.Reason)
		if i >= 4 && len(failed) > 6 {
			b.WriteString(fmt.Sprintf(" (+%d more)", len(failed)-5))
			break
		}
	}
	return b.String()
}
