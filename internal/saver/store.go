package saver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"cn-data/internal/model"
)

// ReadOptions describes the cleaning applied when a table is read back.
// Duplicate rows are always dropped.
type ReadOptions struct {
	DateColumns []string // each must parse with DateLayout
	DateLayout  string   // defaults to model.DateLayout
	SortDescBy  string   // date column to sort by, newest first; empty keeps file order
}

// Store reads and writes named tables under one directory.
// The file name is {name}.{ext}, ext chosen by the Saver.
type Store struct {
	Dir   string
	Saver TableSaver
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string, s TableSaver) *Store {
	return &Store{Dir: dir, Saver: s}
}

// Path returns the file path of table name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name+"."+s.Saver.Extension())
}

// Exists reports whether table name has been written.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Write persists t as name, overwriting any previous file, and returns the path.
func (s *Store) Write(name string, t *model.Table) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create dir %s: %w", s.Dir, err)
	}
	p := s.Path(name)
	if err := s.Saver.Save(t, p); err != nil {
		return "", fmt.Errorf("save %s: %w", p, err)
	}
	return p, nil
}

// Read loads table name and applies opts.
func (s *Store) Read(name string, opts ReadOptions) (*model.Table, error) {
	p := s.Path(name)
	t, err := s.Saver.Load(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("table %s not found at %s: %w", name, p, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p, err)
	}
	return Clean(t, opts)
}

// Clean de-duplicates t, validates its date columns and optionally sorts it.
func Clean(t *model.Table, opts ReadOptions) (*model.Table, error) {
	out := t.Dedup()
	layout := opts.DateLayout
	if layout == "" {
		layout = model.DateLayout
	}

	for _, col := range opts.DateColumns {
		idx := out.Index(col)
		if idx < 0 {
			return nil, fmt.Errorf("date column %q not found", col)
		}
		for i, row := range out.Rows {
			if v := row[idx]; v != "" {
				if _, err := time.Parse(layout, v); err != nil {
					return nil, fmt.Errorf("row %d: column %s: %w", i, col, err)
				}
			}
		}
	}

	if opts.SortDescBy == "" {
		return out, nil
	}
	idx := out.Index(opts.SortDescBy)
	if idx < 0 {
		return nil, fmt.Errorf("sort column %q not found", opts.SortDescBy)
	}
	keys := make([]time.Time, len(out.Rows))
	for i, row := range out.Rows {
		d, err := time.Parse(layout, row[idx])
		if err != nil {
			return nil, fmt.Errorf("row %d: sort column %s: %w", i, opts.SortDescBy, err)
		}
		keys[i] = d
	}
	order := make([]int, len(out.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return keys[order[a]].After(keys[order[b]]) })
	rows := make([][]string, len(order))
	for i, j := range order {
		rows[i] = out.Rows[j]
	}
	out.Rows = rows
	return out, nil
}
