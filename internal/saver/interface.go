package saver

import (
	"strings"

	"cn-data/internal/model"
)

// TableSaver là abstraction cho đọc/ghi một table ra file.
// High-level (app) inject implementation; low-level (store) chỉ phụ thuộc interface.
type TableSaver interface {
	Save(t *model.Table, path string) error
	Load(path string) (*model.Table, error)
	Extension() string
}

// NewTableSaver creates implementation by format (csv, json, parquet, xlsx).
// Returns nil if format not supported.
func NewTableSaver(format string) TableSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "json":
		return JSONSaver{}
	case "parquet":
		return ParquetSaver{}
	case "xlsx":
		return XLSXSaver{}
	default:
		return nil
	}
}
