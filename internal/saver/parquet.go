package saver

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"cn-data/internal/model"
)

// ParquetSaver lưu table dưới dạng Parquet, mọi cột là string (optional).
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(t *model.Table, path string) error {
	group := parquet.Group{}
	for _, c := range t.Columns {
		group[c] = parquet.Optional(parquet.String())
	}
	schema := parquet.NewSchema("table", group)

	// Leaf columns of a group are ordered by name, not by table order.
	fields := schema.Fields()
	src := make([]int, len(fields))
	for i, f := range fields {
		src[i] = t.Index(f.Name())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := parquet.NewWriter(f, schema)
	rows := make([]parquet.Row, 0, len(t.Rows))
	for _, rec := range t.Rows {
		row := make(parquet.Row, len(fields))
		for i, j := range src {
			v := ""
			if j >= 0 && j < len(rec) {
				v = rec[j]
			}
			row[i] = parquet.ByteArrayValue([]byte(v)).Level(0, 1, i)
		}
		rows = append(rows, row)
	}
	if _, err := w.WriteRows(rows); err != nil {
		w.Close()
		f.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close writer: %w", err)
	}
	return f.Close()
}

func (ParquetSaver) Load(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	r := parquet.NewReader(pf)
	defer r.Close()
	fields := pf.Schema().Fields()
	cols := make([]string, len(fields))
	for i, fl := range fields {
		cols[i] = fl.Name()
	}
	t := model.NewTable(cols...)

	buf := make([]parquet.Row, 128)
	for {
		n, err := r.ReadRows(buf)
		for _, row := range buf[:n] {
			rec := make([]string, len(cols))
			for _, v := range row {
				if c := v.Column(); c >= 0 && c < len(rec) && !v.IsNull() {
					rec[c] = string(v.ByteArray())
				}
			}
			t.Rows = append(t.Rows, rec)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read rows: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return t, nil
}
