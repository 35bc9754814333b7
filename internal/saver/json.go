package saver

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/pretty"

	"cn-data/internal/model"
)

// JSONSaver lưu table dưới dạng JSON: {"columns": [...], "rows": [[...], ...]}.
type JSONSaver struct{}

type jsonTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(t *model.Table, path string) error {
	rows := t.Rows
	if rows == nil {
		rows = [][]string{}
	}
	data, err := json.Marshal(jsonTable{Columns: t.Columns, Rows: rows})
	if err != nil {
		return err
	}
	return os.WriteFile(path, pretty.Pretty(data), 0644)
}

func (JSONSaver) Load(path string) (*model.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var jt jsonTable
	if err := json.Unmarshal(data, &jt); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	t := model.NewTable(jt.Columns...)
	for i, row := range jt.Rows {
		if err := t.AddRow(row...); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return t, nil
}
