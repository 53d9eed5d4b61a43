package api

import (
	"github.com/nozaripo/Data-Wrangling/internal/dataset"
	"github.com/nozaripo/Data-Wrangling/internal/table"
)

// DatasetInfo summarizes the loaded panel.
type DatasetInfo struct {
	Name       string        `json:"name"`
	Rows       int           `json:"rows"`
	Columns    []table.Field `json:"columns"`
	Continents []string      `json:"continents,omitempty"`
	YearMin    int64         `json:"yearMin,omitempty"`
	YearMax    int64         `json:"yearMax,omitempty"`
}

// RecordsResponse is one page of panel records.
type RecordsResponse struct {
	Data   []dataset.Record `json:"data"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// TableResponse is a query result in row form.
type TableResponse struct {
	Columns  []table.Field    `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"rowCount"`
}

// FigureInfo names one walkthrough step exposed under /api/figures.
type FigureInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

func tableResponse(t *table.Table) TableResponse {
	names := t.Names()
	rows := make([]map[string]any, t.NumRows())
	for i := range rows {
		row := t.Row(i)
		m := make(map[string]any, len(names))
		for _, name := range names {
			m[name] = row.Value(name)
		}
		rows[i] = m
	}
	return TableResponse{Columns: t.Schema(), Rows: rows, RowCount: t.NumRows()}
}
