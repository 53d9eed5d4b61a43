package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nozaripo/Data-Wrangling/internal/table"
)

// ReadCSV parses a header-driven CSV stream into a table. Column kinds
// are sniffed from the cell values: all-integer columns become Int,
// other all-numeric columns become Float, everything else String.
// Columns named in factorFields are dictionary-encoded instead of
// stored as plain strings.
func ReadCSV(r io.Reader, factorFields ...string) (*table.Table, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset: csv has no header row")
	}
	header := rows[0]
	body := rows[1:]

	asFactor := make(map[string]bool, len(factorFields))
	for _, f := range factorFields {
		asFactor[f] = true
	}

	cols := make([]*table.Column, len(header))
	cells := make([]string, len(body))
	for j, name := range header {
		for i, row := range body {
			cells[i] = row[j]
		}
		switch sniffKind(cells) {
		case table.KindInt:
			vals := make([]int64, len(cells))
			for i, s := range cells {
				vals[i], _ = strconv.ParseInt(s, 10, 64)
			}
			cols[j] = table.NewInt(name, vals)
		case table.KindFloat:
			vals := make([]float64, len(cells))
			for i, s := range cells {
				vals[i], _ = strconv.ParseFloat(s, 64)
			}
			cols[j] = table.NewFloat(name, vals)
		default:
			vals := make([]string, len(cells))
			copy(vals, cells)
			if asFactor[name] {
				cols[j] = table.NewFactor(name, vals)
			} else {
				cols[j] = table.NewString(name, vals)
			}
		}
	}
	return table.New(cols...)
}

// ReadCSVFile reads a CSV file from disk. See ReadCSV.
func ReadCSVFile(path string, factorFields ...string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, factorFields...)
}

func sniffKind(cells []string) table.Kind {
	if len(cells) == 0 {
		return table.KindString
	}
	isInt := true
	for _, s := range cells {
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			isInt = false
			break
		}
	}
	if isInt {
		return table.KindInt
	}
	for _, s := range cells {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return table.KindString
		}
	}
	return table.KindFloat
}
