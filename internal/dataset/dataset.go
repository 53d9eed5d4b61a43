// Package dataset bundles the gapminder country-year panel and loads
// it, or external CSV files of the same shape, into tables.
package dataset

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/nozaripo/Data-Wrangling/internal/table"
)

//go:embed gapminder.csv
var gapminderCSV []byte

// registry maps dataset names to bundled raw CSV bytes.
var registry = map[string][]byte{
	"gapminder": gapminderCSV,
}

// recordFields is the canonical panel schema, in column order.
var recordFields = [...]string{"country", "continent", "year", "population", "gdpPerCapita", "lifeExpectancy"}

// NotFoundError reports a request for a dataset that is not bundled.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dataset: unknown dataset %q", e.Name)
}

// Load returns the named bundled dataset as a table. The continent
// column is dictionary-encoded. Unknown names fail with NotFoundError.
func Load(name string) (*table.Table, error) {
	raw, ok := registry[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	start := time.Now()
	t, err := ReadCSV(bytes.NewReader(raw), "continent")
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	log.Printf("Load complete. Dataset: %s. Rows: %d. Time: %v", name, t.NumRows(), time.Since(start))
	return t, nil
}

// Names lists the bundled dataset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Record is one country-year observation.
type Record struct {
	Country        string  `json:"country"`
	Continent      string  `json:"continent"`
	Year           int64   `json:"year"`
	Population     int64   `json:"population"`
	GdpPerCapita   float64 `json:"gdpPerCapita"`
	LifeExpectancy float64 `json:"lifeExpectancy"`
}

// FromRecords builds a table over the canonical panel schema.
func FromRecords(recs []Record) *table.Table {
	n := len(recs)
	countries := make([]string, n)
	continents := make([]string, n)
	years := make([]int64, n)
	pops := make([]int64, n)
	gdps := make([]float64, n)
	lifes := make([]float64, n)
	for i, r := range recs {
		countries[i] = r.Country
		continents[i] = r.Continent
		years[i] = r.Year
		pops[i] = r.Population
		gdps[i] = r.GdpPerCapita
		lifes[i] = r.LifeExpectancy
	}
	t, err := table.New(
		table.NewString("country", countries),
		table.NewFactor("continent", continents),
		table.NewInt("year", years),
		table.NewInt("population", pops),
		table.NewFloat("gdpPerCapita", gdps),
		table.NewFloat("lifeExpectancy", lifes),
	)
	if err != nil {
		panic(err) // column lengths are equal by construction
	}
	return t
}

// Records converts a table back into record structs. The table must
// carry the full canonical schema.
func Records(t *table.Table) ([]Record, error) {
	for _, f := range recordFields {
		if !t.HasColumn(f) {
			return nil, &table.SchemaError{Op: "records", Field: f}
		}
	}
	recs := make([]Record, t.NumRows())
	for i := range recs {
		row := t.Row(i)
		recs[i] = Record{
			Country:        row.String("country"),
			Continent:      row.String("continent"),
			Year:           row.Int("year"),
			Population:     row.Int("population"),
			GdpPerCapita:   row.Float("gdpPerCapita"),
			LifeExpectancy: row.Float("lifeExpectancy"),
		}
	}
	return recs, nil
}
