// Command wrangle runs the gapminder walkthrough from the terminal: it
// loads a dataset, executes the analysis steps in order, prints each
// result table and writes figure artifacts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nozaripo/Data-Wrangling/internal/analysis"
	"github.com/nozaripo/Data-Wrangling/internal/arrowio"
	"github.com/nozaripo/Data-Wrangling/internal/chart"
	"github.com/nozaripo/Data-Wrangling/internal/dataset"
	"github.com/nozaripo/Data-Wrangling/internal/table"
)

func main() {
	name := flag.String("dataset", "gapminder", "bundled dataset to load")
	csvPath := flag.String("csv", "", "load a CSV file instead of a bundled dataset")
	stepsFlag := flag.String("steps", "", "comma-separated step names (default: all)")
	outDir := flag.String("out", "", "directory for figure JSON artifacts")
	parquetPath := flag.String("parquet", "", "write the loaded dataset to a Parquet file")
	maxRows := flag.Int("rows", 10, "table rows to print per step")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `wrangle runs the gapminder walkthrough.

Usage:
  wrangle
  wrangle -steps gdp-vs-life,summary-1957 -out figures/
  wrangle -csv panel.csv -parquet panel.parquet

Steps:
`)
		for _, s := range analysis.Steps() {
			fmt.Fprintf(os.Stderr, "  %-22s %s\n", s.Name, s.Title)
		}
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	var (
		tbl *table.Table
		err error
	)
	if *csvPath != "" {
		tbl, err = dataset.ReadCSVFile(*csvPath, "continent")
	} else {
		tbl, err = dataset.Load(*name)
	}
	if err != nil {
		fatalf("load dataset: %v", err)
	}

	steps := analysis.Steps()
	if *stepsFlag != "" {
		var picked []analysis.Step
		for _, nm := range strings.Split(*stepsFlag, ",") {
			nm = strings.TrimSpace(nm)
			s, ok := analysis.ByName(nm)
			if !ok {
				fatalf("unknown step %q", nm)
			}
			picked = append(picked, s)
		}
		steps = picked
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			fatalf("create output directory: %v", err)
		}
	}

	for _, s := range steps {
		out, spec, err := s.Run(tbl)
		if err != nil {
			fatalf("step %s: %v", s.Name, err)
		}
		fmt.Printf("== %s: %s\n", s.Name, s.Title)
		fmt.Println(table.Format(out, *maxRows))

		if spec != nil && *outDir != "" {
			fig, err := chart.Render(out, spec)
			if err != nil {
				fatalf("step %s: %v", s.Name, err)
			}
			path := filepath.Join(*outDir, s.Name+".json")
			if err := fig.WriteFile(path); err != nil {
				fatalf("step %s: %v", s.Name, err)
			}
			log.Printf("Figure written to %s", path)
		}
	}

	if *parquetPath != "" {
		if err := arrowio.WriteParquet(tbl, *parquetPath); err != nil {
			fatalf("write parquet: %v", err)
		}
		log.Printf("Parquet written to %s", *parquetPath)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
