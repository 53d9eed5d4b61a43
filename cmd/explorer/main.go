// Command explorer serves the tabular explorer API. The HTTP server
// comes up immediately and answers 503 until the dataset finishes
// loading in the background.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nozaripo/Data-Wrangling/internal/api"
	"github.com/nozaripo/Data-Wrangling/internal/dataset"
	"github.com/nozaripo/Data-Wrangling/internal/table"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	name := flag.String("dataset", "gapminder", "bundled dataset to serve")
	csvPath := flag.String("csv", "", "serve a CSV file instead of a bundled dataset")
	flag.Parse()

	e := echo.New()
	e.JSONSerializer = goccySerializer{}
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	served := *name
	if *csvPath != "" {
		served = strings.TrimSuffix(filepath.Base(*csvPath), ".csv")
	}
	h := api.NewHandler(served)
	h.RegisterRoutes(e)

	// Load in the background so the server is reachable right away.
	go func() {
		t0 := time.Now()
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
			log.Fatalf("load dataset: %v", err)
		}
		h.SetData(tbl)
		log.Printf("Background load complete in %v. API is fully ready.", time.Since(t0))
	}()

	log.Printf("Explorer ready on %s (data loading in background)", *addr)
	e.Logger.Fatal(e.Start(*addr))
}

// goccySerializer swaps echo's JSON codec for goccy/go-json.
type goccySerializer struct{}

func (goccySerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (goccySerializer) Deserialize(c echo.Context, i any) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if ute, ok := err.(*json.UnmarshalTypeError); ok {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Unmarshal type error: expected=%v, got=%v, field=%v, offset=%v", ute.Type, ute.Value, ute.Field, ute.Offset)).SetInternal(err)
	} else if se, ok := err.(*json.SyntaxError); ok {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Syntax error: offset=%v, error=%v", se.Offset, se.Error())).SetInternal(err)
	}
	return err
}
