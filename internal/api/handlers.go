// Package api serves the explorer's HTTP surface: dataset metadata,
// record pages, ad-hoc queries, walkthrough figures and Parquet
// export.
package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nozaripo/Data-Wrangling/internal/analysis"
	"github.com/nozaripo/Data-Wrangling/internal/arrowio"
	"github.com/nozaripo/Data-Wrangling/internal/chart"
	"github.com/nozaripo/Data-Wrangling/internal/dataset"
	"github.com/nozaripo/Data-Wrangling/internal/table"
)

// Handler serves the API against one loaded dataset. The table is
// swapped in atomically once loading finishes, so requests arriving
// earlier get 503 instead of a partial view.
type Handler struct {
	name string
	data atomic.Pointer[table.Table]
}

func NewHandler(name string) *Handler {
	return &Handler{name: name}
}

// SetData publishes a newly loaded table. Safe to call while requests
// are in flight.
func (h *Handler) SetData(t *table.Table) {
	h.data.Store(t)
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/dataset", h.GetDataset)
	api.GET("/records", h.GetRecords)
	api.POST("/query", h.PostQuery)
	api.GET("/figures", h.GetFigures)
	api.GET("/figures/:name", h.GetFigure)
	api.GET("/export/parquet", h.ExportParquet)
}

func (h *Handler) table() (*table.Table, error) {
	t := h.data.Load()
	if t == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is still loading")
	}
	return t, nil
}

// --- HANDLERS ---

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) GetDataset(c echo.Context) error {
	tbl, err := h.table()
	if err != nil {
		return err
	}

	info := DatasetInfo{Name: h.name, Rows: tbl.NumRows(), Columns: tbl.Schema()}
	if col, ok := tbl.Column("continent"); ok && col.Kind() == table.KindFactor {
		levels := append([]string(nil), col.Levels()...)
		sort.Strings(levels)
		info.Continents = levels
	}
	if col, ok := tbl.Column("year"); ok {
		for i := 0; i < col.Len(); i++ {
			v, _ := col.Int64(i)
			if i == 0 || v < info.YearMin {
				info.YearMin = v
			}
			if i == 0 || v > info.YearMax {
				info.YearMax = v
			}
		}
	}
	return c.JSON(http.StatusOK, info)
}

// GetRecords pages through the panel, optionally narrowed by the
// continent, country and year query parameters.
func (h *Handler) GetRecords(c echo.Context) error {
	tbl, err := h.table()
	if err != nil {
		return err
	}

	var preds []table.Predicate
	if v := c.QueryParam("continent"); v != "" {
		preds = append(preds, table.Eq("continent", v))
	}
	if v := c.QueryParam("country"); v != "" {
		preds = append(preds, table.Eq("country", v))
	}
	if v := c.QueryParam("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "year must be an integer")
		}
		preds = append(preds, table.Eq("year", year))
	}
	if len(preds) > 0 {
		tbl, err = tbl.Filter(table.And(preds...))
		if err != nil {
			return httpError(err)
		}
	}

	recs, err := dataset.Records(tbl)
	if err != nil {
		return httpError(err)
	}

	total := len(recs)
	limit, offset := getPaginationParams(c, total)
	if offset >= total {
		recs = nil
	} else {
		end := offset + limit
		if end > total {
			end = total
		}
		recs = recs[offset:end]
	}
	if recs == nil {
		recs = []dataset.Record{}
	}

	return c.JSON(http.StatusOK, RecordsResponse{
		Data:   recs,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *Handler) PostQuery(c echo.Context) error {
	tbl, err := h.table()
	if err != nil {
		return err
	}

	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed query: "+err.Error())
	}
	out, err := req.Apply(tbl)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tableResponse(out))
}

func (h *Handler) GetFigures(c echo.Context) error {
	steps := analysis.Steps()
	infos := make([]FigureInfo, 0, len(steps))
	for _, s := range steps {
		infos = append(infos, FigureInfo{Name: s.Name, Title: s.Title})
	}
	return c.JSON(http.StatusOK, infos)
}

// GetFigure runs one walkthrough step and returns its rendered figure.
func (h *Handler) GetFigure(c echo.Context) error {
	tbl, err := h.table()
	if err != nil {
		return err
	}

	name := c.Param("name")
	step, ok := analysis.ByName(name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown figure %q", name))
	}
	out, spec, err := step.Run(tbl)
	if err != nil {
		return httpError(err)
	}
	if spec == nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("step %q has no figure", name))
	}
	fig, err := chart.Render(out, spec)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, fig)
}

func (h *Handler) ExportParquet(c echo.Context) error {
	tbl, err := h.table()
	if err != nil {
		return err
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d.parquet", h.name, time.Now().UnixNano()))
	if err := arrowio.WriteParquet(tbl, path); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer os.Remove(path)
	return c.Attachment(path, h.name+".parquet")
}
