package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nozaripo/Data-Wrangling/internal/chart"
	"github.com/nozaripo/Data-Wrangling/internal/table"
)

// QueryRequest is the JSON body of POST /api/query. The stages run in
// a fixed order: filter, group and aggregate, sort, select, limit;
// empty stages are skipped.
type QueryRequest struct {
	Filters      []FilterClause `json:"filters,omitempty"`
	GroupBy      []string       `json:"groupBy,omitempty"`
	Aggregations []AggClause    `json:"aggregations,omitempty"`
	Sort         []SortClause   `json:"sort,omitempty"`
	Select       []string       `json:"select,omitempty"`
	Limit        int            `json:"limit,omitempty"`
}

// FilterClause compares a field against a value. Op is one of eq, ne,
// lt, le, gt, ge or in; an empty op means eq. The in op wants an array
// value.
type FilterClause struct {
	Field string `json:"field"`
	Op    string `json:"op,omitempty"`
	Value any    `json:"value"`
}

// AggClause reduces a field. Op is one of sum, mean, median, min, max,
// count or first; count takes no field. As overrides the output
// column name.
type AggClause struct {
	Op    string `json:"op"`
	Field string `json:"field,omitempty"`
	As    string `json:"as,omitempty"`
}

// SortClause orders by a field, descending when Desc is set.
type SortClause struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc,omitempty"`
}

// Apply runs the query pipeline against a table.
func (q *QueryRequest) Apply(t *table.Table) (*table.Table, error) {
	out := t
	if len(q.Filters) > 0 {
		preds := make([]table.Predicate, len(q.Filters))
		for i, f := range q.Filters {
			p, err := f.predicate()
			if err != nil {
				return nil, err
			}
			preds[i] = p
		}
		var err error
		out, err = out.Filter(table.And(preds...))
		if err != nil {
			return nil, err
		}
	}
	if len(q.GroupBy) > 0 || len(q.Aggregations) > 0 {
		if len(q.Aggregations) == 0 {
			return nil, fmt.Errorf("api: groupBy without aggregations")
		}
		aggs := make([]table.Aggregation, len(q.Aggregations))
		for i, a := range q.Aggregations {
			agg, err := a.aggregation()
			if err != nil {
				return nil, err
			}
			aggs[i] = agg
		}
		var err error
		out, err = out.GroupBy(q.GroupBy...).Aggregate(aggs...)
		if err != nil {
			return nil, err
		}
	}
	if len(q.Sort) > 0 {
		fields := make([]string, len(q.Sort))
		asc := make([]bool, len(q.Sort))
		for i, s := range q.Sort {
			fields[i] = s.Field
			asc[i] = !s.Desc
		}
		var err error
		out, err = out.SortBy(fields, asc)
		if err != nil {
			return nil, err
		}
	}
	if len(q.Select) > 0 {
		var err error
		out, err = out.Select(q.Select...)
		if err != nil {
			return nil, err
		}
	}
	if q.Limit > 0 {
		out = out.Head(q.Limit)
	}
	return out, nil
}

func (f FilterClause) predicate() (table.Predicate, error) {
	switch f.Op {
	case "eq", "":
		return table.Eq(f.Field, f.Value), nil
	case "ne":
		return table.Ne(f.Field, f.Value), nil
	case "lt":
		return table.Lt(f.Field, f.Value), nil
	case "le":
		return table.Le(f.Field, f.Value), nil
	case "gt":
		return table.Gt(f.Field, f.Value), nil
	case "ge":
		return table.Ge(f.Field, f.Value), nil
	case "in":
		vals, ok := f.Value.([]any)
		if !ok {
			return nil, fmt.Errorf("api: filter on %q: op in wants an array value", f.Field)
		}
		return table.In(f.Field, vals...), nil
	default:
		return nil, fmt.Errorf("api: filter on %q: unknown op %q", f.Field, f.Op)
	}
}

func (a AggClause) aggregation() (table.Aggregation, error) {
	var agg table.Aggregation
	switch a.Op {
	case "sum":
		agg = table.Sum(a.Field)
	case "mean", "avg":
		agg = table.Mean(a.Field)
	case "median":
		agg = table.Median(a.Field)
	case "min":
		agg = table.Min(a.Field)
	case "max":
		agg = table.Max(a.Field)
	case "count":
		agg = table.Count()
	case "first":
		agg = table.First(a.Field)
	default:
		return table.Aggregation{}, fmt.Errorf("api: unknown aggregation %q", a.Op)
	}
	if a.As != "" {
		agg = agg.As(a.As)
	}
	return agg, nil
}

// httpError maps engine errors onto HTTP status codes. Unknown fields
// and malformed clauses are bad requests; row-level computation and
// render failures are unprocessable content.
func httpError(err error) error {
	var schemaErr *table.SchemaError
	if errors.As(err, &schemaErr) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var compErr *table.ComputationError
	if errors.As(err, &compErr) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	var renderErr *chart.RenderError
	if errors.As(err, &renderErr) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
