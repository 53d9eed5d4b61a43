// Package analysis walks through the gapminder panel step by step,
// from first inspection to grouped summaries and chart descriptions.
// Each step is a pure function over a table; Steps returns them in
// walkthrough order so callers can run the whole sequence or pick one
// by name.
package analysis

import (
	"github.com/nozaripo/Data-Wrangling/internal/chart"
	"github.com/nozaripo/Data-Wrangling/internal/table"
)

// Step is one named stage of the walkthrough. Run returns the step's
// result table and, for plotting steps, a chart description; the chart
// is nil for table-only steps.
type Step struct {
	Name  string
	Title string
	Run   func(*table.Table) (*table.Table, *chart.Spec, error)
}

// Steps returns the walkthrough in order.
func Steps() []Step {
	return []Step{
		{Name: "inspect", Title: "First look at the data", Run: inspect},
		{Name: "filter-year", Title: "Records for 2002", Run: filterYear},
		{Name: "filter-country", Title: "United States over time", Run: filterCountry},
		{Name: "gdp-vs-life", Title: "Wealth and health of nations, 2007", Run: gdpVsLife},
		{Name: "life-histogram", Title: "Distribution of life expectancy", Run: lifeHistogram},
		{Name: "life-by-continent-box", Title: "Life expectancy by continent", Run: lifeByContinentBox},
		{Name: "population-growth", Title: "Population growth of the giants", Run: populationGrowth},
		{Name: "gdp-derived", Title: "Largest economies, 2007", Run: gdpDerived},
		{Name: "continent-trends", Title: "Median life expectancy by continent", Run: continentTrends},
		{Name: "summary-1957", Title: "Life expectancy summary, 1957", Run: summary1957},
		{Name: "oceania-gdp", Title: "GDP per capita in Oceania", Run: oceaniaGdp},
	}
}

// ByName returns the named step.
func ByName(name string) (Step, bool) {
	for _, s := range Steps() {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

func inspect(t *table.Table) (*table.Table, *chart.Spec, error) {
	return t.Head(6), nil, nil
}

func filterYear(t *table.Table) (*table.Table, *chart.Spec, error) {
	out, err := t.Filter(table.Eq("year", 2002))
	return out, nil, err
}

func filterCountry(t *table.Table) (*table.Table, *chart.Spec, error) {
	out, err := t.Filter(table.Eq("country", "United States"))
	return out, nil, err
}

func gdpVsLife(t *table.Table) (*table.Table, *chart.Spec, error) {
	latest, err := t.Filter(table.Eq("year", 2007))
	if err != nil {
		return nil, nil, err
	}
	spec := chart.Point().
		X("gdpPerCapita", chart.ScaleLog10).
		Y("lifeExpectancy").
		ColorBy("continent").
		SizeBy("population").
		WithTitle("Wealth and health of nations, 2007")
	return latest, spec, nil
}

func lifeHistogram(t *table.Table) (*table.Table, *chart.Spec, error) {
	spec := chart.Histogram().
		X("lifeExpectancy").
		WithTitle("Distribution of life expectancy")
	return t, spec, nil
}

func lifeByContinentBox(t *table.Table) (*table.Table, *chart.Spec, error) {
	spec := chart.Box().
		X("continent").
		Y("lifeExpectancy").
		WithTitle("Life expectancy by continent")
	return t, spec, nil
}

func populationGrowth(t *table.Table) (*table.Table, *chart.Spec, error) {
	giants, err := t.Filter(table.In("country", "China", "India", "United States"))
	if err != nil {
		return nil, nil, err
	}
	spec := chart.Line().
		X("year").
		Y("population").
		ColorBy("country").
		WithTitle("Population growth of the giants")
	return giants, spec, nil
}

// gdpDerived ranks economies by total GDP, a column the panel does not
// carry directly.
func gdpDerived(t *table.Table) (*table.Table, *chart.Spec, error) {
	withGdp, err := t.WithColumn("gdp", table.Col("gdpPerCapita").Mul(table.Col("population")))
	if err != nil {
		return nil, nil, err
	}
	latest, err := withGdp.Filter(table.Eq("year", 2007))
	if err != nil {
		return nil, nil, err
	}
	ranked, err := latest.Sort("gdp", false)
	if err != nil {
		return nil, nil, err
	}
	spec := chart.Bar().
		X("country").
		Y("gdp").
		WithTitle("Largest economies, 2007")
	return ranked.Head(10), spec, nil
}

func continentTrends(t *table.Table) (*table.Table, *chart.Spec, error) {
	trends, err := t.GroupBy("continent", "year").
		Aggregate(table.Median("lifeExpectancy").As("medianLifeExpectancy"))
	if err != nil {
		return nil, nil, err
	}
	spec := chart.Line().
		X("year").
		Y("medianLifeExpectancy").
		FacetBy("continent").
		WithTitle("Median life expectancy by continent")
	return trends, spec, nil
}

func summary1957(t *table.Table) (*table.Table, *chart.Spec, error) {
	fiftySeven, err := t.Filter(table.Eq("year", 1957))
	if err != nil {
		return nil, nil, err
	}
	out, err := fiftySeven.GroupBy("continent").Aggregate(
		table.Median("lifeExpectancy").As("medianLifeExpectancy"),
		table.Max("lifeExpectancy").As("maxLifeExpectancy"),
	)
	return out, nil, err
}

func oceaniaGdp(t *table.Table) (*table.Table, *chart.Spec, error) {
	oceania, err := t.Filter(table.In("country", "Australia", "New Zealand"))
	if err != nil {
		return nil, nil, err
	}
	slim, err := oceania.Select("country", "year", "gdpPerCapita")
	if err != nil {
		return nil, nil, err
	}
	spec := chart.Line().
		X("year").
		Y("gdpPerCapita").
		ColorBy("country").
		WithTitle("GDP per capita in Oceania")
	return slim, spec, nil
}
