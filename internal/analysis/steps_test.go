package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozaripo/Data-Wrangling/internal/chart"
	"github.com/nozaripo/Data-Wrangling/internal/dataset"
	"github.com/nozaripo/Data-Wrangling/internal/table"
)

func loadPanel(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := dataset.Load("gapminder")
	require.NoError(t, err)
	return tbl
}

func TestStepsOrder(t *testing.T) {
	var names []string
	for _, s := range Steps() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"inspect", "filter-year", "filter-country", "gdp-vs-life",
		"life-histogram", "life-by-continent-box", "population-growth",
		"gdp-derived", "continent-trends", "summary-1957", "oceania-gdp",
	}, names)
}

func TestByName(t *testing.T) {
	s, ok := ByName("gdp-derived")
	require.True(t, ok)
	assert.Equal(t, "Largest economies, 2007", s.Title)

	_, ok = ByName("no-such-step")
	assert.False(t, ok)
}

// Every step must run against the bundled panel, and every chart it
// returns must render against the table it returns.
func TestEveryStepRunsAndRenders(t *testing.T) {
	tbl := loadPanel(t)
	for _, s := range Steps() {
		out, spec, err := s.Run(tbl)
		require.NoError(t, err, "step %s", s.Name)
		require.NotNil(t, out, "step %s", s.Name)
		if spec != nil {
			_, err := chart.Render(out, spec)
			require.NoError(t, err, "step %s chart", s.Name)
		}
	}
}

func TestInspect(t *testing.T) {
	out, spec, err := inspect(loadPanel(t))
	require.NoError(t, err)
	assert.Nil(t, spec)
	assert.Equal(t, 6, out.NumRows())
	assert.Equal(t, 6, out.NumCols())
}

func TestFilterYear(t *testing.T) {
	out, _, err := filterYear(loadPanel(t))
	require.NoError(t, err)
	assert.Equal(t, 25, out.NumRows())
	for i := 0; i < out.NumRows(); i++ {
		require.EqualValues(t, 2002, out.Row(i).Int("year"))
	}
}

func TestFilterCountry(t *testing.T) {
	out, _, err := filterCountry(loadPanel(t))
	require.NoError(t, err)
	assert.Equal(t, 12, out.NumRows())
	for i := 0; i < out.NumRows(); i++ {
		require.Equal(t, "United States", out.Row(i).String("country"))
	}
}

func TestGdpVsLife(t *testing.T) {
	out, spec, err := gdpVsLife(loadPanel(t))
	require.NoError(t, err)
	assert.Equal(t, 25, out.NumRows())
	require.NotNil(t, spec)
	assert.Equal(t, chart.KindPoint, spec.Kind)
	assert.Equal(t, chart.ScaleLog10, spec.XScale)
	assert.Equal(t, "continent", spec.Color)
	assert.Equal(t, "population", spec.Size)
}

func TestPopulationGrowth(t *testing.T) {
	out, spec, err := populationGrowth(loadPanel(t))
	require.NoError(t, err)
	assert.Equal(t, 36, out.NumRows())
	require.NotNil(t, spec)
	assert.Equal(t, chart.KindLine, spec.Kind)
	assert.Equal(t, "country", spec.Color)
}

func TestGdpDerived(t *testing.T) {
	out, spec, err := gdpDerived(loadPanel(t))
	require.NoError(t, err)
	require.Equal(t, 10, out.NumRows())
	require.True(t, out.HasColumn("gdp"))

	top := out.Row(0)
	assert.Equal(t, "United States", top.String("country"))
	assert.InDelta(t, top.Float("gdpPerCapita")*top.Float("population"), top.Float("gdp"), 1e-6)
	for i := 1; i < out.NumRows(); i++ {
		require.GreaterOrEqual(t, out.Row(i-1).Float("gdp"), out.Row(i).Float("gdp"))
	}

	require.NotNil(t, spec)
	assert.Equal(t, chart.KindBar, spec.Kind)
	assert.Equal(t, "gdp", spec.YField)
}

func TestContinentTrends(t *testing.T) {
	out, spec, err := continentTrends(loadPanel(t))
	require.NoError(t, err)
	assert.Equal(t, 60, out.NumRows())
	assert.Equal(t, []string{"continent", "year", "medianLifeExpectancy"}, out.Names())
	assert.Equal(t, "Africa", out.Row(0).String("continent"))
	assert.EqualValues(t, 1952, out.Row(0).Int("year"))

	require.NotNil(t, spec)
	assert.Equal(t, "continent", spec.Facet)
}

func TestSummary1957(t *testing.T) {
	out, spec, err := summary1957(loadPanel(t))
	require.NoError(t, err)
	assert.Nil(t, spec)
	require.Equal(t, 5, out.NumRows())
	assert.Equal(t, []string{"continent", "medianLifeExpectancy", "maxLifeExpectancy"}, out.Names())

	// Oceania has two countries, so the median averages them.
	last := out.Row(out.NumRows() - 1)
	require.Equal(t, "Oceania", last.String("continent"))
	assert.InDelta(t, 70.696, last.Float("medianLifeExpectancy"), 1e-9)
	assert.InDelta(t, 70.837, last.Float("maxLifeExpectancy"), 1e-9)

	for i := 0; i < out.NumRows(); i++ {
		row := out.Row(i)
		require.GreaterOrEqual(t, row.Float("maxLifeExpectancy"), row.Float("medianLifeExpectancy"))
	}
}

func TestOceaniaGdp(t *testing.T) {
	out, spec, err := oceaniaGdp(loadPanel(t))
	require.NoError(t, err)
	assert.Equal(t, 24, out.NumRows())
	assert.Equal(t, []string{"country", "year", "gdpPerCapita"}, out.Names())

	require.NotNil(t, spec)
	assert.Equal(t, chart.KindLine, spec.Kind)
	assert.Equal(t, "country", spec.Color)
}
