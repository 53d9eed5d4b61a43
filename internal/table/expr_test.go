package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithColumnDerives(t *testing.T) {
	tbl := sampleTable(t)
	out, err := tbl.WithColumn("gdp", Col("gdpPerCapita").Mul(Col("population")))
	require.NoError(t, err)

	assert.Equal(t, tbl.NumRows(), out.NumRows())
	assert.Equal(t, tbl.NumCols()+1, out.NumCols())
	assert.Equal(t, "gdp", out.Names()[out.NumCols()-1])

	for i := 0; i < out.NumRows(); i++ {
		want := tbl.Row(i).Float("gdpPerCapita") * tbl.Row(i).Float("population")
		assert.Equal(t, want, out.Row(i).Float("gdp"))
	}
	// pre-existing fields are untouched
	for i := 0; i < out.NumRows(); i++ {
		assert.Equal(t, tbl.Row(i).String("country"), out.Row(i).String("country"))
		assert.Equal(t, tbl.Row(i).Int("year"), out.Row(i).Int("year"))
		assert.Equal(t, tbl.Row(i).Float("lifeExpectancy"), out.Row(i).Float("lifeExpectancy"))
	}
	// the input table itself is unchanged
	assert.False(t, tbl.HasColumn("gdp"))
}

func TestWithColumnPopMillionsRoundTrip(t *testing.T) {
	tbl, err := New(
		NewString("country", []string{"A"}),
		NewInt("population", []int64{10}),
	)
	require.NoError(t, err)

	out, err := tbl.WithColumn("popMillions", Col("population").Div(Lit(1e6)))
	require.NoError(t, err)
	got := out.Row(0).Float("popMillions")
	assert.Equal(t, 0.00001, got)
	assert.InDelta(t, 10, got*1e6, 1e-9)
}

func TestWithColumnOverwritesInPlace(t *testing.T) {
	tbl := sampleTable(t)
	out, err := tbl.WithColumn("lifeExpectancy", Col("lifeExpectancy").Add(Lit(1)))
	require.NoError(t, err)

	assert.Equal(t, tbl.NumCols(), out.NumCols())
	assert.Equal(t, tbl.Names(), out.Names())
	assert.Equal(t, tbl.Row(0).Float("lifeExpectancy")+1, out.Row(0).Float("lifeExpectancy"))
}

func TestWithColumnUnknownField(t *testing.T) {
	tbl := sampleTable(t)
	_, err := tbl.WithColumn("x", Col("gdp").Add(Lit(1)))
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "withColumn", se.Op)
	assert.Equal(t, "gdp", se.Field)
}

func TestWithColumnDivisionByZero(t *testing.T) {
	tbl, err := New(
		NewFloat("gdpPerCapita", []float64{1000, 2000}),
		NewFloat("lifeExpectancy", []float64{50, 0}),
	)
	require.NoError(t, err)

	_, err = tbl.WithColumn("gdpPerLifeYear", Col("gdpPerCapita").Div(Col("lifeExpectancy")))
	var ce *ComputationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "withColumn", ce.Op)
	assert.Equal(t, "gdpPerLifeYear", ce.Col)
	assert.Equal(t, 1, ce.Row)
	assert.Contains(t, ce.Error(), "division by zero")
}

func TestWithColumnNonNumericField(t *testing.T) {
	tbl := sampleTable(t)
	_, err := tbl.WithColumn("x", Col("country").Add(Lit(1)))
	var ce *ComputationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 0, ce.Row)
}

func TestWithColumnApply(t *testing.T) {
	tbl := sampleTable(t)
	out, err := tbl.WithColumn("logistic", Apply([]string{"lifeExpectancy"}, func(r Row) (float64, error) {
		return r.Float("lifeExpectancy") / 100, nil
	}))
	require.NoError(t, err)
	assert.InDelta(t, 0.54407, out.Row(0).Float("logistic"), 1e-12)

	boom := errors.New("bad row")
	_, err = tbl.WithColumn("x", Apply([]string{"year"}, func(r Row) (float64, error) {
		if r.Int("year") == 2007 {
			return 0, boom
		}
		return 1, nil
	}))
	var ce *ComputationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 3, ce.Row)
	assert.ErrorIs(t, err, boom)
}

func TestExprFields(t *testing.T) {
	e := Col("gdpPerCapita").Mul(Col("population")).Div(Col("gdpPerCapita").Add(Lit(1)))
	assert.Equal(t, []string{"gdpPerCapita", "population"}, e.Fields())
}
