package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozaripo/Data-Wrangling/internal/table"
)

func loadGapminder(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := Load("gapminder")
	require.NoError(t, err)
	return tbl
}

func TestLoadGapminder(t *testing.T) {
	tbl := loadGapminder(t)

	assert.Equal(t, 300, tbl.NumRows())
	assert.Equal(t, []string{"country", "continent", "year", "population", "gdpPerCapita", "lifeExpectancy"}, tbl.Names())

	cont, ok := tbl.Column("continent")
	require.True(t, ok)
	assert.Equal(t, table.KindFactor, cont.Kind())
	assert.ElementsMatch(t, []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}, cont.Levels())

	countries, err := tbl.Distinct("country")
	require.NoError(t, err)
	assert.Equal(t, 25, countries.NumRows())
}

func TestLoadGapminderKnownRows(t *testing.T) {
	tbl := loadGapminder(t)

	aus, err := tbl.Filter(table.And(table.Eq("country", "Australia"), table.Eq("year", 2007)))
	require.NoError(t, err)
	require.Equal(t, 1, aus.NumRows())
	row := aus.Row(0)
	assert.Equal(t, "Oceania", row.String("continent"))
	assert.EqualValues(t, 20434176, row.Int("population"))
	assert.InDelta(t, 34435.37, row.Float("gdpPerCapita"), 1e-9)
	assert.InDelta(t, 81.235, row.Float("lifeExpectancy"), 1e-9)

	kenya, err := tbl.Filter(table.And(table.Eq("country", "Kenya"), table.Eq("year", 1952)))
	require.NoError(t, err)
	require.Equal(t, 1, kenya.NumRows())
	assert.EqualValues(t, 6464046, kenya.Row(0).Int("population"))
	assert.InDelta(t, 42.27, kenya.Row(0).Float("lifeExpectancy"), 1e-9)
}

func TestLoadUnknownDataset(t *testing.T) {
	_, err := Load("penguins")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "penguins", nf.Name)
	assert.EqualError(t, err, `dataset: unknown dataset "penguins"`)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"gapminder"}, Names())
}

func TestGapminderKeysAreUnique(t *testing.T) {
	tbl := loadGapminder(t)
	keys, err := tbl.Distinct("country", "year")
	require.NoError(t, err)
	assert.Equal(t, tbl.NumRows(), keys.NumRows(), "every (country, year) pair appears once")
}

func TestGapminderOneContinentPerCountry(t *testing.T) {
	tbl := loadGapminder(t)
	byCountry := make(map[string]string)
	for i := 0; i < tbl.NumRows(); i++ {
		row := tbl.Row(i)
		country, continent := row.String("country"), row.String("continent")
		if prev, ok := byCountry[country]; ok {
			require.Equal(t, prev, continent, "country %s maps to two continents", country)
		}
		byCountry[country] = continent
	}
}

func TestGapminderValuesPositive(t *testing.T) {
	tbl := loadGapminder(t)
	for i := 0; i < tbl.NumRows(); i++ {
		row := tbl.Row(i)
		require.Greater(t, row.Int("population"), int64(0), "row %d", i)
		require.Greater(t, row.Float("gdpPerCapita"), 0.0, "row %d", i)
		require.Greater(t, row.Float("lifeExpectancy"), 0.0, "row %d", i)
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	recs := []Record{
		{Country: "Kenya", Continent: "Africa", Year: 1997, Population: 28263827, GdpPerCapita: 1360.25, LifeExpectancy: 54.407},
		{Country: "Japan", Continent: "Asia", Year: 1997, Population: 125956499, GdpPerCapita: 28816.58, LifeExpectancy: 80.69},
	}
	tbl := FromRecords(recs)
	assert.Equal(t, 2, tbl.NumRows())

	got, err := Records(tbl)
	require.NoError(t, err)
	assert.Equal(t, recs, got)
}

func TestRecordsMissingColumn(t *testing.T) {
	tbl := FromRecords(nil)
	trimmed, err := tbl.Drop("population")
	require.NoError(t, err)

	_, err = Records(trimmed)
	var schemaErr *table.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "population", schemaErr.Field)
}
