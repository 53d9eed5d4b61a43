package arrowio

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/stretchr/testify/assert"

	"github.com/nozaripo/Data-Wrangling/internal/dataset"
)

func sampleRecords() []dataset.Record {
	return []dataset.Record{
		{Country: "Kenya", Continent: "Africa", Year: 1997, Population: 28263827, GdpPerCapita: 1360.25, LifeExpectancy: 54.407},
		{Country: "Japan", Continent: "Asia", Year: 1997, Population: 125956499, GdpPerCapita: 28816.58, LifeExpectancy: 80.69},
	}
}

func TestNewRecord(t *testing.T) {
	tbl := dataset.FromRecords(sampleRecords())
	rec := NewRecord(tbl)
	defer rec.Release()

	assert.EqualValues(t, 2, rec.NumRows())
	assert.EqualValues(t, 6, rec.NumCols())

	schema := rec.Schema()
	assert.Equal(t, "country", schema.Field(0).Name)
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, schema.Field(0).Type))
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, schema.Field(1).Type), "factor maps to string")
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int64, schema.Field(2).Type))
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int64, schema.Field(3).Type))
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Float64, schema.Field(4).Type))
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Float64, schema.Field(5).Type))

	countries := rec.Column(0).(*array.String)
	assert.Equal(t, "Kenya", countries.Value(0))
	assert.Equal(t, "Japan", countries.Value(1))

	continents := rec.Column(1).(*array.String)
	assert.Equal(t, "Africa", continents.Value(0))

	years := rec.Column(2).(*array.Int64)
	assert.EqualValues(t, 1997, years.Value(0))

	gdp := rec.Column(4).(*array.Float64)
	assert.InDelta(t, 1360.25, gdp.Value(0), 1e-9)
}
