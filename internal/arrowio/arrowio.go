// Package arrowio bridges tables to Apache Arrow records and Parquet
// files, so query results can be handed to Arrow-native tools and SQL
// engines.
package arrowio

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/nozaripo/Data-Wrangling/internal/table"
)

// Schema maps a table schema to an Arrow schema. String and factor
// columns become Arrow strings, integer columns Int64, float columns
// Float64.
func Schema(t *table.Table) *arrow.Schema {
	fields := make([]arrow.Field, t.NumCols())
	for i := range fields {
		c := t.ColumnAt(i)
		var typ arrow.DataType
		switch c.Kind() {
		case table.KindInt:
			typ = arrow.PrimitiveTypes.Int64
		case table.KindFloat:
			typ = arrow.PrimitiveTypes.Float64
		default:
			typ = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: c.Name(), Type: typ}
	}
	return arrow.NewSchema(fields, nil)
}

// NewRecord converts a table into an Arrow record. The caller owns the
// record and must Release it.
func NewRecord(t *table.Table) arrow.Record {
	rb := array.NewRecordBuilder(memory.DefaultAllocator, Schema(t))
	defer rb.Release()

	for j := 0; j < t.NumCols(); j++ {
		c := t.ColumnAt(j)
		switch c.Kind() {
		case table.KindInt:
			b := rb.Field(j).(*array.Int64Builder)
			for i := 0; i < c.Len(); i++ {
				v, _ := c.Int64(i)
				b.Append(v)
			}
		case table.KindFloat:
			b := rb.Field(j).(*array.Float64Builder)
			for i := 0; i < c.Len(); i++ {
				v, _ := c.Float64(i)
				b.Append(v)
			}
		default:
			b := rb.Field(j).(*array.StringBuilder)
			for i := 0; i < c.Len(); i++ {
				s, _ := c.Str(i)
				b.Append(s)
			}
		}
	}
	return rb.NewRecord()
}

// WriteParquet writes a table to a Parquet file at path.
func WriteParquet(t *table.Table, path string) error {
	record := NewRecord(t)
	defer record.Release()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("arrowio: create parquet file: %w", err)
	}
	defer file.Close()

	writer, err := pqarrow.NewFileWriter(record.Schema(), file, nil, pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("arrowio: create parquet writer: %w", err)
	}
	if err := writer.WriteBuffered(record); err != nil {
		writer.Close()
		return fmt.Errorf("arrowio: write record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("arrowio: close parquet writer: %w", err)
	}
	return nil
}
