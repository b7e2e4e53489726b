package plan

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/xiaobogaga/colexpr/columnar"
	"github.com/xiaobogaga/colexpr/stats"
)

// Column reads the field at index, which must be named name.
type Column struct {
	name  string
	index int
}

func NewColumn(name string, index int) *Column {
	return &Column{name: name, index: index}
}

// ColumnFromSchema resolves name to its position in schema. The name must
// match exactly one field.
func ColumnFromSchema(name string, schema *arrow.Schema) (*Column, error) {
	indices := schema.FieldIndices(name)
	switch len(indices) {
	case 0:
		return nil, typeError("column '%s' cannot find", name)
	case 1:
		return NewColumn(name, indices[0]), nil
	default:
		return nil, typeError("column '%s' is ambiguous", name)
	}
}

func (column *Column) Name() string { return column.name }

func (column *Column) Index() int { return column.index }

func (column *Column) field(schema *arrow.Schema) (arrow.Field, error) {
	if column.index < 0 || column.index >= schema.NumFields() {
		return arrow.Field{}, typeError("column %s is out of a schema of %d fields", column, schema.NumFields())
	}
	f := schema.Field(column.index)
	if f.Name != column.name {
		return arrow.Field{}, typeError("column %s doesn't match field '%s'", column, f.Name)
	}
	return f, nil
}

func (column *Column) DataType(schema *arrow.Schema) (arrow.DataType, error) {
	f, err := column.field(schema)
	if err != nil {
		return nil, err
	}
	return f.Type, nil
}

func (column *Column) Nullable(schema *arrow.Schema) (bool, error) {
	f, err := column.field(schema)
	if err != nil {
		return false, err
	}
	return f.Nullable, nil
}

func (column *Column) Evaluate(batch arrow.Record) (columnar.Value, error) {
	if _, err := column.field(batch.Schema()); err != nil {
		return columnar.Value{}, fmt.Errorf("%w: %w", ErrExecution, err)
	}
	arr := batch.Column(column.index)
	arr.Retain()
	return columnar.FromArray(arr), nil
}

func (column *Column) ExprStats() PhysicalExprStats {
	return columnStats{index: column.index}
}

func (column *Column) String() string {
	return fmt.Sprintf("%s@%d", column.name, column.index)
}

type columnStats struct {
	index int
}

// Boundaries passes the column statistics through when both bounds are known.
func (s columnStats) Boundaries(columns []stats.ColumnStatistics) *stats.ExprBoundaries {
	if s.index < 0 || s.index >= len(columns) {
		return nil
	}
	c := columns[s.index]
	if c.MinValue == nil || c.MaxValue == nil {
		return nil
	}
	return &stats.ExprBoundaries{
		MinValue:      *c.MinValue,
		MaxValue:      *c.MaxValue,
		DistinctCount: c.DistinctCount,
	}
}
