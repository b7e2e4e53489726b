package plan

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"
	"github.com/xiaobogaga/colexpr/columnar"
	"github.com/xiaobogaga/colexpr/scalar"
)

var testSchema = arrow.NewSchema([]arrow.Field{
	{Name: "a", Type: arrow.PrimitiveTypes.Int32, Nullable: true},
	{Name: "b", Type: arrow.PrimitiveTypes.Float64},
	{Name: "c", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "d", Type: arrow.FixedWidthTypes.Boolean, Nullable: true},
}, nil)

// initTestBatch returns five rows:
//
//	a: 1, NULL, 3, 4, 5
//	b: 1.5, 2.5, -1, 0, 10
//	c: "x", "yy", NULL, "", "héllo"
//	d: true, false, NULL, true, false
func initTestBatch(t *testing.T, mem memory.Allocator) arrow.Record {
	builder := array.NewRecordBuilder(mem, testSchema)
	defer builder.Release()
	builder.Field(0).(*array.Int32Builder).AppendValues([]int32{1, 0, 3, 4, 5}, []bool{true, false, true, true, true})
	builder.Field(1).(*array.Float64Builder).AppendValues([]float64{1.5, 2.5, -1, 0, 10}, nil)
	builder.Field(2).(*array.StringBuilder).AppendValues([]string{"x", "yy", "", "", "héllo"}, []bool{true, true, false, true, true})
	builder.Field(3).(*array.BooleanBuilder).AppendValues([]bool{true, false, false, true, false}, []bool{true, true, false, true, true})
	record := builder.NewRecord()
	require.Equal(t, int64(5), record.NumRows())
	return record
}

// rowsOf reads every row of an array result as scalar values.
func rowsOf(t *testing.T, v columnar.Value) []scalar.Value {
	require.False(t, v.IsScalar())
	arr := v.Array()
	ret := make([]scalar.Value, arr.Len())
	for i := range ret {
		value, err := scalar.FromArray(arr, i)
		require.Nil(t, err)
		ret[i] = value
	}
	return ret
}

func requireRows(t *testing.T, expect []scalar.Value, v columnar.Value) {
	got := rowsOf(t, v)
	require.Len(t, got, len(expect))
	for i := range expect {
		require.True(t, expect[i].Equal(got[i]), "row %d: expect %#v, got %#v", i, expect[i], got[i])
	}
}
