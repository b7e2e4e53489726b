package columnar

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaobogaga/colexpr/scalar"
)

func TestScalarIntoArray(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	v := FromScalar(scalar.NewInt32(42))
	assert.True(t, v.IsScalar())
	assert.Equal(t, arrow.PrimitiveTypes.Int32, v.DataType())

	arr := v.IntoArrayWithAllocator(mem, 5)
	defer arr.Release()
	ints := arr.(*array.Int32)
	assert.Equal(t, []int32{42, 42, 42, 42, 42}, ints.Int32Values())
	assert.Equal(t, 0, arr.NullN())
}

func TestNullScalarIntoArray(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	v := FromScalar(scalar.NullOf(scalar.Boolean))
	arr := v.IntoArrayWithAllocator(mem, 3)
	defer arr.Release()
	assert.Equal(t, arrow.BOOL, arr.DataType().ID())
	assert.Equal(t, 3, arr.Len())
	assert.Equal(t, 3, arr.NullN())
}

func TestEmptyIntoArray(t *testing.T) {
	for _, sc := range []scalar.Value{scalar.NewInt32(42), scalar.NewUtf8("x"), scalar.NullOf(scalar.Float64), scalar.NewNull()} {
		arr := FromScalar(sc).IntoArray(0)
		assert.Equal(t, 0, arr.Len())
		assert.True(t, arrow.TypeEqual(sc.DataType(), arr.DataType()))
		arr.Release()
	}
}

func TestArrayIntoArray(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	builder := array.NewInt64Builder(mem)
	builder.AppendValues([]int64{1, 2, 3}, nil)
	v := FromArray(builder.NewArray())
	builder.Release()
	defer v.Release()

	assert.False(t, v.IsScalar())
	arr := v.IntoArrayWithAllocator(mem, 3)
	assert.Same(t, v.Array(), arr)
	arr.Release()
	assert.Panics(t, func() { v.IntoArrayWithAllocator(mem, 4) })
}

func TestDatumRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	builder := array.NewInt32Builder(mem)
	builder.AppendValues([]int32{1, 2}, []bool{true, false})
	v := FromArray(builder.NewArray())
	builder.Release()
	defer v.Release()

	d := v.Datum()
	back, err := FromDatum(d)
	d.Release()
	require.Nil(t, err)
	defer back.Release()
	assert.True(t, array.Equal(v.Array(), back.Array()))

	sd := FromScalar(scalar.NewUtf8("x")).Datum()
	defer sd.Release()
	sv, err := FromDatum(sd)
	require.Nil(t, err)
	assert.True(t, scalar.NewUtf8("x").Equal(sv.Scalar()))
}

func TestCastTo(t *testing.T) {
	ctx := context.Background()
	builder := array.NewInt32Builder(memory.DefaultAllocator)
	builder.AppendValues([]int32{1, 2, 3}, nil)
	v := FromArray(builder.NewArray())
	builder.Release()
	defer v.Release()

	casted, err := v.CastTo(ctx, arrow.PrimitiveTypes.Float64)
	require.Nil(t, err)
	defer casted.Release()
	assert.Equal(t, []float64{1, 2, 3}, casted.Array().(*array.Float64).Float64Values())

	same, err := v.CastTo(ctx, arrow.PrimitiveTypes.Int32)
	require.Nil(t, err)
	same.Release()
	assert.Equal(t, 3, v.Array().Len())

	sc, err := FromScalar(scalar.NewInt32(7)).CastTo(ctx, arrow.PrimitiveTypes.Int64)
	require.Nil(t, err)
	assert.True(t, scalar.NewInt64(7).Equal(sc.Scalar()))

	_, err = FromScalar(scalar.NewInt32(7)).CastTo(ctx, arrow.ListOf(arrow.PrimitiveTypes.Int32))
	assert.NotNil(t, err)
	assert.True(t, compute.CanCast(arrow.PrimitiveTypes.Int32, arrow.PrimitiveTypes.Float64))
}

func TestZeroValue(t *testing.T) {
	var v Value
	assert.False(t, v.IsScalar())
	assert.Nil(t, v.DataType())
	assert.Equal(t, "Array(nil)", v.String())
	v.Retain()
	v.Release()
}
