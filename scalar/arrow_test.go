package scalar

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleValues = []Value{
	NewBool(true),
	NewInt8(-8),
	NewInt16(-16),
	NewInt32(-32),
	NewInt64(-64),
	NewUInt8(8),
	NewUInt16(16),
	NewUInt32(32),
	NewUInt64(64),
	NewFloat32(3.5),
	NewFloat64(-2.25),
	NewUtf8("abc"),
	NewBinary([]byte{1, 2, 3}),
	NewDate32(19000),
	NewTimestamp(1_600_000_000_000_000_123),
}

func TestArrowScalarConversion(t *testing.T) {
	for _, v := range sampleValues {
		back, err := FromArrow(v.ToArrow())
		require.Nil(t, err, v.GoString())
		assert.True(t, v.Equal(back), v.GoString())
		null, err := FromArrow(NullOf(v.Type()).ToArrow())
		require.Nil(t, err)
		assert.True(t, NullOf(v.Type()).Equal(null))
	}
}

func TestBroadcastAndFromArray(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	for _, v := range sampleValues {
		arr := Broadcast(mem, v, 3)
		assert.Equal(t, 3, arr.Len())
		assert.True(t, arrow.TypeEqual(v.DataType(), arr.DataType()))
		for i := 0; i < arr.Len(); i++ {
			got, err := FromArray(arr, i)
			require.Nil(t, err)
			assert.True(t, v.Equal(got), v.GoString())
		}
		arr.Release()
	}
}

func TestBroadcastNull(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	arr := Broadcast(mem, NullOf(Boolean), 3)
	defer arr.Release()
	assert.Equal(t, 3, arr.Len())
	assert.Equal(t, 3, arr.NullN())
	assert.Equal(t, arrow.BOOL, arr.DataType().ID())

	untyped := Broadcast(mem, NewNull(), 2)
	defer untyped.Release()
	assert.Equal(t, 2, untyped.Len())
	got, err := FromArray(untyped, 1)
	assert.Nil(t, err)
	assert.True(t, NewNull().Equal(got))
}

func TestToArray(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	arr, err := ToArray(mem, arrow.PrimitiveTypes.Int32, []Value{NewInt32(1), NullOf(Int32), NewInt32(3)})
	require.Nil(t, err)
	defer arr.Release()
	ints := arr.(*array.Int32)
	assert.Equal(t, int32(1), ints.Value(0))
	assert.True(t, ints.IsNull(1))
	assert.Equal(t, int32(3), ints.Value(2))

	_, err = ToArray(mem, arrow.PrimitiveTypes.Int32, []Value{NewInt64(1)})
	assert.NotNil(t, err)
}

func TestCastTo(t *testing.T) {
	v, err := CastTo(NewInt32(42), Int64)
	assert.Nil(t, err)
	assert.True(t, NewInt64(42).Equal(v))
	v, err = CastTo(NewInt32(42), Utf8)
	assert.Nil(t, err)
	assert.True(t, NewUtf8("42").Equal(v))
	v, err = CastTo(NullOf(Int32), Float64)
	assert.Nil(t, err)
	assert.True(t, NullOf(Float64).Equal(v))
}
