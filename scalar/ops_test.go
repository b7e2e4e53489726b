package scalar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	c, err := Compare(NewInt32(10), NewInt32(10))
	assert.Nil(t, err)
	assert.Equal(t, 0, c)
	c, _ = Compare(NewInt32(10), NewInt64(11))
	assert.Equal(t, -1, c)
	c, _ = Compare(NewFloat64(5.01), NewInt32(5))
	assert.Equal(t, 1, c)
	c, _ = Compare(NewInt8(-1), NewUInt64(math.MaxUint64))
	assert.Equal(t, -1, c)
	c, _ = Compare(NewUInt8(1), NewInt64(-1))
	assert.Equal(t, 1, c)
	c, _ = Compare(NewUtf8("abc"), NewUtf8("abd"))
	assert.Equal(t, -1, c)
	c, _ = Compare(NewBool(true), NewBool(false))
	assert.Equal(t, 1, c)
	c, _ = Compare(NewFloat64(math.NaN()), NewFloat64(math.Inf(1)))
	assert.Equal(t, 1, c)
	c, _ = Compare(NewDate32(1), NewDate32(2))
	assert.Equal(t, -1, c)
}

func TestCompareErrors(t *testing.T) {
	_, err := Compare(NullOf(Int32), NewInt32(1))
	assert.NotNil(t, err)
	_, err = Compare(NewUtf8("1"), NewInt32(1))
	assert.NotNil(t, err)
	_, err = Compare(NewDate32(1), NewTimestamp(1))
	assert.NotNil(t, err)
	_, err = Compare(NewNull(), NewNull())
	assert.NotNil(t, err)
}

func TestMaxMin(t *testing.T) {
	v, err := Max(NewInt32(10), NewInt32(20))
	assert.Nil(t, err)
	assert.True(t, NewInt32(20).Equal(v))
	v, err = Min(NewInt32(10), NewInt32(20))
	assert.Nil(t, err)
	assert.True(t, NewInt32(10).Equal(v))
	v, _ = Max(NewUtf8("b"), NewUtf8("a"))
	assert.Equal(t, "b", v.Str())
	_, err = Min(NewUtf8("b"), NullOf(Utf8))
	assert.NotNil(t, err)
}

func TestHash(t *testing.T) {
	assert.Equal(t, Hash(NewInt32(1)), Hash(NewInt32(1)))
	assert.NotEqual(t, Hash(NewInt32(1)), Hash(NewInt64(1)))
	assert.NotEqual(t, Hash(NewInt32(1)), Hash(NewInt32(2)))
	assert.NotEqual(t, Hash(NewUtf8("a")), Hash(NewBinary([]byte("a"))))
	assert.NotEqual(t, Hash(NullOf(Int32)), Hash(NewInt32(0)))
	assert.Equal(t, Hash(NewFloat64(math.NaN())), Hash(NewFloat64(-math.NaN())))
	negZero := NewFloat64(math.Copysign(0, -1))
	assert.True(t, NewFloat64(0).Equal(negZero))
	assert.Equal(t, Hash(NewFloat64(0)), Hash(negZero))
	assert.Equal(t, Hash(NewFloat32(0)), Hash(NewFloat32(float32(math.Copysign(0, -1)))))
}
