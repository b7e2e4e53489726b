package plan

import (
	"errors"
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaobogaga/colexpr/scalar"
	"github.com/xiaobogaga/colexpr/stats"
)

func TestBinaryArithmetic(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	batch := initTestBatch(t, mem)
	defer batch.Release()

	add := NewBinaryExpr(NewColumn("a", 0), Plus, Lit(int64(1)), WithAllocator(mem))
	assert.Equal(t, "a@0 + 1", add.String())
	dt, err := add.DataType(testSchema)
	require.Nil(t, err)
	assert.Equal(t, arrow.PrimitiveTypes.Int64, dt)
	nullable, err := add.Nullable(testSchema)
	require.Nil(t, err)
	assert.True(t, nullable)

	v, err := add.Evaluate(batch)
	require.Nil(t, err)
	requireRows(t, []scalar.Value{scalar.NewInt64(2), scalar.NullOf(scalar.Int64), scalar.NewInt64(4),
		scalar.NewInt64(5), scalar.NewInt64(6)}, v)
	v.Release()

	mul := NewBinaryExpr(NewColumn("a", 0), Multiply, NewColumn("b", 1), WithAllocator(mem))
	dt, err = mul.DataType(testSchema)
	require.Nil(t, err)
	assert.Equal(t, arrow.PrimitiveTypes.Float64, dt)
	v, err = mul.Evaluate(batch)
	require.Nil(t, err)
	requireRows(t, []scalar.Value{scalar.NewFloat64(1.5), scalar.NullOf(scalar.Float64), scalar.NewFloat64(-3),
		scalar.NewFloat64(0), scalar.NewFloat64(50)}, v)
	v.Release()
}

func TestBinaryScalarInputs(t *testing.T) {
	expr := NewBinaryExpr(Lit(int32(1)), Plus, Lit(int64(2)))
	v, err := expr.Evaluate(emptyBatch)
	require.Nil(t, err)
	assert.True(t, v.IsScalar())
	assert.True(t, scalar.NewInt64(3).Equal(v.Scalar()))

	expr = NewBinaryExpr(Lit(uint8(200)), Minus, Lit(int8(-1)))
	dt, err := expr.DataType(testSchema)
	require.Nil(t, err)
	assert.Equal(t, arrow.PrimitiveTypes.Int16, dt)
	v, err = expr.Evaluate(emptyBatch)
	require.Nil(t, err)
	assert.True(t, scalar.NewInt16(201).Equal(v.Scalar()))

	expr = NewBinaryExpr(Lit(int32(7)), Plus, NewLiteral(scalar.NewNull()))
	v, err = expr.Evaluate(emptyBatch)
	require.Nil(t, err)
	assert.True(t, scalar.NullOf(scalar.Int32).Equal(v.Scalar()))
}

func TestBinaryComparison(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	batch := initTestBatch(t, mem)
	defer batch.Release()

	gt := NewBinaryExpr(NewColumn("a", 0), Gt, Lit(int32(3)), WithAllocator(mem))
	dt, err := gt.DataType(testSchema)
	require.Nil(t, err)
	assert.Equal(t, arrow.FixedWidthTypes.Boolean, dt)
	v, err := gt.Evaluate(batch)
	require.Nil(t, err)
	requireRows(t, []scalar.Value{scalar.NewBool(false), scalar.NullOf(scalar.Boolean), scalar.NewBool(false),
		scalar.NewBool(true), scalar.NewBool(true)}, v)
	v.Release()

	eq := NewBinaryExpr(NewColumn("c", 2), Eq, Lit("yy"), WithAllocator(mem))
	v, err = eq.Evaluate(batch)
	require.Nil(t, err)
	requireRows(t, []scalar.Value{scalar.NewBool(false), scalar.NewBool(true), scalar.NullOf(scalar.Boolean),
		scalar.NewBool(false), scalar.NewBool(false)}, v)
	v.Release()

	le := NewBinaryExpr(Lit(2.5), LtEq, Lit(int32(3)))
	v, err = le.Evaluate(emptyBatch)
	require.Nil(t, err)
	assert.True(t, scalar.NewBool(true).Equal(v.Scalar()))
}

func TestBinaryLogic(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	batch := initTestBatch(t, mem)
	defer batch.Release()

	and := NewBinaryExpr(NewColumn("d", 3), And, Lit(false), WithAllocator(mem))
	v, err := and.Evaluate(batch)
	require.Nil(t, err)
	requireRows(t, []scalar.Value{scalar.NewBool(false), scalar.NewBool(false), scalar.NewBool(false),
		scalar.NewBool(false), scalar.NewBool(false)}, v)
	v.Release()

	or := NewBinaryExpr(NewColumn("d", 3), Or, Lit(false), WithAllocator(mem))
	v, err = or.Evaluate(batch)
	require.Nil(t, err)
	requireRows(t, []scalar.Value{scalar.NewBool(true), scalar.NewBool(false), scalar.NullOf(scalar.Boolean),
		scalar.NewBool(true), scalar.NewBool(false)}, v)
	v.Release()
}

func TestBinaryTypeErrors(t *testing.T) {
	for _, expr := range []*BinaryExpr{
		NewBinaryExpr(NewColumn("c", 2), Plus, Lit(int32(1))),
		NewBinaryExpr(NewColumn("a", 0), And, Lit(true)),
		NewBinaryExpr(NewColumn("c", 2), Lt, Lit(int32(1))),
		NewBinaryExpr(NewColumn("e", 4), Eq, Lit(int32(1))),
	} {
		_, err := expr.DataType(testSchema)
		assert.True(t, errors.Is(err, ErrType), expr.String())
		_, err = expr.Nullable(testSchema)
		assert.True(t, errors.Is(err, ErrType), expr.String())
	}
	batch := initTestBatch(t, memory.DefaultAllocator)
	defer batch.Release()
	_, err := NewBinaryExpr(NewColumn("c", 2), Plus, Lit(int32(1))).Evaluate(batch)
	assert.True(t, errors.Is(err, ErrExecution))
}

func TestBinaryOverflow(t *testing.T) {
	expr := NewBinaryExpr(Lit(int32(math.MaxInt32)), Plus, Lit(int32(1)))
	_, err := expr.Evaluate(emptyBatch)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrExecution))
	assert.True(t, errors.Is(err, arrow.ErrInvalid))

	wrapping := NewBinaryExpr(Lit(int32(math.MaxInt32)), Plus, Lit(int32(1)), WithOverflowCheck(false))
	v, err := wrapping.Evaluate(emptyBatch)
	require.Nil(t, err)
	assert.True(t, scalar.NewInt32(math.MinInt32).Equal(v.Scalar()))

	div := NewBinaryExpr(Lit(int64(1)), Divide, Lit(int64(0)))
	_, err = div.Evaluate(emptyBatch)
	assert.True(t, errors.Is(err, ErrExecution))
	assert.True(t, errors.Is(err, arrow.ErrInvalid))
}

func TestBinaryStats(t *testing.T) {
	expr := NewBinaryExpr(NewColumn("a", 0), Plus, Lit(int32(1)))
	min, max := scalar.NewInt32(1), scalar.NewInt32(5)
	columns := []stats.ColumnStatistics{{MinValue: &min, MaxValue: &max}}
	assert.Nil(t, expr.ExprStats().Boundaries(columns))

	policy := StatsFunc(func(columns []stats.ColumnStatistics) *stats.ExprBoundaries {
		return &stats.ExprBoundaries{MinValue: scalar.NewInt32(2), MaxValue: scalar.NewInt32(6)}
	})
	expr = NewBinaryExpr(NewColumn("a", 0), Plus, Lit(int32(1)), WithStatistics(policy))
	b := expr.ExprStats().Boundaries(columns)
	require.NotNil(t, b)
	assert.Equal(t, int64(6), b.MaxValue.Int64())
}

func TestParseOperator(t *testing.T) {
	for symbol, expect := range map[string]Operator{"+": Plus, "<=": LtEq, "and": And, "OR": Or, "<>": NotEq, "!=": NotEq} {
		op, err := ParseOperator(symbol)
		require.Nil(t, err)
		assert.Equal(t, expect, op)
	}
	_, err := ParseOperator("%")
	assert.NotNil(t, err)
	assert.True(t, Plus.IsArithmetic())
	assert.True(t, GtEq.IsComparison())
	assert.True(t, Or.IsLogic())
}

func TestNumericCoercion(t *testing.T) {
	cases := []struct {
		left, right, expect scalar.Type
	}{
		{scalar.Int8, scalar.Int32, scalar.Int32},
		{scalar.UInt16, scalar.UInt8, scalar.UInt16},
		{scalar.UInt8, scalar.Int8, scalar.Int16},
		{scalar.UInt32, scalar.Int64, scalar.Int64},
		{scalar.UInt64, scalar.Int8, scalar.Int64},
		{scalar.Float32, scalar.Float32, scalar.Float32},
		{scalar.Float32, scalar.Int8, scalar.Float64},
	}
	for _, c := range cases {
		tp, ok := numericCoercion(c.left, c.right)
		assert.True(t, ok)
		assert.Equal(t, c.expect, tp, "%s, %s", c.left, c.right)
	}
	_, ok := numericCoercion(scalar.Utf8, scalar.Int8)
	assert.False(t, ok)
}
