package plan

import (
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaobogaga/colexpr/functions"
	strfuncs "github.com/xiaobogaga/colexpr/functions/strings"
	"github.com/xiaobogaga/colexpr/scalar"
)

func testRegistry(t *testing.T) *functions.Registry {
	registry := functions.NewRegistry()
	require.Nil(t, strfuncs.Register(registry))
	return registry
}

func TestScalarFunctionExpr(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	batch := initTestBatch(t, mem)
	defer batch.Release()
	registry := testRegistry(t)

	expr, err := NewScalarFunctionExprByName(registry, "CHAR_LENGTH", []PhysicalExpr{NewColumn("c", 2)}, WithAllocator(mem))
	require.Nil(t, err)
	assert.Equal(t, "char_length(c@2)", expr.String())
	dt, err := expr.DataType(testSchema)
	require.Nil(t, err)
	assert.Equal(t, arrow.PrimitiveTypes.Int32, dt)
	nullable, err := expr.Nullable(testSchema)
	require.Nil(t, err)
	assert.True(t, nullable)

	v, err := expr.Evaluate(batch)
	require.Nil(t, err)
	requireRows(t, []scalar.Value{scalar.NewInt32(1), scalar.NewInt32(2), scalar.NullOf(scalar.Int32),
		scalar.NewInt32(0), scalar.NewInt32(5)}, v)
	v.Release()

	upper, err := NewScalarFunctionExprByName(registry, "upper", []PhysicalExpr{Lit("abc")})
	require.Nil(t, err)
	v, err = upper.Evaluate(emptyBatch)
	require.Nil(t, err)
	assert.True(t, scalar.NewUtf8("ABC").Equal(v.Scalar()))
}

func TestScalarFunctionExprErrors(t *testing.T) {
	registry := testRegistry(t)
	_, err := NewScalarFunctionExprByName(registry, "md5", nil)
	assert.True(t, errors.Is(err, ErrType))

	expr, err := NewScalarFunctionExprByName(registry, "upper", []PhysicalExpr{NewColumn("a", 0)})
	require.Nil(t, err)
	_, err = expr.DataType(testSchema)
	assert.True(t, errors.Is(err, ErrType))
	batch := initTestBatch(t, memory.DefaultAllocator)
	defer batch.Release()
	_, err = expr.Evaluate(batch)
	assert.True(t, errors.Is(err, ErrExecution))
}
