package plan

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/xiaobogaga/colexpr/columnar"
	"github.com/xiaobogaga/colexpr/scalar"
	"github.com/xiaobogaga/colexpr/stats"
)

// Literal is a constant. It never looks at the batch it is evaluated on.
type Literal struct {
	value scalar.Value
}

func NewLiteral(value scalar.Value) *Literal {
	return &Literal{value: value}
}

// LiteralType lists the Go types Lit accepts.
type LiteralType interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | string | []byte | arrow.Date32 | arrow.Timestamp
}

// Lit builds a literal from a Go value, so Lit(int32(42)) is an Int32 literal.
func Lit[T LiteralType](v T) *Literal {
	switch x := any(v).(type) {
	case bool:
		return NewLiteral(scalar.NewBool(x))
	case int8:
		return NewLiteral(scalar.NewInt8(x))
	case int16:
		return NewLiteral(scalar.NewInt16(x))
	case int32:
		return NewLiteral(scalar.NewInt32(x))
	case int64:
		return NewLiteral(scalar.NewInt64(x))
	case uint8:
		return NewLiteral(scalar.NewUInt8(x))
	case uint16:
		return NewLiteral(scalar.NewUInt16(x))
	case uint32:
		return NewLiteral(scalar.NewUInt32(x))
	case uint64:
		return NewLiteral(scalar.NewUInt64(x))
	case float32:
		return NewLiteral(scalar.NewFloat32(x))
	case float64:
		return NewLiteral(scalar.NewFloat64(x))
	case string:
		return NewLiteral(scalar.NewUtf8(x))
	case []byte:
		return NewLiteral(scalar.NewBinary(x))
	case arrow.Date32:
		return NewLiteral(scalar.NewDate32(x))
	case arrow.Timestamp:
		return NewLiteral(scalar.NewTimestamp(x))
	}
	panic(fmt.Sprintf("plan: no literal for %T", v))
}

func (literal *Literal) Value() scalar.Value {
	return literal.value
}

func (literal *Literal) DataType(*arrow.Schema) (arrow.DataType, error) {
	return literal.value.DataType(), nil
}

func (literal *Literal) Nullable(*arrow.Schema) (bool, error) {
	return literal.value.IsNull(), nil
}

func (literal *Literal) Evaluate(arrow.Record) (columnar.Value, error) {
	return columnar.FromScalar(literal.value), nil
}

func (literal *Literal) ExprStats() PhysicalExprStats {
	return literalStats{value: literal.value}
}

func (literal *Literal) String() string {
	return literal.value.String()
}

type literalStats struct {
	value scalar.Value
}

// Boundaries of a constant are the constant itself whatever the input holds.
func (s literalStats) Boundaries([]stats.ColumnStatistics) *stats.ExprBoundaries {
	return &stats.ExprBoundaries{
		MinValue:      s.value,
		MaxValue:      s.value,
		DistinctCount: stats.Count(1),
	}
}
