package plan

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/xiaobogaga/colexpr/columnar"
	"github.com/xiaobogaga/colexpr/scalar"
)

// IsNullExpr tests every row for null. It never yields null itself.
type IsNullExpr struct {
	expr    PhysicalExpr
	negated bool
	options exprOptions
}

func NewIsNullExpr(expr PhysicalExpr, opts ...Option) *IsNullExpr {
	return &IsNullExpr{expr: expr, options: newOptions(opts)}
}

// IsNotNullExpr is the complement of IsNullExpr.
type IsNotNullExpr struct {
	IsNullExpr
}

func NewIsNotNullExpr(expr PhysicalExpr, opts ...Option) *IsNotNullExpr {
	return &IsNotNullExpr{IsNullExpr{expr: expr, negated: true, options: newOptions(opts)}}
}

func (isNull *IsNullExpr) Expr() PhysicalExpr { return isNull.expr }

func (isNull *IsNullExpr) DataType(schema *arrow.Schema) (arrow.DataType, error) {
	if _, err := isNull.expr.DataType(schema); err != nil {
		return nil, err
	}
	return arrow.FixedWidthTypes.Boolean, nil
}

func (isNull *IsNullExpr) Nullable(schema *arrow.Schema) (bool, error) {
	if _, err := isNull.expr.DataType(schema); err != nil {
		return false, err
	}
	return false, nil
}

func (isNull *IsNullExpr) Evaluate(batch arrow.Record) (columnar.Value, error) {
	v, err := isNull.expr.Evaluate(batch)
	if err != nil {
		return columnar.Value{}, err
	}
	defer v.Release()
	if v.IsScalar() {
		return columnar.FromScalar(scalar.NewBool(v.Scalar().IsNull() != isNull.negated)), nil
	}
	// Null arrays carry no validity bitmap, the kernel would see no nulls.
	if v.DataType().ID() == arrow.NULL {
		arr := scalar.Broadcast(isNull.options.mem, scalar.NewBool(!isNull.negated), v.Array().Len())
		return columnar.FromArray(arr), nil
	}
	kernel := "is_null"
	if isNull.negated {
		kernel = "is_not_null"
	}
	in := v.Datum()
	defer in.Release()
	out, err := compute.CallFunction(isNull.options.kernelCtx(), kernel, nil, in)
	if err != nil {
		return columnar.Value{}, executionError(err, "evaluating %s", isNull)
	}
	defer out.Release()
	return columnar.FromDatum(out)
}

func (isNull *IsNullExpr) ExprStats() PhysicalExprStats {
	return isNull.options.stats
}

func (isNull *IsNullExpr) String() string {
	if isNull.negated {
		return fmt.Sprintf("%s IS NOT NULL", isNull.expr)
	}
	return fmt.Sprintf("%s IS NULL", isNull.expr)
}

func (isNull *IsNullExpr) children() []PhysicalExpr {
	return []PhysicalExpr{isNull.expr}
}

func (isNull *IsNullExpr) withChildren(children []PhysicalExpr) PhysicalExpr {
	if isNull.negated {
		return &IsNotNullExpr{IsNullExpr{expr: children[0], negated: true, options: isNull.options}}
	}
	return &IsNullExpr{expr: children[0], options: isNull.options}
}
