package plan

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/xiaobogaga/colexpr/columnar"
	"github.com/xiaobogaga/colexpr/scalar"
)

// NegativeExpr flips the sign of a signed integer or float.
type NegativeExpr struct {
	expr    PhysicalExpr
	options exprOptions
}

func NewNegativeExpr(expr PhysicalExpr, opts ...Option) *NegativeExpr {
	return &NegativeExpr{expr: expr, options: newOptions(opts)}
}

func (negative *NegativeExpr) Expr() PhysicalExpr { return negative.expr }

func (negative *NegativeExpr) resolve(schema *arrow.Schema) (scalar.Type, error) {
	dt, err := negative.expr.DataType(schema)
	if err != nil {
		return scalar.Null, err
	}
	tp, err := scalar.TypeOf(dt)
	if err != nil || !(tp == scalar.Null || tp.IsSignedInteger() || tp.IsFloat()) {
		return scalar.Null, typeError("cannot negate %s of type %s", negative.expr, dt)
	}
	return tp, nil
}

func (negative *NegativeExpr) DataType(schema *arrow.Schema) (arrow.DataType, error) {
	tp, err := negative.resolve(schema)
	if err != nil {
		return nil, err
	}
	return tp.DataType(), nil
}

func (negative *NegativeExpr) Nullable(schema *arrow.Schema) (bool, error) {
	if _, err := negative.resolve(schema); err != nil {
		return false, err
	}
	return negative.expr.Nullable(schema)
}

func (negative *NegativeExpr) Evaluate(batch arrow.Record) (columnar.Value, error) {
	tp, err := negative.resolve(batch.Schema())
	if err != nil {
		return columnar.Value{}, fmt.Errorf("%w: %w", ErrExecution, err)
	}
	v, err := negative.expr.Evaluate(batch)
	if err != nil {
		return columnar.Value{}, err
	}
	defer v.Release()
	if tp == scalar.Null {
		return columnar.FromScalar(scalar.NewNull()), nil
	}
	in := v.Datum()
	defer in.Release()
	opts := compute.ArithmeticOptions{NoCheckOverflow: !negative.options.checkOverflow}
	out, err := compute.Negate(negative.options.kernelCtx(), opts, in)
	if err != nil {
		return columnar.Value{}, executionError(err, "evaluating %s", negative)
	}
	defer out.Release()
	return columnar.FromDatum(out)
}

func (negative *NegativeExpr) ExprStats() PhysicalExprStats {
	return negative.options.stats
}

func (negative *NegativeExpr) String() string {
	return fmt.Sprintf("(- %s)", negative.expr)
}

func (negative *NegativeExpr) children() []PhysicalExpr {
	return []PhysicalExpr{negative.expr}
}

func (negative *NegativeExpr) withChildren(children []PhysicalExpr) PhysicalExpr {
	return &NegativeExpr{expr: children[0], options: negative.options}
}
