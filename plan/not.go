package plan

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/xiaobogaga/colexpr/columnar"
	"github.com/xiaobogaga/colexpr/scalar"
)

// NotExpr negates a boolean. NOT NULL is NULL.
type NotExpr struct {
	expr    PhysicalExpr
	options exprOptions
}

func NewNotExpr(expr PhysicalExpr, opts ...Option) *NotExpr {
	return &NotExpr{expr: expr, options: newOptions(opts)}
}

func (not *NotExpr) Expr() PhysicalExpr { return not.expr }

func (not *NotExpr) resolve(schema *arrow.Schema) (arrow.DataType, error) {
	dt, err := not.expr.DataType(schema)
	if err != nil {
		return nil, err
	}
	if dt.ID() != arrow.BOOL && dt.ID() != arrow.NULL {
		return nil, typeError("NOT expects a boolean, %s is %s", not.expr, dt)
	}
	return dt, nil
}

func (not *NotExpr) DataType(schema *arrow.Schema) (arrow.DataType, error) {
	if _, err := not.resolve(schema); err != nil {
		return nil, err
	}
	return arrow.FixedWidthTypes.Boolean, nil
}

func (not *NotExpr) Nullable(schema *arrow.Schema) (bool, error) {
	if _, err := not.resolve(schema); err != nil {
		return false, err
	}
	return not.expr.Nullable(schema)
}

func (not *NotExpr) Evaluate(batch arrow.Record) (columnar.Value, error) {
	dt, err := not.resolve(batch.Schema())
	if err != nil {
		return columnar.Value{}, fmt.Errorf("%w: %w", ErrExecution, err)
	}
	v, err := not.expr.Evaluate(batch)
	if err != nil {
		return columnar.Value{}, err
	}
	defer v.Release()
	if dt.ID() == arrow.NULL {
		return columnar.FromScalar(scalar.NullOf(scalar.Boolean)), nil
	}
	in := v.Datum()
	defer in.Release()
	out, err := compute.CallFunction(not.options.kernelCtx(), "not", nil, in)
	if err != nil {
		return columnar.Value{}, executionError(err, "evaluating %s", not)
	}
	defer out.Release()
	return columnar.FromDatum(out)
}

func (not *NotExpr) ExprStats() PhysicalExprStats {
	return not.options.stats
}

func (not *NotExpr) String() string {
	return fmt.Sprintf("NOT %s", not.expr)
}

func (not *NotExpr) children() []PhysicalExpr {
	return []PhysicalExpr{not.expr}
}

func (not *NotExpr) withChildren(children []PhysicalExpr) PhysicalExpr {
	return &NotExpr{expr: children[0], options: not.options}
}
