package plan

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/xiaobogaga/colexpr/columnar"
	"github.com/xiaobogaga/colexpr/scalar"
)

// CastExpr converts its input to another type. Values that don't fit the
// target type, such as 300 as Int8, fail the evaluation.
type CastExpr struct {
	expr    PhysicalExpr
	to      arrow.DataType
	options exprOptions
}

func NewCastExpr(expr PhysicalExpr, to arrow.DataType, opts ...Option) *CastExpr {
	return &CastExpr{expr: expr, to: to, options: newOptions(opts)}
}

func (cast *CastExpr) Expr() PhysicalExpr { return cast.expr }

func (cast *CastExpr) resolve(schema *arrow.Schema) error {
	from, err := cast.expr.DataType(schema)
	if err != nil {
		return err
	}
	if _, err := scalar.TypeOf(cast.to); err != nil {
		return typeError("cannot cast to %s", cast.to)
	}
	if arrow.TypeEqual(from, cast.to) || from.ID() == arrow.NULL {
		return nil
	}
	if !compute.CanCast(from, cast.to) {
		return typeError("cannot cast %s from %s to %s", cast.expr, from, cast.to)
	}
	return nil
}

func (cast *CastExpr) DataType(schema *arrow.Schema) (arrow.DataType, error) {
	if err := cast.resolve(schema); err != nil {
		return nil, err
	}
	return cast.to, nil
}

func (cast *CastExpr) Nullable(schema *arrow.Schema) (bool, error) {
	if err := cast.resolve(schema); err != nil {
		return false, err
	}
	return cast.expr.Nullable(schema)
}

func (cast *CastExpr) Evaluate(batch arrow.Record) (columnar.Value, error) {
	if err := cast.resolve(batch.Schema()); err != nil {
		return columnar.Value{}, fmt.Errorf("%w: %w", ErrExecution, err)
	}
	v, err := cast.expr.Evaluate(batch)
	if err != nil {
		return columnar.Value{}, err
	}
	defer v.Release()
	out, err := v.CastTo(cast.options.kernelCtx(), cast.to)
	if err != nil {
		return columnar.Value{}, executionError(err, "evaluating %s", cast)
	}
	return out, nil
}

func (cast *CastExpr) ExprStats() PhysicalExprStats {
	return cast.options.stats
}

func (cast *CastExpr) String() string {
	tp, err := scalar.TypeOf(cast.to)
	if err != nil {
		return fmt.Sprintf("CAST(%s AS %s)", cast.expr, cast.to)
	}
	return fmt.Sprintf("CAST(%s AS %s)", cast.expr, tp)
}

func (cast *CastExpr) children() []PhysicalExpr {
	return []PhysicalExpr{cast.expr}
}

func (cast *CastExpr) withChildren(children []PhysicalExpr) PhysicalExpr {
	return &CastExpr{expr: children[0], to: cast.to, options: cast.options}
}
