package plan

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/xiaobogaga/colexpr/columnar"
	"github.com/xiaobogaga/colexpr/functions"
)

// ScalarFunctionExpr calls a registered function on its arguments.
type ScalarFunctionExpr struct {
	fn      *functions.ScalarFunction
	args    []PhysicalExpr
	options exprOptions
}

func NewScalarFunctionExpr(fn *functions.ScalarFunction, args []PhysicalExpr, opts ...Option) *ScalarFunctionExpr {
	return &ScalarFunctionExpr{fn: fn, args: args, options: newOptions(opts)}
}

// NewScalarFunctionExprByName looks name up in registry.
func NewScalarFunctionExprByName(registry *functions.Registry, name string, args []PhysicalExpr, opts ...Option) (*ScalarFunctionExpr, error) {
	fn, ok := registry.Lookup(name)
	if !ok {
		return nil, typeError("function '%s' cannot find", name)
	}
	return NewScalarFunctionExpr(fn, args, opts...), nil
}

func (function *ScalarFunctionExpr) Name() string { return function.fn.Name }

func (function *ScalarFunctionExpr) Args() []PhysicalExpr { return function.args }

func (function *ScalarFunctionExpr) DataType(schema *arrow.Schema) (arrow.DataType, error) {
	argTypes := make([]arrow.DataType, len(function.args))
	for i, arg := range function.args {
		dt, err := arg.DataType(schema)
		if err != nil {
			return nil, err
		}
		argTypes[i] = dt
	}
	dt, err := function.fn.ReturnType(argTypes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrType, err)
	}
	return dt, nil
}

func (function *ScalarFunctionExpr) Nullable(schema *arrow.Schema) (bool, error) {
	if _, err := function.DataType(schema); err != nil {
		return false, err
	}
	return anyNullable(schema, function.args...)
}

func (function *ScalarFunctionExpr) Evaluate(batch arrow.Record) (columnar.Value, error) {
	if _, err := function.DataType(batch.Schema()); err != nil {
		return columnar.Value{}, fmt.Errorf("%w: %w", ErrExecution, err)
	}
	values, err := evaluateAll(batch, function.args)
	if err != nil {
		return columnar.Value{}, err
	}
	defer releaseAll(values)
	out, err := function.fn.Fn(function.options.kernelCtx(), values)
	if err != nil {
		return columnar.Value{}, executionError(err, "evaluating %s", function)
	}
	return out, nil
}

func (function *ScalarFunctionExpr) ExprStats() PhysicalExprStats {
	return function.options.stats
}

func (function *ScalarFunctionExpr) String() string {
	args := make([]string, len(function.args))
	for i, arg := range function.args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", function.fn.Name, strings.Join(args, ", "))
}

func (function *ScalarFunctionExpr) children() []PhysicalExpr {
	return function.args
}

func (function *ScalarFunctionExpr) withChildren(children []PhysicalExpr) PhysicalExpr {
	return &ScalarFunctionExpr{fn: function.fn, args: children, options: function.options}
}
