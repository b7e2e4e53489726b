package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/xiaobogaga/colexpr/columnar"
	"github.com/xiaobogaga/colexpr/scalar"
)

type Operator int

const (
	Plus Operator = iota
	Minus
	Multiply
	Divide
	Eq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	And
	Or
)

var operatorSymbols = map[Operator]string{
	Plus:     "+",
	Minus:    "-",
	Multiply: "*",
	Divide:   "/",
	Eq:       "=",
	NotEq:    "!=",
	Lt:       "<",
	LtEq:     "<=",
	Gt:       ">",
	GtEq:     ">=",
	And:      "AND",
	Or:       "OR",
}

// Kernels of the compute package that are called by name.
var operatorKernels = map[Operator]string{
	Eq:    "equal",
	NotEq: "not_equal",
	Lt:    "less",
	LtEq:  "less_equal",
	Gt:    "greater",
	GtEq:  "greater_equal",
	And:   "and_kleene",
	Or:    "or_kleene",
}

func (op Operator) String() string {
	return operatorSymbols[op]
}

func (op Operator) IsArithmetic() bool { return op >= Plus && op <= Divide }

func (op Operator) IsComparison() bool { return op >= Eq && op <= GtEq }

func (op Operator) IsLogic() bool { return op == And || op == Or }

// ParseOperator maps a symbol such as "<=" or "and" to its operator.
func ParseOperator(symbol string) (Operator, error) {
	symbol = strings.ToUpper(symbol)
	if symbol == "<>" {
		return NotEq, nil
	}
	for op, s := range operatorSymbols {
		if s == symbol {
			return op, nil
		}
	}
	return Plus, errors.New(fmt.Sprintf("unknown operator %s", symbol))
}

// BinaryExpr applies an arithmetic, comparison or logic operator. Both sides
// are cast to a common type first, see type_coercion.go. AND and OR follow
// three valued logic: false AND NULL is false.
type BinaryExpr struct {
	left    PhysicalExpr
	op      Operator
	right   PhysicalExpr
	options exprOptions
}

func NewBinaryExpr(left PhysicalExpr, op Operator, right PhysicalExpr, opts ...Option) *BinaryExpr {
	return &BinaryExpr{left: left, op: op, right: right, options: newOptions(opts)}
}

func (binary *BinaryExpr) Left() PhysicalExpr { return binary.left }

func (binary *BinaryExpr) Op() Operator { return binary.op }

func (binary *BinaryExpr) Right() PhysicalExpr { return binary.right }

// resolve returns the type operands are cast to and the result type.
func (binary *BinaryExpr) resolve(schema *arrow.Schema) (operand scalar.Type, result scalar.Type, err error) {
	leftType, err := binary.left.DataType(schema)
	if err != nil {
		return
	}
	rightType, err := binary.right.DataType(schema)
	if err != nil {
		return
	}
	leftTp, err := scalar.TypeOf(leftType)
	if err != nil {
		return operand, result, typeError("%s: %v", binary, err)
	}
	rightTp, err := scalar.TypeOf(rightType)
	if err != nil {
		return operand, result, typeError("%s: %v", binary, err)
	}
	var ok bool
	switch {
	case binary.op.IsArithmetic():
		operand, ok = arithmeticCoercion(leftTp, rightTp)
		result = operand
	case binary.op.IsComparison():
		operand, ok = comparisonCoercion(leftTp, rightTp)
		result = scalar.Boolean
	default:
		operand, ok = logicCoercion(leftTp, rightTp)
		result = scalar.Boolean
	}
	if !ok {
		return operand, result, typeError("cannot apply %s to %s and %s", binary.op, leftType, rightType)
	}
	return operand, result, nil
}

func (binary *BinaryExpr) DataType(schema *arrow.Schema) (arrow.DataType, error) {
	_, result, err := binary.resolve(schema)
	if err != nil {
		return nil, err
	}
	return result.DataType(), nil
}

func (binary *BinaryExpr) Nullable(schema *arrow.Schema) (bool, error) {
	if _, _, err := binary.resolve(schema); err != nil {
		return false, err
	}
	return anyNullable(schema, binary.left, binary.right)
}

func (binary *BinaryExpr) Evaluate(batch arrow.Record) (columnar.Value, error) {
	operand, result, err := binary.resolve(batch.Schema())
	if err != nil {
		return columnar.Value{}, fmt.Errorf("%w: %w", ErrExecution, err)
	}
	values, err := evaluateAll(batch, []PhysicalExpr{binary.left, binary.right})
	if err != nil {
		return columnar.Value{}, err
	}
	defer releaseAll(values)
	if operand == scalar.Null {
		return columnar.FromScalar(scalar.NullOf(result)), nil
	}
	ctx := binary.options.kernelCtx()
	datums, err := castDatums(ctx, values, operand)
	if err != nil {
		return columnar.Value{}, executionError(err, "evaluating %s", binary)
	}
	defer releaseDatums(datums)
	out, err := binary.call(ctx, datums[0], datums[1])
	if err != nil {
		return columnar.Value{}, executionError(err, "evaluating %s", binary)
	}
	defer out.Release()
	return columnar.FromDatum(out)
}

func (binary *BinaryExpr) call(ctx context.Context, left, right compute.Datum) (compute.Datum, error) {
	opts := compute.ArithmeticOptions{NoCheckOverflow: !binary.options.checkOverflow}
	switch binary.op {
	case Plus:
		return compute.Add(ctx, opts, left, right)
	case Minus:
		return compute.Subtract(ctx, opts, left, right)
	case Multiply:
		return compute.Multiply(ctx, opts, left, right)
	case Divide:
		return compute.Divide(ctx, opts, left, right)
	}
	return compute.CallFunction(ctx, operatorKernels[binary.op], nil, left, right)
}

func (binary *BinaryExpr) ExprStats() PhysicalExprStats {
	return binary.options.stats
}

func (binary *BinaryExpr) String() string {
	return fmt.Sprintf("%s %s %s", binary.left, binary.op, binary.right)
}

func (binary *BinaryExpr) children() []PhysicalExpr {
	return []PhysicalExpr{binary.left, binary.right}
}

func (binary *BinaryExpr) withChildren(children []PhysicalExpr) PhysicalExpr {
	return &BinaryExpr{left: children[0], op: binary.op, right: children[1], options: binary.options}
}

// castDatums casts every value to tp and hands them out as kernel datums the
// caller releases.
func castDatums(ctx context.Context, values []columnar.Value, tp scalar.Type) ([]compute.Datum, error) {
	datums := make([]compute.Datum, 0, len(values))
	for _, v := range values {
		casted, err := v.CastTo(ctx, tp.DataType())
		if err != nil {
			releaseDatums(datums)
			return nil, err
		}
		datums = append(datums, casted.Datum())
		casted.Release()
	}
	return datums, nil
}

func releaseDatums(datums []compute.Datum) {
	for _, d := range datums {
		d.Release()
	}
}

func anyNullable(schema *arrow.Schema, exprs ...PhysicalExpr) (bool, error) {
	nullable := false
	for _, expr := range exprs {
		n, err := expr.Nullable(schema)
		if err != nil {
			return false, err
		}
		nullable = nullable || n
	}
	return nullable, nil
}
