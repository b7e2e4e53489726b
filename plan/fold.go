package plan

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// compositeExpr is implemented by every expression built from other
// expressions.
type compositeExpr interface {
	children() []PhysicalExpr
	withChildren(children []PhysicalExpr) PhysicalExpr
}

// IsConstant reports whether expr reads no column, which makes its value the
// same for every row of every batch.
func IsConstant(expr PhysicalExpr) bool {
	switch e := expr.(type) {
	case *Literal:
		return true
	case compositeExpr:
		for _, child := range e.children() {
			if !IsConstant(child) {
				return false
			}
		}
		return true
	}
	return false
}

// FoldConstants replaces every constant subtree by the literal it evaluates
// to. Evaluation errors, such as a constant division by zero, are returned.
func FoldConstants(expr PhysicalExpr) (PhysicalExpr, error) {
	if _, ok := AsLiteral(expr); ok {
		return expr, nil
	}
	if IsConstant(expr) {
		return evaluateConstant(expr)
	}
	composite, ok := expr.(compositeExpr)
	if !ok {
		return expr, nil
	}
	children := composite.children()
	folded := make([]PhysicalExpr, len(children))
	for i, child := range children {
		f, err := FoldConstants(child)
		if err != nil {
			return nil, err
		}
		folded[i] = f
	}
	return composite.withChildren(folded), nil
}

var emptyBatch = array.NewRecord(arrow.NewSchema(nil, nil), nil, 0)

func evaluateConstant(expr PhysicalExpr) (*Literal, error) {
	v, err := expr.Evaluate(emptyBatch)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	if !v.IsScalar() {
		panic(fmt.Sprintf("plan: constant expression %s evaluated to an array", expr))
	}
	return NewLiteral(v.Scalar()), nil
}
