package plan

import (
	"github.com/xiaobogaga/colexpr/scalar"
)

var integerWidth = map[scalar.Type]int{
	scalar.Int8:   8,
	scalar.Int16:  16,
	scalar.Int32:  32,
	scalar.Int64:  64,
	scalar.UInt8:  8,
	scalar.UInt16: 16,
	scalar.UInt32: 32,
	scalar.UInt64: 64,
}

var signedOfWidth = map[int]scalar.Type{
	8:  scalar.Int8,
	16: scalar.Int16,
	32: scalar.Int32,
	64: scalar.Int64,
}

// numericCoercion returns the type both numeric operands are cast to before
// an arithmetic or comparison kernel runs. Integers widen to the wider width,
// signed and unsigned mix into a signed type one width up, and any float
// turns both sides into Float64 unless both are Float32.
func numericCoercion(left, right scalar.Type) (scalar.Type, bool) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return scalar.Null, false
	}
	switch {
	case left == right:
		return left, true
	case left.IsFloat() || right.IsFloat():
		return scalar.Float64, true
	case left.IsSignedInteger() == right.IsSignedInteger():
		if integerWidth[left] >= integerWidth[right] {
			return left, true
		}
		return right, true
	}
	signed, unsigned := left, right
	if left.IsUnsignedInteger() {
		signed, unsigned = right, left
	}
	width := integerWidth[unsigned] * 2
	if integerWidth[signed] > width {
		width = integerWidth[signed]
	}
	if width > 64 {
		width = 64
	}
	return signedOfWidth[width], true
}

// nullCoercion lets an untyped null take the type of the other side.
func nullCoercion(left, right scalar.Type) (scalar.Type, bool) {
	switch {
	case left == scalar.Null:
		return right, true
	case right == scalar.Null:
		return left, true
	}
	return scalar.Null, false
}

func arithmeticCoercion(left, right scalar.Type) (scalar.Type, bool) {
	if tp, ok := nullCoercion(left, right); ok {
		if tp == scalar.Null || tp.IsNumeric() {
			return tp, true
		}
		return scalar.Null, false
	}
	return numericCoercion(left, right)
}

// comparisonCoercion accepts numbers of any kind or two operands of one type.
func comparisonCoercion(left, right scalar.Type) (scalar.Type, bool) {
	if tp, ok := nullCoercion(left, right); ok {
		return tp, true
	}
	if tp, ok := numericCoercion(left, right); ok {
		return tp, true
	}
	if left == right {
		return left, true
	}
	return scalar.Null, false
}

func logicCoercion(left, right scalar.Type) (scalar.Type, bool) {
	isBool := func(tp scalar.Type) bool { return tp == scalar.Boolean || tp == scalar.Null }
	if isBool(left) && isBool(right) {
		return scalar.Boolean, true
	}
	return scalar.Null, false
}
