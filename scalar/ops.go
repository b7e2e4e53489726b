package scalar

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/constraints"
)

// Compare returns 0 if v1 == v2, <0 if v1 < v2 and >0 otherwise. Numeric
// values compare by value whatever their width, every other pair must share a
// tag. Nulls are not ordered.
func Compare(v1, v2 Value) (int, error) {
	if v1.IsNull() || v2.IsNull() {
		return 0, fmt.Errorf("cannot compare %#v with %#v", v1, v2)
	}
	if v1.tp.IsNumeric() && v2.tp.IsNumeric() {
		return compareNumeric(v1, v2), nil
	}
	if v1.tp != v2.tp {
		return 0, fmt.Errorf("cannot compare %#v with %#v", v1, v2)
	}
	switch v1.tp {
	case Utf8, Binary:
		return strings.Compare(v1.s, v2.s), nil
	case Boolean, Date32, TimestampNanosecond:
		return compareOrdered(v1.i, v2.i), nil
	}
	return 0, fmt.Errorf("%s values are not ordered", v1.tp)
}

func compareNumeric(v1, v2 Value) int {
	tp1, tp2 := v1.tp, v2.tp
	switch {
	case tp1.IsFloat() || tp2.IsFloat():
		return compareFloat(v1.asFloat64(), v2.asFloat64())
	case tp1.IsSignedInteger() && tp2.IsSignedInteger():
		return compareOrdered(v1.i, v2.i)
	case tp1.IsUnsignedInteger() && tp2.IsUnsignedInteger():
		return compareOrdered(v1.u, v2.u)
	case tp1.IsSignedInteger():
		if v1.i < 0 {
			return -1
		}
		return compareOrdered(uint64(v1.i), v2.u)
	default:
		if v2.i < 0 {
			return 1
		}
		return compareOrdered(v1.u, uint64(v2.i))
	}
}

func compareOrdered[T constraints.Ordered](v1, v2 T) int {
	switch {
	case v1 == v2:
		return 0
	case v1 < v2:
		return -1
	default:
		return 1
	}
}

// NaN sorts after every other float.
func compareFloat(v1, v2 float64) int {
	nan1, nan2 := math.IsNaN(v1), math.IsNaN(v2)
	switch {
	case nan1 && nan2:
		return 0
	case nan1:
		return 1
	case nan2:
		return -1
	}
	return compareOrdered(v1, v2)
}

func (v Value) asFloat64() float64 {
	switch {
	case v.tp.IsFloat():
		return v.f
	case v.tp.IsUnsignedInteger():
		return float64(v.u)
	default:
		return float64(v.i)
	}
}

// Max returns the greater of v1 and v2, v1 when they are equal.
func Max(v1, v2 Value) (Value, error) {
	g, err := Compare(v1, v2)
	if err != nil {
		return Value{}, err
	}
	if g >= 0 {
		return v1, nil
	}
	return v2, nil
}

// Min returns the lesser of v1 and v2, v1 when they are equal.
func Min(v1, v2 Value) (Value, error) {
	g, err := Compare(v1, v2)
	if err != nil {
		return Value{}, err
	}
	if g <= 0 {
		return v1, nil
	}
	return v2, nil
}
