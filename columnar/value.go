// Package columnar holds the result of evaluating an expression against a
// batch: either one array with a row per batch row, or a single scalar that
// stands for every row.
package columnar

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/xiaobogaga/colexpr/scalar"
)

type Kind int

const (
	KindArray Kind = iota
	KindScalar
)

func (k Kind) String() string {
	if k == KindScalar {
		return "scalar"
	}
	return "array"
}

// Value is either Array or Scalar. An Array value owns one reference to its
// array, which Release gives back. The zero Value is an Array without an
// array: it has no data type and releasing it does nothing.
type Value struct {
	kind Kind
	arr  arrow.Array
	sc   scalar.Value
}

// FromArray wraps arr, taking over the caller's reference.
func FromArray(arr arrow.Array) Value {
	return Value{kind: KindArray, arr: arr}
}

func FromScalar(v scalar.Value) Value {
	return Value{kind: KindScalar, sc: v}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsScalar() bool { return v.kind == KindScalar }

// Array returns the wrapped array of an Array value, nil otherwise.
func (v Value) Array() arrow.Array { return v.arr }

func (v Value) Scalar() scalar.Value { return v.sc }

func (v Value) DataType() arrow.DataType {
	if v.kind == KindArray {
		if v.arr == nil {
			return nil
		}
		return v.arr.DataType()
	}
	return v.sc.DataType()
}

// IntoArray materializes the value as an array of length rows allocated from
// the default allocator. See IntoArrayWithAllocator.
func (v Value) IntoArray(length int) arrow.Array {
	return v.IntoArrayWithAllocator(memory.DefaultAllocator, length)
}

// IntoArrayWithAllocator returns an array the caller must release. An Array
// value hands out a new reference to its own array, which must already hold
// length rows. A Scalar value is repeated length times, or length nulls when
// the scalar is null.
func (v Value) IntoArrayWithAllocator(mem memory.Allocator, length int) arrow.Array {
	if v.kind == KindArray {
		if v.arr.Len() != length {
			panic(fmt.Sprintf("columnar: array of %d rows materialized as %d rows", v.arr.Len(), length))
		}
		v.arr.Retain()
		return v.arr
	}
	return scalar.Broadcast(mem, v.sc, length)
}

// Datum returns a compute datum holding its own reference to the value.
func (v Value) Datum() compute.Datum {
	if v.kind == KindArray {
		return compute.NewDatum(v.arr)
	}
	return &compute.ScalarDatum{Value: v.sc.ToArrow()}
}

// FromDatum converts a kernel result. The datum keeps its own reference and
// must still be released by the caller.
func FromDatum(d compute.Datum) (Value, error) {
	switch datum := d.(type) {
	case *compute.ArrayDatum:
		return FromArray(datum.MakeArray()), nil
	case *compute.ScalarDatum:
		sc, err := scalar.FromArrow(datum.Value)
		if err != nil {
			return Value{}, err
		}
		return FromScalar(sc), nil
	}
	return Value{}, fmt.Errorf("unsupported datum kind %s", d.Kind())
}

// CastTo converts the value to dt with the safe cast rules of the compute
// package, so a value that doesn't fit dt is an error. The result is a new
// value and v stays valid.
func (v Value) CastTo(ctx context.Context, dt arrow.DataType) (Value, error) {
	if arrow.TypeEqual(v.DataType(), dt) {
		v.Retain()
		return v, nil
	}
	tp, err := scalar.TypeOf(dt)
	if err != nil {
		return Value{}, err
	}
	if v.kind == KindScalar && v.sc.IsNull() {
		return FromScalar(scalar.NullOf(tp)), nil
	}
	in := v.Datum()
	defer in.Release()
	out, err := compute.CastDatum(ctx, in, compute.SafeCastOptions(dt))
	if err != nil {
		return Value{}, err
	}
	defer out.Release()
	return FromDatum(out)
}

func (v Value) Retain() {
	if v.arr != nil {
		v.arr.Retain()
	}
}

func (v Value) Release() {
	if v.arr != nil {
		v.arr.Release()
	}
}

func (v Value) String() string {
	if v.kind == KindScalar {
		return fmt.Sprintf("Scalar(%#v)", v.sc)
	}
	if v.arr == nil {
		return "Array(nil)"
	}
	return fmt.Sprintf("Array(%s, %d rows)", v.arr.DataType(), v.arr.Len())
}
