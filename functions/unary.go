package functions

import (
	"context"
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute/exec"
	"github.com/xiaobogaga/colexpr/columnar"
	"github.com/xiaobogaga/colexpr/scalar"
)

// AcceptOne builds a ReturnTypeFunc for functions of one argument whose type
// is one of accepted. A Null argument is accepted too.
func AcceptOne(name string, ret arrow.DataType, accepted ...arrow.DataType) ReturnTypeFunc {
	return func(args []arrow.DataType) (arrow.DataType, error) {
		if len(args) != 1 {
			return nil, errors.New(fmt.Sprintf("%s takes 1 argument, got %d", name, len(args)))
		}
		if args[0].ID() == arrow.NULL {
			return ret, nil
		}
		for _, dt := range accepted {
			if arrow.TypeEqual(args[0], dt) {
				return ret, nil
			}
		}
		return nil, errors.New(fmt.Sprintf("%s doesn't accept %s", name, args[0]))
	}
}

// MapNonNull builds an Implementation of one argument that applies fn to each
// non-null value. Null rows stay null with type ret.
func MapNonNull(ret arrow.DataType, fn func(v scalar.Value) (scalar.Value, error)) Implementation {
	return func(ctx context.Context, args []columnar.Value) (columnar.Value, error) {
		retType, err := scalar.TypeOf(ret)
		if err != nil {
			return columnar.Value{}, err
		}
		apply := func(v scalar.Value) (scalar.Value, error) {
			if v.IsNull() {
				return scalar.NullOf(retType), nil
			}
			return fn(v)
		}
		arg := args[0]
		if arg.IsScalar() {
			v, err := apply(arg.Scalar())
			if err != nil {
				return columnar.Value{}, err
			}
			return columnar.FromScalar(v), nil
		}
		arr := arg.Array()
		values := make([]scalar.Value, arr.Len())
		for i := range values {
			v, err := scalar.FromArray(arr, i)
			if err != nil {
				return columnar.Value{}, err
			}
			if values[i], err = apply(v); err != nil {
				return columnar.Value{}, err
			}
		}
		out, err := scalar.ToArray(exec.GetAllocator(ctx), ret, values)
		if err != nil {
			return columnar.Value{}, err
		}
		return columnar.FromArray(out), nil
	}
}
