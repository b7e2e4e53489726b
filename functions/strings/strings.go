// Package strings registers upper, lower and char_length.
package strings

import (
	"strings"
	"unicode/utf8"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/xiaobogaga/colexpr/functions"
	"github.com/xiaobogaga/colexpr/scalar"
)

func Register(registry *functions.Registry) error {
	for _, fn := range Functions() {
		if err := registry.Register(fn); err != nil {
			return err
		}
	}
	return nil
}

func Functions() []*functions.ScalarFunction {
	utf8Type := arrow.BinaryTypes.String
	return []*functions.ScalarFunction{
		{
			Name:       "upper",
			ReturnType: functions.AcceptOne("upper", utf8Type, utf8Type),
			Fn: functions.MapNonNull(utf8Type, func(v scalar.Value) (scalar.Value, error) {
				return scalar.NewUtf8(strings.ToUpper(v.Str())), nil
			}),
		},
		{
			Name:       "lower",
			ReturnType: functions.AcceptOne("lower", utf8Type, utf8Type),
			Fn: functions.MapNonNull(utf8Type, func(v scalar.Value) (scalar.Value, error) {
				return scalar.NewUtf8(strings.ToLower(v.Str())), nil
			}),
		},
		{
			// Counts characters, not bytes.
			Name:       "char_length",
			ReturnType: functions.AcceptOne("char_length", arrow.PrimitiveTypes.Int32, utf8Type),
			Fn: functions.MapNonNull(arrow.PrimitiveTypes.Int32, func(v scalar.Value) (scalar.Value, error) {
				return scalar.NewInt32(int32(utf8.RuneCountInString(v.Str()))), nil
			}),
		},
	}
}
