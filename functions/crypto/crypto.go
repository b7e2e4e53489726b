// Package crypto registers digest functions returning binary.
package crypto

import (
	"crypto/md5"
	"crypto/sha256"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/xiaobogaga/colexpr/functions"
	"github.com/xiaobogaga/colexpr/scalar"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

var digests = map[string]func(data []byte) []byte{
	"md5": func(data []byte) []byte {
		sum := md5.Sum(data)
		return sum[:]
	},
	"sha256": func(data []byte) []byte {
		sum := sha256.Sum256(data)
		return sum[:]
	},
	"sha3_256": func(data []byte) []byte {
		sum := sha3.Sum256(data)
		return sum[:]
	},
	"blake2b_256": func(data []byte) []byte {
		sum := blake2b.Sum256(data)
		return sum[:]
	},
}

func Register(registry *functions.Registry) error {
	for _, fn := range Functions() {
		if err := registry.Register(fn); err != nil {
			return err
		}
	}
	return nil
}

// Functions digests Utf8 or Binary arguments.
func Functions() []*functions.ScalarFunction {
	ret := make([]*functions.ScalarFunction, 0, len(digests))
	for name, digest := range digests {
		digest := digest
		ret = append(ret, &functions.ScalarFunction{
			Name:       name,
			ReturnType: functions.AcceptOne(name, arrow.BinaryTypes.Binary, arrow.BinaryTypes.String, arrow.BinaryTypes.Binary),
			Fn: functions.MapNonNull(arrow.BinaryTypes.Binary, func(v scalar.Value) (scalar.Value, error) {
				return scalar.NewBinary(digest(v.Bytes())), nil
			}),
		})
	}
	return ret
}
