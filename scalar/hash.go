package scalar

import (
	"encoding/binary"
	"math"

	"github.com/dchest/siphash"
)

const (
	hashKey0 = 0x736f6d6570736575
	hashKey1 = 0x646f72616e646f6d
)

// Hash returns a keyed siphash of the tag and payload. Equal values hash
// equally; values of different tags never share an encoding.
func Hash(v Value) uint64 {
	buf := make([]byte, 0, 10+len(v.s))
	buf = append(buf, byte(v.tp))
	if !v.valid {
		buf = append(buf, 0)
		return siphash.Hash(hashKey0, hashKey1, buf)
	}
	buf = append(buf, 1)
	switch {
	case v.tp == Utf8 || v.tp == Binary:
		buf = append(buf, v.s...)
	case v.tp.IsFloat():
		f := v.f
		switch {
		case math.IsNaN(f):
			f = math.NaN()
		case f == 0:
			f = 0
		}
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	case v.tp.IsUnsignedInteger():
		buf = binary.LittleEndian.AppendUint64(buf, v.u)
	default:
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v.i))
	}
	return siphash.Hash(hashKey0, hashKey1, buf)
}
