package scalar

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
)

// Type is the variant tag of a Value. The tag alone decides the logical
// data type, a null Value still carries one.
type Type int

const (
	Null Type = iota
	Boolean
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	Utf8
	Binary
	Date32
	TimestampNanosecond
)

var typeNames = map[Type]string{
	Null:                "Null",
	Boolean:             "Boolean",
	Int8:                "Int8",
	Int16:               "Int16",
	Int32:               "Int32",
	Int64:               "Int64",
	UInt8:               "UInt8",
	UInt16:              "UInt16",
	UInt32:              "UInt32",
	UInt64:              "UInt64",
	Float32:             "Float32",
	Float64:             "Float64",
	Utf8:                "Utf8",
	Binary:              "Binary",
	Date32:              "Date32",
	TimestampNanosecond: "TimestampNanosecond",
}

func (tp Type) String() string {
	name, ok := typeNames[tp]
	if !ok {
		return fmt.Sprintf("Type(%d)", int(tp))
	}
	return name
}

func (tp Type) IsSignedInteger() bool {
	return tp >= Int8 && tp <= Int64
}

func (tp Type) IsUnsignedInteger() bool {
	return tp >= UInt8 && tp <= UInt64
}

func (tp Type) IsInteger() bool {
	return tp.IsSignedInteger() || tp.IsUnsignedInteger()
}

func (tp Type) IsFloat() bool {
	return tp == Float32 || tp == Float64
}

func (tp Type) IsNumeric() bool {
	return tp.IsInteger() || tp.IsFloat()
}

// Value is one typed constant, possibly null. Values are immutable.
type Value struct {
	tp    Type
	valid bool
	i     int64 // signed integers, booleans, Date32, timestamps
	u     uint64
	f     float64
	s     string // Utf8 and Binary payload
}

func NullOf(tp Type) Value { return Value{tp: tp} }
func NewNull() Value { return Value{tp: Null} }
func NewBool(v bool) Value { return Value{tp: Boolean, valid: true, i: boolToInt(v)} }
func NewInt8(v int8) Value { return Value{tp: Int8, valid: true, i: int64(v)} }
func NewInt16(v int16) Value { return Value{tp: Int16, valid: true, i: int64(v)} }
func NewInt32(v int32) Value { return Value{tp: Int32, valid: true, i: int64(v)} }
func NewInt64(v int64) Value { return Value{tp: Int64, valid: true, i: v} }
func NewUInt8(v uint8) Value { return Value{tp: UInt8, valid: true, u: uint64(v)} }
func NewUInt16(v uint16) Value { return Value{tp: UInt16, valid: true, u: uint64(v)} }
func NewUInt32(v uint32) Value { return Value{tp: UInt32, valid: true, u: uint64(v)} }
func NewUInt64(v uint64) Value { return Value{tp: UInt64, valid: true, u: v} }
func NewFloat32(v float32) Value { return Value{tp: Float32, valid: true, f: float64(v)} }
func NewFloat64(v float64) Value { return Value{tp: Float64, valid: true, f: v} }
func NewUtf8(v string) Value { return Value{tp: Utf8, valid: true, s: v} }
func NewBinary(v []byte) Value { return Value{tp: Binary, valid: true, s: string(v)} }

func NewDate32(v arrow.Date32) Value {
	return Value{tp: Date32, valid: true, i: int64(v)}
}

func NewTimestamp(v arrow.Timestamp) Value {
	return Value{tp: TimestampNanosecond, valid: true, i: int64(v)}
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func (v Value) Type() Type { return v.tp }

func (v Value) IsNull() bool { return !v.valid }

// Int64 returns the payload of any signed integer, boolean, Date32 or
// timestamp value.
func (v Value) Int64() int64 { return v.i }

func (v Value) Uint64() uint64 { return v.u }

func (v Value) Float64() float64 { return v.f }

func (v Value) Bool() bool { return v.i != 0 }

func (v Value) Str() string { return v.s }

func (v Value) Bytes() []byte { return []byte(v.s) }

// Equal reports whether both values have the same tag and payload. Two nulls
// of the same tag are equal.
func (v Value) Equal(other Value) bool {
	if v.tp != other.tp || v.valid != other.valid {
		return false
	}
	if !v.valid {
		return true
	}
	switch {
	case v.tp.IsFloat():
		return v.f == other.f || (math.IsNaN(v.f) && math.IsNaN(other.f))
	case v.tp.IsUnsignedInteger():
		return v.u == other.u
	case v.tp == Utf8 || v.tp == Binary:
		return v.s == other.s
	default:
		return v.i == other.i
	}
}

// String returns the canonical form used by plan explain output.
func (v Value) String() string {
	if !v.valid {
		return "NULL"
	}
	switch v.tp {
	case Boolean:
		return strconv.FormatBool(v.Bool())
	case Int8, Int16, Int32, Int64:
		return strconv.FormatInt(v.i, 10)
	case UInt8, UInt16, UInt32, UInt64:
		return strconv.FormatUint(v.u, 10)
	case Float32:
		return strconv.FormatFloat(v.f, 'f', -1, 32)
	case Float64:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case Utf8:
		return v.s
	case Binary:
		return hex.EncodeToString([]byte(v.s))
	case Date32:
		return arrow.Date32(v.i).ToTime().Format("2006-01-02")
	case TimestampNanosecond:
		return time.Unix(0, v.i).UTC().Format("2006-01-02T15:04:05.999999999")
	}
	return "NULL"
}

// GoString renders the value with its tag, e.g. Int32(42) or Utf8(NULL).
func (v Value) GoString() string {
	return fmt.Sprintf("%s(%s)", v.tp, v)
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.GoString())
}
