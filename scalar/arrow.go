package scalar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	ascalar "github.com/apache/arrow-go/v18/arrow/scalar"
)

// TimestampNanosecondType is the arrow type of TimestampNanosecond values. It
// carries no time zone.
var TimestampNanosecondType = &arrow.TimestampType{Unit: arrow.Nanosecond}

// DataType maps the tag to its arrow type.
func (tp Type) DataType() arrow.DataType {
	switch tp {
	case Null:
		return arrow.Null
	case Boolean:
		return arrow.FixedWidthTypes.Boolean
	case Int8:
		return arrow.PrimitiveTypes.Int8
	case Int16:
		return arrow.PrimitiveTypes.Int16
	case Int32:
		return arrow.PrimitiveTypes.Int32
	case Int64:
		return arrow.PrimitiveTypes.Int64
	case UInt8:
		return arrow.PrimitiveTypes.Uint8
	case UInt16:
		return arrow.PrimitiveTypes.Uint16
	case UInt32:
		return arrow.PrimitiveTypes.Uint32
	case UInt64:
		return arrow.PrimitiveTypes.Uint64
	case Float32:
		return arrow.PrimitiveTypes.Float32
	case Float64:
		return arrow.PrimitiveTypes.Float64
	case Utf8:
		return arrow.BinaryTypes.String
	case Binary:
		return arrow.BinaryTypes.Binary
	case Date32:
		return arrow.FixedWidthTypes.Date32
	case TimestampNanosecond:
		return TimestampNanosecondType
	}
	panic(fmt.Sprintf("scalar: no arrow type for %s", tp))
}

func (v Value) DataType() arrow.DataType { return v.tp.DataType() }

// TypeOf returns the tag representing dt, or an error when dt is outside the
// supported taxonomy.
func TypeOf(dt arrow.DataType) (Type, error) {
	switch dt.ID() {
	case arrow.NULL:
		return Null, nil
	case arrow.BOOL:
		return Boolean, nil
	case arrow.INT8:
		return Int8, nil
	case arrow.INT16:
		return Int16, nil
	case arrow.INT32:
		return Int32, nil
	case arrow.INT64:
		return Int64, nil
	case arrow.UINT8:
		return UInt8, nil
	case arrow.UINT16:
		return UInt16, nil
	case arrow.UINT32:
		return UInt32, nil
	case arrow.UINT64:
		return UInt64, nil
	case arrow.FLOAT32:
		return Float32, nil
	case arrow.FLOAT64:
		return Float64, nil
	case arrow.STRING:
		return Utf8, nil
	case arrow.BINARY:
		return Binary, nil
	case arrow.DATE32:
		return Date32, nil
	case arrow.TIMESTAMP:
		ts := dt.(*arrow.TimestampType)
		if ts.Unit == arrow.Nanosecond && ts.TimeZone == "" {
			return TimestampNanosecond, nil
		}
	}
	return Null, fmt.Errorf("unsupported data type %s", dt)
}

// ToArrow converts the value into an arrow scalar.
func (v Value) ToArrow() ascalar.Scalar {
	if !v.valid {
		return ascalar.MakeNullScalar(v.DataType())
	}
	switch v.tp {
	case Boolean:
		return ascalar.NewBooleanScalar(v.Bool())
	case Int8:
		return ascalar.NewInt8Scalar(int8(v.i))
	case Int16:
		return ascalar.NewInt16Scalar(int16(v.i))
	case Int32:
		return ascalar.NewInt32Scalar(int32(v.i))
	case Int64:
		return ascalar.NewInt64Scalar(v.i)
	case UInt8:
		return ascalar.NewUint8Scalar(uint8(v.u))
	case UInt16:
		return ascalar.NewUint16Scalar(uint16(v.u))
	case UInt32:
		return ascalar.NewUint32Scalar(uint32(v.u))
	case UInt64:
		return ascalar.NewUint64Scalar(v.u)
	case Float32:
		return ascalar.NewFloat32Scalar(float32(v.f))
	case Float64:
		return ascalar.NewFloat64Scalar(v.f)
	case Utf8:
		return ascalar.NewStringScalar(v.s)
	case Binary:
		buf := memory.NewBufferBytes([]byte(v.s))
		defer buf.Release()
		return ascalar.NewBinaryScalar(buf, arrow.BinaryTypes.Binary)
	case Date32:
		return ascalar.NewDate32Scalar(arrow.Date32(v.i))
	case TimestampNanosecond:
		return ascalar.NewTimestampScalar(arrow.Timestamp(v.i), TimestampNanosecondType)
	}
	return ascalar.MakeNullScalar(arrow.Null)
}

// FromArrow converts an arrow scalar back into a Value.
func FromArrow(s ascalar.Scalar) (Value, error) {
	tp, err := TypeOf(s.DataType())
	if err != nil {
		return Value{}, err
	}
	if !s.IsValid() {
		return NullOf(tp), nil
	}
	switch sc := s.(type) {
	case *ascalar.Boolean:
		return NewBool(sc.Value), nil
	case *ascalar.Int8:
		return NewInt8(sc.Value), nil
	case *ascalar.Int16:
		return NewInt16(sc.Value), nil
	case *ascalar.Int32:
		return NewInt32(sc.Value), nil
	case *ascalar.Int64:
		return NewInt64(sc.Value), nil
	case *ascalar.Uint8:
		return NewUInt8(sc.Value), nil
	case *ascalar.Uint16:
		return NewUInt16(sc.Value), nil
	case *ascalar.Uint32:
		return NewUInt32(sc.Value), nil
	case *ascalar.Uint64:
		return NewUInt64(sc.Value), nil
	case *ascalar.Float32:
		return NewFloat32(sc.Value), nil
	case *ascalar.Float64:
		return NewFloat64(sc.Value), nil
	case *ascalar.String:
		return NewUtf8(string(sc.Data())), nil
	case *ascalar.Binary:
		return NewBinary(sc.Data()), nil
	case *ascalar.Date32:
		return NewDate32(sc.Value), nil
	case *ascalar.Timestamp:
		return NewTimestamp(sc.Value), nil
	}
	return Value{}, fmt.Errorf("unsupported scalar %T", s)
}

// FromArray returns the element at row i of arr.
func FromArray(arr arrow.Array, i int) (Value, error) {
	tp, err := TypeOf(arr.DataType())
	if err != nil {
		return Value{}, err
	}
	if tp == Null || arr.IsNull(i) {
		return NullOf(tp), nil
	}
	switch a := arr.(type) {
	case *array.Boolean:
		return NewBool(a.Value(i)), nil
	case *array.Int8:
		return NewInt8(a.Value(i)), nil
	case *array.Int16:
		return NewInt16(a.Value(i)), nil
	case *array.Int32:
		return NewInt32(a.Value(i)), nil
	case *array.Int64:
		return NewInt64(a.Value(i)), nil
	case *array.Uint8:
		return NewUInt8(a.Value(i)), nil
	case *array.Uint16:
		return NewUInt16(a.Value(i)), nil
	case *array.Uint32:
		return NewUInt32(a.Value(i)), nil
	case *array.Uint64:
		return NewUInt64(a.Value(i)), nil
	case *array.Float32:
		return NewFloat32(a.Value(i)), nil
	case *array.Float64:
		return NewFloat64(a.Value(i)), nil
	case *array.String:
		return NewUtf8(a.Value(i)), nil
	case *array.Binary:
		return NewBinary(a.Value(i)), nil
	case *array.Date32:
		return NewDate32(a.Value(i)), nil
	case *array.Timestamp:
		return NewTimestamp(a.Value(i)), nil
	}
	return Value{}, fmt.Errorf("unsupported array %T", arr)
}

// ToArray builds an array of type dt holding values in order. Every value
// must be tagged with the type of dt.
func ToArray(mem memory.Allocator, dt arrow.DataType, values []Value) (arrow.Array, error) {
	tp, err := TypeOf(dt)
	if err != nil {
		return nil, err
	}
	builder := array.NewBuilder(mem, dt)
	defer builder.Release()
	builder.Reserve(len(values))
	for _, v := range values {
		if v.tp != tp {
			return nil, fmt.Errorf("cannot append %#v to %s array", v, dt)
		}
		if !v.valid {
			builder.AppendNull()
			continue
		}
		switch b := builder.(type) {
		case *array.BooleanBuilder:
			b.Append(v.Bool())
		case *array.Int8Builder:
			b.Append(int8(v.i))
		case *array.Int16Builder:
			b.Append(int16(v.i))
		case *array.Int32Builder:
			b.Append(int32(v.i))
		case *array.Int64Builder:
			b.Append(v.i)
		case *array.Uint8Builder:
			b.Append(uint8(v.u))
		case *array.Uint16Builder:
			b.Append(uint16(v.u))
		case *array.Uint32Builder:
			b.Append(uint32(v.u))
		case *array.Uint64Builder:
			b.Append(v.u)
		case *array.Float32Builder:
			b.Append(float32(v.f))
		case *array.Float64Builder:
			b.Append(v.f)
		case *array.StringBuilder:
			b.Append(v.s)
		case *array.BinaryBuilder:
			b.Append([]byte(v.s))
		case *array.Date32Builder:
			b.Append(arrow.Date32(v.i))
		case *array.TimestampBuilder:
			b.Append(arrow.Timestamp(v.i))
		default:
			return nil, fmt.Errorf("unsupported builder %T", builder)
		}
	}
	return builder.NewArray(), nil
}

// Broadcast returns a new array of length n where every row is v.
func Broadcast(mem memory.Allocator, v Value, n int) arrow.Array {
	if !v.valid {
		return array.MakeArrayOfNull(mem, v.DataType(), n)
	}
	arr, err := ascalar.MakeArrayFromScalar(v.ToArrow(), n, mem)
	if err != nil {
		// Every tag maps to a flat type arrow can repeat.
		panic(fmt.Sprintf("scalar: broadcast %#v: %v", v, err))
	}
	return arr
}

// CastTo converts v to the type tp with arrow's scalar cast, which doesn't check for overflow.
func CastTo(v Value, tp Type) (Value, error) {
	if v.tp == tp {
		return v, nil
	}
	if !v.valid {
		return NullOf(tp), nil
	}
	casted, err := v.ToArrow().CastTo(tp.DataType())
	if err != nil {
		return Value{}, err
	}
	return FromArrow(casted)
}
