package stats

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/xiaobogaga/colexpr/scalar"
	"golang.org/x/exp/constraints"
)

// Collect scans every column of record. Min, max and null counts are exact.
// Distinct counts are counted by value hash.
func Collect(record arrow.Record) (*Statistics, error) {
	s := &Statistics{
		NumRows:          Count(uint64(record.NumRows())),
		ColumnStatistics: make([]ColumnStatistics, record.NumCols()),
		IsExact:          true,
	}
	for i, col := range record.Columns() {
		colStats, err := CollectColumn(col)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", record.ColumnName(i), err)
		}
		s.ColumnStatistics[i] = colStats
	}
	return s, nil
}

// CollectColumn scans one array.
func CollectColumn(arr arrow.Array) (ColumnStatistics, error) {
	if arr.DataType().ID() == arrow.NULL {
		return ColumnStatistics{NullCount: Count(uint64(arr.Len())), DistinctCount: Count(0)}, nil
	}
	minIdx, maxIdx, err := extremes(arr)
	if err != nil {
		return ColumnStatistics{}, err
	}
	distinct := map[uint64]struct{}{}
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			continue
		}
		v, err := scalar.FromArray(arr, i)
		if err != nil {
			return ColumnStatistics{}, err
		}
		distinct[scalar.Hash(v)] = struct{}{}
	}
	c := ColumnStatistics{
		DistinctCount: Count(uint64(len(distinct))),
		NullCount:     Count(uint64(arr.NullN())),
	}
	if minIdx < 0 {
		return c, nil
	}
	min, err := scalar.FromArray(arr, minIdx)
	if err != nil {
		return ColumnStatistics{}, err
	}
	max, err := scalar.FromArray(arr, maxIdx)
	if err != nil {
		return ColumnStatistics{}, err
	}
	c.MinValue, c.MaxValue = &min, &max
	return c, nil
}

type orderedArray[T constraints.Ordered] interface {
	Len() int
	IsNull(i int) bool
	Value(i int) T
}

// extremes returns the rows holding the least and greatest values, -1 when
// every row is null. NaN sorts after every other float, as in scalar.Compare,
// so a column holding NaN has NaN as its max.
func extremes(arr arrow.Array) (int, int, error) {
	switch a := arr.(type) {
	case *array.Int8:
		min, max := orderedExtremes[int8](a)
		return min, max, nil
	case *array.Int16:
		min, max := orderedExtremes[int16](a)
		return min, max, nil
	case *array.Int32:
		min, max := orderedExtremes[int32](a)
		return min, max, nil
	case *array.Int64:
		min, max := orderedExtremes[int64](a)
		return min, max, nil
	case *array.Uint8:
		min, max := orderedExtremes[uint8](a)
		return min, max, nil
	case *array.Uint16:
		min, max := orderedExtremes[uint16](a)
		return min, max, nil
	case *array.Uint32:
		min, max := orderedExtremes[uint32](a)
		return min, max, nil
	case *array.Uint64:
		min, max := orderedExtremes[uint64](a)
		return min, max, nil
	case *array.Float32:
		min, max := orderedExtremes[float32](a)
		return min, max, nil
	case *array.Float64:
		min, max := orderedExtremes[float64](a)
		return min, max, nil
	case *array.String:
		min, max := orderedExtremes[string](a)
		return min, max, nil
	case *array.Date32:
		min, max := orderedExtremes[arrow.Date32](a)
		return min, max, nil
	case *array.Timestamp:
		min, max := orderedExtremes[arrow.Timestamp](a)
		return min, max, nil
	}
	return comparedExtremes(arr)
}

func orderedExtremes[T constraints.Ordered](arr orderedArray[T]) (int, int) {
	minIdx, maxIdx, nanIdx := -1, -1, -1
	var min, max T
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			continue
		}
		v := arr.Value(i)
		if v != v {
			if nanIdx < 0 {
				nanIdx = i
			}
			continue
		}
		if minIdx < 0 || v < min {
			minIdx, min = i, v
		}
		if maxIdx < 0 || v > max {
			maxIdx, max = i, v
		}
	}
	if nanIdx >= 0 {
		maxIdx = nanIdx
		if minIdx < 0 {
			minIdx = nanIdx
		}
	}
	return minIdx, maxIdx
}

// comparedExtremes handles types whose arrays do not hand out ordered Go
// values, such as booleans and binary.
func comparedExtremes(arr arrow.Array) (int, int, error) {
	minIdx, maxIdx := -1, -1
	var min, max scalar.Value
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			continue
		}
		v, err := scalar.FromArray(arr, i)
		if err != nil {
			return -1, -1, err
		}
		if minIdx < 0 {
			minIdx, maxIdx, min, max = i, i, v, v
			continue
		}
		if c, err := scalar.Compare(v, min); err != nil {
			return -1, -1, err
		} else if c < 0 {
			minIdx, min = i, v
		}
		if c, err := scalar.Compare(v, max); err != nil {
			return -1, -1, err
		} else if c > 0 {
			maxIdx, max = i, v
		}
	}
	return minIdx, maxIdx, nil
}
