package stats

import (
	"errors"
	"fmt"

	"github.com/xiaobogaga/colexpr/scalar"
)

// Merge combines the statistics of two disjoint row sets of the same schema.
// Bounds widen, counts add up and distinct counts become unknown since the
// two sets may share values.
func Merge(s1, s2 *Statistics) (*Statistics, error) {
	if len(s1.ColumnStatistics) != len(s2.ColumnStatistics) {
		return nil, errors.New(fmt.Sprintf("cannot merge statistics of %d and %d columns",
			len(s1.ColumnStatistics), len(s2.ColumnStatistics)))
	}
	merged := &Statistics{
		NumRows:          addCounts(s1.NumRows, s2.NumRows),
		ColumnStatistics: make([]ColumnStatistics, len(s1.ColumnStatistics)),
		IsExact:          s1.IsExact && s2.IsExact,
	}
	for i := range s1.ColumnStatistics {
		c1, c2 := s1.ColumnStatistics[i], s2.ColumnStatistics[i]
		// An all null side has no values to bound.
		switch {
		case allNull(s1, c1):
			c1.MinValue, c1.MaxValue = c2.MinValue, c2.MaxValue
		case allNull(s2, c2):
			c2.MinValue, c2.MaxValue = c1.MinValue, c1.MaxValue
		}
		min, err := mergeBound(c1.MinValue, c2.MinValue, scalar.Min)
		if err != nil {
			return nil, fmt.Errorf("column #%d: %w", i, err)
		}
		max, err := mergeBound(c1.MaxValue, c2.MaxValue, scalar.Max)
		if err != nil {
			return nil, fmt.Errorf("column #%d: %w", i, err)
		}
		merged.ColumnStatistics[i] = ColumnStatistics{
			MinValue:  min,
			MaxValue:  max,
			NullCount: addCounts(c1.NullCount, c2.NullCount),
		}
	}
	return merged, nil
}

func allNull(s *Statistics, c ColumnStatistics) bool {
	return s.NumRows != nil && c.NullCount != nil && *s.NumRows == *c.NullCount
}

func addCounts(n1, n2 *uint64) *uint64 {
	if n1 == nil || n2 == nil {
		return nil
	}
	return Count(*n1 + *n2)
}

func mergeBound(v1, v2 *scalar.Value, pick func(v1, v2 scalar.Value) (scalar.Value, error)) (*scalar.Value, error) {
	if v1 == nil || v2 == nil {
		return nil, nil
	}
	v, err := pick(*v1, *v2)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
