// Package stats describes what is known about column data and expression
// outputs without looking at rows. A nil field always means unknown.
package stats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/xiaobogaga/colexpr/scalar"
)

var ErrInvalidBoundaries = errors.New("invalid boundaries")

// ColumnStatistics summarizes one column. Slices of them are aligned with the
// fields of the schema they describe.
type ColumnStatistics struct {
	MinValue      *scalar.Value `json:"min_value,omitempty"`
	MaxValue      *scalar.Value `json:"max_value,omitempty"`
	DistinctCount *uint64       `json:"distinct_count,omitempty"`
	NullCount     *uint64       `json:"null_count,omitempty"`
}

// Statistics summarizes a batch or a table.
type Statistics struct {
	NumRows          *uint64            `json:"num_rows,omitempty"`
	ColumnStatistics []ColumnStatistics `json:"columns"`
	IsExact          bool               `json:"is_exact"`
}

// ExprBoundaries is the estimated output range of an expression. A null bound
// means the bound is unknown.
type ExprBoundaries struct {
	MinValue      scalar.Value `json:"min_value"`
	MaxValue      scalar.Value `json:"max_value"`
	DistinctCount *uint64      `json:"distinct_count,omitempty"`
	Selectivity   *float64     `json:"selectivity,omitempty"`
}

// NewExprBoundaries checks that defined bounds are ordered and the selectivity
// is a fraction.
func NewExprBoundaries(min, max scalar.Value, distinctCount *uint64, selectivity *float64) (*ExprBoundaries, error) {
	if !min.IsNull() && !max.IsNull() {
		c, err := scalar.Compare(min, max)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBoundaries, err)
		}
		if c > 0 {
			return nil, fmt.Errorf("%w: min %#v is greater than max %#v", ErrInvalidBoundaries, min, max)
		}
	}
	if selectivity != nil && !(*selectivity >= 0 && *selectivity <= 1) {
		return nil, fmt.Errorf("%w: selectivity %v is outside [0, 1]", ErrInvalidBoundaries, *selectivity)
	}
	return &ExprBoundaries{
		MinValue:      min,
		MaxValue:      max,
		DistinctCount: distinctCount,
		Selectivity:   selectivity,
	}, nil
}

// Count returns a pointer to n, for filling optional counts.
func Count(n uint64) *uint64 { return &n }

// Fraction returns a pointer to f.
func Fraction(f float64) *float64 { return &f }

func (b *ExprBoundaries) String() string {
	return fmt.Sprintf("[%s, %s] distinct=%s selectivity=%s", b.MinValue, b.MaxValue,
		formatCount(b.DistinctCount), formatFraction(b.Selectivity))
}

func (c ColumnStatistics) String() string {
	return fmt.Sprintf("min=%s max=%s distinct=%s nulls=%s", formatValue(c.MinValue),
		formatValue(c.MaxValue), formatCount(c.DistinctCount), formatCount(c.NullCount))
}

func (s *Statistics) String() string {
	var b strings.Builder
	exact := "inexact"
	if s.IsExact {
		exact = "exact"
	}
	fmt.Fprintf(&b, "rows=%s (%s)", formatCount(s.NumRows), exact)
	for i, col := range s.ColumnStatistics {
		fmt.Fprintf(&b, "\n  #%d %s", i, col)
	}
	return b.String()
}

func formatValue(v *scalar.Value) string {
	if v == nil {
		return "?"
	}
	return v.String()
}

func formatCount(n *uint64) string {
	if n == nil {
		return "?"
	}
	return humanize.Comma(int64(*n))
}

func formatFraction(f *float64) string {
	if f == nil {
		return "?"
	}
	return humanize.FtoaWithDigits(*f, 4)
}
