package plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute/exec"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/xiaobogaga/colexpr/columnar"
	"github.com/xiaobogaga/colexpr/stats"
)

var (
	// ErrType reports a schema the expression cannot be resolved against.
	ErrType = errors.New("type error")
	// ErrExecution reports a failure while evaluating a batch.
	ErrExecution = errors.New("execution error")
)

func typeError(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrType, fmt.Sprintf(format, a...))
}

// executionError keeps err in the chain, so a kernel failure is both an
// ErrExecution and whatever the kernel reported.
func executionError(err error, format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s: %w", ErrExecution, fmt.Sprintf(format, a...), err)
}

// PhysicalExpr computes one output column from a batch.
//
// DataType and Nullable depend on the schema only. Evaluate must not change
// the batch; an Array result has one row per batch row and a Scalar result
// holds for every row. The caller releases the result. Implementations are
// immutable, so one tree may be evaluated from many goroutines.
type PhysicalExpr interface {
	DataType(schema *arrow.Schema) (arrow.DataType, error)
	Nullable(schema *arrow.Schema) (bool, error)
	Evaluate(batch arrow.Record) (columnar.Value, error)
	ExprStats() PhysicalExprStats
	String() string
}

// PhysicalExprStats estimates the output of an expression from the column
// statistics of its input, which are aligned with the input schema. It
// returns nil when it cannot bound the output; it never guesses.
type PhysicalExprStats interface {
	Boundaries(columns []stats.ColumnStatistics) *stats.ExprBoundaries
}

type StatsFunc func(columns []stats.ColumnStatistics) *stats.ExprBoundaries

func (f StatsFunc) Boundaries(columns []stats.ColumnStatistics) *stats.ExprBoundaries {
	return f(columns)
}

// UnknownStats never bounds anything.
var UnknownStats PhysicalExprStats = StatsFunc(func([]stats.ColumnStatistics) *stats.ExprBoundaries {
	return nil
})

func AsLiteral(expr PhysicalExpr) (*Literal, bool) {
	literal, ok := expr.(*Literal)
	return literal, ok
}

func AsColumn(expr PhysicalExpr) (*Column, bool) {
	column, ok := expr.(*Column)
	return column, ok
}

// Option configures composite expressions.
type Option func(options *exprOptions)

type exprOptions struct {
	mem           memory.Allocator
	checkOverflow bool
	stats         PhysicalExprStats
}

func newOptions(opts []Option) exprOptions {
	options := exprOptions{
		mem:           memory.DefaultAllocator,
		checkOverflow: true,
		stats:         UnknownStats,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// kernelCtx carries the allocator to compute kernels.
func (options exprOptions) kernelCtx() context.Context {
	return exec.WithAllocator(context.Background(), options.mem)
}

// WithAllocator sets the allocator results are built with.
func WithAllocator(mem memory.Allocator) Option {
	return func(options *exprOptions) {
		options.mem = mem
	}
}

// WithOverflowCheck turns integer overflow into an execution error, which is
// the default. Without it arithmetic wraps around.
func WithOverflowCheck(check bool) Option {
	return func(options *exprOptions) {
		options.checkOverflow = check
	}
}

// WithStatistics attaches a boundary estimator. The default is UnknownStats.
func WithStatistics(s PhysicalExprStats) Option {
	return func(options *exprOptions) {
		options.stats = s
	}
}

// evaluateAll evaluates every expression, releasing what was produced when one
// of them fails.
func evaluateAll(batch arrow.Record, exprs []PhysicalExpr) ([]columnar.Value, error) {
	values := make([]columnar.Value, 0, len(exprs))
	for _, expr := range exprs {
		v, err := expr.Evaluate(batch)
		if err != nil {
			releaseAll(values)
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func releaseAll(values []columnar.Value) {
	for _, v := range values {
		v.Release()
	}
}
