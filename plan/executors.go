package plan

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/xiaobogaga/colexpr/log"
	"github.com/xiaobogaga/colexpr/metrics"
)

var projectorLog = log.GetLog("Projector")

// Projector evaluates a list of expressions over batches of one schema and
// assembles the results into new batches.
type Projector struct {
	input  *arrow.Schema
	exprs  []PhysicalExpr
	output *arrow.Schema
	mem    memory.Allocator
}

// NewProjector resolves the output schema. A nil names uses the rendering of
// each expression as its field name.
func NewProjector(input *arrow.Schema, exprs []PhysicalExpr, names []string, opts ...Option) (*Projector, error) {
	if names != nil && len(names) != len(exprs) {
		return nil, typeError("%d names for %d expressions", len(names), len(exprs))
	}
	fields := make([]arrow.Field, len(exprs))
	for i, expr := range exprs {
		dt, err := expr.DataType(input)
		if err != nil {
			metrics.EvaluationErrorCounter.WithLabelValues("plan").Inc()
			return nil, err
		}
		nullable, err := expr.Nullable(input)
		if err != nil {
			metrics.EvaluationErrorCounter.WithLabelValues("plan").Inc()
			return nil, err
		}
		name := expr.String()
		if names != nil {
			name = names[i]
		}
		fields[i] = arrow.Field{Name: name, Type: dt, Nullable: nullable}
	}
	return &Projector{
		input:  input,
		exprs:  exprs,
		output: arrow.NewSchema(fields, nil),
		mem:    newOptions(opts).mem,
	}, nil
}

func (projector *Projector) Schema() *arrow.Schema {
	return projector.output
}

func (projector *Projector) Exprs() []PhysicalExpr {
	return projector.exprs
}

// Project returns a batch the caller releases, holding one column per
// expression and as many rows as batch.
func (projector *Projector) Project(batch arrow.Record) (arrow.Record, error) {
	start := time.Now()
	if !batch.Schema().Equal(projector.input) {
		metrics.EvaluationErrorCounter.WithLabelValues("execute").Inc()
		return nil, fmt.Errorf("%w: batch schema %s doesn't match %s", ErrExecution, batch.Schema(), projector.input)
	}
	rows := int(batch.NumRows())
	cols := make([]arrow.Array, 0, len(projector.exprs))
	defer func() {
		for _, col := range cols {
			col.Release()
		}
	}()
	for i, expr := range projector.exprs {
		v, err := expr.Evaluate(batch)
		if err != nil {
			metrics.EvaluationErrorCounter.WithLabelValues("execute").Inc()
			projectorLog.ErrorF("evaluate %s failed: %v", expr, err)
			return nil, err
		}
		metrics.EvaluationCounter.WithLabelValues(v.Kind().String()).Inc()
		col := v.IntoArrayWithAllocator(projector.mem, rows)
		v.Release()
		if !arrow.TypeEqual(col.DataType(), projector.output.Field(i).Type) {
			col.Release()
			metrics.EvaluationErrorCounter.WithLabelValues("execute").Inc()
			return nil, fmt.Errorf("%w: %s evaluated to %s, expected %s", ErrExecution, expr,
				col.DataType(), projector.output.Field(i).Type)
		}
		cols = append(cols, col)
	}
	out := array.NewRecord(projector.output, cols, int64(rows))
	metrics.ProjectedBatchCounter.Inc()
	metrics.ProjectedRowCounter.Add(float64(rows))
	metrics.ProjectSeconds.Observe(time.Since(start).Seconds())
	projectorLog.DebugF("projected %d rows into %d columns", rows, len(cols))
	return out, nil
}
