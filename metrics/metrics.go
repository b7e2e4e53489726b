// Package metrics counts expression evaluation work on a private registry.
package metrics

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const Namespace = "colexpr"

var (
	Gather = prometheus.NewRegistry()

	EvaluationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "expr",
			Name:      "evaluations",
			Help:      "Counter of evaluated projection expressions by result kind.",
		}, []string{"result"})

	EvaluationErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "expr",
			Name:      "errors",
			Help:      "Counter of failed evaluations by stage.",
		}, []string{"stage"})

	ProjectedBatchCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "projector",
			Name:      "batches",
			Help:      "Counter of projected batches.",
		})

	ProjectedRowCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "projector",
			Name:      "rows",
			Help:      "Counter of projected rows.",
		})

	ProjectSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "projector",
			Name:      "seconds",
			Help:      "Bucketed histogram of batch projection time.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		})
)

func init() {
	Gather.MustRegister(EvaluationCounter)
	Gather.MustRegister(EvaluationErrorCounter)
	Gather.MustRegister(ProjectedBatchCounter)
	Gather.MustRegister(ProjectedRowCounter)
	Gather.MustRegister(ProjectSeconds)
}

// Dump writes one line per collected series of Gather, like
// `colexpr_projector_rows 5` or `colexpr_expr_errors{stage="plan"} 1`.
// Histograms print their sample count and sum.
func Dump(w io.Writer) error {
	families, err := Gather.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", label.GetName(), label.GetValue()))
			}
			name := family.GetName()
			if len(labels) > 0 {
				name = fmt.Sprintf("%s{%s}", name, strings.Join(labels, ","))
			}
			var line string
			switch {
			case metric.GetCounter() != nil:
				line = fmt.Sprintf("%s %v\n", name, metric.GetCounter().GetValue())
			case metric.GetHistogram() != nil:
				h := metric.GetHistogram()
				line = fmt.Sprintf("%s count=%d sum=%v\n", name, h.GetSampleCount(), h.GetSampleSum())
			default:
				continue
			}
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
