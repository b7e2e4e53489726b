package stats

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"sigs.k8s.io/yaml"
)

type namedColumn struct {
	Name string `json:"name"`
	ColumnStatistics
}

type renderedStatistics struct {
	NumRows *uint64       `json:"num_rows,omitempty"`
	IsExact bool          `json:"is_exact"`
	Columns []namedColumn `json:"columns"`
}

// Render prints s as YAML, naming columns after the fields of schema. A nil
// schema names them by position.
func Render(schema *arrow.Schema, s *Statistics) ([]byte, error) {
	out := renderedStatistics{NumRows: s.NumRows, IsExact: s.IsExact}
	for i, col := range s.ColumnStatistics {
		name := fmt.Sprintf("#%d", i)
		if schema != nil && i < schema.NumFields() {
			name = schema.Field(i).Name
		}
		out.Columns = append(out.Columns, namedColumn{Name: name, ColumnStatistics: col})
	}
	return yaml.Marshal(out)
}

// RenderBoundaries prints b as YAML. Absent boundaries print as null.
func RenderBoundaries(b *ExprBoundaries) ([]byte, error) {
	return yaml.Marshal(b)
}
