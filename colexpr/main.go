package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/xiaobogaga/colexpr/config"
	"github.com/xiaobogaga/colexpr/functions"
	"github.com/xiaobogaga/colexpr/functions/crypto"
	strfuncs "github.com/xiaobogaga/colexpr/functions/strings"
	"github.com/xiaobogaga/colexpr/log"
	"github.com/xiaobogaga/colexpr/metrics"
	"github.com/xiaobogaga/colexpr/plan"
	"github.com/xiaobogaga/colexpr/stats"
)

var (
	configPath = flag.String("config", "", "the yaml config file")
	csvPath    = flag.String("csv", "", "the csv file to read, its first line is the header")
	schemaText = flag.String("schema", "", "the csv schema, like a:int32,b:utf8")
	project    = flag.String("project", "", "comma separated expressions to evaluate, like upper(b),a + 1")
	fold       = flag.Bool("fold", false, "whether fold constant sub expressions before evaluating")
	explain    = flag.Bool("explain", false, "print the type and boundaries of each expression instead of evaluating")
	dump       = flag.Bool("metrics", false, "print the evaluation metrics at exit")
)

func main() {
	flag.Parse()
	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("err: %v\n", err)
		os.Exit(1)
	}
	if err = initLog(conf.Log); err != nil {
		fmt.Printf("err: %v\n", err)
		os.Exit(1)
	}
	mainLog := log.GetLog("main")
	err = run(os.Stdout, conf)
	if err != nil {
		mainLog.ErrorF("%v", err)
	}
	if *dump {
		if dumpErr := metrics.Dump(os.Stdout); dumpErr != nil {
			mainLog.ErrorF("dump metrics: %v", dumpErr)
		}
	}
	if conf.Log.Path != "" {
		if closeErr := log.CloseLog(); closeErr != nil {
			mainLog.ErrorF("close log: %v", closeErr)
		}
	}
	if err != nil {
		fmt.Printf("err: %v\n", err)
		os.Exit(1)
	}
}

func initLog(conf config.LogConfig) error {
	level, err := log.ParseLevel(conf.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if conf.Path == "" {
		return nil
	}
	return log.InitLogger(conf.Path, conf.BufferSize, conf.FlushInterval, conf.Verbose)
}

func newRegistry() (*functions.Registry, error) {
	registry := functions.NewRegistry()
	if err := strfuncs.Register(registry); err != nil {
		return nil, err
	}
	if err := crypto.Register(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

func run(out io.Writer, conf *config.Config) error {
	if *csvPath == "" || *schemaText == "" || *project == "" {
		return errors.New("-csv, -schema and -project are required")
	}
	schema, err := parseSchema(*schemaText)
	if err != nil {
		return err
	}
	registry, err := newRegistry()
	if err != nil {
		return err
	}
	parser := &exprParser{
		schema:   schema,
		registry: registry,
		opts:     []plan.Option{plan.WithOverflowCheck(conf.Exec.CheckOverflow)},
	}
	exprs, err := parser.parseList(*project)
	if err != nil {
		return err
	}
	if *fold {
		for i, expr := range exprs {
			exprs[i], err = plan.FoldConstants(expr)
			if err != nil {
				return err
			}
		}
	}
	file, err := os.Open(*csvPath)
	if err != nil {
		return err
	}
	defer file.Close()
	reader := csv.NewReader(file, schema,
		csv.WithHeader(true),
		csv.WithChunk(conf.Exec.BatchSize),
		csv.WithNullReader(true, "", "NULL"))
	defer reader.Release()
	if *explain {
		return explainExprs(out, reader, exprs)
	}
	return evaluate(out, reader, exprs)
}

// explainExprs collects statistics of the whole file, then prints each
// expression with its type and boundaries.
func explainExprs(out io.Writer, reader *csv.Reader, exprs []plan.PhysicalExpr) error {
	schema := reader.Schema()
	var collected *stats.Statistics
	for reader.Next() {
		batchStats, err := stats.Collect(reader.Record())
		if err != nil {
			return err
		}
		if collected == nil {
			collected = batchStats
			continue
		}
		collected, err = stats.Merge(collected, batchStats)
		if err != nil {
			return err
		}
	}
	if err := reader.Err(); err != nil {
		return err
	}
	if collected == nil {
		collected = emptyStatistics(schema)
	}
	rendered, err := stats.Render(schema, collected)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "statistics:\n%s", rendered)
	for _, expr := range exprs {
		if err := explainExpr(out, schema, expr, collected.ColumnStatistics); err != nil {
			return err
		}
	}
	return nil
}

func explainExpr(out io.Writer, schema *arrow.Schema, expr plan.PhysicalExpr, columns []stats.ColumnStatistics) error {
	dt, err := expr.DataType(schema)
	if err != nil {
		return err
	}
	nullable, err := expr.Nullable(schema)
	if err != nil {
		return err
	}
	boundaries, err := stats.RenderBoundaries(expr.ExprStats().Boundaries(columns))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "--- # %s, type %s, nullable %v\n%s", expr, dt, nullable, boundaries)
	return err
}

func emptyStatistics(schema *arrow.Schema) *stats.Statistics {
	return &stats.Statistics{
		NumRows:          stats.Count(0),
		ColumnStatistics: make([]stats.ColumnStatistics, schema.NumFields()),
		IsExact:          true,
	}
}

func evaluate(out io.Writer, reader *csv.Reader, exprs []plan.PhysicalExpr) error {
	projector, err := plan.NewProjector(reader.Schema(), exprs, nil)
	if err != nil {
		return err
	}
	var widths []int
	for reader.Next() {
		projected, err := projector.Project(reader.Record())
		if err != nil {
			return err
		}
		// The header is printed again whenever a batch widens the table.
		var grown bool
		widths, grown = growWidths(widths, projected)
		err = printRecord(out, projected, grown, widths)
		projected.Release()
		if err != nil {
			return err
		}
	}
	return reader.Err()
}
