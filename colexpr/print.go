package main

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/xiaobogaga/colexpr/scalar"
)

// cellText renders one cell the way explain output renders literals.
func cellText(col arrow.Array, row int) string {
	value, err := scalar.FromArray(col, row)
	if err != nil {
		return col.ValueStr(row)
	}
	return value.String()
}

// Return the maximum width of the column in record, counted in runes as fmt
// pads them.
func columnWidth(record arrow.Record, column int) int {
	ret := utf8.RuneCountInString(record.ColumnName(column))
	col := record.Column(column)
	for i := 0; i < col.Len(); i++ {
		ret = max(ret, utf8.RuneCountInString(cellText(col, i)))
	}
	return ret
}

func columnsWidth(record arrow.Record) []int {
	ret := make([]int, record.NumCols())
	for i := range ret {
		ret[i] = columnWidth(record, i)
	}
	return ret
}

// growWidths widens widths to fit record and reports whether any column grew.
// A nil widths always grows.
func growWidths(widths []int, record arrow.Record) ([]int, bool) {
	next := columnsWidth(record)
	if widths == nil {
		return next, true
	}
	grown := false
	for i := range widths {
		if next[i] > widths[i] {
			widths[i], grown = next[i], true
		}
	}
	return widths, grown
}

func nHyphen(n int) string {
	return string(bytes.Repeat([]byte{'-'}, n))
}

// +------+------+
func writeLine(buf *bytes.Buffer, columnWidths []int) {
	for _, width := range columnWidths {
		buf.WriteString("+-")
		buf.WriteString(nHyphen(width))
		buf.WriteString("-")
	}
	buf.WriteString("+\n")
}

// +    a +    b +
func writeCells(buf *bytes.Buffer, cells []string, columnWidths []int) {
	for i, cell := range cells {
		buf.WriteString("+ ")
		buf.WriteString(fmt.Sprintf("%*s", columnWidths[i], cell))
		buf.WriteString(" ")
	}
	buf.WriteString("+\n")
}

// printRecord writes record as a table. The header is written only when
// needPrintHeader is set, so consecutive batches read as one table.
// +------+--------+
// + col1 +   col2 +
// +------+--------+
// +    1 +  hello +
// +------+--------+
func printRecord(out io.Writer, record arrow.Record, needPrintHeader bool, columnWidths []int) error {
	if record == nil {
		return nil
	}
	buf := bytes.Buffer{}
	if needPrintHeader {
		names := make([]string, record.NumCols())
		for i := range names {
			names[i] = record.ColumnName(i)
		}
		writeLine(&buf, columnWidths)
		writeCells(&buf, names, columnWidths)
	}
	cells := make([]string, record.NumCols())
	for row := 0; row < int(record.NumRows()); row++ {
		writeLine(&buf, columnWidths)
		for i := range cells {
			cells[i] = cellText(record.Column(i), row)
		}
		writeCells(&buf, cells, columnWidths)
	}
	writeLine(&buf, columnWidths)
	_, err := out.Write(buf.Bytes())
	return err
}
