package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/xiaobogaga/colexpr/functions"
	"github.com/xiaobogaga/colexpr/plan"
	"github.com/xiaobogaga/colexpr/scalar"
)

// parseType finds the tag whose name equals name, ignoring case.
func parseType(name string) (scalar.Type, error) {
	for tp := scalar.Null; tp <= scalar.TimestampNanosecond; tp++ {
		if strings.EqualFold(tp.String(), name) {
			return tp, nil
		}
	}
	return scalar.Null, errors.New(fmt.Sprintf("unknown type %s", name))
}

// parseSchema reads a schema like `a:int32,b:utf8`. Every field is nullable.
func parseSchema(text string) (*arrow.Schema, error) {
	var fields []arrow.Field
	for _, def := range strings.Split(text, ",") {
		def = strings.TrimSpace(def)
		if def == "" {
			continue
		}
		name, typeName, ok := strings.Cut(def, ":")
		if !ok {
			return nil, errors.New(fmt.Sprintf("field %s has no type", def))
		}
		tp, err := parseType(strings.TrimSpace(typeName))
		if err != nil {
			return nil, err
		}
		fields = append(fields, arrow.Field{Name: strings.TrimSpace(name), Type: tp.DataType(), Nullable: true})
	}
	if len(fields) == 0 {
		return nil, errors.New("empty schema")
	}
	return arrow.NewSchema(fields, nil), nil
}

// splitTopLevel splits text at every rune matched by isSep that is neither
// quoted nor inside parentheses. Empty parts are dropped.
func splitTopLevel(text string, isSep func(r rune) bool) ([]string, error) {
	var parts []string
	depth, start := 0, 0
	var quote rune
	for i, r := range text {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return nil, errors.New(fmt.Sprintf("unbalanced parentheses in %s", text))
			}
		case depth == 0 && isSep(r):
			if part := strings.TrimSpace(text[start:i]); part != "" {
				parts = append(parts, part)
			}
			start = i + 1
		}
	}
	if depth != 0 || quote != 0 {
		return nil, errors.New(fmt.Sprintf("unterminated expression %s", text))
	}
	if part := strings.TrimSpace(text[start:]); part != "" {
		parts = append(parts, part)
	}
	return parts, nil
}

func isComma(r rune) bool { return r == ',' }

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }

// exprParser turns the projection text of the command line into physical
// expressions. Words are separated by spaces, so `a + 1` is a binary
// expression while `a+1` is not. Binary operators apply from left to right.
type exprParser struct {
	schema   *arrow.Schema
	registry *functions.Registry
	opts     []plan.Option
}

func (parser *exprParser) parseList(text string) ([]plan.PhysicalExpr, error) {
	items, err := splitTopLevel(text, isComma)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("empty projection")
	}
	exprs := make([]plan.PhysicalExpr, len(items))
	for i, item := range items {
		exprs[i], err = parser.parse(item)
		if err != nil {
			return nil, err
		}
	}
	return exprs, nil
}

func (parser *exprParser) parse(text string) (plan.PhysicalExpr, error) {
	words, err := splitTopLevel(text, isSpace)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errors.New("empty expression")
	}
	expr, words, err := parser.parseUnary(words)
	if err != nil {
		return nil, err
	}
	for len(words) > 0 {
		op, err := plan.ParseOperator(words[0])
		if err != nil {
			return nil, err
		}
		var right plan.PhysicalExpr
		right, words, err = parser.parseUnary(words[1:])
		if err != nil {
			return nil, err
		}
		expr = plan.NewBinaryExpr(expr, op, right, parser.opts...)
	}
	return expr, nil
}

// parseUnary reads a prefix NOT or -, one term and the IS [NOT] NULL suffix,
// returning the words left.
func (parser *exprParser) parseUnary(words []string) (plan.PhysicalExpr, []string, error) {
	if len(words) == 0 {
		return nil, nil, errors.New("missing operand")
	}
	switch {
	case strings.EqualFold(words[0], "NOT"):
		expr, rest, err := parser.parseUnary(words[1:])
		if err != nil {
			return nil, nil, err
		}
		return plan.NewNotExpr(expr, parser.opts...), rest, nil
	case words[0] == "-":
		expr, rest, err := parser.parseUnary(words[1:])
		if err != nil {
			return nil, nil, err
		}
		return plan.NewNegativeExpr(expr, parser.opts...), rest, nil
	}
	expr, err := parser.parseTerm(words[0])
	if err != nil {
		return nil, nil, err
	}
	rest := words[1:]
	if len(rest) >= 2 && strings.EqualFold(rest[0], "IS") {
		if strings.EqualFold(rest[1], "NULL") {
			return plan.NewIsNullExpr(expr, parser.opts...), rest[2:], nil
		}
		if len(rest) >= 3 && strings.EqualFold(rest[1], "NOT") && strings.EqualFold(rest[2], "NULL") {
			return plan.NewIsNotNullExpr(expr, parser.opts...), rest[3:], nil
		}
	}
	return expr, rest, nil
}

func (parser *exprParser) parseTerm(word string) (plan.PhysicalExpr, error) {
	if strings.HasPrefix(word, "(") && strings.HasSuffix(word, ")") {
		return parser.parse(word[1 : len(word)-1])
	}
	if open := strings.IndexByte(word, '('); open > 0 && strings.HasSuffix(word, ")") {
		name, inner := word[:open], word[open+1:len(word)-1]
		if strings.EqualFold(name, "CAST") {
			return parser.parseCast(inner)
		}
		var args []plan.PhysicalExpr
		if strings.TrimSpace(inner) != "" {
			var err error
			args, err = parser.parseList(inner)
			if err != nil {
				return nil, err
			}
		}
		function, err := plan.NewScalarFunctionExprByName(parser.registry, name, args, parser.opts...)
		if err != nil {
			return nil, err
		}
		return function, nil
	}
	if parser.schema.HasField(word) {
		column, err := plan.ColumnFromSchema(word, parser.schema)
		if err != nil {
			return nil, err
		}
		return column, nil
	}
	value, err := scalar.Parse(word)
	if err != nil {
		return nil, err
	}
	return plan.NewLiteral(value), nil
}

// parseCast reads `expr AS type`.
func (parser *exprParser) parseCast(inner string) (plan.PhysicalExpr, error) {
	words, err := splitTopLevel(inner, isSpace)
	if err != nil {
		return nil, err
	}
	if len(words) < 3 || !strings.EqualFold(words[len(words)-2], "AS") {
		return nil, errors.New(fmt.Sprintf("cast %s needs an AS clause", inner))
	}
	tp, err := parseType(words[len(words)-1])
	if err != nil {
		return nil, err
	}
	expr, err := parser.parse(strings.Join(words[:len(words)-2], " "))
	if err != nil {
		return nil, err
	}
	return plan.NewCastExpr(expr, tp.DataType(), parser.opts...), nil
}
