package scalar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse infers a literal from its text. Quoted text ('x' or "x") is Utf8,
// true and false are Boolean, NULL is the untyped null, integers are Int64 and
// other numbers Float64. The inference is strict: true is never 1.
func Parse(text string) (Value, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Value{}, errors.New("empty literal")
	}
	if isQuoted(text) {
		return NewUtf8(text[1 : len(text)-1]), nil
	}
	switch strings.ToUpper(text) {
	case "NULL":
		return NewNull(), nil
	case "TRUE":
		return NewBool(true), nil
	case "FALSE":
		return NewBool(false), nil
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return NewInt64(i), nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return NewFloat64(f), nil
	}
	return Value{}, errors.New(fmt.Sprintf("cannot infer the type of literal %s", text))
}

func isQuoted(text string) bool {
	if len(text) < 2 {
		return false
	}
	first, last := text[0], text[len(text)-1]
	return (first == '\'' || first == '"') && first == last
}
