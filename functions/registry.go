// Package functions holds scalar functions by name. Function families live in
// sub packages and are registered by whoever needs them.
package functions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/xiaobogaga/colexpr/columnar"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrDuplicateFunction = errors.New("function already registered")

// ReturnTypeFunc resolves the result type for the argument types, or returns
// an error when the function does not accept them.
type ReturnTypeFunc func(args []arrow.DataType) (arrow.DataType, error)

// Implementation computes the function. Arguments already have the types
// ReturnType accepted. A call with only scalar arguments returns a scalar.
type Implementation func(ctx context.Context, args []columnar.Value) (columnar.Value, error)

type ScalarFunction struct {
	Name       string
	ReturnType ReturnTypeFunc
	Fn         Implementation
}

type Registry struct {
	lock  sync.RWMutex
	funcs map[string]*ScalarFunction
}

func NewRegistry() *Registry {
	return &Registry{funcs: map[string]*ScalarFunction{}}
}

// Register adds fn. Names are case insensitive.
func (registry *Registry) Register(fn *ScalarFunction) error {
	registry.lock.Lock()
	defer registry.lock.Unlock()
	name := strings.ToLower(fn.Name)
	if _, ok := registry.funcs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFunction, name)
	}
	registry.funcs[name] = fn
	return nil
}

func (registry *Registry) Lookup(name string) (*ScalarFunction, bool) {
	registry.lock.RLock()
	defer registry.lock.RUnlock()
	fn, ok := registry.funcs[strings.ToLower(name)]
	return fn, ok
}

// Names lists registered names in order.
func (registry *Registry) Names() []string {
	registry.lock.RLock()
	defer registry.lock.RUnlock()
	names := maps.Keys(registry.funcs)
	slices.Sort(names)
	return names
}
