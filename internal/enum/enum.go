// Package enum provides ordered enumeration tables that map the integer values
// used on the wire to the symbolic names persisted and used in code.
package enum

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Table is an immutable bidirectional mapping between the symbols of one
// enumeration and their assigned integer values.
//
// Symbols are ordered by their assigned value when the table is built, so the
// declaration order of the source map does not matter. Values are expected to
// form the contiguous range [0, Len()-1].
type Table[T ~string] struct {
	name    string
	symbols []T
	values  map[T]int
}

// NewTable builds a table from symbol → value assignments. It panics when two
// symbols share a value or the values are not contiguous from zero, since a
// table is static program data built once at startup.
func NewTable[T ~string](name string, assignments map[T]int) *Table[T] {
	symbols := make([]T, 0, len(assignments))
	for symbol := range assignments {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool {
		return assignments[symbols[i]] < assignments[symbols[j]]
	})

	values := make(map[T]int, len(symbols))
	for i, symbol := range symbols {
		if assignments[symbol] != i {
			panic(fmt.Sprintf("enum %s: value %d of %s breaks the contiguous ordering", name, assignments[symbol], symbol))
		}
		values[symbol] = i
	}

	return &Table[T]{name: name, symbols: symbols, values: values}
}

// Name returns the enumeration name used in error messages.
func (t *Table[T]) Name() string {
	return t.name
}

// Len returns the number of symbols in the table.
func (t *Table[T]) Len() int {
	return len(t.symbols)
}

// Cast returns the symbol whose assigned value is i. The boolean is false for
// any i outside [0, Len()-1].
func (t *Table[T]) Cast(i int) (T, bool) {
	if i < 0 || i >= len(t.symbols) {
		var zero T
		return zero, false
	}
	return t.symbols[i], true
}

// Value returns the integer assigned to symbol.
func (t *Table[T]) Value(symbol T) (int, bool) {
	v, ok := t.values[symbol]
	return v, ok
}

// Symbols returns the symbols in value order.
func (t *Table[T]) Symbols() []T {
	out := make([]T, len(t.symbols))
	copy(out, t.symbols)
	return out
}

// CastIntToEnum casts an incoming integer to its symbol. Every numeric type or
// status field received from a client is validated through this function: the
// value is valid iff ok is true.
func CastIntToEnum[T ~string](table *Table[T], i int) (symbol T, ok bool) {
	return table.Cast(i)
}

// MarshalJSON encodes symbol as its integer value.
func MarshalJSON[T ~string](table *Table[T], symbol T) ([]byte, error) {
	v, ok := table.Value(symbol)
	if !ok {
		return nil, fmt.Errorf("%s: unknown symbol %q", table.name, string(symbol))
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes an integer value into its symbol.
func UnmarshalJSON[T ~string](table *Table[T], data []byte, symbol *T) error {
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return fmt.Errorf("%s: expected an integer: %w", table.name, err)
	}
	s, ok := table.Cast(i)
	if !ok {
		return fmt.Errorf("%s: value %d out of range", table.name, i)
	}
	*symbol = s
	return nil
}
