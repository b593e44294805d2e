package molweight

import (
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/antzucaro/matchr"
	"github.com/ghodss/yaml"
)

// Table maps element symbols to atomic weights. A Table is immutable once
// created and is safe for concurrent use.
type Table struct {
	weights map[string]float64
	symbols []string
}

var defaultTable = func() *Table {
	m := make(map[string]float64, len(elements))
	for _, e := range elements {
		m[e.Symbol] = e.Weight
	}
	t, err := NewTable(m)
	if err != nil {
		panic("molweight: invalid default table: " + err.Error())
	}
	return t
}()

// DefaultTable returns the table of IUPAC standard atomic weights for the
// 118 named elements.
func DefaultTable() *Table {
	return defaultTable
}

// NewTable creates a table from a map of symbols to weights. Symbols must be
// canonical, an uppercase letter followed by lowercase letters. Weights must
// be positive and finite. The map is copied.
func NewTable(weights map[string]float64) (*Table, error) {
	t := Table{
		weights: make(map[string]float64, len(weights)),
		symbols: make([]string, 0, len(weights)),
	}
	for sym, w := range weights {
		if err := checkEntry(sym, w); err != nil {
			return nil, err
		}
		t.weights[sym] = w
		t.symbols = append(t.symbols, sym)
	}
	sort.Strings(t.symbols)
	return &t, nil
}

// LoadTable reads a table from a YAML or JSON document that maps symbols to
// weights, e.g.
//
//	D: 2.014
//	T: 3.016
//
// YAML reads some bare words as booleans, so the symbols N, Y, and No must
// be quoted.
func LoadTable(r io.Reader) (*Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var m map[string]float64
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, &TableError{Reason: err.Error()}
	}
	return NewTable(m)
}

func checkEntry(sym string, w float64) error {
	switch sym {
	case "true", "false":
		return &TableError{Symbol: sym, Reason: "symbol decoded as a boolean; quote it"}
	}
	if !canonical(sym) {
		return &TableError{Symbol: sym, Reason: "not a canonical element symbol"}
	}
	if !(w > 0) || math.IsInf(w, 0) {
		return &TableError{Symbol: sym, Reason: "weight " + strconv.FormatFloat(w, 'g', -1, 64) + " is not positive and finite"}
	}
	return nil
}

// canonical returns whether sym is a symbol the lexer can produce.
func canonical(sym string) bool {
	if sym == "" || sym[0] < 'A' || sym[0] > 'Z' {
		return false
	}
	for _, r := range sym[1:] {
		if !isLower(r) {
			return false
		}
	}
	return true
}

// WeightOf returns the atomic weight of the element with the given symbol.
// Symbols are case-sensitive.
func (t *Table) WeightOf(symbol string) (float64, bool) {
	w, ok := t.weights[symbol]
	return w, ok
}

// Len returns the number of elements in the table.
func (t *Table) Len() int {
	return len(t.symbols)
}

// Symbols returns the sorted symbols in the table.
func (t *Table) Symbols() []string {
	return append([]string(nil), t.symbols...)
}

// Merge returns a new table containing the entries of t overlaid with those
// of u. Neither t nor u is modified.
func (t *Table) Merge(u *Table) *Table {
	m := make(map[string]float64, len(t.weights)+len(u.weights))
	for k, v := range t.weights {
		m[k] = v
	}
	for k, v := range u.weights {
		m[k] = v
	}
	r, err := NewTable(m)
	if err != nil {
		// Both tables were already checked.
		panic("molweight: " + err.Error())
	}
	return r
}

// Suggest returns the symbols in the table within one edit of symbol, in
// sorted order.
func (t *Table) Suggest(symbol string) []string {
	var r []string
	for _, s := range t.symbols {
		if matchr.Levenshtein(symbol, s) <= 1 {
			r = append(r, s)
		}
	}
	return r
}

// TableError is an error indicating an invalid element table entry.
type TableError struct {
	// Symbol is the symbol of the invalid entry, if known.
	Symbol string
	// Reason describes the problem.
	Reason string
}

func (err *TableError) Error() string {
	if err.Symbol == "" {
		return "invalid element table: " + err.Reason
	}
	return "invalid element table entry " + strconv.Quote(err.Symbol) + ": " + err.Reason
}
