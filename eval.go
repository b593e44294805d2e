package molweight

import (
	"io"
	"math/big"
	"strings"
)

// Context is a context for evaluating formulas. A Context is immutable, so
// it is safe to use concurrently.
type Context struct {
	table *Table
	prec  uint
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	tableopt struct {
		t *Table
	}
	precopt uint
)

func (tableopt) ctxOption() {}
func (precopt) ctxOption()  {}

// WithTable sets the element table used to look up atomic weights.
func WithTable(t *Table) ContextOption {
	return tableopt{t}
}

// Prec sets the precision of calculations.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no table is given, the
// default is DefaultTable. If no precision is given, the default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{table: defaultTable, prec: 64}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := *ctx
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case tableopt:
			if opt.t == nil {
				panic("molweight: nil table")
			}
			n.table = opt.t
		case precopt:
			n.prec = uint(opt)
		default:
			panic("molweight: unknown option type")
		}
	}
	return &n
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Table returns the element table the context uses.
func (ctx *Context) Table() *Table {
	return ctx.table
}

// frames is the working stack of one evaluation. Each level holds the terms
// accumulated so far inside one pair of brackets, and the bottom level holds
// the terms outside any brackets.
type frames interface {
	// open pushes an empty level.
	open()
	// close pops the top level and appends its sum to the level below.
	close()
	// element appends the term for an element to the top level. The result
	// is false if the element is unknown.
	element(sym string) bool
	// scale multiplies the last term of the top level by a count. The result
	// is false if the top level is empty.
	scale(count string) bool
}

// walk feeds the formula's tokens to fr in order, checking structure as it
// goes.
func (f *Formula) walk(ctx *Context, fr frames) error {
	closes := f.matchGroups()
	depth := 0
	for i, tok := range f.toks {
		switch tok.kind {
		case tokenOpen:
			if closes[i] < 0 {
				return &UnmatchedParenthesesError{Formula: f.src, Col: tok.pos, Open: true}
			}
			fr.open()
			depth++
		case tokenClose:
			if depth == 0 {
				return &UnmatchedParenthesesError{Formula: f.src, Col: tok.pos}
			}
			fr.close()
			depth--
		case tokenElement:
			if !fr.element(tok.text) {
				return &UnknownElementError{
					Formula:     f.src,
					Col:         tok.pos,
					Symbol:      tok.text,
					Suggestions: ctx.table.Suggest(tok.text),
				}
			}
		case tokenCount:
			if !fr.scale(tok.text) {
				return &DanglingCountError{Formula: f.src, Col: tok.pos, Count: tok.text}
			}
		default:
			panic("molweight: invalid token " + tok.String())
		}
	}
	return nil
}

// weights is a frames which sums atomic weights.
type weights struct {
	ctx   *Context
	stack [][]*big.Float
}

func newWeights(ctx *Context) *weights {
	return &weights{ctx: ctx, stack: make([][]*big.Float, 1, 4)}
}

func (w *weights) open() {
	w.stack = append(w.stack, nil)
}

func (w *weights) close() {
	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	w.push(w.sum(top))
}

func (w *weights) element(sym string) bool {
	v, ok := w.ctx.table.WeightOf(sym)
	if !ok {
		return false
	}
	w.push(new(big.Float).SetPrec(w.ctx.prec).SetFloat64(v))
	return true
}

func (w *weights) scale(count string) bool {
	terms := w.stack[len(w.stack)-1]
	if len(terms) == 0 {
		return false
	}
	n, ok := new(big.Float).SetPrec(w.ctx.prec).SetString(count)
	if !ok {
		panic("molweight: invalid count: " + count)
	}
	last := terms[len(terms)-1]
	last.Mul(last, n)
	return true
}

// push appends a term to the top level.
func (w *weights) push(x *big.Float) {
	k := len(w.stack) - 1
	w.stack[k] = append(w.stack[k], x)
}

func (w *weights) sum(terms []*big.Float) *big.Float {
	r := new(big.Float).SetPrec(w.ctx.prec)
	for _, t := range terms {
		r.Add(r, t)
	}
	return r
}

// result returns the sum of the bottom level.
func (w *weights) result() *big.Float {
	if len(w.stack) != 1 {
		panic("molweight: unbalanced frames after walk")
	}
	return w.sum(w.stack[0])
}

// Weight computes the molecular weight of a formula in g/mol. If the formula
// is malformed or names an element missing from the context's table, the
// error is an InputError describing the first problem.
func (ctx *Context) Weight(f *Formula) (*big.Float, error) {
	w := newWeights(ctx)
	if err := f.walk(ctx, w); err != nil {
		return nil, err
	}
	return w.result(), nil
}

// Weight is a shortcut to parse a formula and return its molecular weight.
func Weight(src io.RuneScanner, opts ...ContextOption) (*big.Float, error) {
	f, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return NewContext(opts...).Weight(f)
}

// WeightString is a shortcut to parse and evaluate a formula in a string.
func WeightString(src string, opts ...ContextOption) (*big.Float, error) {
	return Weight(strings.NewReader(src), opts...)
}

// MolecularWeight returns the molecular weight of a formula in g/mol using
// the default element table.
func MolecularWeight(formula string) (float64, error) {
	r, err := defaultContext.Weight(ParseString(formula))
	if err != nil {
		return 0, err
	}
	f, _ := r.Float64()
	return f, nil
}

var defaultContext = NewContext()
