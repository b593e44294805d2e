package molweight

import (
	"math/big"
	"sort"
	"strings"
)

// Composition maps element symbols to the number of atoms of each element in
// a formula.
type Composition map[string]*big.Int

// add adds the counts of d to c.
func (c Composition) add(d Composition) {
	for sym, n := range d {
		if m := c[sym]; m != nil {
			m.Add(m, n)
		} else {
			c[sym] = new(big.Int).Set(n)
		}
	}
}

// Hill formats the composition in Hill order: carbon first, then hydrogen,
// then all other elements alphabetically. Without carbon, all elements
// including hydrogen are alphabetical. Counts of one are implied and
// elements with a count of zero are omitted.
func (c Composition) Hill() string {
	syms := make([]string, 0, len(c))
	for sym, n := range c {
		if n.Sign() != 0 {
			syms = append(syms, sym)
		}
	}
	sort.Strings(syms)
	if c["C"] != nil && c["C"].Sign() != 0 {
		k := 0
		for _, first := range []string{"C", "H"} {
			for i, sym := range syms {
				if sym == first {
					copy(syms[k+1:i+1], syms[k:i])
					syms[k] = first
					k++
					break
				}
			}
		}
	}
	var b strings.Builder
	for _, sym := range syms {
		b.WriteString(sym)
		if n := c[sym]; n.Cmp(big.NewInt(1)) != 0 {
			b.WriteString(n.String())
		}
	}
	return b.String()
}

func (c Composition) String() string {
	return c.Hill()
}

// counts is a frames which counts atoms.
type counts struct {
	table *Table
	stack [][]Composition
}

func (c *counts) open() {
	c.stack = append(c.stack, nil)
}

func (c *counts) close() {
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.push(merge(top))
}

func (c *counts) element(sym string) bool {
	if _, ok := c.table.WeightOf(sym); !ok {
		return false
	}
	c.push(Composition{sym: big.NewInt(1)})
	return true
}

func (c *counts) scale(count string) bool {
	terms := c.stack[len(c.stack)-1]
	if len(terms) == 0 {
		return false
	}
	n, ok := new(big.Int).SetString(count, 10)
	if !ok {
		panic("molweight: invalid count: " + count)
	}
	for _, m := range terms[len(terms)-1] {
		m.Mul(m, n)
	}
	return true
}

func (c *counts) push(d Composition) {
	k := len(c.stack) - 1
	c.stack[k] = append(c.stack[k], d)
}

func merge(terms []Composition) Composition {
	r := make(Composition)
	for _, t := range terms {
		r.add(t)
	}
	return r
}

// Composition counts the atoms of each element in a formula. It reports the
// same errors as Weight.
func (ctx *Context) Composition(f *Formula) (Composition, error) {
	c := counts{table: ctx.table, stack: make([][]Composition, 1, 4)}
	if err := f.walk(ctx, &c); err != nil {
		return nil, err
	}
	return merge(c.stack[0]), nil
}

// MassFractions computes the fraction of a formula's molecular weight
// contributed by each element. The fractions sum to 1, unless the formula has
// no weight, in which case the result is empty.
func (ctx *Context) MassFractions(f *Formula) (map[string]*big.Float, error) {
	comp, err := ctx.Composition(f)
	if err != nil {
		return nil, err
	}
	parts := make(map[string]*big.Float, len(comp))
	total := new(big.Float).SetPrec(ctx.prec)
	for sym, n := range comp {
		w, _ := ctx.table.WeightOf(sym)
		x := new(big.Float).SetPrec(ctx.prec).SetInt(n)
		x.Mul(x, new(big.Float).SetPrec(ctx.prec).SetFloat64(w))
		parts[sym] = x
		total.Add(total, x)
	}
	r := make(map[string]*big.Float, len(parts))
	if total.Sign() == 0 {
		return r, nil
	}
	for sym, x := range parts {
		r[sym] = x.Quo(x, total)
	}
	return r, nil
}
