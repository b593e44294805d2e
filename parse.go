package molweight

import (
	"io"
	"sort"
	"strings"
)

// Formula = { Term [ count ] }
// Term = symbol | '(' Formula ')'

// Formula is a tokenized chemical formula that can be evaluated with a
// context. A Formula is immutable and safe to evaluate concurrently.
type Formula struct {
	// src is the text the formula was parsed from.
	src string
	// toks is the token sequence in source order.
	toks []lexToken
}

// Parse tokenizes a formula. Unless the Strict option is given, the only
// errors Parse returns are those from reading src; structural problems such
// as unbalanced brackets are reported when the formula is evaluated.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Formula, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	scan := lex(src, p)
	var toks []lexToken
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			break
		}
		toks = append(toks, tok)
	}
	return &Formula{src: scan.text(), toks: toks}, nil
}

// ParseString tokenizes a formula held in a string. Because the default
// tokenizer skips anything it does not recognize, ParseString never fails.
func ParseString(src string) *Formula {
	f, err := Parse(strings.NewReader(src))
	if err != nil {
		// strings.Reader only fails at EOF, which the lexer handles.
		panic("molweight: " + err.Error())
	}
	return f
}

// Source returns the text the formula was parsed from.
func (f *Formula) Source() string {
	return f.src
}

// String formats the formula from its tokens, dropping any characters the
// parser skipped. Adjacent counts are separated by a space so that the
// result parses to the same tokens.
func (f *Formula) String() string {
	var b strings.Builder
	for i, tok := range f.toks {
		if i > 0 && tok.kind == tokenCount && f.toks[i-1].kind == tokenCount {
			b.WriteByte(' ')
		}
		b.WriteString(tok.text)
	}
	return b.String()
}

// Empty returns whether the formula has no tokens.
func (f *Formula) Empty() bool {
	return len(f.toks) == 0
}

// Symbols returns the sorted list of distinct element symbols used in the
// formula, whether or not they are known elements.
func (f *Formula) Symbols() []string {
	seen := make(map[string]bool)
	var r []string
	for _, tok := range f.toks {
		if tok.kind == tokenElement && !seen[tok.text] {
			seen[tok.text] = true
			r = append(r, tok.text)
		}
	}
	sort.Strings(r)
	return r
}
