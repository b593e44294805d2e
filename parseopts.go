package molweight

import (
	"strconv"
	"strings"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	strictopt struct{}
	stopopt   string
)

// parsectx holds the settings for one call to Parse.
type parsectx struct {
	// strict indicates that runes which cannot begin a token are errors
	// rather than noise. Whitespace is always noise.
	strict bool
	// stop is a string containing the runes that end the formula.
	stop string
}

// Strict tells the parser to reject any character that is not part of an
// element symbol, a count, or a bracket, other than whitespace. By default,
// such characters are skipped, so "H2O+" and "H-O-H" parse as "H2O" and
// "HOH".
func Strict() ParseOption {
	return strictopt{}
}

func (strictopt) parseOption(p parsectx) parsectx {
	p.strict = true
	return p
}

// StopOn tells the parser to treat a list of characters as ending the
// formula. The character that ends the formula is consumed. This allows
// parsing several formulas from one source, e.g. one per line. Letters,
// digits, and brackets cannot end a formula.
//
// StopOn overrides the effect of any previous StopOn in the parsing options.
// With no arguments, StopOn produces the default termination behavior, which
// is to parse to EOF.
func StopOn(chars ...rune) ParseOption {
	var b strings.Builder
	for _, r := range chars {
		switch {
		case 'A' <= r && r <= 'Z', isLower(r), isDigit(r), r == '(', r == ')':
			panic("molweight: cannot stop on " + strconv.QuoteRune(r))
		case strings.ContainsRune(b.String(), r):
			continue
		}
		b.WriteRune(r)
	}
	return stopopt(b.String())
}

func (o stopopt) parseOption(p parsectx) parsectx {
	p.stop = string(o)
	return p
}
