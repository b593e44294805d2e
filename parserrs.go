package molweight

import (
	"strconv"
	"strings"
)

// UnmatchedParenthesesError is an error indicating a group bracket with no
// partner in the formula. It implements InputError.
type UnmatchedParenthesesError struct {
	// Formula is the source text of the formula.
	Formula string
	// Col is the position of the unmatched bracket.
	Col int
	// Open is true if the unmatched bracket is an open bracket and false if
	// it is a close bracket.
	Open bool
}

func (err *UnmatchedParenthesesError) Error() string {
	if err.Open {
		return errpos(err.Col, "open bracket ( with no close bracket in "+strconv.Quote(err.Formula))
	}
	return errpos(err.Col, "close bracket ) with no open bracket in "+strconv.Quote(err.Formula))
}

func (err *UnmatchedParenthesesError) Pos() int {
	return err.Col
}

// UnknownElementError is an error indicating an element symbol that is not
// in the element table used for evaluation. It implements InputError.
type UnknownElementError struct {
	// Formula is the source text of the formula.
	Formula string
	// Col is the position of the symbol.
	Col int
	// Symbol is the unknown symbol.
	Symbol string
	// Suggestions is a list of known symbols close to Symbol, if any.
	Suggestions []string
}

func (err *UnknownElementError) Error() string {
	msg := "unknown element " + strconv.Quote(err.Symbol) + " in " + strconv.Quote(err.Formula)
	if len(err.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(err.Suggestions, ", ") + "?)"
	}
	return errpos(err.Col, msg)
}

func (err *UnknownElementError) Pos() int {
	return err.Col
}

// DanglingCountError is an error indicating a count that does not follow an
// element or a group, e.g. at the start of a formula or right after an open
// bracket. It implements InputError.
type DanglingCountError struct {
	// Formula is the source text of the formula.
	Formula string
	// Col is the position of the count.
	Col int
	// Count is the text of the count.
	Count string
}

func (err *DanglingCountError) Error() string {
	return errpos(err.Col, "count "+err.Count+" with nothing to multiply in "+strconv.Quote(err.Formula))
}

func (err *DanglingCountError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*UnmatchedParenthesesError)(nil)
	_ InputError = (*UnknownElementError)(nil)
	_ InputError = (*DanglingCountError)(nil)
	_ InputError = (*LexError)(nil)
)
