package molweight

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenElement is an element symbol, an uppercase letter followed by
	// any number of lowercase letters.
	tokenElement
	// tokenCount is a run of decimal digits.
	tokenCount
	// tokenOpen is an open group bracket, (.
	tokenOpen
	// tokenClose is a close group bracket, ).
	tokenClose
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token
//go:generate go mod tidy

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	seen []rune
	rune int
	eof  bool
	// strict makes unrecognized runes other than whitespace an error.
	strict bool
	// stop is a set of runes that end the input early.
	stop string
}

func lex(src io.RuneScanner, p parsectx) *lexer {
	return &lexer{
		src:    src,
		rune:   1,
		strict: p.strict,
		stop:   p.stop,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
		l.seen = append(l.seen, r)
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
	l.seen = l.seen[:len(l.seen)-1]
}

// text returns the source text the lexer has consumed, excluding a rune that
// stopped the input.
func (l *lexer) text() string {
	return string(l.seen)
}

// next scans the next token from the input. The first time the input ends,
// either at EOF or at a stop rune, the result is an EOF token with a nil
// error. Subsequent times, the result is an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case strings.ContainsRune(l.stop, r):
			// Drop the stop rune from the formula text.
			l.seen = l.seen[:len(l.seen)-1]
			tok.kind = tokenEOF
			l.eof = true
			return tok, nil
		case 'A' <= r && r <= 'Z':
			l.buf.WriteRune(r)
			if err := l.scanWhile(isLower); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenElement
			return tok, nil
		case isDigit(r):
			l.buf.WriteRune(r)
			if err := l.scanWhile(isDigit); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenCount
			return tok, nil
		case r == '(':
			tok.text = "("
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			tok.text = ")"
			tok.kind = tokenClose
			return tok, nil
		case l.strict && !unicode.IsSpace(r):
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error()
		default:
			// Anything else is noise between tokens.
			tok.pos++
		}
	}
}

// scanWhile appends runes to the buffer for as long as they satisfy ok.
func (l *lexer) scanWhile(ok func(rune) bool) error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !ok(r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func isLower(r rune) bool {
	return 'a' <= r && r <= 'z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (l *lexer) error() error {
	return &LexError{
		Formula: l.text(),
		Text:    l.buf.String(),
		Col:     l.rune - 1,
	}
}

// LexError indicates a rune that cannot begin any token. The lexer only
// returns LexErrors when parsing with Strict. It implements InputError.
type LexError struct {
	// Formula is the source text scanned up to and including the invalid
	// rune.
	Formula string
	// Text is the invalid rune.
	Text string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
