package parser

import (
	"fmt"

	"github.com/samber/oops"

	"github.com/cwbudde-lumen/lumen/internal/lexer"
	"github.com/cwbudde-lumen/lumen/pkg/token"
)

// ErrorKind is the ParseError variant tag from spec.md §4.3: Unexpected
// (found a token where a different one was expected), AbruptEnd (ran
// out of tokens mid-production), General (any other parse failure),
// and Lexer (a lexical error surfaced through the parser).
type ErrorKind int

const (
	ErrUnexpected ErrorKind = iota
	ErrAbruptEnd
	ErrGeneral
	ErrLexer
)

// ParseError is a host-level failure (spec.md §7: "Host errors ...
// bubble out of parse/eval as host-level failures"). It is never a
// script-visible value.
type ParseError struct {
	Kind     ErrorKind
	Found    string
	Expected string
	Pos      token.Position
	Message  string
	cause    error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrUnexpected:
		return fmt.Sprintf("unexpected token %s (expected %s) at %s", e.Found, e.Expected, e.Pos)
	case ErrAbruptEnd:
		return fmt.Sprintf("unexpected end of input at %s", e.Pos)
	case ErrLexer:
		return fmt.Sprintf("lexical error: %s at %s", e.Message, e.Pos)
	default:
		return fmt.Sprintf("%s at %s", e.Message, e.Pos)
	}
}

func (e *ParseError) Unwrap() error { return e.cause }

// newUnexpected builds an ErrUnexpected ParseError, wrapped through
// oops so the host side gets a stable error code plus position context
// attached (grounded on holomush-holomush's `oops.Code(...).Errorf`
// pattern; see SPEC_FULL.md's AMBIENT STACK section).
func newUnexpected(found token.Token, expected string) *ParseError {
	werr := oops.Code("PARSE_UNEXPECTED_TOKEN").
		With("line", found.Pos.Line).
		With("column", found.Pos.Column).
		With("found", found.Type.String()).
		With("expected", expected).
		Errorf("unexpected token")
	return &ParseError{
		Kind: ErrUnexpected, Found: found.Type.String(), Expected: expected,
		Pos: found.Pos, cause: werr,
	}
}

func newAbruptEnd(pos token.Position) *ParseError {
	werr := oops.Code("PARSE_ABRUPT_END").With("line", pos.Line).Errorf("unexpected end of input")
	return &ParseError{Kind: ErrAbruptEnd, Pos: pos, cause: werr}
}

func newGeneral(pos token.Position, msg string, args ...interface{}) *ParseError {
	formatted := fmt.Sprintf(msg, args...)
	werr := oops.Code("PARSE_ERROR").With("line", pos.Line).Errorf("%s", formatted)
	return &ParseError{Kind: ErrGeneral, Pos: pos, Message: formatted, cause: werr}
}

func fromLexerError(e *lexer.Error) *ParseError {
	return &ParseError{Kind: ErrLexer, Pos: e.Pos, Message: e.Error(), cause: e}
}
