package lexer

import "github.com/cwbudde-lumen/lumen/pkg/token"

// ErrorKind classifies a lexical failure.
type ErrorKind int

const (
	ErrUnterminatedString ErrorKind = iota
	ErrUnterminatedTemplate
	ErrUnterminatedComment
	ErrInvalidEscape
	ErrInvalidNumber
	ErrUnexpectedChar
	ErrInvalidUnicodeEscape
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnterminatedString:
		return "unterminated string literal"
	case ErrUnterminatedTemplate:
		return "unterminated template literal"
	case ErrUnterminatedComment:
		return "unterminated comment"
	case ErrInvalidEscape:
		return "invalid escape sequence"
	case ErrInvalidNumber:
		return "invalid numeric literal"
	case ErrUnexpectedChar:
		return "unexpected character"
	case ErrInvalidUnicodeEscape:
		return "invalid unicode escape sequence"
	}
	return "lexer error"
}

// Error is a lexical error tied to a source position. It is the
// Lexer{kind, position} variant of parser.ParseError mentioned in
// spec.md §4.2.
type Error struct {
	Kind ErrorKind
	Pos  token.Position
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg + " at " + e.Pos.String()
	}
	return e.Kind.String() + " at " + e.Pos.String()
}
