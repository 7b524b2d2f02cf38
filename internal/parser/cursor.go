package parser

import (
	"github.com/cwbudde-lumen/lumen/internal/lexer"
	"github.com/cwbudde-lumen/lumen/pkg/token"
)

// cursor is a bounded-backtracking view over the full token stream.
// spec.md §4.3 calls for "peek-k, next, back (one-token rewind)" plus
// support for the cover-grammar's speculative arrow-function parse;
// buffering the whole stream up front (rather than go-dws's
// single-lookahead-plus-rewind streaming cursor) makes both trivial:
// Mark/Reset just save/restore an index.
type cursor struct {
	toks []token.Token
	pos  int
}

// newCursor tokenizes the entire input eagerly. Lexical errors are
// collected but do not stop tokenization -- Parse returns the first of
// them before it parses any statement, so ILLEGAL tokens never produce
// a cascade of parse errors.
func newCursor(l *lexer.Lexer) (*cursor, []*lexer.Error) {
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Type == token.EOF {
			break
		}
	}
	return &cursor{toks: toks}, l.Errors()
}

// cur returns the token at the cursor (the "current" token, i.e. the
// next one to be consumed).
func (c *cursor) cur() token.Token { return c.toks[c.pos] }

// peek returns the token k positions ahead of cur (peek(0) == cur()).
func (c *cursor) peek(k int) token.Token {
	idx := c.pos + k
	if idx >= len(c.toks) {
		return c.toks[len(c.toks)-1] // EOF
	}
	return c.toks[idx]
}

// next consumes and returns cur, advancing the cursor.
func (c *cursor) next() token.Token {
	t := c.cur()
	if c.pos < len(c.toks)-1 {
		c.pos++
	}
	return t
}

// back rewinds the cursor by one token.
func (c *cursor) back() {
	if c.pos > 0 {
		c.pos--
	}
}

// mark captures the current position for a later reset -- the
// bounded-backtracking primitive tryParse is built on.
func (c *cursor) mark() int { return c.pos }

// reset rewinds to a previously marked position.
func (c *cursor) reset(m int) { c.pos = m }

// peekExpectNoLineTerminator looks k tokens ahead like peek, but the
// caller uses its LineTerminatorBefore flag to decide whether automatic
// semicolon insertion or a restricted-production rule (e.g. no line
// terminator allowed before `++`) applies.
func (c *cursor) peekExpectNoLineTerminator(k int) (token.Token, bool) {
	t := c.peek(k)
	return t, !t.LineTerminatorBefore
}
