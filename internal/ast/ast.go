// Package ast defines the typed abstract syntax tree produced by
// internal/parser, per spec.md §3 ("AST Node"). Node, Expression, and
// Statement mirror go-dws's internal/ast interface split exactly; the
// concrete node set is this language's instead of DWScript's.
//
// AST nodes are created once by the parser and are read-only
// thereafter (spec.md §3, "Lifecycle"): nothing here mutates a node
// after Parse returns it.
package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde-lumen/lumen/pkg/token"
)

// Node is the base of every AST type: it can report the literal text
// of its leading token, its source position, and a debug string.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without itself
// producing a value (though it may contain expressions that do).
type Statement interface {
	Node
	statementNode()
}

// Script is the root node: the result of parsing a complete source
// text (spec.md §6, parse(source) -> Script-AST).
type Script struct {
	Body     []Statement
	Strict   bool // true if a "use strict" directive prologue was present
	Comments []Comment
}

func (s *Script) TokenLiteral() string {
	if len(s.Body) > 0 {
		return s.Body[0].TokenLiteral()
	}
	return ""
}
func (s *Script) Pos() token.Position {
	if len(s.Body) > 0 {
		return s.Body[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}
func (s *Script) String() string {
	var out bytes.Buffer
	for _, st := range s.Body {
		out.WriteString(st.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Comment is retained only for the printer/formatter's benefit; the
// interpreter never inspects it.
type Comment struct {
	Text  string
	Block bool
	Position token.Position
}

// ---- identifiers & literals ----

// Identifier is an IdentifierReference. It carries the name as a plain
// string; the interpreter resolves bindings by that string.
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Name }

// NumberLiteral is a NUMBER token's value.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NumberLiteral) String() string       { return n.Token.Literal }

// BigIntLiteral is the optional BigInt literal form (spec.md §3, Value
// "BigInt (optional)").
type BigIntLiteral struct {
	Token token.Token
	Text  string // digits without the trailing 'n'
}

func (b *BigIntLiteral) expressionNode()      {}
func (b *BigIntLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BigIntLiteral) Pos() token.Position  { return b.Token.Pos }
func (b *BigIntLiteral) String() string       { return b.Text + "n" }

// StringLiteral is a STRING token's decoded value.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() token.Position  { return s.Token.Pos }
func (s *StringLiteral) String() string       { return "\"" + s.Value + "\"" }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) Pos() token.Position  { return b.Token.Pos }
func (b *BooleanLiteral) String() string       { return b.Token.Literal }

// NullLiteral is `null`.
type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NullLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NullLiteral) String() string       { return "null" }

// UndefinedLiteral is the `undefined` identifier used as a literal;
// ECMAScript treats it as a plain (writable in non-strict sloppy mode,
// but here always-undefined) global binding rather than a keyword, but
// the parser recognizes it positionally as a literal for convenience.
type UndefinedLiteral struct {
	Token token.Token
}

func (u *UndefinedLiteral) expressionNode()      {}
func (u *UndefinedLiteral) TokenLiteral() string { return u.Token.Literal }
func (u *UndefinedLiteral) Pos() token.Position  { return u.Token.Pos }
func (u *UndefinedLiteral) String() string       { return "undefined" }

// ThisExpression is `this`.
type ThisExpression struct {
	Token token.Token
}

func (t *ThisExpression) expressionNode()      {}
func (t *ThisExpression) TokenLiteral() string { return t.Token.Literal }
func (t *ThisExpression) Pos() token.Position  { return t.Token.Pos }
func (t *ThisExpression) String() string       { return "this" }

// SuperExpression is `super`, valid only as the callee of a call
// expression inside a derived constructor, or as the object of a
// member expression inside a method.
type SuperExpression struct {
	Token token.Token
}

func (s *SuperExpression) expressionNode()      {}
func (s *SuperExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SuperExpression) Pos() token.Position  { return s.Token.Pos }
func (s *SuperExpression) String() string       { return "super" }

// RegExpLiteral is a /pattern/flags literal.
type RegExpLiteral struct {
	Token   token.Token
	Pattern string
	Flags   string
}

func (r *RegExpLiteral) expressionNode()      {}
func (r *RegExpLiteral) TokenLiteral() string { return r.Token.Literal }
func (r *RegExpLiteral) Pos() token.Position  { return r.Token.Pos }
func (r *RegExpLiteral) String() string       { return "/" + r.Pattern + "/" + r.Flags }

// TemplateLiteral is a `...${expr}...` literal: Quasis has one more
// entry than Expressions.
type TemplateLiteral struct {
	Token       token.Token
	Quasis      []string
	Expressions []Expression
}

func (t *TemplateLiteral) expressionNode()      {}
func (t *TemplateLiteral) TokenLiteral() string { return t.Token.Literal }
func (t *TemplateLiteral) Pos() token.Position  { return t.Token.Pos }
func (t *TemplateLiteral) String() string {
	var out bytes.Buffer
	out.WriteByte('`')
	for i, q := range t.Quasis {
		out.WriteString(q)
		if i < len(t.Expressions) {
			out.WriteString("${")
			out.WriteString(t.Expressions[i].String())
			out.WriteByte('}')
		}
	}
	out.WriteByte('`')
	return out.String()
}

// ArrayLiteral is `[a, b, ...c]`; elements may contain SpreadElement
// and Elision (nil slots for holes, e.g. `[1,,3]`).
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression // a nil entry is an elision
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLiteral) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if e == nil {
			parts[i] = ""
		} else {
			parts[i] = e.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// SpreadElement is `...expr`, valid inside array/call-argument lists
// and (as SpreadProperty use) object literals.
type SpreadElement struct {
	Token    token.Token
	Argument Expression
}

func (s *SpreadElement) expressionNode()      {}
func (s *SpreadElement) TokenLiteral() string { return s.Token.Literal }
func (s *SpreadElement) Pos() token.Position  { return s.Token.Pos }
func (s *SpreadElement) String() string       { return "..." + s.Argument.String() }

// ObjectLiteral is `{ k: v, ...rest, [computed]: v, method() {} }`.
type ObjectLiteral struct {
	Token      token.Token
	Properties []*ObjectProperty
}

func (o *ObjectLiteral) expressionNode()      {}
func (o *ObjectLiteral) TokenLiteral() string { return o.Token.Literal }
func (o *ObjectLiteral) Pos() token.Position  { return o.Token.Pos }
func (o *ObjectLiteral) String() string {
	parts := make([]string, len(o.Properties))
	for i, p := range o.Properties {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// PropertyKind distinguishes how an ObjectProperty contributes to the
// resulting property descriptor.
type PropertyKind int

const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
	PropertyMethod
	PropertySpread
)

// ObjectProperty is one entry of an ObjectLiteral.
type ObjectProperty struct {
	Token     token.Token
	Key       Expression // Identifier/StringLiteral/NumberLiteral, or the computed expr
	Computed  bool
	Value     Expression // for PropertySpread, the spread argument
	Kind      PropertyKind
	Shorthand bool
}

func (p *ObjectProperty) String() string {
	if p.Kind == PropertySpread {
		return "..." + p.Value.String()
	}
	if p.Shorthand {
		return p.Key.String()
	}
	key := p.Key.String()
	if p.Computed {
		key = "[" + key + "]"
	}
	switch p.Kind {
	case PropertyGet:
		return "get " + key + "() { ... }"
	case PropertySet:
		return "set " + key + "(v) { ... }"
	case PropertyMethod:
		return key + "() { ... }"
	default:
		return key + ": " + p.Value.String()
	}
}
