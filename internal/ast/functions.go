package ast

import (
	"strings"

	"github.com/cwbudde-lumen/lumen/pkg/token"
)

// Pattern is a binding target: an Identifier, or an Array/Object
// destructuring pattern, optionally wrapped in a DefaultPattern or a
// RestElement. Parameters, var/let/const declarators, and catch
// clauses all bind through a Pattern.
type Pattern interface {
	Node
	patternNode()
}

func (i *Identifier) patternNode() {}

// ArrayPattern is `[a, , b = 1, ...rest]` used as a binding target.
type ArrayPattern struct {
	Token    token.Token
	Elements []Pattern // nil entries are elisions
}

func (a *ArrayPattern) patternNode()         {}
func (a *ArrayPattern) expressionNode()      {}
func (a *ArrayPattern) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayPattern) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayPattern) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if e != nil {
			parts[i] = e.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectPattern is `{ a, b: c, ...rest }` used as a binding target.
type ObjectPattern struct {
	Token      token.Token
	Properties []*ObjectPatternProperty
	Rest       Pattern // nil unless the pattern ends in `...rest`
}

func (o *ObjectPattern) patternNode()         {}
func (o *ObjectPattern) expressionNode()      {}
func (o *ObjectPattern) TokenLiteral() string { return o.Token.Literal }
func (o *ObjectPattern) Pos() token.Position  { return o.Token.Pos }
func (o *ObjectPattern) String() string {
	parts := make([]string, len(o.Properties))
	for i, p := range o.Properties {
		parts[i] = p.Key.String() + ": " + p.Value.String()
	}
	if o.Rest != nil {
		parts = append(parts, "..."+o.Rest.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ObjectPatternProperty binds Key (a property name) to Value (a
// sub-pattern, possibly wrapped in DefaultPattern).
type ObjectPatternProperty struct {
	Key       Expression
	Value     Pattern
	Computed  bool
	Shorthand bool
}

// DefaultPattern wraps a Pattern with `= defaultValue`, used in
// parameter lists and destructuring.
type DefaultPattern struct {
	Token   token.Token
	Target  Pattern
	Default Expression
}

func (d *DefaultPattern) patternNode()         {}
func (d *DefaultPattern) expressionNode()      {}
func (d *DefaultPattern) TokenLiteral() string { return d.Token.Literal }
func (d *DefaultPattern) Pos() token.Position  { return d.Token.Pos }
func (d *DefaultPattern) String() string       { return d.Target.String() + " = " + d.Default.String() }

// RestElement is `...pattern`, valid as the last parameter or the last
// element of an array/object pattern.
type RestElement struct {
	Token   token.Token
	Target  Pattern
}

func (r *RestElement) patternNode()         {}
func (r *RestElement) expressionNode()      {}
func (r *RestElement) TokenLiteral() string { return r.Token.Literal }
func (r *RestElement) Pos() token.Position  { return r.Token.Pos }
func (r *RestElement) String() string       { return "..." + r.Target.String() }

// FunctionLiteral is the single AST shape backing function
// declarations, function expressions, and method bodies; IsGenerator
// and IsAsync parameterize it the way boa's async-generator-expression
// tests showed (see SPEC_FULL.md), instead of four separate node
// types.
type FunctionLiteral struct {
	Token       token.Token
	Name        *Identifier // nil for an anonymous function expression
	Params      []Pattern
	Body        *BlockStatement
	IsGenerator bool
	IsAsync     bool
	IsArrow     bool
	ExprBody    Expression // set instead of Body for a concise-body arrow
	Strict      bool       // "use strict" directive prologue seen
	UsesArguments bool     // not set by the parser, so always false; the interpreter does not read it
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) statementNode()       {}
func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionLiteral) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionLiteral) String() string {
	var sb strings.Builder
	if f.IsAsync {
		sb.WriteString("async ")
	}
	if f.IsArrow {
		sb.WriteString(f.paramList())
		sb.WriteString(" => ")
		if f.ExprBody != nil {
			sb.WriteString(f.ExprBody.String())
		} else {
			sb.WriteString(f.Body.String())
		}
		return sb.String()
	}
	sb.WriteString("function")
	if f.IsGenerator {
		sb.WriteString("*")
	}
	sb.WriteString(" ")
	if f.Name != nil {
		sb.WriteString(f.Name.Name)
	}
	sb.WriteString(f.paramList())
	sb.WriteString(" ")
	sb.WriteString(f.Body.String())
	return sb.String()
}

func (f *FunctionLiteral) paramList() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ClassLiteral backs both class declarations and class expressions.
type ClassLiteral struct {
	Token      token.Token
	Name       *Identifier // nil for an anonymous class expression
	SuperClass Expression
	Members    []*ClassMember
}

func (c *ClassLiteral) expressionNode()      {}
func (c *ClassLiteral) statementNode()       {}
func (c *ClassLiteral) TokenLiteral() string { return c.Token.Literal }
func (c *ClassLiteral) Pos() token.Position  { return c.Token.Pos }
func (c *ClassLiteral) String() string {
	var sb strings.Builder
	sb.WriteString("class ")
	if c.Name != nil {
		sb.WriteString(c.Name.Name + " ")
	}
	if c.SuperClass != nil {
		sb.WriteString("extends " + c.SuperClass.String() + " ")
	}
	sb.WriteString("{ ")
	for _, m := range c.Members {
		sb.WriteString(m.String())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

// ClassMemberKind distinguishes class body entries.
type ClassMemberKind int

const (
	ClassMethod ClassMemberKind = iota
	ClassGetter
	ClassSetter
	ClassField
)

// ClassMember is one method/getter/setter/field entry in a class body.
type ClassMember struct {
	Key      Expression
	Computed bool
	Static   bool
	Kind     ClassMemberKind
	Value    *FunctionLiteral // nil for ClassField
	FieldInit Expression      // nil if the field has no initializer
	IsConstructor bool
}

func (m *ClassMember) String() string {
	prefix := ""
	if m.Static {
		prefix = "static "
	}
	switch m.Kind {
	case ClassGetter:
		return prefix + "get " + m.Key.String() + "() {...}"
	case ClassSetter:
		return prefix + "set " + m.Key.String() + "(v) {...}"
	case ClassField:
		if m.FieldInit != nil {
			return prefix + m.Key.String() + " = " + m.FieldInit.String() + ";"
		}
		return prefix + m.Key.String() + ";"
	default:
		return prefix + m.Key.String() + "() {...}"
	}
}
