package ast

import (
	"strings"

	"github.com/cwbudde-lumen/lumen/pkg/token"
)

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()      {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() token.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string {
	if e.Expression != nil {
		return e.Expression.String() + ";"
	}
	return ";"
}

// BlockStatement is `{ stmt; stmt; ... }`; it introduces a new lexical
// (declarative-environment) scope per spec.md §4.6.
type BlockStatement struct {
	Token token.Token
	Body  []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range b.Body {
		sb.WriteString(s.String())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

// DeclarationKind is `var`, `let`, or `const` (spec.md §4.3,
// "Declarations record the binding kind").
type DeclarationKind int

const (
	DeclVar DeclarationKind = iota
	DeclLet
	DeclConst
)

func (k DeclarationKind) String() string {
	switch k {
	case DeclVar:
		return "var"
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	}
	return "var"
}

// VariableDeclarator is one `name = init` entry of a declaration list;
// Name may be any Pattern (destructuring is allowed).
type VariableDeclarator struct {
	Name Pattern
	Init Expression // nil if the declarator has no initializer
}

func (v *VariableDeclarator) String() string {
	if v.Init != nil {
		return v.Name.String() + " = " + v.Init.String()
	}
	return v.Name.String()
}

// VariableDeclaration is `var|let|const a = 1, b, [c, d] = e;`.
type VariableDeclaration struct {
	Token       token.Token
	Kind        DeclarationKind
	Declarators []*VariableDeclarator
}

func (v *VariableDeclaration) statementNode()       {}
func (v *VariableDeclaration) TokenLiteral() string { return v.Token.Literal }
func (v *VariableDeclaration) Pos() token.Position  { return v.Token.Pos }
func (v *VariableDeclaration) String() string {
	parts := make([]string, len(v.Declarators))
	for i, d := range v.Declarators {
		parts[i] = d.String()
	}
	return v.Kind.String() + " " + strings.Join(parts, ", ") + ";"
}

// ReturnStatement is `return expr;` (expr nil for bare `return;`).
type ReturnStatement struct {
	Token    token.Token
	Argument Expression
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) Pos() token.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Argument != nil {
		return "return " + r.Argument.String() + ";"
	}
	return "return;"
}

// ThrowStatement is `throw expr;`.
type ThrowStatement struct {
	Token    token.Token
	Argument Expression
}

func (t *ThrowStatement) statementNode()       {}
func (t *ThrowStatement) TokenLiteral() string { return t.Token.Literal }
func (t *ThrowStatement) Pos() token.Position  { return t.Token.Pos }
func (t *ThrowStatement) String() string       { return "throw " + t.Argument.String() + ";" }

// CatchClause is the `catch (param) { body }` part of a TryStatement;
// Param is nil for a parameterless `catch { ... }`.
type CatchClause struct {
	Param Pattern
	Body  *BlockStatement
}

// TryStatement is `try { } catch (e) { } finally { }`; Handler and/or
// Finalizer may be nil but not both.
type TryStatement struct {
	Token     token.Token
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
}

func (t *TryStatement) statementNode()       {}
func (t *TryStatement) TokenLiteral() string { return t.Token.Literal }
func (t *TryStatement) Pos() token.Position  { return t.Token.Pos }
func (t *TryStatement) String() string {
	var sb strings.Builder
	sb.WriteString("try ")
	sb.WriteString(t.Block.String())
	if t.Handler != nil {
		sb.WriteString(" catch ")
		if t.Handler.Param != nil {
			sb.WriteString("(" + t.Handler.Param.String() + ") ")
		}
		sb.WriteString(t.Handler.Body.String())
	}
	if t.Finalizer != nil {
		sb.WriteString(" finally ")
		sb.WriteString(t.Finalizer.String())
	}
	return sb.String()
}

// IfStatement is `if (test) consequent else alternate`.
type IfStatement struct {
	Token      token.Token
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil if there is no else branch
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() token.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	s := "if (" + i.Test.String() + ") " + i.Consequent.String()
	if i.Alternate != nil {
		s += " else " + i.Alternate.String()
	}
	return s
}

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	Token token.Token
	Test  Expression
	Body  Statement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	return "while (" + w.Test.String() + ") " + w.Body.String()
}

// DoWhileStatement is `do body while (test);`.
type DoWhileStatement struct {
	Token token.Token
	Body  Statement
	Test  Expression
}

func (d *DoWhileStatement) statementNode()       {}
func (d *DoWhileStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DoWhileStatement) Pos() token.Position  { return d.Token.Pos }
func (d *DoWhileStatement) String() string {
	return "do " + d.Body.String() + " while (" + d.Test.String() + ");"
}

// ForStatement is the classic C-style `for (init; test; update) body`;
// any of Init/Test/Update may be nil.
type ForStatement struct {
	Token  token.Token
	Init   Node // *VariableDeclaration or Expression, or nil
	Test   Expression
	Update Expression
	Body   Statement
}

func (f *ForStatement) statementNode()       {}
func (f *ForStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForStatement) String() string {
	init, test, update := "", "", ""
	if f.Init != nil {
		init = f.Init.String()
	}
	if f.Test != nil {
		test = f.Test.String()
	}
	if f.Update != nil {
		update = f.Update.String()
	}
	return "for (" + init + "; " + test + "; " + update + ") " + f.Body.String()
}

// ForInStatement is `for (left in right) body`.
type ForInStatement struct {
	Token token.Token
	Left  Node // *VariableDeclaration (single declarator) or a Pattern/Expression target
	Right Expression
	Body  Statement
}

func (f *ForInStatement) statementNode()       {}
func (f *ForInStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForInStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForInStatement) String() string {
	return "for (" + f.Left.String() + " in " + f.Right.String() + ") " + f.Body.String()
}

// ForOfStatement is `for (left of right) body`; Await marks a
// `for await (...)` loop inside an async function.
type ForOfStatement struct {
	Token token.Token
	Left  Node
	Right Expression
	Body  Statement
	Await bool
}

func (f *ForOfStatement) statementNode()       {}
func (f *ForOfStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForOfStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForOfStatement) String() string {
	return "for (" + f.Left.String() + " of " + f.Right.String() + ") " + f.Body.String()
}

// SwitchCase is one `case test:`/`default:` arm.
type SwitchCase struct {
	Test        Expression // nil for the default arm
	Consequent  []Statement
}

// SwitchStatement is `switch (disc) { case ...: ... default: ... }`.
type SwitchStatement struct {
	Token      token.Token
	Discriminant Expression
	Cases      []*SwitchCase
}

func (s *SwitchStatement) statementNode()       {}
func (s *SwitchStatement) TokenLiteral() string { return s.Token.Literal }
func (s *SwitchStatement) Pos() token.Position  { return s.Token.Pos }
func (s *SwitchStatement) String() string {
	var sb strings.Builder
	sb.WriteString("switch (" + s.Discriminant.String() + ") { ")
	for _, c := range s.Cases {
		if c.Test != nil {
			sb.WriteString("case " + c.Test.String() + ": ")
		} else {
			sb.WriteString("default: ")
		}
		for _, st := range c.Consequent {
			sb.WriteString(st.String() + " ")
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// BreakStatement is `break;` or `break label;`.
type BreakStatement struct {
	Token token.Token
	Label *Identifier
}

func (b *BreakStatement) statementNode()       {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BreakStatement) String() string {
	if b.Label != nil {
		return "break " + b.Label.Name + ";"
	}
	return "break;"
}

// ContinueStatement is `continue;` or `continue label;`.
type ContinueStatement struct {
	Token token.Token
	Label *Identifier
}

func (c *ContinueStatement) statementNode()       {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) Pos() token.Position  { return c.Token.Pos }
func (c *ContinueStatement) String() string {
	if c.Label != nil {
		return "continue " + c.Label.Name + ";"
	}
	return "continue;"
}

// LabeledStatement is `label: statement`.
type LabeledStatement struct {
	Token token.Token
	Label *Identifier
	Body  Statement
}

func (l *LabeledStatement) statementNode()       {}
func (l *LabeledStatement) TokenLiteral() string { return l.Token.Literal }
func (l *LabeledStatement) Pos() token.Position  { return l.Token.Pos }
func (l *LabeledStatement) String() string {
	return l.Label.Name + ": " + l.Body.String()
}

// EmptyStatement is a bare `;`.
type EmptyStatement struct {
	Token token.Token
}

func (e *EmptyStatement) statementNode()       {}
func (e *EmptyStatement) TokenLiteral() string { return e.Token.Literal }
func (e *EmptyStatement) Pos() token.Position  { return e.Token.Pos }
func (e *EmptyStatement) String() string       { return ";" }

// DebuggerStatement is `debugger;`, a no-op for this interpreter.
type DebuggerStatement struct {
	Token token.Token
}

func (d *DebuggerStatement) statementNode()       {}
func (d *DebuggerStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DebuggerStatement) Pos() token.Position  { return d.Token.Pos }
func (d *DebuggerStatement) String() string       { return "debugger;" }
