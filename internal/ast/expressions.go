package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde-lumen/lumen/pkg/token"
)

// MemberExpression is `obj.prop`, `obj[expr]`, or `obj?.prop` /
// `obj?.[expr]` (Optional set when the access short-circuits on
// null/undefined).
type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property Expression // Identifier for static access, any Expression for computed
	Computed bool
	Optional bool
}

func (m *MemberExpression) expressionNode()      {}
func (m *MemberExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MemberExpression) Pos() token.Position  { return m.Token.Pos }
func (m *MemberExpression) String() string {
	var out bytes.Buffer
	out.WriteString(m.Object.String())
	if m.Computed {
		if m.Optional {
			out.WriteString("?.")
		}
		out.WriteByte('[')
		out.WriteString(m.Property.String())
		out.WriteByte(']')
	} else {
		if m.Optional {
			out.WriteString("?.")
		} else {
			out.WriteByte('.')
		}
		out.WriteString(m.Property.String())
	}
	return out.String()
}

// CallExpression is `callee(args...)`, optionally optional-chained.
type CallExpression struct {
	Token     token.Token
	Callee    Expression
	Arguments []Expression
	Optional  bool
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() token.Position  { return c.Token.Pos }
func (c *CallExpression) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	sep := "("
	if c.Optional {
		sep = "?.("
	}
	return c.Callee.String() + sep + strings.Join(args, ", ") + ")"
}

// NewExpression is `new Callee(args...)`.
type NewExpression struct {
	Token     token.Token
	Callee    Expression
	Arguments []Expression
}

func (n *NewExpression) expressionNode()      {}
func (n *NewExpression) TokenLiteral() string { return n.Token.Literal }
func (n *NewExpression) Pos() token.Position  { return n.Token.Pos }
func (n *NewExpression) String() string {
	args := make([]string, len(n.Arguments))
	for i, a := range n.Arguments {
		args[i] = a.String()
	}
	return "new " + n.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// UnaryExpression is a prefix operator: `-x`, `!x`, `typeof x`, `void
// x`, `delete x.y`, `~x`, `+x`.
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Argument Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() token.Position  { return u.Token.Pos }
func (u *UnaryExpression) String() string {
	sep := ""
	if len(u.Operator) > 1 {
		sep = " "
	}
	return "(" + u.Operator + sep + u.Argument.String() + ")"
}

// UpdateExpression is `++x`, `x++`, `--x`, `x--`.
type UpdateExpression struct {
	Token    token.Token
	Operator string
	Argument Expression
	Prefix   bool
}

func (u *UpdateExpression) expressionNode()      {}
func (u *UpdateExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UpdateExpression) Pos() token.Position  { return u.Token.Pos }
func (u *UpdateExpression) String() string {
	if u.Prefix {
		return u.Operator + u.Argument.String()
	}
	return u.Argument.String() + u.Operator
}

// BinaryExpression covers arithmetic, comparison, bitwise, `in`, and
// `instanceof` infix operators. Logical operators (&&, ||, ??) are a
// separate node (LogicalExpression) so the interpreter can
// short-circuit them without inspecting the operator string.
type BinaryExpression struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() token.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// LogicalExpression is `&&`, `||`, or `??`; spec.md §4.6 requires these
// to short-circuit (only evaluate Right when necessary).
type LogicalExpression struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (l *LogicalExpression) expressionNode()      {}
func (l *LogicalExpression) TokenLiteral() string { return l.Token.Literal }
func (l *LogicalExpression) Pos() token.Position  { return l.Token.Pos }
func (l *LogicalExpression) String() string {
	return "(" + l.Left.String() + " " + l.Operator + " " + l.Right.String() + ")"
}

// AssignmentExpression is `target op= value`. Operator is one of "=",
// a compound-arithmetic form ("+=", "-=", ...), or a logical-assignment
// form ("&&=", "||=", "??="), matching spec.md's AssignmentOperator
// sub-tag on the binary-operator union.
type AssignmentExpression struct {
	Token    token.Token
	Operator string
	Target   Expression // validated by the parser: Identifier or MemberExpression
	Value    Expression
}

func (a *AssignmentExpression) expressionNode()      {}
func (a *AssignmentExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AssignmentExpression) Pos() token.Position  { return a.Token.Pos }
func (a *AssignmentExpression) String() string {
	return "(" + a.Target.String() + " " + a.Operator + " " + a.Value.String() + ")"
}

// ConditionalExpression is `test ? consequent : alternate`.
type ConditionalExpression struct {
	Token       token.Token
	Test        Expression
	Consequent  Expression
	Alternate   Expression
}

func (c *ConditionalExpression) expressionNode()      {}
func (c *ConditionalExpression) TokenLiteral() string { return c.Token.Literal }
func (c *ConditionalExpression) Pos() token.Position  { return c.Token.Pos }
func (c *ConditionalExpression) String() string {
	return "(" + c.Test.String() + " ? " + c.Consequent.String() + " : " + c.Alternate.String() + ")"
}

// SequenceExpression is the comma operator: `a, b, c` evaluates each in
// order and yields the last.
type SequenceExpression struct {
	Token       token.Token
	Expressions []Expression
}

func (s *SequenceExpression) expressionNode()      {}
func (s *SequenceExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SequenceExpression) Pos() token.Position  { return s.Token.Pos }
func (s *SequenceExpression) String() string {
	parts := make([]string, len(s.Expressions))
	for i, e := range s.Expressions {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TaggedTemplateExpression is `tag\`...${x}...\`` (a tag function
// called with the cooked/raw quasis and substitutions).
type TaggedTemplateExpression struct {
	Token    token.Token
	Tag      Expression
	Quasi    *TemplateLiteral
}

func (t *TaggedTemplateExpression) expressionNode()      {}
func (t *TaggedTemplateExpression) TokenLiteral() string { return t.Token.Literal }
func (t *TaggedTemplateExpression) Pos() token.Position  { return t.Token.Pos }
func (t *TaggedTemplateExpression) String() string       { return t.Tag.String() + t.Quasi.String() }

// YieldExpression is `yield expr` / `yield* expr`, valid only inside a
// generator function body.
type YieldExpression struct {
	Token    token.Token
	Argument Expression // nil for bare `yield`
	Delegate bool        // true for `yield*`
}

func (y *YieldExpression) expressionNode()      {}
func (y *YieldExpression) TokenLiteral() string { return y.Token.Literal }
func (y *YieldExpression) Pos() token.Position  { return y.Token.Pos }
func (y *YieldExpression) String() string {
	if y.Argument == nil {
		return "yield"
	}
	star := ""
	if y.Delegate {
		star = "*"
	}
	return "yield" + star + " " + y.Argument.String()
}

// AwaitExpression is `await expr`, valid only inside an async function
// body.
type AwaitExpression struct {
	Token    token.Token
	Argument Expression
}

func (a *AwaitExpression) expressionNode()      {}
func (a *AwaitExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AwaitExpression) Pos() token.Position  { return a.Token.Pos }
func (a *AwaitExpression) String() string       { return "await " + a.Argument.String() }
