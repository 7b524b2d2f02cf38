package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde-lumen/lumen/internal/ast"
	"github.com/cwbudde-lumen/lumen/pkg/token"
)

// Precedence levels, lowest to highest, implementing spec.md §4.3's
// call-graph-encoded precedence chain:
//   AssignmentExpression -> ConditionalExpression -> NullishCoalescing
//   -> LogicalOr -> LogicalAnd -> BitwiseOr -> BitwiseXor -> BitwiseAnd
//   -> Equality -> Relational -> Shift -> Additive -> Multiplicative
//   -> Exponentiation -> UnaryExpression -> UpdateExpression
//   -> LeftHandSideExpression -> CallExpression -> MemberExpression
//   -> PrimaryExpression
const (
	precLowest = iota
	precComma
	precAssign
	precConditional
	precNullish
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precCall
)

var binaryPrecedence = map[token.Type]int{
	token.QUESTIONQUESTION: precNullish,
	token.PIPEPIPE:         precLogicalOr,
	token.AMPAMP:           precLogicalAnd,
	token.PIPE:             precBitOr,
	token.CARET:            precBitXor,
	token.AMP:              precBitAnd,
	token.EQ:               precEquality,
	token.NEQ:              precEquality,
	token.SEQ:              precEquality,
	token.SNEQ:              precEquality,
	token.LT:               precRelational,
	token.GT:               precRelational,
	token.LE:               precRelational,
	token.GE:               precRelational,
	token.INSTANCEOF:       precRelational,
	token.IN:               precRelational,
	token.SHL:              precShift,
	token.SHR:              precShift,
	token.USHR:             precShift,
	token.PLUS:             precAdditive,
	token.MINUS:            precAdditive,
	token.STAR:             precMultiplicative,
	token.SLASH:            precMultiplicative,
	token.PERCENT:          precMultiplicative,
	token.STARSTAR:         precExponent,
}

// ParseExpression parses a full AssignmentExpression (no comma
// operator); exported for callers (e.g. default-value positions) that
// want a single expression without the top-level sequence wrapping.
func (p *Parser) ParseExpression(f flags) ast.Expression {
	return p.parseAssignment(f)
}

// parseExpressionSequence parses `expr, expr, ...` -- the comma
// operator -- collapsing a single-element sequence to that element.
func (p *Parser) parseExpressionSequence(f flags) ast.Expression {
	first := p.parseAssignment(f)
	if p.cur().Type != token.COMMA {
		return first
	}
	tok := p.cur()
	exprs := []ast.Expression{first}
	for p.cur().Type == token.COMMA {
		p.advance()
		exprs = append(exprs, p.parseAssignment(f))
	}
	return &ast.SequenceExpression{Token: tok, Expressions: exprs}
}

// parseAssignment implements AssignmentExpression: it first tries the
// arrow-function cover grammar, then falls back to parsing a
// ConditionalExpression and, if an assignment operator follows,
// re-validates the left side as an assignment target (spec.md §4.3,
// "Assignment targets are validated after parsing").
func (p *Parser) parseAssignment(f flags) ast.Expression {
	if f.AllowYield && p.cur().Type == token.YIELD {
		return p.parseYield(f)
	}

	if arrow := p.tryParseArrow(f); arrow != nil {
		return arrow
	}

	left := p.parseConditional(f)
	if p.cur().Type.IsAssignmentOperator() {
		opTok := p.advance()
		p.validateAssignmentTarget(left)
		right := p.parseAssignment(f)
		return &ast.AssignmentExpression{Token: opTok, Operator: opTok.Type.String(), Target: left, Value: right}
	}
	return left
}

// validateAssignmentTarget enforces spec.md §4.3: the left operand of
// `=`/compound assignment must be an identifier, a member expression,
// or an array/object literal or pattern (the destructuring forms);
// anything else is recorded as a general parse error.
func (p *Parser) validateAssignmentTarget(e ast.Expression) {
	switch e.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.ArrayPattern, *ast.ObjectPattern,
		*ast.ArrayLiteral, *ast.ObjectLiteral:
		return
	default:
		p.fail(newGeneral(e.Pos(), "invalid assignment target"))
	}
}

func (p *Parser) parseYield(f flags) ast.Expression {
	tok := p.advance()
	delegate := false
	if p.cur().Type == token.STAR {
		delegate = true
		p.advance()
	}
	var arg ast.Expression
	if !delegate && canStartExpressionArg(p.cur()) && !p.cur().LineTerminatorBefore {
		arg = p.parseAssignment(f)
	} else if delegate {
		arg = p.parseAssignment(f)
	}
	return &ast.YieldExpression{Token: tok, Argument: arg, Delegate: delegate}
}

func canStartExpressionArg(t token.Token) bool {
	switch t.Type {
	case token.SEMICOLON, token.RPAREN, token.RBRACE, token.RBRACK, token.COMMA, token.COLON, token.EOF:
		return false
	}
	return true
}

func (p *Parser) parseConditional(f flags) ast.Expression {
	test := p.parseNullish(f)
	if p.cur().Type != token.QUESTION {
		return test
	}
	tok := p.advance()
	cons := p.parseAssignment(f.withIn(true))
	p.expect(token.COLON)
	alt := p.parseAssignment(f)
	return &ast.ConditionalExpression{Token: tok, Test: test, Consequent: cons, Alternate: alt}
}

// parseNullish handles `??`, which the grammar forbids mixing directly
// with `&&`/`||` without parentheses; this parser accepts the mix (a
// pragmatic relaxation) rather than rejecting it, since the core
// evaluation semantics spec.md cares about do not depend on the
// rejection.
func (p *Parser) parseNullish(f flags) ast.Expression {
	left := p.parseLogicalOr(f)
	for p.cur().Type == token.QUESTIONQUESTION {
		tok := p.advance()
		right := p.parseLogicalOr(f)
		left = &ast.LogicalExpression{Token: tok, Operator: "??", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalOr(f flags) ast.Expression {
	left := p.parseLogicalAnd(f)
	for p.cur().Type == token.PIPEPIPE {
		tok := p.advance()
		right := p.parseLogicalAnd(f)
		left = &ast.LogicalExpression{Token: tok, Operator: "||", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd(f flags) ast.Expression {
	left := p.parseBinary(f, precBitOr)
	for p.cur().Type == token.AMPAMP {
		tok := p.advance()
		right := p.parseBinary(f, precBitOr)
		left = &ast.LogicalExpression{Token: tok, Operator: "&&", Left: left, Right: right}
	}
	return left
}

// parseBinary implements precedence climbing for every infix operator
// below logical-and, including exponentiation's right-associativity.
func (p *Parser) parseBinary(f flags, minPrec int) ast.Expression {
	left := p.parseUnary(f)
	for {
		tok := p.cur()
		if tok.Type == token.IN && !f.AllowIn {
			return left
		}
		prec, ok := binaryPrecedence[tok.Type]
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		nextMin := prec + 1
		if tok.Type == token.STARSTAR {
			nextMin = prec // right-associative: same precedence on the right
		}
		right := p.parseBinary(f, nextMin)
		left = &ast.BinaryExpression{Token: tok, Operator: tok.Type.String(), Left: left, Right: right}
	}
}

var unaryOps = map[token.Type]bool{
	token.PLUS: true, token.MINUS: true, token.BANG: true, token.TILDE: true,
	token.TYPEOF: true, token.VOID: true, token.DELETE: true,
}

func (p *Parser) parseUnary(f flags) ast.Expression {
	if f.AllowAwait && p.cur().Type == token.AWAIT {
		tok := p.advance()
		return &ast.AwaitExpression{Token: tok, Argument: p.parseUnary(f)}
	}
	if unaryOps[p.cur().Type] {
		tok := p.advance()
		arg := p.parseUnary(f)
		return &ast.UnaryExpression{Token: tok, Operator: tok.Type.String(), Argument: arg}
	}
	if p.cur().Type == token.PLUSPLUS || p.cur().Type == token.MINUSMINUS {
		tok := p.advance()
		arg := p.parseUnary(f)
		return &ast.UpdateExpression{Token: tok, Operator: tok.Type.String(), Argument: arg, Prefix: true}
	}
	return p.parsePostfix(f)
}

func (p *Parser) parsePostfix(f flags) ast.Expression {
	expr := p.parseLeftHandSide(f)
	if (p.cur().Type == token.PLUSPLUS || p.cur().Type == token.MINUSMINUS) && !p.cur().LineTerminatorBefore {
		tok := p.advance()
		return &ast.UpdateExpression{Token: tok, Operator: tok.Type.String(), Argument: expr, Prefix: false}
	}
	return expr
}

// parseLeftHandSide implements LeftHandSideExpression -> CallExpression
// | NewExpression, threading through MemberExpression.
func (p *Parser) parseLeftHandSide(f flags) ast.Expression {
	var expr ast.Expression
	if p.cur().Type == token.NEW {
		expr = p.parseNew(f)
	} else {
		expr = p.parsePrimary(f)
	}
	return p.parseCallOrMemberTail(expr, f)
}

func (p *Parser) parseNew(f flags) ast.Expression {
	tok := p.advance()
	if p.cur().Type == token.DOT { // new.target
		p.advance()
		p.expect(token.IDENT) // "target"
		return &ast.Identifier{Token: tok, Name: "new.target"}
	}
	var callee ast.Expression
	if p.cur().Type == token.NEW {
		callee = p.parseNew(f)
	} else {
		callee = p.parsePrimary(f)
	}
	callee = p.parseMemberTail(callee, f)
	var args []ast.Expression
	if p.cur().Type == token.LPAREN {
		args = p.parseArguments(f)
	}
	return &ast.NewExpression{Token: tok, Callee: callee, Arguments: args}
}

// parseMemberTail consumes `.prop` / `[expr]` chains only (no calls),
// used while parsing a `new` callee, which binds tighter than a call.
func (p *Parser) parseMemberTail(expr ast.Expression, f flags) ast.Expression {
	for {
		switch p.cur().Type {
		case token.DOT:
			tok := p.advance()
			name := p.parseIdentifierName()
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: name, Computed: false}
		case token.LBRACK:
			tok := p.advance()
			idx := p.parseExpressionSequence(f.withIn(true))
			p.expect(token.RBRACK)
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: idx, Computed: true}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallOrMemberTail(expr ast.Expression, f flags) ast.Expression {
	for {
		switch p.cur().Type {
		case token.DOT:
			tok := p.advance()
			name := p.parseIdentifierName()
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: name, Computed: false}
		case token.QUESTIONDOT:
			tok := p.advance()
			if p.cur().Type == token.LPAREN {
				args := p.parseArguments(f)
				expr = &ast.CallExpression{Token: tok, Callee: expr, Arguments: args, Optional: true}
				continue
			}
			if p.cur().Type == token.LBRACK {
				p.advance()
				idx := p.parseExpressionSequence(f.withIn(true))
				p.expect(token.RBRACK)
				expr = &ast.MemberExpression{Token: tok, Object: expr, Property: idx, Computed: true, Optional: true}
				continue
			}
			name := p.parseIdentifierName()
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: name, Computed: false, Optional: true}
		case token.LBRACK:
			tok := p.advance()
			idx := p.parseExpressionSequence(f.withIn(true))
			p.expect(token.RBRACK)
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: idx, Computed: true}
		case token.LPAREN:
			tok := p.cur()
			args := p.parseArguments(f)
			expr = &ast.CallExpression{Token: tok, Callee: expr, Arguments: args}
		case token.NOSUB_TEMPLATE, token.TEMPLATE_HEAD:
			tmpl := p.parseTemplateLiteral(f)
			expr = &ast.TaggedTemplateExpression{Token: tmpl.Token, Tag: expr, Quasi: tmpl}
		default:
			return expr
		}
	}
}

func (p *Parser) parseIdentifierName() *ast.Identifier {
	tok := p.cur()
	if tok.Type != token.IDENT && !tok.Type.IsKeyword() {
		p.fail(newUnexpected(tok, "identifier"))
		return &ast.Identifier{Token: tok, Name: ""}
	}
	p.advance()
	return &ast.Identifier{Token: tok, Name: tok.Literal}
}

func (p *Parser) parseArguments(f flags) []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	inner := f.withIn(true)
	for p.cur().Type != token.RPAREN && p.cur().Type != token.EOF {
		if p.cur().Type == token.ELLIPSIS {
			tok := p.advance()
			args = append(args, &ast.SpreadElement{Token: tok, Argument: p.parseAssignment(inner)})
		} else {
			args = append(args, p.parseAssignment(inner))
		}
		if p.cur().Type == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	return args
}

// parsePrimary implements PrimaryExpression.
func (p *Parser) parsePrimary(f flags) ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return &ast.NumberLiteral{Token: tok, Value: parseNumericLiteral(tok.Literal)}
	case token.BIGINT:
		p.advance()
		return &ast.BigIntLiteral{Token: tok, Text: tok.Literal}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}
	case token.NULL:
		p.advance()
		return &ast.NullLiteral{Token: tok}
	case token.UNDEFINED:
		p.advance()
		return &ast.UndefinedLiteral{Token: tok}
	case token.THIS:
		p.advance()
		return &ast.ThisExpression{Token: tok}
	case token.SUPER:
		p.advance()
		return &ast.SuperExpression{Token: tok}
	case token.REGEXP:
		p.advance()
		return parseRegexLiteral(tok)
	case token.NOSUB_TEMPLATE, token.TEMPLATE_HEAD:
		return p.parseTemplateLiteral(f)
	case token.IDENT:
		return p.parseIdentifierOrArrow(f)
	case token.ASYNC:
		if p.peek(1).Type == token.FUNCTION && !p.peek(1).LineTerminatorBefore {
			return p.parseFunctionExpression(f)
		}
		return p.parseIdentifierOrArrow(f)
	case token.FUNCTION:
		return p.parseFunctionExpression(f)
	case token.CLASS:
		return p.parseClassExpression(f)
	case token.LBRACK:
		return p.parseArrayLiteral(f)
	case token.LBRACE:
		return p.parseObjectLiteral(f)
	case token.LPAREN:
		return p.parseParenthesizedExpression(f)
	case token.YIELD, token.GET, token.SET, token.STATIC, token.OF, token.LET, token.AWAIT:
		// contextual keywords used as plain identifiers
		return p.parseIdentifierOrArrow(f)
	default:
		p.fail(newUnexpected(tok, "expression"))
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	}
}

func (p *Parser) parseIdentifierOrArrow(f flags) ast.Expression {
	tok := p.advance()
	if tok.Type == token.ASYNC && p.cur().Type == token.IDENT && p.peek(1).Type == token.ARROW && !p.cur().LineTerminatorBefore {
		param := &ast.Identifier{Token: p.cur(), Name: p.cur().Literal}
		p.advance()
		return p.finishArrow(tok, []ast.Pattern{param}, true, f)
	}
	if p.cur().Type == token.ARROW && !p.cur().LineTerminatorBefore {
		param := &ast.Identifier{Token: tok, Name: tok.Literal}
		return p.finishArrow(tok, []ast.Pattern{param}, false, f)
	}
	return &ast.Identifier{Token: tok, Name: tok.Literal}
}

func parseNumericLiteral(lit string) float64 {
	s := lit
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, _ := strconv.ParseInt(s[2:], 16, 64)
		return float64(v)
	case strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0O"):
		v, _ := strconv.ParseInt(s[2:], 8, 64)
		return float64(v)
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		v, _ := strconv.ParseInt(s[2:], 2, 64)
		return float64(v)
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseRegexLiteral(tok token.Token) *ast.RegExpLiteral {
	s := tok.Literal
	end := strings.LastIndex(s, "/")
	return &ast.RegExpLiteral{Token: tok, Pattern: s[1:end], Flags: s[end+1:]}
}

func (p *Parser) parseTemplateLiteral(f flags) *ast.TemplateLiteral {
	tok := p.cur()
	lit := &ast.TemplateLiteral{Token: tok}
	if tok.Type == token.NOSUB_TEMPLATE {
		p.advance()
		lit.Quasis = []string{tok.Literal}
		return lit
	}
	p.advance() // TEMPLATE_HEAD
	lit.Quasis = append(lit.Quasis, tok.Literal)
	for {
		expr := p.parseExpressionSequence(f.withIn(true))
		lit.Expressions = append(lit.Expressions, expr)
		next := p.cur()
		if next.Type != token.TEMPLATE_MID && next.Type != token.TEMPLATE_TAIL {
			p.fail(newUnexpected(next, "template continuation"))
			break
		}
		p.advance()
		lit.Quasis = append(lit.Quasis, next.Literal)
		if next.Type == token.TEMPLATE_TAIL {
			break
		}
	}
	return lit
}

func (p *Parser) parseArrayLiteral(f flags) ast.Expression {
	tok := p.expect(token.LBRACK)
	var elems []ast.Expression
	inner := f.withIn(true)
	for p.cur().Type != token.RBRACK && p.cur().Type != token.EOF {
		if p.cur().Type == token.COMMA {
			elems = append(elems, nil) // elision
			p.advance()
			continue
		}
		if p.cur().Type == token.ELLIPSIS {
			sTok := p.advance()
			elems = append(elems, &ast.SpreadElement{Token: sTok, Argument: p.parseAssignment(inner)})
		} else {
			elems = append(elems, p.parseAssignment(inner))
		}
		if p.cur().Type == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACK)
	return &ast.ArrayLiteral{Token: tok, Elements: elems}
}

func (p *Parser) parseObjectLiteral(f flags) ast.Expression {
	tok := p.expect(token.LBRACE)
	obj := &ast.ObjectLiteral{Token: tok}
	inner := f.withIn(true)
	for p.cur().Type != token.RBRACE && p.cur().Type != token.EOF {
		obj.Properties = append(obj.Properties, p.parseObjectProperty(inner))
		if p.cur().Type == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return obj
}

func (p *Parser) parseObjectProperty(f flags) *ast.ObjectProperty {
	propTok := p.cur()
	if propTok.Type == token.ELLIPSIS {
		p.advance()
		return &ast.ObjectProperty{Token: propTok, Kind: ast.PropertySpread, Value: p.parseAssignment(f)}
	}

	isAsync, isGenerator := false, false
	accessor := ast.PropertyKind(-1)
	if (propTok.Type == token.GET || propTok.Type == token.SET) && !p.isPropertyTerminator(p.peek(1)) {
		p.advance()
		if propTok.Type == token.GET {
			accessor = ast.PropertyGet
		} else {
			accessor = ast.PropertySet
		}
		propTok = p.cur()
	} else if propTok.Type == token.ASYNC && !p.isPropertyTerminator(p.peek(1)) {
		p.advance()
		isAsync = true
		propTok = p.cur()
	}
	if propTok.Type == token.STAR {
		p.advance()
		isGenerator = true
		propTok = p.cur()
	}

	key, computed := p.parsePropertyKey(f)

	switch {
	case p.cur().Type == token.LPAREN: // method shorthand
		fn := p.parseFunctionTail(propTok, nil, isGenerator, isAsync, f)
		kind := ast.PropertyMethod
		if accessor >= 0 {
			kind = accessor
		}
		return &ast.ObjectProperty{Token: propTok, Key: key, Computed: computed, Value: fn, Kind: kind}
	case p.cur().Type == token.COLON:
		p.advance()
		val := p.parseAssignment(f)
		return &ast.ObjectProperty{Token: propTok, Key: key, Computed: computed, Value: val, Kind: ast.PropertyInit}
	default:
		// shorthand `{ x }` or `{ x = default }` (the latter only valid
		// inside a destructuring pattern, accepted here for the cover
		// grammar and re-interpreted by the pattern-conversion pass).
		ident, _ := key.(*ast.Identifier)
		if ident == nil {
			p.fail(newUnexpected(p.cur(), ":"))
			return &ast.ObjectProperty{Token: propTok, Key: key, Kind: ast.PropertyInit, Value: key}
		}
		if p.cur().Type == token.ASSIGN {
			eqTok := p.advance()
			def := p.parseAssignment(f)
			val := &ast.AssignmentExpression{Token: eqTok, Operator: "=", Target: ident, Value: def}
			return &ast.ObjectProperty{Token: propTok, Key: key, Value: val, Kind: ast.PropertyInit, Shorthand: true}
		}
		return &ast.ObjectProperty{Token: propTok, Key: key, Value: ident, Kind: ast.PropertyInit, Shorthand: true}
	}
}

func (p *Parser) isPropertyTerminator(t token.Token) bool {
	switch t.Type {
	case token.COLON, token.LPAREN, token.COMMA, token.RBRACE, token.ASSIGN:
		return true
	}
	return false
}

func (p *Parser) parsePropertyKey(f flags) (ast.Expression, bool) {
	if p.cur().Type == token.LBRACK {
		p.advance()
		key := p.parseAssignment(f.withIn(true))
		p.expect(token.RBRACK)
		return key, true
	}
	tok := p.cur()
	switch tok.Type {
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}, false
	case token.NUMBER:
		p.advance()
		return &ast.NumberLiteral{Token: tok, Value: parseNumericLiteral(tok.Literal)}, false
	default:
		return p.parseIdentifierName(), false
	}
}

// parseParenthesizedExpression handles the `(` Expression `)` branch of
// the cover grammar; tryParseArrow (called earlier, in parseAssignment)
// already speculatively consumed the arrow-parameter-list branch, so by
// the time we're here the parenthesized form is committed to being a
// plain grouped expression.
func (p *Parser) parseParenthesizedExpression(f flags) ast.Expression {
	p.expect(token.LPAREN)
	expr := p.parseExpressionSequence(f.withIn(true))
	p.expect(token.RPAREN)
	return expr
}

// tryParseArrow implements spec.md §4.3's cover grammar: when a `(`
// could start either a parenthesized expression or an arrow-function
// parameter list, speculatively parse it as a parameter list and
// commit only if `=>` follows. A bare identifier or `async ident`
// arrow head is handled directly in parseIdentifierOrArrow instead,
// since it needs no backtracking.
func (p *Parser) tryParseArrow(f flags) ast.Expression {
	isAsync := p.cur().Type == token.ASYNC && p.peek(1).Type == token.LPAREN && !p.peek(1).LineTerminatorBefore
	if p.cur().Type != token.LPAREN && !isAsync {
		return nil
	}
	return p.tryParse(func() (ast.Expression, bool) {
		startTok := p.cur()
		if isAsync {
			p.advance()
		}
		if p.cur().Type != token.LPAREN {
			return nil, false
		}
		params, ok := p.tryParseParameterList()
		if !ok {
			return nil, false
		}
		if p.cur().Type != token.ARROW || p.cur().LineTerminatorBefore {
			return nil, false
		}
		return p.finishArrow(startTok, params, isAsync, f), true
	})
}

// tryParseParameterList parses `(` pattern, pattern = default, ...rest `)`
// returning ok=false (without reporting a fatal error) if the contents
// cannot form a parameter list, so tryParseArrow can fall back cleanly.
func (p *Parser) tryParseParameterList() ([]ast.Pattern, bool) {
	p.advance() // (
	var params []ast.Pattern
	innerFlags := flags{AllowIn: true}
	for p.cur().Type != token.RPAREN {
		if p.cur().Type == token.EOF {
			return nil, false
		}
		if p.cur().Type == token.ELLIPSIS {
			p.advance()
			target, ok := p.tryParseBindingTarget()
			if !ok {
				return nil, false
			}
			params = append(params, &ast.RestElement{Target: target})
			break
		}
		target, ok := p.tryParseBindingTarget()
		if !ok {
			return nil, false
		}
		if p.cur().Type == token.ASSIGN {
			p.advance()
			def := p.parseAssignment(innerFlags)
			target = &ast.DefaultPattern{Target: target, Default: def}
		}
		params = append(params, target)
		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if p.cur().Type != token.RPAREN {
		return nil, false
	}
	p.advance()
	return params, true
}

func (p *Parser) tryParseBindingTarget() (ast.Pattern, bool) {
	switch p.cur().Type {
	case token.IDENT, token.YIELD, token.AWAIT, token.GET, token.SET, token.STATIC, token.OF, token.ASYNC, token.LET:
		tok := p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}, true
	case token.LBRACK:
		return p.parseArrayPattern(), true
	case token.LBRACE:
		return p.parseObjectPattern(), true
	default:
		return nil, false
	}
}

func (p *Parser) parseArrayPattern() *ast.ArrayPattern {
	tok := p.expect(token.LBRACK)
	pat := &ast.ArrayPattern{Token: tok}
	for p.cur().Type != token.RBRACK && p.cur().Type != token.EOF {
		if p.cur().Type == token.COMMA {
			pat.Elements = append(pat.Elements, nil)
			p.advance()
			continue
		}
		if p.cur().Type == token.ELLIPSIS {
			p.advance()
			target, _ := p.tryParseBindingTarget()
			pat.Elements = append(pat.Elements, &ast.RestElement{Target: target})
			break
		}
		target, ok := p.tryParseBindingTarget()
		if !ok {
			p.fail(newUnexpected(p.cur(), "binding target"))
			break
		}
		if p.cur().Type == token.ASSIGN {
			p.advance()
			def := p.parseAssignment(flags{AllowIn: true})
			target = &ast.DefaultPattern{Target: target, Default: def}
		}
		pat.Elements = append(pat.Elements, target)
		if p.cur().Type == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACK)
	return pat
}

func (p *Parser) parseObjectPattern() *ast.ObjectPattern {
	tok := p.expect(token.LBRACE)
	pat := &ast.ObjectPattern{Token: tok}
	for p.cur().Type != token.RBRACE && p.cur().Type != token.EOF {
		if p.cur().Type == token.ELLIPSIS {
			p.advance()
			target, _ := p.tryParseBindingTarget()
			pat.Rest = target
			break
		}
		key, computed := p.parsePropertyKey(flags{AllowIn: true})
		var value ast.Pattern
		shorthand := false
		if p.cur().Type == token.COLON {
			p.advance()
			target, ok := p.tryParseBindingTarget()
			if !ok {
				p.fail(newUnexpected(p.cur(), "binding target"))
			}
			value = target
		} else {
			ident, _ := key.(*ast.Identifier)
			value = ident
			shorthand = true
		}
		if p.cur().Type == token.ASSIGN {
			p.advance()
			def := p.parseAssignment(flags{AllowIn: true})
			value = &ast.DefaultPattern{Target: value, Default: def}
		}
		pat.Properties = append(pat.Properties, &ast.ObjectPatternProperty{Key: key, Value: value, Computed: computed, Shorthand: shorthand})
		if p.cur().Type == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return pat
}

// finishArrow builds the FunctionLiteral for an arrow function whose
// parameter list has already been parsed/consumed, with the `=>`
// token still current.
func (p *Parser) finishArrow(startTok token.Token, params []ast.Pattern, isAsync bool, f flags) ast.Expression {
	p.expect(token.ARROW)
	fn := &ast.FunctionLiteral{Token: startTok, Params: params, IsArrow: true, IsAsync: isAsync}
	inner := flags{AllowIn: true, AllowAwait: isAsync}
	if p.cur().Type == token.LBRACE {
		fn.Body = p.parseBlockStatement(inner)
	} else {
		fn.ExprBody = p.parseAssignment(inner)
	}
	return fn
}
