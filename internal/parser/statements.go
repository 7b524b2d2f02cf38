package parser

import (
	"github.com/cwbudde-lumen/lumen/internal/ast"
	"github.com/cwbudde-lumen/lumen/pkg/token"
)

// parseStatementListAndDirectives parses StatementList, recognizing a
// leading "use strict" directive prologue (spec.md §4.3: a directive
// is a bare string-literal ExpressionStatement occurring before any
// other statement). It stops when stop() reports true (EOF for a
// Script, `}` for a function/block body).
func (p *Parser) parseStatementListAndDirectives(stop func() bool) (bool, []ast.Statement) {
	strict := false
	var body []ast.Statement
	inPrologue := true
	for !stop() && !p.failed() {
		if inPrologue {
			if lit, ok := p.directiveAt(); ok {
				if lit == "use strict" {
					strict = true
				}
				body = append(body, p.parseStatement(flags{AllowIn: true}))
				continue
			}
			inPrologue = false
		}
		body = append(body, p.parseStatement(flags{AllowIn: true}))
	}
	return strict, body
}

// directiveAt reports whether the statement at the cursor is a bare
// string-literal expression statement, returning its literal text.
func (p *Parser) directiveAt() (string, bool) {
	if p.cur().Type != token.STRING {
		return "", false
	}
	next := p.peek(1)
	if next.Type == token.SEMICOLON || next.Type == token.EOF || next.Type == token.RBRACE || next.LineTerminatorBefore {
		return p.cur().Literal, true
	}
	return "", false
}

// parseStatement dispatches on the current token to the matching
// Statement production (spec.md §4.3's Statement grammar).
func (p *Parser) parseStatement(f flags) ast.Statement {
	switch p.cur().Type {
	case token.LBRACE:
		return p.parseBlockStatement(f)
	case token.VAR, token.LET, token.CONST:
		if p.cur().Type == token.LET && !p.letStartsDeclaration() {
			break
		}
		decl := p.parseVariableDeclaration(f)
		p.consumeSemicolon()
		return decl
	case token.FUNCTION:
		return p.parseFunctionDeclaration(f)
	case token.ASYNC:
		if p.peek(1).Type == token.FUNCTION && !p.peek(1).LineTerminatorBefore {
			return p.parseFunctionDeclaration(f)
		}
	case token.CLASS:
		return p.parseClassDeclaration(f)
	case token.IF:
		return p.parseIfStatement(f)
	case token.WHILE:
		return p.parseWhileStatement(f)
	case token.DO:
		return p.parseDoWhileStatement(f)
	case token.FOR:
		return p.parseForStatement(f)
	case token.SWITCH:
		return p.parseSwitchStatement(f)
	case token.TRY:
		return p.parseTryStatement(f)
	case token.THROW:
		return p.parseThrowStatement(f)
	case token.RETURN:
		return p.parseReturnStatement(f)
	case token.BREAK:
		return p.parseBreakStatement(f)
	case token.CONTINUE:
		return p.parseContinueStatement(f)
	case token.SEMICOLON:
		tok := p.advance()
		return &ast.EmptyStatement{Token: tok}
	case token.DEBUGGER:
		tok := p.advance()
		p.consumeSemicolon()
		return &ast.DebuggerStatement{Token: tok}
	}

	// Labeled statement: IDENT ':' only -- anything else falls through
	// to an ExpressionStatement.
	if p.cur().Type == token.IDENT && p.peek(1).Type == token.COLON {
		labelTok := p.advance()
		p.advance() // ':'
		p.labels = append(p.labels, labelTok.Literal)
		body := p.parseStatement(f)
		p.labels = p.labels[:len(p.labels)-1]
		return &ast.LabeledStatement{Token: labelTok, Label: &ast.Identifier{Token: labelTok, Name: labelTok.Literal}, Body: body}
	}

	return p.parseExpressionStatement(f)
}

// letStartsDeclaration disambiguates `let` as a declaration keyword
// from `let` used as a plain identifier (e.g. `let[0] = 1;`, a
// property-access expression statement in non-strict code): a
// following identifier, `[`, or `{` means a declaration.
func (p *Parser) letStartsDeclaration() bool {
	switch p.peek(1).Type {
	case token.IDENT, token.LBRACK, token.LBRACE, token.YIELD, token.AWAIT, token.LET, token.ASYNC, token.OF, token.GET, token.SET, token.STATIC:
		return true
	}
	return false
}

func (p *Parser) parseBlockStatement(f flags) *ast.BlockStatement {
	tok := p.expect(token.LBRACE)
	block := &ast.BlockStatement{Token: tok}
	for p.cur().Type != token.RBRACE && p.cur().Type != token.EOF && !p.failed() {
		block.Body = append(block.Body, p.parseStatement(f))
	}
	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseExpressionStatement(f flags) ast.Statement {
	tok := p.cur()
	expr := p.parseExpressionSequence(f)
	p.consumeSemicolon()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func declKindOf(t token.Type) ast.DeclarationKind {
	switch t {
	case token.LET:
		return ast.DeclLet
	case token.CONST:
		return ast.DeclConst
	default:
		return ast.DeclVar
	}
}

// parseVariableDeclaration parses `var|let|const d1, d2, ...` without
// consuming the trailing semicolon (the for-statement head needs the
// bare declarator list).
func (p *Parser) parseVariableDeclaration(f flags) *ast.VariableDeclaration {
	tok := p.advance()
	decl := &ast.VariableDeclaration{Token: tok, Kind: declKindOf(tok.Type)}
	for {
		target, ok := p.tryParseBindingTarget()
		if !ok {
			p.fail(newUnexpected(p.cur(), "binding target"))
			break
		}
		var init ast.Expression
		if p.cur().Type == token.ASSIGN {
			p.advance()
			init = p.parseAssignment(f)
		} else if decl.Kind == ast.DeclConst {
			p.fail(newGeneral(tok.Pos, "missing initializer in const declaration"))
		}
		decl.Declarators = append(decl.Declarators, &ast.VariableDeclarator{Name: target, Init: init})
		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	return decl
}

func (p *Parser) parseIfStatement(f flags) ast.Statement {
	tok := p.advance()
	p.expect(token.LPAREN)
	test := p.parseExpressionSequence(f.withIn(true))
	p.expect(token.RPAREN)
	cons := p.parseStatement(f)
	var alt ast.Statement
	if p.cur().Type == token.ELSE {
		p.advance()
		alt = p.parseStatement(f)
	}
	return &ast.IfStatement{Token: tok, Test: test, Consequent: cons, Alternate: alt}
}

func (p *Parser) parseWhileStatement(f flags) ast.Statement {
	tok := p.advance()
	p.expect(token.LPAREN)
	test := p.parseExpressionSequence(f.withIn(true))
	p.expect(token.RPAREN)
	p.inLoop++
	body := p.parseStatement(f)
	p.inLoop--
	return &ast.WhileStatement{Token: tok, Test: test, Body: body}
}

func (p *Parser) parseDoWhileStatement(f flags) ast.Statement {
	tok := p.advance()
	p.inLoop++
	body := p.parseStatement(f)
	p.inLoop--
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	test := p.parseExpressionSequence(f.withIn(true))
	p.expect(token.RPAREN)
	// ASI: the semicolon after `do...while(test)` is optional even
	// without a preceding line terminator (spec.md §4.3 carve-out).
	if p.cur().Type == token.SEMICOLON {
		p.advance()
	}
	return &ast.DoWhileStatement{Token: tok, Body: body, Test: test}
}

// parseForStatement handles the three for-head shapes (classic,
// for-in, for-of) by first parsing a header expression/declaration
// with AllowIn=false, then branching on what follows it.
func (p *Parser) parseForStatement(f flags) ast.Statement {
	tok := p.advance()
	isAwait := false
	if p.cur().Type == token.AWAIT {
		isAwait = true
		p.advance()
	}
	p.expect(token.LPAREN)

	if p.cur().Type == token.SEMICOLON {
		return p.finishClassicFor(tok, nil, f)
	}

	if p.cur().Type == token.VAR || p.cur().Type == token.CONST || (p.cur().Type == token.LET && p.letStartsDeclaration()) {
		declTok := p.cur()
		declKind := declKindOf(declTok.Type)
		p.advance()
		target, ok := p.tryParseBindingTarget()
		if !ok {
			p.fail(newUnexpected(p.cur(), "binding target"))
			return p.finishClassicFor(tok, nil, f)
		}
		if p.cur().Type == token.IN {
			p.advance()
			right := p.parseExpressionSequence(f.withIn(true))
			p.expect(token.RPAREN)
			decl := &ast.VariableDeclaration{Token: declTok, Kind: declKind, Declarators: []*ast.VariableDeclarator{{Name: target}}}
			p.inLoop++
			body := p.parseStatement(f)
			p.inLoop--
			return &ast.ForInStatement{Token: tok, Left: decl, Right: right, Body: body}
		}
		if p.cur().Type == token.OF {
			p.advance()
			right := p.parseAssignment(f.withIn(true))
			p.expect(token.RPAREN)
			decl := &ast.VariableDeclaration{Token: declTok, Kind: declKind, Declarators: []*ast.VariableDeclarator{{Name: target}}}
			p.inLoop++
			body := p.parseStatement(f)
			p.inLoop--
			return &ast.ForOfStatement{Token: tok, Left: decl, Right: right, Body: body, Await: isAwait}
		}
		decl := &ast.VariableDeclaration{Token: declTok, Kind: declKind}
		var init ast.Expression
		if p.cur().Type == token.ASSIGN {
			p.advance()
			init = p.parseAssignment(f.withIn(false))
		}
		decl.Declarators = append(decl.Declarators, &ast.VariableDeclarator{Name: target, Init: init})
		for p.cur().Type == token.COMMA {
			p.advance()
			t2, ok := p.tryParseBindingTarget()
			if !ok {
				break
			}
			var i2 ast.Expression
			if p.cur().Type == token.ASSIGN {
				p.advance()
				i2 = p.parseAssignment(f.withIn(false))
			}
			decl.Declarators = append(decl.Declarators, &ast.VariableDeclarator{Name: t2, Init: i2})
		}
		return p.finishClassicFor(tok, decl, f)
	}

	// Non-declaration head: parse an expression with AllowIn=false,
	// then check for `in`/`of`.
	headExpr := p.parseExpressionSequence(f.withIn(false))
	if p.cur().Type == token.IN {
		p.advance()
		right := p.parseExpressionSequence(f.withIn(true))
		p.expect(token.RPAREN)
		p.inLoop++
		body := p.parseStatement(f)
		p.inLoop--
		return &ast.ForInStatement{Token: tok, Left: headExpr, Right: right, Body: body}
	}
	if p.cur().Type == token.OF {
		p.advance()
		right := p.parseAssignment(f.withIn(true))
		p.expect(token.RPAREN)
		p.inLoop++
		body := p.parseStatement(f)
		p.inLoop--
		return &ast.ForOfStatement{Token: tok, Left: headExpr, Right: right, Body: body, Await: isAwait}
	}
	return p.finishClassicForFromExpr(tok, headExpr, f)
}

func (p *Parser) finishClassicFor(tok token.Token, init ast.Node, f flags) ast.Statement {
	p.expect(token.SEMICOLON)
	var test, update ast.Expression
	if p.cur().Type != token.SEMICOLON {
		test = p.parseExpressionSequence(f.withIn(true))
	}
	p.expect(token.SEMICOLON)
	if p.cur().Type != token.RPAREN {
		update = p.parseExpressionSequence(f.withIn(true))
	}
	p.expect(token.RPAREN)
	p.inLoop++
	body := p.parseStatement(f)
	p.inLoop--
	return &ast.ForStatement{Token: tok, Init: init, Test: test, Update: update, Body: body}
}

func (p *Parser) finishClassicForFromExpr(tok token.Token, init ast.Expression, f flags) ast.Statement {
	var node ast.Node
	if init != nil {
		node = init
	}
	return p.finishClassicFor(tok, node, f)
}

func (p *Parser) parseSwitchStatement(f flags) ast.Statement {
	tok := p.advance()
	p.expect(token.LPAREN)
	disc := p.parseExpressionSequence(f.withIn(true))
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	sw := &ast.SwitchStatement{Token: tok, Discriminant: disc}
	p.inSwitch++
	seenDefault := false
	for p.cur().Type != token.RBRACE && p.cur().Type != token.EOF {
		c := &ast.SwitchCase{}
		if p.cur().Type == token.CASE {
			p.advance()
			c.Test = p.parseExpressionSequence(f.withIn(true))
		} else if p.cur().Type == token.DEFAULT {
			if seenDefault {
				p.fail(newGeneral(p.cur().Pos, "multiple default clauses in switch"))
			}
			seenDefault = true
			p.advance()
		} else {
			p.fail(newUnexpected(p.cur(), "case or default"))
			break
		}
		p.expect(token.COLON)
		for p.cur().Type != token.CASE && p.cur().Type != token.DEFAULT && p.cur().Type != token.RBRACE && p.cur().Type != token.EOF {
			c.Consequent = append(c.Consequent, p.parseStatement(f))
		}
		sw.Cases = append(sw.Cases, c)
	}
	p.inSwitch--
	p.expect(token.RBRACE)
	return sw
}

func (p *Parser) parseTryStatement(f flags) ast.Statement {
	tok := p.advance()
	block := p.parseBlockStatement(f)
	t := &ast.TryStatement{Token: tok, Block: block}
	if p.cur().Type == token.CATCH {
		p.advance()
		var param ast.Pattern
		if p.cur().Type == token.LPAREN {
			p.advance()
			target, ok := p.tryParseBindingTarget()
			if !ok {
				p.fail(newUnexpected(p.cur(), "binding target"))
			}
			param = target
			p.expect(token.RPAREN)
		}
		body := p.parseBlockStatement(f)
		t.Handler = &ast.CatchClause{Param: param, Body: body}
	}
	if p.cur().Type == token.FINALLY {
		p.advance()
		t.Finalizer = p.parseBlockStatement(f)
	}
	if t.Handler == nil && t.Finalizer == nil {
		p.fail(newGeneral(tok.Pos, "missing catch or finally after try"))
	}
	return t
}

func (p *Parser) parseThrowStatement(f flags) ast.Statement {
	tok := p.advance()
	if p.cur().LineTerminatorBefore {
		p.fail(newGeneral(tok.Pos, "illegal newline after throw"))
	}
	arg := p.parseExpressionSequence(f.withIn(true))
	p.consumeSemicolon()
	return &ast.ThrowStatement{Token: tok, Argument: arg}
}

func (p *Parser) parseReturnStatement(f flags) ast.Statement {
	tok := p.advance()
	var arg ast.Expression
	if !p.cur().LineTerminatorBefore && canStartExpressionArg(p.cur()) {
		arg = p.parseExpressionSequence(f.withIn(true))
	}
	p.consumeSemicolon()
	return &ast.ReturnStatement{Token: tok, Argument: arg}
}

func (p *Parser) parseBreakStatement(f flags) ast.Statement {
	tok := p.advance()
	var label *ast.Identifier
	if p.cur().Type == token.IDENT && !p.cur().LineTerminatorBefore {
		lt := p.advance()
		label = &ast.Identifier{Token: lt, Name: lt.Literal}
	} else if p.inLoop == 0 && p.inSwitch == 0 {
		p.fail(newGeneral(tok.Pos, "illegal break statement outside loop or switch"))
	}
	p.consumeSemicolon()
	return &ast.BreakStatement{Token: tok, Label: label}
}

func (p *Parser) parseContinueStatement(f flags) ast.Statement {
	tok := p.advance()
	var label *ast.Identifier
	if p.cur().Type == token.IDENT && !p.cur().LineTerminatorBefore {
		lt := p.advance()
		label = &ast.Identifier{Token: lt, Name: lt.Literal}
	} else if p.inLoop == 0 {
		p.fail(newGeneral(tok.Pos, "illegal continue statement outside loop"))
	}
	p.consumeSemicolon()
	return &ast.ContinueStatement{Token: tok, Label: label}
}
