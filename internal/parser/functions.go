package parser

import (
	"github.com/cwbudde-lumen/lumen/internal/ast"
	"github.com/cwbudde-lumen/lumen/pkg/token"
)

// parseParameterList parses a definite (non-speculative) parameter
// list, unlike tryParseParameterList's cover-grammar use from the
// arrow-function disambiguation.
func (p *Parser) parseParameterList() []ast.Pattern {
	params, ok := p.tryParseParameterList()
	if !ok {
		p.fail(newUnexpected(p.cur(), "parameter list"))
		return nil
	}
	return params
}

func (p *Parser) parseFunctionDeclaration(f flags) ast.Statement {
	startTok := p.cur()
	isAsync := startTok.Type == token.ASYNC
	if isAsync {
		p.advance()
	}
	fnTok := p.expect(token.FUNCTION)
	isGenerator := false
	if p.cur().Type == token.STAR {
		isGenerator = true
		p.advance()
	}
	var name *ast.Identifier
	if p.cur().Type == token.IDENT {
		nt := p.advance()
		name = &ast.Identifier{Token: nt, Name: nt.Literal}
	} else {
		p.fail(newUnexpected(p.cur(), "function name"))
	}
	fn := p.parseFunctionTail(fnTok, name, isGenerator, isAsync, f)
	_ = startTok
	return fn
}

func (p *Parser) parseFunctionExpression(f flags) ast.Expression {
	startTok := p.cur()
	isAsync := startTok.Type == token.ASYNC
	if isAsync {
		p.advance()
	}
	fnTok := p.expect(token.FUNCTION)
	isGenerator := false
	if p.cur().Type == token.STAR {
		isGenerator = true
		p.advance()
	}
	var name *ast.Identifier
	if p.cur().Type == token.IDENT {
		nt := p.advance()
		name = &ast.Identifier{Token: nt, Name: nt.Literal}
	}
	return p.parseFunctionTail(fnTok, name, isGenerator, isAsync, f)
}

// parseFunctionTail parses `(params) { body }` for a function whose
// keyword(s)/name have already been consumed; also used for object
// literal and class methods (name token supplied for position only).
func (p *Parser) parseFunctionTail(tok token.Token, name *ast.Identifier, isGenerator, isAsync bool, outer flags) *ast.FunctionLiteral {
	params := p.parseParameterList()
	bodyFlags := flags{AllowIn: true, AllowYield: isGenerator, AllowAwait: isAsync}
	body := p.parseBlockStatement(bodyFlags)
	strict := false // not inherited from the enclosing code; only the body's own directive prologue sets it
	if len(body.Body) > 0 {
		if es, ok := body.Body[0].(*ast.ExpressionStatement); ok {
			if sl, ok := es.Expression.(*ast.StringLiteral); ok && sl.Value == "use strict" {
				strict = true
			}
		}
	}
	return &ast.FunctionLiteral{
		Token: tok, Name: name, Params: params, Body: body,
		IsGenerator: isGenerator, IsAsync: isAsync, Strict: strict,
	}
}

func (p *Parser) parseClassDeclaration(f flags) ast.Statement {
	cls := p.parseClassTail(f)
	return cls
}

func (p *Parser) parseClassExpression(f flags) ast.Expression {
	return p.parseClassTail(f)
}

// parseClassTail parses `class Name? extends Super? { members }`; used
// for both declarations and expressions since ClassLiteral satisfies
// both Statement and Expression.
func (p *Parser) parseClassTail(f flags) *ast.ClassLiteral {
	tok := p.expect(token.CLASS)
	cls := &ast.ClassLiteral{Token: tok}
	if p.cur().Type == token.IDENT {
		nt := p.advance()
		cls.Name = &ast.Identifier{Token: nt, Name: nt.Literal}
	}
	if p.cur().Type == token.EXTENDS {
		p.advance()
		cls.SuperClass = p.parseLeftHandSide(f.withIn(true))
	}
	p.expect(token.LBRACE)
	for p.cur().Type != token.RBRACE && p.cur().Type != token.EOF {
		if p.cur().Type == token.SEMICOLON {
			p.advance()
			continue
		}
		cls.Members = append(cls.Members, p.parseClassMember(f))
	}
	p.expect(token.RBRACE)
	return cls
}

func (p *Parser) parseClassMember(f flags) *ast.ClassMember {
	static := false
	if p.cur().Type == token.STATIC && !p.isPropertyTerminator(p.peek(1)) {
		static = true
		p.advance()
	}

	isAsync, isGenerator := false, false
	accessor := ast.ClassMethod
	isAccessor := false
	if (p.cur().Type == token.GET || p.cur().Type == token.SET) && !p.isPropertyTerminator(p.peek(1)) {
		if p.cur().Type == token.GET {
			accessor = ast.ClassGetter
		} else {
			accessor = ast.ClassSetter
		}
		isAccessor = true
		p.advance()
	} else if p.cur().Type == token.ASYNC && !p.isPropertyTerminator(p.peek(1)) {
		isAsync = true
		p.advance()
	}
	if p.cur().Type == token.STAR {
		isGenerator = true
		p.advance()
	}

	key, computed := p.parsePropertyKey(f)

	if p.cur().Type == token.LPAREN {
		nameTok := p.cur()
		fn := p.parseFunctionTail(nameTok, nil, isGenerator, isAsync, f)
		kind := ast.ClassMethod
		if isAccessor {
			kind = accessor
		}
		isCtor := false
		if ident, ok := key.(*ast.Identifier); ok && !computed && ident.Name == "constructor" && kind == ast.ClassMethod && !static {
			isCtor = true
		}
		return &ast.ClassMember{Key: key, Computed: computed, Static: static, Kind: kind, Value: fn, IsConstructor: isCtor}
	}

	// Field: `key;` or `key = init;`
	member := &ast.ClassMember{Key: key, Computed: computed, Static: static, Kind: ast.ClassField}
	if p.cur().Type == token.ASSIGN {
		p.advance()
		member.FieldInit = p.parseAssignment(f.withIn(true))
	}
	p.consumeSemicolon()
	return member
}
