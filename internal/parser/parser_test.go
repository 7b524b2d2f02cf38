package parser

import (
	"testing"

	"github.com/cwbudde-lumen/lumen/internal/ast"
	"github.com/cwbudde-lumen/lumen/pkg/ident"
)

func mustParse(t *testing.T, src string) *ast.Script {
	t.Helper()
	p := New(src, ident.New())
	script, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return script
}

func TestParseVariableDeclaration(t *testing.T) {
	script := mustParse(t, "let x = 1 + 2;")
	if len(script.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(script.Body))
	}
	decl, ok := script.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VariableDeclaration, got %T", script.Body[0])
	}
	if decl.Kind != ast.DeclLet {
		t.Fatalf("kind = %v, want let", decl.Kind)
	}
	if len(decl.Declarators) != 1 {
		t.Fatalf("expected 1 declarator, got %d", len(decl.Declarators))
	}
	bin, ok := decl.Declarators[0].Init.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("init = %T, want *ast.BinaryExpression", decl.Declarators[0].Init)
	}
	if bin.Operator != "+" {
		t.Fatalf("operator = %q, want +", bin.Operator)
	}
}

func TestParseArrowFunctionDisambiguation(t *testing.T) {
	tests := []string{
		"(a, b) => a + b;",
		"a => a + 1;",
		"() => 1;",
		"(a);", // a plain parenthesized expression, not an arrow
	}
	for _, src := range tests {
		script := mustParse(t, src)
		if len(script.Body) != 1 {
			t.Fatalf("%q: expected 1 statement, got %d", src, len(script.Body))
		}
	}
}

func TestParseIfElse(t *testing.T) {
	script := mustParse(t, "if (a) { b; } else { c; }")
	ifStmt, ok := script.Body[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got %T", script.Body[0])
	}
	if ifStmt.Alternate == nil {
		t.Fatal("expected an else branch")
	}
}

func TestParseForOf(t *testing.T) {
	script := mustParse(t, "for (const x of xs) { y; }")
	forOf, ok := script.Body[0].(*ast.ForOfStatement)
	if !ok {
		t.Fatalf("expected *ast.ForOfStatement, got %T", script.Body[0])
	}
	if forOf.Await {
		t.Fatal("did not expect an await loop")
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	script := mustParse(t, "try { a(); } catch (e) { b(); } finally { c(); }")
	tryStmt, ok := script.Body[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("expected *ast.TryStatement, got %T", script.Body[0])
	}
	if tryStmt.Handler == nil {
		t.Fatal("expected a catch handler")
	}
	if tryStmt.Finalizer == nil {
		t.Fatal("expected a finally block")
	}
}

func TestAutomaticSemicolonInsertion(t *testing.T) {
	script := mustParse(t, "let a = 1\nlet b = 2")
	if len(script.Body) != 2 {
		t.Fatalf("expected 2 statements via ASI, got %d", len(script.Body))
	}
}

func TestParseErrorOnUnexpectedToken(t *testing.T) {
	p := New("let = ;", ident.New())
	_, err := p.Parse()
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestParseClassWithExtends(t *testing.T) {
	script := mustParse(t, "class Dog extends Animal { speak() { return 1; } }")
	cls, ok := script.Body[0].(*ast.ClassLiteral)
	if !ok {
		t.Fatalf("expected *ast.ClassLiteral, got %T", script.Body[0])
	}
	if cls.SuperClass == nil {
		t.Fatal("expected a superclass expression")
	}
}
