package lexer

import (
	"testing"

	"github.com/cwbudde-lumen/lumen/pkg/token"
)

func TestPunctuationAndOperators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTypes []token.Type
	}{
		{
			name:      "arrow and fat comma",
			input:     "(a, b) => a + b",
			wantTypes: []token.Type{token.LPAREN, token.IDENT, token.COMMA, token.IDENT, token.RPAREN, token.ARROW, token.IDENT, token.PLUS, token.IDENT, token.EOF},
		},
		{
			name:      "optional chaining and nullish coalescing",
			input:     "a?.b ?? c",
			wantTypes: []token.Type{token.IDENT, token.QUESTIONDOT, token.IDENT, token.QUESTIONQUESTION, token.IDENT, token.EOF},
		},
		{
			name:      "strict equality vs loose",
			input:     "a === b != c",
			wantTypes: []token.Type{token.IDENT, token.SEQ, token.IDENT, token.NEQ, token.IDENT, token.EOF},
		},
		{
			name:      "compound assignment",
			input:     "a &&= b ||= c ??= d",
			wantTypes: []token.Type{token.IDENT, token.AMPAMPEQ, token.IDENT, token.PIPEPIPEEQ, token.IDENT, token.QQEQ, token.IDENT, token.EOF},
		},
		{
			name:      "spread ellipsis",
			input:     "[...a]",
			wantTypes: []token.Type{token.LBRACK, token.ELLIPSIS, token.IDENT, token.RBRACK, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			for i, want := range tt.wantTypes {
				tok := l.Next()
				if tok.Type != want {
					t.Fatalf("token %d: type = %v, want %v (literal %q)", i, tok.Type, want, tok.Literal)
				}
			}
		})
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
		typ   token.Type
	}{
		{"123", "123", token.NUMBER},
		{"1.5", "1.5", token.NUMBER},
		{"0x1F", "0x1F", token.NUMBER},
		{"0b101", "0b101", token.NUMBER},
		{"0o17", "0o17", token.NUMBER},
		{"1e10", "1e10", token.NUMBER},
		{"1_000", "1000", token.NUMBER},
		{"123n", "123", token.BIGINT},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		if tok.Type != tt.typ {
			t.Fatalf("%q: type = %v, want %v", tt.input, tok.Type, tt.typ)
		}
		if tok.Literal != tt.want {
			t.Fatalf("%q: literal = %q, want %q", tt.input, tok.Literal, tt.want)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`'hello'`, "hello"},
		{`"world"`, "world"},
		{`'a\nb'`, "a\nb"},
		{`'a\tb'`, "a\tb"},
		{`'\x41'`, "A"},
		{`'A'`, "A"},
		{`'\u{1F600}'`, "\U0001F600"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		if tok.Type != token.STRING {
			t.Fatalf("%q: type = %v, want STRING", tt.input, tok.Type)
		}
		if tok.Literal != tt.want {
			t.Fatalf("%q: literal = %q, want %q", tt.input, tok.Literal, tt.want)
		}
	}
}

func TestTemplateLiteralSubstitution(t *testing.T) {
	l := New("`a${b}c`")
	head := l.Next()
	if head.Type != token.TEMPLATE_HEAD || head.Literal != "a" {
		t.Fatalf("head = %+v", head)
	}
	ident := l.Next()
	if ident.Type != token.IDENT || ident.Literal != "b" {
		t.Fatalf("ident = %+v", ident)
	}
	tail := l.Next()
	if tail.Type != token.TEMPLATE_TAIL || tail.Literal != "c" {
		t.Fatalf("tail = %+v", tail)
	}
}

func TestRegexVsDivideDisambiguation(t *testing.T) {
	// after an identifier, `/` is division
	l := New("a / b")
	l.Next() // a
	tok := l.Next()
	if tok.Type != token.SLASH {
		t.Fatalf("expected SLASH after identifier, got %v", tok.Type)
	}

	// at the start of an expression, `/` opens a regex literal
	l2 := New("/abc/g")
	tok2 := l2.Next()
	if tok2.Type != token.REGEXP {
		t.Fatalf("expected REGEXP, got %v (%q)", tok2.Type, tok2.Literal)
	}
}

func TestAutomaticSemicolonInsertionTracking(t *testing.T) {
	l := New("a\nb")
	l.Next() // a
	tok := l.Next()
	if !tok.LineTerminatorBefore {
		t.Fatalf("expected LineTerminatorBefore=true before %q", tok.Literal)
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	l := New("'unterminated")
	l.Next()
	if len(l.Errors()) == 0 {
		t.Fatal("expected a lexical error for an unterminated string")
	}
	if l.Errors()[0].Kind != ErrUnterminatedString {
		t.Fatalf("kind = %v, want ErrUnterminatedString", l.Errors()[0].Kind)
	}
}

func TestBOMIsStripped(t *testing.T) {
	l := New("\xEF\xBB\xBFlet x")
	tok := l.Next()
	if tok.Type != token.LET {
		t.Fatalf("expected LET as first token after BOM, got %v", tok.Type)
	}
}
