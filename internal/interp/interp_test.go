package interp

import (
	"testing"

	"github.com/cwbudde-lumen/lumen/internal/parser"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// testEval parses and evaluates input against a fresh Realm (no
// builtins installed -- internal/builtins depends on this package, not
// the reverse, so these tests exercise only core language semantics).
func testEval(t *testing.T, input string) runtime.Value {
	t.Helper()
	r := NewRealm()
	p := parser.New(input, r.Interner)
	script, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	v, thr := r.Eval(script)
	if thr != nil {
		t.Fatalf("unexpected throw evaluating %q: %v", input, thr)
	}
	return v
}

func testThrows(t *testing.T, input string) runtime.Value {
	t.Helper()
	r := NewRealm()
	p := parser.New(input, r.Interner)
	script, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	_, thr := r.Eval(script)
	if thr == nil {
		t.Fatalf("expected %q to throw", input)
	}
	return thr.Value
}

func TestArithmeticAndPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"2 + 3 * 4;", 14},
		{"(2 + 3) * 4;", 20},
		{"10 % 3;", 1},
		{"2 ** 10;", 1024},
		{"-5 + 2;", -3},
	}
	for _, tt := range tests {
		v := testEval(t, tt.src)
		n, ok := v.(runtime.Number)
		if !ok || float64(n) != tt.want {
			t.Errorf("%q = %v, want %v", tt.src, v, tt.want)
		}
	}
}

func TestClosureCapturesEnclosingScope(t *testing.T) {
	v := testEval(t, `
		function makeCounter() {
			let count = 0;
			return function() { count = count + 1; return count; };
		}
		let c = makeCounter();
		c(); c(); c();
	`)
	n, ok := v.(runtime.Number)
	if !ok || float64(n) != 3 {
		t.Fatalf("got %v, want 3", v)
	}
}

func TestArrowFunctionLexicalThis(t *testing.T) {
	v := testEval(t, `
		function Counter() {
			this.n = 0;
			this.bump = () => { this.n = this.n + 1; return this.n; };
		}
		let c = new Counter();
		c.bump();
		c.bump();
	`)
	n, ok := v.(runtime.Number)
	if !ok || float64(n) != 2 {
		t.Fatalf("got %v, want 2", v)
	}
}

func TestDestructuringWithDefaultsAndRest(t *testing.T) {
	v := testEval(t, `
		function f({ a, b = 10, ...rest }) {
			return a + b + rest.c + rest.d;
		}
		f({ a: 1, c: 2, d: 3 });
	`)
	n, ok := v.(runtime.Number)
	if !ok || float64(n) != 16 {
		t.Fatalf("got %v, want 16", v)
	}
}

func TestTryCatchFinallyOverridesCompletion(t *testing.T) {
	v := testEval(t, `
		function f() {
			try {
				throw "boom";
			} catch (e) {
				return "caught";
			} finally {
				return "finally wins";
			}
		}
		f();
	`)
	s, ok := v.(runtime.String)
	if !ok || string(s) != "finally wins" {
		t.Fatalf("got %v, want 'finally wins'", v)
	}
}

func TestForOfOverArray(t *testing.T) {
	v := testEval(t, `
		let sum = 0;
		for (const x of [1, 2, 3, 4]) {
			sum = sum + x;
		}
		sum;
	`)
	n, ok := v.(runtime.Number)
	if !ok || float64(n) != 10 {
		t.Fatalf("got %v, want 10", v)
	}
}

func TestSwitchFallthrough(t *testing.T) {
	v := testEval(t, `
		function classify(n) {
			let out = "";
			switch (n) {
				case 1:
					out = out + "one";
				case 2:
					out = out + "two";
					break;
				default:
					out = out + "other";
			}
			return out;
		}
		classify(1);
	`)
	s, ok := v.(runtime.String)
	if !ok || string(s) != "onetwo" {
		t.Fatalf("got %v, want 'onetwo'", v)
	}
}

func TestClassInheritanceAndSuper(t *testing.T) {
	v := testEval(t, `
		class Animal {
			constructor(name) { this.name = name; }
			speak() { return this.name + " makes a sound"; }
		}
		class Dog extends Animal {
			speak() { return super.speak() + ", woof"; }
		}
		let d = new Dog("Rex");
		d.speak();
	`)
	s, ok := v.(runtime.String)
	if !ok || string(s) != "Rex makes a sound, woof" {
		t.Fatalf("got %v, want 'Rex makes a sound, woof'", v)
	}
}

func TestOptionalChainingAndNullishCoalescing(t *testing.T) {
	v := testEval(t, `
		let obj = { a: { b: null } };
		(obj.a?.b?.c ?? "fallback");
	`)
	s, ok := v.(runtime.String)
	if !ok || string(s) != "fallback" {
		t.Fatalf("got %v, want 'fallback'", v)
	}
}

func TestLetTemporalDeadZoneThrows(t *testing.T) {
	v := testThrows(t, `
		function f() {
			x;
			let x = 1;
		}
		f();
	`)
	s, ok := v.(runtime.String)
	if !ok {
		t.Fatalf("got %v, want a thrown string", v)
	}
	if len(s) == 0 {
		t.Fatal("expected a non-empty error message")
	}
}

func TestVarHoistingAcrossBlocks(t *testing.T) {
	v := testEval(t, `
		function f() {
			if (true) {
				var x = 5;
			}
			return x;
		}
		f();
	`)
	n, ok := v.(runtime.Number)
	if !ok || float64(n) != 5 {
		t.Fatalf("got %v, want 5", v)
	}
}
