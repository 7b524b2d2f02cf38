package builtins

import (
	"testing"

	"github.com/cwbudde-lumen/lumen/internal/interp"
	"github.com/cwbudde-lumen/lumen/internal/parser"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// evalString parses and evaluates input against a fresh Realm with the
// full standard library installed.
func evalString(t *testing.T, input string) runtime.Value {
	t.Helper()
	r := interp.NewRealm()
	Install(r)
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

func evalThrows(t *testing.T, input string) runtime.Value {
	t.Helper()
	r := interp.NewRealm()
	Install(r)
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

func wantNumber(t *testing.T, v runtime.Value, want float64) {
	t.Helper()
	n, ok := v.(runtime.Number)
	if !ok || float64(n) != want {
		t.Fatalf("got %v, want %v", v, want)
	}
}

func wantString(t *testing.T, v runtime.Value, want string) {
	t.Helper()
	s, ok := v.(runtime.String)
	if !ok || string(s) != want {
		t.Fatalf("got %v, want %q", v, want)
	}
}

func wantBool(t *testing.T, v runtime.Value, want bool) {
	t.Helper()
	b, ok := v.(runtime.Boolean)
	if !ok || bool(b) != want {
		t.Fatalf("got %v, want %v", v, want)
	}
}

func TestArrayPushPopSliceMap(t *testing.T) {
	wantNumber(t, evalString(t, `
		let a = [1, 2, 3];
		a.push(4);
		a.pop();
		a.length;
	`), 3)

	wantString(t, evalString(t, `
		[1, 2, 3, 4].map(x => x * 2).join(",");
	`), "2,4,6,8")

	wantString(t, evalString(t, `
		[1, 2, 3, 4].filter(x => x % 2 === 0).join(",");
	`), "2,4")

	wantNumber(t, evalString(t, `
		[1, 2, 3, 4].reduce((acc, x) => acc + x, 0);
	`), 10)
}

func TestArrayConstructorWithLengthProducesUndefinedHoles(t *testing.T) {
	v := evalString(t, `
		let a = new Array(3);
		let count = 0;
		for (let i = 0; i < a.length; i++) {
			if (a[i] === undefined) count = count + 1;
		}
		count;
	`)
	wantNumber(t, v, 3)
}

func TestArraySortDefaultIsLexicographic(t *testing.T) {
	wantString(t, evalString(t, `[10, 1, 2].sort().join(",");`), "1,10,2")
}

func TestArraySortWithComparator(t *testing.T) {
	wantString(t, evalString(t, `[10, 1, 2].sort((a, b) => a - b).join(",");`), "1,2,10")
}

func TestStringMethods(t *testing.T) {
	wantString(t, evalString(t, `"hello world".toUpperCase();`), "HELLO WORLD")
	wantString(t, evalString(t, `"  padded  ".trim();`), "padded")
	wantBool(t, evalString(t, `"hello".includes("ell");`), true)
	wantString(t, evalString(t, `"a,b,c".split(",").join("-");`), "a-b-c")
	wantNumber(t, evalString(t, `"hello".indexOf("l");`), 2)
	wantString(t, evalString(t, `"hello".slice(1, 3);`), "el")
	wantNumber(t, evalString(t, `"hello".length;`), 5)
}

func TestNumberToFixedAndParsing(t *testing.T) {
	wantString(t, evalString(t, `(3.14159).toFixed(2);`), "3.14")
	wantNumber(t, evalString(t, `parseInt("42", 10);`), 42)
	wantNumber(t, evalString(t, `parseInt("0x2A");`), 42)
	wantNumber(t, evalString(t, `parseFloat("3.5abc");`), 3.5)
	wantBool(t, evalString(t, `isNaN(parseInt("nope"));`), true)
	wantBool(t, evalString(t, `isFinite(1 / 0);`), false)
}

func TestObjectKeysValuesEntriesAndAssign(t *testing.T) {
	wantString(t, evalString(t, `Object.keys({ a: 1, b: 2 }).join(",");`), "a,b")
	wantNumber(t, evalString(t, `
		let sum = 0;
		let vals = Object.values({ a: 1, b: 2 });
		for (const v of vals) { sum = sum + v; }
		sum;
	`), 3)
	wantNumber(t, evalString(t, `
		let merged = Object.assign({}, { a: 1 }, { b: 2 });
		merged.a + merged.b;
	`), 3)
}

func TestMathFunctions(t *testing.T) {
	wantNumber(t, evalString(t, `Math.max(1, 5, 3);`), 5)
	wantNumber(t, evalString(t, `Math.min(1, 5, 3);`), 1)
	wantNumber(t, evalString(t, `Math.abs(-7);`), 7)
	wantNumber(t, evalString(t, `Math.floor(3.9);`), 3)
	wantNumber(t, evalString(t, `Math.pow(2, 10);`), 1024)
}

func TestBooleanCoercion(t *testing.T) {
	wantBool(t, evalString(t, `Boolean(0);`), false)
	wantBool(t, evalString(t, `Boolean("");`), false)
	wantBool(t, evalString(t, `Boolean("x");`), true)
	wantString(t, evalString(t, `true.toString();`), "true")
}

func TestErrorConstructorsSetNameMessageAndStack(t *testing.T) {
	wantString(t, evalString(t, `new TypeError("bad value").message;`), "bad value")
	wantString(t, evalString(t, `new TypeError("bad value").name;`), "TypeError")
	wantString(t, evalString(t, `new TypeError("bad value").toString();`), "TypeError: bad value")
	wantBool(t, evalString(t, `new TypeError("x") instanceof Error;`), true)
}

func TestUncaughtThrowCarriesTheThrownValue(t *testing.T) {
	v := evalThrows(t, `throw new RangeError("out of bounds");`)
	obj, ok := v.(*runtime.Object)
	if !ok {
		t.Fatalf("thrown value is %T, want *runtime.Object", v)
	}
	msg, _ := obj.Get(runtime.StringKey("message"), obj)
	wantString(t, msg, "out of bounds")
}

func TestFunctionCallApplyBind(t *testing.T) {
	wantNumber(t, evalString(t, `
		function add(a, b) { return a + b + this.base; }
		add.call({ base: 10 }, 1, 2);
	`), 13)
	wantNumber(t, evalString(t, `
		function add(a, b) { return a + b + this.base; }
		add.apply({ base: 10 }, [1, 2]);
	`), 13)
	wantNumber(t, evalString(t, `
		function add(a, b) { return a + b + this.base; }
		let bound = add.bind({ base: 100 });
		bound(1, 2);
	`), 103)
}

func TestConsoleLogDoesNotThrow(t *testing.T) {
	evalString(t, `console.log("hi", 1, true, [1, 2]);`)
}

func TestDisplayFormatsPrimitives(t *testing.T) {
	if got := Display(runtime.Number(42)); got != "42" {
		t.Fatalf("got %q, want 42", got)
	}
	if got := Display(runtime.String("hi")); got != "hi" {
		t.Fatalf("got %q, want hi", got)
	}
}
