package runtime

import "testing"

func TestObjectGetSetWalksPrototypeChain(t *testing.T) {
	parent := NewObject(nil)
	parent.DefineOwnProperty(StringKey("greeting"), DataProperty(String("hi")))

	child := NewObject(parent)
	v, thr := child.Get(StringKey("greeting"), child)
	if thr != nil {
		t.Fatalf("unexpected throw: %v", thr)
	}
	if v != String("hi") {
		t.Fatalf("got %v, want String(hi)", v)
	}

	ok, thr := child.Set(StringKey("greeting"), String("bye"), child)
	if thr != nil || !ok {
		t.Fatalf("set failed: ok=%v thr=%v", ok, thr)
	}
	if child.HasOwn(StringKey("greeting")) == false {
		t.Fatal("expected an own property to be created on the receiver")
	}
	parentVal, _ := parent.Get(StringKey("greeting"), parent)
	if parentVal != String("hi") {
		t.Fatalf("parent's own property should be unaffected, got %v", parentVal)
	}
}

func TestDefineOwnPropertyRespectsNonConfigurable(t *testing.T) {
	o := NewObject(nil)
	o.DefineOwnProperty(StringKey("x"), &PropertyDescriptor{Value: Number(1), Configurable: false})
	ok := o.DefineOwnProperty(StringKey("x"), &PropertyDescriptor{Value: Number(2), Configurable: false})
	if ok {
		t.Fatal("expected redefining a non-configurable property to fail")
	}
}

func TestDeleteRespectsConfigurable(t *testing.T) {
	o := NewObject(nil)
	o.DefineOwnProperty(StringKey("x"), &PropertyDescriptor{Value: Number(1), Configurable: false})
	if o.Delete(StringKey("x")) {
		t.Fatal("expected delete of a non-configurable property to fail")
	}
	o.DefineOwnProperty(StringKey("y"), DataProperty(Number(2)))
	if !o.Delete(StringKey("y")) {
		t.Fatal("expected delete of a configurable property to succeed")
	}
}

func TestOwnKeysOrdersIndicesBeforeStringsBeforeSymbols(t *testing.T) {
	o := NewObject(nil)
	o.DefineOwnProperty(StringKey("b"), DataProperty(Number(1)))
	o.DefineOwnProperty(StringKey("2"), DataProperty(Number(2)))
	o.DefineOwnProperty(StringKey("a"), DataProperty(Number(3)))
	o.DefineOwnProperty(StringKey("0"), DataProperty(Number(4)))
	sym := NewSymbol("s")
	o.DefineOwnProperty(SymbolKey(sym), DataProperty(Number(5)))

	keys := o.OwnKeys()
	want := []string{"0", "2", "b", "a"}
	for i, w := range want {
		if keys[i].IsSymbol() || keys[i].String() != w {
			t.Fatalf("key %d = %v, want %q", i, keys[i], w)
		}
	}
	if !keys[len(keys)-1].IsSymbol() {
		t.Fatal("expected the symbol key last")
	}
}

func TestAccessorProperty(t *testing.T) {
	o := NewObject(nil)
	getCalls := 0
	getter := &Object{CallFn: func(this Value, args []Value) (Value, *Throw) {
		getCalls++
		return Number(42), nil
	}}
	o.DefineOwnProperty(StringKey("answer"), AccessorProperty(getter, nil, true, true))
	v, thr := o.Get(StringKey("answer"), o)
	if thr != nil {
		t.Fatalf("unexpected throw: %v", thr)
	}
	if v != Number(42) {
		t.Fatalf("got %v, want 42", v)
	}
	if getCalls != 1 {
		t.Fatalf("getter called %d times, want 1", getCalls)
	}
}

func TestCallOnNonCallableThrowsTypeError(t *testing.T) {
	o := NewObject(nil)
	_, thr := o.Call(UndefinedValue, nil)
	if thr == nil {
		t.Fatal("expected a throw for calling a non-callable object")
	}
}

func TestNumberStringFormatsSpecials(t *testing.T) {
	tests := []struct {
		n    Number
		want string
	}{
		{Number(0), "0"},
		{NaN, "NaN"},
		{PositiveInfinity, "Infinity"},
		{NegativeInfinity, "-Infinity"},
		{Number(1.5), "1.5"},
	}
	for _, tt := range tests {
		if got := tt.n.String(); got != tt.want {
			t.Errorf("Number(%v).String() = %q, want %q", float64(tt.n), got, tt.want)
		}
	}
}
