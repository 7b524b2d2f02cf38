package runtime

import "testing"

func TestTemporalDeadZone(t *testing.T) {
	env := NewDeclarativeEnvironment(nil)
	env.DeclareImmutable("x")
	_, err := env.GetBindingValue("x")
	refErr, ok := err.(*ReferenceError)
	if !ok || !refErr.TDZ {
		t.Fatalf("expected a TDZ ReferenceError, got %v", err)
	}
	env.Initialize("x", Number(1))
	v, err := env.GetBindingValue("x")
	if err != nil {
		t.Fatalf("unexpected error after initialization: %v", err)
	}
	if v != Number(1) {
		t.Fatalf("got %v, want 1", v)
	}
}

func TestVarBindingHasNoTDZ(t *testing.T) {
	env := NewDeclarativeEnvironment(nil)
	env.DeclareMutable("x", true)
	v, err := env.GetBindingValue("x")
	if err != nil {
		t.Fatalf("unexpected error for a var binding: %v", err)
	}
	if v != UndefinedValue {
		t.Fatalf("got %v, want undefined", v)
	}
}

func TestConstReassignmentFails(t *testing.T) {
	env := NewDeclarativeEnvironment(nil)
	env.DeclareImmutable("x")
	env.Initialize("x", Number(1))
	if err := env.SetMutableBinding("x", Number(2), false); err == nil {
		t.Fatal("expected an error assigning to a const binding")
	}
}

func TestLookupWalksOuterEnvironments(t *testing.T) {
	outer := NewDeclarativeEnvironment(nil)
	outer.DeclareMutable("x", true)
	outer.Initialize("x", Number(7))
	inner := NewDeclarativeEnvironment(outer)

	v, err := inner.GetBindingValue("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != Number(7) {
		t.Fatalf("got %v, want 7", v)
	}
}

func TestSloppyModeImplicitGlobal(t *testing.T) {
	global := NewObject(nil)
	root := NewObjectEnvironment(global, nil)
	inner := NewDeclarativeEnvironment(root)

	if err := inner.SetMutableBinding("y", Number(5), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, thr := global.Get(StringKey("y"), global)
	if thr != nil {
		t.Fatalf("unexpected throw: %v", thr)
	}
	if v != Number(5) {
		t.Fatalf("got %v, want 5", v)
	}
}

func TestStrictModeUnresolvableReferenceThrows(t *testing.T) {
	env := NewDeclarativeEnvironment(nil)
	if err := env.SetMutableBinding("missing", Number(1), true); err == nil {
		t.Fatal("expected a ReferenceError in strict mode")
	}
}

func TestThisBindingSkipsNonFunctionEnvironments(t *testing.T) {
	fnEnv := NewFunctionEnvironment(nil, String("this-value"))
	block := NewDeclarativeEnvironment(fnEnv)
	if got := block.ThisBinding(); got != String("this-value") {
		t.Fatalf("got %v, want this-value", got)
	}
}
