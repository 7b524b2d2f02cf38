package runtime

import "fmt"

// BindingStatus tracks whether a lexical binding has been initialized,
// modeling the temporal dead zone spec.md §4.5 requires for let/const:
// a binding exists (so `typeof` inside the TDZ still sees a name) but
// reading or writing it before initialization is an error.
type BindingStatus int

const (
	Uninitialized BindingStatus = iota
	Initialized
)

// binding is one slot in a declarative environment record.
type binding struct {
	value    Value
	mutable  bool
	status   BindingStatus
}

// Environment is an environment record (spec.md §4.5): a declarative
// scope optionally backed by an object (for a global/with/function
// environment's binding object) and linked to an outer environment.
// Unlike go-dws's case-insensitive ident.Map-backed Environment, this
// language's identifiers are case-sensitive, so a plain Go map keyed
// by name is the right fit (pkg/ident's Interner is used for the
// Symbol, not for storage here -- see DESIGN.md).
type Environment struct {
	bindings map[string]*binding
	outer    *Environment

	// object, if non-nil, backs a global or `with` environment record:
	// property lookups/writes on it take priority over bindings, and
	// spec.md §4.5's global-environment carve-outs (var/function
	// bindings live on the global object) are implemented in terms of
	// it.
	object *Object

	// isFunction marks a function environment record, which alone has
	// a `this` binding and (for a non-arrow function) an `arguments`
	// object.
	isFunction bool
	thisValue  Value
	hasThis    bool

	// homeObject and superCtor back `super` property lookups and
	// `super(...)` constructor calls respectively; both are set only on
	// a method or constructor's function environment record (spec.md
	// §4.5's has_super_binding()), and resolved by walking outward like
	// ThisBinding so an arrow function nested in a method still sees
	// its enclosing method's super binding.
	homeObject *Object
	superCtor  *Object
}

// SetHomeObject records fn's [[HomeObject]] on its own function
// environment record, for `super.prop` lookups within its body.
func (e *Environment) SetHomeObject(o *Object) { e.homeObject = o }

// SetSuperConstructor records a derived class constructor's superclass
// constructor on its function environment record, for a `super(...)`
// call within its body.
func (e *Environment) SetSuperConstructor(o *Object) { e.superCtor = o }

// HomeObject resolves the nearest enclosing [[HomeObject]], or nil if
// none is in scope (not inside a method body).
func (e *Environment) HomeObject() *Object {
	for env := e; env != nil; env = env.outer {
		if env.homeObject != nil {
			return env.homeObject
		}
		if env.isFunction {
			return nil
		}
	}
	return nil
}

// SuperConstructor resolves the nearest enclosing superclass
// constructor, or nil if none is in scope.
func (e *Environment) SuperConstructor() *Object {
	for env := e; env != nil; env = env.outer {
		if env.superCtor != nil {
			return env.superCtor
		}
		if env.isFunction {
			return nil
		}
	}
	return nil
}

// NewDeclarativeEnvironment creates a block/function-body scope
// enclosed by outer.
func NewDeclarativeEnvironment(outer *Environment) *Environment {
	return &Environment{bindings: map[string]*binding{}, outer: outer}
}

// NewFunctionEnvironment creates the environment record for a function
// call, binding `this` to thisVal (spec.md §4.6, function-call `this`
// binding rules are resolved by the interpreter before calling this).
func NewFunctionEnvironment(outer *Environment, thisVal Value) *Environment {
	return &Environment{bindings: map[string]*binding{}, outer: outer, isFunction: true, thisValue: thisVal, hasThis: true}
}

// NewObjectEnvironment creates an environment record backed by obj
// (the global environment's object record half, per spec.md §4.5 and
// boa's GlobalEnvironmentRecord).
func NewObjectEnvironment(obj *Object, outer *Environment) *Environment {
	return &Environment{bindings: map[string]*binding{}, outer: outer, object: obj}
}

// DeclareMutable creates a new mutable binding (`var`/`let`/function
// parameter), uninitialized until Initialize is called -- except when
// fromVar is true, where it is created already initialized to
// undefined (spec.md §4.5: var bindings have no temporal dead zone).
func (e *Environment) DeclareMutable(name string, fromVar bool) {
	if e.object != nil {
		e.object.DefineOwnProperty(StringKey(name), DataProperty(UndefinedValue))
		return
	}
	status := Uninitialized
	val := Value(nil)
	if fromVar {
		status = Initialized
		val = UndefinedValue
	}
	e.bindings[name] = &binding{value: val, mutable: true, status: status}
}

// DeclareImmutable creates an uninitialized `const` binding.
func (e *Environment) DeclareImmutable(name string) {
	e.bindings[name] = &binding{mutable: false, status: Uninitialized}
}

// Initialize sets the value of a binding created by Declare{Mutable,
// Immutable} and marks it initialized, ending its temporal dead zone.
func (e *Environment) Initialize(name string, v Value) {
	if e.object != nil {
		e.object.Set(StringKey(name), v, e.object)
		return
	}
	if b, ok := e.bindings[name]; ok {
		b.value = v
		b.status = Initialized
	}
}

// HasBinding reports whether name is bound in this environment record
// specifically (not outer ones).
func (e *Environment) HasBinding(name string) bool {
	if e.object != nil {
		return e.object.HasProperty(StringKey(name))
	}
	_, ok := e.bindings[name]
	return ok
}

// ReferenceError is a host-side marker for an unresolvable-reference
// or use-before-initialization condition; the interpreter converts it
// into a thrown Language string of the form "ReferenceError: ..."
// (spec.md §4.6).
type ReferenceError struct {
	Name string
	TDZ  bool
}

func (r *ReferenceError) Error() string {
	if r.TDZ {
		return fmt.Sprintf("Cannot access '%s' before initialization", r.Name)
	}
	return fmt.Sprintf("%s is not defined", r.Name)
}

// GetBindingValue resolves name by walking the environment chain,
// returning a *ReferenceError if it is unresolvable or still in its
// temporal dead zone.
func (e *Environment) GetBindingValue(name string) (Value, error) {
	for env := e; env != nil; env = env.outer {
		if env.object != nil {
			if env.object.HasProperty(StringKey(name)) {
				v, thr := env.object.Get(StringKey(name), env.object)
				if thr != nil {
					return nil, thr
				}
				return v, nil
			}
			continue
		}
		if b, ok := env.bindings[name]; ok {
			if b.status == Uninitialized {
				return nil, &ReferenceError{Name: name, TDZ: true}
			}
			return b.value, nil
		}
	}
	return nil, &ReferenceError{Name: name}
}

// SetMutableBinding assigns name, walking the environment chain, per
// spec.md §4.5's SetMutableBindingChain operation. strict controls
// whether assigning an unresolvable reference throws (strict mode) or
// silently creates a global property (sloppy mode).
func (e *Environment) SetMutableBinding(name string, v Value, strict bool) error {
	for env := e; env != nil; env = env.outer {
		if env.object != nil {
			if env.object.HasProperty(StringKey(name)) {
				env.object.Set(StringKey(name), v, env.object)
				return nil
			}
			continue
		}
		if b, ok := env.bindings[name]; ok {
			if b.status == Uninitialized {
				return &ReferenceError{Name: name, TDZ: true}
			}
			if !b.mutable {
				return fmt.Errorf("TypeError: Assignment to constant variable '%s'", name)
			}
			b.value = v
			return nil
		}
	}
	if strict {
		return &ReferenceError{Name: name}
	}
	// Sloppy-mode implicit global (spec.md §4.5 global environment
	// carve-out): create the binding on the outermost object record.
	root := e
	for root.outer != nil {
		root = root.outer
	}
	if root.object != nil {
		root.object.DefineOwnProperty(StringKey(name), DataProperty(v))
		return nil
	}
	root.bindings[name] = &binding{value: v, mutable: true, status: Initialized}
	return nil
}

// DeleteBinding implements delete on a var-style global binding;
// declarative bindings (let/const/function-local var) are never
// deletable, matching ordinary ECMAScript behavior.
func (e *Environment) DeleteBinding(name string) bool {
	if e.object != nil {
		return e.object.Delete(StringKey(name))
	}
	return false
}

// ThisBinding resolves `this` by walking outward to the nearest
// function environment record (arrow functions create no function
// environment, so `this` is inherited lexically for free).
func (e *Environment) ThisBinding() Value {
	for env := e; env != nil; env = env.outer {
		if env.hasThis {
			return env.thisValue
		}
	}
	return UndefinedValue
}

// Outer returns the enclosing environment, or nil for the root.
func (e *Environment) Outer() *Environment { return e.outer }

// GlobalObject returns the object backing the outermost environment
// record, or nil if the chain has no object record (never true for a
// Realm-rooted chain).
func (e *Environment) GlobalObject() *Object {
	root := e
	for root.outer != nil {
		root = root.outer
	}
	return root.object
}
