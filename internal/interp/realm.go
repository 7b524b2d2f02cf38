// Package interp implements the tree-walking evaluator over
// internal/ast, owning the Realm (global object, root environment,
// identifier interner) described in spec.md §2 and §4.6. It follows
// go-dws's internal/interp package layout -- a single evaluator type
// driven by functional options -- generalized from DWScript's
// execution model to this language's completion-record-based
// statement evaluation.
package interp

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cwbudde-lumen/lumen/internal/ast"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
	"github.com/cwbudde-lumen/lumen/pkg/ident"
)

// Realm is one isolated execution context: its own global object,
// global environment record, and identifier interner (spec.md §4.6,
// "Realm"). Nothing is shared between Realms.
type Realm struct {
	ID       string
	Global   *runtime.Object
	Env      *runtime.Environment
	Interner *ident.Interner

	ObjectPrototype   *runtime.Object
	FunctionPrototype *runtime.Object
	ArrayPrototype    *runtime.Object
	StringPrototype   *runtime.Object
	NumberPrototype   *runtime.Object
	BooleanPrototype  *runtime.Object
	ErrorPrototype    *runtime.Object
	RegExpPrototype   *runtime.Object

	stepBudget int64 // 0 = unbounded
	steps      int64
	logger     *zap.Logger
}

// RealmOption configures a Realm at construction, mirroring the
// functional-options shape of internal/lexer.Option (see SPEC_FULL.md's
// AMBIENT STACK section).
type RealmOption func(*Realm)

// WithStepBudget bounds the number of evaluator steps a single Eval
// call may take before it throws a host-level RangeError, matching
// spec.md §5's "bounded execution" resource-model requirement for an
// embeddable interpreter. 0 (the default) means unbounded.
func WithStepBudget(n int64) RealmOption {
	return func(r *Realm) { r.stepBudget = n }
}

// WithLogger installs the zap.Logger that the console built-ins write
// script output to; the evaluator itself logs nothing. The default is
// zap.NewNop(), matching dphaener-conduit's logger field but kept
// silent unless a caller opts in.
func WithLogger(l *zap.Logger) RealmOption {
	return func(r *Realm) { r.logger = l }
}

// NewRealm constructs a fresh Realm with its global object and
// prototype chain wired up per spec.md §4.4/§4.7, then applies opts.
func NewRealm(opts ...RealmOption) *Realm {
	r := &Realm{
		ID:       uuid.NewString(),
		Interner: ident.New(),
		logger:   zap.NewNop(),
	}
	r.bootstrapPrototypes()
	r.Global = runtime.NewObject(r.ObjectPrototype)
	r.Env = runtime.NewObjectEnvironment(r.Global, nil)
	r.installGlobals()
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// installGlobals wires the handful of bindings the core evaluator
// itself depends on (the global object's self-reference). The bulk of
// the standard library -- Object/Array/String/Math/etc. -- is
// installed separately by internal/builtins.Install, which depends on
// Realm rather than the other way around (avoiding an import cycle).
func (r *Realm) installGlobals() {
	r.Global.DefineOwnProperty(runtime.StringKey("globalThis"), runtime.NonEnumerableData(r.Global))
	r.Global.DefineOwnProperty(runtime.StringKey("undefined"), &runtime.PropertyDescriptor{Value: runtime.UndefinedValue})
	r.Global.DefineOwnProperty(runtime.StringKey("NaN"), &runtime.PropertyDescriptor{Value: runtime.NaN})
	r.Global.DefineOwnProperty(runtime.StringKey("Infinity"), &runtime.PropertyDescriptor{Value: runtime.PositiveInfinity})
}

func (r *Realm) bootstrapPrototypes() {
	r.ObjectPrototype = runtime.NewObject(nil)
	r.FunctionPrototype = runtime.NewObjectOfClass(r.ObjectPrototype, runtime.FunctionObject)
	r.ArrayPrototype = runtime.NewObjectOfClass(r.ObjectPrototype, runtime.ArrayObject)
	r.StringPrototype = runtime.NewObjectOfClass(r.ObjectPrototype, runtime.StringObject)
	r.NumberPrototype = runtime.NewObjectOfClass(r.ObjectPrototype, runtime.NumberObject)
	r.BooleanPrototype = runtime.NewObjectOfClass(r.ObjectPrototype, runtime.BooleanObject)
	r.ErrorPrototype = runtime.NewObjectOfClass(r.ObjectPrototype, runtime.ErrorObject)
	r.RegExpPrototype = runtime.NewObjectOfClass(r.ObjectPrototype, runtime.RegExpObject)
}

// NewFunction wraps fn as a callable Object with the Realm's
// FunctionPrototype, used by both internal/builtins and the
// interpreter's closure-creation path.
func (r *Realm) NewFunction(name string, length int, fn runtime.NativeFunc) *runtime.Object {
	o := runtime.NewObjectOfClass(r.FunctionPrototype, runtime.FunctionObject)
	o.CallFn = fn
	o.DefineOwnProperty(runtime.StringKey("name"), &runtime.PropertyDescriptor{Value: runtime.String(name), Configurable: true})
	o.DefineOwnProperty(runtime.StringKey("length"), &runtime.PropertyDescriptor{Value: runtime.Number(length), Configurable: true})
	return o
}

// Logger returns the Realm's configured zap.Logger (zap.NewNop() by
// default), used by internal/builtins' console implementation.
func (r *Realm) Logger() *zap.Logger { return r.logger }

// step increments the evaluator's step counter and returns a
// *runtime.Throw if stepBudget is exceeded, so long-running or
// infinite-looping scripts fail predictably instead of hanging the
// embedding host (spec.md §5).
func (r *Realm) step() *runtime.Throw {
	if r.stepBudget == 0 {
		return nil
	}
	r.steps++
	if r.steps > r.stepBudget {
		return &runtime.Throw{Value: runtime.String("RangeError: script step budget exceeded")}
	}
	return nil
}

// tick is a convenience wrapper evaluator methods call at the top of
// every statement/loop-iteration evaluation.
func (r *Realm) tick() *runtime.Throw { return r.step() }

// Eval parses source as a Script and evaluates it in the Realm's
// global environment, returning the completion value of the last
// ExpressionStatement evaluated (spec.md §6's `eval(realm, source)`
// Result<Value,Value> contract: a *runtime.Throw return represents the
// script-visible thrown value, never a host error).
func (r *Realm) Eval(script *ast.Script) (runtime.Value, *runtime.Throw) {
	ev := &evaluator{realm: r}
	ev.hoistScript(r.Env, script)
	var last runtime.Value = runtime.UndefinedValue
	for _, stmt := range script.Body {
		c := ev.evalStatement(r.Env, stmt)
		switch c.Type {
		case ThrowCompletion:
			return nil, &runtime.Throw{Value: c.Value}
		case ReturnCompletion:
			return c.Value, nil
		}
		if es, ok := stmt.(*ast.ExpressionStatement); ok {
			_ = es
			last = ev.lastExpressionValue
		}
	}
	return last, nil
}
