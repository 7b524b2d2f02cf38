// Package lumen is the public embedding facade over internal/interp,
// internal/parser, and internal/builtins -- the one API surface an
// embedding host is meant to import, mirroring how go-dws's top-level
// package wraps its own internal/interp for callers (spec.md §6,
// "Embedding API").
package lumen

import (
	"go.uber.org/zap"

	"github.com/cwbudde-lumen/lumen/internal/ast"
	"github.com/cwbudde-lumen/lumen/internal/builtins"
	"github.com/cwbudde-lumen/lumen/internal/interp"
	"github.com/cwbudde-lumen/lumen/internal/parser"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// Realm is a fully-installed execution context: a fresh interp.Realm
// with every builtin from internal/builtins wired in, ready to Eval.
type Realm = interp.Realm

// RealmOption re-exports interp.RealmOption so callers never need to
// import internal/interp directly.
type RealmOption = interp.RealmOption

// WithStepBudget re-exports interp.WithStepBudget.
func WithStepBudget(n int64) RealmOption { return interp.WithStepBudget(n) }

// WithLogger re-exports interp.WithLogger.
func WithLogger(l *zap.Logger) RealmOption { return interp.WithLogger(l) }

// CreateRealm constructs a Realm with the full standard library
// installed (spec.md §4.7), applying any RealmOptions (step budget,
// logger) before returning it.
func CreateRealm(opts ...RealmOption) *Realm {
	r := interp.NewRealm(opts...)
	builtins.Install(r)
	return r
}

// ParseError is the error type Parse/Eval return for a syntax error;
// re-exported so callers can type-assert without importing
// internal/parser.
type ParseError = parser.ParseError

// Parse lexes and parses source into a Script (spec.md §4.1/§4.3),
// handing realm's Interner to the parser; identifiers stay plain
// strings in the resulting AST.
func Parse(source string, realm *Realm) (*ast.Script, error) {
	p := parser.New(source, realm.Interner)
	return p.Parse()
}

// Eval parses and evaluates source in realm, returning the completion
// value of the script's last expression statement, or the thrown
// Value wrapped as an error (spec.md §6's Result<Value,Value> contract
// translated to Go's idiomatic (T, error) return shape).
func Eval(realm *Realm, source string) (runtime.Value, error) {
	script, err := Parse(source, realm)
	if err != nil {
		return nil, err
	}
	v, thr := realm.Eval(script)
	if thr != nil {
		return nil, thr
	}
	return v, nil
}

// ToDisplay renders v for inspection: a string wrapped in single
// quotes (so "1" and 1 stay distinct), bracketed arrays, braced objects
// (spec.md §6's "inspection-oriented" display format, distinct from
// the language's own ToString coercion).
func ToDisplay(v runtime.Value) string {
	if v == nil {
		return "undefined"
	}
	if s, ok := v.(runtime.String); ok {
		return "'" + string(s) + "'"
	}
	return builtins.Display(v)
}
