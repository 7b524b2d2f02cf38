// Package ident implements the interner described in spec.md §4.1: it
// assigns a stable small integer Symbol to each distinct identifier
// string, so the parser, AST, and interpreter can compare names by
// integer equality instead of repeated string comparison.
//
// Unlike go-dws's case-insensitive ident.Map (DWScript folds
// identifiers), the Language this interner serves is case-sensitive, so
// Normalize is the identity function here and lookups are a plain
// string-keyed map.
package ident

import "sync"

// Symbol is an opaque handle returned by Intern. The zero Symbol is
// reserved and never returned by Intern, so callers can use it as a
// "no symbol" sentinel.
type Symbol uint32

// Interner stores each distinct identifier string once. It is owned by
// a Realm (spec.md §3, Realm.interner) and is safe for concurrent read
// access once populated, though in practice a Realm is single-threaded
// per spec.md §5.
type Interner struct {
	mu      sync.RWMutex
	symbols map[string]Symbol
	strings []string // index 0 unused; Symbol(i) -> strings[i]
}

// New creates an empty Interner.
func New() *Interner {
	return &Interner{
		symbols: make(map[string]Symbol),
		strings: []string{""}, // reserve index 0
	}
}

// Intern returns the Symbol for s, assigning a new one if s has not
// been seen before. intern(s) == intern(t) iff s == t byte-wise.
func (in *Interner) Intern(s string) Symbol {
	in.mu.RLock()
	if sym, ok := in.symbols[s]; ok {
		in.mu.RUnlock()
		return sym
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if sym, ok := in.symbols[s]; ok {
		return sym
	}
	sym := Symbol(len(in.strings))
	in.strings = append(in.strings, s)
	in.symbols[s] = sym
	return sym
}

// Lookup resolves a Symbol back to its string in O(1); used for debug
// output and property-key materialization. Returns "" and false for an
// unknown or zero Symbol.
func (in *Interner) Lookup(sym Symbol) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if sym == 0 || int(sym) >= len(in.strings) {
		return "", false
	}
	return in.strings[sym], true
}

// MustLookup is Lookup without the ok return, for call sites that hold
// a Symbol known to have come from this Interner.
func (in *Interner) MustLookup(sym Symbol) string {
	s, _ := in.Lookup(sym)
	return s
}

// Len returns the number of distinct strings interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.strings) - 1
}
