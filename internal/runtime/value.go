// Package runtime implements the Value and Object model, property
// descriptors, and environment records described in spec.md §4.4 and
// §4.5. It follows go-dws's internal/interp/runtime package: a narrow
// Value interface plus one concrete struct per variant, rather than a
// tagged union with match-dispatch (see DESIGN.md's Open Question
// entry on this choice).
package runtime

import (
	"math"
	"math/big"
	"strconv"
)

// Value is any Language value: Undefined, Null, a Boolean, a Number, a
// String, a Symbol, an optional BigInt, or an Object handle (spec.md
// §3, "Value").
type Value interface {
	// Type returns the type tag ("undefined", "null", "boolean",
	// "number", "string", "symbol", "bigint", "object") used by the
	// `typeof` operator and internal dispatch.
	Type() string
	String() string
}

// Undefined is the Language's absent-value primitive. There is
// exactly one meaningful instance, UndefinedValue, but the type stays
// exported so the interpreter can type-switch on it.
type Undefined struct{}

func (Undefined) Type() string   { return "undefined" }
func (Undefined) String() string { return "undefined" }

// UndefinedValue is the shared Undefined instance; comparisons via
// spec.md's SameValue never need pointer identity for it since Go
// interface equality already holds for the zero-size struct.
var UndefinedValue Value = Undefined{}

// Null is the Language's `null` primitive.
type Null struct{}

func (Null) Type() string   { return "null" }
func (Null) String() string { return "null" }

// NullValue is the shared Null instance.
var NullValue Value = Null{}

// Boolean is `true`/`false`.
type Boolean bool

func (b Boolean) Type() string { return "boolean" }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// True and False are the two Boolean values, exported for callers that
// want to avoid re-converting a bool.
const (
	True  Boolean = true
	False Boolean = false
)

// Number is an IEEE-754 double, matching spec.md §3's single numeric
// type (BigInt is separate and optional).
type Number float64

func (n Number) Type() string { return "number" }
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "0" // -0 stringifies as "0" per spec.md's ToString note
		}
		return "0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// IsNaN reports whether n is the NaN sentinel.
func (n Number) IsNaN() bool { return math.IsNaN(float64(n)) }

// NaN and related constants used throughout coercion and arithmetic.
var (
	NaN              = Number(math.NaN())
	PositiveInfinity = Number(math.Inf(1))
	NegativeInfinity = Number(math.Inf(-1))
)

// String is a Language string, stored as a Go string of UTF-8 bytes;
// spec.md §3 requires code-unit (UTF-16) semantics for length/indexing,
// which String methods in internal/runtime/strutil.go provide on top
// of this representation rather than changing the storage form.
type String string

func (s String) Type() string   { return "string" }
func (s String) String() string { return string(s) }

// Symbol is a unique, non-string property key (spec.md §3, §4.4's
// "symbol keys" ownKeys category). Description is for display only;
// identity is the pointer itself.
type Symbol struct {
	Description string
}

func (s *Symbol) Type() string   { return "symbol" }
func (s *Symbol) String() string { return "Symbol(" + s.Description + ")" }

// NewSymbol allocates a fresh, globally unique Symbol.
func NewSymbol(description string) *Symbol {
	return &Symbol{Description: description}
}

// BigInt is the optional arbitrary-precision integer variant (spec.md
// §3, "BigInt (optional)").
type BigInt struct {
	Value *big.Int
}

func (b *BigInt) Type() string   { return "bigint" }
func (b *BigInt) String() string { return b.Value.String() }

// NewBigInt wraps v as a Language BigInt value.
func NewBigInt(v *big.Int) *BigInt { return &BigInt{Value: v} }
