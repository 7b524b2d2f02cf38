package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// ToBoolean implements the ToBoolean abstract operation. The
// falsy/truthy table (empty string and the numbers 0/NaN are falsy,
// everything else -- including every Object -- is truthy) follows
// boa's `ValueData::is_true` in original_source/src/lib/js/value.rs,
// which this language's semantics were resolved against where spec.md
// itself was silent on edge cases like -0 and "".
func ToBoolean(v runtime.Value) bool {
	switch x := v.(type) {
	case runtime.Undefined:
		return false
	case runtime.Null:
		return false
	case runtime.Boolean:
		return bool(x)
	case runtime.Number:
		if x.IsNaN() {
			return false
		}
		return float64(x) != 0
	case runtime.String:
		return len(x) != 0
	case *runtime.BigInt:
		return x.Value.Sign() != 0
	default:
		return true // every Object, every Symbol
	}
}

// ToNumber implements the ToNumber abstract operation (spec.md §4.2,
// §7's NotANumber semantics); the string-parsing and primitive table
// mirror boa's `to_num`.
func ToNumber(v runtime.Value) runtime.Number {
	switch x := v.(type) {
	case runtime.Undefined:
		return runtime.NaN
	case runtime.Null:
		return 0
	case runtime.Boolean:
		if x {
			return 1
		}
		return 0
	case runtime.Number:
		return x
	case runtime.String:
		return stringToNumber(string(x))
	case *runtime.Object:
		prim, thr := ToPrimitive(x, "number")
		if thr != nil {
			return runtime.NaN
		}
		return ToNumber(prim)
	default:
		return runtime.NaN
	}
}

func stringToNumber(s string) runtime.Number {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0
	}
	if t == "Infinity" || t == "+Infinity" {
		return runtime.PositiveInfinity
	}
	if t == "-Infinity" {
		return runtime.NegativeInfinity
	}
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		n, err := strconv.ParseUint(t[2:], 16, 64)
		if err != nil {
			return runtime.NaN
		}
		return runtime.Number(n)
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return runtime.NaN
	}
	return runtime.Number(f)
}

// ToInt32 implements ToInt32, used by the bitwise operators.
func ToInt32(v runtime.Value) int32 {
	n := float64(ToNumber(v))
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	u := uint32(int64(math.Trunc(n)))
	return int32(u)
}

// ToUint32 implements ToUint32, used by `>>>`.
func ToUint32(v runtime.Value) uint32 {
	n := float64(ToNumber(v))
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return uint32(int64(math.Trunc(n)))
}

// ToPrimitive implements the ToPrimitive abstract operation. hint is
// "number", "string", or "default"; the method-call ordering
// (valueOf-then-toString for "number"/"default", toString-then-valueOf
// for "string") follows boa's ToPrimitive hint table.
func ToPrimitive(v runtime.Value, hint string) (runtime.Value, *runtime.Throw) {
	obj, ok := v.(*runtime.Object)
	if !ok {
		return v, nil
	}
	methods := []string{"valueOf", "toString"}
	if hint == "string" {
		methods = []string{"toString", "valueOf"}
	}
	for _, name := range methods {
		fnVal, thr := obj.Get(runtime.StringKey(name), obj)
		if thr != nil {
			return nil, thr
		}
		fn, ok := fnVal.(*runtime.Object)
		if !ok || !fn.IsCallable() {
			continue
		}
		result, thr := fn.Call(obj, nil)
		if thr != nil {
			return nil, thr
		}
		if _, isObj := result.(*runtime.Object); !isObj {
			return result, nil
		}
	}
	return nil, &runtime.Throw{Value: runtime.String("TypeError: Cannot convert object to primitive value")}
}

// ToStringValue implements the ToString abstract operation, producing
// a Language string (not a Go string -- for display purposes see
// builtins.Display and pkg/lumen's ToDisplay, which additionally
// quote-wraps strings per spec.md §6).
func ToStringValue(v runtime.Value) (runtime.String, *runtime.Throw) {
	switch x := v.(type) {
	case runtime.Undefined:
		return "undefined", nil
	case runtime.Null:
		return "null", nil
	case runtime.Boolean:
		return runtime.String(x.String()), nil
	case runtime.Number:
		return runtime.String(x.String()), nil
	case runtime.String:
		return x, nil
	case *runtime.Symbol:
		return "", &runtime.Throw{Value: runtime.String("TypeError: Cannot convert a Symbol value to a string")}
	case *runtime.Object:
		prim, thr := ToPrimitive(x, "string")
		if thr != nil {
			return "", thr
		}
		return ToStringValue(prim)
	default:
		return "", nil
	}
}

// ToObject implements the ToObject abstract operation (spec.md §4.4),
// boxing a primitive into its wrapper object so prototype-chain member
// lookup can proceed the same way it already does for `*runtime.Object`
// (follows boa's `to_object`). Symbol and BigInt have no constructor or
// dedicated prototype wired in internal/builtins, so they box against a
// bare Object.prototype rather than throwing.
func (r *Realm) ToObject(v runtime.Value) (*runtime.Object, *runtime.Throw) {
	switch x := v.(type) {
	case *runtime.Object:
		return x, nil
	case runtime.String:
		boxed := runtime.NewObjectOfClass(r.StringPrototype, runtime.StringObject)
		boxed.Primitive = x
		return boxed, nil
	case runtime.Number:
		boxed := runtime.NewObjectOfClass(r.NumberPrototype, runtime.NumberObject)
		boxed.Primitive = x
		return boxed, nil
	case runtime.Boolean:
		boxed := runtime.NewObjectOfClass(r.BooleanPrototype, runtime.BooleanObject)
		boxed.Primitive = x
		return boxed, nil
	case *runtime.Symbol, *runtime.BigInt:
		return runtime.NewObject(r.ObjectPrototype), nil
	default:
		return nil, &runtime.Throw{Value: runtime.String("TypeError: Cannot convert undefined or null to object")}
	}
}

// IsNullish reports whether v is undefined or null, the condition the
// `??` and `?.` operators short-circuit on (spec.md §4.6).
func IsNullish(v runtime.Value) bool {
	switch v.(type) {
	case runtime.Undefined, runtime.Null:
		return true
	}
	return false
}

// SameValueZero implements the SameValueZero algorithm (used by
// Array.prototype.includes and strict-equality's NaN carve-out).
func SameValueZero(a, b runtime.Value) bool {
	an, aIsNum := a.(runtime.Number)
	bn, bIsNum := b.(runtime.Number)
	if aIsNum && bIsNum {
		if an.IsNaN() && bn.IsNaN() {
			return true
		}
		return an == bn
	}
	return StrictEquals(a, b)
}

// StrictEquals implements `===`.
func StrictEquals(a, b runtime.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch x := a.(type) {
	case runtime.Undefined:
		return true
	case runtime.Null:
		return true
	case runtime.Boolean:
		return x == b.(runtime.Boolean)
	case runtime.Number:
		y := b.(runtime.Number)
		if x.IsNaN() || y.IsNaN() {
			return false
		}
		return x == y
	case runtime.String:
		return x == b.(runtime.String)
	case *runtime.Symbol:
		return x == b.(*runtime.Symbol)
	case *runtime.Object:
		return x == b.(*runtime.Object)
	default:
		return false
	}
}

// LooseEquals implements `==`, including the cross-type coercion table.
func LooseEquals(a, b runtime.Value) (bool, *runtime.Throw) {
	if a.Type() == b.Type() {
		return StrictEquals(a, b), nil
	}
	if IsNullish(a) && IsNullish(b) {
		return true, nil
	}
	if IsNullish(a) || IsNullish(b) {
		return false, nil
	}
	an, aIsNum := a.(runtime.Number)
	_, bIsStr := b.(runtime.String)
	if aIsNum && bIsStr {
		return float64(an) == float64(ToNumber(b)), nil
	}
	_, aIsStr := a.(runtime.String)
	bn, bIsNum := b.(runtime.Number)
	if aIsStr && bIsNum {
		return float64(ToNumber(a)) == float64(bn), nil
	}
	if ab, ok := a.(runtime.Boolean); ok {
		return LooseEquals(runtime.Number(boolToFloat(bool(ab))), b)
	}
	if bb, ok := b.(runtime.Boolean); ok {
		return LooseEquals(a, runtime.Number(boolToFloat(bool(bb))))
	}
	if aObj, ok := a.(*runtime.Object); ok {
		if !isObjectType(b) {
			prim, thr := ToPrimitive(aObj, "default")
			if thr != nil {
				return false, thr
			}
			return LooseEquals(prim, b)
		}
	}
	if bObj, ok := b.(*runtime.Object); ok {
		if !isObjectType(a) {
			prim, thr := ToPrimitive(bObj, "default")
			if thr != nil {
				return false, thr
			}
			return LooseEquals(a, prim)
		}
	}
	return false, nil
}

func isObjectType(v runtime.Value) bool {
	_, ok := v.(*runtime.Object)
	return ok
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
