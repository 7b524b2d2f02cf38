package builtins

import (
	"math"
	"strconv"

	"github.com/cwbudde-lumen/lumen/internal/interp"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

func thisNumber(this runtime.Value) (float64, *runtime.Throw) {
	switch x := this.(type) {
	case runtime.Number:
		return float64(x), nil
	case *runtime.Object:
		if x.Class() == runtime.NumberObject {
			if n, ok := x.Primitive.(runtime.Number); ok {
				return float64(n), nil
			}
		}
	}
	return float64(interp.ToNumber(this)), nil
}

// installNumber wires the Number constructor (with its static
// constants and isInteger/isFinite/isNaN helpers) and the
// toFixed/toPrecision/toString instance methods spec.md §4.7 lists
// for numeric formatting.
func installNumber(r *interp.Realm) {
	proto := r.NumberPrototype

	ctor := r.NewFunction("Number", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		if len(args) == 0 {
			return runtime.Number(0), nil
		}
		return interp.ToNumber(args[0]), nil
	})
	ctor.ConstructFn = func(newTarget runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		var n runtime.Number
		if len(args) > 0 {
			n = interp.ToNumber(args[0])
		}
		boxed := runtime.NewObjectOfClass(proto, runtime.NumberObject)
		boxed.Primitive = n
		return boxed, nil
	}
	ctor.DefineOwnProperty(runtime.StringKey("prototype"), &runtime.PropertyDescriptor{Value: proto})
	proto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.NonEnumerableData(ctor))
	r.Global.DefineOwnProperty(runtime.StringKey("Number"), runtime.NonEnumerableData(ctor))

	ctor.DefineOwnProperty(runtime.StringKey("MAX_SAFE_INTEGER"), &runtime.PropertyDescriptor{Value: runtime.Number(9007199254740991)})
	ctor.DefineOwnProperty(runtime.StringKey("MIN_SAFE_INTEGER"), &runtime.PropertyDescriptor{Value: runtime.Number(-9007199254740991)})
	ctor.DefineOwnProperty(runtime.StringKey("MAX_VALUE"), &runtime.PropertyDescriptor{Value: runtime.Number(math.MaxFloat64)})
	ctor.DefineOwnProperty(runtime.StringKey("EPSILON"), &runtime.PropertyDescriptor{Value: runtime.Number(2.220446049250313e-16)})
	ctor.DefineOwnProperty(runtime.StringKey("NaN"), &runtime.PropertyDescriptor{Value: runtime.NaN})
	ctor.DefineOwnProperty(runtime.StringKey("POSITIVE_INFINITY"), &runtime.PropertyDescriptor{Value: runtime.PositiveInfinity})
	ctor.DefineOwnProperty(runtime.StringKey("NEGATIVE_INFINITY"), &runtime.PropertyDescriptor{Value: runtime.NegativeInfinity})

	method(r, ctor, "isInteger", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		n, ok := arg(args, 0).(runtime.Number)
		if !ok || n.IsNaN() || math.IsInf(float64(n), 0) {
			return runtime.Boolean(false), nil
		}
		return runtime.Boolean(float64(n) == math.Trunc(float64(n))), nil
	})
	method(r, ctor, "isFinite", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		n, ok := arg(args, 0).(runtime.Number)
		return runtime.Boolean(ok && !n.IsNaN() && !math.IsInf(float64(n), 0)), nil
	})
	method(r, ctor, "isNaN", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		n, ok := arg(args, 0).(runtime.Number)
		return runtime.Boolean(ok && n.IsNaN()), nil
	})
	method(r, ctor, "parseFloat", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return interp.ToNumber(arg(args, 0)), nil
	})

	method(r, proto, "toFixed", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		n, thr := thisNumber(this)
		if thr != nil {
			return nil, thr
		}
		digits := 0
		if len(args) > 0 {
			digits = int(interp.ToNumber(args[0]))
		}
		return runtime.String(strconv.FormatFloat(n, 'f', digits, 64)), nil
	})
	method(r, proto, "toPrecision", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		n, thr := thisNumber(this)
		if thr != nil {
			return nil, thr
		}
		if len(args) == 0 || interp.IsNullish(args[0]) {
			return runtime.String(runtime.Number(n).String()), nil
		}
		prec := int(interp.ToNumber(args[0]))
		return runtime.String(strconv.FormatFloat(n, 'g', prec, 64)), nil
	})
	method(r, proto, "toString", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		n, thr := thisNumber(this)
		if thr != nil {
			return nil, thr
		}
		radix := 10
		if len(args) > 0 && !interp.IsNullish(args[0]) {
			radix = int(interp.ToNumber(args[0]))
		}
		if radix == 10 {
			return runtime.String(runtime.Number(n).String()), nil
		}
		return runtime.String(strconv.FormatInt(int64(n), radix)), nil
	})
	method(r, proto, "valueOf", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		n, thr := thisNumber(this)
		if thr != nil {
			return nil, thr
		}
		return runtime.Number(n), nil
	})
}
