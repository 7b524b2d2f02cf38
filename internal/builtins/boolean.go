package builtins

import (
	"github.com/cwbudde-lumen/lumen/internal/interp"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// installBoolean wires the Boolean wrapper constructor and its two
// trivial prototype methods.
func installBoolean(r *interp.Realm) {
	proto := r.BooleanPrototype

	ctor := r.NewFunction("Boolean", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.Boolean(interp.ToBoolean(arg(args, 0))), nil
	})
	ctor.ConstructFn = func(newTarget runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		boxed := runtime.NewObjectOfClass(proto, runtime.BooleanObject)
		boxed.Primitive = runtime.Boolean(interp.ToBoolean(arg(args, 0)))
		return boxed, nil
	}
	ctor.DefineOwnProperty(runtime.StringKey("prototype"), &runtime.PropertyDescriptor{Value: proto})
	proto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.NonEnumerableData(ctor))
	r.Global.DefineOwnProperty(runtime.StringKey("Boolean"), runtime.NonEnumerableData(ctor))

	method(r, proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		if obj, ok := this.(*runtime.Object); ok {
			if b, ok := obj.Primitive.(runtime.Boolean); ok {
				return runtime.String(b.String()), nil
			}
		}
		if b, ok := this.(runtime.Boolean); ok {
			return runtime.String(b.String()), nil
		}
		return runtime.String("false"), nil
	})
	method(r, proto, "valueOf", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		if obj, ok := this.(*runtime.Object); ok {
			if b, ok := obj.Primitive.(runtime.Boolean); ok {
				return b, nil
			}
		}
		if b, ok := this.(runtime.Boolean); ok {
			return b, nil
		}
		return runtime.Boolean(false), nil
	})
}
