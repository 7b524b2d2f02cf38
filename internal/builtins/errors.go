package builtins

import (
	"github.com/cwbudde-lumen/lumen/internal/interp"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// installErrors wires Error and its native subtypes
// (TypeError/RangeError/ReferenceError/SyntaxError/EvalError/URIError),
// each with its own prototype chained off Error.prototype, matching
// spec.md §4.7's error-type hierarchy. Throw sites elsewhere in
// internal/interp currently construct ad hoc "Kind: message" String
// values rather than these Error objects -- wiring every throw site to
// call through here is future work (see DESIGN.md).
func installErrors(r *interp.Realm) {
	proto := r.ErrorPrototype
	proto.DefineOwnProperty(runtime.StringKey("name"), runtime.NonEnumerableData(runtime.String("Error")))
	proto.DefineOwnProperty(runtime.StringKey("message"), runtime.NonEnumerableData(runtime.String("")))
	method(r, proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		nameVal, _ := obj.Get(runtime.StringKey("name"), obj)
		msgVal, _ := obj.Get(runtime.StringKey("message"), obj)
		name, _ := interp.ToStringValue(nameVal)
		msg, _ := interp.ToStringValue(msgVal)
		if msg == "" {
			return runtime.String(string(name)), nil
		}
		return runtime.String(string(name) + ": " + string(msg)), nil
	})

	errorCtor := makeErrorConstructor(r, "Error", proto, r.ObjectPrototype)
	r.Global.DefineOwnProperty(runtime.StringKey("Error"), runtime.NonEnumerableData(errorCtor))

	for _, name := range []string{"TypeError", "RangeError", "ReferenceError", "SyntaxError", "EvalError", "URIError"} {
		subProto := runtime.NewObject(proto)
		subProto.DefineOwnProperty(runtime.StringKey("name"), runtime.NonEnumerableData(runtime.String(name)))
		ctor := makeErrorConstructor(r, name, subProto, errorCtor)
		r.Global.DefineOwnProperty(runtime.StringKey(name), runtime.NonEnumerableData(ctor))
	}
}

func makeErrorConstructor(r *interp.Realm, name string, proto, parentCtor *runtime.Object) *runtime.Object {
	build := func(args []runtime.Value) *runtime.Object {
		instance := runtime.NewObjectOfClass(proto, runtime.ErrorObject)
		if len(args) > 0 && !interp.IsNullish(args[0]) {
			msg, _ := interp.ToStringValue(args[0])
			instance.DefineOwnProperty(runtime.StringKey("message"), runtime.NonEnumerableData(msg))
		}
		nameVal, _ := instance.Get(runtime.StringKey("name"), instance)
		n, _ := interp.ToStringValue(nameVal)
		msgVal, _ := instance.Get(runtime.StringKey("message"), instance)
		msg, _ := interp.ToStringValue(msgVal)
		stack := string(n)
		if msg != "" {
			stack += ": " + string(msg)
		}
		instance.DefineOwnProperty(runtime.StringKey("stack"), runtime.NonEnumerableData(runtime.String(stack)))
		return instance
	}
	ctor := r.NewFunction(name, 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return build(args), nil
	})
	ctor.ConstructFn = func(newTarget runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return build(args), nil
	}
	ctor.DefineOwnProperty(runtime.StringKey("prototype"), &runtime.PropertyDescriptor{Value: proto})
	proto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.NonEnumerableData(ctor))
	if parentCtor != nil {
		ctor.SetPrototype(parentCtor)
	}
	return ctor
}
