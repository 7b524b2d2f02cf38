package builtins

import (
	"github.com/cwbudde-lumen/lumen/internal/interp"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// installFunction wires Function.prototype.call/apply/bind and the
// Function.prototype.toString fallback used by every closure spec.md
// §4.7 describes (`fn.toString()` is best-effort: it cannot recover
// original source text for a built-in, only a stub).
func installFunction(r *interp.Realm) {
	proto := r.FunctionPrototype

	method(r, proto, "call", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		fn, ok := this.(*runtime.Object)
		if !ok || !fn.IsCallable() {
			return nil, throwType("Function.prototype.call called on non-function")
		}
		thisArg := arg(args, 0)
		var rest []runtime.Value
		if len(args) > 1 {
			rest = args[1:]
		}
		return fn.Call(thisArg, rest)
	})

	method(r, proto, "apply", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		fn, ok := this.(*runtime.Object)
		if !ok || !fn.IsCallable() {
			return nil, throwType("Function.prototype.apply called on non-function")
		}
		thisArg := arg(args, 0)
		var rest []runtime.Value
		if arr, ok := arg(args, 1).(*runtime.Object); ok {
			rest = arrayElements(arr)
		}
		return fn.Call(thisArg, rest)
	})

	method(r, proto, "bind", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		fn, ok := this.(*runtime.Object)
		if !ok || !fn.IsCallable() {
			return nil, throwType("Function.prototype.bind called on non-function")
		}
		boundThis := arg(args, 0)
		var boundArgs []runtime.Value
		if len(args) > 1 {
			boundArgs = append(boundArgs, args[1:]...)
		}
		bound := r.NewFunction("bound", 0, func(_ runtime.Value, callArgs []runtime.Value) (runtime.Value, *runtime.Throw) {
			all := append(append([]runtime.Value{}, boundArgs...), callArgs...)
			return fn.Call(boundThis, all)
		})
		if fn.IsConstructor() {
			bound.ConstructFn = func(newTarget runtime.Value, callArgs []runtime.Value) (runtime.Value, *runtime.Throw) {
				all := append(append([]runtime.Value{}, boundArgs...), callArgs...)
				return fn.Construct(all, fn)
			}
		}
		return bound, nil
	})

	method(r, proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		if fn, ok := this.(*runtime.Object); ok {
			nameVal, _ := fn.Get(runtime.StringKey("name"), fn)
			name, _ := interp.ToStringValue(nameVal)
			return runtime.String("function " + string(name) + "() { [native code] }"), nil
		}
		return runtime.String("function () { [native code] }"), nil
	})
}
