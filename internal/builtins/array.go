package builtins

import (
	"strconv"
	"strings"

	"github.com/cwbudde-lumen/lumen/internal/interp"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

func newArray(r *interp.Realm) *runtime.Object {
	return runtime.NewObjectOfClass(r.ArrayPrototype, runtime.ArrayObject)
}

// arrayOf builds a populated array object, mirroring
// internal/interp's evaluator.fillArray for builtins that must
// produce one without access to an evaluator.
func arrayOf(r *interp.Realm, items []runtime.Value) *runtime.Object {
	arr := newArray(r)
	setArrayElements(arr, items)
	return arr
}

func setArrayElements(arr *runtime.Object, items []runtime.Value) {
	for i, v := range items {
		arr.DefineOwnProperty(runtime.StringKey(strconv.Itoa(i)), runtime.DataProperty(v))
	}
	arr.DefineOwnProperty(runtime.StringKey("length"), &runtime.PropertyDescriptor{Value: runtime.Number(len(items)), Writable: true})
}

func arrayLength(o *runtime.Object) int {
	v, _ := o.Get(runtime.StringKey("length"), o)
	return int(interp.ToNumber(v))
}

func arrayElements(o *runtime.Object) []runtime.Value {
	n := arrayLength(o)
	out := make([]runtime.Value, n)
	for i := 0; i < n; i++ {
		v, _ := o.Get(runtime.StringKey(strconv.Itoa(i)), o)
		out[i] = v
	}
	return out
}

func normalizeIndex(i, length int) int {
	if i < 0 {
		i += length
		if i < 0 {
			i = 0
		}
	}
	if i > length {
		i = length
	}
	return i
}

// installArray wires the Array constructor (Array.isArray, Array.of,
// Array.from) and the bulk of Array.prototype, grounded on spec.md
// §4.7's required iteration/search/transform methods.
func installArray(r *interp.Realm) {
	proto := r.ArrayPrototype

	ctor := r.NewFunction("Array", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return buildArray(r, args), nil
	})
	ctor.ConstructFn = func(newTarget runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return buildArray(r, args), nil
	}
	ctor.DefineOwnProperty(runtime.StringKey("prototype"), &runtime.PropertyDescriptor{Value: proto})
	proto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.NonEnumerableData(ctor))
	r.Global.DefineOwnProperty(runtime.StringKey("Array"), runtime.NonEnumerableData(ctor))

	method(r, ctor, "isArray", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, ok := arg(args, 0).(*runtime.Object)
		return runtime.Boolean(ok && obj.Class() == runtime.ArrayObject), nil
	})
	method(r, ctor, "of", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return arrayOf(r, args), nil
	})
	method(r, ctor, "from", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		var items []runtime.Value
		switch src := arg(args, 0).(type) {
		case *runtime.Object:
			items = arrayElements(src)
		case runtime.String:
			for _, u := range runtime.UTF16Units(string(src)) {
				items = append(items, runtime.String(u))
			}
		}
		if mapFn, ok := arg(args, 1).(*runtime.Object); ok && mapFn.IsCallable() {
			mapped := make([]runtime.Value, len(items))
			for i, v := range items {
				out, thr := mapFn.Call(runtime.UndefinedValue, []runtime.Value{v, num(i)})
				if thr != nil {
					return nil, thr
				}
				mapped[i] = out
			}
			items = mapped
		}
		return arrayOf(r, items), nil
	})

	method(r, proto, "push", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		items := arrayElements(obj)
		items = append(items, args...)
		setArrayElements(obj, items)
		return num(len(items)), nil
	})
	method(r, proto, "pop", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		items := arrayElements(obj)
		if len(items) == 0 {
			return runtime.UndefinedValue, nil
		}
		last := items[len(items)-1]
		setArrayElements(obj, items[:len(items)-1])
		return last, nil
	})
	method(r, proto, "shift", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		items := arrayElements(obj)
		if len(items) == 0 {
			return runtime.UndefinedValue, nil
		}
		first := items[0]
		setArrayElements(obj, items[1:])
		return first, nil
	})
	method(r, proto, "unshift", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		items := append(append([]runtime.Value{}, args...), arrayElements(obj)...)
		setArrayElements(obj, items)
		return num(len(items)), nil
	})
	method(r, proto, "slice", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		items := arrayElements(obj)
		start, end := sliceBounds(args, len(items))
		if start >= end {
			return arrayOf(r, nil), nil
		}
		return arrayOf(r, append([]runtime.Value{}, items[start:end]...)), nil
	})
	method(r, proto, "splice", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		items := arrayElements(obj)
		start := normalizeIndex(int(interp.ToNumber(arg(args, 0))), len(items))
		deleteCount := len(items) - start
		if len(args) > 1 {
			deleteCount = int(interp.ToNumber(args[1]))
			if deleteCount < 0 {
				deleteCount = 0
			}
			if start+deleteCount > len(items) {
				deleteCount = len(items) - start
			}
		}
		removed := append([]runtime.Value{}, items[start:start+deleteCount]...)
		var inserted []runtime.Value
		if len(args) > 2 {
			inserted = args[2:]
		}
		next := append([]runtime.Value{}, items[:start]...)
		next = append(next, inserted...)
		next = append(next, items[start+deleteCount:]...)
		setArrayElements(obj, next)
		return arrayOf(r, removed), nil
	})
	method(r, proto, "concat", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		items := append([]runtime.Value{}, arrayElements(obj)...)
		for _, a := range args {
			if o, ok := a.(*runtime.Object); ok && o.Class() == runtime.ArrayObject {
				items = append(items, arrayElements(o)...)
			} else {
				items = append(items, a)
			}
		}
		return arrayOf(r, items), nil
	})
	method(r, proto, "join", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		sep := ","
		if len(args) > 0 {
			s, thr := interp.ToStringValue(args[0])
			if thr != nil {
				return nil, thr
			}
			sep = string(s)
		}
		items := arrayElements(obj)
		parts := make([]string, len(items))
		for i, v := range items {
			if interp.IsNullish(v) {
				parts[i] = ""
				continue
			}
			s, thr := interp.ToStringValue(v)
			if thr != nil {
				return nil, thr
			}
			parts[i] = string(s)
		}
		return runtime.String(strings.Join(parts, sep)), nil
	})
	method(r, proto, "reverse", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		items := arrayElements(obj)
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
		setArrayElements(obj, items)
		return obj, nil
	})
	method(r, proto, "indexOf", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		target := arg(args, 0)
		for i, v := range arrayElements(obj) {
			if interp.StrictEquals(v, target) {
				return num(i), nil
			}
		}
		return runtime.Number(-1), nil
	})
	method(r, proto, "lastIndexOf", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		target := arg(args, 0)
		items := arrayElements(obj)
		for i := len(items) - 1; i >= 0; i-- {
			if interp.StrictEquals(items[i], target) {
				return num(i), nil
			}
		}
		return runtime.Number(-1), nil
	})
	method(r, proto, "includes", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		target := arg(args, 0)
		for _, v := range arrayElements(obj) {
			if interp.SameValueZero(v, target) {
				return runtime.Boolean(true), nil
			}
		}
		return runtime.Boolean(false), nil
	})

	iterMethod := func(name string, impl func(obj *runtime.Object, items []runtime.Value, cb *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Throw)) {
		method(r, proto, name, 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
			obj, thr := thisObject(this)
			if thr != nil {
				return nil, thr
			}
			cb, ok := arg(args, 0).(*runtime.Object)
			if !ok || !cb.IsCallable() {
				return nil, throwType(name + " callback is not a function")
			}
			return impl(obj, arrayElements(obj), cb, arg(args, 1))
		})
	}
	iterMethod("forEach", func(obj *runtime.Object, items []runtime.Value, cb *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Throw) {
		for i, v := range items {
			if _, thr := cb.Call(thisArg, []runtime.Value{v, num(i), obj}); thr != nil {
				return nil, thr
			}
		}
		return runtime.UndefinedValue, nil
	})
	iterMethod("map", func(obj *runtime.Object, items []runtime.Value, cb *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Throw) {
		out := make([]runtime.Value, len(items))
		for i, v := range items {
			res, thr := cb.Call(thisArg, []runtime.Value{v, num(i), obj})
			if thr != nil {
				return nil, thr
			}
			out[i] = res
		}
		return arrayOf(r, out), nil
	})
	iterMethod("filter", func(obj *runtime.Object, items []runtime.Value, cb *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Throw) {
		var out []runtime.Value
		for i, v := range items {
			res, thr := cb.Call(thisArg, []runtime.Value{v, num(i), obj})
			if thr != nil {
				return nil, thr
			}
			if interp.ToBoolean(res) {
				out = append(out, v)
			}
		}
		return arrayOf(r, out), nil
	})
	iterMethod("find", func(obj *runtime.Object, items []runtime.Value, cb *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Throw) {
		for i, v := range items {
			res, thr := cb.Call(thisArg, []runtime.Value{v, num(i), obj})
			if thr != nil {
				return nil, thr
			}
			if interp.ToBoolean(res) {
				return v, nil
			}
		}
		return runtime.UndefinedValue, nil
	})
	iterMethod("findIndex", func(obj *runtime.Object, items []runtime.Value, cb *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Throw) {
		for i, v := range items {
			res, thr := cb.Call(thisArg, []runtime.Value{v, num(i), obj})
			if thr != nil {
				return nil, thr
			}
			if interp.ToBoolean(res) {
				return num(i), nil
			}
		}
		return runtime.Number(-1), nil
	})
	iterMethod("some", func(obj *runtime.Object, items []runtime.Value, cb *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Throw) {
		for i, v := range items {
			res, thr := cb.Call(thisArg, []runtime.Value{v, num(i), obj})
			if thr != nil {
				return nil, thr
			}
			if interp.ToBoolean(res) {
				return runtime.Boolean(true), nil
			}
		}
		return runtime.Boolean(false), nil
	})
	iterMethod("every", func(obj *runtime.Object, items []runtime.Value, cb *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Throw) {
		for i, v := range items {
			res, thr := cb.Call(thisArg, []runtime.Value{v, num(i), obj})
			if thr != nil {
				return nil, thr
			}
			if !interp.ToBoolean(res) {
				return runtime.Boolean(false), nil
			}
		}
		return runtime.Boolean(true), nil
	})

	method(r, proto, "reduce", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		cb, ok := arg(args, 0).(*runtime.Object)
		if !ok || !cb.IsCallable() {
			return nil, throwType("reduce callback is not a function")
		}
		items := arrayElements(obj)
		i := 0
		var acc runtime.Value
		if len(args) > 1 {
			acc = args[1]
		} else {
			if len(items) == 0 {
				return nil, &runtime.Throw{Value: runtime.String("TypeError: Reduce of empty array with no initial value")}
			}
			acc = items[0]
			i = 1
		}
		for ; i < len(items); i++ {
			res, thr := cb.Call(runtime.UndefinedValue, []runtime.Value{acc, items[i], num(i), obj})
			if thr != nil {
				return nil, thr
			}
			acc = res
		}
		return acc, nil
	})

	method(r, proto, "flat", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		depth := 1
		if len(args) > 0 {
			depth = int(interp.ToNumber(args[0]))
		}
		return arrayOf(r, flatten(arrayElements(obj), depth)), nil
	})

	method(r, proto, "sort", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		items := arrayElements(obj)
		cmp, _ := arg(args, 0).(*runtime.Object)
		var sortErr *runtime.Throw
		sortStable(items, func(a, b runtime.Value) bool {
			if sortErr != nil {
				return false
			}
			if cmp != nil && cmp.IsCallable() {
				res, thr := cmp.Call(runtime.UndefinedValue, []runtime.Value{a, b})
				if thr != nil {
					sortErr = thr
					return false
				}
				return float64(interp.ToNumber(res)) < 0
			}
			as, _ := interp.ToStringValue(a)
			bs, _ := interp.ToStringValue(b)
			return as < bs
		})
		if sortErr != nil {
			return nil, sortErr
		}
		setArrayElements(obj, items)
		return obj, nil
	})

	method(r, proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		parts := make([]string, 0)
		for _, v := range arrayElements(obj) {
			s, _ := interp.ToStringValue(v)
			parts = append(parts, string(s))
		}
		return runtime.String(strings.Join(parts, ",")), nil
	})
}

func buildArray(r *interp.Realm, args []runtime.Value) *runtime.Object {
	if len(args) == 1 {
		if n, ok := args[0].(runtime.Number); ok {
			holes := make([]runtime.Value, int(n))
			for i := range holes {
				holes[i] = runtime.UndefinedValue
			}
			return arrayOf(r, holes)
		}
	}
	return arrayOf(r, args)
}

func sliceBounds(args []runtime.Value, length int) (int, int) {
	start, end := 0, length
	if len(args) > 0 {
		start = normalizeIndex(int(interp.ToNumber(args[0])), length)
	}
	if len(args) > 1 && !interp.IsNullish(args[1]) {
		end = normalizeIndex(int(interp.ToNumber(args[1])), length)
	}
	return start, end
}

func flatten(items []runtime.Value, depth int) []runtime.Value {
	var out []runtime.Value
	for _, v := range items {
		if arr, ok := v.(*runtime.Object); ok && arr.Class() == runtime.ArrayObject && depth > 0 {
			out = append(out, flatten(arrayElements(arr), depth-1)...)
		} else {
			out = append(out, v)
		}
	}
	return out
}

// sortStable implements an insertion sort driven by less, avoiding a
// dependency on sort.Slice's non-stable-by-default comparator contract
// when a user comparator throws partway through (spec.md leaves the
// partial-sort-on-exception behavior unspecified; insertion sort keeps
// it simple to reason about).
func sortStable(items []runtime.Value, less func(a, b runtime.Value) bool) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && less(items[j], items[j-1]); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}
