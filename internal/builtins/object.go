package builtins

import (
	"github.com/cwbudde-lumen/lumen/internal/interp"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// installObject wires the Object constructor, its static methods
// (keys/values/entries/assign/freeze/create/getPrototypeOf), and the
// instance methods every prototype chain ultimately inherits
// (hasOwnProperty/toString/valueOf), per spec.md §4.4/§4.7.
func installObject(r *interp.Realm) {
	proto := r.ObjectPrototype

	method(r, proto, "hasOwnProperty", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		key, thr := toKey(arg(args, 0))
		if thr != nil {
			return nil, thr
		}
		return runtime.Boolean(obj.HasOwn(key)), nil
	})
	method(r, proto, "isPrototypeOf", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, thr := thisObject(this)
		if thr != nil {
			return nil, thr
		}
		cand, ok := arg(args, 0).(*runtime.Object)
		if !ok {
			return runtime.Boolean(false), nil
		}
		for cur := cand.Prototype(); cur != nil; cur = cur.Prototype() {
			if cur == obj {
				return runtime.Boolean(true), nil
			}
		}
		return runtime.Boolean(false), nil
	})
	method(r, proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		if obj, ok := this.(*runtime.Object); ok {
			return runtime.String("[object " + string(obj.Class()) + "]"), nil
		}
		return runtime.String("[object Object]"), nil
	})
	method(r, proto, "valueOf", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return this, nil
	})

	ctor := r.NewFunction("Object", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		if len(args) == 0 || interp.IsNullish(arg(args, 0)) {
			return runtime.NewObject(proto), nil
		}
		return args[0], nil
	})
	ctor.ConstructFn = func(newTarget runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		if len(args) > 0 {
			if obj, ok := args[0].(*runtime.Object); ok {
				return obj, nil
			}
		}
		return runtime.NewObject(proto), nil
	}
	ctor.DefineOwnProperty(runtime.StringKey("prototype"), &runtime.PropertyDescriptor{Value: proto})
	proto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.NonEnumerableData(ctor))
	r.Global.DefineOwnProperty(runtime.StringKey("Object"), runtime.NonEnumerableData(ctor))

	method(r, ctor, "keys", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, ok := arg(args, 0).(*runtime.Object)
		if !ok {
			return newArray(r), nil
		}
		var keys []runtime.Value
		for _, k := range obj.OwnKeys() {
			if k.IsSymbol() {
				continue
			}
			desc, _ := obj.GetOwnProperty(k)
			if desc != nil && desc.Enumerable {
				keys = append(keys, runtime.String(k.String()))
			}
		}
		return arrayOf(r, keys), nil
	})
	method(r, ctor, "values", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, ok := arg(args, 0).(*runtime.Object)
		if !ok {
			return newArray(r), nil
		}
		var vals []runtime.Value
		for _, k := range obj.OwnKeys() {
			if k.IsSymbol() {
				continue
			}
			desc, _ := obj.GetOwnProperty(k)
			if desc == nil || !desc.Enumerable {
				continue
			}
			v, thr := obj.Get(k, obj)
			if thr != nil {
				return nil, thr
			}
			vals = append(vals, v)
		}
		return arrayOf(r, vals), nil
	})
	method(r, ctor, "entries", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, ok := arg(args, 0).(*runtime.Object)
		if !ok {
			return newArray(r), nil
		}
		var entries []runtime.Value
		for _, k := range obj.OwnKeys() {
			if k.IsSymbol() {
				continue
			}
			desc, _ := obj.GetOwnProperty(k)
			if desc == nil || !desc.Enumerable {
				continue
			}
			v, thr := obj.Get(k, obj)
			if thr != nil {
				return nil, thr
			}
			entries = append(entries, arrayOf(r, []runtime.Value{runtime.String(k.String()), v}))
		}
		return arrayOf(r, entries), nil
	})
	method(r, ctor, "assign", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		target, ok := arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, throwType("Object.assign target must be an object")
		}
		for _, src := range args[1:] {
			srcObj, ok := src.(*runtime.Object)
			if !ok {
				continue
			}
			for _, k := range srcObj.OwnKeys() {
				if k.IsSymbol() {
					continue
				}
				desc, _ := srcObj.GetOwnProperty(k)
				if desc == nil || !desc.Enumerable {
					continue
				}
				v, thr := srcObj.Get(k, srcObj)
				if thr != nil {
					return nil, thr
				}
				if _, thr := target.Set(k, v, target); thr != nil {
					return nil, thr
				}
			}
		}
		return target, nil
	})
	method(r, ctor, "freeze", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		if obj, ok := arg(args, 0).(*runtime.Object); ok {
			obj.PreventExtensions()
			for _, k := range obj.OwnKeys() {
				if desc, ok := obj.GetOwnProperty(k); ok {
					desc.Writable = false
					desc.Configurable = false
				}
			}
		}
		return arg(args, 0), nil
	})
	method(r, ctor, "isFrozen", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, ok := arg(args, 0).(*runtime.Object)
		if !ok {
			return runtime.Boolean(true), nil
		}
		if obj.Extensible() {
			return runtime.Boolean(false), nil
		}
		for _, k := range obj.OwnKeys() {
			if desc, ok := obj.GetOwnProperty(k); ok {
				if desc.Writable || desc.Configurable {
					return runtime.Boolean(false), nil
				}
			}
		}
		return runtime.Boolean(true), nil
	})
	method(r, ctor, "create", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		var p *runtime.Object
		if po, ok := arg(args, 0).(*runtime.Object); ok {
			p = po
		}
		return runtime.NewObject(p), nil
	})
	method(r, ctor, "getPrototypeOf", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, ok := arg(args, 0).(*runtime.Object)
		if !ok {
			return runtime.NullValue, nil
		}
		if p := obj.Prototype(); p != nil {
			return p, nil
		}
		return runtime.NullValue, nil
	})
	method(r, ctor, "setPrototypeOf", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, ok := arg(args, 0).(*runtime.Object)
		if !ok {
			return arg(args, 0), nil
		}
		if p, ok := arg(args, 1).(*runtime.Object); ok {
			for q := p; q != nil; q = q.Prototype() {
				if q == obj {
					return nil, throwType("Cyclic __proto__ value")
				}
			}
			obj.SetPrototype(p)
		} else {
			obj.SetPrototype(nil)
		}
		return obj, nil
	})
	method(r, ctor, "defineProperty", 3, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, ok := arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, throwType("Object.defineProperty called on non-object")
		}
		key, thr := toKey(arg(args, 1))
		if thr != nil {
			return nil, thr
		}
		descObj, ok := arg(args, 2).(*runtime.Object)
		if !ok {
			return nil, throwType("Property description must be an object")
		}
		desc, thr := mergeDescriptor(obj, key, descObj)
		if thr != nil {
			return nil, thr
		}
		if !obj.DefineOwnProperty(key, desc) {
			return nil, throwType("Cannot redefine property: " + key.String())
		}
		return obj, nil
	})
	method(r, ctor, "getOwnPropertyDescriptor", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		obj, ok := arg(args, 0).(*runtime.Object)
		if !ok {
			return runtime.UndefinedValue, nil
		}
		key, thr := toKey(arg(args, 1))
		if thr != nil {
			return nil, thr
		}
		desc, ok := obj.GetOwnProperty(key)
		if !ok {
			return runtime.UndefinedValue, nil
		}
		return descriptorToObject(r, desc), nil
	})
}

// mergeDescriptor builds a complete PropertyDescriptor from the
// partial descriptor object a script passes to Object.defineProperty,
// filling in any attribute it omits from the property already present
// at key (or spec-correct false/undefined defaults for a new
// property), since runtime.Object.DefineOwnProperty itself expects a
// complete descriptor and does no merging (spec.md §4.4).
func mergeDescriptor(obj *runtime.Object, key runtime.PropertyKey, descObj *runtime.Object) (*runtime.PropertyDescriptor, *runtime.Throw) {
	existing, hasExisting := obj.GetOwnProperty(key)
	desc := &runtime.PropertyDescriptor{}
	if hasExisting {
		*desc = *existing
	}
	hasGet := descObj.HasOwn(runtime.StringKey("get"))
	hasSet := descObj.HasOwn(runtime.StringKey("set"))
	hasValue := descObj.HasOwn(runtime.StringKey("value"))
	hasWritable := descObj.HasOwn(runtime.StringKey("writable"))
	if hasGet || hasSet {
		desc.IsAccessor = true
		desc.Value = nil
		desc.Writable = false
		if hasGet {
			v, thr := descObj.Get(runtime.StringKey("get"), descObj)
			if thr != nil {
				return nil, thr
			}
			if fn, ok := v.(*runtime.Object); ok {
				desc.Get = fn
			} else {
				desc.Get = nil
			}
		}
		if hasSet {
			v, thr := descObj.Get(runtime.StringKey("set"), descObj)
			if thr != nil {
				return nil, thr
			}
			if fn, ok := v.(*runtime.Object); ok {
				desc.Set = fn
			} else {
				desc.Set = nil
			}
		}
	} else {
		if hasValue {
			v, thr := descObj.Get(runtime.StringKey("value"), descObj)
			if thr != nil {
				return nil, thr
			}
			desc.Value = v
			desc.IsAccessor = false
			desc.Get = nil
			desc.Set = nil
		}
		if hasWritable {
			v, thr := descObj.Get(runtime.StringKey("writable"), descObj)
			if thr != nil {
				return nil, thr
			}
			desc.Writable = interp.ToBoolean(v)
		}
	}
	if descObj.HasOwn(runtime.StringKey("enumerable")) {
		v, thr := descObj.Get(runtime.StringKey("enumerable"), descObj)
		if thr != nil {
			return nil, thr
		}
		desc.Enumerable = interp.ToBoolean(v)
	}
	if descObj.HasOwn(runtime.StringKey("configurable")) {
		v, thr := descObj.Get(runtime.StringKey("configurable"), descObj)
		if thr != nil {
			return nil, thr
		}
		desc.Configurable = interp.ToBoolean(v)
	}
	if !desc.IsAccessor && desc.Value == nil {
		desc.Value = runtime.UndefinedValue
	}
	return desc, nil
}

// descriptorToObject renders a PropertyDescriptor back into a plain
// script-visible object, the shape Object.getOwnPropertyDescriptor
// returns (spec.md §4.4).
func descriptorToObject(r *interp.Realm, desc *runtime.PropertyDescriptor) *runtime.Object {
	out := runtime.NewObject(r.ObjectPrototype)
	if desc.IsAccessor {
		if desc.Get != nil {
			out.Set(runtime.StringKey("get"), desc.Get, out)
		} else {
			out.Set(runtime.StringKey("get"), runtime.UndefinedValue, out)
		}
		if desc.Set != nil {
			out.Set(runtime.StringKey("set"), desc.Set, out)
		} else {
			out.Set(runtime.StringKey("set"), runtime.UndefinedValue, out)
		}
	} else {
		out.Set(runtime.StringKey("value"), desc.Value, out)
		out.Set(runtime.StringKey("writable"), runtime.Boolean(desc.Writable), out)
	}
	out.Set(runtime.StringKey("enumerable"), runtime.Boolean(desc.Enumerable), out)
	out.Set(runtime.StringKey("configurable"), runtime.Boolean(desc.Configurable), out)
	return out
}

func toKey(v runtime.Value) (runtime.PropertyKey, *runtime.Throw) {
	if sym, ok := v.(*runtime.Symbol); ok {
		return runtime.SymbolKey(sym), nil
	}
	s, thr := interp.ToStringValue(v)
	if thr != nil {
		return runtime.PropertyKey{}, thr
	}
	return runtime.StringKey(string(s)), nil
}
