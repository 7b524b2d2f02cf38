package runtime

import (
	"sort"

	"github.com/emirpasic/gods/v2/maps/linkedhashmap"
)

// Class tags the kind of internal-slot-bearing exotic behavior an
// Object carries (spec.md §4.4's "internal slots"); OrdinaryObject
// covers plain objects and class instances, the others back the
// built-ins in internal/builtins.
type Class string

const (
	OrdinaryObject Class = "Object"
	ArrayObject    Class = "Array"
	FunctionObject Class = "Function"
	ErrorObject    Class = "Error"
	BooleanObject  Class = "Boolean"
	NumberObject   Class = "Number"
	StringObject   Class = "String"
	RegExpObject   Class = "RegExp"
	DateObject     Class = "Date"
)

// NativeFunc is the Go-side implementation backing a FunctionObject
// built-in (spec.md §4.7): it receives the `this` binding and the
// argument list and returns a result or a thrown Value.
type NativeFunc func(this Value, args []Value) (Value, *Throw)

// Throw wraps a thrown Language value so it can travel through Go's
// error-return channel without being confused with a host error
// (spec.md §7: "the completion carries a Value, never a Go error").
type Throw struct {
	Value Value
}

// Error renders the thrown value for a host caller. An Error-class
// object (built by internal/builtins' error constructors) carries a
// "stack" string already formatted as "Name: message", which is far
// more useful to an embedding host than the generic "[object Error]"
// that Value.String() would otherwise produce.
func (t *Throw) Error() string {
	if obj, ok := t.Value.(*Object); ok && obj.Class() == ErrorObject {
		if stack, thr := obj.Get(StringKey("stack"), obj); thr == nil {
			if s, ok := stack.(String); ok {
				return "uncaught exception: " + string(s)
			}
		}
	}
	return "uncaught exception: " + t.Value.String()
}

// Object is the single representation behind every non-primitive
// value: plain objects, arrays, functions, errors, boxed primitives,
// and class instances, distinguished by Class and by which optional
// internal-slot fields are populated (spec.md §4.4).
type Object struct {
	class      Class
	prototype  *Object
	extensible bool
	props      *linkedhashmap.Map[PropertyKey, *PropertyDescriptor]

	// Internal slots, populated only for the relevant Class.
	Primitive   Value       // [[PrimitiveValue]] for Boolean/Number/String wrapper objects
	CallFn      NativeFunc  // [[Call]] for a native function object
	ConstructFn NativeFunc  // [[Construct]] for a native constructor
	ASTFunction interface{} // set by internal/interp for a user-defined function (avoids an import cycle)
	HomeObject  *Object     // [[HomeObject]], for `super` property lookups in methods
	SuperCtor   *Object     // superclass constructor, for a derived class's `super(...)` call
	Extra       map[string]interface{} // class-specific extra state (e.g. RegExp source/flags)
}

// NewObject allocates a plain, extensible object with the given
// prototype (pass nil for %Object.prototype% itself or a null-
// prototype object).
func NewObject(proto *Object) *Object {
	return &Object{
		class:      OrdinaryObject,
		prototype:  proto,
		extensible: true,
		props:      linkedhashmap.New[PropertyKey, *PropertyDescriptor](),
	}
}

// NewObjectOfClass is NewObject plus an explicit Class tag, used by
// internal/builtins when constructing exotic objects (arrays,
// functions, boxed primitives, errors).
func NewObjectOfClass(proto *Object, class Class) *Object {
	o := NewObject(proto)
	o.class = class
	return o
}

func (o *Object) Type() string   { return "object" }
func (o *Object) String() string { return "[object " + string(o.class) + "]" }

// Class reports the Object's internal class tag.
func (o *Object) Class() Class { return o.class }

// Prototype returns [[Prototype]] (nil for a null-prototype object).
func (o *Object) Prototype() *Object { return o.prototype }

// SetPrototype implements [[SetPrototypeOf]] (spec.md §4.4). It always
// succeeds for an ordinary, extensible object; cyclic-prototype
// rejection is the caller's (Object.setPrototypeOf builtin's)
// responsibility since only it has the full candidate chain handy.
func (o *Object) SetPrototype(proto *Object) bool {
	if !o.extensible {
		return proto == o.prototype
	}
	o.prototype = proto
	return true
}

// Extensible reports [[Extensible]].
func (o *Object) Extensible() bool { return o.extensible }

// PreventExtensions implements [[PreventExtensions]]: clears
// [[Extensible]] permanently.
func (o *Object) PreventExtensions() { o.extensible = false }

// GetOwnProperty implements [[GetOwnProperty]]: look up key without
// walking the prototype chain.
func (o *Object) GetOwnProperty(key PropertyKey) (*PropertyDescriptor, bool) {
	return o.props.Get(key)
}

// HasOwn implements the HasOwnProperty question directly.
func (o *Object) HasOwn(key PropertyKey) bool {
	_, ok := o.props.Get(key)
	return ok
}

// DefineOwnProperty implements a simplified [[DefineOwnProperty]]:
// installs desc at key if the key is new and the object is extensible,
// or the key already exists and is configurable, matching the subset of
// descriptor reconciliation spec.md §4.4 actually exercises (full
// partial-descriptor merging is not modeled; callers always supply a
// complete descriptor).
func (o *Object) DefineOwnProperty(key PropertyKey, desc *PropertyDescriptor) bool {
	if existing, ok := o.props.Get(key); ok {
		if !existing.Configurable {
			return false
		}
	} else if !o.extensible {
		return false
	}
	o.props.Put(key, desc)
	return true
}

// Delete implements [[Delete]]: removes a configurable own property.
func (o *Object) Delete(key PropertyKey) bool {
	desc, ok := o.props.Get(key)
	if !ok {
		return true
	}
	if !desc.Configurable {
		return false
	}
	o.props.Remove(key)
	return true
}

// Get implements [[Get]]: walks the prototype chain, invoking an
// accessor's getter with receiver as `this` if one is found.
func (o *Object) Get(key PropertyKey, receiver Value) (Value, *Throw) {
	cur := o
	for cur != nil {
		if desc, ok := cur.props.Get(key); ok {
			if desc.IsAccessor {
				if desc.Get == nil {
					return UndefinedValue, nil
				}
				return desc.Get.Call(receiver, nil)
			}
			return desc.Value, nil
		}
		cur = cur.prototype
	}
	return UndefinedValue, nil
}

// Set implements [[Set]]: walks the prototype chain looking for an
// accessor or an existing data property to decide how the write
// behaves, finally falling back to creating an own data property on
// receiver (spec.md §4.4).
func (o *Object) Set(key PropertyKey, v Value, receiver *Object) (bool, *Throw) {
	cur := o
	for cur != nil {
		if desc, ok := cur.props.Get(key); ok {
			if desc.IsAccessor {
				if desc.Set == nil {
					return false, nil
				}
				_, thr := desc.Set.Call(receiver, []Value{v})
				return thr == nil, thr
			}
			if cur == receiver {
				if !desc.Writable {
					return false, nil
				}
				desc.Value = v
				return true, nil
			}
			break
		}
		cur = cur.prototype
	}
	if !receiver.extensible {
		return false, nil
	}
	receiver.props.Put(key, DataProperty(v))
	return true, nil
}

// HasProperty implements [[HasProperty]]: true if key is found
// anywhere on the prototype chain.
func (o *Object) HasProperty(key PropertyKey) bool {
	for cur := o; cur != nil; cur = cur.prototype {
		if _, ok := cur.props.Get(key); ok {
			return true
		}
	}
	return false
}

// OwnKeys implements [[OwnPropertyKeys]]: integer-index string keys in
// ascending numeric order, then remaining string keys in insertion
// order, then symbol keys in insertion order (spec.md §4.4).
func (o *Object) OwnKeys() []PropertyKey {
	all := o.props.Keys()
	var indices []uint32
	var strs []PropertyKey
	var syms []PropertyKey
	indexOf := map[uint32]PropertyKey{}
	for _, k := range all {
		if k.isSymbol {
			syms = append(syms, k)
			continue
		}
		if idx, ok := k.arrayIndex(); ok {
			indices = append(indices, idx)
			indexOf[idx] = k
			continue
		}
		strs = append(strs, k)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	out := make([]PropertyKey, 0, len(all))
	for _, idx := range indices {
		out = append(out, indexOf[idx])
	}
	out = append(out, strs...)
	out = append(out, syms...)
	return out
}

// CallNative invokes o as a function ([[Call]]), failing with a host
// panic-free error Value if o is not callable; the interpreter
// translates non-callability into a Language TypeError before
// reaching here in practice.
func (o *Object) CallNative(this Value, args []Value) (Value, *Throw) {
	return o.Call(this, args)
}

// Call invokes the [[Call]] internal method directly.
func (o *Object) Call(this Value, args []Value) (Value, *Throw) {
	if o.CallFn == nil {
		return nil, &Throw{Value: String("TypeError: not a function")}
	}
	return o.CallFn(this, args)
}

// Construct invokes the [[Construct]] internal method.
func (o *Object) Construct(args []Value, newTarget *Object) (Value, *Throw) {
	if o.ConstructFn == nil {
		return nil, &Throw{Value: String("TypeError: not a constructor")}
	}
	return o.ConstructFn(newTarget, args)
}

// IsCallable reports whether [[Call]] is populated.
func (o *Object) IsCallable() bool { return o.CallFn != nil }

// IsConstructor reports whether [[Construct]] is populated.
func (o *Object) IsConstructor() bool { return o.ConstructFn != nil }
