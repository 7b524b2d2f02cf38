package interp

import (
	"math"
	"strings"

	"github.com/cwbudde-lumen/lumen/internal/ast"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// evalExpression evaluates an Expression to a Value, per spec.md
// §4.6's expression-evaluation rules.
func (ev *evaluator) evalExpression(env *runtime.Environment, expr ast.Expression) (runtime.Value, *runtime.Throw) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return runtime.Number(e.Value), nil
	case *ast.StringLiteral:
		return runtime.String(e.Value), nil
	case *ast.BooleanLiteral:
		return runtime.Boolean(e.Value), nil
	case *ast.NullLiteral:
		return runtime.NullValue, nil
	case *ast.UndefinedLiteral:
		return runtime.UndefinedValue, nil
	case *ast.ThisExpression:
		return env.ThisBinding(), nil
	case *ast.Identifier:
		v, err := env.GetBindingValue(e.Name)
		if err != nil {
			return nil, referenceThrow(err)
		}
		return v, nil
	case *ast.TemplateLiteral:
		return ev.evalTemplateLiteral(env, e)
	case *ast.ArrayLiteral:
		return ev.evalArrayLiteral(env, e)
	case *ast.ObjectLiteral:
		return ev.evalObjectLiteral(env, e)
	case *ast.FunctionLiteral:
		return ev.makeClosure(env, e), nil
	case *ast.ClassLiteral:
		return ev.evalClassExpr(env, e)
	case *ast.UnaryExpression:
		return ev.evalUnary(env, e)
	case *ast.UpdateExpression:
		return ev.evalUpdate(env, e)
	case *ast.BinaryExpression:
		return ev.evalBinary(env, e)
	case *ast.LogicalExpression:
		return ev.evalLogical(env, e)
	case *ast.ConditionalExpression:
		test, thr := ev.evalExpression(env, e.Test)
		if thr != nil {
			return nil, thr
		}
		if ToBoolean(test) {
			return ev.evalExpression(env, e.Consequent)
		}
		return ev.evalExpression(env, e.Alternate)
	case *ast.AssignmentExpression:
		return ev.evalAssignment(env, e)
	case *ast.SequenceExpression:
		var last runtime.Value = runtime.UndefinedValue
		for _, sub := range e.Expressions {
			v, thr := ev.evalExpression(env, sub)
			if thr != nil {
				return nil, thr
			}
			last = v
		}
		return last, nil
	case *ast.MemberExpression:
		v, _, thr := ev.evalMember(env, e)
		return v, thr
	case *ast.CallExpression:
		return ev.evalCall(env, e)
	case *ast.NewExpression:
		return ev.evalNew(env, e)
	case *ast.SpreadElement:
		return ev.evalExpression(env, e.Argument)
	default:
		return runtime.UndefinedValue, nil
	}
}

func referenceThrow(err error) *runtime.Throw {
	if re, ok := err.(*runtime.ReferenceError); ok {
		return &runtime.Throw{Value: runtime.String("ReferenceError: " + re.Error())}
	}
	return &runtime.Throw{Value: runtime.String(err.Error())}
}

func (ev *evaluator) evalTemplateLiteral(env *runtime.Environment, t *ast.TemplateLiteral) (runtime.Value, *runtime.Throw) {
	var sb strings.Builder
	for i, q := range t.Quasis {
		sb.WriteString(q)
		if i < len(t.Expressions) {
			v, thr := ev.evalExpression(env, t.Expressions[i])
			if thr != nil {
				return nil, thr
			}
			s, thr := ToStringValue(v)
			if thr != nil {
				return nil, thr
			}
			sb.WriteString(string(s))
		}
	}
	return runtime.String(sb.String()), nil
}

func (ev *evaluator) evalArrayLiteral(env *runtime.Environment, a *ast.ArrayLiteral) (runtime.Value, *runtime.Throw) {
	var items []runtime.Value
	for _, el := range a.Elements {
		if el == nil {
			items = append(items, runtime.UndefinedValue)
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			v, thr := ev.evalExpression(env, spread.Argument)
			if thr != nil {
				return nil, thr
			}
			more, thr := ev.iterateToSlice(env, v)
			if thr != nil {
				return nil, thr
			}
			items = append(items, more...)
			continue
		}
		v, thr := ev.evalExpression(env, el)
		if thr != nil {
			return nil, thr
		}
		items = append(items, v)
	}
	arr := runtime.NewObjectOfClass(ev.realm.ArrayPrototype, runtime.ArrayObject)
	ev.fillArray(arr, items)
	return arr, nil
}

// fillArray installs items as ascending integer-index data properties
// plus the array's `length` (spec.md §4.4's array-index ordering).
func (ev *evaluator) fillArray(arr *runtime.Object, items []runtime.Value) {
	for i, v := range items {
		arr.DefineOwnProperty(runtime.StringKey(itoa(i)), runtime.DataProperty(v))
	}
	arr.DefineOwnProperty(runtime.StringKey("length"), &runtime.PropertyDescriptor{Value: runtime.Number(len(items)), Writable: true})
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

func (ev *evaluator) evalObjectLiteral(env *runtime.Environment, o *ast.ObjectLiteral) (runtime.Value, *runtime.Throw) {
	obj := runtime.NewObject(ev.realm.ObjectPrototype)
	for _, prop := range o.Properties {
		if prop.Kind == ast.PropertySpread {
			v, thr := ev.evalExpression(env, prop.Value)
			if thr != nil {
				return nil, thr
			}
			if src, ok := v.(*runtime.Object); ok {
				for _, k := range src.OwnKeys() {
					desc, _ := src.GetOwnProperty(k)
					if desc == nil || !desc.Enumerable {
						continue
					}
					val, thr := src.Get(k, src)
					if thr != nil {
						return nil, thr
					}
					obj.DefineOwnProperty(k, runtime.DataProperty(val))
				}
			}
			continue
		}
		key, thr := ev.propertyKeyOf(env, prop.Key, prop.Computed)
		if thr != nil {
			return nil, thr
		}
		switch prop.Kind {
		case ast.PropertyGet, ast.PropertySet:
			fnLit := prop.Value.(*ast.FunctionLiteral)
			fn := ev.makeClosure(env, fnLit)
			fn.HomeObject = obj
			existing, _ := obj.GetOwnProperty(key)
			var get, set *runtime.Object
			if existing != nil && existing.IsAccessor {
				get, set = existing.Get, existing.Set
			}
			if prop.Kind == ast.PropertyGet {
				get = fn
			} else {
				set = fn
			}
			obj.DefineOwnProperty(key, runtime.AccessorProperty(get, set, true, true))
		case ast.PropertyMethod:
			fnLit := prop.Value.(*ast.FunctionLiteral)
			fn := ev.makeClosure(env, fnLit)
			fn.HomeObject = obj
			obj.DefineOwnProperty(key, runtime.DataProperty(fn))
		default:
			v, thr := ev.evalExpression(env, prop.Value)
			if thr != nil {
				return nil, thr
			}
			obj.DefineOwnProperty(key, runtime.DataProperty(v))
		}
	}
	return obj, nil
}

func (ev *evaluator) propertyKeyOf(env *runtime.Environment, key ast.Expression, computed bool) (runtime.PropertyKey, *runtime.Throw) {
	if computed {
		v, thr := ev.evalExpression(env, key)
		if thr != nil {
			return runtime.PropertyKey{}, thr
		}
		if sym, ok := v.(*runtime.Symbol); ok {
			return runtime.SymbolKey(sym), nil
		}
		s, thr := ToStringValue(v)
		if thr != nil {
			return runtime.PropertyKey{}, thr
		}
		return runtime.StringKey(string(s)), nil
	}
	switch k := key.(type) {
	case *ast.Identifier:
		return runtime.StringKey(k.Name), nil
	case *ast.StringLiteral:
		return runtime.StringKey(k.Value), nil
	case *ast.NumberLiteral:
		return runtime.StringKey(runtime.Number(k.Value).String()), nil
	}
	return runtime.PropertyKey{}, nil
}

// iterateToSlice materializes any iterable Value (array, string, or an
// ordinary object exposing numeric indices) into a Go slice; this
// interpreter does not implement the full generator-based iterator
// protocol (see SPEC_FULL.md Non-goals), only the array/string/
// array-like fast paths real for-of loops exercise.
func (ev *evaluator) iterateToSlice(env *runtime.Environment, v runtime.Value) ([]runtime.Value, *runtime.Throw) {
	switch x := v.(type) {
	case runtime.String:
		runes := []rune(string(x))
		out := make([]runtime.Value, len(runes))
		for i, r := range runes {
			out[i] = runtime.String(string(r))
		}
		return out, nil
	case *runtime.Object:
		lenVal, thr := x.Get(runtime.StringKey("length"), x)
		if thr != nil {
			return nil, thr
		}
		n := int(ToNumber(lenVal))
		out := make([]runtime.Value, 0, n)
		for i := 0; i < n; i++ {
			item, thr := x.Get(runtime.StringKey(itoa(i)), x)
			if thr != nil {
				return nil, thr
			}
			out = append(out, item)
		}
		return out, nil
	default:
		return nil, &runtime.Throw{Value: runtime.String("TypeError: value is not iterable")}
	}
}

func (ev *evaluator) evalUnary(env *runtime.Environment, u *ast.UnaryExpression) (runtime.Value, *runtime.Throw) {
	if u.Operator == "typeof" {
		if ident, ok := u.Argument.(*ast.Identifier); ok {
			v, err := env.GetBindingValue(ident.Name)
			if err != nil {
				return runtime.String("undefined"), nil
			}
			return runtime.String(v.Type()), nil
		}
	}
	if u.Operator == "delete" {
		if member, ok := u.Argument.(*ast.MemberExpression); ok {
			objVal, thr := ev.evalExpression(env, member.Object)
			if thr != nil {
				return nil, thr
			}
			key, thr := ev.memberKey(env, member)
			if thr != nil {
				return nil, thr
			}
			if obj, ok := objVal.(*runtime.Object); ok {
				return runtime.Boolean(obj.Delete(key)), nil
			}
		}
		return runtime.Boolean(true), nil
	}
	v, thr := ev.evalExpression(env, u.Argument)
	if thr != nil {
		return nil, thr
	}
	switch u.Operator {
	case "-":
		return -ToNumber(v), nil
	case "+":
		return ToNumber(v), nil
	case "!":
		return runtime.Boolean(!ToBoolean(v)), nil
	case "~":
		return runtime.Number(^ToInt32(v)), nil
	case "void":
		return runtime.UndefinedValue, nil
	case "typeof":
		return runtime.String(v.Type()), nil
	}
	return runtime.UndefinedValue, nil
}

func (ev *evaluator) evalUpdate(env *runtime.Environment, u *ast.UpdateExpression) (runtime.Value, *runtime.Throw) {
	old, thr := ev.evalExpression(env, u.Argument)
	if thr != nil {
		return nil, thr
	}
	oldNum := ToNumber(old)
	var newNum runtime.Number
	if u.Operator == "++" {
		newNum = oldNum + 1
	} else {
		newNum = oldNum - 1
	}
	if thr := ev.assignTo(env, u.Argument, newNum); thr != nil {
		return nil, thr
	}
	if u.Prefix {
		return newNum, nil
	}
	return oldNum, nil
}

func (ev *evaluator) evalBinary(env *runtime.Environment, b *ast.BinaryExpression) (runtime.Value, *runtime.Throw) {
	left, thr := ev.evalExpression(env, b.Left)
	if thr != nil {
		return nil, thr
	}
	right, thr := ev.evalExpression(env, b.Right)
	if thr != nil {
		return nil, thr
	}
	return applyBinaryOp(b.Operator, left, right)
}

func applyBinaryOp(op string, left, right runtime.Value) (runtime.Value, *runtime.Throw) {
	switch op {
	case "+":
		lp, thr := ToPrimitive(left, "default")
		if thr != nil {
			return nil, thr
		}
		rp, thr := ToPrimitive(right, "default")
		if thr != nil {
			return nil, thr
		}
		_, lIsStr := lp.(runtime.String)
		_, rIsStr := rp.(runtime.String)
		if lIsStr || rIsStr {
			ls, thr := ToStringValue(lp)
			if thr != nil {
				return nil, thr
			}
			rs, thr := ToStringValue(rp)
			if thr != nil {
				return nil, thr
			}
			return runtime.String(string(ls) + string(rs)), nil
		}
		return ToNumber(lp) + ToNumber(rp), nil
	case "-":
		return ToNumber(left) - ToNumber(right), nil
	case "*":
		return ToNumber(left) * ToNumber(right), nil
	case "/":
		return ToNumber(left) / ToNumber(right), nil
	case "%":
		return runtime.Number(math.Mod(float64(ToNumber(left)), float64(ToNumber(right)))), nil
	case "**":
		return runtime.Number(math.Pow(float64(ToNumber(left)), float64(ToNumber(right)))), nil
	case "==":
		eq, thr := LooseEquals(left, right)
		return runtime.Boolean(eq), thr
	case "!=":
		eq, thr := LooseEquals(left, right)
		return runtime.Boolean(!eq), thr
	case "===":
		return runtime.Boolean(StrictEquals(left, right)), nil
	case "!==":
		return runtime.Boolean(!StrictEquals(left, right)), nil
	case "<", ">", "<=", ">=":
		return compare(op, left, right)
	case "&":
		return runtime.Number(ToInt32(left) & ToInt32(right)), nil
	case "|":
		return runtime.Number(ToInt32(left) | ToInt32(right)), nil
	case "^":
		return runtime.Number(ToInt32(left) ^ ToInt32(right)), nil
	case "<<":
		return runtime.Number(ToInt32(left) << (ToUint32(right) & 31)), nil
	case ">>":
		return runtime.Number(ToInt32(left) >> (ToUint32(right) & 31)), nil
	case ">>>":
		return runtime.Number(ToUint32(left) >> (ToUint32(right) & 31)), nil
	case "instanceof":
		return instanceOf(left, right)
	case "in":
		rightObj, ok := right.(*runtime.Object)
		if !ok {
			return nil, &runtime.Throw{Value: runtime.String("TypeError: cannot use 'in' operator on a non-object")}
		}
		s, thr := ToStringValue(left)
		if thr != nil {
			return nil, thr
		}
		return runtime.Boolean(rightObj.HasProperty(runtime.StringKey(string(s)))), nil
	}
	return runtime.UndefinedValue, nil
}

func compare(op string, left, right runtime.Value) (runtime.Value, *runtime.Throw) {
	lp, thr := ToPrimitive(left, "number")
	if thr != nil {
		return nil, thr
	}
	rp, thr := ToPrimitive(right, "number")
	if thr != nil {
		return nil, thr
	}
	ls, lIsStr := lp.(runtime.String)
	rs, rIsStr := rp.(runtime.String)
	if lIsStr && rIsStr {
		switch op {
		case "<":
			return runtime.Boolean(ls < rs), nil
		case ">":
			return runtime.Boolean(ls > rs), nil
		case "<=":
			return runtime.Boolean(ls <= rs), nil
		default:
			return runtime.Boolean(ls >= rs), nil
		}
	}
	ln, rn := ToNumber(lp), ToNumber(rp)
	if ln.IsNaN() || rn.IsNaN() {
		return runtime.Boolean(false), nil
	}
	switch op {
	case "<":
		return runtime.Boolean(ln < rn), nil
	case ">":
		return runtime.Boolean(ln > rn), nil
	case "<=":
		return runtime.Boolean(ln <= rn), nil
	default:
		return runtime.Boolean(ln >= rn), nil
	}
}

func instanceOf(left, right runtime.Value) (runtime.Value, *runtime.Throw) {
	ctor, ok := right.(*runtime.Object)
	if !ok || !ctor.IsCallable() {
		return nil, &runtime.Throw{Value: runtime.String("TypeError: Right-hand side of 'instanceof' is not callable")}
	}
	protoVal, thr := ctor.Get(runtime.StringKey("prototype"), ctor)
	if thr != nil {
		return nil, thr
	}
	proto, ok := protoVal.(*runtime.Object)
	if !ok {
		return runtime.Boolean(false), nil
	}
	obj, ok := left.(*runtime.Object)
	if !ok {
		return runtime.Boolean(false), nil
	}
	for cur := obj.Prototype(); cur != nil; cur = cur.Prototype() {
		if cur == proto {
			return runtime.Boolean(true), nil
		}
	}
	return runtime.Boolean(false), nil
}

func (ev *evaluator) evalLogical(env *runtime.Environment, l *ast.LogicalExpression) (runtime.Value, *runtime.Throw) {
	left, thr := ev.evalExpression(env, l.Left)
	if thr != nil {
		return nil, thr
	}
	switch l.Operator {
	case "&&":
		if !ToBoolean(left) {
			return left, nil
		}
	case "||":
		if ToBoolean(left) {
			return left, nil
		}
	case "??":
		if !IsNullish(left) {
			return left, nil
		}
	}
	return ev.evalExpression(env, l.Right)
}

func (ev *evaluator) evalAssignment(env *runtime.Environment, a *ast.AssignmentExpression) (runtime.Value, *runtime.Throw) {
	if a.Operator == "=" {
		v, thr := ev.evalExpression(env, a.Value)
		if thr != nil {
			return nil, thr
		}
		if thr := ev.assignTo(env, a.Target, v); thr != nil {
			return nil, thr
		}
		return v, nil
	}
	if a.Operator == "&&=" || a.Operator == "||=" || a.Operator == "??=" {
		cur, thr := ev.evalExpression(env, a.Target)
		if thr != nil {
			return nil, thr
		}
		skip := false
		switch a.Operator {
		case "&&=":
			skip = !ToBoolean(cur)
		case "||=":
			skip = ToBoolean(cur)
		case "??=":
			skip = !IsNullish(cur)
		}
		if skip {
			return cur, nil
		}
		v, thr := ev.evalExpression(env, a.Value)
		if thr != nil {
			return nil, thr
		}
		if thr := ev.assignTo(env, a.Target, v); thr != nil {
			return nil, thr
		}
		return v, nil
	}
	cur, thr := ev.evalExpression(env, a.Target)
	if thr != nil {
		return nil, thr
	}
	rhs, thr := ev.evalExpression(env, a.Value)
	if thr != nil {
		return nil, thr
	}
	op := strings.TrimSuffix(a.Operator, "=")
	result, thr := applyBinaryOp(op, cur, rhs)
	if thr != nil {
		return nil, thr
	}
	if thr := ev.assignTo(env, a.Target, result); thr != nil {
		return nil, thr
	}
	return result, nil
}

// assignTo writes v to an assignment target expression. It handles an
// Identifier or a MemberExpression; any other target, including the
// array/object destructuring forms the parser accepts (see
// internal/parser/expressions.go), throws a TypeError.
func (ev *evaluator) assignTo(env *runtime.Environment, target ast.Expression, v runtime.Value) *runtime.Throw {
	switch t := target.(type) {
	case *ast.Identifier:
		if err := env.SetMutableBinding(t.Name, v, false); err != nil {
			return referenceThrow(err)
		}
		return nil
	case *ast.MemberExpression:
		objVal, thr := ev.evalExpression(env, t.Object)
		if thr != nil {
			return thr
		}
		key, thr := ev.memberKey(env, t)
		if thr != nil {
			return thr
		}
		obj, ok := objVal.(*runtime.Object)
		if !ok {
			return &runtime.Throw{Value: runtime.String("TypeError: Cannot set property of non-object")}
		}
		_, thr = obj.Set(key, v, obj)
		return thr
	}
	return &runtime.Throw{Value: runtime.String("TypeError: invalid assignment target")}
}

func (ev *evaluator) memberKey(env *runtime.Environment, m *ast.MemberExpression) (runtime.PropertyKey, *runtime.Throw) {
	return ev.propertyKeyOf(env, m.Property, m.Computed)
}

// evalMember evaluates a MemberExpression, returning both the value
// and the resolved object (for CallExpression's `this` binding).
func (ev *evaluator) evalMember(env *runtime.Environment, m *ast.MemberExpression) (runtime.Value, runtime.Value, *runtime.Throw) {
	if _, ok := m.Object.(*ast.SuperExpression); ok {
		return ev.evalSuperMember(env, m)
	}
	objVal, thr := ev.evalExpression(env, m.Object)
	if thr != nil {
		return nil, nil, thr
	}
	if m.Optional && IsNullish(objVal) {
		return runtime.UndefinedValue, nil, nil
	}
	key, thr := ev.memberKey(env, m)
	if thr != nil {
		return nil, nil, thr
	}
	switch obj := objVal.(type) {
	case *runtime.Object:
		if obj.Class() == runtime.StringObject {
			if v, ok := ev.boxedStringMember(obj, key); ok {
				return v, obj, nil
			}
		}
		v, thr := obj.Get(key, obj)
		return v, obj, thr
	case runtime.String:
		return ev.stringMember(obj, key), objVal, nil
	default:
		if IsNullish(objVal) {
			return nil, nil, &runtime.Throw{Value: runtime.String("TypeError: Cannot read properties of " + objVal.Type())}
		}
		boxed, thr := ev.realm.ToObject(objVal)
		if thr != nil {
			return nil, nil, thr
		}
		v, thr := boxed.Get(key, objVal)
		return v, objVal, thr
	}
}

// evalSuperMember resolves `super.prop`/`super[expr]`: the lookup
// starts at the enclosing method's [[HomeObject]].[[Prototype]], but
// the receiver passed to an accessor getter (and returned as the
// CallExpression `this`, for `super.method()`) is the current `this`,
// never the prototype object (spec.md §4.6's MakeSuperPropertyReference).
func (ev *evaluator) evalSuperMember(env *runtime.Environment, m *ast.MemberExpression) (runtime.Value, runtime.Value, *runtime.Throw) {
	home := env.HomeObject()
	if home == nil {
		return nil, nil, &runtime.Throw{Value: runtime.String("SyntaxError: 'super' keyword is only valid inside a method")}
	}
	key, thr := ev.memberKey(env, m)
	if thr != nil {
		return nil, nil, thr
	}
	this := env.ThisBinding()
	proto := home.Prototype()
	if proto == nil {
		return runtime.UndefinedValue, this, nil
	}
	v, thr := proto.Get(key, this)
	return v, this, thr
}

// boxedStringMember mirrors stringMember for a `new String(...)`
// wrapper object: `.length` and numeric indexing read through the
// object's [[PrimitiveValue]] rather than its own property map, which
// never carries them (spec.md §8 scenarios #1/#2). Returns ok=false for
// every other key, so the caller falls through to the ordinary
// prototype-chain Get (own properties, then String.prototype methods).
func (ev *evaluator) boxedStringMember(obj *runtime.Object, key runtime.PropertyKey) (runtime.Value, bool) {
	s, ok := obj.Primitive.(runtime.String)
	if !ok || key.IsSymbol() {
		return nil, false
	}
	if key.String() == "length" {
		return runtime.Number(runtime.UTF16Len(string(s))), true
	}
	if idx, ok := indexOfKey(key); ok {
		units := runtime.UTF16Units(string(s))
		if idx >= 0 && idx < len(units) {
			return runtime.String(units[idx]), true
		}
		return runtime.UndefinedValue, true
	}
	return nil, false
}

// stringMember implements the handful of String-primitive property
// reads that do not require boxing into a String wrapper object:
// `.length` and numeric indexing (code-unit based, spec.md §4.2).
func (ev *evaluator) stringMember(s runtime.String, key runtime.PropertyKey) runtime.Value {
	if key.IsSymbol() {
		return runtime.UndefinedValue
	}
	if key.String() == "length" {
		return runtime.Number(runtime.UTF16Len(string(s)))
	}
	if idx, ok := indexOfKey(key); ok {
		units := runtime.UTF16Units(string(s))
		if idx >= 0 && idx < len(units) {
			return runtime.String(units[idx])
		}
		return runtime.UndefinedValue
	}
	if proto := ev.realm.StringPrototype; proto != nil {
		v, _ := proto.Get(key, proto)
		return v
	}
	return runtime.UndefinedValue
}

func indexOfKey(key runtime.PropertyKey) (int, bool) {
	s := key.String()
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
