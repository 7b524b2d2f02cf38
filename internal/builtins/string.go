package builtins

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cwbudde-lumen/lumen/internal/interp"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// maxStringLength bounds String.prototype.repeat's output the way
// real engines bound it against their internal string-length limit
// (spec.md §7/§8's "repeat count must not overflow maximum string
// length" RangeError, grounded on original_source/boa's repeat tests).
const maxStringLength = math.MaxInt32

func thisString(this runtime.Value) (string, *runtime.Throw) {
	switch x := this.(type) {
	case runtime.String:
		return string(x), nil
	case *runtime.Object:
		if x.Class() == runtime.StringObject {
			if s, ok := x.Primitive.(runtime.String); ok {
				return string(s), nil
			}
		}
	}
	s, thr := interp.ToStringValue(this)
	return string(s), thr
}

// installString wires the String constructor (String.fromCharCode)
// and String.prototype's UTF-16-code-unit-aware methods (spec.md
// §4.2 requires code-unit indexing, not rune indexing, for `.length`
// and character access -- see internal/runtime/strutil.go).
func installString(r *interp.Realm) {
	proto := r.StringPrototype

	ctor := r.NewFunction("String", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		if len(args) == 0 {
			return runtime.String(""), nil
		}
		s, thr := interp.ToStringValue(args[0])
		return s, thr
	})
	ctor.ConstructFn = func(newTarget runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		var s runtime.String
		if len(args) > 0 {
			v, thr := interp.ToStringValue(args[0])
			if thr != nil {
				return nil, thr
			}
			s = v
		}
		boxed := runtime.NewObjectOfClass(proto, runtime.StringObject)
		boxed.Primitive = s
		return boxed, nil
	}
	ctor.DefineOwnProperty(runtime.StringKey("prototype"), &runtime.PropertyDescriptor{Value: proto})
	proto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.NonEnumerableData(ctor))
	r.Global.DefineOwnProperty(runtime.StringKey("String"), runtime.NonEnumerableData(ctor))

	method(r, ctor, "fromCharCode", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		var sb strings.Builder
		for _, a := range args {
			sb.WriteRune(rune(int(interp.ToNumber(a))))
		}
		return runtime.String(sb.String()), nil
	})

	strMethod := func(name string, length int, fn func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw)) {
		method(r, proto, name, length, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
			s, thr := thisString(this)
			if thr != nil {
				return nil, thr
			}
			return fn(s, args)
		})
	}

	strMethod("charAt", 1, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		units := runtime.UTF16Units(s)
		i := int(interp.ToNumber(arg(args, 0)))
		if i < 0 || i >= len(units) {
			return runtime.String(""), nil
		}
		return runtime.String(units[i]), nil
	})
	strMethod("charCodeAt", 1, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		units := runtime.UTF16Units(s)
		i := int(interp.ToNumber(arg(args, 0)))
		if i < 0 || i >= len(units) {
			return runtime.NaN, nil
		}
		return runtime.Number([]rune(units[i])[0]), nil
	})
	strMethod("at", 1, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		units := runtime.UTF16Units(s)
		i := int(interp.ToNumber(arg(args, 0)))
		if i < 0 {
			i += len(units)
		}
		if i < 0 || i >= len(units) {
			return runtime.UndefinedValue, nil
		}
		return runtime.String(units[i]), nil
	})
	strMethod("indexOf", 1, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		sub, thr := interp.ToStringValue(arg(args, 0))
		if thr != nil {
			return nil, thr
		}
		i := strings.Index(s, string(sub))
		if i < 0 {
			return num(-1), nil
		}
		return num(runtime.UTF16Len(s[:i])), nil
	})
	strMethod("lastIndexOf", 1, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		sub, thr := interp.ToStringValue(arg(args, 0))
		if thr != nil {
			return nil, thr
		}
		i := strings.LastIndex(s, string(sub))
		if i < 0 {
			return num(-1), nil
		}
		return num(runtime.UTF16Len(s[:i])), nil
	})
	strMethod("includes", 1, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		sub, thr := interp.ToStringValue(arg(args, 0))
		if thr != nil {
			return nil, thr
		}
		return runtime.Boolean(strings.Contains(s, string(sub))), nil
	})
	strMethod("startsWith", 1, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		sub, thr := interp.ToStringValue(arg(args, 0))
		if thr != nil {
			return nil, thr
		}
		return runtime.Boolean(strings.HasPrefix(s, string(sub))), nil
	})
	strMethod("endsWith", 1, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		sub, thr := interp.ToStringValue(arg(args, 0))
		if thr != nil {
			return nil, thr
		}
		return runtime.Boolean(strings.HasSuffix(s, string(sub))), nil
	})
	strMethod("slice", 2, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		units := runtime.UTF16Units(s)
		start, end := sliceBounds(args, len(units))
		if start >= end {
			return runtime.String(""), nil
		}
		return runtime.String(strings.Join(units[start:end], "")), nil
	})
	strMethod("substring", 2, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		units := runtime.UTF16Units(s)
		n := len(units)
		start := clamp(int(interp.ToNumber(arg(args, 0))), 0, n)
		end := n
		if len(args) > 1 && !interp.IsNullish(args[1]) {
			end = clamp(int(interp.ToNumber(args[1])), 0, n)
		}
		if start > end {
			start, end = end, start
		}
		return runtime.String(strings.Join(units[start:end], "")), nil
	})
	strMethod("toUpperCase", 0, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.String(upperCaser.String(s)), nil
	})
	strMethod("toLowerCase", 0, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.String(lowerCaser.String(s)), nil
	})
	strMethod("trim", 0, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.String(strings.TrimSpace(s)), nil
	})
	strMethod("trimStart", 0, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.String(strings.TrimLeft(s, " \t\n\r\v\f")), nil
	})
	strMethod("trimEnd", 0, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.String(strings.TrimRight(s, " \t\n\r\v\f")), nil
	})
	strMethod("repeat", 1, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		count := interp.ToNumber(arg(args, 0))
		if float64(count) < 0 {
			return nil, &runtime.Throw{Value: runtime.String("RangeError: repeat count cannot be a negative number")}
		}
		if math.IsInf(float64(count), 1) {
			return nil, &runtime.Throw{Value: runtime.String("RangeError: repeat count cannot be infinity")}
		}
		n := int(count)
		if n != 0 && len(s) > maxStringLength/n {
			return nil, &runtime.Throw{Value: runtime.String("RangeError: repeat count must not overflow maximum string length")}
		}
		return runtime.String(strings.Repeat(s, n)), nil
	})
	strMethod("concat", 1, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		var sb strings.Builder
		sb.WriteString(s)
		for _, a := range args {
			v, thr := interp.ToStringValue(a)
			if thr != nil {
				return nil, thr
			}
			sb.WriteString(string(v))
		}
		return runtime.String(sb.String()), nil
	})
	strMethod("padStart", 2, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.String(pad(s, args, true)), nil
	})
	strMethod("padEnd", 2, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.String(pad(s, args, false)), nil
	})
	strMethod("split", 2, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		if len(args) == 0 || interp.IsNullish(args[0]) {
			return arrayOf(r, []runtime.Value{runtime.String(s)}), nil
		}
		sep, thr := interp.ToStringValue(args[0])
		if thr != nil {
			return nil, thr
		}
		var parts []string
		if sep == "" {
			parts = runtime.UTF16Units(s)
		} else {
			parts = strings.Split(s, string(sep))
		}
		items := make([]runtime.Value, len(parts))
		for i, p := range parts {
			items[i] = runtime.String(p)
		}
		return arrayOf(r, items), nil
	})
	strMethod("replace", 2, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return replaceImpl(s, args, false)
	})
	strMethod("replaceAll", 2, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return replaceImpl(s, args, true)
	})
	strMethod("toString", 0, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.String(s), nil
	})
	strMethod("valueOf", 0, func(s string, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.String(s), nil
	})
}

func replaceImpl(s string, args []runtime.Value, all bool) (runtime.Value, *runtime.Throw) {
	pattern, thr := interp.ToStringValue(arg(args, 0))
	if thr != nil {
		return nil, thr
	}
	if cb, ok := arg(args, 1).(*runtime.Object); ok && cb.IsCallable() {
		count := -1
		if !all {
			count = 1
		}
		remaining := count
		result := s
		idx := strings.Index(result, string(pattern))
		out := strings.Builder{}
		cursor := 0
		for idx != -1 && remaining != 0 {
			abs := cursor + idx
			out.WriteString(result[cursor:abs])
			res, thr := cb.Call(runtime.UndefinedValue, []runtime.Value{pattern, num(runtime.UTF16Len(s[:abs])), runtime.String(s)})
			if thr != nil {
				return nil, thr
			}
			rs, thr := interp.ToStringValue(res)
			if thr != nil {
				return nil, thr
			}
			out.WriteString(string(rs))
			cursor = abs + len(pattern)
			if remaining > 0 {
				remaining--
			}
			rest := result[cursor:]
			next := strings.Index(rest, string(pattern))
			idx = next
		}
		out.WriteString(result[cursor:])
		return runtime.String(out.String()), nil
	}
	repl, thr := interp.ToStringValue(arg(args, 1))
	if thr != nil {
		return nil, thr
	}
	if all {
		return runtime.String(strings.ReplaceAll(s, string(pattern), string(repl))), nil
	}
	return runtime.String(strings.Replace(s, string(pattern), string(repl), 1)), nil
}

func pad(s string, args []runtime.Value, start bool) string {
	target := int(interp.ToNumber(arg(args, 0)))
	padStr := " "
	if len(args) > 1 {
		v, thr := interp.ToStringValue(args[1])
		if thr == nil && v != "" {
			padStr = string(v)
		}
	}
	units := runtime.UTF16Units(s)
	if len(units) >= target || padStr == "" {
		return s
	}
	need := target - len(units)
	var sb strings.Builder
	for sb.Len() < need {
		sb.WriteString(padStr)
	}
	fill := sb.String()
	fillUnits := runtime.UTF16Units(fill)
	if len(fillUnits) > need {
		fill = strings.Join(fillUnits[:need], "")
	}
	if start {
		return fill + s
	}
	return s + fill
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
