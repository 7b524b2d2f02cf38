// Package builtins installs the standard library of global bindings
// and prototype methods onto a freshly constructed interp.Realm,
// implementing spec.md §4.7's "Builtins/Intrinsics" surface. It
// depends on interp (rather than the reverse) so interp.Realm's own
// bootstrap can stay free of any particular builtin's implementation
// details -- the same layering go-dws uses between internal/interp
// and its internal/stdlib registration functions.
package builtins

import (
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cwbudde-lumen/lumen/internal/interp"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// Install wires every built-in global, constructor, and prototype
// method onto r. Call it once, immediately after interp.NewRealm.
func Install(r *interp.Realm) {
	installObject(r)
	installFunction(r)
	installArray(r)
	installString(r)
	installNumber(r)
	installBoolean(r)
	installMath(r)
	installErrors(r)
	installGlobalFunctions(r)
	installConsole(r)
}

func method(r *interp.Realm, target *runtime.Object, name string, length int, fn runtime.NativeFunc) {
	f := r.NewFunction(name, length, fn)
	target.DefineOwnProperty(runtime.StringKey(name), runtime.NonEnumerableData(f))
}

func arg(args []runtime.Value, i int) runtime.Value {
	if i < len(args) {
		return args[i]
	}
	return runtime.UndefinedValue
}

func thisObject(this runtime.Value) (*runtime.Object, *runtime.Throw) {
	obj, ok := this.(*runtime.Object)
	if !ok {
		return nil, &runtime.Throw{Value: runtime.String("TypeError: this is not an object")}
	}
	return obj, nil
}

func throwType(msg string) *runtime.Throw {
	return &runtime.Throw{Value: runtime.String("TypeError: " + msg)}
}

func num(n int) runtime.Value { return runtime.Number(float64(n)) }

// ---- Math -------------------------------------------------------

func installMath(r *interp.Realm) {
	m := runtime.NewObject(r.ObjectPrototype)
	r.Global.DefineOwnProperty(runtime.StringKey("Math"), runtime.NonEnumerableData(m))

	m.DefineOwnProperty(runtime.StringKey("PI"), &runtime.PropertyDescriptor{Value: runtime.Number(math.Pi)})
	m.DefineOwnProperty(runtime.StringKey("E"), &runtime.PropertyDescriptor{Value: runtime.Number(math.E)})
	m.DefineOwnProperty(runtime.StringKey("LN2"), &runtime.PropertyDescriptor{Value: runtime.Number(math.Ln2)})
	m.DefineOwnProperty(runtime.StringKey("LN10"), &runtime.PropertyDescriptor{Value: runtime.Number(math.Log(10))})
	m.DefineOwnProperty(runtime.StringKey("SQRT2"), &runtime.PropertyDescriptor{Value: runtime.Number(math.Sqrt2)})

	unary := func(name string, fn func(float64) float64) {
		method(r, m, name, 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
			return runtime.Number(fn(float64(interp.ToNumber(arg(args, 0))))), nil
		})
	}
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("trunc", math.Trunc)
	unary("sqrt", math.Sqrt)
	unary("cbrt", math.Cbrt)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("atan", math.Atan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("log", math.Log)
	unary("log2", math.Log2)
	unary("log10", math.Log10)
	unary("exp", math.Exp)
	unary("sign", func(f float64) float64 {
		switch {
		case f > 0:
			return 1
		case f < 0:
			return -1
		default:
			return f
		}
	})
	unary("round", func(f float64) float64 { return math.Floor(f + 0.5) })

	method(r, m, "pow", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.Number(math.Pow(float64(interp.ToNumber(arg(args, 0))), float64(interp.ToNumber(arg(args, 1))))), nil
	})
	method(r, m, "atan2", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.Number(math.Atan2(float64(interp.ToNumber(arg(args, 0))), float64(interp.ToNumber(arg(args, 1))))), nil
	})
	method(r, m, "hypot", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		sum := 0.0
		for _, a := range args {
			v := float64(interp.ToNumber(a))
			sum += v * v
		}
		return runtime.Number(math.Sqrt(sum)), nil
	})
	method(r, m, "max", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		if len(args) == 0 {
			return runtime.NegativeInfinity, nil
		}
		best := math.Inf(-1)
		for _, a := range args {
			n := float64(interp.ToNumber(a))
			if math.IsNaN(n) {
				return runtime.NaN, nil
			}
			if n > best {
				best = n
			}
		}
		return runtime.Number(best), nil
	})
	method(r, m, "min", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		if len(args) == 0 {
			return runtime.PositiveInfinity, nil
		}
		best := math.Inf(1)
		for _, a := range args {
			n := float64(interp.ToNumber(a))
			if math.IsNaN(n) {
				return runtime.NaN, nil
			}
			if n < best {
				best = n
			}
		}
		return runtime.Number(best), nil
	})
	method(r, m, "random", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.Number(rand.Float64()), nil
	})
}

// ---- console ------------------------------------------------------

// installConsole adds a minimal console global (log/error/warn/info)
// that formats its arguments via Display and writes through the
// Realm's zap.Logger (console.error at error level, console.warn at
// warn level, everything else at debug level), so a host
// embedding the interpreter can capture script output in its own log
// pipeline instead of the interpreter writing to stdout directly.
func installConsole(r *interp.Realm) {
	console := runtime.NewObject(r.ObjectPrototype)
	r.Global.DefineOwnProperty(runtime.StringKey("console"), runtime.NonEnumerableData(console))
	logger := r.Logger()
	logFn := func(level string) runtime.NativeFunc {
		return func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = Display(a)
			}
			line := strings.Join(parts, " ")
			switch level {
			case "error":
				logger.Error(line, zap.String("console", level))
			case "warn":
				logger.Warn(line, zap.String("console", level))
			default:
				logger.Debug(line, zap.String("console", level))
			}
			return runtime.UndefinedValue, nil
		}
	}
	method(r, console, "log", 0, logFn("log"))
	method(r, console, "info", 0, logFn("info"))
	method(r, console, "warn", 0, logFn("warn"))
	method(r, console, "error", 0, logFn("error"))
}

// ---- globals: parseInt/parseFloat/isNaN/isFinite -------------------

func installGlobalFunctions(r *interp.Realm) {
	g := r.Global
	g.DefineOwnProperty(runtime.StringKey("parseInt"), runtime.NonEnumerableData(r.NewFunction("parseInt", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		s, thr := interp.ToStringValue(arg(args, 0))
		if thr != nil {
			return nil, thr
		}
		str := strings.TrimSpace(string(s))
		radix := 10
		if len(args) > 1 {
			if r := int(interp.ToNumber(args[1])); r != 0 {
				radix = r
			}
		}
		neg := false
		if strings.HasPrefix(str, "-") {
			neg = true
			str = str[1:]
		} else if strings.HasPrefix(str, "+") {
			str = str[1:]
		}
		if (radix == 16 || radix == 10) && (strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X")) {
			str = str[2:]
			radix = 16
		}
		end := 0
		for end < len(str) && isRadixDigit(str[end], radix) {
			end++
		}
		if end == 0 {
			return runtime.NaN, nil
		}
		n, err := strconv.ParseInt(str[:end], radix, 64)
		if err != nil {
			return runtime.NaN, nil
		}
		if neg {
			n = -n
		}
		return runtime.Number(float64(n)), nil
	})))

	g.DefineOwnProperty(runtime.StringKey("parseFloat"), runtime.NonEnumerableData(r.NewFunction("parseFloat", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		s, thr := interp.ToStringValue(arg(args, 0))
		if thr != nil {
			return nil, thr
		}
		str := strings.TrimSpace(string(s))
		end := 0
		seenDot, seenExp := false, false
		for end < len(str) {
			c := str[end]
			if c >= '0' && c <= '9' {
				end++
				continue
			}
			if c == '.' && !seenDot && !seenExp {
				seenDot = true
				end++
				continue
			}
			if (c == 'e' || c == 'E') && !seenExp && end > 0 {
				seenExp = true
				end++
				if end < len(str) && (str[end] == '+' || str[end] == '-') {
					end++
				}
				continue
			}
			if (c == '+' || c == '-') && end == 0 {
				end++
				continue
			}
			break
		}
		if end == 0 {
			return runtime.NaN, nil
		}
		f, err := strconv.ParseFloat(str[:end], 64)
		if err != nil {
			return runtime.NaN, nil
		}
		return runtime.Number(f), nil
	})))

	g.DefineOwnProperty(runtime.StringKey("isNaN"), runtime.NonEnumerableData(r.NewFunction("isNaN", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		return runtime.Boolean(interp.ToNumber(arg(args, 0)).IsNaN()), nil
	})))
	g.DefineOwnProperty(runtime.StringKey("isFinite"), runtime.NonEnumerableData(r.NewFunction("isFinite", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		n := float64(interp.ToNumber(arg(args, 0)))
		return runtime.Boolean(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
	})))
}

func isRadixDigit(c byte, radix int) bool {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return false
	}
	return v < radix
}

// Display renders v the way console output does: a top-level string as
// its plain text, bracketed arrays and braced objects whose string
// elements and property values are single-quoted -- distinct from ToStringValue,
// which implements the language-level ToString coercion used by `+`
// and template literals (spec.md §6's display-vs-ToString split).
func Display(v runtime.Value) string {
	switch x := v.(type) {
	case runtime.String:
		return string(x)
	case *runtime.Object:
		if x.Class() == runtime.ArrayObject {
			return displayArray(x)
		}
		return displayObject(x)
	default:
		return v.String()
	}
}

func displayArray(o *runtime.Object) string {
	lengthVal, _ := o.Get(runtime.StringKey("length"), o)
	n := int(interp.ToNumber(lengthVal))
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		item, _ := o.Get(runtime.StringKey(strconv.Itoa(i)), o)
		parts[i] = quoteIfString(item)
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}

func displayObject(o *runtime.Object) string {
	var parts []string
	for _, k := range o.OwnKeys() {
		if k.IsSymbol() {
			continue
		}
		desc, _ := o.GetOwnProperty(k)
		if desc == nil || !desc.Enumerable {
			continue
		}
		v, _ := o.Get(k, o)
		parts = append(parts, k.String()+": "+quoteIfString(v))
	}
	sort.Strings(parts)
	return "{ " + strings.Join(parts, ", ") + " }"
}

func quoteIfString(v runtime.Value) string {
	if s, ok := v.(runtime.String); ok {
		return "'" + string(s) + "'"
	}
	return Display(v)
}
