package interp

import (
	"github.com/cwbudde-lumen/lumen/internal/ast"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// evalClassDeclaration binds a class declaration's name to its
// constructor, per spec.md §4.6 (hoistBlock already reserved the
// binding in the TDZ).
func (ev *evaluator) evalClassDeclaration(env *runtime.Environment, cls *ast.ClassLiteral) Completion {
	ctor, thr := ev.buildClass(env, cls)
	if thr != nil {
		return thrown(thr.Value)
	}
	if cls.Name != nil {
		env.Initialize(cls.Name.Name, ctor)
	}
	return normal()
}

func (ev *evaluator) evalClassExpr(env *runtime.Environment, cls *ast.ClassLiteral) (runtime.Value, *runtime.Throw) {
	return ev.buildClass(env, cls)
}

// buildClass constructs a class's constructor function object and
// prototype, wiring instance methods/accessors onto the prototype and
// static members onto the constructor itself, and instance field
// initializers to run at the top of the (possibly implicit)
// constructor body (spec.md §4.6's class semantics).
func (ev *evaluator) buildClass(env *runtime.Environment, cls *ast.ClassLiteral) (*runtime.Object, *runtime.Throw) {
	var superCtor *runtime.Object
	protoParent := ev.realm.ObjectPrototype
	if cls.SuperClass != nil {
		superVal, thr := ev.evalExpression(env, cls.SuperClass)
		if thr != nil {
			return nil, thr
		}
		sc, ok := superVal.(*runtime.Object)
		if !ok || !sc.IsConstructor() {
			return nil, &runtime.Throw{Value: runtime.String("TypeError: Class extends value is not a constructor")}
		}
		superCtor = sc
		if spv, thr := sc.Get(runtime.StringKey("prototype"), sc); thr == nil {
			if sp, ok := spv.(*runtime.Object); ok {
				protoParent = sp
			}
		}
	}

	proto := runtime.NewObject(protoParent)

	var fieldInits []*ast.ClassMember
	var ctorMember *ast.ClassMember
	for _, m := range cls.Members {
		if m.Kind == ast.ClassField {
			if !m.Static {
				fieldInits = append(fieldInits, m)
			}
			continue
		}
		if m.IsConstructor {
			ctorMember = m
		}
	}

	classEnv := runtime.NewDeclarativeEnvironment(env)

	var ctor *runtime.Object
	ctor = runtime.NewObjectOfClass(ev.realm.FunctionPrototype, runtime.FunctionObject)
	if superCtor != nil {
		ctor.SetPrototype(superCtor)
	}
	ctor.DefineOwnProperty(runtime.StringKey("prototype"), &runtime.PropertyDescriptor{Value: proto})
	proto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.DataProperty(ctor))
	name := ""
	if cls.Name != nil {
		name = cls.Name.Name
		classEnv.DeclareImmutable(name)
		classEnv.Initialize(name, ctor)
	}
	ctor.DefineOwnProperty(runtime.StringKey("name"), &runtime.PropertyDescriptor{Value: runtime.String(name), Configurable: true})
	ctor.HomeObject = proto
	ctor.SuperCtor = superCtor

	ctor.ConstructFn = func(newTarget runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Throw) {
		instance := runtime.NewObject(proto)
		if superCtor != nil && ctorMember == nil {
			superResult, thr := superCtor.Construct(args, superCtor)
			if thr != nil {
				return nil, thr
			}
			if superInstance, ok := superResult.(*runtime.Object); ok {
				for _, k := range superInstance.OwnKeys() {
					if desc, ok := superInstance.GetOwnProperty(k); ok {
						instance.DefineOwnProperty(k, desc)
					}
				}
			}
		}
		if thr := ev.runFieldInits(classEnv, instance, fieldInits); thr != nil {
			return nil, thr
		}
		if ctorMember == nil {
			return instance, nil
		}
		sub := &evaluator{realm: ev.realm}
		_, thr := sub.invoke(classEnv, ctorMember.Value, ctor, instance, args, true)
		if thr != nil {
			return nil, thr
		}
		return instance, nil
	}

	for _, m := range cls.Members {
		if m.Kind == ast.ClassField {
			if m.Static {
				target := ctor
				key, thr := ev.propertyKeyOf(classEnv, m.Key, m.Computed)
				if thr != nil {
					return nil, thr
				}
				var v runtime.Value = runtime.UndefinedValue
				if m.FieldInit != nil {
					val, thr := ev.evalExpression(classEnv, m.FieldInit)
					if thr != nil {
						return nil, thr
					}
					v = val
				}
				target.DefineOwnProperty(key, runtime.DataProperty(v))
			}
			continue
		}
		if m.IsConstructor {
			continue
		}
		target := proto
		if m.Static {
			target = ctor
		}
		key, thr := ev.propertyKeyOf(classEnv, m.Key, m.Computed)
		if thr != nil {
			return nil, thr
		}
		fn := ev.makeClosure(classEnv, m.Value)
		fn.HomeObject = target
		switch m.Kind {
		case ast.ClassGetter, ast.ClassSetter:
			existing, _ := target.GetOwnProperty(key)
			var get, set *runtime.Object
			if existing != nil && existing.IsAccessor {
				get, set = existing.Get, existing.Set
			}
			if m.Kind == ast.ClassGetter {
				get = fn
			} else {
				set = fn
			}
			target.DefineOwnProperty(key, runtime.AccessorProperty(get, set, false, true))
		default:
			target.DefineOwnProperty(key, runtime.NonEnumerableData(fn))
		}
	}

	return ctor, nil
}

func (ev *evaluator) runFieldInits(classEnv *runtime.Environment, instance *runtime.Object, fields []*ast.ClassMember) *runtime.Throw {
	for _, f := range fields {
		key, thr := ev.propertyKeyOf(classEnv, f.Key, f.Computed)
		if thr != nil {
			return thr
		}
		var v runtime.Value = runtime.UndefinedValue
		if f.FieldInit != nil {
			fieldEnv := runtime.NewFunctionEnvironment(classEnv, instance)
			val, thr := ev.evalExpression(fieldEnv, f.FieldInit)
			if thr != nil {
				return thr
			}
			v = val
		}
		instance.DefineOwnProperty(key, runtime.DataProperty(v))
	}
	return nil
}
