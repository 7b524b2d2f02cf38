package interp

import (
	"github.com/cwbudde-lumen/lumen/internal/ast"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// evaluator carries the per-Eval-call mutable state the tree-walk
// needs beyond the Realm itself: the last top-level expression's value
// (spec.md §6's "completion value of the script"), threaded through
// without polluting Realm, which outlives any one Eval call.
type evaluator struct {
	realm               *Realm
	lastExpressionValue runtime.Value
}

func thrown(v runtime.Value) Completion { return throwC(v) }

// evalStatement evaluates one Statement, returning its completion
// record (spec.md §4.6).
func (ev *evaluator) evalStatement(env *runtime.Environment, stmt ast.Statement) Completion {
	if thr := ev.realm.tick(); thr != nil {
		return thrown(thr.Value)
	}
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		v, thr := ev.evalExpression(env, s.Expression)
		if thr != nil {
			return thrown(thr.Value)
		}
		ev.lastExpressionValue = v
		return normal()
	case *ast.VariableDeclaration:
		return ev.evalVariableDeclaration(env, s)
	case *ast.BlockStatement:
		blockEnv := runtime.NewDeclarativeEnvironment(env)
		ev.hoistBlock(blockEnv, s.Body, false)
		return ev.evalStatements(blockEnv, s.Body)
	case *ast.IfStatement:
		test, thr := ev.evalExpression(env, s.Test)
		if thr != nil {
			return thrown(thr.Value)
		}
		if ToBoolean(test) {
			return ev.evalStatement(env, s.Consequent)
		}
		if s.Alternate != nil {
			return ev.evalStatement(env, s.Alternate)
		}
		return normal()
	case *ast.WhileStatement:
		return ev.evalWhile(env, s, "")
	case *ast.DoWhileStatement:
		return ev.evalDoWhile(env, s, "")
	case *ast.ForStatement:
		return ev.evalFor(env, s, "")
	case *ast.ForInStatement:
		return ev.evalForIn(env, s, "")
	case *ast.ForOfStatement:
		return ev.evalForOf(env, s, "")
	case *ast.SwitchStatement:
		return ev.evalSwitch(env, s)
	case *ast.TryStatement:
		return ev.evalTry(env, s)
	case *ast.ThrowStatement:
		v, thr := ev.evalExpression(env, s.Argument)
		if thr != nil {
			return thrown(thr.Value)
		}
		return thrown(v)
	case *ast.ReturnStatement:
		if s.Argument == nil {
			return returnC(runtime.UndefinedValue)
		}
		v, thr := ev.evalExpression(env, s.Argument)
		if thr != nil {
			return thrown(thr.Value)
		}
		return returnC(v)
	case *ast.BreakStatement:
		if s.Label != nil {
			return breakC(s.Label.Name)
		}
		return breakC("")
	case *ast.ContinueStatement:
		if s.Label != nil {
			return continueC(s.Label.Name)
		}
		return continueC("")
	case *ast.LabeledStatement:
		return ev.evalLabeled(env, s)
	case *ast.FunctionLiteral:
		return normal() // already hoisted
	case *ast.ClassLiteral:
		return ev.evalClassDeclaration(env, s)
	case *ast.EmptyStatement, *ast.DebuggerStatement:
		return normal()
	default:
		return normal()
	}
}

// evalStatements runs a statement list in order, stopping at the
// first abrupt completion.
func (ev *evaluator) evalStatements(env *runtime.Environment, stmts []ast.Statement) Completion {
	for _, stmt := range stmts {
		c := ev.evalStatement(env, stmt)
		if c.abrupt() {
			return c
		}
	}
	return normal()
}

func (ev *evaluator) evalVariableDeclaration(env *runtime.Environment, decl *ast.VariableDeclaration) Completion {
	for _, d := range decl.Declarators {
		var val runtime.Value = runtime.UndefinedValue
		if d.Init != nil {
			v, thr := ev.evalExpression(env, d.Init)
			if thr != nil {
				return thrown(thr.Value)
			}
			val = v
		} else if decl.Kind != ast.DeclVar {
			val = runtime.UndefinedValue
		}
		if thr := ev.bindPattern(env, d.Name, val, decl.Kind); thr != nil {
			return thrown(thr.Value)
		}
	}
	return normal()
}

// bindPattern destructures val into name, initializing bindings that
// hoisting already declared (spec.md §4.6's BindingInitialization).
func (ev *evaluator) bindPattern(env *runtime.Environment, pat ast.Pattern, val runtime.Value, kind ast.DeclarationKind) *runtime.Throw {
	switch p := pat.(type) {
	case *ast.Identifier:
		env.Initialize(p.Name, val)
		return nil
	case *ast.DefaultPattern:
		if _, isUndef := val.(runtime.Undefined); isUndef {
			v, thr := ev.evalExpression(env, p.Default)
			if thr != nil {
				return thr
			}
			val = v
		}
		return ev.bindPattern(env, p.Target, val, kind)
	case *ast.ArrayPattern:
		items, thr := ev.iterateToSlice(env, val)
		if thr != nil {
			return thr
		}
		for i, el := range p.Elements {
			if el == nil {
				continue
			}
			if rest, ok := el.(*ast.RestElement); ok {
				remainder := runtime.NewObjectOfClass(ev.realm.ArrayPrototype, runtime.ArrayObject)
				var tail []runtime.Value
				if i < len(items) {
					tail = items[i:]
				}
				ev.fillArray(remainder, tail)
				if thr := ev.bindPattern(env, rest.Target, remainder, kind); thr != nil {
					return thr
				}
				break
			}
			var item runtime.Value = runtime.UndefinedValue
			if i < len(items) {
				item = items[i]
			}
			if thr := ev.bindPattern(env, el, item, kind); thr != nil {
				return thr
			}
		}
		return nil
	case *ast.ObjectPattern:
		used := map[string]bool{}
		for _, prop := range p.Properties {
			key, thr := ev.propertyKeyOf(env, prop.Key, prop.Computed)
			if thr != nil {
				return thr
			}
			used[key.String()] = true
			obj, ok := val.(*runtime.Object)
			var v runtime.Value = runtime.UndefinedValue
			if ok {
				got, thr := obj.Get(key, obj)
				if thr != nil {
					return thr
				}
				v = got
			}
			if thr := ev.bindPattern(env, prop.Value, v, kind); thr != nil {
				return thr
			}
		}
		if p.Rest != nil {
			rest := runtime.NewObject(ev.realm.ObjectPrototype)
			if obj, ok := val.(*runtime.Object); ok {
				for _, k := range obj.OwnKeys() {
					if k.IsSymbol() || used[k.String()] {
						continue
					}
					v, thr := obj.Get(k, obj)
					if thr != nil {
						return thr
					}
					rest.DefineOwnProperty(k, runtime.DataProperty(v))
				}
			}
			if thr := ev.bindPattern(env, p.Rest, rest, kind); thr != nil {
				return thr
			}
		}
		return nil
	}
	return nil
}

func (ev *evaluator) evalWhile(env *runtime.Environment, s *ast.WhileStatement, label string) Completion {
	for {
		if thr := ev.realm.tick(); thr != nil {
			return thrown(thr.Value)
		}
		test, thr := ev.evalExpression(env, s.Test)
		if thr != nil {
			return thrown(thr.Value)
		}
		if !ToBoolean(test) {
			return normal()
		}
		c := ev.evalStatement(env, s.Body)
		if stop, result := handleLoopCompletion(c, label); stop {
			return result
		}
	}
}

func (ev *evaluator) evalDoWhile(env *runtime.Environment, s *ast.DoWhileStatement, label string) Completion {
	for {
		c := ev.evalStatement(env, s.Body)
		if stop, result := handleLoopCompletion(c, label); stop {
			return result
		}
		test, thr := ev.evalExpression(env, s.Test)
		if thr != nil {
			return thrown(thr.Value)
		}
		if !ToBoolean(test) {
			return normal()
		}
	}
}

func (ev *evaluator) evalFor(env *runtime.Environment, s *ast.ForStatement, label string) Completion {
	loopEnv := runtime.NewDeclarativeEnvironment(env)
	if decl, ok := s.Init.(*ast.VariableDeclaration); ok {
		ev.hoistBlock(loopEnv, []ast.Statement{decl}, false)
		if c := ev.evalVariableDeclaration(loopEnv, decl); c.abrupt() {
			return c
		}
	} else if expr, ok := s.Init.(ast.Expression); ok && expr != nil {
		if _, thr := ev.evalExpression(loopEnv, expr); thr != nil {
			return thrown(thr.Value)
		}
	}
	for {
		if thr := ev.realm.tick(); thr != nil {
			return thrown(thr.Value)
		}
		if s.Test != nil {
			test, thr := ev.evalExpression(loopEnv, s.Test)
			if thr != nil {
				return thrown(thr.Value)
			}
			if !ToBoolean(test) {
				return normal()
			}
		}
		c := ev.evalStatement(loopEnv, s.Body)
		if stop, result := handleLoopCompletion(c, label); stop {
			return result
		}
		if s.Update != nil {
			if _, thr := ev.evalExpression(loopEnv, s.Update); thr != nil {
				return thrown(thr.Value)
			}
		}
	}
}

func (ev *evaluator) evalForIn(env *runtime.Environment, s *ast.ForInStatement, label string) Completion {
	rightVal, thr := ev.evalExpression(env, s.Right)
	if thr != nil {
		return thrown(thr.Value)
	}
	obj, ok := rightVal.(*runtime.Object)
	if !ok {
		return normal()
	}
	for _, key := range obj.OwnKeys() {
		if key.IsSymbol() {
			continue
		}
		desc, _ := obj.GetOwnProperty(key)
		if desc != nil && !desc.Enumerable {
			continue
		}
		iterEnv := runtime.NewDeclarativeEnvironment(env)
		if thr := ev.bindForTarget(iterEnv, s.Left, runtime.String(key.String())); thr != nil {
			return thrown(thr.Value)
		}
		c := ev.evalStatement(iterEnv, s.Body)
		if stop, result := handleLoopCompletion(c, label); stop {
			return result
		}
	}
	return normal()
}

func (ev *evaluator) evalForOf(env *runtime.Environment, s *ast.ForOfStatement, label string) Completion {
	rightVal, thr := ev.evalExpression(env, s.Right)
	if thr != nil {
		return thrown(thr.Value)
	}
	items, thr := ev.iterateToSlice(env, rightVal)
	if thr != nil {
		return thrown(thr.Value)
	}
	for _, item := range items {
		iterEnv := runtime.NewDeclarativeEnvironment(env)
		if thr := ev.bindForTarget(iterEnv, s.Left, item); thr != nil {
			return thrown(thr.Value)
		}
		c := ev.evalStatement(iterEnv, s.Body)
		if stop, result := handleLoopCompletion(c, label); stop {
			return result
		}
	}
	return normal()
}

// bindForTarget binds item to the for-in/for-of head, which is either
// a single-declarator VariableDeclaration or a bare assignment target
// expression.
func (ev *evaluator) bindForTarget(env *runtime.Environment, left ast.Node, item runtime.Value) *runtime.Throw {
	switch n := left.(type) {
	case *ast.VariableDeclaration:
		ev.hoistBlock(env, []ast.Statement{n}, false)
		return ev.bindPattern(env, n.Declarators[0].Name, item, n.Kind)
	case ast.Expression:
		return ev.assignTo(env, n, item)
	}
	return nil
}

// handleLoopCompletion applies spec.md §4.6's break/continue-with-
// label rules for a single loop body completion: stop==true means the
// loop as a whole should return `result`.
func handleLoopCompletion(c Completion, label string) (stop bool, result Completion) {
	switch c.Type {
	case Normal:
		return false, normal()
	case BreakCompletion:
		if c.Target == "" || c.Target == label {
			return true, normal()
		}
		return true, c
	case ContinueCompletion:
		if c.Target == "" || c.Target == label {
			return false, normal()
		}
		return true, c
	default: // Return, Throw
		return true, c
	}
}

func (ev *evaluator) evalLabeled(env *runtime.Environment, s *ast.LabeledStatement) Completion {
	label := s.Label.Name
	var c Completion
	switch body := s.Body.(type) {
	case *ast.WhileStatement:
		c = ev.evalWhile(env, body, label)
	case *ast.DoWhileStatement:
		c = ev.evalDoWhile(env, body, label)
	case *ast.ForStatement:
		c = ev.evalFor(env, body, label)
	case *ast.ForInStatement:
		c = ev.evalForIn(env, body, label)
	case *ast.ForOfStatement:
		c = ev.evalForOf(env, body, label)
	default:
		c = ev.evalStatement(env, s.Body)
	}
	if c.Type == BreakCompletion && c.Target == label {
		return normal()
	}
	return c
}

func (ev *evaluator) evalSwitch(env *runtime.Environment, s *ast.SwitchStatement) Completion {
	disc, thr := ev.evalExpression(env, s.Discriminant)
	if thr != nil {
		return thrown(thr.Value)
	}
	switchEnv := runtime.NewDeclarativeEnvironment(env)
	for _, c := range s.Cases {
		ev.hoistBlock(switchEnv, c.Consequent, false)
	}
	matched := -1
	for i, c := range s.Cases {
		if c.Test == nil {
			continue
		}
		testVal, thr := ev.evalExpression(switchEnv, c.Test)
		if thr != nil {
			return thrown(thr.Value)
		}
		if StrictEquals(disc, testVal) {
			matched = i
			break
		}
	}
	if matched == -1 {
		for i, c := range s.Cases {
			if c.Test == nil {
				matched = i
				break
			}
		}
	}
	if matched == -1 {
		return normal()
	}
	for i := matched; i < len(s.Cases); i++ {
		c := ev.evalStatements(switchEnv, s.Cases[i].Consequent)
		if c.Type == BreakCompletion && c.Target == "" {
			return normal()
		}
		if c.abrupt() {
			return c
		}
	}
	return normal()
}

func (ev *evaluator) evalTry(env *runtime.Environment, s *ast.TryStatement) Completion {
	c := ev.evalStatement(env, s.Block)
	if c.Type == ThrowCompletion && s.Handler != nil {
		catchEnv := runtime.NewDeclarativeEnvironment(env)
		if s.Handler.Param != nil {
			ev.hoistBlock(catchEnv, nil, false)
			for _, name := range patternNames(s.Handler.Param) {
				catchEnv.DeclareMutable(name, false)
			}
			if thr := ev.bindPattern(catchEnv, s.Handler.Param, c.Value, ast.DeclLet); thr != nil {
				c = thrown(thr.Value)
			} else {
				c = ev.evalStatement(catchEnv, s.Handler.Body)
			}
		} else {
			c = ev.evalStatement(catchEnv, s.Handler.Body)
		}
	}
	if s.Finalizer != nil {
		fc := ev.evalStatement(env, s.Finalizer)
		if fc.abrupt() {
			return fc // finally's completion overrides try/catch's, per spec.md §4.6
		}
	}
	return c
}
