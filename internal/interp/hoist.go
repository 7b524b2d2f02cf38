package interp

import (
	"github.com/cwbudde-lumen/lumen/internal/ast"
	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

// hoistScript implements spec.md §4.6's declaration-processing pass:
// var and function declarations are collected and bound (var to
// undefined, function to its closure) before any statement runs;
// let/const declarations are bound but left uninitialized (temporal
// dead zone) until their declaration statement actually executes.
func (ev *evaluator) hoistScript(env *runtime.Environment, script *ast.Script) {
	ev.hoistBlock(env, script.Body, true)
}

// hoistBlock walks stmts (non-recursively into nested functions, but
// recursively into nested blocks/if/for/while/try/switch bodies for
// var/function hoisting, since var is function-scoped not
// block-scoped) and declares every var/let/const/function binding it
// finds. topLevel is true for a Script or function body. Function
// declarations are bound to their closures on entry to the statement
// list that contains them, block bodies included.
func (ev *evaluator) hoistBlock(env *runtime.Environment, stmts []ast.Statement, topLevel bool) {
	ev.collectVarNames(stmts, env)
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.VariableDeclaration:
			for _, d := range s.Declarators {
				for _, name := range patternNames(d.Name) {
					switch s.Kind {
					case ast.DeclLet:
						env.DeclareMutable(name, false)
					case ast.DeclConst:
						env.DeclareImmutable(name)
					}
				}
			}
		case *ast.FunctionLiteral:
			if s.Name != nil {
				fn := ev.makeClosure(env, s)
				env.DeclareMutable(s.Name.Name, true)
				env.Initialize(s.Name.Name, fn)
			}
		case *ast.ClassLiteral:
			if s.Name != nil {
				env.DeclareMutable(s.Name.Name, false)
			}
		}
	}
}

// collectVarNames declares (to undefined) every `var` binding and every
// bare function declaration reachable by descending into control-flow
// statement bodies without crossing a function boundary, per spec.md
// §4.6's var-hoisting-to-function-scope rule.
func (ev *evaluator) collectVarNames(stmts []ast.Statement, env *runtime.Environment) {
	var walk func(s ast.Statement)
	walk = func(s ast.Statement) {
		switch n := s.(type) {
		case *ast.VariableDeclaration:
			if n.Kind == ast.DeclVar {
				for _, d := range n.Declarators {
					for _, name := range patternNames(d.Name) {
						if !env.HasBinding(name) {
							env.DeclareMutable(name, true)
						}
					}
				}
			}
		case *ast.BlockStatement:
			for _, sub := range n.Body {
				walk(sub)
			}
		case *ast.IfStatement:
			walk(n.Consequent)
			if n.Alternate != nil {
				walk(n.Alternate)
			}
		case *ast.WhileStatement:
			walk(n.Body)
		case *ast.DoWhileStatement:
			walk(n.Body)
		case *ast.ForStatement:
			if vd, ok := n.Init.(*ast.VariableDeclaration); ok && vd.Kind == ast.DeclVar {
				walk(vd)
			}
			walk(n.Body)
		case *ast.ForInStatement:
			if vd, ok := n.Left.(*ast.VariableDeclaration); ok && vd.Kind == ast.DeclVar {
				walk(vd)
			}
			walk(n.Body)
		case *ast.ForOfStatement:
			if vd, ok := n.Left.(*ast.VariableDeclaration); ok && vd.Kind == ast.DeclVar {
				walk(vd)
			}
			walk(n.Body)
		case *ast.TryStatement:
			walk(n.Block)
			if n.Handler != nil {
				walk(n.Handler.Body)
			}
			if n.Finalizer != nil {
				walk(n.Finalizer)
			}
		case *ast.SwitchStatement:
			for _, c := range n.Cases {
				for _, sub := range c.Consequent {
					walk(sub)
				}
			}
		case *ast.LabeledStatement:
			walk(n.Body)
		case *ast.FunctionLiteral:
			if n.Name != nil && !env.HasBinding(n.Name.Name) {
				env.DeclareMutable(n.Name.Name, true)
			}
		}
	}
	for _, s := range stmts {
		walk(s)
	}
}

// patternNames flattens every Identifier bound by a (possibly
// destructuring) Pattern.
func patternNames(p ast.Pattern) []string {
	switch n := p.(type) {
	case *ast.Identifier:
		return []string{n.Name}
	case *ast.DefaultPattern:
		return patternNames(n.Target)
	case *ast.RestElement:
		return patternNames(n.Target)
	case *ast.ArrayPattern:
		var out []string
		for _, e := range n.Elements {
			if e != nil {
				out = append(out, patternNames(e)...)
			}
		}
		return out
	case *ast.ObjectPattern:
		var out []string
		for _, prop := range n.Properties {
			out = append(out, patternNames(prop.Value)...)
		}
		if n.Rest != nil {
			out = append(out, patternNames(n.Rest)...)
		}
		return out
	}
	return nil
}
