package js_transform

import (
	"github.com/e2b-dev/ijavascript-babel/internal/js_ast"
	"github.com/e2b-dev/ijavascript-babel/internal/js_lexer"
	"github.com/e2b-dev/ijavascript-babel/internal/logger"
)

// LowerTopLevelAwait rewrites a program that uses await at the top level so
// it can run in a context that requires synchronous top-level execution. The
// statements before the first use of await are left alone. Everything from
// that statement onward moves into the body of an immediately-invoked async
// arrow function. Bindings declared in the moved statements are hoisted to a
// single "let" declaration at program scope and their declarations become
// plain assignments inside the wrapper, so the bindings stay referenceable
// after the wrapper settles:
//
//	const x = 1;                  const x = 1;
//	const y = await f();    =>    let y, z;
//	const z = y + 1;              (async () => {
//	                                y = await f();
//	                                z = y + 1;
//	                              })();
//
// If the last statement moved into the wrapper is an expression statement
// that isn't an assignment, it becomes a return statement so the value is
// observable through the wrapper's promise.
//
// A program without any top-level await is returned untouched. A top-level
// return statement is a syntax error: the error is logged and the program is
// returned unmodified with "ok" set to false.
func LowerTopLevelAwait(log logger.Log, source logger.Source, stmts []js_ast.Stmt) (result []js_ast.Stmt, ok bool) {
	scan := scanner{}
	scan.scanStmts(stmts)

	if scan.hasTopLevelReturn {
		r := js_lexer.RangeOfIdentifier(source, scan.topLevelReturnLoc)
		log.AddRangeError(&source, r, "Top-level return cannot be used inside an ECMAScript module")
		return stmts, false
	}

	if !scan.hasTopLevelAwait {
		return stmts, true
	}

	// Find the first statement that uses await. The scan above guarantees
	// there is one. A named class declaration also starts the wrapped region,
	// so the class binding is hoisted together with the tail declarations.
	split := -1
	for i, stmt := range stmts {
		if stmtUsesAwait(stmt) {
			split = i
			break
		}
		if s, isClass := stmt.Data.(*js_ast.SClass); isClass && s.Class.Name != nil {
			split = i
			break
		}
	}
	if split == -1 {
		return stmts, true
	}

	prefix := stmts[:split]
	tail := stmts[split:]

	// Bindings declared in the tail are hoisted out of the wrapper so they
	// survive it. The declarations themselves become assignments.
	hoisted := []js_ast.Decl{}
	body := []js_ast.Stmt{}

	for _, stmt := range tail {
		switch s := stmt.Data.(type) {
		case *js_ast.SLocal:
			js_ast.ForEachIdentifierBindingInDecls(s.Decls, func(loc logger.Loc, b *js_ast.BIdentifier) {
				hoisted = append(hoisted, js_ast.Decl{
					Binding: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Name: b.Name}},
				})
			})

			for _, decl := range s.Decls {
				target := js_ast.ConvertBindingToExpr(decl.Binding)
				var value js_ast.Expr
				if decl.Value != nil {
					value = *decl.Value
				} else {
					value = js_ast.Expr{Loc: decl.Binding.Loc, Data: &js_ast.EUndefined{}}
				}
				body = append(body, js_ast.AssignStmt(target, value))
			}

		case *js_ast.SClass:
			if s.Class.Name != nil {
				name := *s.Class.Name
				hoisted = append(hoisted, js_ast.Decl{
					Binding: js_ast.Binding{Loc: name.Loc, Data: &js_ast.BIdentifier{Name: name.Name}},
				})
				body = append(body, js_ast.AssignStmt(
					js_ast.Expr{Loc: name.Loc, Data: &js_ast.EIdentifier{Name: name.Name}},
					js_ast.Expr{Loc: stmt.Loc, Data: &js_ast.EClass{Class: s.Class}},
				))
			} else {
				body = append(body, stmt)
			}

		default:
			body = append(body, stmt)
		}
	}

	// Return the value of a trailing expression statement from the wrapper.
	// Assignments are skipped because their value is already observable
	// through the hoisted binding.
	if len(body) > 0 {
		if last, isExpr := body[len(body)-1].Data.(*js_ast.SExpr); isExpr {
			isAssign := false
			if binary, isBinary := last.Value.Data.(*js_ast.EBinary); isBinary {
				isAssign = binary.Op.BinaryAssignTarget() != js_ast.AssignTargetNone
			}
			if !isAssign {
				value := last.Value
				body[len(body)-1] = js_ast.Stmt{
					Loc:  body[len(body)-1].Loc,
					Data: &js_ast.SReturn{Value: &value},
				}
			}
		}
	}

	wrapperLoc := tail[0].Loc
	wrapper := js_ast.Expr{Loc: wrapperLoc, Data: &js_ast.ECall{
		Target: js_ast.Expr{Loc: wrapperLoc, Data: &js_ast.EArrow{
			IsAsync: true,
			Body:    js_ast.FnBody{Loc: wrapperLoc, Stmts: body},
		}},
	}}

	result = make([]js_ast.Stmt, 0, len(prefix)+2)
	result = append(result, prefix...)
	if len(hoisted) > 0 {
		result = append(result, js_ast.Stmt{Loc: wrapperLoc, Data: &js_ast.SLocal{
			Kind:  js_ast.LocalLet,
			Decls: hoisted,
		}})
	}
	result = append(result, js_ast.Stmt{Loc: wrapperLoc, Data: &js_ast.SExpr{Value: wrapper}})
	return result, true
}

// The scanner walks a program looking for top-level await expressions and
// top-level return statements. It descends through blocks, conditionals,
// loops, and expressions but never into function bodies, since await and
// return inside a function belong to that function.
type scanner struct {
	hasTopLevelAwait  bool
	hasTopLevelReturn bool
	topLevelReturnLoc logger.Loc
}

func (scan *scanner) scanStmts(stmts []js_ast.Stmt) {
	for _, stmt := range stmts {
		scan.scanStmt(stmt)
	}
}

func (scan *scanner) scanStmt(stmt js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SReturn:
		if !scan.hasTopLevelReturn {
			scan.hasTopLevelReturn = true
			scan.topLevelReturnLoc = stmt.Loc
		}
		if s.Value != nil {
			scan.scanExpr(*s.Value)
		}

	case *js_ast.SExpr:
		scan.scanExpr(s.Value)

	case *js_ast.SThrow:
		scan.scanExpr(s.Value)

	case *js_ast.SLocal:
		for _, decl := range s.Decls {
			scan.scanBinding(decl.Binding)
			if decl.Value != nil {
				scan.scanExpr(*decl.Value)
			}
		}

	case *js_ast.SBlock:
		scan.scanStmts(s.Stmts)

	case *js_ast.SIf:
		scan.scanExpr(s.Test)
		scan.scanStmt(s.Yes)
		if s.No != nil {
			scan.scanStmt(*s.No)
		}

	case *js_ast.SFor:
		if s.Init != nil {
			scan.scanStmt(*s.Init)
		}
		if s.Test != nil {
			scan.scanExpr(*s.Test)
		}
		if s.Update != nil {
			scan.scanExpr(*s.Update)
		}
		scan.scanStmt(s.Body)

	case *js_ast.SForIn:
		scan.scanStmt(s.Init)
		scan.scanExpr(s.Value)
		scan.scanStmt(s.Body)

	case *js_ast.SForOf:
		scan.scanStmt(s.Init)
		scan.scanExpr(s.Value)
		scan.scanStmt(s.Body)

	case *js_ast.SDoWhile:
		scan.scanStmt(s.Body)
		scan.scanExpr(s.Test)

	case *js_ast.SWhile:
		scan.scanExpr(s.Test)
		scan.scanStmt(s.Body)

	case *js_ast.SLabel:
		scan.scanStmt(s.Stmt)

	case *js_ast.STry:
		scan.scanStmts(s.Body)
		if s.Catch != nil {
			scan.scanStmts(s.Catch.Body)
		}
		if s.Finally != nil {
			scan.scanStmts(s.Finally.Stmts)
		}

	case *js_ast.SSwitch:
		scan.scanExpr(s.Test)
		for _, c := range s.Cases {
			if c.Value != nil {
				scan.scanExpr(*c.Value)
			}
			scan.scanStmts(c.Body)
		}

	case *js_ast.SClass:
		scan.scanClass(s.Class)

	// Function bodies are boundaries: await and return inside them are not
	// top-level
	case *js_ast.SFunction:
	}
}

func (scan *scanner) scanExpr(expr js_ast.Expr) {
	switch e := expr.Data.(type) {
	case *js_ast.EAwait:
		scan.hasTopLevelAwait = true
		scan.scanExpr(e.Value)

	case *js_ast.EUnary:
		scan.scanExpr(e.Value)

	case *js_ast.EBinary:
		scan.scanExpr(e.Left)
		scan.scanExpr(e.Right)

	case *js_ast.ESpread:
		scan.scanExpr(e.Value)

	case *js_ast.EIf:
		scan.scanExpr(e.Test)
		scan.scanExpr(e.Yes)
		scan.scanExpr(e.No)

	case *js_ast.EArray:
		for _, item := range e.Items {
			scan.scanExpr(item)
		}

	case *js_ast.EObject:
		for _, property := range e.Properties {
			scan.scanProperty(property)
		}

	case *js_ast.ECall:
		scan.scanExpr(e.Target)
		for _, arg := range e.Args {
			scan.scanExpr(arg)
		}

	case *js_ast.ENew:
		scan.scanExpr(e.Target)
		for _, arg := range e.Args {
			scan.scanExpr(arg)
		}

	case *js_ast.EDot:
		scan.scanExpr(e.Target)

	case *js_ast.EIndex:
		scan.scanExpr(e.Target)
		scan.scanExpr(e.Index)

	case *js_ast.EClass:
		scan.scanClass(e.Class)

	// Function bodies are boundaries
	case *js_ast.EFunction, *js_ast.EArrow:
	}
}

func (scan *scanner) scanClass(class js_ast.Class) {
	// The extends clause and computed keys evaluate when the class does, so
	// they can contain top-level await. Method bodies and field initializers
	// cannot.
	if class.Extends != nil {
		scan.scanExpr(*class.Extends)
	}
	for _, property := range class.Properties {
		if property.IsComputed {
			scan.scanExpr(property.Key)
		}
	}
}

func (scan *scanner) scanProperty(property js_ast.Property) {
	if property.IsComputed {
		scan.scanExpr(property.Key)
	}
	if property.Kind == js_ast.PropertySpread {
		scan.scanExpr(*property.Value)
		return
	}
	if property.IsMethod {
		// Function bodies are boundaries
		return
	}
	if property.Value != nil {
		scan.scanExpr(*property.Value)
	}
	if property.Initializer != nil {
		scan.scanExpr(*property.Initializer)
	}
}

// Default values in binding patterns evaluate in the enclosing scope
func (scan *scanner) scanBinding(binding js_ast.Binding) {
	switch b := binding.Data.(type) {
	case *js_ast.BArray:
		for _, item := range b.Items {
			scan.scanBinding(item.Binding)
			if item.DefaultValue != nil {
				scan.scanExpr(*item.DefaultValue)
			}
		}

	case *js_ast.BObject:
		for _, property := range b.Properties {
			if property.IsComputed {
				scan.scanExpr(property.Key)
			}
			scan.scanBinding(property.Value)
			if property.DefaultValue != nil {
				scan.scanExpr(*property.DefaultValue)
			}
		}
	}
}

func stmtUsesAwait(stmt js_ast.Stmt) bool {
	scan := scanner{}
	scan.scanStmt(stmt)
	return scan.hasTopLevelAwait
}
