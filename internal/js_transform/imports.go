package js_transform

import (
	"github.com/e2b-dev/ijavascript-babel/internal/js_ast"
)

// The name of the CommonJS loader function that import statements are
// rewritten to call
const loaderName = "require"

// LowerImports rewrites ES module import statements into CommonJS require
// calls. Each import statement becomes a single "const" declaration where
// every declarator is initialized by its own call to the loader:
//
//	import 'path'                  => require('path');
//	import foo from 'path'         => const foo = require('path');
//	import * as ns from 'path'     => const ns = require('path');
//	import {a, b as c} from 'path' => const {a, b: c} = require('path');
//	import foo, {a} from 'path'    => const foo = require('path'), {a} = require('path');
//
// Statements that are not import statements pass through untouched. Output
// order matches input order.
func LowerImports(stmts []js_ast.Stmt) []js_ast.Stmt {
	result := make([]js_ast.Stmt, 0, len(stmts))

	for _, stmt := range stmts {
		s, isImport := stmt.Data.(*js_ast.SImport)
		if !isImport {
			result = append(result, stmt)
			continue
		}

		loaderCall := func() js_ast.Expr {
			return js_ast.Expr{Loc: stmt.Loc, Data: &js_ast.ECall{
				Target: js_ast.Expr{Loc: stmt.Loc, Data: &js_ast.EIdentifier{Name: loaderName}},
				Args:   []js_ast.Expr{{Loc: s.PathLoc, Data: &js_ast.EString{Value: s.Path}}},
			}}
		}

		// "import 'path'" is evaluated for side effects only
		if s.DefaultName == nil && s.StarName == nil && s.Items == nil {
			result = append(result, js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SExpr{Value: loaderCall()}})
			continue
		}

		decls := []js_ast.Decl{}

		if s.DefaultName != nil {
			value := loaderCall()
			decls = append(decls, js_ast.Decl{
				Binding: js_ast.Binding{Loc: s.DefaultName.Loc, Data: &js_ast.BIdentifier{Name: s.DefaultName.Name}},
				Value:   &value,
			})
		}

		if s.StarName != nil {
			value := loaderCall()
			decls = append(decls, js_ast.Decl{
				Binding: js_ast.Binding{Loc: s.StarName.Loc, Data: &js_ast.BIdentifier{Name: s.StarName.Name}},
				Value:   &value,
			})
		}

		if s.Items != nil {
			properties := []js_ast.PropertyBinding{}
			for _, item := range *s.Items {
				properties = append(properties, js_ast.PropertyBinding{
					Key: js_ast.Expr{Loc: item.AliasLoc, Data: &js_ast.EString{Value: item.Alias}},
					Value: js_ast.Binding{Loc: item.Name.Loc, Data: &js_ast.BIdentifier{
						Name: item.Name.Name,
					}},
				})
			}

			value := loaderCall()
			decls = append(decls, js_ast.Decl{
				Binding: js_ast.Binding{Loc: stmt.Loc, Data: &js_ast.BObject{
					Properties:   properties,
					IsSingleLine: s.IsSingleLine,
				}},
				Value: &value,
			})
		}

		result = append(result, js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SLocal{
			Kind:  js_ast.LocalConst,
			Decls: decls,
		}})
	}

	return result
}
