package js_parser

import (
	"github.com/e2b-dev/ijavascript-babel/internal/js_ast"
	"github.com/e2b-dev/ijavascript-babel/internal/js_lexer"
	"github.com/e2b-dev/ijavascript-babel/internal/logger"
)

// This parser is a recursive-descent parser over the token stream produced
// by js_lexer. Expressions use precedence climbing: "parsePrefix" handles
// everything that can start an expression and "parseSuffix" repeatedly
// consumes operators as long as they bind tighter than the requested level.
//
// The parser deliberately does not resolve scopes or bind symbols. The
// passes that consume this AST only need names and statement structure.

type parser struct {
	log    logger.Log
	source logger.Source
	lexer  js_lexer.Lexer

	// This is used to forbid the "in" operator inside a for-loop initializer
	allowIn bool
}

// Returns the statements of the program. The boolean is false if a syntax
// error was reported through the log, in which case the statements must not
// be used.
func Parse(log logger.Log, source logger.Source) (stmts []js_ast.Stmt, ok bool) {
	ok = true
	defer func() {
		r := recover()
		if _, isLexerPanic := r.(js_lexer.LexerPanic); isLexerPanic {
			ok = false
		} else if r != nil {
			panic(r)
		}
	}()

	p := &parser{
		log:     log,
		source:  source,
		lexer:   js_lexer.NewLexer(log, source),
		allowIn: true,
	}
	stmts = p.parseStmtsUpTo(js_lexer.TEndOfFile)
	return
}

func (p *parser) parseStmtsUpTo(end js_lexer.T) []js_ast.Stmt {
	stmts := []js_ast.Stmt{}
	isDirectivePrologue := true

	for p.lexer.Token != end {
		stmt := p.parseStmt()

		// Skip over explicit empty statements entirely
		if _, isEmpty := stmt.Data.(*js_ast.SEmpty); isEmpty {
			continue
		}

		// A string literal at the start of the file or function body is a
		// directive such as "use strict"
		if isDirectivePrologue {
			if expr, isExpr := stmt.Data.(*js_ast.SExpr); isExpr {
				if str, isString := expr.Value.Data.(*js_ast.EString); isString {
					stmt.Data = &js_ast.SDirective{Value: str.Value}
				} else {
					isDirectivePrologue = false
				}
			} else {
				isDirectivePrologue = false
			}
		}

		stmts = append(stmts, stmt)
	}

	return stmts
}

func (p *parser) parseStmt() js_ast.Stmt {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSemicolon:
		p.lexer.Next()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SEmpty{}}

	case js_lexer.TExport:
		p.lexer.Unexpected()

	case js_lexer.TImport:
		return p.parseImportStmt(loc)

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace)
		p.lexer.Next()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SBlock{Stmts: stmts}}

	case js_lexer.TDebugger:
		p.lexer.Next()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDebugger{}}

	case js_lexer.TVar:
		p.lexer.Next()
		decls := p.parseDecls()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalVar, Decls: decls}}

	case js_lexer.TConst:
		p.lexer.Next()
		decls := p.parseDecls()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalConst, Decls: decls}}

	case js_lexer.TFunction:
		p.lexer.Next()
		return p.parseFnStmt(loc, false /* isAsync */)

	case js_lexer.TClass:
		p.lexer.Next()
		class := p.parseClass(true /* nameIsRequired */)
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SClass{Class: class}}

	case js_lexer.TIf:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		yes := p.parseStmt()
		var no *js_ast.Stmt
		if p.lexer.Token == js_lexer.TElse {
			p.lexer.Next()
			stmt := p.parseStmt()
			no = &stmt
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SIf{Test: test, Yes: yes, No: no}}

	case js_lexer.TDo:
		p.lexer.Next()
		body := p.parseStmt()
		p.lexer.Expect(js_lexer.TWhile)
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)

		// This is a weird corner of JavaScript. Automatic semicolon insertion
		// applies to do-while statements even without a newline
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next()
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDoWhile{Body: body, Test: test}}

	case js_lexer.TWhile:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SWhile{Test: test, Body: body}}

	case js_lexer.TFor:
		return p.parseForStmt(loc)

	case js_lexer.TSwitch:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		bodyLoc := p.lexer.Loc()
		p.lexer.Expect(js_lexer.TOpenBrace)

		cases := []js_ast.Case{}
		foundDefault := false
		for p.lexer.Token != js_lexer.TCloseBrace {
			var value *js_ast.Expr
			if p.lexer.Token == js_lexer.TDefault {
				if foundDefault {
					p.log.AddRangeError(&p.source, p.lexer.Range(), "Multiple default clauses are not allowed")
					panic(js_lexer.LexerPanic{})
				}
				foundDefault = true
				p.lexer.Next()
			} else {
				p.lexer.Expect(js_lexer.TCase)
				expr := p.parseExpr(js_ast.LLowest)
				value = &expr
			}
			p.lexer.Expect(js_lexer.TColon)

			body := []js_ast.Stmt{}
			for p.lexer.Token != js_lexer.TCloseBrace &&
				p.lexer.Token != js_lexer.TCase &&
				p.lexer.Token != js_lexer.TDefault {
				body = append(body, p.parseStmt())
			}
			cases = append(cases, js_ast.Case{Value: value, Body: body})
		}
		p.lexer.Expect(js_lexer.TCloseBrace)
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SSwitch{Test: test, BodyLoc: bodyLoc, Cases: cases}}

	case js_lexer.TTry:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenBrace)
		body := p.parseStmtsUpTo(js_lexer.TCloseBrace)
		p.lexer.Next()

		var catch *js_ast.Catch
		var finally *js_ast.Finally

		if p.lexer.Token == js_lexer.TCatch {
			catchLoc := p.lexer.Loc()
			p.lexer.Next()
			var binding *js_ast.Binding

			// The catch binding is optional
			if p.lexer.Token == js_lexer.TOpenParen {
				p.lexer.Next()
				value := p.parseBinding()
				binding = &value
				p.lexer.Expect(js_lexer.TCloseParen)
			}

			p.lexer.Expect(js_lexer.TOpenBrace)
			stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace)
			p.lexer.Next()
			catch = &js_ast.Catch{Loc: catchLoc, Binding: binding, Body: stmts}
		}

		if p.lexer.Token == js_lexer.TFinally {
			finallyLoc := p.lexer.Loc()
			p.lexer.Next()
			p.lexer.Expect(js_lexer.TOpenBrace)
			stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace)
			p.lexer.Next()
			finally = &js_ast.Finally{Loc: finallyLoc, Stmts: stmts}
		}

		if catch == nil && finally == nil {
			p.lexer.Expected(js_lexer.TCatch)
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.STry{Body: body, Catch: catch, Finally: finally}}

	case js_lexer.TThrow:
		p.lexer.Next()
		if p.lexer.HasNewlineBefore {
			p.log.AddError(&p.source, logger.Loc{Start: loc.Start + 5},
				"Unexpected newline after \"throw\"")
			panic(js_lexer.LexerPanic{})
		}
		expr := p.parseExpr(js_ast.LLowest)
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SThrow{Value: expr}}

	case js_lexer.TReturn:
		p.lexer.Next()
		var value *js_ast.Expr
		if p.lexer.Token != js_lexer.TSemicolon &&
			!p.lexer.HasNewlineBefore &&
			p.lexer.Token != js_lexer.TCloseBrace &&
			p.lexer.Token != js_lexer.TEndOfFile {
			expr := p.parseExpr(js_ast.LLowest)
			value = &expr
		}
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SReturn{Value: value}}

	case js_lexer.TBreak:
		p.lexer.Next()
		name := p.parseLabelName()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SBreak{Label: name}}

	case js_lexer.TContinue:
		p.lexer.Next()
		name := p.parseLabelName()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SContinue{Label: name}}

	case js_lexer.TIdentifier:
		if p.lexer.IsContextualKeyword("let") {
			if decls, isDecl := p.trySkipLetDecl(); isDecl {
				p.lexer.ExpectOrInsertSemicolon()
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalLet, Decls: decls}}
			}
		}

		if p.lexer.IsContextualKeyword("async") {
			// "async function foo() {}"
			oldLexer := p.lexer
			p.lexer.Next()
			if p.lexer.Token == js_lexer.TFunction && !p.lexer.HasNewlineBefore {
				p.lexer.Next()
				return p.parseFnStmt(loc, true /* isAsync */)
			}
			p.lexer = oldLexer
		}
	}

	// Parse either an expression statement or a labeled statement
	expr := p.parseExpr(js_ast.LLowest)

	if ident, isIdent := expr.Data.(*js_ast.EIdentifier); isIdent && p.lexer.Token == js_lexer.TColon {
		p.lexer.Next()
		stmt := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLabel{
			Name: js_ast.LocName{Loc: expr.Loc, Name: ident.Name},
			Stmt: stmt,
		}}
	}

	p.lexer.ExpectOrInsertSemicolon()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}
}

// "let" is a contextual keyword: "let x = 1" is a declaration but "let + 1"
// is an expression. Speculatively scan past it to find out which one this is.
func (p *parser) trySkipLetDecl() (decls []js_ast.Decl, isDecl bool) {
	oldLexer := p.lexer
	p.lexer.IsLogDisabled = true

	defer func() {
		if r := recover(); r != nil {
			if _, isLexerPanic := r.(js_lexer.LexerPanic); isLexerPanic {
				p.lexer = oldLexer
				decls = nil
				isDecl = false
			} else {
				panic(r)
			}
		}
	}()

	p.lexer.Next()
	if p.lexer.Token != js_lexer.TIdentifier &&
		p.lexer.Token != js_lexer.TOpenBracket &&
		p.lexer.Token != js_lexer.TOpenBrace {
		p.lexer = oldLexer
		return nil, false
	}

	p.lexer.IsLogDisabled = oldLexer.IsLogDisabled
	return p.parseDecls(), true
}

func (p *parser) parseLabelName() *js_ast.LocName {
	if p.lexer.Token != js_lexer.TIdentifier || p.lexer.HasNewlineBefore {
		return nil
	}
	name := &js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
	p.lexer.Next()
	return name
}

func (p *parser) parseFnStmt(loc logger.Loc, isAsync bool) js_ast.Stmt {
	isGenerator := p.lexer.Token == js_lexer.TAsterisk
	if isGenerator {
		p.lexer.Next()
	}

	nameLoc := p.lexer.Loc()
	nameText := p.lexer.Identifier
	p.lexer.Expect(js_lexer.TIdentifier)

	fn := p.parseFn(&js_ast.LocName{Loc: nameLoc, Name: nameText}, isAsync, isGenerator)
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFunction{Fn: fn}}
}

func (p *parser) parseFn(name *js_ast.LocName, isAsync bool, isGenerator bool) js_ast.Fn {
	args, hasRestArg := p.parseFnArgs()
	bodyLoc := p.lexer.Loc()
	p.lexer.Expect(js_lexer.TOpenBrace)
	stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace)
	p.lexer.Next()

	return js_ast.Fn{
		Name:        name,
		Args:        args,
		Body:        js_ast.FnBody{Loc: bodyLoc, Stmts: stmts},
		IsAsync:     isAsync,
		IsGenerator: isGenerator,
		HasRestArg:  hasRestArg,
	}
}

func (p *parser) parseFnArgs() (args []js_ast.Arg, hasRestArg bool) {
	p.lexer.Expect(js_lexer.TOpenParen)

	for p.lexer.Token != js_lexer.TCloseParen {
		if p.lexer.Token == js_lexer.TDotDotDot {
			p.lexer.Next()
			binding := p.parseBinding()
			args = append(args, js_ast.Arg{Binding: binding})
			hasRestArg = true
			break
		}

		binding := p.parseBinding()
		var defaultValue *js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			value := p.parseExpr(js_ast.LComma)
			defaultValue = &value
		}
		args = append(args, js_ast.Arg{Binding: binding, Default: defaultValue})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseParen)
	return
}

func (p *parser) parseClass(nameIsRequired bool) js_ast.Class {
	var name *js_ast.LocName
	if p.lexer.Token == js_lexer.TIdentifier {
		name = &js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Next()
	} else if nameIsRequired {
		p.lexer.Expect(js_lexer.TIdentifier)
	}

	var extends *js_ast.Expr
	if p.lexer.Token == js_lexer.TExtends {
		p.lexer.Next()
		value := p.parseExpr(js_ast.LNew)
		extends = &value
	}

	bodyLoc := p.lexer.Loc()
	p.lexer.Expect(js_lexer.TOpenBrace)

	properties := []js_ast.Property{}
	for p.lexer.Token != js_lexer.TCloseBrace {
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next()
			continue
		}
		properties = append(properties, p.parseProperty(js_ast.PropertyNormal, propertyOpts{isClass: true}))
	}
	p.lexer.Next()

	return js_ast.Class{Name: name, Extends: extends, BodyLoc: bodyLoc, Properties: properties}
}

type propertyOpts struct {
	isClass     bool
	isAsync     bool
	isStatic    bool
	isGenerator bool
}

func (p *parser) parseProperty(kind js_ast.PropertyKind, opts propertyOpts) js_ast.Property {
	var key js_ast.Expr
	isComputed := false

	switch p.lexer.Token {
	case js_lexer.TDotDotDot:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LComma)
		return js_ast.Property{
			Kind:  js_ast.PropertySpread,
			Value: &value,
		}

	case js_lexer.TNumericLiteral:
		key = js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.ENumber{Value: p.lexer.Number}}
		p.lexer.Next()

	case js_lexer.TStringLiteral:
		key = js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EString{Value: p.lexer.StringLiteral}}
		p.lexer.Next()

	case js_lexer.TOpenBracket:
		isComputed = true
		p.lexer.Next()
		key = p.parseExpr(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseBracket)

	case js_lexer.TAsterisk:
		if kind != js_ast.PropertyNormal || opts.isGenerator {
			p.lexer.Unexpected()
		}
		p.lexer.Next()
		opts.isGenerator = true
		return p.parseProperty(kind, opts)

	default:
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		nameLoc := p.lexer.Loc()
		name := p.lexer.Identifier
		p.lexer.Next()

		// Support contextual keywords
		if kind == js_ast.PropertyNormal && !opts.isGenerator {
			couldBeModifierKeyword := p.lexer.IsIdentifierOrKeyword()
			if !couldBeModifierKeyword {
				switch p.lexer.Token {
				case js_lexer.TOpenBracket, js_lexer.TNumericLiteral, js_lexer.TStringLiteral, js_lexer.TAsterisk:
					couldBeModifierKeyword = true
				}
			}

			if couldBeModifierKeyword {
				switch name {
				case "get":
					return p.parseProperty(js_ast.PropertyGet, opts)
				case "set":
					return p.parseProperty(js_ast.PropertySet, opts)
				case "async":
					opts.isAsync = true
					return p.parseProperty(kind, opts)
				case "static":
					if opts.isClass && !opts.isStatic {
						opts.isStatic = true
						return p.parseProperty(kind, opts)
					}
				}
			}
		}

		key = js_ast.Expr{Loc: nameLoc, Data: &js_ast.EString{Value: name}}

		// Object literal shorthand: "{foo}" or "{foo = 1}" inside a destructuring
		// assignment target, and class fields
		if !opts.isClass && !opts.isAsync && !opts.isGenerator && kind == js_ast.PropertyNormal {
			switch p.lexer.Token {
			case js_lexer.TColon, js_lexer.TOpenParen:
				// Fall through to the non-shorthand cases below

			default:
				value := js_ast.Expr{Loc: nameLoc, Data: &js_ast.EIdentifier{Name: name}}
				var initializer *js_ast.Expr
				if p.lexer.Token == js_lexer.TEquals {
					p.lexer.Next()
					init := p.parseExpr(js_ast.LComma)
					initializer = &init
				}
				return js_ast.Property{
					Kind:         kind,
					Key:          key,
					Value:        &value,
					Initializer:  initializer,
					WasShorthand: true,
				}
			}
		}
	}

	// Parse a method expression
	if p.lexer.Token == js_lexer.TOpenParen || kind != js_ast.PropertyNormal ||
		opts.isAsync || opts.isGenerator {
		loc := p.lexer.Loc()
		fn := p.parseFn(nil, opts.isAsync, opts.isGenerator)
		value := js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
		return js_ast.Property{
			Kind:       kind,
			Key:        key,
			Value:      &value,
			IsComputed: isComputed,
			IsMethod:   true,
			IsStatic:   opts.isStatic,
		}
	}

	// Parse a class field with an optional initializer
	if opts.isClass {
		var initializer *js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			value := p.parseExpr(js_ast.LComma)
			initializer = &value
		}
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Property{
			Kind:        kind,
			Key:         key,
			Initializer: initializer,
			IsComputed:  isComputed,
			IsStatic:    opts.isStatic,
		}
	}

	p.lexer.Expect(js_lexer.TColon)
	value := p.parseExpr(js_ast.LComma)
	return js_ast.Property{
		Kind:       kind,
		Key:        key,
		Value:      &value,
		IsComputed: isComputed,
	}
}

func (p *parser) parseDecls() []js_ast.Decl {
	decls := []js_ast.Decl{}

	for {
		binding := p.parseBinding()

		var value *js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			expr := p.parseExpr(js_ast.LComma)
			value = &expr
		}

		decls = append(decls, js_ast.Decl{Binding: binding, Value: value})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	return decls
}

func (p *parser) parseBinding() js_ast.Binding {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TIdentifier:
		name := p.lexer.Identifier
		p.lexer.Next()
		return js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Name: name}}

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		isSingleLine := !p.lexer.HasNewlineBefore
		items := []js_ast.ArrayBinding{}
		hasSpread := false

		for p.lexer.Token != js_lexer.TCloseBracket {
			if p.lexer.Token == js_lexer.TComma {
				binding := js_ast.Binding{Loc: p.lexer.Loc(), Data: &js_ast.BMissing{}}
				items = append(items, js_ast.ArrayBinding{Binding: binding})
				p.lexer.Next()
				continue
			}

			if p.lexer.Token == js_lexer.TDotDotDot {
				p.lexer.Next()
				hasSpread = true
			}

			binding := p.parseBinding()

			var defaultValue *js_ast.Expr
			if !hasSpread && p.lexer.Token == js_lexer.TEquals {
				p.lexer.Next()
				value := p.parseExpr(js_ast.LComma)
				defaultValue = &value
			}

			items = append(items, js_ast.ArrayBinding{Binding: binding, DefaultValue: defaultValue})

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			if p.lexer.HasNewlineBefore {
				isSingleLine = false
			}
			p.lexer.Next()
			if p.lexer.HasNewlineBefore {
				isSingleLine = false
			}
		}

		if p.lexer.HasNewlineBefore {
			isSingleLine = false
		}
		p.lexer.Expect(js_lexer.TCloseBracket)
		return js_ast.Binding{Loc: loc, Data: &js_ast.BArray{
			Items:        items,
			HasSpread:    hasSpread,
			IsSingleLine: isSingleLine,
		}}

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		isSingleLine := !p.lexer.HasNewlineBefore
		properties := []js_ast.PropertyBinding{}

		for p.lexer.Token != js_lexer.TCloseBrace {
			property := p.parsePropertyBinding()
			properties = append(properties, property)

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			if p.lexer.HasNewlineBefore {
				isSingleLine = false
			}
			p.lexer.Next()
			if p.lexer.HasNewlineBefore {
				isSingleLine = false
			}
		}

		if p.lexer.HasNewlineBefore {
			isSingleLine = false
		}
		p.lexer.Expect(js_lexer.TCloseBrace)
		return js_ast.Binding{Loc: loc, Data: &js_ast.BObject{
			Properties:   properties,
			IsSingleLine: isSingleLine,
		}}
	}

	p.lexer.Expect(js_lexer.TIdentifier)
	return js_ast.Binding{}
}

func (p *parser) parsePropertyBinding() js_ast.PropertyBinding {
	var key js_ast.Expr
	isComputed := false

	switch p.lexer.Token {
	case js_lexer.TDotDotDot:
		p.lexer.Next()
		value := js_ast.Binding{Loc: p.lexer.Loc(), Data: &js_ast.BIdentifier{Name: p.lexer.Identifier}}
		p.lexer.Expect(js_lexer.TIdentifier)
		return js_ast.PropertyBinding{IsSpread: true, Value: value}

	case js_lexer.TNumericLiteral:
		key = js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.ENumber{Value: p.lexer.Number}}
		p.lexer.Next()

	case js_lexer.TStringLiteral:
		key = js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EString{Value: p.lexer.StringLiteral}}
		p.lexer.Next()

	case js_lexer.TOpenBracket:
		isComputed = true
		p.lexer.Next()
		key = p.parseExpr(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseBracket)

	default:
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		loc := p.lexer.Loc()
		name := p.lexer.Identifier
		p.lexer.Next()
		key = js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: name}}

		// Shorthand: "{foo}" or "{foo = 1}"
		if p.lexer.Token != js_lexer.TColon {
			value := js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Name: name}}

			var defaultValue *js_ast.Expr
			if p.lexer.Token == js_lexer.TEquals {
				p.lexer.Next()
				init := p.parseExpr(js_ast.LComma)
				defaultValue = &init
			}

			return js_ast.PropertyBinding{
				Key:          key,
				Value:        value,
				DefaultValue: defaultValue,
			}
		}
	}

	p.lexer.Expect(js_lexer.TColon)
	value := p.parseBinding()

	var defaultValue *js_ast.Expr
	if p.lexer.Token == js_lexer.TEquals {
		p.lexer.Next()
		init := p.parseExpr(js_ast.LComma)
		defaultValue = &init
	}

	return js_ast.PropertyBinding{
		IsComputed:   isComputed,
		Key:          key,
		Value:        value,
		DefaultValue: defaultValue,
	}
}

func (p *parser) parseImportStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Next()
	stmt := js_ast.SImport{IsSingleLine: true}

	switch p.lexer.Token {
	case js_lexer.TStringLiteral:
		// "import 'path'"
		stmt.Path = p.lexer.StringLiteral
		stmt.PathLoc = p.lexer.Loc()
		p.lexer.Next()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &stmt}

	case js_lexer.TAsterisk:
		// "import * as ns from 'path'"
		p.lexer.Next()
		p.lexer.ExpectContextualKeyword("as")
		stmt.StarName = &js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Expect(js_lexer.TIdentifier)

	case js_lexer.TOpenBrace:
		// "import {item1, item2} from 'path'"
		items, isSingleLine := p.parseImportClause()
		stmt.Items = &items
		stmt.IsSingleLine = isSingleLine

	case js_lexer.TIdentifier:
		// "import defaultItem from 'path'"
		stmt.DefaultName = &js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Next()

		if p.lexer.Token == js_lexer.TComma {
			p.lexer.Next()
			switch p.lexer.Token {
			case js_lexer.TAsterisk:
				// "import defaultItem, * as ns from 'path'"
				p.lexer.Next()
				p.lexer.ExpectContextualKeyword("as")
				stmt.StarName = &js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
				p.lexer.Expect(js_lexer.TIdentifier)

			case js_lexer.TOpenBrace:
				// "import defaultItem, {item1, item2} from 'path'"
				items, isSingleLine := p.parseImportClause()
				stmt.Items = &items
				stmt.IsSingleLine = isSingleLine

			default:
				p.lexer.Unexpected()
			}
		}

	default:
		p.lexer.Unexpected()
	}

	p.lexer.ExpectContextualKeyword("from")
	stmt.Path = p.lexer.StringLiteral
	stmt.PathLoc = p.lexer.Loc()
	p.lexer.Expect(js_lexer.TStringLiteral)
	p.lexer.ExpectOrInsertSemicolon()
	return js_ast.Stmt{Loc: loc, Data: &stmt}
}

func (p *parser) parseImportClause() ([]js_ast.ClauseItem, bool) {
	items := []js_ast.ClauseItem{}
	p.lexer.Expect(js_lexer.TOpenBrace)
	isSingleLine := !p.lexer.HasNewlineBefore

	for p.lexer.Token != js_lexer.TCloseBrace {
		alias := p.lexer.Identifier
		aliasLoc := p.lexer.Loc()
		name := js_ast.LocName{Loc: aliasLoc, Name: alias}

		// "import {item as renamed} from 'path'" requires the import to be a
		// valid identifier only when there is no rename
		isKeyword := !p.lexer.IsIdentifierOrKeyword() || p.lexer.Token != js_lexer.TIdentifier
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		p.lexer.Next()

		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			name = js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
			p.lexer.Expect(js_lexer.TIdentifier)
		} else if isKeyword {
			// Reserved words must be renamed
			p.lexer.ExpectedString("\"as\"")
		}

		items = append(items, js_ast.ClauseItem{
			Alias:    alias,
			AliasLoc: aliasLoc,
			Name:     name,
		})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		if p.lexer.HasNewlineBefore {
			isSingleLine = false
		}
		p.lexer.Next()
		if p.lexer.HasNewlineBefore {
			isSingleLine = false
		}
	}

	if p.lexer.HasNewlineBefore {
		isSingleLine = false
	}
	p.lexer.Expect(js_lexer.TCloseBrace)
	return items, isSingleLine
}

func (p *parser) parseForStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Next()
	p.lexer.Expect(js_lexer.TOpenParen)

	var init *js_ast.Stmt

	// "in" expressions aren't allowed here
	p.allowIn = false

	switch p.lexer.Token {
	case js_lexer.TSemicolon:

	case js_lexer.TVar:
		p.lexer.Next()
		decls := p.parseDecls()
		init = &js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalVar, Decls: decls}}

	case js_lexer.TConst:
		p.lexer.Next()
		decls := p.parseDecls()
		init = &js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalConst, Decls: decls}}

	default:
		if p.lexer.IsContextualKeyword("let") {
			if decls, isDecl := p.trySkipLetDecl(); isDecl {
				init = &js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalLet, Decls: decls}}
				break
			}
		}
		expr := p.parseExpr(js_ast.LLowest)
		init = &js_ast.Stmt{Loc: expr.Loc, Data: &js_ast.SExpr{Value: expr}}
	}

	p.allowIn = true

	// Detect for-in and for-of loops
	if p.lexer.Token == js_lexer.TIn {
		p.lexer.Next()
		value := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SForIn{Init: *init, Value: value, Body: body}}
	}

	if p.lexer.IsContextualKeyword("of") {
		p.lexer.Next()
		value := p.parseExpr(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SForOf{Init: *init, Value: value, Body: body}}
	}

	p.lexer.Expect(js_lexer.TSemicolon)

	var test *js_ast.Expr
	if p.lexer.Token != js_lexer.TSemicolon {
		expr := p.parseExpr(js_ast.LLowest)
		test = &expr
	}

	p.lexer.Expect(js_lexer.TSemicolon)

	var update *js_ast.Expr
	if p.lexer.Token != js_lexer.TCloseParen {
		expr := p.parseExpr(js_ast.LLowest)
		update = &expr
	}

	p.lexer.Expect(js_lexer.TCloseParen)
	body := p.parseStmt()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFor{Init: init, Test: test, Update: update, Body: body}}
}
