package js_parser

import (
	"testing"

	"github.com/e2b-dev/ijavascript-babel/internal/js_printer"
	"github.com/e2b-dev/ijavascript-babel/internal/logger"
	"github.com/e2b-dev/ijavascript-babel/internal/test"
)

func expectParseError(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		Parse(log, test.SourceForTest(contents))
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, expected)
	})
}

func expectPrinted(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		stmts, ok := Parse(log, test.SourceForTest(contents))
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, "")
		if !ok {
			t.Fatal("Parse error")
		}
		js := js_printer.Print(stmts, js_printer.Options{}).JS
		test.AssertEqualWithDiff(t, string(js), expected)
	})
}

func TestBinOp(t *testing.T) {
	expectPrinted(t, "1 + 2 * 3", "1 + 2 * 3;\n")
	expectPrinted(t, "(1 + 2) * 3", "(1 + 2) * 3;\n")
	expectPrinted(t, "1 - 2 - 3", "1 - 2 - 3;\n")
	expectPrinted(t, "1 - (2 - 3)", "1 - (2 - 3);\n")
	expectPrinted(t, "a ** b ** c", "a ** b ** c;\n")
	expectPrinted(t, "(a ** b) ** c", "(a ** b) ** c;\n")
	expectPrinted(t, "a == b != c", "a == b != c;\n")
	expectPrinted(t, "a === b !== c", "a === b !== c;\n")
	expectPrinted(t, "a << b >> c >>> d", "a << b >> c >>> d;\n")
	expectPrinted(t, "a | b & c ^ d", "a | b & c ^ d;\n")
	expectPrinted(t, "a && b || c", "a && b || c;\n")
	expectPrinted(t, "a ?? b", "a ?? b;\n")
	expectPrinted(t, "(a || b) ?? c", "(a || b) ?? c;\n")
	expectPrinted(t, "a in b", "a in b;\n")
	expectPrinted(t, "a instanceof b", "a instanceof b;\n")
	expectPrinted(t, "a, b, c", "a, b, c;\n")
}

func TestAssign(t *testing.T) {
	expectPrinted(t, "a = b", "a = b;\n")
	expectPrinted(t, "a = b = c", "a = b = c;\n")
	expectPrinted(t, "a += b", "a += b;\n")
	expectPrinted(t, "a -= b", "a -= b;\n")
	expectPrinted(t, "a **= b", "a **= b;\n")
	expectPrinted(t, "a ??= b", "a ??= b;\n")
	expectPrinted(t, "a ||= b", "a ||= b;\n")
	expectPrinted(t, "a &&= b", "a &&= b;\n")
	expectPrinted(t, "[a, b] = c", "[a, b] = c;\n")
	expectPrinted(t, "({a, b} = c)", "({ a, b } = c);\n")
}

func TestUnOp(t *testing.T) {
	expectPrinted(t, "-x", "-x;\n")
	expectPrinted(t, "+x", "+x;\n")
	expectPrinted(t, "!x", "!x;\n")
	expectPrinted(t, "~x", "~x;\n")
	expectPrinted(t, "void x", "void x;\n")
	expectPrinted(t, "typeof x", "typeof x;\n")
	expectPrinted(t, "delete x.y", "delete x.y;\n")
	expectPrinted(t, "++x", "++x;\n")
	expectPrinted(t, "x++", "x++;\n")
	expectPrinted(t, "--x", "--x;\n")
	expectPrinted(t, "x--", "x--;\n")
	expectPrinted(t, "-(-x)", "-(-x);\n")
	expectPrinted(t, "+(+x)", "+(+x);\n")
	expectPrinted(t, "-(--x)", "-(--x);\n")
}

func TestConditional(t *testing.T) {
	expectPrinted(t, "a ? b : c", "a ? b : c;\n")
	expectPrinted(t, "a ? b ? c : d : e", "a ? b ? c : d : e;\n")
	expectPrinted(t, "(a ? b : c) ? d : e", "(a ? b : c) ? d : e;\n")
	expectPrinted(t, "a ? b, c : d", "a ? (b, c) : d;\n")
}

func TestMember(t *testing.T) {
	expectPrinted(t, "a.b.c", "a.b.c;\n")
	expectPrinted(t, "a.if", "a.if;\n")
	expectPrinted(t, "a[b][c]", "a[b][c];\n")
	expectPrinted(t, "a[b, c]", "a[b, c];\n")
	expectPrinted(t, "a(b)(c)", "a(b)(c);\n")
	expectPrinted(t, "a(b, ...c)", "a(b, ...c);\n")
	expectPrinted(t, "new X()", "new X();\n")
	expectPrinted(t, "new X", "new X();\n")
	expectPrinted(t, "new a.b.C()", "new a.b.C();\n")
	expectPrinted(t, "new (a())()", "new (a())();\n")
	expectPrinted(t, "new X()()", "new X()();\n")
}

func TestLiteral(t *testing.T) {
	expectPrinted(t, "true", "true;\n")
	expectPrinted(t, "false", "false;\n")
	expectPrinted(t, "null", "null;\n")
	expectPrinted(t, "this", "this;\n")
	expectPrinted(t, "123", "123;\n")
	expectPrinted(t, "0x10", "16;\n")
	expectPrinted(t, "0b101", "5;\n")
	expectPrinted(t, "0o17", "15;\n")
	expectPrinted(t, "1_000_000", "1000000;\n")
	expectPrinted(t, "1.5e3", "1500;\n")
	expectPrinted(t, "'abc'", "\"abc\";\n")
	expectPrinted(t, "\"a'b\"", "\"a'b\";\n")
	expectPrinted(t, "'a\\nb'", "\"a\\nb\";\n")
	expectPrinted(t, "`abc`", "`abc`;\n")
	expectPrinted(t, "[1, 2, 3]", "[1, 2, 3];\n")
	expectPrinted(t, "[1, , 3]", "[1, , 3];\n")
	expectPrinted(t, "[...a]", "[...a];\n")
	expectPrinted(t, "x = {a: 1, 'b c': 2, [d]: 3}", "x = { a: 1, \"b c\": 2, [d]: 3 };\n")
	expectPrinted(t, "x = {a}", "x = { a };\n")
	expectPrinted(t, "x = {...a}", "x = { ...a };\n")
	expectPrinted(t, "x = {m() {}}", "x = { m() {\n} };\n")
	expectPrinted(t, "x = {get a() {}}", "x = { get a() {\n} };\n")
	expectPrinted(t, "x = {set a(v) {}}", "x = { set a(v) {\n} };\n")
}

func TestTemplate(t *testing.T) {
	expectParseError(t, "`a${b}c`", "<stdin>: error: Template literal substitutions are not supported\n")
	expectParseError(t, "tag`abc`", "<stdin>: error: Tagged template literals are not supported\n")
}

func TestDecls(t *testing.T) {
	expectPrinted(t, "var x", "var x;\n")
	expectPrinted(t, "let x", "let x;\n")
	expectPrinted(t, "const x = 1", "const x = 1;\n")
	expectPrinted(t, "let x = 1, y = 2", "let x = 1, y = 2;\n")
	expectPrinted(t, "let [a, b] = c", "let [a, b] = c;\n")
	expectPrinted(t, "let [a = 1] = c", "let [a = 1] = c;\n")
	expectPrinted(t, "let [, a] = c", "let [, a] = c;\n")
	expectPrinted(t, "let [...a] = c", "let [...a] = c;\n")
	expectPrinted(t, "let {a, b: c} = d", "let { a, b: c } = d;\n")
	expectPrinted(t, "let {a = 1} = d", "let { a = 1 } = d;\n")
	expectPrinted(t, "let {[a]: b} = d", "let { [a]: b } = d;\n")
	expectPrinted(t, "let {...rest} = d", "let { ...rest } = d;\n")
	expectPrinted(t, "let {a: {b}} = d", "let { a: { b } } = d;\n")

	// "let" is only a keyword when it starts a declaration
	expectPrinted(t, "let = 1", "let = 1;\n")
	expectPrinted(t, "let + 1", "let + 1;\n")
	expectPrinted(t, "let.x", "let.x;\n")
}

func TestFunction(t *testing.T) {
	expectPrinted(t, "function f() {}", "function f() {\n}\n")
	expectPrinted(t, "function f(a, b) {}", "function f(a, b) {\n}\n")
	expectPrinted(t, "function f(a = 1) {}", "function f(a = 1) {\n}\n")
	expectPrinted(t, "function f(...rest) {}", "function f(...rest) {\n}\n")
	expectPrinted(t, "function f([a], {b}) {}", "function f([a], { b }) {\n}\n")
	expectPrinted(t, "function* f() {}", "function* f() {\n}\n")
	expectPrinted(t, "async function f() {}", "async function f() {\n}\n")
	expectPrinted(t, "x = function() {}", "x = function() {\n};\n")
	expectPrinted(t, "x = function y() {}", "x = function y() {\n};\n")
	expectPrinted(t, "(function() {})()", "(function() {\n})();\n")
}

func TestArrow(t *testing.T) {
	expectPrinted(t, "x => x", "(x) => x;\n")
	expectPrinted(t, "(x) => x", "(x) => x;\n")
	expectPrinted(t, "(a, b) => a + b", "(a, b) => a + b;\n")
	expectPrinted(t, "() => {}", "() => {\n};\n")
	expectPrinted(t, "(a = 1) => a", "(a = 1) => a;\n")
	expectPrinted(t, "(...a) => a", "(...a) => a;\n")
	expectPrinted(t, "({a}) => a", "({ a }) => a;\n")
	expectPrinted(t, "([a]) => a", "([a]) => a;\n")
	expectPrinted(t, "x => ({})", "(x) => ({});\n")
	expectPrinted(t, "async x => x", "async (x) => x;\n")
	expectPrinted(t, "async () => {}", "async () => {\n};\n")
	expectPrinted(t, "a = b => c", "a = (b) => c;\n")
	expectPrinted(t, "f(a => a, b)", "f((a) => a, b);\n")

	// Not an arrow function, just a parenthesized expression
	expectPrinted(t, "(a, b)", "a, b;\n")
	expectPrinted(t, "async(x)", "async(x);\n")
}

func TestClass(t *testing.T) {
	expectPrinted(t, "class C {}", "class C {\n}\n")
	expectPrinted(t, "class C extends B {}", "class C extends B {\n}\n")
	expectPrinted(t, "class C { m() {} }", "class C {\n  m() {\n  }\n}\n")
	expectPrinted(t, "class C { static m() {} }", "class C {\n  static m() {\n  }\n}\n")
	expectPrinted(t, "class C { get a() {} }", "class C {\n  get a() {\n  }\n}\n")
	expectPrinted(t, "class C { set a(v) {} }", "class C {\n  set a(v) {\n  }\n}\n")
	expectPrinted(t, "class C { async m() {} }", "class C {\n  async m() {\n  }\n}\n")
	expectPrinted(t, "class C { *m() {} }", "class C {\n  *m() {\n  }\n}\n")
	expectPrinted(t, "class C { a = 1; }", "class C {\n  a = 1;\n}\n")
	expectPrinted(t, "class C { static a = 1; }", "class C {\n  static a = 1;\n}\n")
	expectPrinted(t, "class C { [a]() {} }", "class C {\n  [a]() {\n  }\n}\n")
	expectPrinted(t, "class C { constructor() { super() } }",
		"class C {\n  constructor() {\n    super();\n  }\n}\n")
	expectPrinted(t, "x = class {}", "x = class {\n};\n")
	expectPrinted(t, "x = class C {}", "x = class C {\n};\n")
}

func TestIf(t *testing.T) {
	expectPrinted(t, "if (a) b()", "if (a)\n  b();\n")
	expectPrinted(t, "if (a) { b() }", "if (a) {\n  b();\n}\n")
	expectPrinted(t, "if (a) b(); else c()", "if (a)\n  b();\nelse\n  c();\n")
	expectPrinted(t, "if (a) { b() } else { c() }", "if (a) {\n  b();\n} else {\n  c();\n}\n")
	expectPrinted(t, "if (a) b(); else if (c) d()", "if (a)\n  b();\nelse if (c)\n  d();\n")
}

func TestLoops(t *testing.T) {
	expectPrinted(t, "for (;;) ;", "for (; ; )\n  ;\n")
	expectPrinted(t, "for (let i = 0; i < n; i++) f()", "for (let i = 0; i < n; i++)\n  f();\n")
	expectPrinted(t, "for (a in b) f()", "for (a in b)\n  f();\n")
	expectPrinted(t, "for (const a in b) f()", "for (const a in b)\n  f();\n")
	expectPrinted(t, "for (a of b) f()", "for (a of b)\n  f();\n")
	expectPrinted(t, "for (const a of b) f()", "for (const a of b)\n  f();\n")
	expectPrinted(t, "while (a) f()", "while (a)\n  f();\n")
	expectPrinted(t, "do f(); while (a)", "do\n  f();\nwhile (a);\n")
	expectPrinted(t, "do { f() } while (a)", "do {\n  f();\n} while (a);\n")
	expectPrinted(t, "a: for (;;) { break a; continue a }",
		"a:\n  for (; ; ) {\n    break a;\n    continue a;\n  }\n")

	// The "in" operator is allowed in some places inside a for-loop
	// initializer but not others
	expectPrinted(t, "for (f('x' in y);;) ;", "for (f(\"x\" in y); ; )\n  ;\n")
	expectPrinted(t, "for ((a in b);;) ;", "for ((a in b); ; )\n  ;\n")
}

func TestSwitch(t *testing.T) {
	expectPrinted(t, "switch (a) {}", "switch (a) {\n}\n")
	expectPrinted(t, "switch (a) { case 1: b(); break; default: c() }",
		"switch (a) {\n  case 1:\n    b();\n    break;\n  default:\n    c();\n}\n")
	expectParseError(t, "switch (a) { default: b(); default: c() }",
		"<stdin>: error: Multiple default clauses are not allowed\n")
}

func TestTry(t *testing.T) {
	expectPrinted(t, "try { a() } catch (e) { b() }",
		"try {\n  a();\n} catch (e) {\n  b();\n}\n")
	expectPrinted(t, "try { a() } catch { b() }",
		"try {\n  a();\n} catch {\n  b();\n}\n")
	expectPrinted(t, "try { a() } finally { b() }",
		"try {\n  a();\n} finally {\n  b();\n}\n")
	expectPrinted(t, "try { a() } catch ({message}) { b() }",
		"try {\n  a();\n} catch ({ message }) {\n  b();\n}\n")
	expectPrinted(t, "throw new Error('x')", "throw new Error(\"x\");\n")
}

func TestAwait(t *testing.T) {
	expectPrinted(t, "await f()", "await f();\n")
	expectPrinted(t, "await new Promise(r => r())", "await new Promise((r) => r());\n")
	expectPrinted(t, "const x = await f()", "const x = await f();\n")
	expectPrinted(t, "await a + await b", "await a + await b;\n")
	expectPrinted(t, "(await a) ** b", "(await a) ** b;\n")
}

func TestImport(t *testing.T) {
	expectPrinted(t, "import 'path'", "import \"path\";\n")
	expectPrinted(t, "import x from 'path'", "import x from \"path\";\n")
	expectPrinted(t, "import * as ns from 'path'", "import * as ns from \"path\";\n")
	expectPrinted(t, "import {a, b as c} from 'path'", "import {a, b as c} from \"path\";\n")
	expectPrinted(t, "import x, {a} from 'path'", "import x, {a} from \"path\";\n")
	expectPrinted(t, "import x, * as ns from 'path'", "import x, * as ns from \"path\";\n")
	expectPrinted(t, "import {default as d} from 'path'", "import {default as d} from \"path\";\n")

	expectParseError(t, "import {default} from 'path'", "<stdin>: error: Expected \"as\" but found \"}\"\n")
	expectParseError(t, "import * from 'path'", "<stdin>: error: Expected \"as\" but found \"from\"\n")
	expectParseError(t, "import x", "<stdin>: error: Expected \"from\" but found end of file\n")
}

func TestExport(t *testing.T) {
	expectParseError(t, "export default 1", "<stdin>: error: Unexpected \"export\"\n")
	expectParseError(t, "export const x = 1", "<stdin>: error: Unexpected \"export\"\n")
}

func TestDirective(t *testing.T) {
	expectPrinted(t, "'use strict'", "\"use strict\";\n")
	expectPrinted(t, "'use strict'; f()", "\"use strict\";\nf();\n")
	expectPrinted(t, "f(); 'not a directive'", "f();\n\"not a directive\";\n")
}

func TestASI(t *testing.T) {
	expectPrinted(t, "a\nb", "a;\nb;\n")
	expectPrinted(t, "const a = 1\nconst b = 2", "const a = 1;\nconst b = 2;\n")
	expectPrinted(t, "return\n", "return;\n")
	expectPrinted(t, "x = a\n++b", "x = a;\n++b;\n")
	expectParseError(t, "a b", "<stdin>: error: Expected \";\" but found \"b\"\n")
}

func TestComments(t *testing.T) {
	expectPrinted(t, "// line\nf()", "f();\n")
	expectPrinted(t, "/* block */ f()", "f();\n")
	expectPrinted(t, "f(/* inline */ a)", "f(a);\n")
}

func TestUnsupported(t *testing.T) {
	expectParseError(t, "a?.b", "<stdin>: error: Optional chaining is not supported\n")
	expectParseError(t, "1n", "<stdin>: error: Big integer literals are not supported\n")
}
