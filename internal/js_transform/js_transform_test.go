package js_transform

import (
	"testing"

	"github.com/e2b-dev/ijavascript-babel/internal/js_parser"
	"github.com/e2b-dev/ijavascript-babel/internal/js_printer"
	"github.com/e2b-dev/ijavascript-babel/internal/logger"
	"github.com/e2b-dev/ijavascript-babel/internal/test"
)

func expectLowered(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		source := test.SourceForTest(contents)
		stmts, ok := js_parser.Parse(log, source)
		if !ok {
			t.Fatal("Parse error")
		}

		stmts = LowerImports(stmts)
		stmts, ok = LowerTopLevelAwait(log, source, stmts)

		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, "")
		if !ok {
			t.Fatal("Transform error")
		}

		js := js_printer.Print(stmts, js_printer.Options{}).JS
		test.AssertEqualWithDiff(t, string(js), expected)
	})
}

func expectLoweredError(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		source := test.SourceForTest(contents)
		stmts, ok := js_parser.Parse(log, source)
		if !ok {
			t.Fatal("Parse error")
		}

		stmts = LowerImports(stmts)
		lowered, ok := LowerTopLevelAwait(log, source, stmts)

		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, expected)
		if ok {
			t.Fatal("Expected a transform error")
		}

		// The failure path must not modify the program
		before := js_printer.Print(stmts, js_printer.Options{}).JS
		after := js_printer.Print(lowered, js_printer.Options{}).JS
		test.AssertEqualWithDiff(t, string(after), string(before))
	})
}

func TestImportSideEffect(t *testing.T) {
	expectLowered(t, "import 'path'", "require(\"path\");\n")
	expectLowered(t, "import './side-effect.js'", "require(\"./side-effect.js\");\n")
}

func TestImportDefault(t *testing.T) {
	expectLowered(t, "import x from 'path'", "const x = require(\"path\");\n")
}

func TestImportNamespace(t *testing.T) {
	expectLowered(t, "import * as ns from 'path'", "const ns = require(\"path\");\n")
}

func TestImportNamed(t *testing.T) {
	expectLowered(t, "import {a} from 'path'", "const { a } = require(\"path\");\n")
	expectLowered(t, "import {a, b as c} from 'path'", "const { a, b: c } = require(\"path\");\n")
	expectLowered(t, "import {default as d} from 'path'", "const { default: d } = require(\"path\");\n")
}

func TestImportMixed(t *testing.T) {
	expectLowered(t, "import x, {a} from 'path'",
		"const x = require(\"path\"), { a } = require(\"path\");\n")
	expectLowered(t, "import x, * as ns from 'path'",
		"const x = require(\"path\"), ns = require(\"path\");\n")
}

func TestImportOrder(t *testing.T) {
	expectLowered(t, "f();\nimport x from 'path';\ng()",
		"f();\nconst x = require(\"path\");\ng();\n")
}

func TestImportIdempotent(t *testing.T) {
	// Rewriting the output of the import rewrite must change nothing
	contents := "const x = require(\"path\");\nconst { a, b: c } = require(\"other\");\n"
	expectLowered(t, contents, contents)
}

func TestAwaitNone(t *testing.T) {
	// A program without top-level await passes through untouched
	contents := "const x = 1;\nfunction f() {\n  return 2;\n}\nf();\n"
	expectLowered(t, contents, contents)
}

func TestAwaitNoneNodeForNode(t *testing.T) {
	log := logger.NewDeferLog()
	source := test.SourceForTest("const x = 1; f(x)")
	stmts, ok := js_parser.Parse(log, source)
	if !ok {
		t.Fatal("Parse error")
	}

	lowered, ok := LowerTopLevelAwait(log, source, stmts)
	if !ok {
		t.Fatal("Transform error")
	}
	if len(lowered) != len(stmts) {
		t.Fatalf("Statement count changed from %d to %d", len(stmts), len(lowered))
	}
	for i := range stmts {
		if lowered[i].Data != stmts[i].Data {
			t.Fatalf("Statement %d was rebuilt", i)
		}
	}
}

func TestAwaitSplit(t *testing.T) {
	expectLowered(t, "const x = 1; const y = await f(); const z = 3;",
		`const x = 1;
let y, z;
(async () => {
  y = await f();
  z = 3;
})();
`)
}

func TestAwaitTrailingExpr(t *testing.T) {
	// The value of a trailing expression statement is returned from the
	// wrapper, but a trailing assignment is not
	expectLowered(t, "await g(); f();",
		`(async () => {
  await g();
  return f();
})();
`)
	expectLowered(t, "const y = await g(); y.x = 1;",
		`let y;
(async () => {
  y = await g();
  y.x = 1;
})();
`)
	expectLowered(t, "await f()",
		`(async () => {
  return await f();
})();
`)
}

func TestAwaitDestructuring(t *testing.T) {
	expectLowered(t, "const {a, b: c} = await f();",
		`let a, c;
(async () => {
  ({ a, b: c } = await f());
})();
`)
	expectLowered(t, "const [a, , b] = await f();",
		`let a, b;
(async () => {
  [a, , b] = await f();
})();
`)
	expectLowered(t, "const {a = 1} = await f();",
		`let a;
(async () => {
  ({ a = 1 } = await f());
})();
`)
}

func TestAwaitUninitializedDecl(t *testing.T) {
	expectLowered(t, "let y = await f(); let z;",
		`let y, z;
(async () => {
  y = await f();
  z = undefined;
})();
`)
}

func TestAwaitVarKinds(t *testing.T) {
	expectLowered(t, "var a = await f(); let b = 2; const c = 3;",
		`let a, b, c;
(async () => {
  a = await f();
  b = 2;
  c = 3;
})();
`)
}

func TestAwaitClass(t *testing.T) {
	expectLowered(t, "class C {} const inst = await g(new C());",
		`let C, inst;
(async () => {
  C = class C {
  };
  inst = await g(new C());
})();
`)
}

func TestAwaitClassExtends(t *testing.T) {
	// The extends clause evaluates when the class definition does, so an
	// await there counts as a top-level await
	expectLowered(t, "class C extends (await f()) {}",
		`let C;
(async () => {
  C = class C extends (await f()) {
  };
})();
`)
}

func TestAwaitClassComputedKey(t *testing.T) {
	// Computed keys also evaluate at class-definition time, unlike method
	// bodies and field initializers
	expectLowered(t, "class C { [await k()]() {} }",
		`let C;
(async () => {
  C = class C {
    [await k()]() {
    }
  };
})();
`)
}

func TestAwaitImportPrefix(t *testing.T) {
	// Imports stay in the synchronous prefix when they come before the await
	expectLowered(t, "import {f} from 'mod'; const y = await f();",
		`const { f } = require("mod");
let y;
(async () => {
  y = await f();
})();
`)
}

func TestAwaitNestedFunctions(t *testing.T) {
	// Await inside a function is not top-level no matter how deeply the
	// function is buried in non-function constructs
	contents := `if (x) {
  for (;; ) {
    const f = async () => {
      return await g();
    };
  }
}
`
	expectLowered(t, contents, `if (x) {
  for (; ; ) {
    const f = async () => {
      return await g();
    };
  }
}
`)
}

func TestAwaitInsideControlFlow(t *testing.T) {
	// Await nested in blocks, conditionals, and loops is still top-level
	expectLowered(t, "if (x) { await f(); }",
		`(async () => {
  if (x) {
    await f();
  }
})();
`)
	expectLowered(t, "for (const a of b) await f(a);",
		`(async () => {
  for (const a of b)
    await f(a);
})();
`)
}

func TestTopLevelReturn(t *testing.T) {
	expectLoweredError(t, "return 42; await x;",
		"<stdin>: error: Top-level return cannot be used inside an ECMAScript module\n")
	expectLoweredError(t, "return 42;",
		"<stdin>: error: Top-level return cannot be used inside an ECMAScript module\n")
	expectLoweredError(t, "if (x) { return; } await f();",
		"<stdin>: error: Top-level return cannot be used inside an ECMAScript module\n")

	// A return inside a function is fine, and the function itself stays in
	// the synchronous prefix
	expectLowered(t, "function f() { return 42; } await f();",
		`function f() {
  return 42;
}
(async () => {
  return await f();
})();
`)
}
