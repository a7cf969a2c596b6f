package js_printer

import (
	"testing"

	"github.com/e2b-dev/ijavascript-babel/internal/js_parser"
	"github.com/e2b-dev/ijavascript-babel/internal/logger"
	"github.com/e2b-dev/ijavascript-babel/internal/test"
)

func expectPrintedWithOptions(t *testing.T, contents string, expected string, options Options) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		stmts, ok := js_parser.Parse(log, test.SourceForTest(contents))
		if !ok {
			t.Fatal("Parse error")
		}
		js := Print(stmts, options).JS
		test.AssertEqualWithDiff(t, string(js), expected)
	})
}

func expectPrinted(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedWithOptions(t, contents, expected, Options{})
}

func TestNumber(t *testing.T) {
	expectPrinted(t, "0", "0;\n")
	expectPrinted(t, "1234567890", "1234567890;\n")
	expectPrinted(t, "0.5", "0.5;\n")
	expectPrinted(t, "1e100", "1e+100;\n")
	expectPrinted(t, "-0.5", "-0.5;\n")
	expectPrinted(t, "x = -1", "x = -1;\n")
	expectPrinted(t, "-x ** 2", "(-x) ** 2;\n")
	expectPrinted(t, "(-1) ** 2", "(-1) ** 2;\n")
	expectPrinted(t, "1 .toString()", "1 .toString();\n")
	expectPrinted(t, "1.5.toString()", "1.5.toString();\n")
}

func TestOperatorSpacing(t *testing.T) {
	expectPrinted(t, "a + +b", "a + +b;\n")
	expectPrinted(t, "a - -b", "a - -b;\n")
	expectPrinted(t, "a + ++b", "a + ++b;\n")
	expectPrinted(t, "a - --b", "a - --b;\n")
	expectPrinted(t, "typeof -a", "typeof -a;\n")
	expectPrinted(t, "void void 0", "void void 0;\n")
}

func TestString(t *testing.T) {
	expectPrinted(t, "'back\\\\slash'", "\"back\\\\slash\";\n")
	expectPrinted(t, "'tab\\tnewline\\n'", "\"tab\\tnewline\\n\";\n")
	expectPrinted(t, "'quote\"'", "\"quote\\\"\";\n")
	expectPrinted(t, "'\\u00e9'", "\"é\";\n")
	expectPrinted(t, "'\\u{1F600}'", "\"\U0001F600\";\n")
}

func TestSingleQuote(t *testing.T) {
	expectPrintedWithOptions(t, "'abc'", "'abc';\n", Options{SingleQuote: true})
	expectPrintedWithOptions(t, "\"it's\"", "'it\\'s';\n", Options{SingleQuote: true})
	expectPrintedWithOptions(t, "'quote\"'", "'quote\"';\n", Options{SingleQuote: true})
	expectPrintedWithOptions(t, "'\\u00e9'", "'\\u00E9';\n", Options{SingleQuote: true, ASCIIOnly: true})
}

func TestASCIIOnly(t *testing.T) {
	expectPrintedWithOptions(t, "'\\u00e9'", "\"\\u00E9\";\n", Options{ASCIIOnly: true})
	expectPrintedWithOptions(t, "'\\u{1F600}'", "\"\\uD83D\\uDE00\";\n", Options{ASCIIOnly: true})
}

func TestStatementStart(t *testing.T) {
	// Expressions that would be misparsed at the start of a statement get
	// wrapped in parentheses
	expectPrinted(t, "(function() {})", "(function() {\n});\n")
	expectPrinted(t, "(class {})", "(class {\n});\n")
	expectPrinted(t, "({x: 1})", "({ x: 1 });\n")
	expectPrinted(t, "({x} = y)", "({ x } = y);\n")
}

func TestIndent(t *testing.T) {
	expectPrinted(t, "if (a) { if (b) { c() } }",
		"if (a) {\n  if (b) {\n    c();\n  }\n}\n")
	expectPrinted(t, "function f() { function g() { return 1 } }",
		"function f() {\n  function g() {\n    return 1;\n  }\n}\n")
}
