package api

import (
	"testing"

	"github.com/e2b-dev/ijavascript-babel/internal/test"
)

func expectTransformed(t *testing.T, input string, expected string) {
	t.Helper()
	t.Run(input, func(t *testing.T) {
		t.Helper()
		result := Transform(input, TransformOptions{})
		if len(result.Errors) != 0 {
			t.Fatalf("Unexpected errors: %v", result.Errors)
		}
		test.AssertEqualWithDiff(t, string(result.Code), expected)
	})
}

func TestTransform(t *testing.T) {
	expectTransformed(t, "import x from 'path'", "const x = require(\"path\");\n")
	expectTransformed(t, "const y = await f()",
		`let y;
(async () => {
  y = await f();
})();
`)
	expectTransformed(t, "import {go} from 'mod'; await go();",
		`const { go } = require("mod");
(async () => {
  return await go();
})();
`)
}

func TestTransformNoRewrites(t *testing.T) {
	expectTransformed(t, "const x = 1;\nconsole.log(x);\n",
		"const x = 1;\nconsole.log(x);\n")
}

func TestTransformParseError(t *testing.T) {
	result := Transform("const x = ", TransformOptions{})
	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %v", result.Errors)
	}
	if result.Code != nil {
		t.Fatal("Expected no code on error")
	}
	msg := result.Errors[0]
	test.AssertEqual(t, msg.Text, "Unexpected end of file")
	if msg.Location == nil {
		t.Fatal("Expected a location")
	}
	test.AssertEqual(t, msg.Location.File, "<stdin>")
	test.AssertEqual(t, msg.Location.Line, 1)
}

func TestTransformTopLevelReturnError(t *testing.T) {
	result := Transform("f();\nreturn 42;\n", TransformOptions{})
	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %v", result.Errors)
	}
	msg := result.Errors[0]
	test.AssertEqual(t, msg.Text, "Top-level return cannot be used inside an ECMAScript module")
	if msg.Location == nil {
		t.Fatal("Expected a location")
	}
	test.AssertEqual(t, msg.Location.Line, 2)
	test.AssertEqual(t, msg.Location.Column, 0)
	test.AssertEqual(t, msg.Location.Length, 6)
}

func TestTransformSourcefile(t *testing.T) {
	result := Transform("await (", TransformOptions{Sourcefile: "cell-3.js"})
	if len(result.Errors) == 0 {
		t.Fatal("Expected an error")
	}
	if result.Errors[0].Location == nil {
		t.Fatal("Expected a location")
	}
	test.AssertEqual(t, result.Errors[0].Location.File, "cell-3.js")
}

func TestTransformSingleQuote(t *testing.T) {
	result := Transform("import x from 'path'", TransformOptions{SingleQuote: true})
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}
	test.AssertEqualWithDiff(t, string(result.Code), "const x = require('path');\n")
}

func TestTransformASCIIOnly(t *testing.T) {
	result := Transform("const s = 'café'", TransformOptions{ASCIIOnly: true})
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}
	test.AssertEqualWithDiff(t, string(result.Code), "const s = \"caf\\u00E9\";\n")
}
