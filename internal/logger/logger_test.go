package logger

import (
	"testing"
)

func TestLineAndColumn(t *testing.T) {
	contents := "first\nsecond\nthird\n"
	source := Source{PrettyPath: "file.js", Contents: contents}

	check := func(offset int32, line int, column int) {
		t.Helper()
		location := LocationOrNil(&source, Range{Loc: Loc{Start: offset}})
		if location.Line != line || location.Column != column {
			t.Fatalf("Offset %d: expected %d:%d but got %d:%d",
				offset, line, column, location.Line, location.Column)
		}
	}

	check(0, 1, 0)
	check(4, 1, 4)
	check(6, 2, 0)
	check(13, 3, 0)
	check(17, 3, 4)
}

func TestMsgString(t *testing.T) {
	source := Source{PrettyPath: "file.js", Contents: "let x = y;\n"}
	log := NewDeferLog()
	log.AddRangeError(&source, Range{Loc: Loc{Start: 8}, Len: 1}, "Could not resolve \"y\"")

	msgs := log.Done()
	if len(msgs) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(msgs))
	}

	observed := msgs[0].String(StderrOptions{}, TerminalInfo{})
	expected := "file.js: error: Could not resolve \"y\"\n"
	if observed != expected {
		t.Fatalf("Expected %q, got %q", expected, observed)
	}

	observed = msgs[0].String(StderrOptions{IncludeSource: true}, TerminalInfo{})
	expected = "file.js:1:8: error: Could not resolve \"y\"\nlet x = y;\n        ^\n"
	if observed != expected {
		t.Fatalf("Expected %q, got %q", expected, observed)
	}
}

func TestDeferLogHasErrors(t *testing.T) {
	log := NewDeferLog()
	if log.HasErrors() {
		t.Fatal("Expected no errors")
	}

	source := Source{PrettyPath: "file.js", Contents: "x"}
	log.AddWarning(&source, Loc{}, "A warning")
	if log.HasErrors() {
		t.Fatal("Warnings are not errors")
	}

	log.AddError(&source, Loc{}, "An error")
	if !log.HasErrors() {
		t.Fatal("Expected an error")
	}
}
