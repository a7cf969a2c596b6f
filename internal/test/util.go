package test

import (
	"os"
	"testing"

	"github.com/e2b-dev/ijavascript-babel/internal/logger"
)

func AssertEqual(t *testing.T, observed interface{}, expected interface{}) {
	t.Helper()
	if observed != expected {
		t.Fatalf("%s != %s", observed, expected)
	}
}

func AssertEqualWithDiff(t *testing.T, observed interface{}, expected interface{}) {
	t.Helper()
	if observed != expected {
		stringA, ok := observed.(string)
		if !ok {
			t.Fatalf("%s != %s", observed, expected)
		}
		stringB, ok := expected.(string)
		if !ok {
			t.Fatalf("%s != %s", observed, expected)
		}
		color := logger.GetTerminalInfo(os.Stderr).UseColorEscapes
		t.Fatalf("%s\n%s", "Observed differs from expected:", Diff(stringB, stringA, color))
	}
}

func SourceForTest(contents string) logger.Source {
	return logger.Source{
		Index:      0,
		PrettyPath: "<stdin>",
		Contents:   contents,
	}
}
