package helpers

import (
	"testing"
)

func TestQuoteForJSON(t *testing.T) {
	check := func(input string, asciiOnly bool, expected string) {
		t.Helper()
		observed := string(QuoteForJSON(input, asciiOnly))
		if observed != expected {
			t.Fatalf("Expected %s, got %s", expected, observed)
		}
	}

	check("abc", false, "\"abc\"")
	check("a\"b", false, "\"a\\\"b\"")
	check("a'b", false, "\"a'b\"")
	check("a\\b", false, "\"a\\\\b\"")
	check("a\tb\nc", false, "\"a\\tb\\nc\"")
	check("\b\f\r", false, "\"\\b\\f\\r\"")
	check("\u0000\u001F", false, "\"\\u0000\\u001F\"")
	check("\uFEFF", false, "\"\\uFEFF\"")
	check("\u00E9", false, "\"\u00E9\"")
	check("\u00E9", true, "\"\\u00E9\"")
	check("\U0001F600", false, "\"\U0001F600\"")
	check("\U0001F600", true, "\"\\uD83D\\uDE00\"")
}

func TestQuoteSingle(t *testing.T) {
	check := func(input string, asciiOnly bool, expected string) {
		t.Helper()
		observed := string(QuoteSingle(input, asciiOnly))
		if observed != expected {
			t.Fatalf("Expected %s, got %s", expected, observed)
		}
	}

	check("abc", false, "'abc'")
	check("a'b", false, "'a\\'b'")
	check("a\"b", false, "'a\"b'")
	check("a\nb", false, "'a\\nb'")
}
