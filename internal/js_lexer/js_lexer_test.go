package js_lexer

import (
	"testing"

	"github.com/e2b-dev/ijavascript-babel/internal/logger"
	"github.com/e2b-dev/ijavascript-babel/internal/test"
)

func lexToken(contents string) (T, Lexer) {
	log := logger.NewDeferLog()
	lexer := NewLexer(log, test.SourceForTest(contents))
	return lexer.Token, lexer
}

func expectLexerError(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		func() {
			defer func() {
				r := recover()
				if _, isLexerPanic := r.(LexerPanic); r != nil && !isLexerPanic {
					panic(r)
				}
			}()
			lexer := NewLexer(log, test.SourceForTest(contents))
			for lexer.Token != TEndOfFile {
				lexer.Next()
			}
		}()
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, expected)
	})
}

func expectNumber(t *testing.T, contents string, expected float64) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		token, lexer := lexToken(contents)
		test.AssertEqual(t, token, TNumericLiteral)
		test.AssertEqual(t, lexer.Number, expected)
	})
}

func expectString(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		token, lexer := lexToken(contents)
		test.AssertEqual(t, token, TStringLiteral)
		test.AssertEqual(t, lexer.StringLiteral, expected)
	})
}

func expectIdentifier(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		token, lexer := lexToken(contents)
		test.AssertEqual(t, token, TIdentifier)
		test.AssertEqual(t, lexer.Identifier, expected)
	})
}

func TestTokens(t *testing.T) {
	expected := []struct {
		contents string
		token    T
	}{
		{"", TEndOfFile},
		{"\x00", TSyntaxError},

		// Punctuation
		{"(", TOpenParen},
		{")", TCloseParen},
		{"[", TOpenBracket},
		{"]", TCloseBracket},
		{"{", TOpenBrace},
		{"}", TCloseBrace},

		// Reserved words
		{"break", TBreak},
		{"class", TClass},
		{"const", TConst},
		{"import", TImport},
		{"return", TReturn},
		{"typeof", TTypeof},

		// Contextual keywords lex as identifiers
		{"let", TIdentifier},
		{"async", TIdentifier},
		{"await", TIdentifier},
		{"of", TIdentifier},
		{"as", TIdentifier},
	}

	for _, it := range expected {
		t.Run(it.contents, func(t *testing.T) {
			token, _ := lexToken(it.contents)
			test.AssertEqual(t, token, it.token)
		})
	}
}

func TestIdentifier(t *testing.T) {
	expectIdentifier(t, "_", "_")
	expectIdentifier(t, "$", "$")
	expectIdentifier(t, "test", "test")
	expectIdentifier(t, "t0st", "t0st")
	expectIdentifier(t, "éllo", "éllo")
}

func TestNumericLiteral(t *testing.T) {
	expectNumber(t, "0", 0)
	expectNumber(t, "123", 123)
	expectNumber(t, "987654321", 987654321)
	expectNumber(t, "0.5", 0.5)
	expectNumber(t, ".5", 0.5)
	expectNumber(t, "1.5e2", 150)
	expectNumber(t, "1E2", 100)
	expectNumber(t, "1e-2", 0.01)
	expectNumber(t, "0b1011", 11)
	expectNumber(t, "0o777", 511)
	expectNumber(t, "0xFF", 255)
	expectNumber(t, "1_000_000", 1000000)
	expectNumber(t, "0b10_01", 9)

	expectLexerError(t, "1a", "<stdin>: error: Syntax error \"a\"\n")
	expectLexerError(t, "1n", "<stdin>: error: Big integer literals are not supported\n")
	expectLexerError(t, "0x", "<stdin>: error: Invalid number\n")
}

func TestStringLiteral(t *testing.T) {
	expectString(t, "'abc'", "abc")
	expectString(t, "\"abc\"", "abc")
	expectString(t, "'a\\nb'", "a\nb")
	expectString(t, "'a\\tb'", "a\tb")
	expectString(t, "'\\x41'", "A")
	expectString(t, "'\\u0041'", "A")
	expectString(t, "'\\u{41}'", "A")
	expectString(t, "'\\u{1F600}'", "\U0001F600")
	expectString(t, "'quote\\''", "quote'")
	expectString(t, "'a\\\nb'", "ab")

	expectLexerError(t, "'abc", "<stdin>: error: Unexpected end of file\n")
	expectLexerError(t, "'a\nb'", "<stdin>: error: Unterminated string literal\n")
}

func TestTemplateLiteral(t *testing.T) {
	t.Run("`abc`", func(t *testing.T) {
		token, lexer := lexToken("`abc`")
		test.AssertEqual(t, token, TNoSubstitutionTemplateLiteral)
		test.AssertEqual(t, lexer.RawTemplateContents(), "abc")
	})

	expectLexerError(t, "`a${b}c`", "<stdin>: error: Template literal substitutions are not supported\n")
}

func TestComment(t *testing.T) {
	token, _ := lexToken("// comment")
	test.AssertEqual(t, token, TEndOfFile)

	token, _ = lexToken("/* comment */ x")
	test.AssertEqual(t, token, TIdentifier)

	expectLexerError(t, "/* unterminated", "<stdin>: error: Expected \"*/\" to terminate multi-line comment\n")
}

func TestNewlineBefore(t *testing.T) {
	log := logger.NewDeferLog()
	lexer := NewLexer(log, test.SourceForTest("a\nb c"))
	test.AssertEqual(t, lexer.HasNewlineBefore, false)
	lexer.Next()
	test.AssertEqual(t, lexer.HasNewlineBefore, true)
	lexer.Next()
	test.AssertEqual(t, lexer.HasNewlineBefore, false)
}
