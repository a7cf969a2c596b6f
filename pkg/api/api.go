// This API transforms a single chunk of JavaScript source code, such as one
// notebook cell or one REPL entry, into a form that can run in a plain
// CommonJS environment: import statements become require calls and top-level
// await moves into an async wrapper.
package api

type Location struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
	LineText string
}

type Message struct {
	Text     string
	Location *Location
}

type TransformOptions struct {
	// The name of the input, used in error messages. Defaults to "<stdin>".
	Sourcefile string

	// If true, escape non-ASCII characters in the output using backslash
	// escapes
	ASCIIOnly bool

	// If true, print string literals with single quotes, the style most
	// notebook front ends display
	SingleQuote bool
}

type TransformResult struct {
	Errors   []Message
	Warnings []Message

	// Only valid when there are no errors
	Code []byte
}

// Transform parses the given source code, applies both rewrites, and prints
// the result. Errors are returned in the result instead of being printed.
func Transform(input string, options TransformOptions) TransformResult {
	return transformImpl(input, options)
}
