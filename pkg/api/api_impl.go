package api

import (
	"github.com/e2b-dev/ijavascript-babel/internal/js_parser"
	"github.com/e2b-dev/ijavascript-babel/internal/js_printer"
	"github.com/e2b-dev/ijavascript-babel/internal/js_transform"
	"github.com/e2b-dev/ijavascript-babel/internal/logger"
)

func transformImpl(input string, options TransformOptions) TransformResult {
	prettyPath := options.Sourcefile
	if prettyPath == "" {
		prettyPath = "<stdin>"
	}

	log := logger.NewDeferLog()
	source := logger.Source{
		Index:      0,
		PrettyPath: prettyPath,
		Contents:   input,
	}

	stmts, ok := js_parser.Parse(log, source)
	if ok {
		stmts = js_transform.LowerImports(stmts)
		stmts, ok = js_transform.LowerTopLevelAwait(log, source, stmts)
	}

	msgs := log.Done()
	result := TransformResult{
		Errors:   convertMessages(msgs, logger.Error),
		Warnings: convertMessages(msgs, logger.Warning),
	}

	if ok && !log.HasErrors() {
		result.Code = js_printer.Print(stmts, js_printer.Options{
			ASCIIOnly:   options.ASCIIOnly,
			SingleQuote: options.SingleQuote,
		}).JS
	}

	return result
}

func convertMessages(msgs []logger.Msg, kind logger.MsgKind) []Message {
	var filtered []Message
	for _, msg := range msgs {
		if msg.Kind != kind {
			continue
		}

		var location *Location
		if msg.Location != nil {
			location = &Location{
				File:     msg.Location.File,
				Line:     msg.Location.Line,
				Column:   msg.Location.Column,
				Length:   msg.Location.Length,
				LineText: msg.Location.LineText,
			}
		}

		filtered = append(filtered, Message{Text: msg.Text, Location: location})
	}
	return filtered
}
