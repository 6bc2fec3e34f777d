package main

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/Carlos/lib/analyzer"
)

// describe appends the source location to message when there is one.
func describe(pos lexer.Position, message string) string {
	if pos.Line == 0 {
		return message
	}
	filename := pos.Filename
	if filename == "" {
		filename = "<input>"
	}
	return fmt.Sprintf("%s at %s:%d:%d", message, filename, pos.Line, pos.Column)
}

// diagnostic renders a parse or analysis error with its position.
func diagnostic(err error) string {
	var semantic *analyzer.Error
	if errors.As(err, &semantic) {
		return describe(semantic.Pos, semantic.Message)
	}
	var syntax participle.Error
	if errors.As(err, &syntax) {
		return describe(syntax.Position(), "Syntax error: "+syntax.Message())
	}
	return err.Error()
}

func exitError(err error) error {
	return cli.Exit(color.RedString("%s", diagnostic(err)), 1)
}
