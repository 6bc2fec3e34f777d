// Package parser reads Carlos source into an unresolved ast.Program.
package parser

import (
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
	"github.com/vyPal/Carlos/lib/ast"
	carlex "github.com/vyPal/Carlos/lib/lexer"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(carlex.Definition),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(4),
)

// Parser exposes the underlying grammar, e.g. for printing its EBNF.
func Parser() *participle.Parser[Program] {
	return parser
}

// ParseGrammar parses source into the raw grammar tree.
func ParseGrammar(filename, source string) (*Program, error) {
	return parser.ParseString(filename, source)
}

// ParseString parses source and converts it into an ast.Program. Errors are
// participle errors and carry the offending position.
func ParseString(filename, source string) (*ast.Program, error) {
	program, err := ParseGrammar(filename, source)
	if err != nil {
		return nil, err
	}
	return build(program)
}

func ParseFile(filename string) (*ast.Program, error) {
	file, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	return ParseString(filename, string(file))
}
