package carlex

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Keywords are reserved and never lex as identifiers.
var Keywords = []string{
	"let", "const", "struct", "function", "if", "else", "while", "repeat",
	"for", "in", "break", "return", "some", "no", "of", "true", "false",
}

// Definition is the Carlos token set. Comments and whitespace are produced
// as tokens and elided by the parser.
var Definition lexer.Definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Float", Pattern: `\d+\.\d+(?:[eE][+-]?\d+)?`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Keyword", Pattern: `(?:let|const|struct|function|if|else|while|repeat|for|in|break|return|some|no|of|true|false)\b`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Operator", Pattern: `\.\.\.|\.\.<|\*\*|\+\+|--|->|<<|>>|<=|>=|==|!=|&&|\|\||\?\?|[-+*/%<>=!#&|^?:;,.(){}\[\]]`},
})
