// Package stdlib is the closed catalog of built-in Carlos types, constants
// and functions that sits at the bottom of every scope chain.
package stdlib

import (
	"math"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/Carlos/lib/ast"
	"github.com/vyPal/Carlos/lib/types"
)

// Declarer receives the catalog entries. The analyzer's root scope
// implements it.
type Declarer interface {
	Declare(pos lexer.Position, name string, entity any) error
}

type Entry struct {
	Name   string
	Entity any
}

var (
	floatToFloat  = &types.Function{Params: []types.Type{types.Float}, Returns: types.Float}
	floatsToFloat = &types.Function{Params: []types.Type{types.Float, types.Float}, Returns: types.Float}
	stringToInts  = &types.Function{Params: []types.Type{types.String}, Returns: &types.Array{Elem: types.Int}}
	anyToVoid     = &types.Function{Params: []types.Type{types.Any}, Returns: types.Void}
	stdlibPos     = lexer.Position{Filename: "<stdlib>"}
	catalog       = buildCatalog()
)

func makeConstant(name string, t types.Type, value any) *ast.Variable {
	return &ast.Variable{Span: ast.At(stdlibPos), Name: name, ReadOnly: true, Typed: ast.Typed{Resolved: t}, Value: value}
}

func makeFunction(name string, t *types.Function) *ast.Function {
	return &ast.Function{Span: ast.At(stdlibPos), Name: name, Typed: ast.Typed{Resolved: t}}
}

func buildCatalog() []Entry {
	return []Entry{
		{"int", types.Int},
		{"float", types.Float},
		{"bool", types.Boolean},
		{"boolean", types.Boolean},
		{"str", types.String},
		{"string", types.String},
		{"void", types.Void},

		{"π", makeConstant("π", types.Float, math.Pi)},

		{"print", makeFunction("print", anyToVoid)},
		{"sin", makeFunction("sin", floatToFloat)},
		{"cos", makeFunction("cos", floatToFloat)},
		{"exp", makeFunction("exp", floatToFloat)},
		{"ln", makeFunction("ln", floatToFloat)},
		{"hypot", makeFunction("hypot", floatsToFloat)},
		{"bytes", makeFunction("bytes", stringToInts)},
		{"codepoints", makeFunction("codepoints", stringToInts)},
	}
}

// Catalog returns the built-in entries in declaration order. The entities
// are shared between analyses and must not be modified.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Load declares every built-in into d.
func Load(d Declarer) error {
	for _, e := range catalog {
		if err := d.Declare(stdlibPos, e.Name, e.Entity); err != nil {
			return err
		}
	}
	return nil
}
