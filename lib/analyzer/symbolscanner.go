package analyzer

import (
	"github.com/vyPal/Carlos/lib/ast"
	"github.com/vyPal/Carlos/lib/types"
)

// Symbol is a top-level name declared by a program.
type Symbol struct {
	Name string
	Kind string
	Type types.Type
}

// ScanSymbols lists the top-level declarations of an analyzed program in
// source order. Kind is one of "variable", "constant", "function" or
// "struct".
func ScanSymbols(prog *ast.Program) []Symbol {
	var symbols []Symbol
	for _, statement := range prog.Statements {
		switch s := statement.(type) {
		case *ast.VariableDeclaration:
			kind := "variable"
			if s.ReadOnly {
				kind = "constant"
			}
			symbols = append(symbols, Symbol{Name: s.Name, Kind: kind, Type: s.Variable.Type()})
		case *ast.FunctionDeclaration:
			symbols = append(symbols, Symbol{Name: s.Name, Kind: "function", Type: s.Function.Type()})
		case *ast.StructDeclaration:
			symbols = append(symbols, Symbol{Name: s.Name, Kind: "struct", Type: s.Struct})
		}
	}
	return symbols
}
