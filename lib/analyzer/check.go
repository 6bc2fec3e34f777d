package analyzer

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/Carlos/lib/ast"
	"github.com/vyPal/Carlos/lib/types"
)

func mustBeBoolean(e ast.Expression, pos lexer.Position) error {
	if !types.IsBoolean(e.Type()) {
		return posError(TypeMismatch, pos, "Expected a boolean, found %s", e.Type())
	}
	return nil
}

func mustBeInteger(e ast.Expression, pos lexer.Position) error {
	if !types.IsInteger(e.Type()) {
		return posError(TypeMismatch, pos, "Expected an integer, found %s", e.Type())
	}
	return nil
}

func mustBeNumeric(e ast.Expression, pos lexer.Position) error {
	if !types.IsNumeric(e.Type()) {
		return posError(TypeMismatch, pos, "Expected a number, found %s", e.Type())
	}
	return nil
}

func mustBeNumericOrString(e ast.Expression, pos lexer.Position) error {
	if !types.IsNumericOrString(e.Type()) {
		return posError(TypeMismatch, pos, "Expected a number or string, found %s", e.Type())
	}
	return nil
}

func mustBeArray(e ast.Expression, pos lexer.Position) (*types.Array, error) {
	t, ok := e.Type().(*types.Array)
	if !ok {
		return nil, posError(ArrayExpected, pos, "Array expected")
	}
	return t, nil
}

func mustBeOptional(e ast.Expression, pos lexer.Position) (*types.Optional, error) {
	t, ok := e.Type().(*types.Optional)
	if !ok {
		return nil, posError(OptionalExpected, pos, "Optional expected")
	}
	return t, nil
}

func mustHaveSameType(a, b ast.Expression, pos lexer.Position) error {
	if !types.Equals(a.Type(), b.Type()) {
		return posError(TypeMismatch, pos, "Operands do not have the same type")
	}
	return nil
}

func mustAllHaveSameType(es []ast.Expression, pos lexer.Position) error {
	for _, e := range es[1:] {
		if !types.Equals(e.Type(), es[0].Type()) {
			return posError(TypeMismatch, pos, "Not all elements have the same type")
		}
	}
	return nil
}

func mustBeAssignable(e ast.Expression, target types.Type, pos lexer.Position) error {
	if !types.Assignable(e.Type(), target) {
		return posError(TypeMismatch, pos, "Cannot assign a %s to a %s", e.Type(), target)
	}
	return nil
}

func mustBeWritable(e ast.Expression, pos lexer.Position) error {
	if v, ok := e.(*ast.Variable); ok && v.ReadOnly {
		return posError(ReadOnlyTarget, pos, "Cannot assign to constant %s", v.Name)
	}
	return nil
}

// mustMatch checks the analyzed arguments of call against the parameter
// (or field) types of its callee.
func mustMatch(call *ast.Call, args []ast.Expression, params []types.Type) error {
	if len(args) != len(params) {
		return posError(ArityMismatch, call.Pos(), "%d argument(s) required but %d passed", len(params), len(args))
	}
	for i, arg := range args {
		if err := mustBeAssignable(arg, params[i], call.Args[i].Pos()); err != nil {
			return err
		}
	}
	return nil
}
