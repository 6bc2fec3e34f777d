package analyzer

import (
	"fmt"

	"github.com/vyPal/Carlos/lib/ast"
	"github.com/vyPal/Carlos/lib/types"
)

// resolveType turns a type expression into a type, looking names up in
// the current scope.
func (ctx *Context) resolveType(t ast.TypeExpr) (types.Type, error) {
	switch t := t.(type) {
	case *ast.TypeName:
		entity, err := ctx.Lookup(t.Pos(), t.Name)
		if err != nil {
			return nil, err
		}
		typ, ok := entity.(types.Type)
		if !ok {
			return nil, posError(TypeExpected, t.Pos(), "Type expected")
		}
		return typ, nil
	case *ast.ArrayTypeExpr:
		elem, err := ctx.resolveType(t.Elem)
		if err != nil {
			return nil, err
		}
		return &types.Array{Elem: elem}, nil
	case *ast.OptionalTypeExpr:
		base, err := ctx.resolveType(t.Base)
		if err != nil {
			return nil, err
		}
		return &types.Optional{Base: base}, nil
	case *ast.FunctionTypeExpr:
		params := make([]types.Type, 0, len(t.Params))
		for _, p := range t.Params {
			pt, err := ctx.resolveType(p)
			if err != nil {
				return nil, err
			}
			params = append(params, pt)
		}
		returns, err := ctx.resolveType(t.Returns)
		if err != nil {
			return nil, err
		}
		return &types.Function{Params: params, Returns: returns}, nil
	}
	panic(fmt.Sprintf("Unknown type expression: %T", t))
}
