package analyzer

import (
	"fmt"

	"github.com/vyPal/Carlos/lib/ast"
	"github.com/vyPal/Carlos/lib/types"
)

func (ctx *Context) analyzeExpression(expr ast.Expression) (ast.Expression, error) {
	switch e := expr.(type) {
	// Literals carry their own type and are shared with the input tree.
	case *ast.IntLiteral, *ast.FloatLiteral, *ast.BoolLiteral, *ast.StringLiteral:
		return e, nil
	case *ast.Variable, *ast.Function, *ast.StructRef:
		return e, nil
	case *ast.Identifier:
		return ctx.analyzeIdentifier(e)
	case *ast.Conditional:
		return ctx.analyzeConditional(e)
	case *ast.UnwrapElse:
		return ctx.analyzeUnwrapElse(e)
	case *ast.Or:
		operands, err := ctx.analyzeLogical(e.Operands)
		if err != nil {
			return nil, err
		}
		return &ast.Or{Span: e.Span, Operands: operands, Typed: ast.Typed{Resolved: types.Boolean}}, nil
	case *ast.And:
		operands, err := ctx.analyzeLogical(e.Operands)
		if err != nil {
			return nil, err
		}
		return &ast.And{Span: e.Span, Operands: operands, Typed: ast.Typed{Resolved: types.Boolean}}, nil
	case *ast.Binary:
		return ctx.analyzeBinary(e)
	case *ast.Unary:
		return ctx.analyzeUnary(e)
	case *ast.EmptyArray:
		elem, err := ctx.resolveType(e.ElemType)
		if err != nil {
			return nil, err
		}
		return &ast.EmptyArray{Span: e.Span, Typed: ast.Typed{Resolved: &types.Array{Elem: elem}}}, nil
	case *ast.EmptyOptional:
		base, err := ctx.resolveType(e.BaseType)
		if err != nil {
			return nil, err
		}
		return &ast.EmptyOptional{Span: e.Span, Typed: ast.Typed{Resolved: &types.Optional{Base: base}}}, nil
	case *ast.ArrayLiteral:
		return ctx.analyzeArrayLiteral(e)
	case *ast.Subscript:
		return ctx.analyzeSubscript(e)
	case *ast.Member:
		return ctx.analyzeMember(e)
	case *ast.Call:
		return ctx.analyzeCall(e)
	}
	panic(fmt.Sprintf("Unknown expression: %T", expr))
}

// analyzeIdentifier binds a name in value position. Types may only appear
// there as the callee of a constructor call, see analyzeCallee.
func (ctx *Context) analyzeIdentifier(id *ast.Identifier) (ast.Expression, error) {
	entity, err := ctx.Lookup(id.Pos(), id.Name)
	if err != nil {
		return nil, err
	}
	switch entity := entity.(type) {
	case *ast.Variable:
		return entity, nil
	case *ast.Function:
		return entity, nil
	}
	return nil, posError(TypeMismatch, id.Pos(), "Expected a value, found type %s", id.Name)
}

func (ctx *Context) analyzeConditional(e *ast.Conditional) (*ast.Conditional, error) {
	test, err := ctx.analyzeExpression(e.Test)
	if err != nil {
		return nil, err
	}
	if err := mustBeBoolean(test, e.Test.Pos()); err != nil {
		return nil, err
	}
	consequent, err := ctx.analyzeExpression(e.Consequent)
	if err != nil {
		return nil, err
	}
	alternate, err := ctx.analyzeExpression(e.Alternate)
	if err != nil {
		return nil, err
	}
	if err := mustHaveSameType(consequent, alternate, e.Alternate.Pos()); err != nil {
		return nil, err
	}
	return &ast.Conditional{
		Span:       e.Span,
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
		Typed:      ast.Typed{Resolved: consequent.Type()},
	}, nil
}

func (ctx *Context) analyzeUnwrapElse(e *ast.UnwrapElse) (*ast.UnwrapElse, error) {
	optional, err := ctx.analyzeExpression(e.Optional)
	if err != nil {
		return nil, err
	}
	opt, err := mustBeOptional(optional, e.Optional.Pos())
	if err != nil {
		return nil, err
	}
	alternate, err := ctx.analyzeExpression(e.Alternate)
	if err != nil {
		return nil, err
	}
	if err := mustBeAssignable(alternate, opt.Base, e.Alternate.Pos()); err != nil {
		return nil, err
	}
	return &ast.UnwrapElse{
		Span:      e.Span,
		Optional:  optional,
		Alternate: alternate,
		Typed:     ast.Typed{Resolved: opt.Base},
	}, nil
}

func (ctx *Context) analyzeLogical(operands []ast.Expression) ([]ast.Expression, error) {
	out := make([]ast.Expression, 0, len(operands))
	for _, o := range operands {
		operand, err := ctx.analyzeExpression(o)
		if err != nil {
			return nil, err
		}
		if err := mustBeBoolean(operand, o.Pos()); err != nil {
			return nil, err
		}
		out = append(out, operand)
	}
	return out, nil
}

func (ctx *Context) analyzeBinary(e *ast.Binary) (*ast.Binary, error) {
	left, err := ctx.analyzeExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := ctx.analyzeExpression(e.Right)
	if err != nil {
		return nil, err
	}

	switch types.ClassifyBinary(e.Op) {
	case types.OpAdditive, types.OpRelational:
		if err := mustBeNumericOrString(left, e.Left.Pos()); err != nil {
			return nil, err
		}
		if err := mustHaveSameType(left, right, e.Right.Pos()); err != nil {
			return nil, err
		}
	case types.OpArithmetic:
		if err := mustBeNumeric(left, e.Left.Pos()); err != nil {
			return nil, err
		}
		if err := mustHaveSameType(left, right, e.Right.Pos()); err != nil {
			return nil, err
		}
	case types.OpEquality:
		if err := mustHaveSameType(left, right, e.Right.Pos()); err != nil {
			return nil, err
		}
	case types.OpBitwise:
		if err := mustBeInteger(left, e.Left.Pos()); err != nil {
			return nil, err
		}
		if err := mustBeInteger(right, e.Right.Pos()); err != nil {
			return nil, err
		}
	case types.OpLogical:
		if err := mustBeBoolean(left, e.Left.Pos()); err != nil {
			return nil, err
		}
		if err := mustBeBoolean(right, e.Right.Pos()); err != nil {
			return nil, err
		}
	default:
		panic(fmt.Sprintf("Unknown operator: %s", e.Op))
	}

	return &ast.Binary{
		Span:  e.Span,
		Op:    e.Op,
		Left:  left,
		Right: right,
		Typed: ast.Typed{Resolved: types.BinaryResult(e.Op, left.Type())},
	}, nil
}

func (ctx *Context) analyzeUnary(e *ast.Unary) (*ast.Unary, error) {
	operand, err := ctx.analyzeExpression(e.Operand)
	if err != nil {
		return nil, err
	}

	var t types.Type
	switch e.Op {
	case "-":
		if err := mustBeNumeric(operand, e.Operand.Pos()); err != nil {
			return nil, err
		}
		t = operand.Type()
	case "!":
		if err := mustBeBoolean(operand, e.Operand.Pos()); err != nil {
			return nil, err
		}
		t = types.Boolean
	case "#":
		if _, err := mustBeArray(operand, e.Operand.Pos()); err != nil {
			return nil, err
		}
		t = types.Int
	case "some":
		t = &types.Optional{Base: operand.Type()}
	default:
		panic(fmt.Sprintf("Unknown operator: %s", e.Op))
	}
	return &ast.Unary{Span: e.Span, Op: e.Op, Operand: operand, Typed: ast.Typed{Resolved: t}}, nil
}

func (ctx *Context) analyzeArrayLiteral(e *ast.ArrayLiteral) (*ast.ArrayLiteral, error) {
	elements := make([]ast.Expression, 0, len(e.Elements))
	for _, el := range e.Elements {
		element, err := ctx.analyzeExpression(el)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	if len(elements) == 0 {
		panic("empty array literal")
	}
	if err := mustAllHaveSameType(elements, e.Pos()); err != nil {
		return nil, err
	}
	return &ast.ArrayLiteral{
		Span:     e.Span,
		Elements: elements,
		Typed:    ast.Typed{Resolved: &types.Array{Elem: elements[0].Type()}},
	}, nil
}

func (ctx *Context) analyzeSubscript(e *ast.Subscript) (*ast.Subscript, error) {
	array, err := ctx.analyzeExpression(e.Array)
	if err != nil {
		return nil, err
	}
	at, err := mustBeArray(array, e.Array.Pos())
	if err != nil {
		return nil, err
	}
	index, err := ctx.analyzeExpression(e.Index)
	if err != nil {
		return nil, err
	}
	if err := mustBeInteger(index, e.Index.Pos()); err != nil {
		return nil, err
	}
	return &ast.Subscript{Span: e.Span, Array: array, Index: index, Typed: ast.Typed{Resolved: at.Elem}}, nil
}

func (ctx *Context) analyzeMember(e *ast.Member) (*ast.Member, error) {
	object, err := ctx.analyzeExpression(e.Object)
	if err != nil {
		return nil, err
	}
	st, ok := object.Type().(*types.Struct)
	if !ok {
		return nil, posError(NoSuchField, e.Pos(), "No such field")
	}
	field, ok := st.Field(e.FieldName)
	if !ok {
		return nil, posError(NoSuchField, e.Pos(), "No such field")
	}
	return &ast.Member{
		Span:      e.Span,
		Object:    object,
		FieldName: e.FieldName,
		Field:     field,
		Typed:     ast.Typed{Resolved: field.Type},
	}, nil
}

// analyzeCall handles both function calls and struct constructors. A
// constructor takes one argument per field, in declaration order.
func (ctx *Context) analyzeCall(c *ast.Call) (*ast.Call, error) {
	callee, err := ctx.analyzeCallee(c.Callee)
	if err != nil {
		return nil, err
	}

	var params []types.Type
	var result types.Type
	if ref, ok := callee.(*ast.StructRef); ok {
		for _, f := range ref.Struct.Fields {
			params = append(params, f.Type)
		}
		result = ref.Struct
	} else if ft, ok := callee.Type().(*types.Function); ok {
		params, result = ft.Params, ft.Returns
	} else {
		return nil, posError(CallOfNonFunction, c.Callee.Pos(), "Call of non-function or non-constructor")
	}

	args := make([]ast.Expression, 0, len(c.Args))
	for _, a := range c.Args {
		arg, err := ctx.analyzeExpression(a)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if err := mustMatch(c, args, params); err != nil {
		return nil, err
	}
	return &ast.Call{Span: c.Span, Callee: callee, Args: args, Typed: ast.Typed{Resolved: result}}, nil
}

func (ctx *Context) analyzeCallee(e ast.Expression) (ast.Expression, error) {
	id, ok := e.(*ast.Identifier)
	if !ok {
		return ctx.analyzeExpression(e)
	}
	entity, err := ctx.Lookup(id.Pos(), id.Name)
	if err != nil {
		return nil, err
	}
	switch entity := entity.(type) {
	case *types.Struct:
		return &ast.StructRef{Span: id.Span, Struct: entity}, nil
	case types.Type:
		return nil, posError(CallOfNonFunction, id.Pos(), "Call of non-function or non-constructor")
	}
	return ctx.analyzeIdentifier(id)
}
