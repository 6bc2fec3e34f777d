// Package analyzer turns a parsed Carlos program into a resolved program
// graph: every identifier is bound to the entity it names, every type
// expression is replaced by a type and every expression carries its type.
package analyzer

import (
	"fmt"

	"github.com/vyPal/Carlos/lib/ast"
	"github.com/vyPal/Carlos/lib/types"
)

// Analyze checks prog and returns a new, fully decorated tree of the same
// shape. prog is left untouched. Analysis stops at the first violation and
// returns it as an *Error.
func Analyze(prog *ast.Program) (*ast.Program, error) {
	ctx, err := NewRootContext()
	if err != nil {
		return nil, err
	}
	stmts, err := ctx.analyzeStatements(prog.Statements)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Statements: stmts}, nil
}

func (ctx *Context) analyzeStatements(stmts []ast.Statement) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		s, err := ctx.analyzeStatement(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (ctx *Context) analyzeStatement(stmt ast.Statement) (ast.Statement, error) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		return ctx.analyzeVariableDeclaration(s)
	case *ast.StructDeclaration:
		return ctx.analyzeStructDeclaration(s)
	case *ast.FunctionDeclaration:
		return ctx.analyzeFunctionDeclaration(s)
	case *ast.Assignment:
		return ctx.analyzeAssignment(s)
	case *ast.Increment:
		target, err := ctx.analyzeBump(s.Target)
		if err != nil {
			return nil, err
		}
		return &ast.Increment{Span: s.Span, Target: target}, nil
	case *ast.Decrement:
		target, err := ctx.analyzeBump(s.Target)
		if err != nil {
			return nil, err
		}
		return &ast.Decrement{Span: s.Span, Target: target}, nil
	case *ast.Break:
		if !ctx.InLoop() {
			return nil, posError(IllegalBreak, s.Pos(), "Break can only appear in a loop")
		}
		return &ast.Break{Span: s.Span}, nil
	case *ast.Return:
		return ctx.analyzeReturn(s)
	case *ast.ShortReturn:
		return ctx.analyzeShortReturn(s)
	case *ast.If:
		return ctx.analyzeIf(s)
	case *ast.ShortIf:
		test, consequent, err := ctx.analyzeBranch(s.Test, s.Consequent)
		if err != nil {
			return nil, err
		}
		return &ast.ShortIf{Span: s.Span, Test: test, Consequent: consequent}, nil
	case *ast.While:
		return ctx.analyzeWhile(s)
	case *ast.Repeat:
		return ctx.analyzeRepeat(s)
	case *ast.ForRange:
		return ctx.analyzeForRange(s)
	case *ast.For:
		return ctx.analyzeFor(s)
	case *ast.Call:
		return ctx.analyzeCall(s)
	}
	panic(fmt.Sprintf("Unknown statement: %T", stmt))
}

func (ctx *Context) analyzeVariableDeclaration(d *ast.VariableDeclaration) (*ast.VariableDeclaration, error) {
	initializer, err := ctx.analyzeExpression(d.Initializer)
	if err != nil {
		return nil, err
	}
	v := &ast.Variable{
		Span:     d.Span,
		Name:     d.Name,
		ReadOnly: d.ReadOnly,
		Typed:    ast.Typed{Resolved: initializer.Type()},
	}
	if err := ctx.Declare(d.Pos(), d.Name, v); err != nil {
		return nil, err
	}
	return &ast.VariableDeclaration{
		Span:        d.Span,
		Name:        d.Name,
		ReadOnly:    d.ReadOnly,
		Initializer: initializer,
		Variable:    v,
	}, nil
}

// The struct is declared before its field types are resolved so a field
// can mention the struct itself.
func (ctx *Context) analyzeStructDeclaration(d *ast.StructDeclaration) (*ast.StructDeclaration, error) {
	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if seen[f.Name] {
			return nil, posError(DuplicateField, f.Pos(), "Fields must be distinct")
		}
		seen[f.Name] = true
	}

	st := &types.Struct{Name: d.Name, Fields: make([]*types.Field, 0, len(d.Fields))}
	if err := ctx.Declare(d.Pos(), d.Name, st); err != nil {
		return nil, err
	}

	fields := make([]*ast.Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		t, err := ctx.resolveType(f.TypeExpr)
		if err != nil {
			return nil, err
		}
		st.Fields = append(st.Fields, &types.Field{Name: f.Name, Type: t})
		fields = append(fields, &ast.Field{Span: f.Span, Name: f.Name, Type: t})
	}
	return &ast.StructDeclaration{Span: d.Span, Name: d.Name, Fields: fields, Struct: st}, nil
}

// The function is declared in the enclosing scope before its body is
// analyzed, which makes recursion work.
func (ctx *Context) analyzeFunctionDeclaration(d *ast.FunctionDeclaration) (*ast.FunctionDeclaration, error) {
	paramTypes := make([]types.Type, len(d.Params))
	for i, p := range d.Params {
		t, err := ctx.resolveType(p.TypeExpr)
		if err != nil {
			return nil, err
		}
		paramTypes[i] = t
	}
	var returns types.Type = types.Void
	if d.ReturnType != nil {
		t, err := ctx.resolveType(d.ReturnType)
		if err != nil {
			return nil, err
		}
		returns = t
	}

	fn := &ast.Function{
		Span:  d.Span,
		Name:  d.Name,
		Typed: ast.Typed{Resolved: &types.Function{Params: paramTypes, Returns: returns}},
	}
	if err := ctx.Declare(d.Pos(), d.Name, fn); err != nil {
		return nil, err
	}

	bodyCtx := ctx.ForFunction(fn)
	params := make([]*ast.Parameter, 0, len(d.Params))
	for i, p := range d.Params {
		v := &ast.Variable{Span: p.Span, Name: p.Name, Typed: ast.Typed{Resolved: paramTypes[i]}}
		if err := bodyCtx.Declare(p.Pos(), p.Name, v); err != nil {
			return nil, err
		}
		params = append(params, &ast.Parameter{Span: p.Span, Name: p.Name, Variable: v})
	}
	body, err := bodyCtx.analyzeStatements(d.Body)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{Span: d.Span, Name: d.Name, Params: params, Body: body, Function: fn}, nil
}

func (ctx *Context) analyzeAssignment(s *ast.Assignment) (*ast.Assignment, error) {
	source, err := ctx.analyzeExpression(s.Source)
	if err != nil {
		return nil, err
	}
	target, err := ctx.analyzeExpression(s.Target)
	if err != nil {
		return nil, err
	}
	if err := mustBeWritable(target, s.Target.Pos()); err != nil {
		return nil, err
	}
	if err := mustBeAssignable(source, target.Type(), s.Source.Pos()); err != nil {
		return nil, err
	}
	return &ast.Assignment{Span: s.Span, Target: target, Source: source}, nil
}

func (ctx *Context) analyzeBump(t ast.Expression) (ast.Expression, error) {
	target, err := ctx.analyzeExpression(t)
	if err != nil {
		return nil, err
	}
	if err := mustBeInteger(target, t.Pos()); err != nil {
		return nil, err
	}
	if err := mustBeWritable(target, t.Pos()); err != nil {
		return nil, err
	}
	return target, nil
}

func (ctx *Context) enclosingFunction(s ast.Statement) (*types.Function, error) {
	if ctx.Function == nil {
		return nil, posError(IllegalReturn, s.Pos(), "Return can only appear in a function")
	}
	return ctx.Function.Type().(*types.Function), nil
}

func (ctx *Context) analyzeReturn(s *ast.Return) (*ast.Return, error) {
	ft, err := ctx.enclosingFunction(s)
	if err != nil {
		return nil, err
	}
	if ft.Returns == types.Void {
		return nil, posError(UnexpectedReturnValue, s.Pos(), "Cannot return a value here")
	}
	value, err := ctx.analyzeExpression(s.Value)
	if err != nil {
		return nil, err
	}
	if err := mustBeAssignable(value, ft.Returns, s.Value.Pos()); err != nil {
		return nil, err
	}
	return &ast.Return{Span: s.Span, Value: value}, nil
}

func (ctx *Context) analyzeShortReturn(s *ast.ShortReturn) (*ast.ShortReturn, error) {
	ft, err := ctx.enclosingFunction(s)
	if err != nil {
		return nil, err
	}
	if ft.Returns != types.Void {
		return nil, posError(MissingReturnValue, s.Pos(), "Something should be returned here")
	}
	return &ast.ShortReturn{Span: s.Span}, nil
}

// analyzeBranch checks an if test and its consequent block. Blocks of an if
// get their own scope but stay inside any enclosing loop.
func (ctx *Context) analyzeBranch(t ast.Expression, block []ast.Statement) (ast.Expression, []ast.Statement, error) {
	test, err := ctx.analyzeExpression(t)
	if err != nil {
		return nil, nil, err
	}
	if err := mustBeBoolean(test, t.Pos()); err != nil {
		return nil, nil, err
	}
	consequent, err := ctx.NewContext().analyzeStatements(block)
	if err != nil {
		return nil, nil, err
	}
	return test, consequent, nil
}

func (ctx *Context) analyzeIf(s *ast.If) (*ast.If, error) {
	test, consequent, err := ctx.analyzeBranch(s.Test, s.Consequent)
	if err != nil {
		return nil, err
	}
	alternate, err := ctx.NewContext().analyzeStatements(s.Alternate)
	if err != nil {
		return nil, err
	}
	return &ast.If{Span: s.Span, Test: test, Consequent: consequent, Alternate: alternate}, nil
}

func (ctx *Context) analyzeWhile(s *ast.While) (*ast.While, error) {
	test, err := ctx.analyzeExpression(s.Test)
	if err != nil {
		return nil, err
	}
	if err := mustBeBoolean(test, s.Test.Pos()); err != nil {
		return nil, err
	}
	body, err := ctx.Loop().analyzeStatements(s.Body)
	if err != nil {
		return nil, err
	}
	return &ast.While{Span: s.Span, Test: test, Body: body}, nil
}

func (ctx *Context) analyzeRepeat(s *ast.Repeat) (*ast.Repeat, error) {
	count, err := ctx.analyzeExpression(s.Count)
	if err != nil {
		return nil, err
	}
	if err := mustBeInteger(count, s.Count.Pos()); err != nil {
		return nil, err
	}
	body, err := ctx.Loop().analyzeStatements(s.Body)
	if err != nil {
		return nil, err
	}
	return &ast.Repeat{Span: s.Span, Count: count, Body: body}, nil
}

func (ctx *Context) analyzeForRange(s *ast.ForRange) (*ast.ForRange, error) {
	low, err := ctx.analyzeExpression(s.Low)
	if err != nil {
		return nil, err
	}
	if err := mustBeInteger(low, s.Low.Pos()); err != nil {
		return nil, err
	}
	high, err := ctx.analyzeExpression(s.High)
	if err != nil {
		return nil, err
	}
	if err := mustBeInteger(high, s.High.Pos()); err != nil {
		return nil, err
	}

	loopCtx := ctx.Loop()
	iterator := &ast.Variable{Span: s.Span, Name: s.Iterator, ReadOnly: true, Typed: ast.Typed{Resolved: types.Int}}
	if err := loopCtx.Declare(s.Pos(), s.Iterator, iterator); err != nil {
		return nil, err
	}
	body, err := loopCtx.analyzeStatements(s.Body)
	if err != nil {
		return nil, err
	}
	return &ast.ForRange{
		Span:     s.Span,
		Iterator: s.Iterator,
		Low:      low,
		Op:       s.Op,
		High:     high,
		Body:     body,
		Variable: iterator,
	}, nil
}

func (ctx *Context) analyzeFor(s *ast.For) (*ast.For, error) {
	collection, err := ctx.analyzeExpression(s.Collection)
	if err != nil {
		return nil, err
	}
	array, err := mustBeArray(collection, s.Collection.Pos())
	if err != nil {
		return nil, err
	}

	loopCtx := ctx.Loop()
	iterator := &ast.Variable{Span: s.Span, Name: s.Iterator, ReadOnly: true, Typed: ast.Typed{Resolved: array.Elem}}
	if err := loopCtx.Declare(s.Pos(), s.Iterator, iterator); err != nil {
		return nil, err
	}
	body, err := loopCtx.analyzeStatements(s.Body)
	if err != nil {
		return nil, err
	}
	return &ast.For{Span: s.Span, Iterator: s.Iterator, Collection: collection, Body: body, Variable: iterator}, nil
}
