package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/Carlos/lib/ast"
)

func build(p *Program) (*ast.Program, error) {
	statements, err := buildStatements(p.Statements)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Statements: statements}, nil
}

func buildStatements(statements []*Statement) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(statements))
	for _, s := range statements {
		stmt, err := buildStatement(s)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func buildBlock(b *Block) ([]ast.Statement, error) {
	return buildStatements(b.Statements)
}

func buildStatement(s *Statement) (ast.Statement, error) {
	span := ast.At(s.Pos)
	switch {
	case s.VariableDefinition != nil:
		d := s.VariableDefinition
		initializer, err := buildExpression(d.Value)
		if err != nil {
			return nil, err
		}
		return &ast.VariableDeclaration{
			Span:        span,
			Name:        d.Name,
			ReadOnly:    d.Kind == "const",
			Initializer: initializer,
		}, nil
	case s.StructDefinition != nil:
		d := s.StructDefinition
		fields := make([]*ast.Field, 0, len(d.Fields))
		for _, f := range d.Fields {
			fields = append(fields, &ast.Field{Span: ast.At(f.Pos), Name: f.Name, TypeExpr: buildType(f.Type)})
		}
		return &ast.StructDeclaration{Span: span, Name: d.Name, Fields: fields}, nil
	case s.FunctionDefinition != nil:
		return buildFunction(s.FunctionDefinition)
	case s.Break != nil:
		return &ast.Break{Span: span}, nil
	case s.Return != nil:
		if s.Return.Value == nil {
			return &ast.ShortReturn{Span: span}, nil
		}
		value, err := buildExpression(s.Return.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Return{Span: span, Value: value}, nil
	case s.If != nil:
		return buildIf(s.If)
	case s.While != nil:
		test, err := buildExpression(s.While.Test)
		if err != nil {
			return nil, err
		}
		body, err := buildBlock(s.While.Body)
		if err != nil {
			return nil, err
		}
		return &ast.While{Span: span, Test: test, Body: body}, nil
	case s.Repeat != nil:
		count, err := buildExpression(s.Repeat.Count)
		if err != nil {
			return nil, err
		}
		body, err := buildBlock(s.Repeat.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Repeat{Span: span, Count: count, Body: body}, nil
	case s.For != nil:
		return buildFor(s.For)
	case s.Simple != nil:
		return buildSimple(s.Simple)
	}
	return nil, participle.Errorf(s.Pos, "unexpected statement")
}

func buildFunction(d *FunctionDefinition) (*ast.FunctionDeclaration, error) {
	params := make([]*ast.Parameter, 0, len(d.Parameters))
	for _, p := range d.Parameters {
		params = append(params, &ast.Parameter{Span: ast.At(p.Pos), Name: p.Name, TypeExpr: buildType(p.Type)})
	}
	body, err := buildBlock(d.Body)
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDeclaration{Span: ast.At(d.Pos), Name: d.Name, Params: params, Body: body}
	if d.ReturnType != nil {
		fn.ReturnType = buildType(d.ReturnType)
	}
	return fn, nil
}

// buildIf turns an else-if chain into nested ifs, each in a one-statement
// alternate block.
func buildIf(i *If) (ast.Statement, error) {
	test, err := buildExpression(i.Test)
	if err != nil {
		return nil, err
	}
	consequent, err := buildBlock(i.Consequent)
	if err != nil {
		return nil, err
	}
	if i.Else == nil {
		return &ast.ShortIf{Span: ast.At(i.Pos), Test: test, Consequent: consequent}, nil
	}

	var alternate []ast.Statement
	if i.Else.If != nil {
		nested, err := buildIf(i.Else.If)
		if err != nil {
			return nil, err
		}
		alternate = []ast.Statement{nested}
	} else {
		alternate, err = buildBlock(i.Else.Block)
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Span: ast.At(i.Pos), Test: test, Consequent: consequent, Alternate: alternate}, nil
}

func buildFor(f *For) (ast.Statement, error) {
	source, err := buildExpression(f.Source)
	if err != nil {
		return nil, err
	}
	body, err := buildBlock(f.Body)
	if err != nil {
		return nil, err
	}
	if f.Range == nil {
		return &ast.For{Span: ast.At(f.Pos), Iterator: f.Iterator, Collection: source, Body: body}, nil
	}
	high, err := buildExpression(f.Range.High)
	if err != nil {
		return nil, err
	}
	return &ast.ForRange{
		Span:     ast.At(f.Pos),
		Iterator: f.Iterator,
		Low:      source,
		Op:       f.Range.Op,
		High:     high,
		Body:     body,
	}, nil
}

func buildSimple(s *SimpleStatement) (ast.Statement, error) {
	target, err := buildVar(s.Target)
	if err != nil {
		return nil, err
	}
	span := ast.At(s.Pos)
	switch {
	case s.Assign != nil:
		source, err := buildExpression(s.Assign)
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Span: span, Target: target, Source: source}, nil
	case s.Bump == "++":
		return &ast.Increment{Span: span, Target: target}, nil
	case s.Bump == "--":
		return &ast.Decrement{Span: span, Target: target}, nil
	}
	call, ok := target.(*ast.Call)
	if !ok {
		return nil, participle.Errorf(s.Pos, "expected an assignment, increment, decrement or call")
	}
	return call, nil
}

func buildType(t *Type) ast.TypeExpr {
	span := ast.At(t.Pos)
	var typ ast.TypeExpr
	switch {
	case t.Array != nil:
		typ = &ast.ArrayTypeExpr{Span: span, Elem: buildType(t.Array)}
	case t.Function != nil:
		params := make([]ast.TypeExpr, 0, len(t.Function.Params))
		for _, p := range t.Function.Params {
			params = append(params, buildType(p))
		}
		typ = &ast.FunctionTypeExpr{Span: span, Params: params, Returns: buildType(t.Function.Returns)}
	default:
		typ = &ast.TypeName{Span: span, Name: t.Name}
	}
	// "??" lexes as a single token, so count question marks.
	for _, q := range t.Optional {
		for range q {
			typ = &ast.OptionalTypeExpr{Span: span, Base: typ}
		}
	}
	return typ
}

func buildExpression(e *Expression) (ast.Expression, error) {
	test, err := buildUnwrap(e.Test)
	if err != nil || e.Consequent == nil {
		return test, err
	}
	consequent, err := buildUnwrap(e.Consequent)
	if err != nil {
		return nil, err
	}
	alternate, err := buildExpression(e.Alternate)
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Span: ast.At(e.Pos), Test: test, Consequent: consequent, Alternate: alternate}, nil
}

func buildUnwrap(u *Unwrap) (ast.Expression, error) {
	left, err := buildLogical(u.Left)
	if err != nil || u.Right == nil {
		return left, err
	}
	right, err := buildUnwrap(u.Right)
	if err != nil {
		return nil, err
	}
	return &ast.UnwrapElse{Span: ast.At(u.Pos), Optional: left, Alternate: right}, nil
}

func buildLogical(l *Logical) (ast.Expression, error) {
	first, err := buildBitOp(l.Left)
	if err != nil || len(l.Right) == 0 {
		return first, err
	}
	op := l.Right[0].Op
	operands := []ast.Expression{first}
	for _, r := range l.Right {
		if r.Op != op {
			return nil, participle.Errorf(r.Pos, "cannot mix %s and %s without parentheses", op, r.Op)
		}
		operand, err := buildBitOp(r.Operand)
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}
	if op == "||" {
		return &ast.Or{Span: ast.At(l.Pos), Operands: operands}, nil
	}
	return &ast.And{Span: ast.At(l.Pos), Operands: operands}, nil
}

func binary(pos lexer.Position, op string, left, right ast.Expression) ast.Expression {
	return &ast.Binary{Span: ast.At(pos), Op: op, Left: left, Right: right}
}

func buildBitOp(b *BitOp) (ast.Expression, error) {
	left, err := buildComparison(b.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range b.Right {
		right, err := buildComparison(r.Operand)
		if err != nil {
			return nil, err
		}
		left = binary(r.Pos, r.Op, left, right)
	}
	return left, nil
}

func buildComparison(c *Comparison) (ast.Expression, error) {
	left, err := buildShift(c.Left)
	if err != nil || c.Right == nil {
		return left, err
	}
	right, err := buildShift(c.Right.Operand)
	if err != nil {
		return nil, err
	}
	return binary(c.Right.Pos, c.Right.Op, left, right), nil
}

func buildShift(s *Shift) (ast.Expression, error) {
	left, err := buildAdditive(s.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range s.Right {
		right, err := buildAdditive(r.Operand)
		if err != nil {
			return nil, err
		}
		left = binary(r.Pos, r.Op, left, right)
	}
	return left, nil
}

func buildAdditive(a *Additive) (ast.Expression, error) {
	left, err := buildTerm(a.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range a.Right {
		right, err := buildTerm(r.Operand)
		if err != nil {
			return nil, err
		}
		left = binary(r.Pos, r.Op, left, right)
	}
	return left, nil
}

func buildTerm(t *Term) (ast.Expression, error) {
	left, err := buildFactor(t.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range t.Right {
		right, err := buildFactor(r.Operand)
		if err != nil {
			return nil, err
		}
		left = binary(r.Pos, r.Op, left, right)
	}
	return left, nil
}

func buildFactor(f *Factor) (ast.Expression, error) {
	if f.Unary != nil {
		operand, err := buildPrimary(f.Unary.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Span: ast.At(f.Unary.Pos), Op: f.Unary.Op, Operand: operand}, nil
	}
	base, err := buildPrimary(f.Power.Base)
	if err != nil || f.Power.Exponent == nil {
		return base, err
	}
	exponent, err := buildFactor(f.Power.Exponent)
	if err != nil {
		return nil, err
	}
	return binary(f.Power.Pos, "**", base, exponent), nil
}

func buildPrimary(p *Primary) (ast.Expression, error) {
	span := ast.At(p.Pos)
	switch {
	case p.Bool != nil:
		return &ast.BoolLiteral{Span: span, Value: bool(*p.Bool)}, nil
	case p.Float != nil:
		return &ast.FloatLiteral{Span: span, Value: *p.Float}, nil
	case p.Int != nil:
		return &ast.IntLiteral{Span: span, Value: *p.Int}, nil
	case p.String != nil:
		return &ast.StringLiteral{Span: span, Value: *p.String}, nil
	case p.EmptyArray != nil:
		return &ast.EmptyArray{Span: span, ElemType: buildType(p.EmptyArray)}, nil
	case len(p.Array) > 0:
		elements := make([]ast.Expression, 0, len(p.Array))
		for _, e := range p.Array {
			element, err := buildExpression(e)
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}
		return &ast.ArrayLiteral{Span: span, Elements: elements}, nil
	case p.EmptyOptional != nil:
		return &ast.EmptyOptional{Span: span, BaseType: buildType(p.EmptyOptional)}, nil
	case p.SubExpression != nil:
		return buildExpression(p.SubExpression)
	case p.Var != nil:
		return buildVar(p.Var)
	}
	return nil, participle.Errorf(p.Pos, "unexpected expression")
}

// buildVar applies suffixes left to right; every node it creates starts at
// the position of the name.
func buildVar(v *Var) (ast.Expression, error) {
	span := ast.At(v.Pos)
	var e ast.Expression = &ast.Identifier{Span: span, Name: v.Name}
	for _, s := range v.Suffixes {
		switch {
		case s.Call != nil:
			args := make([]ast.Expression, 0, len(s.Call.Args))
			for _, a := range s.Call.Args {
				arg, err := buildExpression(a)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
			e = &ast.Call{Span: span, Callee: e, Args: args}
		case s.Index != nil:
			index, err := buildExpression(s.Index)
			if err != nil {
				return nil, err
			}
			e = &ast.Subscript{Span: span, Array: e, Index: index}
		default:
			e = &ast.Member{Span: span, Object: e, FieldName: s.Member}
		}
	}
	return e, nil
}
