// Package ast defines the Carlos syntax tree. The parser produces it with
// identifiers and type expressions unresolved; the analyzer produces a new
// tree of the same shape in which identifiers are replaced by the entities
// they denote and every expression carries its type.
package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/Carlos/lib/types"
)

type Node interface {
	Pos() lexer.Position
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
	// Type is nil until the expression has been analyzed.
	Type() types.Type
}

type TypeExpr interface {
	Node
	typeExprNode()
}

// Span records where a node starts in the source.
type Span struct {
	pos lexer.Position
}

func At(pos lexer.Position) Span {
	return Span{pos: pos}
}

func (s Span) Pos() lexer.Position {
	return s.pos
}

// Typed holds the type computed for an expression by the analyzer.
type Typed struct {
	Resolved types.Type
}

func (t Typed) Type() types.Type {
	return t.Resolved
}

type Program struct {
	Statements []Statement
}

// Entities

// Variable is a named storage location. Variables are owned by the scope
// that declares them; every resolved use site points at the same value.
type Variable struct {
	Span
	Name     string
	ReadOnly bool
	Typed
	Value any
}

type Function struct {
	Span
	Name string
	Typed
}

// StructRef is a struct name in callee position, i.e. a constructor.
type StructRef struct {
	Span
	Struct *types.Struct
}

func (s *StructRef) Type() types.Type {
	return s.Struct
}

// Declarations

type VariableDeclaration struct {
	Span
	Name        string
	ReadOnly    bool
	Initializer Expression
	Variable    *Variable
}

type StructDeclaration struct {
	Span
	Name   string
	Fields []*Field
	Struct *types.Struct
}

type Field struct {
	Span
	Name     string
	TypeExpr TypeExpr
	Type     types.Type
}

type FunctionDeclaration struct {
	Span
	Name       string
	Params     []*Parameter
	ReturnType TypeExpr
	Body       []Statement
	Function   *Function
}

type Parameter struct {
	Span
	Name     string
	TypeExpr TypeExpr
	Variable *Variable
}

// Statements

type Assignment struct {
	Span
	Target Expression
	Source Expression
}

type Increment struct {
	Span
	Target Expression
}

type Decrement struct {
	Span
	Target Expression
}

type Break struct {
	Span
}

type Return struct {
	Span
	Value Expression
}

type ShortReturn struct {
	Span
}

// If has an else branch; an else-if chain is an Alternate holding a single
// If or ShortIf.
type If struct {
	Span
	Test       Expression
	Consequent []Statement
	Alternate  []Statement
}

type ShortIf struct {
	Span
	Test       Expression
	Consequent []Statement
}

type While struct {
	Span
	Test Expression
	Body []Statement
}

type Repeat struct {
	Span
	Count Expression
	Body  []Statement
}

// ForRange iterates Iterator from Low to High; Op is "..." (inclusive) or
// "..<" (exclusive).
type ForRange struct {
	Span
	Iterator string
	Low      Expression
	Op       string
	High     Expression
	Body     []Statement
	Variable *Variable
}

type For struct {
	Span
	Iterator   string
	Collection Expression
	Body       []Statement
	Variable   *Variable
}

// Expressions

type Conditional struct {
	Span
	Test       Expression
	Consequent Expression
	Alternate  Expression
	Typed
}

type UnwrapElse struct {
	Span
	Optional  Expression
	Alternate Expression
	Typed
}

type Or struct {
	Span
	Operands []Expression
	Typed
}

type And struct {
	Span
	Operands []Expression
	Typed
}

type Binary struct {
	Span
	Op    string
	Left  Expression
	Right Expression
	Typed
}

// Unary covers "-", "!", "#" and "some".
type Unary struct {
	Span
	Op      string
	Operand Expression
	Typed
}

type EmptyArray struct {
	Span
	ElemType TypeExpr
	Typed
}

type ArrayLiteral struct {
	Span
	Elements []Expression
	Typed
}

type EmptyOptional struct {
	Span
	BaseType TypeExpr
	Typed
}

type Subscript struct {
	Span
	Array Expression
	Index Expression
	Typed
}

type Member struct {
	Span
	Object    Expression
	FieldName string
	Field     *types.Field
	Typed
}

// Call is both an expression and, followed by a semicolon, a statement.
type Call struct {
	Span
	Callee Expression
	Args   []Expression
	Typed
}

type Identifier struct {
	Span
	Name string
	Typed
}

type IntLiteral struct {
	Span
	Value int64
}

func (*IntLiteral) Type() types.Type { return types.Int }

type FloatLiteral struct {
	Span
	Value float64
}

func (*FloatLiteral) Type() types.Type { return types.Float }

type BoolLiteral struct {
	Span
	Value bool
}

func (*BoolLiteral) Type() types.Type { return types.Boolean }

type StringLiteral struct {
	Span
	Value string
}

func (*StringLiteral) Type() types.Type { return types.String }

// Type expressions

type TypeName struct {
	Span
	Name string
}

type ArrayTypeExpr struct {
	Span
	Elem TypeExpr
}

type OptionalTypeExpr struct {
	Span
	Base TypeExpr
}

type FunctionTypeExpr struct {
	Span
	Params  []TypeExpr
	Returns TypeExpr
}

func (*VariableDeclaration) statementNode() {}
func (*StructDeclaration) statementNode()   {}
func (*FunctionDeclaration) statementNode() {}
func (*Assignment) statementNode()          {}
func (*Increment) statementNode()           {}
func (*Decrement) statementNode()           {}
func (*Break) statementNode()               {}
func (*Return) statementNode()              {}
func (*ShortReturn) statementNode()         {}
func (*If) statementNode()                  {}
func (*ShortIf) statementNode()             {}
func (*While) statementNode()               {}
func (*Repeat) statementNode()              {}
func (*ForRange) statementNode()            {}
func (*For) statementNode()                 {}
func (*Call) statementNode()                {}

func (*Variable) expressionNode()      {}
func (*Function) expressionNode()      {}
func (*StructRef) expressionNode()     {}
func (*Conditional) expressionNode()   {}
func (*UnwrapElse) expressionNode()    {}
func (*Or) expressionNode()            {}
func (*And) expressionNode()           {}
func (*Binary) expressionNode()        {}
func (*Unary) expressionNode()         {}
func (*EmptyArray) expressionNode()    {}
func (*ArrayLiteral) expressionNode()  {}
func (*EmptyOptional) expressionNode() {}
func (*Subscript) expressionNode()     {}
func (*Member) expressionNode()        {}
func (*Call) expressionNode()          {}
func (*Identifier) expressionNode()    {}
func (*IntLiteral) expressionNode()    {}
func (*FloatLiteral) expressionNode()  {}
func (*BoolLiteral) expressionNode()   {}
func (*StringLiteral) expressionNode() {}

func (*TypeName) typeExprNode()         {}
func (*ArrayTypeExpr) typeExprNode()    {}
func (*OptionalTypeExpr) typeExprNode() {}
func (*FunctionTypeExpr) typeExprNode() {}
