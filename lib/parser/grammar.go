package parser

import "github.com/alecthomas/participle/v2/lexer"

type Bool bool

func (b *Bool) Capture(values []string) error {
	*b = values[0] == "true"
	return nil
}

type Program struct {
	Pos        lexer.Position
	Statements []*Statement `parser:"@@*"`
}

type Statement struct {
	Pos                lexer.Position
	VariableDefinition *VariableDefinition `parser:"  @@"`
	StructDefinition   *StructDefinition   `parser:"| @@"`
	FunctionDefinition *FunctionDefinition `parser:"| @@"`
	Break              *Break              `parser:"| @@"`
	Return             *Return             `parser:"| @@"`
	If                 *If                 `parser:"| @@"`
	While              *While              `parser:"| @@"`
	Repeat             *Repeat             `parser:"| @@"`
	For                *For                `parser:"| @@"`
	Simple             *SimpleStatement    `parser:"| @@"`
}

type Block struct {
	Open       string       `parser:"@'{'"`
	Statements []*Statement `parser:"@@* '}'"`
}

type VariableDefinition struct {
	Pos   lexer.Position
	Kind  string      `parser:"@( 'let' | 'const' )"`
	Name  string      `parser:"@Ident"`
	Value *Expression `parser:"'=' @@ ';'"`
}

type FieldDefinition struct {
	Pos  lexer.Position
	Name string `parser:"@Ident"`
	Type *Type  `parser:"':' @@"`
}

type StructDefinition struct {
	Pos    lexer.Position
	Name   string             `parser:"'struct' @Ident"`
	Fields []*FieldDefinition `parser:"'{' @@* '}'"`
}

type ArgumentDefinition struct {
	Pos  lexer.Position
	Name string `parser:"@Ident"`
	Type *Type  `parser:"':' @@"`
}

type FunctionDefinition struct {
	Pos        lexer.Position
	Name       string                `parser:"'function' @Ident"`
	Parameters []*ArgumentDefinition `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
	ReturnType *Type                 `parser:"( ':' @@ )?"`
	Body       *Block                `parser:"@@"`
}

type Break struct {
	Keyword string `parser:"@'break' ';'"`
}

type Return struct {
	Keyword string      `parser:"@'return'"`
	Value   *Expression `parser:"@@? ';'"`
}

type If struct {
	Pos        lexer.Position
	Test       *Expression `parser:"'if' @@"`
	Consequent *Block      `parser:"@@"`
	Else       *Else       `parser:"( 'else' @@ )?"`
}

type Else struct {
	If    *If    `parser:"  @@"`
	Block *Block `parser:"| @@"`
}

type While struct {
	Pos  lexer.Position
	Test *Expression `parser:"'while' @@"`
	Body *Block      `parser:"@@"`
}

type Repeat struct {
	Pos   lexer.Position
	Count *Expression `parser:"'repeat' @@"`
	Body  *Block      `parser:"@@"`
}

type Range struct {
	Op   string      `parser:"@( '...' | '..<' )"`
	High *Expression `parser:"@@"`
}

// For is either an iteration over an array or, with a Range, over an
// integer interval.
type For struct {
	Pos      lexer.Position
	Iterator string      `parser:"'for' @Ident 'in'"`
	Source   *Expression `parser:"@@"`
	Range    *Range      `parser:"@@?"`
	Body     *Block      `parser:"@@"`
}

// SimpleStatement is an assignment, an increment, a decrement or a call.
type SimpleStatement struct {
	Pos    lexer.Position
	Target *Var        `parser:"@@"`
	Assign *Expression `parser:"( '=' @@"`
	Bump   string      `parser:"| @( '++' | '--' ) )? ';'"`
}

type Type struct {
	Pos      lexer.Position
	Array    *Type         `parser:"(  '[' @@ ']'"`
	Function *FunctionType `parser:" | @@"`
	Name     string        `parser:" | @Ident )"`
	Optional []string      `parser:"@( '?' | '??' )*"`
}

type FunctionType struct {
	Params  []*Type `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
	Returns *Type   `parser:"'->' @@"`
}

type Expression struct {
	Pos        lexer.Position
	Test       *Unwrap     `parser:"@@"`
	Consequent *Unwrap     `parser:"( '?' @@"`
	Alternate  *Expression `parser:"  ':' @@ )?"`
}

type Unwrap struct {
	Pos   lexer.Position
	Left  *Logical `parser:"@@"`
	Right *Unwrap  `parser:"( '??' @@ )?"`
}

type Logical struct {
	Pos   lexer.Position
	Left  *BitOp       `parser:"@@"`
	Right []*OpLogical `parser:"@@*"`
}

type OpLogical struct {
	Pos     lexer.Position
	Op      string `parser:"@( '||' | '&&' )"`
	Operand *BitOp `parser:"@@"`
}

type BitOp struct {
	Pos   lexer.Position
	Left  *Comparison `parser:"@@"`
	Right []*OpBitOp  `parser:"@@*"`
}

type OpBitOp struct {
	Pos     lexer.Position
	Op      string      `parser:"@( '|' | '^' | '&' )"`
	Operand *Comparison `parser:"@@"`
}

type Comparison struct {
	Pos   lexer.Position
	Left  *Shift        `parser:"@@"`
	Right *OpComparison `parser:"@@?"`
}

type OpComparison struct {
	Pos     lexer.Position
	Op      string `parser:"@( '<=' | '>=' | '==' | '!=' | '<' | '>' )"`
	Operand *Shift `parser:"@@"`
}

type Shift struct {
	Pos   lexer.Position
	Left  *Additive  `parser:"@@"`
	Right []*OpShift `parser:"@@*"`
}

type OpShift struct {
	Pos     lexer.Position
	Op      string    `parser:"@( '<<' | '>>' )"`
	Operand *Additive `parser:"@@"`
}

type Additive struct {
	Pos   lexer.Position
	Left  *Term         `parser:"@@"`
	Right []*OpAdditive `parser:"@@*"`
}

type OpAdditive struct {
	Pos     lexer.Position
	Op      string `parser:"@( '+' | '-' )"`
	Operand *Term  `parser:"@@"`
}

type Term struct {
	Pos   lexer.Position
	Left  *Factor   `parser:"@@"`
	Right []*OpTerm `parser:"@@*"`
}

type OpTerm struct {
	Pos     lexer.Position
	Op      string  `parser:"@( '*' | '/' | '%' )"`
	Operand *Factor `parser:"@@"`
}

type Factor struct {
	Pos   lexer.Position
	Unary *Unary `parser:"  @@"`
	Power *Power `parser:"| @@"`
}

type Unary struct {
	Pos     lexer.Position
	Op      string   `parser:"@( '#' | '-' | '!' | 'some' )"`
	Operand *Primary `parser:"@@"`
}

// Power is right associative: 2 ** 3 ** 2 is 2 ** (3 ** 2).
type Power struct {
	Pos      lexer.Position
	Base     *Primary `parser:"@@"`
	Exponent *Factor  `parser:"( '**' @@ )?"`
}

type Primary struct {
	Pos           lexer.Position
	Bool          *Bool         `parser:"  @( 'true' | 'false' )"`
	Float         *float64      `parser:"| @Float"`
	Int           *int64        `parser:"| @Int"`
	String        *string       `parser:"| @String"`
	EmptyArray    *Type         `parser:"| '[' ']' '(' 'of' @@ ')'"`
	Array         []*Expression `parser:"| '[' @@ ( ',' @@ )* ']'"`
	EmptyOptional *Type         `parser:"| 'no' @@"`
	SubExpression *Expression   `parser:"| '(' @@ ')'"`
	Var           *Var          `parser:"| @@"`
}

// Var is a name followed by any number of calls, subscripts and member
// accesses.
type Var struct {
	Pos      lexer.Position
	Name     string    `parser:"@Ident"`
	Suffixes []*Suffix `parser:"@@*"`
}

type Suffix struct {
	Pos    lexer.Position
	Call   *Arguments  `parser:"  @@"`
	Index  *Expression `parser:"| '[' @@ ']'"`
	Member string      `parser:"| '.' @Ident"`
}

type Arguments struct {
	Open bool          `parser:"@'('"`
	Args []*Expression `parser:"( @@ ( ',' @@ )* )? ')'"`
}
