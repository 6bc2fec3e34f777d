package analyzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/vyPal/Carlos/lib/ast"
	"github.com/vyPal/Carlos/lib/parser"
	"github.com/vyPal/Carlos/lib/types"
)

func init() {
	deep.NilSlicesAreEmpty = true
	deep.MaxDepth = 30
}

func analyzeSource(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	prog, err := parser.ParseString("test.carlos", src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return Analyze(prog)
}

func TestAnalyzeAccepts(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"variable declarations", `const x = 1; let y = "false";`},
		{"complex array types", "function f(x: [[[int?]]?]) {}"},
		{"increment and decrement", "let x = 10; x--; x++;"},
		{"initialize with empty array", "let a = [](of int);"},
		{"struct declaration", "struct S {f: (int)->boolean? g: string}"},
		{"assign arrays", "let a = [](of int);let b=[1];a=b;b=a;"},
		{"initialize with empty optional", "let a = no int;"},
		{"short return", "function f() { return; }"},
		{"long return", "function f(): boolean { return true; }"},
		{"assign optionals", "let a = no int;let b=some 1;a=b;b=a;"},
		{"return in nested if", "function f() {if true {return;}}"},
		{"break in nested if", "while false {if true {break;}}"},
		{"long if", "if true {print(1);} else {print(3);}"},
		{"else if", "if true {print(1);} else if true {print(0);} else {print(3);}"},
		{"for over collection", "for i in [2,3,5] {print(1);}"},
		{"for in range", "for i in 1..<10 {print(0);}"},
		{"for in inclusive range", "for i in 1...10 {print(i);}"},
		{"repeat", "repeat 3 {let a = 1; print(a);}"},
		{"conditionals with ints", "print(true ? 8 : 5);"},
		{"conditionals with floats", "print(1<2 ? 8.0 : -5.22);"},
		{"conditionals with strings", `print(1<2 ? "x" : "y");`},
		{"unwrap else", "print(some 5 ?? 0);"},
		{"or", "print(true||1<2||false||!true);"},
		{"and", "print(true&&1<2&&false&&!true);"},
		{"bit ops", "print((1&2)|(9^3));"},
		{"relations", `print(1<=2 && "x">"y" && 3.5<1.2);`},
		{"ok to == arrays", "print([1]==[5,8]);"},
		{"ok to != arrays", "print([1]!=[5,8]);"},
		{"shifts", "print(1<<3<<5<<8>>2>>0);"},
		{"arithmetic", "let x=1;print(2*3+5**-3/2-5%8);"},
		{"string concatenation", `let s = "a" + "b";`},
		{"array length", "print(#[1,2,3]);"},
		{"optional types", "let x = no int; x = some 100;"},
		{"variables", "let x=[[[[1]]]]; print(x[0][0][0][0]+2);"},
		{"recursive structs", "struct S {z: S?} let x = S(no S);"},
		{"nested structs", "struct T{y:int} struct S{z: T} let x=S(T(1)); print(x.z.y);"},
		{"member exp", "struct S {x: int} let y = S(1);print(y.x);"},
		{"subscript exp", "let a=[1,2];print(a[0]);"},
		{"array of struct", "struct S{} let x=[S(), S()];"},
		{"struct of arrays and opts", "struct S{x: [int] y: string??}"},
		{"assigned functions", "function f() {}\nlet g = f;g = f;"},
		{"call of assigned functions", "function f(x: int) {}\nlet g=f;g(1);"},
		{"call of assigned function in expression", `function f(x: int, y: boolean): int {}
			let g = f;
			print(g(1, true));
			f = g;`},
		{"pass a function to a function", `function f(x: int, y: (boolean)->void): int { return 1; }
			function g(z: boolean) {}
			f(2, g);`},
		{"function return types", `function square(x: int): int { return x * x; }
			function compose(): (int)->int { return square; }`},
		{"recursion", "function fact(n: int): int { return n < 1 ? 1 : n * fact(n - 1); }"},
		{"struct parameters", "struct S {} function f(x: S) {}"},
		{"array parameters", "function f(x: [int?]) {}"},
		{"optional parameters", "function f(x: [int], y: string?) {}"},
		{"mutable parameters", "function f(x: int) { x = 2; x++; }"},
		{"shadowing in a nested block", "let x = 1;\nwhile true {let x = 1;}"},
		{"shadowing a built-in", "function f() { let print = 1; }"},
		{"type aliases", "function f(b: bool, s: str): boolean { return b; }"},
		{"built-in constants", "print(25.0 * π);"},
		{"built-in sin", "print(sin(π));"},
		{"built-in cos", "print(cos(93.999));"},
		{"built-in hypot", "print(hypot(-4.0, 3.00001));"},
		{"built-in exp and ln", "print(exp(ln(2.0)));"},
		{"built-in bytes", `let b = bytes("hello"); print(b[0] + 1);`},
		{"built-in codepoints", `for c in codepoints("héllo") {print(c);}`},
		{"print takes anything", "struct S{} print(S()); print([no int]); print(print);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := analyzeSource(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if prog == nil {
				t.Fatal("expected a program")
			}
		})
	}
}

func TestAnalyzeRejects(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    *Error
		message string
	}{
		{"non-distinct fields", "struct S {x: boolean x: int}", ErrDuplicateField, "Fields must be distinct"},
		{"non-int increment", "let x=false;x++;", ErrTypeMismatch, "Expected an integer, found boolean"},
		{"non-int decrement", `let x=some[""];x--;`, ErrTypeMismatch, "Expected an integer, found [string]?"},
		{"undeclared id", "print(x);", ErrUndeclaredIdentifier, "Identifier x not declared"},
		{"redeclared id", "let x = 1;let x = 1;", ErrDuplicateDeclaration, "Identifier x already declared"},
		{"redeclared built-in", "let print = 1;", ErrDuplicateDeclaration, "Identifier print already declared"},
		{"redeclared parameter", "function f(x: int, x: int) {}", ErrDuplicateDeclaration, "Identifier x already declared"},
		{"assign to const", "const x = 1;x = 2;", ErrReadOnlyTarget, "Cannot assign to constant x"},
		{"assign to built-in constant", "π = 3.0;", ErrReadOnlyTarget, "Cannot assign to constant π"},
		{"increment const", "const x = 1;x++;", ErrReadOnlyTarget, "Cannot assign to constant x"},
		{"assign to loop variable", "for i in 1...3 { i = 2; }", ErrReadOnlyTarget, "Cannot assign to constant i"},
		{"assign bad type", "let x=1;x=true;", ErrTypeMismatch, "Cannot assign a boolean to a int"},
		{"assign bad array type", "let x=1;x=[true];", ErrTypeMismatch, "Cannot assign a [boolean] to a int"},
		{"assign bad optional type", "let x=1;x=some 2;", ErrTypeMismatch, "Cannot assign a int? to a int"},
		{"break outside loop", "break;", ErrIllegalBreak, "Break can only appear in a loop"},
		{"break inside function", "while true {function f() {break;}}", ErrIllegalBreak, "Break can only appear in a loop"},
		{"return outside function", "return;", ErrIllegalReturn, "Return can only appear in a function"},
		{"return value outside function", "return 1;", ErrIllegalReturn, "Return can only appear in a function"},
		{"return value from void function", "function f() {return 1;}", ErrUnexpectedReturnValue, "Cannot return a value here"},
		{"return nothing from non-void", "function f(): int {return;}", ErrMissingReturnValue, "Something should be returned here"},
		{"return type mismatch", "function f(): int {return false;}", ErrTypeMismatch, "Cannot assign a boolean to a int"},
		{"non-boolean short if test", "if 1 {}", ErrTypeMismatch, "Expected a boolean, found int"},
		{"non-boolean if test", "if 1 {} else {}", ErrTypeMismatch, "Expected a boolean, found int"},
		{"non-boolean else if test", "if true {} else if 1 {}", ErrTypeMismatch, "Expected a boolean, found int"},
		{"non-boolean while test", "while 1 {}", ErrTypeMismatch, "Expected a boolean, found int"},
		{"non-integer repeat", `repeat "1" {}`, ErrTypeMismatch, "Expected an integer, found string"},
		{"non-integer low range", "for i in true...2 {}", ErrTypeMismatch, "Expected an integer, found boolean"},
		{"non-integer high range", "for i in 1..<no int {}", ErrTypeMismatch, "Expected an integer, found int?"},
		{"non-array in for", "for i in 100 {}", ErrArrayExpected, "Array expected"},
		{"non-boolean conditional test", "print(1?2:3);", ErrTypeMismatch, "Expected a boolean, found int"},
		{"diff types in conditional arms", "print(true?1:true);", ErrTypeMismatch, "Operands do not have the same type"},
		{"unwrap non-optional", "print(1??2);", ErrOptionalExpected, "Optional expected"},
		{"unwrap with wrong alternate", `print(some 1 ?? "x");`, ErrTypeMismatch, "Cannot assign a string to a int"},
		{"chained unwrap", "print(some 5 ?? 8 ?? 0);", ErrOptionalExpected, "Optional expected"},
		{"bad types for ||", "print(false||1);", ErrTypeMismatch, "Expected a boolean, found int"},
		{"bad types for &&", "print(false&&1);", ErrTypeMismatch, "Expected a boolean, found int"},
		{"bad types for ==", "print(false==1);", ErrTypeMismatch, "Operands do not have the same type"},
		{"bad types for +", "print(false+1);", ErrTypeMismatch, "Expected a number or string, found boolean"},
		{"bad types for -", "print(false-1);", ErrTypeMismatch, "Expected a number, found boolean"},
		{"bad types for *", "print(false*1);", ErrTypeMismatch, "Expected a number, found boolean"},
		{"bad types for /", "print(false/1);", ErrTypeMismatch, "Expected a number, found boolean"},
		{"bad types for %", "print(false%1);", ErrTypeMismatch, "Expected a number, found boolean"},
		{"bad types for **", "print(false**1);", ErrTypeMismatch, "Expected a number, found boolean"},
		{"bad types for <", "print(false<1);", ErrTypeMismatch, "Expected a number or string, found boolean"},
		{"bad types for <=", "print(false<=1);", ErrTypeMismatch, "Expected a number or string, found boolean"},
		{"bad types for >", "print(false>1);", ErrTypeMismatch, "Expected a number or string, found boolean"},
		{"bad types for >=", "print(false>=1);", ErrTypeMismatch, "Expected a number or string, found boolean"},
		{"int and float for ==", "print(2==2.0);", ErrTypeMismatch, "Operands do not have the same type"},
		{"bad types for !=", "print(false!=1);", ErrTypeMismatch, "Operands do not have the same type"},
		{"mixed types for +", `print(1+"a");`, ErrTypeMismatch, "Operands do not have the same type"},
		{"float in shift", "print(1.0<<2);", ErrTypeMismatch, "Expected an integer, found float"},
		{"float in bit op", "print(1&2.0);", ErrTypeMismatch, "Expected an integer, found float"},
		{"bad types for negation", "print(-true);", ErrTypeMismatch, "Expected a number, found boolean"},
		{"bad types for length", "print(#false);", ErrArrayExpected, "Array expected"},
		{"bad types for not", `print(!"hello");`, ErrTypeMismatch, "Expected a boolean, found string"},
		{"non-integer index", "let a=[1];print(a[false]);", ErrTypeMismatch, "Expected an integer, found boolean"},
		{"subscript of non-array", "let a=1;print(a[0]);", ErrArrayExpected, "Array expected"},
		{"no such field", "struct S{} let x=S(); print(x.y);", ErrNoSuchField, "No such field"},
		{"field of non-struct", "let x=1; print(x.y);", ErrNoSuchField, "No such field"},
		{"diff type array elements", "print([3,3.0]);", ErrTypeMismatch, "Not all elements have the same type"},
		{"shadowing in the same scope", "while true {let x = 1; let x = 2;}", ErrDuplicateDeclaration, "Identifier x already declared"},
		{"call of uncallable", "let x = 1;\nprint(x());", ErrCallOfNonFunction, "Call of non-function or non-constructor"},
		{"call of primitive type", "print(int(1));", ErrCallOfNonFunction, "Call of non-function or non-constructor"},
		{"type as value", "let x = int;", ErrTypeMismatch, "Expected a value, found type int"},
		{"struct as value", "struct S{} let x = S;", ErrTypeMismatch, "Expected a value, found type S"},
		{"too many args", "function f(x: int) {}\nf(1,2);", ErrArityMismatch, "1 argument(s) required but 2 passed"},
		{"too few args", "function f(x: int) {}\nf();", ErrArityMismatch, "1 argument(s) required but 0 passed"},
		{"too few constructor args", "struct S{x: int} let s = S();", ErrArityMismatch, "1 argument(s) required but 0 passed"},
		{"parameter type mismatch", "function f(x: int) {}\nf(false);", ErrTypeMismatch, "Cannot assign a boolean to a int"},
		{"field type mismatch", "struct S{x: int} let s = S(true);", ErrTypeMismatch, "Cannot assign a boolean to a int"},
		{"function type mismatch", `function f(x: int, y: (boolean)->void): int { return 1; }
			function g(z: boolean): int { return 5; }
			f(2, g);`, ErrTypeMismatch, "Cannot assign a (boolean)->int to a (boolean)->void"},
		{"bad call to stdlib sin()", "print(sin(true));", ErrTypeMismatch, "Cannot assign a boolean to a float"},
		{"non-type in param", "let x=1;function f(y:x){}", ErrTypeExpected, "Type expected"},
		{"non-type in return type", "let x=1;function f():x{return 1;}", ErrTypeExpected, "Type expected"},
		{"non-type in field type", "let x=1;struct S {y:x}", ErrTypeExpected, "Type expected"},
		{"undeclared type", "let a = [](of T);", ErrUndeclaredIdentifier, "Identifier T not declared"},
		{"variable from other branch", "if true {let x = 1;} else {print(x);}", ErrUndeclaredIdentifier, "Identifier x not declared"},
		{"iterator outside loop", "for i in [1] {} print(i);", ErrUndeclaredIdentifier, "Identifier i not declared"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzeSource(t, tt.src)
			if err == nil {
				t.Fatalf("expected an error containing %q", tt.message)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("expected error containing %q, got %q", tt.message, err.Error())
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected kind %s, got %v", tt.kind.Kind, err)
			}
		})
	}
}

func TestAnalyzeGraph(t *testing.T) {
	varX := &ast.Variable{Name: "x", Typed: ast.Typed{Resolved: types.Int}}
	paramX := &ast.Variable{Name: "x", Typed: ast.Typed{Resolved: types.Int}}

	tests := []struct {
		name string
		src  string
		want []ast.Statement
	}{
		{
			"variable created and resolved",
			"let x=1; x=2;",
			[]ast.Statement{
				&ast.VariableDeclaration{Name: "x", Initializer: &ast.IntLiteral{Value: 1}, Variable: varX},
				&ast.Assignment{Target: varX, Source: &ast.IntLiteral{Value: 2}},
			},
		},
		{
			"function created and resolved",
			"function f(x: int) {}",
			[]ast.Statement{
				&ast.FunctionDeclaration{
					Name:   "f",
					Params: []*ast.Parameter{{Name: "x", Variable: paramX}},
					Function: &ast.Function{
						Name:  "f",
						Typed: ast.Typed{Resolved: &types.Function{Params: []types.Type{types.Int}, Returns: types.Void}},
					},
				},
			},
		},
		{
			"field type resolved",
			"struct S {x: int}",
			[]ast.Statement{
				&ast.StructDeclaration{
					Name:   "S",
					Fields: []*ast.Field{{Name: "x", Type: types.Int}},
					Struct: &types.Struct{Name: "S", Fields: []*types.Field{{Name: "x", Type: types.Int}}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := analyzeSource(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := deep.Equal(prog, &ast.Program{Statements: tt.want}); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestAnalyzeSharesEntities(t *testing.T) {
	prog, err := analyzeSource(t, "let x = 1; x = x + 1;")
	if err != nil {
		t.Fatal(err)
	}
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	assign := prog.Statements[1].(*ast.Assignment)
	if assign.Target != decl.Variable {
		t.Error("assignment target is not the declared variable")
	}
	sum := assign.Source.(*ast.Binary)
	if sum.Left != decl.Variable {
		t.Error("operand is not the declared variable")
	}
	if sum.Type() != types.Int {
		t.Errorf("expected int, got %s", sum.Type())
	}
}

func TestAnalyzeLeavesInputUntouched(t *testing.T) {
	prog, err := parser.ParseString("test.carlos", "let x = 1; x = 2;")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Analyze(prog); err != nil {
		t.Fatal(err)
	}
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	if decl.Variable != nil {
		t.Error("input declaration was decorated")
	}
	if _, ok := prog.Statements[1].(*ast.Assignment).Target.(*ast.Identifier); !ok {
		t.Error("input identifier was replaced")
	}
}

func TestAnalyzeRecursiveStruct(t *testing.T) {
	prog, err := analyzeSource(t, "struct S {z: S?}")
	if err != nil {
		t.Fatal(err)
	}
	st := prog.Statements[0].(*ast.StructDeclaration).Struct
	opt, ok := st.Fields[0].Type.(*types.Optional)
	if !ok {
		t.Fatalf("expected an optional field, got %s", st.Fields[0].Type)
	}
	if opt.Base != types.Type(st) {
		t.Error("field does not refer back to its struct")
	}
	if got := opt.String(); got != "S?" {
		t.Errorf("expected S?, got %s", got)
	}
}

func TestAnalyzeStructsAreNominal(t *testing.T) {
	_, err := analyzeSource(t, "struct A {x: int} struct B {x: int} let a = A(1); a = B(1);")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected a type mismatch, got %v", err)
	}
	if err.Error() != "Cannot assign a B to a A" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAnalyzeTypes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"let x = 1;", "int"},
		{"let x = 1.5;", "float"},
		{`let x = "s";`, "string"},
		{"let x = !true;", "boolean"},
		{"let x = [](of [int]);", "[[int]]"},
		{"let x = no string;", "string?"},
		{"let x = some [1];", "[int]?"},
		{"let x = #[1];", "int"},
		{"let x = 1 < 2;", "boolean"},
		{"let x = 1 | 2;", "int"},
		{"let x = 2.0 ** 3.0;", "float"},
		{"let x = some 1 ?? 2;", "int"},
		{"let x = hypot;", "(float,float)->float"},
		{"let x = bytes;", "(string)->[int]"},
		{"let x = print(1);", "void"},
		{"struct S {} let x = S();", "S"},
		{"struct S {y: [float]} let x = S([1.0]).y;", "[float]"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, err := analyzeSource(t, tt.src)
			if err != nil {
				t.Fatal(err)
			}
			last := prog.Statements[len(prog.Statements)-1].(*ast.VariableDeclaration)
			if got := last.Variable.Type().String(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAnalyzeErrorPosition(t *testing.T) {
	_, err := analyzeSource(t, "let x = 1;\nx = true;")
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if e.Pos.Line != 2 || e.Pos.Column != 5 {
		t.Errorf("expected 2:5, got %d:%d", e.Pos.Line, e.Pos.Column)
	}
	if e.Pos.Filename != "test.carlos" {
		t.Errorf("expected test.carlos, got %s", e.Pos.Filename)
	}
}

func TestScanSymbols(t *testing.T) {
	prog, err := analyzeSource(t, "struct P {x: int} const k = 1; let v = P(k); function f(p: P): int { return p.x; } print(f(v));")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, s := range ScanSymbols(prog) {
		got = append(got, s.Kind+" "+s.Name+" "+s.Type.String())
	}
	want := []string{"struct P P", "constant k int", "variable v P", "function f (P)->int"}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}
