package analyzer

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/Carlos/lib/ast"
	"github.com/vyPal/Carlos/lib/stdlib"
)

// Context is one scope of the analysis. Locals maps a name to its entity:
// an *ast.Variable, an *ast.Function or a types.Type. Contexts only live for
// the duration of an Analyze call.
type Context struct {
	Parent    *Context
	Locals    map[string]any
	LoopDepth int
	Function  *ast.Function
}

// NewContext returns an empty root context with no loop and no enclosing
// function.
func NewContext() *Context {
	return &Context{
		Parent: nil,
		Locals: make(map[string]any),
	}
}

// NewRootContext returns a root context seeded with the standard library.
func NewRootContext() (*Context, error) {
	ctx := NewContext()
	if err := stdlib.Load(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

// NewContext returns a child scope that keeps the loop and function state
// of its parent, as blocks of an if statement do.
func (c *Context) NewContext() *Context {
	return &Context{
		Parent:    c,
		Locals:    make(map[string]any),
		LoopDepth: c.LoopDepth,
		Function:  c.Function,
	}
}

// Loop returns a child scope for a loop body.
func (c *Context) Loop() *Context {
	ctx := c.NewContext()
	ctx.LoopDepth++
	return ctx
}

// ForFunction returns the child scope of a function body. Loop depth starts
// over, so a break inside a function never refers to a loop outside it.
func (c *Context) ForFunction(f *ast.Function) *Context {
	ctx := c.NewContext()
	ctx.LoopDepth = 0
	ctx.Function = f
	return ctx
}

// Declare adds name to this scope. Names of enclosing scopes may be
// shadowed; a second declaration in the same scope is an error.
func (c *Context) Declare(pos lexer.Position, name string, entity any) error {
	if _, ok := c.Locals[name]; ok {
		return posError(DuplicateDeclaration, pos, "Identifier %s already declared", name)
	}
	c.Locals[name] = entity
	return nil
}

func (c *Context) Lookup(pos lexer.Position, name string) (any, error) {
	if e, ok := c.Locals[name]; ok {
		return e, nil
	} else if c.Parent != nil {
		return c.Parent.Lookup(pos, name)
	}
	return nil, posError(UndeclaredIdentifier, pos, "Identifier %s not declared", name)
}

func (c *Context) InLoop() bool {
	return c.LoopDepth > 0
}
