package analyzer

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind classifies a semantic error.
type Kind int

const (
	DuplicateDeclaration Kind = iota + 1
	UndeclaredIdentifier
	TypeMismatch
	ReadOnlyTarget
	IllegalBreak
	IllegalReturn
	MissingReturnValue
	UnexpectedReturnValue
	ArityMismatch
	CallOfNonFunction
	NoSuchField
	DuplicateField
	TypeExpected
	OptionalExpected
	ArrayExpected
)

var kindNames = map[Kind]string{
	DuplicateDeclaration:  "DuplicateDeclaration",
	UndeclaredIdentifier:  "UndeclaredIdentifier",
	TypeMismatch:          "TypeMismatch",
	ReadOnlyTarget:        "ReadOnlyTarget",
	IllegalBreak:          "IllegalBreak",
	IllegalReturn:         "IllegalReturn",
	MissingReturnValue:    "MissingReturnValue",
	UnexpectedReturnValue: "UnexpectedReturnValue",
	ArityMismatch:         "ArityMismatch",
	CallOfNonFunction:     "CallOfNonFunction",
	NoSuchField:           "NoSuchField",
	DuplicateField:        "DuplicateField",
	TypeExpected:          "TypeExpected",
	OptionalExpected:      "OptionalExpected",
	ArrayExpected:         "ArrayExpected",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error an analysis stops at. The message wording is
// stable and meant to be shown to users as is.
type Error struct {
	Kind    Kind
	Message string
	Pos     lexer.Position
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches the sentinel of the same kind, so callers can write
// errors.Is(err, analyzer.ErrTypeMismatch).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Kind == e.Kind
}

var (
	ErrDuplicateDeclaration  = &Error{Kind: DuplicateDeclaration}
	ErrUndeclaredIdentifier  = &Error{Kind: UndeclaredIdentifier}
	ErrTypeMismatch          = &Error{Kind: TypeMismatch}
	ErrReadOnlyTarget        = &Error{Kind: ReadOnlyTarget}
	ErrIllegalBreak          = &Error{Kind: IllegalBreak}
	ErrIllegalReturn         = &Error{Kind: IllegalReturn}
	ErrMissingReturnValue    = &Error{Kind: MissingReturnValue}
	ErrUnexpectedReturnValue = &Error{Kind: UnexpectedReturnValue}
	ErrArityMismatch         = &Error{Kind: ArityMismatch}
	ErrCallOfNonFunction     = &Error{Kind: CallOfNonFunction}
	ErrNoSuchField           = &Error{Kind: NoSuchField}
	ErrDuplicateField        = &Error{Kind: DuplicateField}
	ErrTypeExpected          = &Error{Kind: TypeExpected}
	ErrOptionalExpected      = &Error{Kind: OptionalExpected}
	ErrArrayExpected         = &Error{Kind: ArrayExpected}
)

func posError(kind Kind, pos lexer.Position, message string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(message, args...), Pos: pos}
}
