package types

// OpClass groups binary operators that share a typing rule.
type OpClass int

const (
	OpUnknown OpClass = iota
	// OpAdditive is + : numbers or strings, both sides equal.
	OpAdditive
	// OpArithmetic is - * / % ** : numbers, both sides equal.
	OpArithmetic
	// OpRelational is < <= > >= : numbers or strings, yields boolean.
	OpRelational
	// OpEquality is == != : any two equal types, yields boolean.
	OpEquality
	// OpBitwise is & | ^ << >> : integers only.
	OpBitwise
	// OpLogical is && || : booleans only.
	OpLogical
)

func ClassifyBinary(op string) OpClass {
	switch op {
	case "+":
		return OpAdditive
	case "-", "*", "/", "%", "**":
		return OpArithmetic
	case "<", "<=", ">", ">=":
		return OpRelational
	case "==", "!=":
		return OpEquality
	case "&", "|", "^", "<<", ">>":
		return OpBitwise
	case "&&", "||":
		return OpLogical
	}
	return OpUnknown
}

// BinaryResult is the type produced by a well-typed application of op to
// operands of type operand.
func BinaryResult(op string, operand Type) Type {
	switch ClassifyBinary(op) {
	case OpRelational, OpEquality, OpLogical:
		return Boolean
	case OpBitwise:
		return Int
	}
	return operand
}
