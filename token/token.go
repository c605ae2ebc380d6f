package token

import "strconv"

// TokenType identifies the operator carried by binary and unary nodes.
type TokenType int

const (
	ILLEGAL TokenType = iota

	arith_beg
	ADD // +
	SUB // -
	MUL // *
	QUO // /
	REM // %
	arith_end

	bitwise_beg
	AND // &
	OR  // |
	XOR // ^
	SHL // <<
	SHR // >>
	bitwise_end

	logical_beg
	LAND // &&
	LOR  // ||
	logical_end

	comparison_beg
	EQL // ==
	NEQ // !=
	LSS // <
	GTR // >
	LEQ // <=
	GEQ // >=
	comparison_end

	unary_beg
	NOT  // !
	BNOT // ~
	INC  // ++
	DEC  // --
	unary_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",

	ADD: "+",
	SUB: "-",
	MUL: "*",
	QUO: "/",
	REM: "%",

	AND: "&",
	OR:  "|",
	XOR: "^",
	SHL: "<<",
	SHR: ">>",

	LAND: "&&",
	LOR:  "||",

	EQL: "==",
	NEQ: "!=",
	LSS: "<",
	GTR: ">",
	LEQ: "<=",
	GEQ: ">=",

	NOT:  "!",
	BNOT: "~",
	INC:  "++",
	DEC:  "--",
}

func (t TokenType) IsArithmetic() bool {
	return arith_beg < t && t < arith_end
}

func (t TokenType) IsBitwise() bool {
	return bitwise_beg < t && t < bitwise_end
}

func (t TokenType) IsLogical() bool {
	return logical_beg < t && t < logical_end
}

func (t TokenType) IsComparison() bool {
	return comparison_beg < t && t < comparison_end
}

// IsMutating reports whether a unary operator writes back to its operand.
func (t TokenType) IsMutating() bool {
	return t == INC || t == DEC
}

func (t TokenType) String() string {
	s := ""
	if 0 <= t && t < TokenType(len(tokens)) {
		s = tokens[t]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(t)) + ")"
	}

	return s
}
