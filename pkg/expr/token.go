// Package expr implements the calculator expression pipeline: a tokenizer,
// a shunting-yard infix-to-postfix converter, and an RPN evaluator with a
// table of scientific functions and constants.
package expr

import "strconv"

// TokenType represents the type of a lexical token.
type TokenType int

const (
	TokenNumber  TokenType = iota // numeric literal
	TokenName                     // function or constant name, lowercased
	TokenLParen                   // (
	TokenRParen                   // )
	TokenComma                    // ,
	TokenPostfix                  // ! or %
	TokenBinary                   // + - * / ^

	// TokenUnaryMinus is a synthetic marker inserted by the parser when a
	// '-' is reclassified as negation. The tokenizer never produces it.
	TokenUnaryMinus
)

// Token represents a single lexical token.
type Token struct {
	Type   TokenType
	Value  string  // raw symbol or name
	NumVal float64 // parsed value (for TokenNumber)
	Pos    int     // byte position in source
}

// String returns a debug-friendly representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "NUMBER"
	case TokenName:
		return "NAME"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenComma:
		return "COMMA"
	case TokenPostfix:
		return "POSTFIX"
	case TokenBinary:
		return "BINARY"
	case TokenUnaryMinus:
		return "UNARYMINUS"
	default:
		return "UNKNOWN"
	}
}

// String returns the token as it would appear in an expression. Numbers are
// rendered with the shortest representation that round-trips.
func (t Token) String() string {
	if t.Type == TokenNumber {
		return strconv.FormatFloat(t.NumVal, 'g', -1, 64)
	}
	return t.Value
}
