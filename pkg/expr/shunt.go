package expr

import "math"

// opInfo describes a binary operator: its precedence, associativity, and the
// function it applies.
type opInfo struct {
	prec       int
	rightAssoc bool
	apply      func(a, b float64) float64
}

// binaryOps is the fixed operator table.
var binaryOps = map[string]opInfo{
	"+": {prec: 2, apply: func(a, b float64) float64 { return a + b }},
	"-": {prec: 2, apply: func(a, b float64) float64 { return a - b }},
	"*": {prec: 3, apply: func(a, b float64) float64 { return a * b }},
	"/": {prec: 3, apply: func(a, b float64) float64 { return a / b }},
	"^": {prec: 4, rightAssoc: true, apply: math.Pow},
}

// constants are resolved by the parser the moment they are read; they never
// touch the operator stack.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// ToPostfix converts an infix token sequence to postfix (RPN) order using
// the shunting-yard algorithm. Function names are held on the operator stack
// as pending markers until their closing parenthesis; a '-' that cannot have
// a left operand is reclassified as a TokenUnaryMinus marker with
// function-call precedence; postfix operators ('!', '%') are emitted at
// their input position and never stacked.
func ToPostfix(tokens []Token) ([]Token, error) {
	output := make([]Token, 0, len(tokens))
	var stack []Token

	for i, tok := range tokens {
		switch tok.Type {
		case TokenNumber:
			output = append(output, tok)

		case TokenName:
			if v, ok := constants[tok.Value]; ok {
				output = append(output, Token{Type: TokenNumber, Value: tok.Value, NumVal: v, Pos: tok.Pos})
				break
			}
			// Pending function marker; popped by the matching RParen.
			stack = append(stack, tok)

		case TokenComma:
			for {
				if len(stack) == 0 {
					return nil, &ParseError{Msg: "misplaced comma"}
				}
				top := stack[len(stack)-1]
				if top.Type == TokenLParen {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}

		case TokenPostfix:
			// Emitted in place: a postfix operator applies to whatever the
			// preceding output produces, which gives it the tightest binding.
			output = append(output, tok)

		case TokenBinary:
			if tok.Value == "-" && unaryPosition(tokens, i) {
				stack = append(stack, Token{Type: TokenUnaryMinus, Value: "-", Pos: tok.Pos})
				break
			}
			cur := binaryOps[tok.Value]
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Type == TokenUnaryMinus || top.Type == TokenName {
					// Function-call precedence: always tighter than cur.
					output = append(output, top)
					stack = stack[:len(stack)-1]
					continue
				}
				if top.Type != TokenBinary {
					break
				}
				topInfo := binaryOps[top.Value]
				if (!cur.rightAssoc && cur.prec <= topInfo.prec) ||
					(cur.rightAssoc && cur.prec < topInfo.prec) {
					output = append(output, top)
					stack = stack[:len(stack)-1]
					continue
				}
				break
			}
			stack = append(stack, tok)

		case TokenLParen:
			stack = append(stack, tok)

		case TokenRParen:
			for {
				if len(stack) == 0 {
					return nil, &ParseError{Msg: "mismatched parentheses"}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Type == TokenLParen {
					break
				}
				output = append(output, top)
			}
			// sin(x) becomes "x sin": the pending function (or unary minus)
			// sitting under the parenthesis pair is emitted now.
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Type == TokenName || top.Type == TokenUnaryMinus {
					output = append(output, top)
					stack = stack[:len(stack)-1]
				}
			}

		default:
			return nil, &ParseError{Msg: "unexpected token " + tok.Type.String()}
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Type == TokenLParen {
			return nil, &ParseError{Msg: "mismatched parentheses"}
		}
		output = append(output, top)
	}

	return output, nil
}

// unaryPosition reports whether a '-' at index i negates its operand rather
// than subtracting: at the start of input, or right after a binary operator,
// an opening parenthesis, or a comma.
func unaryPosition(tokens []Token, i int) bool {
	if i == 0 {
		return true
	}
	switch tokens[i-1].Type {
	case TokenBinary, TokenLParen, TokenComma:
		return true
	}
	return false
}
