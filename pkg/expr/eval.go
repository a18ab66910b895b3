package expr

import "math"

// maxFactorial is the largest n for which n! fits in a float64.
const maxFactorial = 170

// function is a unary named function. When angle is set the operand is
// interpreted as an angle and converted from degrees to radians in degree
// mode before the function applies.
type function struct {
	apply func(a float64) float64
	angle bool
}

// functions is the closed table of supported names. The reciprocal trig
// functions have no pole handling on purpose: a reciprocal of zero is
// non-finite and rejected by the uniform finiteness check.
var functions = map[string]function{
	"sin":  {apply: math.Sin, angle: true},
	"cos":  {apply: math.Cos, angle: true},
	"tan":  {apply: math.Tan, angle: true},
	"csc":  {apply: func(a float64) float64 { return 1 / math.Sin(a) }, angle: true},
	"sec":  {apply: func(a float64) float64 { return 1 / math.Cos(a) }, angle: true},
	"cot":  {apply: func(a float64) float64 { return 1 / math.Tan(a) }, angle: true},
	"ln":   {apply: math.Log},
	"log":  {apply: math.Log10},
	"sqrt": {apply: math.Sqrt},
}

// EvalPostfix executes a postfix token sequence against a numeric stack and
// returns the single remaining value. Every operator and function step is
// checked for a finite result.
func EvalPostfix(tokens []Token, opts Options) (float64, error) {
	var stack []float64

	push := func(v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &EvalError{Msg: "non-finite result"}
		}
		stack = append(stack, v)
		return nil
	}
	pop := func() (float64, bool) {
		if len(stack) == 0 {
			return 0, false
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, true
	}

	for _, tok := range tokens {
		switch tok.Type {
		case TokenNumber:
			stack = append(stack, tok.NumVal)

		case TokenBinary:
			op, ok := binaryOps[tok.Value]
			if !ok {
				return 0, &EvalError{Msg: "unknown operator", Name: tok.Value}
			}
			b, okB := pop()
			a, okA := pop()
			if !okA || !okB {
				return 0, &EvalError{Msg: "stack underflow"}
			}
			if err := push(op.apply(a, b)); err != nil {
				return 0, err
			}

		case TokenPostfix:
			a, ok := pop()
			if !ok {
				return 0, &EvalError{Msg: "stack underflow"}
			}
			switch tok.Value {
			case "!":
				f, err := factorial(a)
				if err != nil {
					return 0, err
				}
				if err := push(f); err != nil {
					return 0, err
				}
			case "%":
				if err := push(a / 100); err != nil {
					return 0, err
				}
			default:
				return 0, &EvalError{Msg: "unknown operator", Name: tok.Value}
			}

		case TokenUnaryMinus:
			a, ok := pop()
			if !ok {
				return 0, &EvalError{Msg: "stack underflow"}
			}
			if err := push(-a); err != nil {
				return 0, err
			}

		case TokenName:
			fn, ok := functions[tok.Value]
			if !ok {
				return 0, &EvalError{Msg: "unknown function", Name: tok.Value}
			}
			a, okA := pop()
			if !okA {
				return 0, &EvalError{Msg: "stack underflow"}
			}
			if fn.angle && opts.Degrees {
				a = a * math.Pi / 180
			}
			if err := push(fn.apply(a)); err != nil {
				return 0, err
			}

		default:
			return 0, &EvalError{Msg: "unexpected token " + tok.Type.String()}
		}
	}

	if len(stack) != 1 {
		return 0, &EvalError{Msg: "invalid expression"}
	}
	return stack[0], nil
}

// factorial computes a! for a finite non-negative integer a up to
// maxFactorial, beyond which the true value exceeds float64 range.
func factorial(a float64) (float64, error) {
	if math.IsNaN(a) || math.IsInf(a, 0) || a < 0 || a != math.Trunc(a) {
		return 0, &EvalError{Msg: "invalid factorial argument"}
	}
	if a > maxFactorial {
		return 0, &EvalError{Msg: "factorial argument too large"}
	}
	result := 1.0
	for i := 2.0; i <= a; i++ {
		result *= i
	}
	return result, nil
}
