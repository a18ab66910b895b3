package expr

import (
	"strings"
	"unicode"
)

// MaxExpressionLength is the maximum allowed length for a single expression.
const MaxExpressionLength = 400

// Options configures a single evaluation. Degrees selects degree mode for
// the trigonometric functions; the flag is threaded explicitly so every call
// is self-contained and re-entrant.
type Options struct {
	Degrees bool
}

// Evaluate runs the full pipeline on an expression string: whitespace
// stripping and symbol normalization, tokenizing, infix-to-postfix
// conversion, and RPN evaluation. It returns a *LexError, *ParseError, or
// *EvalError depending on the failing stage, and never a partial result.
// The same input and options always produce the same value or the same
// error kind.
func Evaluate(text string, opts Options) (float64, error) {
	if len(text) > MaxExpressionLength {
		return 0, &LexError{Msg: "expression too long", Pos: MaxExpressionLength}
	}

	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	tokens, err := Tokenize(stripped)
	if err != nil {
		return 0, err
	}
	postfix, err := ToPostfix(tokens)
	if err != nil {
		return 0, err
	}
	return EvalPostfix(postfix, opts)
}
