package expr

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// postfixString renders a postfix sequence for comparison, with the unary
// minus marker spelled "neg" to keep it distinct from binary subtraction.
func postfixString(t *testing.T, input string) string {
	t.Helper()
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	postfix, err := ToPostfix(tokens)
	if err != nil {
		t.Fatalf("postfix error: %v", err)
	}
	parts := make([]string, len(postfix))
	for i, tok := range postfix {
		if tok.Type == TokenUnaryMinus {
			parts[i] = "neg"
		} else {
			parts[i] = tok.String()
		}
	}
	return strings.Join(parts, " ")
}

func TestToPostfix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3*4", "2 3 4 * +"},
		{"2*3+4", "2 3 * 4 +"},
		{"(2+3)*4", "2 3 + 4 *"},
		{"10-2-3", "10 2 - 3 -"},
		{"2^3^2", "2 3 2 ^ ^"},
		{"2^3*4", "2 3 ^ 4 *"},
		{"sin(90)", "90 sin"},
		{"ln(e)", "2.718281828459045 ln"},
		{"sqrt(sin(90))", "90 sin sqrt"},
		{"3+4!", "3 4 ! +"},
		{"50%", "50 %"},
		{"-5+3", "5 neg 3 +"},
		{"3*-2", "3 2 neg *"},
		{"3-(-2)", "3 2 neg -"},
		{"-(2+3)", "2 3 + neg"},
		{"--5", "5 neg neg"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := postfixString(t, tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToPostfixResolvesConstants(t *testing.T) {
	tokens, err := Tokenize("pi*2")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	postfix, err := ToPostfix(tokens)
	if err != nil {
		t.Fatalf("postfix error: %v", err)
	}
	if postfix[0].Type != TokenNumber || postfix[0].NumVal != math.Pi {
		t.Errorf("got %+v, want pi resolved to a number token", postfix[0])
	}
	for _, tok := range postfix {
		if tok.Type == TokenName {
			t.Errorf("constant left on stack as name: %+v", tok)
		}
	}
}

func TestToPostfixErrors(t *testing.T) {
	tests := []string{
		"(2+3",
		"2+3)",
		"((1)",
		"2,3",
		",",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tokens, err := Tokenize(input)
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}
			_, err = ToPostfix(tokens)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("got %v, want *ParseError", err)
			}
		})
	}
}

func TestCommaInsideCallKeepsParen(t *testing.T) {
	// Multi-argument calls are not evaluable (all functions are unary), but
	// the parser must still accept a comma inside parentheses and leave the
	// opening parenthesis for the matching ')'.
	tokens, err := Tokenize("foo(1,2)")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if _, err := ToPostfix(tokens); err != nil {
		t.Fatalf("postfix error: %v", err)
	}
}
