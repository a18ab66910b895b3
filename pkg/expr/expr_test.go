package expr

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2+3", 5},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10-2-3", 5},
		{"2^3^2", 512},
		{"2^3*2", 16},
		{"7/2", 3.5},
		{"3.0+4", 7},
		{"-5+3", -2},
		{"3*-2", -6},
		{"3-(-2)", 5},
		{"-(2+3)", -5},
		{"--5", 5},
		{"6÷2", 3},
		{"4×2", 8},
		{"5−3", 2},
		{" 2 + 3 ", 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Evaluate(tt.input, Options{})
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluatePostfixOperators(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0!", 1},
		{"1!", 1},
		{"5!", 120},
		{"3+4!", 27}, // factorial binds tighter than +
		{"2*3!", 12},
		{"50%", 0.5},
		{"200%", 2},
		{"50%%", 0.005},
		{"(20/100)*450", 90},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Evaluate(tt.input, Options{})
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateFunctions(t *testing.T) {
	tests := []struct {
		input   string
		degrees bool
		want    float64
	}{
		{"sin(90)", true, 1},
		{"sin(90)", false, math.Sin(90)},
		{"cos(0)", true, 1},
		{"cos(60)", true, 0.5},
		{"tan(45)", true, 1},
		{"csc(90)", true, 1},
		{"sec(0)", true, 1},
		{"cot(45)", true, 1},
		{"ln(e)", false, 1},
		{"log(1000)", false, 3},
		{"sqrt(16)", false, 4},
		{"sqrt(sin(90))", true, 1},
		{"sin(pi/2)", false, 1},
		{"2*pi", false, 2 * math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Evaluate(tt.input, Options{Degrees: tt.degrees})
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSinRadiansReference(t *testing.T) {
	got, err := Evaluate("sin(90)", Options{Degrees: false})
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if !almostEqual(got, 0.8939966636) {
		t.Errorf("got %v, want ~0.8939966636", got)
	}
}

func TestEvaluateErrorKinds(t *testing.T) {
	var (
		lexErr   *LexError
		parseErr *ParseError
		evalErr  *EvalError
	)

	tests := []struct {
		input string
		as    any
	}{
		{"1.2.3", &lexErr},
		{"2#3", &lexErr},
		{"(2+3", &parseErr},
		{"2+3)", &parseErr},
		{"2,3", &parseErr},
		// Consecutive binary operators tokenize and parse permissively and
		// fail at evaluation with a stack underflow.
		{"2//3", &evalErr},
		{"2++", &evalErr},
		{"5.5!", &evalErr},
		{"(-1)!", &evalErr},
		{"171!", &evalErr},
		{"foo(3)", &evalErr},
		{"1/0", &evalErr},
		{"csc(0)", &evalErr},
		{"ln(0)", &evalErr},
		{"sqrt(-1)", &evalErr},
		{"(2)(3)", &evalErr}, // two values left on the stack
		{"", &evalErr},       // empty stack at end
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Evaluate(tt.input, Options{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.As(err, tt.as) {
				t.Fatalf("got %T (%v), want %T", err, err, tt.as)
			}
		})
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		got, err := Evaluate("2^3^2", Options{})
		if err != nil {
			t.Fatalf("eval error: %v", err)
		}
		if got != 512 {
			t.Errorf("run %d: got %v, want 512", i, got)
		}
	}
}

func TestEvaluateResultRoundTrip(t *testing.T) {
	// Re-evaluating a displayed result returns the same number unchanged.
	got, err := Evaluate("3+4!", Options{})
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	displayed := strconv.FormatFloat(got, 'g', -1, 64)
	again, err := Evaluate(displayed, Options{})
	if err != nil {
		t.Fatalf("eval error on %q: %v", displayed, err)
	}
	if again != got {
		t.Errorf("round trip changed value: %v -> %v", got, again)
	}
}

func TestEvaluateMaxLength(t *testing.T) {
	long := strings.Repeat("1+", MaxExpressionLength) + "1"
	if _, err := Evaluate(long, Options{}); err == nil {
		t.Fatal("expected error for oversized expression")
	}
}

func TestEvaluateLargeFactorialBoundary(t *testing.T) {
	got, err := Evaluate("170!", Options{})
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("170! should be finite, got %v", got)
	}
}
