package rewrite

import "regexp"

const number = `(\d+(?:\.\d+)?)`

// defaultRules is the built-in chain. Phrase-level rules run before
// word-level operator substitutions so that patterns like "X% of Y" see the
// already-normalized percent sign.
var defaultRules = []Rule{
	// Question prefixes and filler.
	{regexp.MustCompile(`^(what\s+is|what's|how\s+much\s+is|calculate|compute|evaluate)\s+`), ""},

	// Percent phrasing. "percent" collapses onto the preceding number, then
	// "X% of Y" expands into the explicit fraction product.
	{regexp.MustCompile(`\s*percent`), "%"},
	{regexp.MustCompile(number + `%\s*of\s*`), "($1/100)*"},

	// Roots and powers.
	{regexp.MustCompile(`(?:the\s+)?square\s+root\s+of\s+` + number), "sqrt($1)"},
	{regexp.MustCompile(number + `\s+squared`), "($1^2)"},
	{regexp.MustCompile(number + `\s+cubed`), "($1^3)"},
	{regexp.MustCompile(`\s+to\s+the\s+power\s+of\s+`), "^"},

	// Fractions of a quantity.
	{regexp.MustCompile(`half\s+of\s+` + number), "($1/2)"},

	// Spelled-out operators.
	{regexp.MustCompile(`\s+plus\s+`), "+"},
	{regexp.MustCompile(`\s+minus\s+`), "-"},
	{regexp.MustCompile(`\s+(?:times|multiplied\s+by)\s+`), "*"},
	{regexp.MustCompile(`\s+(?:divided\s+by|over)\s+`), "/"},

	// Trailing punctuation.
	{regexp.MustCompile(`[?=]+\s*$`), ""},
}

// Default returns the built-in rule chain.
func Default() *Ruleset {
	return New(defaultRules)
}
