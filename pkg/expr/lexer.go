package expr

import (
	"strconv"
	"strings"
	"unicode"
)

// symbolReplacer maps visually-similar Unicode operator symbols to their
// ASCII equivalents before scanning. After normalization every operator is a
// single ASCII byte.
var symbolReplacer = strings.NewReplacer(
	"÷", "/", // ÷
	"×", "*", // ×
	"−", "-", // − minus sign
	"—", "-", // — em dash
)

// Normalize rewrites Unicode operator lookalikes to ASCII. Tokenize applies
// it internally; it is exported for callers that canonicalize text before
// storing it.
func Normalize(input string) string {
	return symbolReplacer.Replace(input)
}

// Lexer tokenizes a calculator expression string.
type Lexer struct {
	input  string
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer for the given input. The input is normalized
// to ASCII operator symbols first.
func NewLexer(input string) *Lexer {
	return &Lexer{input: Normalize(input)}
}

// Tokenize scans the entire input and returns all tokens. The returned
// sequence never contains TokenUnaryMinus; that marker is introduced only by
// ToPostfix.
func Tokenize(input string) ([]Token, error) {
	return NewLexer(input).Tokenize()
}

// Tokenize scans the entire input and returns all tokens.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			return l.tokens, nil
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
	}
}

// next returns the next token from the input. The caller has already skipped
// whitespace and checked for end of input.
func (l *Lexer) next() (Token, error) {
	ch := l.input[l.pos]

	// Number literals. A leading '.' starts a number only when a digit
	// follows, so a stray '.' is still reported as unexpected.
	if isDigit(ch) || (ch == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])) {
		return l.readNumber()
	}

	if isAlpha(ch) {
		return l.readName(), nil
	}

	switch ch {
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "(", Pos: l.pos - 1}, nil
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")", Pos: l.pos - 1}, nil
	case ',':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: l.pos - 1}, nil
	case '!', '%':
		l.pos++
		return Token{Type: TokenPostfix, Value: string(ch), Pos: l.pos - 1}, nil
	case '+', '-', '*', '/', '^':
		l.pos++
		return Token{Type: TokenBinary, Value: string(ch), Pos: l.pos - 1}, nil
	}

	return Token{}, &LexError{Msg: "unexpected character", Char: string(rune(ch)), Pos: l.pos}
}

// readNumber reads a numeric literal: the maximal run of digits and decimal
// points. More than one decimal point is a lex error.
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	dots := 0

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if isDigit(ch) {
			l.pos++
		} else if ch == '.' {
			dots++
			l.pos++
		} else {
			break
		}
	}

	raw := l.input[start:l.pos]
	if dots > 1 {
		return Token{}, &LexError{Msg: "malformed number", Char: raw, Pos: start}
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Token{}, &LexError{Msg: "malformed number", Char: raw, Pos: start}
	}
	return Token{Type: TokenNumber, Value: raw, NumVal: f, Pos: start}, nil
}

// readName reads the maximal run of alphanumeric characters and lowercases
// it. Name resolution happens later: unknown names are a parse- or eval-time
// error, not a lex-time one.
func (l *Lexer) readName() Token {
	start := l.pos
	for l.pos < len(l.input) && isAlphaNum(l.input[l.pos]) {
		l.pos++
	}
	return Token{
		Type:  TokenName,
		Value: strings.ToLower(l.input[start:l.pos]),
		Pos:   start,
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlphaNum(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}
