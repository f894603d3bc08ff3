package parser

import (
	"unicode"
	"unicode/utf8"
)

// Tokenizer splits a document into tokens on demand. Spaces, tabs, carriage
// returns and '#' comments are skipped; newlines and commas are separators.
type Tokenizer struct {
	src  string
	pos  int // current byte offset
	line int // current line (1-based)
	col  int // characters consumed on the current line
}

// NewTokenizer creates a Tokenizer over src.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src, line: 1}
}

func (t *Tokenizer) atEnd() bool {
	return t.pos >= len(t.src)
}

func (t *Tokenizer) peek() rune {
	if t.atEnd() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(t.src[t.pos:])
	return r
}

func (t *Tokenizer) advance() rune {
	r, size := utf8.DecodeRuneInString(t.src[t.pos:])
	t.pos += size
	if r == '\n' {
		t.line++
		t.col = 0
	} else {
		t.col++
	}
	return r
}

func (t *Tokenizer) skipWhitespaceAndComments() {
	for !t.atEnd() {
		switch t.peek() {
		case ' ', '\t', '\r':
			t.advance()
		case '#':
			// The terminating newline is left for the caller as a separator.
			for !t.atEnd() && t.peek() != '\n' {
				t.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token. Once the input is exhausted it keeps
// returning an EOF token.
func (t *Tokenizer) Next() (Token, error) {
	t.skipWhitespaceAndComments()

	start, line, col := t.pos, t.line, t.col+1
	if t.atEnd() {
		return Token{Line: line, Col: col, Type: TokenEOF}, nil
	}
	token := func(tt TokenType) (Token, error) {
		return Token{Text: t.src[start:t.pos], Line: line, Col: col, Type: tt}, nil
	}

	r := t.advance()
	switch r {
	case '\n', ',':
		return token(TokenSeparator)
	case '$':
		return token(TokenDollar)
	case ':':
		return token(TokenColon)
	case '/':
		return token(TokenSlash)
	case '-':
		return token(TokenMinus)
	case '=':
		return token(TokenEquals)
	case '[':
		return token(TokenSquareOpen)
	case ']':
		return token(TokenSquareClose)
	case '_':
		if t.peek() == '_' {
			t.advance()
			return token(TokenClearTag)
		}
		return token(TokenTag)
	}

	switch {
	case isDigit(r):
		for !t.atEnd() && isDigit(t.peek()) {
			t.advance()
		}
		return token(TokenNumber)
	case unicode.IsLetter(r):
		for !t.atEnd() && isIdentPart(t.peek()) {
			t.advance()
		}
		return token(TokenIdent)
	}

	return Token{}, &ParseError{Line: line, Col: col, Kind: ErrNoToken}
}

// Tokenize returns every token of src up to and including EOF.
func Tokenize(src string) ([]Token, error) {
	tk := NewTokenizer(src)
	var tokens []Token
	for {
		tok, err := tk.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// IsIdent reports whether s reads as exactly one identifier, i.e. whether it
// can be written as a job, tag or group name.
func IsIdent(s string) bool {
	toks, err := Tokenize(s)
	return err == nil && len(toks) == 2 && toks[0].Type == TokenIdent && toks[0].Text == s
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || isDigit(r) || r == '_'
}
