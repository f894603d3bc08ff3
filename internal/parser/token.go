package parser

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	TokenSeparator   TokenType = iota // ',' or newline
	TokenNumber                       // [0-9]+
	TokenIdent                        // letter (letter|digit|_)*
	TokenDollar                       // $
	TokenColon                        // :
	TokenSlash                        // /
	TokenMinus                        // -
	TokenEquals                       // =
	TokenSquareOpen                   // [
	TokenSquareClose                  // ]
	TokenTag                          // _
	TokenClearTag                     // __
	TokenEOF
)

var tokenNames = map[TokenType]string{
	TokenSeparator:   "separator",
	TokenNumber:      "number",
	TokenIdent:       "identifier",
	TokenDollar:      "'$'",
	TokenColon:       "':'",
	TokenSlash:       "'/'",
	TokenMinus:       "'-'",
	TokenEquals:      "'='",
	TokenSquareOpen:  "'['",
	TokenSquareClose: "']'",
	TokenTag:         "'_'",
	TokenClearTag:    "'__'",
	TokenEOF:         "EOF",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit. Text is a slice of the source; Line and Col
// locate its first character.
type Token struct {
	Text string
	Line int
	Col  int
	Type TokenType
}

func (t Token) err(kind ErrKind) *ParseError {
	return &ParseError{Line: t.Line, Col: t.Col, Kind: kind}
}

func (t Token) expected(want TokenType) *ParseError {
	return &ParseError{Line: t.Line, Col: t.Col, Kind: ErrExpected, Expected: want}
}
