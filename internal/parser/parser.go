package parser

import (
	"strconv"

	"github.com/Tiliavir/clocklog/internal/timecalc"
)

// Parser groups tokens into actions. It holds at most one token of
// pushback; no rule of the grammar needs more.
type Parser struct {
	tk   *Tokenizer
	next *Token
}

// NewParser creates a Parser over the document src.
func NewParser(src string) *Parser {
	return &Parser{tk: NewTokenizer(src)}
}

// Actions parses src completely and returns its actions, End included.
func Actions(src string) ([]Action, error) {
	p := NewParser(src)
	var actions []Action
	for {
		a, err := p.Next()
		if err != nil {
			return actions, err
		}
		actions = append(actions, a)
		if _, ok := a.Data.(End); ok {
			return actions, nil
		}
	}
}

func (p *Parser) nextToken() (Token, error) {
	if p.next != nil {
		tok := *p.next
		p.next = nil
		return tok, nil
	}
	return p.tk.Next()
}

func (p *Parser) unread(tok Token) {
	p.next = &tok
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	tok, err := p.nextToken()
	if err != nil {
		return Token{}, err
	}
	if tok.Type != tt {
		return Token{}, tok.expected(tt)
	}
	return tok, nil
}

// num converts a numeric literal; anything else is NotANumber at tok.
func num(tok Token) (int, error) {
	if tok.Type != TokenNumber {
		return 0, tok.err(ErrNotANumber)
	}
	n, err := strconv.ParseUint(tok.Text, 10, 32)
	if err != nil {
		pe := tok.err(ErrNotANumber)
		pe.Cause = err
		return 0, pe
	}
	return int(n), nil
}

// clockTime builds the STime of hr:min. Minutes must be below 60 and the
// hour small enough for the minute count to fit an STime.
func clockTime(hr, min Token) (timecalc.STime, error) {
	h, err := num(hr)
	if err != nil {
		return 0, err
	}
	if h > timecalc.MaxHours {
		return 0, hr.err(ErrNotANumber)
	}
	m, err := num(min)
	if err != nil {
		return 0, err
	}
	if m >= 60 {
		return 0, min.err(ErrNotATime)
	}
	return timecalc.NewSTime(uint32(h), uint32(m)), nil
}

// Next returns the next action. At the end of input it returns End, and
// keeps doing so on further calls.
func (p *Parser) Next() (Action, error) {
	tok, err := p.nextToken()
	for err == nil && tok.Type == TokenSeparator {
		tok, err = p.nextToken()
	}
	if err != nil {
		return Action{}, err
	}

	var data ActionData
	switch tok.Type {
	case TokenNumber:
		data, err = p.numberLed(tok)
	case TokenEOF:
		data = End{}
	case TokenMinus:
		data, err = p.clockout()
	case TokenIdent:
		data, err = p.fromIdent(tok)
	case TokenTag:
		data, err = p.tag()
	case TokenClearTag:
		data, err = p.clearTag()
	case TokenDollar:
		data, err = p.group()
	default:
		err = tok.err(ErrNotAnItem)
	}
	if err != nil {
		return Action{}, err
	}
	return Action{Line: tok.Line, Col: tok.Col, Data: data}, nil
}

// numberLed parses dates (d/m, d/m/y) and clock-ins (h:m).
func (p *Parser) numberLed(num1 Token) (ActionData, error) {
	delim, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	switch delim.Type {
	case TokenColon:
		num2, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		t, err := clockTime(num1, num2)
		if err != nil {
			return nil, err
		}
		return Clockin{Time: t}, nil
	case TokenSlash:
	default:
		return nil, num1.err(ErrNotSlashOrColon)
	}

	num2, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	dd, err := num(num1)
	if err != nil {
		return nil, err
	}
	mm, err := num(num2)
	if err != nil {
		return nil, err
	}

	delim2, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	if delim2.Type != TokenSlash {
		p.unread(delim2)
		return ShortDate{Day: dd, Month: mm}, nil
	}
	num3, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	yy, err := num(num3)
	if err != nil {
		return nil, err
	}
	return LongDate{Day: dd, Month: mm, Year: yy}, nil
}

func (p *Parser) clockout() (ActionData, error) {
	hr, err := p.expect(TokenNumber)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	min, err := p.expect(TokenNumber)
	if err != nil {
		return nil, err
	}
	t, err := clockTime(hr, min)
	if err != nil {
		return nil, err
	}
	return Clockout{Time: t}, nil
}

// fromIdent parses "year=N" or a bare job name.
func (p *Parser) fromIdent(id Token) (ActionData, error) {
	eq, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	if eq.Type != TokenEquals {
		p.unread(eq)
		return SetJob{Name: id.Text}, nil
	}
	if id.Text != "year" {
		return nil, id.err(ErrNotYear)
	}
	yrTok, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	yr, err := num(yrTok)
	if err != nil {
		return nil, err
	}
	return SetYear{Year: yr}, nil
}

func (p *Parser) tag() (ActionData, error) {
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	return Tag{Name: name.Text}, nil
}

func (p *Parser) clearTag() (ActionData, error) {
	tok, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	if tok.Type == TokenIdent {
		return ClearTag{Name: tok.Text}, nil
	}
	p.unread(tok)
	return ClearTags{}, nil
}

// group parses "$name[member member, ...]".
func (p *Parser) group() (ActionData, error) {
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSquareOpen); err != nil {
		return nil, err
	}
	g := Group{Name: name.Text}
	for {
		tok, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TokenIdent:
			g.Members = append(g.Members, tok.Text)
		case TokenSeparator:
		case TokenSquareClose:
			return g, nil
		case TokenEOF:
			return nil, &ParseError{Line: tok.Line, Col: tok.Col, Kind: ErrUnexpectedEOF, Expected: TokenSquareClose}
		default:
			return nil, tok.expected(TokenIdent)
		}
	}
}
