package query

import (
	"strings"
)

// Parser is a recursive-descent parser over a token slice
type Parser struct {
	input  string
	tokens []Token
	pos    int
	depth  depthCounter
}

func newParser(input string) (*Parser, error) {
	if err := validateQuery(input); err != nil {
		return nil, err
	}
	tokens := Tokenize(input)
	if err := validateTokens(tokens); err != nil {
		return nil, err
	}
	return &Parser{input: input, tokens: tokens}, nil
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.input), End: len(p.input)}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// expect checks if current token matches expected type and advances
func (p *Parser) expect(tokType TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != tokType {
		return tok, p.unexpected(tok, tokType.String())
	}
	p.advance()
	return tok, nil
}

func (p *Parser) unexpected(tok Token, want string) error {
	switch tok.Type {
	case TokenError:
		return syntaxError(tok, "invalid character %q", tok.Value)
	case TokenEOF:
		return syntaxError(tok, "expected %s, got end of input", want)
	}
	return syntaxError(tok, "expected %s, got %q", want, tok.Value)
}

// expectEOF fails unless every token was consumed
func (p *Parser) expectEOF() error {
	if tok := p.current(); tok.Type != TokenEOF {
		if tok.Type == TokenError {
			return p.unexpected(tok, "")
		}
		return syntaxError(tok, "unexpected %q after end of clause", tok.Value)
	}
	return nil
}

// ParseProjection parses a comma separated list of projected expressions.
func ParseProjection(text string) ([]SelectItem, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	items, err := p.parseSelectList()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return items, nil
}

// ParseOrderBy parses an order-by clause. The leading "order by" keywords
// are optional; blank text means no sort and yields no keys.
func ParseOrderBy(text string) ([]OrderItem, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	switch p.current().Type {
	case TokenEOF:
		return nil, nil
	case TokenOrder:
		p.advance()
		if _, err := p.expect(TokenBy); err != nil {
			return nil, err
		}
	}
	items, err := p.parseOrderByList()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return items, nil
}

// Parse parses: SELECT items FROM table [ORDER BY keys]
func Parse(query string) (*Statement, error) {
	p, err := newParser(query)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSelect); err != nil {
		return nil, err
	}
	stmt := &Statement{}
	if stmt.Items, err = p.parseSelectList(); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenFrom); err != nil {
		return nil, err
	}
	tok := p.current()
	if tok.Type != TokenIdent && tok.Type != TokenQuotedIdent {
		return nil, p.unexpected(tok, "table name")
	}
	if err := validateIdentifier(tok); err != nil {
		return nil, err
	}
	stmt.Table = tok.Value
	p.advance()

	if p.current().Type == TokenOrder {
		p.advance()
		if _, err := p.expect(TokenBy); err != nil {
			return nil, err
		}
		if stmt.OrderBy, err = p.parseOrderByList(); err != nil {
			return nil, err
		}
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseSelectList() ([]SelectItem, error) {
	var items []SelectItem
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.current().Type != TokenComma {
			return items, nil
		}
		p.advance()
	}
}

// parseSelectItem parses: * | expr [AS alias]
func (p *Parser) parseSelectItem() (SelectItem, error) {
	if tok := p.current(); tok.Type == TokenStar {
		p.advance()
		return SelectItem{Expr: &Wildcard{}, Header: "*"}, nil
	}

	start := p.current().Pos
	expr, err := p.parseExpression()
	if err != nil {
		return SelectItem{}, err
	}
	item := SelectItem{Expr: expr, Header: p.sourceText(start)}
	if ref, ok := expr.(*ColumnRef); ok {
		item.Header = ref.Name
	}

	if p.current().Type == TokenAs {
		p.advance()
		tok := p.current()
		if tok.Type != TokenIdent && tok.Type != TokenQuotedIdent {
			return SelectItem{}, p.unexpected(tok, "alias")
		}
		if err := validateIdentifier(tok); err != nil {
			return SelectItem{}, err
		}
		item.Alias = tok.Value
		item.Header = tok.Value
		p.advance()
	}
	return item, nil
}

// parseOrderByList parses a comma separated list of sort keys. A bare ASC or
// DESC sets the direction of the key before it, so "a desc, b" and
// "a, desc, b" both sort a descending. Direction words before the first key
// are an error.
func (p *Parser) parseOrderByList() ([]OrderItem, error) {
	var items []OrderItem
	for {
		tok := p.current()
		switch tok.Type {
		case TokenAsc, TokenDesc:
			if len(items) == 0 {
				return nil, syntaxError(tok, "%s must follow a sort expression", strings.ToUpper(tok.Value))
			}
		case TokenEOF, TokenComma:
			return nil, p.unexpected(tok, "sort expression")
		default:
			start := tok.Pos
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			items = append(items, OrderItem{Expr: expr, Text: p.sourceText(start)})
		}

		for {
			switch p.current().Type {
			case TokenAsc:
				items[len(items)-1].Desc = false
				p.advance()
				continue
			case TokenDesc:
				items[len(items)-1].Desc = true
				p.advance()
				continue
			}
			break
		}

		if p.current().Type != TokenComma {
			return items, nil
		}
		p.advance()
	}
}

// parseExpression parses: column | "quoted column" | 'string' | number |
// NULL | CAST(expr AS type) | (expr)
func (p *Parser) parseExpression() (Node, error) {
	tok := p.current()
	switch tok.Type {
	case TokenIdent, TokenQuotedIdent:
		if err := validateIdentifier(tok); err != nil {
			return nil, err
		}
		p.advance()
		return &ColumnRef{Name: tok.Value}, nil
	case TokenString, TokenNumber:
		p.advance()
		return &Literal{Kind: tok.Type, Value: tok.Value}, nil
	case TokenNull:
		p.advance()
		return &Literal{Kind: TokenNull}, nil
	case TokenCast:
		return p.parseCast()
	case TokenLeftParen:
		if err := p.depth.enter(tok); err != nil {
			return nil, err
		}
		defer p.depth.exit()
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.unexpected(tok, "expression")
}

// parseCast parses: CAST ( expr AS type )
func (p *Parser) parseCast() (Node, error) {
	tok := p.current()
	if err := p.depth.enter(tok); err != nil {
		return nil, err
	}
	defer p.depth.exit()
	p.advance()

	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenAs); err != nil {
		return nil, err
	}
	typ := p.current()
	if typ.Type != TokenIdent && typ.Type != TokenQuotedIdent {
		return nil, p.unexpected(typ, "type name")
	}
	p.advance()
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	return &CastExpr{Expr: expr, Type: typ.Value}, nil
}

// sourceText returns the input from start to the end of the last consumed
// token.
func (p *Parser) sourceText(start int) string {
	end := start
	if p.pos > 0 && p.pos-1 < len(p.tokens) {
		end = p.tokens[p.pos-1].End
	}
	return strings.TrimSpace(p.input[start:end])
}
