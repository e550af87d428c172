package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes projection lists, order-by clauses and select queries
type Lexer struct {
	input string
	pos   int // offset of ch
	next  int // offset after ch
	ch    rune
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	l.pos = l.next
	if l.next >= len(l.input) {
		l.ch = 0
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += size
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// readQuoted reads text between quote characters. A doubled quote stands for
// one quote character. ok is false when the closing quote is missing.
func (l *Lexer) readQuoted(quote rune) (string, bool) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for {
		switch {
		case l.ch == 0 && l.pos >= len(l.input):
			return result.String(), false
		case l.ch == quote && l.peekChar() == quote:
			result.WriteRune(quote)
			l.readChar()
		case l.ch == quote:
			l.readChar() // skip closing quote
			return result.String(), true
		case l.ch == '\\' && quote == '\'':
			l.readChar()
			switch l.ch {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			default:
				result.WriteRune(l.ch)
			}
		default:
			result.WriteRune(l.ch)
		}
		l.readChar()
	}
}

// readNumber reads an optionally signed decimal number
func (l *Lexer) readNumber() string {
	start := l.pos
	if l.ch == '-' || l.ch == '+' {
		l.readChar()
	}
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	if (l.ch == 'e' || l.ch == 'E') && (isDigit(l.peekChar()) || l.peekChar() == '-' || l.peekChar() == '+') {
		l.readChar()
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Pos: l.pos}
	single := func(t TokenType) {
		tok.Type, tok.Value = t, string(l.ch)
		l.readChar()
	}

	switch {
	case l.ch == 0 && l.pos >= len(l.input):
		tok.Type = TokenEOF
	case l.ch == '*':
		single(TokenStar)
	case l.ch == ',':
		single(TokenComma)
	case l.ch == '(':
		single(TokenLeftParen)
	case l.ch == ')':
		single(TokenRightParen)
	case l.ch == '\'' || l.ch == '"':
		quote := l.ch
		value, ok := l.readQuoted(quote)
		switch {
		case !ok:
			tok.Type, tok.Value = TokenError, l.input[tok.Pos:l.pos]
		case quote == '"':
			tok.Type, tok.Value = TokenQuotedIdent, value
		default:
			tok.Type, tok.Value = TokenString, value
		}
	case isDigit(l.ch),
		(l.ch == '-' || l.ch == '+' || l.ch == '.') && isDigit(l.peekChar()):
		tok.Type, tok.Value = TokenNumber, l.readNumber()
	case unicode.IsLetter(l.ch) || l.ch == '_':
		tok.Value = l.readIdentifier()
		tok.Type = identifierType(tok.Value)
	default:
		single(TokenError)
	}

	tok.End = l.pos
	return tok
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

func isIdentChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '$'
}

var keywords = map[string]TokenType{
	"select":     TokenSelect,
	"from":       TokenFrom,
	"order":      TokenOrder,
	"by":         TokenBy,
	"asc":        TokenAsc,
	"ascending":  TokenAsc,
	"desc":       TokenDesc,
	"descending": TokenDesc,
	"as":         TokenAs,
	"cast":       TokenCast,
	"null":       TokenNull,
}

// identifierType determines if an identifier is a keyword. Keywords are
// case-insensitive.
func identifierType(ident string) TokenType {
	if tokType, ok := keywords[strings.ToLower(ident)]; ok {
		return tokType
	}
	return TokenIdent
}

// Tokenize returns all tokens from the input, ending with TokenEOF or the
// first TokenError
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}

	return tokens
}
