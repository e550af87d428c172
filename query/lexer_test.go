package query

import (
	"testing"
)

func TestLexer_Keywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "case insensitive keywords",
			input: "select FROM Order bY",
			expected: []Token{
				{Type: TokenSelect, Value: "select"},
				{Type: TokenFrom, Value: "FROM"},
				{Type: TokenOrder, Value: "Order"},
				{Type: TokenBy, Value: "bY"},
				{Type: TokenEOF},
			},
		},
		{
			name:  "direction words",
			input: "asc ASCENDING Desc descending",
			expected: []Token{
				{Type: TokenAsc, Value: "asc"},
				{Type: TokenAsc, Value: "ASCENDING"},
				{Type: TokenDesc, Value: "Desc"},
				{Type: TokenDesc, Value: "descending"},
				{Type: TokenEOF},
			},
		},
		{
			name:  "cast and null",
			input: "CAST(x AS int) null",
			expected: []Token{
				{Type: TokenCast, Value: "CAST"},
				{Type: TokenLeftParen, Value: "("},
				{Type: TokenIdent, Value: "x"},
				{Type: TokenAs, Value: "AS"},
				{Type: TokenIdent, Value: "int"},
				{Type: TokenRightParen, Value: ")"},
				{Type: TokenNull, Value: "null"},
				{Type: TokenEOF},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, Tokenize(tt.input), tt.expected)
		})
	}
}

func TestLexer_Literals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "quoted identifier",
			input: `"order", "say ""hi"""`,
			expected: []Token{
				{Type: TokenQuotedIdent, Value: "order"},
				{Type: TokenComma, Value: ","},
				{Type: TokenQuotedIdent, Value: `say "hi"`},
				{Type: TokenEOF},
			},
		},
		{
			name:  "string literal",
			input: `'it''s', 'a\tb'`,
			expected: []Token{
				{Type: TokenString, Value: "it's"},
				{Type: TokenComma, Value: ","},
				{Type: TokenString, Value: "a\tb"},
				{Type: TokenEOF},
			},
		},
		{
			name:  "numbers",
			input: "42 -7 3.25 .5 1e3",
			expected: []Token{
				{Type: TokenNumber, Value: "42"},
				{Type: TokenNumber, Value: "-7"},
				{Type: TokenNumber, Value: "3.25"},
				{Type: TokenNumber, Value: ".5"},
				{Type: TokenNumber, Value: "1e3"},
				{Type: TokenEOF},
			},
		},
		{
			name:  "wildcard and identifiers",
			input: "*, mysql_server, prix€",
			expected: []Token{
				{Type: TokenStar, Value: "*"},
				{Type: TokenComma, Value: ","},
				{Type: TokenIdent, Value: "mysql_server"},
				{Type: TokenComma, Value: ","},
				{Type: TokenIdent, Value: "prix"},
				{Type: TokenError, Value: "€"},
			},
		},
		{
			name:     "unterminated string",
			input:    "'abc",
			expected: []Token{{Type: TokenError, Value: "'abc"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, Tokenize(tt.input), tt.expected)
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	input := `a,  "b c"`
	tokens := Tokenize(input)
	want := []struct{ pos, end int }{{0, 1}, {1, 2}, {4, 9}, {9, 9}}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, w := range want {
		if tokens[i].Pos != w.pos || tokens[i].End != w.end {
			t.Errorf("token %d: span [%d,%d), want [%d,%d)", i, tokens[i].Pos, tokens[i].End, w.pos, w.end)
		}
	}
}

func assertTokens(t *testing.T, tokens, expected []Token) {
	t.Helper()
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, tok := range tokens {
		if tok.Type != expected[i].Type {
			t.Errorf("token %d: expected type %v, got %v", i, expected[i].Type, tok.Type)
		}
		if tok.Value != expected[i].Value {
			t.Errorf("token %d: expected value %q, got %q", i, expected[i].Value, tok.Value)
		}
	}
}
