package query

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenSelect TokenType = iota
	TokenFrom
	TokenOrder
	TokenBy
	TokenAsc
	TokenDesc
	TokenAs
	TokenCast
	TokenNull

	// Literals
	TokenIdent
	TokenQuotedIdent
	TokenString
	TokenNumber

	// Delimiters
	TokenStar       // *
	TokenComma      // ,
	TokenLeftParen  // (
	TokenRightParen // )

	// Special
	TokenEOF
	TokenError
)

var tokenNames = [...]string{
	TokenSelect:      "SELECT",
	TokenFrom:        "FROM",
	TokenOrder:       "ORDER",
	TokenBy:          "BY",
	TokenAsc:         "ASC",
	TokenDesc:        "DESC",
	TokenAs:          "AS",
	TokenCast:        "CAST",
	TokenNull:        "NULL",
	TokenIdent:       "identifier",
	TokenQuotedIdent: "quoted identifier",
	TokenString:      "string",
	TokenNumber:      "number",
	TokenStar:        "*",
	TokenComma:       ",",
	TokenLeftParen:   "(",
	TokenRightParen:  ")",
	TokenEOF:         "end of input",
	TokenError:       "invalid character",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "unknown"
}

// Token represents a lexical token. Pos and End are byte offsets into the
// input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
	End   int
}

// Node is a parsed expression.
type Node interface {
	node()
}

// ColumnRef names a column of the row shape.
type ColumnRef struct {
	Name string
}

// Literal is a constant. Kind is TokenString, TokenNumber or TokenNull.
type Literal struct {
	Kind  TokenType
	Value string
}

// Wildcard is a bare "*" in a projection list. It stands for every column
// of the row shape, in table order.
type Wildcard struct{}

// CastExpr converts Expr to the type called Type.
type CastExpr struct {
	Expr Node
	Type string
}

func (*ColumnRef) node() {}
func (*Literal) node()   {}
func (*CastExpr) node()  {}
func (*Wildcard) node()  {}

// SelectItem is one projected expression. Header is the column heading: the
// alias, the column name of a bare column reference, or the source text.
type SelectItem struct {
	Expr   Node
	Alias  string
	Header string
}

// OrderItem is one sort key. Keys are applied left to right, each breaking
// ties left by the previous ones.
type OrderItem struct {
	Expr Node
	Desc bool
	Text string
}

// Statement is a parsed "select ... from ... [order by ...]" query.
type Statement struct {
	Items   []SelectItem
	Table   string
	OrderBy []OrderItem
}
