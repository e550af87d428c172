package query

import (
	"errors"
	"fmt"
)

// Limits on query input.
const (
	// MaxQueryLength is the maximum allowed query string length (1MB)
	MaxQueryLength = 1024 * 1024

	// MaxTokens is the maximum number of tokens in a query
	MaxTokens = 1000

	// MaxExpressionDepth is the maximum nesting depth for expressions
	MaxExpressionDepth = 100

	// MaxIdentifierLength is the maximum length for a column, alias or table name
	MaxIdentifierLength = 256
)

var (
	// ErrQueryTooLong is returned when query exceeds MaxQueryLength
	ErrQueryTooLong = errors.New("query too long")

	// ErrTooManyTokens is returned when query has too many tokens
	ErrTooManyTokens = errors.New("too many tokens in query")

	// ErrExpressionTooDeep is returned when expression nesting exceeds limit
	ErrExpressionTooDeep = errors.New("expression nesting too deep")

	// ErrIdentifierTooLong is returned when a name is too long
	ErrIdentifierTooLong = errors.New("identifier too long")
)

func validateQuery(query string) error {
	if len(query) > MaxQueryLength {
		return &Error{Stage: StageParse, Err: fmt.Errorf("%w: %d bytes (max %d)", ErrQueryTooLong, len(query), MaxQueryLength)}
	}
	return nil
}

func validateTokens(tokens []Token) error {
	if len(tokens) > MaxTokens {
		return &Error{Stage: StageParse, Err: fmt.Errorf("%w: %d tokens (max %d)", ErrTooManyTokens, len(tokens), MaxTokens)}
	}
	return nil
}

func validateIdentifier(tok Token) error {
	if len(tok.Value) > MaxIdentifierLength {
		return &Error{Stage: StageParse, Token: tok.Value[:32] + "...",
			Err: fmt.Errorf("%w: %d chars (max %d)", ErrIdentifierTooLong, len(tok.Value), MaxIdentifierLength)}
	}
	return nil
}

// depthCounter tracks expression nesting depth
type depthCounter struct {
	depth int
}

func (c *depthCounter) enter(tok Token) error {
	c.depth++
	if c.depth > MaxExpressionDepth {
		return &Error{Stage: StageParse, Token: tok.Value,
			Err: fmt.Errorf("%w: %d (max %d)", ErrExpressionTooDeep, c.depth, MaxExpressionDepth)}
	}
	return nil
}

func (c *depthCounter) exit() {
	c.depth--
}
