package webidl

import "fmt"

type tokenType int

func (t tokenType) String() string {
	return tokenTypeAsString[t]
}

const (
	tokenTypeInvalid tokenType = iota
	tokenTypeEOF
	tokenTypeIdentifier
	tokenTypeInteger
	tokenTypeFloat
	tokenTypeString
	tokenTypeEqual
	tokenTypeLeftCurly
	tokenTypeRightCurly
	tokenTypeLeftParen
	tokenTypeRightParen
	tokenTypeLeftBracket
	tokenTypeRightBracket
	tokenTypeLeftAngled
	tokenTypeRightAngled
	tokenTypeSemi
	tokenTypeColon
	tokenTypeComma
	tokenTypeQuestion
	tokenTypeEllipsis
)

var tokenTypeAsString = map[tokenType]string{
	tokenTypeInvalid:      "Invalid",
	tokenTypeEOF:          "EOF",
	tokenTypeIdentifier:   "Identifier",
	tokenTypeInteger:      "Integer",
	tokenTypeFloat:        "Float",
	tokenTypeString:       "String",
	tokenTypeEqual:        "Equal",
	tokenTypeLeftCurly:    "LeftCurly",
	tokenTypeRightCurly:   "RightCurly",
	tokenTypeLeftParen:    "LeftParen",
	tokenTypeRightParen:   "RightParen",
	tokenTypeLeftBracket:  "LeftBracket",
	tokenTypeRightBracket: "RightBracket",
	tokenTypeLeftAngled:   "LeftAngled",
	tokenTypeRightAngled:  "RightAngled",
	tokenTypeSemi:         "Semi",
	tokenTypeColon:        "Colon",
	tokenTypeComma:        "Comma",
	tokenTypeQuestion:     "Question",
	tokenTypeEllipsis:     "Ellipsis",
}

type token struct {
	Type   tokenType
	Value  string
	Pos    int
	Line   int
	Column int
}

func (t token) String() string {
	return fmt.Sprintf("webidl.token{Kind: %s, Value: %q, Pos: %d, Line: %d, Column: %d}", t.Type, t.Value, t.Pos, t.Line, t.Column)
}
