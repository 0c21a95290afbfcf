package webidl

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	data, err := os.ReadFile("fixtures/dom.webidl")
	require.NoError(t, err)

	tokens, _, lerr := lexSource(string(data))
	require.Nil(t, lerr)
	require.NotEmpty(t, tokens)
	require.Equal(t, tokenTypeEOF, tokens[len(tokens)-1].Type)
}

func TestLexerTokens(t *testing.T) {
	tokens, _, lerr := lexSource(`interface X { void f(byte... rest); }; /* trailing */`)
	require.Nil(t, lerr)

	var kinds []tokenType
	for _, tk := range tokens {
		kinds = append(kinds, tk.Type)
	}
	require.Equal(t, []tokenType{
		tokenTypeIdentifier, // interface
		tokenTypeIdentifier, // X
		tokenTypeLeftCurly,
		tokenTypeIdentifier, // void
		tokenTypeIdentifier, // f
		tokenTypeLeftParen,
		tokenTypeIdentifier, // byte
		tokenTypeEllipsis,
		tokenTypeIdentifier, // rest
		tokenTypeRightParen,
		tokenTypeSemi,
		tokenTypeRightCurly,
		tokenTypeSemi,
		tokenTypeEOF,
	}, kinds)
}

func TestLexerPositions(t *testing.T) {
	tokens, _, lerr := lexSource("enum E {\n  \"a\"\n};")
	require.Nil(t, lerr)

	// The string literal sits on line 2, column 3.
	require.Equal(t, tokenTypeString, tokens[3].Type)
	require.Equal(t, "a", tokens[3].Value)
	require.Equal(t, 2, tokens[3].Line)
	require.Equal(t, 3, tokens[3].Column)
}

func TestLexerErrors(t *testing.T) {
	cases := []string{
		"interface X { attribute DOMString \"unterminated; };",
		"/* never closed",
		"interface X { void f(byte.. rest); };",
		"interface X { attribute $ y; };",
	}
	for _, src := range cases {
		_, _, lerr := lexSource(src)
		require.NotNil(t, lerr, src)
	}
}
