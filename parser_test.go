package webidl

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/webidl-go/webidl/ast"
)

func TestParser(t *testing.T) {
	data, err := os.ReadFile("fixtures/dom.webidl")
	require.NoError(t, err)
	tokens, lines, lerr := lexSource(string(data))
	require.Nil(t, lerr)
	defs, perr := parseFragment(tokens, lines)
	if perr != nil {
		fmt.Println(perr.Error())
	}
	require.Nil(t, perr)
	require.NotEmpty(t, defs)
	fmt.Println()
	ast.Print(defs)
}

func TestParserDefinitionKinds(t *testing.T) {
	src := `
		interface Fwd;
		interface I {};
		callback interface CI {};
		partial interface I { attribute long extra; };
		dictionary D { long x = 0; };
		enum E { "a", "b" };
		callback F = void (long status);
		typedef sequence<long> Longs;
	`
	tokens, lines, lerr := lexSource(src)
	require.Nil(t, lerr)
	defs, perr := parseFragment(tokens, lines)
	require.Nil(t, perr)
	require.Len(t, defs, 8)

	require.True(t, defs[0].(*ast.Interface).Forward)
	require.False(t, defs[1].(*ast.Interface).Callback)
	require.True(t, defs[2].(*ast.Interface).Callback)
	require.True(t, defs[3].(*ast.Interface).Partial)
	require.IsType(t, &ast.Dictionary{}, defs[4])
	require.Equal(t, []string{"a", "b"}, defs[5].(*ast.Enum).Values)
	require.IsType(t, &ast.Callback{}, defs[6])
	require.IsType(t, &ast.Typedef{}, defs[7])
}

func TestParserTypes(t *testing.T) {
	src := `interface X {
		attribute unsigned long long big;
		attribute record<DOMString, long> rec;
		attribute MozMap<long> moz;
		void f(Promise<any> p, (long or DOMString)? u, optional long n = 7);
	};`
	tokens, lines, lerr := lexSource(src)
	require.Nil(t, lerr)
	defs, perr := parseFragment(tokens, lines)
	require.Nil(t, perr)
	iface := defs[0].(*ast.Interface)

	big := iface.Members[0].(*ast.Attribute)
	require.Equal(t, "unsigned long long", big.Type.(*ast.PrimitiveType).Name)

	rec := iface.Members[1].(*ast.Attribute)
	require.True(t, rec.Type.IsRecord())
	require.True(t, rec.Type.(*ast.RecordType).Key.IsDOMString())

	moz := iface.Members[2].(*ast.Attribute)
	require.True(t, moz.Type.IsRecord())
	require.True(t, moz.Type.(*ast.RecordType).Key.IsDOMString())

	op := iface.Members[3].(*ast.Operation)
	require.True(t, op.Args[0].Type.IsPromise())
	require.True(t, op.Args[1].Type.IsNullable())
	require.True(t, op.Args[1].Type.Inner().IsUnion())
	require.True(t, op.Args[2].Optional)
	require.Equal(t, "7", op.Args[2].Default.Literal)
}

func TestParserSpecials(t *testing.T) {
	src := `interface X {
		getter deleter object (DOMString name);
		stringifier;
		legacycaller void (long x);
	};`
	tokens, lines, lerr := lexSource(src)
	require.Nil(t, lerr)
	defs, perr := parseFragment(tokens, lines)
	require.Nil(t, perr)
	iface := defs[0].(*ast.Interface)
	require.Len(t, iface.Members, 3)

	gd := iface.Members[0].(*ast.Operation)
	require.True(t, gd.HasSpecial(ast.SpecialGetter))
	require.True(t, gd.HasSpecial(ast.SpecialDeleter))
	require.Equal(t, "", gd.Ident())

	require.True(t, iface.Members[1].(*ast.Operation).Stringifier())
	require.True(t, iface.Members[2].(*ast.Operation).HasSpecial(ast.SpecialLegacyCaller))
}

func TestParserExtendedAttributes(t *testing.T) {
	src := `[LegacyUnenumerableNamedProperties, PutForwards=href, NamedConstructor(DOMString name)]
	interface X { getter object (DOMString name); };`
	tokens, lines, lerr := lexSource(src)
	require.Nil(t, lerr)
	defs, perr := parseFragment(tokens, lines)
	require.Nil(t, perr)
	iface := defs[0].(*ast.Interface)
	require.Len(t, iface.Attrs, 3)
	require.NotNil(t, iface.Attrs.ByName("LegacyUnenumerableNamedProperties"))
	require.Equal(t, "href", iface.Attrs.ByName("PutForwards").Value)
	require.True(t, iface.Attrs.ByName("NamedConstructor").HasArgs)
}

func TestParserEnumTrailingComma(t *testing.T) {
	tokens, lines, lerr := lexSource(`enum E { "a", "b", };`)
	require.Nil(t, lerr)
	defs, perr := parseFragment(tokens, lines)
	require.Nil(t, perr)
	require.Equal(t, []string{"a", "b"}, defs[0].(*ast.Enum).Values)
}

func TestParserSyntaxErrorFormat(t *testing.T) {
	src := `interface Foo {
  attribute long x;
};

// a comment
interface ? {
};`
	p := New()
	err := p.Parse(src)
	require.Error(t, err)

	lines := strings.Split(err.Error(), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasSuffix(lines[0], "line 6:10"), lines[0])
	require.Equal(t, "interface ? {", lines[1])
	require.Equal(t, strings.Repeat(" ", 10)+"^", lines[2])

	var werr *Error
	require.ErrorAs(t, err, &werr)
	require.Equal(t, 6, werr.Line)
	require.Equal(t, 11, werr.Column)
}

func TestParserSyntaxErrors(t *testing.T) {
	cases := []string{
		"interface",                            // no name before EOF
		"interface X",                          // no body
		"interface X {",                        // unterminated body
		"interface X {}",                       // missing semicolon
		"partial interface X;",                 // partial without a body
		"interface X { attribute long; };",     // attribute without a name
		"interface X { void f(long a,); };",    // dangling comma
		"enum E { \"a\" \"b\" };",              // missing comma
		"typedef long;",                        // typedef without a name
		"interface X { const long C; };",       // const without a value
		"interface X { attribute long?? y; };", // doubly nullable
		"interface X { void f((long) u); };",   // one-member union
	}
	for _, src := range cases {
		err := New().Parse(src)
		require.Error(t, err, src)
		var werr *Error
		require.ErrorAs(t, err, &werr, src)
		require.NotZero(t, werr.Line, src)
	}
}
