package webidl

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/webidl-go/webidl/ast"
)

func TestFullParse(t *testing.T) {
	data, err := os.ReadFile("fixtures/dom.webidl")
	require.NoError(t, err)

	p := New()
	require.NoError(t, p.Parse(string(data)))
	defs, err := p.Finish()
	require.NoError(t, err)
	require.NotEmpty(t, defs)

	// The forward declaration of EventTarget reconciles to the full
	// definition; the partial interface folds into Document.
	byName := map[string]ast.Definition{}
	for _, d := range defs {
		byName[d.Ident()] = d
	}
	et := byName["EventTarget"].(*ast.Interface)
	require.False(t, et.Forward)
	require.Len(t, et.Members, 2)

	doc := byName["Document"].(*ast.Interface)
	require.Same(t, et, doc.Parent)
	require.Len(t, doc.Members, 9)
}

func TestMultiFragmentAccumulation(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse("interface Foo;"))
	require.NoError(t, p.Parse("interface Foo { attribute long x; };"))
	defs, err := p.Finish()
	require.NoError(t, err)
	require.Len(t, defs, 1)
	require.Len(t, defs[0].(*ast.Interface).Members, 1)
}

func TestDanglingForwardDeclaration(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse("interface Foo;"))
	_, err := p.Finish()
	require.ErrorContains(t, err, "never defined")
}

func TestParseFailureLeavesStateUntouched(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse("interface A {};"))
	require.Error(t, p.Parse("interface B { nope"))
	defs, err := p.Finish()
	require.NoError(t, err)
	require.Len(t, defs, 1)
	require.Equal(t, "A", defs[0].Ident())
}

func TestFinishIsTerminal(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse("interface A {};"))
	_, err := p.Finish()
	require.NoError(t, err)

	require.Error(t, p.Parse("interface B {};"))
	_, err = p.Finish()
	require.Error(t, err)
}

func TestResetIsolation(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse(`interface Foo {}; enum Foo { "a" };`))
	_, err := p.Finish()
	require.ErrorContains(t, err, "Name collision")

	p = p.Reset()
	require.NoError(t, p.Parse(`interface Foo {}; enum Bar { "a" };`))
	defs, err := p.Finish()
	require.NoError(t, err)
	require.Len(t, defs, 2)
}

func TestRegisterExternal(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse("interface X { attribute Missing m; };"))
	_, err := p.Finish()
	require.ErrorContains(t, err, "unknown type")

	p = p.Reset()
	p.RegisterExternal("Missing")
	require.NoError(t, p.Parse("interface X { attribute Missing m; };"))
	_, err = p.Finish()
	require.NoError(t, err)
}

func TestQualifiedNames(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse("interface TestUSVString { attribute USVString svs; };"))
	defs, err := p.Finish()
	require.NoError(t, err)

	iface := defs[0].(*ast.Interface)
	require.Equal(t, "::TestUSVString", iface.QualifiedName())

	attr := iface.Members[0].(*ast.Attribute)
	require.Equal(t, "svs", attr.Ident())
	require.Equal(t, "::TestUSVString::svs", attr.QualifiedName())
	require.True(t, attr.Type.IsUSVString())
	require.True(t, attr.Type.IsString())
	require.False(t, attr.Type.IsDOMString())
}

func TestTypedefPredicatesChase(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse(`
		typedef sequence<long> Longs;
		typedef Longs AlsoLongs;
		dictionary D { long x = 0; };
		interface X {
			void f(AlsoLongs a, D d);
		};
	`))
	defs, err := p.Finish()
	require.NoError(t, err)

	var iface *ast.Interface
	for _, d := range defs {
		if v, ok := d.(*ast.Interface); ok {
			iface = v
		}
	}
	op := iface.Members[0].(*ast.Operation)
	require.True(t, op.Args[0].Type.IsSequence())
	require.True(t, op.Args[1].Type.IsDictionary())
}

func TestEmptySequenceDefaults(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse(`
		dictionary D { sequence<long> foo = []; };
		interface X { void run(optional sequence<long> arg = []); };
	`))
	defs, err := p.Finish()
	require.NoError(t, err)

	dict := defs[0].(*ast.Dictionary)
	require.NotNil(t, dict.Members[0].Default)
	require.True(t, dict.Members[0].Default.IsEmptySequence())

	op := defs[1].(*ast.Interface).Members[0].(*ast.Operation)
	require.True(t, op.Args[0].Optional)
	require.True(t, op.Args[0].Default.IsEmptySequence())
}

func TestMozMapIntrospection(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse(`
		dictionary Dict { long x = 0; };
		interface X { void run(MozMap<Dict> m); };
	`))
	defs, err := p.Finish()
	require.NoError(t, err)

	op := defs[1].(*ast.Interface).Members[0].(*ast.Operation)
	m := op.Args[0].Type
	require.True(t, m.IsRecord())
	require.True(t, m.Inner().IsDictionary())
}
