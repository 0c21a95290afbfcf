package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnumSameValues(t *testing.T) {
	a := &Enum{Name: "E", Values: []string{"a", "b"}}
	b := &Enum{Name: "E", Values: []string{"b", "a"}}
	c := &Enum{Name: "E", Values: []string{"a", "b", "c"}}

	require.True(t, a.SameValues(b))
	require.False(t, a.SameValues(c))
}

func TestNamedTypePredicatesDelegate(t *testing.T) {
	seq := NewSequenceType(Position{}, NewPrimitiveType(Position{}, "long"))
	td := &Typedef{Name: "Longs", Type: seq}
	ref := NewNamedType(Position{}, "Longs")
	ref.Resolve(td)

	require.True(t, ref.IsSequence())
	require.False(t, ref.IsDictionary())
	require.False(t, ref.Inner().IsVoid())
}

func TestUnionMembersLooksThroughNullable(t *testing.T) {
	u := NewUnionType(Position{}, []Type{
		NewPrimitiveType(Position{}, "long"),
		NewPrimitiveType(Position{}, "DOMString"),
	})
	n := NewNullableType(Position{}, u)

	require.Len(t, UnionMembers(u), 2)
	require.Len(t, UnionMembers(n), 2)
	require.Nil(t, UnionMembers(NewPrimitiveType(Position{}, "long")))
}

func TestTypeString(t *testing.T) {
	rec := NewRecordType(Position{},
		NewPrimitiveType(Position{}, "DOMString"),
		NewSequenceType(Position{}, NewPrimitiveType(Position{}, "long")))
	require.Equal(t, "record<DOMString, sequence<long>>", typeString(rec))

	n := NewNullableType(Position{}, NewNamedType(Position{}, "Node"))
	require.Equal(t, "Node?", typeString(n))
}
