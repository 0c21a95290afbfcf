package ast

// Type is the closed set of WebIDL type shapes. Predicates default to
// false via baseType; each concrete type overrides the ones that apply to
// it. Named references delegate through typedefs once resolved, so a
// typedef of a sequence answers IsSequence just like a literal one.
type Type interface {
	Kind() string
	Pos() *Position

	IsSequence() bool
	IsRecord() bool
	IsDictionary() bool
	IsNullable() bool
	IsString() bool
	IsDOMString() bool
	IsUSVString() bool
	IsByteString() bool
	IsCallback() bool
	IsPromise() bool
	IsUnion() bool
	IsAny() bool
	IsVoid() bool

	// Inner returns the wrapped type of single-parameter containers
	// (sequence element, nullable inner, promise inner, record value) and
	// nil for everything else.
	Inner() Type
}

type baseType struct {
	Position Position
}

func (b *baseType) Pos() *Position { return &b.Position }

func (*baseType) IsSequence() bool   { return false }
func (*baseType) IsRecord() bool     { return false }
func (*baseType) IsDictionary() bool { return false }
func (*baseType) IsNullable() bool   { return false }
func (*baseType) IsString() bool     { return false }
func (*baseType) IsDOMString() bool  { return false }
func (*baseType) IsUSVString() bool  { return false }
func (*baseType) IsByteString() bool { return false }
func (*baseType) IsCallback() bool   { return false }
func (*baseType) IsPromise() bool    { return false }
func (*baseType) IsUnion() bool      { return false }
func (*baseType) IsAny() bool        { return false }
func (*baseType) IsVoid() bool       { return false }
func (*baseType) Inner() Type        { return nil }

// PrimitiveType covers scalar built-ins as well as the string types, any,
// object and void. Name holds the canonical spelling, e.g.
// "unsigned long long".
type PrimitiveType struct {
	baseType
	Name string
}

func NewPrimitiveType(pos Position, name string) *PrimitiveType {
	return &PrimitiveType{baseType: baseType{Position: pos}, Name: name}
}

func (*PrimitiveType) Kind() string { return "Primitive" }

func (t *PrimitiveType) IsString() bool {
	return t.Name == "DOMString" || t.Name == "USVString" || t.Name == "ByteString"
}

func (t *PrimitiveType) IsDOMString() bool  { return t.Name == "DOMString" }
func (t *PrimitiveType) IsUSVString() bool  { return t.Name == "USVString" }
func (t *PrimitiveType) IsByteString() bool { return t.Name == "ByteString" }
func (t *PrimitiveType) IsAny() bool        { return t.Name == "any" }

func (t *PrimitiveType) IsVoid() bool {
	return t.Name == "void" || t.Name == "undefined"
}

type SequenceType struct {
	baseType
	Elem Type
}

func NewSequenceType(pos Position, elem Type) *SequenceType {
	return &SequenceType{baseType: baseType{Position: pos}, Elem: elem}
}

func (*SequenceType) Kind() string     { return "Sequence" }
func (*SequenceType) IsSequence() bool { return true }
func (t *SequenceType) Inner() Type    { return t.Elem }

// RecordType is record<K, V>. The legacy single-parameter MozMap<V>
// spelling produces a RecordType with an implicit DOMString key.
type RecordType struct {
	baseType
	Key   Type
	Value Type
}

func NewRecordType(pos Position, key, value Type) *RecordType {
	return &RecordType{baseType: baseType{Position: pos}, Key: key, Value: value}
}

func (*RecordType) Kind() string   { return "Record" }
func (*RecordType) IsRecord() bool { return true }
func (t *RecordType) Inner() Type  { return t.Value }

type UnionType struct {
	baseType
	Members []Type
}

func NewUnionType(pos Position, members []Type) *UnionType {
	return &UnionType{baseType: baseType{Position: pos}, Members: members}
}

func (*UnionType) Kind() string  { return "Union" }
func (*UnionType) IsUnion() bool { return true }

type NullableType struct {
	baseType
	Type Type
}

func NewNullableType(pos Position, inner Type) *NullableType {
	return &NullableType{baseType: baseType{Position: pos}, Type: inner}
}

func (*NullableType) Kind() string     { return "Nullable" }
func (*NullableType) IsNullable() bool { return true }
func (t *NullableType) Inner() Type    { return t.Type }

type PromiseType struct {
	baseType
	Type Type
}

func NewPromiseType(pos Position, inner Type) *PromiseType {
	return &PromiseType{baseType: baseType{Position: pos}, Type: inner}
}

func (*PromiseType) Kind() string    { return "Promise" }
func (*PromiseType) IsPromise() bool { return true }
func (t *PromiseType) Inner() Type   { return t.Type }

// NamedType is an identifier reference to a definition (interface,
// dictionary, enum, callback or typedef) or to an externally registered
// type. Def is nil until resolution runs at Finish time.
type NamedType struct {
	baseType
	Name string
	Def  Definition
}

func NewNamedType(pos Position, name string) *NamedType {
	return &NamedType{baseType: baseType{Position: pos}, Name: name}
}

func (*NamedType) Kind() string { return "Named" }

func (t *NamedType) Resolve(d Definition) { t.Def = d }

// underlying chases a single typedef hop; deeper chains resolve through
// the NamedType the typedef itself holds.
func (t *NamedType) underlying() Type {
	if td, ok := t.Def.(*Typedef); ok && td.Type != nil {
		return td.Type
	}
	return nil
}

func (t *NamedType) IsDictionary() bool {
	if _, ok := t.Def.(*Dictionary); ok {
		return true
	}
	if u := t.underlying(); u != nil {
		return u.IsDictionary()
	}
	return false
}

func (t *NamedType) IsCallback() bool {
	if _, ok := t.Def.(*Callback); ok {
		return true
	}
	if u := t.underlying(); u != nil {
		return u.IsCallback()
	}
	return false
}

func (t *NamedType) IsSequence() bool {
	if u := t.underlying(); u != nil {
		return u.IsSequence()
	}
	return false
}

func (t *NamedType) IsRecord() bool {
	if u := t.underlying(); u != nil {
		return u.IsRecord()
	}
	return false
}

func (t *NamedType) IsNullable() bool {
	if u := t.underlying(); u != nil {
		return u.IsNullable()
	}
	return false
}

func (t *NamedType) IsUnion() bool {
	if u := t.underlying(); u != nil {
		return u.IsUnion()
	}
	return false
}

func (t *NamedType) IsString() bool {
	if u := t.underlying(); u != nil {
		return u.IsString()
	}
	return false
}

func (t *NamedType) IsDOMString() bool {
	if u := t.underlying(); u != nil {
		return u.IsDOMString()
	}
	return false
}

func (t *NamedType) IsUSVString() bool {
	if u := t.underlying(); u != nil {
		return u.IsUSVString()
	}
	return false
}

func (t *NamedType) IsByteString() bool {
	if u := t.underlying(); u != nil {
		return u.IsByteString()
	}
	return false
}

func (t *NamedType) IsPromise() bool {
	if u := t.underlying(); u != nil {
		return u.IsPromise()
	}
	return false
}

func (t *NamedType) Inner() Type {
	if u := t.underlying(); u != nil {
		return u.Inner()
	}
	return nil
}

// UnionMembers flattens t to its union member list, looking through
// nullability and typedefs. Returns nil when t is not a union.
func UnionMembers(t Type) []Type {
	switch tt := t.(type) {
	case *UnionType:
		return tt.Members
	case *NullableType:
		return UnionMembers(tt.Type)
	case *NamedType:
		if u := tt.underlying(); u != nil {
			return UnionMembers(u)
		}
	}
	return nil
}
