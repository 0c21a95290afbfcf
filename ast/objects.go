package ast

// Position is a 1-indexed source location within the fragment that
// declared a node. Fragments are in-memory strings, so there is no file
// component.
type Position struct {
	Line   int
	Column int
}

// Definition is a top-level WebIDL definition: interface, dictionary,
// enum, callback function or typedef.
type Definition interface {
	Kind() string
	Pos() *Position
	Ident() string
	QualifiedName() string
}

// Member is an interface member: const, attribute or operation.
type Member interface {
	Kind() string
	Pos() *Position
	Ident() string
	QualifiedName() string
}

// Special marks an operation as one of the special forms.
type Special int

const (
	SpecialGetter Special = iota
	SpecialSetter
	SpecialDeleter
	SpecialCreator
	SpecialLegacyCaller
	SpecialStringifier
)

var specialAsString = map[Special]string{
	SpecialGetter:       "getter",
	SpecialSetter:       "setter",
	SpecialDeleter:      "deleter",
	SpecialCreator:      "creator",
	SpecialLegacyCaller: "legacycaller",
	SpecialStringifier:  "stringifier",
}

func (s Special) String() string { return specialAsString[s] }

// DefaultKind discriminates default value literals. EmptySequence is the
// distinguished sentinel for the "= []" form; it is not representable as
// any other literal.
type DefaultKind int

const (
	DefaultInteger DefaultKind = iota
	DefaultFloat
	DefaultString
	DefaultBoolean
	DefaultNull
	DefaultEmptySequence
)

type Default struct {
	Position Position
	Kind     DefaultKind
	Literal  string
}

func (d *Default) IsEmptySequence() bool { return d.Kind == DefaultEmptySequence }

// ExtendedAttribute is a bracketed annotation on a definition, e.g.
// [LegacyUnenumerableNamedProperties] or [PutForwards=name].
type ExtendedAttribute struct {
	Position Position
	Name     string
	HasValue bool
	Value    string
	HasArgs  bool
	Args     []*Argument
}

type ExtendedAttributeSet []*ExtendedAttribute

func (s ExtendedAttributeSet) ByName(name string) *ExtendedAttribute {
	for _, a := range s {
		if a.Name == name {
			return a
		}
	}
	return nil
}

type Argument struct {
	Position Position
	Name     string
	Type     Type
	Optional bool
	Variadic bool
	Default  *Default
}

type Interface struct {
	Position   Position
	Name       string
	Callback   bool
	Partial    bool
	Forward    bool
	InheritsOf string
	Attrs      ExtendedAttributeSet
	Members    []Member

	// Parent is resolved during Finish from InheritsOf.
	Parent *Interface
}

func (i *Interface) Kind() string {
	if i.Callback {
		return "CallbackInterface"
	}
	return "Interface"
}

func (i *Interface) Pos() *Position        { return &i.Position }
func (i *Interface) Ident() string         { return i.Name }
func (i *Interface) QualifiedName() string { return "::" + i.Name }

func (i *Interface) AppendMember(m Member) {
	switch mm := m.(type) {
	case *Const:
		mm.Owner = i
	case *Attribute:
		mm.Owner = i
	case *Operation:
		mm.Owner = i
	}
	i.Members = append(i.Members, m)
}

type Const struct {
	Position Position
	Name     string
	Type     Type
	Value    *Default
	Owner    *Interface
}

func (*Const) Kind() string            { return "Const" }
func (c *Const) Pos() *Position        { return &c.Position }
func (c *Const) Ident() string         { return c.Name }
func (c *Const) QualifiedName() string { return c.Owner.QualifiedName() + "::" + c.Name }

type Attribute struct {
	Position Position
	Name     string
	Type     Type
	ReadOnly bool
	Static   bool
	Owner    *Interface
}

func (*Attribute) Kind() string            { return "Attribute" }
func (a *Attribute) Pos() *Position        { return &a.Position }
func (a *Attribute) Ident() string         { return a.Name }
func (a *Attribute) QualifiedName() string { return a.Owner.QualifiedName() + "::" + a.Name }

// Operation is an interface method. Name is empty for purely special
// forms declared without an identifier, e.g. "stringifier;" or
// "getter object (DOMString name);".
type Operation struct {
	Position   Position
	Name       string
	ReturnType Type
	Args       []*Argument
	Specials   []Special
	Static     bool
	Owner      *Interface
}

func (*Operation) Kind() string     { return "Operation" }
func (o *Operation) Pos() *Position { return &o.Position }
func (o *Operation) Ident() string  { return o.Name }

func (o *Operation) QualifiedName() string {
	return o.Owner.QualifiedName() + "::" + o.Name
}

func (o *Operation) HasSpecial(s Special) bool {
	for _, v := range o.Specials {
		if v == s {
			return true
		}
	}
	return false
}

// Stringifier reports whether this operation is a bare "stringifier;"
// declaration.
func (o *Operation) Stringifier() bool {
	return o.Name == "" && len(o.Specials) == 1 && o.Specials[0] == SpecialStringifier
}

type Dictionary struct {
	Position Position
	Name     string
	Attrs    ExtendedAttributeSet
	Members  []*DictionaryMember
}

func (*Dictionary) Kind() string            { return "Dictionary" }
func (d *Dictionary) Pos() *Position        { return &d.Position }
func (d *Dictionary) Ident() string         { return d.Name }
func (d *Dictionary) QualifiedName() string { return "::" + d.Name }

func (d *Dictionary) AppendMember(m *DictionaryMember) {
	m.Owner = d
	d.Members = append(d.Members, m)
}

type DictionaryMember struct {
	Position Position
	Name     string
	Type     Type
	Required bool
	Default  *Default
	Owner    *Dictionary
}

func (*DictionaryMember) Kind() string     { return "DictionaryMember" }
func (m *DictionaryMember) Pos() *Position { return &m.Position }
func (m *DictionaryMember) Ident() string  { return m.Name }

func (m *DictionaryMember) QualifiedName() string {
	return m.Owner.QualifiedName() + "::" + m.Name
}

type Enum struct {
	Position Position
	Name     string
	Values   []string
}

func (*Enum) Kind() string            { return "Enum" }
func (e *Enum) Pos() *Position        { return &e.Position }
func (e *Enum) Ident() string         { return e.Name }
func (e *Enum) QualifiedName() string { return "::" + e.Name }

// SameValues compares value lists as sets, the criterion for treating a
// re-declared enum as a harmless duplicate.
func (e *Enum) SameValues(other *Enum) bool {
	if len(e.Values) != len(other.Values) {
		return false
	}
	seen := make(map[string]struct{}, len(e.Values))
	for _, v := range e.Values {
		seen[v] = struct{}{}
	}
	for _, v := range other.Values {
		if _, ok := seen[v]; !ok {
			return false
		}
	}
	return true
}

// Callback is a named function type, e.g.
// "callback Handler = void (long status);".
type Callback struct {
	Position   Position
	Name       string
	ReturnType Type
	Args       []*Argument
}

func (*Callback) Kind() string            { return "Callback" }
func (c *Callback) Pos() *Position        { return &c.Position }
func (c *Callback) Ident() string         { return c.Name }
func (c *Callback) QualifiedName() string { return "::" + c.Name }

type Typedef struct {
	Position Position
	Name     string
	Type     Type
}

func (*Typedef) Kind() string            { return "Typedef" }
func (t *Typedef) Pos() *Position        { return &t.Position }
func (t *Typedef) Ident() string         { return t.Name }
func (t *Typedef) QualifiedName() string { return "::" + t.Name }
