package ast

import (
	"bytes"
	"fmt"
	"strings"
)

// Print writes an indented dump of the definitions to stdout.
func Print(defs []Definition) {
	fmt.Println(Dump(defs))
}

// Dump renders an indented dump of the definitions.
func Dump(defs []Definition) string {
	p := printer{}
	for _, d := range defs {
		p.printDefinition(d)
	}
	return p.b.String()
}

type printer struct {
	b   bytes.Buffer
	lvl int
}

func (p *printer) inc() func() {
	p.lvl++
	return p.dec
}

func (p *printer) dec() { p.lvl-- }

func (p *printer) printf(format string, args ...interface{}) {
	p.b.WriteString(fmt.Sprintf("%s%s\n", strings.Repeat("  ", p.lvl), fmt.Sprintf(format, args...)))
}

func (p *printer) printDefinition(d Definition) {
	switch dd := d.(type) {
	case *Interface:
		p.printInterface(dd)
	case *Dictionary:
		p.printDictionary(dd)
	case *Enum:
		p.printEnum(dd)
	case *Callback:
		p.printCallback(dd)
	case *Typedef:
		p.printf("Typedef: %s = %s", dd.Name, typeString(dd.Type))
	}
}

func (p *printer) printInterface(i *Interface) {
	p.printf("%s: %s", i.Kind(), i.Name)
	defer p.inc()()
	if i.InheritsOf != "" {
		p.printf("Inherits: %s", i.InheritsOf)
	}
	p.printAttrs(i.Attrs)
	if len(i.Members) == 0 {
		return
	}
	p.printf("Members:")
	defer p.inc()()
	for _, m := range i.Members {
		p.printMember(m)
	}
}

func (p *printer) printAttrs(attrs ExtendedAttributeSet) {
	if len(attrs) == 0 {
		return
	}
	p.printf("ExtendedAttributes:")
	defer p.inc()()
	for _, a := range attrs {
		switch {
		case a.HasValue:
			p.printf("- %s=%s", a.Name, a.Value)
		case a.HasArgs:
			p.printf("- %s(%s)", a.Name, argsString(a.Args))
		default:
			p.printf("- %s", a.Name)
		}
	}
}

func (p *printer) printMember(m Member) {
	switch mm := m.(type) {
	case *Const:
		p.printf("- const %s %s = %s", typeString(mm.Type), mm.Name, defaultString(mm.Value))
	case *Attribute:
		mods := ""
		if mm.Static {
			mods += "static "
		}
		if mm.ReadOnly {
			mods += "readonly "
		}
		p.printf("- %sattribute %s %s", mods, typeString(mm.Type), mm.Name)
	case *Operation:
		if mm.Stringifier() {
			p.printf("- stringifier")
			return
		}
		mods := ""
		for _, s := range mm.Specials {
			mods += s.String() + " "
		}
		if mm.Static {
			mods = "static " + mods
		}
		p.printf("- %s%s %s(%s)", mods, typeString(mm.ReturnType), mm.Name, argsString(mm.Args))
	}
}

func (p *printer) printDictionary(d *Dictionary) {
	p.printf("Dictionary: %s", d.Name)
	defer p.inc()()
	p.printAttrs(d.Attrs)
	p.printf("Members:")
	defer p.inc()()
	for _, m := range d.Members {
		req := ""
		if m.Required {
			req = "required "
		}
		if m.Default != nil {
			p.printf("- %s%s %s = %s", req, typeString(m.Type), m.Name, defaultString(m.Default))
		} else {
			p.printf("- %s%s %s", req, typeString(m.Type), m.Name)
		}
	}
}

func (p *printer) printEnum(e *Enum) {
	p.printf("Enum: %s", e.Name)
	defer p.inc()()
	for _, v := range e.Values {
		p.printf("- %q", v)
	}
}

func (p *printer) printCallback(c *Callback) {
	p.printf("Callback: %s = %s (%s)", c.Name, typeString(c.ReturnType), argsString(c.Args))
}

func argsString(args []*Argument) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		s := typeString(a.Type)
		if a.Variadic {
			s += "..."
		}
		s += " " + a.Name
		if a.Optional {
			s = "optional " + s
		}
		if a.Default != nil {
			s += " = " + defaultString(a.Default)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func defaultString(d *Default) string {
	if d == nil {
		return "<none>"
	}
	switch d.Kind {
	case DefaultEmptySequence:
		return "[]"
	case DefaultString:
		return fmt.Sprintf("%q", d.Literal)
	default:
		return d.Literal
	}
}

func typeString(t Type) string {
	switch tt := t.(type) {
	case nil:
		return "<none>"
	case *PrimitiveType:
		return tt.Name
	case *NamedType:
		return tt.Name
	case *SequenceType:
		return "sequence<" + typeString(tt.Elem) + ">"
	case *RecordType:
		return "record<" + typeString(tt.Key) + ", " + typeString(tt.Value) + ">"
	case *PromiseType:
		return "Promise<" + typeString(tt.Type) + ">"
	case *NullableType:
		return typeString(tt.Type) + "?"
	case *UnionType:
		parts := make([]string, 0, len(tt.Members))
		for _, m := range tt.Members {
			parts = append(parts, typeString(m))
		}
		return "(" + strings.Join(parts, " or ") + ")"
	default:
		return tt.Kind()
	}
}
