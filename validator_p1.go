package webidl

import (
	"github.com/webidl-go/webidl/ast"
)

// validatePhase1 builds the global namespace. It returns the definitions
// that survive reconciliation, in source order: forward declarations are
// replaced by their full definition, partial interfaces are folded into
// their non-partial one, and an enum re-declared with the same value set
// is collapsed into the first declaration.
func validatePhase1(defs []ast.Definition) ([]ast.Definition, namespace, *Error) {
	v := &validatorP1{
		ns:       namespace{},
		forwards: map[string]*ast.Interface{},
	}

	for _, d := range defs {
		if err := v.register(d); err != nil {
			return nil, nil, err
		}
	}

	if err := v.reconcile(); err != nil {
		return nil, nil, err
	}
	if err := v.linkInheritance(); err != nil {
		return nil, nil, err
	}

	return v.out, v.ns, nil
}

type validatorP1 struct {
	ns       namespace
	out      []ast.Definition
	forwards map[string]*ast.Interface
	partials []*ast.Interface
}

func (v *validatorP1) register(d ast.Definition) *Error {
	if iface, ok := d.(*ast.Interface); ok {
		if iface.Forward {
			return v.registerForward(iface)
		}
		if iface.Partial {
			v.partials = append(v.partials, iface)
			return nil
		}
	}

	name := d.Ident()
	ex, ok := v.ns[name]
	if !ok {
		v.ns[name] = d
		v.out = append(v.out, d)
		return nil
	}

	exEnum, exIsEnum := ex.(*ast.Enum)
	dEnum, dIsEnum := d.(*ast.Enum)
	if exIsEnum && dIsEnum {
		if exEnum.SameValues(dEnum) {
			// Same external fragment registered twice; keep the first.
			return nil
		}
		pos := d.Pos()
		return semanticError(pos.Line, pos.Column, "Multiple unresolvable definitions of %s, line %d, column %d", d.QualifiedName(), pos.Line, pos.Column)
	}

	pos := d.Pos()
	return semanticError(pos.Line, pos.Column, "Name collision between %s %s and %s %s, line %d, column %d", ex.Kind(), ex.QualifiedName(), d.Kind(), d.QualifiedName(), pos.Line, pos.Column)
}

func (v *validatorP1) registerForward(iface *ast.Interface) *Error {
	if ex, ok := v.ns[iface.Name]; ok {
		if _, isIface := ex.(*ast.Interface); isIface {
			return nil
		}
		pos := iface.Pos()
		return semanticError(pos.Line, pos.Column, "Name collision between %s %s and forward-declared interface %s, line %d, column %d", ex.Kind(), ex.QualifiedName(), iface.QualifiedName(), pos.Line, pos.Column)
	}
	if _, ok := v.forwards[iface.Name]; !ok {
		v.forwards[iface.Name] = iface
	}
	return nil
}

// reconcile requires every forward declaration and partial interface to
// be matched by exactly one full definition.
func (v *validatorP1) reconcile() *Error {
	for name, fwd := range v.forwards {
		ex, ok := v.ns[name]
		if !ok {
			pos := fwd.Pos()
			return semanticError(pos.Line, pos.Column, "interface %s is forward-declared but never defined, line %d, column %d", name, pos.Line, pos.Column)
		}
		if _, isIface := ex.(*ast.Interface); !isIface {
			pos := fwd.Pos()
			return semanticError(pos.Line, pos.Column, "Name collision between %s %s and forward-declared interface ::%s, line %d, column %d", ex.Kind(), ex.QualifiedName(), name, pos.Line, pos.Column)
		}
	}

	for _, part := range v.partials {
		ex, ok := v.ns[part.Name]
		if !ok {
			pos := part.Pos()
			return semanticError(pos.Line, pos.Column, "partial interface %s has no non-partial definition, line %d, column %d", part.Name, pos.Line, pos.Column)
		}
		full, isIface := ex.(*ast.Interface)
		if !isIface {
			pos := part.Pos()
			return semanticError(pos.Line, pos.Column, "Name collision between %s %s and partial interface ::%s, line %d, column %d", ex.Kind(), ex.QualifiedName(), part.Name, pos.Line, pos.Column)
		}
		for _, m := range part.Members {
			full.AppendMember(m)
		}
		full.Attrs = append(full.Attrs, part.Attrs...)
	}

	for _, d := range v.out {
		if en, ok := d.(*ast.Enum); ok {
			if err := v.checkEnumValues(en); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *validatorP1) checkEnumValues(en *ast.Enum) *Error {
	seen := makeSet[string]()
	for _, val := range en.Values {
		if seen.has(val) {
			pos := en.Pos()
			return semanticError(pos.Line, pos.Column, "enum %s has duplicate value %q, line %d, column %d", en.QualifiedName(), val, pos.Line, pos.Column)
		}
		seen.add(val)
	}
	return nil
}

func (v *validatorP1) linkInheritance() *Error {
	for _, d := range v.out {
		iface, ok := d.(*ast.Interface)
		if !ok || iface.InheritsOf == "" {
			continue
		}
		pos := iface.Pos()
		parentDef, ok := v.ns[iface.InheritsOf]
		if !ok {
			return semanticError(pos.Line, pos.Column, "interface %s inherits from undefined %s, line %d, column %d", iface.Name, iface.InheritsOf, pos.Line, pos.Column)
		}
		parent, ok := parentDef.(*ast.Interface)
		if !ok {
			return semanticError(pos.Line, pos.Column, "interface %s cannot inherit from %s %s, line %d, column %d", iface.Name, parentDef.Kind(), parentDef.QualifiedName(), pos.Line, pos.Column)
		}
		if iface.Callback != parent.Callback {
			if iface.Callback {
				return semanticError(pos.Line, pos.Column, "callback interface %s cannot inherit from non-callback interface %s, line %d, column %d", iface.Name, parent.Name, pos.Line, pos.Column)
			}
			return semanticError(pos.Line, pos.Column, "non-callback interface %s cannot inherit from callback interface %s, line %d, column %d", iface.Name, parent.Name, pos.Line, pos.Column)
		}
		iface.Parent = parent
	}

	// Reject inheritance cycles so later ancestor walks terminate.
	for _, d := range v.out {
		iface, ok := d.(*ast.Interface)
		if !ok {
			continue
		}
		slow, fast := iface, iface.Parent
		for fast != nil {
			if fast == slow {
				pos := iface.Pos()
				return semanticError(pos.Line, pos.Column, "cyclic inheritance involving interface %s, line %d, column %d", iface.Name, pos.Line, pos.Column)
			}
			slow = slow.Parent
			fast = fast.Parent
			if fast != nil {
				fast = fast.Parent
			}
		}
	}

	return nil
}
