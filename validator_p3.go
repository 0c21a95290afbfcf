package webidl

import (
	"github.com/webidl-go/webidl/ast"
)

const legacyUnenumerable = "LegacyUnenumerableNamedProperties"

// validatePhase3 checks per-interface member rules and dictionary
// recursion. It runs after phase 2, so inheritance links and type
// references are already resolved.
func validatePhase3(defs []ast.Definition) *Error {
	v := &validatorP3{}

	for _, d := range defs {
		switch dd := d.(type) {
		case *ast.Interface:
			if err := v.validateInterface(dd); err != nil {
				return err
			}
		case *ast.Dictionary:
			if err := v.validateDictionary(dd); err != nil {
				return err
			}
		}
	}
	return nil
}

type validatorP3 struct{}

func (v *validatorP3) validateInterface(iface *ast.Interface) *Error {
	if err := v.detectMemberClashes(iface); err != nil {
		return err
	}
	if err := v.detectDuplicatedSpecials(iface); err != nil {
		return err
	}
	if err := v.validateOverloads(iface); err != nil {
		return err
	}
	return v.validateLegacyUnenumerable(iface)
}

// detectMemberClashes rejects two members sharing an identifier unless
// both are operations, which form an overload set instead.
func (v *validatorP3) detectMemberClashes(iface *ast.Interface) *Error {
	members := map[string]ast.Member{}
	for _, m := range iface.Members {
		name := m.Ident()
		if name == "" {
			continue
		}
		ex, ok := members[name]
		if !ok {
			members[name] = m
			continue
		}
		_, mIsOp := m.(*ast.Operation)
		_, exIsOp := ex.(*ast.Operation)
		if mIsOp && exIsOp {
			continue
		}
		pos := m.Pos()
		return semanticError(pos.Line, pos.Column, "Name collision between %s %s and %s %s, line %d, column %d", ex.Kind(), ex.QualifiedName(), m.Kind(), m.QualifiedName(), pos.Line, pos.Column)
	}
	return nil
}

// detectDuplicatedSpecials enforces at most one getter, setter, deleter,
// creator and stringifier form per interface, regardless of how the
// keywords are combined on declarations.
func (v *validatorP3) detectDuplicatedSpecials(iface *ast.Interface) *Error {
	seen := makeSet[ast.Special]()
	for _, m := range iface.Members {
		op, ok := m.(*ast.Operation)
		if !ok {
			continue
		}
		for _, s := range op.Specials {
			if seen.has(s) {
				pos := op.Pos()
				return semanticError(pos.Line, pos.Column, "duplicate %s declared on interface %s, line %d, column %d", s, iface.Name, pos.Line, pos.Column)
			}
			if s != ast.SpecialLegacyCaller {
				seen.add(s)
			}
		}
	}
	return nil
}

// validateOverloads requires a consistent return shape across an overload
// set: either every overload returns a Promise or none does. A
// legacycaller may never return a Promise.
func (v *validatorP3) validateOverloads(iface *ast.Interface) *Error {
	promise := map[string]bool{}
	for _, m := range iface.Members {
		op, ok := m.(*ast.Operation)
		if !ok {
			continue
		}
		isPromise := op.ReturnType != nil && op.ReturnType.IsPromise()
		if isPromise && op.HasSpecial(ast.SpecialLegacyCaller) {
			pos := op.Pos()
			return semanticError(pos.Line, pos.Column, "a legacycaller operation must not return a Promise, line %d, column %d", pos.Line, pos.Column)
		}
		if op.Name == "" {
			continue
		}
		ex, seen := promise[op.Name]
		if !seen {
			promise[op.Name] = isPromise
			continue
		}
		if ex != isPromise {
			pos := op.Pos()
			return semanticError(pos.Line, pos.Column, "overloads of %s must either all return a Promise or none of them, line %d, column %d", op.QualifiedName(), pos.Line, pos.Column)
		}
	}
	return nil
}

func (v *validatorP3) validateLegacyUnenumerable(iface *ast.Interface) *Error {
	attr := iface.Attrs.ByName(legacyUnenumerable)
	if attr == nil {
		return nil
	}
	pos := &attr.Position
	if attr.HasValue || attr.HasArgs {
		return semanticError(pos.Line, pos.Column, "[%s] must take no arguments, line %d, column %d", legacyUnenumerable, pos.Line, pos.Column)
	}
	for p := iface.Parent; p != nil; p = p.Parent {
		if p.Attrs.ByName(legacyUnenumerable) != nil {
			return semanticError(pos.Line, pos.Column, "[%s] is already declared on ancestor interface %s, line %d, column %d", legacyUnenumerable, p.Name, pos.Line, pos.Column)
		}
	}
	for p := iface; p != nil; p = p.Parent {
		if hasNamedGetter(p) {
			return nil
		}
	}
	return semanticError(pos.Line, pos.Column, "[%s] requires a named property getter on the interface or an ancestor, line %d, column %d", legacyUnenumerable, pos.Line, pos.Column)
}

func hasNamedGetter(iface *ast.Interface) bool {
	for _, m := range iface.Members {
		op, ok := m.(*ast.Operation)
		if !ok || !op.HasSpecial(ast.SpecialGetter) {
			continue
		}
		if len(op.Args) >= 1 && op.Args[0].Type != nil && op.Args[0].Type.IsString() {
			return true
		}
	}
	return false
}

// validateDictionary walks member type chains and rejects any path that
// leads back to the dictionary itself.
func (v *validatorP3) validateDictionary(dict *ast.Dictionary) *Error {
	visited := makeSet[*ast.Dictionary]()
	if v.reachesDictionary(dict, dict, visited) {
		pos := dict.Pos()
		return semanticError(pos.Line, pos.Column, "dictionary %s cannot recursively contain itself, line %d, column %d", dict.Name, pos.Line, pos.Column)
	}
	return nil
}

func (v *validatorP3) reachesDictionary(target, current *ast.Dictionary, visited *set[*ast.Dictionary]) bool {
	if visited.has(current) {
		return false
	}
	visited.add(current)
	for _, m := range current.Members {
		if v.typeReaches(target, m.Type, visited) {
			return true
		}
	}
	return false
}

func (v *validatorP3) typeReaches(target *ast.Dictionary, t ast.Type, visited *set[*ast.Dictionary]) bool {
	switch tt := t.(type) {
	case *ast.NamedType:
		switch def := tt.Def.(type) {
		case *ast.Dictionary:
			if def == target {
				return true
			}
			return v.reachesDictionary(target, def, visited)
		case *ast.Typedef:
			return v.typeReaches(target, def.Type, visited)
		}
	case *ast.SequenceType:
		return v.typeReaches(target, tt.Elem, visited)
	case *ast.RecordType:
		return v.typeReaches(target, tt.Value, visited)
	case *ast.NullableType:
		return v.typeReaches(target, tt.Type, visited)
	case *ast.UnionType:
		for _, m := range tt.Members {
			if v.typeReaches(target, m, visited) {
				return true
			}
		}
	}
	return false
}
