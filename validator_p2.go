package webidl

import (
	"github.com/webidl-go/webidl/ast"
)

// validatePhase2 resolves every type reference against the namespace and
// then checks the structural constraints on composite types: record
// parameters, union nullability, attribute types, const defaults and
// variadic argument placement.
func validatePhase2(defs []ast.Definition, ns namespace, externals map[string]struct{}) *Error {
	v := &validatorP2{ns: ns, externals: externals}

	for _, d := range defs {
		if err := v.resolveDef(d); err != nil {
			return err
		}
	}
	for _, d := range defs {
		if err := v.checkDef(d); err != nil {
			return err
		}
	}
	return nil
}

type validatorP2 struct {
	ns        namespace
	externals map[string]struct{}
}

func (v *validatorP2) resolveDef(d ast.Definition) *Error {
	switch dd := d.(type) {
	case *ast.Interface:
		for _, a := range dd.Attrs {
			if err := v.resolveArgs(a.Args); err != nil {
				return err
			}
		}
		for _, m := range dd.Members {
			switch mm := m.(type) {
			case *ast.Const:
				if err := v.resolveType(mm.Type); err != nil {
					return err
				}
			case *ast.Attribute:
				if err := v.resolveType(mm.Type); err != nil {
					return err
				}
			case *ast.Operation:
				if mm.ReturnType != nil {
					if err := v.resolveType(mm.ReturnType); err != nil {
						return err
					}
				}
				if err := v.resolveArgs(mm.Args); err != nil {
					return err
				}
			}
		}
	case *ast.Dictionary:
		for _, m := range dd.Members {
			if err := v.resolveType(m.Type); err != nil {
				return err
			}
		}
	case *ast.Callback:
		if err := v.resolveType(dd.ReturnType); err != nil {
			return err
		}
		return v.resolveArgs(dd.Args)
	case *ast.Typedef:
		return v.resolveType(dd.Type)
	}
	return nil
}

func (v *validatorP2) resolveArgs(args []*ast.Argument) *Error {
	for _, a := range args {
		if err := v.resolveType(a.Type); err != nil {
			return err
		}
	}
	return nil
}

func (v *validatorP2) resolveType(t ast.Type) *Error {
	switch tt := t.(type) {
	case *ast.NamedType:
		if d, ok := v.ns[tt.Name]; ok {
			tt.Resolve(d)
			return nil
		}
		if _, ok := v.externals[tt.Name]; ok {
			return nil
		}
		pos := tt.Pos()
		return semanticError(pos.Line, pos.Column, "unknown type %q, line %d, column %d", tt.Name, pos.Line, pos.Column)
	case *ast.SequenceType:
		return v.resolveType(tt.Elem)
	case *ast.RecordType:
		if err := v.resolveType(tt.Key); err != nil {
			return err
		}
		return v.resolveType(tt.Value)
	case *ast.UnionType:
		for _, m := range tt.Members {
			if err := v.resolveType(m); err != nil {
				return err
			}
		}
	case *ast.NullableType:
		return v.resolveType(tt.Type)
	case *ast.PromiseType:
		return v.resolveType(tt.Type)
	}
	return nil
}

func (v *validatorP2) checkDef(d ast.Definition) *Error {
	switch dd := d.(type) {
	case *ast.Interface:
		for _, m := range dd.Members {
			switch mm := m.(type) {
			case *ast.Const:
				if err := v.checkType(mm.Type); err != nil {
					return err
				}
				if mm.Value != nil && mm.Value.IsEmptySequence() {
					pos := mm.Pos()
					return semanticError(pos.Line, pos.Column, "[] is not a valid default value for const %s, line %d, column %d", mm.QualifiedName(), pos.Line, pos.Column)
				}
			case *ast.Attribute:
				if err := v.checkType(mm.Type); err != nil {
					return err
				}
				if containsSequence(mm.Type) {
					pos := mm.Pos()
					return semanticError(pos.Line, pos.Column, "a sequence must not be used as the type of an attribute (%s), line %d, column %d", mm.QualifiedName(), pos.Line, pos.Column)
				}
			case *ast.Operation:
				if mm.ReturnType != nil {
					if err := v.checkType(mm.ReturnType); err != nil {
						return err
					}
				}
				if err := v.checkArgs(mm.Args); err != nil {
					return err
				}
			}
		}
		for _, a := range dd.Attrs {
			if err := v.checkArgs(a.Args); err != nil {
				return err
			}
		}
	case *ast.Dictionary:
		for _, m := range dd.Members {
			if err := v.checkType(m.Type); err != nil {
				return err
			}
		}
	case *ast.Callback:
		if err := v.checkType(dd.ReturnType); err != nil {
			return err
		}
		return v.checkArgs(dd.Args)
	case *ast.Typedef:
		return v.checkType(dd.Type)
	}
	return nil
}

func (v *validatorP2) checkArgs(args []*ast.Argument) *Error {
	for i, a := range args {
		if err := v.checkType(a.Type); err != nil {
			return err
		}
		if !a.Variadic {
			continue
		}
		pos := &a.Position
		if a.Optional {
			return semanticError(pos.Line, pos.Column, "variadic argument %s cannot be marked optional, line %d, column %d", a.Name, pos.Line, pos.Column)
		}
		if i != len(args)-1 {
			return semanticError(pos.Line, pos.Column, "variadic argument %s must be the last argument, line %d, column %d", a.Name, pos.Line, pos.Column)
		}
	}
	return nil
}

func (v *validatorP2) checkType(t ast.Type) *Error {
	switch tt := t.(type) {
	case *ast.SequenceType:
		return v.checkType(tt.Elem)
	case *ast.RecordType:
		pos := tt.Pos()
		if !tt.Key.IsString() {
			return semanticError(pos.Line, pos.Column, "record keys must be string types, line %d, column %d", pos.Line, pos.Column)
		}
		if tt.Value.IsVoid() {
			return semanticError(pos.Line, pos.Column, "void cannot be used as a record value type, line %d, column %d", pos.Line, pos.Column)
		}
		return v.checkType(tt.Value)
	case *ast.UnionType:
		nullable := 0
		for _, m := range tt.Members {
			if m.IsNullable() {
				nullable++
			}
		}
		if nullable > 1 {
			pos := tt.Pos()
			return semanticError(pos.Line, pos.Column, "a union must not have more than one nullable member type, line %d, column %d", pos.Line, pos.Column)
		}
		for _, m := range tt.Members {
			if err := v.checkType(m); err != nil {
				return err
			}
		}
	case *ast.NullableType:
		if tt.Type.IsNullable() {
			pos := tt.Pos()
			return semanticError(pos.Line, pos.Column, "a nullable type must not wrap an already nullable type, line %d, column %d", pos.Line, pos.Column)
		}
		if ms := ast.UnionMembers(tt.Type); ms != nil && unionContainsNullable(ms) {
			pos := tt.Pos()
			return semanticError(pos.Line, pos.Column, "a nullable union must not have a nullable member type, line %d, column %d", pos.Line, pos.Column)
		}
		return v.checkType(tt.Type)
	case *ast.PromiseType:
		return v.checkType(tt.Type)
	}
	return nil
}

// containsSequence reports whether t is a sequence, possibly behind
// nullability, typedefs or arbitrarily nested unions.
func containsSequence(t ast.Type) bool {
	if t.IsSequence() {
		return true
	}
	if t.IsNullable() {
		if inner := t.Inner(); inner != nil && containsSequence(inner) {
			return true
		}
	}
	for _, m := range ast.UnionMembers(t) {
		if containsSequence(m) {
			return true
		}
	}
	return false
}

func unionContainsNullable(members []ast.Type) bool {
	for _, m := range members {
		if m.IsNullable() {
			return true
		}
		if ms := ast.UnionMembers(m); ms != nil && unionContainsNullable(ms) {
			return true
		}
	}
	return false
}
