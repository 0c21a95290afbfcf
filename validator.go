package webidl

import (
	"github.com/webidl-go/webidl/ast"
)

/*
	Validation happens in three phases over the accumulated definitions.
	The first builds the global namespace: it reconciles forward
	declarations and partial interfaces, collapses duplicate identical
	enums, reports name collisions, and links interface inheritance. The
	second resolves every type reference against that namespace and checks
	structural type constraints (record parameters, union nullability,
	attribute types, defaults, variadic placement). The third checks
	per-interface member rules (identifier collisions, special method
	uniqueness, overload sets, [LegacyUnenumerableNamedProperties]) and
	detects recursive dictionaries.

	The first violation found aborts; callers are expected to Reset the
	parser before reusing it.
*/

type namespace map[string]ast.Definition

func validate(defs []ast.Definition, externals map[string]struct{}) ([]ast.Definition, *Error) {
	out, ns, err := validatePhase1(defs)
	if err != nil {
		return nil, err
	}
	if err := validatePhase2(out, ns, externals); err != nil {
		return nil, err
	}
	if err := validatePhase3(out); err != nil {
		return nil, err
	}
	return out, nil
}
