// Package webidl implements a WebIDL front end: a parser that turns IDL
// fragments into a validated definition graph. Fragments are accumulated
// across Parse calls so forward declarations in one file can be completed
// in another; Finish runs cross-definition validation over the whole set
// and returns the definitions in source order.
package webidl

import (
	"fmt"

	"github.com/webidl-go/webidl/ast"
)

// Parser accumulates WebIDL definitions across one or more Parse calls.
// A Parser owns its namespace exclusively; there is no shared state
// between instances and no internal locking. Once Finish has run the
// accumulation is terminal and the parser must be Reset before reuse.
type Parser struct {
	defs      []ast.Definition
	externals map[string]struct{}
	finished  bool
}

func New() *Parser {
	return &Parser{
		externals: map[string]struct{}{},
	}
}

// RegisterExternal declares type names that resolve without a definition
// in any parsed fragment, e.g. interfaces supplied by the host embedding.
func (p *Parser) RegisterExternal(names ...string) {
	for _, n := range names {
		p.externals[n] = struct{}{}
	}
}

// Parse lexes and parses one fragment of WebIDL source. Syntax errors are
// returned immediately as *Error; on failure the accumulated definition
// set is left untouched. Cross-definition validation is deferred to
// Finish.
func (p *Parser) Parse(source string) error {
	if p.finished {
		return fmt.Errorf("webidl: Parse called after Finish; Reset the parser first")
	}
	tokens, lines, lerr := lexSource(source)
	if lerr != nil {
		return lerr
	}
	defs, perr := parseFragment(tokens, lines)
	if perr != nil {
		return perr
	}
	p.defs = append(p.defs, defs...)
	return nil
}

// Finish validates the accumulated definition set and returns it in
// source order, with forward declarations reconciled, partial interfaces
// merged and duplicate identical enums collapsed. The first violation
// found aborts validation.
func (p *Parser) Finish() ([]ast.Definition, error) {
	if p.finished {
		return nil, fmt.Errorf("webidl: Finish called twice; Reset the parser first")
	}
	p.finished = true
	defs, verr := validate(p.defs, p.externals)
	if verr != nil {
		return nil, verr
	}
	return defs, nil
}

// Reset discards all accumulated state and returns a fresh parser.
// Externally registered type names are not carried over.
func (p *Parser) Reset() *Parser {
	return New()
}
