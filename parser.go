package webidl

import (
	"github.com/webidl-go/webidl/ast"
)

// primitiveNames are the single-token built-in types. Multi-word integer
// spellings ("unsigned long long") and the float variants prefixed with
// "unrestricted" are assembled by parseType.
var primitiveNames = map[string]struct{}{
	"boolean":    {},
	"byte":       {},
	"octet":      {},
	"short":      {},
	"long":       {},
	"float":      {},
	"double":     {},
	"DOMString":  {},
	"ByteString": {},
	"USVString":  {},
	"any":        {},
	"object":     {},
	"void":       {},
	"undefined":  {},
}

var specialKeywords = map[string]ast.Special{
	"getter":       ast.SpecialGetter,
	"setter":       ast.SpecialSetter,
	"deleter":      ast.SpecialDeleter,
	"creator":      ast.SpecialCreator,
	"legacycaller": ast.SpecialLegacyCaller,
	"stringifier":  ast.SpecialStringifier,
}

func parseFragment(tokens []token, lines []string) ([]ast.Definition, *Error) {
	p := parser{
		tokens: tokens,
		lines:  lines,
		length: len(tokens),
	}
	p.parse()
	if p.err != nil {
		return nil, p.err
	}
	return p.defs, nil
}

type parser struct {
	tokens []token
	lines  []string
	pos    int
	length int
	defs   []ast.Definition
	err    *Error
}

func (p *parser) peek() token {
	if p.pos >= p.length {
		return p.tokens[p.length-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) peek1() token {
	if p.pos+1 >= p.length {
		return p.tokens[p.length-1]
	}
	return p.tokens[p.pos+1]
}

func (p *parser) advance() token {
	t := p.peek()
	if p.pos < p.length {
		p.pos++
	}
	return t
}

func (p *parser) eof() bool {
	return p.pos >= p.length || p.peek().Type == tokenTypeEOF
}

func (p *parser) failed() bool {
	return p.err != nil
}

func (p *parser) errorAt(t token, format string, args ...interface{}) {
	if p.err == nil {
		p.err = syntaxError(t, p.lines, format, args...)
	}
}

func (p *parser) tokenPos(t token) ast.Position {
	return ast.Position{Line: t.Line, Column: t.Column}
}

func (p *parser) expect(expected tokenType) *token {
	if p.failed() {
		return nil
	}
	pk := p.peek()
	if pk.Type != expected {
		p.errorAt(pk, "invalid syntax: expected %s, got %s", expected, pk.Type)
		return nil
	}
	p.pos++
	return &pk
}

func (p *parser) expectKeyword(kw string) *token {
	if p.failed() {
		return nil
	}
	pk := p.peek()
	if pk.Type != tokenTypeIdentifier || pk.Value != kw {
		p.errorAt(pk, "invalid syntax: expected %q", kw)
		return nil
	}
	p.pos++
	return &pk
}

func (p *parser) peekKeyword(kw string) bool {
	pk := p.peek()
	return pk.Type == tokenTypeIdentifier && pk.Value == kw
}

func (p *parser) parse() {
	for !p.eof() && !p.failed() {
		p.parseDefinition()
	}
}

func (p *parser) parseDefinition() {
	attrs := p.parseExtendedAttributes()
	if p.failed() {
		return
	}
	pk := p.peek()
	if pk.Type != tokenTypeIdentifier {
		p.errorAt(pk, "invalid syntax: expected a definition")
		return
	}
	switch pk.Value {
	case "interface":
		p.parseInterface(attrs, false, false)
	case "callback":
		if p.peek1().Type == tokenTypeIdentifier && p.peek1().Value == "interface" {
			p.advance() // consume callback
			p.parseInterface(attrs, true, false)
		} else {
			p.parseCallback()
		}
	case "partial":
		p.advance() // consume partial
		if !p.peekKeyword("interface") {
			p.errorAt(p.peek(), "invalid syntax: expected \"interface\" after \"partial\"")
			return
		}
		p.parseInterface(attrs, false, true)
	case "dictionary":
		p.parseDictionary(attrs)
	case "enum":
		p.parseEnum()
	case "typedef":
		p.parseTypedef()
	default:
		p.errorAt(pk, "invalid syntax: unexpected %q", pk.Value)
	}
}

func (p *parser) parseInterface(attrs ast.ExtendedAttributeSet, callback, partial bool) {
	tk := p.advance() // consume "interface"
	name := p.expect(tokenTypeIdentifier)
	if name == nil {
		return
	}

	iface := &ast.Interface{
		Position: p.tokenPos(tk),
		Name:     name.Value,
		Callback: callback,
		Partial:  partial,
		Attrs:    attrs,
	}

	if p.peek().Type == tokenTypeSemi {
		p.advance()
		if partial {
			p.errorAt(*name, "invalid syntax: partial interface %s has no body", name.Value)
			return
		}
		iface.Forward = true
		p.defs = append(p.defs, iface)
		return
	}

	if p.peek().Type == tokenTypeColon {
		p.advance()
		parent := p.expect(tokenTypeIdentifier)
		if parent == nil {
			return
		}
		iface.InheritsOf = parent.Value
	}

	if p.expect(tokenTypeLeftCurly) == nil {
		return
	}

	for !p.eof() && !p.failed() && p.peek().Type != tokenTypeRightCurly {
		m := p.parseMember()
		if p.failed() {
			return
		}
		iface.AppendMember(m)
	}

	if p.expect(tokenTypeRightCurly) == nil {
		return
	}
	if p.expect(tokenTypeSemi) == nil {
		return
	}
	p.defs = append(p.defs, iface)
}

func (p *parser) parseMember() ast.Member {
	pk := p.peek()
	if pk.Type != tokenTypeIdentifier {
		p.errorAt(pk, "invalid syntax: expected an interface member")
		return nil
	}
	if pk.Value == "const" {
		return p.parseConst()
	}

	static := false
	if p.peekKeyword("static") {
		static = true
		p.advance()
	}

	readonly := false
	if p.peekKeyword("readonly") {
		readonly = true
		p.advance()
	}

	if p.peekKeyword("attribute") {
		return p.parseAttribute(readonly, static)
	}
	if readonly {
		p.errorAt(p.peek(), "invalid syntax: expected \"attribute\" after \"readonly\"")
		return nil
	}

	return p.parseOperation(static)
}

func (p *parser) parseConst() ast.Member {
	tk := p.advance() // consume "const"
	typ := p.parseType()
	if p.failed() {
		return nil
	}
	name := p.expect(tokenTypeIdentifier)
	if name == nil {
		return nil
	}
	if p.expect(tokenTypeEqual) == nil {
		return nil
	}
	value := p.parseDefaultValue()
	if p.failed() {
		return nil
	}
	if p.expect(tokenTypeSemi) == nil {
		return nil
	}
	return &ast.Const{
		Position: p.tokenPos(tk),
		Name:     name.Value,
		Type:     typ,
		Value:    value,
	}
}

func (p *parser) parseAttribute(readonly, static bool) ast.Member {
	tk := p.advance() // consume "attribute"
	typ := p.parseType()
	if p.failed() {
		return nil
	}
	name := p.expect(tokenTypeIdentifier)
	if name == nil {
		return nil
	}
	if p.expect(tokenTypeSemi) == nil {
		return nil
	}
	return &ast.Attribute{
		Position: p.tokenPos(tk),
		Name:     name.Value,
		Type:     typ,
		ReadOnly: readonly,
		Static:   static,
	}
}

func (p *parser) parseOperation(static bool) ast.Member {
	tk := p.peek()
	var specials []ast.Special
	for p.peek().Type == tokenTypeIdentifier {
		s, ok := specialKeywords[p.peek().Value]
		if !ok {
			break
		}
		specials = append(specials, s)
		p.advance()
	}

	// Bare "stringifier;" has neither a type nor a body.
	if p.peek().Type == tokenTypeSemi && len(specials) == 1 && specials[0] == ast.SpecialStringifier {
		p.advance()
		return &ast.Operation{
			Position: p.tokenPos(tk),
			Specials: specials,
			Static:   static,
		}
	}

	ret := p.parseType()
	if p.failed() {
		return nil
	}

	name := ""
	if p.peek().Type == tokenTypeIdentifier {
		name = p.advance().Value
	} else if len(specials) == 0 {
		p.errorAt(p.peek(), "invalid syntax: expected an operation name")
		return nil
	}

	if p.expect(tokenTypeLeftParen) == nil {
		return nil
	}
	var args []*ast.Argument
	if p.peek().Type != tokenTypeRightParen {
		args = p.parseArgumentList()
		if p.failed() {
			return nil
		}
	}
	if p.expect(tokenTypeRightParen) == nil {
		return nil
	}
	if p.expect(tokenTypeSemi) == nil {
		return nil
	}

	return &ast.Operation{
		Position:   p.tokenPos(tk),
		Name:       name,
		ReturnType: ret,
		Args:       args,
		Specials:   specials,
		Static:     static,
	}
}

func (p *parser) parseArgumentList() []*ast.Argument {
	args := []*ast.Argument{p.parseArgument()}
	for !p.failed() && p.peek().Type == tokenTypeComma {
		p.advance() // consume comma
		args = append(args, p.parseArgument())
	}
	if p.failed() {
		return nil
	}
	return args
}

func (p *parser) parseArgument() *ast.Argument {
	tk := p.peek()
	arg := &ast.Argument{Position: p.tokenPos(tk)}
	if p.peekKeyword("optional") {
		arg.Optional = true
		p.advance()
	}
	arg.Type = p.parseType()
	if p.failed() {
		return nil
	}
	if p.peek().Type == tokenTypeEllipsis {
		arg.Variadic = true
		p.advance()
	}
	name := p.expect(tokenTypeIdentifier)
	if name == nil {
		return nil
	}
	arg.Name = name.Value
	if p.peek().Type == tokenTypeEqual {
		p.advance()
		arg.Default = p.parseDefaultValue()
		if p.failed() {
			return nil
		}
	}
	return arg
}

func (p *parser) parseDefaultValue() *ast.Default {
	pk := p.peek()
	switch pk.Type {
	case tokenTypeInteger:
		p.advance()
		return &ast.Default{Position: p.tokenPos(pk), Kind: ast.DefaultInteger, Literal: pk.Value}
	case tokenTypeFloat:
		p.advance()
		return &ast.Default{Position: p.tokenPos(pk), Kind: ast.DefaultFloat, Literal: pk.Value}
	case tokenTypeString:
		p.advance()
		return &ast.Default{Position: p.tokenPos(pk), Kind: ast.DefaultString, Literal: pk.Value}
	case tokenTypeLeftBracket:
		p.advance()
		if p.expect(tokenTypeRightBracket) == nil {
			return nil
		}
		return &ast.Default{Position: p.tokenPos(pk), Kind: ast.DefaultEmptySequence}
	case tokenTypeIdentifier:
		switch pk.Value {
		case "true", "false":
			p.advance()
			return &ast.Default{Position: p.tokenPos(pk), Kind: ast.DefaultBoolean, Literal: pk.Value}
		case "null":
			p.advance()
			return &ast.Default{Position: p.tokenPos(pk), Kind: ast.DefaultNull, Literal: pk.Value}
		}
	}
	p.errorAt(pk, "invalid syntax: expected a default value")
	return nil
}

func (p *parser) parseDictionary(attrs ast.ExtendedAttributeSet) {
	tk := p.advance() // consume "dictionary"
	name := p.expect(tokenTypeIdentifier)
	if name == nil {
		return
	}
	dict := &ast.Dictionary{
		Position: p.tokenPos(tk),
		Name:     name.Value,
		Attrs:    attrs,
	}
	if p.expect(tokenTypeLeftCurly) == nil {
		return
	}
	for !p.eof() && !p.failed() && p.peek().Type != tokenTypeRightCurly {
		m := p.parseDictionaryMember()
		if p.failed() {
			return
		}
		dict.AppendMember(m)
	}
	if p.expect(tokenTypeRightCurly) == nil {
		return
	}
	if p.expect(tokenTypeSemi) == nil {
		return
	}
	p.defs = append(p.defs, dict)
}

func (p *parser) parseDictionaryMember() *ast.DictionaryMember {
	tk := p.peek()
	m := &ast.DictionaryMember{Position: p.tokenPos(tk)}
	if p.peekKeyword("required") {
		m.Required = true
		p.advance()
	}
	m.Type = p.parseType()
	if p.failed() {
		return nil
	}
	name := p.expect(tokenTypeIdentifier)
	if name == nil {
		return nil
	}
	m.Name = name.Value
	if p.peek().Type == tokenTypeEqual {
		p.advance()
		m.Default = p.parseDefaultValue()
		if p.failed() {
			return nil
		}
	}
	if p.expect(tokenTypeSemi) == nil {
		return nil
	}
	return m
}

func (p *parser) parseEnum() {
	tk := p.advance() // consume "enum"
	name := p.expect(tokenTypeIdentifier)
	if name == nil {
		return
	}
	en := &ast.Enum{
		Position: p.tokenPos(tk),
		Name:     name.Value,
	}
	if p.expect(tokenTypeLeftCurly) == nil {
		return
	}
	for !p.eof() && !p.failed() && p.peek().Type != tokenTypeRightCurly {
		v := p.expect(tokenTypeString)
		if v == nil {
			return
		}
		en.Values = append(en.Values, v.Value)
		if p.peek().Type == tokenTypeComma {
			p.advance()
			continue
		}
		break
	}
	if p.expect(tokenTypeRightCurly) == nil {
		return
	}
	if p.expect(tokenTypeSemi) == nil {
		return
	}
	p.defs = append(p.defs, en)
}

func (p *parser) parseCallback() {
	tk := p.advance() // consume "callback"
	name := p.expect(tokenTypeIdentifier)
	if name == nil {
		return
	}
	if p.expect(tokenTypeEqual) == nil {
		return
	}
	ret := p.parseType()
	if p.failed() {
		return
	}
	if p.expect(tokenTypeLeftParen) == nil {
		return
	}
	var args []*ast.Argument
	if p.peek().Type != tokenTypeRightParen {
		args = p.parseArgumentList()
		if p.failed() {
			return
		}
	}
	if p.expect(tokenTypeRightParen) == nil {
		return
	}
	if p.expect(tokenTypeSemi) == nil {
		return
	}
	p.defs = append(p.defs, &ast.Callback{
		Position:   p.tokenPos(tk),
		Name:       name.Value,
		ReturnType: ret,
		Args:       args,
	})
}

func (p *parser) parseTypedef() {
	tk := p.advance() // consume "typedef"
	typ := p.parseType()
	if p.failed() {
		return
	}
	name := p.expect(tokenTypeIdentifier)
	if name == nil {
		return
	}
	if p.expect(tokenTypeSemi) == nil {
		return
	}
	p.defs = append(p.defs, &ast.Typedef{
		Position: p.tokenPos(tk),
		Name:     name.Value,
		Type:     typ,
	})
}

func (p *parser) parseExtendedAttributes() ast.ExtendedAttributeSet {
	if p.peek().Type != tokenTypeLeftBracket {
		return nil
	}
	p.advance() // consume [
	var attrs ast.ExtendedAttributeSet
	for {
		name := p.expect(tokenTypeIdentifier)
		if name == nil {
			return nil
		}
		a := &ast.ExtendedAttribute{
			Position: p.tokenPos(*name),
			Name:     name.Value,
		}
		if p.peek().Type == tokenTypeEqual {
			p.advance()
			pk := p.peek()
			if pk.Type != tokenTypeIdentifier && pk.Type != tokenTypeString && pk.Type != tokenTypeInteger {
				p.errorAt(pk, "invalid syntax: expected a value for [%s]", a.Name)
				return nil
			}
			p.advance()
			a.HasValue = true
			a.Value = pk.Value
		}
		if p.peek().Type == tokenTypeLeftParen {
			p.advance()
			a.HasArgs = true
			if p.peek().Type != tokenTypeRightParen {
				a.Args = p.parseArgumentList()
				if p.failed() {
					return nil
				}
			}
			if p.expect(tokenTypeRightParen) == nil {
				return nil
			}
		}
		attrs = append(attrs, a)
		if p.peek().Type == tokenTypeComma {
			p.advance()
			continue
		}
		break
	}
	if p.expect(tokenTypeRightBracket) == nil {
		return nil
	}
	return attrs
}

func (p *parser) parseType() ast.Type {
	pk := p.peek()
	var t ast.Type
	switch {
	case pk.Type == tokenTypeLeftParen:
		t = p.parseUnionType()
	case pk.Type == tokenTypeIdentifier:
		t = p.parseSingleType()
	default:
		p.errorAt(pk, "invalid syntax: expected a type")
		return nil
	}
	if p.failed() {
		return nil
	}
	if p.peek().Type == tokenTypeQuestion {
		q := p.advance()
		t = ast.NewNullableType(p.tokenPos(q), t)
		if p.peek().Type == tokenTypeQuestion {
			p.errorAt(p.peek(), "invalid syntax: type is already nullable")
			return nil
		}
	}
	return t
}

func (p *parser) parseUnionType() ast.Type {
	tk := p.advance() // consume (
	members := []ast.Type{p.parseType()}
	if p.failed() {
		return nil
	}
	for p.peekKeyword("or") {
		p.advance() // consume "or"
		m := p.parseType()
		if p.failed() {
			return nil
		}
		members = append(members, m)
	}
	if len(members) < 2 {
		p.errorAt(p.peek(), "invalid syntax: a union needs at least two member types")
		return nil
	}
	if p.expect(tokenTypeRightParen) == nil {
		return nil
	}
	return ast.NewUnionType(p.tokenPos(tk), members)
}

func (p *parser) parseSingleType() ast.Type {
	tk := p.advance()
	pos := p.tokenPos(tk)
	switch tk.Value {
	case "sequence":
		if p.expect(tokenTypeLeftAngled) == nil {
			return nil
		}
		elem := p.parseType()
		if p.failed() {
			return nil
		}
		if p.expect(tokenTypeRightAngled) == nil {
			return nil
		}
		return ast.NewSequenceType(pos, elem)
	case "record":
		if p.expect(tokenTypeLeftAngled) == nil {
			return nil
		}
		key := p.parseType()
		if p.failed() {
			return nil
		}
		if p.expect(tokenTypeComma) == nil {
			return nil
		}
		value := p.parseType()
		if p.failed() {
			return nil
		}
		if p.expect(tokenTypeRightAngled) == nil {
			return nil
		}
		return ast.NewRecordType(pos, key, value)
	case "MozMap":
		// Legacy spelling: a record with an implicit DOMString key.
		if p.expect(tokenTypeLeftAngled) == nil {
			return nil
		}
		value := p.parseType()
		if p.failed() {
			return nil
		}
		if p.expect(tokenTypeRightAngled) == nil {
			return nil
		}
		return ast.NewRecordType(pos, ast.NewPrimitiveType(pos, "DOMString"), value)
	case "Promise":
		if p.expect(tokenTypeLeftAngled) == nil {
			return nil
		}
		inner := p.parseType()
		if p.failed() {
			return nil
		}
		if p.expect(tokenTypeRightAngled) == nil {
			return nil
		}
		return ast.NewPromiseType(pos, inner)
	case "unsigned":
		base := p.expect(tokenTypeIdentifier)
		if base == nil {
			return nil
		}
		switch base.Value {
		case "short":
			return ast.NewPrimitiveType(pos, "unsigned short")
		case "long":
			if p.peekKeyword("long") {
				p.advance()
				return ast.NewPrimitiveType(pos, "unsigned long long")
			}
			return ast.NewPrimitiveType(pos, "unsigned long")
		default:
			p.errorAt(*base, "invalid syntax: unexpected %q after \"unsigned\"", base.Value)
			return nil
		}
	case "unrestricted":
		base := p.expect(tokenTypeIdentifier)
		if base == nil {
			return nil
		}
		if base.Value != "float" && base.Value != "double" {
			p.errorAt(*base, "invalid syntax: unexpected %q after \"unrestricted\"", base.Value)
			return nil
		}
		return ast.NewPrimitiveType(pos, "unrestricted "+base.Value)
	case "long":
		if p.peekKeyword("long") {
			p.advance()
			return ast.NewPrimitiveType(pos, "long long")
		}
		return ast.NewPrimitiveType(pos, "long")
	default:
		if _, ok := primitiveNames[tk.Value]; ok {
			return ast.NewPrimitiveType(pos, tk.Value)
		}
		return ast.NewNamedType(pos, tk.Value)
	}
}
