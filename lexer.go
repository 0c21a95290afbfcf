package webidl

import "strings"

type lexer struct {
	data      []rune
	lines     []string
	len       int
	pos       int
	startPos  int
	startLine int
	startCol  int

	line   int
	column int

	err    *Error
	tokens []token
}

func lexSource(source string) ([]token, []string, *Error) {
	runes := []rune(source)
	s := &lexer{
		data:   runes,
		lines:  strings.Split(source, "\n"),
		len:    len(runes),
		line:   1,
		column: 1,
	}

	s.scan()
	if s.err != nil {
		return nil, s.lines, s.err
	}

	return s.tokens, s.lines, nil
}

func (s *lexer) eof() bool {
	return s.pos >= s.len
}

func (s *lexer) peek() rune {
	if s.eof() {
		return 0
	}
	return s.data[s.pos]
}

func (s *lexer) peek1() rune {
	if s.pos+1 >= s.len {
		return 0
	}
	return s.data[s.pos+1]
}

func (s *lexer) peek2() rune {
	if s.pos+2 >= s.len {
		return 0
	}
	return s.data[s.pos+2]
}

func (s *lexer) mark() {
	s.startPos = s.pos
	s.startLine = s.line
	s.startCol = s.column
}

func (s *lexer) marked() string {
	return string(s.data[s.startPos:s.pos])
}

func (s *lexer) advance() rune {
	v := s.data[s.pos]
	s.pos++
	s.column++
	if v == '\n' {
		s.line++
		s.column = 1
	}
	return v
}

func (s *lexer) errorf(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	t := token{Line: s.startLine, Column: s.startCol}
	s.err = syntaxError(t, s.lines, format, args...)
}

func (s *lexer) pushToken(t tokenType) {
	s.tokens = append(s.tokens, token{
		Type:   t,
		Value:  s.marked(),
		Pos:    s.startPos,
		Line:   s.startLine,
		Column: s.startCol,
	})
}

func (s *lexer) pushSimple(t tokenType) {
	s.mark()
	s.advance()
	s.pushToken(t)
}

func isAlpha(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// isIdent covers identifier continuation runes. WebIDL identifiers may
// embed hyphens (e.g. css values reused as enum-like names).
func isIdent(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '-'
}

var simpleTokens = map[rune]tokenType{
	'=': tokenTypeEqual,
	';': tokenTypeSemi,
	':': tokenTypeColon,
	'(': tokenTypeLeftParen,
	')': tokenTypeRightParen,
	'{': tokenTypeLeftCurly,
	'}': tokenTypeRightCurly,
	'[': tokenTypeLeftBracket,
	']': tokenTypeRightBracket,
	'<': tokenTypeLeftAngled,
	'>': tokenTypeRightAngled,
	',': tokenTypeComma,
	'?': tokenTypeQuestion,
}

func (s *lexer) scan() {
	for !s.eof() && s.err == nil {
		p := s.peek()
		switch p {
		case ' ', '\n', '\t', '\r':
			s.advance()
		case '/':
			s.scanComment()
		case '"':
			s.scanString()
		case '.':
			s.mark()
			if s.peek1() == '.' && s.peek2() == '.' {
				s.advance()
				s.advance()
				s.advance()
				s.pushToken(tokenTypeEllipsis)
			} else {
				s.errorf("unexpected '.'")
			}
		case '-':
			s.scanNumber()
		default:
			if simple, ok := simpleTokens[p]; ok {
				s.pushSimple(simple)
			} else if isDigit(p) {
				s.scanNumber()
			} else if isAlpha(p) {
				s.scanIdentifier()
			} else {
				s.mark()
				s.errorf("unexpected '%c'", p)
			}
		}
	}
	s.mark()
	s.tokens = append(s.tokens, token{Type: tokenTypeEOF, Pos: s.startPos, Line: s.line, Column: s.column})
}

func (s *lexer) scanComment() {
	s.mark()
	s.advance() // consume first slash
	switch s.peek() {
	case '/':
		for !s.eof() && s.peek() != '\n' {
			s.advance()
		}
	case '*':
		s.advance() // consume *
		for {
			if s.eof() {
				s.errorf("unterminated comment")
				return
			}
			if s.peek() == '*' && s.peek1() == '/' {
				s.advance()
				s.advance()
				return
			}
			s.advance()
		}
	default:
		s.errorf("unexpected '/'")
	}
}

func (s *lexer) scanString() {
	s.mark()
	s.advance() // consume opening quote
	var data []rune
	for {
		if s.eof() || s.peek() == '\n' {
			s.errorf("unterminated string literal")
			return
		}
		if s.peek() == '"' {
			s.advance()
			break
		}
		data = append(data, s.advance())
	}
	s.tokens = append(s.tokens, token{
		Type:   tokenTypeString,
		Value:  string(data),
		Pos:    s.startPos,
		Line:   s.startLine,
		Column: s.startCol,
	})
}

func (s *lexer) scanNumber() {
	s.mark()
	if s.peek() == '-' {
		s.advance()
		if !isDigit(s.peek()) {
			s.errorf("unexpected '-'")
			return
		}
	}
	if s.peek() == '0' && (s.peek1() == 'x' || s.peek1() == 'X') {
		s.advance() // consume 0
		s.advance() // consume x
		for isHex(s.peek()) {
			s.advance()
		}
		s.pushToken(tokenTypeInteger)
		return
	}
	for isDigit(s.peek()) {
		s.advance()
	}
	isFloat := false
	if s.peek() == '.' && isDigit(s.peek1()) {
		isFloat = true
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	if s.peek() == 'e' || s.peek() == 'E' {
		isFloat = true
		s.advance()
		if s.peek() == '-' || s.peek() == '+' {
			s.advance()
		}
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	if isFloat {
		s.pushToken(tokenTypeFloat)
	} else {
		s.pushToken(tokenTypeInteger)
	}
}

func (s *lexer) scanIdentifier() {
	s.mark()
	for isIdent(s.peek()) {
		s.advance()
	}
	s.pushToken(tokenTypeIdentifier)
}
