package webidl

import (
	"fmt"
	"strings"
)

// Error is the diagnostic type surfaced by Parse and Finish. Line and
// Column are 1-indexed and point at the offending token; both are zero for
// diagnostics that have no single source location (for example a name
// collision spanning two fragments keeps the location of the second
// declaration).
type Error struct {
	Message string
	Line    int
	Column  int

	// sourceLine is the verbatim line the error points into. When set, the
	// rendered error carries a caret line underneath it.
	sourceLine string
	caret      bool
}

func (e *Error) Error() string {
	if !e.caret {
		return e.Message
	}
	// Rendered as three lines: the description with the position appended,
	// the offending source line, and a caret aligned under the token. The
	// printed column is the count of spaces before the caret.
	col := e.Column - 1
	if col < 0 {
		col = 0
	}
	return fmt.Sprintf("%s, line %d:%d\n%s\n%s^", e.Message, e.Line, col, e.sourceLine, strings.Repeat(" ", col))
}

func syntaxError(t token, lines []string, format string, args ...interface{}) *Error {
	line := ""
	if t.Line-1 >= 0 && t.Line-1 < len(lines) {
		line = lines[t.Line-1]
	}
	return &Error{
		Message:    fmt.Sprintf(format, args...),
		Line:       t.Line,
		Column:     t.Column,
		sourceLine: line,
		caret:      true,
	}
}

func semanticError(line, column int, format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  column,
	}
}
