package lang

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

type ErrorKind int

const (
	ErrorSyntax ErrorKind = iota
	ErrorMalformedProgram
	ErrorNoSingleFix
	ErrorNotFlippable
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorSyntax:
		return "syntax error"
	case ErrorMalformedProgram:
		return "malformed program"
	case ErrorNoSingleFix:
		return "no single fix"
	case ErrorNotFlippable:
		return "not flippable"
	default:
		return "unknown error"
	}
}

// ConsoleError is returned by everything in this package. Syntax errors carry
// a source position, runtime errors carry the offending address.
type ConsoleError struct {
	Kind    ErrorKind
	Message string
	Pos     lexer.Position
	Source  string
	Snippet string
	Help    string
	Address int
}

// Sentinels for errors.Is, matched by kind only.
var (
	ErrSyntax           = &ConsoleError{Kind: ErrorSyntax}
	ErrMalformedProgram = &ConsoleError{Kind: ErrorMalformedProgram}
	ErrNoSingleFix      = &ConsoleError{Kind: ErrorNoSingleFix}
	ErrNotFlippable     = &ConsoleError{Kind: ErrorNotFlippable}
)

func (e *ConsoleError) Error() string {
	return formatError(e)
}

func (e *ConsoleError) Is(target error) bool {
	t, ok := target.(*ConsoleError)
	return ok && t.Kind == e.Kind
}

func formatError(err *ConsoleError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\x1b[1;31m%s\x1b[0m: %s", err.Kind, err.Message)

	lines := strings.Split(err.Source, "\n")
	if err.Pos.Line > 0 && err.Pos.Line <= len(lines) {
		lineNum := err.Pos.Line
		fmt.Fprintf(&b, "\n\x1b[1;34m-->\x1b[0m %s:%d:%d\n", err.Pos.Filename, err.Pos.Line, err.Pos.Column)
		fmt.Fprintf(&b, "%4d | %s\n", lineNum, lines[lineNum-1])

		pointer := strings.Repeat(" ", max(err.Pos.Column-1, 0)) + "\x1b[1;31m^"
		if n := utf8.RuneCountInString(err.Snippet); n > 1 {
			pointer += strings.Repeat("~", n-1)
		}
		fmt.Fprintf(&b, "     | %s\x1b[0m", pointer)
	}

	if err.Help != "" {
		fmt.Fprintf(&b, "\n\x1b[1;32mhelp\x1b[0m: %s", err.Help)
	}

	return b.String()
}

func NewSyntaxError(pos lexer.Position, source, snippet, message, help string) error {
	return &ConsoleError{
		Kind:    ErrorSyntax,
		Message: message,
		Pos:     pos,
		Source:  source,
		Snippet: snippet,
		Help:    help,
	}
}

func newAddressError(kind ErrorKind, addr int, message string) error {
	return &ConsoleError{
		Kind:    kind,
		Message: message,
		Address: addr,
	}
}
