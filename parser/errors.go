package parser

import "fmt"

// ParseError reports a line that is not a valid declaration.
type ParseError struct {
	File   string
	Line   int
	Column int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("%s:%d:%d: cannot parse %q: %s", e.File, e.Line, e.Column, e.Text, e.Reason)
	}
	return fmt.Sprintf("%s:%d: cannot parse %q: %s", e.File, e.Line, e.Text, e.Reason)
}

// DuplicateError reports a function declared more than once.
type DuplicateError struct {
	Name   string
	First  Position
	Second Position
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: duplicate declaration of %s (first declared at %s)", e.Second, e.Name, e.First)
}
