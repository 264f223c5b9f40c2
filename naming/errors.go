package naming

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/icbindgen/parser"
)

// AmbiguousNameError reports a name produced by more than one rule. It is
// a defect of the axes tables, not of the headers.
type AmbiguousNameError struct {
	Name    string
	Matches []string
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("ambiguous name %s: matched by %s", e.Name, strings.Join(e.Matches, " and "))
}

// ShapeError reports a declaration whose parameters do not fit the wrapper
// its name calls for.
type ShapeError struct {
	Name   string
	Pos    parser.Position
	Tuple  Tuple
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", e.Pos, e.Name, e.Tuple, e.Reason)
}

// UnmatchedError lists every native name no rule accounted for.
type UnmatchedError struct {
	Names []string
}

func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("%d native function(s) not identified: %s", len(e.Names), strings.Join(e.Names, ", "))
}
