package typemap

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/icbindgen/parser"
)

// UnknownTypeError reports a C type with no registered Rust mapping.
type UnknownTypeError struct {
	Type     string
	Function string
	Pos      parser.Position
}

func (e *UnknownTypeError) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("unknown type %q", e.Type)
	}
	return fmt.Sprintf("%s: %s: unknown type %q", e.Pos, e.Function, e.Type)
}

// ReviewError lists pointer parameters whose role had to be guessed.
type ReviewError struct {
	Params []string // "function(param) at file:line"
}

func (e *ReviewError) Error() string {
	return fmt.Sprintf("%d pointer parameter(s) need review, name them after the in/out convention: %s",
		len(e.Params), strings.Join(e.Params, ", "))
}

// CheckReviews returns a *ReviewError when any parameter was flagged.
func CheckReviews(sigs []Signature) error {
	var flagged []string
	for _, s := range sigs {
		for _, name := range s.Reviews() {
			flagged = append(flagged, fmt.Sprintf("%s(%s) at %s", s.Name, name, s.Pos))
		}
	}

	if len(flagged) == 0 {
		return nil
	}
	return &ReviewError{Params: flagged}
}
