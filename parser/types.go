package parser

import (
	"fmt"
	"strings"
)

// MaxPointer is the deepest indirection a declaration may use.
const MaxPointer = 2

// CType is a C type as spelled in a declaration, qualifiers removed.
type CType struct {
	Sign    string // "", "signed" or "unsigned"
	Name    string // base type keyword, empty for a bare sign ("unsigned *in")
	Pointer int
}

// Base returns the spelling of the type without pointer stars.
func (ct CType) Base() string {
	switch {
	case ct.Sign == "":
		return ct.Name
	case ct.Name == "":
		return ct.Sign
	default:
		return ct.Sign + " " + ct.Name
	}
}

// IsPointer reports whether the type has at least one level of indirection.
func (ct CType) IsPointer() bool {
	return ct.Pointer > 0
}

// String returns the canonical spelling, e.g. "unsigned char *".
func (ct CType) String() string {
	if ct.Pointer == 0 {
		return ct.Base()
	}
	return ct.Base() + " " + strings.Repeat("*", ct.Pointer)
}

type FunctionParam struct {
	Name string
	Type CType
}

func (p FunctionParam) String() string {
	if p.Type.Pointer > 0 {
		return p.Type.String() + p.Name
	}
	return p.Type.String() + " " + p.Name
}

// Position locates a declaration in its source.
type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

type Function struct {
	Name       string
	ReturnType CType
	Params     []FunctionParam
	Pos        Position
}

// String renders the canonical one-line declaration. Parsing the result
// yields the same Function.
func (fn Function) String() string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.String()
	}

	ret := fn.ReturnType.String()
	if fn.ReturnType.Pointer == 0 {
		ret += " "
	}

	return fmt.Sprintf("%s%s(%s);", ret, fn.Name, strings.Join(params, ", "))
}

// Header holds the declarations of one source file or text block.
type Header struct {
	File      string
	Functions []Function
}
