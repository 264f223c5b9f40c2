// Package typemap maps C declaration types onto Rust FFI types.
//
// The mapping is a closed table: a C spelling either has an entry or the
// declaration is rejected. Mutability is not part of C declaration syntax in
// the native headers, so it is inferred from parameter names (see
// Conventions). That inference is a naming convention, not a C guarantee.
package typemap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ardanlabs/icbindgen/parser"
)

// Kind is the scalar base of a native type.
type Kind int

const (
	Invalid Kind = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	Usize
	Char
	F32
	F64
)

var rustNames = map[Kind]string{
	I8:    "i8",
	I16:   "i16",
	I32:   "i32",
	I64:   "i64",
	U8:    "u8",
	U16:   "u16",
	U32:   "u32",
	U64:   "u64",
	Usize: "usize",
	Char:  "i8",
	F32:   "f32",
	F64:   "f64",
}

// cTypes is the only source of truth for C spellings. There is
// no entry for long: its width depends on the platform.
var cTypes = map[string]Kind{
	"char":           Char,
	"signed char":    I8,
	"unsigned char":  U8,
	"short":          I16,
	"signed short":   I16,
	"unsigned short": U16,
	"int":            I32,
	"signed int":     I32,
	"signed":         I32,
	"unsigned int":   U32,
	"unsigned":       U32,
	"size_t":         Usize,
	"uint8_t":        U8,
	"uint16_t":       U16,
	"uint32_t":       U32,
	"uint64_t":       U64,
	"float":          F32,
	"double":         F64,
}

// Rust returns the Rust spelling of the kind.
func (k Kind) Rust() string {
	if s, ok := rustNames[k]; ok {
		return s
	}
	return "<invalid>"
}

func (k Kind) String() string {
	return k.Rust()
}

// IsInteger reports whether the kind is an integer scalar.
func (k Kind) IsInteger() bool {
	switch k {
	case I8, I16, I32, I64, U8, U16, U32, U64, Usize:
		return true
	}
	return false
}

// Unsigned returns the unsigned integer kind with the given width.
func Unsigned(bits int) (Kind, bool) {
	switch bits {
	case 8:
		return U8, true
	case 16:
		return U16, true
	case 32:
		return U32, true
	case 64:
		return U64, true
	}
	return Invalid, false
}

// Lookup returns the kind registered for a C spelling such as
// "unsigned char".
func Lookup(base string) (Kind, bool) {
	k, ok := cTypes[base]
	return k, ok
}

// Role tells whether a value is read or written by the native side.
type Role int

const (
	Input Role = iota
	Output
)

func (r Role) String() string {
	if r == Output {
		return "output"
	}
	return "input"
}

// Conventions lists the parameter names the role inference trusts.
type Conventions struct {
	Output []string `yaml:"output" json:"output" validate:"required,min=1,dive,required"`
	Input  []string `yaml:"input" json:"input" validate:"dive,required"`
}

// DefaultConventions matches the native headers: buffers are named in and out.
func DefaultConventions() Conventions {
	return Conventions{
		Output: []string{"out"},
		Input:  []string{"in"},
	}
}

// RoleOf infers the role of a parameter from its name. The second result
// is false when the name is in neither list, meaning the input role is a
// guess that needs review.
func (c Conventions) RoleOf(name string) (Role, bool) {
	if slices.Contains(c.Output, name) {
		return Output, true
	}
	return Input, slices.Contains(c.Input, name)
}

// Type is a resolved native type.
type Type struct {
	Kind    Kind
	Pointer int
	Mutable bool
}

// Rust renders the type. Pointers use *mut for written memory and *const
// otherwise, applied at every level of indirection.
func (t Type) Rust() string {
	qual := "*const "
	if t.Mutable {
		qual = "*mut "
	}
	return strings.Repeat(qual, t.Pointer) + t.Kind.Rust()
}

func (t Type) String() string {
	return t.Rust()
}

// IsScalarInteger reports whether the type is a plain integer value.
func (t Type) IsScalarInteger() bool {
	return t.Pointer == 0 && t.Kind.IsInteger()
}

// Map resolves a C type in the given role.
func Map(ct parser.CType, role Role) (Type, error) {
	k, ok := Lookup(ct.Base())
	if !ok {
		return Type{}, &UnknownTypeError{Type: ct.String()}
	}

	if ct.Pointer > parser.MaxPointer {
		return Type{}, fmt.Errorf("pointer depth %d exceeds %d", ct.Pointer, parser.MaxPointer)
	}

	return Type{
		Kind:    k,
		Pointer: ct.Pointer,
		Mutable: ct.IsPointer() && role == Output,
	}, nil
}
