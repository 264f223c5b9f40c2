package typemap

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/icbindgen/parser"
)

// Param is a resolved parameter. Review is set on pointer parameters whose
// name matches neither convention list, so their input role was guessed.
type Param struct {
	Name   string
	Type   Type
	Review bool
}

// Signature is a declaration with every type resolved.
type Signature struct {
	Name   string
	Return Type
	Params []Param
	Pos    parser.Position
}

// Reviews returns the names of the parameters flagged for review.
func (s Signature) Reviews() []string {
	var names []string
	for _, p := range s.Params {
		if p.Review {
			names = append(names, p.Name)
		}
	}
	return names
}

// Resolve maps every type of fn. The first unmapped type aborts with an
// *UnknownTypeError carrying the declaration's position.
func Resolve(fn parser.Function, conv Conventions) (Signature, error) {
	fail := func(err error) (Signature, error) {
		var ute *UnknownTypeError
		if errors.As(err, &ute) {
			ute.Function = fn.Name
			ute.Pos = fn.Pos
			return Signature{}, ute
		}
		return Signature{}, fmt.Errorf("%s: %s: %w", fn.Pos, fn.Name, err)
	}

	ret, err := Map(fn.ReturnType, Input)
	if err != nil {
		return fail(err)
	}

	sig := Signature{
		Name:   fn.Name,
		Return: ret,
		Params: make([]Param, 0, len(fn.Params)),
		Pos:    fn.Pos,
	}

	for _, p := range fn.Params {
		role, known := conv.RoleOf(p.Name)

		t, err := Map(p.Type, role)
		if err != nil {
			return fail(err)
		}

		sig.Params = append(sig.Params, Param{
			Name:   p.Name,
			Type:   t,
			Review: p.Type.IsPointer() && !known,
		})
	}

	return sig, nil
}

// ResolveAll resolves fns in order and stops at the first failure.
func ResolveAll(fns []parser.Function, conv Conventions) ([]Signature, error) {
	sigs := make([]Signature, 0, len(fns))
	for _, fn := range fns {
		sig, err := Resolve(fn, conv)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}
