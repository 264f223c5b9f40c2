package naming

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/ardanlabs/icbindgen/typemap"
)

// Binding is a signature annotated with the axis combination it implements.
type Binding struct {
	Signature typemap.Signature
	Tuple     Tuple
	Input     typemap.Kind // element kind read through the first parameter
	Output    typemap.Kind // element kind written through the last parameter
}

// Result is the outcome of one decomposition pass.
type Result struct {
	Bindings  []Binding           // enumeration order
	Raw       []typemap.Signature // declaration order
	Unmatched []string            // sorted, as CheckCoverage reports them
}

// Accounted returns every name bound by a generation rule.
func (r *Result) Accounted() []string {
	names := make([]string, 0, len(r.Bindings)+len(r.Raw))
	for _, b := range r.Bindings {
		names = append(names, b.Signature.Name)
	}
	for _, s := range r.Raw {
		names = append(names, s.Name)
	}
	return names
}

// Decompose binds every signature whose name one axis combination
// assembles, in enumeration order. Names covered by a raw pattern are
// accounted as raw-only; a name covered both ways is an
// *AmbiguousNameError. Shape violations fail with a *ShapeError. Names must
// be unique in sigs.
func (t *Table) Decompose(sigs []typemap.Signature) (*Result, error) {
	var res Result

	for _, s := range sigs {
		tu, ok := t.Lookup(s.Name)
		if !ok {
			if _, raw := t.rawPattern(s.Name); raw {
				res.Raw = append(res.Raw, s)
			}
			continue
		}

		if p, ok := t.rawPattern(s.Name); ok {
			return nil, &AmbiguousNameError{
				Name:    s.Name,
				Matches: []string{tu.String(), fmt.Sprintf("raw pattern %q", p)},
			}
		}

		b, err := bind(s, tu, t.axes.Conventions)
		if err != nil {
			return nil, err
		}
		res.Bindings = append(res.Bindings, b)
	}

	slices.SortStableFunc(res.Bindings, func(a, b Binding) int {
		return cmp.Compare(t.byName[a.Signature.Name], t.byName[b.Signature.Name])
	})

	names := lo.Map(sigs, func(s typemap.Signature, _ int) string { return s.Name })
	res.Unmatched = unaccounted(names, res.Accounted())

	return &res, nil
}

// bind checks that sig has the shape every wrapper relies on:
//
//	ret name(const In *in, count n, Out *out)
//
// with In/Out derived from the tuple and ret a byte count.
func bind(sig typemap.Signature, tu Tuple, conv typemap.Conventions) (Binding, error) {
	in, out := tu.Elements()

	fail := func(format string, args ...any) (Binding, error) {
		return Binding{}, &ShapeError{
			Name:   sig.Name,
			Pos:    sig.Pos,
			Tuple:  tu,
			Reason: fmt.Sprintf(format, args...),
		}
	}

	if len(sig.Params) != 3 {
		return fail("want 3 parameters (input, count, output), got %d", len(sig.Params))
	}

	src, n, dst := sig.Params[0], sig.Params[1], sig.Params[2]

	want := typemap.Type{Kind: in, Pointer: 1}
	if src.Type != want {
		return fail("parameter %s is %s, want %s", src.Name, src.Type, want)
	}

	if !n.Type.IsScalarInteger() {
		return fail("count parameter %s is %s, want an integer", n.Name, n.Type)
	}

	if dst.Type.Pointer != 1 || dst.Type.Kind != out {
		return fail("parameter %s is %s, want *mut %s", dst.Name, dst.Type, out)
	}

	if !dst.Type.Mutable {
		return fail("output parameter %s is not named after the output convention %v", dst.Name, conv.Output)
	}

	if !sig.Return.IsScalarInteger() {
		return fail("returns %s, want an integer byte count", sig.Return)
	}

	return Binding{Signature: sig, Tuple: tu, Input: in, Output: out}, nil
}
