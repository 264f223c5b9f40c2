package generator

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/ardanlabs/icbindgen/naming"
	"github.com/ardanlabs/icbindgen/typemap"
)

// libFile emits one module per algorithm, in axes order, holding a safe
// wrapper per binding grouped by category.
func (g *Generator) libFile(res *naming.Result) (*File, error) {
	byAlgo := lo.GroupBy(res.Bindings, func(b naming.Binding) string {
		return b.Tuple.Algorithm.Key
	})

	items := []Item{ModDecl{Public: true, Name: "ic"}}

	for _, a := range g.table.Axes().Algorithms {
		bs, ok := byAlgo[a.Key]
		if !ok {
			continue
		}

		mod := Module{
			Doc:   moduleDoc(a),
			Name:  rustIdent(a.Key),
			Items: []Item{Use{Path: "crate::ic"}},
		}

		for i, b := range bs {
			if i == 0 || b.Tuple.Category.Key != bs[i-1].Tuple.Category.Key {
				mod.Items = append(mod.Items, Comment{Text: b.Tuple.Category.Description})
			}

			fn, err := wrapper(b)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Signature.Name, err)
			}
			mod.Items = append(mod.Items, fn)
		}

		items = append(items, mod)
	}

	items = append(items, ModDecl{Attrs: []string{"#[cfg(test)]"}, Name: "test"})

	return &File{
		Header: []string{generatedBy},
		Doc:    []string{"Safe wrappers around the native codec library."},
		Items:  items,
	}, nil
}

// wrapper builds the safe function for one binding. Its body is a single
// call into the raw binding passing slice base pointers and lengths.
func wrapper(b naming.Binding) (Func, error) {
	doc, err := wrapperDoc(b)
	if err != nil {
		return Func{}, err
	}

	sig := b.Signature
	count := sig.Params[1].Type.Kind

	fn := Func{
		Doc:    doc,
		Name:   b.Tuple.WrapperName(),
		Ret:    "usize",
		Unsafe: true,
	}

	var n string
	if b.Tuple.Direction.Encodes() {
		fn.Params = []Param{
			{Name: "input", Type: "&[" + b.Input.Rust() + "]"},
			{Name: "output", Type: "&mut [" + b.Output.Rust() + "]"},
		}
		n = cast("input.len()", typemap.Usize, count)
	} else {
		fn.Params = []Param{
			{Name: "input", Type: "&[" + b.Input.Rust() + "]"},
			{Name: "output_len", Type: "usize"},
			{Name: "output", Type: "&mut [" + b.Output.Rust() + "]"},
		}
		n = cast("output_len", typemap.Usize, count)
	}

	call := fmt.Sprintf("ic::%s(input.as_ptr(), %s, output.as_mut_ptr())", rustIdent(sig.Name), n)
	fn.Body = cast(call, sig.Return.Kind, typemap.Usize)

	return fn, nil
}

// cast converts expr from one integer kind to another when they differ.
func cast(expr string, from, to typemap.Kind) string {
	if from == to {
		return expr
	}
	return expr + " as " + to.Rust()
}
