package generator

import (
	"fmt"
	"path/filepath"

	"github.com/ardanlabs/icbindgen/typemap"
)

// icFile declares every signature, matched or not, in native order with a
// comment line per source file.
func (g *Generator) icFile(sigs []typemap.Signature) *File {
	var items []Item

	file := ""
	for _, s := range sigs {
		if s.Pos.File != file {
			file = s.Pos.File
			items = append(items, Comment{Text: filepath.Base(file)})
		}
		items = append(items, externFn(s))
	}

	return &File{
		Header: []string{generatedBy},
		Doc:    []string{"Unsafe bindings to the native codec library."},
		Items: []Item{
			ExternBlock{
				Attrs: []string{fmt.Sprintf("#[link(name = %q, kind = \"static\")]", g.cfg.libName)},
				ABI:   "C",
				Items: items,
			},
		},
	}
}

func externFn(s typemap.Signature) ExternFn {
	fn := ExternFn{
		Name:   rustIdent(s.Name),
		Params: make([]Param, len(s.Params)),
		Ret:    s.Return.Rust(),
	}
	for i, p := range s.Params {
		fn.Params[i] = Param{Name: rustIdent(p.Name), Type: p.Type.Rust()}
	}
	return fn
}

var rustKeywords = map[string]bool{
	"abstract": true, "as": true, "async": true, "await": true, "become": true,
	"box": true, "break": true, "const": true, "continue": true, "do": true,
	"dyn": true, "else": true, "enum": true, "extern": true, "false": true,
	"final": true, "fn": true, "for": true, "if": true, "impl": true,
	"in": true, "let": true, "loop": true, "macro": true, "match": true,
	"mod": true, "move": true, "mut": true, "override": true, "priv": true,
	"pub": true, "ref": true, "return": true, "static": true, "struct": true,
	"trait": true, "true": true, "try": true, "type": true, "typeof": true,
	"unsafe": true, "unsized": true, "use": true, "virtual": true, "where": true,
	"while": true, "yield": true,
}

// rustIdent keeps a native name usable in Rust: keywords become raw
// identifiers, so `in` is emitted as `r#in`.
func rustIdent(name string) string {
	if rustKeywords[name] {
		return "r#" + name
	}
	return name
}
