package generator

import (
	"bytes"
	"fmt"
	"strings"
)

const indentUnit = "    "

type printer struct {
	buf   bytes.Buffer
	depth int
}

// Render prints a file. Indentation follows nesting and items are
// separated by blank lines except inside runs of one-line declarations.
func Render(f *File) string {
	var p printer

	for _, h := range f.Header {
		p.line("// %s", h)
	}
	for _, d := range f.Doc {
		p.doc("//!", d)
	}
	if len(f.Header)+len(f.Doc) > 0 && len(f.Items) > 0 {
		p.blank()
	}

	p.items(f.Items)

	return p.buf.String()
}

func (p *printer) line(format string, args ...any) {
	p.buf.WriteString(strings.Repeat(indentUnit, p.depth))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *printer) blank() {
	p.buf.WriteByte('\n')
}

func (p *printer) doc(marker, text string) {
	if text == "" {
		p.line("%s", marker)
		return
	}
	p.line("%s %s", marker, text)
}

func (p *printer) block(header, trailer string, body func()) {
	p.line("%s {", header)
	p.depth++
	body()
	p.depth--
	p.line("}%s", trailer)
}

func (p *printer) items(items []Item) {
	for i, it := range items {
		if i > 0 && separated(items[i-1], it) {
			p.blank()
		}
		it.print(p)
	}
}

func separated(prev, cur Item) bool {
	switch cur.(type) {
	case ExternFn:
		switch prev.(type) {
		case ExternFn, Comment:
			return false
		}
	case Comment:
		_, ok := prev.(ExternFn)
		return !ok
	case Use:
		_, ok := prev.(Use)
		return !ok
	case ModDecl:
		_, ok := prev.(ModDecl)
		return !ok
	}
	return true
}

func params(ps []Param) string {
	parts := make([]string, len(ps))
	for i, prm := range ps {
		parts[i] = prm.Name + ": " + prm.Type
	}
	return strings.Join(parts, ", ")
}

func (c Comment) print(p *printer) {
	p.line("// %s", c.Text)
}

func (m ModDecl) print(p *printer) {
	for _, a := range m.Attrs {
		p.line("%s", a)
	}
	if m.Public {
		p.line("pub mod %s;", m.Name)
		return
	}
	p.line("mod %s;", m.Name)
}

func (u Use) print(p *printer) {
	p.line("use %s;", u.Path)
}

func (m Module) print(p *printer) {
	for _, d := range m.Doc {
		p.doc("///", d)
	}
	p.block("pub mod "+m.Name, " // mod "+m.Name, func() {
		p.items(m.Items)
	})
}

func (f ExternFn) print(p *printer) {
	if f.Ret == "" {
		p.line("pub fn %s(%s);", f.Name, params(f.Params))
		return
	}
	p.line("pub fn %s(%s) -> %s;", f.Name, params(f.Params), f.Ret)
}

func (b ExternBlock) print(p *printer) {
	for _, a := range b.Attrs {
		p.line("%s", a)
	}
	p.block(fmt.Sprintf("extern %q", b.ABI), "", func() {
		p.items(b.Items)
	})
}

func (f Func) print(p *printer) {
	for _, d := range f.Doc {
		p.doc("///", d)
	}

	sig := fmt.Sprintf("pub fn %s(%s)", f.Name, params(f.Params))
	if f.Ret != "" {
		sig += " -> " + f.Ret
	}

	p.block(sig, "", func() {
		if f.Unsafe {
			p.line("unsafe { %s }", f.Body)
			return
		}
		p.line("%s", f.Body)
	})
}
