package generator

// The generator never concatenates Rust text by hand. It builds the items
// below and hands them to a printer, which derives indentation from how
// deeply an item is nested.

// Item is one element of a Rust source file.
type Item interface {
	print(p *printer)
}

// File is a complete Rust source file.
type File struct {
	Header []string // plain comment lines at the very top
	Doc    []string // inner doc comment (//!)
	Items  []Item
}

// Comment is a plain // comment.
type Comment struct {
	Text string
}

// ModDecl declares an out-of-line module: `pub mod ic;`.
type ModDecl struct {
	Attrs  []string
	Public bool
	Name   string
}

// Use is a use declaration.
type Use struct {
	Path string
}

// Module is an inline module.
type Module struct {
	Doc   []string
	Name  string
	Items []Item
}

// Param is a Rust function parameter.
type Param struct {
	Name string
	Type string
}

// ExternFn is a foreign function declaration inside an extern block.
type ExternFn struct {
	Name   string
	Params []Param
	Ret    string
}

// ExternBlock is an `extern "C"` block.
type ExternBlock struct {
	Attrs []string
	ABI   string
	Items []Item
}

// Func is a safe Rust function whose body is a single expression.
type Func struct {
	Doc    []string
	Name   string
	Params []Param
	Ret    string
	Unsafe bool // wrap Body in an unsafe block
	Body   string
}
