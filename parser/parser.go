package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// commentRe matches both comment forms in one scan so whichever opener
// comes first wins: "// see docs/*" is a line comment, not a block.
var commentRe = regexp.MustCompile(`//[^\n]*|/\*[\s\S]*?\*/`)

var declLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[(),;*]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// declNode is the grammar of one declaration line:
//
//	Type Ident '(' Param (',' Param)* ')' ';'
type declNode struct {
	Pos    lexer.Position
	Return *typeNode    `parser:"@@"`
	Name   string       `parser:"@Ident"`
	Params []*paramNode `parser:"'(' @@ ( ',' @@ )* ')' ';'"`
}

// typeNode accepts an optional sign, an optional base keyword and any mix
// of stars and qualifiers. Qualifiers carry no meaning in the target
// language and are dropped.
type typeNode struct {
	Pos   lexer.Position
	Sign  string   `parser:"'const'* @( 'signed' | 'unsigned' )?"`
	Name  string   `parser:"@( 'float' | 'double' | 'int' | 'char' | 'short' | 'long' | 'size_t' | 'uint8_t' | 'uint16_t' | 'uint32_t' | 'uint64_t' )?"`
	Stars []string `parser:"( @'*' | 'const' | 'restrict' | '__restrict' | '__restrict__' )*"`
}

type paramNode struct {
	Pos  lexer.Position
	Type *typeNode `parser:"@@"`
	Name string    `parser:"@Ident"`
}

// keywords may not be used as a function or parameter name.
var keywords = map[string]bool{
	"const": true, "signed": true, "unsigned": true, "restrict": true,
	"__restrict": true, "__restrict__": true, "float": true, "double": true,
	"int": true, "char": true, "short": true, "long": true, "size_t": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
}

var declParser = participle.MustBuild[declNode](
	participle.Lexer(declLexer),
	participle.Elide("Whitespace"),
)

// Parse reads every declaration in content. Comments and blank lines are
// skipped; any other line must be a complete declaration or Parse fails
// with a *ParseError naming file and line.
func Parse(file, content string) (*Header, error) {
	content = normalizeNewlines(content)
	content = removeComments(content)

	header := &Header{File: file}

	for i, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fn, err := ParseLine(file, i+1, line)
		if err != nil {
			return nil, err
		}

		header.Functions = append(header.Functions, fn)
	}

	return header, nil
}

// ParseLine parses a single declaration. Columns in errors count from the
// start of text, so callers pass the source line untrimmed.
func ParseLine(file string, line int, text string) (Function, error) {
	node, err := declParser.ParseString(file, text)
	text = strings.TrimSpace(text)
	if err != nil {
		perr := &ParseError{File: file, Line: line, Text: text, Reason: err.Error()}

		var pe participle.Error
		if errors.As(err, &pe) {
			perr.Column = pe.Position().Column
			perr.Reason = pe.Message()
		}

		return Function{}, perr
	}

	fail := func(col int, format string, args ...any) (Function, error) {
		return Function{}, &ParseError{
			File:   file,
			Line:   line,
			Column: col,
			Text:   text,
			Reason: fmt.Sprintf(format, args...),
		}
	}

	ret, err := node.Return.ctype()
	if err != nil {
		return fail(node.Return.column(), "return type: %v", err)
	}

	if keywords[node.Name] {
		return fail(node.Pos.Column, "function name %q is a type keyword", node.Name)
	}

	fn := Function{
		Name:       node.Name,
		ReturnType: ret,
		Pos:        Position{File: file, Line: line},
	}

	for _, p := range node.Params {
		if keywords[p.Name] {
			return fail(p.Pos.Column, "parameter name %q is a type keyword", p.Name)
		}

		ct, err := p.Type.ctype()
		if err != nil {
			return fail(p.Type.column(), "parameter %q: %v", p.Name, err)
		}

		fn.Params = append(fn.Params, FunctionParam{Name: p.Name, Type: ct})
	}

	return fn, nil
}

func (t *typeNode) ctype() (CType, error) {
	if t == nil || (t.Sign == "" && t.Name == "") {
		return CType{}, errors.New("missing type")
	}

	if len(t.Stars) > MaxPointer {
		return CType{}, fmt.Errorf("pointer depth %d exceeds %d", len(t.Stars), MaxPointer)
	}

	return CType{Sign: t.Sign, Name: t.Name, Pointer: len(t.Stars)}, nil
}

func (t *typeNode) column() int {
	if t == nil {
		return 0
	}
	return t.Pos.Column
}

// removeComments blanks comments out in place. Newlines inside a block
// comment survive, so line numbers and columns still match the source.
func removeComments(s string) string {
	return commentRe.ReplaceAllStringFunc(s, func(m string) string {
		if strings.HasPrefix(m, "//") {
			return ""
		}
		return strings.Map(func(r rune) rune {
			if r == '\n' {
				return r
			}
			return ' '
		}, m)
	})
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	return s
}

// Collect flattens headers in order and rejects a name declared twice.
func Collect(headers []*Header) ([]Function, error) {
	seen := make(map[string]Position)

	var fns []Function
	for _, h := range headers {
		for _, fn := range h.Functions {
			if first, ok := seen[fn.Name]; ok {
				return nil, &DuplicateError{Name: fn.Name, First: first, Second: fn.Pos}
			}
			seen[fn.Name] = fn.Pos
			fns = append(fns, fn)
		}
	}

	return fns, nil
}
