package generator

import (
	"bytes"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ardanlabs/icbindgen/naming"
)

var encodeDoc = template.Must(template.New("encode").Option("missingkey=error").Parse(
	`{{.Algorithm}} {{.Direction}} {{.Category}} of ` + "`{{.Elem}}`" + `.

# Arguments
* ` + "`input`" + ` - ` + "`&[{{.Elem}}]`" + ` containing the uncompressed input
* ` + "`output`" + ` - ` + "`&mut [u8]`" + ` receiving the compressed output, large enough for the native routine

# Returns
Number of bytes written to ` + "`output`" + `

Calls ` + "`ic::{{.Native}}`" + `; no bounds are checked.`))

var decodeDoc = template.Must(template.New("decode").Option("missingkey=error").Parse(
	`{{.Algorithm}} {{.Direction}} {{.Category}} into a ` + "`{{.Elem}}`" + ` list.

# Arguments
* ` + "`input`" + ` - ` + "`&[u8]`" + ` containing the compressed input
* ` + "`output_len`" + ` - number of values to decode into ` + "`output`" + `
* ` + "`output`" + ` - ` + "`&mut [{{.Elem}}]`" + ` receiving the decompressed output, large enough for the native routine

# Returns
Number of bytes read from ` + "`input`" + `

Calls ` + "`ic::{{.Native}}`" + `; no bounds are checked.`))

type docData struct {
	Algorithm string
	Direction string
	Category  string
	Elem      string
	Native    string
}

// wrapperDoc renders the doc comment lines of a wrapper.
func wrapperDoc(b naming.Binding) ([]string, error) {
	tmpl, elem := decodeDoc, b.Output
	if b.Tuple.Direction.Encodes() {
		tmpl, elem = encodeDoc, b.Input
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, docData{
		Algorithm: capitalize(b.Tuple.Algorithm.Name),
		Direction: b.Tuple.Direction.Name,
		Category:  b.Tuple.Category.Description,
		Elem:      elem.Rust(),
		Native:    b.Signature.Name,
	})
	if err != nil {
		return nil, err
	}

	return strings.Split(buf.String(), "\n"), nil
}

// capitalize upper-cases the first word only: "bit packing" -> "Bit packing".
func capitalize(s string) string {
	first, rest, found := strings.Cut(s, " ")
	first = cases.Title(language.English, cases.NoLower).String(first)
	if !found {
		return first
	}
	return first + " " + rest
}

// moduleDoc is the doc line above an algorithm's module.
func moduleDoc(a naming.Algorithm) []string {
	return []string{cases.Title(language.English).String(a.Name) + " wrappers."}
}
