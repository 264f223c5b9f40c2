// Package catalogue supplies the native declarations: either the text
// blocks compiled into the binary or header files scanned from a directory.
package catalogue

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ardanlabs/icbindgen/parser"
)

//go:embed headers/*.h
var builtin embed.FS

// Area is a built-in block of declarations for one functional area.
type Area struct {
	Name string
	File string
}

// Areas lists the built-in blocks in emission order.
var Areas = []Area{
	{Name: "codec", File: "vp4.h"},
	{Name: "bitpack", File: "bitpack.h"},
}

// DefaultPattern selects header files in a scanned directory.
const DefaultPattern = "*.h"

// Builtin parses every built-in area.
func Builtin() ([]*parser.Header, error) {
	headers := make([]*parser.Header, 0, len(Areas))
	for _, a := range Areas {
		data, err := builtin.ReadFile(path.Join("headers", a.File))
		if err != nil {
			return nil, fmt.Errorf("reading %s block: %w", a.Name, err)
		}

		h, err := parser.Parse(a.File, string(data))
		if err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}
	return headers, nil
}

// Dir parses the files under dir matching pattern (doublestar syntax, so
// "**/*.h" recurses). Files are read in lexical order so output is stable.
func Dir(dir, pattern string) ([]*parser.Header, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	return Load(os.DirFS(dir), pattern, func(name string) string {
		return filepath.Join(dir, filepath.FromSlash(name))
	})
}

// Load parses the files of fsys matching pattern. display turns a match
// into the file name used in positions and errors.
func Load(fsys fs.FS, pattern string, display func(string) string) ([]*parser.Header, error) {
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scanning %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no header files match %q", pattern)
	}
	slices.Sort(matches)

	headers := make([]*parser.Header, 0, len(matches))
	for _, m := range matches {
		data, err := fs.ReadFile(fsys, m)
		if err != nil {
			return nil, err
		}

		h, err := parser.Parse(display(m), string(data))
		if err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}

	return headers, nil
}
