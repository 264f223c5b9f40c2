// Package naming decomposes native function names into the axis
// combination they implement and checks that every name is accounted for.
package naming

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/ardanlabs/icbindgen/typemap"
)

//go:embed axes.yaml
var defaultAxes []byte

// validate caches struct metadata, so one instance serves every call.
var validate = validator.New()

// Algorithm is a compression family, e.g. p4 (turbopfor).
type Algorithm struct {
	Key  string `yaml:"key" json:"key" validate:"required" jsonschema:"description=Name prefix and Rust module name"`
	Name string `yaml:"name" json:"name" validate:"required" jsonschema:"description=Human readable name used in docs"`
}

// Category is the transform applied to the integer list. The key of the
// plain (unsorted) category is empty.
type Category struct {
	Key         string `yaml:"key" json:"key"`
	Description string `yaml:"description" json:"description" validate:"required"`
}

// Direction is encode/decode or pack/unpack. Kind says which side of the
// codec the function is on.
type Direction struct {
	Key  string `yaml:"key" json:"key" validate:"required"`
	Name string `yaml:"name" json:"name" validate:"required"`
	Kind string `yaml:"kind" json:"kind" validate:"required,oneof=encode decode" jsonschema:"enum=encode,enum=decode"`
}

// Encodes reports whether the direction compresses.
func (d Direction) Encodes() bool {
	return d.Kind == "encode"
}

// Width is an element width key. SIMD annotated keys such as 128v32 still
// resolve to a scalar width.
type Width struct {
	Key  string `yaml:"key" json:"key" validate:"required"`
	Bits int    `yaml:"bits" json:"bits" validate:"required,oneof=8 16 32 64" jsonschema:"enum=8,enum=16,enum=32,enum=64"`
}

// Axes is the naming configuration.
type Axes struct {
	Algorithms  []Algorithm         `yaml:"algorithms" json:"algorithms" validate:"required,min=1,unique=Key,dive"`
	Categories  []Category          `yaml:"categories" json:"categories" validate:"required,min=1,unique=Key,dive"`
	Directions  []Direction         `yaml:"directions" json:"directions" validate:"required,min=1,unique=Key,dive"`
	Widths      []Width             `yaml:"widths" json:"widths" validate:"required,min=1,unique=Key,dive"`
	Conventions typemap.Conventions `yaml:"conventions" json:"conventions,omitempty"`
	Raw         []string            `yaml:"raw" json:"raw,omitempty" validate:"dive,required" jsonschema:"description=Glob patterns of names bound only as raw declarations"`
}

// DefaultAxes returns the embedded configuration.
func DefaultAxes() (*Axes, error) {
	return LoadAxes(bytes.NewReader(defaultAxes))
}

// LoadAxesFile reads a YAML axes file.
func LoadAxesFile(path string) (*Axes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	axes, err := LoadAxes(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return axes, nil
}

// LoadAxes decodes and validates a YAML axes document. Unknown fields are
// rejected so a misspelled table cannot silently vanish.
func LoadAxes(r io.Reader) (*Axes, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var axes Axes
	if err := dec.Decode(&axes); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty axes document")
		}
		return nil, fmt.Errorf("decoding axes: %w", err)
	}

	if len(axes.Conventions.Output) == 0 && len(axes.Conventions.Input) == 0 {
		axes.Conventions = typemap.DefaultConventions()
	}

	if err := axes.Validate(); err != nil {
		return nil, err
	}

	return &axes, nil
}

// Validate checks the tables. Injectivity of the assembled names is
// checked by NewTable.
func (a *Axes) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("axes validation failed: %w", err)
	}

	for _, p := range a.Raw {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("axes validation failed: bad raw pattern %q", p)
		}
	}

	return nil
}

// Schema returns the JSON schema of the axes document.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(&Axes{})
	s.Title = "icbindgen naming axes"

	return json.MarshalIndent(s, "", "  ")
}
