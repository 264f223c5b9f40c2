package naming

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ardanlabs/icbindgen/typemap"
)

// Tuple is one combination of the four axes.
type Tuple struct {
	Algorithm Algorithm
	Category  Category
	Direction Direction
	Width     Width
}

// Name assembles the native name: {algorithm}n{category}{direction}{width}.
func (t Tuple) Name() string {
	return t.Algorithm.Key + "n" + t.Category.Key + t.Direction.Key + t.Width.Key
}

// WrapperName is the safe function name inside the algorithm's module.
func (t Tuple) WrapperName() string {
	return t.Category.Key + t.Direction.Key + t.Width.Key
}

// Elements returns the element kinds read and written by the function:
// encoders read uN and write bytes, decoders the reverse.
func (t Tuple) Elements() (in, out typemap.Kind) {
	elem, ok := typemap.Unsigned(t.Width.Bits)
	if !ok {
		return typemap.Invalid, typemap.Invalid
	}
	if t.Direction.Encodes() {
		return elem, typemap.U8
	}
	return typemap.U8, elem
}

func (t Tuple) String() string {
	return fmt.Sprintf("(%s, %q, %s, %s)", t.Algorithm.Key, t.Category.Key, t.Direction.Key, t.Width.Key)
}

// Table is the validated product of the axes.
type Table struct {
	axes   *Axes
	tuples []Tuple
	byName map[string]int // index into tuples
}

// NewTable enumerates every axis combination in table order and fails with
// an *AmbiguousNameError if two combinations assemble the same name.
func NewTable(axes *Axes) (*Table, error) {
	if err := axes.Validate(); err != nil {
		return nil, err
	}

	size := len(axes.Algorithms) * len(axes.Categories) * len(axes.Directions) * len(axes.Widths)

	t := Table{
		axes:   axes,
		tuples: make([]Tuple, 0, size),
		byName: make(map[string]int, size),
	}

	for _, a := range axes.Algorithms {
		for _, c := range axes.Categories {
			for _, d := range axes.Directions {
				for _, w := range axes.Widths {
					tu := Tuple{Algorithm: a, Category: c, Direction: d, Width: w}
					name := tu.Name()

					if i, ok := t.byName[name]; ok {
						return nil, &AmbiguousNameError{
							Name:    name,
							Matches: []string{t.tuples[i].String(), tu.String()},
						}
					}

					t.byName[name] = len(t.tuples)
					t.tuples = append(t.tuples, tu)
				}
			}
		}
	}

	return &t, nil
}

// Axes returns the configuration the table was built from.
func (t *Table) Axes() *Axes {
	return t.axes
}

// Tuples returns every combination in enumeration order.
func (t *Table) Tuples() []Tuple {
	return t.tuples
}

// Lookup returns the combination that assembles name.
func (t *Table) Lookup(name string) (Tuple, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Tuple{}, false
	}
	return t.tuples[i], true
}

// rawPattern returns the first raw-only pattern matching name.
func (t *Table) rawPattern(name string) (string, bool) {
	for _, p := range t.axes.Raw {
		if ok, _ := doublestar.Match(p, name); ok {
			return p, true
		}
	}
	return "", false
}
