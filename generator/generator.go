package generator

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ardanlabs/icbindgen/naming"
	"github.com/ardanlabs/icbindgen/parser"
	"github.com/ardanlabs/icbindgen/typemap"
)

const generatedBy = "Code generated by icbindgen. DO NOT EDIT."

// Mode selects what Generate emits.
type Mode string

const (
	// ModeIC emits the raw extern "C" block.
	ModeIC Mode = "ic"

	// ModeLib emits the safe wrapper modules.
	ModeLib Mode = "lib"
)

// Modes lists the valid modes in usage order.
var Modes = []string{string(ModeIC), string(ModeLib)}

// ParseMode validates a command line mode token.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeIC, ModeLib:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q, want ic or lib", s)
}

type config struct {
	libName string
	strict  bool
	log     *slog.Logger
}

// Option configures a Generator.
type Option func(*config)

// WithLibName sets the native library name used in the link attribute.
func WithLibName(name string) Option {
	return func(c *config) {
		c.libName = name
	}
}

// WithStrict makes parameters flagged for review fatal.
func WithStrict(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// WithLogger sets the logger used for progress and review warnings.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

type Generator struct {
	cfg     config
	table   *naming.Table
	headers []*parser.Header
}

func New(table *naming.Table, headers []*parser.Header, opts ...Option) *Generator {
	cfg := config{
		libName: "ic",
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Generator{
		cfg:     cfg,
		table:   table,
		headers: headers,
	}
}

// Analysis is everything known about the catalogue before emission.
type Analysis struct {
	Signatures []typemap.Signature
	Result     *naming.Result
}

// Analyze runs every check: duplicates, type mapping, decomposition and
// coverage. It fails on the first fatal problem; unmatched names are
// collected over the whole catalogue and reported together.
func (g *Generator) Analyze() (*Analysis, error) {
	fns, err := parser.Collect(g.headers)
	if err != nil {
		return nil, err
	}

	sigs, err := typemap.ResolveAll(fns, g.table.Axes().Conventions)
	if err != nil {
		return nil, err
	}

	for _, s := range sigs {
		for _, name := range s.Reviews() {
			g.cfg.log.Warn("pointer parameter treated as input, review its name",
				"function", s.Name, "param", name, "pos", s.Pos.String())
		}
	}
	if g.cfg.strict {
		if err := typemap.CheckReviews(sigs); err != nil {
			return nil, err
		}
	}

	res, err := g.table.Decompose(sigs)
	if err != nil {
		return nil, fmt.Errorf("decomposing names: %w", err)
	}

	names := make([]string, len(sigs))
	for i, s := range sigs {
		names[i] = s.Name
	}
	if err := naming.CheckCoverage(names, res.Accounted()); err != nil {
		return nil, err
	}

	g.cfg.log.Debug("catalogue analyzed",
		"headers", len(g.headers),
		"functions", len(sigs),
		"tuples", len(g.table.Tuples()),
		"wrapped", len(res.Bindings),
		"raw", len(res.Raw))

	return &Analysis{Signatures: sigs, Result: res}, nil
}

// Generate returns the complete text for mode. Nothing is returned unless
// every check passed.
func (g *Generator) Generate(mode Mode) (string, error) {
	a, err := g.Analyze()
	if err != nil {
		return "", err
	}

	var f *File
	switch mode {
	case ModeIC:
		f = g.icFile(a.Signatures)
	case ModeLib:
		f, err = g.libFile(a.Result)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", mode, err)
	}

	return Render(f), nil
}
