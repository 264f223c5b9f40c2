package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ardanlabs/icbindgen/catalogue"
	"github.com/ardanlabs/icbindgen/generator"
	"github.com/ardanlabs/icbindgen/naming"
	"github.com/ardanlabs/icbindgen/parser"
)

type options struct {
	headers     string
	pattern     string
	axes        string
	libName     string
	output      string
	strict      bool
	verbose     bool
	printSchema bool
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

// report prints err, one line per unmatched name when coverage failed.
func report(w io.Writer, err error) {
	var ue *naming.UnmatchedError
	if errors.As(err, &ue) {
		for _, name := range ue.Names {
			fmt.Fprintf(w, "%s not identified\n", name)
		}
	}
	fmt.Fprintf(w, "error: %v\n", err)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "icbindgen <ic|lib>",
		Short: "Generate Rust bindings for the native integer codec library",
		Long: `icbindgen reads native codec declarations and prints either the raw
extern "C" block (ic) or the safe slice based wrappers (lib).

Every declared function must be accounted for by the naming axes; any
unmatched name fails the run and nothing is printed.`,
		ValidArgs: generator.Modes,
		Args: func(cmd *cobra.Command, args []string) error {
			check := cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)
			if opts.printSchema {
				check = cobra.NoArgs
			}
			if err := check(cmd, args); err != nil {
				fmt.Fprint(stderr, cmd.UsageString())
				return err
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(stderr, opts.verbose)

			if opts.printSchema {
				schema, err := naming.Schema()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(stdout, "%s\n", schema)
				return err
			}

			mode, err := generator.ParseMode(args[0])
			if err != nil {
				return err
			}

			return run(mode, opts, stdout, log)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&opts.headers, "headers", "", "directory of header files (default: built-in catalogue)")
	f.StringVar(&opts.pattern, "pattern", catalogue.DefaultPattern, "header file pattern inside --headers, ** recurses")
	f.StringVar(&opts.axes, "axes", "", "naming axes YAML file (default: built-in axes)")
	f.StringVar(&opts.libName, "lib", "ic", "native library name for the link attribute")
	f.StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	f.BoolVar(&opts.strict, "strict", false, "fail when a pointer parameter's role had to be guessed")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	f.BoolVar(&opts.printSchema, "print-axes-schema", false, "print the JSON schema of the axes file and exit")

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run executes one generation. The output is written only once it is
// complete, so a failed run never leaves partial text behind.
func run(mode generator.Mode, opts options, stdout io.Writer, log *slog.Logger) error {
	axes, err := loadAxes(opts.axes)
	if err != nil {
		return err
	}

	table, err := naming.NewTable(axes)
	if err != nil {
		return fmt.Errorf("naming axes: %w", err)
	}

	headers, err := loadHeaders(opts)
	if err != nil {
		return err
	}
	log.Debug("catalogue loaded", "headers", len(headers), "source", source(opts))

	gen := generator.New(table, headers,
		generator.WithLibName(opts.libName),
		generator.WithStrict(opts.strict),
		generator.WithLogger(log),
	)

	code, err := gen.Generate(mode)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = io.WriteString(stdout, code)
		return err
	}

	if err := os.WriteFile(opts.output, []byte(code), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.output, err)
	}
	log.Info("generated", "mode", string(mode), "path", opts.output, "lines", strings.Count(code, "\n"))

	return nil
}

func loadAxes(path string) (*naming.Axes, error) {
	if path == "" {
		return naming.DefaultAxes()
	}
	return naming.LoadAxesFile(path)
}

func loadHeaders(opts options) ([]*parser.Header, error) {
	if opts.headers == "" {
		return catalogue.Builtin()
	}
	return catalogue.Dir(opts.headers, opts.pattern)
}

func source(opts options) string {
	if opts.headers == "" {
		return "built-in"
	}
	return opts.headers
}
