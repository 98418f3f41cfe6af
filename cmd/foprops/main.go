/*
Command foprops resolves the properties of an XSL-FO document and prints
the formatting tree with the resolved values.

	foprops [--property name]... [--defaults file.css] [--config file.nt]
	        [--trace level] [--dot] file.fo

Exit status is 0 on success, 1 if no input file is given, 3 if the input
file cannot be opened, 5 if properties could not be resolved and 8 for
any other failure.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/file"
	"github.com/npillmayer/fo/fodbg"
	"github.com/npillmayer/fo/fotree"
	"github.com/npillmayer/fo/property"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	cli "github.com/urfave/cli/v3"
)

// Exit status codes.
const (
	exitOK         = 0
	exitNoInput    = 1
	exitMissing    = 3
	exitUnresolved = 5
	exitFailure    = 8
)

// statusError carries the exit status for an error.
type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func withStatus(code int, err error) error {
	return &statusError{code: code, err: err}
}

// options are the settings of a single run.
type options struct {
	input      string
	properties []string
	defaults   string // path of a CSS file
	dot        bool
	conf       schuko.Configuration
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app := &cli.Command{
		Name:            "foprops",
		Usage:           "resolve the properties of an XSL-FO document",
		ArgsUsage:       "FILE",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "property", Aliases: []string{"p"},
				Usage: "print property `NAME` (repeatable); default are explicit properties"},
			&cli.StringFlag{Name: "defaults", Aliases: []string{"d"},
				Usage: "load initial values from CSS `FILE`"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"},
				Usage: "load configuration from `FILE` (NestedText)"},
			&cli.StringFlag{Name: "trace", Aliases: []string{"t"}, Value: "error",
				Usage: "trace `LEVEL` (error, info, debug)"},
			&cli.BoolFlag{Name: "dot", Usage: "output a GraphViz diagram instead of text"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupTracing(cmd.String("trace"))
			if cmd.NArg() == 0 {
				return withStatus(exitNoInput, errors.New("no input file given"))
			}
			conf, err := loadConfig(cmd.String("config"))
			if err != nil {
				return withStatus(exitFailure, err)
			}
			return run(os.Stdout, options{
				input:      cmd.Args().First(),
				properties: cmd.StringSlice("property"),
				defaults:   cmd.String("defaults"),
				dot:        cmd.Bool("dot"),
				conf:       conf,
			})
		},
	}
	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "foprops: %v\n", err)
		var serr *statusError
		if errors.As(err, &serr) {
			os.Exit(serr.code)
		}
		os.Exit(exitFailure)
	}
	os.Exit(exitOK)
}

func setupTracing(level string) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(logrusadapter.GetAdapter()))
	tracing.Select("fo").SetTraceLevel(tracing.TraceLevelFromString(level))
}

// loadConfig reads a NestedText configuration file, if given.
func loadConfig(path string) (schuko.Configuration, error) {
	conf := koanfadapter.New(koanf.New("."), "", nil)
	if path == "" {
		return conf, nil
	}
	if err := conf.Koanf().Load(file.Provider(path), koanfadapter.Parser()); err != nil {
		return nil, fmt.Errorf("loading configuration %q: %w", path, err)
	}
	return conf, nil
}

// run resolves the properties of the input document and writes the
// resulting tree to w.
func run(w io.Writer, opts options) error {
	cfg := property.ConfigFrom(opts.conf)
	regopts := []property.Option{property.WithConfig(cfg)}
	if opts.defaults != "" {
		css, err := os.ReadFile(opts.defaults)
		if err != nil {
			return withStatus(exitMissing, err)
		}
		overrides, err := property.DefaultsFromCSS(string(css))
		if err != nil {
			return withStatus(exitFailure, err)
		}
		regopts = append(regopts, property.WithDefaultOverrides(overrides))
	}
	reg, err := property.NewRegistry(regopts...)
	if err != nil {
		return withStatus(exitFailure, err)
	}
	f, err := os.Open(opts.input)
	if err != nil {
		return withStatus(exitMissing, err)
	}
	defer f.Close()
	root, err := fotree.Parse(f, cfg)
	if err != nil {
		return withStatus(exitFailure, err)
	}
	for _, name := range opts.properties {
		if _, ok := reg.Maker(name); !ok {
			return withStatus(exitUnresolved, fmt.Errorf("%w: %s", property.ErrUnknownProperty, name))
		}
	}
	if err = fotree.ResolveAll(root, reg, opts.properties, cfg.Workers); err != nil {
		return withStatus(exitUnresolved, err)
	}
	if opts.dot {
		return fodbg.ToGraphViz(w, root, reg, opts.properties)
	}
	return fodbg.Dump(w, root, reg, opts.properties)
}
