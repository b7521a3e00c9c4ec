// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"aize/internal/ast"
	"aize/internal/config"
	"aize/internal/errors"
	"aize/internal/linkage"
	"aize/internal/manifest"
	"aize/internal/parser"
	"aize/internal/repl"
	"aize/internal/semantic"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

type options struct {
	config    string
	strict    bool
	verbosity int
	manifest  string
	linkage   string
	printAST  bool
	repl      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "", "path to aize.toml (default: next to the entry file)")
	flag.BoolVar(&opts.strict, "strict", false, "check argument, assignment and return types")
	flag.IntVar(&opts.verbosity, "v", -1, "log verbosity (overrides the config file)")
	flag.StringVar(&opts.manifest, "manifest", "", "write the YAML symbol manifest to this path")
	flag.StringVar(&opts.linkage, "linkage", "", "write the LLVM declaration skeleton to this path")
	flag.BoolVar(&opts.printAST, "ast", false, "print the annotated program")
	flag.BoolVar(&opts.repl, "repl", false, "check declarations interactively")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: aize [flags] [file.aize]")
		flag.PrintDefaults()
	}
	flag.Parse()

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	cfg, err := setup(opts, flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if opts.repl {
		fmt.Println("Aize declaration checker. Enter one declaration per line.")
		repl.Start(os.Stdin, os.Stdout, cfg.Strict)
		return
	}

	if !run(cfg, opts.printAST) {
		os.Exit(1)
	}
}

// setup loads the configuration and configures logging from it.
func setup(opts options, entry string) (*config.Config, error) {
	cfg, err := loadConfig(opts, entry)
	if err != nil {
		return nil, err
	}
	commonlog.Configure(cfg.Log.Verbosity, nil)
	return cfg, nil
}

// loadConfig merges the project file with the command line. An explicit
// entry argument wins over the configured entry.
func loadConfig(opts options, entry string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case opts.config != "":
		cfg, err = config.Load(opts.config)
	case entry != "":
		cfg, err = config.Find(filepath.Dir(entry))
	default:
		cfg, err = config.Find(".")
	}
	if err != nil {
		return nil, err
	}

	if entry != "" {
		abs, err := filepath.Abs(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", entry, err)
		}
		cfg.Entry = abs
	}
	if opts.strict {
		cfg.Strict = true
	}
	if opts.verbosity >= 0 {
		cfg.Log.Verbosity = opts.verbosity
	}
	if opts.manifest != "" {
		cfg.Output.Manifest, _ = filepath.Abs(opts.manifest)
	}
	if opts.linkage != "" {
		cfg.Output.Linkage, _ = filepath.Abs(opts.linkage)
	}
	return cfg, cfg.Validate()
}

func run(cfg *config.Config, printAST bool) bool {
	startTime := time.Now()
	entry := cfg.EntryPath()

	program, err := parser.LoadProgram(entry)
	if err != nil {
		report(err)
		color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
		return false
	}

	info, err := semantic.NewAnalyzer(semantic.WithStrictTyping(cfg.Strict)).Analyze(program)
	if err != nil {
		report(err)
		color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
		return false
	}

	if err := writeOutputs(cfg, program, info); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}

	if printAST {
		fmt.Println(program.String())
	}
	color.Green("Successfully analyzed %s (%d files) in %s", entry, len(program.Files), formatDuration(time.Since(startTime)))
	return true
}

// report prints a compiler error against the source of the file it points
// into.
func report(err error) {
	ce, ok := errors.As(err)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	var source []byte
	if ce.Position.Filename != "" {
		source, _ = os.ReadFile(ce.Position.Filename)
	}
	reporter := errors.NewErrorReporter(ce.Position.Filename, string(source))
	fmt.Print(reporter.FormatError(ce))
}

func writeOutputs(cfg *config.Config, program *ast.Program, info *semantic.Info) error {
	log := commonlog.GetLogger("aize.cli")

	if path := cfg.Resolve(cfg.Output.Manifest); path != "" {
		m, err := manifest.Build(program, info)
		if err != nil {
			return err
		}
		data, err := manifest.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to encode manifest: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
		log.Infof("wrote manifest %s", path)
	}

	if path := cfg.Resolve(cfg.Output.Linkage); path != "" {
		module, err := linkage.Build(program, info)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(module.String()), 0o644); err != nil {
			return fmt.Errorf("failed to write linkage skeleton: %w", err)
		}
		log.Infof("wrote linkage skeleton %s", path)
	}
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
