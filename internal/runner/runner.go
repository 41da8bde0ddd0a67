package runner

import (
	"errors"
	"fmt"
	"io"
	"os"

	"minilang/internal/config"
	"minilang/pkg/builtins"
	"minilang/pkg/color"
	"minilang/pkg/interpreter"
	"minilang/pkg/parser"

	"github.com/charmbracelet/log"
)

var ErrSyntax = errors.New("syntax error")

type Runner struct {
	Help       bool   // Show help message
	Verbose    bool   // Debug logs and stack traces
	NoColor    bool   // Disable colored output
	ConfigPath string // Path to the YAML configuration
	Eval       string // Source passed with -e
	TestDir    string // Directory of golden scripts
	SourceFile string // Path to the source file

	MaxDepth int      // call depth limit, 0 for the interpreter default
	Prelude  []string // scripts run before the main program

	Out io.Writer // script output, stdout when nil
	Err io.Writer // diagnostics, stderr when nil
	In  io.Reader // input(), stdin when nil
}

// ApplyConfig merges file settings into the options. Flags already set win.
func (r *Runner) ApplyConfig(cfg *config.Config) {
	r.Verbose = r.Verbose || cfg.Verbose
	r.NoColor = r.NoColor || cfg.NoColor
	if r.MaxDepth == 0 {
		r.MaxDepth = cfg.MaxCallDepth
	}
	r.Prelude = append(r.Prelude, cfg.Prelude...)
}

func (r *Runner) stdout() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *Runner) stderr() io.Writer {
	if r.Err == nil {
		return os.Stderr
	}
	return r.Err
}

func (r *Runner) stdin() io.Reader {
	if r.In == nil {
		return os.Stdin
	}
	return r.In
}

// NewInterpreter builds an interpreter with the built-ins installed and
// the prelude scripts already run.
func (r *Runner) NewInterpreter() (*interpreter.Interpreter, error) {
	it := interpreter.NewInterpreter(
		interpreter.WithWriter(r.stdout()),
		interpreter.WithReader(r.stdin()),
		interpreter.WithMaxDepth(r.MaxDepth),
		interpreter.WithLogger(log.Default()),
	)
	builtins.Install(it)

	for _, path := range r.Prelude {
		if err := r.ExecFile(it, path); err != nil {
			return nil, fmt.Errorf("prelude %s: %w", path, err)
		}
	}
	return it, nil
}

// RunFile executes the script at path in a fresh interpreter.
func (r *Runner) RunFile(path string) error {
	log.Info("Running file", "file", path)

	it, err := r.NewInterpreter()
	if err != nil {
		return err
	}
	return r.ExecFile(it, path)
}

// RunSource executes src in a fresh interpreter.
func (r *Runner) RunSource(src string) error {
	it, err := r.NewInterpreter()
	if err != nil {
		return err
	}
	return r.Exec(it, src)
}

// ExecFile runs the script at path inside an existing interpreter.
func (r *Runner) ExecFile(it *interpreter.Interpreter, path string) error {
	input, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return r.Exec(it, string(input))
}

// Exec parses and runs src. Syntax errors and runtime errors are reported
// on the diagnostics writer and returned.
func (r *Runner) Exec(it *interpreter.Interpreter, src string) error {
	prog, syntaxErrors := parser.Parse(src)
	if len(syntaxErrors) > 0 {
		r.ReportSyntaxErrors(syntaxErrors)
		log.Debug("parsing failed", "errors", len(syntaxErrors))
		return fmt.Errorf("%w: parsing failed with %d errors", ErrSyntax, len(syntaxErrors))
	}

	if err := it.Run(prog); err != nil {
		r.ReportError(err)
		return err
	}
	return nil
}

func (r *Runner) ReportSyntaxErrors(errs []string) {
	w := r.stderr()
	fmt.Fprintln(w, color.BrightRedText("=== Syntax Errors ==="))
	for _, e := range errs {
		fmt.Fprintln(w, e)
	}
}

// ReportError prints a runtime failure, with the call trace in verbose mode.
func (r *Runner) ReportError(err error) {
	w := r.stderr()
	fmt.Fprintln(w, color.BrightRedText("Runtime Error: ")+err.Error())

	var re *interpreter.RuntimeError
	if r.Verbose && errors.As(err, &re) && len(re.Trace) > 0 {
		fmt.Fprint(w, color.GrayText(re.StackTrace()))
	}
}

// IsReported tells script failures, which Exec has already printed, from
// failures to read or set up the script.
func IsReported(err error) bool {
	var re *interpreter.RuntimeError
	return errors.Is(err, ErrSyntax) || errors.Is(err, interpreter.ErrUncaught) || errors.As(err, &re)
}
