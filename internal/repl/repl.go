// Package repl implements the interactive read-eval-print loop.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"minilang/internal/runner"
	"minilang/pkg/ast"
	"minilang/pkg/builtins"
	"minilang/pkg/color"
	"minilang/pkg/interpreter"
	"minilang/pkg/lexer"
	"minilang/pkg/parser"

	"github.com/charmbracelet/log"
	"github.com/peterh/liner"
)

const (
	promptMain = "minilang> "
	promptCont = "      ... "

	banner = "MiniLang REPL. Type :help for commands, :quit to exit."
)

var commands = map[string]string{
	":help":  "show this message",
	":quit":  "leave the REPL",
	":reset": "discard all definitions",
	":load":  ":load <file> runs a script in the current session",
	":env":   "list global names defined in this session",
}

// Prompter reads one line of input. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

type REPL struct {
	runner *runner.Runner
	it     *interpreter.Interpreter
	out    io.Writer
}

func New(r *runner.Runner, out io.Writer) (*REPL, error) {
	repl := &REPL{runner: r, out: out}
	if err := repl.reset(); err != nil {
		return nil, err
	}
	return repl, nil
}

func (r *REPL) reset() error {
	it, err := r.runner.NewInterpreter()
	if err != nil {
		return err
	}
	r.it = it
	return nil
}

// Run starts an interactive session on the terminal, keeping line history
// in historyPath.
func (r *REPL) Run(historyPath string) error {
	fmt.Fprintln(r.out, banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetMultiLineMode(true)

	if f, err := os.Open(historyPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		f, err := os.Create(historyPath)
		if err != nil {
			log.Warn("could not save history", "file", historyPath, "error", err)
			return
		}
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	return r.Loop(ln, func(entry string) {
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
	})
}

// Loop reads chunks from p until end of input or :quit. Each accepted
// chunk is passed to record.
func (r *REPL) Loop(p Prompter, record func(string)) error {
	for {
		src, ok := ReadChunk(p)
		if !ok {
			fmt.Fprintln(r.out)
			return nil
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if record != nil {
			record(trimmed)
		}

		if strings.HasPrefix(trimmed, ":") {
			quit, err := r.Command(trimmed)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			continue
		}

		r.Eval(src)
	}
}

// Command runs a REPL command. It reports whether the session should end.
func (r *REPL) Command(line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":exit":
		return true, nil

	case ":help":
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(r.out, "  %-7s %s\n", name, commands[name])
		}

	case ":reset":
		if err := r.reset(); err != nil {
			return false, err
		}
		fmt.Fprintln(r.out, color.GrayText("session reset"))

	case ":load":
		if len(fields) != 2 {
			fmt.Fprintln(r.out, color.Error("usage: :load <file>"))
			break
		}
		if err := r.runner.ExecFile(r.it, fields[1]); err != nil && !runner.IsReported(err) {
			fmt.Fprintln(r.out, color.Error(err.Error()))
		}

	case ":env":
		fmt.Fprintln(r.out, strings.Join(r.userGlobals(), " "))

	default:
		fmt.Fprintln(r.out, color.Error(fmt.Sprintf("unknown command %s. Type :help for a list.", fields[0])))
	}
	return false, nil
}

// Eval runs one chunk of source. When the chunk ends in a bare expression
// its value is echoed unless it is nil.
func (r *REPL) Eval(src string) {
	prog, errs := parser.Parse(src)
	if len(errs) > 0 {
		r.runner.ReportSyntaxErrors(errs)
		return
	}

	var echo ast.Expr
	if n := len(prog.Stmts); n > 0 {
		if stmt, ok := prog.Stmts[n-1].(*ast.ExprStmt); ok && !isAssignOrPrint(stmt.X) {
			echo = stmt.X
			prog.Stmts = prog.Stmts[:n-1]
		}
	}

	if err := r.it.Run(prog); err != nil {
		r.runner.ReportError(err)
		return
	}
	if echo == nil {
		return
	}

	v, err := r.it.Eval(echo)
	if err != nil {
		r.runner.ReportError(err)
		return
	}
	if v.IsNil() {
		return
	}
	s, err := r.it.ToString(v)
	if err != nil {
		r.runner.ReportError(err)
		return
	}
	if v.IsString() {
		s = `"` + s + `"`
	}
	fmt.Fprintln(r.out, color.CyanText(s))
}

func (r *REPL) userGlobals() []string {
	native := make(map[string]bool, len(builtins.Names))
	for _, n := range builtins.Names {
		native[n] = true
	}

	var names []string
	for _, n := range r.it.Globals().Names() {
		if !native[n] {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

func isAssignOrPrint(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Assign:
		return true
	case *ast.Call:
		v, ok := n.Callee.(*ast.Variable)
		return ok && v.Name == "print"
	}
	return false
}

// ReadChunk prompts until the buffered lines form a complete program. A
// missing final semicolon is supplied. It reports false at end of input.
func ReadChunk(p Prompter) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := p.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}

		complete, incomplete := probe(src)
		if complete {
			return src, true
		}
		if ok, _ := probe(src + ";"); ok {
			return src + ";", true
		}
		if incomplete && strings.TrimSpace(line) != "" {
			continue
		}
		return src, true
	}
}

// probe parses src and reports whether it is a complete program, and if
// not, whether more input could complete it.
func probe(src string) (complete, incomplete bool) {
	p := parser.NewParser(lexer.NewLexer(src))
	p.Parse()
	if len(p.Errors()) == 0 {
		return true, false
	}
	return false, p.Incomplete()
}
