package repl_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"minilang/internal/repl"
	"minilang/internal/runner"
	"minilang/pkg/color"

	"github.com/google/go-cmp/cmp"
)

func init() {
	color.EnableColor(false)
}

// script replays fixed lines, then reports end of input.
type script struct {
	lines   []string
	prompts []string
}

func (s *script) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestReadChunk(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"complete line", []string{"var x = 1;"}, "var x = 1;"},
		{"semicolon supplied", []string{"print(1)"}, "print(1);"},
		{"multi-line block", []string{"func f() {", "  return 1;", "}"}, "func f() {\n  return 1;\n}"},
		{"command", []string{":help"}, ":help"},
		{"blank line gives up", []string{"func f() {", ""}, "func f() {\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := repl.ReadChunk(&script{lines: tt.lines})
			if !ok {
				t.Fatal("unexpected end of input")
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestReadChunkPrompts(t *testing.T) {
	s := &script{lines: []string{"if (true) {", "}"}}
	repl.ReadChunk(s)

	if diff := cmp.Diff([]string{"minilang> ", "      ... "}, s.prompts); diff != "" {
		t.Errorf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestSession(t *testing.T) {
	var out, diag bytes.Buffer
	r := &runner.Runner{Out: &out, Err: &diag}
	session, err := repl.New(r, &out)
	if err != nil {
		t.Fatal(err)
	}

	var history []string
	lines := []string{
		"var x = 40",
		"x + 2",
		`"a" + "b"`,
		"print(x)",
		"y",
		":env",
		":reset",
		"x",
		":quit",
		"print(\"never\");",
	}
	if err := session.Loop(&script{lines: lines}, func(s string) { history = append(history, s) }); err != nil {
		t.Fatal(err)
	}

	wantOut := "42\n\"ab\"\n40\nx\nsession reset\n"
	if out.String() != wantOut {
		t.Errorf("expected output %q, got %q", wantOut, out.String())
	}

	wantDiag := "Runtime Error: Line 1: Undefined variable: y\nRuntime Error: Line 1: Undefined variable: x\n"
	if diag.String() != wantDiag {
		t.Errorf("expected diagnostics %q, got %q", wantDiag, diag.String())
	}

	if len(history) != 9 {
		t.Errorf("expected 9 history entries, got %d: %v", len(history), history)
	}
}

func TestLoadCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.ml")
	if err := os.WriteFile(path, []byte("func sq(n) { return n * n; }"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	session, err := repl.New(&runner.Runner{Out: &out, Err: &out}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if err := session.Loop(&script{lines: []string{":load " + path, "sq(9)"}}, nil); err != nil {
		t.Fatal(err)
	}

	if out.String() != "81\n\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}
