package parser_test

import (
	"minilang/pkg/ast"
	"minilang/pkg/color"
	"minilang/pkg/lexer"
	"minilang/pkg/parser"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func init() {
	color.EnableColor(false)
}

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := parser.Parse(src)
	if len(errs) > 0 {
		t.Fatalf("unexpected syntax errors for %q:\n%s", src, strings.Join(errs, "\n"))
	}
	return prog
}

func firstExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	prog := parseOK(t, src)
	stmt, ok := prog.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected expression statement, got %T", prog.Stmts[0])
	}
	return stmt.X
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3;", "(* (+ 1 2) 3)"},
		{"a - b - c;", "(- (- a b) c)"},
		{"-a * b;", "(* (- a) b)"},
		{"!a == b;", "(== (! a) b)"},
		{"not a and b or c;", "(|| (&& (! a) b) c)"},
		{"a < b == c >= d;", "(== (< a b) (>= c d))"},
		{"x = y = 3;", "(= x (= y 3))"},
		{"a.b.c(1)[2];", "([] (call (. (. a b) c) 1) 2)"},
		{"10 % 3 / 2.5;", "(/ (% 10 3) 2.5)"},
		{`[1, "two", nil, true];`, `[1 "two" nil true]`},
		{`x = {"a": 1, "b": [2]};`, `(= x {"a":1 "b":[2]})`},
		{"super.get() + 1;", "(+ (call super.get) 1)"},
		{"this.x = 5;", "(= (. this x) 5)"},
		{"int(x) + float(y);", "(+ (call int x) (call float y))"},
		{"1e3;", "1000"},
	}

	for _, tt := range tests {
		got := ast.String(firstExpr(t, tt.input))
		if got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.input, tt.want, got)
		}
	}
}

func TestLiteralKinds(t *testing.T) {
	if _, ok := firstExpr(t, "42;").(*ast.IntLit); !ok {
		t.Error("42 should be an integer literal")
	}
	if _, ok := firstExpr(t, "4.0;").(*ast.FloatLit); !ok {
		t.Error("4.0 should be a float literal")
	}
	if _, ok := firstExpr(t, "2e2;").(*ast.FloatLit); !ok {
		t.Error("2e2 should be a float literal")
	}
}

func TestDeclarations(t *testing.T) {
	prog := parseOK(t, `
var a;
int b = 1;
float c;
func add(int x, y) { return x + y; }
class A { init(x) { this.x = x; } func get() { return this.x; } }
class B extends A { get() { return super.get() + 1; } }
`)

	if len(prog.Stmts) != 6 {
		t.Fatalf("expected 6 statements, got %d", len(prog.Stmts))
	}

	a := prog.Stmts[0].(*ast.VarDecl)
	if a.Type != ast.TypeNone || a.Init != nil {
		t.Errorf("var a: unexpected %+v", a)
	}
	b := prog.Stmts[1].(*ast.VarDecl)
	if b.Type != ast.TypeInt || b.Init == nil {
		t.Errorf("int b: unexpected %+v", b)
	}
	if c := prog.Stmts[2].(*ast.VarDecl); c.Type != ast.TypeFloat {
		t.Errorf("float c: unexpected type %s", c.Type)
	}

	fn := prog.Stmts[3].(*ast.Func)
	wantParams := []ast.Param{{Name: "x", Type: ast.TypeInt}, {Name: "y", Type: ast.TypeNone}}
	if diff := cmp.Diff(wantParams, fn.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}

	classA := prog.Stmts[4].(*ast.Class)
	if classA.Superclass != nil || len(classA.Methods) != 2 {
		t.Errorf("class A: unexpected %+v", classA)
	}
	classB := prog.Stmts[5].(*ast.Class)
	if classB.Superclass == nil || classB.Superclass.Name != "A" {
		t.Errorf("class B: expected superclass A")
	}
	if classB.Line() != 7 {
		t.Errorf("class B: expected line 7, got %d", classB.Line())
	}
}

func TestTypeKeywordCallIsExpression(t *testing.T) {
	prog := parseOK(t, `int("5"); dict(); string s = str(1);`)

	if _, ok := prog.Stmts[0].(*ast.ExprStmt); !ok {
		t.Errorf("int(...) should be an expression statement, got %T", prog.Stmts[0])
	}
	if _, ok := prog.Stmts[1].(*ast.ExprStmt); !ok {
		t.Errorf("dict() should be an expression statement, got %T", prog.Stmts[1])
	}
	if decl, ok := prog.Stmts[2].(*ast.VarDecl); !ok || decl.Type != ast.TypeString {
		t.Errorf("string s should be a typed declaration, got %T", prog.Stmts[2])
	}
}

func TestLoops(t *testing.T) {
	prog := parseOK(t, `
for (var i = 0; i < 3; i = i + 1) { continue; }
for (;;) { break; }
for (var x : xs) print(x);
for (int n : [1, 2]) {}
while (true) ;
`)

	loop := prog.Stmts[0].(*ast.For)
	if loop.Init == nil || loop.Cond == nil || loop.Incr == nil {
		t.Errorf("expected all for clauses, got %+v", loop)
	}

	empty := prog.Stmts[1].(*ast.For)
	if empty.Init != nil || empty.Cond != nil || empty.Incr != nil {
		t.Errorf("expected empty for clauses, got %+v", empty)
	}

	each := prog.Stmts[2].(*ast.ForEach)
	if each.Var != "x" || each.Type != ast.TypeNone {
		t.Errorf("unexpected foreach %+v", each)
	}

	typed := prog.Stmts[3].(*ast.ForEach)
	if typed.Type != ast.TypeInt {
		t.Errorf("expected typed foreach, got %s", typed.Type)
	}

	if w := prog.Stmts[4].(*ast.While); w.Body != nil {
		t.Errorf("expected empty while body, got %T", w.Body)
	}
}

func TestTryThrow(t *testing.T) {
	prog := parseOK(t, `try { throw "boom"; } catch (e) { print(e); }`)

	try := prog.Stmts[0].(*ast.Try)
	if try.Name != "e" {
		t.Errorf("expected catch variable e, got %s", try.Name)
	}
	if _, ok := try.Body.Stmts[0].(*ast.Throw); !ok {
		t.Errorf("expected throw in try body, got %T", try.Body.Stmts[0])
	}
	if len(try.Handler.Stmts) != 1 {
		t.Errorf("expected one handler statement, got %d", len(try.Handler.Stmts))
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"var x = 1", "Missing semicolon at Line: 1, Column 10"},
		{"print(1;", "Missing closing parenthesis at Line: 1, Column 8"},
		{"var = 3;", "Missing identifier at Line: 1, Column 5"},
		{"if () {}", "Empty condition at Line: 1, Column 5"},
		{"1 = 2;", "Invalid assignment target at Line: 1, Column 3"},
		{"x = ;", "Missing expression at Line: 1, Column 5"},
		{"var if = 1;", "Cannot use reserved keyword as identifier at Line: 1, Column 5"},
		{"x = {1: 2};", "Expected string literal as dictionary key at Line: 1, Column 6"},
		{"x = @;", "Unexpected character '@' at Line: 1, Column 5"},
		{"class A { 1 }", "Expected method declaration at Line: 1, Column 11"},
		{"x = 99999999999999999999;", "Integer literal out of range at Line: 1, Column 5"},
	}

	for _, tt := range tests {
		_, errs := parser.Parse(tt.input)
		if len(errs) == 0 {
			t.Errorf("%q: expected an error", tt.input)
			continue
		}
		if errs[0] != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.want, errs[0])
		}
	}
}

func TestErrorRecoveryKeepsParsing(t *testing.T) {
	prog, errs := parser.Parse(`
var a = ;
var b = 2;
print(b;
var c = 3;
`)

	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}

	var names []string
	for _, s := range prog.Stmts {
		if decl, ok := s.(*ast.VarDecl); ok {
			names = append(names, decl.Name)
		}
	}
	if diff := cmp.Diff([]string{"b", "c"}, names); diff != "" {
		t.Errorf("recovered declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestIncompleteInput(t *testing.T) {
	tests := []struct {
		input      string
		incomplete bool
	}{
		{"func f() {", true},
		{"var s = \"abc", true},
		{"/* open", true},
		{"print(1,", true},
		{"var x = 1", true},
		{"var x = ;", false},
		{"} var y = 1;", false},
		{"var z = 1;", false},
	}

	for _, tt := range tests {
		p := parser.NewParser(lexer.NewLexer(tt.input))
		p.Parse()
		if p.Incomplete() != tt.incomplete {
			t.Errorf("%q: expected incomplete=%v, errors %v", tt.input, tt.incomplete, p.Errors())
		}
	}
}
