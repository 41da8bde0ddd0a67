package interpreter_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"minilang/pkg/builtins"
	"minilang/pkg/color"
	"minilang/pkg/interpreter"
	"minilang/pkg/parser"
)

func init() {
	color.EnableColor(false)
}

func run(t *testing.T, src string, opts ...interpreter.Option) (string, error) {
	t.Helper()
	prog, errs := parser.Parse(src)
	if len(errs) > 0 {
		t.Fatalf("syntax errors in %q:\n%s", src, strings.Join(errs, "\n"))
	}

	var out bytes.Buffer
	it := interpreter.NewInterpreter(append([]interpreter.Option{interpreter.WithWriter(&out)}, opts...)...)
	builtins.Install(it)
	err := it.Run(prog)
	return out.String(), err
}

func TestPrograms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"array concat copies", `var a = [1, 2]; var b = a + [3]; print(a, b);`, "[1, 2] [1, 2, 3]\n"},
		{"float slot widens int", `float f = 1; print(f, type(f));`, "1 float\n"},
		{"int division yields float", `print(5 / 2, 5 % 2, 7.5 % 2);`, "2.5 1 1.5\n"},
		{"float formatting", `print(0.1 + 0.2, 1e6, 3.0 * 2);`, "0.3 1e+06 6\n"},
		{"logical yields bool", `print(1 && "x", nil || 0);`, "true false\n"},
		{
			"super through inherited init",
			`class A { init(x) { this.x = x; } get() { return this.x; } }
			 class B extends A { get() { return super.get() + 1; } }
			 print(B(5).get());`,
			"6\n",
		},
		{
			"super across three levels",
			`class A { name() { return "A"; } }
			 class B extends A { name() { return "B" + super.name(); } }
			 class C extends B { name() { return "C" + super.name(); } }
			 print(C().name());`,
			"CBA\n",
		},
		{
			"continue still runs increment",
			`for (var i = 0; i < 3; i = i + 1) { if (i == 1) continue; print(i); }`,
			"0\n2\n",
		},
		{
			"break leaves while",
			`var n = 0; while (true) { n = n + 1; if (n > 2) break; } print(n);`,
			"3\n",
		},
		{
			"closures keep their frame",
			`func makeCounter() { var c = 0; func inc() { c = c + 1; return c; } return inc; }
			 var k = makeCounter(); k(); print(k());`,
			"2\n",
		},
		{
			"user toString",
			`class P { init(n) { this.n = n; } toString() { return "P(" + str(this.n) + ")"; } }
			 print(P(3), [P(1)]);`,
			"P(3) [P(1)]\n",
		},
		{"instance without toString", `class Q {} print(Q(), Q);`, "<Q instance> <class Q>\n"},
		{"dict keys print sorted", `var d = {"b": 2, "a": "x"}; print(d, keys(d));`, `{"a": x, "b": 2} [a, b]` + "\n"},
		{"plain object", `var o = Object(); o.x = 1; print(o);`, `<object>{"x": 1}` + "\n"},
		{
			"string index assignment rebinds",
			`var s = "abc"; var t = s; s[1] = "X"; print(s, t);`,
			"aXc abc\n",
		},
		{
			"prototype chain",
			`var base = Object(); base.greet = "hi"; var o = Object(base);
			 print(o.greet, has(o, "greet"), dir(o));`,
			"hi false [greet]\n",
		},
		{"foreach over dict", `for (var k : {"b": 1, "a": 2}) print(k);`, "a\nb\n"},
		{"foreach over string", `for (string c : "hi") print(c);`, "h\ni\n"},
		{
			"foreach iterates a snapshot",
			`var xs = [1, 2]; for (var x : xs) append(xs, x); print(xs);`,
			"[1, 2, 1, 2]\n",
		},
		{
			"explicit init returns instance",
			`class C { init() { this.v = 1; } } var c = C(); print(c.init() == c);`,
			"true\n",
		},
		{
			"catch runtime error message",
			`try { var x = 1 / 0; } catch (e) { print(e); }`,
			"Division by zero.\n",
		},
		{
			"catch value thrown from a call",
			`func f() { throw {"code": 1}; } try { f(); } catch (e) { print(e["code"]); }`,
			"1\n",
		},
		{
			"throw inside loop inside try",
			`try { for (var i = 0; i < 5; i = i + 1) { if (i == 2) throw i; } } catch (e) { print("caught", e); }`,
			"caught 2\n",
		},
		{
			"deepcopy keeps cycles",
			`var a = [1]; append(a, a); var b = deepcopy(a); b[0] = 9; print(a[0], b[1][0]);`,
			"1 9\n",
		},
		{
			"deepcopy shares methods",
			`class V { init(x) { this.x = x; } get() { return this.x; } }
			 var v = V(1); var w = deepcopy(v); w.x = 2; print(v.get(), w.get(), type(w));`,
			"1 2 V\n",
		},
		{
			"structural equality",
			`print([1, {"a": 2.0}] == [1, {"a": 2}], Object() == Object(), "a" != "b");`,
			"true true true\n",
		},
		{
			"map filter range slice pop",
			`func sq(x) { return x * x; }
			 var a = range(5); pop(a);
			 print(map(sq, [1, 2, 3]), filter(sq, [0, 1]), a, slice(a, 1, 3), range(5, 0, -2));`,
			"[1, 4, 9] [1] [0, 1, 2, 3] [1, 2] [5, 3, 1]\n",
		},
		{
			"conversions",
			`print(int("42") + 1, int(3.9), float("2.5"), bool(""), str(nil), type(print));`,
			"43 3 2.5 false nil function\n",
		},
		{
			"typed parameter accepts int for float",
			`func half(float x) { return x / 2; } print(half(3));`,
			"1.5\n",
		},
		{"append to string", `var s = "ab"; var t = append(s, "c"); print(s, t);`, "ab abc\n"},
		{"len", `print(len("abc"), len([1]), len({"a": 1}), len(Object()));`, "3 1 1 0\n"},
		{
			"deepcopy keeps dict cycles",
			`var d = {"k": 1}; var a = [d]; d["a"] = a; var c = deepcopy(d); print(c["a"][0] == c); c["k"] = 2; print(d["k"], c["a"][0]["k"]);`,
			"true\n1 2\n",
		},
		{
			"for closures share the loop frame",
			`var fs = []; for (var i = 0; i < 3; i = i + 1) { func g() { return i; } append(fs, g); } print(fs[0](), fs[2]());`,
			"3 3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"print(1 / 0);", "Line 1: Division by zero."},
		{"print(1 % 0);", "Line 1: Modulo by zero."},
		{"print(1.0 / 0);", "Line 1: Division by zero."},
		{"print(1.5 % 0.0);", "Line 1: Modulo by zero."},
		{"print(y);", "Line 1: Undefined variable: y"},
		{"y = 1;", "Line 1: Undefined variable: y"},
		{"int x = 1;\nx = \"s\";", "Line 2: Type mismatch on assignment to static variable 'x'."},
		{`int x = "s";`, "Line 1: Initializer type mismatch for variable 'x'."},
		{"func f(int a) {}\nf(1.5);", "Line 2: Argument type mismatch for parameter 'a'."},
		{"func f(a) {}\nf();", "Line 2: Expected 1 arguments but got 0."},
		{"class E {} E(1);", "Line 1: Class E has no 'init' method and cannot be called with arguments."},
		{"var n = 1; n();", "Line 1: Can only call functions and other callables."},
		{"return 1;", "Line 1: Cannot return from top-level code."},
		{"break;", "Line 1: Cannot 'break' outside of a loop."},
		{"func f() { break; }\nwhile (true) { f(); }", "Line 1: Cannot 'break' from a function."},
		{"print(this);", "Line 1: Cannot use 'this' outside of a class method."},
		{"class A { m() { return super.m(); } } A().m();", "Line 1: Cannot use 'super' in a class with no superclass."},
		{
			"class A { m() {} }\nclass B extends A { m() { class C { n() { return super.m(); } } return C().n(); } }\nB().m();",
			"Line 2: Cannot use 'super' in a class with no superclass.",
		},
		{"var B = 1; class A extends B {}", "Line 1: Superclass must be a class."},
		{"var a = [1]; print(a[1]);", "Line 1: Array index out of bounds"},
		{`var a = [1]; print(a["x"]);`, "Line 1: Array index must be an integer."},
		{"var a = [1]; a[3] = 1;", "Line 1: Array index out of bounds for assignment."},
		{`var s = "ab"; s[0] = "xy";`, "Line 1: Can only assign a single-character string to a string index."},
		{"var o = Object(); print(o.missing);", "Line 1: Undefined property 'missing'."},
		{"var n = 1; n.x = 2;", "Line 1: Can only set properties on objects or dicts."},
		{`print("a" - "b");`, "Line 1: Operator not applicable to strings."},
		{`print(1 + "a");`, "Line 1: Invalid operands for binary operator '+'."},
		{"for (var x : 5) {}", "Line 1: Value is not iterable. Can only iterate over arrays, strings and dicts."},
		{"for (int n : [1, \"x\"]) {}", "Line 1: Initializer type mismatch for variable 'n'."},
		{`assert(1 == 2, "math");`, "Line 1: Assertion failed. math"},
		{"pop([]);", "Line 1: pop from empty array."},
		{"range(1, 5, 0);", "Line 1: range() step cannot be zero."},
		{`int("x");`, "Line 1: Cannot convert string 'x' to int."},
	}

	for _, tt := range tests {
		_, err := run(t, tt.input)
		if err == nil {
			t.Errorf("%q: expected an error", tt.input)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.want, err.Error())
		}
	}
}

func TestUncaughtThrow(t *testing.T) {
	out, err := run(t, "print(\"before\");\nthrow \"boom\";\nprint(\"after\");")
	if out != "before\n" {
		t.Errorf("expected output to stop at the throw, got %q", out)
	}
	if !errors.Is(err, interpreter.ErrUncaught) {
		t.Fatalf("expected ErrUncaught, got %v", err)
	}

	var te *interpreter.ThrowError
	if !errors.As(err, &te) {
		t.Fatalf("expected *ThrowError, got %T", err)
	}
	if te.Value.Str != "boom" || te.Line != 2 {
		t.Errorf("unexpected thrown value %v on line %d", te.Value, te.Line)
	}
}

func TestStackOverflow(t *testing.T) {
	_, err := run(t, "func r(n) { return r(n + 1); }\nr(0);", interpreter.WithMaxDepth(50))
	if !errors.Is(err, interpreter.ErrStackOverflow) {
		t.Fatalf("expected stack overflow, got %v", err)
	}

	var re *interpreter.RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
	if len(re.Trace) != 50 {
		t.Errorf("expected 50 frames in trace, got %d", len(re.Trace))
	}
	if !strings.HasPrefix(re.StackTrace(), "  at r (line 1)") {
		t.Errorf("unexpected trace:\n%s", re.StackTrace())
	}
}

func TestStackOverflowIsCatchable(t *testing.T) {
	out, err := run(t, `
func r(n) { return r(n + 1); }
try { r(0); } catch (e) { print(e); }
print("still running");
`, interpreter.WithMaxDepth(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Stack overflow.\nstill running\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestGlobalsPersistAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	it := interpreter.NewInterpreter(interpreter.WithWriter(&out))
	builtins.Install(it)

	for _, src := range []string{"var x = 40;", "func add(n) { return x + n; }", "print(add(2));"} {
		prog, errs := parser.Parse(src)
		if len(errs) > 0 {
			t.Fatalf("syntax errors: %v", errs)
		}
		if err := it.Run(prog); err != nil {
			t.Fatalf("run %q: %v", src, err)
		}
	}

	if out.String() != "42\n" {
		t.Errorf("expected 42, got %q", out.String())
	}
}

func TestSuperRejectsPlainProperty(t *testing.T) {
	var out bytes.Buffer
	it := interpreter.NewInterpreter(interpreter.WithWriter(&out))
	builtins.Install(it)

	prog, _ := parser.Parse("class A {}\nclass B extends A { get() { return super.x; } }")
	if err := it.Run(prog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := it.Globals().Get("A")
	a.Fn.(*interpreter.Class).Prototype.Set("x", interpreter.IntValue(1))

	prog, _ = parser.Parse("B().get();")
	err := it.Run(prog)
	if err == nil {
		t.Fatal("expected an error")
	}
	if want := "Line 2: Property 'x' on superclass is not a function."; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestInputReadsLines(t *testing.T) {
	out, err := run(t, `var name = input("name? "); print("hi " + name);`,
		interpreter.WithReader(strings.NewReader("ada\n")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "name? hi ada\n" {
		t.Errorf("unexpected output %q", out)
	}
}
