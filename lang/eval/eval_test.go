package eval

import (
	"testing"

	"github.com/ardnew/monkey/lang/lexer"
	"github.com/ardnew/monkey/lang/parser"
)

// testEval parses and evaluates input in a fresh environment, failing the
// test on parse diagnostics. The result may be nil for valueless programs.
func testEval(t *testing.T, input string) Object {
	t.Helper()

	p := parser.New(lexer.New(input))

	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse diagnostics: %v", errs)
	}

	return New(NewEnvironment()).Eval(program)
}

func wantInteger(t *testing.T, obj Object, want int64) {
	t.Helper()

	result, ok := obj.(*Integer)
	if !ok {
		t.Fatalf("result is %T (%v), want *Integer", obj, obj)
	}

	if result.Value != want {
		t.Errorf("value = %d, want %d", result.Value, want)
	}
}

func wantBoolean(t *testing.T, obj Object, want bool) {
	t.Helper()

	result, ok := obj.(*Boolean)
	if !ok {
		t.Fatalf("result is %T (%v), want *Boolean", obj, obj)
	}

	if result.Value != want {
		t.Errorf("value = %v, want %v", result.Value, want)
	}
}

func wantError(t *testing.T, obj Object, message string) {
	t.Helper()

	result, ok := obj.(*Error)
	if !ok {
		t.Fatalf("result is %T (%v), want *Error", obj, obj)
	}

	if result.Message != message {
		t.Errorf("message = %q, want %q", result.Message, message)
	}
}

func TestEval_IntegerExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"5", 5},
		{"10", 10},
		{"-5", -5},
		{"-10", -10},
		{"5 + 5 + 5 + 5 - 10", 10},
		{"2 * 2 * 2 * 2 * 2", 32},
		{"-50 + 100 + -50", 0},
		{"5 * 2 + 10", 20},
		{"5 + 2 * 10", 25},
		{"20 + 2 * -10", 0},
		{"50 / 2 * 2 + 10", 60},
		{"2 * (5 + 10)", 30},
		{"3 * 3 * 3 + 10", 37},
		{"3 * (3 * 3) + 10", 37},
		{"(5 + 10 * 2 + 15 / 3) * 2 + -10", 50},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wantInteger(t, testEval(t, tt.input), tt.want)
		})
	}
}

func TestEval_BooleanExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"false", false},
		{"1 < 2", true},
		{"1 > 2", false},
		{"1 < 1", false},
		{"1 > 1", false},
		{"1 <= 1", true},
		{"2 <= 1", false},
		{"1 >= 1", true},
		{"1 >= 2", false},
		{"1 == 1", true},
		{"1 != 1", false},
		{"1 == 2", false},
		{"1 != 2", true},
		{"true == true", true},
		{"false == false", true},
		{"true == false", false},
		{"true != false", true},
		{"false != true", true},
		{"(1 < 2) == true", true},
		{"(1 < 2) == false", false},
		{"(1 > 2) == true", false},
		{"(1 > 2) == false", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wantBoolean(t, testEval(t, tt.input), tt.want)
		})
	}
}

func TestEval_BooleanSingletons(t *testing.T) {
	if obj := testEval(t, "1 < 2"); obj != True {
		t.Errorf("true result is %p, want the shared True instance", obj)
	}

	if obj := testEval(t, "1 > 2"); obj != False {
		t.Errorf("false result is %p, want the shared False instance", obj)
	}
}

func TestEval_NotOperator(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"!true", false},
		{"!false", true},
		{"!5", false},
		{"!!true", true},
		{"!!false", false},
		{"!!5", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wantBoolean(t, testEval(t, tt.input), tt.want)
		})
	}
}

func TestEval_IfElseExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  any // int64 value or nil for no value
	}{
		{"if (true) { 10 }", int64(10)},
		{"if (false) { 10 }", nil},
		{"if (1) { 10 }", int64(10)},
		{"if (1 < 2) { 10 }", int64(10)},
		{"if (1 > 2) { 10 }", nil},
		{"if (1 > 2) { 10 } else { 20 }", int64(20)},
		{"if (1 < 2) { 10 } else { 20 }", int64(10)},
		// Zero is not false: only false and null fail the condition.
		{"if (0) { 1 } else { 2 }", int64(1)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			obj := testEval(t, tt.input)

			switch want := tt.want.(type) {
			case int64:
				wantInteger(t, obj, want)

			default:
				if obj != nil {
					t.Errorf("result = %v (%T), want no value", obj, obj)
				}
			}
		})
	}
}

func TestEval_ReturnStatements(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"return 10;", 10},
		{"return 10; 9;", 10},
		{"return 2 * 5; 9;", 10},
		{"9; return 2 * 5; 9;", 10},
		{"if (10 > 1) { if (10 > 1) { return 10; } return 1; }", 10},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wantInteger(t, testEval(t, tt.input), tt.want)
		})
	}
}

func TestEval_LetStatements(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"let a = 5; a;", 5},
		{"let a = 5 * 5; a;", 25},
		{"let a = 5; let b = a; b;", 5},
		{"let a = 5; let b = a; let c = a + b + 5; c;", 15},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wantInteger(t, testEval(t, tt.input), tt.want)
		})
	}
}

func TestEval_ProgramValue(t *testing.T) {
	// The program's value is the value of its last statement, including
	// the absence of one: a trailing valueless statement clears it.
	tests := []struct {
		name  string
		input string
	}{
		{"trailing let", "5; let x = 1;"},
		{"trailing untaken if", "5; if (false) { 1 }"},
		{"empty program", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if obj := testEval(t, tt.input); obj != nil {
				t.Errorf("result = %v (%T), want no value", obj, obj)
			}
		})
	}
}

func TestEval_FunctionObject(t *testing.T) {
	obj := testEval(t, "fn(x) { x + 2; };")

	fn, ok := obj.(*Function)
	if !ok {
		t.Fatalf("result is %T (%v), want *Function", obj, obj)
	}

	if len(fn.Parameters) != 1 || fn.Parameters[0].Name != "x" {
		t.Errorf("parameters = %v, want [x]", fn.Parameters)
	}

	if got := fn.Body.String(); got != "(x + 2)" {
		t.Errorf("body = %q, want %q", got, "(x + 2)")
	}

	if got := fn.String(); got != "fn(x) { ... }" {
		t.Errorf("display form = %q, want %q", got, "fn(x) { ... }")
	}

	if fn.Env == nil {
		t.Error("captured environment is nil")
	}
}

func TestEval_FunctionApplication(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"let identity = fn(x) { x; }; identity(5);", 5},
		{"let identity = fn(x) { return x; }; identity(5);", 5},
		{"let double = fn(x) { x * 2; }; double(5);", 10},
		{"let add = fn(x, y) { x + y; }; add(5, 5);", 10},
		{"let add = fn(x, y) { x + y; }; add(5 + 5, add(5, 5));", 20},
		{"fn(x) { x; }(5)", 5},
		{"fn(a) { let f = fn(b) { a + b }; f(a); }(5)", 10},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wantInteger(t, testEval(t, tt.input), tt.want)
		})
	}
}

func TestEval_Closures(t *testing.T) {
	input := `
let newAdder = fn(x) { fn(y) { x + y }; };
let addTwo = newAdder(2);
addTwo(2);`

	wantInteger(t, testEval(t, input), 4)
}

func TestEval_ClosuresShareDefinitionEnvironment(t *testing.T) {
	// The function captures its definition environment by reference:
	// bindings added after the definition are visible at call time.
	input := `
let f = fn() { later; };
let later = 7;
f();`

	wantInteger(t, testEval(t, input), 7)
}

func TestEval_ErrorHandling(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5 + true;", "type mismatch: 5 + true"},
		{"5 + true; 5;", "type mismatch: 5 + true"},
		{"-true", "unknown operator: -true"},
		{"true + false;", "unknown operator: true + false"},
		{"true < false;", "unknown operator: true < false"},
		{"5; true + false; 5", "unknown operator: true + false"},
		{"if (10 > 1) { true + false; }", "unknown operator: true + false"},
		{
			"if (10 > 1) { if (10 > 1) { return true + false; } return 1; }",
			"unknown operator: true + false",
		},
		{"foobar", "identifier not found: foobar"},
		{"true + 5;", "type mismatch: true + 5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wantError(t, testEval(t, tt.input), tt.want)
		})
	}
}

func TestEval_ErrorOperands(t *testing.T) {
	// Errors short-circuit statement walks only. In operand position an
	// error object is an ordinary value: it formats into the enclosing
	// operator's message and is truthy as a condition.
	t.Run("negation formats the inner message", func(t *testing.T) {
		wantError(t, testEval(t, "-nosuch"),
			"unknown operator: -identifier not found: nosuch")
	})

	t.Run("logical not yields false", func(t *testing.T) {
		wantBoolean(t, testEval(t, "!nosuch"), false)
	})

	t.Run("condition is truthy", func(t *testing.T) {
		wantInteger(t, testEval(t, "if (nosuch) { 1 } else { 2 }"), 1)
	})

	t.Run("callee formats the inner message", func(t *testing.T) {
		wantError(t, testEval(t, "nosuch(1)"),
			"identifier not found: nosuch is not valid function")
	})
}

func TestEval_DivisionByZero(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5 / 0", "division by zero: 5 / 0"},
		{"10 / (5 - 5)", "division by zero: 10 / 0"},
		{"let x = 0; 1 / x", "division by zero: 1 / 0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wantError(t, testEval(t, tt.input), tt.want)
		})
	}
}

func TestEval_CallErrors(t *testing.T) {
	t.Run("calling a non function", func(t *testing.T) {
		wantError(t, testEval(t, "5(1)"), "5 is not valid function")
	})

	t.Run("calling a bound non function", func(t *testing.T) {
		wantError(t, testEval(t, "let x = true; x();"),
			"true is not valid function")
	})

	t.Run("too few arguments", func(t *testing.T) {
		wantError(t, testEval(t, "let add = fn(x, y) { x + y; }; add(5);"),
			"wrong number of arguments: 2 expected but 1 given")
	})

	t.Run("too many arguments", func(t *testing.T) {
		wantError(t, testEval(t, "fn() { 1 }(2)"),
			"wrong number of arguments: 0 expected but 1 given")
	})

	t.Run("arity check precedes the body", func(t *testing.T) {
		// The body never runs on an arity mismatch: were it evaluated,
		// this self-call would hit the recursion bound instead.
		wantError(t, testEval(t, "let f = fn(x) { f(x) }; f();"),
			"wrong number of arguments: 1 expected but 0 given")
	})
}

func TestEval_ReturnEscapesCall(t *testing.T) {
	// A wrapped return value escapes the call boundary and is unwrapped
	// only at program level, so using a returning call as an operand
	// produces an unknown-operator error on the wrapped value.
	wantError(t, testEval(t, "fn(x) { return x; }(5) + 1"),
		"unknown operator: 5 + 1")

	// As a statement result the same call works as expected.
	wantInteger(t, testEval(t, "fn(x) { return x; }(5)"), 5)
}

func TestEval_ValuelessExpressions(t *testing.T) {
	t.Run("let binds nothing", func(t *testing.T) {
		wantError(t, testEval(t, "let x = if (false) { 1 }; x;"),
			"identifier not found: x")
	})

	t.Run("argument becomes null", func(t *testing.T) {
		obj := testEval(t, "let id = fn(x) { x; }; id(if (false) { 1 });")
		if obj != Nil {
			t.Errorf("result = %v (%T), want the shared Nil instance", obj, obj)
		}
	})

	t.Run("function without result yields null", func(t *testing.T) {
		obj := testEval(t, "fn() { if (false) { 1 } }()")
		if obj != Nil {
			t.Errorf("result = %v (%T), want the shared Nil instance", obj, obj)
		}
	})
}

func TestEval_CallDepth(t *testing.T) {
	t.Run("default bound stops runaway recursion", func(t *testing.T) {
		wantError(t, testEval(t, "let f = fn(x) { f(x) }; f(0);"),
			"call depth exceeds 1000")
	})

	t.Run("custom bound", func(t *testing.T) {
		p := parser.New(lexer.New(
			"let f = fn(n) { if (n < 1) { 0 } else { f(n - 1) } }; f(10);"))

		program := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			t.Fatalf("parse diagnostics: %v", errs)
		}

		obj := New(NewEnvironment(), WithMaxDepth(4)).Eval(program)
		wantError(t, obj, "call depth exceeds 4")
	})

	t.Run("bounded recursion completes", func(t *testing.T) {
		input := "let f = fn(n) { if (n < 1) { 0 } else { f(n - 1) } }; f(100);"
		wantInteger(t, testEval(t, input), 0)
	})
}

func TestEval_Recursion(t *testing.T) {
	input := `
let fib = fn(n) { if (n < 2) { n } else { fib(n - 1) + fib(n - 2) } };
fib(10);`

	wantInteger(t, testEval(t, input), 55)
}

func TestEval_ShadowingInCallFrame(t *testing.T) {
	// A parameter shadows an outer binding for the duration of the call
	// without modifying it.
	input := `
let x = 1;
let f = fn(x) { x * 10 };
f(5) + x;`

	wantInteger(t, testEval(t, input), 51)
}

func TestEval_PersistentEnvironment(t *testing.T) {
	// One evaluator accumulates bindings across programs, which is what
	// an interactive session relies on.
	ev := New(NewEnvironment())

	for _, input := range []string{"let a = 5;", "let b = a * 2;"} {
		p := parser.New(lexer.New(input))

		program := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			t.Fatalf("parse diagnostics for %q: %v", input, errs)
		}

		ev.Eval(program)
	}

	p := parser.New(lexer.New("a + b;"))

	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse diagnostics: %v", errs)
	}

	wantInteger(t, ev.Eval(program), 15)

	if got, ok := ev.Environment().Get("b"); !ok || got.String() != "10" {
		t.Errorf("environment binding b = %v (found %v), want 10", got, ok)
	}
}
