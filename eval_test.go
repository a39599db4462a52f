package calculator_test

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sync"
	"testing"

	"github.com/zephyrtronium/calculator"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"simple", "2*2", 4},
		{"complex", "(5+3)/2", 4},
		{"plus", "+4", 4},
		{"neg", "-4", -4},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "4/5/6", 4.0 / 5.0 / 6.0},
		{"pow", "2^3^2", 512},
		{"pow4", "4^3^2", 262144},
		{"negpow", "-2^2", -4},
		{"parennegpow", "(-2)^2", 4},
		{"powneg", "2^-1", 0.5},
		{"fracpow", "4^0.5", 2},
		{"precedence", "1+2*3", 7},
		{"precedence-paren", "(1+2)*3", 9},
		{"mixed", "2 + 3 * 4 ^ 2 / 8 - 1", 2 + 3*16.0/8 - 1},
		{"negneg", "--3", 3},
		{"subneg", "3--3", 6},
		{"exponent", "1.5e3/1e3", 1.5},
		{"pi", "pi", math.Pi},
		{"e", "e", math.E},
		{"tau", "tau/2", math.Pi},
		{"sqrt", "sqrt(16)", 4},
		{"abs", "abs(-3)", 3},
		{"exp", "exp(1)", math.E},
		{"ln", "ln(e)", 1},
		{"log", "log(1000)", 3},
		{"log-base", "log(8, 2)", 3},
		{"log2", "log2(8)", 3},
		{"max", "max(1, 5, 3)", 5},
		{"min", "min(4, -2, 7)", -2},
		{"max1", "max(2)", 2},
		{"atan2", "atan2(1, 1)*4", math.Pi},
		{"mod", "mod(7, 3)", 1},
		{"floor", "floor(-1.5)", -2},
		{"round", "round(2.5)", 3},
		{"signum", "signum(-8)", -1},
		{"nested-calls", "sqrt(max(9, abs(-16)))", 4},
		{"overflow", "1e999 - 1", math.Inf(1)},
		{"ln0", "ln(0)", math.Inf(-1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calculator.Evaluate(c.src)
			if err != nil {
				t.Fatalf("%q: evaluation error: %v", c.src, err)
			}
			if r != c.r && math.Abs(r-c.r) > 1e-12*math.Abs(c.r) {
				t.Errorf("%q: wrong result: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvaluateNaN(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"negbase-fracpow", "(-8)^(1/3)"},
		{"sqrt-neg", "sqrt(-1)"},
		{"ln-neg", "ln(-1)"},
		{"acos-out", "acos(2)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calculator.Evaluate(c.src)
			if err != nil {
				t.Fatalf("%q: evaluation error: %v", c.src, err)
			}
			if !math.IsNaN(r) {
				t.Errorf("%q: want NaN, got %g", c.src, r)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
		col  int
		res  []string
	}{
		{"div-zero", "1/0", new(calculator.DivisionByZeroError), 2, []string{`(?i)\bdivision by zero\b`}},
		{"div-negzero", "1/-0", new(calculator.DivisionByZeroError), 2, nil},
		{"div-zero-expr", "1/(2-2)", new(calculator.DivisionByZeroError), 2, nil},
		{"div-zero-zero", "0/0", new(calculator.DivisionByZeroError), 2, nil},
		{"div-zero-nested", "sqrt(4) + 3/(1-1)", new(calculator.DivisionByZeroError), 12, nil},
		{"missing-operand", "2^", new(calculator.ParseError), 3, nil},
		{"unknown-func", "foo(1)", new(calculator.UnknownFunctionError), 1, []string{`(?i)\bunknown function\b`, `"foo"`}},
		{"unknown-func-arg", "1 + foo(1/0)", new(calculator.UnknownFunctionError), 5, nil},
		{"call-const", "pi(2)", new(calculator.UnknownFunctionError), 1, []string{`"pi"`}},
		{"unknown-name", "2*x", new(calculator.NameError), 3, []string{`(?i)\bundefined\b`, `"x"`}},
		{"func-as-name", "sqrt + 1", new(calculator.NameError), 1, []string{`"sqrt"`}},
		{"arity-many", "sqrt(1,2)", new(calculator.ArityError), 1, []string{`\bsqrt\b`, `\b1 argument\b`, `\bgot 2\b`}},
		{"arity-none", "sqrt()", new(calculator.ArityError), 1, []string{`\bgot 0\b`}},
		{"arity-dyadic", "atan2(1)", new(calculator.ArityError), 1, []string{`\b2 arguments\b`}},
		{"arity-range", "log(1, 2, 3)", new(calculator.ArityError), 1, []string{`\b1 to 2 arguments\b`}},
		{"arity-variadic", "max()", new(calculator.ArityError), 1, []string{`\bat least 1 argument\b`}},
		{"arity-before-args", "sqrt(1/0, 2)", new(calculator.ArityError), 1, nil},
		{"lex", "2 # 2", new(calculator.LexError), 3, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calculator.Evaluate(c.src)
			if err == nil {
				t.Fatalf("%q: no error, result %g", c.src, r)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Fatalf("%q: wrong error type: want %T, got %T (%v)", c.src, c.err, err, err)
			}
			var ie calculator.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q: %T is not an InputError", c.src, err)
			}
			if ie.Pos() != c.col {
				t.Errorf("%q: want error at column %d, got %d", c.src, c.col, ie.Pos())
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
		})
	}
}

func TestArityErrorFields(t *testing.T) {
	_, err := calculator.Evaluate("sqrt(1,2)")
	var ae *calculator.ArityError
	if !errors.As(err, &ae) {
		t.Fatalf("want *ArityError, got %#v", err)
	}
	want := calculator.ArityError{Col: 1, Func: "sqrt", Min: 1, Max: 1, Got: 2}
	if *ae != want {
		t.Errorf("want %+v, got %+v", want, *ae)
	}
}

func TestUnknownFunctionName(t *testing.T) {
	_, err := calculator.Evaluate("foo(1)")
	var ue *calculator.UnknownFunctionError
	if !errors.As(err, &ue) {
		t.Fatalf("want *UnknownFunctionError, got %#v", err)
	}
	if ue.Name != "foo" {
		t.Errorf("want name foo, got %q", ue.Name)
	}
}

func TestMessage(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{"1/0", "Evaluation error: 2: division by zero"},
		{"2^", "Evaluation error: 3: expected expression, found end of input"},
		{"foo(1)", `Evaluation error: 1: unknown function "foo"`},
		{"sqrt(1,2)", "Evaluation error: 1: sqrt takes 1 argument, got 2"},
	}
	for _, c := range cases {
		_, err := calculator.Evaluate(c.src)
		if err == nil {
			t.Errorf("%q: no error", c.src)
			continue
		}
		if got := calculator.Message(err); got != c.msg {
			t.Errorf("%q: want message %q, got %q", c.src, c.msg, got)
		}
	}
}

func TestEvalIdempotent(t *testing.T) {
	srcs := []string{"2*2", "(5+3)/2", "sin(1)^2 + cos(1)^2", "max(1, 2, 3) / 7", "1/0"}
	for _, src := range srcs {
		a, err := calculator.Parse(src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", src, err)
		}
		r1, err1 := a.Eval()
		r2, err2 := a.Eval()
		if r1 != r2 || !reflect.DeepEqual(err1, err2) {
			t.Errorf("%q: evaluations differ: %g, %v vs %g, %v", src, r1, err1, r2, err2)
		}
		r3, err3 := calculator.Evaluate(src)
		if r1 != r3 || !reflect.DeepEqual(err1, err3) {
			t.Errorf("%q: Eval and Evaluate differ: %g, %v vs %g, %v", src, r1, err1, r3, err3)
		}
	}
}

func TestEvalConcurrent(t *testing.T) {
	a, err := calculator.Parse("sqrt(2) * sqrt(2) + max(1, 2^10)")
	if err != nil {
		t.Fatal(err)
	}
	want, err := a.Eval()
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r, err := a.Eval()
				if err != nil {
					errs <- err
					return
				}
				if r != want {
					errs <- fmt.Errorf("got %g, want %g", r, want)
					return
				}
				if _, err := calculator.Evaluate("(5+3)/2"); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "2^3*4+5+6*7^2"},
		{"ascdesc", "2+3*4^2^0.5*6+7"},
		{"calls", "max(sqrt(2), abs(-3), ln(10))"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				calculator.Evaluate(c.src)
			}
		})
	}
}

func Example() {
	for _, src := range []string{"2*2", "(5+3)/2", "-2^2", "2^3^2", "1/0", "sqrt(1,2)"} {
		r, err := calculator.Evaluate(src)
		if err != nil {
			fmt.Printf("%-9s  %s\n", src, calculator.Message(err))
			continue
		}
		fmt.Printf("%-9s  %g\n", src, r)
	}

	// Output:
	// 2*2        4
	// (5+3)/2    4
	// -2^2       -4
	// 2^3^2      512
	// 1/0        Evaluation error: 2: division by zero
	// sqrt(1,2)  Evaluation error: 1: sqrt takes 1 argument, got 2
}

func ExampleExpr_String() {
	a, _ := calculator.Parse("-2^2 + max(1, 2)")
	fmt.Println(a)
	// Output: ((-((2) ^ (2))) + (max((1), (2))))
}
