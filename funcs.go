package calculator

import (
	"math"
	"slices"
	"strings"
)

// builtin is a function in the fixed table of built-in functions. Exactly one
// of f1, f2, fn is set, matching the arity.
type builtin struct {
	// min and max are the accepted argument counts. max < 0 means variadic.
	min, max int

	f1 func(float64) float64
	f2 func(float64, float64) float64
	fn func([]float64) float64
}

func (b builtin) canCall(n int) bool {
	return n >= b.min && (b.max < 0 || n <= b.max)
}

// call evaluates the function. len(args) is a count for which canCall is true.
func (b builtin) call(args []float64) float64 {
	switch {
	case b.f1 != nil:
		return b.f1(args[0])
	case b.f2 != nil:
		return b.f2(args[0], args[1])
	default:
		return b.fn(args)
	}
}

func monadic(f func(float64) float64) builtin {
	return builtin{min: 1, max: 1, f1: f}
}

func dyadic(f func(float64, float64) float64) builtin {
	return builtin{min: 2, max: 2, f2: f}
}

func variadic(f func([]float64) float64) builtin {
	return builtin{min: 1, max: -1, fn: f}
}

var builtins = map[string]builtin{
	"sqrt":   monadic(math.Sqrt),
	"cbrt":   monadic(math.Cbrt),
	"abs":    monadic(math.Abs),
	"exp":    monadic(math.Exp),
	"ln":     monadic(math.Log),
	"log10":  monadic(math.Log10),
	"log2":   monadic(math.Log2),
	"sin":    monadic(math.Sin),
	"cos":    monadic(math.Cos),
	"tan":    monadic(math.Tan),
	"asin":   monadic(math.Asin),
	"acos":   monadic(math.Acos),
	"atan":   monadic(math.Atan),
	"sinh":   monadic(math.Sinh),
	"cosh":   monadic(math.Cosh),
	"tanh":   monadic(math.Tanh),
	"asinh":  monadic(math.Asinh),
	"acosh":  monadic(math.Acosh),
	"atanh":  monadic(math.Atanh),
	"floor":  monadic(math.Floor),
	"ceil":   monadic(math.Ceil),
	"round":  monadic(math.Round),
	"trunc":  monadic(math.Trunc),
	"signum": monadic(signum),

	"atan2": dyadic(math.Atan2),
	"hypot": dyadic(math.Hypot),
	"mod":   dyadic(math.Mod),
	"pow":   dyadic(math.Pow),

	// log(x) is the common logarithm; log(x, b) is the logarithm base b.
	"log": {min: 1, max: 2, fn: func(x []float64) float64 {
		if len(x) == 1 {
			return math.Log10(x[0])
		}
		return math.Log(x[0]) / math.Log(x[1])
	}},

	"max": variadic(func(x []float64) float64 {
		r := x[0]
		for _, v := range x[1:] {
			r = math.Max(r, v)
		}
		return r
	}),
	"min": variadic(func(x []float64) float64 {
		r := x[0]
		for _, v := range x[1:] {
			r = math.Min(r, v)
		}
		return r
	}),
}

var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
	"phi": math.Phi,
}

// signum is the sign of x as -1, 0, or 1, keeping the sign of zero and NaN.
func signum(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

// FuncInfo describes a built-in function or constant.
type FuncInfo struct {
	// Name is the name used in expressions.
	Name string
	// Min and Max are the accepted numbers of arguments. Max is negative for
	// variadic functions. Both are zero for constants.
	Min, Max int
	// Const is whether the name is a constant, which is used without
	// parentheses.
	Const bool
}

// Usage gives the form of a use of the function or constant.
func (f FuncInfo) Usage() string {
	if f.Const {
		return f.Name
	}
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte('(')
	n := f.Max
	if n < 0 {
		n = f.Min
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		if i >= f.Min {
			b.WriteByte('[')
		}
		b.WriteByte(byte('a' + i))
		if i >= f.Min {
			b.WriteByte(']')
		}
	}
	if f.Max < 0 {
		b.WriteString(", ...")
	}
	b.WriteByte(')')
	return b.String()
}

// Funcs lists the built-in functions and constants sorted by name.
func Funcs() []FuncInfo {
	r := make([]FuncInfo, 0, len(builtins)+len(constants))
	for name, b := range builtins {
		r = append(r, FuncInfo{Name: name, Min: b.min, Max: b.max})
	}
	for name := range constants {
		r = append(r, FuncInfo{Name: name, Const: true})
	}
	slices.SortFunc(r, func(a, b FuncInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return r
}
