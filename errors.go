package calculator

import "strconv"

// ParseError is an error indicating a token the parser did not expect. It
// implements InputError.
type ParseError struct {
	// Col is the position of the unexpected token.
	Col int
	// Expected describes what the parser was looking for.
	Expected string
	// Found describes the token the parser found instead.
	Found string
}

func (err *ParseError) Error() string {
	return errpos(err.Col, "expected "+err.Expected+", found "+err.Found)
}

func (err *ParseError) Pos() int {
	return err.Col
}

// UnknownFunctionError is an error from a call to a function that is not
// built in. It implements InputError.
type UnknownFunctionError struct {
	// Col is the position of the function name.
	Col int
	// Name is the function name.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Name))
}

func (err *UnknownFunctionError) Pos() int {
	return err.Col
}

// NameError is an error from a reference to a constant that is not built in.
// It implements InputError.
type NameError struct {
	// Col is the position of the name.
	Col int
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "undefined constant "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// ArityError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type ArityError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Min and Max are the numbers of arguments the function accepts. Max is
	// negative for functions accepting any number of at least Min arguments.
	Min, Max int
	// Got is the number of arguments in the call.
	Got int
}

func (err *ArityError) Error() string {
	var want string
	switch {
	case err.Max < 0:
		want = "at least " + plural(err.Min, "argument")
	case err.Min == err.Max:
		want = plural(err.Min, "argument")
	default:
		want = strconv.Itoa(err.Min) + " to " + plural(err.Max, "argument")
	}
	return errpos(err.Col, err.Func+" takes "+want+", got "+strconv.Itoa(err.Got))
}

func (err *ArityError) Pos() int {
	return err.Col
}

// DivisionByZeroError is an error from dividing by exactly zero. It implements
// InputError.
type DivisionByZeroError struct {
	// Col is the position of the division operator.
	Col int
}

func (err *DivisionByZeroError) Error() string {
	return errpos(err.Col, "division by zero")
}

func (err *DivisionByZeroError) Pos() int {
	return err.Col
}

// DepthError is an error indicating an expression nested more deeply than
// allowed. It implements InputError.
type DepthError struct {
	// Col is the position where the limit was exceeded.
	Col int
	// Max is the depth limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(err.Max))
}

func (err *DepthError) Pos() int {
	return err.Col
}

// InputTooLargeError is an error indicating an expression longer than allowed.
type InputTooLargeError struct {
	// Len is the length of the input in bytes.
	Len int
	// Max is the length limit.
	Max int
}

func (err *InputTooLargeError) Error() string {
	return "expression of " + plural(err.Len, "byte") + " exceeds limit of " + strconv.Itoa(err.Max)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

func plural(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}

// Message formats an error from Parse, Evaluate, or Expr.Eval for display.
func Message(err error) string {
	return "Evaluation error: " + err.Error()
}

// InputError is an error with position information. Every error resulting from
// invalid input other than its length implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*UnknownFunctionError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*ArityError)(nil)
	_ InputError = (*DivisionByZeroError)(nil)
	_ InputError = (*DepthError)(nil)
)
