// Package calculator evaluates arithmetic expressions in double precision.
//
// Expressions are written the usual way: "2 * (3 + 4)", "sqrt(2) / 2",
// "max(1, 2, 3)". Operators are + - * / and ^ for exponentiation, which is
// right-associative and binds more tightly than unary minus, so "-2^2" is
// "-(2^2)" and "2^3^2" is "2^(3^2)". Bare names such as pi and e are
// constants.
//
// Every failure is reported as a typed error; dividing by zero is an error
// rather than an infinity. Parsing is bounded by a maximum input length and
// nesting depth, so untrusted input cannot exhaust the stack.
package calculator
