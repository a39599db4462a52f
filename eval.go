package calculator

import (
	"math"
)

// Eval evaluates the expression. The tree is not modified, so an Expr may be
// evaluated any number of times, concurrently.
func (e *Expr) Eval() (float64, error) {
	return e.n.eval()
}

// eval computes the node's value after its operands. Function names and
// argument counts are checked before any argument is evaluated.
func (n *node) eval() (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeConst:
		v, ok := constants[n.name]
		if !ok {
			return 0, &NameError{Col: n.col, Name: n.name}
		}
		return v, nil
	case nodeCall:
		fn, ok := builtins[n.name]
		if !ok {
			return 0, &UnknownFunctionError{Col: n.col, Name: n.name}
		}
		if !fn.canCall(len(n.args)) {
			return 0, &ArityError{Col: n.col, Func: n.name, Min: fn.min, Max: fn.max, Got: len(n.args)}
		}
		invoc := make([]float64, len(n.args))
		for i, a := range n.args {
			v, err := a.eval()
			if err != nil {
				return 0, err
			}
			invoc[i] = v
		}
		return fn.call(invoc), nil
	case nodeNeg:
		v, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeNop:
		return n.left.eval()
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval()
		if err != nil {
			return 0, err
		}
		switch n.kind {
		case nodeAdd:
			return l + r, nil
		case nodeSub:
			return l - r, nil
		case nodeMul:
			return l * r, nil
		case nodeDiv:
			// Explicitly fail rather than produce ±Inf or NaN. -0 == 0.
			if r == 0 {
				return 0, &DivisionByZeroError{Col: n.col}
			}
			return l / r, nil
		default:
			// A negative base with a non-integer exponent gives NaN.
			return math.Pow(l, r), nil
		}
	default:
		panic("calculator: invalid AST node " + n.kind.String())
	}
}

// Evaluate parses and evaluates an expression.
func Evaluate(src string, opts ...Option) (float64, error) {
	a, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return a.Eval()
}
