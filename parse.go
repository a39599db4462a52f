package calculator

// Expr = num | name | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = name '(' [ Expr { ',' Expr } ] ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr

// Expr is a parsed expression. An Expr is immutable and safe to evaluate
// concurrently.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression. The given options are applied in order.
func Parse(src string, opts ...Option) (*Expr, error) {
	p := newParsectx(opts)
	if len(src) > p.maxlen {
		return nil, &InputTooLargeError{Len: len(src), Max: p.maxlen}
	}
	scan := lex(src)
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenEOF {
		return nil, &ParseError{Col: tok.Col, Expected: "end of input", Found: tok.describe()}
	}
	return &Expr{n: n}, nil
}

// parseterm parses a term whose operators bind more tightly than until. If
// there is no error, then parseterm pushes the token that ended the term.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	if err := p.enter(scan); err != nil {
		return nil, err
	}
	defer p.leave()
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenOp {
			// End of term. The caller decides whether the token is legal.
			scan.push(tok)
			return n, nil
		}
		prec := binop(tok.Text)
		if prec.op == nodeNone {
			panic("calculator: no binary operator for " + tok.String())
		}
		if !prec.moreBinding(until) {
			scan.push(tok)
			return n, nil
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		n, err = p.join(&node{kind: prec.op, name: tok.Text, col: tok.Col, left: n, right: rhs})
		if err != nil {
			return nil, err
		}
	}
}

// parselhs parses the first component of a term, i.e. operators are unary and
// the token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenNum:
		return p.join(&node{kind: nodeNum, name: tok.Text, num: tok.Num, col: tok.Col})
	case TokenIdent:
		open, err := scan.next()
		if err != nil {
			return nil, err
		}
		if open.Kind != TokenLeftParen {
			scan.push(open)
			return p.join(&node{kind: nodeConst, name: tok.Text, col: tok.Col})
		}
		args, err := parseargs(scan, p)
		if err != nil {
			return nil, err
		}
		return p.join(&node{kind: nodeCall, name: tok.Text, col: tok.Col, args: args})
	case TokenOp:
		prec := unop(tok.Text)
		if prec.op == nodeNone {
			return nil, &ParseError{Col: tok.Col, Expected: "expression", Found: tok.describe()}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the enclosing operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		return p.join(&node{kind: prec.op, name: tok.Text, col: tok.Col, left: rhs})
	case TokenLeftParen:
		n, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end, err := scan.next()
		if err != nil {
			return nil, err
		}
		if end.Kind != TokenRightParen {
			return nil, &ParseError{Col: end.Col, Expected: `")"`, Found: end.describe()}
		}
		return n, nil
	default:
		return nil, &ParseError{Col: tok.Col, Expected: "expression", Found: tok.describe()}
	}
}

// parseargs parses a comma-separated list of zero or more arguments following
// the open parenthesis of a call, through the close parenthesis.
func parseargs(scan *lexer, p *parsectx) ([]*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenRightParen {
		// Niladic call.
		return nil, nil
	}
	scan.push(tok)
	var args []*node
	for {
		arg, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		end, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch end.Kind {
		case TokenComma: // next argument
		case TokenRightParen:
			return args, nil
		default:
			return nil, &ParseError{Col: end.Col, Expected: `"," or ")"`, Found: end.describe()}
		}
	}
}

// enter records a level of parser recursion. The current token locates the
// error if the recursion is too deep.
func (p *parsectx) enter(scan *lexer) error {
	p.level++
	if p.level <= p.maxdepth {
		return nil
	}
	tok, err := scan.next()
	if err != nil {
		return err
	}
	scan.push(tok)
	return &DepthError{Col: tok.Col, Max: p.maxdepth}
}

func (p *parsectx) leave() {
	p.level--
}

// join computes the depth of a newly built node and checks it against the
// limit.
func (p *parsectx) join(n *node) (*node, error) {
	n.depth = 1
	for _, c := range n.children() {
		if c.depth+1 > n.depth {
			n.depth = c.depth + 1
		}
	}
	if n.depth > p.maxdepth {
		return nil, &DepthError{Col: n.col, Max: p.maxdepth}
	}
	return n, nil
}

// String creates a fully parenthesized representation of the parsed
// expression.
func (e *Expr) String() string {
	return e.n.String()
}

// Funcs returns the names of functions called in the expression, in order of
// first appearance.
func (e *Expr) Funcs() []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(n *node)
	walk = func(n *node) {
		if n.kind == nodeCall && !seen[n.name] {
			seen[n.name] = true
			names = append(names, n.name)
		}
		for _, c := range n.children() {
			walk(c)
		}
	}
	walk(e.n)
	return names
}

// Depth returns the height of the expression tree.
func (e *Expr) Depth() int {
	return e.n.depth
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
