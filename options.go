package calculator

// Default resource limits.
const (
	// DefaultMaxLength is the default maximum length of an expression in bytes.
	DefaultMaxLength = 4096
	// DefaultMaxDepth is the default maximum nesting depth of an expression.
	DefaultMaxDepth = 256
)

// Option is an option for parsing.
type Option interface {
	option(parsectx) parsectx
}

type (
	lengthopt int
	depthopt  int
)

// parsectx holds general data for parsing.
type parsectx struct {
	// maxlen is the maximum input length in bytes.
	maxlen int
	// maxdepth is the maximum depth of both the tree and the parser's
	// recursion.
	maxdepth int
	// level is the current recursion depth.
	level int
}

func newParsectx(opts []Option) parsectx {
	p := parsectx{
		maxlen:   DefaultMaxLength,
		maxdepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.option(p)
	}
	return p
}

// MaxLength limits the length in bytes of expressions. Longer inputs fail with
// an *InputTooLargeError before lexing. A non-positive n restores the default.
func MaxLength(n int) Option {
	return lengthopt(n)
}

func (o lengthopt) option(p parsectx) parsectx {
	p.maxlen = int(o)
	if p.maxlen <= 0 {
		p.maxlen = DefaultMaxLength
	}
	return p
}

// MaxDepth limits the nesting of expressions, counting operators, function
// calls, and parentheses. Deeper inputs fail with a *DepthError. A
// non-positive n restores the default.
//
// Chains of left-associative operators nest as well: 1+2+3 is ((1+2)+3), so
// a sum of more than n terms exceeds a depth of n even without parentheses.
func MaxDepth(n int) Option {
	return depthopt(n)
}

func (o depthopt) option(p parsectx) parsectx {
	p.maxdepth = int(o)
	if p.maxdepth <= 0 {
		p.maxdepth = DefaultMaxDepth
	}
	return p
}
