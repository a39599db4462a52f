package calculator_test

import (
	"testing"

	"github.com/zephyrtronium/calculator"
)

func FuzzParse(f *testing.F) {
	f.Add("2*2")
	f.Add("(5+3)/2")
	f.Add("-2^-2^2")
	f.Add("max(1, sqrt(2), pi)")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := calculator.Parse(s)
		if err != nil {
			return
		}
		// The printed form must parse to an equally printed tree.
		b, err := calculator.Parse(a.String(), calculator.MaxLength(1<<20), calculator.MaxDepth(1<<10))
		if err != nil {
			t.Fatalf("%q -> %q failed to parse: %v", s, a.String(), err)
		}
		if a.String() != b.String() {
			t.Errorf("%q printed %q, reparsed %q", s, a.String(), b.String())
		}
	})
}
