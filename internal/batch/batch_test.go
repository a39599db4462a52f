package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	. "github.com/onsi/gomega"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/logging"
)

func TestEvaluateOrder(t *testing.T) {
	g := NewWithT(t)
	srcs := make([]string, 100)
	for i := range srcs {
		srcs[i] = fmt.Sprintf("%d * 2", i)
	}
	results, err := Evaluate(context.Background(), srcs, 8)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(results).To(HaveLen(len(srcs)))
	for i, r := range results {
		g.Expect(r.Index).To(Equal(i))
		g.Expect(r.Source).To(Equal(srcs[i]))
		g.Expect(r.Err).ToNot(HaveOccurred())
		g.Expect(r.Expr).ToNot(BeNil())
		g.Expect(r.Value).To(BeNumerically("==", 2*i))
	}
}

func TestEvaluateFailures(t *testing.T) {
	g := NewWithT(t)
	srcs := []string{"1 + 2", "1 / 0", "2 ^ 3", "(1", "nope(1)"}
	results, err := Evaluate(context.Background(), srcs, 2)
	g.Expect(err).To(HaveOccurred())

	var merr *multierror.Error
	g.Expect(err).To(BeAssignableToTypeOf(merr))
	merr = err.(*multierror.Error)
	g.Expect(merr.Errors).To(HaveLen(3))
	g.Expect(merr.Errors[0]).To(MatchError(ContainSubstring("expression 2: 3: division by zero")))
	g.Expect(merr.Errors[1]).To(MatchError(ContainSubstring("expression 4")))
	g.Expect(merr.Errors[2]).To(MatchError(ContainSubstring("expression 5")))

	g.Expect(results[0].Value).To(BeNumerically("==", 3))
	g.Expect(results[2].Value).To(BeNumerically("==", 8))
	g.Expect(results[1].Err).To(BeAssignableToTypeOf(&calculator.DivisionByZeroError{}))
	g.Expect(results[1].Expr).ToNot(BeNil())
	g.Expect(results[3].Err).To(BeAssignableToTypeOf(&calculator.ParseError{}))
	g.Expect(results[3].Expr).To(BeNil())
	g.Expect(results[4].Err).To(BeAssignableToTypeOf(&calculator.UnknownFunctionError{}))
}

func TestEvaluateOptions(t *testing.T) {
	g := NewWithT(t)
	results, err := Evaluate(context.Background(), []string{"((1))", "1"}, 1, calculator.MaxDepth(2))
	g.Expect(err).To(HaveOccurred())
	g.Expect(results[0].Err).To(BeAssignableToTypeOf(&calculator.DepthError{}))
	g.Expect(results[1].Err).ToNot(HaveOccurred())
}

func TestEvaluateCancelled(t *testing.T) {
	g := NewWithT(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Evaluate(ctx, []string{"1", "2"}, 1)
	g.Expect(err).To(HaveOccurred())
	for _, r := range results {
		g.Expect(r.Err).To(MatchError(context.Canceled))
	}
}

func TestEvaluateEmpty(t *testing.T) {
	g := NewWithT(t)
	results, err := Evaluate(context.Background(), nil, 0)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(results).To(BeEmpty())
}

func TestEvaluateLogs(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "log.json")
	log, err := logging.New(logging.DEBUG, logging.JSON, path)
	g.Expect(err).ToNot(HaveOccurred())
	ctx := logging.NewContext(context.Background(), log)

	_, err = Evaluate(ctx, []string{"1 + 1", "1/0"}, 1)
	g.Expect(err).To(HaveOccurred())

	b, err := os.ReadFile(path)
	g.Expect(err).ToNot(HaveOccurred())
	var lines []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		var m map[string]interface{}
		g.Expect(json.Unmarshal([]byte(line), &m)).To(Succeed())
		lines = append(lines, m)
	}
	g.Expect(lines).To(HaveLen(3))
	g.Expect(lines[0]).To(HaveKeyWithValue("msg", "evaluated"))
	g.Expect(lines[0]).To(HaveKeyWithValue("expr", "1 + 1"))
	g.Expect(lines[0]).To(HaveKeyWithValue("index", BeNumerically("==", 0)))
	g.Expect(lines[0]).To(HaveKeyWithValue("result", BeNumerically("==", 2)))
	g.Expect(lines[1]).To(HaveKeyWithValue("msg", "evaluation failed"))
	g.Expect(lines[1]).To(HaveKeyWithValue("expr", "1/0"))
	g.Expect(lines[2]).To(HaveKeyWithValue("msg", "batch evaluated"))
	g.Expect(lines[2]).To(HaveKeyWithValue("level", "info"))
	g.Expect(lines[2]).To(HaveKeyWithValue("expressions", BeNumerically("==", 2)))
	g.Expect(lines[2]).To(HaveKeyWithValue("failed", BeNumerically("==", 1)))
}
