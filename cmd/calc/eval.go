package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/batch"
	"github.com/zephyrtronium/calculator/internal/logging"
)

type evalOptions struct {
	root *rootOptions

	// In is the input file. "-" is stdin.
	In string
	// Format is the fmt verb for results.
	Format string
	// Echo prints parse trees before results.
	Echo bool
	Jobs int

	srcs []string
}

// NewEvalCommand creates the eval subcommand.
func NewEvalCommand(root *rootOptions) *cobra.Command {
	opts := &evalOptions{root: root}
	cmd := &cobra.Command{
		Use:   "eval [EXPR...]",
		Short: "evaluate expressions",
		Long: `
eval evaluates each argument as an expression and prints the results in order.
With no arguments, expressions are read one per line from --in or stdin.
Blank lines are skipped.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags(), cmd.InOrStdin(), args); err != nil {
				return err
			}
			return opts.Run(cmd, cmd.OutOrStdout())
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func (o *evalOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.In, "in", "", "input file, one expression per line (default stdin if no args given)")
	fs.StringVar(&o.Format, "fmt", "%g", "result formatting verb")
	fs.BoolVar(&o.Echo, "echo", false, "print parse trees")
	fs.IntVar(&o.Jobs, "jobs", 1, "number of expressions to evaluate concurrently")
}

func (o *evalOptions) Complete(fs *pflag.FlagSet, stdin io.Reader, args []string) error {
	cfg := o.root.cfg
	if !fs.Changed("fmt") {
		o.Format = cfg.Format
	}
	if !fs.Changed("jobs") {
		o.Jobs = cfg.Jobs
	}
	if o.Jobs < 1 {
		return errors.Errorf("--jobs must be at least 1, got %d", o.Jobs)
	}

	o.srcs = append(o.srcs[:0], args...)
	var in io.Reader
	switch {
	case o.In != "" && o.In != "-":
		f, err := os.Open(o.In)
		if err != nil {
			return errors.Wrapf(err, "unable to open input file %s", o.In)
		}
		defer f.Close()
		in = f
	case o.In == "-", len(args) == 0:
		in = stdin
	}
	if in == nil {
		return nil
	}
	lines, err := readLines(in)
	if err != nil {
		return errors.Wrap(err, "unable to read input")
	}
	o.srcs = append(o.srcs, lines...)
	return nil
}

func (o *evalOptions) Run(cmd *cobra.Command, out io.Writer) error {
	ctx := cmd.Context()
	log := logging.FromContextOrDiscard(ctx)
	results, err := batch.Evaluate(ctx, o.srcs, o.Jobs, o.root.cfg.Limits.Options()...)
	verb := o.Format + "\n"
	for _, r := range results {
		if o.Echo && r.Expr != nil {
			fmt.Fprintf(out, "%v : ", r.Expr)
		}
		if r.Err != nil {
			fmt.Fprintln(out, calculator.Message(r.Err))
			continue
		}
		fmt.Fprintf(out, verb, r.Value)
	}
	if err != nil {
		log.Error(err, "evaluation failed", "expressions", len(results))
		return errFailed
	}
	return nil
}

// readLines reads the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
