package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/logging"
)

// NewReplCommand creates the repl subcommand.
func NewReplCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Args:  cobra.NoArgs,
		Short: "evaluate expressions interactively",
		Long: `
repl reads expressions from stdin, one per line, and prints "Result: " and the
value of each, or the reason it could not be evaluated.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.FromContextOrDiscard(cmd.Context()).WithName("repl")
			return repl(cmd.InOrStdin(), cmd.OutOrStdout(), log, root.cfg.Format, root.cfg.Limits.Options())
		},
	}
}

func repl(in io.Reader, out io.Writer, log logging.Logger, verb string, opts []calculator.Option) error {
	sc := bufio.NewScanner(in)
	verb = "Result: " + verb + "\n"
	var n, failed int
	defer func() { log.Info("session ended", "expressions", n, "failed", failed) }()
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		n++
		v, err := calculator.Evaluate(line, opts...)
		if err != nil {
			failed++
			log.Debug("evaluation failed", "expr", line, "error", err.Error())
			fmt.Fprintln(out, calculator.Message(err))
			continue
		}
		log.Debug("evaluated", "expr", line, "result", v)
		fmt.Fprintf(out, verb, v)
	}
	return errors.Wrap(sc.Err(), "unable to read input")
}
