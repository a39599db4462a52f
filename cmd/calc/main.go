// Command calc evaluates arithmetic expressions.
//
// Usage:
//
//	calc eval [flags] [expr ...]
//	calc repl [flags]
//	calc funcs
//
// eval evaluates each argument as an expression. With no arguments, it reads
// one expression per line from the file named by --in, or stdin. repl reads
// lines from stdin and prints the result of each as it is entered.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cmd := NewCalcCommand(ctx)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
