package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/config"
	"github.com/zephyrtronium/calculator/internal/logging"
)

// errFailed reports that some expressions failed after their messages have
// already been printed.
var errFailed = errors.New("some expressions failed")

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	MaxLength  int
	MaxDepth   int

	// cfg is the configuration after Complete.
	cfg config.Config
	log logging.Logger
}

// NewCalcCommand creates the calc root command.
func NewCalcCommand(ctx context.Context) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "calc",
		Short:         "evaluate arithmetic expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags()); err != nil {
				return err
			}
			cmd.SetContext(logging.NewContext(cmd.Context(), opts.log))
			return nil
		},
	}
	cmd.SetContext(ctx)
	opts.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewFuncsCommand())
	return cmd
}

func (o *rootOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", "", "path to a YAML configuration file")
	fs.StringVar(&o.LogLevel, "log-level", logging.INFO.String(), "log level: error, info, or debug")
	fs.StringVar(&o.LogFormat, "log-format", logging.TEXT.String(), "log format: text or json")
	fs.IntVar(&o.MaxLength, "max-length", calculator.DefaultMaxLength, "maximum expression length in bytes")
	fs.IntVar(&o.MaxDepth, "max-depth", calculator.DefaultMaxDepth, "maximum expression nesting depth")
}

// Complete loads the configuration file and applies explicitly set flags over
// it.
func (o *rootOptions) Complete(fs *pflag.FlagSet) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = o.LogLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = o.LogFormat
	}
	if fs.Changed("max-length") {
		cfg.Limits.MaxLength = o.MaxLength
	}
	if fs.Changed("max-depth") {
		cfg.Limits.MaxDepth = o.MaxDepth
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid flags")
	}
	o.cfg = cfg
	o.log, err = cfg.Logger()
	if err != nil {
		return errors.Wrap(err, "unable to create logger")
	}
	o.log.Debug("configuration loaded", "config", o.ConfigPath, "maxLength", cfg.Limits.MaxLength, "maxDepth", cfg.Limits.MaxDepth)
	return nil
}
