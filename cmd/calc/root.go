package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/calc/internal/client"
	"github.com/GriffinCanCode/calc/internal/console"
	"github.com/GriffinCanCode/calc/internal/expr"
	"github.com/GriffinCanCode/calc/internal/infrastructure/config"
	"github.com/GriffinCanCode/calc/internal/infrastructure/logging"
)

// exitFailure covers failures outside the evaluation taxonomy: bad flags,
// config errors, an unreachable server.
const exitFailure = expr.ExitFailure

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	float      bool
	remote     string
	logLevel   string
	configPath string

	code int
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		console.Report(stderr, err)
		return exitFailure
	}
	return c.code
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate one arithmetic expression read from stdin",
		Long: `Reads a single line from standard input, evaluates it and prints the result.

Expressions use decimal literals, + - * / and parentheses. Integer mode
truncates division toward zero; float mode prints four decimals.

Exit codes:
  0  success
  1  division by zero
  2  malformed expression
  3  input could not be read
  4  number out of range
  5  evaluator stack exhausted
  6  any other failure

Examples:
  echo "(2+3)*4" | calc
  echo "1.5*2" | calc --float
  echo "7/2" | calc --remote http://localhost:8000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runEvaluate,
	}

	root.Flags().BoolVar(&c.float, "float", false, "Evaluate in floating-point mode")
	root.Flags().StringVar(&c.remote, "remote", "", "Evaluate on the calc server at this URL")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML or YAML config file (overrides "+config.FileEnv+")")

	root.AddCommand(newServeCmd(c))
	return root
}

// loadConfig reads the --config file when given, else CALC_CONFIG.
func (c *cli) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.LoadFrom(c.configPath)
	}
	return config.Load()
}

func (c *cli) runEvaluate(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger := logging.NewOrNop(logging.CLIConfig(c.logLevel, cfg.Logging.Development))
	defer func() { _ = logger.Sync() }()

	mode := cfg.Eval.Mode()
	if c.float {
		mode = expr.ModeFloat
	}

	line, err := console.ReadLine(c.stdin, cfg.Eval.MaxLineLength)
	if err != nil {
		c.fail(err)
		return nil
	}

	formatted, err := c.evaluate(cmd.Context(), cfg, logger, line, mode)
	if err != nil {
		logger.Debug("Evaluation failed", zap.String("kind", expr.KindOf(err).String()))
		c.fail(err)
		return nil
	}

	fmt.Fprintln(c.stdout, formatted)
	return nil
}

func (c *cli) evaluate(ctx context.Context, cfg *config.Config, logger *logging.Logger, line string, mode expr.Mode) (string, error) {
	if c.remote == "" {
		e := expr.New(expr.WithMode(mode), expr.WithStackCapacity(cfg.Eval.StackCapacity))
		n, err := e.Calculate(line)
		if err != nil {
			return "", err
		}
		return n.String(), nil
	}

	remote, err := client.New(c.remote, client.OptionsFromConfig(cfg.Client, logger))
	if err != nil {
		return "", err
	}
	if err := remote.Ping(ctx); err != nil {
		return "", fmt.Errorf("server %s is not healthy: %w", c.remote, err)
	}
	resp, err := remote.Evaluate(ctx, line, mode)
	if err != nil {
		logger.Debug("Remote evaluation failed",
			zap.String("server", c.remote),
			zap.String("breaker", remote.BreakerState().String()),
		)
		return "", err
	}
	return resp.Formatted, nil
}

func (c *cli) fail(err error) {
	console.Report(c.stderr, err)
	if kind := expr.KindOf(err); kind != expr.KindNone {
		c.code = expr.ExitCode(kind)
		return
	}
	c.code = exitFailure
}
