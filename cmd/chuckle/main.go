package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tinytelemetry/chuckle/internal/logging"
	"github.com/tinytelemetry/chuckle/internal/model"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

// cli carries state shared by every command once flags are parsed.
type cli struct {
	v          *viper.Viper
	configPath string
	envFile    string
	cfg        appConfig
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: newConfigViper()}

	root := &cobra.Command{
		Use:   "chuckle",
		Short: "Browse Chuck Norris jokes from the terminal",
		Long: `chuckle shows a random joke and the list of joke categories.
Pick a category to read a batch of jokes from it.

Run without arguments to start the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), c.cfg, c.logger)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default is $HOME/.config/chuckle/config.yml)")
	pf.StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	pf.String("base-url", model.DefaultBaseURL, "joke API base URL")
	pf.Int("joke-count", model.DefaultJokeCount, "jokes requested per category page")
	pf.Duration("request-timeout", model.DefaultRequestTimeout, "per-request timeout")
	pf.String("log-level", model.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.String("log-file", "", "log file (default is the user cache dir)")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(newJokesCmd(c), newCategoriesCmd(c), newMockAPICmd(c), newVersionCmd())
	return root
}

// setup resolves configuration and builds the logger. Commands that draw a
// TUI log to a file; the others log to stderr unless a file is configured.
func (c *cli) setup(cmd *cobra.Command) error {
	if err := loadDotEnv(c.envFile); err != nil {
		return err
	}
	for _, name := range []string{"base-url", "joke-count", "request-timeout", "log-level", "log-file", "metrics-addr", "mock-addr", "fixtures"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := c.v.BindPFlag(name, f); err != nil {
				return fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	cfg, err := loadConfig(c.v, c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	logFile := cfg.LogFile
	if logFile == "" && cmd == cmd.Root() {
		logFile = defaultLogFile()
	}
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, File: logFile})
	if err != nil {
		return err
	}
	c.logger = logger
	logger.Debug("config loaded",
		zap.String("config", cfg.ConfigPath),
		zap.String("base_url", cfg.BaseURL),
		zap.Int("joke_count", cfg.JokeCount),
		zap.Duration("request_timeout", cfg.RequestTimeout),
	)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version needs neither config nor a logger.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chuckle - joke browser\n")
			fmt.Fprintf(out, "  Version:    %s\n", version)
			fmt.Fprintf(out, "  Commit:     %s\n", commit)
			fmt.Fprintf(out, "  Built:      %s\n", buildTime)
			fmt.Fprintf(out, "  Go version: %s\n", goVersion)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
