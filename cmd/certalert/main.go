// Package main provides the CLI entry point for certalert.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/certalert-go/pkg/certalert/config"
	"go.uber.org/zap"
)

// Version is the certalert release.
const Version = "1.0.0"

// errReported marks errors that were already written to the log.
var errReported = errors.New("reported")

type cliOptions struct {
	configPath string
	envFile    string
	sheet      string
	windowDays int
	dryRun     bool
	strict     bool
	verbose    bool

	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "certalert [input.xlsx]",
		Short: "Send a Telegram reminder for certificates about to expire",
		Long: `certalert reads a spreadsheet of certificate expiration records, selects the
entries expiring within the alert window and sends one consolidated message
through the Telegram Bot API.

Credentials are read from TELEGRAM_TOKEN and TELEGRAM_CHAT_ID, optionally
loaded from a .env file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultConfigFile, "Settings file (TOML); optional unless set explicitly")
	flags.StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "Environment file holding TELEGRAM_TOKEN and TELEGRAM_CHAT_ID")
	flags.StringVar(&opts.sheet, "sheet", "", "Sheet name (default: first sheet)")
	flags.IntVarP(&opts.windowDays, "window", "w", 0, "Alert window in days (default from settings, 7)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Build and log the report without sending it")
	flags.BoolVar(&opts.strict, "strict", false, "Exit non-zero when the file is missing, processing fails or delivery fails")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "certalert v%s\n", Version)
		},
	})

	return rootCmd
}
