package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/ukaji3/certalert-go/pkg/certalert"
	"github.com/ukaji3/certalert-go/pkg/certalert/config"
	"github.com/ukaji3/certalert-go/pkg/certalert/notifier"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func run(cmd *cobra.Command, args []string, opts *cliOptions) error {
	logger := opts.logger.With(zap.String("run_id", uuid.NewString()))

	// Missing credentials are fatal before the settings file or the
	// spreadsheet is read. Dry runs send nothing and need none.
	var secrets *config.Secrets
	if !opts.dryRun {
		s, err := config.LoadSecrets(opts.envFile)
		if err != nil {
			logger.Error("telegram credentials not loaded",
				zap.Error(err),
				zap.String("hint", fmt.Sprintf("set TELEGRAM_TOKEN and TELEGRAM_CHAT_ID in the environment or in %q", opts.envFile)),
			)
			return fmt.Errorf("%w: %w", errReported, err)
		}
		secrets = s
	}

	// Configuration problems are fatal and happen before the spreadsheet is opened.
	cfg, err := config.Load(opts.configPath, !cmd.Flags().Changed("config"))
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return fmt.Errorf("%w: %w", errReported, err)
	}
	if len(args) == 1 {
		cfg.Settings.File = args[0]
	}
	if cmd.Flags().Changed("sheet") {
		cfg.Settings.Sheet = opts.sheet
	}
	if cmd.Flags().Changed("window") {
		cfg.Settings.WindowDays = opts.windowDays
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return fmt.Errorf("%w: %w", errReported, err)
	}

	var n certalert.Notifier
	if secrets != nil {
		n = notifier.NewTelegramNotifier(secrets.Token, secrets.ChatID,
			notifier.WithAPIURL(cfg.Telegram.APIURL),
		)
	}

	runOpts := certalert.Options{
		File:       cfg.Settings.File,
		Sheet:      cfg.Settings.Sheet,
		WindowDays: cfg.Settings.WindowDays,
		Columns:    cfg.Columns.Report(),
		DryRun:     opts.dryRun,
	}

	runner := certalert.NewRunner(runOpts, n, logger)
	if _, err := runner.Run(cmd.Context()); err != nil {
		logRunError(logger, err)
		if opts.strict {
			return fmt.Errorf("%w: %w", errReported, err)
		}
	}
	return nil
}

func logRunError(logger *zap.Logger, err error) {
	fields := []zap.Field{zap.Error(err)}

	var runErr *certalert.RunError
	if errors.As(err, &runErr) {
		fields = append(fields, zap.String("stage", string(runErr.Stage)))
		if runErr.Hint != "" {
			fields = append(fields, zap.String("hint", runErr.Hint))
		}
	}

	var apiErr *notifier.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.Int("status", apiErr.StatusCode), zap.String("body", apiErr.Body))
	}

	logger.Error("run failed", fields...)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.DisableStacktrace = true
	config.Sampling = nil
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
