package main

import (
	"fmt"

	"casenara/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	configPath string
	verbose    bool

	v      *viper.Viper
	cfg    config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{
		v:      config.New(),
		cfg:    config.Default(),
		logger: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:               "casenara",
		Short:             "Helpers of the casenara admin console",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default ./casenara.yaml when present)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(
		a.chosungCommand(),
		a.filterCommand(),
		a.cloneCommand(),
		a.dateCommand(),
		a.guardCommand(),
	)

	return root
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}

	diags := cfg.Validate()
	if err := diags.Err(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	if a.verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, w := range diags.Warnings {
		logger.Warn("config warning",
			zap.String("key", w.Key),
			zap.String("code", w.Code),
			zap.String("message", w.Message))
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}
