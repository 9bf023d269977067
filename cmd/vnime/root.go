package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vnime/internal/logging"
)

var (
	logLevel string
	noColor  bool

	logger = zap.NewNop()
)

var (
	okStyle    = color.New(color.FgGreen, color.Bold)
	errStyle   = color.New(color.FgRed, color.Bold)
	keyStyle   = color.New(color.FgCyan)
	labelStyle = color.New(color.FgYellow)
)

var rootCmd = &cobra.Command{
	Use:           "vnime",
	Short:         "vnime - Vietnamese input engine tools",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		cfg := logging.DefaultConfig()
		cfg.Level = level
		l, err := logging.New(cfg)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(typeCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(syllableCmd)
	rootCmd.AddCommand(shortcutsCmd)
	rootCmd.AddCommand(configCmd)
}
