// Package main provides the vibe-anno command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var logger = zap.NewNop()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "vibe-anno",
		Short: "Annotate variant calls with vcfanno",
		Long: "vibe-anno selects, merges and applies vcfanno annotation configurations " +
			"to VCF files based on per-sample metadata, producing bgzipped and " +
			"tabix-indexed output.",
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(cfgFile); err != nil {
				return err
			}
			return initLogger(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.vibe-anno.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	cmd.AddCommand(newAnnotateCmd())
	cmd.AddCommand(newProfilesCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func initConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".vibe-anno")
		viper.SetConfigType("yaml")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func initLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger = l
	return nil
}

// defaultConfigPath returns the config file viper is using, or the default
// location when none is loaded yet.
func defaultConfigPath() (string, error) {
	if cfgFile := viper.ConfigFileUsed(); cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".vibe-anno.yaml"), nil
}
