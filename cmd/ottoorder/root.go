package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hammamikhairi/ottoorder/internal/config"
	"github.com/hammamikhairi/ottoorder/internal/logger"
)

// rootOptions holds the global flags shared by every command.
type rootOptions struct {
	cfgFile string
	envFile string
}

// flagKeys maps command-line flags to config keys. Flags a command does
// not define are skipped.
var flagKeys = map[string]string{
	"log-level":   "log.level",
	"log-file":    "log.file",
	"addr":        "server.addr",
	"catalog-dir": "catalog.dir",
	"timezone":    "catalog.timezone",
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ottoorder",
		Short: "Rule-based restaurant ordering assistant",
		Long: `ottoorder takes food orders in Portuguese over a chat interface.

It serves a stateless HTTP chat endpoint per restaurant, offers a local
terminal chat for trying catalogs out, and validates catalog documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.PersistentFlags().String("log-level", "normal", "log level (off|normal|verbose)")
	cmd.PersistentFlags().String("log-file", "", "rotate logs into this file instead of stderr")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newChatCommand(opts))
	cmd.AddCommand(newValidateCommand())

	return cmd
}

// loadConfig resolves the configuration for cmd: dotenv file, config
// file, OTTOORDER_* variables, then the flags the user actually set.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	if opts.envFile != "" {
		// A missing .env is normal.
		if err := godotenv.Load(opts.envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", opts.envFile, err)
		}
	}

	v, err := config.NewViper(opts.cfgFile)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}
	return config.Load(v)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// newLogger builds the application logger. With a log file configured
// the output is rotated by lumberjack; the returned closer releases it.
func newLogger(cfg *config.Config) (*logger.Logger, io.Closer) {
	if cfg.Log.File == "" {
		return logger.New(cfg.LogLevel(), os.Stderr), nopCloser{}
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
	return logger.New(cfg.LogLevel(), lj), lj
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
