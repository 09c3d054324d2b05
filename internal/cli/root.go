package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ta/config"
)

// RootConfig holds the persistent flags shared by every subcommand.
type RootConfig struct {
	ConfigPath string
	LogLevel   string

	log *slog.Logger
}

// Logger returns the logger configured by --log-level.
func (rc *RootConfig) Logger() *slog.Logger {
	if rc.log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return rc.log
}

// Load reads --config, or returns the defaults when it is not set.
func (rc *RootConfig) Load() (*config.Config, error) {
	if rc.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(rc.ConfigPath)
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("bad --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:           "ta",
		Short:         "ta computes technical indicators over price tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(cmd.ErrOrStderr(), rc.LogLevel)
		if err != nil {
			return err
		}
		rc.log = l
		return nil
	}

	cmd.AddCommand(
		newRunCmd(rc),
		newStreamCmd(rc),
		newSummaryCmd(rc),
		newConfigCmd(rc),
		newVersionCmd(),
	)
	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
