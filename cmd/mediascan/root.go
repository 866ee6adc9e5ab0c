package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediascan/internal/catalog"
	"github.com/vmunix/mediascan/internal/config"
)

var version = "dev"

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "mediascan",
	Short: "Catalog video files and report inconsistencies in TV seasons",
	Long: `mediascan - media catalog synchronizer and consistency reporter

'mediascan scan' walks the configured roots, probes new or changed
video files with ffprobe and keeps an SQLite catalog in sync.
'mediascan report' analyzes TV seasons in the catalog for missing or
misplaced episodes and mixed sources, formats and sizes.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("mediascan {{.Version}}\n")
}

// loadConfig resolves the config path and loads it. Configuration errors are
// printed in full before being returned.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.Discover()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) {
			printConfigErrors(os.Stderr, cfgErr)
			return nil, fmt.Errorf("configuration invalid: %s", path)
		}
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// catalogDSN returns the DSN of the first enabled database.
func catalogDSN(cfg *config.Config) (string, error) {
	connect, ok := cfg.DatabaseConnect()
	if !ok {
		return "", errors.New("no enabled database configured")
	}
	return catalog.DSN(connect), nil
}

// openCatalog opens dsn and applies the schema. Callers hold the catalog lock.
func openCatalog(dsn string) (*catalog.Store, *sql.DB, error) {
	db, err := catalog.Open(dsn)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewStore(db), db, nil
}

func printConfigErrors(w io.Writer, e *config.Error) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}
