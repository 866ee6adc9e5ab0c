package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediascan/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates syntax, required fields and environment variable substitution without scanning.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		p, err := config.Discover()
		if err != nil {
			return err
		}
		path = p
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return errors.New("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	if connect, ok := cfg.DatabaseConnect(); ok {
		fmt.Fprintf(w, "  Database:   %s\n", connect)
	}
	fmt.Fprintf(w, "  Log level:  %s\n", cfg.LogLevel)

	roots := cfg.EnabledRoots()
	fmt.Fprintf(w, "  Roots:      %d enabled\n", len(roots))
	for _, r := range roots {
		line := fmt.Sprintf("    %s (%s)", r.Path, r.Type)
		if len(r.Tags) > 0 {
			tags := make([]string, len(r.Tags))
			for i, t := range r.Tags {
				tags[i] = t.Tag
			}
			line += " tags: " + strings.Join(tags, ", ")
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintf(w, "  Scan:       %s, %d workers\n", strings.Join(cfg.Scan.Extensions, " "), cfg.Scan.Workers)
	fmt.Fprintf(w, "  Report:     category %s, threshold %.0f%%, options %s\n",
		cfg.Report.Category, cfg.Report.ThresholdPct, cfg.Report.OptionsFile)
}
