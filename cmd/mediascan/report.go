package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediascan/internal/analysis"
	"github.com/vmunix/mediascan/internal/catalog"
	"github.com/vmunix/mediascan/internal/options"
	"github.com/vmunix/mediascan/internal/report"
	"github.com/vmunix/mediascan/internal/scanner"
)

var (
	reportCodecs    bool
	reportDetails   bool
	reportLanguages bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report continuity and consistency problems per show and season",
	Long: `Analyzes every "<show>/Season N" directory of the configured category and
prints missing and out-of-place episodes, inconsistent file sizes and bit
rates, and mixed sources, resolutions and pixel formats.

Shows seen for the first time are added to the options file unlocked; set
"locked": true for a show there, or run "mediascan shows lock", to silence it.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVarP(&reportCodecs, "codecs", "c", false, "Also report video and audio codec mixtures")
	reportCmd.Flags().BoolVarP(&reportDetails, "details", "d", false, "Write a per-item details table to the details file")
	reportCmd.Flags().BoolVarP(&reportLanguages, "languages", "l", false, "Also report multiple default audio languages")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	dsn, err := catalogDSN(cfg)
	if err != nil {
		return err
	}
	lock, err := scanner.AcquireShared(scanner.LockPath(dsn))
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	store, db, err := openCatalog(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	opts, err := options.Load(cfg.Report.OptionsFile, logger)
	if err != nil {
		return err
	}

	a := analysis.New(store, opts, analysis.Config{
		Category:     catalog.MediaType(cfg.Report.Category),
		ThresholdPct: cfg.Report.ThresholdPct,
	}, logger)
	result, err := a.Analyze(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.Write(out, result, report.Options{
		Codecs:           reportCodecs,
		DefaultLanguages: reportLanguages,
	}); err != nil {
		return err
	}

	if reportDetails {
		if err := writeDetailsFile(cfg.Report.DetailsFile, result); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s written.\n", cfg.Report.DetailsFile)
	}

	if err := opts.Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s updated.\n", opts.Path())
	return nil
}

func writeDetailsFile(path string, r *analysis.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create details file: %w", err)
	}
	if err := report.WriteDetails(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("write details file: %w", err)
	}
	return f.Close()
}
