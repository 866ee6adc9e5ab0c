package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediascan/internal/catalog"
	"github.com/vmunix/mediascan/internal/config"
	"github.com/vmunix/mediascan/internal/probe"
	"github.com/vmunix/mediascan/internal/scanner"
)

var (
	scanRefresh bool
	scanWatch   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Synchronize the catalog with the configured roots",
	Long: `Walks every enabled root, probes new or modified media files and
updates the catalog, then removes records of files and directories that
no longer exist.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanRefresh, "refresh", false, "Reprobe every file and recreate all records")
	scanCmd.Flags().BoolVar(&scanWatch, "watch", false, "Keep running and rescan after filesystem changes")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	dsn, err := catalogDSN(cfg)
	if err != nil {
		return err
	}
	lock, err := scanner.AcquireExclusive(scanner.LockPath(dsn))
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	store, db, err := openCatalog(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	s, err := scanner.New(store, probe.NewFFProbe(cfg.Scan.FFProbe, cfg.Scan.ProbeTimeout), scannerConfig(cfg), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	if scanWatch {
		return s.Watch(ctx, scanRefresh, cfg.Scan.WatchDebounce, func(res *scanner.Result, err error) {
			if err != nil {
				if ctx.Err() == nil {
					logger.Error("scan failed", "error", err)
				}
				return
			}
			printScanResult(out, res)
		})
	}

	res, err := s.Run(ctx, scanRefresh)
	if err != nil {
		return err
	}
	printScanResult(out, res)
	return nil
}

func scannerConfig(cfg *config.Config) scanner.Config {
	sc := scanner.Config{
		Extensions: cfg.Scan.Extensions,
		Workers:    cfg.Scan.Workers,
	}
	for _, r := range cfg.EnabledRoots() {
		root := scanner.Root{Path: r.Path, Type: catalog.MediaType(r.Type)}
		for _, t := range r.Tags {
			root.Tags = append(root.Tags, scanner.TagRule{Pattern: t.Pattern, Tag: t.Tag})
		}
		sc.Roots = append(sc.Roots, root)
	}
	return sc
}

// printScanResult writes the run summary. Root failures are listed but do not
// change the exit status.
func printScanResult(w io.Writer, res *scanner.Result) {
	fmt.Fprintf(w, "Scanned %d files: %d added, %d updated, %d recreated, %d unchanged, %d rejected, %d failed\n",
		res.Scanned, res.Inserted, res.Updated, res.Recreated, res.Unchanged, res.Rejected, res.Failed)
	fmt.Fprintf(w, "Removed %d items and %d directories\n", res.PrunedItems, res.PrunedPaths)
	for _, re := range res.RootErrors {
		fmt.Fprintf(w, "warning: %s (rolled back)\n", re.Error())
	}
	if res.PruneError != nil {
		fmt.Fprintf(w, "warning: prune failed: %v\n", res.PruneError)
	}
}
