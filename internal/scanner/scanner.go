// Package scanner reconciles configured directory trees against the media
// catalog: new and changed files are probed and upserted, unchanged files are
// skipped by modification time, and records of vanished files are pruned.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vmunix/mediascan/internal/catalog"
	"github.com/vmunix/mediascan/internal/probe"
)

// Root is one directory tree to synchronize.
type Root struct {
	Path string
	Type catalog.MediaType
	Tags []TagRule
}

// Config controls a Scanner.
type Config struct {
	Roots      []Root
	Extensions []string // lowercase, with leading dot
	Workers    int      // concurrent probes per root; <1 means 1
}

// Result summarizes one synchronization run.
type Result struct {
	RunID string

	Scanned   int // media files seen on disk
	Unchanged int // skipped by modification time
	Probed    int
	Rejected  int // probe output without a usable descriptor
	Failed    int // probe or stat failures

	Inserted  int
	Updated   int
	Recreated int // full-refresh replacements

	PrunedItems int
	PrunedPaths int

	RootErrors []RootError
	PruneError error

	Duration time.Duration
}

// RootError records a root whose batch was rolled back.
type RootError struct {
	Root string
	Err  error
}

func (e RootError) Error() string {
	return fmt.Sprintf("root %s: %v", e.Root, e.Err)
}

// Changed reports whether the run wrote anything to the catalog.
func (r *Result) Changed() bool {
	return r.Inserted+r.Updated+r.Recreated+r.PrunedItems+r.PrunedPaths > 0
}

// Scanner synchronizes the catalog with the filesystem.
type Scanner struct {
	store  *catalog.Store
	prober probe.Prober
	config Config
	roots  []compiledRoot
	exts   map[string]bool
	logger *slog.Logger
}

// New creates a Scanner. Root paths are made absolute and tag patterns are
// compiled here, so invalid rules fail before any work is done.
func New(store *catalog.Store, prober probe.Prober, cfg Config, logger *slog.Logger) (*Scanner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	roots := make([]compiledRoot, 0, len(cfg.Roots))
	for _, r := range cfg.Roots {
		abs, err := filepath.Abs(r.Path)
		if err != nil {
			return nil, fmt.Errorf("resolve root %s: %w", r.Path, err)
		}
		r.Path = abs
		rules, err := compileRules(r.Tags)
		if err != nil {
			return nil, fmt.Errorf("root %s: %w", r.Path, err)
		}
		roots = append(roots, compiledRoot{Root: r, rules: rules})
	}

	exts := make(map[string]bool, len(cfg.Extensions))
	for _, e := range cfg.Extensions {
		exts[e] = true
	}

	return &Scanner{
		store:  store,
		prober: prober,
		config: cfg,
		roots:  roots,
		exts:   exts,
		logger: logger.With("component", "scanner"),
	}, nil
}

// Run performs one synchronization pass over every root followed by a single
// prune. With refresh set, change detection is bypassed and every existing
// record is recreated.
//
// Failures confined to one file or one root are reported in the Result. The
// returned error is non-nil only when the run could not start or ctx was
// canceled.
func (s *Scanner) Run(ctx context.Context, refresh bool) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}
	logger := s.logger.With("run_id", res.RunID)

	locs, err := s.store.ListLocations()
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}

	r := &run{
		scanner: s,
		logger:  logger,
		refresh: refresh,
		index:   make(map[string]catalog.Location, len(locs)),
		seen:    make(map[string]bool),
		result:  res,
	}
	for _, loc := range locs {
		r.index[loc.FullPath()] = loc
	}

	logger.Info("scan started", "roots", len(s.roots), "indexed", len(r.index), "refresh", refresh)

	for _, root := range s.roots {
		if err := r.syncRoot(ctx, root); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			logger.Error("root rolled back", "root", root.Path, "error", err)
			res.RootErrors = append(res.RootErrors, RootError{Root: root.Path, Err: err})
		}
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	if err := r.prune(); err != nil {
		logger.Error("prune failed", "error", err)
		res.PruneError = err
	}

	res.Duration = time.Since(start)
	logger.Info("scan finished",
		"scanned", res.Scanned,
		"unchanged", res.Unchanged,
		"inserted", res.Inserted,
		"updated", res.Updated,
		"recreated", res.Recreated,
		"rejected", res.Rejected,
		"failed", res.Failed,
		"pruned_items", res.PrunedItems,
		"pruned_paths", res.PrunedPaths,
		"duration", res.Duration.Round(time.Millisecond),
	)
	return res, nil
}

// Err joins every root and prune error of the run, or returns nil.
func (r *Result) Err() error {
	errs := make([]error, 0, len(r.RootErrors)+1)
	for _, re := range r.RootErrors {
		errs = append(errs, re)
	}
	if r.PruneError != nil {
		errs = append(errs, fmt.Errorf("prune: %w", r.PruneError))
	}
	return errors.Join(errs...)
}
