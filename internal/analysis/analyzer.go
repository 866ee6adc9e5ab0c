// Package analysis groups TV catalog records by show and season and computes
// continuity (missing or misplaced episodes) and consistency (size, bit rate,
// source and format mixtures) findings.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/vmunix/mediascan/internal/catalog"
	"github.com/vmunix/mediascan/pkg/release"
)

// DefaultThresholdPct is the coefficient-of-variation limit, in percent,
// above which sizes or bit rates are inconsistent.
const DefaultThresholdPct = 40.0

// Config controls an Analyzer.
type Config struct {
	Category     catalog.MediaType
	ThresholdPct float64
}

// Options is the per-show options registry the analyzer consults.
type Options interface {
	Ensure(name string) bool
	IsLocked(name string) bool
}

// Show groups the seasons of one show directory.
type Show struct {
	Name    string
	Dir     string
	Locked  bool
	Seasons []*Season // ascending by number

	Sources     []string
	Resolutions []string
	VideoCodecs []string
	PixFormats  []string
}

// Report is the outcome of one analysis run.
type Report struct {
	Shows    []*Show // ascending by directory
	Warnings []string
}

// Analyzer reads the catalog and produces a Report.
type Analyzer struct {
	store   *catalog.Store
	options Options
	config  Config
	logger  *slog.Logger
}

// New creates an Analyzer.
func New(store *catalog.Store, opts Options, cfg Config, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Category == "" {
		cfg.Category = catalog.MediaTypeTV
	}
	if cfg.ThresholdPct == 0 {
		cfg.ThresholdPct = DefaultThresholdPct
	}
	return &Analyzer{
		store:   store,
		options: opts,
		config:  cfg,
		logger:  logger.With("component", "analysis"),
	}
}

// Analyze groups every qualifying season by show and evaluates it. Every
// show found is registered with the options store; locked shows are reported
// by name only and their seasons are not evaluated.
func (a *Analyzer) Analyze(ctx context.Context) (*Report, error) {
	category := a.config.Category
	paths, err := a.store.ListPaths(catalog.PathFilter{MediaType: &category})
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	items, err := a.store.ListItems(catalog.ItemFilter{MediaType: &category})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	byPath := make(map[int64][]*catalog.Item)
	for _, it := range items {
		byPath[it.PathID] = append(byPath[it.PathID], it)
	}

	type seasonDir struct {
		path   *catalog.Path
		number int
		items  []*catalog.Item
	}
	byShow := make(map[string][]seasonDir)
	for _, p := range paths {
		number, showDir, ok := release.SeasonDir(p.FilePath)
		if !ok || number == 0 || len(byPath[p.ID]) == 0 {
			continue
		}
		byShow[showDir] = append(byShow[showDir], seasonDir{p, number, byPath[p.ID]})
	}

	showDirs := make([]string, 0, len(byShow))
	for dir := range byShow {
		showDirs = append(showDirs, dir)
	}
	sort.Strings(showDirs)

	report := &Report{}
	for _, dir := range showDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		show := &Show{Name: filepath.Base(dir), Dir: dir}
		if a.options != nil {
			if a.options.Ensure(show.Name) {
				a.logger.Info("registered new show", "show", show.Name)
			}
			show.Locked = a.options.IsLocked(show.Name)
		}
		if show.Locked {
			report.Shows = append(report.Shows, show)
			continue
		}

		seasons := byShow[dir]
		sort.Slice(seasons, func(i, j int) bool { return seasons[i].number < seasons[j].number })
		for _, sd := range seasons {
			season := analyzeSeason(sd.path.FilePath, sd.number, sd.items, a.config.ThresholdPct, a.logger)
			if season.Size.N == 0 || season.Size.Mean == 0 {
				msg := fmt.Sprintf("missing size data in %s, Season %d - skipped", show.Name, sd.number)
				a.logger.Warn("missing aggregate data, season skipped", "dir", sd.path.FilePath)
				report.Warnings = append(report.Warnings, msg)
				continue
			}
			show.Seasons = append(show.Seasons, season)
		}
		if len(show.Seasons) == 0 {
			continue
		}
		summarize(show)
		report.Shows = append(report.Shows, show)
	}

	a.logger.Info("analysis finished", "shows", len(report.Shows), "warnings", len(report.Warnings))
	return report, nil
}

// summarize fills the show-level sets from its seasons.
func summarize(show *Show) {
	sources, res, vcodecs, pixfmts := make(set), make(set), make(set), make(set)
	for _, s := range show.Seasons {
		sources.merge(s.Sources)
		res.merge(s.Resolutions)
		vcodecs.merge(s.VideoCodecs)
		pixfmts.merge(s.PixFormats)
	}
	show.Sources = sources.sorted()
	show.Resolutions = res.sorted()
	show.VideoCodecs = vcodecs.sorted()
	show.PixFormats = pixfmts.sorted()
}
