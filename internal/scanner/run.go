package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/mediascan/internal/catalog"
	"github.com/vmunix/mediascan/internal/probe"
	"github.com/vmunix/mediascan/pkg/release"
)

// run is the state of one synchronization pass. The index is built once
// before the first root and is read-only afterwards.
type run struct {
	scanner *Scanner
	logger  *slog.Logger
	refresh bool
	index   map[string]catalog.Location
	seen    map[string]bool // files already handled by an earlier root
	result  *Result
}

// rootCounts is merged into the Result after a root finishes.
type rootCounts struct {
	scanned, unchanged, probed, rejected, failed int
	inserted, updated, recreated                 int
}

// rootBatch holds the per-root transaction. All catalog writes go through tx
// while holding mu.
type rootBatch struct {
	root  compiledRoot
	tx    *catalog.Tx
	mu    sync.Mutex
	paths map[string]int64 // dir -> path id
	n     rootCounts
}

func (r *run) syncRoot(ctx context.Context, root compiledRoot) error {
	logger := r.logger.With("root", root.Path)
	logger.Info("syncing root")

	files, err := r.walk(root, logger)
	if err != nil {
		return err
	}

	tx, err := r.scanner.store.Begin()
	if err != nil {
		return err
	}
	b := &rootBatch{root: root, tx: tx, paths: make(map[string]int64)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.scanner.config.Workers)
	for _, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			return r.syncFile(gctx, b, path, logger)
		})
	}
	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Warn("rollback failed", "error", rbErr)
		}
		r.merge(b.n, false)
		return err
	}
	if err := tx.Commit(); err != nil {
		r.merge(b.n, false)
		return err
	}
	r.merge(b.n, true)
	return nil
}

func (r *run) merge(n rootCounts, committed bool) {
	res := r.result
	res.Scanned += n.scanned
	res.Unchanged += n.unchanged
	res.Probed += n.probed
	res.Rejected += n.rejected
	res.Failed += n.failed
	if committed {
		res.Inserted += n.inserted
		res.Updated += n.updated
		res.Recreated += n.recreated
	}
}

// walk lists the media files under root in lexical order. Unreadable
// subdirectories are logged and skipped; an unreadable root is an error.
func (r *run) walk(root compiledRoot, logger *slog.Logger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root.Path {
				return fmt.Errorf("walk root: %w", err)
			}
			logger.Warn("walk error", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if !r.scanner.exts[strings.ToLower(filepath.Ext(name))] {
			return nil
		}
		if r.seen[path] {
			return nil
		}
		r.seen[path] = true
		files = append(files, path)
		return nil
	})
	return files, err
}

// syncFile handles one media file. Only persistence errors are returned;
// everything else is logged and counted.
func (r *run) syncFile(ctx context.Context, b *rootBatch, path string, logger *slog.Logger) error {
	loc, indexed := r.index[path]

	info, err := os.Stat(path)
	if err != nil {
		logger.Warn("stat failed", "file", path, "error", err)
		b.count(func(n *rootCounts) { n.scanned++; n.failed++ })
		return nil
	}

	if indexed && !r.refresh && info.ModTime().Equal(loc.LastModified) {
		b.count(func(n *rootCounts) { n.scanned++; n.unchanged++ })
		return nil
	}

	result, err := r.scanner.prober.Probe(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("probe failed", "file", path, "error", err)
		b.count(func(n *rootCounts) { n.scanned++; n.failed++ })
		return nil
	}

	desc, err := probe.Normalize(result, probe.FileStat{SizeBytes: info.Size(), ModTime: info.ModTime()})
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, probe.ErrInvalid) {
			level = slog.LevelError
		}
		logger.Log(ctx, level, "skipping file", "file", path, "error", err)
		b.count(func(n *rootCounts) { n.scanned++; n.probed++; n.rejected++ })
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.n.scanned++
	b.n.probed++

	item := itemFromDescriptor(desc, filepath.Base(path), b.root.classify(path))

	switch {
	case indexed && r.refresh:
		if err := b.tx.DeleteItem(loc.ItemID); err != nil {
			return fmt.Errorf("recreate %s: %w", path, err)
		}
		item.PathID = loc.PathID
		if err := b.tx.AddItem(item); err != nil {
			return fmt.Errorf("recreate %s: %w", path, err)
		}
		b.n.recreated++
		logger.Debug("recreated", "file", path)
	case indexed:
		item.ID = loc.ItemID
		item.PathID = loc.PathID
		if err := b.tx.UpdateItem(item); err != nil {
			return fmt.Errorf("update %s: %w", path, err)
		}
		b.n.updated++
		logger.Debug("updated", "file", path)
	default:
		pathID, err := b.pathID(filepath.Dir(path))
		if err != nil {
			return err
		}
		item.PathID = pathID
		if err := b.tx.AddItem(item); err != nil {
			return fmt.Errorf("insert %s: %w", path, err)
		}
		b.n.inserted++
		logger.Info("added", "file", path)
	}
	return nil
}

func (b *rootBatch) count(fn func(*rootCounts)) {
	b.mu.Lock()
	fn(&b.n)
	b.mu.Unlock()
}

// pathID returns the id of the Path for dir, creating it if needed.
// Callers hold b.mu.
func (b *rootBatch) pathID(dir string) (int64, error) {
	if id, ok := b.paths[dir]; ok {
		return id, nil
	}

	p, err := b.tx.GetPathByLocation(dir)
	if errors.Is(err, catalog.ErrNotFound) {
		p = &catalog.Path{FilePath: dir, MediaType: b.root.Type}
		if title, ok := release.ShowTitle(dir); ok {
			p.Title = &title
		}
		if err := b.tx.AddPath(p); err != nil {
			return 0, fmt.Errorf("add path %s: %w", dir, err)
		}
	} else if err != nil {
		return 0, fmt.Errorf("lookup path %s: %w", dir, err)
	}

	b.paths[dir] = p.ID
	return p.ID, nil
}

func itemFromDescriptor(d *probe.Descriptor, filename string, tag *string) *catalog.Item {
	it := &catalog.Item{
		Filename:     filename,
		VideoCodec:   d.VideoCodec,
		Width:        d.Width,
		Height:       d.Height,
		DurationMin:  d.DurationMin,
		FPS:          d.FPS,
		ColorSpace:   d.ColorSpace,
		PixFormat:    d.PixFormat,
		BitRate:      d.BitRate,
		FileSizeMB:   d.FileSizeMB,
		LastModified: d.ModTime,
		Tag:          tag,
	}
	for _, a := range d.Audio {
		it.Audio = append(it.Audio, catalog.AudioTrack{
			Lang:          a.Lang,
			Codec:         a.Codec,
			ChannelLayout: a.ChannelLayout,
			BitRate:       a.BitRate,
			IsDefault:     a.IsDefault,
		})
	}
	for _, s := range d.Subtitles {
		it.Subtitles = append(it.Subtitles, catalog.SubtitleTrack{
			Lang:      s.Lang,
			Format:    s.Format,
			IsDefault: s.IsDefault,
		})
	}
	return it
}

// prune deletes indexed items whose file is gone, then paths whose directory
// is gone, in one transaction. Stat errors other than "not exist" keep the
// record.
func (r *run) prune() error {
	tx, err := r.scanner.store.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var items, paths int
	for full, loc := range r.index {
		if !vanished(full, r.logger) {
			continue
		}
		if err := tx.DeleteItem(loc.ItemID); err != nil {
			return fmt.Errorf("delete item %s: %w", full, err)
		}
		items++
		r.logger.Info("removed", "file", full)
	}

	all, err := tx.ListPaths(catalog.PathFilter{})
	if err != nil {
		return err
	}
	for _, p := range all {
		if !vanished(p.FilePath, r.logger) {
			continue
		}
		if err := tx.DeletePath(p.ID); err != nil {
			return fmt.Errorf("delete path %s: %w", p.FilePath, err)
		}
		paths++
		r.logger.Info("removed directory", "path", p.FilePath)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	r.result.PrunedItems = items
	r.result.PrunedPaths = paths
	return nil
}

func vanished(path string, logger *slog.Logger) bool {
	_, err := os.Stat(path)
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	logger.Warn("cannot check existence, keeping record", "path", path, "error", err)
	return false
}
