package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the catalog lock.
var ErrLocked = errors.New("catalog is locked by another mediascan process")

// Lock is an advisory lock file next to the catalog database. Scans hold it
// exclusively; reports hold it shared.
type Lock struct {
	f *flock.Flock
}

// LockPath returns the lock file location for a database DSN. In-memory
// databases share one lock in the temp directory.
func LockPath(dsn string) string {
	file, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if file == "" || file == ":memory:" {
		return filepath.Join(os.TempDir(), "mediascan.lock")
	}
	return file + ".lock"
}

// AcquireExclusive takes the lock for writing without blocking.
func AcquireExclusive(path string) (*Lock, error) {
	return acquire(path, true)
}

// AcquireShared takes the lock for reading without blocking.
func AcquireShared(path string) (*Lock, error) {
	return acquire(path, false)
}

func acquire(path string, exclusive bool) (*Lock, error) {
	f := flock.New(path)
	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = f.TryLock()
	} else {
		ok, err = f.TryRLock()
	}
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, path)
	}
	return &Lock{f: f}, nil
}

// Release unlocks the lock file.
func (l *Lock) Release() error {
	return l.f.Unlock()
}
