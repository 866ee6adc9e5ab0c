package scanner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock_ExclusiveExcludesOthers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.db.lock")

	l, err := AcquireExclusive(path)
	require.NoError(t, err)

	_, err = AcquireExclusive(path)
	assert.ErrorIs(t, err, ErrLocked)
	_, err = AcquireShared(path)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, l.Release())

	again, err := AcquireExclusive(path)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestLock_SharedAllowsShared(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.db.lock")

	a, err := AcquireShared(path)
	require.NoError(t, err)
	b, err := AcquireShared(path)
	require.NoError(t, err)

	_, err = AcquireExclusive(path)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, a.Release())
	require.NoError(t, b.Release())
}

func TestLockPath(t *testing.T) {
	assert.Equal(t, "/var/lib/media.db.lock", LockPath("/var/lib/media.db"))
	assert.Equal(t, "/var/lib/media.db.lock", LockPath("file:/var/lib/media.db?_pragma=busy_timeout(5000)"))
	assert.Equal(t, "mediascan.lock", filepath.Base(LockPath(":memory:")))
}
