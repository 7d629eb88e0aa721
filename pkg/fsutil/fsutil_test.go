package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhl/pkg/fsutil"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func cancelled() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("content and metadata", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "# hello\n")
		got, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "# hello\n", string(got))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(8), info.Size)
		assert.Equal(t, os.FileMode(0o644), info.Mode.Perm())
		assert.NotZero(t, info.Hash)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(cancelled(), writeFile(t, "x"))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "same")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		modified, err := fsutil.CheckModified(context.Background(), info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("content change with same size and time", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "aaaa")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("bbbb"), 0o644))
		require.NoError(t, os.Chtimes(path, info.ModTime, info.ModTime))

		modified, err := fsutil.CheckModified(context.Background(), info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("mod time change", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "same")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		later := info.ModTime.Add(time.Hour)
		require.NoError(t, os.Chtimes(path, later, later))

		modified, err := fsutil.CheckModified(context.Background(), info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "gone")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := fsutil.CheckModified(context.Background(), info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(context.Background(), nil)
		require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates file with mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.yml")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("a: 1\n"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a: 1\n", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("default mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.yml")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, nil, 0))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, fsutil.WriteAtomic(context.Background(), filepath.Join(dir, "a"), []byte("x"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "no", "such", "dir", "a")
		require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a")
		require.ErrorIs(t, fsutil.WriteAtomic(cancelled(), path, []byte("x"), 0), context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestSameContent(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "one")

	same, err := fsutil.SameContent(path, []byte("one"))
	require.NoError(t, err)
	assert.True(t, same)

	same, err = fsutil.SameContent(path, []byte("two"))
	require.NoError(t, err)
	assert.False(t, same)

	same, err = fsutil.SameContent(filepath.Join(t.TempDir(), "missing"), nil)
	require.NoError(t, err)
	assert.False(t, same, "missing file")
}

func TestReplaceWithBackup(t *testing.T) {
	t.Parallel()

	t.Run("unchanged content", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "same")
		backup, written, err := fsutil.ReplaceWithBackup(context.Background(), path, []byte("same"), 0)
		require.NoError(t, err)
		assert.False(t, written)
		assert.Empty(t, backup)
		assert.NoFileExists(t, fsutil.BackupPath(path))
	})

	t.Run("changed content", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "old")
		require.NoError(t, os.Chmod(path, 0o600))

		backup, written, err := fsutil.ReplaceWithBackup(context.Background(), path, []byte("new"), 0)
		require.NoError(t, err)
		assert.True(t, written)
		assert.Equal(t, fsutil.BackupPath(path), backup)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		old, err := os.ReadFile(backup)
		require.NoError(t, err)
		assert.Equal(t, "old", string(old))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm(), "mode kept")
	})
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	t.Run("copies content", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "old")
		backup, err := fsutil.CreateBackup(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.BackupPath(path), backup)

		got, err := os.ReadFile(backup)
		require.NoError(t, err)
		assert.Equal(t, "old", string(got))
	})

	t.Run("replaces older backup", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "first")
		_, err := fsutil.CreateBackup(context.Background(), path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))
		backup, err := fsutil.CreateBackup(context.Background(), path)
		require.NoError(t, err)

		got, err := os.ReadFile(backup)
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		backup, err := fsutil.CreateBackup(context.Background(), filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, backup)
	})

	t.Run("suffix", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a.yml.bak", fsutil.BackupPath("a.yml"))
	})
}
