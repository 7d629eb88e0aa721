package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupSuffix is appended to a file's path to name its backup.
const BackupSuffix = ".bak"

// BackupPath returns where the backup of path is written.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies path to BackupPath(path), replacing an older backup,
// and returns the backup path. If path does not exist there is nothing to
// back up and the returned path is empty.
func CreateBackup(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("create backup: %w", ctx.Err())
	default:
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read original for backup: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat original for backup: %w", err)
	}

	backupPath := BackupPath(path)
	if err := WriteAtomic(ctx, backupPath, content, stat.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}

// ReplaceWithBackup overwrites path with content after backing it up. When
// path already holds content nothing is written and no backup is taken;
// written is false and backup is empty.
func ReplaceWithBackup(ctx context.Context, path string, content []byte, mode os.FileMode) (backup string, written bool, err error) {
	same, err := SameContent(path, content)
	if err != nil {
		return "", false, err
	}
	if same {
		return "", false, nil
	}

	backup, err = CreateBackup(ctx, path)
	if err != nil {
		return "", false, err
	}
	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return backup, false, err
	}
	return backup, true, nil
}
