package file

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage interface for local filesystem.
// All operations are confined to baseDir to prevent path traversal attacks.
// Safe for concurrent use with proper file locking by the OS.
type LocalStorage struct {
	baseDir      string // Absolute path - all files stored within this directory
	dirPerm      fs.FileMode
	filePerm     fs.FileMode
	atomicWrites bool
}

// LocalOption defines a function that configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithAtomicWrites writes each file to a temporary sibling first and links it into
// place once complete, so a crash mid-write never leaves a truncated file under the
// final name. Off by default.
func WithAtomicWrites() LocalOption {
	return func(s *LocalStorage) {
		s.atomicWrites = true
	}
}

// WithPermissions overrides the default 0755 directory and 0644 file modes.
func WithPermissions(dirPerm, filePerm fs.FileMode) LocalOption {
	return func(s *LocalStorage) {
		if dirPerm != 0 {
			s.dirPerm = dirPerm
		}
		if filePerm != 0 {
			s.filePerm = filePerm
		}
	}
}

// NewLocalStorage creates a new local filesystem storage.
// baseDir is resolved to absolute path and created if it doesn't exist.
func NewLocalStorage(baseDir string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	// Must resolve to absolute path for security - prevents relative path confusion
	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	s := &LocalStorage{
		baseDir:  absBaseDir,
		dirPerm:  0755,
		filePerm: 0644,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(absBaseDir, s.dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	return s, nil
}

// Root returns the absolute base directory.
func (s *LocalStorage) Root() string {
	return s.baseDir
}

// EnsureDir creates dir and its parents below the base directory.
// A directory that appears concurrently counts as success.
func (s *LocalStorage) EnsureDir(ctx context.Context, dir string) error {
	absPath, err := s.resolvePath(dir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(absPath, s.dirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
				return nil
			}
		}
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	return nil
}

// Write stores data under key. An existing file is never replaced.
// ctx is not consulted: a started write either completes or fails with an I/O error.
func (s *LocalStorage) Write(_ context.Context, key string, data []byte, _ string) (*Object, error) {
	absPath, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}
	if absPath == s.baseDir {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}

	if s.atomicWrites {
		err = s.writeAtomic(absPath, data)
	} else {
		err = s.writeExclusive(absPath, data)
	}
	if err != nil {
		return nil, err
	}

	relPath, err := filepath.Rel(s.baseDir, absPath)
	if err != nil {
		relPath = key // Fallback to original key
	}

	return &Object{
		Key:  filepath.ToSlash(relPath),
		Path: absPath,
		Size: int64(len(data)),
	}, nil
}

// writeExclusive creates the file with O_EXCL and removes it again on a failed write.
func (s *LocalStorage) writeExclusive(absPath string, data []byte) error {
	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, s.filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrFileExists, filepath.Base(absPath))
		}
		return fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}

	if _, err := dst.Write(data); err != nil {
		_ = dst.Close()
		_ = os.Remove(absPath) // Clean up partial file
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return nil
}

// writeAtomic writes to a hidden temporary sibling, syncs it and hard-links it to
// absPath. Linking fails when absPath exists, which keeps the no-overwrite guarantee.
func (s *LocalStorage) writeAtomic(absPath string, data []byte) error {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	tmpPath := filepath.Join(filepath.Dir(absPath), ".tmp-"+hex.EncodeToString(suffix))

	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, s.filePerm)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	if err := os.Link(tmpPath, absPath); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrFileExists, filepath.Base(absPath))
		}
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return nil
}

// Delete removes a single file. Relative paths resolve against the base directory,
// absolute paths must already point inside it.
func (s *LocalStorage) Delete(ctx context.Context, p string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	var (
		absPath string
		err     error
	)
	if filepath.IsAbs(p) {
		absPath, err = s.confine(filepath.Clean(p))
	} else {
		absPath, err = s.resolvePath(p)
	}
	if err != nil {
		return false, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	// Safety check - prevent accidental directory deletion
	if info.IsDir() {
		return false, fmt.Errorf("%w: %s", ErrIsDirectory, p)
	}

	if err := os.Remove(absPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}

	return true, nil
}

// resolvePath validates and resolves a path within the base directory.
func (s *LocalStorage) resolvePath(p string) (string, error) {
	p = filepath.Clean(p)
	absPath, err := filepath.Abs(filepath.Join(s.baseDir, p))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}
	return s.confine(absPath)
}

// confine ensures absPath stays within baseDir (prevents ../ attacks).
func (s *LocalStorage) confine(absPath string) (string, error) {
	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, absPath)
	}
	return absPath, nil
}
