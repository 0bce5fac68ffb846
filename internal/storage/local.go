// Package storage archives raw uploaded files on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultFileName = "upload.xml"

// LocalStore writes uploads under baseDir.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a store rooted at baseDir. The directory is created on first save.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

// BaseDir returns the directory uploads are written to.
func (s *LocalStore) BaseDir() string {
	return s.baseDir
}

// Save writes r to a new file named after fileName with a random prefix and
// returns its path relative to the base directory.
func (s *LocalStore) Save(ctx context.Context, fileName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s", uuid.NewString(), SanitizeFileName(fileName))
	f, err := os.OpenFile(filepath.Join(s.baseDir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return "", 0, fmt.Errorf("failed to write upload file: %w", err)
	}
	return name, written, nil
}

// Sweep removes archived uploads last modified before cutoff and returns how
// many were removed. A missing base directory is not an error.
func (s *LocalStore) Sweep(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to list upload dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.baseDir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// SanitizeFileName reduces name to a safe base name. Path separators and
// characters outside [A-Za-z0-9._-] become underscores.
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" || name == ".." {
		return defaultFileName
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return defaultFileName
	}
	return out
}
