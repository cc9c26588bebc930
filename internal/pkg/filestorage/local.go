package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jyhan-dev/seodang/internal/pkg/logger"
)

// LocalStorage stores rendered report files on the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// SaveBytes writes data to subPath/filename under the storage root and
// returns the relative stored path.
func (ls *LocalStorage) SaveBytes(data []byte, subPath, filename string) (string, error) {
	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	dstPath := filepath.Join(fullDirPath, filename)
	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file")
		// Remove any partial write
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	storedPath := filename
	if subPath != "" {
		storedPath = filepath.Join(subPath, filename)
	}

	logger.Debug().Str("path", storedPath).Int("bytes", len(data)).Msg("File saved")
	return storedPath, nil
}

// Open opens a stored file for reading.
func (ls *LocalStorage) Open(storedPath string) (io.ReadCloser, error) {
	full := ls.FullPath(storedPath)
	if full == "" {
		return nil, fmt.Errorf("invalid stored path: %s", storedPath)
	}
	return os.Open(full)
}

// Exists reports whether the stored file is still present on disk.
func (ls *LocalStorage) Exists(storedPath string) bool {
	full := ls.FullPath(storedPath)
	if full == "" {
		return false
	}
	_, err := os.Stat(full)
	return err == nil
}

// FullPath resolves a stored (relative) path against the storage root.
// Paths escaping the root resolve to empty.
func (ls *LocalStorage) FullPath(storedPath string) string {
	if storedPath == "" {
		return ""
	}
	cleaned := filepath.Clean(storedPath)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return ""
	}
	return filepath.Join(ls.basePath, cleaned)
}
