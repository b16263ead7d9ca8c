// Package storage holds binary artifacts on the local filesystem:
// rendered invoice workbooks and uploaded cheque images.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// FileStore is the artifact persistence contract
type FileStore interface {
	Save(ctx context.Context, path string, content []byte) error
	Read(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) bool
	Delete(ctx context.Context, path string) error
	FullPath(path string) string
}

// LocalFileStore keeps artifacts under a base directory. All paths are
// relative to it; anything escaping the base is rejected.
type LocalFileStore struct {
	baseDir string
	logger  *zap.Logger
}

var _ FileStore = (*LocalFileStore)(nil)

// NewLocalFileStore creates a file store rooted at baseDir
func NewLocalFileStore(baseDir string, logger *zap.Logger) *LocalFileStore {
	return &LocalFileStore{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Save writes content to the given relative path, creating parents
func (s *LocalFileStore) Save(ctx context.Context, path string, content []byte) error {
	fullPath := s.FullPath(path)
	if err := s.validatePath(fullPath); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		s.logger.Error("Failed to create artifact directory",
			zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write artifact",
			zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("Artifact saved",
		zap.String("path", fullPath), zap.Int("size", len(content)))
	return nil
}

// Read returns the content at the given relative path
func (s *LocalFileStore) Read(ctx context.Context, path string) ([]byte, error) {
	fullPath := s.FullPath(path)
	if err := s.validatePath(fullPath); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}

// Exists reports whether a file exists at the given relative path
func (s *LocalFileStore) Exists(ctx context.Context, path string) bool {
	_, err := os.Stat(s.FullPath(path))
	return err == nil
}

// Delete removes the file at the given relative path. Deleting a file
// that is already gone is not an error.
func (s *LocalFileStore) Delete(ctx context.Context, path string) error {
	fullPath := s.FullPath(path)
	if err := s.validatePath(fullPath); err != nil {
		return err
	}

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}
	if err := os.Remove(fullPath); err != nil {
		s.logger.Error("Failed to delete artifact",
			zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// FullPath converts a relative path to its on-disk location
func (s *LocalFileStore) FullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

func (s *LocalFileStore) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return fmt.Errorf("path escapes base directory: %s", fullPath)
	}
	return nil
}
