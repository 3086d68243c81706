package extract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/meigma/actpak/internal/paktype"
)

// FileSink writes assets to the filesystem with atomic writes.
//
// Files are written to a temporary file in the same directory,
// then renamed to the final path on Commit. This ensures that
// partially written files are never visible at the final path.
// Existing files at the final path are replaced.
type FileSink struct {
	destDir string
	group   bool
	logger  *slog.Logger
}

// FileSinkOption configures a FileSink.
type FileSinkOption func(*FileSink)

// WithGroupByType writes each asset into a subdirectory named after its asset kind.
func WithGroupByType(group bool) FileSinkOption {
	return func(s *FileSink) {
		s.group = group
	}
}

// WithSinkLogger sets the logger for directory creation messages.
func WithSinkLogger(logger *slog.Logger) FileSinkOption {
	return func(s *FileSink) {
		s.logger = logger
	}
}

// NewFileSink creates a FileSink that writes to destDir.
func NewFileSink(destDir string, opts ...FileSinkOption) *FileSink {
	s := &FileSink{
		destDir: destDir,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// log returns the logger, falling back to a discard logger if nil.
func (s *FileSink) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// Dir returns the directory an asset of kind is written to.
func (s *FileSink) Dir(kind paktype.AssetKind) string {
	if s.group {
		return filepath.Join(s.destDir, kind.String())
	}
	return s.destDir
}

// Prepare creates the destination directory and, when grouping, one
// subdirectory for each of kinds.
func (s *FileSink) Prepare(kinds []paktype.AssetKind) error {
	if err := s.mkdir(s.destDir); err != nil {
		return err
	}
	if !s.group {
		return nil
	}
	for _, k := range kinds {
		if err := s.mkdir(s.Dir(k)); err != nil {
			return err
		}
	}
	return nil
}

// mkdir creates dir and its parents, logging when it did not exist yet.
func (s *FileSink) mkdir(dir string) error {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	s.log().Debug("created directory", "path", dir)
	return nil
}

// Writer returns a Committer that writes to a temp file and renames on Commit.
func (s *FileSink) Writer(name string, kind paktype.AssetKind) (Committer, error) {
	dir := s.Dir(kind)
	if err := s.mkdir(dir); err != nil {
		return nil, err
	}

	// Create temp file in same directory (for atomic rename)
	tempFile, err := os.CreateTemp(dir, ".actpak-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &fileCommitter{
		destPath: filepath.Join(dir, name),
		tempFile: tempFile,
	}, nil
}

// fileCommitter writes to a temp file and renames on Commit.
type fileCommitter struct {
	destPath string
	tempFile *os.File
}

// Write implements io.Writer.
func (c *fileCommitter) Write(p []byte) (int, error) {
	return c.tempFile.Write(p)
}

// Commit closes the temp file and renames it to the final path.
func (c *fileCommitter) Commit() error {
	tempPath := c.tempFile.Name()

	if err := c.tempFile.Close(); err != nil {
		_ = os.Remove(tempPath) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("close temp file: %w", err)
	}

	// Atomic rename to final path
	if err := os.Rename(tempPath, c.destPath); err != nil {
		_ = os.Remove(tempPath) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("rename to %s: %w", c.destPath, err)
	}

	return nil
}

// Discard closes and removes the temp file.
func (c *fileCommitter) Discard() error {
	tempPath := c.tempFile.Name()
	_ = c.tempFile.Close() //nolint:errcheck // we're cleaning up
	return os.Remove(tempPath)
}
