package history

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Extension is appended to the game ID to name a record file
const Extension = ".adna.toml"

// Store saves records into a directory, one file per game
type Store struct {
	dir    string
	logger *log.Logger
}

// NewStore creates the directory if needed
func NewStore(dir string, logger *log.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("history: directory is required")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("history: create dir: %w", err)
	}
	return &Store{dir: dir, logger: logger.WithPrefix("history")}, nil
}

// Path returns the file a game's record is saved to
func (s *Store) Path(gameID string) string {
	return filepath.Join(s.dir, gameID+Extension)
}

// Save writes rec atomically and returns the path written
func (s *Store) Save(rec *Record) (string, error) {
	if rec == nil {
		return "", ErrNilRecord
	}
	if rec.Game == "" {
		return "", fmt.Errorf("history: record has no game ID")
	}

	data, err := EncodeToBytes(rec)
	if err != nil {
		return "", err
	}

	path := s.Path(rec.Game)
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	s.logger.Debug("Saved game record", "game", rec.Game, "path", path, "actions", len(rec.Actions))
	return path, nil
}

// Load reads a saved record
func Load(path string) (*Record, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// writeFileAtomic writes to a temporary file in the same directory and
// renames it into place, so a reader sees either no record or all of it
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
