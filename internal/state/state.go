package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"volaryddns/internal/utils"

	"go.uber.org/zap"
)

// Store persists the last IP address the remote API confirmed.
// Implementations must make Save atomic with respect to concurrent
// readers: a reader sees either the previous value or the new one,
// never a truncated write.
type Store interface {
	// Last returns the last confirmed address, or ok=false when no
	// usable prior value exists.
	Last() (ip string, ok bool)

	// Save durably replaces the last confirmed address.
	Save(ip string) error
}

// FileStore implements Store backed by a single plaintext file holding
// one bare IPv4 literal. No locking is performed; the external scheduler
// is assumed not to overlap invocations.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a file-backed store at the given path
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Last reads the persisted address. A missing file is the expected
// first-run state. Unreadable or corrupt content is also reported as
// absent: forcing a redundant update is safer than skipping a needed one.
func (s *FileStore) Last() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read state file, treating as unset",
				zap.String("path", s.path),
				zap.Error(err))
		}
		return "", false
	}

	ip := strings.TrimSpace(string(data))
	if !utils.IsValidIPv4(ip) {
		s.logger.Warn("State file content is not a valid IPv4 address, treating as unset",
			zap.String("path", s.path))
		return "", false
	}

	return ip, true
}

// Save writes the address to a temporary file in the target directory
// and renames it over the state file, so readers never observe a
// partial write.
func (s *FileStore) Save(ip string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(ip); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set state file mode: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}
