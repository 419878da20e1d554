package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/ports"
)

// Local implements ports.FileSystem against the real filesystem. Relative
// paths resolve against the process working directory.
type Local struct{}

// NewLocal builds the adapter.
func NewLocal() *Local {
	return &Local{}
}

// Stat implements ports.FileSystem.
func (Local) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// WriteFile creates missing parent directories, then replaces the file.
func (Local) WriteFile(path string, content []byte) error {
	if parent := filepath.Dir(path); parent != "." && parent != "" {
		if err := os.MkdirAll(parent, domain.DirectoryPermissions); err != nil {
			return fmt.Errorf("create parent directories: %w", err)
		}
	}
	if err := os.WriteFile(path, content, domain.FilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// ReadFile implements ports.FileSystem.
func (Local) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// Remove deletes a single file; os.Remove refuses non-empty directories and
// callers reject directories before getting here.
func (Local) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// List enumerates the working directory sorted by name. Metadata is only
// collected when detailed is set.
func (Local) List(detailed bool) ([]domain.FileEntry, error) {
	entries, err := os.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}
	out := make([]domain.FileEntry, 0, len(entries))
	for _, entry := range entries {
		item := domain.FileEntry{Name: entry.Name(), IsDir: entry.IsDir()}
		if detailed {
			info, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
			}
			item.Size = info.Size()
			item.Mode = info.Mode().String()
			item.ModTime = info.ModTime()
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

var _ ports.FileSystem = (*Local)(nil)
