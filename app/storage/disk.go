package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore keeps images under a local directory, served by the HTTP layer
// as static files. Ids are folder-qualified relative paths.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates root if needed. baseURL is the public prefix the
// files are served under, e.g. "/uploads".
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (d *DiskStore) Save(folder, filename string, content io.Reader) (*SavedImage, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	folder = filepath.Base(folder) // no path traversal through folder names
	id := filepath.Join(folder, uuid.NewString()+ext)

	path := filepath.Join(d.root, id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &SavedImage{
		ID:  id,
		URL: d.baseURL + "/" + filepath.ToSlash(id),
	}, nil
}

func (d *DiskStore) Delete(id string) error {
	// Refuse ids escaping the root.
	path := filepath.Join(d.root, filepath.Clean("/"+id))
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
