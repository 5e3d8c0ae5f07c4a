package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/quickdrop/quickdrop/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// LocalStorage keeps uploads as plain files in one flat directory
type LocalStorage struct {
	fs   afero.Fs
	root string
}

// Ensure LocalStorage implements StorageInterface
var _ StorageInterface = (*LocalStorage)(nil)

// NewLocalStorage creates a storage rooted at root, creating the directory
// and any missing parents.
func NewLocalStorage(fs afero.Fs, root string) (*LocalStorage, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root directory is required")
	}

	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", root, err)
	}

	logrus.Debugf("Storage directory %s ready", root)

	return &LocalStorage{fs: fs, root: root}, nil
}

// Root returns the storage directory path
func (s *LocalStorage) Root() string {
	return s.root
}

// Store copies r into a new file called name. An existing file is never
// overwritten; a partially written file is removed on failure.
func (s *LocalStorage) Store(name string, r io.Reader) (int64, error) {
	path, err := s.path(name)
	if err != nil {
		return 0, err
	}

	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", name, err)
	}

	written, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		if rmErr := s.fs.Remove(path); rmErr != nil {
			logrus.WithError(rmErr).Warnf("Failed to remove partial upload %s", name)
		}
		return 0, fmt.Errorf("failed to write %s: %w", name, copyErr)
	}

	return written, nil
}

// Open opens a stored file for reading. Directories are reported as not found.
func (s *LocalStorage) Open(name string) (File, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	f, err := s.fs.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s: %w", name, os.ErrNotExist)
	}

	return f, nil
}

// List returns every regular file in the storage directory
func (s *LocalStorage) List() ([]models.StoredFile, error) {
	infos, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.root, err)
	}

	files := make([]models.StoredFile, 0, len(infos))
	for _, info := range infos {
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, models.StoredFile{
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// Ping checks that the storage directory is still there
func (s *LocalStorage) Ping() error {
	ok, err := afero.DirExists(s.fs, s.root)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", s.root, err)
	}
	if !ok {
		return fmt.Errorf("storage directory %s is missing", s.root)
	}
	return nil
}

// path joins name onto the root, accepting only a single path element.
func (s *LocalStorage) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidName
	}
	return filepath.Join(s.root, name), nil
}
