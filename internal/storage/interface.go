package storage

import (
	"errors"
	"io"
	"os"

	"github.com/quickdrop/quickdrop/internal/models"
)

// ErrInvalidName is returned for names that are not a single path element.
var ErrInvalidName = errors.New("invalid file name")

// File is an opened stored file ready to be streamed back
type File interface {
	io.ReadSeekCloser
	Stat() (os.FileInfo, error)
}

// StorageInterface defines the contract for storage operations
type StorageInterface interface {
	Store(name string, r io.Reader) (int64, error)
	Open(name string) (File, error)
	List() ([]models.StoredFile, error)
	Ping() error
}
