// Package handlers implements the HTTP endpoints of the file host: upload,
// retrieval and the usage page.
package handlers

import (
	"fmt"
	"html/template"
	"net/url"

	"github.com/quickdrop/quickdrop/internal/config"
	"github.com/quickdrop/quickdrop/internal/storage"
)

// maxMemory is how much of a multipart body is buffered in memory before
// net/http spills the rest to temporary files.
const maxMemory = 32 << 20

// Handlers serves uploads and downloads for one storage directory
type Handlers struct {
	config    *config.Config
	storage   storage.StorageInterface
	indexHTML *template.Template
}

// New creates the handlers. The configuration is treated as read-only.
func New(cfg *config.Config, store storage.StorageInterface) (*Handlers, error) {
	h := &Handlers{
		config:  cfg,
		storage: store,
	}

	if cfg.ResponseMode == config.ResponseModeHTML {
		t, err := template.New("index").Parse(indexTemplate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse index template: %w", err)
		}
		h.indexHTML = t
	}

	return h, nil
}

// fileURL builds the public download link for a stored name. The name is
// path-escaped so '#', '?' and '%' survive the round trip.
func (h *Handlers) fileURL(name string) string {
	return h.config.UserURL + "/" + url.PathEscape(name)
}
