package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"
	"github.com/quickdrop/quickdrop/internal/storage"
	"github.com/sirupsen/logrus"
)

// Retrieve handles GET /{filename}. Anything that cannot be opened is a 404
// with an empty body.
func (h *Handlers) Retrieve(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]

	f, err := h.storage.Open(name)
	if err != nil {
		logrus.Debugf("File %q not served: %v", name, err)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		logrus.Debugf("File %q not served: %v", name, err)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	ctype := contentType(name, f)
	if ctype != "" {
		w.Header().Set("Content-Type", ctype)
	}
	// Uploads are untrusted and share the service's origin. Markup that a
	// browser would run is downloaded instead of rendered.
	if isActiveContent(ctype) {
		w.Header().Set("Content-Disposition", attachment(name))
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	http.ServeContent(w, r, name, info.ModTime(), f)
}

// contentType infers the type from the extension, then from the content.
// The file is rewound before returning.
func contentType(name string, f storage.File) string {
	if ctype := mime.TypeByExtension(filepath.Ext(name)); ctype != "" {
		return ctype
	}

	detected, err := mimetype.DetectReader(f)
	if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
		logrus.WithError(seekErr).Warnf("Failed to rewind %s", name)
		return ""
	}
	if err != nil {
		return ""
	}

	return detected.String()
}

// activeTypes are media types a browser runs scripts in.
var activeTypes = map[string]bool{
	"text/html":             true,
	"application/xhtml+xml": true,
	"image/svg+xml":         true,
	"text/xml":              true,
	"application/xml":       true,
}

func isActiveContent(ctype string) bool {
	mediaType, _, err := mime.ParseMediaType(ctype)
	if err != nil {
		return false
	}
	return activeTypes[mediaType]
}

func attachment(name string) string {
	if disposition := mime.FormatMediaType("attachment", map[string]string{"filename": name}); disposition != "" {
		return disposition
	}
	return "attachment"
}
