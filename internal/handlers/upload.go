package handlers

import (
	"net/http"
	"strconv"

	"github.com/quickdrop/quickdrop/internal/config"
	"github.com/quickdrop/quickdrop/internal/naming"
	"github.com/sirupsen/logrus"
)

// Client-facing error bodies
const (
	msgInvalidForm = "invalid multipart form"
	msgBadKey      = "key not found in the header"
	msgBadFileName = "File name invalid"
	msgInternal    = "Internal server error"
)

// Upload handles POST / with a multipart body carrying "file", an optional
// "key" and an optional alternate-response flag.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		logrus.Debugf("Rejected upload from %s: %v", r.RemoteAddr, err)
		writeText(w, http.StatusBadRequest, msgInvalidForm)
		return
	}
	defer r.MultipartForm.RemoveAll()

	// Plain equality; the key is a single static secret.
	if h.config.UseKey && r.PostFormValue("key") != h.config.Key {
		logrus.Debugf("Rejected upload from %s: wrong key", r.RemoteAddr)
		writeText(w, http.StatusBadRequest, msgBadKey)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		logrus.Debugf("Rejected upload from %s: %v", r.RemoteAddr, err)
		writeText(w, http.StatusBadRequest, msgBadFileName)
		return
	}
	defer file.Close()

	original, ok := naming.Sanitize(header.Filename)
	if !ok {
		logrus.Debugf("Rejected upload from %s: unusable file name %q", r.RemoteAddr, header.Filename)
		writeText(w, http.StatusBadRequest, msgBadFileName)
		return
	}

	newName := naming.Generate(original)
	size, err := h.storage.Store(newName, file)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"name": newName,
			"root": h.config.RootDir,
		}).Error("Failed to store upload")
		writeText(w, http.StatusInternalServerError, msgInternal)
		return
	}

	logrus.WithFields(logrus.Fields{
		"name": newName,
		"size": size,
	}).Info("Stored upload")

	h.uploadResponse(r, h.fileURL(newName)).write(w, r)
}

// uploadResponse picks the reply variant. The flag field is named after the
// configured response mode: "redirect" or "html".
func (h *Handlers) uploadResponse(r *http.Request, fileURL string) uploadResponse {
	alternate, _ := strconv.ParseBool(r.PostFormValue(h.config.ResponseMode))
	if !alternate {
		return plainURL{url: fileURL}
	}

	switch h.config.ResponseMode {
	case config.ResponseModeHTML:
		return htmlLink{url: fileURL}
	default:
		return redirectURL{url: fileURL}
	}
}
