package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/quickdrop/quickdrop/internal/config"
	"github.com/sirupsen/logrus"
)

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        pre { background-color: #f5f5f5; padding: 10px; border-radius: 5px; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <p>Use curl to upload:</p>
    <pre>curl -F file=@"[file]" {{.URL}}</pre>
    {{if .UseKey}}
    <p>A key is required to upload:</p>
    <pre>curl -F file=@"[file]" -F "key=[key]" {{.URL}}</pre>
    {{end}}
    <form action="{{.URL}}/" method="post" enctype="multipart/form-data">
        <input type="file" name="file" required>
        {{if .UseKey}}<input type="password" name="key" placeholder="key">{{end}}
        <input type="hidden" name="html" value="true">
        <input type="submit" value="Upload">
    </form>
</body>
</html>
`

type indexData struct {
	Title  string
	URL    string
	UseKey bool
}

// Index handles GET / with usage instructions.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Title:  h.config.Title,
		URL:    h.config.UserURL,
		UseKey: h.config.UseKey,
	}

	if h.indexHTML == nil {
		writeText(w, http.StatusOK, usageText(data, h.config.ResponseMode))
		return
	}

	var buf bytes.Buffer
	if err := h.indexHTML.Execute(&buf, data); err != nil {
		logrus.WithError(err).Error("Failed to render index page")
		writeText(w, http.StatusInternalServerError, msgInternal)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func usageText(data indexData, mode string) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("%s\n\n", data.Title))
	text.WriteString("Use curl to upload:\n")
	text.WriteString(fmt.Sprintf("curl -F file=@\"[file]\" %s\n", data.URL))

	if data.UseKey {
		text.WriteString("\nA key is required, send it in the \"key\" field:\n")
		text.WriteString(fmt.Sprintf("curl -F file=@\"[file]\" -F \"key=[key]\" %s\n", data.URL))
	}

	if mode == config.ResponseModeRedirect {
		text.WriteString("\nAdd -F redirect=true to be redirected to the uploaded file.\n")
	}

	text.WriteString("\nDownload with:\n")
	text.WriteString(fmt.Sprintf("curl -O %s/[name]\n", data.URL))

	return text.String()
}
