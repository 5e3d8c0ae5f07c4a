package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func retrieveRequest(method, name string) *http.Request {
	req := httptest.NewRequest(method, "/"+name, nil)
	return mux.SetURLVars(req, map[string]string{"filename": name})
}

func TestRetrieve_ServesStoredFile(t *testing.T) {
	h, fs := newTestHandlers(t, testConfig())
	require.NoError(t, afero.WriteFile(fs, testRoot+"/Ab12-notes.txt", []byte("hello"), 0o644))

	rec := httptest.NewRecorder()
	h.Retrieve(rec, retrieveRequest(http.MethodGet, "Ab12-notes.txt"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestRetrieve_DetectsTypeWithoutExtension(t *testing.T) {
	h, fs := newTestHandlers(t, testConfig())
	require.NoError(t, afero.WriteFile(fs, testRoot+"/Ab12-image", pngHeader, 0o644))

	rec := httptest.NewRecorder()
	h.Retrieve(rec, retrieveRequest(http.MethodGet, "Ab12-image"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pngHeader, rec.Body.Bytes())
}

func TestRetrieve_ActiveContentIsDownloaded(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		attachment bool
	}{
		{name: "HTML", file: "Ab12-page.html", content: "<script>alert(1)</script>", attachment: true},
		{name: "SVG", file: "Ab12-logo.svg", content: `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`, attachment: true},
		{name: "HTML without extension", file: "Ab12-page", content: "<!DOCTYPE html><html><body>hi</body></html>", attachment: true},
		{name: "Plain text", file: "Ab12-notes.txt", content: "<script>alert(1)</script>"},
		{name: "PNG", file: "Ab12-image.png", content: string(pngHeader)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fs := newTestHandlers(t, testConfig())
			require.NoError(t, afero.WriteFile(fs, testRoot+"/"+tt.file, []byte(tt.content), 0o644))

			rec := httptest.NewRecorder()
			h.Retrieve(rec, retrieveRequest(http.MethodGet, tt.file))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.content, rec.Body.String())
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			if tt.attachment {
				assert.Equal(t, `attachment; filename=`+tt.file, rec.Header().Get("Content-Disposition"))
			} else {
				assert.Empty(t, rec.Header().Get("Content-Disposition"))
			}
		})
	}
}

func TestRetrieve_RangeRequest(t *testing.T) {
	h, fs := newTestHandlers(t, testConfig())
	require.NoError(t, afero.WriteFile(fs, testRoot+"/Ab12-digits.txt", []byte("0123456789"), 0o644))

	req := retrieveRequest(http.MethodGet, "Ab12-digits.txt")
	req.Header.Set("Range", "bytes=2-4")
	rec := httptest.NewRecorder()
	h.Retrieve(rec, req)

	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, "234", rec.Body.String())
}

func TestRetrieve_NotFound(t *testing.T) {
	h, fs := newTestHandlers(t, testConfig())
	require.NoError(t, fs.Mkdir(testRoot+"/subdir", 0o755))

	for _, name := range []string{"never-uploaded.txt", "subdir", "..", ""} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Retrieve(rec, retrieveRequest(http.MethodGet, name))

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}
}

func TestRetrieve_StorageErrorIsNotFound(t *testing.T) {
	store := &MockStorage{}
	store.On("Open", "Ab12-x.txt").Return(nil, errors.New("permission denied"))

	h, err := New(testConfig(), store)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Retrieve(rec, retrieveRequest(http.MethodGet, "Ab12-x.txt"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
	store.AssertExpectations(t)
}

func TestIndex_PlainText(t *testing.T) {
	tests := []struct {
		name     string
		useKey   bool
		contains []string
		excludes []string
	}{
		{
			name:     "Without key",
			contains: []string{"QuickDrop", `curl -F file=@"[file]" http://files.example.com`, "redirect=true"},
			excludes: []string{"key=[key]"},
		},
		{
			name:     "With key",
			useKey:   true,
			contains: []string{`curl -F file=@"[file]" -F "key=[key]" http://files.example.com`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.UseKey = tt.useKey
			cfg.Key = "k"
			h, _ := newTestHandlers(t, cfg)

			rec := httptest.NewRecorder()
			h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, rec.Body.String(), s)
			}
		})
	}
}

func TestIndex_HTMLForm(t *testing.T) {
	cfg := testConfig()
	cfg.ResponseMode = "html"
	cfg.Title = "Team <Drop>"
	cfg.UseKey = true
	cfg.Key = "k"
	h, _ := newTestHandlers(t, cfg)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "<title>Team &lt;Drop&gt;</title>")
	assert.Contains(t, body, `enctype="multipart/form-data"`)
	assert.Contains(t, body, `name="key"`)
	assert.Contains(t, body, `name="html" value="true"`)
	assert.NotContains(t, body, "redirect=true")
}

func TestLogRequests_PassesThrough(t *testing.T) {
	handler := LogRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
