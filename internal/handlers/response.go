package handlers

import (
	"fmt"
	"html"
	"net/http"
)

// uploadResponse is the closed set of replies a successful upload can produce.
type uploadResponse interface {
	write(w http.ResponseWriter, r *http.Request)
}

// plainURL answers with the file URL as text.
type plainURL struct{ url string }

// redirectURL sends the client on to the stored file.
type redirectURL struct{ url string }

// htmlLink answers with an anchor pointing at the stored file.
type htmlLink struct{ url string }

func (p plainURL) write(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, p.url)
}

func (rd redirectURL) write(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, rd.url, http.StatusSeeOther)
}

func (h htmlLink) write(w http.ResponseWriter, _ *http.Request) {
	escaped := html.EscapeString(h.url)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<a href="%s">%s</a>`, escaped, escaped)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
