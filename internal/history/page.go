package history

import (
	"embed"
	"encoding/base64"
	"html/template"
	"io"
	"mime"
	"path/filepath"
	"strings"
)

//go:embed templates/compare.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/compare.html.tmpl"))

// DefaultMIME is used for assets whose extension has no known image type.
const DefaultMIME = "image/png"

// Card is one version shown on the comparison page.
type Card struct {
	Index   int
	Commit  string
	Date    string
	Subject string
	Src     template.URL
}

type pageData struct {
	Path  string
	Cards []Card
}

// NewCard builds the card for a successfully extracted version.
func NewCard(v ExtractedVersion, path string) Card {
	return Card{
		Index:   v.Index,
		Commit:  v.Revision.Short(),
		Date:    v.Revision.Date,
		Subject: v.Revision.Subject,
		Src:     DataURI(path, v.Content.Unwrap()),
	}
}

// DataURI embeds data as a base64 data URI typed by the extension of path.
func DataURI(path string, data []byte) template.URL {
	// #nosec G203 -- the URI is built from a fixed scheme, a MIME type and base64 payload
	return template.URL("data:" + MIMEType(path) + ";base64," + base64.StdEncoding.EncodeToString(data))
}

// MIMEType returns the image MIME type for path, falling back to DefaultMIME.
func MIMEType(path string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if t == "" || !strings.HasPrefix(t, "image/") {
		return DefaultMIME
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

// RenderPage writes the self-contained comparison page.
func RenderPage(w io.Writer, path string, cards []Card) error {
	return pageTemplate.Execute(w, pageData{Path: path, Cards: cards})
}
