// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export turns the editor document into downloadable files: the
// markup verbatim as HTML, or the plain text as a Word document.
//
// See docs/ARCHITECTURE § Export.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/cite-editor/pkg/types"
)

// File extensions.
const (
	ExtHTML = ".html"
	ExtDOCX = ".docx"
)

// Formats accepted by Write.
const (
	FormatHTML = "html"
	FormatDOCX = "docx"
)

// FileName derives a file name from the document title. Path separators are
// replaced so the name stays a single path element.
func FileName(title, ext string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = types.DefaultDocumentTitle
	}
	r := strings.NewReplacer("/", "_", `\`, "_", "\x00", "")
	name := r.Replace(title)
	if name == "." || name == ".." {
		name = types.DefaultDocumentTitle
	}
	return name + ext
}

// HTML returns the file name and the markup bytes unchanged.
func HTML(doc types.Document) (string, []byte) {
	return FileName(doc.Title, ExtHTML), []byte(doc.Content)
}

// Write exports doc in format into dir and returns the path written.
func Write(doc types.Document, format, dir string) (string, error) {
	var ext string
	switch strings.ToLower(format) {
	case FormatHTML:
		ext = ExtHTML
	case FormatDOCX:
		ext = ExtDOCX
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}

	path := filepath.Join(dir, FileName(doc.Title, ext))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	if err := encode(doc, ext, f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

func encode(doc types.Document, ext string, w io.Writer) error {
	if ext == ExtHTML {
		_, data := HTML(doc)
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing HTML: %w", err)
		}
		return nil
	}
	return DOCX(doc, w)
}
