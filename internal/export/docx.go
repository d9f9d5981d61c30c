// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fumiama/go-docx"

	"github.com/pdiddy/cite-editor/internal/markup"
	"github.com/pdiddy/cite-editor/pkg/types"
)

// Run sizes in half-points: 16pt title, 12pt body.
const (
	titleSize = 32
	bodySize  = 24
)

// DOCX writes doc as a Word document: the title as a bold paragraph and
// the markup, reduced to plain text, as a second paragraph.
func DOCX(doc types.Document, w io.Writer) error {
	text, err := markup.PlainText(doc.Content)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}

	title := doc.Title
	if title == "" {
		title = types.DefaultDocumentTitle
	}

	d := docx.New().WithDefaultTheme()
	d.AddParagraph().AddText(title).Bold().Size(strconv.Itoa(titleSize))
	d.AddParagraph().AddText(text).Size(strconv.Itoa(bodySize))

	if _, err := d.WriteTo(w); err != nil {
		return fmt.Errorf("writing docx: %w", err)
	}
	return nil
}
