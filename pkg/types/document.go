package types

// DefaultDocumentTitle is the title of a fresh or cleared document.
const DefaultDocumentTitle = "Untitled Document"

// Document is the single document edited in a session: rich-text markup
// plus a title. It is persisted wholesale on every change.
type Document struct {
	// Content is the rich-text markup held by the editor surface.
	Content string `json:"content" yaml:"content"`

	// Title is the document title used for export file names.
	Title string `json:"title" yaml:"title"`
}

// NewDocument returns an empty document with the default title.
func NewDocument() Document {
	return Document{Title: DefaultDocumentTitle}
}
