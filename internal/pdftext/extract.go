package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor reads plain text from PDF bytes, page by page, newline-joined.
type Extractor struct{}

// New creates a PDF text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the document text. Pages that fail to decode are skipped;
// a document that is not a PDF at all is an error.
func (e *Extractor) Extract(data []byte) (text string, err error) {
	// The pdf package panics on some malformed inputs instead of returning
	// an error; uploads are untrusted, so convert panics to errors.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}
