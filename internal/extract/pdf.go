// internal/extract/pdf.go
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfPlainText pulls the embedded text layer out of a PDF.
// Pages without a readable text layer are skipped rather than failing
// the whole document; scanned PDFs legitimately yield empty text here.
func pdfPlainText(data []byte) (text string, err error) {
	defer func() {
		// The pdf package panics on some malformed cross-reference tables.
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if trimmed := strings.TrimSpace(pageText); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	return strings.Join(pages, "\n"), nil
}
