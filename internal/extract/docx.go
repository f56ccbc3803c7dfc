// internal/extract/docx.go
package extract

import (
	"bytes"
	"strings"

	"github.com/fumiama/go-docx"
)

// docxPlainText pulls paragraph text out of a DOCX body, one paragraph
// per line, skipping empty paragraphs.
func docxPlainText(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := strings.TrimSpace(para.String()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
