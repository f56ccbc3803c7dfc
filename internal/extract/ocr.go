// internal/extract/ocr.go
package extract

import (
	"bytes"
	"context"
	"image/png"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// Engine performs optical character recognition on a rendered page image.
type Engine interface {
	Recognize(ctx context.Context, pageImage []byte) (string, error)
}

// TesseractEngine recognizes text using a local tesseract installation.
type TesseractEngine struct {
	Language string
}

func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{Language: language}
}

// Recognize runs tesseract over a single PNG-encoded page image.
// A fresh client per call keeps the engine safe for concurrent use.
func (t *TesseractEngine) Recognize(ctx context.Context, pageImage []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.Language); err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(pageImage); err != nil {
		return "", err
	}
	return client.Text()
}

// renderPDFPages rasterizes every page of a PDF to PNG for OCR.
func renderPDFPages(data []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	pages := make([][]byte, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}
