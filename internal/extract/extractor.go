// internal/extract/extractor.go
package extract

import (
	"context"
	"strings"

	"grant-crosswalk/internal/common/errors"
	"grant-crosswalk/internal/common/logger"
)

// Extraction methods reported on Result.Method.
const (
	MethodPDFText  = "pdf-text"
	MethodDOCXText = "docx-text"
	MethodOCR      = "ocr"
)

// DefaultMinTextLength is the threshold below which a PDF text layer is
// treated as a scan and routed to OCR.
const DefaultMinTextLength = 100

// Result is the outcome of a successful extraction.
type Result struct {
	Text   string `json:"text"`
	Method string `json:"method"`
}

// Extractor turns uploaded document bytes into plain text. A nil OCR
// engine disables the scanned-PDF fallback.
type Extractor struct {
	ocr           Engine
	minTextLength int
	logger        logger.Logger

	pdfText     func([]byte) (string, error)
	docxText    func([]byte) (string, error)
	renderPages func([]byte) ([][]byte, error)
}

func NewExtractor(ocr Engine, minTextLength int, log logger.Logger) *Extractor {
	if minTextLength <= 0 {
		minTextLength = DefaultMinTextLength
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Extractor{
		ocr:           ocr,
		minTextLength: minTextLength,
		logger:        log,
		pdfText:       pdfPlainText,
		docxText:      docxPlainText,
		renderPages:   renderPDFPages,
	}
}

// Extract converts document bytes into plain text. PDF documents whose
// text layer comes back shorter than the configured minimum are retried
// through OCR; DOCX documents have no OCR path.
func (e *Extractor) Extract(ctx context.Context, data []byte, fileType, filename string) (*Result, error) {
	fileType = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(fileType)), ".")

	log := e.logger.WithFields(map[string]interface{}{
		"filename": filename,
		"fileType": fileType,
	})

	var (
		text   string
		method string
		err    error
	)

	switch fileType {
	case "pdf":
		text, err = e.pdfText(data)
		if err != nil {
			log.WithError(err).Error("pdf extraction failed", nil)
			return nil, errors.NewPDFExtractionFailedError(err)
		}
		method = MethodPDFText

	case "docx":
		text, err = e.docxText(data)
		if err != nil {
			log.WithError(err).Error("docx extraction failed", nil)
			return nil, errors.NewDOCXExtractionFailedError(err)
		}
		method = MethodDOCXText

	default:
		return nil, errors.NewUnsupportedFileTypeError(fileType)
	}

	if len(strings.TrimSpace(text)) >= e.minTextLength {
		log.Debug("text layer extraction succeeded", map[string]interface{}{
			"method": method,
			"chars":  len(text),
		})
		return &Result{Text: text, Method: method}, nil
	}

	if fileType != "pdf" {
		return nil, errors.NewEmptyDocumentError(method)
	}

	// Short or empty text layer on a PDF means a scanned document.
	if e.ocr == nil {
		return nil, errors.NewOCRUnavailableError(filename)
	}

	log.Info("text layer too short, falling back to ocr", map[string]interface{}{
		"chars":     len(strings.TrimSpace(text)),
		"threshold": e.minTextLength,
	})

	text, err = e.extractWithOCR(ctx, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewEmptyDocumentError(MethodOCR)
	}

	return &Result{Text: text, Method: MethodOCR}, nil
}

// extractWithOCR rasterizes each PDF page and runs it through the OCR
// engine, concatenating per-page results in page order.
func (e *Extractor) extractWithOCR(ctx context.Context, data []byte) (string, error) {
	pages, err := e.renderPages(data)
	if err != nil {
		return "", errors.NewOCRFailedError(err)
	}

	var parts []string
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		pageText, err := e.ocr.Recognize(ctx, page)
		if err != nil {
			e.logger.WithError(err).Warn("ocr failed on page", map[string]interface{}{
				"page": i + 1,
			})
			return "", errors.NewOCRFailedError(err)
		}
		if trimmed := strings.TrimSpace(pageText); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	return strings.Join(parts, "\n"), nil
}
