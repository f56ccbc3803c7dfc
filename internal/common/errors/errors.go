// Package errors provides standardized error handling for the RFP analysis pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUnsupportedFileType  ErrorCode = "UNSUPPORTED_FILE_TYPE"
	ErrCodePDFExtractionFailed  ErrorCode = "PDF_EXTRACTION_FAILED"
	ErrCodeDOCXExtractionFailed ErrorCode = "DOCX_EXTRACTION_FAILED"
	ErrCodeOCRUnavailable       ErrorCode = "OCR_UNAVAILABLE"
	ErrCodeOCRFailed            ErrorCode = "OCR_FAILED"
	ErrCodeEmptyDocument        ErrorCode = "EMPTY_DOCUMENT"

	ErrCodeCorpusNotFound ErrorCode = "CORPUS_NOT_FOUND"
	ErrCodeCorpusInvalid  ErrorCode = "CORPUS_INVALID"

	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewUnsupportedFileTypeError creates a non-retryable file type error.
func NewUnsupportedFileTypeError(fileType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedFileType,
		Message:   "Unsupported document file type",
		Details:   fmt.Sprintf("fileType: %s", fileType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPDFExtractionFailedError creates a non-retryable PDF extraction error.
func NewPDFExtractionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePDFExtractionFailed,
		Message:   "PDF text extraction failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDOCXExtractionFailedError creates a non-retryable DOCX extraction error.
func NewDOCXExtractionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDOCXExtractionFailed,
		Message:   "DOCX text extraction failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOCRUnavailableError creates a non-retryable error for documents that
// need OCR when no OCR engine is configured.
func NewOCRUnavailableError(filename string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOCRUnavailable,
		Message:   "Document requires OCR but no OCR engine is configured",
		Details:   fmt.Sprintf("filename: %s", filename),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOCRFailedError creates a retryable OCR error.
func NewOCRFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOCRFailed,
		Message:   "OCR text recognition failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyDocumentError creates a non-retryable error for documents that
// yielded no meaningful text through any extraction method.
func NewEmptyDocumentError(method string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyDocument,
		Message:   "Unable to extract meaningful text from document",
		Details:   fmt.Sprintf("method: %s", method),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCorpusNotFoundError creates a non-retryable corpus file error.
func NewCorpusNotFoundError(path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCorpusNotFound,
		Message:   "Content corpus file not found",
		Details:   fmt.Sprintf("path: %s", path),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCorpusInvalidError creates a non-retryable corpus validation error.
func NewCorpusInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCorpusInvalid,
		Message:   "Content corpus failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigInvalidError creates a non-retryable configuration error.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid pipeline configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsCode reports whether err is a *StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// Code extracts the ErrorCode from err, or "UNKNOWN" when err is not a
// *StandardError.
func Code(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrorCode("UNKNOWN")
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "OCR") || strings.Contains(codeStr, "EXTRACTION") ||
		strings.Contains(codeStr, "FILE_TYPE") || strings.Contains(codeStr, "DOCUMENT"):
		return "EXTRACTION"
	case strings.Contains(codeStr, "CORPUS"):
		return "CORPUS"
	case strings.Contains(codeStr, "CONFIG"):
		return "CONFIG"
	default:
		return "OTHER"
	}
}
