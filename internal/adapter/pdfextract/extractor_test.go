package pdfextract

import (
	"errors"
	"testing"

	"quizdeck/internal/domain"

	"github.com/stretchr/testify/assert"
)

func assertExtractionError(t *testing.T, err error) {
	t.Helper()
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeExtractionFailed, domainErr.Code)
}

func TestExtractText_EmptyInput(t *testing.T) {
	e := NewExtractor()

	_, err := e.ExtractText(nil)
	assertExtractionError(t, err)

	_, err = e.ExtractText([]byte{})
	assertExtractionError(t, err)
}

func TestExtractText_NotAPDF(t *testing.T) {
	e := NewExtractor()

	_, err := e.ExtractText([]byte("plain text, not a PDF"))
	assertExtractionError(t, err)
}

func TestExtractText_TruncatedPDF(t *testing.T) {
	e := NewExtractor()

	// A valid header followed by garbage must fail cleanly, not panic.
	_, err := e.ExtractText([]byte("%PDF-1.4\ngarbage"))
	assertExtractionError(t, err)
}
