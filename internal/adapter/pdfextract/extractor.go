package pdfextract

import (
	"bytes"
	"fmt"
	"strings"

	"quizdeck/internal/domain"

	"github.com/ledongthuc/pdf"
)

// Extractor converts PDF bytes into plain text. It is stateless; a single
// instance is shared across requests.
type Extractor struct{}

// NewExtractor creates a new PDF text extractor.
func NewExtractor() domain.PDFExtractor {
	return &Extractor{}
}

// ExtractText parses the PDF and returns its concatenated plain text.
// Unparseable input or a PDF with no extractable text yields a
// domain.ExtractionError.
func (e *Extractor) ExtractText(data []byte) (text string, err error) {
	// The pdf package panics on some malformed inputs; treat that the same
	// as a parse error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = domain.NewExtractionError(fmt.Errorf("pdf parse panic: %v", r))
		}
	}()

	if len(data) == 0 {
		return "", domain.NewExtractionError(fmt.Errorf("empty file"))
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.NewExtractionError(err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", domain.NewExtractionError(err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", domain.NewExtractionError(err)
	}

	extracted := strings.TrimSpace(buf.String())
	if extracted == "" {
		return "", domain.NewExtractionError(fmt.Errorf("no extractable text"))
	}
	return extracted, nil
}
