package pdf

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Abraxas-365/sift/matching/analysis"
	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
)

// Extractor implements analysis.TextExtractor for PDF documents and plain
// text uploads
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText pulls the plain text out of a document and normalizes it for
// the scoring pipeline
func (e *Extractor) ExtractText(_ context.Context, data []byte, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "pdf":
		text, err := extractPDFText(data)
		if err != nil {
			return "", err
		}
		return NormalizeText(text), nil
	case "txt", "text":
		return NormalizeText(string(data)), nil
	default:
		return "", analysis.ErrUnsupportedFileType().WithDetail("file_type", fileType)
	}
}

// extractPDFText concatenates the text of every page
func extractPDFText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to extract page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("document contains no extractable text")
	}
	return text, nil
}

var whitespacePattern = regexp.MustCompile(`[ \t]+`)

// NormalizeText lowercases extracted text and collapses runs of spaces while
// preserving line breaks, which the extractor uses as phrase boundaries
func NormalizeText(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
